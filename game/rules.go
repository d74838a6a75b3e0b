package game

import (
	"errors"
	"fmt"
)

var ErrIllegalAction = errors.New("illegal action")

// Explosion returns the cells cleared by detonating origin. The origin is
// always part of the result, occupied or not. The blast spreads to every
// 8-neighbour of a cell it reaches, and keeps chaining only through cells
// that hold a stack.
//
// Apart from the origin the result holds only stacks that were destroyed:
// empty cells touched by the blast are not reported. Callers that need the
// full blast area should add the neighbours of every reported cell.
func (b Board) Explosion(origin Pos) Cells {
	destroyed := NewCells(origin)
	visited := NewCells(origin)
	frontier := []Pos{origin}
	for len(frontier) > 0 {
		p := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, n := range p.Neighbours() {
			if visited.Has(n) {
				continue
			}
			visited = visited.With(n)
			if b[n.Index()] == 0 {
				continue
			}
			destroyed = destroyed.With(n)
			frontier = append(frontier, n)
		}
	}
	return destroyed
}

// Apply returns the board that results from a. The receiver is not modified.
// The action is assumed legal; see Play for a checked version.
func (b Board) Apply(a Action) Board {
	switch a.Type {
	case BoomAction:
		for _, p := range b.Explosion(a.From).Positions() {
			b[p.Index()] = 0
		}
	case MoveAction:
		units := int(b.ColorAt(a.From)) * a.Count
		b[a.From.Index()] -= units
		b[a.To.Index()] += units
	}
	return b
}

// Validate checks that c may play a on this board.
func (b Board) Validate(c Color, a Action) error {
	if c != White && c != Black {
		return fmt.Errorf("%w: no color to move", ErrIllegalAction)
	}
	if !a.From.OnBoard() {
		return fmt.Errorf("%w: %s", ErrOffBoard, a.From)
	}
	if b.ColorAt(a.From) != c {
		return fmt.Errorf("%w: %s has no %s stack", ErrIllegalAction, a.From, c)
	}

	switch a.Type {
	case BoomAction:
		return nil
	case MoveAction:
		if !a.To.OnBoard() {
			return fmt.Errorf("%w: %s", ErrOffBoard, a.To)
		}
		height := b.Height(a.From)
		if a.Count < 1 || a.Count > height {
			return fmt.Errorf("%w: cannot move %d of %d units", ErrIllegalAction, a.Count, height)
		}
		if a.From.X != a.To.X && a.From.Y != a.To.Y {
			return fmt.Errorf("%w: %s to %s is not along a row or column", ErrIllegalAction, a.From, a.To)
		}
		if d := a.From.Distance(a.To); d < 1 || d > height {
			return fmt.Errorf("%w: %s to %s is out of reach for a stack of %d", ErrIllegalAction, a.From, a.To, height)
		}
		if b.ColorAt(a.To) == c.Opponent() {
			return fmt.Errorf("%w: %s is held by %s", ErrIllegalAction, a.To, c.Opponent())
		}
		return nil
	}
	return fmt.Errorf("%w: unknown action type %d", ErrIllegalAction, a.Type)
}

// Play validates a for c and returns the resulting board. On error the
// returned board is the unchanged receiver.
func (b Board) Play(c Color, a Action) (Board, error) {
	if err := b.Validate(c, a); err != nil {
		return b, err
	}
	return b.Apply(a), nil
}
