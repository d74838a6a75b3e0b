package game

import (
	"errors"
	"fmt"
	"strings"

	"expendibots/utils"
)

// PiecesPerSide is the number of units each color starts with.
const PiecesPerSide = 12

var (
	ErrOffBoard      = errors.New("position is off the board")
	ErrInvalidLayout = errors.New("invalid initial layout")
)

// Color identifies the owner of a stack. White stacks are stored as positive
// counts and Black stacks as negative counts.
type Color int8

const (
	Black Color = -1
	None  Color = 0
	White Color = 1
)

func (c Color) Opponent() Color {
	return -c
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return None, fmt.Errorf("unknown color %q", s)
}

// Stack is a run of same-colored units on one cell.
type Stack struct {
	Pos    Pos
	Height int
}

// Board is the full game state: one signed stack count per cell, row-major.
// It is a value type; copying a Board copies every cell, and two boards with
// the same cells are equal, which makes a Board its own fingerprint.
type Board [NumCells]int

// Layout lists the starting stacks of each color as (height, x, y) triples.
type Layout struct {
	White [][3]int
	Black [][3]int
}

// StandardLayout is the opening position: twelve single units per side.
var StandardLayout = Layout{
	White: [][3]int{
		{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1}, {1, 3, 0}, {1, 3, 1},
		{1, 4, 0}, {1, 4, 1}, {1, 6, 0}, {1, 6, 1}, {1, 7, 0}, {1, 7, 1},
	},
	Black: [][3]int{
		{1, 0, 6}, {1, 0, 7}, {1, 1, 6}, {1, 1, 7}, {1, 3, 6}, {1, 3, 7},
		{1, 4, 6}, {1, 4, 7}, {1, 6, 6}, {1, 6, 7}, {1, 7, 6}, {1, 7, 7},
	},
}

// NewBoard builds a board from a layout, rejecting off-board or overlapping
// stacks and colors holding more than PiecesPerSide units.
func NewBoard(layout Layout) (Board, error) {
	var b Board
	place := func(c Color, stacks [][3]int) error {
		total := 0
		for _, s := range stacks {
			height, p := s[0], Pos{X: s[1], Y: s[2]}
			if height <= 0 {
				return fmt.Errorf("%w: %s stack at %s has height %d", ErrInvalidLayout, c, p, height)
			}
			if !p.OnBoard() {
				return fmt.Errorf("%w: %s stack at %s", ErrOffBoard, c, p)
			}
			if b[p.Index()] != 0 {
				return fmt.Errorf("%w: cell %s is used twice", ErrInvalidLayout, p)
			}
			b[p.Index()] = int(c) * height
			total += height
		}
		if total > PiecesPerSide {
			return fmt.Errorf("%w: %s has %d units, at most %d allowed", ErrInvalidLayout, c, total, PiecesPerSide)
		}
		return nil
	}
	if err := place(White, layout.White); err != nil {
		return Board{}, err
	}
	if err := place(Black, layout.Black); err != nil {
		return Board{}, err
	}
	return b, nil
}

// StandardBoard returns the opening position.
func StandardBoard() Board {
	b, err := NewBoard(StandardLayout)
	if err != nil {
		panic(err)
	}
	return b
}

// Get returns the signed stack count at p.
func (b Board) Get(p Pos) (int, error) {
	if !p.OnBoard() {
		return 0, fmt.Errorf("%w: %s", ErrOffBoard, p)
	}
	return b[p.Index()], nil
}

// ColorAt returns the owner of the stack at p, or None for an empty cell.
// p must be on the board.
func (b Board) ColorAt(p Pos) Color {
	return Color(utils.Sign(b[p.Index()]))
}

// Height returns the number of units stacked at p. p must be on the board.
func (b Board) Height(p Pos) int {
	return utils.Abs(b[p.Index()])
}

// Count returns the total number of units owned by c.
func (b Board) Count(c Color) int {
	total := 0
	for _, v := range b {
		if Color(utils.Sign(v)) == c && c != None {
			total += utils.Abs(v)
		}
	}
	return total
}

// Stacks lists the stacks owned by c in row-major order.
func (b Board) Stacks(c Color) []Stack {
	var out []Stack
	for i, v := range b {
		if v != 0 && Color(utils.Sign(v)) == c {
			out = append(out, Stack{Pos: PosAt(i), Height: utils.Abs(v)})
		}
	}
	return out
}

func (b Board) Empty() bool {
	return b == Board{}
}

// Winner reports whether the game is decided on this board and by whom. A
// board where both colors were wiped out at once is decided with no winner.
func (b Board) Winner() (Color, bool) {
	white, black := b.Count(White), b.Count(Black)
	switch {
	case white == 0 && black == 0:
		return None, true
	case black == 0:
		return White, true
	case white == 0:
		return Black, true
	}
	return None, false
}

// String dumps the board top row first, "o" for white and "x" for black.
func (b Board) String() string {
	var sb strings.Builder
	for y := Size - 1; y >= 0; y-- {
		for x := 0; x < Size; x++ {
			p := Pos{X: x, Y: y}
			switch b.ColorAt(p) {
			case White:
				fmt.Fprintf(&sb, "o%-2d", b.Height(p))
			case Black:
				fmt.Fprintf(&sb, "x%-2d", b.Height(p))
			default:
				sb.WriteString(".  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
