package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrParse = errors.New("cannot parse action")

// ActionType represents the kind of action a player can perform.
type ActionType int

const (
	MoveAction ActionType = iota
	BoomAction
)

func (t ActionType) String() string {
	if t == BoomAction {
		return "BOOM"
	}
	return "MOVE"
}

// Action is either a move of Count units from From to To, or a boom at From.
// It carries no board reference.
type Action struct {
	Type  ActionType
	Count int
	From  Pos
	To    Pos
}

func Move(count int, from, to Pos) Action {
	return Action{Type: MoveAction, Count: count, From: from, To: to}
}

func Boom(at Pos) Action {
	return Action{Type: BoomAction, From: at}
}

// At returns the detonation point of a boom.
func (a Action) At() Pos {
	return a.From
}

func (a Action) String() string {
	if a.Type == BoomAction {
		return fmt.Sprintf("BOOM at %s.", a.From)
	}
	return fmt.Sprintf("MOVE %d from %s to %s.", a.Count, a.From, a.To)
}

// MarshalJSON encodes the action as ["MOVE", n, [x, y], [x, y]] or ["BOOM", [x, y]].
func (a Action) MarshalJSON() ([]byte, error) {
	from := [2]int{a.From.X, a.From.Y}
	if a.Type == BoomAction {
		return json.Marshal([]any{"BOOM", from})
	}
	return json.Marshal([]any{"MOVE", a.Count, from, [2]int{a.To.X, a.To.Y}})
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(parts) == 0 {
		return fmt.Errorf("%w: empty action", ErrParse)
	}
	var tag string
	if err := json.Unmarshal(parts[0], &tag); err != nil {
		return fmt.Errorf("%w: action tag: %v", ErrParse, err)
	}

	pos := func(raw json.RawMessage) (Pos, error) {
		var xy [2]int
		if err := json.Unmarshal(raw, &xy); err != nil {
			return Pos{}, fmt.Errorf("%w: position: %v", ErrParse, err)
		}
		return Pos{X: xy[0], Y: xy[1]}, nil
	}

	switch strings.ToUpper(tag) {
	case "BOOM":
		if len(parts) != 2 {
			return fmt.Errorf("%w: BOOM takes 1 argument, got %d", ErrParse, len(parts)-1)
		}
		at, err := pos(parts[1])
		if err != nil {
			return err
		}
		*a = Boom(at)
	case "MOVE":
		if len(parts) != 4 {
			return fmt.Errorf("%w: MOVE takes 3 arguments, got %d", ErrParse, len(parts)-1)
		}
		var count int
		if err := json.Unmarshal(parts[1], &count); err != nil {
			return fmt.Errorf("%w: count: %v", ErrParse, err)
		}
		from, err := pos(parts[2])
		if err != nil {
			return err
		}
		to, err := pos(parts[3])
		if err != nil {
			return err
		}
		*a = Move(count, from, to)
	default:
		return fmt.Errorf("%w: unknown action %q", ErrParse, tag)
	}
	return nil
}

// ParseAction reads the text form typed by a human player:
//
//	m|move count fromX fromY toX toY
//	b|boom x y
//
// It only checks the shape of the input; legality is checked by Board.Validate.
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("%w: empty input", ErrParse)
	}
	args := make([]int, len(fields)-1)
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q is not a number", ErrParse, f)
		}
		args[i] = n
	}

	switch strings.ToLower(fields[0]) {
	case "m", "move":
		if len(args) != 5 {
			return Action{}, fmt.Errorf("%w: move needs 5 numbers, got %d", ErrParse, len(args))
		}
		return Move(args[0], Pos{X: args[1], Y: args[2]}, Pos{X: args[3], Y: args[4]}), nil
	case "b", "boom":
		if len(args) != 2 {
			return Action{}, fmt.Errorf("%w: boom needs 2 numbers, got %d", ErrParse, len(args))
		}
		return Boom(Pos{X: args[0], Y: args[1]}), nil
	}
	return Action{}, fmt.Errorf("%w: unknown command %q", ErrParse, fields[0])
}
