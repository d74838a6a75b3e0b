package agent

import (
	"context"

	"expendibots/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly chosen generated action. It is the baseline
// opponent for evaluating trained agents.
type Random struct {
	color game.Color
	board game.Board
	rng   *rand.Rand
}

func NewRandom(color game.Color, board game.Board, seed uint64) *Random {
	return &Random{
		color: color,
		board: board,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (a *Random) Color() game.Color {
	return a.color
}

func (a *Random) Board() game.Board {
	return a.board
}

func (a *Random) Action(ctx context.Context) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}
	actions := a.board.Actions(a.color)
	if len(actions) == 0 {
		return Decision{Pass: true}, nil
	}
	return Decision{Action: actions[a.rng.Intn(len(actions))]}, nil
}

func (a *Random) Update(action game.Action) {
	a.board = a.board.Apply(action)
}
