package trainer

import (
	"expendibots/engine"
	"expendibots/game"
	"expendibots/valuetable"
)

// Reward is the terminal reward of color for a game won by winner.
func Reward(winner, color game.Color) float64 {
	switch winner {
	case game.None:
		return 0
	case color:
		return 1
	}
	return -1
}

// Learner records the boards one color saw during a game and credits them
// once the game is over.
type Learner struct {
	color   game.Color
	table   *valuetable.Table
	rate    float64
	history []game.Board
}

func NewLearner(color game.Color, table *valuetable.Table, rate float64) *Learner {
	return &Learner{color: color, table: table, rate: rate}
}

// Observe appends the board after every action. Boards reached by the
// learner's own actions are seeded with the neutral value while play goes on.
func (l *Learner) Observe(ply engine.Ply) {
	if ply.Pass {
		return
	}
	l.history = append(l.history, ply.Board)
	if !ply.Over && ply.Mover == l.color {
		l.table.Init(ply.Board)
	}
}

// Learn walks the history backwards, moving each board towards the freshly
// updated value of its successor, starting from reward. The history is
// cleared afterwards.
func (l *Learner) Learn(reward float64) {
	target := reward
	for i := len(l.history) - 1; i >= 0; i-- {
		target = l.table.Update(l.history[i], target, l.rate)
	}
	l.history = nil
}

func (l *Learner) History() []game.Board {
	return append([]game.Board(nil), l.history...)
}
