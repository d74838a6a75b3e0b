package searcher

import (
	"expendibots/game"
)

// Stage is the side acting at a node relative to the root player.
type Stage int

const (
	Max Stage = iota
	Min
)

func (s Stage) Next() Stage {
	if s == Max {
		return Min
	}
	return Max
}

func (s Stage) String() string {
	if s == Max {
		return "max"
	}
	return "min"
}

type Node interface {
	// Successors returns the children reached by the actions of the side
	// acting at stage, in the order they should be searched.
	Successors(stage Stage) []Node
	// Cutoff reports whether the node is terminal regardless of depth.
	Cutoff() bool
	// Evaluation scores the node from the root player's perspective.
	Evaluation() game.Score
	// Action is the action that produced the node. The zero action at the root.
	Action() game.Action
	Board() game.Board
}

// Values is a read-only view of a learned value table.
type Values interface {
	Get(board game.Board) (float64, bool)
}

// Bound is an alpha or beta value. The zero Bound is unset and compares as
// minus infinity when used as alpha and plus infinity when used as beta.
type Bound struct {
	score game.Score
	set   bool
}

func Unbounded() Bound {
	return Bound{}
}

func BoundAt(score game.Score) Bound {
	return Bound{score: score, set: true}
}

func (b Bound) Score() (game.Score, bool) {
	return b.score, b.set
}

// Raise returns the alpha bound after the maximiser secured score.
func (b Bound) Raise(score game.Score) Bound {
	if !b.set || b.score.Less(score) {
		return BoundAt(score)
	}
	return b
}

// Lower returns the beta bound after the minimiser secured score.
func (b Bound) Lower(score game.Score) Bound {
	if !b.set || score.Less(b.score) {
		return BoundAt(score)
	}
	return b
}

// Crossed reports whether beta <= alpha. An unset bound never crosses.
func Crossed(alpha, beta Bound) bool {
	return alpha.set && beta.set && beta.score.Compare(alpha.score) <= 0
}
