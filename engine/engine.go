package engine

import (
	"errors"
	"time"

	"expendibots/game"
)

var ErrGameOver = errors.New("game is over")

// Ply is one turn of a game as seen by observers.
type Ply struct {
	Step   int
	Mover  game.Color
	Action game.Action
	Pass   bool
	Board  game.Board // After the action
	Over   bool
}

type Observer interface {
	Observe(ply Ply)
}

// Referee decides when a game ends. MaxMoves and MaxDuration are safety
// bounds that stop a game without a winner; zero disables a bound.
type Referee struct {
	MaxMoves    int
	MaxDuration time.Duration
	start       time.Time
	moves       int
}

func NewReferee(maxMoves int, maxDuration time.Duration) *Referee {
	return &Referee{MaxMoves: maxMoves, MaxDuration: maxDuration}
}

func (r *Referee) Start() {
	r.start = time.Now()
	r.moves = 0
}

// Tick counts one ply, passes included.
func (r *Referee) Tick() {
	r.moves++
}

func (r *Referee) Moves() int {
	return r.moves
}

// Capped reports whether a safety bound has been reached.
func (r *Referee) Capped() bool {
	if r.MaxMoves > 0 && r.moves >= r.MaxMoves {
		return true
	}
	return r.MaxDuration > 0 && !r.start.IsZero() && time.Since(r.start) >= r.MaxDuration
}

// GameOver reports whether play stops on board, and the winner. A game
// stopped by a safety bound or a mutual wipe-out has no winner.
func (r *Referee) GameOver(board game.Board) (bool, game.Color) {
	if winner, decided := board.Winner(); decided {
		return true, winner
	}
	if r.Capped() {
		return true, game.None
	}
	return false, game.None
}
