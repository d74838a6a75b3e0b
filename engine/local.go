package engine

import (
	"context"
	"fmt"
	"time"

	"expendibots/experiments/metrics"
	"expendibots/game"
	"expendibots/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local runs one game between two in-process agents. The first agent moves
// first.
type Local struct {
	agents    [2]agent.Agent
	board     game.Board
	referee   *Referee
	observers []Observer
	done      bool
}

func NewLocal(first, second agent.Agent, board game.Board, referee *Referee, observers ...Observer) *Local {
	if first == nil || second == nil {
		panic("need two agents")
	}
	if first.Color() == second.Color() || first.Color() == game.None || second.Color() == game.None {
		panic("agents must play opposite colors")
	}
	if first.Board() != board || second.Board() != board {
		panic("agent boards do not match the game board")
	}
	if referee == nil {
		referee = &Referee{}
	}

	return &Local{
		agents:    [2]agent.Agent{first, second},
		board:     board,
		referee:   referee,
		observers: observers,
	}
}

func (e *Local) Board() game.Board {
	return e.board
}

// Run plays until one color is wiped out, the referee caps the game, or both
// sides pass in a row. It returns the winner, None for a draw.
func (e *Local) Run(ctx context.Context) (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	if e.done {
		return game.None, metrics.GameMetric{}, nil, ErrGameOver
	}
	e.done = true

	gameMetric := metrics.GameMetric{
		StartingPlayer: e.agents[0].Color().String(),
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	log.Debug().Msgf("%s is starting", e.agents[0].Color())
	e.referee.Start()

	over, winner := e.referee.GameOver(e.board)
	passes := 0
	for turn := 0; !over; turn++ {
		mover := e.agents[turn%2]
		color := mover.Color()

		decision, err := mover.Action(ctx)
		if err != nil {
			return game.None, gameMetric, moveMetrics, fmt.Errorf("%s failed to act: %w", color, err)
		}

		if decision.Pass {
			passes++
		} else {
			next, err := e.board.Play(color, decision.Action)
			if err != nil {
				return game.None, gameMetric, moveMetrics, fmt.Errorf("%s played %s: %w", color, decision.Action, err)
			}
			e.board = next
			for _, a := range e.agents {
				a.Update(decision.Action)
			}
			passes = 0
		}
		e.referee.Tick()

		over, winner = e.referee.GameOver(e.board)
		if passes >= 2 {
			over, winner = true, game.None
		}

		ply := Ply{
			Step:   e.referee.Moves(),
			Mover:  color,
			Action: decision.Action,
			Pass:   decision.Pass,
			Board:  e.board,
			Over:   over,
		}
		for _, o := range e.observers {
			o.Observe(ply)
		}

		action := decision.Action.String()
		if decision.Pass {
			action = "PASS"
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         ply.Step,
			Player:       color.String(),
			Action:       action,
			Pass:         decision.Pass,
			SearchMetric: decision.Metric,
		})
		log.Debug().Msgf("ply %d: %s %s", ply.Step, color, action)
	}

	gameMetric.Winner = winner.String()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.referee.Moves()
	if _, decided := e.board.Winner(); !decided && passes < 2 {
		gameMetric.Capped = true
	}

	if gameMetric.Capped {
		log.Debug().Msgf("game stopped after %d moves without a winner", gameMetric.TotalMoves)
	} else {
		log.Debug().Msgf("game ended after %d moves with winner: %s", gameMetric.TotalMoves, winner)
	}
	return winner, gameMetric, moveMetrics, nil
}
