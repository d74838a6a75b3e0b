package trainer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"expendibots/engine"
	"expendibots/experiments/metrics"
	"expendibots/game"
	"expendibots/meta"
	"expendibots/searcher/agent"
	"expendibots/valuetable"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	White       metrics.AgentConfig
	Black       metrics.AgentConfig
	Opening     game.Board    // Starting position; the empty board means the standard opening
	MaxMoves    int           // Per game; zero means meta.MAX_MOVES
	MaxDuration time.Duration // Per game; zero disables
	Workers     int           // Games played at once; zero means one
	ReportEvery int           // Games between progress logs; zero means meta.REPORT_EVERY
}

type Result struct {
	Winner game.Color
	Board  game.Board // Final position
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

// Trainer plays self-play games and trains one value table per color. The
// tables are shared by every game, so games may run in parallel.
type Trainer struct {
	config Config
	white  *valuetable.Table
	black  *valuetable.Table
	played atomic.Uint64
}

// New returns a trainer updating the given tables; a nil table starts empty.
func New(config Config, white, black *valuetable.Table) *Trainer {
	if white == nil {
		white = valuetable.New()
	}
	if black == nil {
		black = valuetable.New()
	}
	if config.MaxMoves <= 0 {
		config.MaxMoves = meta.MAX_MOVES
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.ReportEvery <= 0 {
		config.ReportEvery = meta.REPORT_EVERY
	}
	return &Trainer{config: config, white: white, black: black}
}

func (t *Trainer) Values(c game.Color) *valuetable.Table {
	if c == game.Black {
		return t.black
	}
	return t.white
}

// PlayGame plays one game from the configured opening, White first, and
// updates both tables from its outcome.
func (t *Trainer) PlayGame(ctx context.Context) (Result, error) {
	n := t.played.Add(1)
	board := t.config.Opening
	if board.Empty() {
		board = game.StandardBoard()
	}

	whiteConfig, blackConfig := t.config.White, t.config.Black
	whiteConfig.Seed += n
	blackConfig.Seed += n

	white, err := agent.FromConfig(whiteConfig, game.White, board, t.white)
	if err != nil {
		return Result{}, err
	}
	black, err := agent.FromConfig(blackConfig, game.Black, board, t.black)
	if err != nil {
		return Result{}, err
	}

	whiteLearner := NewLearner(game.White, t.white, learningRate(whiteConfig))
	blackLearner := NewLearner(game.Black, t.black, learningRate(blackConfig))
	referee := engine.NewReferee(t.config.MaxMoves, t.config.MaxDuration)
	e := engine.NewLocal(white, black, board, referee, whiteLearner, blackLearner)

	winner, gameMetric, moveMetrics, err := e.Run(ctx)
	if err != nil {
		return Result{}, err
	}

	whiteLearner.Learn(Reward(winner, game.White))
	blackLearner.Learn(Reward(winner, game.Black))

	return Result{Winner: winner, Board: e.Board(), Game: gameMetric, Moves: moveMetrics}, nil
}

// Run plays games on up to config.Workers goroutines. Results are in game
// order. The first failing game cancels the rest.
func (t *Trainer) Run(ctx context.Context, games int) ([]Result, error) {
	log.Info().Msgf("starting %d self-play games on %d workers...", games, t.config.Workers)

	results := make([]Result, games)
	var completed, whiteWins, blackWins atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.config.Workers)
	for i := 0; i < games; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			result, err := t.PlayGame(gctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result

			switch result.Winner {
			case game.White:
				whiteWins.Add(1)
			case game.Black:
				blackWins.Add(1)
			}
			if done := completed.Add(1); done%int64(t.config.ReportEvery) == 0 {
				log.Info().Msgf("completed %d of %d games (white %d, black %d, white table %d, black table %d)",
					done, games, whiteWins.Load(), blackWins.Load(), t.white.Len(), t.black.Len())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %d self-play games", games)
	return results, nil
}

func learningRate(config metrics.AgentConfig) float64 {
	if config.LearningRate > 0 {
		return config.LearningRate
	}
	return meta.LEARNING_RATE
}
