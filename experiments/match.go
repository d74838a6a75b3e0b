package experiments

import (
	"context"
	"fmt"

	"expendibots/engine"
	"expendibots/experiments/metrics"
	"expendibots/game"
	"expendibots/meta"
	"expendibots/searcher/agent"
	"expendibots/trainer"
	"expendibots/valuetable"

	"github.com/rs/zerolog/log"
)

// TableKey names the value table an agent reads when playing one color. The
// table's values are from that color's perspective.
type TableKey struct {
	ID    int // AgentConfig.ID
	Color game.Color
}

// Match pits agent configs against each other without training.
type Match struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	Games    int                            // Per match up; sides swap every game
	MaxMoves int                            // Per game; zero means meta.MAX_MOVES
	Tables   map[TableKey]*valuetable.Table // An agent without a table for its color searches without one
}

// RunMatch plays every match up and stores the run under root/match.Name.
func RunMatch(ctx context.Context, root string, match Match) ([]metrics.GameRecord, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s match...", match.Name)

	for mi, matchUp := range match.MatchUps {
		log.Info().Msgf("starting match up %d of %d between agent%d and agent%d...", mi+1, len(match.MatchUps), matchUp[0].ID, matchUp[1].ID)

		for i := 0; i < match.Games; i++ {
			white, black := matchUp[0], matchUp[1]
			if i%2 == 1 {
				white, black = black, white
			}
			white.Seed += uint64(i)
			black.Seed += uint64(i)

			winner, gameMetric, moveMetrics, err := runGame(ctx, white, black, match)
			if err != nil {
				return nil, fmt.Errorf("match up %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				Reward:     trainer.Reward(winner, game.White),
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed match up %d of %d game %d with winner: %s", mi+1, len(match.MatchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s match", match.Name)

	if err := writeRecords(root, match.Name, match.Configs, gameRecords, moveRecords); err != nil {
		return nil, err
	}
	return gameRecords, nil
}

// runGame plays one game from the standard opening with White first.
func runGame(ctx context.Context, whiteConfig, blackConfig metrics.AgentConfig, match Match) (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	board := game.StandardBoard()
	white, err := newAgent(match, whiteConfig, game.White, board)
	if err != nil {
		return game.None, metrics.GameMetric{}, nil, err
	}
	black, err := newAgent(match, blackConfig, game.Black, board)
	if err != nil {
		return game.None, metrics.GameMetric{}, nil, err
	}

	maxMoves := match.MaxMoves
	if maxMoves <= 0 {
		maxMoves = meta.MAX_MOVES
	}
	e := engine.NewLocal(white, black, board, engine.NewReferee(maxMoves, 0))
	return e.Run(ctx)
}

// newAgent builds config for color, handing it the table learned for that color.
func newAgent(match Match, config metrics.AgentConfig, color game.Color, board game.Board) (agent.Agent, error) {
	return agent.FromConfig(config, color, board, match.Tables[TableKey{ID: config.ID, Color: color}])
}
