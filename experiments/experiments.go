package experiments

import (
	"context"
	"fmt"

	"expendibots/experiments/metrics"
	"expendibots/game"
	"expendibots/trainer"
	"expendibots/valuetable"

	"github.com/rs/zerolog/log"
)

// RunSelfPlay trains config.White against config.Black for a number of games
// and stores the run under root/name. The returned trainer holds the trained
// tables.
func RunSelfPlay(ctx context.Context, root, name string, config trainer.Config, games int, white, black *valuetable.Table) (*trainer.Trainer, error) {
	config.White.ID, config.Black.ID = 1, 2
	tr := trainer.New(config, white, black)

	log.Info().Msgf("starting %s self-play with white=%+v and black=%+v...", name, config.White, config.Black)
	results, err := tr.Run(ctx, games)
	if err != nil {
		return nil, fmt.Errorf("self-play failed: %w", err)
	}

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for i, result := range results {
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			White:      config.White.ID,
			Black:      config.Black.ID,
			Reward:     trainer.Reward(result.Winner, game.White),
			GameMetric: result.Game,
		})
		for _, mm := range result.Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}
	}

	err = writeRecords(root, name, []metrics.AgentConfig{config.White, config.Black}, gameRecords, moveRecords)
	if err != nil {
		return nil, err
	}
	log.Info().Msgf("completed %s self-play: white table %d, black table %d", name, tr.Values(game.White).Len(), tr.Values(game.Black).Len())
	return tr, nil
}

func writeRecords(root, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
