package searcher

import (
	"fmt"

	"expendibots/experiments/metrics"
	"expendibots/game"
)

// FromConfig builds a searcher for an agent config. values is only consulted
// when the config enables the value table.
func FromConfig(config metrics.AgentConfig, values Values) (*Minimax, error) {
	evaluator := game.DefaultEvaluator()
	if config.Evaluator != "" {
		variant, err := game.ParseVariant(config.Evaluator)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		evaluator.Variant = variant
	}
	switch config.Neighbourhood {
	case 0:
	case 4, 8:
		evaluator.Neighbourhood = config.Neighbourhood
	default:
		return nil, fmt.Errorf("agent %d: neighbourhood must be 4 or 8, got %d", config.ID, config.Neighbourhood)
	}

	options := []Option{WithEvaluator(evaluator)}
	if config.Depth > 0 {
		options = append(options, WithDepth(config.Depth))
	}
	if config.UseValues && values != nil {
		options = append(options, WithValueTable(values))
	}
	if config.WinAbove > 0 || config.LossBelow > 0 {
		options = append(options, WithThresholds(config.WinAbove, config.LossBelow))
	}

	options = append(options, WithMetrics())
	return NewMinimax(options...), nil
}
