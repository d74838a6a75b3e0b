package agent

import (
	"context"
	"fmt"

	"expendibots/experiments/metrics"
	"expendibots/game"
	"expendibots/searcher"
	"expendibots/valuetable"
)

// Decision is an agent's answer for one turn. Pass is set when the agent has
// no action to offer.
type Decision struct {
	Action game.Action
	Pass   bool
	Metric metrics.SearchMetric
}

// Agent plays one color and tracks its own copy of the board.
type Agent interface {
	Color() game.Color
	Board() game.Board
	// Action chooses the next action for the agent's color on its board
	Action(ctx context.Context) (Decision, error)
	// Update applies a confirmed action by either side to the agent's board
	Update(action game.Action)
}

// FromConfig builds the agent described by config. table is the agent's
// value table and may be nil.
func FromConfig(config metrics.AgentConfig, color game.Color, board game.Board, table *valuetable.Table) (Agent, error) {
	if config.Random {
		return NewRandom(color, board, config.Seed), nil
	}

	var values searcher.Values
	if table != nil {
		values = table
	}
	m, err := searcher.FromConfig(config, values)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s agent: %w", color, err)
	}
	return NewSearch(color, board, m), nil
}
