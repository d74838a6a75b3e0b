package searcher

import (
	"expendibots/experiments/metrics"
	"expendibots/game"
	"expendibots/meta"
)

type Option func(m *Minimax)

// Minimax is a depth-bounded alpha-beta searcher. It is not safe for
// concurrent use; build one per agent.
type Minimax struct {
	depth     int
	evaluator game.Evaluator
	values    Values
	winAbove  float64
	lossBelow float64
	metrics   metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithEvaluator(evaluator game.Evaluator) Option {
	return func(m *Minimax) {
		m.evaluator = evaluator
	}
}

// WithValueTable lets the search treat nodes whose learned value is decisive
// as won or lost leaves.
func WithValueTable(values Values) Option {
	return func(m *Minimax) {
		if values != nil {
			m.values = values
		}
	}
}

func WithThresholds(winAbove, lossBelow float64) Option {
	return func(m *Minimax) {
		if lossBelow <= winAbove {
			m.winAbove = winAbove
			m.lossBelow = lossBelow
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		depth:     meta.SEARCH_DEPTH,
		evaluator: game.DefaultEvaluator(),
		winAbove:  meta.WIN_THRESHOLD,
		lossBelow: meta.LOSS_THRESHOLD,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

func (m *Minimax) Evaluator() game.Evaluator {
	return m.evaluator
}

// Search picks an action for color on board.
func (m *Minimax) Search(board game.Board, color game.Color) (game.Action, bool, metrics.SearchMetric) {
	return m.Decide(NewNode(board, color, m.evaluator))
}

// Decide returns the root action leading to the best minimax value. Ties go
// to the earliest child in successor order. It returns false when the root is
// terminal or has no successors, which the caller treats as a pass.
func (m *Minimax) Decide(root Node) (game.Action, bool, metrics.SearchMetric) {
	m.metrics.Start(m.depth, m.evaluator.Variant.String())
	m.metrics.AddNode()

	if root.Cutoff() {
		return game.Action{}, false, m.metrics.Complete()
	}
	children := root.Successors(Max)
	if len(children) == 0 {
		return game.Action{}, false, m.metrics.Complete()
	}

	var best game.Score
	var action game.Action
	alpha := Unbounded()
	for i, child := range children {
		score := m.value(child, m.depth-1, alpha, Unbounded(), Min)
		if i == 0 || best.Less(score) {
			best = score
			action = child.Action()
		}
		alpha = alpha.Raise(best)
	}
	return action, true, m.metrics.Complete()
}

// value scores a non-root node, consulting the value table first.
func (m *Minimax) value(node Node, depth int, alpha, beta Bound, stage Stage) game.Score {
	if m.values != nil {
		if v, ok := m.values.Get(node.Board()); ok {
			switch {
			case v > m.winAbove:
				m.metrics.AddTableHit()
				return game.WinScore
			case v < m.lossBelow:
				m.metrics.AddTableHit()
				return game.LossScore
			}
		}
	}
	return m.alphaBeta(node, depth, alpha, beta, stage)
}

func (m *Minimax) alphaBeta(node Node, depth int, alpha, beta Bound, stage Stage) game.Score {
	m.metrics.AddNode()
	if depth <= 0 || node.Cutoff() {
		return node.Evaluation()
	}
	children := node.Successors(stage)
	if len(children) == 0 {
		return node.Evaluation()
	}

	var best game.Score
	for i, child := range children {
		score := m.value(child, depth-1, alpha, beta, stage.Next())
		if stage == Max {
			if i == 0 || best.Less(score) {
				best = score
			}
			alpha = alpha.Raise(best)
		} else {
			if i == 0 || score.Less(best) {
				best = score
			}
			beta = beta.Lower(best)
		}
		if Crossed(alpha, beta) {
			if i < len(children)-1 {
				m.metrics.AddPrune()
			}
			break
		}
	}
	return best
}
