package searcher

import (
	"testing"

	"expendibots/experiments/metrics"
	"expendibots/game"

	"github.com/stretchr/testify/require"
)

// textbookTree is the three-by-three tree where the second subtree is cut
// after its first leaf.
func textbookTree() *mockNode {
	return inner(0,
		inner(1, leaf(10, 3), leaf(11, 12), leaf(12, 8)),
		inner(2, leaf(20, 2), leaf(21, 4), leaf(22, 6)),
		inner(3, leaf(30, 14), leaf(31, 5), leaf(32, 2)),
	)
}

func TestBound(t *testing.T) {
	t.Run("unset bounds never cross", func(t *testing.T) {
		require.False(t, Crossed(Unbounded(), Unbounded()))
		require.False(t, Crossed(BoundAt(game.Score{5}), Unbounded()))
		require.False(t, Crossed(Unbounded(), BoundAt(game.Score{-5})))
	})

	t.Run("equal bounds cross", func(t *testing.T) {
		require.True(t, Crossed(BoundAt(game.Score{3}), BoundAt(game.Score{3})))
		require.True(t, Crossed(BoundAt(game.Score{3}), BoundAt(game.Score{2})))
		require.False(t, Crossed(BoundAt(game.Score{3}), BoundAt(game.Score{3, 1})))
	})

	t.Run("raise and lower only tighten", func(t *testing.T) {
		alpha := Unbounded().Raise(game.Score{3}).Raise(game.Score{1})
		score, ok := alpha.Score()
		require.True(t, ok)
		require.Equal(t, game.Score{3}, score, "Alpha should keep the larger score")

		beta := Unbounded().Lower(game.Score{3}).Lower(game.Score{7})
		score, ok = beta.Score()
		require.True(t, ok)
		require.Equal(t, game.Score{3}, score, "Beta should keep the smaller score")
	})
}

func TestDecide(t *testing.T) {
	t.Run("picks the child with the best minimax value", func(t *testing.T) {
		m := NewMinimax(WithDepth(2), WithMetrics())

		action, ok, metric := m.Decide(textbookTree())

		require.True(t, ok)
		require.Equal(t, game.Boom(game.PosAt(1)), action, "First subtree guarantees 3")
		require.Equal(t, 1, metric.Prunes, "Second subtree should be cut after its first leaf")
		require.Equal(t, 11, metric.Nodes, "Two leaves of the second subtree are never visited")
		require.Equal(t, 2, metric.Depth)
	})

	t.Run("agrees with the unpruned search", func(t *testing.T) {
		root := textbookTree()

		got, _, _ := NewMinimax(WithDepth(2)).Decide(root)
		want, _ := exhaustiveDecide(root, 2)

		require.Equal(t, want, got)
	})

	t.Run("ties go to the earliest child", func(t *testing.T) {
		root := inner(0, leaf(1, 4), leaf(2, 4), leaf(3, 1))

		action, ok, _ := NewMinimax(WithDepth(1)).Decide(root)

		require.True(t, ok)
		require.Equal(t, game.Boom(game.PosAt(1)), action)
	})

	t.Run("root without successors yields no action", func(t *testing.T) {
		action, ok, _ := NewMinimax().Decide(leaf(0, 7))

		require.False(t, ok, "Caller should treat this as a pass")
		require.Equal(t, game.Action{}, action)
	})

	t.Run("terminal root yields no action", func(t *testing.T) {
		root := inner(0, leaf(1, 1))
		root.cutoff = true

		_, ok, _ := NewMinimax().Decide(root)

		require.False(t, ok)
	})

	t.Run("inner node without successors is scored as a leaf", func(t *testing.T) {
		stuck := &mockNode{id: 1, score: 9}
		root := inner(0, stuck, inner(2, leaf(20, 5)))

		action, ok, _ := NewMinimax(WithDepth(3)).Decide(root)

		require.True(t, ok)
		require.Equal(t, game.Boom(game.PosAt(1)), action, "Stuck child should keep its own evaluation of 9")
	})

	t.Run("cutoff nodes are not expanded", func(t *testing.T) {
		won := inner(1, leaf(10, -100))
		won.score = 50
		won.cutoff = true
		root := inner(0, won, inner(2, leaf(20, 10)))

		action, _, _ := NewMinimax(WithDepth(2)).Decide(root)

		require.Equal(t, game.Boom(game.PosAt(1)), action)
	})
}

func TestValueTableShortCircuit(t *testing.T) {
	t.Run("confident win is taken as a won leaf", func(t *testing.T) {
		good := leaf(1, 10)
		learned := inner(2, leaf(20, -10))
		values := mockValues{learned.Board(): 0.9}
		m := NewMinimax(WithDepth(2), WithValueTable(values), WithMetrics())

		action, _, metric := m.Decide(inner(0, good, learned))

		require.Equal(t, learned.Action(), action, "Won leaf should beat any heuristic score")
		require.Equal(t, 1, metric.TableHits)
	})

	t.Run("confident loss is taken as a lost leaf", func(t *testing.T) {
		bad := leaf(1, -10)
		learned := leaf(2, 10)
		values := mockValues{learned.Board(): 0.1}
		m := NewMinimax(WithDepth(1), WithValueTable(values))

		action, _, _ := m.Decide(inner(0, bad, learned))

		require.Equal(t, bad.Action(), action)
	})

	t.Run("values inside the thresholds are ignored", func(t *testing.T) {
		good := leaf(1, 10)
		learned := leaf(2, 0)
		values := mockValues{learned.Board(): 0.8}
		m := NewMinimax(WithDepth(1), WithValueTable(values), WithMetrics())

		action, _, metric := m.Decide(inner(0, good, learned))

		require.Equal(t, good.Action(), action, "0.8 is not above the win threshold")
		require.Zero(t, metric.TableHits)
	})

	t.Run("thresholds are configurable", func(t *testing.T) {
		good := leaf(1, 10)
		learned := leaf(2, 0)
		values := mockValues{learned.Board(): 0.7}
		m := NewMinimax(WithDepth(1), WithValueTable(values), WithThresholds(0.6, 0.4))

		action, _, _ := m.Decide(inner(0, good, learned))

		require.Equal(t, learned.Action(), action)
	})
}

func TestSearchMatchesExhaustiveMinimax(t *testing.T) {
	layouts := []game.Layout{
		{
			White: [][3]int{{1, 3, 3}, {2, 0, 0}},
			Black: [][3]int{{1, 4, 4}, {1, 6, 6}},
		},
		{
			White: [][3]int{{3, 2, 2}},
			Black: [][3]int{{1, 2, 5}, {1, 5, 2}, {2, 7, 7}},
		},
		{
			White: [][3]int{{1, 1, 1}, {1, 1, 2}, {1, 6, 1}},
			Black: [][3]int{{1, 2, 3}, {2, 5, 5}},
		},
		{
			White: [][3]int{{1, 0, 7}},
			Black: [][3]int{{1, 7, 0}},
		},
	}
	evaluators := []game.Evaluator{
		game.DefaultEvaluator(),
		{Variant: game.ExchangeTieBreak, Neighbourhood: 4},
		{Variant: game.MaterialOnly},
	}

	for i, layout := range layouts {
		board, err := game.NewBoard(layout)
		require.NoError(t, err)
		for _, evaluator := range evaluators {
			for depth := 1; depth <= 3; depth++ {
				for _, color := range []game.Color{game.White, game.Black} {
					m := NewMinimax(WithDepth(depth), WithEvaluator(evaluator))

					got, gotOk, _ := m.Search(board, color)
					want, wantOk := exhaustiveDecide(NewNode(board, color, evaluator), depth)

					require.Equal(t, wantOk, gotOk)
					require.Equal(t, want, got, "layout %d, %s evaluator, depth %d, %s to move", i, evaluator.Variant, depth, color)
				}
			}
		}
	}
}

func TestSearchPrunes(t *testing.T) {
	board, err := game.NewBoard(game.Layout{
		White: [][3]int{{1, 1, 1}, {1, 1, 2}, {1, 6, 1}},
		Black: [][3]int{{1, 2, 3}, {2, 5, 5}},
	})
	require.NoError(t, err)

	_, _, metric := NewMinimax(WithDepth(3), WithMetrics()).Search(board, game.White)

	require.Positive(t, metric.Prunes, "Ordered successors should allow cutoffs")
	require.Positive(t, metric.Nodes)
	require.Equal(t, "exchange", metric.Evaluator)
}

func TestNode(t *testing.T) {
	board, err := game.NewBoard(game.Layout{
		White: [][3]int{{1, 3, 3}},
		Black: [][3]int{{1, 4, 4}},
	})
	require.NoError(t, err)
	root := NewNode(board, game.White, game.DefaultEvaluator())

	t.Run("successors alternate the acting color", func(t *testing.T) {
		for _, child := range root.Successors(Max) {
			require.Equal(t, game.White, board.ColorAt(child.Action().From), "Max stage moves the root color")
		}
		for _, child := range root.Successors(Min) {
			require.Equal(t, game.Black, board.ColorAt(child.Action().From), "Min stage moves the opponent")
		}
	})

	t.Run("successors leave the parent board untouched", func(t *testing.T) {
		children := root.Successors(Max)

		require.Equal(t, game.Boom(game.Pos{X: 3, Y: 3}), children[0].Action())
		require.Equal(t, board, root.Board())
		require.Zero(t, children[0].Board().Count(game.Black), "Boom should clear both stacks")
		require.True(t, children[0].Cutoff())
	})

	t.Run("evaluation is from the root perspective", func(t *testing.T) {
		child := root.Successors(Min)[0]

		require.Equal(t, game.DefaultEvaluator().Evaluate(child.Board(), game.White), child.Evaluation())
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("applies the configured options", func(t *testing.T) {
		values := mockValues{}
		m, err := FromConfig(metrics.AgentConfig{Evaluator: "material", Neighbourhood: 4, Depth: 2, UseValues: true}, values)

		require.NoError(t, err)
		require.Equal(t, 2, m.Depth())
		require.Equal(t, game.Evaluator{Variant: game.MaterialOnly, Neighbourhood: 4}, m.Evaluator())
		require.NotNil(t, m.values)
	})

	t.Run("value table is ignored unless enabled", func(t *testing.T) {
		m, err := FromConfig(metrics.AgentConfig{}, mockValues{})

		require.NoError(t, err)
		require.Nil(t, m.values)
		require.Equal(t, game.DefaultEvaluator(), m.Evaluator())
	})

	t.Run("rejects unknown evaluators", func(t *testing.T) {
		_, err := FromConfig(metrics.AgentConfig{Evaluator: "greedy"}, nil)

		require.Error(t, err)
	})

	t.Run("rejects unsupported neighbourhoods", func(t *testing.T) {
		_, err := FromConfig(metrics.AgentConfig{Neighbourhood: 6}, nil)

		require.Error(t, err)
	})
}
