package searcher

import (
	"expendibots/game"
)

type mockNode struct {
	id       int
	score    float64
	cutoff   bool
	children []Node
}

func leaf(id int, score float64) *mockNode {
	return &mockNode{id: id, score: score}
}

func inner(id int, children ...Node) *mockNode {
	return &mockNode{id: id, children: children}
}

func (n *mockNode) Successors(stage Stage) []Node {
	return n.children
}

func (n *mockNode) Cutoff() bool {
	return n.cutoff
}

func (n *mockNode) Evaluation() game.Score {
	return game.Score{n.score}
}

// Action identifies the node by a boom at its id cell.
func (n *mockNode) Action() game.Action {
	return game.Boom(game.PosAt(n.id))
}

func (n *mockNode) Board() game.Board {
	var b game.Board
	b[n.id] = 1
	return b
}

type mockValues map[game.Board]float64

func (v mockValues) Get(board game.Board) (float64, bool) {
	value, ok := v[board]
	return value, ok
}

// minimax is the unpruned reference search.
func minimax(node Node, depth int, stage Stage) game.Score {
	if depth <= 0 || node.Cutoff() {
		return node.Evaluation()
	}
	children := node.Successors(stage)
	if len(children) == 0 {
		return node.Evaluation()
	}
	best := minimax(children[0], depth-1, stage.Next())
	for _, child := range children[1:] {
		score := minimax(child, depth-1, stage.Next())
		if stage == Max && best.Less(score) || stage == Min && score.Less(best) {
			best = score
		}
	}
	return best
}

func exhaustiveDecide(root Node, depth int) (game.Action, bool) {
	if root.Cutoff() {
		return game.Action{}, false
	}
	children := root.Successors(Max)
	if len(children) == 0 {
		return game.Action{}, false
	}
	best := minimax(children[0], depth-1, Min)
	action := children[0].Action()
	for _, child := range children[1:] {
		if score := minimax(child, depth-1, Min); best.Less(score) {
			best = score
			action = child.Action()
		}
	}
	return action, true
}
