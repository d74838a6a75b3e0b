package searcher

import (
	"expendibots/game"
)

type boardNode struct {
	board     game.Board
	action    game.Action
	root      game.Color
	evaluator game.Evaluator
}

// NewNode returns the search root for color to move on board.
func NewNode(board game.Board, color game.Color, evaluator game.Evaluator) Node {
	return &boardNode{board: board, root: color, evaluator: evaluator}
}

func (n *boardNode) Successors(stage Stage) []Node {
	mover := n.root
	if stage == Min {
		mover = n.root.Opponent()
	}

	actions := n.board.Actions(mover)
	children := make([]Node, len(actions))
	for i, action := range actions {
		children[i] = &boardNode{
			board:     n.board.Apply(action),
			action:    action,
			root:      n.root,
			evaluator: n.evaluator,
		}
	}
	return children
}

func (n *boardNode) Cutoff() bool {
	return n.board.Count(game.White) == 0 || n.board.Count(game.Black) == 0
}

func (n *boardNode) Evaluation() game.Score {
	return n.evaluator.Evaluate(n.board, n.root)
}

func (n *boardNode) Action() game.Action {
	return n.action
}

func (n *boardNode) Board() game.Board {
	return n.board
}
