package agent

import (
	"context"

	"expendibots/game"
	"expendibots/searcher"
)

// Search picks its actions with a minimax search.
type Search struct {
	color   game.Color
	board   game.Board
	minimax *searcher.Minimax
}

func NewSearch(color game.Color, board game.Board, minimax *searcher.Minimax) *Search {
	return &Search{color: color, board: board, minimax: minimax}
}

func (a *Search) Color() game.Color {
	return a.color
}

func (a *Search) Board() game.Board {
	return a.board
}

func (a *Search) Action(ctx context.Context) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}
	action, ok, metric := a.minimax.Search(a.board, a.color)
	return Decision{Action: action, Pass: !ok, Metric: metric}, nil
}

func (a *Search) Update(action game.Action) {
	a.board = a.board.Apply(action)
}
