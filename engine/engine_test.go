package engine

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"expendibots/game"
	"expendibots/searcher"
	"expendibots/searcher/agent"

	"github.com/stretchr/testify/require"
)

var _ agent.Agent = (*Remote)(nil)

type scriptedAgent struct {
	color     game.Color
	board     game.Board
	decisions []agent.Decision
	err       error
}

func (a *scriptedAgent) Color() game.Color {
	return a.color
}

func (a *scriptedAgent) Board() game.Board {
	return a.board
}

func (a *scriptedAgent) Action(ctx context.Context) (agent.Decision, error) {
	if a.err != nil {
		return agent.Decision{}, a.err
	}
	if len(a.decisions) == 0 {
		return agent.Decision{Pass: true}, nil
	}
	d := a.decisions[0]
	a.decisions = a.decisions[1:]
	return d, nil
}

func (a *scriptedAgent) Update(action game.Action) {
	a.board = a.board.Apply(action)
}

type recorder struct {
	plies []Ply
}

func (r *recorder) Observe(ply Ply) {
	r.plies = append(r.plies, ply)
}

func mustBoard(t *testing.T, layout game.Layout) game.Board {
	t.Helper()
	b, err := game.NewBoard(layout)
	require.NoError(t, err)
	return b
}

func TestReferee(t *testing.T) {
	t.Run("caps at the move limit", func(t *testing.T) {
		r := NewReferee(2, 0)
		r.Start()

		r.Tick()
		over, _ := r.GameOver(game.StandardBoard())
		require.False(t, over)

		r.Tick()
		over, winner := r.GameOver(game.StandardBoard())
		require.True(t, over)
		require.Equal(t, game.None, winner, "Capped game has no winner")
	})

	t.Run("caps at the time limit", func(t *testing.T) {
		r := NewReferee(0, time.Nanosecond)
		r.Start()
		time.Sleep(time.Millisecond)

		require.True(t, r.Capped())
	})

	t.Run("wiped out color loses", func(t *testing.T) {
		r := NewReferee(0, 0)
		r.Start()

		over, winner := r.GameOver(mustBoard(t, game.Layout{Black: [][3]int{{1, 2, 2}}}))

		require.True(t, over)
		require.Equal(t, game.Black, winner)
	})

	t.Run("unbounded referee never caps", func(t *testing.T) {
		r := NewReferee(0, 0)
		r.Start()
		for i := 0; i < 1000; i++ {
			r.Tick()
		}

		require.False(t, r.Capped())
	})
}

func TestLocal(t *testing.T) {
	board := mustBoard(t, game.Layout{
		White: [][3]int{{1, 3, 3}, {1, 0, 0}},
		Black: [][3]int{{2, 4, 4}},
	})

	t.Run("boom that wipes out the opponent wins", func(t *testing.T) {
		white := &scriptedAgent{color: game.White, board: board, decisions: []agent.Decision{{Action: game.Boom(game.Pos{X: 3, Y: 3})}}}
		black := &scriptedAgent{color: game.Black, board: board}
		rec := &recorder{}

		winner, gameMetric, moveMetrics, err := NewLocal(white, black, board, NewReferee(10, 0), rec).Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.White, winner)
		require.Equal(t, "white", gameMetric.Winner)
		require.Equal(t, 1, gameMetric.TotalMoves)
		require.False(t, gameMetric.Capped)
		require.Len(t, moveMetrics, 1)
		require.Equal(t, "BOOM at (3, 3).", moveMetrics[0].Action)
		require.Len(t, rec.plies, 1)
		require.True(t, rec.plies[0].Over)
		require.Equal(t, white.Board(), black.Board(), "Both agents should track the same board")
	})

	t.Run("two passes in a row are a draw", func(t *testing.T) {
		white := &scriptedAgent{color: game.White, board: board}
		black := &scriptedAgent{color: game.Black, board: board}

		winner, gameMetric, moveMetrics, err := NewLocal(white, black, board, NewReferee(10, 0)).Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.None, winner)
		require.Equal(t, 2, gameMetric.TotalMoves)
		require.False(t, gameMetric.Capped)
		require.True(t, moveMetrics[1].Pass)
	})

	t.Run("illegal action is an error", func(t *testing.T) {
		white := &scriptedAgent{color: game.White, board: board, decisions: []agent.Decision{{Action: game.Boom(game.Pos{X: 4, Y: 4})}}}
		black := &scriptedAgent{color: game.Black, board: board}

		_, _, _, err := NewLocal(white, black, board, nil).Run(context.Background())

		require.ErrorIs(t, err, game.ErrIllegalAction)
		require.Equal(t, board, white.Board(), "Rejected action should not reach the agents")
	})

	t.Run("agent failure is an error", func(t *testing.T) {
		failure := errors.New("unplugged")
		white := &scriptedAgent{color: game.White, board: board, err: failure}
		black := &scriptedAgent{color: game.Black, board: board}

		_, _, _, err := NewLocal(white, black, board, nil).Run(context.Background())

		require.ErrorIs(t, err, failure)
	})

	t.Run("a game runs once", func(t *testing.T) {
		white := &scriptedAgent{color: game.White, board: board}
		black := &scriptedAgent{color: game.Black, board: board}
		e := NewLocal(white, black, board, nil)

		_, _, _, err := e.Run(context.Background())
		require.NoError(t, err)
		_, _, _, err = e.Run(context.Background())
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("move cap ends a game without a winner", func(t *testing.T) {
		start := game.StandardBoard()
		white := agent.NewRandom(game.White, start, 1)
		black := agent.NewRandom(game.Black, start, 2)
		rec := &recorder{}

		winner, gameMetric, moveMetrics, err := NewLocal(white, black, start, NewReferee(50, 0), rec).Run(context.Background())

		require.NoError(t, err)
		require.LessOrEqual(t, gameMetric.TotalMoves, 50)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Len(t, rec.plies, gameMetric.TotalMoves)
		if gameMetric.Capped {
			require.Equal(t, game.None, winner)
			require.Equal(t, 50, gameMetric.TotalMoves)
		}
	})

	t.Run("rejects agents of the same color", func(t *testing.T) {
		white := &scriptedAgent{color: game.White, board: board}
		other := &scriptedAgent{color: game.White, board: board}

		require.Panics(t, func() { NewLocal(white, other, board, nil) })
	})

	t.Run("rejects agents tracking another board", func(t *testing.T) {
		white := &scriptedAgent{color: game.White, board: board}
		black := &scriptedAgent{color: game.Black, board: game.StandardBoard()}

		require.Panics(t, func() { NewLocal(white, black, board, nil) })
	})
}

func TestRemote(t *testing.T) {
	server := httptest.NewServer(agent.NewServer(searcher.WithDepth(1)))
	defer server.Close()

	t.Run("asks the server for an action", func(t *testing.T) {
		board := mustBoard(t, game.Layout{
			White: [][3]int{{1, 3, 3}, {1, 0, 0}},
			Black: [][3]int{{2, 4, 4}},
		})
		r := NewRemote(server.URL, game.White, board)

		decision, err := r.Action(context.Background())

		require.NoError(t, err)
		require.Equal(t, game.Boom(game.Pos{X: 3, Y: 3}), decision.Action)
	})

	t.Run("maps no content to a pass", func(t *testing.T) {
		r := NewRemote(server.URL, game.Black, mustBoard(t, game.Layout{White: [][3]int{{1, 0, 0}}}))

		decision, err := r.Action(context.Background())

		require.NoError(t, err)
		require.True(t, decision.Pass)
	})

	t.Run("reports server errors", func(t *testing.T) {
		r := NewRemote(server.URL, game.None, game.StandardBoard())

		_, err := r.Action(context.Background())

		require.ErrorContains(t, err, "status 400")
	})

	t.Run("plays a full game against a local agent", func(t *testing.T) {
		start := game.StandardBoard()
		white := NewRemote(server.URL, game.White, start)
		black := agent.NewRandom(game.Black, start, 3)

		_, gameMetric, _, err := NewLocal(white, black, start, NewReferee(6, 0)).Run(context.Background())

		require.NoError(t, err)
		require.Equal(t, 6, gameMetric.TotalMoves)
	})
}
