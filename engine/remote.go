package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"expendibots/game"
	"expendibots/searcher/agent"
)

// Remote is an agent whose actions are chosen by an agent server.
type Remote struct {
	color  game.Color
	board  game.Board
	url    string
	client *http.Client
}

func NewRemote(url string, color game.Color, board game.Board) *Remote {
	return &Remote{color: color, board: board, url: url, client: http.DefaultClient}
}

func (r *Remote) Color() game.Color {
	return r.color
}

func (r *Remote) Board() game.Board {
	return r.board
}

// Action posts the tracked board to the server's /findmove endpoint.
func (r *Remote) Action(ctx context.Context) (agent.Decision, error) {
	body, err := json.Marshal(agent.FindMoveRequest{Board: r.board, Color: r.color.String()})
	if err != nil {
		return agent.Decision{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url+"/findmove", bytes.NewReader(body))
	if err != nil {
		return agent.Decision{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return agent.Decision{}, fmt.Errorf("failed to reach agent at %s: %w", r.url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return agent.Decision{Pass: true}, nil
	case http.StatusOK:
		var action game.Action
		if err := json.NewDecoder(resp.Body).Decode(&action); err != nil {
			return agent.Decision{}, fmt.Errorf("failed to decode action: %w", err)
		}
		return agent.Decision{Action: action}, nil
	}
	out, _ := io.ReadAll(resp.Body)
	return agent.Decision{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
}

func (r *Remote) Update(action game.Action) {
	r.board = r.board.Apply(action)
}
