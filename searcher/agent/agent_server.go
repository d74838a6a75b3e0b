package agent

import (
	"encoding/json"
	"net/http"

	"expendibots/game"
	"expendibots/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// FindMoveRequest is the body of POST /findmove.
type FindMoveRequest struct {
	Board game.Board `json:"board"`
	Color string     `json:"color"`
}

// NewServer returns the agent HTTP handler. Each request runs a fresh
// searcher built from options. The chosen action is answered in the wire
// format, and a pass with 204 No Content.
func NewServer(options ...searcher.Option) http.Handler {
	options = append(options[:len(options):len(options)], searcher.WithMetrics())

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/findmove", func(w http.ResponseWriter, r *http.Request) {
		var payload FindMoveRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		color, err := game.ParseColor(payload.Color)
		if err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}

		m := searcher.NewMinimax(options...)
		action, ok, metric := m.Search(payload.Board, color)
		log.Debug().Msgf("findmove for %s searched %d nodes in %s", color, metric.Nodes, metric.Duration)
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(action); err != nil {
			log.Error().Err(err).Msg("failed to encode action")
		}
	})

	return r
}

// StartAgentServer serves an agent on addr until the listener fails.
func StartAgentServer(addr string, options ...searcher.Option) error {
	log.Info().Msgf("starting agent server on %s ...", addr)
	return http.ListenAndServe(addr, NewServer(options...))
}
