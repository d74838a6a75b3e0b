package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"expendibots/experiments"
	"expendibots/experiments/metrics"
	"expendibots/game"
	"expendibots/meta"
	"expendibots/searcher"
	"expendibots/searcher/agent"
	"expendibots/trainer"
	"expendibots/valuetable"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	games := flag.Int("games", 1000, "Number of self-play games")
	workers := flag.Int("workers", 4, "Number of games played at once")
	depth := flag.Int("depth", meta.SEARCH_DEPTH, "Search depth in plies")
	eval := flag.String("eval", game.ExchangeDominant.String(), "Evaluator variant: exchange, tiebreak or material")
	neighbourhood := flag.Int("neighbourhood", 8, "Adjacency used for blast components: 4 or 8")
	values := flag.Bool("values", false, "Short-circuit search on confident value table entries")
	lr := flag.Float64("lr", meta.LEARNING_RATE, "Learning rate of the value tables")
	maxMoves := flag.Int("max-moves", meta.MAX_MOVES, "Safety cap on plies per game")
	evalGames := flag.Int("eval-games", 0, "Games of the trained white agent against a random agent after training")
	out := flag.String("out", "experiments", "Directory for run records")
	serve := flag.String("serve", "", "Serve an agent on this address instead of training")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	logLevel, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(logLevel)

	config := metrics.AgentConfig{
		Evaluator:     *eval,
		Neighbourhood: *neighbourhood,
		Depth:         *depth,
		UseValues:     *values,
		LearningRate:  *lr,
	}

	if *serve != "" {
		m, err := searcher.FromConfig(config, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid agent config")
		}
		options := []searcher.Option{searcher.WithDepth(m.Depth()), searcher.WithEvaluator(m.Evaluator())}
		if err := agent.StartAgentServer(*serve, options...); err != nil {
			log.Fatal().Err(err).Msg("agent server stopped")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tr, err := experiments.RunSelfPlay(ctx, *out, "self_play", trainer.Config{
		White:    config,
		Black:    config,
		MaxMoves: *maxMoves,
		Workers:  *workers,
	}, *games, nil, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	if *evalGames > 0 {
		trained := config
		trained.ID = 1
		trained.UseValues = true
		random := metrics.AgentConfig{ID: 2, Random: true}
		_, err := experiments.RunMatch(ctx, *out, experiments.Match{
			Name:     "trained_vs_random",
			Configs:  []metrics.AgentConfig{trained, random},
			MatchUps: [][2]metrics.AgentConfig{{trained, random}},
			Games:    *evalGames,
			MaxMoves: *maxMoves,
			Tables: map[experiments.TableKey]*valuetable.Table{
				{ID: trained.ID, Color: game.White}: tr.Values(game.White),
				{ID: trained.ID, Color: game.Black}: tr.Values(game.Black),
			},
		})
		if err != nil {
			log.Fatal().Err(err).Msg("evaluation failed")
		}
	}
}
