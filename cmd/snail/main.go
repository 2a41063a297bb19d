package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/snail/board"
	"github.com/daystram/snail/uci"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	profile  = flag.Bool("profile", false, "serve pprof endpoint")
	logLevel = flag.String("log.level", "info", "log level written to stderr")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	perftDepth    = flag.Int("perft", 0, "run perft to the given depth")
	perftParallel = flag.Bool("perft.parallel", true, "search root moves concurrently in perft mode")

	stepRun = flag.Bool("step", false, "run step mode")

	searchRun      = flag.Bool("search", false, "run search mode")
	searchDepth    = flag.Int("search.depth", 0, "search depth limit in search mode")
	searchMovetime = flag.Duration("search.movetime", 5*time.Second, "time per move in search mode")
	searchSteps    = flag.Int("search.steps", 50, "full moves to play in search mode")

	magicsRun  = flag.Bool("magics", false, "search fresh magic multipliers and print them as Go source")
	magicsSeed = flag.Uint("magics.seed", 1, "seed of the magic search")
)

func main() {
	flag.Parse()

	logger := newLogger(*logLevel)
	if *profile {
		runProfiler(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := realMain(ctx, logger, flag.Args()); err != nil {
		logger.Error().Err(err).Msg("exiting")
		stop()
		os.Exit(exitErr)
	}
	stop()
	os.Exit(exitOK)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger()
}

func runProfiler(logger zerolog.Logger) {
	go func() {
		addr := "localhost:6060"
		logger.Info().Msgf("starting pprof endpoint: http://%s/debug/pprof", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Warn().Err(err).Msg("pprof endpoint stopped")
		}
	}()
}

func realMain(ctx context.Context, logger zerolog.Logger, args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	switch {
	case *movegenRun:
		return movegen(os.Stdout, fen, *movegenDraw)
	case *perftDepth > 0:
		return perft(os.Stdout, *perftDepth, fen, *perftParallel)
	case *stepRun:
		return step(os.Stdout, logger, 5000)
	case *searchRun:
		return search(ctx, os.Stdout, logger, fen, *searchSteps, *searchDepth, *searchMovetime)
	case *magicsRun:
		return magics(os.Stdout, uint32(*magicsSeed))
	}

	return uci.NewInterface(os.Stdin, os.Stdout, logger).Run(ctx)
}
