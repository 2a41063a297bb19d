package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/snail/board"
	"github.com/daystram/snail/book"
	"github.com/daystram/snail/engine"
)

// search lets the engine play the side to move of fen against a random mover.
func search(ctx context.Context, w io.Writer, logger zerolog.Logger, fen string, steps, depth int, movetime time.Duration) error {
	e := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithBook(book.New()),
	)
	if err := e.LoadFEN(fen); err != nil {
		return err
	}
	b := e.Board()
	fmt.Fprintln(w, b.Draw())
	fmt.Fprintln(w, b.FEN())

	cfg := engine.ClockConfig{Movetime: movetime}
	if depth > 0 {
		cfg = engine.ClockConfig{Depth: depth}
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	playingSide := b.Turn()

	var history []string
	for ply := 0; ply < 2*steps; ply++ {
		b = e.Board()
		if !b.State().IsRunning() {
			break
		}

		var mv board.Move
		if b.Turn() == playingSide {
			res, err := e.FindBestMove(ctx, cfg)
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			mv = res.BestMove()
			hits, misses, writes := e.TranspositionStats()
			logger.Info().
				Str("move", mv.UCI()).
				Int("depth", res.Depth).
				Int("score", res.Score).
				Str("opening", res.Opening).
				Int("tt_hits", hits).
				Int("tt_misses", misses).
				Int("tt_writes", writes).
				Msg("engine move")
		} else {
			mvs := b.GenerateLegalMoves()
			mv = mvs[r.Intn(len(mvs))]
		}
		if !e.MakeMove(mv) {
			return fmt.Errorf("engine refused move %s", mv)
		}
		history = append(history, mv.UCI())

		b = e.Board()
		fmt.Fprintf(w, "\n>>> %s: %s\n", b.Turn().Opposite(), mv)
		fmt.Fprintln(w, b.FEN())
		fmt.Fprintln(w, b.Draw())
	}

	state := e.Board().State()
	logger.Info().Stringer("state", state).Str("result", state.Result()).Msg("game ended")
	fmt.Fprintln(w, e.Board().FEN())
	fmt.Fprintln(w, strings.Join(history, " "))
	return nil
}
