package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/snail/board"
)

// step plays random legal moves from the starting position, timing the board primitives.
func step(w io.Writer, logger zerolog.Logger, steps int) error {
	var (
		timesGenerateMoves []time.Duration
		timesApply         []time.Duration
		timesState         []time.Duration
	)
	b, err := board.NewBoard()
	if err != nil {
		return err
	}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < steps; i++ {
		t1 := time.Now()
		mvs := b.GenerateLegalMoves()
		timesGenerateMoves = append(timesGenerateMoves, time.Since(t1))
		if len(mvs) == 0 {
			return fmt.Errorf("unexpected move exhaustion: state=%s", b.State())
		}
		mv := mvs[r.Intn(len(mvs))]
		turn := b.Turn()

		t1 = time.Now()
		b.Apply(mv)
		timesApply = append(timesApply, time.Since(t1))

		t1 = time.Now()
		st := b.State()
		timesState = append(timesState, time.Since(t1))

		fmt.Fprintf(w, "\n===== [#%d] %s: %s\n", i/2+1, turn, mv)
		fmt.Fprintln(w, b.Draw())
		fmt.Fprintln(w, b.FEN())
		if !st.IsRunning() {
			break
		}
	}

	avg := func(ds []time.Duration) time.Duration {
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	logger.Info().
		Stringer("state", b.State()).
		Dur("genmv", avg(timesGenerateMoves)).
		Dur("apply", avg(timesApply)).
		Dur("state_check", avg(timesState)).
		Msg("step finished")
	return nil
}
