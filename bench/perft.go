package bench

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/snail/board"
)

// Stats counts the leaf positions of a perft run by the kind of move that reached them.
type Stats struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (s *Stats) record(mv board.Move, check bool) {
	s.Nodes++
	if mv.IsCapture() {
		s.Captures++
	}
	if mv.IsEnPassant() {
		s.EnPassants++
	}
	if mv.IsCastle() {
		s.Castles++
	}
	if mv.IsPromote() {
		s.Promotions++
	}
	if check {
		s.Checks++
	}
}

func (s *Stats) add(o Stats) {
	s.Nodes += o.Nodes
	s.Captures += o.Captures
	s.EnPassants += o.EnPassants
	s.Castles += o.Castles
	s.Promotions += o.Promotions
	s.Checks += o.Checks
}

// Perft counts the legal move tree of fen to depth, writing the per root move
// breakdown (when verbose) and a summary line to out.
func Perft(depth int, fen string, parallel, verbose bool, out chan string) (Stats, error) {
	var stats Stats
	b, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return stats, err
	}

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerft
	}

	start := time.Now()
	run(b, depth, true, verbose, out, &stats)
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			depth, stats.Nodes, int(float64(stats.Nodes)/elapsed.Seconds()), stats.Captures, stats.EnPassants,
			stats.Castles, stats.Promotions, stats.Checks, elapsed.Seconds())

	return stats, nil
}

type perftFunc func(b *board.Board, d int, root, verbose bool, out chan string, stats *Stats) uint64

func runPerft(b *board.Board, d int, root, verbose bool, out chan string, stats *Stats) uint64 {
	if d == 0 {
		stats.Nodes++
		return 1
	}

	var ml board.MoveList
	b.GenerateMoves(&ml, false)

	var sum uint64
	for i := 0; i < ml.Len(); i++ {
		mv := ml.At(i)
		if !b.Apply(mv) {
			continue
		}
		var child uint64
		if d == 1 {
			child = 1
			stats.record(mv, b.InCheck())
		} else {
			child = runPerft(b, d-1, false, verbose, out, stats)
		}
		b.Undo()
		if verbose && root {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

// runPerftParallel searches each root move on its own copy of the board.
func runPerftParallel(b *board.Board, d int, root, verbose bool, out chan string, stats *Stats) uint64 {
	if d <= 1 {
		return runPerft(b, d, root, verbose, out, stats)
	}

	var ml board.MoveList
	b.GenerateMoves(&ml, false)

	var (
		sum uint64
		mu  sync.Mutex
		wg  sync.WaitGroup
	)
	for _, mv := range ml.Moves() {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			bb := b.Clone()
			if !bb.Apply(mv) {
				return
			}
			var local Stats
			child := runPerft(bb, d-1, false, verbose, out, &local)
			if verbose && root {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
			}

			mu.Lock()
			defer mu.Unlock()
			stats.add(local)
			sum += child
		}()
	}
	wg.Wait()
	return sum
}
