package engine

import (
	"fmt"
	"strings"

	"github.com/daystram/snail/board"
)

// PVTable is the triangular principal variation table. Row ply holds the best line
// found from ply onward, in columns ply to length[ply]-1.
type PVTable struct {
	moves  [MaxPly][MaxPly]board.Move
	length [MaxPly]int
}

func (t *PVTable) Clear() {
	*t = PVTable{}
}

func (t *PVTable) start(ply int) {
	t.length[ply] = ply
}

// update records mv at ply followed by the child line.
func (t *PVTable) update(ply int, mv board.Move) {
	t.moves[ply][ply] = mv
	next := ply + 1
	if next >= MaxPly {
		t.length[ply] = next
		return
	}
	for i := next; i < t.length[next]; i++ {
		t.moves[ply][i] = t.moves[next][i]
	}
	t.length[ply] = max(t.length[next], next)
}

// Line copies the root line.
func (t *PVTable) Line() PVLine {
	n := t.length[0]
	line := make(PVLine, n)
	copy(line, t.moves[0][:n])
	return line
}

type PVLine []board.Move

func (pvl PVLine) BestMove() board.Move {
	if len(pvl) == 0 {
		return board.NoMove
	}
	return pvl[0]
}

func (pvl PVLine) StringUCI() string {
	builder := strings.Builder{}
	for i, mv := range pvl {
		_, _ = builder.WriteString(mv.UCI())
		if i < len(pvl)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}

// String renders the line in move-numbered coordinate notation starting from b,
// marking checks, mates and draws.
func (pvl PVLine) String(b *board.Board) string {
	if b == nil || len(pvl) == 0 {
		return ""
	}
	builder := strings.Builder{}
	bb := b.Clone()
	fullMoveClock := bb.FullMoveClock()
	if bb.Turn() == board.SideBlack {
		_, _ = builder.WriteString(fmt.Sprintf("%d... ", fullMoveClock))
	}
	for i, mv := range pvl {
		turn := bb.Turn()
		if !bb.Apply(mv) {
			break
		}
		if turn == board.SideWhite {
			_, _ = builder.WriteString(fmt.Sprintf("%d. %s", fullMoveClock, mv))
		} else {
			_, _ = builder.WriteString(mv.String())
			fullMoveClock++
		}
		switch state := bb.State(); {
		case state.IsCheckmate():
			_, _ = builder.WriteRune('#')
		case state.IsCheck():
			_, _ = builder.WriteRune('+')
		case state.IsDraw():
			_, _ = builder.WriteRune('=')
		}
		if i < len(pvl)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}

// mateDistance converts a raw score into signed moves to mate. ok is false outside the
// mate range.
func mateDistance(score int) (int, bool) {
	switch {
	case score >= -Mate && score < -MateScore:
		return -(score + Mate) / 2, true
	case score > MateScore && score <= Mate:
		return (Mate-score)/2 + 1, true
	default:
		return 0, false
	}
}

// ScoreUCI renders the score as the UCI "cp" or "mate" token pair.
func (p Progress) ScoreUCI() string {
	if p.Mate {
		return fmt.Sprintf("mate %d", p.Score)
	}
	return fmt.Sprintf("cp %d", p.Score)
}

func formatScoreDebug(score int, mate bool) string {
	switch {
	case mate && score > 0:
		return fmt.Sprintf("#+%d", score)
	case mate:
		return fmt.Sprintf("#-%d", -score)
	case score > 0:
		return fmt.Sprintf("+%.2f", float64(score)/100)
	case score < 0:
		return fmt.Sprintf("%.2f", float64(score)/100)
	default:
		return "0"
	}
}
