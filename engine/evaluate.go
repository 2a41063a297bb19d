package engine

import (
	"github.com/daystram/snail/board"
	"github.com/daystram/snail/position"
)

// Evaluator scores a position from the side to move's point of view.
type Evaluator interface {
	Evaluate(b *board.Board) int
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(b *board.Board) int

func (f EvaluatorFunc) Evaluate(b *board.Board) int {
	return f(b)
}

const (
	phaseTotal = 24

	scoreTempoBonus = 10
)

var (
	scoreMaterialMG = [6 + 1]int{board.PiecePawn: 100, board.PieceKnight: 320, board.PieceBishop: 350, board.PieceRook: 500, board.PieceQueen: 900}
	scoreMaterialEG = [6 + 1]int{board.PiecePawn: 120, board.PieceKnight: 300, board.PieceBishop: 330, board.PieceRook: 530, board.PieceQueen: 950}
	phaseConstant   = [6 + 1]int{board.PieceKnight: 1, board.PieceBishop: 1, board.PieceRook: 2, board.PieceQueen: 4}

	scoreBishopPairMG, scoreBishopPairEG = 30, 50

	scoreDoubledMG, scoreDoubledEG   = -10, -20
	scoreIsolatedMG, scoreIsolatedEG = -10, -15
	scorePassedMG                    = [8]int{0, 5, 10, 20, 35, 60, 100, 0}
	scorePassedEG                    = [8]int{0, 10, 20, 35, 60, 100, 150, 0}
	scoreProtectedPassedMG           = 10
	scoreProtectedPassedEG           = 15

	// PST table taken from https://www.chessprogramming.org/Simplified_Evaluation_Function
	// Laid out as seen from White, a8 first; white squares are mirrored before lookup.
	scorePiecePositionMG = [6 + 1][64]int{
		board.PiecePawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			50, 50, 50, 50, 50, 50, 50, 50,
			10, 10, 20, 30, 30, 20, 10, 10,
			5, 5, 10, 25, 25, 10, 5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, -5, -10, 0, 0, -10, -5, 5,
			5, 10, 10, -20, -20, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		board.PieceKnight: {
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		board.PieceBishop: {
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		board.PieceRook: {
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, 10, 10, 10, 10, 5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		board.PieceQueen: {
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		board.PieceKing: {
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			20, 20, 0, 0, 0, 0, 20, 20,
			20, 30, 10, 0, 0, 10, 30, 20,
		},
	}
	scoreKingPositionEG = [64]int{
		-50, -40, -30, -20, -20, -30, -40, -50,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	}

	// squares ahead of a pawn on its own and adjacent files
	maskPassedSpan [2][64]board.Bitmap
	maskAdjacent   [8]board.Bitmap
	maskFile       [8]board.Bitmap
)

func init() {
	for x := position.Pos(0); x < board.Width; x++ {
		for y := position.Pos(0); y < board.Height; y++ {
			maskFile[x].Set(position.NewPos(x, y))
		}
	}
	for x := position.Pos(0); x < board.Width; x++ {
		if x > 0 {
			maskAdjacent[x] |= maskFile[x-1]
		}
		if x < board.Width-1 {
			maskAdjacent[x] |= maskFile[x+1]
		}
	}
	for pos := position.Pos(0); pos < board.TotalCells; pos++ {
		files := maskFile[pos.X()] | maskAdjacent[pos.X()]
		for sq := position.Pos(0); sq < board.TotalCells; sq++ {
			switch {
			case sq.Y() > pos.Y():
				maskPassedSpan[board.SideWhite][pos] |= files & board.BitmapOf(sq)
			case sq.Y() < pos.Y():
				maskPassedSpan[board.SideBlack][pos] |= files & board.BitmapOf(sq)
			}
		}
	}
}

// TaperedEvaluator blends middlegame and endgame scores by remaining material. Pawn
// structure terms are cached by pawn key.
type TaperedEvaluator struct {
	pawns *PawnCache
}

func NewTaperedEvaluator(pawnCacheSizeMB int) *TaperedEvaluator {
	return &TaperedEvaluator{pawns: NewPawnCache(pawnCacheSizeMB)}
}

// Clear drops cached pawn structure scores.
func (ev *TaperedEvaluator) Clear() {
	ev.pawns.Clear()
}

func (ev *TaperedEvaluator) Evaluate(b *board.Board) int {
	var mg, eg, phase int
	for _, s := range []board.Side{board.SideWhite, board.SideBlack} {
		sign := 1
		if s == board.SideBlack {
			sign = -1
		}
		for p := board.PiecePawn; p <= board.PieceKing; p++ {
			for bm := b.GetBitmap(s, p); bm != 0; {
				var pos position.Pos
				pos, bm = bm.PopLS1B()
				idx := pos
				if s == board.SideWhite {
					idx = pos.Mirror()
				}
				mg += sign * (scoreMaterialMG[p] + scorePiecePositionMG[p][idx])
				if p == board.PieceKing {
					eg += sign * scoreKingPositionEG[idx]
				} else {
					eg += sign * (scoreMaterialEG[p] + scorePiecePositionMG[p][idx])
				}
				phase += phaseConstant[p]
			}
		}
		if b.GetBitmap(s, board.PieceBishop).BitCount() >= 2 {
			mg += sign * scoreBishopPairMG
			eg += sign * scoreBishopPairEG
		}
	}

	pawnMG, pawnEG, ok := ev.pawns.Get(b.PawnHash())
	if !ok {
		pawnMG, pawnEG = evaluatePawns(b)
		ev.pawns.Set(b.PawnHash(), pawnMG, pawnEG)
	}
	mg += pawnMG
	eg += pawnEG

	phase = min(phase, phaseTotal)
	score := (mg*phase + eg*(phaseTotal-phase)) / phaseTotal
	if b.Turn() == board.SideBlack {
		score = -score
	}
	return score + scoreTempoBonus
}

// evaluatePawns scores pawn structure from White's point of view.
func evaluatePawns(b *board.Board) (int, int) {
	var mg, eg int
	for _, s := range []board.Side{board.SideWhite, board.SideBlack} {
		sign := 1
		if s == board.SideBlack {
			sign = -1
		}
		own, enemy := b.GetBitmap(s, board.PiecePawn), b.GetBitmap(s.Opposite(), board.PiecePawn)
		for x := position.Pos(0); x < board.Width; x++ {
			if n := (own & maskFile[x]).BitCount(); n > 1 {
				mg += sign * scoreDoubledMG * (n - 1)
				eg += sign * scoreDoubledEG * (n - 1)
			}
		}
		for bm := own; bm != 0; {
			var pos position.Pos
			pos, bm = bm.PopLS1B()
			if own&maskAdjacent[pos.X()] == 0 {
				mg += sign * scoreIsolatedMG
				eg += sign * scoreIsolatedEG
			}
			if enemy&maskPassedSpan[s][pos] != 0 {
				continue
			}
			rank := pos.Y()
			if s == board.SideBlack {
				rank = board.Height - 1 - rank
			}
			mg += sign * scorePassedMG[rank]
			eg += sign * scorePassedEG[rank]
			if board.PawnAttacks(s.Opposite(), pos)&own != 0 {
				mg += sign * scoreProtectedPassedMG
				eg += sign * scoreProtectedPassedEG
			}
		}
	}
	return mg, eg
}
