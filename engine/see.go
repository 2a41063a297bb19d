package engine

import (
	"github.com/daystram/snail/board"
	"github.com/daystram/snail/position"
)

var seeValue = [6 + 1]int{
	board.PiecePawn:   100,
	board.PieceKnight: 300,
	board.PieceBishop: 300,
	board.PieceRook:   500,
	board.PieceQueen:  900,
	board.PieceKing:   15000,
}

// estimateGain is the material won by mv before any recapture.
func estimateGain(b *board.Board, mv board.Move) int {
	if mv.IsQuiet() {
		return 0
	}
	if mv.IsEnPassant() {
		return seeValue[board.PiecePawn]
	}
	victim, _ := b.PieceAt(mv.To())
	gain := seeValue[victim]
	if mv.IsPromote() {
		gain += seeValue[mv.Promote()] - seeValue[board.PiecePawn]
	}
	return gain
}

// SEE reports whether the exchange started by mv on its target square nets at least
// threshold for the side to move. No moves are made.
func SEE(b *board.Board, mv board.Move, threshold int) bool {
	from, to := mv.From(), mv.To()

	balance := estimateGain(b, mv) - threshold
	if balance < 0 {
		return false
	}

	victim := mv.Promote()
	if victim == board.PieceUnknown {
		victim, _ = b.PieceAt(from)
	}
	balance -= seeValue[victim]
	if balance >= 0 {
		return true
	}

	occupied := b.Occupied() &^ board.BitmapOf(from) | board.BitmapOf(to)
	if mv.IsEnPassant() && b.EnPassant() != position.NoPos {
		occupied.Unset(to - position.Pos(b.Turn().Forward()))
	}

	attackers := b.AllAttackersTo(to, occupied) & occupied
	diagonal := b.Pieces(board.PieceBishop) | b.Pieces(board.PieceQueen)
	straight := b.Pieces(board.PieceRook) | b.Pieces(board.PieceQueen)

	side := b.Turn().Opposite()
	for {
		own := attackers & b.SideBitmap(side)
		if own == 0 {
			break
		}

		var attacker board.Bitmap
		for victim = board.PiecePawn; victim <= board.PieceKing; victim++ {
			if attacker = own & b.Pieces(victim); attacker != 0 {
				break
			}
		}
		occupied.Unset(attacker.LS1B())

		if victim == board.PiecePawn || victim == board.PieceBishop || victim == board.PieceQueen {
			attackers |= board.BishopAttacks(to, occupied) & diagonal
		}
		if victim == board.PieceRook || victim == board.PieceQueen {
			attackers |= board.RookAttacks(to, occupied) & straight
		}
		attackers &= occupied

		side = side.Opposite()
		balance = -balance - 1 - seeValue[victim]
		if balance >= 0 {
			// a king cannot recapture into a defended square
			if victim == board.PieceKing && attackers&b.SideBitmap(side) != 0 {
				side = side.Opposite()
			}
			break
		}
	}

	return b.Turn() != side
}
