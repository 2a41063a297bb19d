package board

import (
	"github.com/daystram/snail/position"
)

// GenerateMoves appends the pseudo-legal moves of the side to move to ml. King moves come
// first, then pawns, knights, rooks, bishops and queens. In double check only king moves
// are produced. With capturesOnly, destinations are limited to enemy pieces, plus en
// passant; castling and quiet pushes, promotions included, are skipped.
func (b *Board) GenerateMoves(ml *MoveList, capturesOnly bool) {
	us, them := b.turn, b.turn.Opposite()
	own, enemy := b.sides[us], b.sides[them]
	occupied := own | enemy
	targets := ^own
	if capturesOnly {
		targets = enemy
	}

	var checkers int
	for bm := b.GetBitmap(us, PieceKing); bm != 0; {
		var from position.Pos
		from, bm = bm.PopLS1B()
		checkers = b.AttackersTo(from, them).BitCount()
		addTargets(ml, from, kingAttacks[from]&targets, enemy)
		if capturesOnly || checkers != 0 {
			continue
		}
		for _, kingSide := range []bool{true, false} {
			dir := castleDirectionFor(us, kingSide)
			if !b.castleRights.IsAllowed(dir) || maskCastlePath[dir]&occupied != 0 {
				continue
			}
			if from != posCastling[dir][0] || !b.GetBitmap(us, PieceRook).IsSet(posCastling[dir][3]) {
				continue
			}
			flag := MoveFlagCastleQueen
			if kingSide {
				flag = MoveFlagCastleKing
			}
			ml.Add(NewMove(from, posCastling[dir][2], flag))
		}
	}
	if checkers > 1 {
		return
	}

	b.generatePawnMoves(ml, capturesOnly)

	for bm := b.GetBitmap(us, PieceKnight); bm != 0; {
		var from position.Pos
		from, bm = bm.PopLS1B()
		addTargets(ml, from, knightAttacks[from]&targets, enemy)
	}
	for bm := b.GetBitmap(us, PieceRook); bm != 0; {
		var from position.Pos
		from, bm = bm.PopLS1B()
		addTargets(ml, from, RookAttacks(from, occupied)&targets, enemy)
	}
	for bm := b.GetBitmap(us, PieceBishop); bm != 0; {
		var from position.Pos
		from, bm = bm.PopLS1B()
		addTargets(ml, from, BishopAttacks(from, occupied)&targets, enemy)
	}
	for bm := b.GetBitmap(us, PieceQueen); bm != 0; {
		var from position.Pos
		from, bm = bm.PopLS1B()
		addTargets(ml, from, QueenAttacks(from, occupied)&targets, enemy)
	}
}

func (b *Board) generatePawnMoves(ml *MoveList, capturesOnly bool) {
	us, them := b.turn, b.turn.Opposite()
	enemy := b.sides[them]
	pawns := b.GetBitmap(us, PiecePawn)
	promoteRank := maskRank8
	if us == SideBlack {
		promoteRank = maskRank1
	}

	for bm := pawns; bm != 0; {
		var from position.Pos
		from, bm = bm.PopLS1B()
		for att := pawnAttacks[us][from] & enemy; att != 0; {
			var to position.Pos
			to, att = att.PopLS1B()
			if promoteRank.IsSet(to) {
				addPromotions(ml, from, to, true)
			} else {
				ml.Add(NewMove(from, to, MoveFlagCapture))
			}
		}
		if b.enPassant != position.NoPos && pawnAttacks[us][from].IsSet(b.enPassant) {
			ml.Add(NewMove(from, b.enPassant, MoveFlagEnPassant))
		}
	}

	if capturesOnly {
		return
	}
	empty := ^b.Occupied()
	var single, double Bitmap
	if us == SideWhite {
		single = ShiftN(pawns) & empty
		double = ShiftN(single) & empty & maskRank4
	} else {
		single = ShiftS(pawns) & empty
		double = ShiftS(single) & empty & maskRank5
	}
	forward := position.Pos(us.Forward())
	for single != 0 {
		var to position.Pos
		to, single = single.PopLS1B()
		if promoteRank.IsSet(to) {
			addPromotions(ml, to-forward, to, false)
		} else {
			ml.Add(NewMove(to-forward, to, MoveFlagQuiet))
		}
	}
	for double != 0 {
		var to position.Pos
		to, double = double.PopLS1B()
		ml.Add(NewMove(to-2*forward, to, MoveFlagDoublePush))
	}
}

func addTargets(ml *MoveList, from position.Pos, targets, enemy Bitmap) {
	for targets != 0 {
		var to position.Pos
		to, targets = targets.PopLS1B()
		if enemy.IsSet(to) {
			ml.Add(NewMove(from, to, MoveFlagCapture))
		} else {
			ml.Add(NewMove(from, to, MoveFlagQuiet))
		}
	}
}

func addPromotions(ml *MoveList, from, to position.Pos, capture bool) {
	for _, p := range PawnPromoteCandidates {
		ml.Add(NewMove(from, to, promoteFlag(p, capture)))
	}
}

// GenerateLegalMoves returns the fully legal moves of the side to move.
func (b *Board) GenerateLegalMoves() []Move {
	var ml MoveList
	b.GenerateMoves(&ml, false)
	legal := make([]Move, 0, ml.Len())
	for _, mv := range ml.Moves() {
		if b.Apply(mv) {
			b.Undo()
			legal = append(legal, mv)
		}
	}
	return legal
}
