package board

import "github.com/daystram/snail/position"

var (
	zobristConstantPiece        [2][6 + 1][TotalCells]uint64
	zobristConstantCastleRights [16]uint64
	zobristConstantEnPassant    [Width]uint64
	zobristConstantSideBlack    uint64

	zobristConstantPawn [2][TotalCells]uint32
)

func init() {
	initZobrist(NewPseudoRand(DefaultSeed))
}

func initZobrist(r *PseudoRand) {
	for _, s := range []Side{SideWhite, SideBlack} {
		for p := PiecePawn; p <= PieceKing; p++ {
			for pos := position.Pos(0); pos < TotalCells; pos++ {
				zobristConstantPiece[s][p][pos] = r.Uint64()
			}
		}
	}
	for i := range zobristConstantCastleRights {
		zobristConstantCastleRights[i] = r.Uint64()
	}
	for x := range zobristConstantEnPassant {
		zobristConstantEnPassant[x] = r.Uint64()
	}
	zobristConstantSideBlack = r.Uint64()
	for _, s := range []Side{SideWhite, SideBlack} {
		for pos := position.Pos(0); pos < TotalCells; pos++ {
			zobristConstantPawn[s][pos] = r.Uint32()
		}
	}
}

// ComputeHash derives the position key from scratch. Incremental updates in Apply must agree with it.
func (b *Board) ComputeHash() uint64 {
	var h uint64
	for _, s := range []Side{SideWhite, SideBlack} {
		for p := PiecePawn; p <= PieceKing; p++ {
			for bm := b.GetBitmap(s, p); bm != 0; {
				var pos position.Pos
				pos, bm = bm.PopLS1B()
				h ^= zobristConstantPiece[s][p][pos]
			}
		}
	}
	h ^= zobristConstantCastleRights[b.castleRights]
	if b.enPassant != position.NoPos {
		h ^= zobristConstantEnPassant[b.enPassant.X()]
	}
	if b.turn == SideBlack {
		h ^= zobristConstantSideBlack
	}
	return h
}

// ComputePawnHash derives the pawn-structure key from scratch.
func (b *Board) ComputePawnHash() uint32 {
	var h uint32
	for _, s := range []Side{SideWhite, SideBlack} {
		for bm := b.GetBitmap(s, PiecePawn); bm != 0; {
			var pos position.Pos
			pos, bm = bm.PopLS1B()
			h ^= zobristConstantPawn[s][pos]
		}
	}
	return h
}
