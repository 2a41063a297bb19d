package board

import (
	"github.com/daystram/snail/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height

	bishopIndexBits   = 9
	rookIndexBits     = 12
	bishopTableOffset = 0
	rookTableOffset   = 0x8000
	slidingTableSize  = rookTableOffset + int(TotalCells)*(1<<rookIndexBits)
)

var (
	maskCell [TotalCells]Bitmap
	maskFile [Width]Bitmap
	maskRank [Height]Bitmap

	knightAttacks [TotalCells]Bitmap
	kingAttacks   [TotalCells]Bitmap
	pawnAttacks   [2][TotalCells]Bitmap

	bishopMagics   [TotalCells]MagicEntry
	rookMagics     [TotalCells]MagicEntry
	slidingAttacks [slidingTableSize]Bitmap

	bishopDirections = [4][2]position.Pos{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirections   = [4][2]position.Pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

func init() {
	initMask()
	initLeaperAttacks()
	initSlidingAttacks()
}

func initMask() {
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		maskCell[pos] = 1 << pos
	}
	for i := position.Pos(0); i < Width; i++ {
		maskFile[i] = maskFileA << i
		maskRank[i] = maskRank1 << (8 * i)
	}
}

func initLeaperAttacks() {
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		cell := maskCell[pos]

		var knight Bitmap
		knight |= ShiftN(ShiftNE(cell)) | ShiftN(ShiftNW(cell))
		knight |= ShiftS(ShiftSE(cell)) | ShiftS(ShiftSW(cell))
		knight |= ShiftE(ShiftNE(cell)) | ShiftE(ShiftSE(cell))
		knight |= ShiftW(ShiftNW(cell)) | ShiftW(ShiftSW(cell))
		knightAttacks[pos] = knight

		kingAttacks[pos] = ShiftN(cell) | ShiftNE(cell) | ShiftE(cell) | ShiftSE(cell) |
			ShiftS(cell) | ShiftSW(cell) | ShiftW(cell) | ShiftNW(cell)

		pawnAttacks[SideWhite][pos] = ShiftNE(cell) | ShiftNW(cell)
		pawnAttacks[SideBlack][pos] = ShiftSE(cell) | ShiftSW(cell)
	}
}

func initSlidingAttacks() {
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		bishopMagics[pos] = newMagicEntry(PieceBishop, pos, bishopMagicNumbers[pos])
		rookMagics[pos] = newMagicEntry(PieceRook, pos, rookMagicNumbers[pos])
		for _, entry := range []MagicEntry{bishopMagics[pos], rookMagics[pos]} {
			piece := PieceBishop
			if entry.Shift == 64-rookIndexBits {
				piece = PieceRook
			}
			forEachSubset(entry.Mask, func(occupied Bitmap) {
				slidingAttacks[entry.Index(occupied)] = rayAttacks(piece, pos, occupied)
			})
		}
	}
}

func KnightAttacks(pos position.Pos) Bitmap {
	return knightAttacks[pos]
}

func KingAttacks(pos position.Pos) Bitmap {
	return kingAttacks[pos]
}

// PawnAttacks returns the squares a pawn of side s on pos attacks.
func PawnAttacks(s Side, pos position.Pos) Bitmap {
	return pawnAttacks[s][pos]
}

func BishopAttacks(pos position.Pos, occupied Bitmap) Bitmap {
	return slidingAttacks[bishopMagics[pos].Index(occupied)]
}

func RookAttacks(pos position.Pos, occupied Bitmap) Bitmap {
	return slidingAttacks[rookMagics[pos].Index(occupied)]
}

func QueenAttacks(pos position.Pos, occupied Bitmap) Bitmap {
	return BishopAttacks(pos, occupied) | RookAttacks(pos, occupied)
}

// rayAttacks walks each direction until the board edge or the first blocker, blocker included.
func rayAttacks(p Piece, pos position.Pos, occupied Bitmap) Bitmap {
	var bm Bitmap
	for _, d := range slidingDirections(p) {
		for x, y := pos.X()+d[0], pos.Y()+d[1]; onBoard(x, y); x, y = x+d[0], y+d[1] {
			sq := position.NewPos(x, y)
			bm |= maskCell[sq]
			if occupied.IsSet(sq) {
				break
			}
		}
	}
	return bm
}

// relevantMask is the empty-board ray set minus the last square of each ray.
func relevantMask(p Piece, pos position.Pos) Bitmap {
	var bm Bitmap
	for _, d := range slidingDirections(p) {
		for x, y := pos.X()+d[0], pos.Y()+d[1]; onBoard(x+d[0], y+d[1]); x, y = x+d[0], y+d[1] {
			bm |= maskCell[position.NewPos(x, y)]
		}
	}
	return bm
}

func slidingDirections(p Piece) [4][2]position.Pos {
	if p == PieceRook {
		return rookDirections
	}
	return bishopDirections
}

func onBoard(x, y position.Pos) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// forEachSubset visits every subset of mask, the empty set included.
func forEachSubset(mask Bitmap, f func(Bitmap)) {
	var sub Bitmap
	for {
		f(sub)
		sub = (sub - mask) & mask
		if sub == 0 {
			return
		}
	}
}
