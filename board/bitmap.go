package board

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/daystram/snail/position"
)

// Bitmap is a set of squares, bit i set for square i.
type Bitmap uint64

const (
	maskFileA Bitmap = 0x_01_01_01_01_01_01_01_01
	maskFileH Bitmap = 0x_80_80_80_80_80_80_80_80

	maskRank1 Bitmap = 0x_00_00_00_00_00_00_00_FF
	maskRank4 Bitmap = 0x_00_00_00_00_FF_00_00_00
	maskRank5 Bitmap = 0x_00_00_00_FF_00_00_00_00
	maskRank8 Bitmap = 0x_FF_00_00_00_00_00_00_00

	maskLightSquares Bitmap = 0x_55_AA_55_AA_55_AA_55_AA
	maskDarkSquares  Bitmap = ^maskLightSquares
)

// BitmapOf returns a bitmap with the given squares set.
func BitmapOf(ps ...position.Pos) Bitmap {
	var bm Bitmap
	for _, p := range ps {
		bm |= maskCell[p]
	}
	return bm
}

func ShiftN(bm Bitmap) Bitmap {
	return bm << 8
}

func ShiftS(bm Bitmap) Bitmap {
	return bm >> 8
}

func ShiftE(bm Bitmap) Bitmap {
	return (bm &^ maskFileH) << 1
}

func ShiftW(bm Bitmap) Bitmap {
	return (bm &^ maskFileA) >> 1
}

func ShiftNE(bm Bitmap) Bitmap {
	return (bm &^ maskFileH) << 9
}

func ShiftNW(bm Bitmap) Bitmap {
	return (bm &^ maskFileA) << 7
}

func ShiftSE(bm Bitmap) Bitmap {
	return (bm &^ maskFileH) >> 7
}

func ShiftSW(bm Bitmap) Bitmap {
	return (bm &^ maskFileA) >> 9
}

func (bm *Bitmap) Set(pos position.Pos) {
	*bm |= maskCell[pos]
}

func (bm *Bitmap) Unset(pos position.Pos) {
	*bm &^= maskCell[pos]
}

// Toggle flips the square; used for moving a piece from one square to another in one step.
func (bm *Bitmap) Toggle(pos position.Pos) {
	*bm ^= maskCell[pos]
}

func (bm Bitmap) IsSet(pos position.Pos) bool {
	return bm&maskCell[pos] != 0
}

// LS1B returns the least significant set square. Undefined on an empty bitmap.
func (bm Bitmap) LS1B() position.Pos {
	return position.Pos(bits.TrailingZeros64(uint64(bm)))
}

// PopLS1B returns the least significant set square and the bitmap without it.
func (bm Bitmap) PopLS1B() (position.Pos, Bitmap) {
	return bm.LS1B(), bm & (bm - 1)
}

func (bm Bitmap) BitCount() int {
	return bits.OnesCount64(uint64(bm))
}

func (bm Bitmap) Dump(sym ...rune) string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			if bm.IsSet(position.NewPos(x, y)) {
				s := "#"
				if len(sym) == 1 {
					s = string(sym[0])
				}
				_, _ = builder.WriteString(fmt.Sprintf(" %s ", s))
			} else {
				_, _ = builder.WriteString(" . ")
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}
