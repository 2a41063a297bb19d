package board

import "github.com/daystram/snail/position"

type CastleDirection uint8

const (
	CastleDirectionWhiteRight CastleDirection = iota
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// CastleRights packs the four castling permissions: WK=1, WQ=2, BK=4, BQ=8.
type CastleRights uint8

const (
	CastleRightsNone CastleRights = 0
	CastleRightsAll  CastleRights = 0b1111
)

var (
	maskCastleRights = [4]CastleRights{
		CastleDirectionWhiteRight: 0b0001,
		CastleDirectionWhiteLeft:  0b0010,
		CastleDirectionBlackRight: 0b0100,
		CastleDirectionBlackLeft:  0b1000,
	}

	// squares between king and rook that must be empty
	maskCastlePath = [4]Bitmap{
		CastleDirectionWhiteRight: 0x_00_00_00_00_00_00_00_60,
		CastleDirectionWhiteLeft:  0x_00_00_00_00_00_00_00_0E,
		CastleDirectionBlackRight: 0x_60_00_00_00_00_00_00_00,
		CastleDirectionBlackLeft:  0x_0E_00_00_00_00_00_00_00,
	}

	// king start, king transit, king destination, rook start, rook destination
	posCastling = [4][5]position.Pos{
		CastleDirectionWhiteRight: {position.E1, position.F1, position.G1, position.H1, position.F1},
		CastleDirectionWhiteLeft:  {position.E1, position.D1, position.C1, position.A1, position.D1},
		CastleDirectionBlackRight: {position.E8, position.F8, position.G8, position.H8, position.F8},
		CastleDirectionBlackLeft:  {position.E8, position.D8, position.C8, position.A8, position.D8},
	}

	// rights lost when a piece leaves or lands on the square
	castleRightsLoss [TotalCells]CastleRights
)

func init() {
	castleRightsLoss[position.E1] = maskCastleRights[CastleDirectionWhiteRight] | maskCastleRights[CastleDirectionWhiteLeft]
	castleRightsLoss[position.H1] = maskCastleRights[CastleDirectionWhiteRight]
	castleRightsLoss[position.A1] = maskCastleRights[CastleDirectionWhiteLeft]
	castleRightsLoss[position.E8] = maskCastleRights[CastleDirectionBlackRight] | maskCastleRights[CastleDirectionBlackLeft]
	castleRightsLoss[position.H8] = maskCastleRights[CastleDirectionBlackRight]
	castleRightsLoss[position.A8] = maskCastleRights[CastleDirectionBlackLeft]
}

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

func (c CastleRights) String() string {
	if c == CastleRightsNone {
		return "-"
	}
	var s string
	for d, sym := range [4]string{"K", "Q", "k", "q"} {
		if c.IsAllowed(CastleDirection(d)) {
			s += sym
		}
	}
	return s
}

// castleDirectionFor maps a castling move's side and kind to its direction.
func castleDirectionFor(s Side, kingSide bool) CastleDirection {
	switch {
	case s == SideWhite && kingSide:
		return CastleDirectionWhiteRight
	case s == SideWhite:
		return CastleDirectionWhiteLeft
	case kingSide:
		return CastleDirectionBlackRight
	default:
		return CastleDirectionBlackLeft
	}
}
