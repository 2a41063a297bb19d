package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/snail/position"
)

// Descriptor is a position in plain form, as read from notation. Board.Load derives keys from it.
type Descriptor struct {
	Sides  [2]Bitmap
	Pieces [6 + 1]Bitmap

	Turn          Side
	CastleRights  CastleRights
	EnPassant     position.Pos
	HalfMoveClock uint8
	FullMoveClock uint16
}

// ParseFEN reads a six-field FEN record.
func ParseFEN(fen string) (Descriptor, error) {
	var d Descriptor
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return d, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return d, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for y := position.Pos(0); y < Height; y++ {
		ptrX, ptrY := -1, Height-y-1
		for x := position.Pos(0); x < Width; x++ {
			ptrX++
			if ptrX >= len(rows[ptrY]) {
				return d, fmt.Errorf("%w: missing cells", ErrInvalidFEN)
			}
			cell := rune(rows[ptrY][ptrX])
			p, s, ok := PieceFromSymbolFEN(cell)
			if !ok {
				if cell != '0' && unicode.IsDigit(cell) {
					skip := position.Pos(cell - '0')
					if x+skip-1 < Width {
						x += skip - 1
						continue
					}
					return d, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				return d, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			pos := position.NewPos(x, y)
			d.Sides[s].Set(pos)
			d.Pieces[p].Set(pos)
		}
		if ptrX != len(rows[ptrY])-1 {
			return d, fmt.Errorf("%w: extra cells", ErrInvalidFEN)
		}
	}
	for _, s := range []Side{SideWhite, SideBlack} {
		if (d.Sides[s] & d.Pieces[PieceKing]).BitCount() != 1 {
			return d, fmt.Errorf("%w: %s must have exactly one king", ErrInvalidFEN, s)
		}
	}
	if d.Pieces[PiecePawn]&(maskRank1|maskRank8) != 0 {
		return d, fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
	}

	switch segments[1] {
	case "w":
		d.Turn = SideWhite
	case "b":
		d.Turn = SideBlack
	default:
		return d, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments[2]) > 4 {
		return d, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
crLoop:
	for i, e := range segments[2] {
		switch e {
		case 'K':
			d.CastleRights.Set(CastleDirectionWhiteRight, true)
		case 'Q':
			d.CastleRights.Set(CastleDirectionWhiteLeft, true)
		case 'k':
			d.CastleRights.Set(CastleDirectionBlackRight, true)
		case 'q':
			d.CastleRights.Set(CastleDirectionBlackLeft, true)
		default:
			if i == 0 && e == '-' && len(segments[2]) == 1 {
				break crLoop
			}
			return d, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
	}

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return d, fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		if (d.Turn == SideWhite && pos.Y() != position.Rank6) || (d.Turn == SideBlack && pos.Y() != position.Rank3) {
			return d, fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN)
		}
		d.EnPassant = pos
	}

	halfMoveClock, err := strconv.ParseUint(segments[4], 10, 8)
	if err != nil {
		return d, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	d.HalfMoveClock = uint8(halfMoveClock)

	fullMoveClock, err := strconv.ParseUint(segments[5], 10, 16)
	if err != nil {
		return d, fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	d.FullMoveClock = uint16(fullMoveClock)

	return d, nil
}

// MarshalFEN writes the descriptor as a FEN record.
func MarshalFEN(d Descriptor) string {
	builder := strings.Builder{}
	occupied := d.Sides[SideWhite] | d.Sides[SideBlack]
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		var skip uint8
		for x := position.Pos(0); x < Width; x++ {
			pos := position.NewPos(x, y)
			if !occupied.IsSet(pos) {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteRune(rune(skip + '0'))
				skip = 0
			}
			s := SideWhite
			if d.Sides[SideBlack].IsSet(pos) {
				s = SideBlack
			}
			for p := PiecePawn; p <= PieceKing; p++ {
				if d.Pieces[p].IsSet(pos) {
					_, _ = builder.WriteString(p.SymbolFEN(s))
					break
				}
			}
		}
		if skip != 0 {
			_, _ = builder.WriteRune(rune(skip + '0'))
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	if d.Turn == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}
	_, _ = builder.WriteString(d.CastleRights.String())
	_, _ = builder.WriteRune(' ')
	if d.EnPassant == position.NoPos {
		_, _ = builder.WriteRune('-')
	} else {
		_, _ = builder.WriteString(d.EnPassant.Notation())
	}
	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", d.HalfMoveClock, d.FullMoveClock))
	return builder.String()
}

func (b *Board) FEN() string {
	return MarshalFEN(b.Descriptor())
}
