package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// NoPos marks an absent square, e.g. no en passant target.
	NoPos Pos = 0
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a square index in little-endian rank-file order: a1=0, h1=7, a8=56, h8=63.
type Pos int8

//nolint:revive // square names
const (
	A1 Pos = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

//nolint:revive
const (
	A2 Pos = 8*1 + iota
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

//nolint:revive
const (
	A3 Pos = 8*2 + iota
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

//nolint:revive
const (
	A4 Pos = 8*3 + iota
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

//nolint:revive
const (
	A5 Pos = 8*4 + iota
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

//nolint:revive
const (
	A6 Pos = 8*5 + iota
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

//nolint:revive
const (
	A7 Pos = 8*6 + iota
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

//nolint:revive
const (
	A8 Pos = 8*7 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	FileA Pos = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Pos = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func NewPos(x, y Pos) Pos {
	return MaxComponentScalar*y + x
}

func NewPosFromNotation(n string) (Pos, error) {
	x, y, err := notationToXY(n)
	if err != nil {
		return 0, err
	}
	return NewPos(x, y), nil
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.IsValid() {
		return ""
	}
	return string(rune('a'+p.X())) + string(rune('1'+p.Y()))
}

func (p Pos) IsValid() bool {
	return p >= 0 && p < MaxComponentScalar*MaxComponentScalar
}

func (p Pos) X() Pos {
	return p % MaxComponentScalar
}

func (p Pos) Y() Pos {
	return p / MaxComponentScalar
}

// Mirror flips the square vertically (a1 <-> a8).
func (p Pos) Mirror() Pos {
	return p ^ 56
}

func notationToXY(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	pX, err := notationToX(n[0])
	if err != nil {
		return 0, 0, err
	}
	pY, err := notationToY(n[1])
	if err != nil {
		return 0, 0, err
	}
	return pX, pY, nil
}

func notationToX(x byte) (Pos, error) {
	if x < 'a' || x >= 'a'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

func notationToY(y byte) (Pos, error) {
	if y < '1' || y >= '1'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return Pos(y - '1'), nil
}

func (p Pos) NotationComponentX() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentY() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('0' + p + 1))
}
