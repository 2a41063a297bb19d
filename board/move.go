package board

import (
	"github.com/daystram/snail/position"
)

// MaxMoves bounds the pseudo-legal moves of any position.
const MaxMoves = 256

// Move packs a move into 16 bits: from | to<<6 | flag<<12.
type Move uint16

// MoveFlag is the 4-bit move kind. Bit 2 marks captures, bit 3 promotions.
type MoveFlag uint8

const (
	MoveFlagQuiet MoveFlag = iota
	MoveFlagDoublePush
	MoveFlagCastleKing
	MoveFlagCastleQueen
	MoveFlagCapture
	MoveFlagEnPassant
	_
	_
	MoveFlagPromoteKnight
	MoveFlagPromoteBishop
	MoveFlagPromoteRook
	MoveFlagPromoteQueen
	MoveFlagCapturePromoteKnight
	MoveFlagCapturePromoteBishop
	MoveFlagCapturePromoteRook
	MoveFlagCapturePromoteQueen
)

const (
	// NoMove is the null move sentinel; also used by the null-move search step.
	NoMove Move = 0

	moveFlagCaptureBit = 0b0100
	moveFlagPromoteBit = 0b1000
)

func NewMove(from, to position.Pos, flag MoveFlag) Move {
	return Move(uint16(from) | uint16(to)<<6 | uint16(flag)<<12)
}

func (m Move) From() position.Pos {
	return position.Pos(m & 0x3F)
}

func (m Move) To() position.Pos {
	return position.Pos(m >> 6 & 0x3F)
}

func (m Move) Flag() MoveFlag {
	return MoveFlag(m >> 12)
}

func (m Move) IsNull() bool {
	return m == NoMove
}

func (m Move) IsCapture() bool {
	return m.Flag()&moveFlagCaptureBit != 0
}

func (m Move) IsPromote() bool {
	return m.Flag()&moveFlagPromoteBit != 0
}

func (m Move) IsQuiet() bool {
	return m.Flag() < MoveFlagCapture
}

func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == MoveFlagCastleKing || f == MoveFlagCastleQueen
}

func (m Move) IsEnPassant() bool {
	return m.Flag() == MoveFlagEnPassant
}

// Promote returns the promotion piece, PieceUnknown for non-promotions.
func (m Move) Promote() Piece {
	if !m.IsPromote() {
		return PieceUnknown
	}
	return PawnPromoteCandidates[m.Flag()&0b11]
}

func (m Move) String() string {
	return m.UCI()
}

// UCI renders the move in coordinate notation, e.g. "e2e4" or "e7e8q". The null move is "0000".
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	return m.From().Notation() + m.To().Notation() + m.Promote().SymbolFEN(SideBlack)
}

func promoteFlag(p Piece, capture bool) MoveFlag {
	f := moveFlagPromoteBit | MoveFlag(p-PieceKnight)
	if capture {
		f |= moveFlagCaptureBit
	}
	return f
}

// MoveList is a fixed-capacity move buffer.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

func (ml *MoveList) Add(m Move) {
	ml.moves[ml.n] = m
	ml.n++
}

func (ml *MoveList) Len() int {
	return ml.n
}

func (ml *MoveList) At(i int) Move {
	return ml.moves[i]
}

func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

func (ml *MoveList) Clear() {
	ml.n = 0
}

// Moves returns a view of the stored moves.
func (ml *MoveList) Moves() []Move {
	return ml.moves[:ml.n]
}

// Contains reports whether m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	for _, mv := range ml.moves[:ml.n] {
		if mv == m {
			return true
		}
	}
	return false
}
