package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
	PieceKing
)

// PawnPromoteCandidates represents the candidates for pawn promotion, in move flag order.
var PawnPromoteCandidates = [4]Piece{PieceKnight, PieceBishop, PieceRook, PieceQueen}

// PieceFromSymbolFEN resolves a FEN piece letter; uppercase is White.
func PieceFromSymbolFEN(sym rune) (Piece, Side, bool) {
	s := SideWhite
	if sym >= 'a' && sym <= 'z' {
		s = SideBlack
		sym &^= 0x20
	}
	switch sym {
	case 'P':
		return PiecePawn, s, true
	case 'N':
		return PieceKnight, s, true
	case 'B':
		return PieceBishop, s, true
	case 'R':
		return PieceRook, s, true
	case 'Q':
		return PieceQueen, s, true
	case 'K':
		return PieceKing, s, true
	default:
		return PieceUnknown, SideUnknown, false
	}
}

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceKnight:
		return "Knight"
	case PieceBishop:
		return "Bishop"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceKnight:
		sym = 'N'
	case PieceBishop:
		sym = 'B'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side, invert bool) string {
	if invert {
		s = s.Opposite()
	}
	var syms [7]string
	switch s {
	case SideWhite:
		syms = [7]string{"", "♙", "♘", "♗", "♖", "♕", "♔"}
	case SideBlack:
		syms = [7]string{"", "♟", "♞", "♝", "♜", "♛", "♚"}
	default:
		return ""
	}
	if p > PieceKing {
		return ""
	}
	return syms[p]
}
