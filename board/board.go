package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/snail/position"
)

const (
	// MaxHistory bounds the undo stack.
	MaxHistory = 2048

	maxHalfMoveClock = 128

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

var (
	ErrInvalidFEN  = errors.New("invalid fen")
	ErrInvalidMove = errors.New("invalid move")
)

// snapshot is everything Undo restores.
type snapshot struct {
	sides  [2]Bitmap
	pieces [6 + 1]Bitmap

	hash     uint64
	pawnHash uint32

	turn          Side
	castleRights  CastleRights
	enPassant     position.Pos
	halfMoveClock uint8
	fullMoveClock uint16
}

// Little-endian rank-file (LERF) mapping
type Board struct {
	snapshot

	history [MaxHistory]snapshot
	histLen int
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	d, err := ParseFEN(cfg.fen)
	if err != nil {
		return nil, err
	}
	b := &Board{}
	b.Load(d)
	return b, nil
}

// Load replaces the position and clears the undo stack. Keys are computed from scratch.
func (b *Board) Load(d Descriptor) {
	b.snapshot = snapshot{
		sides:         d.Sides,
		pieces:        d.Pieces,
		turn:          d.Turn,
		castleRights:  d.CastleRights,
		enPassant:     d.EnPassant,
		halfMoveClock: d.HalfMoveClock,
		fullMoveClock: d.FullMoveClock,
	}
	if b.halfMoveClock > maxHalfMoveClock {
		b.halfMoveClock = maxHalfMoveClock
	}
	b.hash = b.ComputeHash()
	b.pawnHash = b.ComputePawnHash()
	b.histLen = 0
}

// Descriptor returns the position in loadable form.
func (b *Board) Descriptor() Descriptor {
	return Descriptor{
		Sides:         b.sides,
		Pieces:        b.pieces,
		Turn:          b.turn,
		CastleRights:  b.castleRights,
		EnPassant:     b.enPassant,
		HalfMoveClock: b.halfMoveClock,
		FullMoveClock: b.fullMoveClock,
	}
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) Hash() uint64 {
	return b.hash
}

func (b *Board) PawnHash() uint32 {
	return b.pawnHash
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

func (b *Board) EnPassant() position.Pos {
	return b.enPassant
}

func (b *Board) HalfMoveClock() uint8 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint16 {
	return b.fullMoveClock
}

// Ply is the number of moves on the undo stack.
func (b *Board) Ply() int {
	return b.histLen
}

func (b *Board) GetBitmap(s Side, p Piece) Bitmap {
	return b.sides[s] & b.pieces[p]
}

// Pieces returns the bitmap of piece p for both sides.
func (b *Board) Pieces(p Piece) Bitmap {
	return b.pieces[p]
}

func (b *Board) SideBitmap(s Side) Bitmap {
	return b.sides[s]
}

func (b *Board) Occupied() Bitmap {
	return b.sides[SideWhite] | b.sides[SideBlack]
}

func (b *Board) PieceAt(pos position.Pos) (Piece, Side) {
	cell := maskCell[pos]
	s := SideWhite
	switch {
	case b.sides[SideWhite]&cell != 0:
	case b.sides[SideBlack]&cell != 0:
		s = SideBlack
	default:
		return PieceUnknown, SideUnknown
	}
	for p := PiecePawn; p <= PieceKing; p++ {
		if b.pieces[p]&cell != 0 {
			return p, s
		}
	}
	return PieceUnknown, SideUnknown
}

func (b *Board) pieceOf(s Side, pos position.Pos) Piece {
	cell := maskCell[pos]
	if b.sides[s]&cell == 0 {
		return PieceUnknown
	}
	for p := PiecePawn; p <= PieceKing; p++ {
		if b.pieces[p]&cell != 0 {
			return p
		}
	}
	return PieceUnknown
}

func (b *Board) putPiece(s Side, p Piece, pos position.Pos) {
	b.sides[s].Set(pos)
	b.pieces[p].Set(pos)
	b.hash ^= zobristConstantPiece[s][p][pos]
	if p == PiecePawn {
		b.pawnHash ^= zobristConstantPawn[s][pos]
	}
}

func (b *Board) removePiece(s Side, p Piece, pos position.Pos) {
	b.sides[s].Unset(pos)
	b.pieces[p].Unset(pos)
	b.hash ^= zobristConstantPiece[s][p][pos]
	if p == PiecePawn {
		b.pawnHash ^= zobristConstantPawn[s][pos]
	}
}

func (b *Board) movePiece(s Side, p Piece, from, to position.Pos) {
	fromTo := maskCell[from] | maskCell[to]
	b.sides[s] ^= fromTo
	b.pieces[p] ^= fromTo
	b.hash ^= zobristConstantPiece[s][p][from] ^ zobristConstantPiece[s][p][to]
	if p == PiecePawn {
		b.pawnHash ^= zobristConstantPawn[s][from] ^ zobristConstantPawn[s][to]
	}
}

func (b *Board) push() bool {
	if b.histLen >= MaxHistory {
		return false
	}
	b.history[b.histLen] = b.snapshot
	b.histLen++
	return true
}

func (b *Board) bumpHalfMoveClock() {
	if b.halfMoveClock < maxHalfMoveClock {
		b.halfMoveClock++
	}
}

func (b *Board) clearEnPassant() {
	if b.enPassant != position.NoPos {
		b.hash ^= zobristConstantEnPassant[b.enPassant.X()]
		b.enPassant = position.NoPos
	}
}

// Apply plays a pseudo-legal move for the side to move. It returns false, leaving the
// position untouched, when the move leaves the mover's king attacked, castles out of
// or through check, captures nothing or a king, or the undo stack is full.
func (b *Board) Apply(mv Move) bool {
	us, them := b.turn, b.turn.Opposite()
	from, to := mv.From(), mv.To()

	piece := b.pieceOf(us, from)
	if piece == PieceUnknown {
		return false
	}

	var dir CastleDirection
	if mv.IsCastle() {
		dir = castleDirectionFor(us, mv.Flag() == MoveFlagCastleKing)
		occupied := b.Occupied()
		if b.IsAttacked(posCastling[dir][0], them, occupied) || b.IsAttacked(posCastling[dir][1], them, occupied) {
			return false
		}
	}

	if !b.push() {
		return false
	}
	b.bumpHalfMoveClock()

	if mv.IsCapture() {
		if mv.IsEnPassant() {
			b.removePiece(them, PiecePawn, to-position.Pos(us.Forward()))
		} else {
			victim := b.pieceOf(them, to)
			if victim == PieceUnknown || victim == PieceKing {
				b.Undo()
				return false
			}
			b.removePiece(them, victim, to)
		}
		b.halfMoveClock = 0
	}

	b.movePiece(us, piece, from, to)
	if piece == PiecePawn {
		b.halfMoveClock = 0
		if mv.IsPromote() {
			b.removePiece(us, PiecePawn, to)
			b.putPiece(us, mv.Promote(), to)
		}
	}

	if mv.IsCastle() {
		b.movePiece(us, PieceRook, posCastling[dir][3], posCastling[dir][4])
	}

	if rights := b.castleRights &^ (castleRightsLoss[from] | castleRightsLoss[to]); rights != b.castleRights {
		b.hash ^= zobristConstantCastleRights[b.castleRights] ^ zobristConstantCastleRights[rights]
		b.castleRights = rights
	}

	b.clearEnPassant()
	if mv.Flag() == MoveFlagDoublePush {
		b.enPassant = (from + to) / 2
		b.hash ^= zobristConstantEnPassant[b.enPassant.X()]
	}

	if b.IsKingChecked(us) {
		b.Undo()
		return false
	}

	if us == SideBlack {
		b.fullMoveClock++
	}
	b.turn = them
	b.hash ^= zobristConstantSideBlack
	return true
}

// ApplyNull passes the turn. Used by null-move pruning; never legal in a real game.
func (b *Board) ApplyNull() bool {
	if !b.push() {
		return false
	}
	b.bumpHalfMoveClock()
	b.clearEnPassant()
	b.turn = b.turn.Opposite()
	b.hash ^= zobristConstantSideBlack
	return true
}

// Undo restores the position before the last Apply or ApplyNull.
func (b *Board) Undo() bool {
	if b.histLen == 0 {
		return false
	}
	b.histLen--
	b.snapshot = b.history[b.histLen]
	return true
}

// IsAttacked reports whether any piece of side by attacks pos, sliders seen through occupied.
func (b *Board) IsAttacked(pos position.Pos, by Side, occupied Bitmap) bool {
	them := b.sides[by]
	if pawnAttacks[by.Opposite()][pos]&them&b.pieces[PiecePawn] != 0 {
		return true
	}
	if knightAttacks[pos]&them&b.pieces[PieceKnight] != 0 {
		return true
	}
	if kingAttacks[pos]&them&b.pieces[PieceKing] != 0 {
		return true
	}
	if BishopAttacks(pos, occupied)&them&(b.pieces[PieceBishop]|b.pieces[PieceQueen]) != 0 {
		return true
	}
	return RookAttacks(pos, occupied)&them&(b.pieces[PieceRook]|b.pieces[PieceQueen]) != 0
}

// AttackersTo returns the pieces of side by attacking pos.
func (b *Board) AttackersTo(pos position.Pos, by Side) Bitmap {
	return b.AllAttackersTo(pos, b.Occupied()) & b.sides[by]
}

// AllAttackersTo returns attackers of both sides, sliders seen through occupied.
// Callers mask with occupied to drop pieces already removed.
func (b *Board) AllAttackersTo(pos position.Pos, occupied Bitmap) Bitmap {
	pawns := b.pieces[PiecePawn]
	return pawnAttacks[SideBlack][pos]&pawns&b.sides[SideWhite] |
		pawnAttacks[SideWhite][pos]&pawns&b.sides[SideBlack] |
		knightAttacks[pos]&b.pieces[PieceKnight] |
		kingAttacks[pos]&b.pieces[PieceKing] |
		BishopAttacks(pos, occupied)&(b.pieces[PieceBishop]|b.pieces[PieceQueen]) |
		RookAttacks(pos, occupied)&(b.pieces[PieceRook]|b.pieces[PieceQueen])
}

func (b *Board) IsKingChecked(s Side) bool {
	king := b.GetBitmap(s, PieceKing)
	if king == 0 {
		return false
	}
	return b.IsAttacked(king.LS1B(), s.Opposite(), b.Occupied())
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.IsKingChecked(b.turn)
}

// HasNonPawnMaterial reports whether side s has anything besides pawns and king.
func (b *Board) HasNonPawnMaterial(s Side) bool {
	return b.sides[s]&^(b.pieces[PiecePawn]|b.pieces[PieceKing]) != 0
}

// IsInsufficientMaterial recognises the drawn material configurations: bare kings, a
// single minor piece, two knights, one bishop each, and three bishops split two to one.
func (b *Board) IsInsufficientMaterial() bool {
	bishops := b.pieces[PieceBishop]
	switch b.Occupied().BitCount() {
	case 2:
		return true
	case 3:
		return b.pieces[PieceKnight].BitCount() == 1 || bishops.BitCount() == 1
	case 4:
		if b.pieces[PieceKnight].BitCount() == 2 {
			return true
		}
		return bishops.BitCount() == 2 && (bishops&b.sides[SideBlack]).BitCount() == 1
	case 5:
		return bishops.BitCount() == 3 &&
			((bishops&b.sides[SideBlack]).BitCount() == 1 || (bishops&b.sides[SideWhite]).BitCount() == 1)
	default:
		return false
	}
}

// State classifies the position for the side to move.
func (b *Board) State() State {
	var ml MoveList
	hasLegal := false
	b.GenerateMoves(&ml, false)
	for _, mv := range ml.Moves() {
		if b.Apply(mv) {
			b.Undo()
			hasLegal = true
			break
		}
	}
	check := b.InCheck()
	switch {
	case !hasLegal && check:
		if b.turn == SideWhite {
			return StateCheckmateWhite
		}
		return StateCheckmateBlack
	case !hasLegal:
		return StateStalemate
	case b.halfMoveClock >= 100:
		return StateFiftyMoveViolated
	case b.IsInsufficientMaterial():
		return StateInsufficientMaterial
	case check:
		if b.turn == SideWhite {
			return StateCheckWhite
		}
		return StateCheckBlack
	default:
		return StateRunning
	}
}

// ParseMove resolves a coordinate-notation move against the generated moves.
func (b *Board) ParseMove(uci string) (Move, error) {
	if len(uci) < 4 || len(uci) > 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, uci)
	}
	from, err := position.NewPosFromNotation(uci[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := position.NewPosFromNotation(uci[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	promote := PieceUnknown
	if len(uci) == 5 {
		p, _, ok := PieceFromSymbolFEN(rune(uci[4]))
		if !ok || p == PiecePawn || p == PieceKing {
			return NoMove, fmt.Errorf("%w: bad promotion %q", ErrInvalidMove, uci)
		}
		promote = p
	}
	var ml MoveList
	b.GenerateMoves(&ml, false)
	for _, mv := range ml.Moves() {
		if mv.From() == from && mv.To() == to && mv.Promote() == promote {
			return mv, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s not playable", ErrInvalidMove, uci)
}

func (b *Board) Draw() string {
	light := color.New(color.BgHiWhite, color.FgBlack)
	dark := color.New(color.BgWhite, color.FgBlack)
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString(fmt.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < Width; x++ {
			pos := position.NewPos(x, y)
			sym := " "
			if p, s := b.PieceAt(pos); p != PieceUnknown {
				sym = p.SymbolUnicode(s, false)
			}
			c := dark
			if maskLightSquares.IsSet(pos) {
				c = light
			}
			_, _ = builder.WriteString(c.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

// Dump prints every bitmap and the position metadata.
func (b *Board) Dump() string {
	builder := strings.Builder{}
	for _, s := range []Side{SideWhite, SideBlack} {
		for p := PiecePawn; p <= PieceKing; p++ {
			_, _ = builder.WriteString(fmt.Sprintf("%s %s\n%s\n\n", s, p, b.GetBitmap(s, p).Dump()))
		}
	}
	_, _ = builder.WriteString(fmt.Sprintf("fen: %s\nkey: %016X pawn key: %08X\nturn: %s castle: %s ep: %s half: %d full: %d",
		b.FEN(), b.hash, b.pawnHash, b.turn, b.castleRights, b.enPassant, b.halfMoveClock, b.fullMoveClock))
	return builder.String()
}

func (b *Board) String() string {
	return b.FEN()
}
