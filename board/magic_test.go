package board

import (
	"errors"
	"testing"

	"github.com/daystram/snail/position"
)

func TestSlidingAttacksMatchRayWalk(t *testing.T) {
	t.Parallel()
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		for _, p := range []Piece{PieceBishop, PieceRook} {
			lookup := BishopAttacks
			if p == PieceRook {
				lookup = RookAttacks
			}
			forEachSubset(relevantMask(p, pos), func(occupied Bitmap) {
				if got, want := lookup(pos, occupied), rayAttacks(p, pos, occupied); got != want {
					t.Fatalf("unexpected %s attacks on %s: got=%X want=%X", p, pos, got, want)
				}
			})
		}
	}
}

func TestSlidingTableLayout(t *testing.T) {
	t.Parallel()
	if got, want := len(slidingAttacks), 294912; got != want {
		t.Errorf("unexpected sliding table size: got=%d want=%d", got, want)
	}
	if got, want := int(rookMagics[position.H8].Offset)+1<<rookIndexBits, len(slidingAttacks); got != want {
		t.Errorf("unexpected last rook slot end: got=%d want=%d", got, want)
	}
	if got, want := int(bishopMagics[position.H8].Offset)+1<<bishopIndexBits, rookTableOffset; got != want {
		t.Errorf("unexpected last bishop slot end: got=%d want=%d", got, want)
	}
}

func TestSlidingAttacksIgnoreEdgeBlockers(t *testing.T) {
	t.Parallel()
	occupied := BitmapOf(position.D6, position.F4, position.B2)
	edges := maskRank1 | maskRank8 | maskFileA | maskFileH
	for _, pos := range []position.Pos{position.D4, position.E5, position.C3} {
		if BishopAttacks(pos, occupied) != BishopAttacks(pos, occupied|edges) {
			t.Errorf("unexpected bishop attacks change on %s", pos)
		}
		if RookAttacks(pos, occupied) != RookAttacks(pos, occupied|edges) {
			t.Errorf("unexpected rook attacks change on %s", pos)
		}
	}
	if got, want := RookAttacks(position.A1, 0).BitCount(), 14; got != want {
		t.Errorf("unexpected empty board rook attacks: got=%d want=%d", got, want)
	}
	if got, want := QueenAttacks(position.D4, 0).BitCount(), 27; got != want {
		t.Errorf("unexpected empty board queen attacks: got=%d want=%d", got, want)
	}
}

func TestRelevantMask(t *testing.T) {
	t.Parallel()
	tests := []struct {
		piece Piece
		pos   position.Pos
		want  Bitmap
	}{
		{piece: PieceRook, pos: position.A1, want: 0x000101010101017E},
		{piece: PieceRook, pos: position.H8, want: 0x7E80808080808000},
		{piece: PieceBishop, pos: position.A1, want: 0x0040201008040200},
		{piece: PieceBishop, pos: position.B1, want: 0x0000402010080400},
	}
	for _, tt := range tests {
		if got := relevantMask(tt.piece, tt.pos); got != tt.want {
			t.Errorf("unexpected %s mask on %s: got=%X want=%X", tt.piece, tt.pos, got, tt.want)
		}
	}
}

func TestLeaperAttacks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  Bitmap
		want Bitmap
	}{
		{name: "knight a1", got: KnightAttacks(position.A1), want: BitmapOf(position.B3, position.C2)},
		{name: "knight h8", got: KnightAttacks(position.H8), want: BitmapOf(position.G6, position.F7)},
		{name: "king a1", got: KingAttacks(position.A1), want: BitmapOf(position.A2, position.B1, position.B2)},
		{name: "white pawn a2", got: PawnAttacks(SideWhite, position.A2), want: BitmapOf(position.B3)},
		{name: "white pawn e4", got: PawnAttacks(SideWhite, position.E4), want: BitmapOf(position.D5, position.F5)},
		{name: "black pawn h7", got: PawnAttacks(SideBlack, position.H7), want: BitmapOf(position.G6)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("unexpected %s attacks: got=%X want=%X", tt.name, tt.got, tt.want)
		}
	}
	if got := KnightAttacks(position.D4).BitCount(); got != 8 {
		t.Errorf("unexpected knight d4 attacks count: got=%d want=8", got)
	}
}

func TestFindMagic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		piece Piece
		pos   position.Pos
	}{
		{piece: PieceBishop, pos: position.C1},
		{piece: PieceBishop, pos: position.E4},
		{piece: PieceRook, pos: position.D4},
	}
	for _, tt := range tests {
		entry, err := FindMagic(tt.piece, tt.pos, NewPseudoRand(DefaultSeed), 10_000_000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		table := map[int]Bitmap{}
		forEachSubset(entry.Mask, func(occupied Bitmap) {
			want := rayAttacks(tt.piece, tt.pos, occupied)
			idx := entry.Index(occupied)
			if got, ok := table[idx]; ok && got != want {
				t.Fatalf("destructive collision for %s on %s at %d", tt.piece, tt.pos, idx)
			}
			table[idx] = want
		})
	}
}

func TestFindMagicErrors(t *testing.T) {
	t.Parallel()
	if _, err := FindMagic(PieceKnight, position.A1, NewPseudoRand(1), 10); !errors.Is(err, ErrMagicNotFound) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrMagicNotFound)
	}
	if _, err := FindMagic(PieceRook, position.A1, NewPseudoRand(1), 0); !errors.Is(err, ErrMagicNotFound) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrMagicNotFound)
	}
}

func TestPseudoRand(t *testing.T) {
	t.Parallel()
	a, b := NewPseudoRand(DefaultSeed), NewPseudoRand(DefaultSeed)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("unexpected divergence for equal seeds")
		}
	}
	if NewPseudoRand(0).Uint32() != NewPseudoRand(DefaultSeed).Uint32() {
		t.Error("zero seed must fall back to the default seed")
	}
}
