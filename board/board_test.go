package board

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notnil/chess"

	"github.com/daystram/snail/position"
)

const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5FEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
)

var oracleFENs = []string{
	DefaultStartingPositionFEN,
	kiwipeteFEN,
	position3FEN,
	position4FEN,
	position5FEN,
	"r3k2r/1bppqppp/p1n2n2/2b1p3/B3P3/2NP1N2/1PP2PPP/R1BQ1RK1 b kq - 2 10",
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"r4rk1/5ppp/p2p4/1bb1p3/BP6/2PP4/5PPP/R1B1R1K1 b - b3 0 20",
	"8/8/8/KPp4r/8/8/8/7k w - c6 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
	"r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1",
	"r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1",
	"1r2k2r/8/8/8/8/8/8/R3K2R w KQk - 0 1",
	"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	"3k4/1P6/8/8/8/8/6p1/3K3R w - - 0 1",
	"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
	"8/5kBp/3p3P/5pb1/8/5P2/4R2K/3r4 b - - 8 52",
	"1r3b1r/6pp/8/1p1pN3/3P1PQk/2P5/P7/qN3RK1 b - - 5 26",
	"R4k1r/1pNQ3p/4ppp1/8/3Pb1q1/5N2/5PPP/4KB1R b K - 5 22",
	"8/7k/3p3b/B1pPp3/PPN1PpP1/3P2q1/2QRK3/4r3 w - - 5 41",
	"2rBk2r/p1p1Q3/5Pp1/1p1N4/4p3/8/PP3PPP/R5K1 b - - 1 24",
	"6k1/1p3pbp/8/p1p1p2p/P5qK/8/1P1r1p1R/8 w - - 0 35",
	"8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b - - 1 38",
}

func legalMovesUCI(b *Board) []string {
	var got []string
	for _, mv := range b.GenerateLegalMoves() {
		got = append(got, mv.UCI())
	}
	sort.Strings(got)
	return got
}

func TestGenerateMovesMatchesReference(t *testing.T) {
	t.Parallel()
	for _, fen := range oracleFENs {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			b, err := NewBoard(WithFEN(fen))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			opt, err := chess.FEN(fen)
			if err != nil {
				t.Skip("reference rejects position:", err)
			}
			game := chess.NewGame(opt)
			var want []string
			for _, mv := range game.ValidMoves() {
				want = append(want, chess.UCINotation{}.Encode(game.Position(), mv))
			}
			sort.Strings(want)

			if diff := cmp.Diff(want, legalMovesUCI(b)); diff != "" {
				t.Errorf("unexpected legal moves (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateMovesCapturesOnly(t *testing.T) {
	t.Parallel()
	for _, fen := range oracleFENs {
		b, err := NewBoard(WithFEN(fen))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		var all, captures MoveList
		b.GenerateMoves(&all, false)
		b.GenerateMoves(&captures, true)
		want := 0
		for _, mv := range all.Moves() {
			if mv.IsCapture() {
				want++
				if !captures.Contains(mv) {
					t.Errorf("%s: capture %s missing from captures-only list", fen, mv)
				}
			}
		}
		if captures.Len() != want {
			t.Errorf("%s: unexpected captures count: got=%d want=%d", fen, captures.Len(), want)
		}
	}
}

func TestApplyUndoRoundTrip(t *testing.T) {
	t.Parallel()
	for _, fen := range oracleFENs {
		b, err := NewBoard(WithFEN(fen))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		want := b.snapshot
		var ml MoveList
		b.GenerateMoves(&ml, false)
		for _, mv := range ml.Moves() {
			if !b.Apply(mv) {
				if diff := cmp.Diff(want, b.snapshot, cmp.AllowUnexported(snapshot{})); diff != "" {
					t.Fatalf("%s: rejected %s changed the position (-want +got):\n%s", fen, mv, diff)
				}
				continue
			}
			if b.Ply() != 1 {
				t.Fatalf("unexpected ply: got=%d want=1", b.Ply())
			}
			if !b.Undo() {
				t.Fatalf("%s: undo of %s failed", fen, mv)
			}
			if diff := cmp.Diff(want, b.snapshot, cmp.AllowUnexported(snapshot{})); diff != "" {
				t.Fatalf("%s: undo of %s mismatch (-want +got):\n%s", fen, mv, diff)
			}
		}
	}
}

func TestHashConsistency(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))
	for _, fen := range oracleFENs {
		b, err := NewBoard(WithFEN(fen))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		for step := 0; step < 200; step++ {
			if r.Intn(10) == 0 && !b.InCheck() {
				if !b.ApplyNull() {
					t.Fatal("unexpected null move failure")
				}
			} else {
				legal := b.GenerateLegalMoves()
				if len(legal) == 0 {
					break
				}
				if !b.Apply(legal[r.Intn(len(legal))]) {
					t.Fatal("unexpected legal move rejection")
				}
			}
			if got, want := b.Hash(), b.ComputeHash(); got != want {
				t.Fatalf("%s: unexpected hash after %d plies: got=%X want=%X", fen, step, got, want)
			}
			if got, want := b.PawnHash(), b.ComputePawnHash(); got != want {
				t.Fatalf("%s: unexpected pawn hash after %d plies: got=%X want=%X", fen, step, got, want)
			}
		}
		for b.Undo() {
			if got, want := b.Hash(), b.ComputeHash(); got != want {
				t.Fatalf("%s: unexpected hash while unwinding: got=%X want=%X", fen, got, want)
			}
		}
		if got := b.FEN(); got != fen {
			t.Errorf("unexpected FEN after unwinding: got=%s want=%s", got, fen)
		}
	}
}

func TestHashTransposition(t *testing.T) {
	t.Parallel()
	play := func(moves ...string) *Board {
		b, err := NewBoard()
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		for _, s := range moves {
			mv, err := b.ParseMove(s)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if !b.Apply(mv) {
				t.Fatalf("unexpected rejection of %s", s)
			}
		}
		return b
	}
	a := play("g1f3", "g8f6", "b1c3", "b8c6")
	c := play("b1c3", "b8c6", "g1f3", "g8f6")
	if a.Hash() != c.Hash() {
		t.Errorf("unexpected hash mismatch: %X != %X", a.Hash(), c.Hash())
	}
	d := play("e2e4")
	e := play("g1f3", "g8f6", "f3g1", "f6g8", "e2e4")
	if d.Hash() != e.Hash() {
		t.Errorf("unexpected hash mismatch after knight shuffle: %X != %X", d.Hash(), e.Hash())
	}
	f := play("e2e3", "e7e6", "e3e4")
	if f.Hash() == d.Hash() {
		t.Errorf("different positions share a hash")
	}
}

func TestApplyCastling(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		fen     string
		move    Move
		want    bool
		wantFEN string
	}{
		{
			name:    "white king side",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move:    NewMove(position.E1, position.G1, MoveFlagCastleKing),
			want:    true,
			wantFEN: "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
		},
		{
			name:    "black queen side",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1",
			move:    NewMove(position.E8, position.C8, MoveFlagCastleQueen),
			want:    true,
			wantFEN: "2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
		{
			name: "through attacked square",
			fen:  "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1",
			move: NewMove(position.E1, position.G1, MoveFlagCastleKing),
			want: false,
		},
		{
			name: "out of check",
			fen:  "r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1",
			move: NewMove(position.E1, position.C1, MoveFlagCastleQueen),
			want: false,
		},
		{
			name:    "rook capture drops rights",
			fen:     "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			move:    NewMove(position.A1, position.A8, MoveFlagCapture),
			want:    true,
			wantFEN: "R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := NewBoard(WithFEN(tt.fen))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got := b.Apply(tt.move); got != tt.want {
				t.Fatalf("unexpected apply result: got=%v want=%v", got, tt.want)
			}
			if !tt.want {
				if got := b.FEN(); got != tt.fen {
					t.Errorf("unexpected FEN after rejection: got=%s want=%s", got, tt.fen)
				}
				return
			}
			if got := b.FEN(); got != tt.wantFEN {
				t.Errorf("unexpected FEN: got=%s want=%s", got, tt.wantFEN)
			}
		})
	}
}

func TestApplyHistoryFull(t *testing.T) {
	t.Parallel()
	b, err := NewBoard(WithFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	shuffle := []Move{
		NewMove(position.E1, position.D1, MoveFlagQuiet),
		NewMove(position.E8, position.D8, MoveFlagQuiet),
		NewMove(position.D1, position.E1, MoveFlagQuiet),
		NewMove(position.D8, position.E8, MoveFlagQuiet),
	}
	for i := 0; i < MaxHistory; i++ {
		if !b.Apply(shuffle[i%len(shuffle)]) {
			t.Fatalf("unexpected rejection at ply %d", i)
		}
	}
	if b.Apply(shuffle[0]) {
		t.Error("expected rejection on a full history")
	}
	if b.ApplyNull() {
		t.Error("expected null move rejection on a full history")
	}
	if b.Ply() != MaxHistory {
		t.Errorf("unexpected ply: got=%d want=%d", b.Ply(), MaxHistory)
	}
}

func TestApplyNull(t *testing.T) {
	t.Parallel()
	b, err := NewBoard(WithFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	before := b.FEN()
	if !b.ApplyNull() {
		t.Fatal("unexpected null move failure")
	}
	if want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 1 2"; b.FEN() != want {
		t.Errorf("unexpected FEN: got=%s want=%s", b.FEN(), want)
	}
	if b.Hash() != b.ComputeHash() {
		t.Errorf("unexpected hash after null move")
	}
	b.Undo()
	if b.FEN() != before {
		t.Errorf("unexpected FEN after undo: got=%s want=%s", b.FEN(), before)
	}
}

func TestIsInsufficientMaterial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen  string
		want bool
	}{
		{fen: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", want: true},
		{fen: "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", want: true},
		{fen: "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", want: true},
		{fen: "4k3/8/8/8/8/8/8/3NKN2 w - - 0 1", want: true},
		{fen: "4kn2/8/8/8/8/8/8/4KN2 w - - 0 1", want: true},
		{fen: "4kb2/8/8/8/8/8/8/4KB2 w - - 0 1", want: true},
		{fen: "4k3/8/8/8/8/8/8/3BKB2 w - - 0 1", want: false},
		{fen: "4kb2/8/8/8/8/8/8/3BKB2 w - - 0 1", want: true},
		{fen: "4k3/8/8/8/8/8/8/4KR2 w - - 0 1", want: false},
		{fen: "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", want: false},
		{fen: "4kq2/8/8/8/8/8/8/4KB2 w - - 0 1", want: false},
		{fen: DefaultStartingPositionFEN, want: false},
	}
	for _, tt := range tests {
		b, err := NewBoard(WithFEN(tt.fen))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if got := b.IsInsufficientMaterial(); got != tt.want {
			t.Errorf("%s: unexpected result: got=%v want=%v", tt.fen, got, tt.want)
		}
	}
}

func TestState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen  string
		want State
	}{
		{fen: DefaultStartingPositionFEN, want: StateRunning},
		{fen: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", want: StateCheckmateWhite},
		{fen: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", want: StateStalemate},
		{fen: "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", want: StateCheckWhite},
		{fen: "4k3/8/8/8/8/8/8/4KN2 w - - 0 1", want: StateInsufficientMaterial},
		{fen: "4k3/8/8/8/8/8/8/4KR2 w - - 100 80", want: StateFiftyMoveViolated},
	}
	for _, tt := range tests {
		b, err := NewBoard(WithFEN(tt.fen))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if got := b.State(); got != tt.want {
			t.Errorf("%s: unexpected state: got=%v want=%v", tt.fen, got, tt.want)
		}
	}
}

func TestStateClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		state      State
		running    bool
		check      bool
		checkmate  bool
		draw       bool
		wantResult string
		wantString string
	}{
		{state: StateUnknown, wantResult: "*", wantString: "StateUnknown"},
		{state: StateRunning, running: true, wantResult: "*", wantString: "StateRunning"},
		{state: StateCheckWhite, running: true, check: true, wantResult: "*", wantString: "StateCheckWhite"},
		{state: StateCheckBlack, running: true, check: true, wantResult: "*", wantString: "StateCheckBlack"},
		{state: StateCheckmateWhite, checkmate: true, wantResult: "0-1", wantString: "StateCheckmateWhite"},
		{state: StateCheckmateBlack, checkmate: true, wantResult: "1-0", wantString: "StateCheckmateBlack"},
		{state: StateStalemate, draw: true, wantResult: "1/2-1/2", wantString: "StateStalemate"},
		{state: StateFiftyMoveViolated, draw: true, wantResult: "1/2-1/2", wantString: "StateFiftyMoveViolated"},
		{state: StateInsufficientMaterial, draw: true, wantResult: "1/2-1/2", wantString: "StateInsufficientMaterial"},
		{state: State(200), wantResult: "*", wantString: ""},
	}
	for _, tt := range tests {
		if got := tt.state.IsRunning(); got != tt.running {
			t.Errorf("%v: unexpected running: got=%v want=%v", tt.state, got, tt.running)
		}
		if got := tt.state.IsCheck(); got != tt.check {
			t.Errorf("%v: unexpected check: got=%v want=%v", tt.state, got, tt.check)
		}
		if got := tt.state.IsCheckmate(); got != tt.checkmate {
			t.Errorf("%v: unexpected checkmate: got=%v want=%v", tt.state, got, tt.checkmate)
		}
		if got := tt.state.IsDraw(); got != tt.draw {
			t.Errorf("%v: unexpected draw: got=%v want=%v", tt.state, got, tt.draw)
		}
		if got := tt.state.Result(); got != tt.wantResult {
			t.Errorf("%v: unexpected result: got=%s want=%s", tt.state, got, tt.wantResult)
		}
		if got := tt.state.String(); got != tt.wantString {
			t.Errorf("unexpected string: got=%q want=%q", got, tt.wantString)
		}
	}
}

func TestParseMove(t *testing.T) {
	t.Parallel()
	b, err := NewBoard(WithFEN("r3k3/1P6/8/8/8/8/3P4/4K1N1 w - - 0 1"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	tests := []struct {
		uci     string
		want    Move
		wantErr bool
	}{
		{uci: "b7a8q", want: NewMove(position.B7, position.A8, MoveFlagCapturePromoteQueen)},
		{uci: "b7b8n", want: NewMove(position.B7, position.B8, MoveFlagPromoteKnight)},
		{uci: "g1h3", want: NewMove(position.G1, position.H3, MoveFlagQuiet)},
		{uci: "d2d3", want: NewMove(position.D2, position.D3, MoveFlagQuiet)},
		{uci: "d2d4", want: NewMove(position.D2, position.D4, MoveFlagDoublePush)},
		{uci: "b7b8", wantErr: true},
		{uci: "b7b8k", wantErr: true},
		{uci: "e1g1", wantErr: true},
		{uci: "z9a1", wantErr: true},
		{uci: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := b.ParseMove(tt.uci)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: error expected: got=nil", tt.uci)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.uci, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: unexpected move: got=%v want=%v", tt.uci, got, tt.want)
		}
	}
}

func TestClone(t *testing.T) {
	t.Parallel()
	b, err := NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	c := b.Clone()
	mv, err := c.ParseMove("e2e4")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	c.Apply(mv)
	if b.FEN() != DefaultStartingPositionFEN {
		t.Errorf("clone shares state with its source")
	}
	if c.Ply() != 1 || b.Ply() != 0 {
		t.Errorf("unexpected plies: clone=%d source=%d", c.Ply(), b.Ply())
	}
}
