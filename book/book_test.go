package book

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	bk := New()
	tests := []struct {
		name    string
		history []string
		wantErr error
	}{
		{name: "starting position", history: []string{}},
		{name: "king's pawn", history: []string{"e2e4"}},
		{name: "sicilian", history: []string{"e2e4", "c7c5", "g1f3"}},
		{
			name:    "out of book",
			history: []string{"b1a3", "b8a6", "a3b1", "a6b8", "b1a3", "b8a6", "a3b1", "a6b8"},
			wantErr: ErrNoBookMove,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mv, name, err := bk.Lookup(tt.history)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if name == "" {
				t.Error("unexpected empty opening name")
			}

			// the suggestion must be legal after the history
			game := chess.NewGame()
			for _, uci := range append(tt.history, mv) {
				m, err := chess.UCINotation{}.Decode(game.Position(), uci)
				if err != nil {
					t.Fatalf("unexpected error decoding %s: %v", uci, err)
				}
				if err := game.Move(m); err != nil {
					t.Fatalf("unexpected illegal move %s: %v", uci, err)
				}
			}
		})
	}
}

func TestLookupDeterministic(t *testing.T) {
	t.Parallel()

	bk := New()
	first, _, err := bk.Lookup([]string{"d2d4"})
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	for i := 0; i < 5; i++ {
		mv, _, err := bk.Lookup([]string{"d2d4"})
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if mv != first {
			t.Errorf("unexpected book move: got=%s want=%s", mv, first)
		}
	}
}

func TestLookupInvalidHistory(t *testing.T) {
	t.Parallel()

	bk := New()
	for _, history := range [][]string{
		{"e2e5"},
		{"zz"},
		{"e2e4", "e2e4"},
	} {
		if _, _, err := bk.Lookup(history); err == nil || errors.Is(err, ErrNoBookMove) {
			t.Errorf("unexpected error for %v: got=%v", history, err)
		}
	}
}
