package engine

import (
	"context"
	"testing"
	"time"

	"github.com/daystram/snail/board"
)

func TestClockStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		turn         board.Side
		cfg          ClockConfig
		wantMode     ClockMode
		wantMovetime time.Duration
		wantDepth    int
		wantNodes    uint64
	}{
		{
			name:      "infinite",
			cfg:       ClockConfig{},
			wantMode:  ClockModeInfinite,
			wantDepth: MaxPly - 1,
		},
		{
			name:         "game time white",
			turn:         board.SideWhite,
			cfg:          ClockConfig{WhiteTime: 60 * time.Second, BlackTime: time.Second, WhiteIncrement: 2 * time.Second},
			wantMode:     ClockModeMovetime,
			wantMovetime: 4 * time.Second,
			wantDepth:    MaxPly - 1,
		},
		{
			name:         "game time black",
			turn:         board.SideBlack,
			cfg:          ClockConfig{WhiteTime: 60 * time.Second, BlackTime: 10 * time.Second, Depth: 5},
			wantMode:     ClockModeMovetime,
			wantMovetime: 500 * time.Millisecond,
			wantDepth:    MaxPly - 1,
		},
		{
			name:         "game time nearly flagged",
			turn:         board.SideBlack,
			cfg:          ClockConfig{WhiteTime: 60 * time.Second, BlackTime: time.Millisecond},
			wantMode:     ClockModeMovetime,
			wantMovetime: minMovetime,
			wantDepth:    MaxPly - 1,
		},
		{
			name:         "movetime",
			cfg:          ClockConfig{Movetime: 250 * time.Millisecond, Depth: 3},
			wantMode:     ClockModeMovetime,
			wantMovetime: 250 * time.Millisecond,
			wantDepth:    MaxPly - 1,
		},
		{
			name:      "depth",
			cfg:       ClockConfig{Depth: 7, Nodes: 1000},
			wantMode:  ClockModeDepth,
			wantDepth: 7,
		},
		{
			name:      "depth clamped",
			cfg:       ClockConfig{Depth: 1000},
			wantMode:  ClockModeDepth,
			wantDepth: MaxPly - 1,
		},
		{
			name:      "nodes",
			cfg:       ClockConfig{Nodes: 1000},
			wantMode:  ClockModeNodes,
			wantDepth: MaxPly - 1,
			wantNodes: 1000,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewClock()
			c.Start(context.Background(), tt.turn, tt.cfg)
			defer c.Stop()

			if got := c.Mode(); got != tt.wantMode {
				t.Errorf("unexpected mode: got=%s want=%s", got, tt.wantMode)
			}
			if c.targetMovetime != tt.wantMovetime {
				t.Errorf("unexpected movetime: got=%s want=%s", c.targetMovetime, tt.wantMovetime)
			}
			if got := c.DepthLimit(); got != tt.wantDepth {
				t.Errorf("unexpected depth limit: got=%d want=%d", got, tt.wantDepth)
			}
			if c.targetNodes != tt.wantNodes {
				t.Errorf("unexpected nodes: got=%d want=%d", c.targetNodes, tt.wantNodes)
			}
			if c.Aborted() {
				t.Error("unexpected abort")
			}
		})
	}
}

func TestClockExhausted(t *testing.T) {
	t.Parallel()

	c := NewClock()
	c.Start(context.Background(), board.SideWhite, ClockConfig{Nodes: 100})
	if c.Exhausted(99) {
		t.Error("unexpected exhaustion below node budget")
	}
	if !c.Exhausted(100) {
		t.Error("expected exhaustion at node budget")
	}
	c.Stop()

	c.Start(context.Background(), board.SideWhite, ClockConfig{Movetime: 10 * time.Millisecond})
	time.Sleep(20 * time.Millisecond)
	if !c.Exhausted(0) {
		t.Error("expected exhaustion after movetime")
	}
	c.Stop()

	c.Start(context.Background(), board.SideWhite, ClockConfig{Depth: 3})
	if c.Exhausted(1 << 40) {
		t.Error("unexpected exhaustion in depth mode")
	}
	c.Stop()
}

func TestClockAbort(t *testing.T) {
	t.Parallel()

	c := NewClock()
	c.Start(context.Background(), board.SideWhite, ClockConfig{})
	c.Abort()
	if !c.Aborted() {
		t.Error("expected abort")
	}
	c.Stop()

	// the flag survives a restart until reset
	c.Start(context.Background(), board.SideWhite, ClockConfig{})
	if !c.Aborted() {
		t.Error("expected abort to survive restart")
	}
	c.Stop()
	c.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx, board.SideWhite, ClockConfig{})
	defer c.Stop()
	if c.Aborted() {
		t.Fatal("unexpected abort after restart")
	}
	cancel()
	deadline := time.Now().Add(time.Second)
	for !c.Aborted() {
		if time.Now().After(deadline) {
			t.Fatal("expected abort after context cancellation")
		}
		time.Sleep(time.Millisecond)
	}
}
