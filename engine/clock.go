package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/daystram/snail/board"
)

const (
	// nodes between two budget checks
	clockCheckInterval = 2048

	gameTimeDivisor      = 20
	gameIncrementDivisor = 2
	minMovetime          = time.Millisecond
)

type ClockMode uint8

const (
	ClockModeInfinite ClockMode = iota
	ClockModeMovetime
	ClockModeDepth
	ClockModeNodes
)

func (m ClockMode) String() string {
	switch m {
	case ClockModeMovetime:
		return "movetime"
	case ClockModeDepth:
		return "depth"
	case ClockModeNodes:
		return "nodes"
	default:
		return "infinite"
	}
}

// ClockConfig is the search budget. The first non-zero of game time, Movetime, Depth
// and Nodes selects the mode; an empty config searches until aborted.
type ClockConfig struct {
	WhiteTime      time.Duration
	BlackTime      time.Duration
	WhiteIncrement time.Duration
	BlackIncrement time.Duration

	Movetime time.Duration

	Depth int

	Nodes uint64
}

// Clock tracks the budget of one search and carries its abort flag.
type Clock struct {
	mode           ClockMode
	targetMovetime time.Duration
	targetDepth    int
	targetNodes    uint64

	start  time.Time
	abort  atomic.Bool
	stopCh chan struct{}
}

func NewClock() *Clock {
	return &Clock{}
}

// Reset clears the abort flag ahead of a new search.
func (c *Clock) Reset() {
	c.abort.Store(false)
}

// Start arms the clock for the side to move. Cancelling ctx aborts the search. An
// abort requested since the last Reset is kept.
func (c *Clock) Start(ctx context.Context, turn board.Side, cfg ClockConfig) {
	c.Stop()
	c.targetMovetime = 0
	c.targetDepth = MaxPly - 1
	c.targetNodes = 0
	c.start = time.Now()

	switch {
	case cfg.WhiteTime != 0 || cfg.BlackTime != 0:
		c.mode = ClockModeMovetime
		if turn == board.SideWhite {
			c.targetMovetime = allocateMovetime(cfg.WhiteTime, cfg.WhiteIncrement)
		} else {
			c.targetMovetime = allocateMovetime(cfg.BlackTime, cfg.BlackIncrement)
		}
	case cfg.Movetime != 0:
		c.mode = ClockModeMovetime
		c.targetMovetime = max(cfg.Movetime, minMovetime)
	case cfg.Depth != 0:
		c.mode = ClockModeDepth
		c.targetDepth = clamp(cfg.Depth, 1, MaxPly-1)
	case cfg.Nodes != 0:
		c.mode = ClockModeNodes
		c.targetNodes = cfg.Nodes
	default:
		c.mode = ClockModeInfinite
	}

	stopCh := make(chan struct{})
	c.stopCh = stopCh
	go func() {
		select {
		case <-ctx.Done():
			c.abort.Store(true)
		case <-stopCh:
		}
	}()
}

// Stop releases the context watcher. The abort flag is left as is.
func (c *Clock) Stop() {
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
}

func allocateMovetime(remaining, increment time.Duration) time.Duration {
	return max(remaining/gameTimeDivisor+increment/gameIncrementDivisor, minMovetime)
}

func (c *Clock) Mode() ClockMode {
	return c.mode
}

func (c *Clock) Abort() {
	c.abort.Store(true)
}

func (c *Clock) Aborted() bool {
	return c.abort.Load()
}

func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// DepthLimit is the deepest iteration the budget allows.
func (c *Clock) DepthLimit() int {
	return c.targetDepth
}

// Exhausted reports whether the time or node budget is used up.
func (c *Clock) Exhausted(nodes uint64) bool {
	switch c.mode {
	case ClockModeMovetime:
		return c.Elapsed() >= c.targetMovetime
	case ClockModeNodes:
		return nodes >= c.targetNodes
	default:
		return false
	}
}
