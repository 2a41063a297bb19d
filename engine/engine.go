package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/snail/board"
	"github.com/daystram/snail/book"
)

const (
	MaxPly = 128

	Infinity  = 30000
	Mate      = 29000
	MateScore = 28000

	aspirationWindow = 50
)

var ErrEngineBusy = errors.New("engine busy")

// SearchOptions switches individual search features.
type SearchOptions struct {
	Quiescence     bool
	DrawDetection  bool
	PVS            bool
	LMR            bool
	NMP            bool
	SEEPruning     bool
	LMP            bool
	Razoring       bool
	RFP            bool
	IIR            bool
	CheckExtension bool
}

// BeginnerSearchOptions turns every search feature off, leaving a plain fixed-depth
// negamax that misses tactics beyond its horizon.
func BeginnerSearchOptions() SearchOptions {
	return SearchOptions{}
}

func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Quiescence:     true,
		DrawDetection:  true,
		PVS:            true,
		LMR:            true,
		NMP:            true,
		SEEPruning:     true,
		LMP:            true,
		Razoring:       true,
		RFP:            true,
		IIR:            true,
		CheckExtension: true,
	}
}

// Progress is published after every completed iteration. When Mate is set, Score is
// the signed number of moves to mate.
type Progress struct {
	Depth   int
	Nodes   uint64
	Score   int
	Mate    bool
	NPS     float64
	Elapsed time.Duration
	PV      PVLine
}

// Result is the outcome of the last completed iteration.
type Result struct {
	Depth   int
	Score   int
	Nodes   uint64
	Elapsed time.Duration
	PV      PVLine

	// Opening is set when the move was taken from the opening book.
	Opening string
}

func (r Result) BestMove() board.Move {
	return r.PV.BestMove()
}

// MateIn returns the signed moves to mate when Score is a mate score.
func (r Result) MateIn() (int, bool) {
	return mateDistance(r.Score)
}

type Option func(*Engine)

func WithHashSize(sizeMB int) Option {
	return func(e *Engine) {
		e.tt = NewTranspositionTable(sizeMB)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithEvaluator(ev Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = ev
	}
}

func WithSearchOptions(opts SearchOptions) Option {
	return func(e *Engine) {
		e.options = opts
	}
}

func WithProgress(f func(Progress)) Option {
	return func(e *Engine) {
		e.progress = f
	}
}

// WithBook plays book moves while the game, loaded from the standard starting
// position, is still inside a known opening line.
func WithBook(bk *book.Book) Option {
	return func(e *Engine) {
		e.book = bk
	}
}

// Engine owns one position and the state of the search running on it. It runs a
// single search at a time; AbortSearch and IsBusy may be called concurrently.
type Engine struct {
	board     *board.Board
	tt        *TranspositionTable
	evaluator Evaluator
	clock     *Clock
	book      *book.Book
	options   SearchOptions
	progress  func(Progress)
	logger    zerolog.Logger

	reps repetitions
	// moves played from the standard starting position, nil for other positions
	line []string

	pv         PVTable
	heur       heuristics
	nodes      uint64
	ply        int
	rootDepth  int
	researches int

	busy atomic.Bool
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:   NewClock(),
		options: DefaultSearchOptions(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tt == nil {
		e.tt = NewTranspositionTable(DefaultHashSizeMB)
	}
	if e.evaluator == nil {
		e.evaluator = NewTaperedEvaluator(DefaultPawnCacheSizeMB)
	}
	e.board, _ = board.NewBoard()
	e.reps.reset(e.board.Hash())
	e.line = []string{}
	return e
}

// LoadPosition replaces the position and forgets the game history.
func (e *Engine) LoadPosition(d board.Descriptor) error {
	if e.IsBusy() {
		return ErrEngineBusy
	}
	e.board.Load(d)
	e.reps.reset(e.board.Hash())
	e.line = nil
	if isStartingPosition(d) {
		e.line = []string{}
	}
	return nil
}

func (e *Engine) LoadFEN(fen string) error {
	d, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	return e.LoadPosition(d)
}

// MakeMove plays mv if it is legal, leaving the position untouched otherwise.
func (e *Engine) MakeMove(mv board.Move) bool {
	if e.IsBusy() || !e.isPseudoLegal(mv) || !e.board.Apply(mv) {
		return false
	}
	e.reps.push(e.board.Hash())
	if e.line != nil {
		e.line = append(e.line, mv.UCI())
	}
	return true
}

func (e *Engine) UndoMove() bool {
	if e.IsBusy() || !e.board.Undo() {
		return false
	}
	e.reps.pop()
	if len(e.line) > 0 {
		e.line = e.line[:len(e.line)-1]
	}
	return true
}

// NewGame clears the caches tied to the previous game.
func (e *Engine) NewGame() {
	if e.IsBusy() {
		return
	}
	e.tt.Clear()
	if c, ok := e.evaluator.(interface{ Clear() }); ok {
		c.Clear()
	}
}

// Board returns a copy of the current position.
func (e *Engine) Board() *board.Board {
	return e.board.Clone()
}

// ParseMove resolves a UCI move string against the current position without copying it.
func (e *Engine) ParseMove(uci string) (board.Move, error) {
	if e.IsBusy() {
		return board.NoMove, ErrEngineBusy
	}
	return e.board.ParseMove(uci)
}

// Evaluate returns the static evaluation of the current position.
func (e *Engine) Evaluate() int {
	return e.evaluator.Evaluate(e.board)
}

func (e *Engine) SearchOptions() SearchOptions {
	return e.options
}

func (e *Engine) IsBusy() bool {
	return e.busy.Load()
}

// AbortSearch stops a running search. FindBestMove then returns the last completed iteration.
func (e *Engine) AbortSearch() {
	if e.IsBusy() {
		e.clock.Abort()
	}
}

// TranspositionStats returns the hits, misses and writes of the last search.
func (e *Engine) TranspositionStats() (int, int, int) {
	return e.tt.Stats()
}

// FindBestMove searches the current position within the budget of cfg. Cancelling
// ctx stops the search like AbortSearch does.
func (e *Engine) FindBestMove(ctx context.Context, cfg ClockConfig) (Result, error) {
	if e.IsBusy() {
		return Result{}, ErrEngineBusy
	}
	// clear a stale abort while idle, AbortSearch is a no-op until busy is set
	e.clock.Reset()
	if !e.busy.CompareAndSwap(false, true) {
		return Result{}, ErrEngineBusy
	}
	defer e.busy.Store(false)

	if mv, name, ok := e.bookMove(); ok {
		e.logger.Debug().Str("move", mv.UCI()).Str("opening", name).Msg("book move")
		return Result{PV: PVLine{mv}, Opening: name}, nil
	}

	e.clock.Start(ctx, e.board.Turn(), cfg)
	defer e.clock.Stop()

	e.pv.Clear()
	e.heur.clear()
	e.tt.ResetStats()
	e.nodes = 0
	e.ply = 0
	e.researches = 0
	e.logger.Debug().
		Str("fen", e.board.FEN()).
		Stringer("mode", e.clock.Mode()).
		Msg("search started")

	res := e.searchRoot()
	if res.BestMove().IsNull() {
		if mvs := e.board.GenerateLegalMoves(); len(mvs) > 0 {
			res.PV = PVLine{mvs[0]}
		}
	}

	hits, misses, writes := e.tt.Stats()
	e.logger.Debug().
		Str("bestmove", res.BestMove().UCI()).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Int("researches", e.researches).
		Int("tt_hits", hits).
		Int("tt_misses", misses).
		Int("tt_writes", writes).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")
	return res, nil
}

// searchRoot deepens iteratively behind an aspiration window, re-searching the same
// depth with a full window whenever the score lands outside it.
func (e *Engine) searchRoot() Result {
	var res Result
	alpha, beta := -Infinity, Infinity
	for depth := 1; depth <= e.clock.DepthLimit(); {
		e.ply = 0
		e.rootDepth = depth
		score := e.negamax(alpha, beta, depth)
		if e.clock.Aborted() {
			break
		}

		if score <= alpha || score >= beta {
			e.logger.Debug().Int("depth", depth).Int("score", score).Int("alpha", alpha).Int("beta", beta).Msg("aspiration miss")
			alpha, beta = -Infinity, Infinity
			e.researches++
			continue
		}

		res.Depth = depth
		res.Score = score
		res.Nodes = e.nodes
		res.Elapsed = e.clock.Elapsed()
		if line := e.pv.Line(); len(line) > 0 {
			res.PV = line
			e.report(res)
		}

		alpha, beta = score-aspirationWindow, score+aspirationWindow
		depth++
	}
	res.Nodes = e.nodes
	res.Elapsed = e.clock.Elapsed()
	return res
}

func (e *Engine) report(res Result) {
	nps := float64(res.Nodes) / max(res.Elapsed.Seconds(), 1e-5)
	score, mate := mateDistance(res.Score)
	if !mate {
		score = res.Score
	}
	if e.logger.GetLevel() <= zerolog.DebugLevel {
		e.logger.Debug().Msg(message.NewPrinter(language.English).
			Sprintf("depth:%d [%s] nodes:%d (%.0fn/s) t:%s\n    %s",
				res.Depth, formatScoreDebug(score, mate), res.Nodes, nps, res.Elapsed, res.PV.String(e.board)))
	}
	if e.progress != nil {
		e.progress(Progress{
			Depth:   res.Depth,
			Nodes:   res.Nodes,
			Score:   score,
			Mate:    mate,
			NPS:     nps,
			Elapsed: res.Elapsed,
			PV:      res.PV,
		})
	}
}

func (e *Engine) bookMove() (board.Move, string, bool) {
	if e.book == nil || e.line == nil {
		return board.NoMove, "", false
	}
	uci, name, err := e.book.Lookup(e.line)
	if err != nil {
		return board.NoMove, "", false
	}
	mv, err := e.board.ParseMove(uci)
	if err != nil || !e.board.Apply(mv) {
		return board.NoMove, "", false
	}
	e.board.Undo()
	return mv, name, true
}

func (e *Engine) isPseudoLegal(mv board.Move) bool {
	var ml board.MoveList
	e.board.GenerateMoves(&ml, false)
	return ml.Contains(mv)
}

var startingPosition, _ = board.ParseFEN(board.DefaultStartingPositionFEN)

func isStartingPosition(d board.Descriptor) bool {
	d.HalfMoveClock, d.FullMoveClock = startingPosition.HalfMoveClock, startingPosition.FullMoveClock
	return d == startingPosition
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	return min(max(x, lo), hi)
}
