package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/snail/bench"
	"github.com/daystram/snail/board"
	"github.com/daystram/snail/book"
	"github.com/daystram/snail/engine"
)

var (
	EngineName   = "Snail"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		hashTableSize: engine.DefaultHashSizeMB,
		ownBook:       false,
		parallelPerft: true,
		personality:   personalityDefault,
	}
)

const (
	minHashTableSize = 1
	maxHashTableSize = 4096

	personalityDefault  = "Default"
	personalityBeginner = "Beginner"
)

type options struct {
	debug         bool
	hashTableSize int
	ownBook       bool
	parallelPerft bool
	personality   string
}

// Interface speaks the UCI protocol over a pair of streams.
type Interface struct {
	in      io.Reader
	out     io.Writer
	outMu   sync.Mutex
	logger  zerolog.Logger
	options options

	engine   *engine.Engine
	book     *book.Book
	position []string

	searchCancel context.CancelFunc
	searchDone   chan struct{}
}

func NewInterface(in io.Reader, out io.Writer, logger zerolog.Logger) *Interface {
	return &Interface{
		in:      in,
		out:     out,
		logger:  logger,
		options: defaultOptions,
	}
}

// Run serves commands until quit or the end of input. A running search is stopped
// before returning.
func (i *Interface) Run(ctx context.Context) error {
	i.reset()
	defer i.commandStop(ctx)

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}

		switch cmd := args[0]; cmd {
		case "uci":
			i.commandUCI(ctx)
		case "ucinewgame":
			i.commandNewGame(ctx)
		case "isready":
			i.commandReady(ctx)
		case "setoption":
			i.commandSetOption(ctx, args[1:])
		case "position":
			i.commandPosition(ctx, args[1:])
		case "d":
			i.commandDraw(ctx)
		case "eval":
			i.commandEval(ctx)
		case "go":
			i.commandGo(ctx, args[1:])
		case "stop":
			i.commandStop(ctx)
		case "quit":
			return nil
		default:
			i.logger.Warn().Str("command", cmd).Msg("unknown command")
		}
	}
	return scanner.Err()
}

func (i *Interface) commandUCI(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option name Hash type spin default %d min %d max %d",
		defaultOptions.hashTableSize, minHashTableSize, maxHashTableSize))
	i.println(fmt.Sprintf("option name OwnBook type check default %v", defaultOptions.ownBook))
	i.println(fmt.Sprintf("option name Personality type combo default %s var %s var %s",
		defaultOptions.personality, personalityDefault, personalityBeginner))
	i.println("uciok")
}

func (i *Interface) commandNewGame(ctx context.Context) {
	i.commandStop(ctx)
	i.engine.NewGame()
	i.commandPosition(ctx, []string{"startpos"})
}

func (i *Interface) commandReady(_ context.Context) {
	if i.engine != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(ctx context.Context, args []string) {
	name, value, err := parseSetOption(args)
	if err != nil {
		i.logger.Warn().Err(err).Strs("args", args).Msg("invalid setoption")
		return
	}

	switch strings.ToLower(name) {
	case "debug":
		v, err := strconv.ParseBool(value)
		if err != nil {
			i.logger.Warn().Err(err).Str("option", name).Msg("invalid option value")
			return
		}
		i.options.debug = v
	case "hash":
		v, err := strconv.Atoi(value)
		if err != nil || v < minHashTableSize || v > maxHashTableSize {
			i.logger.Warn().Str("option", name).Str("value", value).Msg("invalid option value")
			return
		}
		i.options.hashTableSize = v
	case "ownbook":
		v, err := strconv.ParseBool(value)
		if err != nil {
			i.logger.Warn().Err(err).Str("option", name).Msg("invalid option value")
			return
		}
		i.options.ownBook = v
	case "personality":
		switch {
		case strings.EqualFold(value, personalityDefault):
			i.options.personality = personalityDefault
		case strings.EqualFold(value, personalityBeginner):
			i.options.personality = personalityBeginner
		default:
			i.logger.Warn().Str("option", name).Str("value", value).Msg("invalid option value")
			return
		}
	default:
		i.logger.Warn().Str("option", name).Msg("unknown option")
		return
	}

	// options are fixed at construction, rebuild on the current position
	i.commandStop(ctx)
	i.reset()
}

// parseSetOption splits "name <id...> value <x...>", where both parts may contain spaces.
func parseSetOption(args []string) (string, string, error) {
	if len(args) < 2 || args[0] != "name" {
		return "", "", errors.New("missing option name")
	}
	var nameParts, valueParts []string
	inValue := false
	for _, arg := range args[1:] {
		switch {
		case arg == "value" && !inValue:
			inValue = true
		case inValue:
			valueParts = append(valueParts, arg)
		default:
			nameParts = append(nameParts, arg)
		}
	}
	if len(nameParts) == 0 {
		return "", "", errors.New("missing option name")
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " "), nil
}

func (i *Interface) commandPosition(_ context.Context, args []string) {
	if i.searching() {
		i.logger.Warn().Msg("position ignored while searching")
		return
	}
	if err := i.loadPosition(args); err != nil {
		i.logger.Warn().Err(err).Strs("args", args).Msg("invalid position")
		// fall back to the last good position, or the starting one if there is none
		if i.position == nil || i.loadPosition(i.position) != nil {
			i.position = []string{"startpos"}
			_ = i.loadPosition(i.position)
		}
		return
	}
	i.position = args
}

func (i *Interface) loadPosition(args []string) error {
	if len(args) == 0 {
		return errors.New("missing position")
	}

	var fen string
	var rest []string
	switch args[0] {
	case "startpos":
		fen, rest = board.DefaultStartingPositionFEN, args[1:]
	case "fen":
		end := len(args)
		for idx, arg := range args {
			if arg == "moves" {
				end = idx
				break
			}
		}
		fen, rest = strings.Join(args[1:end], " "), args[end:]
	default:
		return fmt.Errorf("unknown position type %s", args[0])
	}

	if err := i.engine.LoadFEN(fen); err != nil {
		return err
	}
	if len(rest) == 0 {
		return nil
	}
	if rest[0] != "moves" {
		return fmt.Errorf("unexpected token %s", rest[0])
	}
	for _, uci := range rest[1:] {
		mv, err := i.engine.ParseMove(uci)
		if err != nil {
			return err
		}
		if !i.engine.MakeMove(mv) {
			return fmt.Errorf("illegal move %s", uci)
		}
	}
	return nil
}

func (i *Interface) commandDraw(_ context.Context) {
	if i.searching() {
		return
	}
	b := i.engine.Board()
	i.println(b.Draw())
	i.println(fmt.Sprintf("Fen: %s", b.FEN()))
	i.println(fmt.Sprintf("Key: %016X", b.Hash()))
}

func (i *Interface) commandEval(_ context.Context) {
	if i.searching() {
		return
	}
	i.println(fmt.Sprintf("eval cp %d", i.engine.Evaluate()))
}

func (i *Interface) commandGo(ctx context.Context, args []string) {
	if i.searching() {
		i.logger.Warn().Msg("search already running")
		return
	}

	if len(args) > 0 && args[0] == "perft" {
		i.commandPerft(ctx, args[1:])
		return
	}

	cfg, err := parseGo(args)
	if err != nil {
		i.logger.Warn().Err(err).Strs("args", args).Msg("invalid go")
		return
	}

	searchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	i.searchCancel, i.searchDone = cancel, done
	go func() {
		defer close(done)
		defer cancel()

		res, err := i.engine.FindBestMove(searchCtx, cfg)
		if err != nil {
			i.logger.Warn().Err(err).Msg("search failed")
			return
		}
		if res.Opening != "" {
			i.println(fmt.Sprintf("info string book %s", res.Opening))
		}
		i.println(fmt.Sprintf("bestmove %s", res.BestMove().UCI()))
	}()
}

func (i *Interface) commandPerft(_ context.Context, args []string) {
	if len(args) != 1 {
		i.logger.Warn().Strs("args", args).Msg("invalid perft")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		i.logger.Warn().Strs("args", args).Msg("invalid perft depth")
		return
	}

	out := make(chan string, 64)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for s := range out {
			i.println(s)
		}
	}()

	_, err = bench.Perft(depth, i.engine.Board().FEN(), i.options.parallelPerft, true, out)
	close(out)
	<-printed
	if err != nil {
		i.logger.Warn().Err(err).Msg("perft failed")
	}
}

// parseGo reads the search limits of a go command. Times are in milliseconds.
func parseGo(args []string) (engine.ClockConfig, error) {
	var cfg engine.ClockConfig
	for idx := 0; idx < len(args); idx++ {
		key := args[idx]
		if key == "infinite" {
			cfg = engine.ClockConfig{}
			continue
		}
		if idx+1 >= len(args) {
			return cfg, fmt.Errorf("missing value for %s", key)
		}
		idx++
		value, err := strconv.ParseInt(args[idx], 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid value for %s: %w", key, err)
		}

		switch key {
		case "wtime":
			cfg.WhiteTime = max(time.Duration(value)*time.Millisecond, time.Millisecond)
		case "btime":
			cfg.BlackTime = max(time.Duration(value)*time.Millisecond, time.Millisecond)
		case "winc":
			cfg.WhiteIncrement = time.Duration(value) * time.Millisecond
		case "binc":
			cfg.BlackIncrement = time.Duration(value) * time.Millisecond
		case "movetime":
			cfg.Movetime = time.Duration(value) * time.Millisecond
		case "depth":
			cfg.Depth = int(value)
		case "nodes":
			cfg.Nodes = uint64(value)
		case "movestogo", "mate":
		default:
			return cfg, fmt.Errorf("unknown go parameter %s", key)
		}
	}
	return cfg, nil
}

// searching reports whether the last search is still running, forgetting it once done.
func (i *Interface) searching() bool {
	if i.searchDone == nil {
		return false
	}
	select {
	case <-i.searchDone:
		i.searchCancel, i.searchDone = nil, nil
		return false
	default:
		return true
	}
}

func (i *Interface) commandStop(_ context.Context) {
	if i.searchDone == nil {
		return
	}
	i.searchCancel()
	<-i.searchDone
	i.searchCancel, i.searchDone = nil, nil
}

// reset rebuilds the engine from the current options and replays the last position.
func (i *Interface) reset() {
	level := zerolog.InfoLevel
	if i.options.debug {
		level = zerolog.DebugLevel
	}
	opts := []engine.Option{
		engine.WithHashSize(i.options.hashTableSize),
		engine.WithLogger(i.logger.With().Str("component", "engine").Logger().Level(level)),
		engine.WithProgress(i.printProgress),
	}
	if i.options.personality == personalityBeginner {
		opts = append(opts, engine.WithSearchOptions(engine.BeginnerSearchOptions()))
	}
	if i.options.ownBook {
		if i.book == nil {
			i.book = book.New()
		}
		opts = append(opts, engine.WithBook(i.book))
	}
	i.engine = engine.NewEngine(opts...)

	if i.position != nil {
		if err := i.loadPosition(i.position); err != nil {
			i.logger.Warn().Err(err).Msg("could not restore position")
			i.position = nil
		}
	}
}

func (i *Interface) printProgress(p engine.Progress) {
	i.println(fmt.Sprintf("info depth %d score %s nodes %d nps %.0f time %d pv %s",
		p.Depth, p.ScoreUCI(), p.Nodes, p.NPS, p.Elapsed.Milliseconds(), p.PV.StringUCI()))
}

func (i *Interface) println(a ...any) {
	i.outMu.Lock()
	defer i.outMu.Unlock()
	_, _ = fmt.Fprintln(i.out, a...)
}
