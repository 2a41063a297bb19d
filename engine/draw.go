package engine

import (
	"github.com/daystram/snail/board"
)

const fiftyMoveHalfMoves = 100

// repetitions is the key stack of every position since the game was loaded, search
// positions included. The top entry is the current position.
type repetitions struct {
	keys [board.MaxHistory + 1]uint64
	top  int
}

func (r *repetitions) reset(key uint64) {
	r.top = 0
	r.keys[0] = key
}

func (r *repetitions) push(key uint64) {
	r.top++
	r.keys[r.top] = key
}

func (r *repetitions) pop() {
	if r.top > 0 {
		r.top--
	}
}

// contains reports whether key occurred before the top of the stack.
func (r *repetitions) contains(key uint64) bool {
	for i := 0; i < r.top; i++ {
		if r.keys[i] == key {
			return true
		}
	}
	return false
}

// isFiftyMoveDraw applies the fifty-move rule. A side in check at the limit is only
// drawn while it still has a legal move.
func isFiftyMoveDraw(b *board.Board) bool {
	if b.HalfMoveClock() < fiftyMoveHalfMoves {
		return false
	}
	if !b.InCheck() {
		return true
	}
	var ml board.MoveList
	b.GenerateMoves(&ml, false)
	for _, mv := range ml.Moves() {
		if b.Apply(mv) {
			b.Undo()
			return true
		}
	}
	return false
}

func (e *Engine) isDraw() bool {
	if e.ply == 0 || !e.options.DrawDetection {
		return false
	}
	return e.reps.contains(e.board.Hash()) || isFiftyMoveDraw(e.board) || e.board.IsInsufficientMaterial()
}
