package engine

import (
	"math"

	"github.com/daystram/snail/board"
)

const (
	scoreSortTTMove              = 32700
	scoreSortPromotion           = 25000
	scoreSortGoodCapture         = 20000
	scoreSortGoodCapturePromo    = 8000
	scoreSortKiller1             = 8000
	scoreSortKiller2             = 7000
	scoreSortKiller3             = 6000
	scoreSortHistoryMax          = 5000
	scoreSortBadCapturePromo     = 1000
	lateMoveReductionDepth       = 3
	lateMoveReductionMoveCount   = 4
	killerSlots                  = 3
	historyGoodThresholdFraction = 3
)

var (
	// mvvLVA[attacker][victim]: most valuable victim first, least valuable attacker breaking ties.
	mvvLVA [6 + 1][6 + 1]int

	// lmrReductions[depth][move index]
	lmrReductions [MaxPly][board.MaxMoves]int
)

func init() {
	for att := board.PiecePawn; att <= board.PieceKing; att++ {
		for vic := board.PiecePawn; vic <= board.PieceKing; vic++ {
			mvvLVA[att][vic] = int(vic)*100 + int(board.PieceKing-att)
		}
	}
	for d := 1; d < MaxPly; d++ {
		for m := 1; m < board.MaxMoves; m++ {
			lmrReductions[d][m] = int(0.4*math.Log(float64(min(d, 31))) + 1.057*math.Log(float64(min(m, 31))))
		}
	}
}

type scoredMoves struct {
	moves  board.MoveList
	scores [board.MaxMoves]int
}

// heuristics holds the quiet move ordering state of one search.
type heuristics struct {
	killers [MaxPly][killerSlots]board.Move
	history [2][64][64]int
}

func (h *heuristics) clear() {
	h.killers = [MaxPly][killerSlots]board.Move{}
	h.history = [2][64][64]int{}
}

func (h *heuristics) isKiller(mv board.Move, ply int) bool {
	k := &h.killers[ply]
	return k[0] == mv || k[1] == mv || k[2] == mv
}

func (h *heuristics) storeKiller(mv board.Move, ply int) {
	k := &h.killers[ply]
	k[2], k[1], k[0] = k[1], k[0], mv
}

// storeHistory adds a depth squared bonus that saturates toward scoreSortHistoryMax.
func (h *heuristics) storeHistory(s board.Side, mv board.Move, depth int) {
	bonus := depth * depth
	v := &h.history[s][mv.From()][mv.To()]
	*v += bonus - *v*abs(bonus)/256
	*v = clamp(*v, -scoreSortHistoryMax, scoreSortHistoryMax)
}

func (h *heuristics) hasGoodHistory(s board.Side, mv board.Move) bool {
	return h.history[s][mv.From()][mv.To()] >= scoreSortHistoryMax/historyGoodThresholdFraction
}

func (h *heuristics) scoreMove(b *board.Board, mv, ttMove board.Move, ply int) int {
	if !ttMove.IsNull() && mv == ttMove {
		return scoreSortTTMove
	}

	if mv.IsQuiet() {
		k := &h.killers[ply]
		switch mv {
		case k[0]:
			return scoreSortKiller1
		case k[1]:
			return scoreSortKiller2
		case k[2]:
			return scoreSortKiller3
		}
		return h.history[b.Turn()][mv.From()][mv.To()]
	}

	if !mv.IsCapture() {
		return scoreSortPromotion
	}

	attacker, _ := b.PieceAt(mv.From())
	victim := board.PiecePawn
	if !mv.IsEnPassant() {
		victim, _ = b.PieceAt(mv.To())
	}
	score := mvvLVA[attacker][victim]
	if SEE(b, mv, -seeValue[board.PiecePawn]) {
		score += scoreSortGoodCapture
		if mv.IsPromote() {
			score += scoreSortGoodCapturePromo
		}
	} else if mv.IsPromote() {
		score += scoreSortBadCapturePromo
	}
	return score
}

func (h *heuristics) scoreMoves(b *board.Board, sm *scoredMoves, ttMove board.Move, ply int) {
	for i := 0; i < sm.moves.Len(); i++ {
		sm.scores[i] = h.scoreMove(b, sm.moves.At(i), ttMove, ply)
	}
}

// pick moves the best scored move from index i onward into slot i and returns it.
func (sm *scoredMoves) pick(i int) (board.Move, int) {
	best := i
	for j := i + 1; j < sm.moves.Len(); j++ {
		if sm.scores[j] > sm.scores[best] {
			best = j
		}
	}
	if best != i {
		sm.moves.Swap(i, best)
		sm.scores[i], sm.scores[best] = sm.scores[best], sm.scores[i]
	}
	return sm.moves.At(i), sm.scores[i]
}
