package engine

import (
	"github.com/daystram/snail/board"
)

const (
	nullMoveReduction = 2

	reverseFutilityDepth  = 7
	reverseFutilityMargin = 70
	razoringDepth         = 5
	razoringMargin        = 256
	iirDepth              = 4

	seePruningDepth        = 8
	seeQuietMargin         = -85
	seeCaptureMargin       = -35
	lateMovePruningDepth   = 5
	lateMovePruningFactor  = 4
	checkExtensionPlyRatio = 2
)

// negamax is a fail-hard principal variation search.
func (e *Engine) negamax(alpha, beta, depth int) int {
	e.pv.start(e.ply)
	pvNode := beta-alpha > 1

	if e.clock.Aborted() {
		return 0
	}
	if depth > 0 && e.nodes%clockCheckInterval == 0 && e.clock.Exhausted(e.nodes) {
		e.clock.Abort()
		return 0
	}

	if e.isDraw() {
		return 0
	}
	if e.ply >= MaxPly-1 {
		return e.evaluator.Evaluate(e.board)
	}

	hash := e.board.Hash()
	tte, ttHit := e.tt.Get(hash, e.ply)
	if !pvNode && ttHit && int(tte.Depth) >= depth {
		switch tte.Type {
		case EntryTypeExact:
			return tte.Score
		case EntryTypeUpperBound:
			if tte.Score <= alpha {
				return alpha
			}
		case EntryTypeLowerBound:
			if tte.Score >= beta {
				return beta
			}
		}
	}

	inCheck := e.board.InCheck()
	// extensions stop at twice the iteration depth
	if e.options.CheckExtension && inCheck && e.ply < checkExtensionPlyRatio*e.rootDepth {
		depth++
	}

	if depth < 1 {
		return e.quiescence(alpha, beta)
	}

	e.nodes++

	var eval int
	if ttHit {
		eval = tte.Eval
	} else {
		eval = e.evaluator.Evaluate(e.board)
	}

	if e.options.IIR && !ttHit && depth > iirDepth {
		depth--
	}

	if !pvNode && !inCheck {
		if e.options.RFP && depth < reverseFutilityDepth && eval-reverseFutilityMargin*depth >= beta {
			return eval
		}

		if e.options.NMP && depth >= 3 && e.board.HasNonPawnMaterial(e.board.Turn()) && e.board.ApplyNull() {
			e.ply++
			e.reps.push(e.board.Hash())
			score := -e.negamax(-beta, 1-beta, depth-nullMoveReduction-1)
			e.board.Undo()
			e.ply--
			e.reps.pop()

			if e.clock.Aborted() {
				return 0
			}
			if score >= beta {
				return beta
			}
		}

		if e.options.Razoring && depth <= razoringDepth && eval+razoringMargin*depth < alpha {
			if score := e.quiescence(alpha, beta); score <= alpha {
				return score
			}
		}
	}

	ttMove := board.NoMove
	if ttHit {
		ttMove = tte.Move
	}

	var sm scoredMoves
	e.board.GenerateMoves(&sm.moves, false)
	e.heur.scoreMoves(e.board, &sm, ttMove, e.ply)

	ttType := EntryTypeUpperBound
	bestMove := ttMove
	skipQuiets := false
	legal, searched := 0, 0
	for i := 0; i < sm.moves.Len(); i++ {
		mv, sortScore := sm.pick(i)
		if skipQuiets && mv.IsQuiet() {
			continue
		}

		if !inCheck && alpha > -MateScore && sortScore < scoreSortKiller3 {
			if e.options.SEEPruning && searched > 0 && depth <= seePruningDepth && !SEE(e.board, mv, seeMargin(mv, depth)) {
				continue
			}
			if e.options.LMP && mv.IsQuiet() && depth <= lateMovePruningDepth && searched >= lateMovePruningFactor*depth*depth {
				skipQuiets = true
				continue
			}
		}

		reducible := e.options.LMR && searched >= lateMoveReductionMoveCount && depth >= lateMoveReductionDepth &&
			!inCheck && !pvNode && e.canReduce(mv, ttMove)

		if !e.board.Apply(mv) {
			continue
		}
		legal++
		e.ply++
		e.reps.push(e.board.Hash())

		var score int
		if searched == 0 {
			score = -e.negamax(-beta, -alpha, depth-1)
		} else {
			if reducible {
				score = -e.negamax(-alpha-1, -alpha, depth-lmrReductions[min(depth, MaxPly-1)][searched])
			} else {
				score = alpha + 1
			}
			if score > alpha {
				if e.options.PVS {
					score = -e.negamax(-alpha-1, -alpha, depth-1)
				} else {
					score = alpha + 1
				}
				if score > alpha && score < beta {
					score = -e.negamax(-beta, -alpha, depth-1)
				}
			}
		}

		e.board.Undo()
		e.ply--
		e.reps.pop()
		searched++

		if e.clock.Aborted() {
			return 0
		}

		if score > alpha {
			e.pv.update(e.ply, mv)
			alpha = score
			ttType = EntryTypeExact
			bestMove = mv

			if score >= beta {
				if mv.IsQuiet() {
					e.heur.storeHistory(e.board.Turn(), mv, depth)
					e.heur.storeKiller(mv, e.ply)
				}
				e.tt.Set(hash, EntryTypeLowerBound, bestMove, beta, eval, uint8(depth), e.ply)
				return beta
			}
		}
	}

	if legal == 0 {
		if inCheck {
			return -Mate + e.ply
		}
		return 0
	}

	e.tt.Set(hash, ttType, bestMove, alpha, eval, uint8(depth), e.ply)
	return alpha
}

// quiescence resolves captures until the position is quiet, standing pat on the
// static evaluation.
func (e *Engine) quiescence(alpha, beta int) int {
	if e.clock.Aborted() || e.isDraw() {
		return 0
	}
	e.nodes++

	eval := e.evaluator.Evaluate(e.board)
	if !e.options.Quiescence || e.ply >= MaxPly-1 {
		return eval
	}
	if eval >= beta {
		return beta
	}
	if eval > alpha {
		alpha = eval
	}

	inCheck := e.board.InCheck()

	var sm scoredMoves
	e.board.GenerateMoves(&sm.moves, true)
	e.heur.scoreMoves(e.board, &sm, board.NoMove, e.ply)

	for i := 0; i < sm.moves.Len(); i++ {
		mv, sortScore := sm.pick(i)
		// losing captures
		if e.options.SEEPruning && !inCheck && sortScore < scoreSortKiller3 {
			continue
		}

		if !e.board.Apply(mv) {
			continue
		}
		e.ply++
		e.reps.push(e.board.Hash())
		score := -e.quiescence(-beta, -alpha)
		e.board.Undo()
		e.ply--
		e.reps.pop()

		if score > alpha {
			alpha = score
			if score >= beta {
				return beta
			}
		}
	}

	return alpha
}

// canReduce excludes the hash move, noisy moves, killers and quiets with a strong history.
func (e *Engine) canReduce(mv, ttMove board.Move) bool {
	if mv == ttMove || !mv.IsQuiet() {
		return false
	}
	return !e.heur.isKiller(mv, e.ply) && !e.heur.hasGoodHistory(e.board.Turn(), mv)
}

func seeMargin(mv board.Move, depth int) int {
	if mv.IsQuiet() {
		return seeQuietMargin * depth
	}
	return seeCaptureMargin * depth * depth
}
