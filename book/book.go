// Package book suggests opening moves from the ECO classification of openings.
package book

import (
	"errors"
	"fmt"
	"sort"

	"github.com/notnil/chess"
	"github.com/notnil/chess/opening"
)

var ErrNoBookMove = errors.New("no book move")

type Book struct {
	eco *opening.BookECO
}

func New() *Book {
	return &Book{eco: opening.NewBookECO()}
}

// Lookup returns the next move of the longest known opening continuing history, a
// list of coordinate notation moves played from the standard starting position.
func (bk *Book) Lookup(history []string) (string, string, error) {
	game := chess.NewGame()
	for _, uci := range history {
		mv, err := chess.UCINotation{}.Decode(game.Position(), uci)
		if err != nil {
			return "", "", fmt.Errorf("invalid history move %s: %w", uci, err)
		}
		if err := game.Move(mv); err != nil {
			return "", "", fmt.Errorf("illegal history move %s: %w", uci, err)
		}
	}
	played := game.Moves()

	candidates := bk.eco.Possible(played)
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i].PGN()) != len(candidates[j].PGN()) {
			return len(candidates[i].PGN()) > len(candidates[j].PGN())
		}
		return candidates[i].PGN() < candidates[j].PGN()
	})
	for _, op := range candidates {
		moves := op.Game().Moves()
		if len(moves) <= len(played) || !hasPrefix(moves, played) {
			continue
		}
		return moves[len(played)].String(), op.Title(), nil
	}
	return "", "", ErrNoBookMove
}

func hasPrefix(line, prefix []*chess.Move) bool {
	for i, mv := range prefix {
		if line[i].String() != mv.String() {
			return false
		}
	}
	return true
}
