package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/daystram/snail/board"
)

func movegen(w io.Writer, fen string, draw bool) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "to move:", b.Turn())
	fmt.Fprintln(w, b.Dump())
	fmt.Fprintln(w, b.Draw())
	fmt.Fprintln(w, b.State())
	dumpMoves(w, b)

	if draw {
		for _, mv := range b.GenerateLegalMoves() {
			b.Apply(mv)
			fmt.Fprintln(w, mv)
			fmt.Fprintln(w, b.Draw())
			fmt.Fprintln(w, b.FEN())
			b.Undo()
		}
	}
	return nil
}

func dumpMoves(w io.Writer, b *board.Board) {
	mvs := b.GenerateLegalMoves()
	for i, mv := range mvs {
		piece, _ := b.PieceAt(mv.From())
		fmt.Fprintf(w, "option %*d: [%s] %s %s %s => %s (cap=%v) (enp=%v) (cas=%v) (pro=%s)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), b.Turn(), piece, mv.From(), mv.To(),
			mv.IsCapture(), mv.IsEnPassant(), mv.IsCastle(), mv.Promote())
	}
}
