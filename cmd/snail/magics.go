package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/daystram/snail/board"
)

// magics searches rook and bishop multipliers and prints them in the layout of the
// board package's magic table.
func magics(w io.Writer, seed uint32) error {
	builder := strings.Builder{}
	_, _ = builder.WriteString("var (\n")
	for _, p := range []board.Piece{board.PieceRook, board.PieceBishop} {
		entries, err := board.FindMagics(p, seed, board.DefaultMagicAttempts)
		if err != nil {
			return err
		}
		_, _ = builder.WriteString(fmt.Sprintf("\t%sMagicNumbers = [TotalCells]uint64{\n", strings.ToLower(p.Name())))
		for _, entry := range entries {
			_, _ = builder.WriteString(fmt.Sprintf("\t\t0x%016X,\n", entry.Magic))
		}
		_, _ = builder.WriteString("\t}\n")
	}
	_, _ = builder.WriteString(")\n")

	_, err := io.WriteString(w, builder.String())
	return err
}
