package main

import (
	"fmt"
	"io"

	"github.com/daystram/snail/bench"
)

func perft(w io.Writer, depth int, fen string, parallel bool) error {
	out := make(chan string, 64)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for s := range out {
			fmt.Fprintln(w, s)
		}
	}()

	_, err := bench.Perft(depth, fen, parallel, true, out)
	close(out)
	<-printed
	return err
}
