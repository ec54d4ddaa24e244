// Command ffp is a command-line harness over the board/engine/uci
// packages: it can print a position, run perft, search a position to a
// given depth or time budget, or hand control to a UCI frontend.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
