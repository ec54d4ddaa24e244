package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farfromperfect/ffp/internal/engine"
	"github.com/farfromperfect/ffp/internal/uci"
)

var rootCmd = &cobra.Command{
	Use:   "ffp",
	Short: "ffp is a bitboard chess engine with a UCI frontend",
	RunE:  runRoot,
}

var (
	uciMode      bool
	fen          string
	perftDepth   int
	searchDepth  int
	searchTimeMs int
)

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&uciMode, "uci", "u", false, "start the UCI frontend and read commands from stdin")
	flags.StringVarP(&fen, "fen", "f", "", "load a position from FEN instead of the starting position")
	flags.IntVar(&perftDepth, "perft", 0, "run perft to the given depth and print the leaf count")
	flags.IntVarP(&searchDepth, "search", "s", 0, "search to the given depth and print the best move")
	flags.IntVar(&searchTimeMs, "search-time", 0, "search for the given time budget in milliseconds")
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if uciMode {
		uci.New(engine.NewEngine()).Run()
		return nil
	}

	eng := engine.NewEngine()
	if cmd.Flags().Changed("fen") {
		if err := eng.LoadFEN(fen); err != nil {
			return fmt.Errorf("invalid FEN: %w", err)
		}
	}

	didAction := false

	if cmd.Flags().Changed("perft") {
		nodes := eng.Perft(perftDepth)
		fmt.Printf("nodes %d\n", nodes)
		didAction = true
	}

	if cmd.Flags().Changed("search") || cmd.Flags().Changed("search-time") {
		limits := engine.SearchLimits{MaxDepth: searchDepth, TimeMs: searchTimeMs}
		result := eng.Search(limits)
		fmt.Printf("bestmove %s\n", result.BestMove.String())
		didAction = true
	}

	if !didAction {
		fmt.Print(renderBoard(eng.Position()))
	}

	return nil
}
