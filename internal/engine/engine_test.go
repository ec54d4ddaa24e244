package engine

import (
	"sync/atomic"
	"testing"

	"github.com/farfromperfect/ffp/internal/board"
)

func TestSearchStartPositionReturnsLegalMove(t *testing.T) {
	eng := NewEngine()

	result := eng.Search(SearchLimits{MaxDepth: 1})
	if result.BestMove == board.NoMove {
		t.Fatal("Search returned NoMove for starting position")
	}

	legal := eng.Position().GenerateLegal()
	if !legal.Contains(result.BestMove) {
		t.Errorf("Search returned %s, which is not among the root legal moves", result.BestMove)
	}
	if result.Score != 0 {
		t.Errorf("startpos is materially symmetric, expected score 0, got %d", result.Score)
	}
}

func TestSearchScholarsMateReportsNoLegalMoves(t *testing.T) {
	eng := NewEngine()
	if err := eng.LoadFEN("r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}

	if !eng.Position().InCheck() {
		t.Fatal("expected mated side to be in check")
	}
	legal := eng.Position().GenerateLegal()
	if legal.Len() != 0 {
		t.Fatalf("expected no legal moves, got %d", legal.Len())
	}

	result := eng.Search(SearchLimits{MaxDepth: 1})
	if result.BestMove != board.NoMove {
		t.Errorf("expected NoMove with no legal moves, got %s", result.BestMove)
	}
	if result.Score != -Mate {
		t.Errorf("expected score -Mate (%d), got %d", -Mate, result.Score)
	}
}

func TestSearchDepthReachedEqualsMaxDepth(t *testing.T) {
	eng := NewEngine()
	result := eng.Search(SearchLimits{MaxDepth: 3})
	if result.DepthReached != 3 {
		t.Errorf("expected DepthReached 3, got %d", result.DepthReached)
	}
	if result.Aborted {
		t.Error("unbounded small-depth search should not report aborted")
	}
}

func TestSearchNodeLimitAborts(t *testing.T) {
	eng := NewEngine()
	result := eng.Search(SearchLimits{MaxDepth: 100, NodeLimit: 50})
	if !result.Aborted {
		t.Error("expected search to abort once the node limit was hit")
	}
	if result.BestMove == board.NoMove {
		t.Error("aborted search must still return a usable move")
	}
}

func TestSearchExternalStopFlag(t *testing.T) {
	eng := NewEngine()
	var stop atomic.Bool
	stop.Store(true)

	result := eng.Search(SearchLimits{MaxDepth: 10, Stop: &stop})
	if !result.Aborted {
		t.Error("expected search to abort immediately when Stop is pre-set")
	}
	if result.BestMove == board.NoMove {
		t.Error("aborted search must still return a usable move (first root move)")
	}
}

func TestSearchFirstIterationAbortKeepsFirstRootMove(t *testing.T) {
	eng := NewEngine()
	if err := eng.LoadFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}

	root := eng.Position().GenerateLegal()
	firstMove := root.Get(0)

	// NodeLimit 3 lets the root loop commit the pawn push (move 0) and the
	// higher-scoring knight capture (move 1) before aborting on move 2,
	// all within depth 1. Since no iteration completed, the result must
	// fall back to the first root move encountered, not the
	// better-scoring move the partial iteration committed internally.
	result := eng.Search(SearchLimits{MaxDepth: 10, NodeLimit: 3})
	if !result.Aborted {
		t.Fatal("expected search to abort mid-first-iteration")
	}
	if result.DepthReached != 0 {
		t.Errorf("expected DepthReached 0 (no completed iteration), got %d", result.DepthReached)
	}
	if result.BestMove != firstMove {
		t.Errorf("abort mid-depth-1 must keep the first root move %s, got %s", firstMove, result.BestMove)
	}
}

func TestApplyMoveAndFEN(t *testing.T) {
	eng := NewEngine()
	if err := eng.ApplyMove("e2e4"); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := eng.FEN(); got != want {
		t.Errorf("FEN after e2e4 = %q, want %q", got, want)
	}
}

func TestApplyMoveRejectsIllegal(t *testing.T) {
	eng := NewEngine()
	if err := eng.ApplyMove("e2e5"); err == nil {
		t.Error("expected error for illegal move e2e5")
	}
}

func TestPerftFromEngine(t *testing.T) {
	eng := NewEngine()
	if got := eng.Perft(3); got != 8902 {
		t.Errorf("Perft(3) = %d, want 8902", got)
	}
}
