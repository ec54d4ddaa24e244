package board

import "testing"

func TestCheckmate(t *testing.T) {
	// Back rank mate: White Ka1, Ra8; Black Kh8 boxed in by its own pawns.
	// Black is already in checkmate with Black to move.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected side to move to be in check")
	}

	legal := pos.GenerateLegal()
	t.Log("Black legal moves:", legal.Len())
	for i := 0; i < legal.Len(); i++ {
		t.Log("  Move:", legal.Get(i))
	}

	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate position must not also report stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can capture the checking rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected side to move to be in check")
	}

	legal := pos.GenerateLegal()
	t.Log("Black legal moves:", legal.Len())
	for i := 0; i < legal.Len(); i++ {
		t.Log("  Move:", legal.Get(i))
	}

	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}
}

func TestStalemate(t *testing.T) {
	// Classic K+Q vs K stalemate: Black king on a8 has no legal move and
	// is not in check.
	pos, err := ParseFEN("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if pos.InCheck() {
		t.Fatal("expected side to move not to be in check")
	}
	if !pos.IsStalemate() {
		t.Error("Expected stalemate but got false")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate position must not also report checkmate")
	}
}
