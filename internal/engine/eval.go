package engine

import "github.com/farfromperfect/ffp/internal/board"

// Evaluate scores pos from the perspective of the side to move: positive
// favors the mover. Material only, per board.PieceValue; no piece-square
// tables, pawn structure, or king safety.
func Evaluate(pos *board.Position) int {
	material := pos.Material()
	if pos.SideToMove == board.Black {
		return -material
	}
	return material
}
