package engine

import "github.com/farfromperfect/ffp/internal/board"

// Engine bundles a Position with the Searcher that operates on it,
// exposing the operations the UCI and CLI adapters need: load/format FEN,
// apply moves, run perft, and invoke search with limits.
type Engine struct {
	pos      *board.Position
	searcher *Searcher
}

// NewEngine returns an Engine set to the standard starting position.
func NewEngine() *Engine {
	return &Engine{
		pos:      board.NewPosition(),
		searcher: NewSearcher(),
	}
}

// Position returns the engine's current position.
func (e *Engine) Position() *board.Position {
	return e.pos
}

// SetStartPos resets the engine to the standard starting position.
func (e *Engine) SetStartPos() {
	e.pos = board.NewPosition()
}

// LoadFEN replaces the engine's position with the one described by fen.
// On error the engine's existing position is left untouched.
func (e *Engine) LoadFEN(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	e.pos = pos
	return nil
}

// FEN renders the engine's current position.
func (e *Engine) FEN() string {
	return e.pos.ToFEN()
}

// ApplyMove parses a coordinate move against the current position's legal
// moves and plays it. It returns an error (without mutating the position)
// if the move is not legal.
func (e *Engine) ApplyMove(coord string) error {
	m, err := board.ParseMove(coord, e.pos)
	if err != nil {
		return err
	}
	e.pos.MakeMove(m)
	return nil
}

// Perft returns the exact leaf count at the given depth from the current
// position.
func (e *Engine) Perft(depth int) int64 {
	return board.Perft(e.pos, depth)
}

// Search runs iterative-deepening negamax from the current position under
// the given limits.
func (e *Engine) Search(limits SearchLimits) SearchResult {
	return e.searcher.Search(e.pos, limits)
}

// SearchPosition runs iterative-deepening negamax from an explicit position
// snapshot rather than the engine's live position. Callers that dispatch a
// search onto another goroutine should copy the position synchronously
// (Position.Copy) and pass the copy here, since the engine's own position
// field may be reassigned by a concurrent position/ucinewgame command.
func (e *Engine) SearchPosition(pos *board.Position, limits SearchLimits) SearchResult {
	return e.searcher.Search(pos, limits)
}

// Stop requests cooperative cancellation of an in-progress Search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// String renders the current position for display.
func (e *Engine) String() string {
	return e.pos.String()
}
