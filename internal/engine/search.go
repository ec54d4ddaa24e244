package engine

import (
	"sync/atomic"
	"time"

	"github.com/farfromperfect/ffp/internal/board"
)

// Mate is the base score reported for a forced mate; the distance-to-mate
// offset is taken from the current iteration's root depth (negamax's
// matePly argument) rather than a fixed constant, so distance-to-mate
// ordering still holds past shallow depths.
const (
	Infinity = 1 << 20
	Mate     = 20000
)

// SearchLimits bounds a single call to Search. A zero value in any field
// means "unbounded" for that dimension, except MaxDepth, whose zero means
// the default depth of 4.
type SearchLimits struct {
	MaxDepth  int
	TimeMs    int
	NodeLimit uint64
	Stop      *atomic.Bool
}

// SearchResult is the outcome of iterative deepening: the move to play,
// the deepest depth that finished, the score of that depth's best line,
// the total node count, and whether the search was cut short.
type SearchResult struct {
	BestMove     board.Move
	DepthReached int
	Score        int
	NodesVisited uint64
	Aborted      bool
}

// Searcher runs a bounded iterative-deepening negamax search over a
// single Position. It holds no transposition table, quiescence search, or
// move-ordering heuristics: every legal move at every node is searched in
// generation order.
type Searcher struct {
	pos      *board.Position
	limits   SearchLimits
	deadline time.Time
	nodes    uint64
	stopFlag atomic.Bool
}

// NewSearcher returns a Searcher ready for repeated use via Search.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Stop requests cooperative cancellation of an in-progress Search.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Search runs iterative deepening from depth 1 up to limits.MaxDepth (or
// 4 if unset), returning the best move found at the deepest completed
// iteration. If the root position has no legal moves, it returns
// immediately with depth 0.
func (s *Searcher) Search(pos *board.Position, limits SearchLimits) SearchResult {
	s.pos = pos.Copy()
	s.limits = limits
	s.nodes = 0
	s.stopFlag.Store(false)

	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 4
	}
	if limits.TimeMs > 0 {
		s.deadline = time.Now().Add(time.Duration(limits.TimeMs) * time.Millisecond)
	}

	root := s.pos.GenerateLegal()
	if root.Len() == 0 {
		score := 0
		if s.pos.InCheck() {
			score = -Mate
		}
		return SearchResult{BestMove: board.NoMove, DepthReached: 0, Score: score, NodesVisited: 0, Aborted: false}
	}

	result := SearchResult{BestMove: root.Get(0)}

	for depth := 1; depth <= maxDepth; depth++ {
		best, score, aborted := s.searchRoot(root, depth)
		if aborted {
			result.Aborted = true
			break
		}
		result.BestMove = best
		result.Score = score
		result.DepthReached = depth
		result.NodesVisited = s.nodes
		if s.shouldStop() {
			break
		}
	}

	result.NodesVisited = s.nodes
	return result
}

// searchRoot evaluates every root move at the given depth and returns the
// best one, its score, and whether the iteration was cut short.
func (s *Searcher) searchRoot(root *board.MoveList, depth int) (board.Move, int, bool) {
	alpha, beta := -Infinity, Infinity
	best := root.Get(0)
	bestScore := -Infinity

	for i := 0; i < root.Len(); i++ {
		move := root.Get(i)
		undo := s.pos.MakeMove(move)
		score := -s.negamax(depth-1, depth, -beta, -alpha)
		s.pos.UnmakeMove(move, undo)

		if s.shouldStop() {
			return best, bestScore, true
		}

		if score > bestScore {
			bestScore = score
			best = move
		}
		if score > alpha {
			alpha = score
		}
	}

	return best, bestScore, false
}

// negamax implements the fail-hard alpha-beta negamax contract: depth is
// the remaining search depth, matePly is the root iteration's starting
// depth (used to scale mate-distance scoring).
func (s *Searcher) negamax(depth, matePly, alpha, beta int) int {
	if s.shouldStop() {
		return 0
	}
	s.nodes++

	if depth == 0 {
		return Evaluate(s.pos)
	}

	moves := s.pos.GenerateLegal()
	if moves.Len() == 0 {
		if s.pos.InCheck() {
			return -Mate + (matePly - depth)
		}
		return 0
	}

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := s.pos.MakeMove(move)
		score := -s.negamax(depth-1, matePly, -beta, -alpha)
		s.pos.UnmakeMove(move, undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// shouldStop evaluates the abort predicate: node limit, wall-clock
// deadline, or an externally-written stop flag, re-checked at every
// negamax entry.
func (s *Searcher) shouldStop() bool {
	if s.stopFlag.Load() {
		return true
	}
	if s.limits.Stop != nil && s.limits.Stop.Load() {
		return true
	}
	if s.limits.NodeLimit > 0 && s.nodes >= s.limits.NodeLimit {
		return true
	}
	if s.limits.TimeMs > 0 && !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return true
	}
	return false
}
