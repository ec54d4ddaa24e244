package board

import "fmt"

// CastlingRights is a four-bit set: {wK-side, wQ-side, bK-side, bQ-side}.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                             // q
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling-rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// Position is the mutable game state: twelve disjoint piece bitboards, a
// cache of the three occupancy bitboards, side to move, castling rights,
// the en-passant target square, and the half/full move counters.
type Position struct {
	Pieces [12]Bitboard

	OccWhite Bitboard
	OccBlack Bitboard
	OccAll   Bitboard

	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square
	HalfmoveClock  int
	FullmoveNumber int

	// mailbox is an incrementally-maintained square->piece cache so
	// PieceAt and captured-piece identification are O(1) instead of
	// scanning twelve bitboards.
	mailbox [64]Piece
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: invalid embedded start FEN: " + err.Error())
	}
	return pos
}

// Copy returns a deep copy of the position (Position contains no pointers
// or slices, so a value copy suffices).
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

// Clear resets the position to an empty board: no pieces, White to move,
// no castling rights, no en-passant target, clocks at their defaults.
func (p *Position) Clear() {
	*p = Position{
		EnPassant:      NoSquare,
		FullmoveNumber: 1,
	}
	for sq := range p.mailbox {
		p.mailbox[sq] = NoPiece
	}
}

// PieceBB returns the bitboard of pieces of the given type and color.
func (p *Position) PieceBB(pt PieceType, c Color) Bitboard {
	return p.Pieces[NewPiece(pt, c)]
}

// PieceAt returns the piece occupying sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	return p.mailbox[sq]
}

// IsEmpty reports whether sq holds no piece.
func (p *Position) IsEmpty(sq Square) bool {
	return p.mailbox[sq] == NoPiece
}

// setPiece places piece on sq, updating bitboards, occupancy cache and
// the mailbox. sq must currently be empty.
func (p *Position) setPiece(piece Piece, sq Square) {
	bb := SquareBB(sq)
	p.Pieces[piece] |= bb
	if piece.Color() == White {
		p.OccWhite |= bb
	} else {
		p.OccBlack |= bb
	}
	p.OccAll |= bb
	p.mailbox[sq] = piece
}

// removePiece clears whatever piece occupies sq and returns it (NoPiece
// if sq was already empty).
func (p *Position) removePiece(sq Square) Piece {
	piece := p.mailbox[sq]
	if piece == NoPiece {
		return NoPiece
	}
	bb := SquareBB(sq)
	p.Pieces[piece] &^= bb
	if piece.Color() == White {
		p.OccWhite &^= bb
	} else {
		p.OccBlack &^= bb
	}
	p.OccAll &^= bb
	p.mailbox[sq] = NoPiece
	return piece
}

// MakeMove applies m to p and returns the Undo needed to reverse it. The
// steps mirror the reference engine's make_move exactly: snapshot
// scalars, update the halfmove clock, clear the en-passant square, remove
// any captured piece, relocate the moving piece, apply promotion, move
// the castling rook, decay castling rights, set a new en-passant square
// on a double push, advance the fullmove counter, and flip side to move.
func (p *Position) MakeMove(m Move) Undo {
	undo := Undo{
		Castling:      p.Castling,
		EnPassant:     p.EnPassant,
		HalfmoveClock: p.HalfmoveClock,
		FullmoveNum:   p.FullmoveNumber,
		Captured:      m.Captured,
	}

	if m.Piece.Type() == Pawn || m.IsCapture() {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}

	p.EnPassant = NoSquare

	if m.IsEnPassant() {
		capSq := epVictimSquare(m.To, m.Piece.Color())
		p.removePiece(capSq)
	} else if m.IsCapture() {
		p.removePiece(m.To)
	}

	p.removePiece(m.From)
	p.setPiece(m.Piece, m.To)

	if m.IsPromotion() {
		p.removePiece(m.To)
		p.setPiece(NewPiece(m.Promo, m.Piece.Color()), m.To)
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m.To)
		rook := p.removePiece(rookFrom)
		p.setPiece(rook, rookTo)
	}

	p.decayCastlingRights(m)

	if m.IsDoublePush() {
		p.EnPassant = doublePushEPSquare(m.To, m.Piece.Color())
	}

	if p.SideToMove == Black {
		p.FullmoveNumber++
	}

	p.SideToMove = p.SideToMove.Other()
	return undo
}

// UnmakeMove reverses m using undo, restoring p to its exact pre-make
// state. Piece placement is reversed arithmetically from m; only the
// non-reversible scalars come from undo.
func (p *Position) UnmakeMove(m Move, undo Undo) {
	p.Castling = undo.Castling
	p.EnPassant = undo.EnPassant
	p.HalfmoveClock = undo.HalfmoveClock
	p.FullmoveNumber = undo.FullmoveNum
	p.SideToMove = p.SideToMove.Other()

	p.removePiece(m.To)
	p.setPiece(m.Piece, m.From)

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m.To)
		rook := p.removePiece(rookTo)
		p.setPiece(rook, rookFrom)
	}

	if m.IsEnPassant() {
		capSq := epVictimSquare(m.To, m.Piece.Color())
		p.setPiece(m.Captured, capSq)
	} else if m.IsCapture() {
		p.setPiece(m.Captured, m.To)
	}
}

// epVictimSquare returns the square of the pawn captured en passant, one
// rank behind the destination of the capturing pawn.
func epVictimSquare(to Square, mover Color) Square {
	if mover == White {
		return to + 8
	}
	return to - 8
}

// doublePushEPSquare returns the en-passant target set by a double pawn
// push landing on to.
func doublePushEPSquare(to Square, mover Color) Square {
	if mover == White {
		return to + 8
	}
	return to - 8
}

// castleRookSquares returns the rook's origin and destination for the
// castling move whose king lands on kingTo.
func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	default:
		panic("board: castleRookSquares: not a castling destination")
	}
}

// decayCastlingRights clears any rights invalidated by a king or rook
// leaving (or being captured on) its origin square.
func (p *Position) decayCastlingRights(m Move) {
	if m.From == E1 || m.To == E1 {
		p.Castling &^= WhiteKingSideCastle | WhiteQueenSideCastle
	}
	if m.From == E8 || m.To == E8 {
		p.Castling &^= BlackKingSideCastle | BlackQueenSideCastle
	}
	if m.From == H1 || m.To == H1 {
		p.Castling &^= WhiteKingSideCastle
	}
	if m.From == A1 || m.To == A1 {
		p.Castling &^= WhiteQueenSideCastle
	}
	if m.From == H8 || m.To == H8 {
		p.Castling &^= BlackKingSideCastle
	}
	if m.From == A8 || m.To == A8 {
		p.Castling &^= BlackQueenSideCastle
	}
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	kingSq := p.PieceBB(King, p.SideToMove).LSB()
	return p.IsSquareAttacked(kingSq, p.SideToMove.Other())
}

// Material returns white material minus black material, in centipawns.
func (p *Position) Material() int {
	score := 0
	for pt := Pawn; pt <= King; pt++ {
		score += p.PieceBB(pt, White).PopCount() * PieceValue[pt]
		score -= p.PieceBB(pt, Black).PopCount() * PieceValue[pt]
	}
	return score
}

// String returns a human-readable rendering of the board and state.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.Castling)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Halfmove clock: %d\n", p.HalfmoveClock)
	s += fmt.Sprintf("Fullmove number: %d\n", p.FullmoveNumber)
	return s
}
