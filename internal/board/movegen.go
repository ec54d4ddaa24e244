package board

// GeneratePseudoLegal enumerates every move of every piece type for the
// side to move, honouring geometry, blocking, and capture-of-own-piece
// prohibition, but ignoring whether the mover's own king ends up attacked.
func (p *Position) GeneratePseudoLegal() *MoveList {
	ml := NewMoveList()
	us := p.SideToMove
	occ := p.OccAll
	own := p.occFor(us)
	enemies := p.occFor(us.Other())

	p.generatePawnMoves(ml, us, enemies)
	p.generateKnightMoves(ml, us, own)
	p.generateSliderMoves(ml, Bishop, us, own, occ, BishopAttacks)
	p.generateSliderMoves(ml, Rook, us, own, occ, RookAttacks)
	p.generateSliderMoves(ml, Queen, us, own, occ, QueenAttacks)
	p.generateKingMoves(ml, us, own)
	p.generateCastlingMoves(ml, us)

	return ml
}

// GenerateLegal returns the subset of GeneratePseudoLegal's moves that do
// not leave the mover's own king attacked.
func (p *Position) GenerateLegal() *MoveList {
	pseudo := p.GeneratePseudoLegal()
	legal := NewMoveList()
	us := p.SideToMove

	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		kingSq := p.PieceBB(King, us).LSB()
		if !p.IsSquareAttacked(kingSq, us.Other()) {
			legal.Add(m)
		}
		p.UnmakeMove(m, undo)
	}

	return legal
}

func (p *Position) occFor(c Color) Bitboard {
	if c == White {
		return p.OccWhite
	}
	return p.OccBlack
}

func addPromotions(ml *MoveList, from, to Square, mover Piece, captured Piece) {
	base := Capture
	if captured == NoPiece {
		base = Quiet
	}
	for _, promo := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		ml.Add(Move{From: from, To: to, Piece: mover, Captured: captured, Promo: promo, Flags: base | Promo})
	}
}

// generatePawnMoves implements spec 4.6's pawn rules. White is given
// directly; Black is the mirror with shift directions and the double-push
// rank swapped.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies Bitboard) {
	pawns := p.PieceBB(Pawn, us)
	empty := ^p.OccAll
	mover := NewPiece(Pawn, us)
	enemyPawn := NewPiece(Pawn, us.Other())

	var push1, push2, capL, capR Bitboard
	var promoRank Bitboard
	var pushOff, doubleOff, capLOff, capROff int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		capL = pawns.NorthWest() & enemies
		capR = pawns.NorthEast() & enemies
		promoRank = Rank8
		pushOff, doubleOff = 8, 16
		capLOff, capROff = 9, 7
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		capL = pawns.SouthWest() & enemies
		capR = pawns.SouthEast() & enemies
		promoRank = Rank1
		pushOff, doubleOff = -8, -16
		capLOff, capROff = -7, -9
	}

	nonPromoPush := push1 &^ promoRank
	for nonPromoPush != 0 {
		to := nonPromoPush.PopLSB()
		from := Square(int(to) + pushOff)
		ml.Add(Move{From: from, To: to, Piece: mover, Captured: NoPiece, Promo: NoPieceType, Flags: Quiet})
	}

	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) + doubleOff)
		ml.Add(Move{From: from, To: to, Piece: mover, Captured: NoPiece, Promo: NoPieceType, Flags: DoublePush})
	}

	nonPromoL := capL &^ promoRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) + capLOff)
		ml.Add(Move{From: from, To: to, Piece: mover, Captured: p.PieceAt(to), Promo: NoPieceType, Flags: Capture})
	}

	nonPromoR := capR &^ promoRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) + capROff)
		ml.Add(Move{From: from, To: to, Piece: mover, Captured: p.PieceAt(to), Promo: NoPieceType, Flags: Capture})
	}

	promoPush := push1 & promoRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) + pushOff)
		addPromotions(ml, from, to, mover, NoPiece)
	}

	promoL := capL & promoRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) + capLOff)
		addPromotions(ml, from, to, mover, p.PieceAt(to))
	}

	promoR := capR & promoRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) + capROff)
		addPromotions(ml, from, to, mover, p.PieceAt(to))
	}

	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var attackers Bitboard
		if us == White {
			attackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			attackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for attackers != 0 {
			from := attackers.PopLSB()
			ml.Add(Move{From: from, To: p.EnPassant, Piece: mover, Captured: enemyPawn, Promo: NoPieceType, Flags: Capture | EnPassant})
		}
	}
}

// generateKnightMoves handles knights via the fixed attack table.
func (p *Position) generateKnightMoves(ml *MoveList, us Color, own Bitboard) {
	mover := NewPiece(Knight, us)
	pieces := p.PieceBB(Knight, us)
	for pieces != 0 {
		from := pieces.PopLSB()
		targets := KnightAttacks(from) &^ own
		for targets != 0 {
			to := targets.PopLSB()
			captured := p.PieceAt(to)
			flags := Quiet
			if captured != NoPiece {
				flags = Capture
			}
			ml.Add(Move{From: from, To: to, Piece: mover, Captured: captured, Promo: NoPieceType, Flags: flags})
		}
	}
}

// generateSliderMoves handles bishops, rooks and queens via the supplied
// blocker-aware attack function.
func (p *Position) generateSliderMoves(ml *MoveList, pt PieceType, us Color, own, occ Bitboard, attacksFn func(Square, Bitboard) Bitboard) {
	mover := NewPiece(pt, us)
	pieces := p.PieceBB(pt, us)
	for pieces != 0 {
		from := pieces.PopLSB()
		targets := attacksFn(from, occ) &^ own
		for targets != 0 {
			to := targets.PopLSB()
			captured := p.PieceAt(to)
			flags := Quiet
			if captured != NoPiece {
				flags = Capture
			}
			ml.Add(Move{From: from, To: to, Piece: mover, Captured: captured, Promo: NoPieceType, Flags: flags})
		}
	}
}

func (p *Position) generateKingMoves(ml *MoveList, us Color, own Bitboard) {
	mover := NewPiece(King, us)
	from := p.PieceBB(King, us).LSB()
	targets := KingAttacks(from) &^ own
	for targets != 0 {
		to := targets.PopLSB()
		captured := p.PieceAt(to)
		flags := Quiet
		if captured != NoPiece {
			flags = Capture
		}
		ml.Add(Move{From: from, To: to, Piece: mover, Captured: captured, Promo: NoPieceType, Flags: flags})
	}
}

// generateCastlingMoves implements spec 4.6's castling rules exactly,
// including the per-side empty-square and unattacked-square checks.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	mover := NewPiece(King, us)

	if us == White {
		if p.Castling&WhiteKingSideCastle != 0 &&
			p.OccAll&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
			ml.Add(Move{From: E1, To: G1, Piece: mover, Captured: NoPiece, Promo: NoPieceType, Flags: Castle})
		}
		if p.Castling&WhiteQueenSideCastle != 0 &&
			p.OccAll&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
			ml.Add(Move{From: E1, To: C1, Piece: mover, Captured: NoPiece, Promo: NoPieceType, Flags: Castle})
		}
	} else {
		if p.Castling&BlackKingSideCastle != 0 &&
			p.OccAll&(SquareBB(F8)|SquareBB(G8)) == 0 &&
			!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
			ml.Add(Move{From: E8, To: G8, Piece: mover, Captured: NoPiece, Promo: NoPieceType, Flags: Castle})
		}
		if p.Castling&BlackQueenSideCastle != 0 &&
			p.OccAll&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
			!p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
			ml.Add(Move{From: E8, To: C8, Piece: mover, Captured: NoPiece, Promo: NoPieceType, Flags: Castle})
		}
	}
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, short-circuiting at the first one found.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.GeneratePseudoLegal()
	us := p.SideToMove
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := p.MakeMove(m)
		kingSq := p.PieceBB(King, us).LSB()
		attacked := p.IsSquareAttacked(kingSq, us.Other())
		p.UnmakeMove(m, undo)
		if !attacked {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is in check with no legal
// moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is not in check but has no
// legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
