package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string under a strict grammar: exactly one space
// between fields (no collapsing of runs of whitespace), the four
// mandatory fields (placement, side, castling, en-passant) all present,
// and the optional halfmove/fullmove fields either both present or both
// absent (defaulting to 0 and 1). Any violation leaves no partial state;
// ParseFEN returns a non-nil error and a nil Position.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Split(fen, " ")
	for _, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("invalid FEN: empty field (check for doubled or missing spaces): %q", fen)
		}
	}
	if len(fields) != 4 && len(fields) != 6 {
		return nil, fmt.Errorf("invalid FEN: expected 4 or 6 fields, got %d: %q", len(fields), fen)
	}

	pos := &Position{EnPassant: NoSquare, FullmoveNumber: 1}
	for sq := range pos.mailbox {
		pos.mailbox[sq] = NoPiece
	}

	if err := parsePiecePlacement(pos, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %q", fields[1])
	}

	if err := parseCastlingRights(pos, fields[2]); err != nil {
		return nil, err
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %q", fields[3])
		}
		wantRank := 5 // rank 6 (0-indexed rank 5), set after a Black double push, White to move
		if pos.SideToMove == Black {
			wantRank = 2 // rank 3
		}
		if sq.Rank() != wantRank {
			return nil, fmt.Errorf("en passant square %q inconsistent with side to move", fields[3])
		}
		pos.EnPassant = sq
	}

	if len(fields) == 6 {
		hmc, err := strconv.Atoi(fields[4])
		if err != nil || hmc < 0 {
			return nil, fmt.Errorf("invalid halfmove clock: %q", fields[4])
		}
		pos.HalfmoveClock = hmc

		fmn, err := strconv.Atoi(fields[5])
		if err != nil || fmn < 0 {
			return nil, fmt.Errorf("invalid fullmove number: %q", fields[5])
		}
		pos.FullmoveNumber = fmn
	}

	return pos, nil
}

// parsePiecePlacement parses the piece-placement field: eight ranks,
// top (rank 8) to bottom (rank 1), each summing to exactly 8 squares.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // rank index 7 = rank 8 (top), down to rank index 0 = rank 1
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling-rights field: '-' or a subset
// of "KQkq" with no repeats and no other characters.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.Castling = NoCastling
		return nil
	}
	if len(castling) == 0 || len(castling) > 4 {
		return fmt.Errorf("invalid castling rights: %q", castling)
	}

	seen := NoCastling
	for _, c := range castling {
		var bit CastlingRights
		switch c {
		case 'K':
			bit = WhiteKingSideCastle
		case 'Q':
			bit = WhiteQueenSideCastle
		case 'k':
			bit = BlackKingSideCastle
		case 'q':
			bit = BlackQueenSideCastle
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}
		if seen&bit != 0 {
			return fmt.Errorf("duplicate castling character: %c", c)
		}
		seen |= bit
	}
	pos.Castling = seen
	return nil
}

// ToFEN returns the FEN representation of the position. It reproduces
// every FEN that ParseFEN accepts in canonical form; it does not keep
// non-canonical spellings: castling rights are always written in KQkq
// order, adjacent empty-square digits (e.g. "44") are merged into one,
// and a FEN without the clock fields gains "0 1".
func (p *Position) ToFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber))

	return sb.String()
}
