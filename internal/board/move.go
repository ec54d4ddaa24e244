package board

import "fmt"

// MoveFlag is a composable bitmask describing the nature of a move.
// CAPTURE|PROMO marks a capturing promotion; ENPASSANT implies CAPTURE.
type MoveFlag uint8

const (
	Quiet      MoveFlag = 0
	Capture    MoveFlag = 1 << 0
	Promo      MoveFlag = 1 << 1
	EnPassant  MoveFlag = 1 << 2
	Castle     MoveFlag = 1 << 3
	DoublePush MoveFlag = 1 << 4
)

// Move is an immutable record of a single chess move: origin, destination,
// the moving piece, the captured piece (or NoPiece), the promoted-to piece
// (or NoPieceType) and a composable flag set.
type Move struct {
	From     Square
	To       Square
	Piece    Piece
	Captured Piece
	Promo    PieceType
	Flags    MoveFlag
}

// NoMove is the sentinel used to mean "no move"; it is not the Go zero
// value Move{}, whose fields name real squares and pieces.
var NoMove = Move{From: NoSquare, To: NoSquare, Piece: NoPiece, Captured: NoPiece, Promo: NoPieceType}

// IsZero reports whether m is the null move.
func (m Move) IsZero() bool {
	return m == NoMove
}

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Flags&Capture != 0
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flags&Promo != 0
}

// IsEnPassant reports whether this is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flags&EnPassant != 0
}

// IsCastle reports whether this is a castling move.
func (m Move) IsCastle() bool {
	return m.Flags&Castle != 0
}

// IsDoublePush reports whether this is a two-square pawn push.
func (m Move) IsDoublePush() bool {
	return m.Flags&DoublePush != 0
}

// String returns the UCI coordinate notation of the move, e.g. "e2e4" or
// "a7a8q". The null move renders as "0000".
func (m Move) String() string {
	if m.IsZero() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		promoChars := map[PieceType]byte{Queen: 'q', Rook: 'r', Bishop: 'b', Knight: 'n'}
		s += string(promoChars[m.Promo])
	}
	return s
}

// ParseMove resolves a UCI coordinate-notation string against the legal
// moves of pos, disambiguating promotion flavor. It rejects any string
// whose (from, to, promo) does not match a legal move.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	wantPromo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			wantPromo = Queen
		case 'r':
			wantPromo = Rook
		case 'b':
			wantPromo = Bishop
		case 'n':
			wantPromo = Knight
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	legal := pos.GenerateLegal()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From != from || m.To != to {
			continue
		}
		if m.IsPromotion() && m.Promo != wantPromo {
			continue
		}
		if !m.IsPromotion() && wantPromo != NoPieceType {
			continue
		}
		return m, nil
	}
	return NoMove, fmt.Errorf("not found: %q", s)
}

// MoveList is a fixed-capacity buffer of moves. Capacity 256 is known to
// suffice: no legal chess position generates more than 218 moves.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add appends a move to the list. Overflow is a programming error and is
// not checked at runtime.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear empties the list without reallocating.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice sharing the list's backing array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Undo is the minimal delta needed to reverse a single MakeMove: the prior
// castling rights, en-passant target, halfmove clock, fullmove number, and
// the captured piece. Piece placement is reversed arithmetically from the
// Move itself.
type Undo struct {
	Castling      CastlingRights
	EnPassant     Square
	HalfmoveClock int
	FullmoveNum   int
	Captured      Piece
}
