package main

import (
	"strings"

	"github.com/fatih/color"

	"github.com/farfromperfect/ffp/internal/board"
)

var (
	whitePiece = color.New(color.FgHiWhite, color.Bold)
	blackPiece = color.New(color.FgHiYellow, color.Bold)
)

// renderBoard returns a colorized, rank-8-to-rank-1 rendering of pos:
// White pieces bright white, Black pieces yellow, empty squares as dots.
func renderBoard(pos *board.Position) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			p := pos.PieceAt(sq)
			if p == board.NoPiece {
				sb.WriteString(". ")
				continue
			}
			ch := p.String()
			if p.Color() == board.White {
				sb.WriteString(whitePiece.Sprint(ch))
			} else {
				sb.WriteString(blackPiece.Sprint(ch))
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
