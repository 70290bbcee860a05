package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FromFEN sets up a board from Forsyth-Edwards Notation. The clock fields are
// optional and default to "0 1".
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%q: want 4 to 6 fields: %w", fen, ErrInvalidFEN)
	}
	b := &Board{enPassant: NoSquare, fullMove: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%q: want 8 ranks: %w", fields[0], ErrInvalidFEN)
	}
	kings := [2]int{}
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			kind := kindFromLetter(c)
			if kind == NoKind || col > 7 {
				return nil, fmt.Errorf("rank %d %q: %w", 8-row, rank, ErrInvalidFEN)
			}
			color := White
			if c >= 'a' {
				color = Black
			}
			b.cells[row][col] = Piece{Color: color, Kind: kind}
			if kind == King {
				b.kings[color] = Square{row, col}
				kings[color]++
			}
			col++
		}
		if col != 8 {
			return nil, fmt.Errorf("rank %d %q: want 8 files: %w", 8-row, rank, ErrInvalidFEN)
		}
	}
	if kings != [2]int{1, 1} {
		return nil, fmt.Errorf("%q: %w", fields[0], ErrNoKing)
	}

	switch fields[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return nil, fmt.Errorf("side to move %q: %w", fields[1], ErrInvalidFEN)
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				b.castling.WhiteKingside = true
			case 'Q':
				b.castling.WhiteQueenside = true
			case 'k':
				b.castling.BlackKingside = true
			case 'q':
				b.castling.BlackQueenside = true
			default:
				return nil, fmt.Errorf("castling %q: %w", fields[2], ErrInvalidFEN)
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("en passant: %w", err)
		}
		b.enPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("halfmove clock %q: %w", fields[4], ErrInvalidFEN)
		}
		b.halfMove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("fullmove number %q: %w", fields[5], ErrInvalidFEN)
		}
		b.fullMove = n
	}

	b.inferMoved()
	b.hash = b.computeHash()
	b.history = []uint64{b.hash}
	b.updateStatus()
	return b, nil
}

// inferMoved sets HasMoved for pieces that cannot be on their home square
// with their original rights.
func (b *Board) inferMoved() {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := &b.cells[row][col]
			switch p.Kind {
			case Pawn:
				p.HasMoved = row != pawnRank(p.Color)
			case King:
				p.HasMoved = !b.castling.has(p.Color, true) && !b.castling.has(p.Color, false)
			case Rook:
				home := row == backRank(p.Color)
				p.HasMoved = !(home && col == 7 && b.castling.has(p.Color, true)) &&
					!(home && col == 0 && b.castling.has(p.Color, false))
			}
		}
	}
}

// FEN returns the Forsyth-Edwards Notation of the position.
func (b *Board) FEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.cells[row][col]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.FENLetter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	if b.turn == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	n := sb.Len()
	for i, c := range "KQkq" {
		if b.castling.has(Color(i/2), i%2 == 0) {
			sb.WriteRune(c)
		}
	}
	if sb.Len() == n {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %s %d %d", b.enPassant, b.halfMove, b.fullMove)
	return sb.String()
}
