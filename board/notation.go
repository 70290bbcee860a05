package board

import (
	"fmt"
	"strings"
)

// Find returns the legal move from one square to another for the side to move.
// Promotions default to a queen.
func (b *Board) Find(from, to Square) (Move, error) {
	for _, m := range b.LegalMovesFor(from) {
		if m.To == to {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%s%s: %w", from, to, ErrIllegalMove)
}

// ParseMove resolves coordinate notation ("e2e4", "e7e8n") against the legal
// moves of the position.
func (b *Board) ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%q: %w", s, ErrIllegalMove)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m, err := b.Find(from, to)
	if err != nil {
		return Move{}, err
	}
	if len(s) == 5 {
		k := kindFromLetter(s[4])
		if !m.IsPromotion || k == NoKind || !CanPromoteTo(k) {
			return Move{}, fmt.Errorf("%q: %w", s, ErrIllegalMove)
		}
		m = m.WithPromotion(k)
	}
	return m, nil
}

// SAN returns the standard algebraic notation of m, which must be legal in the
// current position: "e4", "exf6", "Nbd7", "O-O", "e8=Q+", "Qh4#".
func (b *Board) SAN(m Move) string {
	var sb strings.Builder
	switch {
	case m.IsCastle && m.To.Col == 6:
		sb.WriteString("O-O")
	case m.IsCastle:
		sb.WriteString("O-O-O")
	case m.Piece.Kind == Pawn:
		if m.IsCapture() {
			sb.WriteByte(m.From.String()[0])
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
		if m.IsPromotion {
			sb.WriteByte('=')
			sb.WriteByte(m.PromotionKind().Letter())
		}
	default:
		sb.WriteByte(m.Piece.Kind.Letter())
		sb.WriteString(b.disambiguate(m))
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.To.String())
	}

	b.MakeMove(m)
	switch {
	case b.checkmate:
		sb.WriteByte('#')
	case b.inCheck:
		sb.WriteByte('+')
	}
	b.UndoMove()
	return sb.String()
}

func (b *Board) disambiguate(m Move) string {
	var sameFile, sameRank, others bool
	for _, o := range b.LegalMoves(m.Piece.Color) {
		if o.To != m.To || o.From == m.From || o.Piece.Kind != m.Piece.Kind {
			continue
		}
		others = true
		sameFile = sameFile || o.From.Col == m.From.Col
		sameRank = sameRank || o.From.Row == m.From.Row
	}
	name := m.From.String()
	switch {
	case !others:
		return ""
	case !sameFile:
		return name[:1]
	case !sameRank:
		return name[1:]
	}
	return name
}
