package board

import "strings"

// Move describes one transition of the position it was generated for.
// Piece and Captured are snapshots taken at generation time; Captured is the
// zero Piece for quiet moves. A Move must only be applied to that position.
type Move struct {
	From, To    Square
	Piece       Piece
	Captured    Piece
	IsCastle    bool
	IsEnPassant bool
	IsPromotion bool
	// Promotion is the piece a pawn turns into. NoKind means Queen.
	Promotion Kind
}

// Same compares moves by their coordinates only.
func (m Move) Same(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return !m.Captured.Empty()
}

// PromotionKind returns the kind a promoting pawn becomes.
func (m Move) PromotionKind() Kind {
	if m.Promotion == NoKind {
		return Queen
	}
	return m.Promotion
}

// CanPromoteTo reports whether a pawn may become a piece of kind k.
// NoKind is accepted and stands for the default queen.
func CanPromoteTo(k Kind) bool {
	switch k {
	case NoKind, Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// WithPromotion returns a copy of a promotion move that promotes to k.
// Non-promotion moves and kinds a pawn cannot become leave m unchanged.
func (m Move) WithPromotion(k Kind) Move {
	if m.IsPromotion && CanPromoteTo(k) {
		m.Promotion = k
	}
	return m
}

// String returns coordinate notation: "e2e4", "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion {
		s += strings.ToLower(string(m.PromotionKind().Letter()))
	}
	return s
}
