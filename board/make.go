package board

// MakeMove plays m, which must come from LegalMoves of this position. It does
// not re-check legality. Check, checkmate and stalemate are recomputed for the
// new side to move.
func (b *Board) MakeMove(m Move) {
	b.apply(m)
	b.hash = b.computeHash()
	b.history = append(b.history, b.hash)
	b.updateStatus()
}

// UndoMove takes back the last move and restores the exact previous position.
// It returns false when there is nothing to undo.
func (b *Board) UndoMove() bool {
	if !b.revert() {
		return false
	}
	b.history = b.history[:len(b.history)-1]
	return true
}

// apply changes placement, rights and clocks without touching status flags or
// the hash. Legality filtering uses it directly.
func (b *Board) apply(m Move) {
	p := b.at(m.From)
	u := undo{
		move:       m,
		moved:      p,
		capturedAt: m.To,
		castling:   b.castling,
		enPassant:  b.enPassant,
		halfMove:   b.halfMove,
		fullMove:   b.fullMove,
		inCheck:    b.inCheck,
		checkmate:  b.checkmate,
		stalemate:  b.stalemate,
		hash:       b.hash,
		turn:       b.turn,
	}
	if m.IsEnPassant {
		u.capturedAt = Square{m.From.Row, m.To.Col}
	}
	u.captured = b.at(u.capturedAt)
	b.set(u.capturedAt, Piece{})
	b.set(m.From, Piece{})

	moved := p
	moved.HasMoved = true
	if m.IsPromotion {
		moved.Kind = m.PromotionKind()
	}
	b.set(m.To, moved)

	if p.Kind == King {
		b.kings[p.Color] = m.To
		if m.IsCastle {
			rookFrom, rookTo := castleRook(m)
			u.rook = b.at(rookFrom)
			rook := u.rook
			rook.HasMoved = true
			b.set(rookFrom, Piece{})
			b.set(rookTo, rook)
		}
	}

	b.castling.touch(m.From)
	b.castling.touch(m.To)

	b.enPassant = NoSquare
	if p.Kind == Pawn && (m.To.Row-m.From.Row == 2 || m.From.Row-m.To.Row == 2) {
		b.enPassant = Square{(m.From.Row + m.To.Row) / 2, m.From.Col}
	}

	if p.Kind == Pawn || !u.captured.Empty() {
		b.halfMove = 0
	} else {
		b.halfMove++
	}
	if p.Color == Black {
		b.fullMove++
	}
	b.turn = p.Color.Opposite()
	b.log = append(b.log, u)
}

func (b *Board) revert() bool {
	if len(b.log) == 0 {
		return false
	}
	u := b.log[len(b.log)-1]
	b.log = b.log[:len(b.log)-1]
	m := u.move

	if m.IsCastle {
		rookFrom, rookTo := castleRook(m)
		b.set(rookTo, Piece{})
		b.set(rookFrom, u.rook)
	}
	b.set(m.To, Piece{})
	b.set(u.capturedAt, u.captured)
	b.set(m.From, u.moved)
	if u.moved.Kind == King {
		b.kings[u.moved.Color] = m.From
	}

	b.castling = u.castling
	b.enPassant = u.enPassant
	b.halfMove = u.halfMove
	b.fullMove = u.fullMove
	b.inCheck = u.inCheck
	b.checkmate = u.checkmate
	b.stalemate = u.stalemate
	b.hash = u.hash
	b.turn = u.turn
	return true
}

func (b *Board) updateStatus() {
	b.inCheck = b.IsSquareAttacked(b.kings[b.turn], b.turn.Opposite())
	stuck := !b.hasLegalMove(b.turn)
	b.checkmate = stuck && b.inCheck
	b.stalemate = stuck && !b.inCheck
}
