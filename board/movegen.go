package board

type vector struct {
	dr, dc int
}

var (
	knightVectors = []vector{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	bishopVectors = []vector{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookVectors   = []vector{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	royalVectors  = []vector{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// geometry describes how a non-pawn piece reaches squares.
type geometry struct {
	vectors []vector
	slide   bool
}

var pieceGeometry = [...]geometry{
	Knight: {knightVectors, false},
	Bishop: {bishopVectors, true},
	Rook:   {rookVectors, true},
	Queen:  {royalVectors, true},
	King:   {royalVectors, false},
}

// attackers groups the kinds that reach a square through the same geometry,
// so attack detection can walk outward from the target square.
var attackers = [...]struct {
	geometry
	kinds [King + 1]bool
}{
	{pieceGeometry[Knight], [King + 1]bool{Knight: true}},
	{pieceGeometry[Bishop], [King + 1]bool{Bishop: true, Queen: true}},
	{pieceGeometry[Rook], [King + 1]bool{Rook: true, Queen: true}},
	{pieceGeometry[King], [King + 1]bool{King: true}},
}

// rays walks from 'from' along each vector, one step or until blocked when
// sliding. The blocking square is visited too. visit returns false to abort.
func (b *Board) rays(from Square, g geometry, visit func(to Square) bool) {
	for _, v := range g.vectors {
		for to := from.offset(v); to.Valid(); to = to.offset(v) {
			if !visit(to) {
				return
			}
			if !g.slide || !b.at(to).Empty() {
				break
			}
		}
	}
}

func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func backRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

func pawnRank(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// IsSquareAttacked reports whether any piece of color by attacks sq. It only
// looks at geometric reach; pins on the attacker do not matter.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	for _, a := range attackers {
		hit := false
		b.rays(sq, a.geometry, func(to Square) bool {
			p := b.at(to)
			if p.Color == by && a.kinds[p.Kind] {
				hit = true
				return false
			}
			return true
		})
		if hit {
			return true
		}
	}
	row := sq.Row - forward(by)
	for _, dc := range [2]int{-1, 1} {
		from := Square{row, sq.Col + dc}
		if !from.Valid() {
			continue
		}
		if p := b.at(from); p.Kind == Pawn && p.Color == by {
			return true
		}
	}
	return false
}

// PseudoLegalMoves returns the geometrically possible moves of side, which may
// leave its own king in check.
func (b *Board) PseudoLegalMoves(side Color) []Move {
	var moves []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.cells[row][col]
			if p.Empty() || p.Color != side {
				continue
			}
			moves = b.pieceMoves(Square{row, col}, p, moves)
		}
	}
	return moves
}

// LegalMoves returns every move of side that does not leave its king attacked,
// in a fixed order: by row, then column, then the piece's direction table.
func (b *Board) LegalMoves(side Color) []Move {
	return b.filterLegal(b.PseudoLegalMoves(side))
}

// LegalMovesFor returns the legal moves of the piece on sq. It is empty when
// the square is empty or the piece's side is not to move.
func (b *Board) LegalMovesFor(sq Square) []Move {
	p := b.PieceAt(sq)
	if p.Empty() || p.Color != b.turn {
		return nil
	}
	return b.filterLegal(b.pieceMoves(sq, p, nil))
}

func (b *Board) filterLegal(moves []Move) []Move {
	legal := moves[:0]
	for _, m := range moves {
		if b.isSafe(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// isSafe plays m, checks the mover's king and takes m back.
func (b *Board) isSafe(m Move) bool {
	mover := m.Piece.Color
	b.apply(m)
	safe := !b.IsSquareAttacked(b.kings[mover], mover.Opposite())
	b.revert()
	return safe
}

func (b *Board) hasLegalMove(side Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.cells[row][col]
			if p.Empty() || p.Color != side {
				continue
			}
			for _, m := range b.pieceMoves(Square{row, col}, p, nil) {
				if b.isSafe(m) {
					return true
				}
			}
		}
	}
	return false
}

func (b *Board) pieceMoves(from Square, p Piece, moves []Move) []Move {
	if p.Kind == Pawn {
		return b.pawnMoves(from, p, moves)
	}
	b.rays(from, pieceGeometry[p.Kind], func(to Square) bool {
		if t := b.at(to); t.Empty() || t.Color != p.Color {
			moves = append(moves, Move{From: from, To: to, Piece: p, Captured: t})
		}
		return true
	})
	if p.Kind == King {
		moves = b.castleMoves(from, p, moves)
	}
	return moves
}

func (b *Board) pawnMoves(from Square, p Piece, moves []Move) []Move {
	dir := forward(p.Color)
	one := Square{from.Row + dir, from.Col}
	if one.Valid() && b.at(one).Empty() {
		moves = appendPawnMove(moves, Move{From: from, To: one, Piece: p})
		two := Square{from.Row + 2*dir, from.Col}
		if from.Row == pawnRank(p.Color) && b.at(two).Empty() {
			moves = append(moves, Move{From: from, To: two, Piece: p})
		}
	}
	for _, dc := range [2]int{-1, 1} {
		to := Square{from.Row + dir, from.Col + dc}
		if !to.Valid() {
			continue
		}
		t := b.at(to)
		switch {
		case !t.Empty():
			if t.Color != p.Color {
				moves = appendPawnMove(moves, Move{From: from, To: to, Piece: p, Captured: t})
			}
		case to == b.enPassant && p.Color == b.turn:
			victim := b.at(Square{from.Row, to.Col})
			if victim.Kind == Pawn && victim.Color != p.Color {
				moves = append(moves, Move{From: from, To: to, Piece: p, Captured: victim, IsEnPassant: true})
			}
		}
	}
	return moves
}

func appendPawnMove(moves []Move, m Move) []Move {
	if m.To.Row == backRank(m.Piece.Color.Opposite()) {
		m.IsPromotion = true
		m.Promotion = Queen
	}
	return append(moves, m)
}

type castleSide struct {
	kingside bool
	rookCol  int
	rookTo   int
	kingTo   int
	between  []int
	passes   []int
}

var castleSides = [2]castleSide{
	{kingside: true, rookCol: 7, rookTo: 5, kingTo: 6, between: []int{5, 6}, passes: []int{5, 6}},
	{kingside: false, rookCol: 0, rookTo: 3, kingTo: 2, between: []int{1, 2, 3}, passes: []int{3, 2}},
}

func (b *Board) castleMoves(from Square, p Piece, moves []Move) []Move {
	row := backRank(p.Color)
	if from != (Square{row, 4}) {
		return moves
	}
	enemy := p.Color.Opposite()
	checked, inCheck := false, false
	for _, cs := range castleSides {
		if !b.castling.has(p.Color, cs.kingside) {
			continue
		}
		if r := b.cells[row][cs.rookCol]; r.Kind != Rook || r.Color != p.Color {
			continue
		}
		if !b.emptyCols(row, cs.between) {
			continue
		}
		if !checked {
			inCheck, checked = b.IsSquareAttacked(from, enemy), true
		}
		if inCheck {
			return moves
		}
		safe := true
		for _, col := range cs.passes {
			if b.IsSquareAttacked(Square{row, col}, enemy) {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, Move{From: from, To: Square{row, cs.kingTo}, Piece: p, IsCastle: true})
		}
	}
	return moves
}

func (b *Board) emptyCols(row int, cols []int) bool {
	for _, col := range cols {
		if !b.cells[row][col].Empty() {
			return false
		}
	}
	return true
}

// castleRook returns where the rook of a castling move starts and ends.
func castleRook(m Move) (from, to Square) {
	for _, cs := range castleSides {
		if m.To.Col == cs.kingTo {
			return Square{m.From.Row, cs.rookCol}, Square{m.From.Row, cs.rookTo}
		}
	}
	return NoSquare, NoSquare
}
