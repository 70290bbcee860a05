package board

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// CastlingRights are lost permanently once the king or the matching rook
// leaves its home square.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

func (cr CastlingRights) bits() int {
	n := 0
	for i, ok := range [4]bool{cr.WhiteKingside, cr.WhiteQueenside, cr.BlackKingside, cr.BlackQueenside} {
		if ok {
			n |= 1 << i
		}
	}
	return n
}

// touch clears every right that depends on a piece standing on sq.
func (cr *CastlingRights) touch(sq Square) {
	switch sq {
	case Square{7, 4}:
		cr.WhiteKingside, cr.WhiteQueenside = false, false
	case Square{7, 7}:
		cr.WhiteKingside = false
	case Square{7, 0}:
		cr.WhiteQueenside = false
	case Square{0, 4}:
		cr.BlackKingside, cr.BlackQueenside = false, false
	case Square{0, 7}:
		cr.BlackKingside = false
	case Square{0, 0}:
		cr.BlackQueenside = false
	}
}

func (cr CastlingRights) has(c Color, kingside bool) bool {
	switch {
	case c == White && kingside:
		return cr.WhiteKingside
	case c == White:
		return cr.WhiteQueenside
	case kingside:
		return cr.BlackKingside
	}
	return cr.BlackQueenside
}

// undo holds everything needed to revert one applied move exactly.
type undo struct {
	move       Move
	moved      Piece
	captured   Piece
	capturedAt Square
	rook       Piece
	castling   CastlingRights
	enPassant  Square
	halfMove   int
	fullMove   int
	inCheck    bool
	checkmate  bool
	stalemate  bool
	hash       uint64
	turn       Color
}

// Board is one mutable chess position plus the log needed to take moves back.
// It is not safe for concurrent use; use Clone to hand a copy to another goroutine.
type Board struct {
	cells     [8][8]Piece
	turn      Color
	kings     [2]Square
	castling  CastlingRights
	enPassant Square
	halfMove  int
	fullMove  int

	inCheck   bool
	checkmate bool
	stalemate bool

	hash    uint64
	log     []undo
	history []uint64
}

// State is a comparable snapshot of every field of a Board except its move log.
type State struct {
	Cells     [8][8]Piece
	Turn      Color
	Kings     [2]Square
	Castling  CastlingRights
	EnPassant Square
	HalfMove  int
	FullMove  int
	InCheck   bool
	Checkmate bool
	Stalemate bool
	Hash      uint64
}

// New returns a board set up in the standard initial position.
func New() *Board {
	b, err := FromFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// Clone returns an independent deep copy, including the move log.
func (b *Board) Clone() *Board {
	c := *b
	c.log = append([]undo(nil), b.log...)
	c.history = append([]uint64(nil), b.history...)
	return &c
}

// State returns a snapshot for comparisons.
func (b *Board) State() State {
	return State{
		Cells:     b.cells,
		Turn:      b.turn,
		Kings:     b.kings,
		Castling:  b.castling,
		EnPassant: b.enPassant,
		HalfMove:  b.halfMove,
		FullMove:  b.fullMove,
		InCheck:   b.inCheck,
		Checkmate: b.checkmate,
		Stalemate: b.stalemate,
		Hash:      b.hash,
	}
}

// PieceAt returns the piece on sq, or the zero Piece for an empty or invalid square.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b.cells[sq.Row][sq.Col]
}

func (b *Board) at(sq Square) Piece {
	return b.cells[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) {
	b.cells[sq.Row][sq.Col] = p
}

// Turn returns the side to move.
func (b *Board) Turn() Color {
	return b.turn
}

// KingSquare returns where the king of c stands.
func (b *Board) KingSquare(c Color) Square {
	return b.kings[c]
}

// Castling returns the current castling rights.
func (b *Board) Castling() CastlingRights {
	return b.castling
}

// EnPassant returns the square a pawn may capture onto en passant, if any.
func (b *Board) EnPassant() (Square, bool) {
	return b.enPassant, b.enPassant != NoSquare
}

// HalfMoveClock counts plies since the last capture or pawn move.
func (b *Board) HalfMoveClock() int {
	return b.halfMove
}

// FullMoveNumber starts at 1 and increases after each black move.
func (b *Board) FullMoveNumber() int {
	return b.fullMove
}

// Ply is the number of moves in the log.
func (b *Board) Ply() int {
	return len(b.log)
}

// MoveLog returns the applied moves, oldest first.
func (b *Board) MoveLog() []Move {
	moves := make([]Move, len(b.log))
	for i, u := range b.log {
		moves[i] = u.move
	}
	return moves
}

// LastMove returns the most recently applied move.
func (b *Board) LastMove() (Move, bool) {
	if len(b.log) == 0 {
		return Move{}, false
	}
	return b.log[len(b.log)-1].move, true
}

// Hash returns the Zobrist key of the position.
func (b *Board) Hash() uint64 {
	return b.hash
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.inCheck
}

// IsCheckmate reports whether the side to move is checkmated.
func (b *Board) IsCheckmate() bool {
	return b.checkmate
}

// IsStalemate reports whether the side to move has no legal move and is not in check.
func (b *Board) IsStalemate() bool {
	return b.stalemate
}
