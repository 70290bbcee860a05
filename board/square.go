package board

import "fmt"

// Square addresses a cell. Row 0 is the black back rank (rank 8), row 7 the
// white back rank (rank 1). Col 0 is the a-file.
type Square struct {
	Row, Col int
}

// NoSquare is used where a square is optional, e.g. the en passant target.
var NoSquare = Square{-1, -1}

var squareNames [8][8]string

func init() {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			squareNames[row][col] = string([]byte{byte('a' + col), byte('8' - row)})
		}
	}
}

// Valid reports whether the square is on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return squareNames[s.Row][s.Col]
}

// Rank returns the chess rank number (1-8).
func (s Square) Rank() int {
	return 8 - s.Row
}

// ParseSquare converts an algebraic name like "e4" into a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%q: %w", name, ErrInvalidSquare)
	}
	col := int(name[0]) - 'a'
	row := '8' - int(name[1])
	sq := Square{row, col}
	if !sq.Valid() {
		return NoSquare, fmt.Errorf("%q: %w", name, ErrInvalidSquare)
	}
	return sq, nil
}

func (s Square) offset(v vector) Square {
	return Square{s.Row + v.dr, s.Col + v.dc}
}
