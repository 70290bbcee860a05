package board

// Color is the side a piece belongs to.
type Color int

const (
	White Color = iota
	Black
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Kind identifies the type of a piece. NoKind marks an empty cell.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

func (k Kind) String() string {
	if k < NoKind || k > King {
		return "?"
	}
	return kindNames[k]
}

// Letter is the upper-case letter used for the kind in FEN and algebraic notation.
func (k Kind) Letter() byte {
	return " PNBRQK"[k]
}

// kindFromLetter accepts upper or lower case piece letters.
func kindFromLetter(c byte) Kind {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	}
	return NoKind
}

// Piece is the content of one board cell. The zero value is an empty cell.
type Piece struct {
	Color    Color
	Kind     Kind
	HasMoved bool
}

// Empty reports whether the cell holds no piece.
func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// FENLetter returns the piece letter, upper case for White and lower case for Black.
func (p Piece) FENLetter() byte {
	if p.Empty() {
		return ' '
	}
	l := p.Kind.Letter()
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return l
}

// Value is the material value of a kind in centipawns. Kings are not counted.
func (k Kind) Value() int {
	switch k {
	case Pawn:
		return 100
	case Knight:
		return 320
	case Bishop:
		return 330
	case Rook:
		return 500
	case Queen:
		return 900
	}
	return 0
}
