package board

// Termination says why a game ended.
type Termination int

const (
	Ongoing Termination = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
	ThreefoldRepetition
)

var terminationNames = [...]string{"", "checkmate", "stalemate", "insufficient material", "fifty-move rule", "threefold repetition"}

func (t Termination) String() string {
	return terminationNames[t]
}

// Outcome is the game result for a position. Winner is only meaningful for Checkmate.
type Outcome struct {
	Termination Termination
	Winner      Color
}

// Over reports whether the game has ended.
func (o Outcome) Over() bool {
	return o.Termination != Ongoing
}

// Result returns the score string: "1-0", "0-1", "1/2-1/2" or "*".
func (o Outcome) Result() string {
	switch {
	case o.Termination == Ongoing:
		return "*"
	case o.Termination != Checkmate:
		return "1/2-1/2"
	case o.Winner == White:
		return "1-0"
	}
	return "0-1"
}

func (o Outcome) String() string {
	switch o.Termination {
	case Ongoing:
		return "In progress"
	case Checkmate:
		return o.Winner.String() + " wins by checkmate"
	}
	return "Draw by " + o.Termination.String()
}

// Outcome evaluates the end-of-game rules in order: checkmate and stalemate,
// insufficient material, the fifty-move rule, threefold repetition.
func (b *Board) Outcome() Outcome {
	switch {
	case b.checkmate:
		return Outcome{Termination: Checkmate, Winner: b.turn.Opposite()}
	case b.stalemate:
		return Outcome{Termination: Stalemate}
	case b.HasInsufficientMaterial():
		return Outcome{Termination: InsufficientMaterial}
	case b.halfMove >= 100:
		return Outcome{Termination: FiftyMoveRule}
	case b.RepetitionCount() >= 3:
		return Outcome{Termination: ThreefoldRepetition}
	}
	return Outcome{}
}

// HasInsufficientMaterial reports positions where neither side can mate:
// bare kings, a single minor piece, two knights against a bare king, or
// one bishop each on squares of the same color.
func (b *Board) HasInsufficientMaterial() bool {
	var (
		knights, bishops [2]int
		bishopShade      [2]int
	)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.cells[row][col]
			switch p.Kind {
			case Pawn, Rook, Queen:
				return false
			case Knight:
				knights[p.Color]++
			case Bishop:
				bishops[p.Color]++
				bishopShade[p.Color] = (row + col) % 2
			}
		}
	}
	minors := [2]int{knights[White] + bishops[White], knights[Black] + bishops[Black]}
	for c := White; c <= Black; c++ {
		other := c.Opposite()
		if minors[other] != 0 {
			continue
		}
		if minors[c] <= 1 || (knights[c] == 2 && bishops[c] == 0) {
			return true
		}
	}
	return knights == [2]int{} && bishops == [2]int{1, 1} && bishopShade[White] == bishopShade[Black]
}
