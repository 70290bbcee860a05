package board

import "math/rand"

var (
	zobristPieces    [2][King + 1][64]uint64
	zobristCastling  [16]uint64
	zobristEnPassant [8]uint64
	zobristBlack     uint64
)

func init() {
	// Fixed seed: equal positions hash equally across runs and saved records.
	rng := rand.New(rand.NewSource(0x5eed0c4e55))
	for c := range zobristPieces {
		for k := Pawn; k <= King; k++ {
			for sq := range zobristPieces[c][k] {
				zobristPieces[c][k][sq] = rng.Uint64()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristBlack = rng.Uint64()
}

func (b *Board) computeHash() uint64 {
	var h uint64
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.cells[row][col]; !p.Empty() {
				h ^= zobristPieces[p.Color][p.Kind][row*8+col]
			}
		}
	}
	h ^= zobristCastling[b.castling.bits()]
	if b.enPassant != NoSquare {
		h ^= zobristEnPassant[b.enPassant.Col]
	}
	if b.turn == Black {
		h ^= zobristBlack
	}
	return h
}

// RepetitionCount returns how many times the current position has occurred
// since the last capture or pawn move, including now.
func (b *Board) RepetitionCount() int {
	n := 0
	last := len(b.history) - 1
	for i := last; i >= 0 && last-i <= b.halfMove; i-- {
		if b.history[i] == b.hash {
			n++
		}
	}
	return n
}
