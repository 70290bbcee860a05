package board

import (
	"sort"
	"testing"

	"github.com/notnil/chess"
)

func moveSet(moves []Move) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range moves {
		k := m.From.String() + m.To.String()
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func oracleSet(pos *chess.Position) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range pos.ValidMoves() {
		k := m.S1().String() + m.S2().String()
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// crossCheck compares the legal move sets of b and pos, then recurses into
// every move. Promotions collapse to one entry per from/to pair on both sides.
func crossCheck(t *testing.T, b *Board, pos *chess.Position, depth int) {
	t.Helper()
	got, want := moveSet(b.LegalMoves(b.Turn())), oracleSet(pos)
	if len(got) != len(want) {
		t.Fatalf("%s: got %d moves %v, reference has %d %v", b.FEN(), len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s: move %d is %s, reference %s", b.FEN(), i, got[i], want[i])
		}
	}
	if depth == 1 {
		return
	}
	next := map[string]*chess.Move{}
	for _, m := range pos.ValidMoves() {
		k := m.S1().String() + m.S2().String()
		if next[k] == nil || m.Promo() == chess.Queen {
			next[k] = m
		}
	}
	for _, m := range b.LegalMoves(b.Turn()) {
		om := next[m.From.String()+m.To.String()]
		b.MakeMove(m)
		crossCheck(t, b, pos.Update(om), depth-1)
		b.UndoMove()
	}
}

func TestLegalMovesMatchReference(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"start", StartFEN, 3},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
		{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
		{"promotions", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", 2},
		{"en passant pin", "8/8/8/KPp4r/8/8/8/7k w - c6 0 2", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := chess.FEN(tt.fen)
			if err != nil {
				t.Fatalf("reference FEN: %v", err)
			}
			game := chess.NewGame(opt)
			crossCheck(t, mustFEN(t, tt.fen), game.Position(), tt.depth)
		})
	}
}
