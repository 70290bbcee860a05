package board

import (
	"errors"
	"math/rand"
	"testing"
)

func mustFEN(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return b
}

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := b.ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q) in %s: %v", s, b.FEN(), err)
		}
		b.MakeMove(m)
	}
}

func sq(t *testing.T, name string) Square {
	t.Helper()
	s, err := ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return s
}

func TestStartPosition(t *testing.T) {
	b := New()
	if got := len(b.LegalMoves(White)); got != 20 {
		t.Fatalf("white moves = %d, want 20", got)
	}
	if b.KingSquare(White) != (Square{7, 4}) || b.KingSquare(Black) != (Square{0, 4}) {
		t.Errorf("king squares = %v %v", b.KingSquare(White), b.KingSquare(Black))
	}
	if b.InCheck() || b.IsCheckmate() || b.IsStalemate() {
		t.Error("start position flagged as check or game over")
	}
	play(t, b, "e2e4")
	if got := len(b.LegalMoves(Black)); got != 20 {
		t.Errorf("black moves after e4 = %d, want 20", got)
	}
	if ep, ok := b.EnPassant(); !ok || ep.String() != "e3" {
		t.Errorf("en passant target = %v %v, want e3", ep, ok)
	}
}

func TestSquareNames(t *testing.T) {
	tests := []struct {
		name string
		sq   Square
	}{
		{"a8", Square{0, 0}},
		{"h8", Square{0, 7}},
		{"a1", Square{7, 0}},
		{"e4", Square{4, 4}},
		{"h1", Square{7, 7}},
	}
	for _, tt := range tests {
		if got := tt.sq.String(); got != tt.name {
			t.Errorf("%v.String() = %q, want %q", tt.sq, got, tt.name)
		}
		got, err := ParseSquare(tt.name)
		if err != nil || got != tt.sq {
			t.Errorf("ParseSquare(%q) = %v, %v; want %v", tt.name, got, err, tt.sq)
		}
	}

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e44", "E4"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error = %v, want ErrInvalidSquare", bad, err)
		}
	}
}

func TestFoolsMate(t *testing.T) {
	b := New()
	play(t, b, "f2f3", "e7e5", "g2g4")
	if len(b.LegalMoves(Black)) == 0 {
		t.Fatal("black has no moves before mating")
	}
	play(t, b, "d8h4")

	if !b.IsCheckmate() {
		t.Fatal("expected checkmate")
	}
	if !b.InCheck() || b.IsStalemate() {
		t.Errorf("InCheck = %v, IsStalemate = %v", b.InCheck(), b.IsStalemate())
	}
	if b.Turn() != White {
		t.Errorf("side to move = %v, want White", b.Turn())
	}
	if n := len(b.LegalMoves(White)); n != 0 {
		t.Errorf("white has %d moves, want 0", n)
	}
	want := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	if got := b.FEN(); got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}
	if o := b.Outcome(); o.Termination != Checkmate || o.Winner != Black || o.Result() != "0-1" {
		t.Errorf("Outcome = %+v (%s)", o, o.Result())
	}
}

func TestStalemate(t *testing.T) {
	b := mustFEN(t, "k7/8/1QK5/8/8/8/8/8 b - - 0 1")
	if !b.IsStalemate() {
		t.Fatal("expected stalemate")
	}
	if b.InCheck() || b.IsCheckmate() {
		t.Errorf("InCheck = %v, IsCheckmate = %v", b.InCheck(), b.IsCheckmate())
	}
	if o := b.Outcome(); o.Termination != Stalemate || o.Result() != "1/2-1/2" {
		t.Errorf("Outcome = %+v", o)
	}
}

func TestEnPassant(t *testing.T) {
	b := New()
	play(t, b, "e2e4", "a7a6", "e4e5", "f7f5")
	before := b.State()

	var ep Move
	found := false
	for _, m := range b.LegalMovesFor(sq(t, "e5")) {
		if m.To == sq(t, "f6") {
			ep, found = m, true
		}
	}
	if !found || !ep.IsEnPassant {
		t.Fatalf("exf6 en passant not generated (found=%v, move=%+v)", found, ep)
	}

	b.MakeMove(ep)
	if !b.PieceAt(sq(t, "f5")).Empty() {
		t.Error("captured pawn still on f5")
	}
	if p := b.PieceAt(sq(t, "f6")); p.Kind != Pawn || p.Color != White {
		t.Errorf("f6 = %+v, want white pawn", p)
	}
	if !b.UndoMove() {
		t.Fatal("UndoMove returned false")
	}
	if b.State() != before {
		t.Error("undo did not restore position")
	}
}

func TestEnPassantExpires(t *testing.T) {
	b := New()
	play(t, b, "e2e4", "a7a6", "e4e5", "f7f5", "h2h3", "a6a5")
	for _, m := range b.LegalMovesFor(sq(t, "e5")) {
		if m.IsEnPassant {
			t.Fatalf("en passant still available: %v", m)
		}
	}
}

func TestEnPassantDiscoveredCheck(t *testing.T) {
	// Capturing en passant would clear the rank between the rook and the king.
	b := mustFEN(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 2")
	for _, m := range b.LegalMoves(White) {
		if m.IsEnPassant {
			t.Fatalf("illegal en passant generated: %v", m)
		}
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"both sides", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1g1", "e1c1"}},
		{"in check", "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1", nil},
		{"through attack", "4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1", []string{"e1c1"}},
		{"blocked", "4k3/8/8/8/8/8/8/RN2K1NR w KQ - 0 1", nil},
		{"no rights", "4k3/8/8/8/8/8/8/R3K2R w - - 0 1", nil},
		{"b-file attacked only", "4k3/8/8/8/8/8/1r6/R3K2R w KQ - 0 1", []string{"e1g1", "e1c1"}},
		{"black", "r3k2r/8/8/8/8/8/8/4K3 b kq - 0 1", []string{"e8g8", "e8c8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen)
			var got []string
			for _, m := range b.LegalMoves(b.Turn()) {
				if m.IsCastle {
					got = append(got, m.String())
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("castles = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("castles = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCastlingMovesRook(t *testing.T) {
	b := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	before := b.State()
	play(t, b, "e1g1")

	if p := b.PieceAt(sq(t, "f1")); p.Kind != Rook || !p.HasMoved {
		t.Errorf("f1 = %+v, want moved rook", p)
	}
	if !b.PieceAt(sq(t, "h1")).Empty() {
		t.Error("h1 not empty")
	}
	if b.KingSquare(White) != sq(t, "g1") {
		t.Errorf("king square = %v", b.KingSquare(White))
	}
	cr := b.Castling()
	if cr.WhiteKingside || cr.WhiteQueenside || !cr.BlackKingside || !cr.BlackQueenside {
		t.Errorf("rights after O-O = %+v", cr)
	}
	b.UndoMove()
	if b.State() != before {
		t.Error("undo of castling did not restore position")
	}
}

func TestCastlingRightsSnapshot(t *testing.T) {
	b := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	start := b.State()

	// The rook leaves and comes back; the right must stay lost until undone.
	play(t, b, "h1h2", "a8a7", "h2h1", "a7a8")
	cr := b.Castling()
	if cr.WhiteKingside || cr.BlackQueenside || !cr.WhiteQueenside || !cr.BlackKingside {
		t.Fatalf("rights = %+v", cr)
	}
	for _, m := range b.LegalMoves(White) {
		if m.IsCastle && m.To == sq(t, "g1") {
			t.Fatal("kingside castle allowed after rook moved")
		}
	}

	// Capturing a rook on its home square removes the right as well.
	b2 := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, b2, "a1a8")
	if b2.Castling().BlackQueenside {
		t.Error("black queenside right survived rook capture")
	}

	for b.UndoMove() {
	}
	if b.State() != start {
		t.Error("deep undo did not restore castling rights")
	}
}

func TestPinnedPiece(t *testing.T) {
	b := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	if moves := b.LegalMovesFor(sq(t, "e2")); len(moves) != 0 {
		t.Errorf("pinned bishop has moves: %v", moves)
	}
	if n := len(b.PseudoLegalMoves(White)); n <= len(b.LegalMoves(White)) {
		t.Errorf("pseudo-legal %d should exceed legal %d", n, len(b.LegalMoves(White)))
	}
}

func TestPromotion(t *testing.T) {
	b := mustFEN(t, "8/P7/8/8/8/8/8/k6K w - - 0 1")
	before := b.State()

	moves := b.LegalMovesFor(sq(t, "a7"))
	if len(moves) != 1 || !moves[0].IsPromotion || moves[0].PromotionKind() != Queen {
		t.Fatalf("promotion moves = %+v", moves)
	}

	b.MakeMove(moves[0])
	if p := b.PieceAt(sq(t, "a8")); p.Kind != Queen || p.Color != White {
		t.Errorf("a8 = %+v, want white queen", p)
	}
	b.UndoMove()
	if b.State() != before {
		t.Fatal("undo of promotion did not restore pawn")
	}

	m, err := b.ParseMove("a7a8n")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	b.MakeMove(m)
	if p := b.PieceAt(sq(t, "a8")); p.Kind != Knight {
		t.Errorf("a8 = %+v, want knight", p)
	}
	if _, err := New().ParseMove("e2e4q"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("promotion suffix on quiet move: err = %v", err)
	}

	b.UndoMove()
	for _, k := range []Kind{King, Pawn} {
		if m := moves[0].WithPromotion(k); m.PromotionKind() != Queen {
			t.Errorf("WithPromotion(%s) promotes to %s", k, m.PromotionKind())
		}
		if _, err := b.ParseMove("a7a8" + string(k.Letter())); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("promotion to %s: err = %v", k, err)
		}
	}
}

func TestUndoEmpty(t *testing.T) {
	b := New()
	before := b.State()
	if b.UndoMove() {
		t.Error("UndoMove on fresh board returned true")
	}
	if b.State() != before {
		t.Error("failed undo changed the board")
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"k7/8/1QK5/8/8/8/8/8 b - - 12 40",
	}
	for _, fen := range fens {
		if got := mustFEN(t, fen).FEN(); got != fen {
			t.Errorf("FEN round trip:\n got %q\nwant %q", got, fen)
		}
	}
}

func TestFromFENErrors(t *testing.T) {
	tests := []struct {
		fen  string
		want error
	}{
		{"", ErrInvalidFEN},
		{"8/8/8/8/8/8/8 w - - 0 1", ErrInvalidFEN},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", ErrInvalidFEN},
		{"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrInvalidFEN},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", ErrInvalidFEN},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkz - 0 1", ErrInvalidFEN},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", ErrInvalidSquare},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1", ErrNoKing},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", ErrInvalidFEN},
	}
	for _, tt := range tests {
		if _, err := FromFEN(tt.fen); !errors.Is(err, tt.want) {
			t.Errorf("FromFEN(%q) error = %v, want %v", tt.fen, err, tt.want)
		}
	}
}

// TestRandomGames walks random games and checks every legal move in every
// visited position: it must not expose the own king and make+undo must
// restore the position exactly.
func TestRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 20; game++ {
		b := New()
		for ply := 0; ply < 120 && !b.Outcome().Over(); ply++ {
			side := b.Turn()
			moves := b.LegalMoves(side)
			before := b.State()
			for _, m := range moves {
				b.MakeMove(m)
				if b.IsSquareAttacked(b.KingSquare(side), side.Opposite()) {
					t.Fatalf("%s leaves king attacked in %s", m, b.FEN())
				}
				b.UndoMove()
				if b.State() != before {
					t.Fatalf("make/undo of %s changed %s", m, b.FEN())
				}
			}
			b.MakeMove(moves[rng.Intn(len(moves))])
		}
		for b.UndoMove() {
		}
		if b.State() != New().State() {
			t.Fatalf("game %d: full unwind does not reach the start position", game)
		}
	}
}

func TestMoveGenerationOrder(t *testing.T) {
	var first, second []string
	for _, m := range New().LegalMoves(White) {
		first = append(first, m.String())
	}
	for _, m := range New().LegalMoves(White) {
		second = append(second, m.String())
	}
	if first[0] != "a2a3" || first[1] != "a2a4" {
		t.Errorf("first moves = %v, want a2a3 a2a4 first", first[:2])
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order differs at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func perft(b *Board, depth int) int {
	moves := b.LegalMoves(b.Turn())
	if depth == 1 {
		return len(moves)
	}
	n := 0
	for _, m := range moves {
		b.MakeMove(m)
		n += perft(b, depth-1)
		b.UndoMove()
	}
	return n
}

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []int
	}{
		{"start", StartFEN, []int{20, 400, 8902}},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []int{48, 2039}},
		{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []int{14, 191, 2812}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen)
			for i, want := range tt.nodes {
				if got := perft(b, i+1); got != want {
					t.Errorf("perft(%d) = %d, want %d", i+1, got, want)
				}
			}
		})
	}
}
