package types

import (
	"testing"

	"termchess/board"
)

func TestMovePairs(t *testing.T) {
	tests := []struct {
		history    []string
		first      int
		blackFirst bool
		want       []string
	}{
		{nil, 1, false, nil},
		{[]string{"e4"}, 1, false, []string{"1. e4"}},
		{[]string{"e4", "e5", "Nf3"}, 1, false, []string{"1. e4 e5", "2. Nf3"}},
		{[]string{"e5", "Nf3", "Nc6"}, 1, true, []string{"1. ... e5", "2. Nf3 Nc6"}},
	}
	for _, tt := range tests {
		s := &GameState{History: tt.history}
		got := s.MovePairs(tt.first, tt.blackFirst)
		if len(got) != len(tt.want) {
			t.Fatalf("MovePairs(%v) = %v, want %v", tt.history, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("MovePairs(%v)[%d] = %q, want %q", tt.history, i, got[i], tt.want[i])
			}
		}
	}
}

func TestNewGameStateFinished(t *testing.T) {
	b, err := board.FromFEN("k7/8/1QK5/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	s := NewGameState(b, nil, 0)
	if !s.Finished() || s.Result != "1/2-1/2" || s.Outcome != "Draw by stalemate" {
		t.Errorf("state = %+v", s)
	}
	if s.Board == b {
		t.Error("snapshot shares the engine board")
	}
}

func TestNewGameStateLastMove(t *testing.T) {
	b := board.New()
	m, _ := b.ParseMove("e2e4")
	b.MakeMove(m)
	s := NewGameState(b, []string{"e4"}, 40)
	if s.LastMove == nil || !s.LastMove.Same(m) {
		t.Errorf("LastMove = %v, want e2e4", s.LastMove)
	}
	if s.Finished() || s.Result != "*" || s.ToMove != board.Black || s.MoveNumber != 1 {
		t.Errorf("state = %+v", s)
	}
}
