// Package types contains shared data structures for termchess.
package types

import (
	"strconv"

	"termchess/board"
)

// GameState is a snapshot of a game handed from the engine to the UI.
// Board is a private copy; reading it never races with the engine.
type GameState struct {
	MoveNumber int          `json:"move_number"` // plies played
	ToMove     board.Color  `json:"to_move"`
	Phase      string       `json:"phase"` // "playing", "finished"
	Board      *board.Board `json:"-"`
	FEN        string       `json:"fen"`
	Outcome    string       `json:"outcome"`
	Result     string       `json:"result"` // "1-0", "0-1", "1/2-1/2", "*"
	Eval       int          `json:"eval"`   // centipawns, White positive
	History    []string     `json:"history"`
	LastMove   *board.Move  `json:"-"`
}

// Finished returns true if the game is over.
func (s *GameState) Finished() bool {
	return s.Phase == "finished"
}

// InCheck reports whether the side to move is in check.
func (s *GameState) InCheck() bool {
	return s.Board != nil && s.Board.InCheck()
}

// NewGameState takes a snapshot of b. history holds the moves played so far
// in algebraic notation.
func NewGameState(b *board.Board, history []string, eval int) *GameState {
	s := &GameState{
		MoveNumber: b.Ply(),
		ToMove:     b.Turn(),
		Phase:      "playing",
		Board:      b.Clone(),
		FEN:        b.FEN(),
		Result:     "*",
		Eval:       eval,
		History:    append([]string(nil), history...),
	}
	if m, ok := b.LastMove(); ok {
		s.LastMove = &m
	}
	if o := b.Outcome(); o.Over() {
		s.Phase = "finished"
		s.Outcome = o.String()
		s.Result = o.Result()
	}
	return s
}

// MovePairs groups the history into numbered full moves: "1. e4 e5".
// firstMove is the full-move number of the first entry and blackFirst tells
// whether the history starts with a black move.
func (s *GameState) MovePairs(firstMove int, blackFirst bool) []string {
	var pairs []string
	h := s.History
	n := firstMove
	if blackFirst && len(h) > 0 {
		pairs = append(pairs, strconv.Itoa(n)+". ... "+h[0])
		h = h[1:]
		n++
	}
	for i := 0; i < len(h); i += 2 {
		line := strconv.Itoa(n) + ". " + h[i]
		if i+1 < len(h) {
			line += " " + h[i+1]
		}
		pairs = append(pairs, line)
		n++
	}
	return pairs
}
