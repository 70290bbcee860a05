// Package engine defines the interface for game engines.
package engine

import (
	"errors"

	"termchess/board"
	"termchess/types"
)

var (
	ErrGameOver      = errors.New("game is over")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// GameEngine defines the interface for playing chess against an engine.
type GameEngine interface {
	// Connect sets up the game. If the engine moves first it starts thinking.
	Connect() error

	// GetGameState returns a snapshot of the current game.
	GetGameState() *types.GameState

	// PlayMove plays the human move from one square to another.
	// promotion is ignored unless a pawn reaches the last rank; NoKind means Queen.
	// King and Pawn are never accepted.
	// Returns an error wrapping board.ErrIllegalMove if the move is illegal.
	PlayMove(from, to board.Square, promotion board.Kind) error

	// IsMyTurn returns true if it's the human player's turn.
	IsMyTurn() bool

	// GetPlayerColor returns the human player's color.
	GetPlayerColor() board.Color

	// OnMove registers a callback for when a move is played (by either player).
	// state is passed directly to avoid lock contention.
	OnMove(func(m board.Move, state *types.GameState))

	// Undo takes back the last human move together with the engine reply,
	// cancelling the engine if it is still thinking. It returns the number of
	// plies taken back.
	Undo() (int, error)

	// OnGameEnd registers a callback for when the game ends.
	OnGameEnd(func(outcome string))

	// Close stops the engine.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	PlayerColor board.Color
	Depth       int      // search depth in plies, 1-6
	Workers     int      // goroutines for the root search
	StartFEN    string   // empty for the standard initial position
	Moves       []string // coordinate moves to replay before play starts
}

// MaxDepth is the deepest search offered to players.
const MaxDepth = 6

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		PlayerColor: board.White,
		Depth:       3,
		Workers:     1,
	}
}

// DepthForLevel maps a difficulty level from 1 to 5 to a search depth.
func DepthForLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 5:
		return 5
	}
	return level
}
