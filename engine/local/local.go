// Package local runs the chess engine in-process.
package local

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"termchess/board"
	"termchess/engine"
	"termchess/search"
	"termchess/types"
)

var debugLog = log.New(io.Discard, "", log.Ltime|log.Lmicroseconds)

// SetDebugOutput sends the engine's debug log to w.
func SetDebugOutput(w io.Writer) {
	debugLog.SetOutput(w)
}

// LocalEngine implements the GameEngine interface with an in-process search.
// The engine thinks on its own goroutine using a copy of the game board.
type LocalEngine struct {
	config      engine.GameConfig
	board       *board.Board
	searcher    search.Searcher
	history     []string // algebraic notation
	myTurn      bool
	gameOver    bool
	playerColor board.Color

	// generation is bumped whenever an in-flight search must be discarded.
	generation int
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	moveCallback func(m board.Move, state *types.GameState)
	endCallback  func(outcome string)

	mu sync.Mutex
}

// NewLocalEngine creates a new engine with the given configuration.
func NewLocalEngine(cfg engine.GameConfig) *LocalEngine {
	if cfg.Depth < 1 {
		cfg.Depth = 1
	}
	if cfg.Depth > engine.MaxDepth {
		cfg.Depth = engine.MaxDepth
	}
	return &LocalEngine{
		config:      cfg,
		playerColor: cfg.PlayerColor,
		searcher:    search.Searcher{Workers: cfg.Workers},
	}
}

// Connect sets up the start position, replays any configured moves and lets
// the engine move if it is its turn.
func (g *LocalEngine) Connect() error {
	b := board.New()
	if g.config.StartFEN != "" {
		var err error
		if b, err = board.FromFEN(g.config.StartFEN); err != nil {
			return fmt.Errorf("start position: %w", err)
		}
	}
	var history []string
	for i, s := range g.config.Moves {
		m, err := b.ParseMove(s)
		if err != nil {
			return fmt.Errorf("replay move %d: %w", i+1, err)
		}
		history = append(history, b.SAN(m))
		b.MakeMove(m)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.board = b
	g.history = history
	debugLog.Printf("Connect: %s, player %v, depth %d, workers %d", b.FEN(), g.playerColor, g.config.Depth, g.config.Workers)

	if o := b.Outcome(); o.Over() {
		g.gameOver = true
		debugLog.Printf("Connect: position already finished: %s", o)
		return nil
	}
	g.myTurn = b.Turn() == g.playerColor
	if !g.myTurn {
		g.startEngineMove()
	}
	return nil
}

// GetGameState returns a snapshot of the current game.
func (g *LocalEngine) GetGameState() *types.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// snapshot must be called while holding the lock.
func (g *LocalEngine) snapshot() *types.GameState {
	if g.board == nil {
		return nil
	}
	return types.NewGameState(g.board, g.history, search.Evaluate(g.board))
}

// PlayMove plays the human move and starts the engine reply.
func (g *LocalEngine) PlayMove(from, to board.Square, promotion board.Kind) error {
	g.mu.Lock()

	if g.gameOver {
		g.mu.Unlock()
		return engine.ErrGameOver
	}
	if !g.myTurn {
		g.mu.Unlock()
		return engine.ErrNotYourTurn
	}

	m, err := g.board.Find(from, to)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	if !board.CanPromoteTo(promotion) {
		g.mu.Unlock()
		return fmt.Errorf("%s%s=%s: %w", from, to, promotion, board.ErrIllegalMove)
	}
	m = m.WithPromotion(promotion)
	debugLog.Printf("PlayMove: %s", m)

	g.history = append(g.history, g.board.SAN(m))
	g.board.MakeMove(m)
	g.myTurn = false

	state := g.snapshot()
	outcome := g.checkGameEnd()
	moveCallback, endCallback := g.moveCallback, g.endCallback
	gen := g.generation
	g.mu.Unlock()

	// Notify callbacks outside the lock to prevent deadlock
	if moveCallback != nil {
		moveCallback(m, state)
	}
	if outcome != "" {
		if endCallback != nil {
			endCallback(outcome)
		}
		return nil
	}

	// The reply starts after the callbacks so listeners see moves in order.
	g.mu.Lock()
	if gen == g.generation && !g.gameOver {
		g.startEngineMove()
	}
	g.mu.Unlock()
	return nil
}

// startEngineMove launches a search on a copy of the board.
// Must be called while holding the lock.
func (g *LocalEngine) startEngineMove() {
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	gen := g.generation
	scratch := g.board.Clone()
	g.wg.Add(1)
	go g.runEngineMove(ctx, scratch, gen)
}

func (g *LocalEngine) runEngineMove(ctx context.Context, scratch *board.Board, gen int) {
	defer g.wg.Done()

	start := time.Now()
	res, err := g.searcher.BestMove(ctx, scratch, scratch.Turn(), g.config.Depth)

	g.mu.Lock()
	if gen != g.generation || g.gameOver {
		g.mu.Unlock()
		debugLog.Printf("runEngineMove: discarded stale search")
		return
	}
	g.cancel = nil
	if err != nil || !res.Found {
		g.mu.Unlock()
		debugLog.Printf("runEngineMove: no move (found=%v, err=%v)", res.Found, err)
		return
	}
	debugLog.Printf("runEngineMove: %s score %d, %d nodes in %v", res.Move, res.Score, res.Nodes, time.Since(start))

	m := res.Move
	g.history = append(g.history, g.board.SAN(m))
	g.board.MakeMove(m)
	g.myTurn = true

	state := g.snapshot()
	outcome := g.checkGameEnd()
	moveCallback, endCallback := g.moveCallback, g.endCallback
	g.mu.Unlock()

	// Notify callbacks outside the lock
	if moveCallback != nil {
		moveCallback(m, state)
	}
	if outcome != "" && endCallback != nil {
		endCallback(outcome)
	}
}

// checkGameEnd marks the game finished when the board reports an outcome.
// Must be called while holding the lock.
func (g *LocalEngine) checkGameEnd() string {
	o := g.board.Outcome()
	if !o.Over() {
		return ""
	}
	g.gameOver = true
	g.myTurn = false
	debugLog.Printf("checkGameEnd: %s (%s)", o, o.Result())
	return o.String()
}

// Undo takes back moves until the human is to move again, at least one of
// them being the human's own move.
func (g *LocalEngine) Undo() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board == nil {
		return 0, engine.ErrNothingToUndo
	}
	n := 2
	if g.board.Turn() != g.playerColor {
		n = 1
	}
	if g.board.Ply() < n {
		return 0, engine.ErrNothingToUndo
	}

	g.stopThinking()
	for i := 0; i < n; i++ {
		g.board.UndoMove()
	}
	g.history = g.history[:len(g.history)-n]
	g.gameOver = false
	g.myTurn = true
	debugLog.Printf("Undo: took back %d plies", n)
	return n, nil
}

// stopThinking cancels and discards an in-flight search.
// Must be called while holding the lock.
func (g *LocalEngine) stopThinking() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.generation++
}

// IsMyTurn returns true if it's the human player's turn.
func (g *LocalEngine) IsMyTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.myTurn && !g.gameOver
}

// GetPlayerColor returns the human player's color.
func (g *LocalEngine) GetPlayerColor() board.Color {
	return g.playerColor
}

// OnMove registers a callback for when a move is played.
func (g *LocalEngine) OnMove(callback func(m board.Move, state *types.GameState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (g *LocalEngine) OnGameEnd(callback func(outcome string)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endCallback = callback
}

// Close stops a running search and waits for it to return.
func (g *LocalEngine) Close() {
	g.mu.Lock()
	g.gameOver = true
	g.stopThinking()
	g.mu.Unlock()
	g.wg.Wait()
	debugLog.Printf("Close: engine stopped")
}
