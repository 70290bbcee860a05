// Package search picks moves with minimax and alpha-beta pruning.
package search

import (
	"context"
	"sort"
	"sync"

	"termchess/board"
)

const infinity = 1 << 30

// Result of a root search. Found is false when the side has no legal move.
type Result struct {
	Move  board.Move
	Score int
	Found bool
	Nodes int64
}

// Searcher runs fixed-depth searches. The zero value is ready to use and
// searches on a single goroutine with Evaluate.
type Searcher struct {
	// Eval scores leaf positions. Nil means Evaluate.
	Eval func(*board.Board) int
	// Workers > 1 searches root moves concurrently, each on its own copy
	// of the board. The chosen move and score do not depend on it.
	Workers int
}

func (s *Searcher) evaluate(b *board.Board) int {
	if s.Eval != nil {
		return s.Eval(b)
	}
	return Evaluate(b)
}

// BestMove searches depth plies and returns the best move for side, White
// maximizing and Black minimizing. Ties go to the earliest move in generation
// order. The board is borrowed for the duration of the call and left exactly
// as it was, also when the evaluation panics.
//
// A depth below 1 searches one ply, so a legal move is always returned while
// the game is still going.
//
// ctx is checked between root moves; when it is done the best move found so
// far is returned together with ctx.Err().
func (s *Searcher) BestMove(ctx context.Context, b *board.Board, side board.Color, depth int) (Result, error) {
	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		return Result{}, nil
	}
	if depth < 1 {
		depth = 1
	}
	if s.Workers > 1 {
		return s.parallelRoot(ctx, b, side, moves, depth)
	}

	var res Result
	alpha, beta := -infinity, infinity
	for _, m := range moves {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		score := s.child(b, m, depth-1, alpha, beta, &res.Nodes)
		if !res.Found || better(side, score, res.Score) {
			res.Move, res.Score, res.Found = m, score, true
		}
		if side == board.White {
			alpha = max(alpha, res.Score)
		} else {
			beta = min(beta, res.Score)
		}
	}
	return res, nil
}

// Minimax returns the full-width minimax value of the position without
// pruning. It is exponential and meant for small depths.
func (s *Searcher) Minimax(b *board.Board, depth int) int {
	if depth == 0 || b.IsCheckmate() || b.IsStalemate() {
		return s.evaluate(b)
	}
	white := b.Turn() == board.White
	best := infinity
	if white {
		best = -infinity
	}
	for _, m := range b.LegalMoves(b.Turn()) {
		score := func() int {
			b.MakeMove(m)
			defer b.UndoMove()
			return s.Minimax(b, depth-1)
		}()
		if white {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

// child plays m, searches below it and takes m back. The undo is deferred so
// a panic further down unwinds through every pending undo.
func (s *Searcher) child(b *board.Board, m board.Move, depth, alpha, beta int, nodes *int64) int {
	b.MakeMove(m)
	defer b.UndoMove()
	return s.alphaBeta(b, depth, alpha, beta, nodes)
}

func (s *Searcher) alphaBeta(b *board.Board, depth, alpha, beta int, nodes *int64) int {
	*nodes++
	if depth == 0 || b.IsCheckmate() || b.IsStalemate() {
		return s.evaluate(b)
	}
	moves := orderMoves(b.LegalMoves(b.Turn()))
	if b.Turn() == board.White {
		best := -infinity
		for _, m := range moves {
			best = max(best, s.child(b, m, depth-1, alpha, beta, nodes))
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}
	best := infinity
	for _, m := range moves {
		best = min(best, s.child(b, m, depth-1, alpha, beta, nodes))
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}

// parallelRoot searches every root move with a full window on a clone and
// merges in generation order, which yields the sequential result.
func (s *Searcher) parallelRoot(ctx context.Context, b *board.Board, side board.Color, moves []board.Move, depth int) (Result, error) {
	type rootScore struct {
		score int
		nodes int64
		done  bool
	}
	scores := make([]rootScore, len(moves))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		panicked interface{}
	)
	workers := s.Workers
	if workers > len(moves) {
		workers = len(moves)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(scratch *board.Board) {
			defer wg.Done()
			for i := range jobs {
				mu.Lock()
				failed := panicked != nil
				mu.Unlock()
				if failed {
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							mu.Lock()
							panicked = r
							mu.Unlock()
						}
					}()
					var nodes int64
					score := s.child(scratch, moves[i], depth-1, -infinity, infinity, &nodes)
					scores[i] = rootScore{score: score, nodes: nodes, done: true}
				}()
			}
		}(b.Clone())
	}

	var err error
feed:
	for i := range moves {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}

	var res Result
	for i, sc := range scores {
		res.Nodes += sc.nodes
		if !sc.done {
			continue
		}
		if !res.Found || better(side, sc.score, res.Score) {
			res.Move, res.Score, res.Found = moves[i], sc.score, true
		}
	}
	return res, err
}

func better(side board.Color, score, best int) bool {
	if side == board.White {
		return score > best
	}
	return score < best
}

// orderMoves sorts captures first, most valuable victim then least valuable
// attacker. Bishops and queens taking pawns go after quiet moves. The sort
// is stable so equal moves keep generation order.
func orderMoves(moves []board.Move) []board.Move {
	sort.SliceStable(moves, func(i, j int) bool {
		return orderScore(moves[i]) > orderScore(moves[j])
	})
	return moves
}

func orderScore(m board.Move) int {
	score := 0
	if m.IsPromotion {
		score += m.PromotionKind().Value()
	}
	if !m.IsCapture() {
		return score
	}
	if m.Captured.Kind == board.Pawn && (m.Piece.Kind == board.Bishop || m.Piece.Kind == board.Queen) {
		return score - 1
	}
	return score + 10*m.Captured.Kind.Value() - m.Piece.Kind.Value()/10
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
