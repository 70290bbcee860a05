// Package record writes and reads chess game records as JSON files.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"termchess/board"
)

const (
	appName   = "termchess:1.0"
	humanName = "Player"
)

// Header is the metadata stored with every record.
type Header struct {
	App         string `json:"app"`
	White       string `json:"white"`
	Black       string `json:"black"`
	Date        string `json:"date"`
	Depth       int    `json:"depth"`
	StartFEN    string `json:"start_fen,omitempty"`
	Result      string `json:"result"` // "1-0", "0-1", "1/2-1/2" or "*"
	Termination string `json:"termination,omitempty"`
}

// PlayerColor returns the side the human played.
func (h Header) PlayerColor() board.Color {
	if h.Black == humanName {
		return board.Black
	}
	return board.White
}

// document is the on-disk layout. Moves are in coordinate notation.
type document struct {
	Header
	Moves []string `json:"moves"`
}

// GameRecord tracks a game in progress and rewrites its file on every change.
type GameRecord struct {
	FilePath string
	Header
	moves []string
	file  *os.File
}

// NewGameRecord creates a new record file in dir and writes the initial header.
// playerColor is the human player's color; startFEN is empty for the standard
// initial position.
func NewGameRecord(dir string, playerColor board.Color, depth int, startFEN string) (*GameRecord, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	now := time.Now()
	path := filepath.Join(dir, now.Format("2006-01-02_150405")+".json")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.json", now.Format("2006-01-02_150405"), now.Nanosecond()))
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	}
	if err != nil {
		return nil, fmt.Errorf("create record file: %w", err)
	}

	human := humanName
	engine := fmt.Sprintf("termchess depth %d", depth)
	white, black := human, engine
	if playerColor == board.Black {
		white, black = engine, human
	}

	rec := &GameRecord{
		FilePath: path,
		Header: Header{
			App:      appName,
			White:    white,
			Black:    black,
			Date:     now.Format("2006-01-02"),
			Depth:    depth,
			StartFEN: startFEN,
			Result:   "*",
		},
		file: f,
	}

	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}
	return rec, nil
}

// OpenGameRecord reopens an existing record so a resumed game keeps writing
// to the same file.
func OpenGameRecord(filePath string) (*GameRecord, error) {
	doc, err := readDocument(filePath)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filePath, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	return &GameRecord{
		FilePath: filePath,
		Header:   doc.Header,
		moves:    doc.Moves,
		file:     f,
	}, nil
}

// AddMove appends a move to the record.
func (r *GameRecord) AddMove(m board.Move) error {
	r.moves = append(r.moves, m.String())
	return r.flush()
}

// Moves returns the recorded moves in coordinate notation.
func (r *GameRecord) Moves() []string {
	return append([]string(nil), r.moves...)
}

// SetMoves replaces the move list, used when a game is resumed from an
// earlier record.
func (r *GameRecord) SetMoves(moves []string) error {
	r.moves = append([]string(nil), moves...)
	return r.flush()
}

// UndoMoves removes the last n moves from the record.
func (r *GameRecord) UndoMoves(n int) error {
	if n > len(r.moves) {
		n = len(r.moves)
	}
	r.moves = r.moves[:len(r.moves)-n]
	r.Result, r.Termination = "*", ""
	return r.flush()
}

// SetResult parses a game outcome and stores the result.
// Accepts engine outcomes like "White wins by checkmate" or "Draw by stalemate"
// as well as plain results like "1-0".
func (r *GameRecord) SetResult(outcome string) error {
	r.Result, r.Termination = parseResult(outcome)
	return r.flush()
}

// Close performs a final flush and closes the file handle.
func (r *GameRecord) Close() {
	if r.file == nil {
		return
	}
	r.flush()
	r.file.Close()
	r.file = nil
}

// flush rewrites the complete record file from scratch.
func (r *GameRecord) flush() error {
	if r.file == nil {
		return fmt.Errorf("file already closed")
	}
	moves := r.moves
	if moves == nil {
		moves = []string{}
	}
	data, err := json.MarshalIndent(document{Header: r.Header, Moves: moves}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return r.file.Sync()
}

// parseResult converts an outcome to a result and the reason the game ended.
func parseResult(outcome string) (result, termination string) {
	o := strings.TrimSpace(outcome)
	switch o {
	case "1-0", "0-1", "1/2-1/2", "*":
		return o, ""
	}

	low := strings.ToLower(o)
	if i := strings.Index(low, " by "); i != -1 {
		termination = strings.TrimSpace(low[i+4:])
	}
	switch {
	case strings.HasPrefix(low, "white wins"):
		return "1-0", termination
	case strings.HasPrefix(low, "black wins"):
		return "0-1", termination
	case strings.HasPrefix(low, "draw"):
		return "1/2-1/2", termination
	}
	return "*", ""
}
