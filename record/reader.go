package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"termchess/board"
)

// GameInfo holds metadata parsed from a record file.
type GameInfo struct {
	FilePath string
	FileName string
	Header
	MoveCount int
}

// Finished reports whether the record has a final result.
func (g *GameInfo) Finished() bool {
	return g.Result != "" && g.Result != "*"
}

func readDocument(filePath string) (*document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(filePath), err)
	}
	return &doc, nil
}

// ParseHeader reads a record file and returns its metadata.
func ParseHeader(filePath string) (*GameInfo, error) {
	doc, err := readDocument(filePath)
	if err != nil {
		return nil, err
	}
	return &GameInfo{
		FilePath:  filePath,
		FileName:  filepath.Base(filePath),
		Header:    doc.Header,
		MoveCount: len(doc.Moves),
	}, nil
}

// ReadMoves returns the start position and the recorded moves in coordinate
// notation.
func ReadMoves(filePath string) (startFEN string, moves []string, err error) {
	doc, err := readDocument(filePath)
	if err != nil {
		return "", nil, err
	}
	return doc.StartFEN, doc.Moves, nil
}

// Replay sets up the start position and plays moves on it. It stops with an
// error at the first move that is not legal.
func Replay(startFEN string, moves []string) (*board.Board, error) {
	b := board.New()
	if startFEN != "" {
		var err error
		if b, err = board.FromFEN(startFEN); err != nil {
			return nil, err
		}
	}
	for i, s := range moves {
		m, err := b.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		b.MakeMove(m)
	}
	return b, nil
}

// ReplayToEnd parses a record and replays all moves to produce the final position.
// Returns the board, the move count and any error.
func ReplayToEnd(filePath string) (*board.Board, int, error) {
	startFEN, moves, err := ReadMoves(filePath)
	if err != nil {
		return nil, 0, err
	}
	b, err := Replay(startFEN, moves)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}
	return b, len(moves), nil
}

// ListGames scans a directory for record files and returns their parsed headers,
// sorted newest-first (by filename, which contains timestamps).
func ListGames(dir string) ([]GameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var games []GameInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := ParseHeader(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		games = append(games, *info)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].FileName > games[j].FileName
	})
	return games, nil
}
