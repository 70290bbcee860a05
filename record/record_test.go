package record

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"termchess/board"
)

const testRecord = `{
  "app": "termchess:1.0",
  "white": "Player",
  "black": "termchess depth 3",
  "date": "2026-01-15",
  "depth": 3,
  "result": "0-1",
  "termination": "checkmate",
  "moves": ["f2f3", "e7e5", "g2g4", "d8h4"]
}`

func writeTempRecord(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp record: %v", err)
	}
	return path
}

func legalMove(t *testing.T, b *board.Board, s string) board.Move {
	t.Helper()
	m, err := b.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		input       string
		result      string
		termination string
	}{
		{"1-0", "1-0", ""},
		{"0-1", "0-1", ""},
		{"1/2-1/2", "1/2-1/2", ""},
		{"*", "*", ""},
		{"White wins by checkmate", "1-0", "checkmate"},
		{"Black wins by checkmate", "0-1", "checkmate"},
		{"Black wins by resignation", "0-1", "resignation"},
		{"Draw by stalemate", "1/2-1/2", "stalemate"},
		{"Draw by threefold repetition", "1/2-1/2", "threefold repetition"},
		{"White wins", "1-0", ""},
		{"something else", "*", ""},
		{"", "*", ""},
	}
	for _, tt := range tests {
		result, termination := parseResult(tt.input)
		if result != tt.result || termination != tt.termination {
			t.Errorf("parseResult(%q) = %q, %q; want %q, %q",
				tt.input, result, termination, tt.result, tt.termination)
		}
	}
}

func TestGameRecordLifecycle(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, board.Black, 4, "")
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	defer rec.Close()

	if rec.White != "termchess depth 4" || rec.Black != "Player" {
		t.Errorf("players = %q vs %q", rec.White, rec.Black)
	}
	if rec.PlayerColor() != board.Black {
		t.Errorf("PlayerColor = %v, want Black", rec.PlayerColor())
	}

	b := board.New()
	for _, s := range []string{"e2e4", "e7e5", "g1f3"} {
		m := legalMove(t, b, s)
		b.MakeMove(m)
		if err := rec.AddMove(m); err != nil {
			t.Fatalf("AddMove: %v", err)
		}
	}

	info, err := ParseHeader(rec.FilePath)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if info.MoveCount != 3 || info.Result != "*" || info.Depth != 4 || info.Finished() {
		t.Errorf("info = %+v", info)
	}

	if err := rec.UndoMoves(2); err != nil {
		t.Fatalf("UndoMoves: %v", err)
	}
	if err := rec.SetResult("White wins by checkmate"); err != nil {
		t.Fatalf("SetResult: %v", err)
	}
	rec.Close()

	_, moves, err := ReadMoves(rec.FilePath)
	if err != nil {
		t.Fatalf("ReadMoves: %v", err)
	}
	if len(moves) != 1 || moves[0] != "e2e4" {
		t.Errorf("moves = %v, want [e2e4]", moves)
	}
	info, _ = ParseHeader(rec.FilePath)
	if info.Result != "1-0" || info.Termination != "checkmate" {
		t.Errorf("result = %q (%q)", info.Result, info.Termination)
	}

	if err := rec.AddMove(legalMove(t, board.New(), "d2d4")); err == nil {
		t.Error("AddMove after Close should fail")
	}
}

func TestUndoMovesClearsResult(t *testing.T) {
	rec, err := NewGameRecord(t.TempDir(), board.White, 2, "")
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()
	rec.AddMove(legalMove(t, board.New(), "e2e4"))
	rec.SetResult("Draw by stalemate")
	rec.UndoMoves(5)
	if rec.Result != "*" || len(rec.Moves()) != 0 {
		t.Errorf("after undo: result %q, moves %v", rec.Result, rec.Moves())
	}
}

func TestRecordFileIsJSON(t *testing.T) {
	rec, err := NewGameRecord(t.TempDir(), board.White, 3, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	data, err := os.ReadFile(rec.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("record is not JSON: %v\n%s", err, data)
	}
	if doc["start_fen"] != "4k3/8/8/8/8/8/8/4K2R w K - 0 1" {
		t.Errorf("start_fen = %v", doc["start_fen"])
	}
	if moves, ok := doc["moves"].([]interface{}); !ok || len(moves) != 0 {
		t.Errorf("moves = %v, want empty list", doc["moves"])
	}
	if !strings.HasSuffix(rec.FilePath, ".json") {
		t.Errorf("file name %q", rec.FilePath)
	}
}

func TestReplayToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeTempRecord(t, dir, "test.json", testRecord)

	b, moveCount, err := ReplayToEnd(path)
	if err != nil {
		t.Fatalf("ReplayToEnd: %v", err)
	}
	if moveCount != 4 {
		t.Errorf("moveCount = %d, want 4", moveCount)
	}
	if !b.IsCheckmate() {
		t.Error("final position should be checkmate")
	}
	if p := b.PieceAt(board.Square{Row: 4, Col: 7}); p.Kind != board.Queen || p.Color != board.Black {
		t.Errorf("h4 = %+v, want black queen", p)
	}
}

func TestReplayRejectsIllegalMove(t *testing.T) {
	_, err := Replay("", []string{"e2e4", "e7e5", "e4e5"})
	if !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("Replay error = %v, want ErrIllegalMove", err)
	}
	if _, err := Replay("not a fen", nil); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("Replay error = %v, want ErrInvalidFEN", err)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	if _, err := ParseHeader("/nonexistent/file.json"); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeTempRecord(t, t.TempDir(), "bad.json", "{not json")
	if _, err := ParseHeader(path); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestListGames(t *testing.T) {
	dir := t.TempDir()
	writeTempRecord(t, dir, "2026-01-10_100000.json", testRecord)
	writeTempRecord(t, dir, "2026-01-12_090000.json", testRecord)
	writeTempRecord(t, dir, "2026-01-11_120000.json", testRecord)
	writeTempRecord(t, dir, "notes.txt", "not a record")
	writeTempRecord(t, dir, "broken.json", "{")

	games, err := ListGames(dir)
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	want := []string{"2026-01-12_090000.json", "2026-01-11_120000.json", "2026-01-10_100000.json"}
	if len(games) != len(want) {
		t.Fatalf("got %d games, want %d", len(games), len(want))
	}
	for i, g := range games {
		if g.FileName != want[i] {
			t.Errorf("games[%d] = %q, want %q", i, g.FileName, want[i])
		}
	}
}

func TestListGamesMissingDir(t *testing.T) {
	games, err := ListGames(filepath.Join(t.TempDir(), "missing"))
	if err != nil || games != nil {
		t.Errorf("ListGames(missing) = %v, %v", games, err)
	}
}

func TestOpenGameRecordContinuesFile(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, board.Black, 3, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.SetMoves([]string{"e2e4", "e7e5"}); err != nil {
		t.Fatal(err)
	}
	rec.Close()

	resumed, err := OpenGameRecord(rec.FilePath)
	if err != nil {
		t.Fatalf("OpenGameRecord: %v", err)
	}
	defer resumed.Close()
	if resumed.PlayerColor() != board.Black || resumed.Depth != 3 || len(resumed.Moves()) != 2 {
		t.Fatalf("resumed = %+v moves %v", resumed.Header, resumed.Moves())
	}
	if err := resumed.SetMoves([]string{"e2e4", "e7e5", "g1f3"}); err != nil {
		t.Fatal(err)
	}

	games, err := ListGames(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].MoveCount != 3 {
		t.Fatalf("games = %+v, want the one record with 3 moves", games)
	}

	if _, err := OpenGameRecord(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("OpenGameRecord of a missing file should fail")
	}
}
