package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"termchess/board"
)

var (
	cfgFile    = "termchess/config.json"
	historyDir = "termchess/history"
	logFile    = "termchess/debug.log"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare  int `json:"light_square"`
	DarkSquare   int `json:"dark_square"`
	WhitePiece   int `json:"white_piece"`
	BlackPiece   int `json:"black_piece"`
	Coordinates  int `json:"coordinates"`
	CursorBG     int `json:"cursor_bg"`
	SelectedBG   int `json:"selected_bg"`
	TargetColor  int `json:"target"`
	LastPlayedBG int `json:"last_played_bg"`
	CheckBG      int `json:"check_bg"`
}

type ConfigSymbols struct {
	King   rune `json:"king"`
	Queen  rune `json:"queen"`
	Rook   rune `json:"rook"`
	Bishop rune `json:"bishop"`
	Knight rune `json:"knight"`
	Pawn   rune `json:"pawn"`
	Target rune `json:"target"`
}

// Piece returns the symbol configured for a piece kind.
func (s ConfigSymbols) Piece(k board.Kind) rune {
	switch k {
	case board.King:
		return s.King
	case board.Queen:
		return s.Queen
	case board.Rook:
		return s.Rook
	case board.Bishop:
		return s.Bishop
	case board.Knight:
		return s.Knight
	case board.Pawn:
		return s.Pawn
	}
	return ' '
}

type Theme struct {
	UseSymbols       bool          `json:"use_symbols"` // false draws FEN letters
	DrawCoordinates  bool          `json:"draw_coordinates"`
	DrawTargets      bool          `json:"draw_targets"`
	DrawLastPlayedBG bool          `json:"draw_last_played_bg"`
	Colors           ConfigColors  `json:"colors"`
	Symbols          ConfigSymbols `json:"symbols"`
}

// EngineConfig holds the defaults offered on the setup screen.
type EngineConfig struct {
	DefaultDepth int    `json:"default_depth"`
	DefaultColor string `json:"default_color"` // "white" or "black"
	Workers      int    `json:"workers"`
}

// PlayerColor parses DefaultColor, falling back to White.
func (e EngineConfig) PlayerColor() board.Color {
	c, err := ParseColor(e.DefaultColor)
	if err != nil {
		return board.White
	}
	return c
}

type Config struct {
	Theme      Theme        `json:"theme"`
	Engine     EngineConfig `json:"engine"`
	HistoryDir string       `json:"history_dir,omitempty"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.King, s.Queen, s.Rook, s.Bishop, s.Knight, s.Pawn, s.Target} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Engine.DefaultDepth < 1 || c.Engine.DefaultDepth > 6 {
		return &InvalidConfig{fmt.Sprintf("default_depth must be between 1 and 6, got %d", c.Engine.DefaultDepth)}
	}
	if c.Engine.Workers < 1 {
		return &InvalidConfig{fmt.Sprintf("workers must be at least 1, got %d", c.Engine.Workers)}
	}
	if _, err := ParseColor(c.Engine.DefaultColor); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

// GetHistoryDir returns the directory game records are written to, creating it
// if needed. An explicit history_dir wins over the XDG data directory.
func (c *Config) GetHistoryDir() (string, error) {
	if c.HistoryDir != "" {
		if err := os.MkdirAll(c.HistoryDir, 0755); err != nil {
			return "", fmt.Errorf("create history dir: %w", err)
		}
		return c.HistoryDir, nil
	}
	return HistoryDir()
}

// HistoryDir returns the default game record directory under XDG_DATA_HOME.
func HistoryDir() (string, error) {
	dir := filepath.Join(xdg.DataHome, historyDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create history dir: %w", err)
	}
	return dir, nil
}

// LogFile returns the path of the debug log under XDG_STATE_HOME.
func LogFile() (string, error) {
	return xdg.StateFile(logFile)
}

// ParseColor accepts "white", "w", "black" and "b" in any case. The empty
// string means White.
func ParseColor(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "", "white", "w":
		return board.White, nil
	case "black", "b":
		return board.Black, nil
	}
	return board.White, fmt.Errorf("unknown color %q", s)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, perm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}
	return nil
}
