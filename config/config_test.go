package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"termchess/board"
)

func useTempXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// Registered first so it runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	xdg.Reload()
	return dir
}

func TestDefaultConfigValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"control symbol", func(c *Config) { c.Theme.Symbols.Pawn = '\t' }},
		{"c1 symbol", func(c *Config) { c.Theme.Symbols.Target = 130 }},
		{"depth zero", func(c *Config) { c.Engine.DefaultDepth = 0 }},
		{"depth too deep", func(c *Config) { c.Engine.DefaultDepth = 7 }},
		{"no workers", func(c *Config) { c.Engine.Workers = 0 }},
		{"bad color", func(c *Config) { c.Engine.DefaultColor = "green" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.modify(&c)
			var invalid *InvalidConfig
			if err := c.Validate(); !errors.As(err, &invalid) {
				t.Errorf("Validate() = %v, want *InvalidConfig", err)
			}
		})
	}
}

func TestInitConfigWithoutFile(t *testing.T) {
	useTempXDG(t)
	c, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if c.Engine != DefaultConfig.Engine {
		t.Errorf("Engine = %+v, want defaults", c.Engine)
	}
}

func TestSaveAndLoad(t *testing.T) {
	useTempXDG(t)
	c := DefaultConfig
	c.Engine.DefaultDepth = 5
	c.Engine.DefaultColor = "black"
	c.Theme.Colors.DarkSquare = 94
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if loaded.Engine.DefaultDepth != 5 || loaded.Engine.PlayerColor() != board.Black {
		t.Errorf("Engine = %+v", loaded.Engine)
	}
	if loaded.Theme.Colors.DarkSquare != 94 {
		t.Errorf("DarkSquare = %d, want 94", loaded.Theme.Colors.DarkSquare)
	}
	if loaded.Theme.Symbols.King != '♚' {
		t.Errorf("King symbol = %q", loaded.Theme.Symbols.King)
	}
}

func TestInitConfigPartialFile(t *testing.T) {
	dir := useTempXDG(t)
	path := filepath.Join(dir, "config", "termchess", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"engine": {"default_depth": 2, "workers": 4}}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if c.Engine.DefaultDepth != 2 || c.Engine.Workers != 4 {
		t.Errorf("Engine = %+v", c.Engine)
	}
	if c.Theme.Colors.LightSquare != DefaultTheme.Colors.LightSquare {
		t.Error("theme defaults lost when file omits theme")
	}
}

func TestInitConfigRejectsBadFile(t *testing.T) {
	dir := useTempXDG(t)
	path := filepath.Join(dir, "config", "termchess", "config.json")
	os.MkdirAll(filepath.Dir(path), 0755)

	for _, content := range []string{`{not json`, `{"engine": {"default_depth": 9, "workers": 1}}`} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := InitConfig(); err == nil {
			t.Errorf("InitConfig accepted %s", content)
		}
	}
}

func TestHistoryDir(t *testing.T) {
	dir := useTempXDG(t)
	got, err := HistoryDir()
	if err != nil {
		t.Fatalf("HistoryDir: %v", err)
	}
	if want := filepath.Join(dir, "data", "termchess", "history"); got != want {
		t.Errorf("HistoryDir = %q, want %q", got, want)
	}

	c := DefaultConfig
	c.HistoryDir = filepath.Join(dir, "custom")
	got, err = c.GetHistoryDir()
	if err != nil || got != c.HistoryDir {
		t.Errorf("GetHistoryDir = %q, %v", got, err)
	}
	if _, err := os.Stat(c.HistoryDir); err != nil {
		t.Errorf("custom dir not created: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want board.Color
		ok   bool
	}{
		{"", board.White, true},
		{"white", board.White, true},
		{"W", board.White, true},
		{"Black", board.Black, true},
		{"b", board.Black, true},
		{"red", board.White, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v", tt.in, got, err)
		}
	}
}
