// termchess is a terminal application to play chess against a built-in engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/config"
	"termchess/engine"
	"termchess/engine/local"
	"termchess/record"
	"termchess/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagColor      = flag.String("color", "", "Player color (white or black)")
	flagDepth      = flag.Int("depth", 0, fmt.Sprintf("Engine search depth in plies (1-%d)", engine.MaxDepth))
	flagLevel      = flag.Int("level", 0, "Engine difficulty level (1-5), overridden by --depth")
	flagWorkers    = flag.Int("workers", 0, "Goroutines used by the engine's root search")
	flagFEN        = flag.String("fen", "", "Start from this FEN position")
	flagMoves      = flag.String("moves", "", "Space separated coordinate moves to play from the start position")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagDebug      = flag.Bool("debug", false, "Write the engine debug log to the state directory")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.ChessBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var history *ui.HistoryBrowserUI
var cfg *config.Config

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termchess %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagDebug {
		closeLog, err := enableDebugLog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %s\n", err)
			os.Exit(1)
		}
		defer closeLog()
	}

	quickStart := *flagQuickStart || *flagColor != "" || *flagDepth > 0 || *flagLevel > 0 ||
		*flagFEN != "" || *flagMoves != "" || *flagFocus
	var quickCfg engine.GameConfig
	if quickStart {
		// Validate flags before taking over the terminal
		if quickCfg, err = buildGameConfigFromFlags(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ termchess ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewChessBoard(app, cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			if gameBoard.HasSelection() {
				gameBoard.Deselect()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveCursor(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveCursor(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveCursor(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveCursor(1, 0)
		case tcell.KeyEnter:
			gameBoard.Activate()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveCursor(-1, 0)
			case 'j':
				gameBoard.MoveCursor(0, 1)
			case 'k':
				gameBoard.MoveCursor(0, -1)
			case 'l':
				gameBoard.MoveCursor(1, 0)
			case ' ':
				gameBoard.Activate()
			case 'p':
				gameBoard.CyclePromotion()
			case 'u':
				gameBoard.Undo()
			case 'x':
				gameBoard.Flip()
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg, "")
		},
		func() {
			history.Refresh()
			rootPage.SwitchToPage("history")
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
		func() {
			app.Stop()
		},
	)

	// History browser
	history = ui.NewHistoryBrowser(cfg,
		func() {
			rootPage.SwitchToPage("setup")
		},
		func(gameCfg engine.GameConfig, recordPath string) {
			startGame(gameCfg, recordPath)
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			gameBoard.SetConfig(cfg)
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", setupUI.Form(), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("history", history.Flex(), true, false)

	if quickStart {
		startGame(quickCfg, "")
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}
	gameBoard.Close()
}

// startGame starts a game with the given configuration and records it in
// the history directory. A resumed game passes the record it continues.
func startGame(gameCfg engine.GameConfig, recordPath string) {
	gameBoard.Close()
	rec := newRecord(gameCfg, recordPath)

	eng := local.NewLocalEngine(gameCfg)
	if err := gameBoard.ConnectEngine(eng, gameCfg, rec); err != nil {
		eng.Close()
		if rec != nil {
			rec.Close()
			if recordPath == "" {
				os.Remove(rec.FilePath)
			}
		}
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	gameBoard.SetEngineInfo(gameCfg.Depth)
	rootPage.SwitchToPage("gameview")
}

// newRecord opens a record file for the game. Games are still playable when
// the history directory is not writable.
func newRecord(gameCfg engine.GameConfig, recordPath string) *record.GameRecord {
	if recordPath != "" {
		rec, err := record.OpenGameRecord(recordPath)
		if err != nil {
			return nil
		}
		return rec
	}
	dir, err := cfg.GetHistoryDir()
	if err != nil {
		return nil
	}
	rec, err := record.NewGameRecord(dir, gameCfg.PlayerColor, gameCfg.Depth, gameCfg.StartFEN)
	if err != nil {
		return nil
	}
	return rec
}

// buildGameConfigFromFlags creates a GameConfig from command-line flags.
func buildGameConfigFromFlags() (engine.GameConfig, error) {
	// Start with defaults
	gameCfg := engine.GameConfig{
		PlayerColor: cfg.Engine.PlayerColor(),
		Depth:       cfg.Engine.DefaultDepth,
		Workers:     cfg.Engine.Workers,
	}

	if *flagColor != "" {
		c, err := config.ParseColor(*flagColor)
		if err != nil {
			return gameCfg, err
		}
		gameCfg.PlayerColor = c
	}

	if *flagLevel > 0 {
		gameCfg.Depth = engine.DepthForLevel(*flagLevel)
	}
	if *flagDepth > 0 {
		if *flagDepth > engine.MaxDepth {
			return gameCfg, fmt.Errorf("depth must be between 1 and %d, got %d", engine.MaxDepth, *flagDepth)
		}
		gameCfg.Depth = *flagDepth
	}
	if *flagWorkers > 0 {
		gameCfg.Workers = *flagWorkers
	}

	gameCfg.StartFEN = strings.TrimSpace(*flagFEN)
	gameCfg.Moves = strings.Fields(*flagMoves)

	// Surface a bad position or move list now rather than inside the UI
	_, err := record.Replay(gameCfg.StartFEN, gameCfg.Moves)
	return gameCfg, err
}

// enableDebugLog sends the engine debug log to the XDG state directory.
func enableDebugLog() (func(), error) {
	path, err := config.LogFile()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	local.SetDebugOutput(f)
	return func() {
		local.SetDebugOutput(io.Discard)
		f.Close()
	}, nil
}
