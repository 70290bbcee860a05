package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/board"
	"termchess/config"
	"termchess/engine"
	"termchess/record"
)

// HistoryBrowserUI provides a screen for browsing saved game records.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	cfg      *config.Config
	games    []record.GameInfo
	boards   map[string]*board.Board // cached final positions by file
	selected int
	loadErr  error
	onDone   func()
	onResume func(cfg engine.GameConfig, recordPath string)
}

// NewHistoryBrowser creates a new history browser screen. onResume is called
// with a configuration that replays an unfinished game and the record file
// the game should keep writing to.
func NewHistoryBrowser(cfg *config.Config, onDone func(), onResume func(cfg engine.GameConfig, recordPath string)) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		cfg:      cfg,
		onDone:   onDone,
		onResume: onResume,
		boards:   make(map[string]*board.Board),
	}

	// Game list (left panel)
	hb.gameList = tview.NewList()
	hb.gameList.SetBorder(true)
	hb.gameList.SetTitle(" Game History ")
	hb.gameList.ShowSecondaryText(false)
	hb.gameList.SetHighlightFullLine(true)
	hb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	// Preview box (right panel)
	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true)
	hb.preview.SetTitle(" Preview ")
	hb.preview.SetDrawFunc(hb.drawPreview)

	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText("  [dimgray]⏎[-] resume  [dimgray]d[-] delete  [dimgray]r[-] reload  [dimgray]q[-] back")

	hb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
	})
	hb.gameList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.resumeSelected()
	})
	hb.gameList.SetInputCapture(hb.handleInput)

	// Layout: list left, preview right, hint bottom
	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.gameList, 40, 0, true).
		AddItem(hb.preview, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.loadGames()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the game list from disk.
func (hb *HistoryBrowserUI) Refresh() {
	hb.boards = make(map[string]*board.Board)
	hb.loadGames()
}

// loadGames scans the history directory for record files.
func (hb *HistoryBrowserUI) loadGames() {
	hb.gameList.Clear()
	hb.games = nil
	hb.selected = 0
	hb.loadErr = nil

	dir, err := hb.cfg.GetHistoryDir()
	if err != nil {
		hb.loadErr = err
		hb.gameList.AddItem("[#d75f5f]History unavailable[-]", "", 0, nil)
		return
	}
	games, err := record.ListGames(dir)
	if err != nil {
		hb.loadErr = err
	}
	if len(games) == 0 {
		hb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		return
	}

	hb.games = games
	for _, g := range games {
		result := g.Result
		if !g.Finished() {
			result = "..."
		}
		side := "♔"
		if g.PlayerColor() == board.Black {
			side = "♚"
		}
		label := fmt.Sprintf("%s  %s d%d  %3d  %s", gameDate(g), side, g.Depth, g.MoveCount, result)
		hb.gameList.AddItem(label, "", 0, nil)
	}
}

// gameDate prefers the timestamp in the file name over the header date.
func gameDate(g record.GameInfo) string {
	name := strings.TrimSuffix(g.FileName, ".json")
	if len(name) >= len("2006-01-02_150405") {
		return name[:10] + " " + name[11:13] + ":" + name[13:15]
	}
	return g.Date
}

// handleInput processes keyboard input for the history browser.
func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if hb.onDone != nil {
				hb.onDone()
			}
			return nil
		case 'd':
			hb.deleteSelected()
			return nil
		case 'r':
			hb.Refresh()
			return nil
		}
	}
	return event
}

func (hb *HistoryBrowserUI) current() (record.GameInfo, bool) {
	if hb.selected < 0 || hb.selected >= len(hb.games) {
		return record.GameInfo{}, false
	}
	return hb.games[hb.selected], true
}

// deleteSelected removes the currently selected game file.
func (hb *HistoryBrowserUI) deleteSelected() {
	game, ok := hb.current()
	if !ok {
		return
	}
	os.Remove(game.FilePath)
	hb.Refresh()
}

// resumeSelected continues an unfinished game from where it stopped.
func (hb *HistoryBrowserUI) resumeSelected() {
	game, ok := hb.current()
	if !ok || game.Finished() || hb.onResume == nil {
		return
	}
	startFEN, moves, err := record.ReadMoves(game.FilePath)
	if err != nil {
		hb.loadErr = fmt.Errorf("resume %s: %w", game.FileName, err)
		return
	}
	hb.onResume(engine.GameConfig{
		PlayerColor: game.PlayerColor(),
		Depth:       game.Depth,
		Workers:     hb.cfg.Engine.Workers,
		StartFEN:    startFEN,
		Moves:       moves,
	}, game.FilePath)
}

// drawPreview renders a mini board of the final position and the game metadata.
func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	game, ok := hb.current()
	if !ok {
		if hb.loadErr != nil {
			drawText(screen, x+2, y+1, hb.loadErr.Error(), tcell.StyleDefault.Foreground(MenuColors.Error))
		}
		return x, y, width, height
	}

	// Lazy-load and cache the final position
	b, cached := hb.boards[game.FilePath]
	if !cached {
		var err error
		b, _, err = record.ReplayToEnd(game.FilePath)
		if err != nil {
			b = nil
		}
		hb.boards[game.FilePath] = b
	}

	startX := x + 2
	startY := y + 1
	if width < 2*8+4 || height < 8+7 {
		return x, y, width, height
	}

	infoY := startY
	if b != nil {
		light := tcell.StyleDefault.Background(tcell.PaletteColor(hb.cfg.Theme.Colors.LightSquare))
		dark := tcell.StyleDefault.Background(tcell.PaletteColor(hb.cfg.Theme.Colors.DarkSquare))
		whiteFG := tcell.PaletteColor(hb.cfg.Theme.Colors.WhitePiece)
		blackFG := tcell.PaletteColor(hb.cfg.Theme.Colors.BlackPiece)

		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				style := light
				if (row+col)%2 == 1 {
					style = dark
				}
				ch := ' '
				if p := b.PieceAt(board.Square{Row: row, Col: col}); !p.Empty() {
					ch = hb.cfg.Theme.Symbols.Piece(p.Kind)
					if p.Color == board.White {
						style = style.Foreground(whiteFG)
					} else {
						style = style.Foreground(blackFG)
					}
				}
				screen.SetContent(startX+col*2, startY+row, ch, nil, style)
				screen.SetContent(startX+col*2+1, startY+row, ' ', nil, style)
			}
		}
		infoY = startY + 9
	}

	infoStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	dimStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(245))
	resultStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(109))

	col := drawText(screen, startX, infoY, fmt.Sprintf("Depth %d", game.Depth), infoStyle)
	drawText(screen, col+1, infoY, fmt.Sprintf("| %d plies", game.MoveCount), dimStyle)
	drawText(screen, startX, infoY+1, "White: "+game.White, dimStyle)
	drawText(screen, startX, infoY+2, "Black: "+game.Black, dimStyle)

	result := "Unfinished, ⏎ to resume"
	if game.Finished() {
		result = game.Result
		if game.Termination != "" {
			result += " by " + game.Termination
		}
	}
	drawText(screen, startX, infoY+3, "Result: "+result, resultStyle)
	if b == nil {
		drawText(screen, startX, infoY+4, "Record could not be replayed", tcell.StyleDefault.Foreground(MenuColors.Error))
	}
	if hb.loadErr != nil {
		drawText(screen, startX, infoY+5, hb.loadErr.Error(), tcell.StyleDefault.Foreground(MenuColors.Error))
	}

	return x, y, width, height
}
