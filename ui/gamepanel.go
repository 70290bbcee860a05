package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termchess/board"
	"termchess/search"
	"termchess/types"
)

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	state      *types.GameState
	depth      int
	startMove  int
	startBlack bool
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box:       tview.NewTextView(),
		startMove: 1,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetGameState updates the panel with the current game. startMove and
// startBlack describe the position the game started from.
func (p *GameInfoPanel) SetGameState(state *types.GameState, startMove int, startBlack bool) {
	p.state = state
	p.startMove = startMove
	p.startBlack = startBlack
	p.refresh()
}

// SetDepth sets the engine search depth for display.
func (p *GameInfoPanel) SetDepth(depth int) {
	p.depth = depth
	p.refresh()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.state == nil {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	if p.depth > 0 {
		text += fmt.Sprintf("[white]Depth:[-:-:-] %d\n", p.depth)
	}
	text += fmt.Sprintf("[white]Move:[-:-:-]  %d\n", p.state.Board.FullMoveNumber())
	text += fmt.Sprintf("[white]Eval:[-:-:-]  %s\n", evalBar(p.state.Eval))

	toMove := "[white]White[-]"
	if p.state.ToMove == board.Black {
		toMove = "[dimgray]Black[-]"
	}
	text += fmt.Sprintf("[white]Turn:[-:-:-]  %s\n", toMove)

	if p.state.Finished() {
		text += fmt.Sprintf("\n[yellow::b]%s[-:-:-]\n[dimgray]%s[-]\n", p.state.Result, p.state.Outcome)
	}

	pairs := p.state.MovePairs(p.startMove, p.startBlack)
	if len(pairs) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		// Show last N moves that fit
		maxVisible := 12
		start := 0
		if len(pairs) > maxVisible {
			start = len(pairs) - maxVisible
		}
		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}

		for i := start; i < len(pairs); i++ {
			marker := " "
			if i == len(pairs)-1 {
				marker = "[white]>[-]"
			}
			text += fmt.Sprintf("%s %s\n", marker, tview.Escape(pairs[i]))
		}
	}

	p.box.SetText(text)
}

// evalBar renders the evaluation in pawns with a short bar leaning towards
// the side that is better.
func evalBar(score int) string {
	const half = 5
	lean := score / 100
	if lean > half {
		lean = half
	}
	if lean < -half {
		lean = -half
	}
	bar := []rune("░░░░░│░░░░░")
	if lean > 0 {
		for i := half + 1; i <= half+lean; i++ {
			bar[i] = '█'
		}
	} else {
		for i := half - 1; i >= half+lean; i-- {
			bar[i] = '▓'
		}
	}
	return fmt.Sprintf("%s %s", search.FormatScore(score), string(bar))
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(chessBoard *ChessBoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, chessBoard, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, chessBoard *ChessBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	chessBoard.infoPanel = infoPanel
	if chessBoard.State != nil {
		infoPanel.SetGameState(chessBoard.State, chessBoard.startMove, chessBoard.startBlack)
	}

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(chessBoard.Box, 0, 1, true)    // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 28, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 5, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, chessBoard *ChessBoardUI) {
	gameFrame.Clear()

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(chessBoard.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false) // bottom spacer
}
