// Package ui specifies custom controls for tview to assist in playing chess in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/board"
	"termchess/config"
	"termchess/engine"
	"termchess/record"
	"termchess/search"
	"termchess/types"
)

// Each square is drawn 3 cells wide, with the rank labels to the left.
const (
	cellWidth   = 3
	boardLeft   = 3
	boardWidth  = boardLeft + 8*cellWidth
	boardHeight = 8 + 1
)

var promotionCycle = []board.Kind{board.Queen, board.Rook, board.Bishop, board.Knight}

type ChessBoardUI struct {
	Box       *tview.Box
	State     *types.GameState
	hint      *tview.TextView
	cfg       *config.Config
	app       *tview.Application
	eng       engine.GameEngine
	rec       *record.GameRecord
	styles    []tcell.Color
	infoPanel *GameInfoPanel
	focusMode bool
	flipped   bool

	cursor    board.Square
	selected  board.Square
	targets   []board.Move
	promotion board.Kind
	message   string

	// Full-move number and side to move of the starting position, used to
	// number the move list.
	startMove  int
	startBlack bool
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *ChessBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *ChessBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *ChessBoardUI) IsFocusMode() bool {
	return g.focusMode
}

// Flip turns the board around.
func (g *ChessBoardUI) Flip() {
	g.flipped = !g.flipped
}

// Cursor returns the square under the cursor, or nil if the cursor is hidden.
func (g *ChessBoardUI) Cursor() *board.Square {
	if !g.cursor.Valid() {
		return nil
	}
	sq := g.cursor
	return &sq
}

// HasSelection reports whether a piece is picked up.
func (g *ChessBoardUI) HasSelection() bool {
	return g.selected.Valid()
}

// MoveCursor moves the cursor by screen direction; dx is columns to the
// right and dy rows down.
func (g *ChessBoardUI) MoveCursor(dx, dy int) {
	if g.State == nil || g.State.Finished() {
		g.ResetSelection()
		return
	}
	if !g.cursor.Valid() {
		g.cursor = g.homeSquare()
		return
	}
	if g.flipped {
		dx, dy = -dx, -dy
	}
	next := board.Square{Row: g.cursor.Row + dy, Col: g.cursor.Col + dx}
	if !next.Valid() {
		return
	}
	g.cursor = next
}

// homeSquare is where the cursor appears: the last move's destination, or the
// player's king.
func (g *ChessBoardUI) homeSquare() board.Square {
	if g.State.LastMove != nil {
		return g.State.LastMove.To
	}
	if g.eng != nil && g.State.Board != nil {
		return g.State.Board.KingSquare(g.eng.GetPlayerColor())
	}
	return board.Square{Row: 6, Col: 4}
}

// ResetSelection drops the picked up piece and hides the cursor.
func (g *ChessBoardUI) ResetSelection() {
	g.selected = board.NoSquare
	g.targets = nil
	g.cursor = board.NoSquare
}

// Deselect drops the picked up piece but keeps the cursor.
func (g *ChessBoardUI) Deselect() {
	g.selected = board.NoSquare
	g.targets = nil
}

func NewChessBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *ChessBoardUI {
	chessBoard := &ChessBoardUI{
		Box:       tview.NewBox(),
		hint:      hint,
		app:       app,
		cursor:    board.NoSquare,
		selected:  board.NoSquare,
		promotion: board.Queen,
	}
	chessBoard.SetConfig(c)
	chessBoard.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if chessBoard.State == nil || chessBoard.State.Board == nil {
			return x, y, 1, 1
		}
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				sq := board.Square{Row: row, Col: col}
				dx, dy := chessBoard.screenPos(sq)
				r, style := chessBoard.cellStyle(sq)
				drawPieceCell(screen, style, r, x+boardLeft+dx*cellWidth, y+dy)
			}
		}
		if chessBoard.cfg.Theme.DrawCoordinates {
			drawCoordinates(screen, x, y, chessBoard)
		}
		return x, y, boardWidth, boardHeight
	})
	return chessBoard
}

// screenPos returns the display column and row of a square.
func (g *ChessBoardUI) screenPos(sq board.Square) (int, int) {
	if g.flipped {
		return 7 - sq.Col, 7 - sq.Row
	}
	return sq.Col, sq.Row
}

// cellStyle picks the glyph and colors for one square. Background priority is
// cursor, selection, check, last move and then the square color.
func (g *ChessBoardUI) cellStyle(sq board.Square) (rune, tcell.Style) {
	b := g.State.Board
	theme := g.cfg.Theme

	bg := g.styles[0]
	if (sq.Row+sq.Col)%2 == 1 {
		bg = g.styles[1]
	}
	if last := g.State.LastMove; last != nil && theme.DrawLastPlayedBG && (sq == last.From || sq == last.To) {
		bg = g.styles[8]
	}
	if g.State.InCheck() && sq == b.KingSquare(b.Turn()) {
		bg = g.styles[9]
	}
	if sq == g.selected {
		bg = g.styles[6]
	}
	if sq == g.cursor {
		bg = g.styles[5]
	}

	target := theme.DrawTargets && g.isTarget(sq)
	p := b.PieceAt(sq)
	if p.Empty() {
		if target {
			return theme.Symbols.Target, tcell.StyleDefault.Background(bg).Foreground(g.styles[7])
		}
		return ' ', tcell.StyleDefault.Background(bg)
	}

	r := theme.Symbols.Piece(p.Kind)
	if !theme.UseSymbols {
		r = rune(p.FENLetter())
	}
	fg := g.styles[2]
	if p.Color == board.Black {
		fg = g.styles[3]
	}
	if target && sq != g.cursor {
		bg = g.styles[7]
	}
	return r, tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true)
}

func (g *ChessBoardUI) isTarget(sq board.Square) bool {
	for _, m := range g.targets {
		if m.To == sq {
			return true
		}
	}
	return false
}

// ConnectEngine connects the board to a game engine. rec may be nil when the
// game is not recorded.
func (g *ChessBoardUI) ConnectEngine(e engine.GameEngine, gameCfg engine.GameConfig, rec *record.GameRecord) error {
	g.eng = e
	g.rec = rec
	g.message = ""
	g.flipped = gameCfg.PlayerColor == board.Black
	g.ResetSelection()

	start := board.New()
	if gameCfg.StartFEN != "" {
		if b, err := board.FromFEN(gameCfg.StartFEN); err == nil {
			start = b
		}
	}
	g.startMove = start.FullMoveNumber()
	g.startBlack = start.Turn() == board.Black

	// Callbacks arrive on the engine goroutine; the state is pulled again on
	// the UI goroutine so late callbacks never show an old position.
	e.OnMove(func(m board.Move, state *types.GameState) {
		go func() {
			g.app.QueueUpdateDraw(g.syncState)
		}()
	})

	e.OnGameEnd(func(outcome string) {
		go func() {
			g.app.QueueUpdateDraw(func() {
				if g.eng != e {
					return
				}
				g.syncState()
				g.ResetSelection()
				if g.rec != nil {
					g.recordFailed(g.rec.SetResult(outcome))
					g.refreshHint()
				}
			})
		}()
	})

	if err := e.Connect(); err != nil {
		g.eng, g.rec = nil, nil
		return err
	}
	g.syncState()
	return nil
}

// syncState reloads the game state from the engine and brings the record up
// to date. Runs on the UI goroutine.
func (g *ChessBoardUI) syncState() {
	if g.eng == nil {
		return
	}
	state := g.eng.GetGameState()
	if state == nil {
		return
	}
	g.State = state
	if g.selected.Valid() && state.Board != nil {
		g.targets = state.Board.LegalMovesFor(g.selected)
		if len(g.targets) == 0 {
			g.Deselect()
		}
	}
	if g.rec != nil && state.Board != nil && len(g.rec.Moves()) != state.MoveNumber {
		played := state.Board.MoveLog()
		moves := make([]string, len(played))
		for i, m := range played {
			moves[i] = m.String()
		}
		g.recordFailed(g.rec.SetMoves(moves))
	}
	g.refreshHint()
}

// recordFailed shows a record write error in the status line.
func (g *ChessBoardUI) recordFailed(err error) {
	if err != nil {
		g.message = fmt.Sprintf("Game not saved: %v", err)
	}
}

// Activate handles Enter on the cursor square: pick up a piece, put it down,
// or play the move.
func (g *ChessBoardUI) Activate() {
	if g.eng == nil || g.State == nil || g.State.Finished() {
		return
	}
	if !g.cursor.Valid() {
		g.cursor = g.homeSquare()
		return
	}
	if !g.eng.IsMyTurn() {
		g.message = "Wait for the engine to move"
		g.refreshHint()
		return
	}
	g.message = ""
	b := g.State.Board
	p := b.PieceAt(g.cursor)

	if g.selected.Valid() {
		if g.cursor == g.selected {
			g.Deselect()
			return
		}
		if g.isTarget(g.cursor) {
			g.playMove(g.selected, g.cursor)
			return
		}
	}
	if !p.Empty() && p.Color == g.eng.GetPlayerColor() {
		g.selected = g.cursor
		g.targets = b.LegalMovesFor(g.cursor)
		if len(g.targets) == 0 {
			g.message = fmt.Sprintf("%s on %s cannot move", p.Kind, g.cursor)
		}
		g.refreshHint()
		return
	}
	if g.selected.Valid() {
		g.message = fmt.Sprintf("%s%s is not a legal move", g.selected, g.cursor)
	}
	g.refreshHint()
}

func (g *ChessBoardUI) playMove(from, to board.Square) {
	err := g.eng.PlayMove(from, to, g.promotion)
	switch {
	case err == nil:
		g.Deselect()
	case errors.Is(err, engine.ErrNotYourTurn):
		g.message = "Wait for the engine to move"
	case errors.Is(err, board.ErrIllegalMove):
		g.message = fmt.Sprintf("%s%s is not a legal move", from, to)
	default:
		g.message = err.Error()
	}
	g.syncState()
}

// CyclePromotion selects the next piece pawns promote to.
func (g *ChessBoardUI) CyclePromotion() {
	for i, k := range promotionCycle {
		if k == g.promotion {
			g.promotion = promotionCycle[(i+1)%len(promotionCycle)]
			break
		}
	}
	g.refreshHint()
}

// Undo takes back the last move pair.
func (g *ChessBoardUI) Undo() {
	if g.eng == nil {
		return
	}
	n, err := g.eng.Undo()
	if err != nil {
		g.message = "Nothing to undo"
		g.refreshHint()
		return
	}
	g.message = ""
	if g.rec != nil {
		g.recordFailed(g.rec.UndoMoves(n))
	}
	g.Deselect()
	g.syncState()
}

// Close disconnects the engine and finishes the record.
func (g *ChessBoardUI) Close() {
	if g.eng != nil {
		g.eng.Close()
		g.eng = nil
	}
	if g.rec != nil {
		g.rec.Close()
		g.rec = nil
	}
}

func (g *ChessBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.LightSquare),  // 0
		tcell.PaletteColor(c.Theme.Colors.DarkSquare),   // 1
		tcell.PaletteColor(c.Theme.Colors.WhitePiece),   // 2
		tcell.PaletteColor(c.Theme.Colors.BlackPiece),   // 3
		tcell.PaletteColor(c.Theme.Colors.Coordinates),  // 4
		tcell.PaletteColor(c.Theme.Colors.CursorBG),     // 5
		tcell.PaletteColor(c.Theme.Colors.SelectedBG),   // 6
		tcell.PaletteColor(c.Theme.Colors.TargetColor),  // 7
		tcell.PaletteColor(c.Theme.Colors.LastPlayedBG), // 8
		tcell.PaletteColor(c.Theme.Colors.CheckBG),      // 9
	}
	g.cfg = c
}

// SetEngineInfo shows the search depth on the info panel.
func (g *ChessBoardUI) SetEngineInfo(depth int) {
	if g.infoPanel != nil {
		g.infoPanel.SetDepth(depth)
	}
}

func (g *ChessBoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetGameState(g.State, g.startMove, g.startBlack)
	}

	// Focus mode shows minimal hint
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.State != nil && g.State.Finished() {
		statusLine = "───────── Game Over ─────────\n"
		turnLine = fmt.Sprintf("  %s  %s\n", g.State.Result, g.State.Outcome)
		controlsLine = "  u · undo   q · return to menu"
	} else {
		if g.message != "" {
			statusLine = "  ! " + g.message + "\n"
		} else if g.State != nil && g.State.InCheck() {
			statusLine = "  + Check\n"
		}

		if g.eng != nil && g.eng.IsMyTurn() {
			piece := "♔"
			if g.eng.GetPlayerColor() == board.Black {
				piece = "♚"
			}
			turnLine = fmt.Sprintf("  %s Your move (%s)   eval %s\n", piece, g.eng.GetPlayerColor(), g.evalText())
		} else {
			turnLine = "  ◌ Thinking...\n"
		}

		controlsLine = fmt.Sprintf("  hjkl/↑↓←→ move   ⏎ pick/place   p promote to %s   u undo   x flip   f focus   q quit", g.promotion)
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

func (g *ChessBoardUI) evalText() string {
	if g.State == nil {
		return "0.00"
	}
	return search.FormatScore(g.State.Eval)
}

// IsFinished returns true if the game is over.
func (g *ChessBoardUI) IsFinished() bool {
	return g.State != nil && g.State.Finished()
}

// drawPieceCell draws one square, cellWidth characters wide with the glyph
// in the middle.
func drawPieceCell(s tcell.Screen, c tcell.Style, r rune, l, t int) {
	s.SetContent(l, t, ' ', nil, c)
	s.SetContent(l+1, t, r, nil, c)
	s.SetContent(l+2, t, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *ChessBoardUI) {
	style := tcell.StyleDefault.Foreground(ui.styles[4])
	highlight := tcell.StyleDefault.Background(ui.styles[5])

	for i := 0; i < 8; i++ {
		col, row := i, i
		if ui.flipped {
			col, row = 7-i, 7-i
		}

		fileStyle := style
		if col == ui.cursor.Col {
			fileStyle = highlight
		}
		l := x + boardLeft + i*cellWidth
		s.SetContent(l, y+8, ' ', nil, fileStyle)
		s.SetContent(l+1, y+8, rune('a'+col), nil, fileStyle)
		s.SetContent(l+2, y+8, ' ', nil, fileStyle)

		rankStyle := style
		if row == ui.cursor.Row {
			rankStyle = highlight
		}
		s.SetContent(x+1, y+i, rune('8'-row), nil, rankStyle)
	}
}
