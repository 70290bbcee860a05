package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/board"
	"termchess/config"
)

// ColorConfigUI provides a board color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()
	saveErr   error
	filling   bool

	selectedLight int
	selectedDark  int
	editingDark   bool // true = editing dark squares, false = editing light squares
}

type paletteColor struct {
	code int
	name string
}

// Light square colors
var lightColors = []paletteColor{
	{230, "Cream"},
	{229, "Pale Yellow"},
	{223, "Peach"},
	{222, "Wheat"},
	{188, "Light Beige"},
	{187, "Khaki"},
	{181, "Dusty Rose"},
	{180, "Tan"},
	{194, "Mint"},
	{153, "Ice Blue"},
	{152, "Powder Blue"},
	{252, "Light Gray"},
	{250, "Gray"},
}

// Dark square colors
var darkColors = []paletteColor{
	{137, "Walnut"},
	{136, "Dark Brown"},
	{130, "Rust"},
	{94, "Saddle Brown"},
	{95, "Mocha"},
	{101, "Olive Gray"},
	{65, "Moss Green"},
	{29, "Tournament Green"},
	{24, "Dark Cyan"},
	{67, "Steel Blue"},
	{60, "Slate"},
	{240, "Charcoal"},
	{238, "Graphite"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:           cfg,
		onDone:        onDone,
		selectedLight: cfg.Theme.Colors.LightSquare,
		selectedDark:  cfg.Theme.Colors.DarkSquare,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	// Moving through the list previews the color
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		palette := cc.palette()
		if cc.filling || index < 0 || index >= len(palette) {
			return
		}
		if cc.editingDark {
			cc.selectedDark = palette[index].code
		} else {
			cc.selectedLight = palette[index].code
		}
	})

	// Enter applies: light squares first, then dark squares, then done
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if cc.editingDark {
			cc.cfg.Theme.Colors.DarkSquare = cc.selectedDark
		} else {
			cc.cfg.Theme.Colors.LightSquare = cc.selectedLight
		}
		cc.saveErr = cc.cfg.Save()
		if cc.saveErr != nil {
			cc.populateColorList()
			return
		}
		if !cc.editingDark {
			cc.editingDark = true
			cc.populateColorList()
			return
		}
		cc.editingDark = false
		cc.populateColorList()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) palette() []paletteColor {
	if cc.editingDark {
		return darkColors
	}
	return lightColors
}

// populateColorList fills the list for the squares being edited.
func (cc *ColorConfigUI) populateColorList() {
	cc.filling = true
	defer func() { cc.filling = false }()
	cc.colorList.Clear()

	current := cc.selectedLight
	title := " Light Squares (Tab: dark) "
	if cc.editingDark {
		current = cc.selectedDark
		title = " Dark Squares (Tab: light) "
	}
	if cc.saveErr != nil {
		title = fmt.Sprintf(" Save failed: %v ", cc.saveErr)
	}
	cc.colorList.SetTitle(title)

	for i, c := range cc.palette() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.palette() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

// previewPosition is drawn in the preview: a few moves into an open game.
var previewPosition = func() *board.Board {
	b, err := board.FromFEN("r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	if err != nil {
		return board.New()
	}
	return b
}()

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	startX := x + 2
	startY := y + 1
	if width < 8*cellWidth+4 || height < 8+4 {
		return x, y, width, height
	}

	theme := cc.cfg.Theme
	light := tcell.StyleDefault.Background(tcell.PaletteColor(cc.selectedLight))
	dark := tcell.StyleDefault.Background(tcell.PaletteColor(cc.selectedDark))
	whiteFG := tcell.PaletteColor(theme.Colors.WhitePiece)
	blackFG := tcell.PaletteColor(theme.Colors.BlackPiece)

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			style := light
			if (row+col)%2 == 1 {
				style = dark
			}
			ch := ' '
			if p := previewPosition.PieceAt(board.Square{Row: row, Col: col}); !p.Empty() {
				ch = theme.Symbols.Piece(p.Kind)
				if !theme.UseSymbols {
					ch = rune(p.FENLetter())
				}
				fg := whiteFG
				if p.Color == board.Black {
					fg = blackFG
				}
				style = style.Foreground(fg).Bold(true)
			}
			drawPieceCell(screen, style, ch, startX+col*cellWidth, startY+row)
		}
	}

	info := fmt.Sprintf("Light: %d  Dark: %d", cc.selectedLight, cc.selectedDark)
	drawText(screen, startX, startY+9, info, tcell.StyleDefault)

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between light and dark square editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingDark = !cc.editingDark
	cc.saveErr = nil
	cc.populateColorList()
}
