package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette shared by the menu screens. It leans on warm
// board-wood tones so the menus sit well next to the default board theme.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	CardBG      tcell.Color
	Title       tcell.Color
	TitleAccent tcell.Color // knight glyph and dividers
	Label       tcell.Color
	Hint        tcell.Color
	Selected    tcell.Color
	Unselected  tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
	Error       tcell.Color
}{
	Border:      tcell.PaletteColor(95),  // mocha
	BorderFocus: tcell.PaletteColor(180), // tan
	CardBG:      tcell.PaletteColor(235),
	Title:       tcell.PaletteColor(230), // cream
	TitleAccent: tcell.PaletteColor(179),
	Label:       tcell.PaletteColor(252),
	Hint:        tcell.PaletteColor(244),
	Selected:    tcell.PaletteColor(180),
	Unselected:  tcell.PaletteColor(244),
	ButtonFocus: tcell.PaletteColor(137), // walnut
	ButtonText:  tcell.PaletteColor(231),
	Error:       tcell.PaletteColor(167),
}
