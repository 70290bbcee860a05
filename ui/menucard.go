package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuCard is a styled card container with rounded borders, a title and an
// optional footer line.
type MenuCard struct {
	*tview.Box
	title   string
	footer  string
	focused bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title string) *MenuCard {
	return &MenuCard{
		Box:   tview.NewBox(),
		title: title,
	}
}

// SetFooter sets the dim text drawn on the bottom border.
func (c *MenuCard) SetFooter(text string) {
	c.footer = text
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}

func (c *MenuCard) borderStyle() tcell.Style {
	borderColor := MenuColors.Border
	if c.focused {
		borderColor = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(borderColor).Background(MenuColors.CardBG)
}

// DrawCard renders the card frame into the inner rectangle of the box and
// returns the first free row below the title.
func (c *MenuCard) DrawCard(screen tcell.Screen) int {
	c.Box.DrawForSubclass(screen, c)

	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return y
	}
	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	// ╭───╮ frame
	bottom := y + height - 1
	right := x + width - 1
	for col := x + 1; col < right; col++ {
		screen.SetContent(col, y, '─', nil, borderStyle)
		screen.SetContent(col, bottom, '─', nil, borderStyle)
	}
	for row := y + 1; row < bottom; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(right, row, '│', nil, borderStyle)
	}
	screen.SetContent(x, y, '╭', nil, borderStyle)
	screen.SetContent(right, y, '╮', nil, borderStyle)
	screen.SetContent(x, bottom, '╰', nil, borderStyle)
	screen.SetContent(right, bottom, '╯', nil, borderStyle)

	next := y + 2
	if c.title != "" {
		titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
		accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)

		// ♞  T E R M C H E S S
		titleLen := len([]rune(c.title)) + 3
		titleX := x + (width-titleLen)/2
		screen.SetContent(titleX, y+2, '♞', nil, accentStyle)
		drawText(screen, titleX+3, y+2, c.title, titleStyle)

		c.DrawDivider(screen, y+4)
		next = y + 6
	}

	if c.footer != "" {
		hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
		footerX := x + (width-len([]rune(c.footer)))/2
		drawText(screen, footerX, bottom, c.footer, hintStyle)
	}
	return next
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	x, _, width, _ := c.GetInnerRect()
	borderStyle := c.borderStyle()

	screen.SetContent(x, divY, '├', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, divY, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, divY, '┤', nil, borderStyle)
}

// drawText writes a string to the screen at the given position and returns
// the column after it.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
