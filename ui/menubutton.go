package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// MenuButton is a styled button with an optional hotkey.
type MenuButton struct {
	label    string
	hotkey   rune
	primary  bool
	focused  bool
	onSelect func()
}

// NewMenuButton creates a new menu button. hotkey may be 0.
func NewMenuButton(label string, hotkey rune, primary bool, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		hotkey:   unicode.ToLower(hotkey),
		primary:  primary,
		onSelect: onSelect,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// Press runs the button action.
func (b *MenuButton) Press() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

// HandleKey presses the button on Enter. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	if event.Key() == tcell.KeyEnter {
		b.Press()
		return true
	}
	return false
}

// Hotkey returns the key that presses the button from anywhere on the card.
func (b *MenuButton) Hotkey() rune {
	return b.hotkey
}

func (b *MenuButton) text() string {
	if b.primary {
		return "▶ " + b.label
	}
	return b.label
}

// Draw renders the button at the given position and returns the width used.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.text()
	width := b.Width()

	if b.focused {
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		drawText(screen, x+1, y, label, style)
		return width
	}

	dimStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	keyStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG).Underline(true)
	bracketStyle := tcell.StyleDefault.Foreground(MenuColors.Border).Background(MenuColors.CardBG)

	screen.SetContent(x, y, '[', nil, bracketStyle)
	col := x + 1
	marked := false
	for _, ch := range label {
		style := dimStyle
		if !marked && b.hotkey != 0 && unicode.ToLower(ch) == b.hotkey {
			style = keyStyle
			marked = true
		}
		screen.SetContent(col, y, ch, nil, style)
		col++
	}
	screen.SetContent(col, y, ']', nil, bracketStyle)
	return width
}

// Width returns the button width including padding or brackets.
func (b *MenuButton) Width() int {
	return len([]rune(b.text())) + 2
}
