package ui

import (
	"github.com/gdamore/tcell/v2"
)

// RadioOption represents a single radio button option.
type RadioOption struct {
	Label       string
	Description string
}

// RadioSelect is a radio button group. Up and Down, or Left and Right, move
// the choice and wrap around.
type RadioSelect struct {
	label    string
	options  []RadioOption
	selected int
	focused  bool
	onChange func(int)
}

// NewRadioSelect creates a new radio select component.
func NewRadioSelect(label string, options []RadioOption, initial int, onChange func(int)) *RadioSelect {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return &RadioSelect{
		label:    label,
		options:  options,
		selected: initial,
		onChange: onChange,
	}
}

// SetFocused sets the focus state.
func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	if len(r.options) == 0 {
		return false
	}
	switch event.Key() {
	case tcell.KeyUp, tcell.KeyLeft:
		r.SetSelected((r.selected + len(r.options) - 1) % len(r.options))
		return true
	case tcell.KeyDown, tcell.KeyRight:
		r.SetSelected((r.selected + 1) % len(r.options))
		return true
	}
	return false
}

// Draw renders the label followed by one row per option and returns the
// number of rows used.
func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	// ◈ Play as
	screen.SetContent(x+2, y, '◈', nil, accentStyle)
	drawText(screen, x+4, y, r.label, labelStyle)

	for i, opt := range r.options {
		row := y + 1 + i
		cursor, style, bullet := ' ', unselectedStyle, '○'
		if i == r.selected {
			style, bullet = selectedStyle, '●'
			if r.focused {
				cursor = '▸'
			}
		}
		screen.SetContent(x+4, row, cursor, nil, selectedStyle)
		screen.SetContent(x+5, row, ' ', nil, bgStyle)
		screen.SetContent(x+6, row, bullet, nil, style)
		col := drawText(screen, x+8, row, opt.Label, style)
		if opt.Description != "" && col+1 < x+width {
			drawText(screen, col+1, row, opt.Description, hintStyle)
		}
	}
	return len(r.options) + 1
}

// Selected returns the currently selected index.
func (r *RadioSelect) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RadioSelect) SetSelected(index int) {
	if index < 0 || index >= len(r.options) {
		return
	}
	r.selected = index
	if r.onChange != nil {
		r.onChange(r.selected)
	}
}
