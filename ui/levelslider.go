package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// LevelSlider is a horizontal slider for a small integer range, with an
// optional caption for each value.
type LevelSlider struct {
	label    string
	min      int
	max      int
	value    int
	captions map[int]string
	focused  bool
	onChange func(int)
}

// NewLevelSlider creates a new level slider.
func NewLevelSlider(label string, min, max, initial int, onChange func(int)) *LevelSlider {
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &LevelSlider{
		label:    label,
		min:      min,
		max:      max,
		value:    initial,
		onChange: onChange,
	}
}

// SetCaptions sets the text shown next to each value.
func (s *LevelSlider) SetCaptions(captions map[int]string) *LevelSlider {
	s.captions = captions
	return s
}

// SetFocused sets the focus state.
func (s *LevelSlider) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey processes keyboard input. Digits jump straight to a value.
// Returns true if handled.
func (s *LevelSlider) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		s.SetValue(s.value - 1)
		return true
	case tcell.KeyRight:
		s.SetValue(s.value + 1)
		return true
	case tcell.KeyRune:
		if r := event.Rune(); r >= '0' && r <= '9' {
			s.SetValue(int(r - '0'))
			return true
		}
	}
	return false
}

// Draw renders the slider on one row and returns the number of rows used.
func (s *LevelSlider) Draw(screen tcell.Screen, x, y, width int) int {
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	unselectedStyle := tcell.StyleDefault.Foreground(MenuColors.Unselected).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	arrowStyle := unselectedStyle
	if s.focused {
		arrowStyle = selectedStyle
		screen.SetContent(x, y, '▸', nil, selectedStyle)
	}

	// ◈ Depth   ◀ ███░░░ 3 ▶ balanced
	screen.SetContent(x+2, y, '◈', nil, accentStyle)
	col := drawText(screen, x+4, y, s.label, labelStyle) + 3

	screen.SetContent(col, y, '◀', nil, arrowStyle)
	col += 2
	for v := s.min; v <= s.max; v++ {
		if v <= s.value {
			screen.SetContent(col, y, '█', nil, selectedStyle)
		} else {
			screen.SetContent(col, y, '░', nil, unselectedStyle)
		}
		col++
	}
	col = drawText(screen, col+1, y, strconv.Itoa(s.value), labelStyle)
	screen.SetContent(col+1, y, '▶', nil, arrowStyle)

	if caption := s.captions[s.value]; caption != "" && col+3 < x+width {
		drawText(screen, col+3, y, caption, hintStyle)
	}
	return 1
}

// Value returns the current slider value.
func (s *LevelSlider) Value() int {
	return s.value
}

// SetValue sets the slider value. Values outside the range are ignored.
func (s *LevelSlider) SetValue(v int) {
	if v < s.min || v > s.max || v == s.value {
		return
	}
	s.value = v
	if s.onChange != nil {
		s.onChange(s.value)
	}
}
