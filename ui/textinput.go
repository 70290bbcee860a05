package ui

import (
	"github.com/gdamore/tcell/v2"
)

// TextInput is a one-line text field that scrolls horizontally to keep the
// cursor visible. An empty field shows a placeholder.
type TextInput struct {
	label       string
	placeholder string
	text        []rune
	cursor      int
	fieldWidth  int
	focused     bool
	onChange    func(string)
}

// NewTextInput creates a new text field showing fieldWidth characters.
func NewTextInput(label, placeholder string, fieldWidth int, onChange func(string)) *TextInput {
	return &TextInput{
		label:       label,
		placeholder: placeholder,
		fieldWidth:  fieldWidth,
		onChange:    onChange,
	}
}

// SetFocused sets the focus state.
func (t *TextInput) SetFocused(focused bool) {
	t.focused = focused
}

// HandleKey processes keyboard input. Returns true if handled.
func (t *TextInput) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
		return true
	case tcell.KeyRight:
		if t.cursor < len(t.text) {
			t.cursor++
		}
		return true
	case tcell.KeyHome, tcell.KeyCtrlA:
		t.cursor = 0
		return true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		t.cursor = len(t.text)
		return true
	case tcell.KeyCtrlU:
		t.SetText("")
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if t.cursor > 0 {
			t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
			t.cursor--
			t.changed()
		}
		return true
	case tcell.KeyDelete:
		if t.cursor < len(t.text) {
			t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
			t.changed()
		}
		return true
	case tcell.KeyRune:
		ch := event.Rune()
		if ch < 32 || ch > 126 {
			return true
		}
		t.text = append(t.text[:t.cursor], append([]rune{ch}, t.text[t.cursor:]...)...)
		t.cursor++
		t.changed()
		return true
	}
	return false
}

func (t *TextInput) changed() {
	if t.onChange != nil {
		t.onChange(string(t.text))
	}
}

// Draw renders the label and the field on one row and returns the number of
// rows used.
func (t *TextInput) Draw(screen tcell.Screen, x, y, width int) int {
	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	selectedStyle := tcell.StyleDefault.Foreground(MenuColors.Selected).Background(MenuColors.CardBG)
	inputStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(tcell.PaletteColor(238))
	placeholderStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(tcell.PaletteColor(238))
	cursorStyle := tcell.StyleDefault.Foreground(MenuColors.CardBG).Background(MenuColors.Selected)

	if t.focused {
		screen.SetContent(x, y, '▸', nil, selectedStyle)
	}

	// ◈ Start FEN   [ rnbqkbnr/pppppppp/8/... ]
	screen.SetContent(x+2, y, '◈', nil, accentStyle)
	col := drawText(screen, x+4, y, t.label, labelStyle) + 3

	fieldWidth := t.fieldWidth
	if avail := x + width - col - 4; avail < fieldWidth {
		fieldWidth = avail
	}
	if fieldWidth < 1 {
		return 1
	}

	screen.SetContent(col, y, '[', nil, labelStyle)
	screen.SetContent(col+1, y, ' ', nil, inputStyle)
	start := col + 2

	// Scroll so the cursor stays inside the field.
	offset := 0
	if t.cursor >= fieldWidth {
		offset = t.cursor - fieldWidth + 1
	}
	for i := 0; i < fieldWidth; i++ {
		ch, style := ' ', inputStyle
		if len(t.text) == 0 && !t.focused {
			if i < len([]rune(t.placeholder)) {
				ch, style = []rune(t.placeholder)[i], placeholderStyle
			}
		} else if idx := offset + i; idx < len(t.text) {
			ch = t.text[idx]
		}
		if t.focused && offset+i == t.cursor {
			style = cursorStyle
		}
		screen.SetContent(start+i, y, ch, nil, style)
	}
	screen.SetContent(start+fieldWidth, y, ' ', nil, inputStyle)
	screen.SetContent(start+fieldWidth+1, y, ']', nil, labelStyle)
	return 1
}

// Text returns the current contents.
func (t *TextInput) Text() string {
	return string(t.text)
}

// SetText replaces the contents and moves the cursor to the end.
func (t *TextInput) SetText(s string) {
	t.text = []rune(s)
	t.cursor = len(t.text)
	t.changed()
}
