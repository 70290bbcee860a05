package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termchess/board"
	"termchess/config"
	"termchess/engine"
)

// menuItem is a control stacked on the setup card.
type menuItem interface {
	SetFocused(bool)
	HandleKey(*tcell.EventKey) bool
	Draw(screen tcell.Screen, x, y, width int) int
}

var depthCaptions = map[int]string{
	1: "instant",
	2: "casual",
	3: "club",
	4: "strong",
	5: "slow",
	6: "very slow",
}

// GameSetupUI is the start screen: pick a side, a search depth and an
// optional start position.
type GameSetupUI struct {
	*MenuCard
	items   []menuItem
	buttons []*MenuButton
	focus   int // index into items, then buttons
	fen     *TextInput
	errText string

	playerColor board.Color
	depth       int
	workers     int
	onStart     func(engine.GameConfig)
}

// NewGameSetup creates the setup card with defaults taken from cfg.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig), onHistory func(), onColors func(), onQuit func()) *GameSetupUI {
	setup := &GameSetupUI{
		MenuCard:    NewMenuCard("T E R M C H E S S"),
		playerColor: cfg.Engine.PlayerColor(),
		depth:       cfg.Engine.DefaultDepth,
		workers:     cfg.Engine.Workers,
		onStart:     onStart,
	}
	setup.SetFooter(" tab next · enter start · q quit ")

	colorIndex := 0
	if setup.playerColor == board.Black {
		colorIndex = 1
	}
	colors := NewRadioSelect("Play as", []RadioOption{
		{Label: "White", Description: "moves first"},
		{Label: "Black", Description: "engine opens"},
	}, colorIndex, func(i int) {
		setup.playerColor = board.White
		if i == 1 {
			setup.playerColor = board.Black
		}
	})
	depth := NewLevelSlider("Depth", 1, engine.MaxDepth, setup.depth, func(v int) {
		setup.depth = v
	}).SetCaptions(depthCaptions)
	setup.fen = NewTextInput("Start FEN", "standard position", 30, func(string) {
		setup.errText = ""
	})
	setup.items = []menuItem{colors, depth, setup.fen}

	setup.buttons = []*MenuButton{
		NewMenuButton("Start Game", 's', true, setup.start),
		NewMenuButton("History", 'h', false, onHistory),
		NewMenuButton("Colors", 'c', false, onColors),
		NewMenuButton("Quit", 'q', false, onQuit),
	}
	setup.setFocus(0)
	return setup
}

// Form returns the primitive to place on the page, centered on screen.
func (s *GameSetupUI) Form() tview.Primitive {
	column := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(s, 19, 0, true).
		AddItem(nil, 0, 1, false)
	return CreateCenteredForm(column, 64)
}

// SetStartFEN prefills the start position field.
func (s *GameSetupUI) SetStartFEN(fen string) {
	s.fen.SetText(fen)
}

func (s *GameSetupUI) start() {
	fen := strings.TrimSpace(s.fen.Text())
	if fen != "" {
		if _, err := board.FromFEN(fen); err != nil {
			s.errText = "Invalid FEN: " + err.Error()
			return
		}
	}
	s.errText = ""
	if s.onStart != nil {
		s.onStart(engine.GameConfig{
			PlayerColor: s.playerColor,
			Depth:       s.depth,
			Workers:     s.workers,
			StartFEN:    fen,
		})
	}
}

func (s *GameSetupUI) controls() int {
	return len(s.items) + len(s.buttons)
}

func (s *GameSetupUI) setFocus(i int) {
	n := s.controls()
	s.focus = (i%n + n) % n
	for j, item := range s.items {
		item.SetFocused(j == s.focus)
	}
	for j, b := range s.buttons {
		b.SetFocused(len(s.items)+j == s.focus)
	}
}

func (s *GameSetupUI) onButtons() bool {
	return s.focus >= len(s.items)
}

// Draw renders the card and its controls.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	s.MenuCard.SetFocused(s.HasFocus())
	row := s.DrawCard(screen)
	x, _, width, _ := s.GetInnerRect()
	left, inner := x+3, width-6

	for _, item := range s.items {
		row += item.Draw(screen, left, row, inner) + 1
	}

	if s.errText != "" {
		errStyle := tcell.StyleDefault.Foreground(MenuColors.Error).Background(MenuColors.CardBG)
		msg := []rune(s.errText)
		if len(msg) > inner {
			msg = append(msg[:inner-1], '…')
		}
		drawText(screen, left, row, string(msg), errStyle)
	}
	row += 2

	col := left + 2
	for _, b := range s.buttons {
		col += b.Draw(screen, col, row) + 2
	}
}

// InputHandler moves focus with Tab and hands other keys to the focused control.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyTab:
			s.setFocus(s.focus + 1)
			return
		case tcell.KeyBacktab:
			s.setFocus(s.focus - 1)
			return
		}

		if s.onButtons() {
			b := s.buttons[s.focus-len(s.items)]
			switch event.Key() {
			case tcell.KeyLeft:
				s.setFocus(s.focus - 1)
				return
			case tcell.KeyRight:
				if s.focus < s.controls()-1 {
					s.setFocus(s.focus + 1)
				}
				return
			case tcell.KeyUp:
				s.setFocus(len(s.items) - 1)
				return
			case tcell.KeyRune:
				s.pressHotkey(event.Rune())
				return
			}
			b.HandleKey(event)
			return
		}

		item := s.items[s.focus]
		if event.Key() == tcell.KeyEnter {
			s.start()
			return
		}
		if item.HandleKey(event) {
			return
		}
		switch event.Key() {
		case tcell.KeyDown:
			s.setFocus(s.focus + 1)
		case tcell.KeyUp:
			s.setFocus(s.focus - 1)
		case tcell.KeyRune:
			s.pressHotkey(event.Rune())
		}
	})
}

func (s *GameSetupUI) pressHotkey(r rune) {
	for _, b := range s.buttons {
		if b.Hotkey() == r {
			b.Press()
			return
		}
	}
}
