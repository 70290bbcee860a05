package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		UseSymbols:       true,
		DrawCoordinates:  true,
		DrawTargets:      true,
		DrawLastPlayedBG: true,
		Colors: ConfigColors{
			LightSquare:  180,
			DarkSquare:   137,
			WhitePiece:   231,
			BlackPiece:   232,
			Coordinates:  244,
			CursorBG:     4,
			SelectedBG:   28,
			TargetColor:  22,
			LastPlayedBG: 143,
			CheckBG:      160,
		},
		Symbols: ConfigSymbols{
			King:   '♚',
			Queen:  '♛',
			Rook:   '♜',
			Bishop: '♝',
			Knight: '♞',
			Pawn:   '♟',
			Target: '•',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Engine: EngineConfig{
			DefaultDepth: 3,
			DefaultColor: "white",
			Workers:      1,
		},
	}
}
