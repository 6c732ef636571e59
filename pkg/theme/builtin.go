package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thGruvboxTheme(),
		thNordTheme(),
		thCatppuccinTheme(),
		thDraculaTheme(),
		thTokyoNightTheme(),
	} {
		thRegister(t)
	}
}

// thDefaultTheme returns the dark neutral theme with purple accent.
func thDefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#7C3AED",

		Border:      "#3e3e3e",
		BorderFocus: "#7C3AED",
		Title:       "#d4d4d4",

		RiskLow:    "#4ec970",
		RiskMedium: "#e5c07b",
		RiskHigh:   "#e06c75",

		SourceOfficial:  "#7C3AED",
		SourceAUR:       "#5b21b6",
		SourceOutOfDate: "#e5c07b",

		DiffNew:     "#4ec970",
		DiffChanged: "#e5c07b",
		DiffRemoved: "#e06c75",
		DiffConfig:  "#3e3e3e",

		SearchHighlight: "#f9e2af",
		HelpKey:         "#7C3AED",
		HelpDesc:        "#6b6b6b",
	}
}

// thGruvboxTheme returns the warm retro Gruvbox theme.
func thGruvboxTheme() Theme {
	return Theme{
		Name:       "gruvbox",
		Background: "#282828",
		Foreground: "#ebdbb2",
		Dim:        "#928374",
		Accent:     "#fe8019",

		Border:      "#504945",
		BorderFocus: "#fe8019",
		Title:       "#ebdbb2",

		RiskLow:    "#b8bb26",
		RiskMedium: "#fabd2f",
		RiskHigh:   "#fb4934",

		SourceOfficial:  "#fe8019",
		SourceAUR:       "#d65d0e",
		SourceOutOfDate: "#fabd2f",

		DiffNew:     "#b8bb26",
		DiffChanged: "#fabd2f",
		DiffRemoved: "#fb4934",
		DiffConfig:  "#504945",

		SearchHighlight: "#fabd2f",
		HelpKey:         "#fe8019",
		HelpDesc:        "#928374",
	}
}

// thNordTheme returns the arctic blue Nord theme.
func thNordTheme() Theme {
	return Theme{
		Name:       "nord",
		Background: "#2e3440",
		Foreground: "#eceff4",
		Dim:        "#4c566a",
		Accent:     "#88c0d0",

		Border:      "#3b4252",
		BorderFocus: "#88c0d0",
		Title:       "#eceff4",

		RiskLow:    "#a3be8c",
		RiskMedium: "#ebcb8b",
		RiskHigh:   "#bf616a",

		SourceOfficial:  "#88c0d0",
		SourceAUR:       "#5e81ac",
		SourceOutOfDate: "#ebcb8b",

		DiffNew:     "#a3be8c",
		DiffChanged: "#ebcb8b",
		DiffRemoved: "#bf616a",
		DiffConfig:  "#3b4252",

		SearchHighlight: "#ebcb8b",
		HelpKey:         "#88c0d0",
		HelpDesc:        "#4c566a",
	}
}

// thCatppuccinTheme returns the pastel Catppuccin Mocha theme.
func thCatppuccinTheme() Theme {
	return Theme{
		Name:       "catppuccin",
		Background: "#1e1e2e",
		Foreground: "#cdd6f4",
		Dim:        "#6c7086",
		Accent:     "#cba6f7",

		Border:      "#313244",
		BorderFocus: "#cba6f7",
		Title:       "#cdd6f4",

		RiskLow:    "#a6e3a1",
		RiskMedium: "#f9e2af",
		RiskHigh:   "#f38ba8",

		SourceOfficial:  "#cba6f7",
		SourceAUR:       "#9399b2",
		SourceOutOfDate: "#f9e2af",

		DiffNew:     "#a6e3a1",
		DiffChanged: "#f9e2af",
		DiffRemoved: "#f38ba8",
		DiffConfig:  "#313244",

		SearchHighlight: "#f9e2af",
		HelpKey:         "#cba6f7",
		HelpDesc:        "#6c7086",
	}
}

// thDraculaTheme returns the Dracula theme.
func thDraculaTheme() Theme {
	return Theme{
		Name:       "dracula",
		Background: "#282a36",
		Foreground: "#f8f8f2",
		Dim:        "#6272a4",
		Accent:     "#bd93f9",

		Border:      "#44475a",
		BorderFocus: "#bd93f9",
		Title:       "#f8f8f2",

		RiskLow:    "#50fa7b",
		RiskMedium: "#f1fa8c",
		RiskHigh:   "#ff5555",

		SourceOfficial:  "#bd93f9",
		SourceAUR:       "#8be9fd",
		SourceOutOfDate: "#f1fa8c",

		DiffNew:     "#50fa7b",
		DiffChanged: "#f1fa8c",
		DiffRemoved: "#ff5555",
		DiffConfig:  "#44475a",

		SearchHighlight: "#f1fa8c",
		HelpKey:         "#bd93f9",
		HelpDesc:        "#6272a4",
	}
}

// thTokyoNightTheme returns the Tokyo Night theme.
func thTokyoNightTheme() Theme {
	return Theme{
		Name:       "tokyo-night",
		Background: "#1a1b26",
		Foreground: "#c0caf5",
		Dim:        "#565f89",
		Accent:     "#7aa2f7",

		Border:      "#292e42",
		BorderFocus: "#7aa2f7",
		Title:       "#c0caf5",

		RiskLow:    "#9ece6a",
		RiskMedium: "#e0af68",
		RiskHigh:   "#f7768e",

		SourceOfficial:  "#7aa2f7",
		SourceAUR:       "#7dcfff",
		SourceOutOfDate: "#e0af68",

		DiffNew:     "#9ece6a",
		DiffChanged: "#e0af68",
		DiffRemoved: "#f7768e",
		DiffConfig:  "#292e42",

		SearchHighlight: "#e0af68",
		HelpKey:         "#7aa2f7",
		HelpDesc:        "#565f89",
	}
}
