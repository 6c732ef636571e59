package theme

import (
	"fmt"

	"github.com/muesli/termenv"
)

// Adapt converts every hex color in a theme to whatever the given color
// profile actually supports, so a TrueColor theme.conf still renders
// sensibly over a 256-color or basic-ANSI terminal (or no color at all).
func Adapt(t Theme, profile termenv.Profile) Theme {
	if profile == termenv.TrueColor {
		return t
	}

	t.Background = thAdaptColor(t.Background, profile)
	t.Foreground = thAdaptColor(t.Foreground, profile)
	t.Dim = thAdaptColor(t.Dim, profile)
	t.Accent = thAdaptColor(t.Accent, profile)

	t.Border = thAdaptColor(t.Border, profile)
	t.BorderFocus = thAdaptColor(t.BorderFocus, profile)
	t.Title = thAdaptColor(t.Title, profile)

	t.RiskLow = thAdaptColor(t.RiskLow, profile)
	t.RiskMedium = thAdaptColor(t.RiskMedium, profile)
	t.RiskHigh = thAdaptColor(t.RiskHigh, profile)

	t.SourceOfficial = thAdaptColor(t.SourceOfficial, profile)
	t.SourceAUR = thAdaptColor(t.SourceAUR, profile)
	t.SourceOutOfDate = thAdaptColor(t.SourceOutOfDate, profile)

	t.DiffNew = thAdaptColor(t.DiffNew, profile)
	t.DiffChanged = thAdaptColor(t.DiffChanged, profile)
	t.DiffRemoved = thAdaptColor(t.DiffRemoved, profile)
	t.DiffConfig = thAdaptColor(t.DiffConfig, profile)

	t.SearchHighlight = thAdaptColor(t.SearchHighlight, profile)
	t.HelpKey = thAdaptColor(t.HelpKey, profile)
	t.HelpDesc = thAdaptColor(t.HelpDesc, profile)

	return t
}

// thAdaptColor converts a single hex color to the nearest representable
// color in profile, returning a string lipgloss.Color accepts directly:
// a decimal ANSI/ANSI256 index, the original hex under TrueColor, or ""
// (no color) under Ascii.
func thAdaptColor(hex string, profile termenv.Profile) string {
	if hex == "" {
		return hex
	}
	converted := profile.Convert(termenv.RGBColor(hex))
	switch c := converted.(type) {
	case termenv.RGBColor:
		return string(c)
	case termenv.ANSI256Color:
		return fmt.Sprintf("%d", uint8(c))
	case termenv.ANSIColor:
		return fmt.Sprintf("%d", uint8(c))
	case termenv.NoColor:
		return ""
	default:
		return hex
	}
}

// DetectProfile reports the color profile of the current terminal, honoring
// NO_COLOR (https://no-color.org/) by downgrading to Ascii.
func DetectProfile() termenv.Profile {
	return termenv.EnvColorProfile()
}
