package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pacsea/pacsea/pkg/model"
)

// thColorize renders text in the given hex foreground color via lipgloss.
// Returns text unchanged if hexColor is empty.
func thColorize(text, hexColor string) string {
	if hexColor == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(text)
}

// thApplyBorder colors border text based on whether the widget is focused.
func thApplyBorder(text string, t Theme, focused bool) string {
	color := t.Border
	if focused {
		color = t.BorderFocus
	}
	return thColorize(text, color)
}

// thApplyRisk colors text by model.RiskLevel bucket.
func thApplyRisk(text string, level model.RiskLevel, t Theme) string {
	var color string
	switch level {
	case model.RiskLow:
		color = t.RiskLow
	case model.RiskMedium:
		color = t.RiskMedium
	case model.RiskHigh:
		color = t.RiskHigh
	}
	return thColorize(text, color)
}

// thApplySource colors a package name or badge by its origin.
func thApplySource(text string, aur, outOfDate bool, t Theme) string {
	color := t.SourceOfficial
	switch {
	case outOfDate:
		color = t.SourceOutOfDate
	case aur:
		color = t.SourceAUR
	}
	return thColorize(text, color)
}

// thApplyDiff colors a file-list row by model.FileClass.
func thApplyDiff(text string, class model.FileClass, t Theme) string {
	var color string
	switch class {
	case model.FileNew:
		color = t.DiffNew
	case model.FileChanged:
		color = t.DiffChanged
	case model.FileRemoved:
		color = t.DiffRemoved
	case model.FileConfig:
		color = t.DiffConfig
	}
	return thColorize(text, color)
}
