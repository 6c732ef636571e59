// Package tui renders Pacsea's panes into plain strings. Every function
// here is pure with respect to layout: it takes already-decided data and
// dimensions and returns a string, leaving all state ownership in
// pkg/app. Mouse hit-testing is layered on top via bubblezone marks,
// scanned once by the caller after the full frame is assembled.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/theme"
)

// ResultRowZone builds the bubblezone id for the i-th result row, shared
// between the renderer (which marks it) and the mediator (which scans
// mouse clicks against it).
func ResultRowZone(i int) string { return fmt.Sprintf("result-row-%d", i) }

// PreflightTabZone builds the bubblezone id for a preflight tab header.
func PreflightTabZone(tab int) string { return fmt.Sprintf("preflight-tab-%d", tab) }

func paneBox(title, body string, width, height int, borderColor, titleColor string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(width - 2).
		Height(height - 2).
		Padding(0, 1)

	heading := lipgloss.NewStyle().Foreground(lipgloss.Color(titleColor)).Bold(true).Render(title)
	return style.Render(heading + "\n" + body)
}

// RenderSearchBar renders the query input, replacing the status bar's
// space when the search pane is focused.
func RenderSearchBar(query string, focused bool, width int, th theme.Theme) string {
	if width <= 0 {
		return ""
	}
	prefix := "/"
	cursor := ""
	if focused {
		cursor = "_"
	}
	line := prefix + query + cursor
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.Foreground)).
		Width(width).
		Render(truncate(line, width))
}

// RenderResultsList renders the search-results pane. Each row is wrapped
// in a bubblezone mark so a mouse click can be mapped back to an index.
func RenderResultsList(mgr *zone.Manager, items []model.PackageItem, selected int, installed map[string]bool, width, height int, focused bool, th theme.Theme) string {
	var b strings.Builder
	rows := height - 2
	if rows < 1 {
		rows = 1
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	for i := start; i < len(items) && i < start+rows; i++ {
		it := items[i]
		marker := "  "
		if i == selected {
			marker = "> "
		}
		badge := sourceBadge(it, th)
		installedMark := ""
		if installed[it.Key()] {
			installedMark = " [installed]"
		}
		line := fmt.Sprintf("%s%s %s%s", marker, badge, it.Name, installedMark)
		line = truncate(line, width-2)
		if i == selected {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent)).Bold(true).Render(line)
		}
		if mgr != nil {
			line = mgr.Mark(ResultRowZone(i), line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	borderColor := th.Border
	if focused {
		borderColor = th.BorderFocus
	}
	return paneBox("Results", b.String(), width, height, borderColor, th.Title)
}

func sourceBadge(it model.PackageItem, th theme.Theme) string {
	color := th.SourceOfficial
	label := "repo"
	switch {
	case it.OutOfDate != nil && *it.OutOfDate:
		color = th.SourceOutOfDate
		label = "aur!"
	case it.Source.IsAUR():
		color = th.SourceAUR
		label = "aur"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("[" + label + "]")
}

// RenderDetailsPane renders the package-details pane: description,
// version, and a PKGBUILD preview when present. This variant truncates
// the PKGBUILD text itself; RenderDetailsPaneViewport is preferred for
// the live mediator, which owns a scrollable bubbles/viewport instead.
func RenderDetailsPane(d model.PackageDetails, pkgbuildText string, width, height int, focused bool, th theme.Theme) string {
	var b strings.Builder
	if d.Name != "" {
		b.WriteString(d.Name + " " + d.Version + "\n")
		b.WriteString(d.Description + "\n")
	}
	if pkgbuildText != "" {
		b.WriteString("\n")
		lines := strings.Split(pkgbuildText, "\n")
		max := height - 4
		if max < 0 {
			max = 0
		}
		if len(lines) > max {
			lines = lines[:max]
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
	borderColor := th.Border
	if focused {
		borderColor = th.BorderFocus
	}
	return paneBox("Details", b.String(), width, height, borderColor, th.Title)
}

// RenderDetailsPaneViewport renders the header (name/version/description)
// plus an already-scrolled bubbles/viewport body for the PKGBUILD
// preview, so the caller retains scroll position across frames instead
// of this package re-truncating from the top every render.
func RenderDetailsPaneViewport(d model.PackageDetails, viewportView string, width, height int, focused bool, th theme.Theme) string {
	var b strings.Builder
	if d.Name != "" {
		b.WriteString(d.Name + " " + d.Version + "\n")
		b.WriteString(d.Description + "\n")
	}
	if viewportView != "" {
		b.WriteString("\n")
		b.WriteString(viewportView)
	}
	borderColor := th.Border
	if focused {
		borderColor = th.BorderFocus
	}
	return paneBox("Details", b.String(), width, height, borderColor, th.Title)
}

// RenderInstallPane renders the pending install/remove list.
func RenderInstallPane(items []model.PackageItem, width, height int, focused bool, th theme.Theme) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- " + it.Name + "\n")
	}
	borderColor := th.Border
	if focused {
		borderColor = th.BorderFocus
	}
	return paneBox(fmt.Sprintf("Install (%d)", len(items)), b.String(), width, height, borderColor, th.Title)
}

// RenderStatusBar renders the one-line footer with key hints, with a
// toast message shown before the hints when one is active.
func RenderStatusBar(msg string, width int, th theme.Theme) string {
	hints := "Tab:focus  Enter:expand  a:add  p:preflight  ?:help  q:quit"
	if msg != "" {
		hints = msg + "  |  " + hints
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(th.HelpDesc)).Width(width).Render(truncate(hints, width))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
