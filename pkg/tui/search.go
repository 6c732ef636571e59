package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/theme"
)

var preflightTabLabels = []string{"Deps", "Files", "Services", "Sandbox", "Summary"}

// RenderPreflightTabs renders the modal's tab strip, one bubblezone mark
// per tab so a mouse click can switch tabs directly.
func RenderPreflightTabs(mgr *zone.Manager, active int, width int, th theme.Theme) string {
	var parts []string
	for i, label := range preflightTabLabels {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Dim))
		if i == active {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent)).Bold(true)
		}
		rendered := style.Render(" " + label + " ")
		if mgr != nil {
			rendered = mgr.Mark(PreflightTabZone(i), rendered)
		}
		parts = append(parts, rendered)
	}
	return truncate(strings.Join(parts, "|"), width)
}

// RenderDependencyTab renders the dependencies tab body.
func RenderDependencyTab(deps []model.DependencyInfo, loaded bool, errMsg string, width int, th theme.Theme) string {
	if errMsg != "" {
		return errorLine(errMsg, th)
	}
	if !loaded {
		return "resolving…"
	}
	var b strings.Builder
	for _, d := range deps {
		flag := ""
		if d.IsCore {
			flag = " (core)"
		}
		b.WriteString(fmt.Sprintf("%s %s%s — %s\n", d.Name, d.Version, flag, dependencyStatusLabel(d.Status)))
	}
	return truncate(b.String(), width*40)
}

func dependencyStatusLabel(s model.DependencyStatus) string {
	switch s.Kind {
	case model.StatusInstalled:
		return "installed"
	case model.StatusToUpgrade:
		return fmt.Sprintf("upgrade %s -> %s", s.CurrentVersion, s.RequiredVersion)
	case model.StatusToInstall:
		return "to install"
	case model.StatusMissing:
		return "missing"
	case model.StatusConflict:
		return "conflict: " + s.ConflictReason
	default:
		return ""
	}
}

// RenderFilesTab renders the files tab body.
func RenderFilesTab(files []model.PackageFileInfo, loaded bool, errMsg string, width int, th theme.Theme) string {
	if errMsg != "" {
		return errorLine(errMsg, th)
	}
	if !loaded {
		return "resolving…"
	}
	var b strings.Builder
	for _, f := range files {
		b.WriteString(fmt.Sprintf("%s: +%d ~%d -%d cfg:%d\n", f.PackageName, f.NewCount, f.ChangedCount, f.RemovedCount, f.ConfigCount))
	}
	return truncate(b.String(), width*40)
}

// RenderServicesTab renders the services tab body. decisions overrides
// each unit's RestartDecision when present (the user toggled it); cursor
// marks the row ctrl+r would act on.
func RenderServicesTab(services []model.ServiceImpact, loaded bool, errMsg string, decisions map[string]model.ServiceDecision, cursor int, width int, th theme.Theme) string {
	if errMsg != "" {
		return errorLine(errMsg, th)
	}
	if !loaded {
		return "resolving…"
	}
	var b strings.Builder
	for i, s := range services {
		restartDecision := s.RestartDecision
		if d, ok := decisions[s.UnitName]; ok {
			restartDecision = d
		}
		decision := "restart"
		if restartDecision == model.DecisionDefer {
			decision = "defer"
		}
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s active=%v needs_restart=%v -> %s\n", marker, s.UnitName, s.IsActive, s.NeedsRestart, decision))
	}
	return truncate(b.String(), width*40)
}

// RenderSandboxTab renders the sandbox tab body.
func RenderSandboxTab(sandbox []model.SandboxInfo, loaded bool, errMsg string, width int, th theme.Theme) string {
	body := ""
	if loaded {
		var b strings.Builder
		for _, s := range sandbox {
			b.WriteString(fmt.Sprintf("%s: %d deps, %d make, %d check\n", s.PackageName, len(s.Depends), len(s.MakeDepends), len(s.CheckDepends)))
		}
		body = b.String()
	} else {
		body = "resolving…"
	}
	if errMsg != "" {
		body += "\n" + errorLine(errMsg, th)
	}
	return truncate(body, width*40)
}

// RenderSummaryTab renders the summary tab body: risk chips plus any
// reverse-dependency warnings for a Remove plan.
func RenderSummaryTab(outcome model.PreflightSummaryOutcome, loaded bool, errMsg string, width int, th theme.Theme) string {
	if errMsg != "" {
		return errorLine(errMsg, th)
	}
	if !loaded {
		return "resolving…"
	}
	s := outcome.Summary
	riskColor := th.RiskLow
	riskLabel := "low"
	switch s.RiskLevel {
	case model.RiskMedium:
		riskColor = th.RiskMedium
		riskLabel = "medium"
	case model.RiskHigh:
		riskColor = th.RiskHigh
		riskLabel = "high"
	}
	risk := lipgloss.NewStyle().Foreground(lipgloss.Color(riskColor)).Bold(true).Render("risk: " + riskLabel)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d package(s), %d AUR, %d bytes to download\n", s.PackageCount, s.AURCount, s.DownloadBytes))
	b.WriteString(risk + "\n")
	for _, reason := range s.RiskReasons {
		b.WriteString("- " + reason + "\n")
	}
	for _, warn := range s.SummaryWarnings {
		b.WriteString(errorLine(warn, th) + "\n")
	}
	if outcome.ReverseDepsReport != nil && outcome.ReverseDepsReport.Count() > 0 {
		b.WriteString(fmt.Sprintf("%d reverse dependent(s) would break\n", outcome.ReverseDepsReport.Count()))
	}
	return truncate(b.String(), width*40)
}

func errorLine(msg string, th theme.Theme) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(th.RiskHigh)).Render(msg)
}
