package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pacsea/pacsea/pkg/tui"
)

// handleMouse maps a click against the bubblezone marks render() laid
// down on the previous frame: a click on a result row selects it, a
// click on a preflight tab header switches to it.
func (m *AppModel) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	if m.state.Modal != nil {
		for i := range preflightTabCount {
			if z := m.zones.Get(tui.PreflightTabZone(i)); z != nil && z.InBounds(msg) {
				m.state.Modal.ActiveTab = PreflightTab(i)
				return
			}
		}
		return
	}

	for i := range m.state.Results {
		z := m.zones.Get(tui.ResultRowZone(i))
		if z != nil && z.InBounds(msg) {
			m.state.SelectedIndex = i
			m.enqueueRingPrefetch(i)
			return
		}
	}
}

const preflightTabCount = int(TabSummary) + 1

// render assembles the full frame: search bar or status bar on top
// depending on focus, the three-pane body, and the footer. When the
// preflight modal is open it is overlaid in place of the body.
func (m *AppModel) render() string {
	width, height := m.state.Width, m.state.Height
	if width <= 0 || height <= 0 {
		return ""
	}

	footerHeight := 1
	bodyHeight := height - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.state.Modal != nil {
		body = m.renderPreflightModal(width, bodyHeight)
	} else if m.state.Expanded {
		body = m.renderExpandedPane(width, bodyHeight)
	} else {
		body = m.renderGrid(width, bodyHeight)
	}

	footer := tui.RenderStatusBar(m.footerMessage(), width, m.theme)

	out := body + "\n" + footer
	return m.zones.Scan(out)
}

func (m *AppModel) footerMessage() string {
	if m.state.Toast.Active {
		return m.state.Toast.Message
	}
	if m.state.AlertMessage != "" {
		return m.state.AlertMessage
	}
	return ""
}

func (m *AppModel) renderGrid(width, height int) string {
	resultsW := width / 2
	rightW := width - resultsW

	results := tui.RenderResultsList(m.zones, m.state.Results, m.state.SelectedIndex, m.installed, resultsW, height*2/3, m.state.Focus == FocusResults, m.theme)
	install := tui.RenderInstallPane(m.state.InstallList, resultsW, height-height*2/3, m.state.Focus == FocusInstall, m.theme)

	m.syncDetailsViewportContent()
	details := tui.RenderDetailsPaneViewport(m.state.Details, m.detailsVP.View(), rightW, height, m.state.Focus == FocusDetails, m.theme)

	left := results + "\n" + install
	return joinHorizontal(left, details, resultsW)
}

func (m *AppModel) renderExpandedPane(width, height int) string {
	switch m.state.Focus {
	case FocusDetails:
		m.syncDetailsViewportContent()
		return tui.RenderDetailsPaneViewport(m.state.Details, m.detailsVP.View(), width, height, true, m.theme)
	case FocusInstall:
		return tui.RenderInstallPane(m.state.InstallList, width, height, true, m.theme)
	default:
		return tui.RenderResultsList(m.zones, m.state.Results, m.state.SelectedIndex, m.installed, width, height, true, m.theme)
	}
}

func (m *AppModel) renderPreflightModal(width, height int) string {
	modal := m.state.Modal
	tabs := tui.RenderPreflightTabs(m.zones, int(modal.ActiveTab), width, m.theme)

	var body string
	switch modal.ActiveTab {
	case TabDeps:
		body = tui.RenderDependencyTab(modal.Deps.Items, modal.Deps.Loaded, modal.Deps.Error, width, m.theme)
	case TabFiles:
		body = tui.RenderFilesTab(modal.Files.Items, modal.Files.Loaded, modal.Files.Error, width, m.theme)
	case TabServices:
		body = tui.RenderServicesTab(modal.Services.Items, modal.Services.Loaded, modal.Services.Error, modal.RestartDecisions, modal.ServicesCursor, width, m.theme)
	case TabSandbox:
		body = tui.RenderSandboxTab(modal.Sandbox.Items, modal.Sandbox.Loaded, modal.Sandbox.Error, width, m.theme)
	case TabSummary:
		body = tui.RenderSummaryTab(modal.Summary, modal.SummaryLoaded, modal.SummaryError, width, m.theme)
	}
	return tabs + "\n" + body
}

// joinHorizontal places left (fixed width leftW) beside right, line by
// line, padding the shorter side with blank lines.
func joinHorizontal(left, right string, leftW int) string {
	lLines := strings.Split(left, "\n")
	rLines := strings.Split(right, "\n")
	n := len(lLines)
	if len(rLines) > n {
		n = len(rLines)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		l := ""
		if i < len(lLines) {
			l = lLines[i]
		}
		r := ""
		if i < len(rLines) {
			r = rLines[i]
		}
		b.WriteString(padRight(l, leftW))
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
