package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
)

// focusOrder is the fixed cycle order for Tab/Shift+Tab, adapted from the
// original dashboard's widgetOrder/CycleFocusForward pair to Pacsea's
// four fixed panes instead of a generic widget registry.
var focusOrder = []Focus{FocusSearch, FocusResults, FocusDetails, FocusInstall}

func focusIndex(f Focus) int {
	for i, v := range focusOrder {
		if v == f {
			return i
		}
	}
	return 0
}

// CycleFocusForward moves focus to the next pane, wrapping around.
func (m *AppModel) CycleFocusForward() {
	idx := (focusIndex(m.state.Focus) + 1) % len(focusOrder)
	m.state.Focus = focusOrder[idx]
}

// CycleFocusBackward moves focus to the previous pane, wrapping around.
func (m *AppModel) CycleFocusBackward() {
	idx := (focusIndex(m.state.Focus) - 1 + len(focusOrder)) % len(focusOrder)
	m.state.Focus = focusOrder[idx]
}

// FocusPane directly sets the focused pane.
func (m *AppModel) FocusPane(f Focus) {
	m.state.Focus = f
}

// ToggleExpand toggles the focused pane between normal and fullscreen,
// matching the original dashboard's ToggleExpand semantics one-for-one.
func (m *AppModel) ToggleExpand() {
	m.state.Expanded = !m.state.Expanded
}

// openPreflight opens the modal for a freshly-reviewed plan and fires the
// four plan-scoped resolver requests plus the summary request, scoped
// to the modal rather than the install list (so an in-flight install-list
// resolve is left untouched).
func (m *AppModel) openPreflight(plan model.Plan) {
	m.state.Modal = &PreflightModal{
		Plan:             plan,
		RestartDecisions: make(map[string]model.ServiceDecision),
		ExtraOptDepends:  make(map[string]bool),
	}
	m.state.PreflightCancelled = false

	req := channels.PlanRequest{Items: plan.Items, Action: plan.Action}
	m.fireOrQueueDeps(req)
	m.fireOrQueueFiles(req)
	m.fireOrQueueServices(req)
	m.fireOrQueueSandbox(plan.Items)
	m.fireOrQueueSummary(req)
}

func (m *AppModel) fireOrQueueDeps(req channels.PlanRequest) {
	if m.state.DepsResolving || m.state.PreflightDepsResolving {
		m.state.PendingDeps = &req
		return
	}
	m.state.PreflightDepsResolving = true
	m.fab.DepsRequests <- req
}

func (m *AppModel) fireOrQueueFiles(req channels.PlanRequest) {
	if m.state.FilesResolving || m.state.PreflightFilesResolving {
		m.state.PendingFiles = &req
		return
	}
	m.state.PreflightFilesResolving = true
	m.fab.FilesRequests <- req
}

func (m *AppModel) fireOrQueueServices(req channels.PlanRequest) {
	if m.state.ServicesResolving || m.state.PreflightServicesResolving {
		m.state.PendingServices = &req
		return
	}
	m.state.PreflightServicesResolving = true
	m.fab.ServicesRequests <- req
}

func (m *AppModel) fireOrQueueSandbox(items []model.PackageItem) {
	if m.state.SandboxResolving || m.state.PreflightSandboxResolving {
		m.state.PendingSandbox = items
		return
	}
	m.state.PreflightSandboxResolving = true
	m.fab.SandboxRequests <- items
}

func (m *AppModel) fireOrQueueSummary(req channels.PlanRequest) {
	if m.state.PreflightSummaryResolving {
		m.state.PendingSummary = &req
		return
	}
	m.state.PreflightSummaryResolving = true
	m.fab.SummaryRequests <- req
}

// cancelPreflight implements §5's 4-step cancellation protocol: set the
// cancelled flag so in-flight responses scoped to the modal are dropped
// on arrival, drop any not-yet-sent pending markers, close the modal, and
// return focus to the install pane.
func (m *AppModel) cancelPreflight() {
	m.state.PreflightCancelled = true
	m.state.PendingDeps = nil
	m.state.PendingFiles = nil
	m.state.PendingServices = nil
	m.state.PendingSandbox = nil
	m.state.PendingSummary = nil
	m.state.Modal = nil
	m.state.Focus = FocusInstall
}

// handleKey dispatches a key event to global navigation first, then to
// the focused pane's own handling.
func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.state.Modal == nil {
			m.state.Quitting = true
			return tea.Quit
		}
	case "esc":
		switch {
		case m.state.Modal != nil:
			m.cancelPreflight()
			return nil
		case m.state.Expanded:
			m.state.Expanded = false
			return nil
		}
	case "tab":
		m.CycleFocusForward()
		return nil
	case "shift+tab":
		m.CycleFocusBackward()
		return nil
	case "enter":
		if m.state.Modal == nil {
			m.ToggleExpand()
			return nil
		}
	case "?":
		m.state.HelpOpen = !m.state.HelpOpen
		return nil
	}

	return m.handlePaneKey(msg)
}

// handlePaneKey dispatches keys the focused pane owns: search text entry,
// result-list navigation and add-to-install, and preflight tab cycling
// when the modal is open.
func (m *AppModel) handlePaneKey(msg tea.KeyMsg) tea.Cmd {
	if m.state.Modal != nil {
		return m.handlePreflightKey(msg)
	}

	switch m.state.Focus {
	case FocusResults:
		return m.handleResultsKey(msg)
	case FocusSearch:
		return m.handleSearchKey(msg)
	}
	return nil
}

func (m *AppModel) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.state.SelectedIndex > 0 {
			m.state.SelectedIndex--
			m.enqueueRingPrefetch(m.state.SelectedIndex)
		}
	case "down", "j":
		if m.state.SelectedIndex < len(m.state.Results)-1 {
			m.state.SelectedIndex++
			m.enqueueRingPrefetch(m.state.SelectedIndex)
		}
	case "a":
		if m.state.SelectedIndex >= 0 && m.state.SelectedIndex < len(m.state.Results) {
			m.handleAddToInstall(m.state.Results[m.state.SelectedIndex])
		}
	case "p":
		if len(m.state.InstallList) > 0 {
			m.openPreflight(model.Plan{Items: m.state.InstallList, Action: m.state.Action})
		}
	}
	return nil
}

func (m *AppModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyRunes:
		m.state.QueryText += string(msg.Runes)
	case tea.KeyBackspace:
		if len(m.state.QueryText) > 0 {
			m.state.QueryText = m.state.QueryText[:len(m.state.QueryText)-1]
		}
	default:
		return nil
	}

	id := m.state.nextID()
	select {
	case m.fab.SearchRequests <- model.QueryInput{ID: id, Text: m.state.QueryText}:
	default:
	}
	return nil
}

func (m *AppModel) handlePreflightKey(msg tea.KeyMsg) tea.Cmd {
	modal := m.state.Modal
	switch msg.String() {
	case "tab":
		modal.ActiveTab = (modal.ActiveTab + 1) % (TabSummary + 1)
	case "shift+tab":
		modal.ActiveTab = (modal.ActiveTab - 1 + TabSummary + 1) % (TabSummary + 1)
	case "c":
		m.cancelPreflight()
	case "up", "k":
		if modal.ActiveTab == TabServices && modal.ServicesCursor > 0 {
			modal.ServicesCursor--
		}
	case "down", "j":
		if modal.ActiveTab == TabServices && modal.ServicesCursor < len(modal.Services.Items)-1 {
			modal.ServicesCursor++
		}
	case "ctrl+r":
		if modal.ActiveTab == TabServices {
			m.toggleServiceDecision()
		}
	case "enter":
		m.confirmPreflight()
	}
	return nil
}

// toggleServiceDecision flips the restart/defer decision for the systemd
// unit under ServicesCursor, overriding the resolver's RecommendedDecision
// without requiring it to re-run.
func (m *AppModel) toggleServiceDecision() {
	modal := m.state.Modal
	items := modal.Services.Items
	if modal.ServicesCursor < 0 || modal.ServicesCursor >= len(items) {
		return
	}
	unit := items[modal.ServicesCursor].UnitName
	if modal.RestartDecisions[unit] == model.DecisionRestart {
		modal.RestartDecisions[unit] = model.DecisionDefer
	} else {
		modal.RestartDecisions[unit] = model.DecisionRestart
	}
}

// confirmPreflight hands the reviewed plan to the executor worker and
// closes the modal. The executor's own response (success/failure) is
// applied by handleExecutorResult once it arrives.
func (m *AppModel) confirmPreflight() {
	modal := m.state.Modal
	if modal == nil {
		return
	}

	var restartUnits []string
	for unit, decision := range modal.RestartDecisions {
		if decision == model.DecisionRestart {
			restartUnits = append(restartUnits, unit)
		}
	}
	var extraOptDepends []string
	for name, on := range modal.ExtraOptDepends {
		if on {
			extraOptDepends = append(extraOptDepends, name)
		}
	}

	m.fab.ExecutorRequests <- channels.ExecutorAction{
		Plan:            modal.Plan,
		RestartUnits:    restartUnits,
		ExtraOptDepends: extraOptDepends,
		Cascade:         modal.Cascade,
	}
	m.state.Modal = nil
}
