package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/config"
	"github.com/pacsea/pacsea/pkg/index"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/persist"
	"github.com/pacsea/pacsea/pkg/terminal"
	"github.com/pacsea/pacsea/pkg/theme"
)

// AppModel is the event-loop mediator (C11): the single bubbletea Model
// that owns AppState and a reference to the worker fabric, selects among
// every response channel via the wait-Cmds in cmds.go, and dispatches
// each message to the handler in handlers.go or navigation.go that owns
// it. Workers never read or write AppState directly.
type AppModel struct {
	state *AppState
	fab   *channels.Fabric
	idx   *index.Index
	zones *zone.Manager

	// detailsVP scrolls the PKGBUILD preview independently of the
	// mediator's own render pass, so a long recipe can be paged through
	// without losing position every time Details/PKGBUILDText updates.
	detailsVP viewport.Model

	layout persist.Layout
	theme  theme.Theme

	// installed is a case-insensitive snapshot of explicitly-installed
	// package names, taken once at startup via SetInstalled. It is read by the
	// installed-only filter and the post-install/remove tracker.
	installed map[string]bool

	pkgbuildDebounce   time.Duration
	addBatchDebounce   time.Duration
	statusPollInterval time.Duration
	cacheFlushDebounce time.Duration

	dryRun bool
}

// NewAppModel builds the mediator around a settled configuration, a
// worker fabric already wired to its goroutines by the caller, and the
// process-wide package index. It loads whatever persisted state exists
// on disk before the bubbletea program starts.
func NewAppModel(cfg *config.Settings, fab *channels.Fabric, idx *index.Index, layout persist.Layout) *AppModel {
	flushDebounce := cfg.Workers.CacheFlushDebounce.Duration
	m := &AppModel{
		state:              NewAppState(flushDebounce),
		fab:                fab,
		idx:                idx,
		zones:              zone.New(),
		detailsVP:          viewport.New(0, 0),
		layout:             layout,
		theme:              theme.Get(theme.Current.Name),
		installed:          make(map[string]bool),
		pkgbuildDebounce:   cfg.Workers.PKGBUILDDebounce.Duration,
		addBatchDebounce:   cfg.Workers.AddBatchDebounce.Duration,
		statusPollInterval: cfg.Workers.StatusPollInterval.Duration,
		cacheFlushDebounce: flushDebounce,
		dryRun:             cfg.General.DryRun,
	}
	m.loadPersistedState()

	// Seed a best-effort size from the controlling tty so the very first
	// frame (rendered before bubbletea's first WindowSizeMsg arrives) can
	// show the real layout instead of the placeholder. WindowSizeMsg still
	// overwrites this on arrival and remains the source of truth after.
	if sz := terminal.GetSize(); sz.Cols > 0 && sz.Rows > 0 {
		m.state.Width = sz.Cols
		m.state.Height = sz.Rows
		m.resizeDetailsViewport()
	}
	return m
}

// Init starts the mediator's listener set. Per the event-loop mediator's
// 3-step cooperative loop, the very first render happens before any
// channel has produced a value; with the tty-seeded size above this is
// usually already a real layout rather than the WindowSizeMsg placeholder.
func (m *AppModel) Init() tea.Cmd {
	return listenCmds(m.fab)
}

// Update dispatches a received message to its owning handler and
// re-arms exactly the one wait-Cmd that produced it, so the mediator
// never accumulates more than one in-flight receive per channel.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.LayoutDirty = true
		m.resizeDetailsViewport()
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if m.state.Focus == FocusDetails && m.state.Modal == nil {
			var vpCmd tea.Cmd
			m.detailsVP, vpCmd = m.detailsVP.Update(msg)
			cmd = tea.Batch(cmd, vpCmd)
		}
		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case searchResultsMsg:
		m.handleSearchResults(model.SearchResults(msg))
		return m, waitForSearchResults(m.fab)

	case detailsResultMsg:
		m.handleDetailsUpdate(model.PackageDetails(msg))
		return m, waitForDetailsResult(m.fab)

	case pkgbuildResultMsg:
		m.handlePKGBUILDResult(channels.PKGBUILDResult(msg))
		return m, waitForPKGBUILDResult(m.fab)

	case commentsResultMsg:
		m.handleCommentsResult(channels.CommentsResult(msg))
		return m, waitForCommentsResult(m.fab)

	case depsResultMsg:
		m.handleDepsResult([]model.DependencyInfo(msg))
		return m, waitForDepsResult(m.fab)

	case filesResultMsg:
		m.handleFilesResult([]model.PackageFileInfo(msg))
		return m, waitForFilesResult(m.fab)

	case servicesResultMsg:
		m.handleServicesResult([]model.ServiceImpact(msg))
		return m, waitForServicesResult(m.fab)

	case sandboxResultMsg:
		m.handleSandboxResult([]model.SandboxInfo(msg))
		return m, waitForSandboxResult(m.fab)

	case summaryResultMsg:
		m.handleSummaryResult(model.PreflightSummaryOutcome(msg))
		return m, waitForSummaryResult(m.fab)

	case executorResultMsg:
		m.handleExecutorResult(channels.ExecutorOutput(msg))
		return m, waitForExecutorResult(m.fab)

	case postSummaryResultMsg:
		m.handlePostSummaryResult(channels.PostSummaryReport(msg))
		return m, waitForPostSummaryResult(m.fab)

	case statusUpdateMsg:
		m.handleStatusUpdate(channels.StatusUpdate(msg))
		return m, waitForStatusUpdate(m.fab)

	case newsBatchMsg:
		m.handleNewsBatch(channels.NewsBatch(msg))
		return m, waitForNewsBatch(m.fab)

	case tickMsg:
		m.handleTick()
		return m, waitForTick(m.fab)

	case networkErrorMsg:
		m.handleNetworkError(channels.NetworkError(msg))
		return m, waitForNetworkError(m.fab)

	case indexReadyMsg:
		return m, waitForIndexReady(m.fab)
	}

	return m, nil
}

// View renders the current frame. Before the first WindowSizeMsg the
// terminal dimensions are unknown, so only an "Initializing..."
// placeholder is drawn; once
// quitting, bubbletea is about to clear the alternate screen itself.
func (m *AppModel) View() string {
	if m.state.Width == 0 && m.state.Height == 0 {
		return "Initializing..."
	}
	if m.state.Quitting {
		return ""
	}
	return m.render()
}

func (m *AppModel) Width() int         { return m.state.Width }
func (m *AppModel) Height() int        { return m.state.Height }
func (m *AppModel) LayoutDirty() bool  { return m.state.LayoutDirty }
func (m *AppModel) Quitting() bool     { return m.state.Quitting }
func (m *AppModel) HelpVisible() bool  { return m.state.HelpOpen }
func (m *AppModel) FocusedPane() Focus { return m.state.Focus }

// SetInstalled replaces the explicitly-installed snapshot used by the
// installed-only filter and the post-operation tracker. Callers must not
// invoke this concurrently with the bubbletea event loop; it is meant
// for the one-time snapshot taken before the program starts.
func (m *AppModel) SetInstalled(names []string) {
	installed := make(map[string]bool, len(names))
	for _, n := range names {
		installed[strings.ToLower(n)] = true
	}
	m.installed = installed
}

// handlePKGBUILDResult applies a PKGBUILD fetch only if it still matches
// the package currently focused in the details pane, discarding stale
// fetches the same way the search handler discards stale query batches.
func (m *AppModel) handlePKGBUILDResult(r channels.PKGBUILDResult) {
	if r.Name != m.state.DetailsFocus {
		return
	}
	m.state.PKGBUILDName = r.Name
	m.state.PKGBUILDText = r.Text
}

func (m *AppModel) handleCommentsResult(r channels.CommentsResult) {
	if r.Name != m.state.DetailsFocus {
		return
	}
	m.state.Comments = r.Comments
}

// handleExecutorResult surfaces the launched terminal command or its
// failure as a toast; the executor itself has already returned by the
// time this message arrives; the spawned terminal emulator runs the
// actual pacman/AUR-helper invocation independently.
func (m *AppModel) handleExecutorResult(r channels.ExecutorOutput) {
	now := time.Now()
	if r.Err != "" {
		m.state.Toast = ToastState{Message: "launch failed: " + r.Err, ShownAt: now, Active: true}
		return
	}
	m.state.Toast = ToastState{Message: "launched in " + r.Emulator, ShownAt: now, Active: true}
	m.state.TrackingNames = make(map[string]bool, len(m.state.InstallList))
	for _, it := range m.state.InstallList {
		m.state.TrackingNames[it.Name] = true
	}
	m.state.TrackingDeadline = now.Add(m.statusPollInterval)
}

func (m *AppModel) handlePostSummaryResult(r channels.PostSummaryReport) {
	now := time.Now()
	m.state.Toast = ToastState{
		Message: fmt.Sprintf("%d package(s) updated", r.PackageCount),
		ShownAt: now,
		Active:  true,
	}
}

// resizeDetailsViewport keeps the PKGBUILD viewport's dimensions in sync
// with the terminal size. It uses the same approximate split renderGrid
// applies (details pane is the right half of a two-column layout) since
// the exact layout isn't known until render() runs. It always sizes for
// that right-hand column; an expanded full-frame details pane is not
// accounted for.
func (m *AppModel) resizeDetailsViewport() {
	width := m.state.Width - m.state.Width/2 - 4
	height := m.state.Height - 5
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.detailsVP.Width = width
	m.detailsVP.Height = height
}

// syncDetailsViewportContent refreshes the viewport's content from the
// current PKGBUILD text. Called just before rendering rather than from
// every handler, so a mid-scroll update never gets silently reset by an
// unrelated state change landing between keystrokes.
func (m *AppModel) syncDetailsViewportContent() {
	if m.detailsVP.Width == 0 && m.detailsVP.Height == 0 {
		m.resizeDetailsViewport()
	}
	m.detailsVP.SetContent(m.state.PKGBUILDText)
}

func (m *AppModel) handleStatusUpdate(r channels.StatusUpdate) {
	m.state.StatusUpdate = r
}

func (m *AppModel) handleNewsBatch(r channels.NewsBatch) {
	m.state.News = r.Items
}
