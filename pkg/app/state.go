// Package app implements the event-loop mediator (C11) and its handlers
// (C12): the single bubbletea Model that owns AppState, selects among
// every worker response channel, and dispatches to per-message handlers.
// Workers never read or write AppState directly; every piece of async
// state flows back through a typed response and is applied here.
package app

import (
	"time"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/persist"
)

// RingPrefetchRadius is the number of neighboring result rows, on either
// side of the current selection, enriched with an index lookup after a
// search response lands. Named per the original implementation's
// hardcoded max_radius so the handler and its tests share one source of
// truth instead of a magic number.
const RingPrefetchRadius = 30

// PKGBUILDDebounce is the reload debounce for the PKGBUILD/.SRCINFO pane,
// deliberately shorter than the add-batch and cache-flush debounces so a
// package scan through the AUR list feels responsive.
const PKGBUILDDebounce = 100 * time.Millisecond

// ToastTimeout is how long a toast notification stays visible once
// raised, matching the original implementation's fixed value.
const ToastTimeout = 10 * time.Second

// SortMenuTimeout auto-closes an idle sort menu.
const SortMenuTimeout = 4 * time.Second

// Filter toggles the result list to a subset of the current search
// results.
type Filter struct {
	InstalledOnly bool
	Repos         map[string]bool // empty means "no repo filter"
	OfficialOnly  bool
	AURonly       bool
}

// PreflightTab identifies one tab of the preflight modal.
type PreflightTab int

const (
	TabDeps PreflightTab = iota
	TabFiles
	TabServices
	TabSandbox
	TabSummary
)

// stageState is the shared per-stage bookkeeping the four plan-scoped
// preflight resolvers need: a cached result, a loaded flag, and a
// user-facing error string. The summary tab layers its own outcome type
// on top of the same idea in PreflightModal.
type stageState[T any] struct {
	Items  []T
	Loaded bool
	Error  string
}

// PreflightModal is the core Modal variant: it aggregates the five
// resolver outputs with per-stage loaded flags and per-stage error
// strings, filtered down to the item set of the plan under review.
type PreflightModal struct {
	Plan model.Plan

	ActiveTab PreflightTab

	Deps     stageState[model.DependencyInfo]
	Files    stageState[model.PackageFileInfo]
	Services stageState[model.ServiceImpact]
	Sandbox  stageState[model.SandboxInfo]

	SummaryLoaded bool
	SummaryError  string
	Summary       model.PreflightSummaryOutcome

	// RestartDecisions lets the user override a ServiceImpact's
	// RecommendedDecision independently of the resolver re-running. Seeded
	// from RecommendedDecision as each services response arrives so a
	// unit the user never touches still keeps its recommendation.
	RestartDecisions map[string]model.ServiceDecision
	// ServicesCursor is the highlighted row on the services tab, the
	// target of ctrl+r's restart/defer toggle.
	ServicesCursor int
	// ExtraOptDepends are opt-depends the user chose to also install.
	ExtraOptDepends map[string]bool
	Cascade         bool
}

// itemNames returns the modal's plan item names, used to filter stage
// responses down to the set currently under review.
func (m *PreflightModal) itemNames() map[string]bool {
	names := make(map[string]bool, len(m.Plan.Items))
	for _, it := range m.Plan.Items {
		names[it.Name] = true
	}
	return names
}

// ToastState is a transient, auto-expiring notification banner.
type ToastState struct {
	Message   string
	ShownAt   time.Time
	Active    bool
}

// Expired reports whether the toast has outlived ToastTimeout.
func (t ToastState) Expired(now time.Time) bool {
	return t.Active && now.Sub(t.ShownAt) >= ToastTimeout
}

// Focus identifies which pane currently receives keyboard input.
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
	FocusDetails
	FocusInstall
)

// AppState is the single UI-owned aggregate. Only the mediator (AppModel)
// mutates it; workers never read or write it directly.
type AppState struct {
	Width, Height int
	LayoutDirty   bool

	Focus    Focus
	Expanded bool // true when Focus's pane renders fullscreen
	Quitting bool
	HelpOpen bool

	// Search pane.
	QueryText       string
	LatestQueryID   model.QueryID
	nextQueryID     model.QueryID
	Results         []model.PackageItem
	SelectedIndex   int
	FilterState     Filter
	RecentSearches  []string

	// Details pane.
	DetailsFocus string // package name of current interest
	Details      model.PackageDetails
	DetailsCache map[string]model.PackageDetails
	PKGBUILDText string
	PKGBUILDName string
	Comments     []channels.Comment

	// Install plan (UI-owned vector; mutation marks InstallListDirty).
	InstallList   []model.PackageItem
	InstallDirty  bool
	Action        model.ActionKind

	// Plan-scoped resolving flags: true iff a request is currently
	// in flight for the *install list* (not the preflight modal).
	DepsResolving     bool
	FilesResolving    bool
	ServicesResolving bool
	SandboxResolving  bool

	// Preflight-scoped resolving flags: true iff a request is
	// currently in flight for the modal's (possibly different) plan.
	PreflightDepsResolving     bool
	PreflightFilesResolving    bool
	PreflightServicesResolving bool
	PreflightSandboxResolving  bool
	PreflightSummaryResolving  bool

	// Pending markers the tick handler re-sends once the
	// corresponding *_resolving flag clears.
	PendingDeps     *channels.PlanRequest
	PendingFiles    *channels.PlanRequest
	PendingServices *channels.PlanRequest
	PendingSandbox  []model.PackageItem
	PendingSummary  *channels.PlanRequest

	// Cached plan-scoped resolver results (shown inline, independent
	// of whether the preflight modal is open).
	InstallListDeps     []model.DependencyInfo
	InstallListFiles    []model.PackageFileInfo
	InstallListServices []model.ServiceImpact
	InstallListSandbox  []model.SandboxInfo

	// Preflight modal (nil when not open).
	Modal *PreflightModal

	PreflightCancelled bool

	// PKGBUILD reload debounce.
	PendingPKGBUILDItem *model.PackageItem
	PKGBUILDDebouncedAt time.Time

	// News / status.
	News           []model.NewsItem
	NewsReadIDs    map[string]bool
	StatusUpdate   channels.StatusUpdate

	// Add-to-install batch drain.
	pendingAdds      []model.PackageItem
	addBatchDeadline time.Time

	Toast ToastState

	// Installed-packages poll deadline (tick handler bullet 4):
	// non-zero while tracking a pending install/remove set.
	TrackingDeadline time.Time
	TrackingNames    map[string]bool

	// Alert modal text, non-empty when a network error should be
	// surfaced to the user.
	AlertMessage string

	// Dirty flags for persistable entities (§3 invariant 3).
	DetailsCacheDirty *persist.Dirty
	RecentDirty       *persist.Dirty
	InstallListDirty  *persist.Dirty
	DepsCacheDirty    *persist.Dirty
	FilesCacheDirty   *persist.Dirty
	ServicesCacheDirty *persist.Dirty
	SandboxCacheDirty *persist.Dirty
	NewsReadDirty     *persist.Dirty
}

// NewAppState returns a zeroed AppState with every dirty tracker and map
// initialized, ready for the mediator to drive.
func NewAppState(flushDebounce time.Duration) *AppState {
	return &AppState{
		DetailsCache: make(map[string]model.PackageDetails),
		NewsReadIDs:  make(map[string]bool),
		TrackingNames: make(map[string]bool),

		DetailsCacheDirty:  persist.NewDirty(flushDebounce),
		RecentDirty:        persist.NewDirty(flushDebounce),
		InstallListDirty:   persist.NewDirty(flushDebounce),
		DepsCacheDirty:     persist.NewDirty(flushDebounce),
		FilesCacheDirty:    persist.NewDirty(flushDebounce),
		ServicesCacheDirty: persist.NewDirty(flushDebounce),
		SandboxCacheDirty:  persist.NewDirty(flushDebounce),
		NewsReadDirty:      persist.NewDirty(flushDebounce),
	}
}

// nextID returns a fresh, monotonically increasing query id and records
// it as the latest, so responses for older ids can be identified as
// stale per §3 invariant 5.
func (s *AppState) nextID() model.QueryID {
	s.nextQueryID++
	s.LatestQueryID = s.nextQueryID
	return s.nextQueryID
}

// planRequest builds the common plan-scoped resolver request shape from
// the current install list and action.
func (s *AppState) planRequest() channels.PlanRequest {
	return channels.PlanRequest{Items: s.InstallList, Action: s.Action}
}
