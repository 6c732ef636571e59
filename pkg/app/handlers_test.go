package app

import (
	"strings"
	"testing"
	"time"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/persist"
)

// newTestModel builds an AppModel around a fresh fabric and a temp-dir
// layout, without starting any worker goroutines or the bubbletea
// program, so handlers can be exercised directly and synchronously.
func newTestModel(t *testing.T) *AppModel {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	layout, err := persist.NewLayout()
	if err != nil {
		t.Fatalf("persist.NewLayout: %v", err)
	}
	if err := layout.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}

	fab := channels.NewFabric()
	return &AppModel{
		state:              NewAppState(2 * time.Second),
		fab:                fab,
		layout:             layout,
		installed:          make(map[string]bool),
		addBatchDebounce:   300 * time.Millisecond,
		statusPollInterval: 5 * time.Second,
	}
}

func TestHandleSearchResults_DropsStaleQuery(t *testing.T) {
	m := newTestModel(t)
	m.state.LatestQueryID = 2
	m.state.Results = []model.PackageItem{{Name: "kept"}}

	m.handleSearchResults(model.SearchResults{ID: 1, Items: []model.PackageItem{{Name: "stale"}}})

	if len(m.state.Results) != 1 || m.state.Results[0].Name != "kept" {
		t.Fatalf("stale search result was not dropped: %+v", m.state.Results)
	}
}

func TestHandleSearchResults_AcceptsLatestQuery(t *testing.T) {
	m := newTestModel(t)
	m.state.LatestQueryID = 3

	m.handleSearchResults(model.SearchResults{ID: 3, Items: []model.PackageItem{{Name: "htop"}}})

	if len(m.state.Results) != 1 || m.state.Results[0].Name != "htop" {
		t.Fatalf("latest search result was not applied: %+v", m.state.Results)
	}
}

func TestFlushAddBatch_DedupsCaseInsensitiveAndFansOutToFourResolvers(t *testing.T) {
	m := newTestModel(t)
	m.handleAddToInstall(model.PackageItem{Name: "htop"})
	m.handleAddToInstall(model.PackageItem{Name: "HTOP"})
	m.handleAddToInstall(model.PackageItem{Name: "neovim"})

	m.flushAddBatch()

	if len(m.state.InstallList) != 2 {
		t.Fatalf("expected 2 deduped entries, got %d: %+v", len(m.state.InstallList), m.state.InstallList)
	}
	if !m.state.DepsResolving || !m.state.FilesResolving || !m.state.ServicesResolving || !m.state.SandboxResolving {
		t.Fatalf("expected all four plan-scoped resolving flags set, got %+v", m.state)
	}

	select {
	case req := <-m.fab.DepsRequests:
		if len(req.Items) != 2 {
			t.Fatalf("deps request carried %d items, want 2", len(req.Items))
		}
	default:
		t.Fatal("expected a deps request on the fabric")
	}
	select {
	case <-m.fab.FilesRequests:
	default:
		t.Fatal("expected a files request on the fabric")
	}
	select {
	case <-m.fab.ServicesRequests:
	default:
		t.Fatal("expected a services request on the fabric")
	}
	select {
	case items := <-m.fab.SandboxRequests:
		if len(items) != 2 {
			t.Fatalf("sandbox request carried %d items, want 2", len(items))
		}
	default:
		t.Fatal("expected a sandbox request on the fabric")
	}
}

func TestFlushAddBatch_NoOpWhenEverythingAlreadyInList(t *testing.T) {
	m := newTestModel(t)
	m.state.InstallList = []model.PackageItem{{Name: "htop"}}
	m.handleAddToInstall(model.PackageItem{Name: "htop"})

	m.flushAddBatch()

	if len(m.state.InstallList) != 1 {
		t.Fatalf("install list should be unchanged, got %+v", m.state.InstallList)
	}
	if m.state.DepsResolving {
		t.Fatal("no resolver request should fire when nothing new was added")
	}
}

func TestCancelPreflight_ClearsModalAndPendingMarkers(t *testing.T) {
	m := newTestModel(t)
	req := channels.PlanRequest{Items: []model.PackageItem{{Name: "htop"}}, Action: model.ActionInstall}
	m.state.PendingDeps = &req
	m.state.PendingFiles = &req
	m.state.Modal = &PreflightModal{Plan: model.Plan{Items: req.Items}}
	m.state.Focus = FocusDetails

	m.cancelPreflight()

	if m.state.Modal != nil {
		t.Fatal("modal should be closed")
	}
	if m.state.PendingDeps != nil || m.state.PendingFiles != nil {
		t.Fatal("pending markers should be cleared")
	}
	if !m.state.PreflightCancelled {
		t.Fatal("cancelled flag should be set")
	}
	if m.state.Focus != FocusInstall {
		t.Fatalf("focus should return to the install pane, got %v", m.state.Focus)
	}
}

func TestHandleDepsResult_DroppedEntirelyWhenCancelledPreflightResponse(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = &PreflightModal{Plan: model.Plan{Items: []model.PackageItem{{Name: "htop"}}}}
	m.state.PreflightDepsResolving = true
	m.state.PreflightCancelled = true

	m.handleDepsResult([]model.DependencyInfo{{Name: "ncurses"}})

	if m.state.Modal.Deps.Loaded {
		t.Fatal("cancelled preflight response should not update the modal")
	}
	if len(m.state.InstallListDeps) != 0 {
		t.Fatal("a cancelled preflight-scoped response should not populate the plan-scoped cache either")
	}
	if m.state.PreflightDepsResolving {
		t.Fatal("the resolving flag must still be cleared on a dropped response")
	}
}

func TestHandleDepsResult_AppliesNonCancelledResponse(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = &PreflightModal{Plan: model.Plan{Items: []model.PackageItem{{Name: "htop"}}}}
	m.state.PreflightDepsResolving = true

	m.handleDepsResult([]model.DependencyInfo{{Name: "ncurses"}})

	if !m.state.Modal.Deps.Loaded || len(m.state.Modal.Deps.Items) != 1 {
		t.Fatalf("expected the modal's deps tab to be populated, got %+v", m.state.Modal.Deps)
	}
	if len(m.state.InstallListDeps) != 1 {
		t.Fatal("the plan-scoped cache should be updated on a normal response")
	}
}

func TestHandleSandboxResult_MissingByNameReportsErrorButKeepsWhatArrived(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = &PreflightModal{Plan: model.Plan{Items: []model.PackageItem{
		{Name: "yay-bin", Source: model.Aur()},
		{Name: "paru-bin", Source: model.Aur()},
	}}}
	m.state.PreflightSandboxResolving = true

	m.handleSandboxResult([]model.SandboxInfo{
		{PackageName: "yay-bin", Depends: []model.SandboxDependency{{Name: "glibc"}}},
	})

	if !m.state.Modal.Sandbox.Loaded {
		t.Fatal("sandbox tab should be marked loaded even on partial failure")
	}
	if len(m.state.Modal.Sandbox.Items) != 1 {
		t.Fatalf("expected the one successful entry to survive, got %+v", m.state.Modal.Sandbox.Items)
	}
	if m.state.Modal.Sandbox.Error == "" {
		t.Fatal("expected a sandbox error describing the missing package")
	}
}

// TestHandleSandboxResult_PresentButEmptyOnDoubleFetchFailure exercises
// the resolver's double-fetch-failure path (sandbox.go's resolveOne
// returning a present-but-empty SandboxInfo for every AUR item), rather
// than an entry dropped from the slice entirely: both plan items come
// back with all four dependency vectors empty.
func TestHandleSandboxResult_PresentButEmptyOnDoubleFetchFailure(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = &PreflightModal{Plan: model.Plan{Items: []model.PackageItem{
		{Name: "yay-bin", Source: model.Aur()},
		{Name: "paru-bin", Source: model.Aur()},
	}}}
	m.state.PreflightSandboxResolving = true

	m.handleSandboxResult([]model.SandboxInfo{
		{PackageName: "yay-bin"},
		{PackageName: "paru-bin"},
	})

	if !m.state.Modal.Sandbox.Loaded {
		t.Fatal("sandbox tab should be marked loaded even when every entry is empty")
	}
	if len(m.state.Modal.Sandbox.Items) != 2 {
		t.Fatalf("both present entries should be kept, got %+v", m.state.Modal.Sandbox.Items)
	}
	if !strings.Contains(m.state.Modal.Sandbox.Error, "2 AUR package(s)") {
		t.Fatalf("expected an error mentioning 2 AUR package(s), got %q", m.state.Modal.Sandbox.Error)
	}
}

func TestHandleServicesResult_SeedsRestartDecisionsFromRecommendation(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = &PreflightModal{
		Plan:             model.Plan{Items: []model.PackageItem{{Name: "nginx"}}},
		RestartDecisions: make(map[string]model.ServiceDecision),
	}
	m.state.ServicesResolving = true

	m.handleServicesResult([]model.ServiceImpact{
		{UnitName: "nginx.service", Providers: []string{"nginx"}, RecommendedDecision: model.DecisionRestart},
	})

	if got := m.state.Modal.RestartDecisions["nginx.service"]; got != model.DecisionRestart {
		t.Fatalf("RestartDecisions[nginx.service] = %v, want DecisionRestart", got)
	}
}

func TestHandleServicesResult_PreservesExistingOverride(t *testing.T) {
	m := newTestModel(t)
	m.state.Modal = &PreflightModal{
		Plan: model.Plan{Items: []model.PackageItem{{Name: "nginx"}}},
		RestartDecisions: map[string]model.ServiceDecision{
			"nginx.service": model.DecisionDefer,
		},
	}
	m.state.ServicesResolving = true

	m.handleServicesResult([]model.ServiceImpact{
		{UnitName: "nginx.service", Providers: []string{"nginx"}, RecommendedDecision: model.DecisionRestart},
	})

	if got := m.state.Modal.RestartDecisions["nginx.service"]; got != model.DecisionDefer {
		t.Fatalf("a pre-existing user override must survive a new services response, got %v", got)
	}
}

func TestHandleDetailsUpdate_MergesIntoMatchingResultRow(t *testing.T) {
	m := newTestModel(t)
	m.state.Results = []model.PackageItem{{Name: "htop", Version: "3.0"}}
	m.state.DetailsFocus = "htop"

	m.handleDetailsUpdate(model.PackageDetails{
		PackageItem: model.PackageItem{Name: "htop", Version: "3.4.1", Description: "interactive process viewer"},
	})

	if m.state.Details.Version != "3.4.1" {
		t.Fatalf("details pane should reflect the update, got %+v", m.state.Details)
	}
	if m.state.Results[0].Version != "3.4.1" {
		t.Fatalf("matching result row should be merged, got %+v", m.state.Results[0])
	}
}
