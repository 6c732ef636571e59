package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
)

// handleSearchResults implements the search-results handler (§4.8). It
// drops stale batches, applies the installed-only/repo filters, preserves
// selection by name across the rewrite, and queues follow-up work for the
// newly-selected row plus a ring-prefetch of its neighbors.
func (m *AppModel) handleSearchResults(r model.SearchResults) {
	if r.ID != m.state.LatestQueryID {
		return
	}

	items := r.Items
	if m.state.FilterState.InstalledOnly {
		items = m.filterInstalledOnly(items, m.state.QueryText)
	}
	items = applyRepoFilter(items, m.state.FilterState)

	selectedName := m.currentSelectionName()
	m.state.Results = items
	m.state.SelectedIndex = reselectByName(items, selectedName)
	if m.state.SelectedIndex >= len(items) {
		m.state.SelectedIndex = len(items) - 1
	}
	if m.state.SelectedIndex < 0 {
		m.state.SelectedIndex = 0
	}

	if len(items) == 0 {
		return
	}
	sel := items[m.state.SelectedIndex]
	if _, cached := m.state.DetailsCache[sel.Name]; !cached {
		m.enqueueDetails(sel)
	}
	m.enqueueRingPrefetch(m.state.SelectedIndex)
}

// filterInstalledOnly intersects items with the explicit-installed set.
// For an empty query, it reconstructs a synthetic list from the index
// instead, since there are no search results to intersect against.
func (m *AppModel) filterInstalledOnly(items []model.PackageItem, queryText string) []model.PackageItem {
	if strings.TrimSpace(queryText) == "" {
		return m.syntheticInstalledList()
	}
	out := make([]model.PackageItem, 0, len(items))
	for _, it := range items {
		if m.installed[it.Key()] {
			out = append(out, it)
		}
	}
	return out
}

// syntheticInstalledList rebuilds an installed-only result set from the
// process-wide index when the query text is empty, per the
// installed-only-mode contract.
func (m *AppModel) syntheticInstalledList() []model.PackageItem {
	if m.idx == nil {
		return nil
	}
	var out []model.PackageItem
	for _, it := range m.idx.All() {
		if m.installed[it.Key()] {
			out = append(out, it)
		}
	}
	return out
}

func applyRepoFilter(items []model.PackageItem, f Filter) []model.PackageItem {
	if !f.OfficialOnly && !f.AURonly && len(f.Repos) == 0 {
		return items
	}
	out := make([]model.PackageItem, 0, len(items))
	for _, it := range items {
		if f.OfficialOnly && it.Source.IsAUR() {
			continue
		}
		if f.AURonly && !it.Source.IsAUR() {
			continue
		}
		if len(f.Repos) > 0 && !it.Source.IsAUR() && !f.Repos[it.Source.Repo] {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (m *AppModel) currentSelectionName() string {
	if m.state.SelectedIndex < 0 || m.state.SelectedIndex >= len(m.state.Results) {
		return ""
	}
	return m.state.Results[m.state.SelectedIndex].Name
}

// reselectByName finds name's new index in items, defaulting to 0 when
// the previously-selected package fell out of the rewritten result set.
func reselectByName(items []model.PackageItem, name string) int {
	if name == "" {
		return 0
	}
	for i, it := range items {
		if it.Name == name {
			return i
		}
	}
	return 0
}

func (m *AppModel) enqueueDetails(item model.PackageItem) {
	select {
	case m.fab.DetailsRequests <- item:
	default:
	}
}

// enqueueRingPrefetch queues index enrichment for official packages
// within RingPrefetchRadius of center, so scrolling through a large
// result set warms the details cache ahead of the user reaching a row.
func (m *AppModel) enqueueRingPrefetch(center int) {
	if m.idx == nil {
		return
	}
	lo := center - RingPrefetchRadius
	hi := center + RingPrefetchRadius
	if lo < 0 {
		lo = 0
	}
	if hi >= len(m.state.Results) {
		hi = len(m.state.Results) - 1
	}
	for i := lo; i <= hi; i++ {
		it := m.state.Results[i]
		if it.Source.IsAUR() {
			continue
		}
		if _, ok := m.state.DetailsCache[it.Name]; ok {
			continue
		}
		if _, ok := m.idx.Lookup(it.Name); ok {
			m.enqueueDetails(it)
		}
	}
}

// handleDetailsUpdate implements the details-update handler (§4.8):
// insert into the details cache and mark it dirty; replace app.details
// when the name matches details_focus; merge richer fields back into the
// corresponding results row.
func (m *AppModel) handleDetailsUpdate(d model.PackageDetails) {
	m.state.DetailsCache[d.Name] = d
	m.state.DetailsCacheDirty.Mark()

	if d.Name == m.state.DetailsFocus {
		m.state.Details = d
	}

	for i := range m.state.Results {
		if m.state.Results[i].Name == d.Name {
			d.MergeInto(&m.state.Results[i])
			break
		}
	}
}

// handleAddToInstall implements the add-to-install handler (§4.8):
// prepend with case-insensitive dedup, select the top, and fold
// concurrent adds into one batch before firing all four resolvers once.
// Call flushAddBatch (from the tick handler) once AddBatchDebounce has
// elapsed since the last add in the batch.
func (m *AppModel) handleAddToInstall(item model.PackageItem) {
	m.state.pendingAdds = append(m.state.pendingAdds, item)
	m.state.addBatchDeadline = time.Now().Add(m.addBatchDebounce)
}

// flushAddBatch applies every pending add (deduping by case-insensitive
// name against both the batch and the existing list), then fires the
// four plan-scoped resolver requests exactly once for the batch.
func (m *AppModel) flushAddBatch() {
	if len(m.state.pendingAdds) == 0 {
		return
	}
	batch := m.state.pendingAdds
	m.state.pendingAdds = nil

	seen := make(map[string]bool, len(m.state.InstallList))
	for _, it := range m.state.InstallList {
		seen[it.Key()] = true
	}
	var toPrepend []model.PackageItem
	for _, it := range batch {
		if seen[it.Key()] {
			continue
		}
		seen[it.Key()] = true
		toPrepend = append(toPrepend, it)
	}
	if len(toPrepend) == 0 {
		return
	}

	m.state.InstallList = append(toPrepend, m.state.InstallList...)
	m.state.InstallListDirty.Mark()
	m.state.SelectedIndex = 0

	req := m.state.planRequest()
	m.state.DepsResolving = true
	m.state.FilesResolving = true
	m.state.ServicesResolving = true
	m.state.SandboxResolving = true

	m.fab.DepsRequests <- req
	m.fab.FilesRequests <- req
	m.fab.ServicesRequests <- req
	m.fab.SandboxRequests <- m.state.InstallList
}

// handleDepsResult implements the dependencies stage-result handler.
func (m *AppModel) handleDepsResult(items []model.DependencyInfo) {
	cancelled := m.state.PreflightCancelled
	isPreflightResponse := m.state.PreflightDepsResolving
	m.state.DepsResolving = false
	m.state.PreflightDepsResolving = false

	if cancelled && isPreflightResponse {
		return
	}

	m.state.InstallListDeps = items
	m.state.DepsCacheDirty.Mark()

	if m.state.Modal != nil {
		filtered := filterDeps(items, m.state.Modal.itemNames())
		m.state.Modal.Deps.Items = filtered
		m.state.Modal.Deps.Loaded = true
		m.state.Modal.Deps.Error = ""
	}
	m.requestTick()
}

func filterDeps(items []model.DependencyInfo, names map[string]bool) []model.DependencyInfo {
	out := make([]model.DependencyInfo, 0, len(items))
	for _, it := range items {
		if names[it.Name] || len(names) == 0 {
			out = append(out, it)
		}
	}
	return out
}

// handleFilesResult implements the files stage-result handler.
func (m *AppModel) handleFilesResult(items []model.PackageFileInfo) {
	cancelled := m.state.PreflightCancelled
	isPreflightResponse := m.state.PreflightFilesResolving
	m.state.FilesResolving = false
	m.state.PreflightFilesResolving = false

	if cancelled && isPreflightResponse {
		return
	}

	m.state.InstallListFiles = items
	m.state.FilesCacheDirty.Mark()

	if m.state.Modal != nil {
		names := m.state.Modal.itemNames()
		out := make([]model.PackageFileInfo, 0, len(items))
		for _, it := range items {
			if names[it.PackageName] {
				out = append(out, it)
			}
		}
		m.state.Modal.Files.Items = out
		m.state.Modal.Files.Loaded = true
		m.state.Modal.Files.Error = ""
	}
	m.requestTick()
}

// handleServicesResult implements the services stage-result handler.
func (m *AppModel) handleServicesResult(items []model.ServiceImpact) {
	cancelled := m.state.PreflightCancelled
	isPreflightResponse := m.state.PreflightServicesResolving
	m.state.ServicesResolving = false
	m.state.PreflightServicesResolving = false

	if cancelled && isPreflightResponse {
		return
	}

	m.state.InstallListServices = items
	m.state.ServicesCacheDirty.Mark()

	if m.state.Modal != nil {
		names := m.state.Modal.itemNames()
		out := make([]model.ServiceImpact, 0, len(items))
		for _, it := range items {
			ok := false
			for _, p := range it.Providers {
				if names[p] {
					ok = true
					break
				}
			}
			if ok || len(names) == 0 {
				out = append(out, it)
			}
		}
		m.state.Modal.Services.Items = out
		m.state.Modal.Services.Loaded = true
		m.state.Modal.Services.Error = ""
		for _, it := range out {
			if _, overridden := m.state.Modal.RestartDecisions[it.UnitName]; !overridden {
				m.state.Modal.RestartDecisions[it.UnitName] = it.RecommendedDecision
			}
		}
		if m.state.Modal.ServicesCursor >= len(out) {
			m.state.Modal.ServicesCursor = 0
		}
	}
	m.requestTick()
}

// handleSandboxResult implements the sandbox stage-result handler,
// including the special case: AUR items in the modal with no sandbox
// result must not leave the tab stuck "loading".
func (m *AppModel) handleSandboxResult(items []model.SandboxInfo) {
	cancelled := m.state.PreflightCancelled
	isPreflightResponse := m.state.PreflightSandboxResolving
	m.state.SandboxResolving = false
	m.state.PreflightSandboxResolving = false

	if cancelled && isPreflightResponse {
		return
	}

	m.state.InstallListSandbox = items
	m.state.SandboxCacheDirty.Mark()

	if m.state.Modal != nil {
		var aurNames []string
		for _, it := range m.state.Modal.Plan.Items {
			if it.Source.IsAUR() {
				aurNames = append(aurNames, it.Name)
			}
		}
		byName := make(map[string]model.SandboxInfo, len(items))
		for _, it := range items {
			byName[it.PackageName] = it
		}
		var out []model.SandboxInfo
		failures := 0
		for _, name := range aurNames {
			info, ok := byName[name]
			if !ok {
				failures++
				continue
			}
			out = append(out, info)
			if sandboxInfoEmpty(info) {
				failures++
			}
		}
		m.state.Modal.Sandbox.Items = out
		m.state.Modal.Sandbox.Loaded = true
		if failures > 0 {
			m.state.Modal.Sandbox.Error = fmt.Sprintf("sandbox info unavailable for %d AUR package(s)", failures)
		} else {
			m.state.Modal.Sandbox.Error = ""
		}
	}
	m.requestTick()
}

// sandboxInfoEmpty reports whether the sandbox resolver's double-fetch-
// failure case applies: the entry came back present (so its package
// name matched), but all four dependency vectors are empty, meaning
// neither .SRCINFO nor PKGBUILD could be parsed for it.
func sandboxInfoEmpty(info model.SandboxInfo) bool {
	return len(info.Depends) == 0 && len(info.MakeDepends) == 0 &&
		len(info.CheckDepends) == 0 && len(info.OptDepends) == 0
}

// handleSummaryResult implements the summary handler.
func (m *AppModel) handleSummaryResult(outcome model.PreflightSummaryOutcome) {
	cancelled := m.state.PreflightCancelled
	m.state.PreflightSummaryResolving = false
	m.state.PendingSummary = nil

	if cancelled {
		return
	}

	if m.state.Modal != nil {
		m.state.Modal.Summary = outcome
		m.state.Modal.SummaryLoaded = true
		m.state.Modal.SummaryError = ""
	}
	m.requestTick()
}

// handleNetworkError turns a transient failure into an alert modal, per
// §7's taxonomy: no retry is attempted automatically.
func (m *AppModel) handleNetworkError(e channels.NetworkError) {
	m.state.AlertMessage = fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// handleTick implements the tick handler's six bullets (§4.8).
func (m *AppModel) handleTick() {
	now := time.Now()

	// 1. Flush any dirty cache whose debounce window has elapsed.
	m.flushDirtyCaches(now)

	// Drain a completed add-to-install batch.
	if len(m.state.pendingAdds) > 0 && now.After(m.state.addBatchDeadline) {
		m.flushAddBatch()
	}

	// 2. Re-send pending preflight stage markers once *_resolving clears.
	if m.state.PendingDeps != nil && !m.state.PreflightDepsResolving {
		m.fab.DepsRequests <- *m.state.PendingDeps
		m.state.PreflightDepsResolving = true
		m.state.PendingDeps = nil
	}
	if m.state.PendingFiles != nil && !m.state.PreflightFilesResolving {
		m.fab.FilesRequests <- *m.state.PendingFiles
		m.state.PreflightFilesResolving = true
		m.state.PendingFiles = nil
	}
	if m.state.PendingServices != nil && !m.state.PreflightServicesResolving {
		m.fab.ServicesRequests <- *m.state.PendingServices
		m.state.PreflightServicesResolving = true
		m.state.PendingServices = nil
	}
	if m.state.PendingSandbox != nil && !m.state.PreflightSandboxResolving {
		m.fab.SandboxRequests <- m.state.PendingSandbox
		m.state.PreflightSandboxResolving = true
		m.state.PendingSandbox = nil
	}
	if m.state.PendingSummary != nil && !m.state.PreflightSummaryResolving {
		m.fab.SummaryRequests <- *m.state.PendingSummary
		m.state.PreflightSummaryResolving = true
		m.state.PendingSummary = nil
	}

	// 3. Debounced PKGBUILD reload.
	if m.state.PendingPKGBUILDItem != nil &&
		now.Sub(m.state.PKGBUILDDebouncedAt) >= m.pkgbuildDebounce &&
		m.state.PendingPKGBUILDItem.Name == m.state.DetailsFocus {
		m.fab.PKGBUILDRequests <- channels.PKGBUILDRequest{Item: *m.state.PendingPKGBUILDItem}
		m.state.PendingPKGBUILDItem = nil
	}

	// 4. Poll installed-packages cache / clear install list once
	// tracked install/remove targets have transitioned.
	m.pollTracking(now)

	// 5. Ring-prefetch resumption is implicit: handled directly by
	// handleSearchResults and scroll handlers, nothing to resume here
	// beyond clearing any scroll-settle pause, which this model does
	// not separately track (prefetch always runs on settle).

	// 6. Expire transient UI timers.
	if m.state.Toast.Expired(now) {
		m.state.Toast.Active = false
	}
}

func (m *AppModel) flushDirtyCaches(now time.Time) {
	m.flushOne(m.state.DetailsCacheDirty, now, m.persistDetailsCache)
	m.flushOne(m.state.RecentDirty, now, m.persistRecent)
	m.flushOne(m.state.InstallListDirty, now, m.persistInstallList)
	m.flushOne(m.state.DepsCacheDirty, now, m.persistDepsCache)
	m.flushOne(m.state.FilesCacheDirty, now, m.persistFilesCache)
	m.flushOne(m.state.ServicesCacheDirty, now, m.persistServicesCache)
	m.flushOne(m.state.SandboxCacheDirty, now, m.persistSandboxCache)
	m.flushOne(m.state.NewsReadDirty, now, m.persistNewsRead)
}

func (m *AppModel) pollTracking(now time.Time) {
	if m.state.TrackingDeadline.IsZero() || now.Before(m.state.TrackingDeadline) {
		return
	}
	if len(m.state.TrackingNames) == 0 {
		m.state.TrackingDeadline = time.Time{}
		return
	}
	remaining := make(map[string]bool, len(m.state.TrackingNames))
	for name := range m.state.TrackingNames {
		installed := m.installed[strings.ToLower(name)]
		done := installed
		if m.state.Action == model.ActionRemove {
			done = !installed
		}
		if !done {
			remaining[name] = true
		}
	}
	if len(remaining) == 0 {
		m.state.InstallList = nil
		m.state.InstallListDirty.Mark()
		m.state.TrackingNames = nil
		m.state.TrackingDeadline = time.Time{}
		return
	}
	m.state.TrackingNames = remaining
	m.state.TrackingDeadline = now.Add(m.statusPollInterval)
}

// requestTick sends a tick to prompt a redraw, matching the stage-result
// handlers' "send a tick" bullet. Non-blocking: if the tick channel is
// momentarily full, the mediator will redraw on its next natural
// iteration anyway.
func (m *AppModel) requestTick() {
	select {
	case m.fab.Ticks <- channels.Tick{}:
	default:
	}
}

