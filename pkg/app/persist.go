package app

import (
	"time"

	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/persist"
)

// flushOne runs save when dirty has a debounce-eligible mutation pending,
// clearing the tracker only on success so a write failure is retried on
// the next tick instead of being silently forgotten.
func (m *AppModel) flushOne(dirty *persist.Dirty, now time.Time, save func() error) {
	if !dirty.ShouldFlush(now) {
		return
	}
	if err := save(); err != nil {
		return
	}
	dirty.Clear()
}

func (m *AppModel) persistDetailsCache() error {
	return persist.SaveJSON(m.layout.DetailsCache(), m.state.DetailsCache)
}

func (m *AppModel) persistRecent() error {
	return persist.SaveJSON(m.layout.RecentSearches(), m.state.RecentSearches)
}

func (m *AppModel) persistInstallList() error {
	type installListFile struct {
		Items  []model.PackageItem `json:"items"`
		Action model.ActionKind    `json:"action"`
	}
	return persist.SaveJSON(m.layout.InstallList(), installListFile{
		Items:  m.state.InstallList,
		Action: m.state.Action,
	})
}

func (m *AppModel) persistNewsRead() error {
	return persist.SaveJSON(m.layout.NewsReadIDs(), m.state.NewsReadIDs)
}

// installListSignature computes the plan-scoped cache signature shared
// by the four resolver caches: sort(install list names).
func (m *AppModel) installListSignature() persist.Signature {
	return persist.ComputeSignature(model.Plan{Items: m.state.InstallList}.Names())
}

func (m *AppModel) persistDepsCache() error {
	return persist.SaveSignedCache(m.layout.DepsCache(), m.installListSignature(), m.state.InstallListDeps)
}

func (m *AppModel) persistFilesCache() error {
	return persist.SaveSignedCache(m.layout.FilesCache(), m.installListSignature(), m.state.InstallListFiles)
}

func (m *AppModel) persistServicesCache() error {
	return persist.SaveSignedCache(m.layout.ServicesCache(), m.installListSignature(), m.state.InstallListServices)
}

func (m *AppModel) persistSandboxCache() error {
	return persist.SaveSignedCache(m.layout.SandboxCache(), m.installListSignature(), m.state.InstallListSandbox)
}

// loadPersistedState restores every cache and list persisted by the
// methods above, called once during NewAppModel before the first tick.
// A missing or signature-mismatched cache is left at its zero value;
// nothing here is fatal to startup.
func (m *AppModel) loadPersistedState() {
	var details map[string]model.PackageDetails
	if ok, _ := persist.LoadJSON(m.layout.DetailsCache(), &details); ok {
		m.state.DetailsCache = details
	}

	var recent []string
	if ok, _ := persist.LoadJSON(m.layout.RecentSearches(), &recent); ok {
		m.state.RecentSearches = recent
	}

	type installListFile struct {
		Items  []model.PackageItem `json:"items"`
		Action model.ActionKind    `json:"action"`
	}
	var il installListFile
	if ok, _ := persist.LoadJSON(m.layout.InstallList(), &il); ok {
		m.state.InstallList = il.Items
		m.state.Action = il.Action
	}

	var newsRead map[string]bool
	if ok, _ := persist.LoadJSON(m.layout.NewsReadIDs(), &newsRead); ok {
		m.state.NewsReadIDs = newsRead
	}

	sig := m.installListSignature()
	if deps, ok := persist.LoadSignedCache[[]model.DependencyInfo](m.layout.DepsCache(), sig); ok {
		m.state.InstallListDeps = deps
	}
	if files, ok := persist.LoadSignedCache[[]model.PackageFileInfo](m.layout.FilesCache(), sig); ok {
		m.state.InstallListFiles = files
	}
	if svcs, ok := persist.LoadSignedCache[[]model.ServiceImpact](m.layout.ServicesCache(), sig); ok {
		m.state.InstallListServices = svcs
	}
	if sbx, ok := persist.LoadSignedCache[[]model.SandboxInfo](m.layout.SandboxCache(), sig); ok {
		m.state.InstallListSandbox = sbx
	}
}
