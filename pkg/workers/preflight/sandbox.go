package preflight

import (
	"context"
	"sync"
	"time"

	"github.com/pacsea/pacsea/pkg/aurclient"
	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
	"github.com/pacsea/pacsea/pkg/srcinfo"
)

// SandboxPerRequestTimeout bounds each individual .SRCINFO/PKGBUILD
// fetch so one slow AUR mirror cannot hold up the whole batch.
const SandboxPerRequestTimeout = 6 * time.Second

// SandboxResolver is C7.4: fetches .SRCINFO (falling back to PKGBUILD)
// for every AUR item in parallel, tolerating both fetch paths failing by
// still emitting an empty SandboxInfo for that item.
type SandboxResolver struct {
	AUR    *aurclient.Client
	Pacman *pacman.Client
}

// Run drains fab.SandboxRequests until ctx is cancelled.
func (r *SandboxResolver) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case items := <-fab.SandboxRequests:
			fab.SandboxResults <- r.Resolve(ctx, items)
		}
	}
}

// Resolve fetches and parses dependency data for every AUR item in
// items, skipping official items entirely. Every AUR item yields exactly
// one SandboxInfo, even on double fetch failure.
func (r *SandboxResolver) Resolve(ctx context.Context, items []model.PackageItem) []model.SandboxInfo {
	aurItems := make([]model.PackageItem, 0, len(items))
	for _, it := range items {
		if it.Source.IsAUR() {
			aurItems = append(aurItems, it)
		}
	}

	results := make([]model.SandboxInfo, len(aurItems))
	var wg sync.WaitGroup
	wg.Add(len(aurItems))

	for i, it := range aurItems {
		go func(i int, item model.PackageItem) {
			defer wg.Done()
			results[i] = r.resolveOne(ctx, item)
		}(i, it)
	}
	wg.Wait()

	return results
}

func (r *SandboxResolver) resolveOne(ctx context.Context, item model.PackageItem) model.SandboxInfo {
	info := model.SandboxInfo{PackageName: item.Name}

	reqCtx, cancel := context.WithTimeout(ctx, SandboxPerRequestTimeout)
	raw, err := r.AUR.FetchSrcinfo(reqCtx, item.Name)
	cancel()

	var deps srcinfo.Dependencies
	if err == nil && raw != "" {
		deps = srcinfo.ParseSrcinfo(raw)
	} else {
		reqCtx, cancel := context.WithTimeout(ctx, SandboxPerRequestTimeout)
		raw, err = r.AUR.FetchPKGBUILD(reqCtx, item.Name)
		cancel()
		if err != nil || raw == "" {
			return info // double failure: still emit the empty-but-present entry
		}
		deps = srcinfo.ParsePKGBUILD(raw)
	}

	info.Depends = r.resolveDeps(ctx, deps.Depends)
	info.MakeDepends = r.resolveDeps(ctx, deps.MakeDepends)
	info.CheckDepends = r.resolveDeps(ctx, deps.CheckDepends)
	info.OptDepends = r.resolveDeps(ctx, deps.OptDepends)
	return info
}

func (r *SandboxResolver) resolveDeps(ctx context.Context, raw []string) []model.SandboxDependency {
	if len(raw) == 0 {
		return nil
	}
	out := make([]model.SandboxDependency, 0, len(raw))
	for _, token := range raw {
		name, _ := splitConstraint(token)
		local, err := r.Pacman.QueryInfoLocal(ctx, name)
		dep := model.SandboxDependency{Name: token}
		if err == nil && len(local) > 0 {
			dep.IsInstalled = true
			dep.InstalledVersion = local["Version"]
			dep.VersionSatisfied = true
		}
		out = append(out, dep)
	}
	return out
}
