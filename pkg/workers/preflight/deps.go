package preflight

import (
	"context"
	"strings"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

// DepsResolver is C7.1. For Install/Downgrade it walks each root item's
// declared depends/makedepends one level deep, classifying every
// resolved name. For Remove it computes the reverse-dependency set:
// installed packages that would become unsatisfied.
type DepsResolver struct {
	Pacman *pacman.Client
}

// Run drains fab.DepsRequests until ctx is cancelled.
func (r *DepsResolver) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-fab.DepsRequests:
			fab.DepsResults <- r.Resolve(ctx, req)
		}
	}
}

// Resolve computes the dependency list for a plan request.
func (r *DepsResolver) Resolve(ctx context.Context, req channels.PlanRequest) []model.DependencyInfo {
	if req.Action == model.ActionRemove {
		return r.resolveReverse(ctx, req.Items)
	}
	return r.resolveForward(ctx, req.Items)
}

// resolveForward walks each root's declared dependencies one level deep
// (the sync database does not expose a recursive closure cheaply; a
// single level matches what pacman itself resolves against the already-
// installed set, since a transitively-required package is either already
// satisfied or itself a direct dependency of something else in the
// plan). AUR roots are skipped here: their build/runtime graph is the
// sandbox resolver's concern, not this one's.
func (r *DepsResolver) resolveForward(ctx context.Context, items []model.PackageItem) []model.DependencyInfo {
	planConflicts := collectPlanConflicts(ctx, r.Pacman, items)

	var all []model.DependencyInfo
	for _, root := range items {
		remote, err := r.remoteFields(ctx, root)
		if err != nil {
			continue
		}
		names := append(fieldsList(remote, "Depends On"), fieldsList(remote, "Makedepends")...)
		for _, raw := range names {
			name, _ := splitConstraint(raw)
			all = append(all, r.classify(ctx, raw, name, root.Name, planConflicts))
		}
	}

	return model.MergeDependencyInfo(all)
}

// collectPlanConflicts gathers the union of every plan item's declared
// "Conflicts With" set, used to flag a dependency that would conflict
// with another package already staged in the same plan.
func collectPlanConflicts(ctx context.Context, client *pacman.Client, items []model.PackageItem) map[string]bool {
	conflicts := make(map[string]bool)
	for _, it := range items {
		if it.Source.IsAUR() {
			continue
		}
		fields, err := client.QueryInfoRemote(ctx, it.Name)
		if err != nil {
			continue
		}
		for _, c := range fieldsList(fields, "Conflicts With") {
			name, _ := splitConstraint(c)
			conflicts[strings.ToLower(name)] = true
		}
	}
	return conflicts
}

func (r *DepsResolver) remoteFields(ctx context.Context, item model.PackageItem) (pacman.Fields, error) {
	if item.Source.IsAUR() {
		return nil, errSkipAUR
	}
	return r.Pacman.QueryInfoRemote(ctx, item.Name)
}

var errSkipAUR = skipAURError{}

type skipAURError struct{}

func (skipAURError) Error() string { return "preflight: AUR root has no sync-db dependency data" }

func fieldsList(fields pacman.Fields, key string) []string {
	v := strings.TrimSpace(fields[key])
	if v == "" || v == "None" {
		return nil
	}
	return strings.Fields(v)
}

// splitConstraint separates a pacman-style dependency token ("foo>=1.2")
// into its bare name and returns the original token unchanged as the
// verbatim constraint, matching the contract that version constraints
// are preserved verbatim in the name field.
func splitConstraint(raw string) (name, constraint string) {
	for _, op := range []string{">=", "<=", "==", "=", ">", "<"} {
		if idx := strings.Index(raw, op); idx > 0 {
			return raw[:idx], raw
		}
	}
	return raw, raw
}

func (r *DepsResolver) classify(ctx context.Context, rawConstraint, name, requiredBy string, planConflicts map[string]bool) model.DependencyInfo {
	info := model.DependencyInfo{
		Name:       rawConstraint,
		RequiredBy: []string{requiredBy},
		IsCore:     IsCorePackage(name),
		IsSystem:   IsSystemPackage(name),
	}

	if planConflicts[strings.ToLower(name)] {
		info.Status = model.DependencyStatus{Kind: model.StatusConflict, ConflictReason: "conflicts with another item in this plan"}
		return info
	}

	local, err := r.Pacman.QueryInfoLocal(ctx, name)
	if err != nil || len(local) == 0 {
		if _, err := r.Pacman.QueryInfoRemote(ctx, name); err != nil {
			info.Status = model.DependencyStatus{Kind: model.StatusMissing}
			return info
		}
		info.Status = model.DependencyStatus{Kind: model.StatusToInstall}
		return info
	}

	installedVersion := strings.TrimSpace(local["Version"])
	info.Version = installedVersion

	if op, required, ok := parseConstraintOp(rawConstraint); ok && !pacman.Satisfies(installedVersion, op, required) {
		info.Status = model.DependencyStatus{
			Kind:            model.StatusToUpgrade,
			CurrentVersion:  installedVersion,
			RequiredVersion: required,
		}
		return info
	}

	info.Status = model.DependencyStatus{Kind: model.StatusInstalled, InstalledVersion: installedVersion}
	return info
}

// parseConstraintOp splits a pacman-style dependency token ("foo>=1.2")
// into its comparison operator and required version, mirroring
// splitConstraint's operator precedence so the two never disagree on
// where the name ends and the constraint begins.
func parseConstraintOp(raw string) (op, version string, ok bool) {
	for _, candidate := range []string{">=", "<=", "==", "=", ">", "<"} {
		if idx := strings.Index(raw, candidate); idx > 0 {
			return candidate, raw[idx+len(candidate):], true
		}
	}
	return "", "", false
}

// resolveReverse computes, for a Remove plan, every installed package
// that depends on one of the plan's items and would become unsatisfied.
func (r *DepsResolver) resolveReverse(ctx context.Context, items []model.PackageItem) []model.DependencyInfo {
	var all []model.DependencyInfo

	for _, it := range items {
		local, err := r.Pacman.QueryInfoLocal(ctx, it.Name)
		if err != nil || len(local) == 0 {
			continue
		}
		for _, dependent := range fieldsList(local, "Required By") {
			all = append(all, model.DependencyInfo{
				Name:       dependent,
				RequiredBy: []string{it.Name},
				IsCore:     IsCorePackage(dependent),
				IsSystem:   IsSystemPackage(dependent),
				Status:     model.DependencyStatus{Kind: model.StatusConflict, ConflictReason: "depends on a package being removed"},
			})
		}
	}

	return model.MergeDependencyInfo(all)
}
