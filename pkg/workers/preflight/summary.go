package preflight

import (
	"context"
	"fmt"
	"strings"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

// SummaryResolver is C7.5: the package-level aggregate plus the
// deterministic risk heuristic. It also attaches the reverse-dependency
// report for Remove actions so the deps tab does not recompute it.
type SummaryResolver struct {
	Pacman   *pacman.Client
	Deps     *DepsResolver
	Files    *FilesResolver
	Services *ServicesResolver
}

// Run drains fab.SummaryRequests until ctx is cancelled.
func (r *SummaryResolver) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-fab.SummaryRequests:
			fab.SummaryResults <- r.Resolve(ctx, req)
		}
	}
}

// Resolve computes the full summary outcome for a plan request.
func (r *SummaryResolver) Resolve(ctx context.Context, req channels.PlanRequest) model.PreflightSummaryOutcome {
	var outcome model.PreflightSummaryOutcome
	summary := model.PreflightSummary{PackageCount: len(req.Items)}

	hasAUR := false
	hasMajorBump := false
	anyCore := false

	for _, item := range req.Items {
		if item.Source.IsAUR() {
			summary.AURCount++
			hasAUR = true
		}

		note := model.PackagePlanNote{PackageName: item.Name, IsCore: IsCorePackage(item.Name), IsSystem: IsSystemPackage(item.Name)}
		anyCore = anyCore || note.IsCore

		local, _ := r.Pacman.QueryInfoLocal(ctx, item.Name)
		if len(local) == 0 {
			note.Notes = append(note.Notes, "New installation")
		} else {
			installedVersion := strings.TrimSpace(local["Version"])
			if majorVersionBump(installedVersion, item.Version) {
				note.Notes = append(note.Notes, "Major version bump")
				hasMajorBump = true
			}
			if req.Action == model.ActionDowngrade && isDowngrade(installedVersion, item.Version) {
				note.Notes = append(note.Notes, "Downgrade detected")
			}
		}

		summary.DownloadBytes += r.downloadSize(ctx, item)
		summary.InstallDeltaBytes += r.installDeltaSize(ctx, item, req.Action)
		summary.PackageNotes = append(summary.PackageNotes, note)
	}

	var filesOut []model.PackageFileInfo
	if r.Files != nil {
		filesOut = r.Files.Resolve(ctx, req)
	}
	hasPacnew := false
	for _, f := range filesOut {
		if len(f.PacnewCandidates) > 0 {
			hasPacnew = true
			break
		}
	}

	servicesRestart := false
	if r.Services != nil {
		for _, impact := range r.Services.Resolve(ctx, req) {
			if impact.NeedsRestart {
				servicesRestart = true
				break
			}
		}
	}

	var reverseDeps *model.ReverseDependencyReport
	score := 0
	var reasons []string

	if anyCore {
		score += 3
		reasons = append(reasons, "includes a core system package")
	}
	if hasMajorBump {
		score += 2
		reasons = append(reasons, "major version bump detected")
	}
	if hasAUR {
		score += 2
		reasons = append(reasons, "includes AUR package(s)")
	}
	if hasPacnew {
		score += 1
		reasons = append(reasons, "predicted .pacnew file(s)")
	}
	if servicesRestart {
		score += 1
		reasons = append(reasons, "service restart expected")
	}

	if req.Action == model.ActionRemove && r.Deps != nil {
		report := buildReverseDependencyReport(r.Deps.resolveReverse(ctx, req.Items))
		reverseDeps = &report
		n := report.Count()
		switch {
		case n >= 5:
			score += 3
			reasons = append(reasons, fmt.Sprintf("%d reverse-dependent package(s)", n))
		case n >= 2:
			score += 2
			reasons = append(reasons, fmt.Sprintf("%d reverse-dependent package(s)", n))
		case n >= 1:
			score += 1
			reasons = append(reasons, fmt.Sprintf("%d reverse-dependent package(s)", n))
		}
	}

	summary.RiskScore = score
	summary.RiskLevel = model.RiskLevelFromScore(score)
	summary.RiskReasons = reasons

	outcome.Summary = summary
	outcome.HeaderChips = model.PreflightHeaderChips{
		PackageCount:  summary.PackageCount,
		AURCount:      summary.AURCount,
		DownloadBytes: summary.DownloadBytes,
		RiskLevel:     summary.RiskLevel,
	}
	outcome.ReverseDepsReport = reverseDeps
	return outcome
}

func buildReverseDependencyReport(deps []model.DependencyInfo) model.ReverseDependencyReport {
	dependents := make([]model.ReverseDependent, 0, len(deps))
	for _, d := range deps {
		dependents = append(dependents, model.ReverseDependent{Name: d.Name, RequiredBy: d.RequiredBy})
	}
	return model.ReverseDependencyReport{Dependents: dependents}
}

// downloadSize resolves the package's sync-db download size for
// Install/Downgrade; for AUR packages with no cached artifact this is 0,
// which is not an error.
func (r *SummaryResolver) downloadSize(ctx context.Context, item model.PackageItem) int64 {
	if item.Source.IsAUR() {
		return 0 // AUR has no sync-db download size; only a post-build artifact
	}
	fields, err := r.Pacman.QueryInfoRemote(ctx, item.Name)
	if err != nil {
		return 0
	}
	return fields.SizeBytes("Download Size")
}

func (r *SummaryResolver) installDeltaSize(ctx context.Context, item model.PackageItem, action model.ActionKind) int64 {
	fields, err := r.Pacman.QueryInfoRemote(ctx, item.Name)
	if err != nil || len(fields) == 0 {
		return 0
	}
	size := fields.SizeBytes("Installed Size")
	if action == model.ActionRemove {
		return -size
	}
	return size
}

// majorVersionBump reports whether the new version's leading numeric
// component differs from the installed version's, a crude but
// deterministic proxy for "a major release".
func majorVersionBump(installed, target string) bool {
	return firstComponent(installed) != "" && firstComponent(installed) != firstComponent(target)
}

func isDowngrade(installed, target string) bool {
	return installed != "" && target != "" && target < installed
}

func firstComponent(version string) string {
	v, _, _ := strings.Cut(version, ".")
	v, _, _ = strings.Cut(v, "-")
	return v
}
