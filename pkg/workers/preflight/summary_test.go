package preflight

import (
	"context"
	"testing"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

func TestSummaryResolver_ZeroPackagesYieldsLowRisk(t *testing.T) {
	r := &SummaryResolver{Pacman: &pacman.Client{Runner: &flFakeRunner{err: fakeErr{}}}}
	outcome := r.Resolve(context.Background(), channels.PlanRequest{Action: model.ActionInstall})

	if outcome.Summary.PackageCount != 0 {
		t.Errorf("PackageCount = %d, want 0", outcome.Summary.PackageCount)
	}
	if outcome.Summary.RiskScore != 0 {
		t.Errorf("RiskScore = %d, want 0", outcome.Summary.RiskScore)
	}
	if outcome.Summary.RiskLevel != model.RiskLevelFromScore(0) {
		t.Errorf("RiskLevel = %v, want Low", outcome.Summary.RiskLevel)
	}
}

func TestSummaryResolver_CorePackageAddsScore(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{}}
	r := &SummaryResolver{Pacman: &pacman.Client{Runner: runner}}

	outcome := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "linux", Version: "6.9.1-1"}},
		Action: model.ActionInstall,
	})
	if outcome.Summary.RiskScore < 3 {
		t.Errorf("RiskScore = %d, want at least 3 for a core package", outcome.Summary.RiskScore)
	}
	var foundCoreNote bool
	for _, n := range outcome.Summary.PackageNotes {
		if n.IsCore {
			foundCoreNote = true
		}
	}
	if !foundCoreNote {
		t.Error("expected linux to be flagged IsCore")
	}
}

func TestSummaryResolver_AURPackageAddsScore(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{}}
	r := &SummaryResolver{Pacman: &pacman.Client{Runner: runner}}

	outcome := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "yay-bin", Source: model.Aur()}},
		Action: model.ActionInstall,
	})
	if outcome.Summary.AURCount != 1 {
		t.Errorf("AURCount = %d, want 1", outcome.Summary.AURCount)
	}
	if outcome.Summary.RiskScore < 2 {
		t.Errorf("RiskScore = %d, want at least 2 for an AUR package", outcome.Summary.RiskScore)
	}
}

func TestSummaryResolver_RemoveReverseDependentThresholds(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{
		"-Qi:htop": "Name            : htop\nRequired By     : a  b\n",
	}}
	deps := &DepsResolver{Pacman: &pacman.Client{Runner: runner}}
	r := &SummaryResolver{Pacman: &pacman.Client{Runner: runner}, Deps: deps}

	outcome := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "htop"}},
		Action: model.ActionRemove,
	})
	if outcome.ReverseDepsReport == nil {
		t.Fatal("expected a reverse-dependency report for a Remove plan")
	}
	if outcome.ReverseDepsReport.Count() != 2 {
		t.Errorf("reverse dependent count = %d, want 2", outcome.ReverseDepsReport.Count())
	}
	if outcome.Summary.RiskScore < 2 {
		t.Errorf("RiskScore = %d, want at least 2 for 2 reverse dependents", outcome.Summary.RiskScore)
	}
}

func TestMajorVersionBump(t *testing.T) {
	if !majorVersionBump("1.2.3-1", "2.0.0-1") {
		t.Error("expected a major version bump from 1.x to 2.x")
	}
	if majorVersionBump("1.2.3-1", "1.9.0-1") {
		t.Error("did not expect a major version bump within the same leading component")
	}
}
