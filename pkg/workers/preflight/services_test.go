package preflight

import (
	"context"
	"testing"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

type svcFakeRunner struct {
	stdout string
}

func (f *svcFakeRunner) Run(_ context.Context, _ ...string) (string, string, error) {
	return f.stdout, "", nil
}

func TestServicesResolver_DetectsUnitFromInstallPaths(t *testing.T) {
	runner := &svcFakeRunner{stdout: "pkg /usr/lib/systemd/system/pkg.service\npkg /usr/bin/pkg\n"}
	r := &ServicesResolver{
		Pacman:   &pacman.Client{Runner: runner},
		isActive: func(ctx context.Context, unit string) bool { return unit == "pkg.service" },
	}

	out := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "pkg"}},
		Action: model.ActionInstall,
	})
	if len(out) != 1 || out[0].UnitName != "pkg.service" {
		t.Fatalf("out = %+v, want a single pkg.service entry", out)
	}
	if !out[0].IsActive {
		t.Error("expected IsActive=true")
	}
	if !out[0].NeedsRestart {
		t.Error("expected NeedsRestart=true for an active unit on install")
	}
	if out[0].RestartDecision != out[0].RecommendedDecision {
		t.Error("RestartDecision should default to RecommendedDecision")
	}
}

func TestServicesResolver_InactiveUnitNeedsNoRestart(t *testing.T) {
	runner := &svcFakeRunner{stdout: "pkg /usr/lib/systemd/system/pkg.service\n"}
	r := &ServicesResolver{
		Pacman:   &pacman.Client{Runner: runner},
		isActive: func(ctx context.Context, unit string) bool { return false },
	}

	out := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "pkg"}},
		Action: model.ActionInstall,
	})
	if out[0].NeedsRestart {
		t.Error("an inactive unit should never need a restart")
	}
	if out[0].RecommendedDecision != model.DecisionDefer {
		t.Errorf("RecommendedDecision = %v, want DecisionDefer", out[0].RecommendedDecision)
	}
}

func TestServicesResolver_IgnoresNonUnitPaths(t *testing.T) {
	runner := &svcFakeRunner{stdout: "pkg /usr/bin/pkg\npkg /usr/share/doc/pkg/README\n"}
	r := &ServicesResolver{Pacman: &pacman.Client{Runner: runner}}

	out := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "pkg"}},
		Action: model.ActionInstall,
	})
	if len(out) != 0 {
		t.Errorf("out = %+v, want no units detected", out)
	}
}

func TestUnitNameFromPath(t *testing.T) {
	cases := []struct {
		path    string
		want    string
		wantOK bool
	}{
		{"/usr/lib/systemd/system/dbus.service", "dbus.service", true},
		{"/etc/systemd/system/custom.service", "custom.service", true},
		{"/usr/lib/systemd/user/pipewire.service", "pipewire.service", true},
		{"/usr/bin/dbus", "", false},
		{"/usr/lib/systemd/system/nested/dbus.service", "", false},
	}
	for _, tc := range cases {
		got, ok := unitNameFromPath(tc.path)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("unitNameFromPath(%q) = (%q, %v), want (%q, %v)", tc.path, got, ok, tc.want, tc.wantOK)
		}
	}
}
