package preflight

import (
	"context"
	"testing"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

// scriptedRunner answers pacman.Runner.Run by matching the first
// non-flag argument (the package name) against a canned table, so tests
// can drive multiple distinct -Si/-Qi calls from one fake.
type scriptedRunner struct {
	// byNameAndFlag maps "flag:name" -> stdout.
	byNameAndFlag map[string]string
}

func (s *scriptedRunner) Run(_ context.Context, args ...string) (string, string, error) {
	if len(args) < 2 {
		return "", "", nil
	}
	key := args[0] + ":" + args[1]
	out, ok := s.byNameAndFlag[key]
	if !ok {
		return "", "error: package not found", errNotFound{}
	}
	return out, "", nil
}

type errNotFound struct{}

func (errNotFound) Error() string { return "exit status 1" }

func TestDepsResolver_ForwardResolvesOneLevel(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{
		"-Si:htop":    "Name            : htop\nDepends On      : ncurses  glibc\n",
		"-Qi:ncurses": "Name            : ncurses\nVersion         : 6.4-1\n",
		"-Si:glibc":   "Name            : glibc\nVersion         : 2.39-1\n",
	}}
	r := &DepsResolver{Pacman: &pacman.Client{Runner: runner}}

	deps := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "htop", Source: model.Official("core", "x86_64")}},
		Action: model.ActionInstall,
	})

	byName := map[string]model.DependencyInfo{}
	for _, d := range deps {
		byName[d.Name] = d
	}
	if byName["ncurses"].Status.Kind != model.StatusInstalled {
		t.Errorf("ncurses status = %v, want StatusInstalled", byName["ncurses"].Status.Kind)
	}
	if byName["glibc"].Status.Kind != model.StatusToInstall {
		t.Errorf("glibc status = %v, want StatusToInstall (present in the sync db, absent locally)", byName["glibc"].Status.Kind)
	}
}

func TestDepsResolver_MissingWhenAbsentFromEverySource(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{
		"-Si:htop": "Name            : htop\nDepends On      : phantom-lib\n",
	}}
	r := &DepsResolver{Pacman: &pacman.Client{Runner: runner}}

	deps := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "htop", Source: model.Official("core", "x86_64")}},
		Action: model.ActionInstall,
	})
	if len(deps) != 1 || deps[0].Status.Kind != model.StatusMissing {
		t.Fatalf("deps = %+v, want a single StatusMissing entry", deps)
	}
}

func TestDepsResolver_ToUpgradeWhenInstalledVersionFailsConstraint(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{
		"-Si:htop":   "Name            : htop\nDepends On      : ncurses>=6.5\n",
		"-Qi:ncurses": "Name            : ncurses\nVersion         : 6.4-1\n",
	}}
	r := &DepsResolver{Pacman: &pacman.Client{Runner: runner}}

	deps := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "htop", Source: model.Official("core", "x86_64")}},
		Action: model.ActionInstall,
	})
	if len(deps) != 1 {
		t.Fatalf("deps = %+v, want exactly one entry", deps)
	}
	got := deps[0].Status
	if got.Kind != model.StatusToUpgrade {
		t.Fatalf("Status.Kind = %v, want StatusToUpgrade", got.Kind)
	}
	if got.CurrentVersion != "6.4-1" || got.RequiredVersion != "6.5" {
		t.Errorf("Status = %+v, want current=6.4-1 required=6.5", got)
	}
}

func TestDepsResolver_InstalledWhenConstraintSatisfied(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{
		"-Si:htop":   "Name            : htop\nDepends On      : ncurses>=6.4\n",
		"-Qi:ncurses": "Name            : ncurses\nVersion         : 6.4-1\n",
	}}
	r := &DepsResolver{Pacman: &pacman.Client{Runner: runner}}

	deps := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "htop", Source: model.Official("core", "x86_64")}},
		Action: model.ActionInstall,
	})
	if len(deps) != 1 || deps[0].Status.Kind != model.StatusInstalled {
		t.Fatalf("deps = %+v, want a single StatusInstalled entry", deps)
	}
}

func TestDepsResolver_AURRootSkipsSyncDBLookup(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{}}
	r := &DepsResolver{Pacman: &pacman.Client{Runner: runner}}

	deps := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "yay", Source: model.Aur()}},
		Action: model.ActionInstall,
	})
	if len(deps) != 0 {
		t.Errorf("expected no resolved deps for an AUR-only plan, got %v", deps)
	}
}

func TestDepsResolver_ConflictWithPlanItem(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{
		"-Si:foo": "Name            : foo\nDepends On      : bar\nConflicts With  : bar\n",
		"-Qi:bar": "Name            : bar\nVersion         : 1.0-1\n",
	}}
	r := &DepsResolver{Pacman: &pacman.Client{Runner: runner}}

	deps := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "foo", Source: model.Official("core", "x86_64")}},
		Action: model.ActionInstall,
	})
	if len(deps) != 1 || deps[0].Status.Kind != model.StatusConflict {
		t.Fatalf("deps = %+v, want a single conflicting entry", deps)
	}
}

func TestDepsResolver_ReverseForRemove(t *testing.T) {
	runner := &scriptedRunner{byNameAndFlag: map[string]string{
		"-Qi:htop": "Name            : htop\nRequired By     : monitoring-suite\n",
	}}
	r := &DepsResolver{Pacman: &pacman.Client{Runner: runner}}

	deps := r.Resolve(context.Background(), channels.PlanRequest{
		Items:  []model.PackageItem{{Name: "htop"}},
		Action: model.ActionRemove,
	})
	if len(deps) != 1 || deps[0].Name != "monitoring-suite" {
		t.Fatalf("deps = %+v, want a single reverse dependent", deps)
	}
	if deps[0].Status.Kind != model.StatusConflict {
		t.Errorf("Status.Kind = %v, want StatusConflict", deps[0].Status.Kind)
	}
}

func TestSplitConstraint_PreservesVersionConstraintVerbatim(t *testing.T) {
	name, constraint := splitConstraint("foo>=1.2")
	if name != "foo" {
		t.Errorf("name = %q, want foo", name)
	}
	if constraint != "foo>=1.2" {
		t.Errorf("constraint = %q, want the verbatim token", constraint)
	}
}

func TestSplitConstraint_NoConstraint(t *testing.T) {
	name, constraint := splitConstraint("glibc")
	if name != "glibc" || constraint != "glibc" {
		t.Errorf("got (%q, %q)", name, constraint)
	}
}
