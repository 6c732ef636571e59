package preflight

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

// ServicesResolver is C7.3: detects systemd units shipped or owned by
// the affected packages, whether they are active, and whether the
// operation would need a restart.
type ServicesResolver struct {
	Pacman *pacman.Client

	// isActive is swappable for tests; the production value shells out
	// to `systemctl is-active`.
	isActive func(ctx context.Context, unit string) bool
}

func (r *ServicesResolver) active(ctx context.Context, unit string) bool {
	if r.isActive != nil {
		return r.isActive(ctx, unit)
	}
	out, err := exec.CommandContext(ctx, "systemctl", "is-active", unit).Output()
	return err == nil && strings.TrimSpace(string(out)) == "active"
}

// Run drains fab.ServicesRequests until ctx is cancelled.
func (r *ServicesResolver) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-fab.ServicesRequests:
			fab.ServicesResults <- r.Resolve(ctx, req)
		}
	}
}

// Resolve finds every systemd unit owned by the plan's packages and
// reports its current/predicted state.
func (r *ServicesResolver) Resolve(ctx context.Context, req channels.PlanRequest) []model.ServiceImpact {
	byUnit := make(map[string]*model.ServiceImpact)
	order := make([]string, 0)

	for _, item := range req.Items {
		var paths []string
		var err error
		if req.Action == model.ActionRemove {
			paths, err = r.Pacman.ListOwnedFiles(ctx, item.Name)
		} else {
			paths, err = r.Pacman.QueryFileOwner(ctx, item.Name)
		}
		if err != nil {
			continue
		}

		for _, path := range paths {
			unit, ok := unitNameFromPath(path)
			if !ok {
				continue
			}
			impact, exists := byUnit[unit]
			if !exists {
				impact = &model.ServiceImpact{UnitName: unit}
				byUnit[unit] = impact
				order = append(order, unit)
			}
			impact.Providers = appendUnique(impact.Providers, item.Name)
		}
	}

	out := make([]model.ServiceImpact, 0, len(order))
	for _, unit := range order {
		impact := byUnit[unit]
		impact.IsActive = r.active(ctx, unit)
		impact.NeedsRestart = impact.IsActive && req.Action != model.ActionRemove
		if req.Action == model.ActionRemove {
			impact.NeedsRestart = impact.IsActive
		}
		impact.RecommendedDecision = model.DecisionDefer
		if impact.NeedsRestart {
			impact.RecommendedDecision = model.DecisionRestart
		}
		impact.RestartDecision = impact.RecommendedDecision
		out = append(out, *impact)
	}
	return out
}

// unitNameFromPath extracts a systemd unit name from a file path owned
// by a package, recognizing the conventional systemd unit-file
// locations.
func unitNameFromPath(path string) (string, bool) {
	for _, dir := range []string{"/usr/lib/systemd/system/", "/etc/systemd/system/", "/usr/lib/systemd/user/"} {
		if strings.HasPrefix(path, dir) {
			rest := strings.TrimPrefix(path, dir)
			if strings.HasSuffix(rest, ".service") && !strings.Contains(rest, "/") {
				return rest, true
			}
		}
	}
	return "", false
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
