package workers

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
)

// PostSummary is C9: builds a post-operation report after the executor
// has handed a plan off to a terminal. This runs on its own goroutine
// pool (one goroutine per request, bounded by the request rate, since
// post-operation reports only fire once per user-confirmed plan) because
// it does blocking disk-usage and file-stat work the mediator must never
// do inline.
type PostSummary struct{}

// Run drains fab.PostSummaryRequests until ctx is cancelled, spawning one
// goroutine per request so a slow disk-usage syscall on one report never
// delays another.
func (p *PostSummary) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-fab.PostSummaryRequests:
			go p.handle(req, fab)
		}
	}
}

func (p *PostSummary) handle(req channels.PostSummaryRequest, fab *channels.Fabric) {
	report := BuildPostSummaryReport(req.Plan)

	usage, err := disk.Usage("/")
	if err == nil {
		report.Lines = append(report.Lines,
			fmt.Sprintf("%.1f GiB free on /", float64(usage.Free)/(1024*1024*1024)))
	}

	fab.PostSummaryResults <- report
}

// BuildPostSummaryReport assembles the plain-text lines of a post-
// operation report for a plan, independent of disk-usage I/O so it is
// testable without gopsutil touching the real filesystem.
func BuildPostSummaryReport(plan model.Plan) channels.PostSummaryReport {
	lines := make([]string, 0, len(plan.Items)+1)
	verb := map[model.ActionKind]string{
		model.ActionInstall:   "installed",
		model.ActionRemove:    "removed",
		model.ActionDowngrade: "downgraded",
	}[plan.Action]

	lines = append(lines, fmt.Sprintf("%d package(s) %s", len(plan.Items), verb))
	for _, it := range plan.Items {
		lines = append(lines, fmt.Sprintf("  %s %s", it.Name, it.Version))
	}

	return channels.PostSummaryReport{PackageCount: len(plan.Items), Lines: lines}
}
