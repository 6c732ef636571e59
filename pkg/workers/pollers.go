package workers

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/newsfeed"
	"github.com/pacsea/pacsea/pkg/pacman"
)

// StatusPoller is the status half of C10: periodically reports free disk
// space on "/". It does not count pending pacman updates; PendingUpdates
// in each StatusUpdate stays zero.
type StatusPoller struct {
	Pacman   *pacman.Client
	Interval time.Duration
}

// Run emits one StatusUpdate every Interval until ctx is cancelled.
func (p *StatusPoller) Run(ctx context.Context, fab *channels.Fabric) {
	interval := p.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fab.StatusUpdates <- p.poll(ctx)
		}
	}
}

func (p *StatusPoller) poll(ctx context.Context) channels.StatusUpdate {
	var update channels.StatusUpdate

	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		update.FreeDiskBytes = usage.Free
	}

	return update
}

// NewsPoller is the news half of C10: periodically fetches and extracts
// the Arch news feed.
type NewsPoller struct {
	News     *newsfeed.Client
	Interval time.Duration
}

// Run emits one NewsBatch every Interval until ctx is cancelled. Fetch
// failures are reported as network errors, not silent drops, and do not
// stop the poller.
func (p *NewsPoller) Run(ctx context.Context, fab *channels.Fabric) {
	interval := p.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			items, err := p.News.FetchItems(ctx)
			if err != nil {
				fab.NetworkErrors <- channels.NetworkError{Source: "news", Message: err.Error()}
				continue
			}
			fab.NewsUpdates <- channels.NewsBatch{Items: items}
		}
	}
}

// TickPoller is the UI-tick half of C10: a steady beacon the mediator
// uses to drive its periodic self-service (cache flush, stage re-send,
// timer expiry) without needing a dedicated timer per concern.
type TickPoller struct {
	Interval time.Duration
}

// Run emits one Tick every Interval until ctx is cancelled.
func (p *TickPoller) Run(ctx context.Context, fab *channels.Fabric) {
	interval := p.Interval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case fab.Ticks <- channels.Tick{}:
			default:
				// A tick is already queued; skip rather than block, the
				// tick handler only needs "at least one more" to fire.
			}
		}
	}
}
