package workers

import (
	"context"

	"github.com/pacsea/pacsea/pkg/aurclient"
	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

// DetailsWorker is C4: per-package metadata fetch. The in-memory details
// cache lives on AppState, not here; this worker only fetches.
type DetailsWorker struct {
	Pacman *pacman.Client
	AUR    *aurclient.Client
}

// Run drains fab.DetailsRequests until ctx is cancelled. On fetch
// failure it emits a NetworkError and no details response, per the
// details resolver's error contract.
func (w *DetailsWorker) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case item := <-fab.DetailsRequests:
			w.handle(ctx, fab, item)
		}
	}
}

func (w *DetailsWorker) handle(ctx context.Context, fab *channels.Fabric, item model.PackageItem) {
	if item.Source.IsAUR() {
		info, found, err := w.AUR.Info(ctx, item.Name)
		if err != nil || !found {
			fab.NetworkErrors <- channels.NetworkError{Source: "details", Message: errOrNotFound(err, item.Name)}
			return
		}
		fab.DetailsResults <- aurInfoToDetails(info)
		return
	}

	details, err := w.Pacman.FetchDetails(ctx, item.Name)
	if err != nil {
		fab.NetworkErrors <- channels.NetworkError{Source: "details", Message: err.Error()}
		return
	}
	fab.DetailsResults <- details
}

func errOrNotFound(err error, name string) string {
	if err != nil {
		return err.Error()
	}
	return "aur: package not found: " + name
}

func aurInfoToDetails(info aurclient.Info) model.PackageDetails {
	item := aurInfoToItem(info)
	return model.PackageDetails{
		PackageItem: item,
		Licenses:    info.License,
		Depends:     info.Depends,
		OptDepends:  info.OptDepends,
		Conflicts:   info.Conflicts,
		Replaces:    info.Replaces,
		Provides:    info.Provides,
	}
}
