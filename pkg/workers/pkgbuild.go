package workers

import (
	"context"

	"github.com/pacsea/pacsea/pkg/aurclient"
	"github.com/pacsea/pacsea/pkg/channels"
)

// PKGBUILDWorker is C5: fetches PKGBUILD/.SRCINFO text on demand for the
// currently selected package. Official packages have no PKGBUILD fetch
// path of their own in this system (their build recipes live in the ABS
// repos Pacsea does not mirror), so only AUR items yield a non-empty
// result; an official selection returns empty text, not an error.
type PKGBUILDWorker struct {
	AUR *aurclient.Client
}

// Run drains fab.PKGBUILDRequests until ctx is cancelled.
func (w *PKGBUILDWorker) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-fab.PKGBUILDRequests:
			w.handle(ctx, fab, req)
		}
	}
}

func (w *PKGBUILDWorker) handle(ctx context.Context, fab *channels.Fabric, req channels.PKGBUILDRequest) {
	if !req.Item.Source.IsAUR() {
		fab.PKGBUILDResults <- channels.PKGBUILDResult{Name: req.Item.Name}
		return
	}

	text, err := w.AUR.FetchPKGBUILD(ctx, req.Item.Name)
	if err != nil {
		fab.NetworkErrors <- channels.NetworkError{Source: "pkgbuild", Message: err.Error()}
		return
	}
	fab.PKGBUILDResults <- channels.PKGBUILDResult{Name: req.Item.Name, Text: text}
}
