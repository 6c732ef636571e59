package workers

import (
	"context"

	"github.com/pacsea/pacsea/pkg/aurclient"
	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
)

// CommentsWorker is C6: fetches AUR comments for a package. Official
// packages have no comments surface; the request is simply dropped (no
// response emitted) rather than returning a confusing empty payload for
// a concept that does not apply.
type CommentsWorker struct {
	AUR *aurclient.Client
}

// Run drains fab.CommentsRequests until ctx is cancelled.
func (w *CommentsWorker) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case item := <-fab.CommentsRequests:
			w.handle(ctx, fab, item)
		}
	}
}

func (w *CommentsWorker) handle(ctx context.Context, fab *channels.Fabric, item model.PackageItem) {
	if !item.Source.IsAUR() {
		return
	}

	comments, err := w.AUR.FetchComments(ctx, item.Name)
	if err != nil {
		fab.NetworkErrors <- channels.NetworkError{Source: "comments", Message: err.Error()}
		return
	}

	out := make([]channels.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, channels.Comment{Author: c.Author, Date: c.Date, Body: c.Body})
	}
	fab.CommentsResults <- channels.CommentsResult{Name: item.Name, Comments: out}
}
