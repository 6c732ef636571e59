// Package workers hosts the long-lived background goroutines (C3-C6,
// C8-C10) that the mediator talks to exclusively through pkg/channels.
// Every worker here owns its upstream I/O and never touches UI state: it
// reads one request, does the work, and emits at most one response. Some
// failures are reported on NetworkErrors instead of a response, and
// CommentsWorker drops requests for official packages without replying.
package workers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pacsea/pacsea/pkg/aurclient"
	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/index"
	"github.com/pacsea/pacsea/pkg/model"
)

// SearchWorker is C3: debounced query in, merged official+AUR result set
// out. At most one response per request; an empty query yields an empty
// result immediately without touching the network.
type SearchWorker struct {
	Index *index.Index
	AUR   *aurclient.Client
}

// Run drains fab.SearchRequests until ctx is cancelled, emitting one
// SearchResults per request on fab.SearchResults.
func (w *SearchWorker) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case q := <-fab.SearchRequests:
			res := w.handle(ctx, q)
			select {
			case fab.SearchResults <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *SearchWorker) handle(ctx context.Context, q model.QueryInput) model.SearchResults {
	if strings.TrimSpace(q.Text) == "" {
		return model.SearchResults{ID: q.ID}
	}

	var official []model.PackageItem
	var aurItems []model.PackageItem
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		official = w.Index.Search(q.Text)
	}()
	go func() {
		defer wg.Done()
		if w.AUR == nil {
			return
		}
		hits, err := w.AUR.Search(ctx, q.Text)
		if err != nil {
			return
		}
		aurItems = make([]model.PackageItem, 0, len(hits))
		for _, h := range hits {
			aurItems = append(aurItems, aurInfoToItem(h))
		}
	}()
	wg.Wait()

	merged := mergeResults(official, aurItems)
	return model.SearchResults{ID: q.ID, Items: merged}
}

// mergeResults dedupes official and AUR hits by case-insensitive name,
// preferring the richer (official) entry when both sources return the
// same name — an official package always shadows an AUR package with an
// identical name since the official repos take priority at install time.
func mergeResults(official, aur []model.PackageItem) []model.PackageItem {
	byName := make(map[string]model.PackageItem, len(official)+len(aur))
	order := make([]string, 0, len(official)+len(aur))

	for _, it := range official {
		if _, ok := byName[it.Key()]; !ok {
			order = append(order, it.Key())
		}
		byName[it.Key()] = it
	}
	for _, it := range aur {
		if _, ok := byName[it.Key()]; ok {
			continue // official entry already present; AUR does not shadow it
		}
		byName[it.Key()] = it
		order = append(order, it.Key())
	}

	sort.Strings(order)
	out := make([]model.PackageItem, 0, len(order))
	for _, k := range order {
		out = append(out, byName[k])
	}
	return out
}

func aurInfoToItem(h aurclient.Info) model.PackageItem {
	var outOfDate *bool
	if h.OutOfDate != nil {
		v := *h.OutOfDate != 0
		outOfDate = &v
	}
	pop := h.Popularity
	return model.PackageItem{
		Name:        h.Name,
		Version:     h.Version,
		Description: h.Description,
		Source:      model.Aur(),
		Popularity:  &pop,
		OutOfDate:   outOfDate,
	}
}
