// Package index holds the process-wide, read-mostly snapshot of the
// official package repositories that every worker consults to avoid
// re-querying pacman for data that rarely changes within a single
// session. Workers never mutate the snapshot; they take an immutable
// copy of the slice reference and read through it.
package index

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pacsea/pacsea/pkg/model"
)

// Index is a process-wide snapshot of the official package list. The
// zero value is usable and empty; Store atomically replaces the
// snapshot so concurrent readers never observe a torn update.
type Index struct {
	snapshot atomic.Pointer[snapshotData]
	buildMu  sync.Mutex
}

type snapshotData struct {
	items   []model.PackageItem
	byName  map[string]model.PackageItem
}

// New returns an empty Index ready to be populated with Store.
func New() *Index {
	idx := &Index{}
	idx.snapshot.Store(&snapshotData{byName: map[string]model.PackageItem{}})
	return idx
}

// Store atomically replaces the snapshot. Safe to call concurrently with
// any number of readers; the prior snapshot remains valid for any reader
// still holding it.
func (idx *Index) Store(items []model.PackageItem) {
	byName := make(map[string]model.PackageItem, len(items))
	for _, it := range items {
		byName[it.Key()] = it
	}
	idx.snapshot.Store(&snapshotData{items: items, byName: byName})
}

// All returns the current snapshot's items. The returned slice must be
// treated as immutable by the caller.
func (idx *Index) All() []model.PackageItem {
	return idx.snapshot.Load().items
}

// Lookup returns the indexed item for name (case-insensitive), if any.
func (idx *Index) Lookup(name string) (model.PackageItem, bool) {
	data := idx.snapshot.Load()
	item, ok := data.byName[model.PackageItem{Name: name}.Key()]
	return item, ok
}

// Len reports the number of packages in the current snapshot.
func (idx *Index) Len() int {
	return len(idx.snapshot.Load().items)
}

// Search returns every indexed item whose name or description contains
// text, case-insensitively. This is the official-repository half of the
// search worker's merge; it is a linear scan because the index only
// holds on the order of tens of thousands of entries and search requests
// are already debounced to one in flight at a time.
func (idx *Index) Search(text string) []model.PackageItem {
	if text == "" {
		return nil
	}
	data := idx.snapshot.Load()
	lower := strings.ToLower(text)

	var out []model.PackageItem
	for _, it := range data.items {
		if strings.Contains(strings.ToLower(it.Name), lower) ||
			strings.Contains(strings.ToLower(it.Description), lower) {
			out = append(out, it)
		}
	}
	return out
}
