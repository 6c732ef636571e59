package workers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pacsea/pacsea/pkg/aurclient"
	"github.com/pacsea/pacsea/pkg/index"
	"github.com/pacsea/pacsea/pkg/model"
)

func TestSearchWorker_EmptyQuerySkipsNetwork(t *testing.T) {
	idx := index.New()
	w := &SearchWorker{Index: idx, AUR: &aurclient.Client{BaseURL: "http://unused.invalid"}}

	res := w.handle(context.Background(), model.QueryInput{ID: 7, Text: "   "})
	if res.ID != 7 {
		t.Errorf("ID = %d, want 7", res.ID)
	}
	if len(res.Items) != 0 {
		t.Errorf("expected no items for a blank query, got %v", res.Items)
	}
}

func TestSearchWorker_MergesOfficialAndAURPreferringOfficial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"search","results":[
			{"Name":"htop","Version":"1.0.0-1aur"},
			{"Name":"bashtop","Version":"1.2.0-1"}
		]}`))
	}))
	defer srv.Close()

	idx := index.New()
	idx.Store([]model.PackageItem{{Name: "htop", Version: "3.3.0-1", Description: "process viewer"}})

	w := &SearchWorker{Index: idx, AUR: &aurclient.Client{BaseURL: srv.URL, HTTPClient: srv.Client()}}
	res := w.handle(context.Background(), model.QueryInput{ID: 1, Text: "top"})

	if len(res.Items) != 2 {
		t.Fatalf("got %d items, want 2 (deduped htop + bashtop): %+v", len(res.Items), res.Items)
	}

	var htop model.PackageItem
	for _, it := range res.Items {
		if it.Name == "htop" {
			htop = it
		}
	}
	if htop.Version != "3.3.0-1" {
		t.Errorf("htop.Version = %q, want the official entry's version (3.3.0-1), official must shadow AUR", htop.Version)
	}
	if htop.Source.IsAUR() {
		t.Error("merged htop entry should not be flagged as AUR")
	}
}

func TestSearchWorker_AURFailureStillReturnsOfficialResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	idx := index.New()
	idx.Store([]model.PackageItem{{Name: "htop"}})

	w := &SearchWorker{Index: idx, AUR: &aurclient.Client{BaseURL: srv.URL, HTTPClient: srv.Client()}}
	res := w.handle(context.Background(), model.QueryInput{ID: 2, Text: "htop"})

	if len(res.Items) != 1 || res.Items[0].Name != "htop" {
		t.Errorf("expected the official result to survive an AUR failure, got %+v", res.Items)
	}
}

func TestMergeResults_SortedByName(t *testing.T) {
	merged := mergeResults(
		[]model.PackageItem{{Name: "zlib"}, {Name: "abc"}},
		nil,
	)
	if len(merged) != 2 || merged[0].Name != "abc" || merged[1].Name != "zlib" {
		t.Errorf("merged = %+v, want alphabetical order", merged)
	}
}
