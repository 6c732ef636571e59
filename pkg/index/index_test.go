package index

import (
	"testing"

	"github.com/pacsea/pacsea/pkg/model"
)

func TestNew_EmptyIndexIsUsable(t *testing.T) {
	idx := New()
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	if _, ok := idx.Lookup("htop"); ok {
		t.Error("Lookup on empty index found something")
	}
	if got := idx.Search("htop"); got != nil {
		t.Errorf("Search on empty index = %v, want nil", got)
	}
}

func TestStore_ReplacesSnapshotAtomically(t *testing.T) {
	idx := New()
	idx.Store([]model.PackageItem{{Name: "htop", Description: "process viewer"}})
	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}

	idx.Store([]model.PackageItem{
		{Name: "htop", Description: "process viewer"},
		{Name: "neovim", Description: "text editor"},
	})
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	idx := New()
	idx.Store([]model.PackageItem{{Name: "HTop", Description: "process viewer"}})

	item, ok := idx.Lookup("htop")
	if !ok {
		t.Fatal("expected Lookup to find the package case-insensitively")
	}
	if item.Name != "HTop" {
		t.Errorf("Name = %q, want HTop", item.Name)
	}
}

func TestSearch_MatchesNameOrDescriptionCaseInsensitively(t *testing.T) {
	idx := New()
	idx.Store([]model.PackageItem{
		{Name: "htop", Description: "interactive process viewer"},
		{Name: "neovim", Description: "vim-based text editor"},
		{Name: "vim", Description: "classic text editor"},
	})

	byName := idx.Search("HTOP")
	if len(byName) != 1 || byName[0].Name != "htop" {
		t.Errorf("Search(HTOP) = %v", byName)
	}

	byDescription := idx.Search("editor")
	if len(byDescription) != 2 {
		t.Errorf("Search(editor) = %v, want 2 matches", byDescription)
	}
}

func TestSearch_EmptyTextReturnsNil(t *testing.T) {
	idx := New()
	idx.Store([]model.PackageItem{{Name: "htop"}})
	if got := idx.Search(""); got != nil {
		t.Errorf("Search(\"\") = %v, want nil", got)
	}
}
