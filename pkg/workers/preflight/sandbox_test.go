package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pacsea/pacsea/pkg/aurclient"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/pacman"
)

func TestSandboxResolver_SkipsOfficialItems(t *testing.T) {
	r := &SandboxResolver{
		AUR:    &aurclient.Client{BaseURL: "http://unused.invalid"},
		Pacman: &pacman.Client{Runner: &flFakeRunner{}},
	}
	out := r.Resolve(context.Background(), []model.PackageItem{{Name: "htop", Source: model.Official("core", "x86_64")}})
	if len(out) != 0 {
		t.Errorf("out = %v, want no entries for an official-only batch", out)
	}
}

func TestSandboxResolver_FallsBackToPKGBUILDWhenSrcinfoFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, ".SRCINFO") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("pkgname=yay\ndepends=('git' 'pacman')\n"))
	}))
	defer srv.Close()

	r := &SandboxResolver{
		AUR:    &aurclient.Client{BaseURL: srv.URL, HTTPClient: srv.Client()},
		Pacman: &pacman.Client{Runner: &flFakeRunner{err: fakeErr{}}},
	}
	out := r.Resolve(context.Background(), []model.PackageItem{{Name: "yay", Source: model.Aur()}})
	if len(out) != 1 {
		t.Fatalf("got %d entries, want 1", len(out))
	}
	if len(out[0].Depends) != 2 {
		t.Errorf("Depends = %+v, want 2 entries parsed from the PKGBUILD fallback", out[0].Depends)
	}
}

func TestSandboxResolver_DoubleFailureStillEmitsOneEntryPerItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := &SandboxResolver{
		AUR:    &aurclient.Client{BaseURL: srv.URL, HTTPClient: srv.Client()},
		Pacman: &pacman.Client{Runner: &flFakeRunner{err: fakeErr{}}},
	}
	items := []model.PackageItem{
		{Name: "aur-one", Source: model.Aur()},
		{Name: "aur-two", Source: model.Aur()},
	}
	out := r.Resolve(context.Background(), items)
	if len(out) != 2 {
		t.Fatalf("got %d entries, want one per AUR item even on double fetch failure", len(out))
	}
	for _, info := range out {
		if info.PackageName == "" {
			t.Error("expected PackageName to still be set on a double-failure entry")
		}
		if len(info.Depends) != 0 {
			t.Errorf("expected no dependency data on double failure, got %v", info.Depends)
		}
	}
}
