package persist

import (
	"path/filepath"
	"testing"
	"time"
)

type sandboxPayload struct {
	Name string `json:"name"`
}

func TestSignedCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox_cache.json")
	sig := ComputeSignature([]string{"yay"})

	if err := SaveSignedCache(path, sig, []sandboxPayload{{Name: "yay"}}); err != nil {
		t.Fatalf("SaveSignedCache: %v", err)
	}

	got, ok := LoadSignedCache[[]sandboxPayload](path, sig)
	if !ok {
		t.Fatal("expected cache hit for matching signature")
	}
	if len(got) != 1 || got[0].Name != "yay" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestSignedCacheMismatchedSignatureMisses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox_cache.json")
	sigA := ComputeSignature([]string{"yay"})
	sigB := ComputeSignature([]string{"paru"})

	if err := SaveSignedCache(path, sigA, []sandboxPayload{{Name: "yay"}}); err != nil {
		t.Fatalf("SaveSignedCache: %v", err)
	}

	if _, ok := LoadSignedCache[[]sandboxPayload](path, sigB); ok {
		t.Fatal("expected cache miss for a different signature")
	}
}

func TestComputeSignatureIsOrderIndependent(t *testing.T) {
	a := ComputeSignature([]string{"c", "a", "b"})
	b := ComputeSignature([]string{"a", "b", "c"})
	if !a.Equal(b) {
		t.Fatalf("signatures should match regardless of input order: %v vs %v", a, b)
	}
}

func TestDirtyMarkAndFlushDebounce(t *testing.T) {
	d := NewDirty(0)
	if d.IsDirty() {
		t.Fatal("new Dirty should start clean")
	}
	d.Mark()
	if !d.IsDirty() {
		t.Fatal("Mark must set dirty immediately")
	}
	if !d.ShouldFlush(time.Now()) {
		t.Fatal("a zero debounce should make a dirty entity flushable immediately")
	}
	d.Clear()
	if d.IsDirty() {
		t.Fatal("Clear must reset dirty")
	}
	if d.ShouldFlush(time.Now()) {
		t.Fatal("a clean entity must not be flushable")
	}
}
