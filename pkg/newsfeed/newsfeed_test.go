package newsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pacsea/pacsea/pkg/model"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<item>
<title>Kernel 6.9 requires a manual intervention</title>
<link>https://archlinux.org/news/kernel-6-9/</link>
<guid>https://archlinux.org/news/kernel-6-9/</guid>
<pubDate>Mon, 02 Jan 2024 10:00:00 +0000</pubDate>
</item>
<item>
<title>Old news item without a guid</title>
<link>https://archlinux.org/news/old/</link>
<pubDate>Sun, 01 Jan 2023 08:00:00 +0000</pubDate>
</item>
</channel></rss>`

func TestExtractItems_ParsesAndTagsArch(t *testing.T) {
	items, err := ExtractItems([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Source != model.NewsArch {
		t.Errorf("Source = %v, want NewsArch", items[0].Source)
	}
	if items[0].Title != "Kernel 6.9 requires a manual intervention" {
		t.Errorf("Title = %q", items[0].Title)
	}
	if items[0].Date.Year() != 2024 {
		t.Errorf("Date = %v, want year 2024", items[0].Date)
	}
}

func TestExtractItems_FallsBackToLinkWhenGUIDMissing(t *testing.T) {
	items, err := ExtractItems([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[1].ID != "https://archlinux.org/news/old/" {
		t.Errorf("ID = %q, want the link fallback", items[1].ID)
	}
}

func TestExtractItems_MalformedXMLReturnsError(t *testing.T) {
	_, err := ExtractItems([]byte("not xml at all"))
	if err == nil {
		t.Fatal("expected an error for malformed XML")
	}
}

func TestExtractItems_EmptyFeedYieldsEmptyNotNilError(t *testing.T) {
	items, err := ExtractItems([]byte(`<rss><channel></channel></rss>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
}

func TestFetchItems_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &Client{FeedURL: srv.URL, HTTPClient: srv.Client()}
	_, err := c.FetchItems(context.Background())
	if err == nil {
		t.Fatal("expected an error for a 503 response")
	}
}

func TestFetchItems_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c := &Client{FeedURL: srv.URL, HTTPClient: srv.Client()}
	items, err := c.FetchItems(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}
