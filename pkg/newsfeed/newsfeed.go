// Package newsfeed fetches the Arch Linux news RSS feed and extracts a
// minimal set of model.NewsItem entries from it. Security-advisory
// classification and per-package tagging are intentionally shallow: this
// is a best-effort feed reader, not an advisory database.
package newsfeed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pacsea/pacsea/pkg/model"
)

const defaultFeedURL = "https://archlinux.org/feeds/news/"

// Client fetches and parses the Arch news feed.
type Client struct {
	FeedURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewClient returns a Client pointed at the real Arch news feed.
func NewClient() *Client {
	return &Client{FeedURL: defaultFeedURL, Timeout: 8 * time.Second}
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	GUID    string `xml:"guid"`
}

// FetchRaw downloads the raw feed body without parsing it, so callers
// that only need to detect "has anything changed" can hash the bytes
// without paying for a full XML decode.
func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := c.FeedURL
	if url == "" {
		url = defaultFeedURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("newsfeed: build request: %w", err)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsfeed: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsfeed: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// FetchItems downloads and parses the feed into NewsItems.
func (c *Client) FetchItems(ctx context.Context) ([]model.NewsItem, error) {
	raw, err := c.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return ExtractItems(raw)
}

// ExtractItems parses raw RSS bytes into model.NewsItem values. Malformed
// XML yields (nil, error); a well-formed-but-empty feed yields an empty,
// non-nil slice and a nil error. Every item is tagged NewsArch; severity/package extraction is not
// attempted since the Arch news feed carries no structured metadata for
// either.
func ExtractItems(raw []byte) ([]model.NewsItem, error) {
	var feed rssFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("newsfeed: parse feed: %w", err)
	}

	items := make([]model.NewsItem, 0, len(feed.Channel.Items))
	for _, it := range feed.Channel.Items {
		id := strings.TrimSpace(it.GUID)
		if id == "" {
			id = strings.TrimSpace(it.Link)
		}
		if id == "" {
			continue
		}

		date, _ := parseDate(it.PubDate)
		items = append(items, model.NewsItem{
			ID:     id,
			Date:   date,
			Title:  strings.TrimSpace(it.Title),
			URL:    strings.TrimSpace(it.Link),
			Source: model.NewsArch,
		})
	}
	return items, nil
}

func parseDate(s string) (time.Time, error) {
	layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC3339}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
