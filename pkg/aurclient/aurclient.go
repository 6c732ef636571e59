// Package aurclient talks to the AUR's RPC v5 interface and fetches the
// raw .SRCINFO/PKGBUILD text for a package, grounded on the request/
// response shape AUR's rpc.php actually returns.
package aurclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://aur.archlinux.org"

	// defaultTimeout bounds every AUR request; expiry is surfaced as a
	// network error by the caller, never silent loss.
	defaultTimeout = 8 * time.Second
)

// Info is the subset of AUR RPC v5 package info fields Pacsea needs.
type Info struct {
	Name           string   `json:"Name"`
	Version        string   `json:"Version"`
	Description    string   `json:"Description"`
	Popularity     float64  `json:"Popularity"`
	OutOfDate      *int64   `json:"OutOfDate"`
	Maintainer     *string  `json:"Maintainer"`
	Depends        []string `json:"Depends"`
	MakeDepends    []string `json:"MakeDepends"`
	CheckDepends   []string `json:"CheckDepends"`
	OptDepends     []string `json:"OptDepends"`
	Conflicts      []string `json:"Conflicts"`
	Provides       []string `json:"Provides"`
	Replaces       []string `json:"Replaces"`
	License        []string `json:"License"`
	URL            string   `json:"URL"`
	FirstSubmitted int64    `json:"FirstSubmitted"`
}

type rpcResponse struct {
	Type    string `json:"type"`
	Results []Info `json:"results"`
}

// Client is an AUR RPC v5 + raw-file HTTP client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client pointed at the real AUR endpoints with
// defaultTimeout.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

// Info fetches RPC v5 info for a single package name. Returns (Info{},
// false, nil) when the AUR has no such package — that is not an error,
// it is a legitimate "not found" the caller maps onto its own failure
// handling.
func (c *Client) Info(ctx context.Context, name string) (Info, bool, error) {
	infos, err := c.InfoMulti(ctx, []string{name})
	if err != nil {
		return Info{}, false, err
	}
	if len(infos) == 0 {
		return Info{}, false, nil
	}
	return infos[0], true, nil
}

// InfoMulti fetches RPC v5 info for multiple package names in a single
// request, which is how the AUR API is designed to be used for batches.
func (c *Client) InfoMulti(ctx context.Context, names []string) ([]Info, error) {
	if len(names) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("v", "5")
	q.Set("type", "info")
	for _, n := range names {
		q.Add("arg[]", n)
	}

	endpoint := c.baseURL() + "/rpc/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("aurclient: build request: %w", err)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("aurclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aurclient: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("aurclient: read body: %w", err)
	}

	var parsed rpcResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("aurclient: decode response: %w", err)
	}

	return parsed.Results, nil
}

// Search runs an RPC v5 search query, used to merge AUR hits into the
// search worker's combined result set.
func (c *Client) Search(ctx context.Context, text string) ([]Info, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("v", "5")
	q.Set("type", "search")
	q.Set("arg", text)

	endpoint := c.baseURL() + "/rpc/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("aurclient: build request: %w", err)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("aurclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("aurclient: read body: %w", err)
	}

	var parsed rpcResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("aurclient: decode response: %w", err)
	}
	return parsed.Results, nil
}

// FetchSrcinfo fetches the raw .SRCINFO text for an AUR package from its
// cgit snapshot, the same source `makepkg --printsrcinfo` would read.
func (c *Client) FetchSrcinfo(ctx context.Context, name string) (string, error) {
	return c.fetchRaw(ctx, fmt.Sprintf("/cgit/aur.git/plain/.SRCINFO?h=%s", url.QueryEscape(name)))
}

// FetchPKGBUILD fetches the raw PKGBUILD text for an AUR package,
// used as a fallback when .SRCINFO is unavailable or fails to parse.
func (c *Client) FetchPKGBUILD(ctx context.Context, name string) (string, error) {
	return c.fetchRaw(ctx, fmt.Sprintf("/cgit/aur.git/plain/PKGBUILD?h=%s", url.QueryEscape(name)))
}

func (c *Client) fetchRaw(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+path, nil)
	if err != nil {
		return "", fmt.Errorf("aurclient: build request: %w", err)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("aurclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("aurclient: unexpected status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("aurclient: read body: %w", err)
	}
	return string(body), nil
}

// FetchComments fetches the AUR package page and extracts comment
// bodies. AUR does not expose comments via RPC, only via the HTML
// package page, so this is a minimal best-effort scrape: it looks for
// the "comment-header" anchors and the adjacent article body, tolerating
// markup drift by degrading to an empty slice rather than erroring.
func (c *Client) FetchComments(ctx context.Context, name string) ([]Comment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL()+"/packages/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, fmt.Errorf("aurclient: build request: %w", err)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("aurclient: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("aurclient: read body: %w", err)
	}

	return extractComments(string(body)), nil
}

// Comment is one AUR package-page comment.
type Comment struct {
	Author string
	Date   string
	Body   string
}
