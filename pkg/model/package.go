// Package model defines the data entities shared by Pacsea's workers,
// caches, and UI mediator: packages, search results, news items, and the
// five preflight-resolver payloads. Types here are plain data — no method
// reaches into I/O or UI state.
package model

import "strings"

// SourceKind distinguishes where a package originates.
type SourceKind int

const (
	// SourceOfficial marks a package from one of the binary repositories
	// (core, extra, multilib, ...).
	SourceOfficial SourceKind = iota
	// SourceAUR marks a package from the Arch User Repository.
	SourceAUR
)

func (k SourceKind) String() string {
	if k == SourceAUR {
		return "aur"
	}
	return "official"
}

// Source is a tagged variant: Official carries a repo/arch pair, AUR
// carries nothing extra. Kind discriminates which fields are meaningful.
type Source struct {
	Kind SourceKind
	Repo string // set when Kind == SourceOfficial, e.g. "core", "extra"
	Arch string // set when Kind == SourceOfficial, e.g. "x86_64"
}

// Official constructs an Official source variant.
func Official(repo, arch string) Source {
	return Source{Kind: SourceOfficial, Repo: repo, Arch: arch}
}

// Aur constructs an AUR source variant.
func Aur() Source {
	return Source{Kind: SourceAUR}
}

func (s Source) IsAUR() bool {
	return s.Kind == SourceAUR
}

// PackageItem is the minimal record shown in the search results list.
type PackageItem struct {
	Name        string
	Version     string
	Description string
	Source      Source
	Popularity  *float64 // AUR only; nil for official packages
	OutOfDate   *bool    // AUR only; nil when unknown
	Orphaned    bool
}

// Key returns the case-insensitive identity used for dedup and cache
// lookups. Package names on Arch are case-sensitive in pacman/AUR, but
// Pacsea's own dedup rules for adding to the install list are explicitly
// case-insensitive, so this helper exists to make that one deliberate
// exception visible at the call site.
func (p PackageItem) Key() string {
	return strings.ToLower(p.Name)
}

// PackageDetails is the superset of PackageItem returned by the details
// worker.
type PackageDetails struct {
	PackageItem

	Licenses     []string
	Groups       []string
	Provides     []string
	Depends      []string
	OptDepends   []string
	RequiredBy   []string
	Conflicts    []string
	Replaces     []string
	DownloadSize int64
	InstallSize  int64
	Owner        string // AUR maintainer or official packager
	BuildDate    string
}

// MergeInto copies the richer fields of d back onto item when they refer
// to the same package. Used by the details-update handler so that a list
// row reflects enrichment without replacing the whole item.
func (d PackageDetails) MergeInto(item *PackageItem) {
	if item.Name != d.Name {
		return
	}
	item.Description = d.Description
	item.Version = d.Version
	item.Popularity = d.Popularity
	item.Source = d.Source
}
