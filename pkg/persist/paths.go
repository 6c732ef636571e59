// Package persist implements Pacsea's on-disk persistence discipline: the
// debounced dirty-flag flush model, signature-keyed cache invalidation,
// and the bounded PKGBUILD LRU cache.
//
// Every write in this package uses a temp-file-then-rename idiom (see
// SaveJSON in store.go) so a crash mid-write never leaves a corrupted
// cache file behind.
package persist

import (
	"os"
	"path/filepath"
)

// Layout resolves every path in Pacsea's config-directory layout.
type Layout struct {
	ConfigDir string // e.g. ~/.config/pacsea
	listsDir  string // ConfigDir/lists
}

// NewLayout builds a Layout rooted at the platform config directory,
// honoring $XDG_CONFIG_HOME with a fallback to ~/.config.
func NewLayout() (Layout, error) {
	root, err := configRoot()
	if err != nil {
		return Layout{}, err
	}
	return Layout{ConfigDir: root, listsDir: filepath.Join(root, "lists")}, nil
}

func configRoot() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pacsea"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pacsea"), nil
}

// EnsureDirs creates the config directory and its lists/ subdirectory.
func (l Layout) EnsureDirs() error {
	if err := os.MkdirAll(l.listsDir, 0o755); err != nil {
		return err
	}
	return nil
}

func (l Layout) SettingsConf() string        { return filepath.Join(l.ConfigDir, "settings.conf") }
func (l Layout) ThemeConf() string           { return filepath.Join(l.ConfigDir, "theme.conf") }
func (l Layout) KeybindsConf() string        { return filepath.Join(l.ConfigDir, "keybinds.conf") }
func (l Layout) InstallList() string         { return filepath.Join(l.ConfigDir, "install_list.json") }
func (l Layout) RecentSearches() string      { return filepath.Join(l.ConfigDir, "recent_searches.txt") }
func (l Layout) NewsRead() string            { return filepath.Join(l.ConfigDir, "news_read.json") }
func (l Layout) NewsReadIDs() string         { return filepath.Join(l.ConfigDir, "news_read_ids.json") }
func (l Layout) Index() string               { return filepath.Join(l.listsDir, "index.json") }
func (l Layout) DetailsCache() string        { return filepath.Join(l.listsDir, "details_cache.json") }
func (l Layout) DepsCache() string           { return filepath.Join(l.listsDir, "deps_cache.json") }
func (l Layout) FilesCache() string          { return filepath.Join(l.listsDir, "files_cache.json") }
func (l Layout) ServicesCache() string       { return filepath.Join(l.listsDir, "services_cache.json") }
func (l Layout) SandboxCache() string        { return filepath.Join(l.listsDir, "sandbox_cache.json") }
func (l Layout) PKGBUILDCache() string       { return filepath.Join(l.listsDir, "pkgbuild_cache.json") }
