package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LoadSettings reads settings.conf from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/pacsea/settings.conf
//  2. ~/.config/pacsea/settings.conf
//
// If no file exists, returns DefaultSettings().
func LoadSettings() (*Settings, error) {
	for _, p := range searchPaths("settings.conf") {
		if _, err := os.Stat(p); err == nil {
			return LoadSettingsFromFile(p)
		}
	}
	return DefaultSettings(), nil
}

// LoadSettingsFromFile reads settings.conf from a specific file path.
func LoadSettingsFromFile(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadSettingsFromReader(f)
}

// LoadSettingsFromReader reads settings.conf from an io.Reader. Fields
// absent from the document keep their default value.
func LoadSettingsFromReader(r io.Reader) (*Settings, error) {
	cfg := DefaultSettings()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets a handful of environment variables win over both
// the file and the defaults, matching the precedence used throughout the
// rest of persistence: explicit user intent beats stored state.
func applyEnvOverrides(cfg *Settings) {
	if v := os.Getenv("PACSEA_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	if os.Getenv("PACSEA_DRY_RUN") == "1" {
		cfg.General.DryRun = true
	}
	if v := os.Getenv("PACSEA_CACHE_DIR"); v != "" {
		cfg.General.CacheDir = v
	}
}

// searchPaths returns the ordered list of candidate paths for a named
// config file, honoring $XDG_CONFIG_HOME with a ~/.config fallback.
func searchPaths(filename string) []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "pacsea", filename))

	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "pacsea", filename))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
