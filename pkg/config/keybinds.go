package config

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Keybinds is a string-to-action map decoded from keybinds.conf. Actions
// are plain names ("add_to_install", "open_preflight", "quit", ...); this
// package only parses the map, it does not wire keys to handlers.
type Keybinds map[string]string

// DefaultKeybinds returns the built-in key-to-action map.
func DefaultKeybinds() Keybinds {
	return Keybinds{
		"enter":  "add_to_install",
		"tab":    "cycle_panel",
		"ctrl+p": "open_preflight",
		"ctrl+c": "quit",
		"esc":    "dismiss_modal",
		"ctrl+d": "remove_selected",
		"/":      "focus_search",
		"ctrl+r": "refresh_details",
	}
}

// LoadKeybinds reads keybinds.conf from the standard config path,
// falling back to DefaultKeybinds() when no file is present. Entries in
// the file are merged on top of the defaults rather than replacing them,
// so a user overriding one key does not lose every other binding.
func LoadKeybinds() (Keybinds, error) {
	for _, p := range searchPaths("keybinds.conf") {
		if _, err := os.Stat(p); err == nil {
			return LoadKeybindsFromFile(p)
		}
	}
	return DefaultKeybinds(), nil
}

// LoadKeybindsFromFile reads keybinds.conf from a specific file path.
func LoadKeybindsFromFile(path string) (Keybinds, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultKeybinds(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadKeybindsFromReader(f)
}

// LoadKeybindsFromReader reads keybinds.conf from an io.Reader.
func LoadKeybindsFromReader(r io.Reader) (Keybinds, error) {
	overrides := make(Keybinds)
	if _, err := toml.NewDecoder(r).Decode(&overrides); err != nil {
		return nil, err
	}

	merged := DefaultKeybinds()
	for key, action := range overrides {
		merged[key] = action
	}
	return merged, nil
}
