// Package termspawn detects an available terminal emulator and builds the
// argv needed to have it run a shell command in a new window, so the
// executor worker can hand off long-running pacman/AUR build output to a
// visible terminal instead of capturing it silently.
package termspawn

import (
	"os"
	"os/exec"
)

// Emulator identifies a terminal emulator binary found on PATH.
type Emulator int

const (
	EmulatorNone Emulator = iota
	EmulatorTilix
	EmulatorMateTerminal
	EmulatorGNOMETerminal
	EmulatorAlacritty
	EmulatorKonsole
	EmulatorXterm
	EmulatorKitty
	EmulatorXfce4Terminal
)

var emulatorBinaries = [...]string{
	EmulatorTilix:         "tilix",
	EmulatorMateTerminal:  "mate-terminal",
	EmulatorGNOMETerminal: "gnome-terminal",
	EmulatorAlacritty:     "alacritty",
	EmulatorKonsole:       "konsole",
	EmulatorXterm:         "xterm",
	EmulatorKitty:         "kitty",
	EmulatorXfce4Terminal: "xfce4-terminal",
}

// String returns the emulator's binary name, or "" for EmulatorNone.
func (e Emulator) String() string {
	if int(e) < len(emulatorBinaries) {
		return emulatorBinaries[e]
	}
	return ""
}

// preferenceOrder is the order candidates are probed in. $TERMINAL, when
// set and itself one of the known emulators, is tried first by Detect.
var preferenceOrder = []Emulator{
	EmulatorTilix,
	EmulatorMateTerminal,
	EmulatorGNOMETerminal,
	EmulatorAlacritty,
	EmulatorKonsole,
	EmulatorXterm,
	EmulatorKitty,
	EmulatorXfce4Terminal,
}

// Detect picks the first available terminal emulator, preferring the
// binary named by $TERMINAL if it is both set and installed, then
// falling through the fixed preference order by PATH lookup.
func Detect() Emulator {
	if want := os.Getenv("TERMINAL"); want != "" {
		for _, e := range preferenceOrder {
			if e.String() == want && lookPath(e.String()) {
				return e
			}
		}
	}
	for _, e := range preferenceOrder {
		if lookPath(e.String()) {
			return e
		}
	}
	return EmulatorNone
}

var lookPath = func(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}
