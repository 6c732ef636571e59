package terminal

import (
	"os"
	"sync"
)

// Capabilities is the cached terminal capability summary for the current
// session: which emulator is hosting the session, its size, and whether
// the session is remote or nested in a multiplexer.
type Capabilities struct {
	Term      Terminal // Detected terminal emulator
	Size      Size     // Terminal dimensions
	TrueColor bool     // 24-bit color support
	SSH       bool     // Running over SSH
	Tmux      bool     // Inside tmux
	Mux       bool     // Inside any multiplexer (tmux, screen)
}

var (
	cached     *Capabilities
	detectOnce sync.Once
)

// DetectCapabilities performs full terminal detection and caches the result.
// Safe to call from multiple goroutines; detection runs exactly once via
// sync.Once. Subsequent calls return the cached value, since the emulator,
// true-color support, and SSH/multiplexer nesting of a running session
// don't change after startup.
func DetectCapabilities() *Capabilities {
	detectOnce.Do(func() {
		cached = detect()
	})
	return cached
}

func detect() *Capabilities {
	term := Detect()
	ssh := isSSH()
	tmux := os.Getenv("TMUX") != ""
	screen := os.Getenv("STY") != ""

	trueColor := term.SupportsTrueColor()
	if !trueColor {
		ct := os.Getenv("COLORTERM")
		trueColor = ct == "truecolor" || ct == "24bit"
	}

	return &Capabilities{
		Term:      term,
		Size:      GetSize(),
		TrueColor: trueColor,
		SSH:       ssh,
		Tmux:      tmux,
		Mux:       tmux || screen,
	}
}

// isSSH reports whether the current session is running over SSH.
func isSSH() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CONNECTION") != "" ||
		os.Getenv("SSH_CLIENT") != ""
}
