package workers

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/termspawn"
)

// Executor is C8: materializes a decided plan into a shell command
// string and hands it off to an external terminal emulator so the user
// can authenticate and supervise the operation outside the TUI. It never
// runs the install itself.
type Executor struct {
	// DryRun disables the actual spawn; the command is still built and
	// reported so tests and `-dry-run` sessions can assert on it.
	DryRun bool

	// Spawn defaults to exec.Command(...).Start(); tests substitute a
	// fake that records the call instead of starting a real process.
	Spawn func(bin string, argv []string) error
}

// Run drains fab.ExecutorRequests until ctx is cancelled.
func (e *Executor) Run(ctx context.Context, fab *channels.Fabric) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-fab.ExecutorRequests:
			fab.ExecutorResults <- e.handle(req)
		}
	}
}

func (e *Executor) handle(req channels.ExecutorAction) channels.ExecutorOutput {
	cmdStr := BuildCommand(req)

	emu := termspawn.Detect()
	if emu == termspawn.EmulatorNone {
		return channels.ExecutorOutput{Err: "no supported terminal emulator found on PATH"}
	}

	bin, argv, err := termspawn.Command(emu, cmdStr)
	if err != nil {
		return channels.ExecutorOutput{Err: err.Error()}
	}

	out := channels.ExecutorOutput{Emulator: bin, Command: argv}
	if e.DryRun {
		return out
	}

	spawn := e.Spawn
	if spawn == nil {
		spawn = defaultSpawn
	}
	if err := spawn(bin, argv); err != nil {
		out.Err = err.Error()
	}
	return out
}

func defaultSpawn(bin string, argv []string) error {
	return exec.Command(bin, argv...).Start()
}

// BuildCommand assembles the pacman/AUR-helper invocation for a plan. It
// is a pure function so the exact shape of every action is independently
// testable without spawning a terminal.
func BuildCommand(req channels.ExecutorAction) string {
	var b strings.Builder

	names := make([]string, len(req.Plan.Items))
	hasAUR := false
	for i, it := range req.Plan.Items {
		names[i] = it.Name
		hasAUR = hasAUR || it.Source.IsAUR()
	}
	joined := strings.Join(names, " ")

	switch req.Plan.Action {
	case model.ActionRemove:
		flag := "-R"
		if req.Cascade {
			flag = "-Rsc"
		}
		fmt.Fprintf(&b, "sudo pacman %s %s", flag, joined)
	case model.ActionDowngrade:
		fmt.Fprintf(&b, "sudo pacman -U %s", joined)
	default: // ActionInstall
		if hasAUR {
			fmt.Fprintf(&b, "yay -S %s", joined)
		} else {
			fmt.Fprintf(&b, "sudo pacman -S %s", joined)
		}
		if len(req.ExtraOptDepends) > 0 {
			fmt.Fprintf(&b, " %s", strings.Join(req.ExtraOptDepends, " "))
		}
	}

	for _, unit := range req.RestartUnits {
		fmt.Fprintf(&b, " && sudo systemctl restart %s", unit)
	}

	return b.String()
}
