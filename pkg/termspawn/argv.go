package termspawn

import "fmt"

// BuildArgv returns the argv (excluding argv[0], the emulator binary
// itself) needed to have emu run cmd in a new window. The shapes are a
// stable, tested contract:
//
//	tilix | mate-terminal | gnome-terminal -> ["--", "bash", "-lc", cmd]
//	alacritty | konsole                    -> ["-e", "bash", "-lc", cmd]
//	xterm                                  -> ["-hold", "-e", "bash", "-lc", cmd]
//	kitty                                  -> ["bash", "-lc", cmd]
//	xfce4-terminal                         -> ["--command", "bash -lc " + cmd]
func BuildArgv(emu Emulator, cmd string) ([]string, error) {
	switch emu {
	case EmulatorTilix, EmulatorMateTerminal, EmulatorGNOMETerminal:
		return []string{"--", "bash", "-lc", cmd}, nil
	case EmulatorAlacritty, EmulatorKonsole:
		return []string{"-e", "bash", "-lc", cmd}, nil
	case EmulatorXterm:
		return []string{"-hold", "-e", "bash", "-lc", cmd}, nil
	case EmulatorKitty:
		return []string{"bash", "-lc", cmd}, nil
	case EmulatorXfce4Terminal:
		return []string{"--command", "bash -lc " + cmd}, nil
	default:
		return nil, fmt.Errorf("termspawn: no argv shape for emulator %v", emu)
	}
}

// Command returns the emulator binary name and, separately, the argv that
// follows it (the binary is not included in argv), for the terminal
// emulator returned by Detect.
func Command(emu Emulator, cmd string) (string, []string, error) {
	argv, err := BuildArgv(emu, cmd)
	if err != nil {
		return "", nil, err
	}
	return emu.String(), argv, nil
}
