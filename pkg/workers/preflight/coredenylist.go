// Package preflight implements the five independent resolvers (C7) that
// feed the preflight modal: dependencies, files, services, sandbox, and
// the summary/risk computation. Each resolver owns a single inbound
// queue of plan descriptors and a single outbound queue of stage
// results; none pre-empts itself, and supersession of stale responses is
// entirely the UI's responsibility.
package preflight

// coreDenylist is the fixed set of packages the risk heuristic and the
// per-package notes treat as "core" — removing or touching one of these
// is disproportionately risky regardless of what else is in the plan.
// This is deliberately a small, conservative list of packages whose
// absence breaks a running system outright, not a broad "important
// packages" list.
var coreDenylist = map[string]bool{
	"linux":            true,
	"linux-lts":        true,
	"glibc":            true,
	"systemd":          true,
	"systemd-libs":     true,
	"pacman":           true,
	"bash":             true,
	"coreutils":        true,
	"util-linux":       true,
	"filesystem":       true,
	"grub":             true,
	"linux-firmware":   true,
	"e2fsprogs":        true,
	"cryptsetup":       true,
	"dbus":             true,
	"openssh":          true,
	"networkmanager":   true,
	"sudo":             true,
}

// systemDenylist flags packages whose presence marks a unit or
// dependency as system-critical for the *services* resolver, a narrower
// concept than "core": a system unit provider whose restart would affect
// session/login infrastructure.
var systemDenylist = map[string]bool{
	"systemd":        true,
	"systemd-libs":   true,
	"dbus":           true,
	"networkmanager": true,
	"polkit":         true,
	"udisks2":        true,
}

// IsCorePackage reports whether name is on the fixed core denylist.
func IsCorePackage(name string) bool {
	return coreDenylist[name]
}

// IsSystemPackage reports whether name is on the fixed system denylist.
func IsSystemPackage(name string) bool {
	return systemDenylist[name]
}
