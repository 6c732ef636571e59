package model

// DependencyStatusKind enumerates the possible states of a resolved
// dependency. The constants run from best (StatusInstalled) to worst
// (StatusConflict); DependencyStatus.Worse compares them through
// statusRank below.
type DependencyStatusKind int

const (
	StatusInstalled DependencyStatusKind = iota
	StatusToUpgrade
	StatusToInstall
	StatusMissing
	StatusConflict
)

// DependencyStatus is a tagged variant carrying the extra fields each kind
// needs. Only the fields relevant to Kind are populated; callers must
// switch on Kind before reading them.
type DependencyStatus struct {
	Kind DependencyStatusKind

	// ToUpgrade
	CurrentVersion  string
	RequiredVersion string

	// Installed
	InstalledVersion string

	// Conflict
	ConflictReason string
}

// statusRank orders statuses worst-to-best: Conflict > Missing > ToInstall
// > ToUpgrade > Installed, matching the merge rule used when the same
// dependency is pulled in by more than one root package. Higher rank wins.
var statusRank = map[DependencyStatusKind]int{
	StatusInstalled: 0,
	StatusToUpgrade: 1,
	StatusToInstall: 2,
	StatusMissing:   3,
	StatusConflict:  4,
}

// Worse reports whether a is a worse (higher-priority) status than b.
func (a DependencyStatus) Worse(b DependencyStatus) bool {
	return statusRank[a.Kind] > statusRank[b.Kind]
}

// DependencyInfo is one resolved dependency in a plan's dependency tree.
// IsCore/IsSystem flag packages on the fixed core/system denylist used by
// the risk heuristic.
type DependencyInfo struct {
	Name        string
	Version     string
	Status      DependencyStatus
	Source      Source
	RequiredBy  []string // union of every root that pulled this dependency in
	DependsOn   []string
	IsCore      bool
	IsSystem    bool
}
