package model

// FileClass classifies one path in a package's file-list diff.
type FileClass int

const (
	FileNew FileClass = iota
	FileChanged
	FileRemoved
	FileConfig
)

// FileEntry is one classified path belonging to a package.
type FileEntry struct {
	Path  string
	Class FileClass
}

// PackageFileInfo is the files resolver's per-package output. An empty
// value (zero counts, nil Files) is still emitted for a package whenever
// the file database is unavailable — the UI must be able to list the
// package even without file data.
type PackageFileInfo struct {
	PackageName       string
	NewCount          int
	ChangedCount      int
	RemovedCount      int
	ConfigCount       int
	PacnewCandidates  []string
	PacsaveCandidates []string
	Files             []FileEntry
	FilesError        string // non-empty when the file database lookup failed
}

// TotalCount is the sum of every classified file. Must stay zero and
// panic-free when FilesError is set and Files is nil.
func (p PackageFileInfo) TotalCount() int {
	return p.NewCount + p.ChangedCount + p.RemovedCount + p.ConfigCount
}
