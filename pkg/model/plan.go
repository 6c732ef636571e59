package model

// ActionKind is the operation a Plan describes.
type ActionKind int

const (
	ActionInstall ActionKind = iota
	ActionRemove
	ActionDowngrade
)

func (a ActionKind) String() string {
	switch a {
	case ActionRemove:
		return "remove"
	case ActionDowngrade:
		return "downgrade"
	default:
		return "install"
	}
}

// Plan is a set of packages plus an action under user review in the
// preflight modal.
type Plan struct {
	Items  []PackageItem
	Action ActionKind
}

// Names returns the plan's package names in their original order. Most
// callers that need a stable, order-independent identity should use
// Signature (pkg/persist) instead.
func (p Plan) Names() []string {
	names := make([]string, len(p.Items))
	for i, it := range p.Items {
		names[i] = it.Name
	}
	return names
}

// ReverseDependent is one installed package that would become unsatisfied
// if a Remove plan's items were removed.
type ReverseDependent struct {
	Name       string
	RequiredBy []string // which plan items pull this package's removal
}

// ReverseDependencyReport is computed once during Remove-action summary
// resolution and attached to the summary outcome so the deps tab does not
// need to recompute it.
type ReverseDependencyReport struct {
	Dependents []ReverseDependent
}

// Count returns the number of reverse dependents, used directly by the
// risk heuristic's N-based thresholds.
func (r ReverseDependencyReport) Count() int {
	return len(r.Dependents)
}
