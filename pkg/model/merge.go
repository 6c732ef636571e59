package model

import "sort"

// MergeDependencyInfo folds duplicate DependencyInfo entries that share a
// Name into one: union-and-dedupe RequiredBy and DependsOn, keep the worst
// Status, and take Version from the entry whose Status is kept (the first
// entry on a tie). Version constraints are not compared with each other,
// so the kept Version is not necessarily the most restrictive one.
func MergeDependencyInfo(entries []DependencyInfo) []DependencyInfo {
	byName := make(map[string]*DependencyInfo, len(entries))
	order := make([]string, 0, len(entries))

	for _, e := range entries {
		existing, ok := byName[e.Name]
		if !ok {
			cp := e
			cp.RequiredBy = dedupeStrings(e.RequiredBy)
			byName[e.Name] = &cp
			order = append(order, e.Name)
			continue
		}

		existing.RequiredBy = dedupeStrings(append(existing.RequiredBy, e.RequiredBy...))
		if e.Status.Worse(existing.Status) {
			existing.Status = e.Status
			existing.Version = e.Version
		}
		existing.DependsOn = dedupeStrings(append(existing.DependsOn, e.DependsOn...))
		existing.IsCore = existing.IsCore || e.IsCore
		existing.IsSystem = existing.IsSystem || e.IsSystem
	}

	merged := make([]DependencyInfo, 0, len(order))
	for _, name := range order {
		merged = append(merged, *byName[name])
	}
	return merged
}

func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
