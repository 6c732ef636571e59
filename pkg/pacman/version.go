package pacman

import (
	"strconv"
	"strings"
)

// CompareVersions implements pacman's vercmp(8) ordering: split each
// version into epoch:pkgver-pkgrel, compare the epoch numerically, then
// compare pkgver (and pkgrel, if both sides have one) as runs of digits
// and runs of letters, skipping separator characters, comparing numeric
// runs by value, letter runs byte-for-byte, and treating a numeric run as
// newer than a letter run. Returns -1, 0, or 1 the way strings.Compare
// does. No third-party library implements Arch's specific algorithm —
// the widely-available semver packages assume a different version
// grammar and would misorder things like "1.2.rc1" or "1:2.0-3".
func CompareVersions(a, b string) int {
	aEpoch, aRest := splitEpoch(a)
	bEpoch, bRest := splitEpoch(b)
	if aEpoch != bEpoch {
		if aEpoch < bEpoch {
			return -1
		}
		return 1
	}

	aVer, aRel := splitRelease(aRest)
	bVer, bRel := splitRelease(bRest)

	if c := compareSegments(aVer, bVer); c != 0 {
		return c
	}
	if aRel == "" || bRel == "" {
		return 0
	}
	return compareSegments(aRel, bRel)
}

// Satisfies reports whether installedVersion meets the constraint
// expressed by op and requiredVersion (">=", "<=", "=="/"=", ">", "<").
// An unrecognized operator is treated as always satisfied, since the
// dependency resolver falls back to "installed" rather than block on an
// operator it cannot parse.
func Satisfies(installedVersion, op, requiredVersion string) bool {
	c := CompareVersions(installedVersion, requiredVersion)
	switch op {
	case ">=":
		return c >= 0
	case "<=":
		return c <= 0
	case "==", "=":
		return c == 0
	case ">":
		return c > 0
	case "<":
		return c < 0
	default:
		return true
	}
}

func splitEpoch(v string) (epoch int, rest string) {
	if idx := strings.Index(v, ":"); idx >= 0 {
		if n, err := strconv.Atoi(v[:idx]); err == nil {
			return n, v[idx+1:]
		}
	}
	return 0, v
}

func splitRelease(v string) (pkgver, pkgrel string) {
	if idx := strings.LastIndex(v, "-"); idx >= 0 {
		return v[:idx], v[idx+1:]
	}
	return v, ""
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnum(c byte) bool { return isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'z') }

// splitRuns breaks s into maximal runs of digits and of letters, dropping
// separator characters, e.g. "2.10rc1" -> ["2", "10", "rc", "1"].
func splitRuns(s string) []string {
	var runs []string
	i := 0
	for i < len(s) {
		if !isAlnum(s[i]) {
			i++
			continue
		}
		start := i
		digit := isDigit(s[i])
		for i < len(s) && isAlnum(s[i]) && isDigit(s[i]) == digit {
			i++
		}
		runs = append(runs, s[start:i])
	}
	return runs
}

// compareSegments compares two run-split version strings run by run. A
// side that runs out of runs first is older, unless the remaining run on
// the other side is non-numeric, in which case the shorter side is newer
// (matches vercmp treating "1.0" as newer than "1.0a").
func compareSegments(a, b string) int {
	aRuns, bRuns := splitRuns(a), splitRuns(b)
	n := len(aRuns)
	if len(bRuns) > n {
		n = len(bRuns)
	}
	for i := 0; i < n; i++ {
		var aSeg, bSeg string
		if i < len(aRuns) {
			aSeg = aRuns[i]
		}
		if i < len(bRuns) {
			bSeg = bRuns[i]
		}
		if aSeg == bSeg {
			continue
		}
		if aSeg == "" || bSeg == "" {
			nonEmpty := aSeg
			sign := 1
			if aSeg == "" {
				nonEmpty = bSeg
				sign = -1
			}
			if nonEmpty != "" && isDigit(nonEmpty[0]) {
				return sign
			}
			return -sign
		}
		if isDigit(aSeg[0]) != isDigit(bSeg[0]) {
			if isDigit(aSeg[0]) {
				return 1
			}
			return -1
		}
		if isDigit(aSeg[0]) && isDigit(bSeg[0]) {
			an, _ := strconv.Atoi(strings.TrimLeft(aSeg, "0"))
			bn, _ := strconv.Atoi(strings.TrimLeft(bSeg, "0"))
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			continue
		}
		if aSeg < bSeg {
			return -1
		}
		return 1
	}
	return 0
}
