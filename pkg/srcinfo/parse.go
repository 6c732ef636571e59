// Package srcinfo parses .SRCINFO and, as a fallback, PKGBUILD text into
// the dependency arrays the sandbox resolver (C7.4) needs: depends,
// makedepends, checkdepends, and optdepends. Parsing tolerates the messy
// reality of hand-written PKGBUILDs: single- and multi-line bash arrays,
// quoted and unquoted tokens, and append-form assignment inside
// package()/build() functions.
package srcinfo

import (
	"regexp"
	"strings"
)

// Dependencies is the four dependency arrays a parse produces. Any field
// may be empty; an empty Dependencies is a valid, non-error result.
type Dependencies struct {
	Depends      []string
	MakeDepends  []string
	CheckDepends []string
	OptDepends   []string
}

// ParseSrcinfo extracts Dependencies from raw .SRCINFO text. .SRCINFO
// uses a flat "key = value" format, one assignment per line, with
// architecture-suffixed keys (depends_x86_64 = ...) folded into the same
// bucket as their unsuffixed counterpart.
func ParseSrcinfo(raw string) Dependencies {
	var deps Dependencies
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = cleanToken(strings.TrimSpace(val))
		if val == "" || !isPackageToken(val) {
			continue
		}

		switch baseKey(key) {
		case "depends":
			deps.Depends = append(deps.Depends, val)
		case "makedepends":
			deps.MakeDepends = append(deps.MakeDepends, val)
		case "checkdepends":
			deps.CheckDepends = append(deps.CheckDepends, val)
		case "optdepends":
			deps.OptDepends = append(deps.OptDepends, optDependName(val))
		}
	}
	return deps
}

// baseKey strips a trailing architecture suffix such as "_x86_64" from a
// .SRCINFO key, so "depends_x86_64" and "depends" land in the same
// bucket.
func baseKey(key string) string {
	for _, suffix := range []string{"_x86_64", "_i686", "_aarch64", "_armv7h"} {
		if strings.HasSuffix(key, suffix) {
			return strings.TrimSuffix(key, suffix)
		}
	}
	return key
}

// optDependName strips the ": reason" suffix optdepends lines carry,
// e.g. "foo: needed for bar" -> "foo".
func optDependName(v string) string {
	name, _, _ := strings.Cut(v, ":")
	return strings.TrimSpace(name)
}

// arrayAssignPattern matches a bash array assignment at the start of a
// trimmed line, capturing the variable name (without architecture
// suffix), whether it is an append (+=) and the remainder of the line
// after the opening paren (which may or may not contain the closing
// paren on the same line).
var arrayAssignPattern = regexp.MustCompile(`^(depends|makedepends|checkdepends|optdepends)(?:_\w+)?\s*(\+?)=\s*\((.*)$`)

// ParsePKGBUILD extracts Dependencies from raw PKGBUILD text, used as a
// fallback when .SRCINFO cannot be fetched. Unlike .SRCINFO, PKGBUILD
// arrays can span multiple lines and use append-form assignment
// (depends+=(...)) inside package()/build() functions, so this scans
// line-by-line and accumulates open arrays across a "(" without a
// matching ")" on the same line.
func ParsePKGBUILD(raw string) Dependencies {
	var deps Dependencies

	lines := strings.Split(raw, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		// Arrays may be written with or without an "array=(" on one line;
		// find where the assignment begins regardless of leading
		// whitespace introduced by functions.
		m := arrayAssignPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		field := m[1]
		body := m[3]

		// Keep consuming subsequent lines until the array's closing paren
		// is found.
		tokens, closed := splitArrayBody(body)
		for !closed && i+1 < len(lines) {
			i++
			body += "\n" + lines[i]
			tokens, closed = splitArrayBody(body)
		}

		for _, tok := range tokens {
			tok = cleanToken(tok)
			if tok == "" || !isPackageToken(tok) {
				continue
			}
			switch field {
			case "depends":
				deps.Depends = append(deps.Depends, tok)
			case "makedepends":
				deps.MakeDepends = append(deps.MakeDepends, tok)
			case "checkdepends":
				deps.CheckDepends = append(deps.CheckDepends, tok)
			case "optdepends":
				deps.OptDepends = append(deps.OptDepends, optDependName(tok))
			}
		}
	}

	return deps
}

// arrayTokenPattern matches one token of a bash array interior: a
// single- or double-quoted string (which may contain spaces and parens),
// a bare word, or the closing paren.
var arrayTokenPattern = regexp.MustCompile(`'[^']*'|"[^"]*"|[^\s'"()]+|\)`)

// splitArrayBody splits a bash array literal's interior into tokens,
// keeping quoted tokens whole (quotes included; cleanToken strips them).
// It stops at the first ")" outside quotes and reports whether that
// closing paren was found.
func splitArrayBody(body string) (tokens []string, closed bool) {
	for _, tok := range arrayTokenPattern.FindAllString(body, -1) {
		if tok == ")" {
			return tokens, true
		}
		tokens = append(tokens, tok)
	}
	return tokens, false
}

// cleanToken strips a single or double quote pair surrounding a token
// and trims a trailing comment.
func cleanToken(tok string) string {
	if idx := strings.Index(tok, "#"); idx == 0 {
		return ""
	}
	tok = strings.Trim(tok, `'"`)
	return strings.TrimSpace(tok)
}

// soSpecifierPattern matches virtual .so package specifiers such as
// "libfoo.so=1-64" or "libfoo.so", which must be filtered out per the
// sandbox resolver's contract: they name an ABI, not an installable
// package.
var soSpecifierPattern = regexp.MustCompile(`\.so(=|$|\.\d)`)

// isPackageToken reports whether tok plausibly names a real package
// (optionally with a verbatim version constraint), filtering out:
//   - virtual .so specifiers
//   - tokens containing "=" that are not a version-constraint form
//     Pacsea preserves verbatim (name>=ver, name<=ver, name=ver) — these
//     ARE kept; what is filtered is bash-assignment noise that slipped
//     through, i.e. tokens ending in ")" or shorter than 2 characters.
func isPackageToken(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	if strings.HasSuffix(tok, ")") {
		return false
	}
	if soSpecifierPattern.MatchString(tok) {
		return false
	}
	return true
}
