package core

import (
	"regexp"
	"strings"
)

const methodTerminator = ".end method"

// MethodRange holds the line indexes of a method's signature and its
// terminator. End is -1 when the method is never closed.
type MethodRange struct {
	Start int
	End   int
}

func (r MethodRange) Found() bool {
	return r.Start >= 0
}

func (r MethodRange) Closed() bool {
	return r.Start >= 0 && r.End >= 0
}

// signaturePattern escapes sig and lets every space match any run of whitespace.
func signaturePattern(sig string) string {
	return strings.ReplaceAll(regexp.QuoteMeta(strings.Join(strings.Fields(sig), " ")), " ", `\s+`)
}

// FindMethodRange locates the first method whose declaration starts with sig.
func FindMethodRange(lines []string, sig string) MethodRange {
	pattern := regexp.MustCompile("^" + signaturePattern(sig))
	r := MethodRange{Start: -1, End: -1}
	for i, line := range lines {
		if pattern.MatchString(strings.TrimSpace(line)) {
			r.Start = i
			break
		}
	}
	if r.Start < 0 {
		return r
	}
	for i := r.Start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == methodTerminator {
			r.End = i
			break
		}
	}
	return r
}

// FindDirectiveLine returns the index of the first line that starts with
// directive and contains fragment, with spaces matching any whitespace run,
// or -1.
func FindDirectiveLine(lines []string, directive, fragment string) int {
	pattern := regexp.MustCompile(signaturePattern(fragment))
	isTarget := isDirective(directive)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isTarget(trimmed) && pattern.MatchString(trimmed) {
			return i
		}
	}
	return -1
}

// Fingerprint returns the normalized, non-ignorable forms of lines.
func (n Normalizer) Fingerprint(lines []string) []string {
	fingerprint := make([]string, 0, len(lines))
	for _, line := range lines {
		if normalized, ok := n.Normalize(line); ok {
			fingerprint = append(fingerprint, normalized)
		}
	}
	return fingerprint
}

// FindFingerprint returns the index of the first line in [from, to) where
// fingerprint matches, skipping ignorable lines in between, or -1. The match
// must also end before to.
func (n Normalizer) FindFingerprint(lines []string, fingerprint []string, from, to int) int {
	if len(fingerprint) == 0 {
		return -1
	}
	to = min(to, len(lines))
	for start := max(from, 0); start < to; start++ {
		first, ok := n.Normalize(lines[start])
		if !ok || first != fingerprint[0] {
			continue
		}
		if n.matchesAt(lines, fingerprint, start, to) {
			return start
		}
	}
	return -1
}

func (n Normalizer) matchesAt(lines []string, fingerprint []string, start, to int) bool {
	matched := 0
	for i := start; i < to && matched < len(fingerprint); i++ {
		normalized, ok := n.Normalize(lines[i])
		if !ok {
			continue
		}
		if normalized != fingerprint[matched] {
			return false
		}
		matched++
	}
	return matched == len(fingerprint)
}
