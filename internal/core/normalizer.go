package core

import (
	"regexp"
	"slices"
	"strings"
)

var (
	commentPrefixes   = []string{"#", "//"}
	debugDirectives   = []string{".line", ".source", ".prologue", ".epilogue"}
	registerPattern   = regexp.MustCompile(`\b([vp])[0-9]+\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalizer produces the comparison form of a line. The zero value only
// treats blank lines and comments as ignorable.
type Normalizer struct {
	// SkipDebugDirectives also ignores .line, .source, .prologue and .epilogue.
	SkipDebugDirectives bool
	// NonStrict compares registers by kind only, so v3 matches v7.
	NonStrict bool
}

// Normalize returns the trimmed, whitespace-collapsed form of line, and false
// if the line carries no meaning for matching.
func (n Normalizer) Normalize(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return "", false
		}
	}
	if n.SkipDebugDirectives && isDebugDirective(trimmed) {
		return "", false
	}

	normalized := whitespacePattern.ReplaceAllString(trimmed, " ")
	if n.NonStrict {
		normalized = registerPattern.ReplaceAllString(normalized, "${1}X")
	}
	return normalized, true
}

// Ignorable reports whether line is skipped during matching.
func (n Normalizer) Ignorable(line string) bool {
	_, ok := n.Normalize(line)
	return !ok
}

// Normalize uses the default Normalizer.
func Normalize(line string) (string, bool) {
	return Normalizer{}.Normalize(line)
}

func isDebugDirective(trimmed string) bool {
	return slices.Contains(debugDirectives, strings.Fields(trimmed)[0])
}
