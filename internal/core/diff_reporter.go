package core

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders the change from before to after as a unified diff
// with a/ and b/ prefixed file names. It returns "" when nothing changed.
func UnifiedDiff(path string, before, after []string, context int) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        terminated(before),
		B:        terminated(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to render diff for %s: %w", path, err)
	}
	return text, nil
}

// DiffStat counts added and removed lines between before and after.
func DiffStat(before, after []string) (added int, removed int) {
	matcher := difflib.NewMatcher(before, after)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			removed += op.I2 - op.I1
			added += op.J2 - op.J1
		case 'd':
			removed += op.I2 - op.I1
		case 'i':
			added += op.J2 - op.J1
		}
	}
	return added, removed
}

func terminated(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
