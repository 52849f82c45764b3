package core

import (
	"fmt"
	"strings"

	"smalipatch/internal/core/domain"
)

const (
	classTerminator = ".end class"
	fieldTerminator = ".end field"
	fieldDirective  = ".field"
	methodDirective = ".method"
	superDirective  = ".super"
)

// ActionReport describes what an applied action did. Changed is false when
// the action found nothing to do, for example because it ran before.
type ActionReport struct {
	Changed     bool
	Note        string
	Occurrences int
}

// HunkApplier applies single actions to a buffer.
type HunkApplier struct {
	normalizer Normalizer
}

func NewHunkApplier(normalizer Normalizer) HunkApplier {
	return HunkApplier{normalizer: normalizer}
}

// Apply returns the buffer produced by action. On error the input buffer is
// the one to keep.
func (a HunkApplier) Apply(buf LineBuffer, action domain.Action) (LineBuffer, ActionReport, error) {
	switch action.Kind {
	case domain.ActionReplace:
		return a.replaceMethod(buf, action)
	case domain.ActionCreateMethod:
		return a.createMethod(buf, action)
	case domain.ActionRemoveMethod:
		return a.removeMethod(buf, action)
	case domain.ActionAddField:
		return a.addField(buf, action)
	case domain.ActionRemoveField:
		return a.removeField(buf, action)
	case domain.ActionContextPatch:
		return a.contextPatch(buf, action)
	case domain.ActionFindReplace:
		return a.findReplace(buf, action)
	default:
		return buf, ActionReport{}, fmt.Errorf("unsupported action %s", action.Kind)
	}
}

func (a HunkApplier) replaceMethod(buf LineBuffer, action domain.Action) (LineBuffer, ActionReport, error) {
	r, err := closedMethodRange(buf, action.Signature)
	if err != nil {
		return buf, ActionReport{}, err
	}

	out := buf.Splice(r.Start+1, r.End, action.Content)
	return out, ActionReport{Changed: true, Note: fmt.Sprintf("replaced body of lines %d-%d", r.Start+1, r.End+1)}, nil
}

func (a HunkApplier) createMethod(buf LineBuffer, action domain.Action) (LineBuffer, ActionReport, error) {
	lines := buf.lines
	if declaration := firstDirectiveLine(action.Content, methodDirective); declaration != "" {
		if FindMethodRange(lines, declaration).Found() {
			return buf, ActionReport{Note: "method already present"}, nil
		}
	}

	at := lastIndexOf(lines, func(trimmed string) bool { return trimmed == classTerminator })
	if at < 0 {
		return buf, ActionReport{}, fmt.Errorf("%w: no %s line to insert the method before", ErrAnchorNotFound, classTerminator)
	}

	out := buf.Insert(at, withSeparator(lines, at, action.Content))
	return out, ActionReport{Changed: true, Note: fmt.Sprintf("inserted method at line %d", at+1)}, nil
}

func (a HunkApplier) removeMethod(buf LineBuffer, action domain.Action) (LineBuffer, ActionReport, error) {
	r, err := closedMethodRange(buf, action.Signature)
	if err != nil {
		return buf, ActionReport{}, err
	}

	out := buf.Delete(r.Start, r.End)
	return out, ActionReport{Changed: true, Note: fmt.Sprintf("removed lines %d-%d", r.Start+1, r.End+1)}, nil
}

func (a HunkApplier) addField(buf LineBuffer, action domain.Action) (LineBuffer, ActionReport, error) {
	lines := buf.lines
	if declaration, ok := a.normalizer.Normalize(firstDirectiveLine(action.Content, fieldDirective)); ok {
		for _, line := range lines {
			if normalized, ok := a.normalizer.Normalize(line); ok && normalized == declaration {
				return buf, ActionReport{Note: "field already present"}, nil
			}
		}
	}

	at := fieldInsertionPoint(lines)
	if at < 0 {
		return buf, ActionReport{}, fmt.Errorf("%w: no %s, %s or %s line to place the field after",
			ErrAnchorNotFound, fieldDirective, methodDirective, superDirective)
	}

	out := buf.Insert(at, withSeparator(lines, at, action.Content))
	return out, ActionReport{Changed: true, Note: fmt.Sprintf("inserted field at line %d", at+1)}, nil
}

func (a HunkApplier) removeField(buf LineBuffer, action domain.Action) (LineBuffer, ActionReport, error) {
	at := FindDirectiveLine(buf.lines, fieldDirective, action.Signature)
	if at < 0 {
		return buf, ActionReport{}, fmt.Errorf("%w: field %q not found", ErrAnchorNotFound, action.Signature)
	}

	out := buf.Delete(at, at)
	return out, ActionReport{Changed: true, Note: fmt.Sprintf("removed line %d", at+1)}, nil
}

func (a HunkApplier) contextPatch(buf LineBuffer, action domain.Action) (LineBuffer, ActionReport, error) {
	lines := buf.lines
	from, to := 0, len(lines)
	if action.Signature != "" {
		r, err := closedMethodRange(buf, action.Signature)
		if err != nil {
			return buf, ActionReport{}, err
		}
		from, to = r.Start, r.End+1
	}

	preImage := a.normalizer.Fingerprint(operationLines(action.Operations, domain.OpContext, domain.OpRemove))
	if len(preImage) == 0 {
		return buf, ActionReport{}, fmt.Errorf("%w: patch has no context or removed lines to anchor on", ErrContextNotFound)
	}

	postImage := a.normalizer.Fingerprint(operationLines(action.Operations, domain.OpContext, domain.OpAdd))
	start := a.normalizer.FindFingerprint(lines, preImage, from, to)
	if start < 0 {
		if a.normalizer.FindFingerprint(lines, postImage, from, to) >= 0 {
			return buf, ActionReport{Note: "already applied"}, nil
		}
		return buf, ActionReport{}, fmt.Errorf("%w: no match for %d-line fingerprint starting with %q",
			ErrContextNotFound, len(preImage), preImage[0])
	}
	// additions after the last anchor leave the pre-image in place
	if len(postImage) > len(preImage) && a.normalizer.matchesAt(lines, postImage, start, to) {
		return buf, ActionReport{Note: "already applied"}, nil
	}

	out := make([]string, 0, len(lines)+len(action.Operations))
	out = append(out, lines[:start]...)
	i := start
	for _, op := range action.Operations {
		if op.Tag == domain.OpAdd {
			out = append(out, op.Line)
			continue
		}
		if a.normalizer.Ignorable(op.Line) {
			continue
		}
		for i < len(lines) && a.normalizer.Ignorable(lines[i]) {
			if op.Tag == domain.OpContext {
				out = append(out, lines[i])
			}
			i++
		}
		if i >= len(lines) {
			return buf, ActionReport{}, fmt.Errorf("%w: ran out of lines while matching %q", ErrUnexpectedEndOfFile, op.Line)
		}
		if op.Tag == domain.OpContext {
			out = append(out, lines[i])
		}
		i++
	}
	out = append(out, lines[i:]...)

	return LineBuffer{lines: out}, ActionReport{Changed: true, Note: fmt.Sprintf("patched hunk at line %d", start+1)}, nil
}

func (a HunkApplier) findReplace(buf LineBuffer, action domain.Action) (LineBuffer, ActionReport, error) {
	text, count := ReplaceAll(strings.Join(buf.lines, "\n"), action.Find, action.Replace)
	if count == 0 {
		return buf, ActionReport{Note: "no occurrences"}, nil
	}

	out := LineBuffer{lines: []string{}}
	if text != "" {
		out.lines = strings.Split(text, "\n")
	}
	return out, ActionReport{Changed: true, Occurrences: count, Note: fmt.Sprintf("replaced %d occurrences", count)}, nil
}

// ReplaceAll replaces every literal occurrence of find and reports how many there were.
func ReplaceAll(text, find, replace string) (string, int) {
	count := strings.Count(text, find)
	if count == 0 {
		return text, 0
	}
	return strings.ReplaceAll(text, find, replace), count
}

func closedMethodRange(buf LineBuffer, signature string) (MethodRange, error) {
	r := FindMethodRange(buf.lines, signature)
	if !r.Found() {
		return r, fmt.Errorf("%w: method %q not found", ErrAnchorNotFound, signature)
	}
	if !r.Closed() {
		return r, fmt.Errorf("%w: method %q has no %s", ErrAnchorNotFound, signature, methodTerminator)
	}
	return r, nil
}

// fieldInsertionPoint returns the line index a new field goes to: after the
// last field (and its annotation block), else before the first method, else
// after the superclass.
func fieldInsertionPoint(lines []string) int {
	if last := lastIndexOf(lines, isDirective(fieldDirective)); last >= 0 {
		for i := last + 1; i < len(lines); i++ {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == fieldTerminator {
				return i + 1
			}
			if isDirective(methodDirective)(trimmed) {
				break
			}
		}
		return last + 1
	}
	if first := firstIndexOf(lines, isDirective(methodDirective)); first >= 0 {
		return first
	}
	if superclass := firstIndexOf(lines, isDirective(superDirective)); superclass >= 0 {
		return superclass + 1
	}
	return -1
}

// withSeparator prefixes content with a blank line unless the line above at is already blank.
func withSeparator(lines []string, at int, content []string) []string {
	if at == 0 || strings.TrimSpace(lines[at-1]) == "" {
		return content
	}
	return append([]string{""}, content...)
}

func isDirective(directive string) func(string) bool {
	return func(trimmed string) bool {
		return trimmed == directive || strings.HasPrefix(trimmed, directive+" ")
	}
}

func firstDirectiveLine(content []string, directive string) string {
	matches := isDirective(directive)
	for _, line := range content {
		if trimmed := strings.TrimSpace(line); matches(trimmed) {
			return trimmed
		}
	}
	return ""
}

func firstIndexOf(lines []string, match func(trimmed string) bool) int {
	for i, line := range lines {
		if match(strings.TrimSpace(line)) {
			return i
		}
	}
	return -1
}

func lastIndexOf(lines []string, match func(trimmed string) bool) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if match(strings.TrimSpace(lines[i])) {
			return i
		}
	}
	return -1
}

func operationLines(operations []domain.Operation, tags ...domain.OpTag) []string {
	var lines []string
	for _, op := range operations {
		for _, tag := range tags {
			if op.Tag == tag {
				lines = append(lines, op.Line)
				break
			}
		}
	}
	return lines
}
