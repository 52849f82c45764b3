package core

import (
	"slices"
	"strings"
)

// LineBuffer is an immutable sequence of raw file lines. Every edit returns
// a new buffer and leaves the receiver untouched.
type LineBuffer struct {
	lines []string
}

func NewLineBuffer(lines []string) LineBuffer {
	return LineBuffer{lines: slices.Clone(lines)}
}

// ParseLineBuffer splits text into lines. CRLF line endings are accepted and
// a single trailing newline does not produce an empty last line.
func ParseLineBuffer(text string) LineBuffer {
	return LineBuffer{lines: splitLines(text)}
}

func (b LineBuffer) Len() int {
	return len(b.lines)
}

func (b LineBuffer) Line(i int) string {
	return b.lines[i]
}

// Lines returns a copy of the buffer's lines.
func (b LineBuffer) Lines() []string {
	return slices.Clone(b.lines)
}

// Text joins the lines with \n and terminates the last one.
func (b LineBuffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

func (b LineBuffer) Equal(other LineBuffer) bool {
	return slices.Equal(b.lines, other.lines)
}

// Splice replaces lines [start, end) with insert.
func (b LineBuffer) Splice(start, end int, insert []string) LineBuffer {
	lines := make([]string, 0, len(b.lines)-(end-start)+len(insert))
	lines = append(lines, b.lines[:start]...)
	lines = append(lines, insert...)
	lines = append(lines, b.lines[end:]...)
	return LineBuffer{lines: lines}
}

func (b LineBuffer) Insert(at int, insert []string) LineBuffer {
	return b.Splice(at, at, insert)
}

// Delete removes lines [start, end].
func (b LineBuffer) Delete(start, end int) LineBuffer {
	return b.Splice(start, end+1, nil)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
