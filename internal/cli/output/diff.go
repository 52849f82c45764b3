package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	addedStyle   = color.New(color.FgGreen)
	removedStyle = color.New(color.FgRed)
	hunkStyle    = color.New(color.FgCyan)
	fileStyle    = color.New(color.Bold)
)

// ColorizeDiff styles a unified diff line by line.
func ColorizeDiff(diff string) string {
	if diff == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = fileStyle.Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Sprint(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// PrintDiff writes a colorized unified diff.
func PrintDiff(diff string) {
	fmt.Fprint(Stdout, ColorizeDiff(diff))
}

// PrintDiffStat prints a one line "+added -removed" summary for path.
func PrintDiffStat(path string, added, removed int) {
	fmt.Fprintf(Stdout, "  %s %s %s\n",
		path,
		addedStyle.Sprintf("+%d", added),
		removedStyle.Sprintf("-%d", removed),
	)
}
