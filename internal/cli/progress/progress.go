package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"smalipatch/internal/core/domain"

	"golang.org/x/term"
)

// Status represents the state of a patch
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusSkipped
	StatusFailed
)

// Item represents a single patch being tracked
type Item struct {
	Name     string
	Status   Status
	Message  string
	Duration time.Duration
}

// Tracker prints one line per patch as a run progresses. On a terminal the
// running line is replaced in place by its result.
type Tracker struct {
	out       io.Writer
	items     []Item
	total     int
	startTime time.Time
	isTTY     bool
	useColor  bool
	caps      terminalCapabilities
	now       func() time.Time
}

// NewTracker creates a tracker writing to out, styled for the process stdout.
func NewTracker(out io.Writer) *Tracker {
	_, noColor := os.LookupEnv("NO_COLOR")
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	caps := detectCapabilities()
	return NewTrackerWithWriter(out, isTTY, !noColor && isTTY && caps.supportsANSI, caps)
}

// NewTrackerWithWriter creates a tracker with explicit terminal settings.
func NewTrackerWithWriter(out io.Writer, isTTY, useColor bool, caps terminalCapabilities) *Tracker {
	return &Tracker{
		out:      out,
		isTTY:    isTTY,
		useColor: useColor,
		caps:     caps,
		now:      time.Now,
	}
}

func (t *Tracker) PatchStarted(index, total int, patch domain.Patch) {
	if t.items == nil {
		t.items = make([]Item, total)
		t.total = total
	}
	t.items[index] = Item{Name: patch.Describe(), Status: StatusRunning}
	t.startTime = t.now()

	counter := fmt.Sprintf("[%d/%d]", index+1, t.total)
	if t.isTTY {
		line := fmt.Sprintf("  %s %s  %s", "~", t.dim(counter), t.items[index].Name)
		fmt.Fprint(t.out, truncateToWidth(line, t.caps.terminalWidth))
		return
	}
	ts := t.startTime.Format("15:04:05")
	fmt.Fprintf(t.out, "[%s] %s Applying %s...\n", ts, counter, t.items[index].Name)
}

func (t *Tracker) PatchFinished(result domain.Result) {
	item := &t.items[result.Index]
	item.Duration = t.now().Sub(t.startTime)
	item.Message = result.Message
	switch {
	case result.Outcome.IsFailure():
		item.Status = StatusFailed
	case result.Outcome == domain.OutcomeSkipped:
		item.Status = StatusSkipped
	default:
		item.Status = StatusSuccess
	}

	if t.isTTY {
		fmt.Fprint(t.out, clearLine(t.caps))
	}
	fmt.Fprintln(t.out, t.formatResult(result.Index, result.Outcome))
}

func (t *Tracker) formatResult(index int, outcome domain.Outcome) string {
	item := t.items[index]
	var sym string
	switch item.Status {
	case StatusSuccess:
		sym = t.color("\033[32m", "+")
	case StatusSkipped:
		sym = t.color("\033[33m", "=")
	case StatusFailed:
		sym = t.color("\033[31m", "x")
	}

	status := string(outcome)
	if item.Status == StatusFailed {
		status = strings.ToUpper(status)
	}
	if item.Message != "" {
		status = fmt.Sprintf("%s: %s", status, item.Message)
	}

	counter := fmt.Sprintf("[%d/%d]", index+1, t.total)
	return fmt.Sprintf("  %s %s  %s  %s", sym, t.dim(counter), item.Name, t.dim("("+status+")"))
}

func (t *Tracker) color(code, text string) string {
	if !t.useColor {
		return text
	}
	return code + text + "\033[0m"
}

func (t *Tracker) dim(text string) string {
	return t.color("\033[2m", text)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second

	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Summary returns a summary string of the tracked patches
func (t *Tracker) Summary() string {
	var totalDuration time.Duration
	successCount := 0
	skipCount := 0
	failCount := 0

	for _, item := range t.items {
		totalDuration += item.Duration
		switch item.Status {
		case StatusSuccess:
			successCount++
		case StatusSkipped:
			skipCount++
		case StatusFailed:
			failCount++
		}
	}

	parts := []string{fmt.Sprintf("%d succeeded", successCount)}
	if skipCount > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", skipCount))
	}
	if failCount > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failCount))
	}

	return fmt.Sprintf("%s in %s", strings.Join(parts, ", "), formatDuration(totalDuration))
}
