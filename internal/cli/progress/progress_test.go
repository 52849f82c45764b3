package progress

import (
	"bytes"
	"testing"
	"time"

	"smalipatch/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func newTestTracker(isTTY bool) (*Tracker, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	caps := terminalCapabilities{supportsANSI: true, terminalWidth: 120}
	tracker := NewTrackerWithWriter(buf, isTTY, false, caps)
	clock := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	tracker.now = func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	}
	return tracker, buf
}

var (
	editPatch   = domain.Patch{Kind: domain.PatchFileEdit, FilePath: "smali/A.smali", Actions: make([]domain.Action, 2)}
	removePatch = domain.Patch{Kind: domain.PatchRemoveFile, FilePath: "smali/B.smali"}
)

func TestTracker_PlainOutput(t *testing.T) {
	tracker, buf := newTestTracker(false)

	tracker.PatchStarted(0, 2, editPatch)
	tracker.PatchFinished(domain.Result{Index: 0, Outcome: domain.OutcomeApplied, Message: "2 actions applied"})
	tracker.PatchStarted(1, 2, removePatch)
	tracker.PatchFinished(domain.Result{Index: 1, Outcome: domain.OutcomeFailed, Message: "not found"})

	assert.Equal(t,
		"[12:30:00] [1/2] Applying PATCH: smali/A.smali (2 actions)...\n"+
			"  + [1/2]  PATCH: smali/A.smali (2 actions)  (applied: 2 actions applied)\n"+
			"[12:30:00] [2/2] Applying REMOVE: smali/B.smali...\n"+
			"  x [2/2]  REMOVE: smali/B.smali  (FAILED: not found)\n",
		buf.String())
}

func TestTracker_TerminalReplacesRunningLine(t *testing.T) {
	tracker, buf := newTestTracker(true)

	tracker.PatchStarted(0, 1, removePatch)
	tracker.PatchFinished(domain.Result{Index: 0, Outcome: domain.OutcomeSkipped, Message: "not found"})

	assert.Equal(t,
		"  ~ [1/1]  REMOVE: smali/B.smali"+
			"\033[2K\r"+
			"  = [1/1]  REMOVE: smali/B.smali  (skipped: not found)\n",
		buf.String())
}

func TestTracker_ColoredSymbols(t *testing.T) {
	buf := &bytes.Buffer{}
	tracker := NewTrackerWithWriter(buf, false, true, terminalCapabilities{supportsANSI: true, terminalWidth: 80})

	tracker.PatchStarted(0, 1, removePatch)
	buf.Reset()
	tracker.PatchFinished(domain.Result{Index: 0, Outcome: domain.OutcomeApplied})

	assert.Contains(t, buf.String(), "\033[32m+\033[0m")
	assert.Contains(t, buf.String(), "\033[2m[1/1]\033[0m")
}

func TestTracker_Summary(t *testing.T) {
	tracker, _ := newTestTracker(false)
	outcomes := []domain.Outcome{domain.OutcomeApplied, domain.OutcomeCreated, domain.OutcomeSkipped, domain.OutcomeHunkFailed}

	for i, outcome := range outcomes {
		tracker.PatchStarted(i, len(outcomes), removePatch)
		tracker.PatchFinished(domain.Result{Index: i, Outcome: outcome})
	}

	assert.Equal(t, "2 succeeded, 1 skipped, 1 failed in 1s", tracker.Summary())
	assert.Equal(t, StatusFailed, tracker.items[3].Status)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{120 * time.Millisecond, "120ms"},
		{4 * time.Second, "4s"},
		{95 * time.Second, "1m 35s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatDuration(tt.duration))
	}
}
