package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColors(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	restore := SetWriters(&stdout, &stderr)
	t.Cleanup(func() {
		restore()
		color.NoColor = previous
	})
	return &stdout, &stderr
}

func requireColorSupport(t *testing.T) {
	t.Helper()
	if _, set := os.LookupEnv("NO_COLOR"); set {
		t.Skip("NO_COLOR is set for this process")
	}
}

func TestColorsEnabled_RespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, ColorsEnabled())
}

func TestPrintHelpers_WriteToConfiguredStreams(t *testing.T) {
	stdout, stderr := withoutColors(t)

	PrintSuccess("applied")
	PrintInfo("dry run")
	PrintStep("step")
	PrintError("failed")
	PrintWarning("careful")

	assert.Equal(t, "+ applied\n* dry run\n  -> step\n", stdout.String())
	assert.Equal(t, "x failed\n! careful\n", stderr.String())
}

func TestStyles_AddEscapesOnlyWhenEnabled(t *testing.T) {
	requireColorSupport(t)
	withoutColors(t)
	assert.Equal(t, "text", Success("text"))

	color.NoColor = false
	assert.Equal(t, "\x1b[32mtext\x1b[0m", Success("text"))
}

func TestColorizeDiff(t *testing.T) {
	requireColorSupport(t)
	withoutColors(t)
	diff := "--- a/x\n+++ b/x\n@@ -1 +1 @@\n-old\n+new\n"

	assert.Equal(t, diff, ColorizeDiff(diff))
	assert.Empty(t, ColorizeDiff(""))

	color.NoColor = false
	colored := ColorizeDiff(diff)
	assert.Contains(t, colored, "\x1b[31m-old\x1b[0m")
	assert.Contains(t, colored, "\x1b[32m+new\x1b[0m")
	assert.Contains(t, colored, "\x1b[36m@@ -1 +1 @@\x1b[0m")
}

func TestPrintDiffStat(t *testing.T) {
	stdout, _ := withoutColors(t)

	PrintDiffStat("smali/A.smali", 3, 1)

	assert.Equal(t, "  smali/A.smali +3 -1\n", stdout.String())
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent("a\nb\n", "  "))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "file", Plural(1, "file", "files"))
	assert.Equal(t, "files", Plural(0, "file", "files"))
}
