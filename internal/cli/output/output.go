package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Stdout and Stderr are where the Print helpers write. They wrap the
// process streams so ANSI sequences also work on Windows consoles.
var (
	Stdout io.Writer = color.Output
	Stderr io.Writer = color.Error
)

// ColorsEnabled returns true if terminal colors should be used.
// Respects NO_COLOR environment variable (https://no-color.org/)
func ColorsEnabled() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	if noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Configure decides once per process whether styling is emitted.
func Configure() {
	color.NoColor = !ColorsEnabled()
}

// SetWriters redirects output and returns a function restoring the previous writers.
func SetWriters(stdout, stderr io.Writer) func() {
	previousStdout, previousStderr := Stdout, Stderr
	Stdout, Stderr = stdout, stderr
	return func() {
		Stdout, Stderr = previousStdout, previousStderr
	}
}

var (
	boldStyle      = color.New(color.Bold)
	dimStyle       = color.New(color.Faint)
	successStyle   = color.New(color.FgGreen)
	errorStyle     = color.New(color.FgRed)
	warningStyle   = color.New(color.FgYellow)
	infoStyle      = color.New(color.FgCyan)
	headerStyle    = color.New(color.Bold, color.FgWhite)
	secondaryStyle = color.New(color.Faint, color.FgCyan)
)

// Symbols for CLI output (ASCII-compatible)
const (
	SymbolSuccess = "+"
	SymbolError   = "x"
	SymbolWarning = "!"
	SymbolInfo    = "*"
	SymbolSkipped = "="
	SymbolArrow   = "->"
	SymbolBullet  = "-"
)

func Bold(text string) string {
	return boldStyle.Sprint(text)
}

func Dim(text string) string {
	return dimStyle.Sprint(text)
}

// Success returns text styled for success messages
func Success(text string) string {
	return successStyle.Sprint(text)
}

// Error returns text styled for error messages
func Error(text string) string {
	return errorStyle.Sprint(text)
}

func Warning(text string) string {
	return warningStyle.Sprint(text)
}

func Info(text string) string {
	return infoStyle.Sprint(text)
}

// Header returns text styled as a section header
func Header(text string) string {
	return headerStyle.Sprint(text)
}

// Secondary returns text in dim cyan for secondary information
func Secondary(text string) string {
	return secondaryStyle.Sprint(text)
}

// PrintHeader prints a bold section header
func PrintHeader(text string) {
	fmt.Fprintln(Stdout, Header(text))
}

func PrintSuccess(message string) {
	fmt.Fprintf(Stdout, "%s %s\n", Success(SymbolSuccess), Success(message))
}

// PrintError prints an error message with X symbol to stderr
func PrintError(message string) {
	fmt.Fprintf(Stderr, "%s %s\n", Error(SymbolError), Error(message))
}

// PrintWarning prints a warning message with ! symbol to stderr
func PrintWarning(message string) {
	fmt.Fprintf(Stderr, "%s %s\n", Warning(SymbolWarning), Warning(message))
}

func PrintInfo(message string) {
	fmt.Fprintf(Stdout, "%s %s\n", Info(SymbolInfo), Info(message))
}

// PrintStep prints a step being executed with arrow
func PrintStep(message string) {
	fmt.Fprintf(Stdout, "  %s %s\n", SymbolArrow, message)
}

// PrintSecondary prints secondary/supplementary information
func PrintSecondary(message string) {
	fmt.Fprintf(Stdout, "  %s %s\n", SymbolArrow, Secondary(message))
}

// PrintLine prints message as it is.
func PrintLine(message string) {
	fmt.Fprintln(Stdout, message)
}

// Indent prefixes every line of text with prefix.
func Indent(text, prefix string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Plural returns the singular or plural form based on count
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
