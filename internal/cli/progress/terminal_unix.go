//go:build !windows

package progress

// enableVirtualTerminal reports ANSI support. Unix terminals have it built in.
func enableVirtualTerminal(uintptr) bool {
	return true
}
