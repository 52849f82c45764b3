//go:build windows

package progress

import (
	"golang.org/x/sys/windows"
)

const enableVirtualTerminalProcessing = 0x0004

// enableVirtualTerminal switches the console behind fd into VT mode so ANSI
// sequences are interpreted. It reports false for consoles that refuse.
func enableVirtualTerminal(fd uintptr) bool {
	handle := windows.Handle(fd)

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(handle, mode|enableVirtualTerminalProcessing) == nil
}
