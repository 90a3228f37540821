//go:build windows

package mft

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isEndOfFile reports whether err is the OS's "no more files" signal for
// the enumeration control call, which the enumerator treats as a clean
// end of stream rather than a failure.
func isEndOfFile(err error) bool {
	return errors.Is(err, windows.ERROR_HANDLE_EOF)
}
