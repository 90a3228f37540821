//go:build windows

package pathresolve

import (
	"errors"

	"golang.org/x/sys/windows"
)

// isBufferTooSmall reports whether err is the OS signalling that the
// output buffer passed to DeviceIoControl could not hold the record.
func isBufferTooSmall(err error) bool {
	return errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) || errors.Is(err, windows.ERROR_MORE_DATA)
}
