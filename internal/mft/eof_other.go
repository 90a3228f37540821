//go:build !windows

package mft

// isEndOfFile never matches outside Windows; Control always fails with
// volume.ErrUnsupported there, which Enumerate reports as an
// EnumerationError.
func isEndOfFile(err error) bool { return false }
