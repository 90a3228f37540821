//go:build !windows

package logging

// isTerminal always reports false off Windows: mftfind only ever runs its
// real console on Windows, and this build exists for development and
// tests, not interactive use.
func isTerminal(fd uintptr) bool { return false }
