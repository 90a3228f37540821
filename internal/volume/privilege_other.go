//go:build !windows

package volume

// IsAdministrator always reports false off Windows: mftfind's privilege
// check only means something against a real Windows token.
func IsAdministrator() bool { return false }
