//go:build !windows

package pathresolve

// isBufferTooSmall never matches outside Windows.
func isBufferTooSmall(err error) bool { return false }
