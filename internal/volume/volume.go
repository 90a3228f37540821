// Package volume owns the lifetime of a raw handle to an NTFS volume and
// discovers which drive letters are ready, NTFS-formatted volumes.
package volume

import "fmt"

// Info describes one logical drive as reported by the OS.
type Info struct {
	Letter     byte
	FileSystem string
	Ready      bool
}

// IsNTFS reports whether the volume's reported filesystem name is NTFS.
func (i Info) IsNTFS() bool {
	return i.FileSystem == "NTFS"
}

// Path returns the volume's device path, e.g. `\\.\C:`.
func (i Info) Path() string {
	return fmt.Sprintf(`\\.\%c:`, i.Letter)
}

// OpenError is returned by Open when the device handle could not be
// acquired: the process may not be elevated, the letter may not name an
// NTFS volume, or the volume may not be ready.
type OpenError struct {
	Letter byte
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("volume: open %c: %s", e.Letter, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// driveLetters enumerates the 26 possible NTFS drive letters in order.
const driveLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
