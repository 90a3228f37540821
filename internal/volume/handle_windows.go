//go:build windows

package volume

import (
	"golang.org/x/sys/windows"
)

// Handle owns a raw, read-sharing handle to `\\.\X:`. A Handle is owned by
// exactly one caller and must be closed exactly once; Close is idempotent.
type Handle struct {
	Letter byte
	raw    windows.Handle
}

// Open acquires a handle to the volume identified by letter, opened for
// read with read+write sharing so the volume stays usable by everything
// else on the system while it is being enumerated.
func Open(letter byte) (*Handle, error) {
	path, err := windows.UTF16PtrFromString(Info{Letter: letter}.Path())
	if err != nil {
		return nil, &OpenError{Letter: letter, Err: err}
	}

	h, err := windows.CreateFile(
		path,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, &OpenError{Letter: letter, Err: err}
	}
	return &Handle{Letter: letter, raw: h}, nil
}

// Close releases the underlying OS handle. Calling Close more than once, or
// on a Handle whose Open failed, is a no-op.
func (h *Handle) Close() error {
	if h == nil || h.raw == windows.InvalidHandle || h.raw == 0 {
		return nil
	}
	err := windows.CloseHandle(h.raw)
	h.raw = windows.InvalidHandle
	return err
}

// Control issues a DeviceIoControl call against the volume handle, writing
// up to len(out) bytes and returning how many were actually written.
func (h *Handle) Control(code uint32, in, out []byte) (uint32, error) {
	var inPtr *byte
	if len(in) > 0 {
		inPtr = &in[0]
	}
	var outPtr *byte
	if len(out) > 0 {
		outPtr = &out[0]
	}

	var n uint32
	err := windows.DeviceIoControl(h.raw, code, inPtr, uint32(len(in)), outPtr, uint32(len(out)), &n, nil)
	return n, err
}
