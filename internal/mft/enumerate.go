// Package mft streams USN_RECORD_V2 entries out of a volume's Master File
// Table via the bulk FSCTL_ENUM_USN_DATA control code.
package mft

import (
	"context"
	"fmt"

	"github.com/mftfind/mftfind/internal/ntfs"
	"github.com/mftfind/mftfind/internal/volume"
)

// FSCTL_ENUM_USN_DATA is the control code for the bulk MFT enumeration
// request (winioctl.h).
const FSCTL_ENUM_USN_DATA = 0x000900B3

// DefaultPageSize is the size of the output buffer used for each
// enumeration call: large enough to amortize the syscall cost while
// staying well under typical kernel output limits. Implementations may
// tune this between 256 KiB and 4 MiB without changing behaviour.
const DefaultPageSize = 1 << 20 // 1 MiB

// EnumerationError wraps a mid-stream failure of the bulk enumeration
// control call. The stream terminates cleanly; records already yielded to
// the caller remain valid.
type EnumerationError struct {
	Letter byte
	Err    error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("mft: enumerate %c: %s", e.Letter, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// controller is the subset of *volume.Handle the enumerator needs. It is
// satisfied by *volume.Handle on every platform and by fakes in tests.
type controller interface {
	Control(code uint32, in, out []byte) (uint32, error)
}

// Enumerator issues paged FSCTL_ENUM_USN_DATA calls against a volume
// handle and decodes each page into records.
type Enumerator struct {
	handle   controller
	letter   byte
	pageSize int
}

// New builds an Enumerator reading pages of DefaultPageSize.
func New(h *volume.Handle) *Enumerator {
	return NewWithPageSize(h, DefaultPageSize)
}

// NewWithPageSize builds an Enumerator reading pages of the given size.
func NewWithPageSize(h *volume.Handle, pageSize int) *Enumerator {
	return &Enumerator{handle: h, letter: h.Letter, pageSize: pageSize}
}

// NewWithController builds an Enumerator against any controller, not just
// *volume.Handle. It exists so callers that already carry a controller
// (e.g. the search package, which also drives the path resolver with it)
// don't need a real volume.Handle to construct an Enumerator.
func NewWithController(h controller, letter byte, pageSize int) *Enumerator {
	return &Enumerator{handle: h, letter: letter, pageSize: pageSize}
}

// Enumerate walks the entire MFT from the beginning, calling fn once per
// USN record in kernel-returned order (roughly FRN-ascending). It stops
// when the kernel reports no more records, when fn returns an error (which
// Enumerate returns unchanged), when ctx is cancelled, or when the control
// call itself fails.
//
// The cancellation check happens at the top of the loop, i.e. at page
// boundaries: a cancelled context does not abort a page already in flight,
// but no further pages are requested after it fires.
func (e *Enumerator) Enumerate(ctx context.Context, fn func(ntfs.Record) error) error {
	buf := make([]byte, e.pageSize)
	var start uint64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		req := ntfs.RootEnumRequest(start).Encode()
		n, err := e.handle.Control(FSCTL_ENUM_USN_DATA, req[:], buf)
		if err != nil {
			if isEndOfFile(err) {
				return nil
			}
			return &EnumerationError{Letter: e.letter, Err: err}
		}

		page, err := ntfs.DecodePage(buf, int(n))
		if err != nil {
			return &EnumerationError{Letter: e.letter, Err: err}
		}
		if len(page.Records) == 0 {
			return nil
		}

		for _, rec := range page.Records {
			if err := fn(rec); err != nil {
				return err
			}
		}

		start = uint64(page.NextStartFRN)
	}
}
