// Package pathresolve reconstructs the full path of an MFT entry by
// chasing parent file-reference numbers back to the volume root.
package pathresolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mftfind/mftfind/internal/mft"
	"github.com/mftfind/mftfind/internal/ntfs"
)

// maxDepth bounds the parent-chain walk. Realistic MFT trees are ~32 levels
// deep at most; 256 leaves generous headroom while still guaranteeing
// termination against corrupt or cyclic parent pointers.
const maxDepth = 256

const (
	smallBufferSize = 512  // holds one record with a name up to ~200 UTF-16 units
	largeBufferSize = 4096 // fallback for longer names
)

// CycleError is returned when the same file reference number is visited
// twice while walking the parent chain.
type CycleError struct{ FRN uint64 }

func (e *CycleError) Error() string {
	return fmt.Sprintf("pathresolve: cycle detected resolving frn %#x", e.FRN)
}

// TooDeepError is returned when the parent chain exceeds maxDepth hops.
type TooDeepError struct{ FRN uint64 }

func (e *TooDeepError) Error() string {
	return fmt.Sprintf("pathresolve: frn %#x exceeds maximum resolution depth (%d)", e.FRN, maxDepth)
}

// NameTooLongError is returned when a record's name does not fit even the
// large fallback buffer.
type NameTooLongError struct{ FRN uint64 }

func (e *NameTooLongError) Error() string {
	return fmt.Sprintf("pathresolve: frn %#x has a name too long to resolve", e.FRN)
}

// errNotFound is returned internally when a lookup at a given FRN returns
// no record at all (the enumeration control yielded nothing from that
// start point).
var errNotFound = errors.New("pathresolve: no record at requested frn")

// controller is the subset of *volume.Handle the resolver needs.
type controller interface {
	Control(code uint32, in, out []byte) (uint32, error)
}

// Resolve reconstructs the full path of frn on the volume identified by
// letter, e.g. `C:\Users\me\file.txt`. If frn is the volume root, it
// returns just `C:`.
//
// If a stale or deleted entry is encountered partway up the parent chain
// (a lookup's FileReferenceNumber doesn't match the FRN requested), the
// walk stops there and the result omits the `X:` root prefix — the same
// terminal behaviour the original tool exhibits, preserved here rather
// than papered over, since a caller seeing an unprefixed result can still
// tell the entry didn't resolve cleanly to the root.
func Resolve(h controller, frn uint64, letter byte) (string, error) {
	if frn == ntfs.RootFRN {
		return fmt.Sprintf("%c:", letter), nil
	}

	names, hitRoot, err := walk(h, frn)
	if err != nil {
		return "", err
	}

	// names is leaf-to-root; reverse to root-to-leaf for joining.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	joined := strings.Join(names, `\`)

	if hitRoot {
		return fmt.Sprintf("%c:\\%s", letter, joined), nil
	}
	return joined, nil
}

func walk(h controller, frn uint64) (names []string, hitRoot bool, err error) {
	visited := make(map[uint64]struct{}, 8)
	current := frn

	for depth := 0; ; depth++ {
		if depth > maxDepth {
			return nil, false, &TooDeepError{FRN: frn}
		}
		if _, seen := visited[current]; seen {
			return nil, false, &CycleError{FRN: frn}
		}
		visited[current] = struct{}{}

		rec, err := lookup(h, current)
		if err != nil {
			return nil, false, err
		}
		names = append(names, rec.Name)

		if rec.FileReferenceNumber != current {
			// Stale or deleted entry: stop without looking at its parent.
			return names, false, nil
		}
		if rec.ParentFileReferenceNumber == ntfs.RootFRN {
			return names, true, nil
		}
		current = rec.ParentFileReferenceNumber
	}
}

// lookup fetches the single record at frn, retrying with a larger buffer
// when the name doesn't fit the fast-path stack-sized buffer.
func lookup(h controller, frn uint64) (ntfs.Record, error) {
	rec, err := tryLookup(h, frn, smallBufferSize)
	if isBufferTooSmall(err) {
		rec, err = tryLookup(h, frn, largeBufferSize)
		if isBufferTooSmall(err) {
			return ntfs.Record{}, &NameTooLongError{FRN: frn}
		}
	}
	return rec, err
}

func tryLookup(h controller, frn uint64, bufSize int) (ntfs.Record, error) {
	req := ntfs.RootEnumRequest(frn).Encode()
	buf := make([]byte, bufSize)

	n, err := h.Control(mft.FSCTL_ENUM_USN_DATA, req[:], buf)
	if err != nil {
		return ntfs.Record{}, err
	}

	page, err := ntfs.DecodePage(buf, int(n))
	if err != nil {
		return ntfs.Record{}, err
	}
	if len(page.Records) == 0 {
		return ntfs.Record{}, errNotFound
	}
	return page.Records[0], nil
}
