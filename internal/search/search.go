// Package search combines a volume handle, the MFT enumerator, the path
// resolver and a name predicate into a single per-volume scan.
package search

import (
	"context"
	"fmt"

	"github.com/mftfind/mftfind/internal/mft"
	"github.com/mftfind/mftfind/internal/ntfs"
	"github.com/mftfind/mftfind/internal/pathresolve"
	"github.com/mftfind/mftfind/internal/predicate"
	"github.com/mftfind/mftfind/internal/volume"
)

// Result is one matched record, fully resolved to a path.
type Result struct {
	Letter byte
	Path   string
}

// RecordError reports a per-record failure (path resolution cycle,
// excessive depth, or an overlong name). The record is dropped; the scan
// continues.
type RecordError struct {
	Letter byte
	FRN    uint64
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("search: %c: frn %#x: %s", e.Letter, e.FRN, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Options configures a single-volume scan.
type Options struct {
	Predicate predicate.Predicate
	Folders   bool // match directories instead of files

	// OnRecordError, if non-nil, is called for every dropped record
	// (path resolution failure). The scan continues after each call.
	OnRecordError func(*RecordError)
}

// controller is the subset of *volume.Handle the scan needs to drive both
// the enumerator and the path resolver.
type controller interface {
	Control(code uint32, in, out []byte) (uint32, error)
}

// Scan walks every record on the volume identified by letter, yielding
// full paths for records whose directory-ness matches opts.Folders and
// whose decoded name satisfies opts.Predicate. It returns the number of
// records examined by the predicate path — every record the enumerator
// produced, including ones skipped purely by the directory filter.
//
// Scan owns the volume handle it opens and releases it on every exit path.
func Scan(ctx context.Context, letter byte, opts Options, emit func(Result) error) (searched int64, err error) {
	h, err := volume.Open(letter)
	if err != nil {
		return 0, err
	}
	defer h.Close()

	return scan(ctx, h, letter, opts, emit)
}

// scan is Scan's OS-independent core: it never touches volume.Open,
// so tests can exercise it against a fake controller on any platform.
func scan(ctx context.Context, h controller, letter byte, opts Options, emit func(Result) error) (int64, error) {
	enumerator := mft.NewWithController(h, letter, mft.DefaultPageSize)

	var count int64
	enumErr := enumerator.Enumerate(ctx, func(rec ntfs.Record) error {
		count++

		if rec.IsDirectory() != opts.Folders {
			return nil
		}
		if !opts.Predicate.Match(rec.Name) {
			return nil
		}

		path, resolveErr := pathresolve.Resolve(h, rec.FileReferenceNumber, letter)
		if resolveErr != nil {
			if opts.OnRecordError != nil {
				opts.OnRecordError(&RecordError{Letter: letter, FRN: rec.FileReferenceNumber, Err: resolveErr})
			}
			return nil
		}

		return emit(Result{Letter: letter, Path: path})
	})

	return count, enumErr
}
