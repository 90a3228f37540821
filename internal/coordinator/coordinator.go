// Package coordinator fans a search out across every selected volume in
// parallel, aggregating matches and counters from independent workers.
package coordinator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mftfind/mftfind/internal/predicate"
	"github.com/mftfind/mftfind/internal/search"
)

// VolumeStats is the per-volume breakdown of one run, used for the
// `--stats` table.
type VolumeStats struct {
	Letter   byte
	Searched int64
	Found    int64
	Elapsed  time.Duration
	Err      error // non-nil if the volume couldn't be opened or enumerated
}

// Summary aggregates the whole run across every worker.
type Summary struct {
	RunID     string
	Searched  int64
	Found     int64
	Volumes   int
	Elapsed   time.Duration
	PerVolume []VolumeStats
}

// Options configures a run across one or more volumes.
type Options struct {
	Predicate predicate.Predicate
	Folders   bool

	// OnRecordError, if non-nil, is called for every per-record failure
	// dropped by a worker (path resolution cycle, depth, or name length).
	OnRecordError func(*search.RecordError)
}

// scanVolume is the per-worker scan function. It is a package variable,
// not a direct call to search.Scan, so tests can substitute a fake
// volume without touching the real OS handle.
var scanVolume = search.Scan

// sink serializes concurrent writers so that a single emitted line is
// never interleaved with another, and tallies matches per worker index.
type sink struct {
	mu    sync.Mutex
	write func(search.Result) error
	total int64
	perVol []int64
}

func (s *sink) emit(i int, r search.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(r); err != nil {
		return err
	}
	s.perVol[i]++
	atomic.AddInt64(&s.total, 1)
	return nil
}

// Run spawns one worker per letter, each performing an independent
// search.Scan, and blocks until every worker has finished; cancelling ctx
// makes each worker stop at its next page boundary. write is called for every match across every worker under a
// mutex, so a single call never observes a partial line from another
// worker.
//
// A failure opening or enumerating one volume does not abort the others;
// it is recorded in that volume's VolumeStats.Err and the run continues.
// Every worker always returns nil from group.Go, so a single bad volume
// never cancels its siblings. Run's returned error reflects only ctx: nil
// on normal completion, ctx.Err() if the caller cancelled it.
func Run(ctx context.Context, letters []byte, opts Options, write func(search.Result) error) (Summary, error) {
	runStart := time.Now()

	stats := make([]VolumeStats, len(letters))
	out := &sink{write: write, perVol: make([]int64, len(letters))}

	group, gctx := errgroup.WithContext(ctx)

	for i, letter := range letters {
		i, letter := i, letter
		stats[i].Letter = letter

		group.Go(func() error {
			workerStart := time.Now()
			searched, err := scanVolume(gctx, letter, search.Options{
				Predicate:     opts.Predicate,
				Folders:       opts.Folders,
				OnRecordError: opts.OnRecordError,
			}, func(r search.Result) error { return out.emit(i, r) })

			stats[i].Searched = searched
			stats[i].Elapsed = time.Since(workerStart)
			if err != nil && gctx.Err() == nil {
				stats[i].Err = err
			}
			return nil
		})
	}

	group.Wait()

	var searched int64
	for i := range stats {
		stats[i].Found = out.perVol[i]
		searched += stats[i].Searched
	}

	return Summary{
		RunID:     uuid.New().String(),
		Searched:  searched,
		Found:     atomic.LoadInt64(&out.total),
		Volumes:   len(letters),
		Elapsed:   time.Since(runStart),
		PerVolume: stats,
	}, ctx.Err()
}
