package siftsweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// SweepResult records one grid point's outcome: the grid values, the
// resolved detector tuning, and the full keypoint sequence so downstream
// selection and visualization can reuse it without re-detecting.  In
// best-effort mode a failed grid point carries Err instead of keypoints.
// Results are never mutated after the sweep appends them.
type SweepResult struct {
	Set       ParameterSet
	Params    Params
	Keypoints []Keypoint
	Count     int
	Err       error
}

// Failed reports whether this grid point was recorded as a best-effort
// failure marker
func (r SweepResult) Failed() bool {
	return r.Err != nil
}

// Sweeper runs a detector across every point of a parameter grid.  Grid
// points are independent: each reads the shared immutable image and its
// own ParameterSet, so they dispatch across a fixed-size worker pool and
// reassemble into grid order before being returned.
type Sweeper struct {
	// Detector is the keypoint primitive invoked per grid point
	Detector Detector
	// Base supplies tuning values for axes the grid does not sweep
	Base Params
	// Workers bounds the pool size, 0 means runtime.NumCPU()
	Workers int
	// BestEffort records per grid point detector failures as failure
	// markers instead of aborting the whole sweep
	BestEffort bool
}

// NewSweeper returns a sweeper with default tuning as the base
// configuration
func NewSweeper(d Detector) *Sweeper {
	return &Sweeper{
		Detector: d,
		Base:     DefaultParams(),
	}
}

type sweepJob struct {
	idx int
	set ParameterSet
}

// Run detects keypoints at every grid point and returns results in grid
// enumeration order.  A NoSignal outcome (zero keypoints) is recorded
// with count zero and the sweep continues.  In strict mode the first
// detector failure aborts the sweep; ctx is honored between grid points.
func (s *Sweeper) Run(ctx context.Context, img gocv.Mat, grid *Grid) ([]SweepResult, error) {

	if img.Empty() {
		return nil, fmt.Errorf("%w: sweep input", ErrInvalidImage)
	}

	if grid == nil || grid.Size() == 0 {
		return nil, ErrEmptyGrid
	}

	workers := s.Workers

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > grid.Size() {
		workers = grid.Size()
	}

	results := make([]SweepResult, grid.Size())
	jobs := make(chan sweepJob)

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once
	var failed atomic.Bool

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			failed.Store(true)
		})
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for job := range jobs {
				res := s.runPoint(img, job.set)

				if res.Err != nil && !s.BestEffort {
					fail(res.Err)
				}

				// each worker writes only its own grid slot
				results[job.idx] = res
			}
		}()
	}

	it := grid.Iter()
	idx := 0

dispatch:
	for {
		set, ok := it.Next()

		if !ok {
			break
		}

		// abort between grid points on cancellation or strict-mode failure
		if failed.Load() {
			break
		}

		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}

		select {
		case <-ctx.Done():
			fail(ctx.Err())
			break dispatch
		case jobs <- sweepJob{idx: idx, set: set}:
			idx++
		}
	}

	close(jobs)
	wg.Wait()

	// in best-effort mode only cancellation reaches here; detector
	// failures stay recorded as markers
	if firstErr != nil {
		return nil, firstErr
	}

	return results, nil
}

// runPoint evaluates a single grid point
func (s *Sweeper) runPoint(img gocv.Mat, set ParameterSet) SweepResult {

	res := SweepResult{Set: set}

	params, err := set.Apply(s.Base)

	if err != nil {
		res.Err = fmt.Errorf("sweep point [%s]: %w", set, err)
		return res
	}

	res.Params = params
	kps, err := s.Detector.Detect(img, params)

	if err != nil {
		res.Err = fmt.Errorf("sweep point [%s]: detect: %w", set, err)
		return res
	}

	res.Keypoints = kps
	res.Count = len(kps)

	return res
}
