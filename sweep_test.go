package siftsweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"gocv.io/x/gocv"
)

// fakeDetector yields a deterministic keypoint count derived from the
// tuning values so tests can verify grid ordering without OpenCV's SIFT
type fakeDetector struct {
	// failContrast poisons one contrast value with a detector error
	failContrast float64
}

func (f *fakeDetector) Detect(img gocv.Mat, p Params) ([]Keypoint, error) {

	if f.failContrast != 0 && p.ContrastThreshold == f.failContrast {
		return nil, fmt.Errorf("%w: poisoned contrast %g",
			ErrInvalidParameters, p.ContrastThreshold)
	}

	n := int(math.Round(p.ContrastThreshold*1000)) + int(p.EdgeThreshold)
	kps := make([]Keypoint, n)

	for i := range kps {
		kps[i] = Keypoint{X: float64(i), Y: float64(i), Size: 2}
	}

	return kps, nil
}

func (f *fakeDetector) Compute(img gocv.Mat, kps []Keypoint, p Params) ([]Keypoint, [][]float32, error) {

	desc := make([][]float32, len(kps))

	for i := range desc {
		desc[i] = make([]float32, DescriptorSize)
	}

	return kps, desc, nil
}

func (f *fakeDetector) DetectAndCompute(img gocv.Mat, p Params) ([]Keypoint, [][]float32, error) {

	kps, err := f.Detect(img, p)

	if err != nil {
		return nil, nil, err
	}

	return f.Compute(img, kps, p)
}

func testGrid(t *testing.T) *Grid {

	t.Helper()

	grid, err := NewGrid(
		Axis{Name: AxisContrastThreshold, Values: []float64{0.01, 0.04, 0.08}},
		Axis{Name: AxisEdgeThreshold, Values: []float64{5, 10, 15}},
	)

	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	return grid
}

func TestSweepPreservesGridOrder(t *testing.T) {

	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer img.Close()

	grid := testGrid(t)

	// several workers so execution order differs from grid order
	sweeper := NewSweeper(&fakeDetector{})
	sweeper.Workers = 4

	results, err := sweeper.Run(context.Background(), img, grid)

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 9 {
		t.Fatalf("got %d results; want 9", len(results))
	}

	// results must be reassembled into deterministic grid order
	wantCounts := []int{15, 20, 25, 45, 50, 55, 85, 90, 95}

	for i, res := range results {
		if res.Count != wantCounts[i] {
			t.Errorf("result %d count = %d; want %d", i, res.Count, wantCounts[i])
		}

		if len(res.Keypoints) != res.Count {
			t.Errorf("result %d retained %d keypoints; want %d",
				i, len(res.Keypoints), res.Count)
		}
	}
}

func TestSweepSerialMatchesParallel(t *testing.T) {

	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer img.Close()

	grid := testGrid(t)

	serial := NewSweeper(&fakeDetector{})
	serial.Workers = 1

	parallel := NewSweeper(&fakeDetector{})
	parallel.Workers = 8

	serialRes, err := serial.Run(context.Background(), img, grid)

	if err != nil {
		t.Fatalf("serial Run failed: %v", err)
	}

	parallelRes, err := parallel.Run(context.Background(), img, grid)

	if err != nil {
		t.Fatalf("parallel Run failed: %v", err)
	}

	for i := range serialRes {
		if serialRes[i].Count != parallelRes[i].Count {
			t.Errorf("result %d: serial=%d parallel=%d",
				i, serialRes[i].Count, parallelRes[i].Count)
		}
	}
}

func TestSweepRecordsNoSignal(t *testing.T) {

	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer img.Close()

	grid, err := NewGrid(
		Axis{Name: AxisContrastThreshold, Values: []float64{0.04}},
	)

	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	sweeper := NewSweeper(&zeroDetector{})

	results, err := sweeper.Run(context.Background(), img, grid)

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// zero keypoints is a valid result, recorded not skipped
	if len(results) != 1 {
		t.Fatalf("got %d results; want 1", len(results))
	}

	if results[0].Failed() {
		t.Errorf("NoSignal recorded as failure: %v", results[0].Err)
	}

	if results[0].Count != 0 {
		t.Errorf("Count = %d; want 0", results[0].Count)
	}
}

// zeroDetector always finds nothing
type zeroDetector struct{}

func (z *zeroDetector) Detect(img gocv.Mat, p Params) ([]Keypoint, error) {
	return nil, nil
}

func (z *zeroDetector) Compute(img gocv.Mat, kps []Keypoint, p Params) ([]Keypoint, [][]float32, error) {
	return nil, nil, nil
}

func (z *zeroDetector) DetectAndCompute(img gocv.Mat, p Params) ([]Keypoint, [][]float32, error) {
	return nil, nil, nil
}

func TestSweepStrictModeAborts(t *testing.T) {

	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer img.Close()

	grid := testGrid(t)

	sweeper := NewSweeper(&fakeDetector{failContrast: 0.04})
	sweeper.Workers = 1

	_, err := sweeper.Run(context.Background(), img, grid)

	if !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("Run error = %v; want wrapped ErrInvalidParameters", err)
	}
}

func TestSweepCancelledContext(t *testing.T) {

	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer img.Close()

	grid := testGrid(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// cancellation aborts in both modes, even best-effort
	for _, bestEffort := range []bool{false, true} {
		sweeper := NewSweeper(&fakeDetector{})
		sweeper.BestEffort = bestEffort

		_, err := sweeper.Run(ctx, img, grid)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("best-effort=%v: Run error = %v; want context.Canceled",
				bestEffort, err)
		}
	}
}

func TestSweepBestEffortRecordsFailures(t *testing.T) {

	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer img.Close()

	grid := testGrid(t)

	sweeper := NewSweeper(&fakeDetector{failContrast: 0.04})
	sweeper.BestEffort = true

	results, err := sweeper.Run(context.Background(), img, grid)

	if err != nil {
		t.Fatalf("Run failed in best-effort mode: %v", err)
	}

	if len(results) != 9 {
		t.Fatalf("got %d results; want 9", len(results))
	}

	failed := 0

	for i, res := range results {
		if res.Failed() {
			failed++

			// failure markers carry the offending grid point
			if !errors.Is(res.Err, ErrInvalidParameters) {
				t.Errorf("result %d error = %v; want wrapped ErrInvalidParameters",
					i, res.Err)
			}
		}
	}

	// the three grid points with contrast 0.04 fail, the rest succeed
	if failed != 3 {
		t.Errorf("failed results = %d; want 3", failed)
	}

	// selection must still work and never pick a failed point
	best, err := SelectBest(results, nil)

	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}

	if best.Result.Failed() {
		t.Error("selection chose a failed grid point")
	}
}

func TestSweepEmptyImage(t *testing.T) {

	grid := testGrid(t)

	sweeper := NewSweeper(&fakeDetector{})

	_, err := sweeper.Run(context.Background(), gocv.NewMat(), grid)

	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Run(empty image) error = %v; want ErrInvalidImage", err)
	}
}
