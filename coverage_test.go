package siftsweep

import (
	"testing"
)

func TestCoverageSquareHull(t *testing.T) {

	// four keypoints spanning a 100x100 square, size 10 so the hull is
	// inflated by radius 5
	kps := []Keypoint{
		{X: 100, Y: 100, Size: 10},
		{X: 200, Y: 100, Size: 10},
		{X: 200, Y: 200, Size: 10},
		{X: 100, Y: 200, Size: 10},
	}

	cov := Coverage(kps, 400, 400)

	if IsUndefined(cov) {
		t.Fatal("coverage undefined for a proper hull")
	}

	// raw hull area is 10000; the round offset adds perimeter*delta plus
	// corner arcs, bounded by (100+2*5)^2
	lo := 10000.0 / 160000.0
	hi := 12200.0 / 160000.0

	if cov < lo || cov > hi {
		t.Errorf("coverage = %g; want within [%g, %g]", cov, lo, hi)
	}
}

func TestCoverageTooFewPoints(t *testing.T) {

	kps := []Keypoint{
		{X: 10, Y: 10, Size: 2},
		{X: 20, Y: 20, Size: 2},
	}

	if cov := Coverage(kps, 100, 100); !IsUndefined(cov) {
		t.Errorf("coverage = %g for 2 points; want undefined", cov)
	}

	if cov := Coverage(nil, 100, 100); !IsUndefined(cov) {
		t.Errorf("coverage = %g for empty set; want undefined", cov)
	}
}

func TestCoverageCollinearPoints(t *testing.T) {

	kps := []Keypoint{
		{X: 10, Y: 10, Size: 2},
		{X: 20, Y: 20, Size: 2},
		{X: 30, Y: 30, Size: 2},
	}

	if cov := Coverage(kps, 100, 100); !IsUndefined(cov) {
		t.Errorf("coverage = %g for collinear points; want undefined", cov)
	}
}

func TestCoverageClampsToOne(t *testing.T) {

	// enormous keypoints on a tiny image spill past the edges
	kps := []Keypoint{
		{X: 2, Y: 2, Size: 100},
		{X: 8, Y: 2, Size: 100},
		{X: 8, Y: 8, Size: 100},
		{X: 2, Y: 8, Size: 100},
	}

	cov := Coverage(kps, 10, 10)

	if IsUndefined(cov) {
		t.Fatal("coverage undefined for a proper hull")
	}

	if cov != 1 {
		t.Errorf("coverage = %g; want clamped to 1", cov)
	}
}

func TestConvexHullDropsInteriorPoints(t *testing.T) {

	kps := []Keypoint{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
		{X: 5, Y: 5}, // interior
	}

	hull := convexHull(kps)

	if len(hull) != 4 {
		t.Fatalf("hull has %d vertices; want 4", len(hull))
	}

	for _, pt := range hull {
		if pt[0] == 5 && pt[1] == 5 {
			t.Error("interior point appears on the hull")
		}
	}
}
