package siftsweep

import (
	"math"
	"sort"

	clipper "github.com/ctessum/go.clipper"
)

// Coverage estimates the fraction of the image area reached by a keypoint
// set: the convex hull of the keypoint centers is inflated by the mean
// keypoint radius with a round polygon offset, and the offset polygon's
// area is taken relative to the image.  The result is clamped to [0, 1].
// Fewer than three keypoints span no polygon and yield the undefined
// sentinel.
func Coverage(kps []Keypoint, width, height int) float64 {

	if len(kps) < 3 || width <= 0 || height <= 0 {
		return Undefined()
	}

	hull := convexHull(kps)

	if len(hull) < 3 {
		// all points collinear
		return Undefined()
	}

	// mean keypoint radius is the inflation distance
	meanSize := 0.0

	for _, kp := range kps {
		meanSize += kp.Size
	}

	meanSize /= float64(len(kps))
	delta := meanSize / 2

	var path clipper.Path

	for _, pt := range hull {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(math.Round(pt[0])),
			Y: clipper.CInt(math.Round(pt[1])),
		})
	}

	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)
	solution := co.Execute(delta)

	area := 0.0

	for _, sol := range solution {
		area += polygonArea(sol)
	}

	cov := area / float64(width*height)

	// the offset hull may spill past the image edges
	if cov > 1 {
		cov = 1
	}

	return cov
}

// polygonArea computes the absolute shoelace area of a closed path
func polygonArea(path clipper.Path) float64 {

	n := len(path)

	if n < 3 {
		return 0
	}

	area := 0.0

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += float64(path[i].X)*float64(path[j].Y) -
			float64(path[i].Y)*float64(path[j].X)
	}

	return math.Abs(area / 2)
}

// convexHull returns the hull of the keypoint centers in counterclockwise
// order using the monotone chain construction
func convexHull(kps []Keypoint) [][2]float64 {

	pts := make([][2]float64, len(kps))

	for i, kp := range kps {
		pts[i] = [2]float64{kp.X, kp.Y}
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})

	n := len(pts)

	if n < 3 {
		return pts
	}

	cross := func(o, a, b [2]float64) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	hull := make([][2]float64, 0, 2*n)

	// lower hull
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// upper hull
	lower := len(hull) + 1

	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// last point duplicates the first
	return hull[:len(hull)-1]
}
