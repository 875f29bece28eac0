package siftsweep

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// SyntheticBlobs renders an 800x600 white canvas with seven solid
// circular blobs of varying radius and shading.  It gives the sweep a
// deterministic input when no real image is supplied and backs the
// end-to-end tests.  The caller owns the returned Mat.
func SyntheticBlobs() gocv.Mat {

	img := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(255, 255, 255, 0), 600, 800, gocv.MatTypeCV8UC3)

	blobs := []struct {
		center image.Point
		radius int
		shade  uint8
	}{
		{image.Pt(150, 150), 40, 0},
		{image.Pt(400, 150), 60, 100},
		{image.Pt(650, 150), 80, 50},
		{image.Pt(200, 350), 50, 0},
		{image.Pt(450, 350), 70, 80},
		{image.Pt(150, 500), 30, 0},
		{image.Pt(550, 450), 90, 60},
	}

	for _, b := range blobs {
		c := color.RGBA{R: b.shade, G: b.shade, B: b.shade, A: 255}
		gocv.Circle(&img, b.center, b.radius, c, -1)
	}

	return img
}
