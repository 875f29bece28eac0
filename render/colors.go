package render

import "image/color"

var (
	// barColors paints the chart bars, one color per configuration
	barColors = []color.RGBA{
		{R: 52, G: 152, B: 219, A: 255},  // #3498DB
		{R: 231, G: 76, B: 60, A: 255},   // #E74C3C
		{R: 46, G: 204, B: 113, A: 255},  // #2ECC71
		{R: 255, G: 178, B: 29, A: 255},  // #FFB21D
		{R: 132, G: 56, B: 255, A: 255},  // #8438FF
		{R: 0, G: 212, B: 187, A: 255},   // #00D4BB
		{R: 255, G: 112, B: 31, A: 255},  // #FF701F
		{R: 52, G: 69, B: 147, A: 255},   // #344593
		{R: 255, G: 55, B: 199, A: 255},  // #FF37C7
		{R: 26, G: 147, B: 52, A: 255},   // #1A9334
		{R: 100, G: 115, B: 255, A: 255}, // #6473FF
		{R: 203, G: 56, B: 255, A: 255},  // #CB38FF
	}

	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)
