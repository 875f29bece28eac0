package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ChartEntry is one bar of a comparison chart
type ChartEntry struct {
	Label string
	Value float64
}

const (
	chartBarWidth   = 64
	chartBarGap     = 24
	chartMarginX    = 40
	chartMarginTop  = 50
	chartPlotHeight = 300
	chartLabelBand  = 40
)

// BarChart renders the (label, value) pairs as a vertical bar chart on a
// white canvas, one bar per configuration with its value printed above
// and its label beneath.  Entries with NaN values draw as zero-height
// bars.  Returns an error when given no entries.
func BarChart(entries []ChartEntry, title string) (*image.RGBA, error) {

	if len(entries) == 0 {
		return nil, fmt.Errorf("bar chart: no entries")
	}

	width := 2*chartMarginX + len(entries)*chartBarWidth +
		(len(entries)-1)*chartBarGap
	height := chartMarginTop + chartPlotHeight + chartLabelBand

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(White), image.Point{}, draw.Src)

	maxVal := 0.0

	for _, e := range entries {
		if !math.IsNaN(e.Value) && e.Value > maxVal {
			maxVal = e.Value
		}
	}

	baseline := chartMarginTop + chartPlotHeight

	for i, e := range entries {
		v := e.Value

		if math.IsNaN(v) || v < 0 {
			v = 0
		}

		barH := 0

		if maxVal > 0 {
			barH = int(math.Round(v / maxVal * float64(chartPlotHeight)))
		}

		x0 := chartMarginX + i*(chartBarWidth+chartBarGap)
		bar := image.Rect(x0, baseline-barH, x0+chartBarWidth, baseline)
		clr := barColors[i%len(barColors)]

		draw.Draw(img, bar, image.NewUniform(clr), image.Point{}, draw.Src)

		// value above the bar, label beneath the baseline
		valText := fmt.Sprintf("%g", e.Value)
		drawTextCentered(img, valText, x0+chartBarWidth/2, baseline-barH-6)
		drawTextCentered(img, e.Label, x0+chartBarWidth/2, baseline+20)
	}

	// axis line and title
	axis := image.Rect(chartMarginX/2, baseline, width-chartMarginX/2, baseline+2)
	draw.Draw(img, axis, image.NewUniform(Black), image.Point{}, draw.Src)
	drawTextCentered(img, title, width/2, chartMarginTop/2)

	return img, nil
}

// drawTextCentered writes text horizontally centered on x with its
// baseline at y
func drawTextCentered(dst *image.RGBA, text string, x, y int) {

	face := basicfont.Face7x13

	dr := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 255}),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}

	// shift left by half the advance to center
	adv := dr.MeasureString(text)
	dr.Dot.X -= adv / 2

	dr.DrawString(text)
}
