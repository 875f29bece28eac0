package render

import (
	"fmt"
	"image"

	"github.com/cvkit/siftsweep"
	"gocv.io/x/gocv"
)

// Keypoints draws a rich keypoint overlay on a copy of img: a circle at
// each keypoint's scale with its orientation ray, plus a caption with the
// configuration and count.  The caller owns the returned Mat.
func Keypoints(img gocv.Mat, kps []siftsweep.Keypoint, p siftsweep.Params,
	font Font) gocv.Mat {

	out := gocv.NewMat()

	gkps := make([]gocv.KeyPoint, len(kps))

	for i, kp := range kps {
		gkps[i] = gocv.KeyPoint{
			X:        kp.X,
			Y:        kp.Y,
			Size:     kp.Size,
			Angle:    kp.Angle,
			Response: kp.Response,
			Octave:   kp.Octave,
			ClassID:  kp.ClassID,
		}
	}

	gocv.DrawKeyPoints(img, gkps, &out, Green, gocv.DrawRichKeyPoints)

	caption(&out, fmt.Sprintf("%s keypoints=%d", p, len(kps)), font)

	return out
}

// caption writes a label onto a filled box in the image's top left corner
// so it stays readable over the keypoint markers
func caption(img *gocv.Mat, text string, font Font) {

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	bRect := image.Rect(0, 0,
		textSize.X+2*font.LeftPad,
		textSize.Y+font.TopPad+font.BottomPad)

	gocv.Rectangle(img, bRect, Black, -1)

	textPos := image.Pt(font.LeftPad, textSize.Y+font.TopPad)

	gocv.PutTextWithParams(img, text, textPos,
		font.Face, font.Scale, font.Color, font.Thickness,
		font.LineType, false)
}
