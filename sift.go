package siftsweep

import (
	"fmt"

	"gocv.io/x/gocv"
)

// SIFT adapts OpenCV's SIFT primitive to the Detector contract.  A fresh
// underlying detector is created per call so each grid point runs with
// its own tuning values and no state is shared across goroutines.
type SIFT struct{}

// NewSIFT returns a SIFT detector adapter
func NewSIFT() *SIFT {
	return &SIFT{}
}

// Detect finds keypoints in img using the given tuning values.  Zero
// keypoints is a valid empty result.
func (s *SIFT) Detect(img gocv.Mat, p Params) ([]Keypoint, error) {

	gray, cleanup, err := s.prepare(img, p)

	if err != nil {
		return nil, err
	}

	defer cleanup()

	sift := newSIFTWithParams(p)
	defer sift.Close()

	return fromGoCVKeyPoints(sift.Detect(gray)), nil
}

// Compute calculates descriptors for the given keypoints.  The primitive
// may drop keypoints it cannot describe; the returned keypoint slice is
// filtered in lockstep so len(keypoints) == len(descriptors) always holds.
func (s *SIFT) Compute(img gocv.Mat, kps []Keypoint, p Params) ([]Keypoint, [][]float32, error) {

	gray, cleanup, err := s.prepare(img, p)

	if err != nil {
		return nil, nil, err
	}

	defer cleanup()

	sift := newSIFTWithParams(p)
	defer sift.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	outKps, descMat := sift.Compute(gray, mask, toGoCVKeyPoints(kps))
	defer descMat.Close()

	return fromGoCVKeyPoints(outKps), descriptorsFromMat(descMat), nil
}

// DetectAndCompute is the fused form of Detect followed by Compute with
// the same image and params
func (s *SIFT) DetectAndCompute(img gocv.Mat, p Params) ([]Keypoint, [][]float32, error) {

	gray, cleanup, err := s.prepare(img, p)

	if err != nil {
		return nil, nil, err
	}

	defer cleanup()

	sift := newSIFTWithParams(p)
	defer sift.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	kps, descMat := sift.DetectAndCompute(gray, mask)
	defer descMat.Close()

	return fromGoCVKeyPoints(kps), descriptorsFromMat(descMat), nil
}

// prepare validates inputs and converts multi-channel images to
// grayscale.  The returned cleanup must be called once the grayscale Mat
// is no longer needed.
func (s *SIFT) prepare(img gocv.Mat, p Params) (gocv.Mat, func(), error) {

	if img.Empty() {
		return gocv.Mat{}, nil, fmt.Errorf("%w: empty input image", ErrInvalidImage)
	}

	if err := p.Validate(); err != nil {
		return gocv.Mat{}, nil, err
	}

	if img.Channels() == 1 {
		// already grayscale, nothing to release
		return img, func() {}, nil
	}

	gray := gocv.NewMat()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	return gray, func() { gray.Close() }, nil
}

// newSIFTWithParams builds the underlying primitive with explicit tuning
// values.  nFeatures stays 0 so no keypoints are culled by count.
func newSIFTWithParams(p Params) gocv.SIFT {

	nFeatures := 0
	layers := p.OctaveLayers
	contrast := p.ContrastThreshold
	edge := p.EdgeThreshold
	sigma := p.Sigma

	return gocv.NewSIFTWithParams(&nFeatures, &layers, &contrast, &edge, &sigma)
}

// descriptorsFromMat copies a CV_32F descriptor matrix into row slices.
// A nil/empty Mat (no keypoints described) yields an empty set.
func descriptorsFromMat(m gocv.Mat) [][]float32 {

	if m.Empty() {
		return nil
	}

	rows := m.Rows()
	cols := m.Cols()
	out := make([][]float32, rows)

	for r := 0; r < rows; r++ {
		vec := make([]float32, cols)

		for c := 0; c < cols; c++ {
			vec[c] = m.GetFloatAt(r, c)
		}

		out[r] = vec
	}

	return out
}

func fromGoCVKeyPoints(kps []gocv.KeyPoint) []Keypoint {

	out := make([]Keypoint, len(kps))

	for i, kp := range kps {
		out[i] = Keypoint{
			X:        kp.X,
			Y:        kp.Y,
			Size:     kp.Size,
			Angle:    kp.Angle,
			Response: kp.Response,
			Octave:   kp.Octave,
			ClassID:  kp.ClassID,
		}
	}

	return out
}

func toGoCVKeyPoints(kps []Keypoint) []gocv.KeyPoint {

	out := make([]gocv.KeyPoint, len(kps))

	for i, kp := range kps {
		out[i] = gocv.KeyPoint{
			X:        kp.X,
			Y:        kp.Y,
			Size:     kp.Size,
			Angle:    kp.Angle,
			Response: kp.Response,
			Octave:   kp.Octave,
			ClassID:  kp.ClassID,
		}
	}

	return out
}
