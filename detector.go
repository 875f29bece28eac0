package siftsweep

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// Errors returned by the sweep pipeline.  Per grid point failures wrap
// ErrInvalidImage or ErrInvalidParameters with the parameter values that
// caused them.
var (
	// ErrInvalidImage is returned when the input image is empty or
	// could not be decoded
	ErrInvalidImage = errors.New("invalid image")
	// ErrInvalidParameters is returned when a tuning value lies outside
	// the detector's admissible range
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrEmptyGrid is returned for a grid with no axes or an empty axis
	ErrEmptyGrid = errors.New("empty parameter grid")
	// ErrEmptySweep is returned when selecting from zero sweep results
	ErrEmptySweep = errors.New("empty sweep")
	// ErrFileNotFound is returned when the image file does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrDecode is returned when the image file exists but cannot be decoded
	ErrDecode = errors.New("image decode failed")
)

// DescriptorSize is the dimension of a standard SIFT descriptor vector,
// a 4x4 grid of 8-bin orientation histograms
const DescriptorSize = 128

// AngleNotComputed is the sentinel angle value for keypoints whose
// orientation was not calculated
const AngleNotComputed = -1

// Keypoint is a detected point of interest.  It mirrors cv::KeyPoint:
// position, scale diameter, orientation in degrees (AngleNotComputed when
// not applicable), response strength (larger is stronger), pyramid octave
// (may be negative for upsampled levels) and an optional class tag.
// Keypoints are never mutated after detection.
type Keypoint struct {
	X        float64
	Y        float64
	Size     float64
	Angle    float64
	Response float64
	Octave   int
	ClassID  int
}

// Params holds the SIFT tuning values swept by this package.  Equality is
// by value.  The admissible ranges below are the documented bounds of the
// OpenCV primitive; Validate enforces them without clamping.
type Params struct {
	// ContrastThreshold filters out low-contrast keypoints in
	// semi-uniform regions.  Admissible (0, 1].
	ContrastThreshold float64
	// EdgeThreshold eliminates poorly localized edge responses.
	// Admissible [1, 100].
	EdgeThreshold float64
	// OctaveLayers is the number of layers in each octave of the
	// DoG pyramid.  Admissible [1, 8].
	OctaveLayers int
	// Sigma of the Gaussian applied to the input image at octave zero.
	// Admissible (0, 10].
	Sigma float64
}

// DefaultParams returns the OpenCV SIFT default tuning values
func DefaultParams() Params {
	return Params{
		ContrastThreshold: 0.04,
		EdgeThreshold:     10,
		OctaveLayers:      3,
		Sigma:             1.6,
	}
}

// Validate checks every tuning value against its admissible range
func (p Params) Validate() error {

	if p.ContrastThreshold <= 0 || p.ContrastThreshold > 1 {
		return fmt.Errorf("%w: contrast threshold %g out of range (0, 1]",
			ErrInvalidParameters, p.ContrastThreshold)
	}

	if p.EdgeThreshold < 1 || p.EdgeThreshold > 100 {
		return fmt.Errorf("%w: edge threshold %g out of range [1, 100]",
			ErrInvalidParameters, p.EdgeThreshold)
	}

	if p.OctaveLayers < 1 || p.OctaveLayers > 8 {
		return fmt.Errorf("%w: octave layers %d out of range [1, 8]",
			ErrInvalidParameters, p.OctaveLayers)
	}

	if p.Sigma <= 0 || p.Sigma > 10 {
		return fmt.Errorf("%w: sigma %g out of range (0, 10]",
			ErrInvalidParameters, p.Sigma)
	}

	return nil
}

// String formats the tuning values for logs and artifact names
func (p Params) String() string {
	return fmt.Sprintf("contrast=%.3f edge=%g layers=%d sigma=%g",
		p.ContrastThreshold, p.EdgeThreshold, p.OctaveLayers, p.Sigma)
}

// Detector is the capability contract for the keypoint/descriptor
// primitive.  Any backend honoring it can be swept; the rest of the
// pipeline never touches the primitive directly.
//
// All three calls treat zero detected keypoints as a valid empty result,
// not an error.  Compute may drop keypoints the primitive cannot
// describe, in which case the returned keypoint slice is filtered in
// lockstep with the descriptors.  DetectAndCompute is observably
// equivalent to Detect followed by Compute with the same image and
// params.
type Detector interface {
	Detect(img gocv.Mat, p Params) ([]Keypoint, error)
	Compute(img gocv.Mat, kps []Keypoint, p Params) ([]Keypoint, [][]float32, error)
	DetectAndCompute(img gocv.Mat, p Params) ([]Keypoint, [][]float32, error)
}
