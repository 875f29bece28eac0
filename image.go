package siftsweep

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// LoadImage reads an image from disk.  It fails with ErrFileNotFound when
// the path does not exist and ErrDecode when the file cannot be decoded.
// The caller owns the returned Mat and must Close it.
func LoadImage(path string) (gocv.Mat, error) {

	if _, err := os.Stat(path); err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	img := gocv.IMRead(path, gocv.IMReadColor)

	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("%w: %s", ErrDecode, path)
	}

	return img, nil
}

// SaveImage writes an image to disk, the format chosen by the file
// extension
func SaveImage(img gocv.Mat, path string) error {

	if img.Empty() {
		return fmt.Errorf("%w: refusing to save empty image to %s",
			ErrInvalidImage, path)
	}

	if ok := gocv.IMWrite(path, img); !ok {
		return fmt.Errorf("failed to write image to %s", path)
	}

	return nil
}
