package siftsweep

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadImageMissingFile(t *testing.T) {

	_, err := LoadImage(filepath.Join(t.TempDir(), "no-such-image.jpg"))

	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("LoadImage(missing) error = %v; want ErrFileNotFound", err)
	}
}

func TestLoadImageDecodeFailure(t *testing.T) {

	path := filepath.Join(t.TempDir(), "garbage.jpg")

	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := LoadImage(path)

	if !errors.Is(err, ErrDecode) {
		t.Errorf("LoadImage(garbage) error = %v; want ErrDecode", err)
	}
}

func TestSaveAndLoadImage(t *testing.T) {

	img := SyntheticBlobs()
	defer img.Close()

	path := filepath.Join(t.TempDir(), "blobs.png")

	if err := SaveImage(img, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	loaded, err := LoadImage(path)

	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	defer loaded.Close()

	if loaded.Rows() != img.Rows() || loaded.Cols() != img.Cols() {
		t.Errorf("loaded image is %dx%d; want %dx%d",
			loaded.Cols(), loaded.Rows(), img.Cols(), img.Rows())
	}
}
