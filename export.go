package siftsweep

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// descriptor dump file layout: magic, uint32 row count, uint32 vector
// dimension, then rows*dims little-endian float16 values in row-major
// order
var descMagic = [4]byte{'S', 'F', 'D', '1'}

// header bounds checked before allocating; a corrupt or hostile dump
// must not control the allocation size
const (
	maxDescriptorRows = 1 << 20
	maxDescriptorDims = 1 << 10
)

// ArtifactName builds a file name that encodes the contrast and edge
// threshold of a configuration, so artifacts from different grid points
// never overwrite each other while repeated runs of the same ParameterSet
// overwrite their own prior output.
func ArtifactName(prefix string, p Params, ext string) string {
	return fmt.Sprintf("%s_contrast%.3f_edge%g%s",
		prefix, p.ContrastThreshold, p.EdgeThreshold, ext)
}

// SaveDescriptors writes a descriptor matrix to path in the
// half-precision dump format
func SaveDescriptors(desc [][]float32, path string) error {

	f, err := os.Create(path)

	if err != nil {
		return fmt.Errorf("descriptor dump %s: %w", path, err)
	}

	defer f.Close()

	if err := writeDescriptors(f, desc); err != nil {
		return fmt.Errorf("descriptor dump %s: %w", path, err)
	}

	return nil
}

// LoadDescriptors reads a descriptor matrix written by SaveDescriptors
func LoadDescriptors(path string) ([][]float32, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("descriptor load %s: %w", path, err)
	}

	defer f.Close()

	desc, err := readDescriptors(f)

	if err != nil {
		return nil, fmt.Errorf("descriptor load %s: %w", path, err)
	}

	return desc, nil
}

func writeDescriptors(w io.Writer, desc [][]float32) error {

	dims := 0

	if len(desc) > 0 {
		dims = len(desc[0])
	}

	if _, err := w.Write(descMagic[:]); err != nil {
		return err
	}

	hdr := [2]uint32{uint32(len(desc)), uint32(dims)}

	if err := binary.Write(w, binary.LittleEndian, hdr[:]); err != nil {
		return err
	}

	return binary.Write(w, binary.LittleEndian, descriptorsToF16(desc))
}

func readDescriptors(r io.Reader) ([][]float32, error) {

	var magic [4]byte

	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, err
	}

	if magic != descMagic {
		return nil, fmt.Errorf("bad magic %q", magic[:])
	}

	var hdr [2]uint32

	if err := binary.Read(r, binary.LittleEndian, hdr[:]); err != nil {
		return nil, err
	}

	if hdr[0] == 0 {
		return nil, nil
	}

	if hdr[0] > maxDescriptorRows || hdr[1] == 0 || hdr[1] > maxDescriptorDims {
		return nil, fmt.Errorf("implausible header: %d rows x %d dims", hdr[0], hdr[1])
	}

	rows, dims := int(hdr[0]), int(hdr[1])

	bits := make([]uint16, rows*dims)

	if err := binary.Read(r, binary.LittleEndian, bits); err != nil {
		return nil, err
	}

	return descriptorsFromF16(bits, dims), nil
}
