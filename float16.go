package siftsweep

import "github.com/x448/float16"

var f16LookupTable [65536]float32

func init() {
	// precompute float16 lookup table for faster conversion to float32
	for i := range f16LookupTable {
		f16 := float16.Frombits(uint16(i))
		f16LookupTable[i] = f16.Float32()
	}
}

// descriptorsToF16 flattens a descriptor matrix into half-precision bits
// in row-major order.  SIFT descriptor elements are small non-negative
// gradient magnitudes well within float16 range, so the narrowing halves
// storage at negligible precision cost.
func descriptorsToF16(desc [][]float32) []uint16 {

	if len(desc) == 0 {
		return nil
	}

	out := make([]uint16, 0, len(desc)*len(desc[0]))

	for _, vec := range desc {
		for _, v := range vec {
			out = append(out, float16.Fromfloat32(v).Bits())
		}
	}

	return out
}

// descriptorsFromF16 rebuilds a descriptor matrix from half-precision
// bits, dims elements per row
func descriptorsFromF16(bits []uint16, dims int) [][]float32 {

	if dims <= 0 || len(bits) == 0 || len(bits)%dims != 0 {
		return nil
	}

	rows := len(bits) / dims
	out := make([][]float32, rows)

	for r := 0; r < rows; r++ {
		vec := make([]float32, dims)

		for c := 0; c < dims; c++ {
			vec[c] = f16LookupTable[bits[r*dims+c]]
		}

		out[r] = vec
	}

	return out
}
