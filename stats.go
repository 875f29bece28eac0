package siftsweep

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultSampleSize is the number of leading keypoints kept for
// inspection in KeypointStats.Sample
const DefaultSampleSize = 3

// Undefined is the sentinel value every statistic takes over an empty
// input.  It is NaN so it can never be mistaken for a legitimate zero.
func Undefined() float64 {
	return math.NaN()
}

// IsUndefined reports whether a statistic carries the undefined sentinel
func IsUndefined(v float64) bool {
	return math.IsNaN(v)
}

// Summary holds descriptive statistics of one keypoint attribute.  All
// fields are Undefined when computed over an empty sequence.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// KeypointStats aggregates a keypoint sequence: the count, size and
// response summaries, and a fixed-size sample of the first keypoints for
// inspection
type KeypointStats struct {
	Count    int
	Size     Summary
	Response Summary
	Sample   []Keypoint
}

// AggregateKeypoints computes descriptive statistics over a keypoint
// sequence.  sampleK bounds the inspection sample; sampleK <= 0 uses
// DefaultSampleSize.  An empty sequence yields count zero and the
// undefined sentinel in every numeric field.
func AggregateKeypoints(kps []Keypoint, sampleK int) KeypointStats {

	if sampleK <= 0 {
		sampleK = DefaultSampleSize
	}

	st := KeypointStats{
		Count:    len(kps),
		Size:     undefinedSummary(),
		Response: undefinedSummary(),
	}

	if len(kps) == 0 {
		return st
	}

	sizes := make([]float64, len(kps))
	responses := make([]float64, len(kps))

	for i, kp := range kps {
		sizes[i] = kp.Size
		responses[i] = kp.Response
	}

	st.Size = summarize(sizes)
	st.Response = summarize(responses)

	if sampleK > len(kps) {
		sampleK = len(kps)
	}

	st.Sample = make([]Keypoint, sampleK)
	copy(st.Sample, kps[:sampleK])

	return st
}

// DescriptorStats aggregates a descriptor matrix flattened across all
// elements of all vectors, not per dimension
type DescriptorStats struct {
	// Count is the number of descriptor vectors
	Count int
	// Dims is the vector length, constant within one compute call
	Dims int
	// flattened element statistics
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// AggregateDescriptors computes flattened statistics over all elements of
// all descriptor vectors.  The standard deviation is the population form,
// matching the convention of the descriptor analysis this replaces.  An
// empty set yields the undefined sentinel in every numeric field.
func AggregateDescriptors(desc [][]float32) DescriptorStats {

	st := DescriptorStats{
		Count:  len(desc),
		Min:    Undefined(),
		Max:    Undefined(),
		Mean:   Undefined(),
		StdDev: Undefined(),
	}

	if len(desc) == 0 {
		return st
	}

	st.Dims = len(desc[0])
	flat := make([]float64, 0, len(desc)*st.Dims)

	for _, vec := range desc {
		for _, v := range vec {
			flat = append(flat, float64(v))
		}
	}

	if len(flat) == 0 {
		return st
	}

	st.Min = flat[0]
	st.Max = flat[0]

	for _, v := range flat {
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}

	st.Mean = stat.Mean(flat, nil)
	st.StdDev = stat.PopStdDev(flat, nil)

	return st
}

func undefinedSummary() Summary {
	return Summary{
		Min:    Undefined(),
		Max:    Undefined(),
		Mean:   Undefined(),
		Median: Undefined(),
	}
}

// summarize computes min/max/mean/median of a non-empty sample
func summarize(vals []float64) Summary {

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	return Summary{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(vals, nil),
		Median: median(sorted),
	}
}

// median applies the standard even/odd rule to a sorted sample: the
// middle value for odd counts, the average of the two middle values for
// even counts
func median(sorted []float64) float64 {

	n := len(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}
