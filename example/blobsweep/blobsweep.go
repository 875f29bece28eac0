package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cvkit/siftsweep"
	"github.com/cvkit/siftsweep/render"
	"gocv.io/x/gocv"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	outDir := flag.String("o", ".", "Directory to write result artifacts to")
	contrastList := flag.String("contrast", "0.01,0.04,0.08",
		"Comma separated contrast threshold values to sweep")
	edgeList := flag.String("edge", "5,10,15",
		"Comma separated edge threshold values to sweep")
	workers := flag.Int("workers", 0,
		"Worker pool size for the sweep, 0 uses all CPU cores")
	bestEffort := flag.Bool("best-effort", false,
		"Record per grid point failures instead of aborting the sweep")
	sampleK := flag.Int("sample", siftsweep.DefaultSampleSize,
		"Number of leading keypoints to print per configuration")
	synthetic := flag.Bool("synthetic", false,
		"Generate the built-in blob test image instead of loading a file")
	flag.Parse()

	// load image from the single positional argument
	var img gocv.Mat

	if *synthetic {
		img = siftsweep.SyntheticBlobs()
	} else {
		if flag.NArg() < 1 {
			log.Fatal("Usage: blobsweep [flags] <image-path>")
		}

		var err error
		img, err = siftsweep.LoadImage(flag.Arg(0))

		if err != nil {
			log.Fatal("Error loading image: ", err)
		}
	}

	defer img.Close()

	contrast, err := parseFloats(*contrastList)

	if err != nil {
		log.Fatal("Error parsing contrast values: ", err)
	}

	edge, err := parseFloats(*edgeList)

	if err != nil {
		log.Fatal("Error parsing edge values: ", err)
	}

	grid, err := siftsweep.NewGrid(
		siftsweep.Axis{Name: siftsweep.AxisContrastThreshold, Values: contrast},
		siftsweep.Axis{Name: siftsweep.AxisEdgeThreshold, Values: edge},
	)

	if err != nil {
		log.Fatal("Error building parameter grid: ", err)
	}

	printParameters(siftsweep.DefaultParams())

	// run the sweep
	sweeper := siftsweep.NewSweeper(siftsweep.NewSIFT())
	sweeper.Workers = *workers
	sweeper.BestEffort = *bestEffort

	log.Printf("Sweeping %d configurations...\n", grid.Size())

	results, err := sweeper.Run(context.Background(), img, grid)

	if err != nil {
		log.Fatal("Sweep failed: ", err)
	}

	entries := make([]render.ChartEntry, 0, len(results))
	font := render.DefaultFont()

	for _, res := range results {
		if res.Failed() {
			log.Printf("[%s] FAILED: %v\n", res.Set, res.Err)
			continue
		}

		log.Printf("[%s] keypoints=%d\n", res.Set, res.Count)
		printKeypointStats(res.Keypoints, *sampleK, img.Cols(), img.Rows())

		entries = append(entries, render.ChartEntry{
			Label: fmt.Sprintf("c=%.2f e=%g",
				res.Params.ContrastThreshold, res.Params.EdgeThreshold),
			Value: float64(res.Count),
		})

		// per configuration overlay, parameter values encoded in the name
		overlay := render.Keypoints(img, res.Keypoints, res.Params, font)
		name := siftsweep.ArtifactName("blobsweep", res.Params, ".jpg")

		if err := siftsweep.SaveImage(overlay, filepath.Join(*outDir, name)); err != nil {
			log.Fatal("Error writing overlay: ", err)
		}

		overlay.Close()
	}

	// pick the best configuration by keypoint count, first maximal wins
	best, err := siftsweep.SelectBest(results, nil)

	if err != nil {
		log.Fatal("Selection failed: ", err)
	}

	// a failure marker wins only when every grid point failed
	if best.Result.Failed() {
		log.Fatal("All configurations failed, nothing to select")
	}

	log.Printf("\nBest configuration (index %d): %s with %d keypoints\n",
		best.Index, best.Result.Params, best.Result.Count)

	// compute descriptors at the winning configuration
	detector := siftsweep.NewSIFT()
	kps, desc, err := detector.DetectAndCompute(img, best.Result.Params)

	if err != nil {
		log.Fatal("Descriptor computation failed: ", err)
	}

	printDescriptorStats(kps, desc)

	descName := siftsweep.ArtifactName("descriptors", best.Result.Params, ".f16")

	if err := siftsweep.SaveDescriptors(desc, filepath.Join(*outDir, descName)); err != nil {
		log.Fatal("Error writing descriptor dump: ", err)
	}

	// comparison chart across all configurations
	chart, err := render.BarChart(entries, "Keypoints per configuration")

	if err != nil {
		log.Fatal("Error building chart: ", err)
	}

	chartPath := filepath.Join(*outDir, "keypoint_comparison.png")

	if err := writePNG(chart, chartPath); err != nil {
		log.Fatal("Error writing chart: ", err)
	}

	log.Println("done")
}

// printParameters logs the tuning values and their admissible ranges
func printParameters(p siftsweep.Params) {

	log.Println("SIFT detector parameters:")
	log.Printf("  Contrast Threshold: %g (range 0.01 to 0.1 typical)\n",
		p.ContrastThreshold)
	log.Printf("  Edge Threshold:     %g (range 5 to 20 typical)\n",
		p.EdgeThreshold)
	log.Printf("  Octave Layers:      %d (range 2 to 5 typical)\n",
		p.OctaveLayers)
	log.Printf("  Sigma:              %g (range 1.0 to 2.0 typical)\n",
		p.Sigma)
}

// printKeypointStats logs the aggregated statistics for one configuration.
// Aggregation itself is side effect free; this is the presentation consumer.
func printKeypointStats(kps []siftsweep.Keypoint, sampleK, width, height int) {

	st := siftsweep.AggregateKeypoints(kps, sampleK)

	if st.Count == 0 {
		log.Println("  no keypoints detected")
		return
	}

	log.Printf("  size:     min=%.2f max=%.2f mean=%.2f median=%.2f\n",
		st.Size.Min, st.Size.Max, st.Size.Mean, st.Size.Median)
	log.Printf("  response: min=%.4f max=%.4f mean=%.4f median=%.4f\n",
		st.Response.Min, st.Response.Max, st.Response.Mean, st.Response.Median)

	cov := siftsweep.Coverage(kps, width, height)

	if !siftsweep.IsUndefined(cov) {
		log.Printf("  coverage: %.1f%% of image area\n", cov*100)
	}

	for i, kp := range st.Sample {
		log.Printf("  sample %d: pos=(%.2f, %.2f) size=%.2f angle=%.2f response=%.4f octave=%d\n",
			i+1, kp.X, kp.Y, kp.Size, kp.Angle, kp.Response, kp.Octave)
	}
}

// printDescriptorStats logs the flattened descriptor statistics
func printDescriptorStats(kps []siftsweep.Keypoint, desc [][]float32) {

	st := siftsweep.AggregateDescriptors(desc)

	log.Printf("\nDescriptors: %d keypoints x %d dimensions\n", st.Count, st.Dims)

	if st.Count == 0 {
		return
	}

	log.Printf("  min=%.4f max=%.4f mean=%.4f stddev=%.4f\n",
		st.Min, st.Max, st.Mean, st.StdDev)
	log.Printf("  keypoints described: %d\n", len(kps))
}

// parseFloats splits a comma separated list of numbers
func parseFloats(s string) ([]float64, error) {

	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))

	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)

		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}

		out = append(out, v)
	}

	return out, nil
}

// writePNG encodes a chart image to disk
func writePNG(img *image.RGBA, path string) error {

	f, err := os.Create(path)

	if err != nil {
		return err
	}

	defer f.Close()

	return png.Encode(f, img)
}
