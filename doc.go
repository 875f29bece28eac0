/*
siftsweep performs parameter-sensitivity analysis of the SIFT keypoint
detector.  It runs the detector across a grid of tuning parameters
(contrast threshold, edge threshold, octave layers, sigma), aggregates
per-run statistics over the detected keypoints and their descriptors,
and selects the best configuration under a deterministic policy.

The detector primitive is OpenCV's SIFT consumed through gocv; this
package only specifies the sweep, aggregation, and selection logic on
top of it.

See example code and usage in the example subdirectory.
*/
package siftsweep
