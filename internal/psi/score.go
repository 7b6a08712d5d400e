// Package psi computes two proxy scores over activation data: an integration
// score (Φ, mean per-position variance across stacked layer outputs) and a
// stability score (1 minus the mean absolute step-to-step drift).
//
// The scores are demonstration metrics. Malformed input is reported as an
// error and never coerced into a failing verdict.
package psi

import (
	"errors"
	"fmt"
	"math"

	"github.com/yairfalse/wbcheck/pkg/types"
)

var (
	ErrEmptyLayerOutputs = errors.New("layer outputs are empty")
	ErrShortTrajectory   = errors.New("trajectory needs at least 2 time steps")
	ErrShapeMismatch     = errors.New("shape mismatch")
)

// ComputeIntegrationScore stacks the layer outputs along a new leading axis,
// takes the variance across that axis at every position and returns the mean
// of those variances. Variance is the population variance, so a single layer
// scores 0.
func ComputeIntegrationScore(layers types.LayerOutputs) (float64, error) {
	if len(layers) == 0 {
		return 0, ErrEmptyLayerOutputs
	}

	width, err := commonWidth(layers, "layer")
	if err != nil {
		return 0, err
	}

	n := float64(len(layers))
	var total float64
	for j := 0; j < width; j++ {
		var sum float64
		for _, layer := range layers {
			sum += layer[j]
		}
		mean := sum / n

		var sq float64
		for _, layer := range layers {
			d := layer[j] - mean
			sq += d * d
		}
		total += sq / n
	}

	return total / float64(width), nil
}

// ComputeStabilityScore returns 1 - mean(|x[t+1] - x[t]|) over every element
// of every consecutive pair of time steps. The result is not clamped.
func ComputeStabilityScore(trajectory types.ActivationTrajectory) (float64, error) {
	drift, err := Drift(trajectory)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, d := range drift {
		sum += d
	}

	return 1 - sum/float64(len(drift)), nil
}

// Drift returns the mean absolute difference of each consecutive pair of time
// steps, one value per transition. Because every step has the same width, the
// mean of Drift equals the overall mean absolute difference.
func Drift(trajectory types.ActivationTrajectory) ([]float64, error) {
	if len(trajectory) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrShortTrajectory, len(trajectory))
	}

	width, err := commonWidth(trajectory, "time step")
	if err != nil {
		return nil, err
	}

	drift := make([]float64, 0, len(trajectory)-1)
	for t := 1; t < len(trajectory); t++ {
		var sum float64
		for j := 0; j < width; j++ {
			sum += math.Abs(trajectory[t][j] - trajectory[t-1][j])
		}
		drift = append(drift, sum/float64(width))
	}

	return drift, nil
}

// commonWidth checks every row has the same non-zero length
func commonWidth(rows [][]float64, what string) (int, error) {
	width := len(rows[0])
	if width == 0 {
		return 0, fmt.Errorf("%w: %s 0 is empty", ErrShapeMismatch, what)
	}
	for i, row := range rows {
		if len(row) != width {
			return 0, fmt.Errorf("%w: %s %d has %d values, want %d", ErrShapeMismatch, what, i, len(row), width)
		}
	}
	return width, nil
}
