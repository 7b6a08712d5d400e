package psi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yairfalse/wbcheck/pkg/types"
)

func TestComputeIntegrationScore(t *testing.T) {
	tests := []struct {
		name     string
		layers   types.LayerOutputs
		expected float64
	}{
		{
			name:     "identical layers",
			layers:   types.LayerOutputs{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}},
			expected: 0,
		},
		{
			name:     "single layer",
			layers:   types.LayerOutputs{{4, -2, 7}},
			expected: 0,
		},
		{
			name:     "two layers unit spread",
			layers:   types.LayerOutputs{{1, 2}, {3, 4}},
			expected: 1,
		},
		{
			name:     "wide spread",
			layers:   types.LayerOutputs{{0}, {10}},
			expected: 25,
		},
		{
			name:     "mixed positions",
			layers:   types.LayerOutputs{{0, 5}, {2, 5}, {4, 5}},
			expected: (8.0 / 3.0) / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := ComputeIntegrationScore(tt.layers)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-12)
		})
	}
}

func TestComputeIntegrationScore_Errors(t *testing.T) {
	_, err := ComputeIntegrationScore(nil)
	assert.True(t, errors.Is(err, ErrEmptyLayerOutputs))

	_, err = ComputeIntegrationScore(types.LayerOutputs{})
	assert.True(t, errors.Is(err, ErrEmptyLayerOutputs))

	_, err = ComputeIntegrationScore(types.LayerOutputs{{1, 2}, {1}})
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = ComputeIntegrationScore(types.LayerOutputs{{}, {}})
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestComputeStabilityScore(t *testing.T) {
	tests := []struct {
		name       string
		trajectory types.ActivationTrajectory
		expected   float64
	}{
		{
			name:       "constant trajectory",
			trajectory: types.ActivationTrajectory{{0.3, 0.7}, {0.3, 0.7}, {0.3, 0.7}},
			expected:   1.0,
		},
		{
			name:       "small drift",
			trajectory: types.ActivationTrajectory{{0, 0}, {0.5, 0.1}, {0.5, 0.1}},
			expected:   0.85,
		},
		{
			name:       "large drift goes negative",
			trajectory: types.ActivationTrajectory{{0}, {3}},
			expected:   -2,
		},
		{
			name:       "direction does not matter",
			trajectory: types.ActivationTrajectory{{1}, {0}, {1}},
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := ComputeStabilityScore(tt.trajectory)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-12)
		})
	}
}

func TestComputeStabilityScore_ConstantIsExactlyOne(t *testing.T) {
	score, err := ComputeStabilityScore(types.ActivationTrajectory{{0.1, 0.2, 0.3}, {0.1, 0.2, 0.3}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestComputeStabilityScore_Errors(t *testing.T) {
	_, err := ComputeStabilityScore(nil)
	assert.True(t, errors.Is(err, ErrShortTrajectory))

	_, err = ComputeStabilityScore(types.ActivationTrajectory{{1, 2, 3}})
	assert.True(t, errors.Is(err, ErrShortTrajectory))

	_, err = ComputeStabilityScore(types.ActivationTrajectory{{1, 2}, {1, 2, 3}})
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestDrift(t *testing.T) {
	drift, err := Drift(types.ActivationTrajectory{{0, 0}, {1, 1}, {1, 3}, {1, 3}})
	require.NoError(t, err)
	require.Len(t, drift, 3)
	assert.InDelta(t, 1.0, drift[0], 1e-12)
	assert.InDelta(t, 1.0, drift[1], 1e-12)
	assert.InDelta(t, 0.0, drift[2], 1e-12)
}
