package psi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yairfalse/wbcheck/internal/logger"
	"github.com/yairfalse/wbcheck/pkg/types"
)

// Φ = 25 and awareness = 1.0
var (
	knownOutputs    = types.LayerOutputs{{0}, {10}}
	knownTrajectory = types.ActivationTrajectory{{0.4}, {0.4}, {0.4}}
)

func TestEvaluator_Evaluate(t *testing.T) {
	tests := []struct {
		name       string
		thresholds types.ThresholdConfig
		expected   bool
	}{
		{"defaults", types.DefaultThresholds(), true},
		{"both equal to scores", types.ThresholdConfig{IntegrationThreshold: 25, StabilityThreshold: 1}, true},
		{"integration above score", types.ThresholdConfig{IntegrationThreshold: 25.0001, StabilityThreshold: 1}, false},
		{"stability above score", types.ThresholdConfig{IntegrationThreshold: 4.2, StabilityThreshold: 1.0001}, false},
		{"both above", types.ThresholdConfig{IntegrationThreshold: 100, StabilityThreshold: 2}, false},
		{"negative thresholds", types.ThresholdConfig{IntegrationThreshold: -1, StabilityThreshold: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator := NewEvaluator(tt.thresholds, nil)

			passed, err := evaluator.Evaluate(knownOutputs, knownTrajectory)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, passed)
		})
	}
}

func TestEvaluator_IdenticalOutputsFailDefaultIntegration(t *testing.T) {
	evaluator := NewEvaluator(types.DefaultThresholds(), nil)

	passed, err := evaluator.Evaluate(types.LayerOutputs{{1, 1}, {1, 1}}, knownTrajectory)
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestEvaluator_ErrorsPropagate(t *testing.T) {
	evaluator := NewEvaluator(types.DefaultThresholds(), nil)

	_, err := evaluator.Evaluate(nil, knownTrajectory)
	assert.True(t, errors.Is(err, ErrEmptyLayerOutputs))

	_, err = evaluator.Evaluate(knownOutputs, types.ActivationTrajectory{{1}})
	assert.True(t, errors.Is(err, ErrShortTrajectory))
}

func TestEvaluator_LogsMonitorLine(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "info", Output: &buf})
	require.NoError(t, err)

	evaluator := NewEvaluator(types.DefaultThresholds(), log)
	result, err := evaluator.Score(knownOutputs, knownTrajectory)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, result.IntegrationScore, 1e-12)
	assert.Equal(t, 1.0, result.StabilityScore)
	assert.True(t, result.Passed)
	assert.Equal(t, types.DefaultThresholds(), result.Thresholds)
	assert.Contains(t, buf.String(), "Φ = 25.00 | Awareness = 1.00")
}

func TestMonitorLine(t *testing.T) {
	assert.Equal(t, "[Ψ-Monitor] Φ = 4.20 | Awareness = 0.87", MonitorLine(4.2, 0.87))
}
