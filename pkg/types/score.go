package types

import "fmt"

// Default thresholds for the awareness proxy. They are unvalidated proxy
// constants kept only as configurable defaults.
const (
	DefaultIntegrationThreshold = 4.2
	DefaultStabilityThreshold   = 0.87
)

// ThresholdConfig holds the pass marks for both scores
type ThresholdConfig struct {
	IntegrationThreshold float64 `json:"integration_threshold" yaml:"integration_threshold"`
	StabilityThreshold   float64 `json:"stability_threshold" yaml:"stability_threshold"`
}

// DefaultThresholds returns the stock 4.2 / 0.87 thresholds
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		IntegrationThreshold: DefaultIntegrationThreshold,
		StabilityThreshold:   DefaultStabilityThreshold,
	}
}

// String implements fmt.Stringer
func (t ThresholdConfig) String() string {
	return fmt.Sprintf("Φ >= %.2f, awareness >= %.2f", t.IntegrationThreshold, t.StabilityThreshold)
}

// LayerOutputs is a sequence of flattened layer activations of equal length
type LayerOutputs [][]float64

// ActivationTrajectory is a time series of activation vectors
type ActivationTrajectory [][]float64

// ScoreInput is the on-disk shape read by the psi command
type ScoreInput struct {
	LayerOutputs LayerOutputs         `json:"layer_outputs" yaml:"layer_outputs"`
	Trajectory   ActivationTrajectory `json:"trajectory" yaml:"trajectory"`
}

// ScoreResult carries both scores and the verdict
type ScoreResult struct {
	IntegrationScore float64         `json:"integration_score" yaml:"integration_score"`
	StabilityScore   float64         `json:"stability_score" yaml:"stability_score"`
	Thresholds       ThresholdConfig `json:"thresholds" yaml:"thresholds"`
	Passed           bool            `json:"passed" yaml:"passed"`
}
