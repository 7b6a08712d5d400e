package psi

import (
	"fmt"

	"github.com/yairfalse/wbcheck/internal/logger"
	"github.com/yairfalse/wbcheck/pkg/types"
)

// Evaluator thresholds the integration and stability scores
type Evaluator struct {
	thresholds types.ThresholdConfig
	log        logger.Logger
}

// NewEvaluator creates an evaluator with fixed thresholds
func NewEvaluator(thresholds types.ThresholdConfig, log logger.Logger) *Evaluator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Evaluator{
		thresholds: thresholds,
		log:        log,
	}
}

// Score computes both scores and the verdict
func (e *Evaluator) Score(outputs types.LayerOutputs, trajectory types.ActivationTrajectory) (*types.ScoreResult, error) {
	phi, err := ComputeIntegrationScore(outputs)
	if err != nil {
		return nil, fmt.Errorf("integration score: %w", err)
	}

	awareness, err := ComputeStabilityScore(trajectory)
	if err != nil {
		return nil, fmt.Errorf("stability score: %w", err)
	}

	e.log.WithFields(map[string]interface{}{
		"phi":       phi,
		"awareness": awareness,
	}).Info(MonitorLine(phi, awareness))

	return &types.ScoreResult{
		IntegrationScore: phi,
		StabilityScore:   awareness,
		Thresholds:       e.thresholds,
		Passed:           phi >= e.thresholds.IntegrationThreshold && awareness >= e.thresholds.StabilityThreshold,
	}, nil
}

// Evaluate reports whether both scores meet their thresholds
func (e *Evaluator) Evaluate(outputs types.LayerOutputs, trajectory types.ActivationTrajectory) (bool, error) {
	result, err := e.Score(outputs, trajectory)
	if err != nil {
		return false, err
	}
	return result.Passed, nil
}

// MonitorLine renders the one-line score summary
func MonitorLine(phi, awareness float64) string {
	return fmt.Sprintf("[Ψ-Monitor] Φ = %.2f | Awareness = %.2f", phi, awareness)
}
