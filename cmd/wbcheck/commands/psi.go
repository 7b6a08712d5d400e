package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	wberrors "github.com/yairfalse/wbcheck/internal/errors"
	"github.com/yairfalse/wbcheck/internal/output"
	"github.com/yairfalse/wbcheck/internal/psi"
	"github.com/yairfalse/wbcheck/internal/storage"
	"github.com/yairfalse/wbcheck/pkg/types"
)

func newPsiCommand(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "psi",
		Short: "Score layer outputs and an activation trajectory against thresholds",
		Long: `Compute the integration score (Φ, mean per-position variance across stacked
layer outputs) and the stability score (1 - mean absolute drift between time
steps), then compare both against their thresholds.

The input file is JSON or YAML with two keys:

  layer_outputs: list of equally sized numeric vectors
  trajectory:    list of equally sized numeric vectors, one per time step

The scores are proxy metrics only. The exit code is 0 when both thresholds
are met and 1 otherwise.`,
		Example: `  wbcheck psi --input activations.json
  wbcheck psi --input activations.yaml --integration-threshold 1.5
  cat activations.json | wbcheck psi --input -`,
		Args: cobra.NoArgs,
		RunE: state.runPsi,
	}

	cmd.Flags().StringP("input", "i", "", "JSON or YAML file with layer_outputs and trajectory (- for stdin)")
	cmd.Flags().StringP("output", "o", "", "write the score result to a file")
	cmd.Flags().Float64("integration-threshold", types.DefaultIntegrationThreshold, "minimum integration score")
	cmd.Flags().Float64("stability-threshold", types.DefaultStabilityThreshold, "minimum stability score")
	cmd.MarkFlagRequired("input")

	state.v.BindPFlag("psi.integration_threshold", cmd.Flags().Lookup("integration-threshold"))
	state.v.BindPFlag("psi.stability_threshold", cmd.Flags().Lookup("stability-threshold"))

	return cmd
}

func (s *cliState) runPsi(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	input, err := psi.LoadInput(inputPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	evaluator := psi.NewEvaluator(s.cfg.Psi.Thresholds(), s.log)
	result, err := evaluator.Score(input.LayerOutputs, input.Trajectory)
	if err != nil {
		return fmt.Errorf("failed to score %s: %w", inputPath, err)
	}

	printer := s.printer(cmd)
	printer.Line(psi.MonitorLine(result.IntegrationScore, result.StabilityScore))

	// drift[i] is the step from t<i> to t<i+1>
	if drift, err := psi.Drift(input.Trajectory); err == nil {
		values := output.Tail(drift, sparklineWidth())
		first := len(drift) - len(values)
		printer.Sparkline("Drift", values, fmt.Sprintf("t%d", first), fmt.Sprintf("t%d", len(drift)))
	}

	if result.Passed {
		printer.Success("Thresholds met (%s)", result.Thresholds)
	} else {
		printer.Failure("Thresholds not met (%s)", result.Thresholds)
	}

	if outputPath != "" {
		format, err := output.ParseFormat(s.cfg.Output.Format)
		if err != nil {
			return wberrors.ConfigError(err)
		}
		writer := storage.NewAtomicWriter(s.cfg.Output.BackupDir)
		if err := output.WriteToFile(writer, result, format, outputPath); err != nil {
			return wberrors.OutputError(outputPath, err)
		}
		printer.Success("Results saved to: %s", outputPath)
	}

	if !result.Passed {
		return errThresholdsNotMet
	}
	return nil
}
