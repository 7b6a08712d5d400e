package commands

import (
	"errors"

	"github.com/spf13/cobra"
	wberrors "github.com/yairfalse/wbcheck/internal/errors"
	"github.com/yairfalse/wbcheck/internal/output"
	"github.com/yairfalse/wbcheck/internal/storage"
	"github.com/yairfalse/wbcheck/internal/wayback"
	"github.com/yairfalse/wbcheck/pkg/types"
)

// sparklineMargin leaves room for the label and year columns
const sparklineMargin = 40

func (s *cliState) runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	date, _ := cmd.Flags().GetString("date")
	outputPath, _ := cmd.Flags().GetString("output")

	if err := wayback.ValidateDate(date); err != nil {
		return err
	}

	format, err := output.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		return wberrors.ConfigError(err)
	}

	ctx := cmd.Context()
	log := s.log.WithField("url", target)
	client := wayback.NewClient(s.cfg.Archive, log)
	printer := s.printer(cmd)
	spinner := s.spinner(cmd)

	report := types.NewAnalysisReport(target)

	printer.Banner("WAYBACK MACHINE TIMESTAMP VERIFICATION", report.AnalysisDate)

	printer.Section(1, "CHECKING SNAPSHOT HISTORY...")
	printer.Line("Querying Wayback Machine for: %s", target)
	spinner.Start("Querying snapshot history...")
	report.SparklineCheck = client.QueryHistory(ctx, target)
	spinner.Stop()
	printHistory(printer, report.SparklineCheck)

	if date != "" {
		printer.Section(2, "CHECKING SPECIFIC DATE: %s", date)
	} else {
		printer.Section(2, "CHECKING LATEST AVAILABLE SNAPSHOT...")
	}
	spinner.Start("Querying closest snapshot...")
	closest := client.QueryClosestSnapshot(ctx, target, date)
	spinner.Stop()
	report.SpecificSnapshot = closest.Snapshot
	printClosest(printer, closest)

	if outputPath != "" {
		writer := storage.NewAtomicWriter(s.cfg.Output.BackupDir)
		if err := output.WriteToFile(writer, report, format, outputPath); err != nil {
			log.Error("failed to save results", wberrors.OutputError(outputPath, err))
			printer.Line("")
			printer.Failure("Error saving results: %v", err)
		} else {
			printer.Line("")
			printer.Success("Results saved to: %s", outputPath)
		}
	}

	printer.Closing("ANALYSIS COMPLETE")

	if !report.AnySnapshotFound() {
		return errNoSnapshots
	}
	return nil
}

func printHistory(printer *output.Printer, result *types.SnapshotQueryResult) {
	if !result.Found {
		err := result.Err()
		switch {
		case errors.Is(err, wayback.ErrNoSnapshots):
			printer.Failure("No snapshots found in Wayback Machine")
		case errors.Is(err, wayback.ErrInvalidTimestamp):
			printer.Warning("Invalid timestamp format received")
		case wberrors.IsType(err, wberrors.ErrorTypeDecode):
			printer.Failure("Error parsing response: %s", result.Error)
		default:
			printer.Failure("Error querying Wayback Machine: %s", result.Error)
		}
		return
	}

	printer.Success("First snapshot found: %s", result.FirstDate)
	printer.Detail("Raw timestamp", result.FirstTimestamp)

	if result.LastTimestamp != "" {
		printer.Detail("Last snapshot", result.LastDate)
		printer.Detail("Total snapshots", result.Count)
	}

	counts := wayback.YearlyCounts(result.Data)
	if len(counts) == 0 {
		return
	}

	if width := sparklineWidth(); len(counts) > width {
		counts = counts[len(counts)-width:]
	}

	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
	}
	printer.Sparkline("Captures per year", values, counts[0].Year, counts[len(counts)-1].Year)
}

// sparklineWidth is the number of ticks that fit next to a label on stdout
func sparklineWidth() int {
	if width := output.TerminalWidth(80) - sparklineMargin; width > 10 {
		return width
	}
	return 10
}

func printClosest(printer *output.Printer, result *types.ClosestSnapshotResult) {
	if !result.Found {
		if errors.Is(result.Err(), wayback.ErrNoArchivedSnapshots) {
			printer.Failure("No archived snapshots found")
		} else {
			printer.Failure("Error checking specific snapshot: %s", result.Error)
		}
		return
	}

	printer.Success("Closest snapshot found:")
	printer.Detail("Date", result.Snapshot.Timestamp)
	printer.Detail("URL", result.Snapshot.URL)
	printer.Detail("Status", result.Snapshot.Status)
}
