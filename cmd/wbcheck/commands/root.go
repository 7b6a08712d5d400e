package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	wberrors "github.com/yairfalse/wbcheck/internal/errors"
	"github.com/yairfalse/wbcheck/internal/logger"
	"github.com/yairfalse/wbcheck/internal/output"
	"github.com/yairfalse/wbcheck/pkg/config"
)

// errNoSnapshots and errThresholdsNotMet end a run with exit code 1 without
// printing anything beyond the report itself
var (
	errNoSnapshots      = errors.New("no snapshots found")
	errThresholdsNotMet = errors.New("thresholds not met")
)

// cliState is shared by every command in one invocation
type cliState struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     logger.Logger
}

// NewRootCommand builds the wbcheck command tree
func NewRootCommand() *cobra.Command {
	rootCmd, _ := newRootCommand()
	return rootCmd
}

func newRootCommand() (*cobra.Command, *cliState) {
	state := &cliState{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "wbcheck <url>",
		Short: "Verify when a URL was first captured by the Wayback Machine",
		Long: `wbcheck asks the Internet Archive's Wayback Machine when a URL was first
and last captured, and which capture is closest to a given date.

The report is printed to the terminal and can be saved as JSON or YAML.
The exit code is 0 when either lookup found a capture and 1 otherwise.`,
		Example: `  # First and latest captures of a page
  wbcheck example.com

  # Capture closest to a date
  wbcheck example.com --date 20050101

  # Save the report
  wbcheck example.com --output report.json
  wbcheck example.com --output report.yaml --format yaml`,
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				return nil
			}
			return state.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
				runVersion(cmd, args)
				return nil
			}
			return state.runCheck(cmd, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&state.cfgFile, "config", "", "config file (default is $HOME/.wbcheck/config.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("format", "json", "format of files written with --output (json, yaml)")
	flags.Bool("no-color", false, "disable colored output")

	rootCmd.Flags().String("date", "", "specific date to check (YYYYMMDD or YYYYMMDDHHMMSS)")
	rootCmd.Flags().StringP("output", "o", "", "output file for results")
	rootCmd.Flags().Bool("version", false, "show version information")

	state.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	state.v.BindPFlag("logging.format", flags.Lookup("log-format"))
	state.v.BindPFlag("output.format", flags.Lookup("format"))
	state.v.BindPFlag("output.no_color", flags.Lookup("no-color"))

	rootCmd.AddCommand(newPsiCommand(state))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd, state
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd, state := newRootCommand()
	return run(ctx, rootCmd, state, os.Args[1:], os.Stderr)
}

func run(ctx context.Context, cmd *cobra.Command, state *cliState, args []string, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	return exitCode(err, stderr, state.v.GetBool("output.no_color"))
}

func exitCode(err error, stderr io.Writer, noColor bool) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, errNoSnapshots) || errors.Is(err, errThresholdsNotMet) {
		return 1
	}

	wberrors.DisplayError(stderr, err, noColor)
	if !wberrors.IsUserError(err) {
		fmt.Fprintln(stderr, "Run 'wbcheck --help' for usage.")
	}

	return wberrors.GetExitCode(err)
}

// init loads configuration and builds the logger
func (s *cliState) init(cmd *cobra.Command) error {
	if s.cfgFile != "" {
		s.v.SetConfigFile(s.cfgFile)
	}

	cfg, err := config.Load(s.v)
	if err != nil {
		return wberrors.ConfigError(err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return wberrors.ConfigError(err)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return wberrors.ConfigError(err)
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return wberrors.ConfigError(err)
	}

	s.cfg = cfg
	s.log = log.WithField("command", cmd.Name())
	return nil
}

// printer builds a console printer for cmd's stdout
func (s *cliState) printer(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = output.IsColorEnabled(s.cfg.Output.NoColor, f)
	}
	return output.NewPrinter(out, useColor)
}

// spinner builds a progress spinner on cmd's stderr, active only on a terminal
func (s *cliState) spinner(cmd *cobra.Command) *output.Spinner {
	errOut := cmd.ErrOrStderr()
	useColor := false
	if f, ok := errOut.(*os.File); ok {
		useColor = output.IsColorEnabled(s.cfg.Output.NoColor, f)
	}
	return output.NewSpinner(errOut, output.SpinnerEnabled(errOut), useColor)
}
