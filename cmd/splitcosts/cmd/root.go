// Package cmd provides the splitcosts command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitcosts/internal/config"
	"github.com/mmynk/splitcosts/internal/metrics"
	"github.com/mmynk/splitcosts/internal/report"
	"github.com/mmynk/splitcosts/internal/service"
	"github.com/mmynk/splitcosts/internal/sheet"
	"github.com/mmynk/splitcosts/pkg/logging"
)

// ErrMissingInput is returned when no expense sheet is given.
var ErrMissingInput = errors.New("missing input file")

// NewRootCmd builds the splitcosts command.
func NewRootCmd() *cobra.Command {
	var cfg *config.Config

	return &cobra.Command{
		Use:   "splitcosts <file>",
		Short: "Split shared expenses and settle them with few transfers",
		Long: `splitcosts reads a CSV expense sheet, computes every participant's
balance and prints the transfers that settle them.

The header row names the participants; blank header cells are label
columns. Each following row is one expense. A cell holds the amount the
participant put in, nothing (puts in nothing, still shares), "-" (not part
of this expense), or an amount in parentheses (put in, but not shared).

Configuration comes from the environment or a .env file:
  LOG_LEVEL                 debug, info, warn, error (default: warn)
  SPLITCOSTS_COLUMN_WIDTH   report column width (default: 15)
  SPLITCOSTS_STRICT         fail when balances do not sum to zero
  SPLITCOSTS_METRICS_FILE   write run metrics in Prometheus text format
  SPLITCOSTS_DELIMITER      field separator, one character or "tab" (default: ,)

Example:
  splitcosts trip.csv`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return ErrMissingInput
			}
			return cobra.MaximumNArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

// Execute runs the command with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if errors.Is(err, ErrMissingInput) {
			fmt.Fprintln(stderr, "Please provide an input file.")
			fmt.Fprint(stderr, root.UsageString())
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func run(out io.Writer, cfg *config.Config, path string) error {
	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		defer func() {
			if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
				slog.Warn("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
			}
		}()
	}

	result, err := service.NewSettleService(cfg.Strict, recorder, sheet.WithDelimiter(cfg.Delimiter)).SettleFile(path)
	if err != nil {
		return err
	}

	places := result.Balances.Places
	w := report.New(out, cfg.ColumnWidth)
	w.WriteSheet(*result.Sheet)
	w.WriteBalances(result.Sheet.Header, result.Balances.Balances, places)
	w.WriteSettlement(result.Settlement, places)
	return w.Err()
}
