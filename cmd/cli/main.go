package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"telcochurn/app"
	"telcochurn/internal"
	"telcochurn/domain/core"
	"telcochurn/internal/config"
	"telcochurn/internal/errors"
)

var verbose bool

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "churn-cli",
		Short:         "Telco churn cleaning and exploratory analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at DEBUG level or finer")

	rootCmd.AddCommand(
		newRunCmd(),
		newCleanCmd(),
		newReportCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(app.ExitCode(err))
	}
}

// describeError prefixes err with its code, or a schema hint for input files
// that lack required columns.
func describeError(err error) string {
	if core.IsSchemaError(err) {
		return fmt.Sprintf("input does not match the Telco churn schema: %v", err)
	}
	if code := errors.GetCode(err); code != "UNKNOWN" {
		return fmt.Sprintf("%s: %v", code, err)
	}
	return err.Error()
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Clean the input, write every table and render every figure",
		Long: `Run the whole pipeline: load, clean, persist the cleaned table, write the
KPI, pivot and summary tables, and render the figures.

Paths come from CHURN_* environment variables (or a .env file).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPipeline(cmd.Context(), func(ctx context.Context, p *app.Pipeline) (*app.RunResult, error) {
				return p.Run(ctx)
			})
		},
	}
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean the input and write only the cleaned table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPipeline(cmd.Context(), func(ctx context.Context, p *app.Pipeline) (*app.RunResult, error) {
				return p.Clean(ctx)
			})
		},
	}
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print diagnostics, KPIs, pivots and summaries without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPipeline(cmd.Context(), func(ctx context.Context, p *app.Pipeline) (*app.RunResult, error) {
				return p.Report(ctx)
			})
		},
	}
}

func withPipeline(ctx context.Context, stage func(context.Context, *app.Pipeline) (*app.RunResult, error)) error {
	appConfig, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))
	if verbose && logger.GetLevel() < internal.LogLevelDebug {
		logger.SetLevel(internal.LogLevelDebug)
	}

	result, err := stage(ctx, app.NewDefaultPipeline(appConfig, logger))
	if err != nil {
		logger.Error("[CLI] pipeline failed: %v", err)
		return err
	}

	fmt.Printf("Run %s: %d rows in, %d rows cleaned, %d files written (%dms)\n",
		result.RunID, result.RawRows, result.CleanRows, len(result.Manifest.Artifacts), result.RuntimeMs)
	return nil
}
