package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func RunCmd() *cobra.Command {
	var noReport bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect resumes from every configured form and write the archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			err = a.Cfg.ValidateRun()
			if err != nil {
				slog.Error("config invalid", "error", err)
				return err
			}

			ctx := cmd.Context()
			err = a.WithPipeline(ctx)
			if err != nil {
				slog.Error("failed to initialize pipeline", "error", err)
				return err
			}

			result, runErr := a.Pipeline.Run(ctx, a.Cfg.FormIDs)

			if !noReport && (a.Cfg.ReportEnabled() || a.Cfg.IsDevelopment()) {
				err = a.ReportService.Send(ctx, result)
				if err != nil {
					slog.Warn("failed to send report", "error", err, "run_id", result.RunID)
				}
			}

			if runErr != nil {
				slog.Error("run failed", "error", runErr, "run_id", result.RunID)
				return runErr
			}

			slog.Info("run complete",
				"run_id", result.RunID,
				"original", result.OriginalCount,
				"converted", result.ConvertedCount,
				"warnings", len(result.Diagnostics),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.OriginalURL)
			if result.ConvertedURL != "" {
				fmt.Fprintln(out, result.ConvertedURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noReport, "no-report", false, "skip the operator report")
	return cmd
}
