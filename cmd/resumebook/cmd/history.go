package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func HistoryCmd() *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs, or the manifest of one run",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			if runID != "" {
				assets, err := a.RunRepository.Assets(runID)
				if err != nil {
					return fmt.Errorf("failed to load manifest: %w", err)
				}
				fmt.Fprintln(w, "COLLECTION\tNAME\tTYPE\tSIZE")
				for _, asset := range assets {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", asset.Collection, asset.Name, asset.MimeType, asset.Size)
				}
				return nil
			}

			runs, err := a.RunRepository.Recent(limit)
			if err != nil {
				return fmt.Errorf("failed to load runs: %w", err)
			}
			fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tORIGINAL\tCONVERTED\tWARNINGS\tERROR")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					run.ID,
					run.StartedAt.Format("2006-01-02 15:04"),
					run.Status,
					run.OriginalCount,
					run.ConvertedCount,
					run.WarningCount,
					run.Error,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "show the archived files of this run")
	return cmd
}
