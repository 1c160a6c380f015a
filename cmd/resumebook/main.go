package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/resumebook/cmd/resumebook/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "resumebook",
		Short:         "Collect resume uploads from forms into downloadable archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cmd.RunCmd())
	rootCmd.AddCommand(cmd.HistoryCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
