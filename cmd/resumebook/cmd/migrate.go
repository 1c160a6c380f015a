package cmd

import (
	"github.com/spf13/cobra"
	"github.com/templui/resumebook/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run ledger migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			// setup migrates up on open
			_, cleanup, err := setup()
			if err != nil {
				return err
			}
			cleanup()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			return db.MigrateDown(a.DB.DB, a.Cfg.DBDriver)
		},
	})

	return cmd
}
