package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-outreach/internal/config"
	"github.com/xavierca1/ligue-outreach/internal/infra/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica (ou reverte com --down N) as migrations do banco",
	RunE: func(cmd *cobra.Command, args []string) error {
		down, _ := cmd.Flags().GetInt("down")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := database.NewDBConnection(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if down > 0 {
			err = database.RollbackMigrations(db, down)
		} else {
			err = database.RunMigrations(db)
		}
		if err != nil {
			return err
		}

		version, dirty, err := database.MigrationVersion(db)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
		return nil
	},
}

func init() {
	migrateCmd.Flags().Int("down", 0, "número de migrations a reverter")
}
