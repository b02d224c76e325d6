package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/docker-crm/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			return database.Migrate(cmd.Context(), &a.log, a.cfg)
		},
	}
}
