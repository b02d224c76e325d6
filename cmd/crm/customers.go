package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/docker-crm/internal/database"
	"github.com/deppfellow/docker-crm/internal/lib/utils"
	"github.com/deppfellow/docker-crm/internal/repository"
)

func newCustomersCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Print stored customers as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			db, err := database.New(a.cfg, &a.log, a.loggerService)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewPostgresCustomerRepository(db.Pool)
			ctx := cmd.Context()

			if id == 0 {
				customers, err := repo.GetAllCustomers(ctx)
				if err != nil {
					return err
				}
				return utils.PrintJSON(cmd.OutOrStdout(), customers)
			}

			customer, found, err := repo.GetCustomerByID(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("customer with ID %d not found", id)
			}
			return utils.PrintJSON(cmd.OutOrStdout(), customer)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "print only the customer with this id")
	return cmd
}
