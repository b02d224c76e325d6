package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/docker-crm/internal/lib/email"
)

func newPreviewEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview-email [template]",
		Short: "Render an email template with sample data to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.TemplateWelcome
			if len(args) == 1 {
				name = email.Template(args[0])
			}

			html, err := email.Preview(name)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}
}
