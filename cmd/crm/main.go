// Command crm runs the customer API and its operator tooling.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/docker-crm/internal/config"
	"github.com/deppfellow/docker-crm/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "crm",
		Short:        "Docker CRM customer API",
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newCustomersCmd(),
		newPreviewEmailCmd(),
	)

	return root
}

// app is what every command needs before doing real work.
type app struct {
	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
}

func bootstrap() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)

	return &app{
		cfg:           cfg,
		log:           logger.NewLoggerWithService(cfg.Observability, loggerService),
		loggerService: loggerService,
	}, nil
}

func (a *app) close() {
	a.loggerService.Shutdown()
}
