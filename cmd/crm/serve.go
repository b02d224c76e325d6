package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/deppfellow/docker-crm/internal/database"
	"github.com/deppfellow/docker-crm/internal/handler"
	"github.com/deppfellow/docker-crm/internal/repository"
	"github.com/deppfellow/docker-crm/internal/router"
	"github.com/deppfellow/docker-crm/internal/server"
	"github.com/deppfellow/docker-crm/internal/service"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until SIGINT or SIGTERM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply database migrations before serving")
	return cmd
}

func (a *app) serve(ctx context.Context, migrate bool) error {
	if migrate {
		if err := database.Migrate(ctx, &a.log, a.cfg); err != nil {
			a.log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(a.cfg, &a.log, a.loggerService)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	services, err := service.NewServices(srv, repository.NewRepositories(srv))
	if err != nil {
		_ = srv.Shutdown(ctx)
		return err
	}

	if err := services.Health.StartMonitor(); err != nil {
		_ = srv.Shutdown(ctx)
		return err
	}

	r := router.NewRouter(srv, handler.NewHandlers(srv, services))
	srv.SetupHTTPServer(r)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info().Msg("shutting down server")
		services.Health.StopMonitor()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		a.log.Error().Err(err).Msg("server stopped with error")
		return err
	}

	a.log.Info().Msg("server exited properly")
	return nil
}
