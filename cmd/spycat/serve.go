package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	spycatconsole "github.com/4oBuko/spy-cat-console/internal"
	"github.com/4oBuko/spy-cat-console/internal/repositories"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the browser console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), a)
		},
	}
}

func runServe(ctx context.Context, a *app) error {
	if !a.cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	sessions := repositories.NewInMemorySessionRepository(a.cfg.Server.SessionIdleTimeout, a.metrics)
	server := spycatconsole.NewServer(a.cfg.Server.Addr, a.catService, a.missionService, sessions, a.logger, a.metrics)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sessions.RunJanitor(gctx, max(a.cfg.Server.SessionIdleTimeout/2, time.Second))
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("console stopped with error", zap.Error(err))
		return err
	}
	a.logger.Info("server exited")
	return nil
}
