package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lendboard/internal/infrastructure/restapi"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		RunE:  runServe,
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = a.zap.Sync() }()

	if !a.cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := restapi.NewDashboardHandler(a.dashboard, mountTimeout(a.cfg))
	router := restapi.SetupRouter(handler, restapi.RouterOptions{
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		EnablePprof:    a.cfg.Server.EnablePprof,
	}, a.zap.Named("http"))

	srv := &http.Server{
		Addr:         a.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.zap.Info("Server starting", zap.String("addr", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		if err != nil {
			a.zap.Error("Failed to start server", zap.Error(err))
			return err
		}
	case sig := <-quit:
		a.zap.Info("Shutting down server...", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.zap.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	a.zap.Info("Server exiting")
	return nil
}
