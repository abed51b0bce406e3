package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/zyna-b/portfolio/api"
	"github.com/zyna-b/portfolio/audit"
	"github.com/zyna-b/portfolio/content"
	"github.com/zyna-b/portfolio/internal/config"
	"github.com/zyna-b/portfolio/web"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.Server.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
			return fmt.Errorf("creating upload directory: %w", err)
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		trail, err := audit.Open(filepath.Join(cfg.Server.DataDir, "audit.db"))
		if err != nil {
			return fmt.Errorf("opening audit trail: %w", err)
		}
		defer trail.Close()

		renderer, err := web.NewRenderer()
		if err != nil {
			return err
		}
		svc := content.NewService(content.NewStore(cfg.Server.DataDir))

		a := api.New(cfg, svc, renderer,
			api.WithLogger(logger),
			api.WithAuditTrail(trail),
			api.WithAlerts(func(ev api.AlertEvent) {
				logger.Warn("security alert",
					"type", string(ev.Type),
					"message", ev.Message,
					"count", ev.Count,
					"threshold", ev.Threshold)
			}))

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Mount("/", a.Router())

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		logger.Info("server started",
			"port", cfg.Server.Port,
			"data_dir", cfg.Server.DataDir,
			"version", Version)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		case err := <-done:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
