package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peekknuf/skatergrade/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve player grades over HTTP",
	Long: `Start an HTTP server answering player queries for the loaded season.

Routes:
  GET /health
  GET /api/v1/players?q=<name>
  GET /api/v1/players/{slug}
  GET /api/v1/index
  GET /players/{slug}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}

		ev, err := loadEvaluator()
		if err != nil {
			return err
		}

		srv := server.New(ev, server.Options{
			RequestTimeout: cfg.Server.RequestTimeout,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         logger,
		})

		httpServer := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      srv.Router(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.WithField("addr", cfg.Server.Addr).Info("server started")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		// Wait for interrupt signal
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-sigChan:
		}

		logger.Info("shutting down gracefully")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}

		logger.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080",
		"Listen address")
}
