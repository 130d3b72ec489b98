package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/battleapi"
	"github.com/abhisek/studybuddy/internal/logging"
)

const shutdownGrace = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the battle turn resolver over HTTP",
	Long: `Starts the HTTP API used to resolve boss battle turns:

  POST /api/battle/resolve-turn   resolve one answer
  GET  /health                   liveness
  GET  /metrics                  Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		// JSON unless overridden; the TUI log format does not apply here.
		format, _ := cmd.Flags().GetString("log-format")
		logger, closer, err := logging.New(logging.Options{
			Level:  cfg.Log.Level,
			Format: format,
			File:   cfg.Log.File,
			W:      cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		defer closer.Close()

		api := battleapi.NewServer(battleapi.Options{
			CORSOrigins:    cfg.Server.CORSOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
			Logger:         logger,
		})
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("battle server listening", "addr", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("serve: %w", err)
		case <-ctx.Done():
		}

		logger.Info("shutting down battle server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, localhost:5000)")
	serveCmd.Flags().String("log-format", "json", "Log format: text or json")
}
