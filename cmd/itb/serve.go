// ABOUTME: CLI command for running the web form.
// ABOUTME: Serves HTTP with graceful shutdown and reloads the default language on config changes.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/itb/internal/config"
	"github.com/harperreed/itb/internal/web"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form",
	Long: `Start the bilingual web form for entering measurements, browsing history,
and downloading exports.

ROUTES:

  GET  /                  Form and history (?lingua=pt|en)
  POST /                  Save and calculate
  GET  /export/{format}   Download (?nome= filters by patient)
  GET  /healthz           Liveness check

Editing the config file while the server runs updates the default
language without a restart.

EXAMPLES:

  itb serve
  itb serve --listen 0.0.0.0:8080 --lang en`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listen := serveListen
		if listen == "" {
			listen = cfg.GetListen()
		}

		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		slog.SetDefault(logger)

		handler, err := web.New(svc, web.Options{Lang: outputLang(), Logger: logger})
		if err != nil {
			return fmt.Errorf("failed to build web handler: %w", err)
		}

		srv := &http.Server{
			Addr:              listen,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// --lang pins the language; otherwise follow the config file.
		if langFlag == "" {
			go func() {
				err := config.Watch(ctx, config.GetConfigPath(), func(c *config.Config) {
					handler.SetDefaultLang(c.GetLanguage())
				})
				if err != nil {
					logger.Error("config watcher stopped", "error", err)
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Serving on http://%s\n", listen)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "host:port to listen on (default from config, "+config.DefaultListen+")")
	rootCmd.AddCommand(serveCmd)
}
