package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/acidni/googleops/internal/config"
	"github.com/acidni/googleops/internal/server"
)

// NewServeCommand creates the 'serve' command.
func NewServeCommand(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Google services HTTP API",
		Long: `Serve the GA4, Tag Manager, AdSense, Ads, and API-management surfaces over
HTTP. Routes other than /health, / and /metrics require the
Ocp-Apim-Subscription-Key header.

A backend that cannot be wired at startup (missing admin script, no Cosmos
credentials) disables its routes with a warning instead of failing the whole
server.

Examples:
  googleops serve
  googleops serve --addr 127.0.0.1:9000
  GOOGLEOPS_ADDR=:8080 googleops serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}
			logger := cfg.Logger

			var analyticsAPI server.AnalyticsAPI
			if client, err := newAnalyticsClient(cfg); err != nil {
				logger.Warn("Analytics routes disabled: %v", err)
			} else {
				analyticsAPI = client
			}

			var productsAPI server.ProductsAPI
			if store, err := newProductsStore(cfg); err != nil {
				logger.Warn("API management routes disabled: %v", err)
			} else {
				productsAPI = store
			}

			srv := server.New(server.Options{
				Addr:      resolveAddr(addr, cfg),
				Analytics: analyticsAPI,
				Products:  productsAPI,
				Logger:    logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default \":8000\", or server.addr / GOOGLEOPS_ADDR)")

	return cmd
}

// resolveAddr picks the listen address: flag, then config/env, then default.
func resolveAddr(flagAddr string, cfg *config.Config) string {
	if flagAddr != "" {
		return flagAddr
	}
	if addr := cfg.Server().Addr; addr != "" {
		return addr
	}
	return server.DefaultAddr
}
