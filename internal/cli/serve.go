package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/aretw0/airdesk/internal/config"
	httpadapter "github.com/aretw0/airdesk/pkg/adapters/http"
)

// Serve runs the webhook server on ln until ctx is cancelled, then shuts it
// down within cfg.ShutdownTimeout.
func Serve(ctx context.Context, ln net.Listener, rt *Runtime, cfg config.Server, logger *slog.Logger) error {
	handler := httpadapter.NewHandler(rt.Agent,
		httpadapter.WithLogger(logger),
		httpadapter.WithMetrics(rt.Registry),
	)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Airdesk server listening", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		logger.Info("Shutdown started")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", cfg.ShutdownTimeout, err)
		}
		logger.Info("Airdesk server stopped gracefully")
		return nil
	}
}
