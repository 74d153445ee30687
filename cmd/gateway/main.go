// The edge gateway authenticates every inbound request and proxies it to
// the backend services with trust headers attached.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dad-ventas/sales-platform/internal/clients/identity"
	"github.com/dad-ventas/sales-platform/internal/gateway"
	"github.com/dad-ventas/sales-platform/internal/infrastructure/config"
	"github.com/dad-ventas/sales-platform/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGateway(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "gateway",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	validator := identity.NewClient(cfg.IdentityURL, cfg.ValidateTimeout, log)

	e, err := gateway.NewRouter(cfg, validator, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router construction failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
