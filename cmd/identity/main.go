// The identity service issues and validates session tokens and owns the
// credential store. It is fronted by the gateway in production but also
// answers the gateway's validate calls directly.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dad-ventas/sales-platform/internal/api"
	"github.com/dad-ventas/sales-platform/internal/clients/provisioning"
	"github.com/dad-ventas/sales-platform/internal/core/service"
	"github.com/dad-ventas/sales-platform/internal/infrastructure/config"
	mongodb "github.com/dad-ventas/sales-platform/internal/infrastructure/db/mongo"
	"github.com/dad-ventas/sales-platform/internal/infrastructure/queue"
	"github.com/dad-ventas/sales-platform/internal/token"
	"github.com/dad-ventas/sales-platform/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadIdentity(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "identity",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := mongodb.NewAuthRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	provisioner := provisioning.NewClient(cfg.ClientServiceURL, cfg.ClientTimeout, log)
	svc := service.NewAuthService(repo, codec, provisioner, log)

	// Client records are provisioned asynchronously after registration.
	dispatcher := queue.NewDispatcher(cfg.LinkWorkers, svc, log)
	dispatcher.Start(ctx)
	svc.SetLinkQueue(dispatcher)

	e := api.NewIdentityRouter(svc, db, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("identity service listening")
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
