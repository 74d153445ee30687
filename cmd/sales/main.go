// The sales service records payments against orders. It sits behind the
// gateway and trusts the identity headers the gateway injects.
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
	"github.com/dad-ventas/sales-platform/internal/clients/orders"
	"github.com/dad-ventas/sales-platform/internal/core/service"
	"github.com/dad-ventas/sales-platform/internal/infrastructure/config"
	mongodb "github.com/dad-ventas/sales-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/dad-ventas/sales-platform/internal/infrastructure/db/redis"
	"github.com/dad-ventas/sales-platform/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadSales(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "sales",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	repo := mongodb.NewSaleRepository(db)
	orderClient := orders.NewClient(cfg.OrderServiceURL, cfg.OrderTimeout, log)
	guard := redisdb.NewPaymentGuard(rdb)
	svc := service.NewSaleService(repo, orderClient, guard, log)

	e := api.NewSalesRouter(svc, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("sales service listening")
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
