// Package main запускает HTTP-сервер магазина игр.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/gamestore/internal/config"
	"github.com/mmeshcher/gamestore/internal/handler"
	"github.com/mmeshcher/gamestore/internal/middleware"
	"github.com/mmeshcher/gamestore/internal/payment"
	"github.com/mmeshcher/gamestore/internal/repository"
	"github.com/mmeshcher/gamestore/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		sugar.Fatalw("store initialization error", "driver", cfg.StoreDriver, "error", err.Error())
	}

	kv := repository.NewKV(store, logger.Named("store"))
	processor := payment.NewProcessor(cfg.PaymentDelay)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)

	svc := service.NewService(kv, processor, hasher, logger.Named("service"))
	defer svc.Close()

	authMiddleware := middleware.NewAuthMiddleware(svc, logger)
	h := handler.NewHandler(svc, logger, authMiddleware)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(cfg.CORSOrigin),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sugar.Infow("starting gamestore server",
		"addr", cfg.RunAddress,
		"store", cfg.StoreDriver,
		"paymentDelay", processor.Delay().String(),
	)
	if err := serve(ctx, server, logger.Named("http")); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
