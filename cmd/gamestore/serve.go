package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout — сколько ждать завершения активных запросов после остановки.
const shutdownTimeout = 5 * time.Second

// serve обслуживает запросы, пока не отменён ctx или не упал listener.
func serve(ctx context.Context, server *http.Server, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", server.Addr, err)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("stopping server", zap.Duration("timeout", shutdownTimeout))

		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(stopCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
