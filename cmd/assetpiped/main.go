package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetpipe/internal/config"
	"assetpipe/internal/devserver"
	"assetpipe/internal/infra"
)

func main() {
	cfg := config.Load()
	logger := infra.NewLogger(cfg.Env)

	router := devserver.NewRouter(devserver.Options{
		APIKey:    cfg.ServiceAPIKey,
		RateLimit: cfg.RateLimit,
		Logger:    &logger,
	})

	server := infra.NewHTTPServer(":"+cfg.Port, router)

	go func() {
		logger.Info().Msgf("assetpiped listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
