package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedback-prioritizer/internal/cache"
	"feedback-prioritizer/internal/config"
	"feedback-prioritizer/internal/database"
	"feedback-prioritizer/internal/router"
	"feedback-prioritizer/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env, "feedback-api")

	// store: created once here, never from request handlers
	store, closeStore, err := database.OpenStore(context.Background(), cfg, l)
	if err != nil {
		l.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store init failed")
	}
	defer closeStore()

	// submission limiter
	limiter, closeLimiter, err := cache.NewFromConfig(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis connect failed")
	}
	defer closeLimiter()
	if limiter == nil {
		l.Warn().Msg("submission rate limit disabled")
	}

	// http
	h, err := router.New(l, router.Deps{Store: store, Limiter: limiter}, cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("router setup failed")
	}
	if !cfg.AuthEnabled() {
		l.Warn().Msg("dashboard auth disabled; /internal/dashboard is public")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("shutdown")
	}
	l.Info().Msg("shutdown complete")
}
