package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/logger"
	"bookcatalog/internal/root"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: logger.ParseLogFormat(cfg.Log.Format)})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := book.OpenRepository(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("cannot open store")
	}
	defer closeStore()
	log.Info().Str("driver", cfg.DB.Driver).Msg("store connection OK")

	handler, err := newRouter(cfg, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build router")
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

// newRouter wires every route and the middleware stack around repo.
func newRouter(cfg config.Config, repo book.Repository) (http.Handler, error) {
	bookService, err := book.NewService(repo, book.Mappings)
	if err != nil {
		return nil, err
	}

	router := http.NewServeMux()
	root.NewHTTPHandler(cfg.HTTP.PublicBaseURL, bookService).Register(router)
	book.NewHTTPHandler(bookService, cfg.HTTP.PublicBaseURL).Register(router)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.HTTP.EnableHSTS),
		httpx.CORSMiddleware(cfg.HTTP.CORSAllowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.HTTP.MaxBodyBytes),
	), nil
}
