package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tinoosan/cinerator/internal/auth"
	"github.com/tinoosan/cinerator/internal/devseed"
	httpapi "github.com/tinoosan/cinerator/internal/httpapi/v1"
	"github.com/tinoosan/cinerator/internal/storage/memory"
	pgstore "github.com/tinoosan/cinerator/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	var tokens *auth.Tokens
	if cfg.JWTSecret != "" {
		tokens, err = auth.NewTokens(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
		if err != nil {
			logger.Error("invalid jwt settings", "err", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("JWT_HS256_SECRET not set; login returns empty tokens")
	}
	if cfg.AuthRequired && tokens == nil {
		logger.Warn("AUTH_REQUIRED ignored without JWT_HS256_SECRET")
	}

	var store httpapi.Store
	var closeFn func()
	var backend string

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = pg.Close
		store, backend = pg, "postgres"
	} else {
		store, backend = memory.New(), "memory"
	}
	logger.Info("storage backend: " + backend)

	if cfg.DevSeed {
		res, err := devseed.Run(ctx, store, time.Now())
		if err != nil {
			logger.Error("dev seed failed", "err", err)
		} else {
			logDevSeed(logger, backend, res)
			printDevSeedBanner(res)
		}
	}

	api := httpapi.New(store, httpapi.Config{
		BaseURL:      cfg.PublicBaseURL,
		Tokens:       tokens,
		AuthRequired: cfg.AuthRequired,
		CORSOrigins:  cfg.CORSOrigins,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cinerator listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// logDevSeed emits structured logs with useful IDs
func logDevSeed(l *slog.Logger, backend string, res devseed.Result) {
	l.Info("DEV seed ("+backend+")",
		"user_id", res.UserID.String(),
		"username", devseed.DemoUsername,
		"movie_id", res.MovieID.String(),
		"director_id", res.DirectorID.String(),
		"actor_id", res.ActorID.String(),
	)
}

// printDevSeedBanner prints a simple banner to stdout for easy copy/paste of IDs
func printDevSeedBanner(res devseed.Result) {
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("login:       %s / %s\n", devseed.DemoUsername, devseed.DemoPassword)
	fmt.Printf("user_id:     %s\n", res.UserID)
	fmt.Printf("movie_id:    %s\n", res.MovieID)
	fmt.Printf("director_id: %s\n", res.DirectorID)
	fmt.Printf("actor_id:    %s\n", res.ActorID)
	fmt.Println("==================================================")
}
