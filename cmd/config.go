package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// config is the process configuration read from the environment.
type config struct {
	Addr          string
	DatabaseURL   string
	DevSeed       bool
	PublicBaseURL string
	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	JWTTTL        time.Duration
	AuthRequired  bool
	CORSOrigins   []string
}

// loadConfig reads settings through getenv. The memory backend seeds by
// default; postgres only seeds when DEV_SEED is truthy.
func loadConfig(getenv func(string) string) (config, error) {
	env := func(k string) string { return strings.TrimSpace(getenv(k)) }
	cfg := config{
		Addr:          env("ADDR"),
		DatabaseURL:   env("DATABASE_URL"),
		PublicBaseURL: strings.TrimRight(env("PUBLIC_BASE_URL"), "/"),
		JWTSecret:     env("JWT_HS256_SECRET"),
		JWTIssuer:     env("JWT_ISSUER"),
		JWTAudience:   env("JWT_AUDIENCE"),
		JWTTTL:        24 * time.Hour,
		AuthRequired:  isTruthy(env("AUTH_REQUIRED")),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if v := env("DEV_SEED"); v != "" {
		cfg.DevSeed = isTruthy(v)
	} else {
		cfg.DevSeed = cfg.DatabaseURL == ""
	}
	if v := env("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return config{}, fmt.Errorf("JWT_TTL must be a positive duration, got %q", v)
		}
		cfg.JWTTTL = ttl
	}
	for _, o := range strings.Split(env("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
