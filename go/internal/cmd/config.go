package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/currency"

	"github.com/mcdev12/grouporder/go/internal/dbconfig"
)

// Config is the process configuration shared by all subcommands.
type Config struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	GatewayPort  string        `env:"GATEWAY_PORT" envDefault:"8081"`
	RelayPort    string        `env:"RELAY_HEALTH_PORT" envDefault:"8082"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	OTELEndpoint string        `env:"OTEL_EXPORTER_ENDPOINT"`
	CatalogPath  string        `env:"CATALOG_PATH" envDefault:"config/menu.yaml"`
	Currency     string        `env:"CATALOG_CURRENCY" envDefault:"USD"`
	ShutdownWait time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Realtime RealtimeConfig
	Database dbconfig.Config
}

// RealtimeConfig covers tokens, push transport and the polling fallback.
type RealtimeConfig struct {
	NATSURL       string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	SubjectPrefix string        `env:"NATS_SUBJECT_PREFIX" envDefault:"grouporder.changes"`
	NotifyChannel string        `env:"NOTIFY_CHANNEL" envDefault:"grouporder_changes"`
	JWTSecret     string        `env:"REALTIME_JWT_SECRET"`
	TokenTTL      time.Duration `env:"REALTIME_TOKEN_TTL" envDefault:"24h"`
	PollInterval  time.Duration `env:"REALTIME_POLL_INTERVAL" envDefault:"5s"`
}

// loadConfig loads envFile when present and parses the environment.
func loadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Warn().Err(err).Str("file", envFile).Msg("could not load env file")
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.CurrencyUnit(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CurrencyUnit parses the configured ISO 4217 currency.
func (c Config) CurrencyUnit() (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(c.Currency))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("invalid CATALOG_CURRENCY %q: %w", c.Currency, err)
	}
	return unit, nil
}

// setupLogging applies the configured global log level.
func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		log.Warn().Str("level", level).Msg("unknown LOG_LEVEL, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
