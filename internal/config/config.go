package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	AuthServiceAddress string
	RedisAddress       string
	TokenCacheTTL      time.Duration
	EventBrokerAddress string
	EventTopic         string
	EventWorkerCount   int
	EventBufferSize    int
	ShutdownTimeout    time.Duration
	SeedDemoData       bool
}

const (
	defaultRunAddress       = ":8080"
	defaultTokenCacheTTL    = 2 * time.Minute
	defaultEventTopic       = "invoice-events"
	defaultEventWorkerCount = 4
	defaultEventBufferSize  = 256
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		AuthServiceAddress: getString(lookup, "AUTH_SERVICE_ADDRESS", ""),
		RedisAddress:       getString(lookup, "REDIS_ADDRESS", ""),
		TokenCacheTTL:      getDuration(lookup, "TOKEN_CACHE_TTL", defaultTokenCacheTTL),
		EventBrokerAddress: getString(lookup, "EVENT_BROKER_ADDRESS", ""),
		EventTopic:         getString(lookup, "EVENT_TOPIC", defaultEventTopic),
		EventWorkerCount:   getInt(lookup, "EVENT_WORKER_COUNT", defaultEventWorkerCount),
		EventBufferSize:    getInt(lookup, "EVENT_BUFFER_SIZE", defaultEventBufferSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SeedDemoData:       getBool(lookup, "SEED_DEMO_DATA", false),
	}

	fs := flag.NewFlagSet("goldtrade", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		cacheTTLStr        = cfg.TokenCacheTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuthServiceAddress, "auth", cfg.AuthServiceAddress, "Auth service base URL")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the token validation cache")
	fs.StringVar(&cacheTTLStr, "token-cache-ttl", cacheTTLStr, "TTL for cached token validations")
	fs.StringVar(&cfg.EventBrokerAddress, "broker", cfg.EventBrokerAddress, "Kafka broker for invoice events")
	fs.StringVar(&cfg.EventTopic, "topic", cfg.EventTopic, "Kafka topic for invoice events")
	fs.IntVar(&cfg.EventWorkerCount, "event-workers", cfg.EventWorkerCount, "Number of concurrent event publishers")
	fs.IntVar(&cfg.EventBufferSize, "event-buffer", cfg.EventBufferSize, "Size of the event dispatch buffer")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.BoolVar(&cfg.SeedDemoData, "seed-demo", cfg.SeedDemoData, "Insert demo products on startup")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token cache ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TokenCacheTTL <= 0 {
		cfg.TokenCacheTTL = defaultTokenCacheTTL
	}

	if cfg.EventWorkerCount <= 0 {
		cfg.EventWorkerCount = defaultEventWorkerCount
	}

	if cfg.EventBufferSize <= 0 {
		cfg.EventBufferSize = defaultEventBufferSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AuthServiceAddress == "" {
		return nil, fmt.Errorf("auth service address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
