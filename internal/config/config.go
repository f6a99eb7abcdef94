// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/nurture/internal/recommend"
)

// Interaction log backends.
const (
	BackendCSV    = "csv"
	BackendBadger = "badger"
)

// Config holds the complete service configuration.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Security     SecurityConfig     `koanf:"security"`
	Logging      LoggingConfig      `koanf:"logging"`
	Catalog      CatalogConfig      `koanf:"catalog"`
	Recommend    recommend.Config   `koanf:"recommend"`
	Interactions InteractionsConfig `koanf:"interactions"`
	Events       EventsConfig       `koanf:"events"`
	Supervisor   SupervisorConfig   `koanf:"supervisor"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production". Production rejects a
	// wildcard CORS origin.
	Environment string `koanf:"environment"`
}

// SecurityConfig holds request admission settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig selects the activity catalog.
type CatalogConfig struct {
	// Path is a YAML catalog file. Empty uses the built-in catalog.
	Path string `koanf:"path"`
}

// InteractionsConfig selects and tunes the interaction log.
type InteractionsConfig struct {
	// Backend is "csv" (default) or "badger".
	Backend string `koanf:"backend"`

	CSVPath    string `koanf:"csv_path"`
	BadgerPath string `koanf:"badger_path"`

	// SyncWrites fsyncs every append.
	SyncWrites bool `koanf:"sync_writes"`

	// GCInterval is how often badger value-log GC runs. Badger only.
	GCInterval time.Duration `koanf:"gc_interval"`

	// GCDiscardRatio is passed to badger's RunValueLogGC.
	GCDiscardRatio float64 `koanf:"gc_discard_ratio"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the log.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// EventsConfig configures the in-process event bus and its router.
type EventsConfig struct {
	Enabled              bool          `koanf:"enabled"`
	Buffer               int64         `koanf:"buffer"`
	BlockPublish         bool          `koanf:"block_publish"`
	RetryMaxRetries      int           `koanf:"retry_max_retries"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`
}

// SupervisorConfig mirrors suture's restart tuning.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the service runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}
