// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/nurture/internal/recommend"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/nurture/config.yaml",
	"/etc/nurture/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recommend: *recommend.DefaultConfig(),
		Interactions: InteractionsConfig{
			Backend:        BackendCSV,
			CSVPath:        "data/interactions.csv",
			BadgerPath:     "data/interactions",
			SyncWrites:     true,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
			Breaker: BreakerConfig{
				Enabled:          true,
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Events: EventsConfig{
			Enabled:              true,
			Buffer:               256,
			RetryMaxRetries:      3,
			RetryInitialInterval: 100 * time.Millisecond,
			CloseTimeout:         10 * time.Second,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// Load builds the configuration from three layers, later ones winning:
// struct defaults, an optional YAML file, then mapped environment variables.
// The result is validated before it is returned.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are accepted as comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"http_host":                 "server.host",
	"http_port":                 "server.port",
	"http_read_timeout":         "server.read_timeout",
	"http_write_timeout":        "server.write_timeout",
	"http_idle_timeout":         "server.idle_timeout",
	"http_shutdown_timeout":     "server.shutdown_timeout",
	"environment":               "server.environment",
	"cors_origins":              "security.cors_origins",
	"rate_limit_reqs":           "security.rate_limit_reqs",
	"rate_limit_window":         "security.rate_limit_window",
	"disable_rate_limit":        "security.rate_limit_disabled",
	"log_level":                 "logging.level",
	"log_format":                "logging.format",
	"log_caller":                "logging.caller",
	"catalog_path":              "catalog.path",
	"recommend_similarity":      "recommend.weights.similarity",
	"recommend_popularity":      "recommend.weights.popularity",
	"recommend_default_k":       "recommend.limits.default_k",
	"recommend_max_k":           "recommend.limits.max_k",
	"recommend_require_known":   "recommend.feedback.require_known_item",
	"interactions_backend":      "interactions.backend",
	"interactions_csv_path":     "interactions.csv_path",
	"interactions_badger_path":  "interactions.badger_path",
	"interactions_sync_writes":  "interactions.sync_writes",
	"interactions_gc_interval":  "interactions.gc_interval",
	"interactions_breaker":      "interactions.breaker.enabled",
	"events_enabled":            "events.enabled",
	"events_buffer":             "events.buffer",
	"events_retry_max":          "events.retry_max_retries",
	"supervisor_shutdown_limit": "supervisor.shutdown_timeout",
}

// envTransformFunc maps an environment variable name to a koanf path.
//
//	HTTP_PORT            -> server.port
//	INTERACTIONS_BACKEND -> interactions.backend
//	RECOMMEND_MAX_K      -> recommend.limits.max_k
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
