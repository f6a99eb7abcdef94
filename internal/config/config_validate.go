// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/nurture/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if err := c.validateInteractions(); err != nil {
		return err
	}
	return c.validateEvents()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("HTTP timeouts must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Server.IsProduction() {
		for _, o := range c.Security.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateInteractions() error {
	ic := &c.Interactions
	ic.Backend = strings.ToLower(strings.TrimSpace(ic.Backend))

	switch ic.Backend {
	case BackendCSV:
		if ic.CSVPath == "" {
			return fmt.Errorf("INTERACTIONS_CSV_PATH is required for the csv backend")
		}
	case BackendBadger:
		if ic.BadgerPath == "" {
			return fmt.Errorf("INTERACTIONS_BADGER_PATH is required for the badger backend")
		}
		if ic.GCDiscardRatio <= 0 || ic.GCDiscardRatio >= 1 {
			return fmt.Errorf("interactions.gc_discard_ratio must be in (0, 1)")
		}
	default:
		return fmt.Errorf("INTERACTIONS_BACKEND must be %s or %s, got %q", BackendCSV, BackendBadger, ic.Backend)
	}

	if ic.Breaker.Enabled && ic.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("interactions.breaker.failure_threshold must be at least 1")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("EVENTS_BUFFER must not be negative")
	}
	if c.Events.RetryMaxRetries < 0 {
		return fmt.Errorf("EVENTS_RETRY_MAX must not be negative")
	}
	return nil
}
