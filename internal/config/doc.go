// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

/*
Package config loads and validates the service configuration.

# Sources

Configuration is layered with koanf, each layer overriding the previous:

 1. Struct defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, else config.yaml, config.yml, /etc/nurture/config.yaml
 3. Environment variables listed in envMappings

Environment variables outside the mapping are ignored. CORS_ORIGINS accepts a
comma-separated list.

# Example File

	server:
	  port: 8080
	  environment: production
	security:
	  cors_origins: [https://app.example.org]
	recommend:
	  weights: {similarity: 0.8, popularity: 0.2}
	  limits: {default_k: 5, max_k: 50}
	interactions:
	  backend: badger
	  badger_path: /data/interactions
	  breaker: {enabled: true, failure_threshold: 5, timeout: 30s}
	events:
	  enabled: true

# Validation

Load fails when a value is out of range: an unknown log backend, a port
outside 1..65535, blend weights that are negative or both zero, or a
wildcard CORS origin in production.
*/
package config
