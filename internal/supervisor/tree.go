// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// ErrUnknownLayer is returned by Add for a layer outside the tree.
var ErrUnknownLayer = errors.New("unknown supervisor layer")

// Layer names a branch of the tree. Each layer has its own supervisor, so a
// restart loop in one layer never restarts services in another.
type Layer int

const (
	// LayerData holds interaction log maintenance (Badger value log GC).
	LayerData Layer = iota
	// LayerMessaging holds the interaction event router.
	LayerMessaging
	// LayerAPI holds the HTTP server.
	LayerAPI

	numLayers
)

func (l Layer) String() string {
	switch l {
	case LayerData:
		return "data"
	case LayerMessaging:
		return "messaging"
	case LayerAPI:
		return "api"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

func (l Layer) valid() bool {
	return l >= LayerData && l < numLayers
}

// Config tunes restart behavior for every supervisor in the tree.
type Config struct {
	// FailureThreshold is the decayed failure count that triggers backoff.
	FailureThreshold float64
	// FailureDecay is the failure half-life in seconds.
	FailureDecay float64
	// FailureBackoff is how long a layer pauses restarts once over threshold.
	FailureBackoff time.Duration
	// ShutdownTimeout bounds how long each service gets to stop.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns suture's own defaults.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = def.FailureThreshold
	}
	if c.FailureDecay <= 0 {
		c.FailureDecay = def.FailureDecay
	}
	if c.FailureBackoff <= 0 {
		c.FailureBackoff = def.FailureBackoff
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	return c
}

func (c Config) spec(hook suture.EventHook) suture.Spec {
	return suture.Spec{
		EventHook:        hook,
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// Tree is the process supervision hierarchy: a root supervisor named
// "nurture" with one child supervisor per Layer.
type Tree struct {
	root   *suture.Supervisor
	layers [numLayers]*suture.Supervisor
	logger *slog.Logger
	config Config

	mu    sync.Mutex
	names map[Layer][]string
}

// New builds the tree. Zero or negative config fields take DefaultConfig
// values; a nil logger uses slog.Default.
func New(logger *slog.Logger, cfg Config) *Tree {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()

	// Layer supervisors are given no hook and inherit the root's on Add.
	handler := &sutureslog.Handler{Logger: logger}
	t := &Tree{
		root:   suture.New("nurture", cfg.spec(handler.MustHook())),
		logger: logger,
		config: cfg,
		names:  make(map[Layer][]string, numLayers),
	}
	for l := LayerData; l < numLayers; l++ {
		t.layers[l] = suture.New(l.String()+"-layer", cfg.spec(nil))
		t.root.Add(t.layers[l])
	}
	return t
}

// Root returns the root supervisor.
func (t *Tree) Root() *suture.Supervisor {
	return t.root
}

// Add registers svc under layer. Services added while the tree is running
// are started immediately.
func (t *Tree) Add(layer Layer, svc suture.Service) (suture.ServiceToken, error) {
	if !layer.valid() {
		return suture.ServiceToken{}, fmt.Errorf("%w: %s", ErrUnknownLayer, layer)
	}

	t.mu.Lock()
	t.names[layer] = append(t.names[layer], serviceName(svc))
	t.mu.Unlock()

	t.logger.Debug("service registered", "layer", layer.String(), "service", serviceName(svc))
	return t.layers[layer].Add(svc), nil
}

// Services lists the names of services registered under layer, in the order
// they were added.
func (t *Tree) Services(layer Layer) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.names[layer]...)
}

// Serve runs the tree until ctx is canceled.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives the
// result when the tree stops.
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that did not stop within
// ShutdownTimeout.
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

func serviceName(svc suture.Service) string {
	if s, ok := svc.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", svc)
}
