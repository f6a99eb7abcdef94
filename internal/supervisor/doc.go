// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

/*
Package supervisor runs the service's long-lived components under a suture v4
supervisor tree.

	nurture
	├── data-layer
	│   └── badger-gc        (badger backend only)
	├── messaging-layer
	│   └── event-router     (events.enabled)
	└── api-layer
	    └── http-server

Each layer restarts its own services with exponential backoff; a failure in
one layer never restarts another. Supervisor events are logged through
sutureslog, which main wires to zerolog via logging.NewSlogLogger.

	tree := supervisor.New(logging.NewSlogLogger(logging.Logger()), supervisor.Config{
	    FailureThreshold: cfg.Supervisor.FailureThreshold,
	    FailureDecay:     cfg.Supervisor.FailureDecay,
	    FailureBackoff:   cfg.Supervisor.FailureBackoff,
	    ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	if _, err := tree.Add(supervisor.LayerAPI, services.NewHTTPServerService(server, addr, timeout)); err != nil {
	    return err
	}
	err := tree.Serve(ctx)
*/
package supervisor
