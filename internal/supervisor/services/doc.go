// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

/*
Package services adapts long-running components to suture.Service.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel.
  - EventRouterService: the watermill event router. A factory builds a new
    router on every (re)start.
  - GCService: periodic Badger value log garbage collection. Ends with
    suture.ErrDoNotRestart once the log is closed.

Each wrapper returns ctx.Err() on a clean shutdown and a wrapped error on
failure so the supervisor can restart it with backoff.
*/
package services
