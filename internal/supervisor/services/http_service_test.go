// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*HTTPServerService)(nil)

// stubServer blocks in ListenAndServe until Shutdown, unless serveErr is set.
type stubServer struct {
	serveErr    error
	shutdownErr error

	started   chan struct{}
	release   chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	shutdowns atomic.Int32
}

func newStubServer() *stubServer {
	return &stubServer{started: make(chan struct{}), release: make(chan struct{})}
}

func (s *stubServer) ListenAndServe() error {
	s.startOnce.Do(func() { close(s.started) })
	if s.serveErr != nil {
		return s.serveErr
	}
	<-s.release
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(context.Context) error {
	s.shutdowns.Add(1)
	s.stopOnce.Do(func() { close(s.release) })
	return s.shutdownErr
}

func TestNewHTTPServerService(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{0, defaultShutdownTimeout},
		{-time.Second, defaultShutdownTimeout},
		{3 * time.Second, 3 * time.Second},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newStubServer(), "127.0.0.1:0", tt.in)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("shutdownTimeout(%v) = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
		if svc.String() != "http-server" {
			t.Errorf("String() = %q, want http-server", svc.String())
		}
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	listenErr := errors.New("listen tcp: permission denied")
	drainErr := errors.New("context deadline exceeded while draining")

	tests := []struct {
		name          string
		serveErr      error
		shutdownErr   error
		cancel        bool
		wantErr       error
		wantShutdowns int32
	}{
		{name: "cancel drains and returns ctx error", cancel: true, wantErr: context.Canceled, wantShutdowns: 1},
		{name: "listener failure is returned", serveErr: listenErr, wantErr: listenErr},
		{name: "drain failure is returned", shutdownErr: drainErr, cancel: true, wantErr: drainErr, wantShutdowns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newStubServer()
			srv.serveErr = tt.serveErr
			srv.shutdownErr = tt.shutdownErr
			svc := NewHTTPServerService(srv, "127.0.0.1:0", time.Second)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			done := make(chan error, 1)
			go func() { done <- svc.Serve(ctx) }()

			select {
			case <-srv.started:
			case <-time.After(time.Second):
				t.Fatal("ListenAndServe was not called")
			}
			if tt.cancel {
				cancel()
			}

			select {
			case err := <-done:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Serve() error = %v, want %v", err, tt.wantErr)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Serve() did not return")
			}
			if got := srv.shutdowns.Load(); got != tt.wantShutdowns {
				t.Errorf("Shutdown calls = %d, want %d", got, tt.wantShutdowns)
			}
		})
	}
}

func TestHTTPServerService_RealServer(t *testing.T) {
	t.Run("address in use", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("Listen() error = %v", err)
		}
		defer ln.Close()

		server := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
		err = NewHTTPServerService(server, server.Addr, time.Second).Serve(context.Background())
		if err == nil {
			t.Fatal("Serve() on a bound address returned nil")
		}
	})

	t.Run("stops with its supervisor", func(t *testing.T) {
		server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
		sup := suture.New("api-layer", suture.Spec{
			FailureBackoff: 10 * time.Millisecond,
			Timeout:        2 * time.Second,
		})
		sup.Add(NewHTTPServerService(server, server.Addr, time.Second))

		ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
		defer cancel()

		select {
		case <-sup.ServeBackground(ctx):
		case <-time.After(3 * time.Second):
			t.Fatal("supervisor did not stop")
		}
	})
}
