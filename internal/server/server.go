// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
)

// Multiplexer owns the process's transports. Registered transports are bound
// together by [Multiplexer.StartAll]; late transports such as the HTTP
// gateway are bound individually with [Multiplexer.Start].
type Multiplexer struct {
	mu         sync.Mutex
	registered []Server
	started    []Server
	allStarted bool

	errs chan error

	logger *logger.Logger
}

// NewMultiplexer returns an empty Multiplexer.
func NewMultiplexer(logger *logger.Logger) *Multiplexer {
	return &Multiplexer{
		errs:   make(chan error, 1),
		logger: logger,
	}
}

// Register queues s for StartAll. Nothing is bound.
func (m *Multiplexer) Register(s Server) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug().Str("server", s.Name()).Msg("server registered")
	m.registered = append(m.registered, s)
}

// StartAll binds every registered server and then serves each on its own
// goroutine. If any bind fails, the servers already bound are closed and
// none is served.
func (m *Multiplexer) StartAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.allStarted {
		return ErrAlreadyStarted
	}
	m.allStarted = true

	bound := make([]Server, 0, len(m.registered))
	for _, s := range m.registered {
		if err := s.Listen(); err != nil {
			m.closeAll(bound)
			return err
		}
		bound = append(bound, s)
	}

	for _, s := range bound {
		m.serve(s)
	}

	return nil
}

// Start binds s and serves it on its own goroutine.
func (m *Multiplexer) Start(s Server) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := s.Listen(); err != nil {
		return err
	}

	m.serve(s)
	return nil
}

func (m *Multiplexer) serve(s Server) {
	m.started = append(m.started, s)
	m.logger.Info().Str("server", s.Name()).Str("addr", s.Addr()).Msg("launching server")

	go func() {
		if err := s.RunServer(); err != nil {
			m.logger.Err(err).Str("server", s.Name()).Msg("server stopped")
			select {
			case m.errs <- fmt.Errorf("%s: %w", s.Name(), err):
			default:
			}
		}
	}()
}

func (m *Multiplexer) closeAll(servers []Server) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, s := range slices.Backward(servers) {
		s.Shutdown(ctx)
	}
}

// Started returns the names of the servers that are serving, in start order.
func (m *Multiplexer) Started() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.started))
	for _, s := range m.started {
		names = append(names, s.Name())
	}

	return names
}

// Wait blocks until ctx is done or a server stops with an error, then shuts
// every started server down within timeout. The error of a failed server is
// returned.
func (m *Multiplexer) Wait(ctx context.Context, timeout time.Duration) error {
	var err error
	select {
	case <-ctx.Done():
		m.logger.Info().Msg("stop signal received")
	case err = <-m.errs:
	}

	m.Shutdown(timeout)
	if err == nil {
		m.logger.Info().Msg("server Shutdown gracefully")
	}

	return err
}

// Shutdown stops every started server in reverse start order. All servers
// share one timeout, after which graceful stops are forced.
func (m *Multiplexer) Shutdown(timeout time.Duration) {
	m.mu.Lock()
	started := m.started
	m.started = nil
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, s := range slices.Backward(started) {
		s.Shutdown(ctx)
	}
}
