// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-offering-publisher/internal/config"
	grpchandler "github.com/MKhiriev/go-offering-publisher/internal/handler/grpc"
	httphandler "github.com/MKhiriev/go-offering-publisher/internal/handler/http"
	"github.com/MKhiriev/go-offering-publisher/internal/locator"
	"github.com/MKhiriev/go-offering-publisher/internal/logger"
	"github.com/MKhiriev/go-offering-publisher/internal/metrics"
	"github.com/MKhiriev/go-offering-publisher/internal/schema"
	"github.com/MKhiriev/go-offering-publisher/internal/server"
)

// Multiplexer starts and stops the process transports.
type Multiplexer interface {
	// Register queues a transport for StartAll without binding it.
	Register(s server.Server)
	// StartAll binds and serves every registered transport.
	StartAll() error
	// Start binds and serves a single transport.
	Start(s server.Server) error
	// Shutdown stops every started transport.
	Shutdown(timeout time.Duration)
}

// Bootstrap runs the startup sequence once.
type Bootstrap struct {
	cfg   *config.StructuredConfig
	mux   Multiplexer
	bases locator.Bases

	registrations []grpchandler.Registration
	metrics       *metrics.Metrics
	build         httphandler.BuildInfo

	state   State
	schema  *schema.Schema
	grpc    *server.GRPCServer
	http    *httphandler.Handler
	gateway *server.HTTPServer

	logger *logger.Logger
}

// Option configures a [Bootstrap].
type Option func(*Bootstrap)

// WithBases overrides the directories relative artifact paths are resolved
// against. Defaults to [locator.DefaultBases].
func WithBases(bases locator.Bases) Option {
	return func(b *Bootstrap) {
		b.bases = bases
	}
}

// WithRegistrations adds gRPC service implementations. They run before any
// transport is started.
func WithRegistrations(registrations ...grpchandler.Registration) Option {
	return func(b *Bootstrap) {
		b.registrations = append(b.registrations, registrations...)
	}
}

// WithMetrics records bootstrap progress in m and exposes it on the gateway.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bootstrap) {
		b.metrics = m
	}
}

// WithBuildInfo sets the payload of the gateway /version route.
func WithBuildInfo(build httphandler.BuildInfo) Option {
	return func(b *Bootstrap) {
		b.build = build
	}
}

// New returns a Bootstrap in the Created state.
func New(cfg *config.StructuredConfig, mux Multiplexer, logger *logger.Logger, opts ...Option) *Bootstrap {
	b := &Bootstrap{
		cfg:    cfg,
		mux:    mux,
		state:  StateCreated,
		logger: logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.bases == (locator.Bases{}) {
		b.bases = locator.DefaultBases()
	}

	return b
}

type step struct {
	to  State
	run func(ctx context.Context) error
}

// Run executes every step. On failure the state becomes FatalAborted, started
// transports are stopped and the error is returned.
func (b *Bootstrap) Run(ctx context.Context) error {
	if b.state != StateCreated {
		return ErrAlreadyRun
	}

	steps := []step{
		{to: StateConfigResolved, run: b.resolveConfig},
		{to: StateTransportsRegistered, run: b.activateGRPC},
		{to: StateTransportsStarted, run: b.startTransports},
		{to: StateDocsMounted, run: b.mountDocs},
		{to: StateGatewayListening, run: b.activateGateway},
		{to: StateReady, run: b.markReady},
	}

	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			return b.abort(s.to, err)
		}
		b.setState(s.to)
	}

	return nil
}

// State returns the current state.
func (b *Bootstrap) State() State {
	return b.state
}

func (b *Bootstrap) setState(s State) {
	b.logger.Debug().Stringer("from", b.state).Stringer("to", s).Msg("bootstrap state changed")
	b.state = s
	if b.metrics != nil {
		b.metrics.SetBootstrapState(int(s))
	}
}

func (b *Bootstrap) abort(failed State, err error) error {
	b.logger.Error().Err(err).Stringer("step", failed).Msg("fatal startup error")
	b.setState(StateFatalAborted)

	b.mux.Shutdown(b.cfg.Server.ShutdownTimeout)

	// a started gateway closes the handler from its shutdown hook
	if b.http != nil && b.gateway == nil {
		if err := b.http.Close(); err != nil {
			b.logger.Err(err).Msg("error closing gRPC proxy connection")
		}
	}

	return fmt.Errorf("bootstrap aborted before %s: %w", failed, err)
}

func (b *Bootstrap) resolveConfig(context.Context) error {
	event := b.logger.Info().
		Bool("grpc", b.cfg.GRPC.Enabled).
		Bool("reflection", b.cfg.GRPC.Reflection).
		Bool("gateway", b.cfg.Gateway.Enabled).
		Str("gateway_flag_precedence", string(b.cfg.Gateway.FlagPrecedence))
	if b.cfg.GRPC.Enabled {
		event = event.Str("grpc_bind", b.cfg.GRPC.Bind)
	}
	if b.cfg.Gateway.Enabled {
		event = event.Str("gateway_bind", b.cfg.Gateway.Bind)
	}
	event.Msg("configuration resolved")

	if b.cfg.Gateway.FlagPrecedence == config.GatewayFlagLegacyServerEnv {
		b.logger.Warn().Msgf("%s=%s: gateway activation follows %s before %s, pending product-owner confirmation",
			config.KeyGatewayFlagPrecedence, config.GatewayFlagLegacyServerEnv,
			config.KeyEnableGRPCServer, config.KeyEnableGRPCGateway)
	}

	return nil
}

func (b *Bootstrap) startTransports(context.Context) error {
	if err := b.mux.StartAll(); err != nil {
		return err
	}

	if b.grpc != nil {
		if b.metrics != nil {
			b.metrics.SetTransportUp(b.grpc.Name(), true)
		}
		b.logger.Info().Msgf("gRPC Server listening on '%s' and %s gRPC Reflection",
			b.grpc.Addr(), reflectionMode(b.cfg.GRPC.Reflection))
	}

	return nil
}

func (b *Bootstrap) markReady(context.Context) error {
	if b.grpc != nil {
		b.grpc.SetServing()
	}
	if b.http != nil {
		b.http.SetReady()
	}

	b.logger.Info().Msg("application ready")
	return nil
}

func reflectionMode(enabled bool) server.Reflection {
	if enabled {
		return server.ReflectionOn
	}

	return server.ReflectionOff
}
