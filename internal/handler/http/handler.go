// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-offering-publisher/internal/docs"
	"github.com/MKhiriev/go-offering-publisher/internal/logger"
	"github.com/MKhiriev/go-offering-publisher/internal/metrics"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// Handler owns the gateway router. Routes are registered before the gateway
// listener is started and never change afterwards.
type Handler struct {
	router *chi.Mux

	docs    *docs.Document
	rpc     *RPCProxy
	metrics *metrics.Metrics
	build   BuildInfo
	ready   atomic.Bool

	logger *logger.Logger
}

// Option configures a [Handler].
type Option func(*Handler)

// WithMetrics exposes m at /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithRPCProxy exposes p at POST /rpc/{service}/{method}.
func WithRPCProxy(p *RPCProxy) Option {
	return func(h *Handler) {
		h.rpc = p
	}
}

// WithBuildInfo sets the payload of /version.
func WithBuildInfo(b BuildInfo) Option {
	return func(h *Handler) {
		h.build = b
	}
}

// NewHandler builds the router with the always-present routes.
func NewHandler(logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		router: chi.NewRouter(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)
	h.routes()

	logger.Info().Msg("http handler created")
	return h
}

// SetReady switches /health to 200.
func (h *Handler) SetReady() {
	h.ready.Store(true)
}

// DocsMounted reports whether MountDocs succeeded.
func (h *Handler) DocsMounted() bool {
	return h.docs != nil
}

// Close releases the RPC proxy connection.
func (h *Handler) Close() error {
	if h.rpc == nil {
		return nil
	}

	return h.rpc.Close()
}
