// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

// HTTPServer serves an http.Handler on a single listener.
type HTTPServer struct {
	bind     string
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

// NewHTTPServer prepares an HTTP server for bind without binding it.
func NewHTTPServer(bind string, handler http.Handler, logger *logger.Logger) *HTTPServer {
	return &HTTPServer{
		bind: bind,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// Name implements [Server].
func (h *HTTPServer) Name() string {
	return "http"
}

// Listen implements [Server].
func (h *HTTPServer) Listen() error {
	l, err := net.Listen("tcp", h.bind)
	if err != nil {
		return fmt.Errorf("error binding HTTP server to %s: %w", h.bind, err)
	}

	h.listener = l
	return nil
}

// Addr implements [Server].
func (h *HTTPServer) Addr() string {
	if h.listener != nil {
		return h.listener.Addr().String()
	}

	return h.bind
}

// OnShutdown registers f to run when the server shuts down.
func (h *HTTPServer) OnShutdown(f func()) {
	h.server.RegisterOnShutdown(f)
}

// RunServer implements [Server].
func (h *HTTPServer) RunServer() error {
	if h.listener == nil {
		return ErrNotListening
	}

	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}

	return nil
}

// Shutdown implements [Server].
func (h *HTTPServer) Shutdown(ctx context.Context) {
	h.logger.Info().Msg("HTTP server Shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Msg("HTTP server Shutdown")
		_ = h.server.Close()
	}

	if h.listener != nil {
		_ = h.listener.Close()
	}
}
