// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) routes() {
	h.router.Get("/health", h.health)
	h.router.Get("/version", h.version)

	if h.metrics != nil {
		h.router.Method("GET", "/metrics", h.metrics.Handler())
	}

	if h.rpc != nil {
		h.router.Post(rpcPattern, h.rpc.ServeHTTP)
	}
}

// Init finalises the router. Call it after MountDocs.
func (h *Handler) Init() *chi.Mux {
	h.router.MethodNotAllowed(CheckHTTPMethod(h.router))

	return h.router
}
