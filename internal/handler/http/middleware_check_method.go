// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
)

var routedMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// CheckHTTPMethod is the router's MethodNotAllowed handler. It answers 404
// instead of chi's 405 so that an unsupported method on a known route looks
// the same as an unknown path. Parameterised and wildcard routes are matched
// the way the router matches them.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range routedMethods {
			if router.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		logger.FromRequest(r).Debug().
			Str("method", r.Method).
			Strs("allowed", allowed).
			Msg("method not routed")

		http.NotFound(w, r)
	}
}
