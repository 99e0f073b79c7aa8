// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/MKhiriev/go-offering-publisher/internal/docs"
)

const (
	openAPIRoute = "/openapi.json"
	docsRoute    = "/docs"
)

// MountDocs exposes doc at /openapi.json and the interactive UI at /docs.
// It must be called before the router serves its first request.
func (h *Handler) MountDocs(doc *docs.Document) error {
	if h.docs != nil {
		return ErrDocsAlreadyMounted
	}
	h.docs = doc

	h.router.Get(docsRoute, redirectToIndex)
	h.router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get(openAPIRoute, h.openAPI)
		r.Get(docsRoute+"/*", httpSwagger.Handler(httpSwagger.URL(openAPIRoute)))
	})

	h.logger.Info().Str("path", doc.Path).Msg("Swagger UI mounted at " + docsRoute)
	return nil
}

func (h *Handler) openAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.docs.Raw); err != nil {
		h.logger.Err(err).Msg("error writing OpenAPI document")
	}
}

func redirectToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, docsRoute+"/index.html", http.StatusMovedPermanently)
}
