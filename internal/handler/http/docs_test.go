// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-offering-publisher/internal/docs"
	"github.com/MKhiriev/go-offering-publisher/internal/logger"
)

func loadTestDocument(t *testing.T) *docs.Document {
	t.Helper()

	doc, err := docs.Load(filepath.Join("..", "..", "docs", "testdata", "spp_v2.swagger.json"))
	require.NoError(t, err)

	return doc
}

func TestMountDocs(t *testing.T) {
	doc := loadTestDocument(t)
	h := NewHandler(logger.Nop())

	require.NoError(t, h.MountDocs(doc))
	assert.True(t, h.DocsMounted())
	router := h.Init()

	t.Run("raw document", func(t *testing.T) {
		rr := serve(router, http.MethodGet, "/openapi.json")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Equal(t, doc.Raw, rr.Body.Bytes())
	})

	t.Run("docs redirect", func(t *testing.T) {
		rr := serve(router, http.MethodGet, "/docs")

		assert.Equal(t, http.StatusMovedPermanently, rr.Code)
		assert.Equal(t, "/docs/index.html", rr.Header().Get("Location"))
	})

	t.Run("interactive UI", func(t *testing.T) {
		rr := serve(router, http.MethodGet, "/docs/index.html")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "swagger-ui")
		assert.Contains(t, rr.Body.String(), "/openapi.json")
	})

	t.Run("compressed document", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	})

	t.Run("wrong method", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/openapi.json").Code)
	})
}

func TestMountDocs_Once(t *testing.T) {
	doc := loadTestDocument(t)
	h := NewHandler(logger.Nop())

	require.NoError(t, h.MountDocs(doc))
	assert.ErrorIs(t, h.MountDocs(doc), ErrDocsAlreadyMounted)
}
