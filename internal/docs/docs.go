// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package docs loads the pre-generated OpenAPI document served by the HTTP
// gateway.
package docs

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-openapi/spec"

	"github.com/MKhiriev/go-offering-publisher/internal/locator"
)

// ErrMalformed indicates a document that exists but is not a valid
// Swagger/OpenAPI JSON object.
var ErrMalformed = errors.New("malformed OpenAPI document")

// Document is a loaded documentation artifact. Raw is served verbatim.
type Document struct {
	Path    string
	Raw     []byte
	Swagger *spec.Swagger
}

// Load reads the first existing candidate. When no candidate exists the
// returned error matches [locator.ErrNotFound].
func Load(candidates ...string) (*Document, error) {
	path, err := locator.First(candidates...)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading OpenAPI document %s: %w", path, err)
	}

	return Parse(path, raw)
}

// Parse decodes raw as a Swagger 2.0 document.
func Parse(path string, raw []byte) (*Document, error) {
	swagger := new(spec.Swagger)
	if err := swagger.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}

	return &Document{
		Path:    path,
		Raw:     raw,
		Swagger: swagger,
	}, nil
}

// Title returns the API title, empty when the document has no info block.
func (d *Document) Title() string {
	if d.Swagger.Info == nil {
		return ""
	}

	return d.Swagger.Info.Title
}

// Version returns the API version, empty when the document has no info block.
func (d *Document) Version() string {
	if d.Swagger.Info == nil {
		return ""
	}

	return d.Swagger.Info.Version
}

// PathCount returns the number of documented paths.
func (d *Document) PathCount() int {
	if d.Swagger.Paths == nil {
		return 0
	}

	return len(d.Swagger.Paths.Paths)
}
