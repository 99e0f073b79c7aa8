// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import "errors"

var (
	// ErrCompile indicates a malformed schema or an unresolvable import.
	ErrCompile = errors.New("schema compile error")
	// ErrPackageNotFound indicates that the configured package is not
	// declared by any file of the compiled schema.
	ErrPackageNotFound = errors.New("package not found in schema")
	// ErrUnsupportedCodecOption indicates a codec option the JSON codec
	// cannot honor.
	ErrUnsupportedCodecOption = errors.New("unsupported codec option")
	// ErrMethodNotFound indicates a service or method missing from the
	// exposed package.
	ErrMethodNotFound = errors.New("method not found")
)
