// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrDocsAlreadyMounted is returned by MountDocs on a second call. Routes are
// created once per process.
var ErrDocsAlreadyMounted = errors.New("documentation is already mounted")
