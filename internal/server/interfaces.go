// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Binding and serving are split: [Server.Listen] acquires the socket so that
// bind failures surface synchronously, [Server.RunServer] blocks serving on
// the bound socket until the server stops.
type Server interface {
	// Name identifies the transport in logs and metrics.
	Name() string

	// Listen binds the configured address.
	Listen() error

	// Addr returns the bound address, or the configured one before Listen.
	Addr() string

	// RunServer serves requests and blocks until the server stops. A clean
	// shutdown returns nil.
	RunServer() error

	// Shutdown gracefully stops the server, forcing it once ctx is done.
	Shutdown(ctx context.Context)
}
