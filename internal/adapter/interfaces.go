// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the transports of a running offering
// publisher.
//
// [GatewayAdapter] talks to the HTTP gateway over REST; [GRPCAdapter] talks
// to the gRPC transport through the standard health service. Both map
// transport failures to the sentinel errors of this package so that callers
// can use [errors.Is] regardless of the protocol (e.g. [ErrNotReady] for a
// 503 response or a NOT_SERVING health status).
package adapter

import (
	"context"
)

// Prober checks that a transport is up and ready to serve requests.
type Prober interface {
	// Name identifies the probed transport in reports.
	Name() string

	// Probe returns nil when the transport reports itself ready. A transport
	// that answers but is still starting yields [ErrNotReady].
	Probe(ctx context.Context) error
}

// Gateway is the REST surface of the HTTP gateway.
type Gateway interface {
	Prober

	// Health returns the readiness status reported by GET /health.
	Health(ctx context.Context) (HealthStatus, error)

	// Version returns the build information reported by GET /version.
	Version(ctx context.Context) (BuildInfo, error)

	// Call invokes a unary RPC through the gateway proxy with a JSON request
	// body and returns the raw JSON response.
	Call(ctx context.Context, service, method string, body []byte) ([]byte, error)
}

// HealthStatus is the body of the gateway health route.
type HealthStatus struct {
	Status string `json:"status"`
}

// BuildInfo is the body of the gateway version route.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
