// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the application's transport servers.
//
// It provides orchestration for HTTP and gRPC server lifecycles: transports
// are registered first, bound together by a single StartAll call, and shut
// down gracefully in reverse start order when the process stops.
package server
