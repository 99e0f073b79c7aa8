// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP gateway of the offering publisher.
//
// It serves the OpenAPI document and its interactive UI, liveness and build
// information, Prometheus metrics, and a JSON proxy that forwards unary calls
// to the gRPC transport. Request tracing and access logging are applied to
// every route.
package http
