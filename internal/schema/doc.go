// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schema compiles the gRPC interface definition (.proto) at runtime
// and exposes its descriptors, dynamic message types and the JSON codec
// settings shared by the gRPC transport and the HTTP gateway.
//
// The schema is loaded once during bootstrap and is immutable afterwards.
package schema
