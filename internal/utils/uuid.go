// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// UUIDGenerator mints trace ids for requests that reach the gateway without
// an X-Trace-ID header. The id is attached to the request logger and sent to
// the gRPC transport as x-trace-id metadata, so one id follows a call across
// both transports.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7. Being time-ordered, trace ids sort by arrival
// in log queries. A random UUIDv4 is returned if the clock read fails.
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
