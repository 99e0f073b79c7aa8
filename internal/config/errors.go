// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

var (
	// ErrInvalidBindAddress indicates a bind address that is neither
	// "host:port" nor a bare port in range.
	ErrInvalidBindAddress = errors.New("invalid bind address")
	// ErrInvalidGRPCConfigs indicates invalid gRPC transport settings.
	ErrInvalidGRPCConfigs = errors.New("invalid grpc configuration")
	// ErrInvalidGatewayConfigs indicates invalid HTTP gateway settings.
	ErrInvalidGatewayConfigs = errors.New("invalid gateway configuration")
	// ErrInvalidServerConfigs indicates invalid process lifecycle settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
