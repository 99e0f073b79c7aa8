// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
//
// Bind addresses are not parsed here: they are resolved by the bootstrap
// only for the transports that are enabled.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Gateway.FlagPrecedence {
	case GatewayFlagFromGatewayKey, GatewayFlagLegacyServerEnv:
	default:
		return fmt.Errorf("%w: %s=%q, expected %q or %q", ErrInvalidGatewayConfigs,
			KeyGatewayFlagPrecedence, cfg.Gateway.FlagPrecedence,
			GatewayFlagFromGatewayKey, GatewayFlagLegacyServerEnv)
	}

	if cfg.GRPC.Enabled {
		if cfg.GRPC.Package == "" {
			return fmt.Errorf("%w: empty GRPC_PACKAGE", ErrInvalidGRPCConfigs)
		}
		if cfg.GRPC.MaxMsgSize <= 0 {
			return fmt.Errorf("%w: GRPC_MAX_MSG_SIZE must be positive, got %d", ErrInvalidGRPCConfigs, cfg.GRPC.MaxMsgSize)
		}
		if cfg.Schema.ProtoPath == "" {
			return fmt.Errorf("%w: empty GRPC_PROTO_PATH", ErrInvalidGRPCConfigs)
		}
	}

	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT must be positive, got %s", ErrInvalidServerConfigs, cfg.Server.ShutdownTimeout)
	}

	return nil
}
