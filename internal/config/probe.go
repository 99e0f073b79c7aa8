// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// ProbeConfig configures the readiness probe binary.
type ProbeConfig struct {
	// GatewayURL is the gateway base URL. Empty skips the gateway check.
	// Env: PROBE_GATEWAY_URL
	GatewayURL string `env:"PROBE_GATEWAY_URL"`

	// GRPCAddress is the gRPC "host:port". Empty skips the gRPC check.
	// Env: PROBE_GRPC_ADDR
	GRPCAddress string `env:"PROBE_GRPC_ADDR"`

	// Timeout bounds every check.
	// Env: PROBE_TIMEOUT
	Timeout time.Duration `env:"PROBE_TIMEOUT" envDefault:"3s"`

	// LogLevel follows LOG_LEVEL of the server.
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// GetProbeConfig reads the probe configuration from flags, then the
// environment, then defaults.
//
// Flags:
//
//	-gateway gateway base URL, e.g. http://127.0.0.1:3000
//	-grpc gRPC address host:port
//	-timeout per-check timeout
func GetProbeConfig(args []string, environ []string) (*ProbeConfig, error) {
	fs := flag.NewFlagSet("offering-publisher-probe", flag.ContinueOnError)
	fs.String("gateway", "", "gateway base URL")
	fs.String("grpc", "", "gRPC address host:port")
	fs.String("timeout", "", "per-check timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	keys := map[string]string{
		"gateway": "PROBE_GATEWAY_URL",
		"grpc":    "PROBE_GRPC_ADDR",
		"timeout": "PROBE_TIMEOUT",
	}
	flags := make(Source)
	fs.Visit(func(f *flag.Flag) {
		flags[keys[f.Name]] = f.Value.String()
	})

	snapshot, err := NewResolver([]Source{flags, environSource(environ)}, nil).Snapshot()
	if err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	cfg := new(ProbeConfig)
	if err := parseEnv(cfg, snapshot); err != nil {
		return nil, err
	}
	if cfg.GatewayURL == "" && cfg.GRPCAddress == "" {
		return nil, errors.New("nothing to probe: set -gateway or -grpc")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("PROBE_TIMEOUT must be positive, got %s", cfg.Timeout)
	}

	return cfg, nil
}
