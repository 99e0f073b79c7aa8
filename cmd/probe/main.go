// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command probe exits 0 when every configured transport of a running
// offering publisher reports ready, and 1 otherwise. It is meant for
// container health checks.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/MKhiriev/go-offering-publisher/internal/adapter"
	"github.com/MKhiriev/go-offering-publisher/internal/config"
	"github.com/MKhiriev/go-offering-publisher/internal/logger"
)

func main() {
	log := logger.NewLogger("offering-publisher-probe")

	cfg, err := config.GetProbeConfig(os.Args[1:], os.Environ())
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log, _ = log.WithLevel(cfg.LogLevel)

	var probers []adapter.Prober
	if cfg.GatewayURL != "" {
		gw, err := adapter.NewGatewayAdapter(cfg.GatewayURL, cfg.Timeout, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create gateway adapter")
		}
		probers = append(probers, gw)
	}
	if cfg.GRPCAddress != "" {
		rpc, err := adapter.NewGRPCAdapter(cfg.GRPCAddress, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create gRPC adapter")
		}
		defer rpc.Close()
		probers = append(probers, rpc)
	}

	healthy := true
	for _, p := range probers {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		err := p.Probe(ctx)
		cancel()

		if err != nil {
			healthy = false
			log.Error().Err(err).Str("transport", p.Name()).Msg("probe failed")
			continue
		}
		log.Info().Str("transport", p.Name()).Msg("ready")
	}

	if !healthy {
		os.Exit(1)
	}
}
