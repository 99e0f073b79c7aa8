// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-offering-publisher/internal/config"
	"github.com/MKhiriev/go-offering-publisher/internal/server"
)

// activateGateway binds the HTTP gateway. It runs after mountDocs so the
// documentation routes exist before the first connection is accepted.
func (b *Bootstrap) activateGateway(context.Context) error {
	cfg := b.cfg.Gateway
	if !cfg.Enabled {
		b.logger.Info().Msgf("HTTP gRPC-Gateway disabled via %s=false", config.KeyEnableGRPCGateway)
		return nil
	}

	bind, err := config.ParseBindAddress(cfg.Bind)
	if err != nil {
		return fmt.Errorf("invalid %s=%q, use \"host:port\", e.g. 0.0.0.0:3000: %w", config.KeyGRPCGatewayBind, cfg.Bind, err)
	}

	gateway := server.NewHTTPServer(bind.String(), b.http.Init(), b.logger)
	handler := b.http
	gateway.OnShutdown(func() {
		if err := handler.Close(); err != nil {
			b.logger.Err(err).Msg("error closing gRPC proxy connection")
		}
	})

	if err := b.mux.Start(gateway); err != nil {
		return err
	}
	b.gateway = gateway

	if b.metrics != nil {
		b.metrics.SetTransportUp(gateway.Name(), true)
	}

	url := "http://" + loopback(gateway.Addr())
	b.logger.Info().Msgf("HTTP gRPC-Gateway listening on: %s", url)
	if b.http.DocsMounted() {
		b.logger.Info().Msgf("Docs: %s/docs", url)
	}

	return nil
}

// loopback rewrites an all-interfaces address to the matching loopback
// address so that it can be dialled and printed.
func loopback(addr string) string {
	bind, err := config.ParseBindAddress(addr)
	if err != nil || !bind.IsAllInterfaces() {
		return addr
	}

	if net.ParseIP(bind.Host).To4() != nil {
		bind.Host = "127.0.0.1"
	} else {
		bind.Host = "::1"
	}

	return bind.String()
}
