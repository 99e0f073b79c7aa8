// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-offering-publisher/internal/config"
	grpchandler "github.com/MKhiriev/go-offering-publisher/internal/handler/grpc"
	"github.com/MKhiriev/go-offering-publisher/internal/locator"
	"github.com/MKhiriev/go-offering-publisher/internal/schema"
	"github.com/MKhiriev/go-offering-publisher/internal/server"
)

// defaultIncludeDir holds schema imports shipped next to the binary.
const defaultIncludeDir = "_proto"

// activateGRPC builds the gRPC transport and registers it with the
// multiplexer. Nothing is bound here.
func (b *Bootstrap) activateGRPC(ctx context.Context) error {
	cfg := b.cfg.GRPC
	if !cfg.Enabled {
		b.logger.Info().Msgf("gRPC Server disabled via %s=false", config.KeyEnableGRPCServer)
		return nil
	}

	bind, err := config.ParseBindAddress(cfg.Bind)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", config.KeyGRPCBind, cfg.Bind, err)
	}

	protoPath, err := locator.First(b.bases.Candidates(b.cfg.Schema.ProtoPath)...)
	if err != nil {
		return fmt.Errorf("proto not found: %w", err)
	}

	s, err := schema.Load(ctx, protoPath, cfg.Package, schema.DefaultCodecOptions(b.includeDirs()...))
	if err != nil {
		return err
	}
	b.schema = s

	reflection := reflectionMode(cfg.Reflection)
	srv, err := server.NewGRPCServer(server.GRPCOptions{
		Bind:       bind.String(),
		MaxMsgSize: cfg.MaxMsgSize,
		Reflection: reflection,
		Schema:     s,
	}, b.logger)
	if err != nil {
		return err
	}

	if _, err := grpchandler.NewHandler(s, b.logger, b.registrations...).Register(srv.Registrar()); err != nil {
		return fmt.Errorf("error registering gRPC services: %w", err)
	}

	b.grpc = srv
	b.mux.Register(srv)

	b.logger.Info().
		Str("proto", protoPath).
		Str("package", cfg.Package).
		Strs("services", grpchandler.Services(srv.Registrar(), s)).
		Stringer("reflection", reflection).
		Msg("gRPC Server registered")

	return nil
}

// includeDirs returns the schema import directories: the configured ones
// first, then the bundled _proto directory. Each is resolved to its first
// existing candidate.
func (b *Bootstrap) includeDirs() []string {
	var dirs []string
	add := func(rel string, warn bool) {
		dir, err := locator.FirstDir(b.bases.Candidates(rel)...)
		if err != nil {
			if warn {
				b.logger.Warn().Err(err).Str("dir", rel).Msg("schema include directory not found")
			}
			return
		}
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	for _, rel := range b.cfg.Schema.IncludeDirs {
		add(rel, true)
	}
	add(defaultIncludeDir, false)

	return dirs
}
