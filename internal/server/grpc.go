// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
	reflectionv1 "google.golang.org/grpc/reflection/grpc_reflection_v1"
	reflectionv1alpha "google.golang.org/grpc/reflection/grpc_reflection_v1alpha"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
	"github.com/MKhiriev/go-offering-publisher/internal/schema"
)

// Reflection selects whether the reflection services are attached to a gRPC
// server. It is decided once, when the server is constructed.
type Reflection int

const (
	// ReflectionOff builds a server without reflection services.
	ReflectionOff Reflection = iota
	// ReflectionOn registers grpc.reflection.v1 and v1alpha answering from
	// the loaded schema.
	ReflectionOn
)

// String returns "enabled" or "disabled".
func (r Reflection) String() string {
	if r == ReflectionOn {
		return "enabled"
	}

	return "disabled"
}

const (
	keepaliveTime    = 2 * time.Hour
	keepaliveTimeout = 20 * time.Second
	keepaliveMinTime = 5 * time.Minute
)

// GRPCOptions configures a [GRPCServer].
type GRPCOptions struct {
	// Bind is a host:port listen address.
	Bind string
	// MaxMsgSize bounds received and sent messages in bytes.
	MaxMsgSize int
	// Reflection selects the reflection variant.
	Reflection Reflection
	// Schema answers reflection requests. Required with ReflectionOn.
	Schema *schema.Schema
}

// GRPCServer is the gRPC transport. Service registrations happen on
// [GRPCServer.Registrar] before the server is started.
type GRPCServer struct {
	bind     string
	server   *grpc.Server
	health   *health.Server
	listener net.Listener

	logger *logger.Logger
}

// NewGRPCServer builds a gRPC server for opts without binding it. The health
// service is registered in NOT_SERVING state; see [GRPCServer.SetServing].
func NewGRPCServer(opts GRPCOptions, logger *logger.Logger) (*GRPCServer, error) {
	if opts.Reflection == ReflectionOn && opts.Schema == nil {
		return nil, fmt.Errorf("gRPC reflection requires a loaded schema")
	}

	srv := grpc.NewServer(
		grpc.MaxRecvMsgSize(opts.MaxMsgSize),
		grpc.MaxSendMsgSize(opts.MaxMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    keepaliveTime,
			Timeout: keepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             keepaliveMinTime,
			PermitWithoutStream: true,
		}),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	if opts.Reflection == ReflectionOn {
		registerReflection(srv, opts.Schema)
	}

	return &GRPCServer{
		bind:   opts.Bind,
		server: srv,
		health: hs,
		logger: logger,
	}, nil
}

func registerReflection(srv *grpc.Server, s *schema.Schema) {
	ro := reflection.ServerOptions{
		Services:           srv,
		DescriptorResolver: newDescriptorResolver(s),
		ExtensionResolver:  newExtensionResolver(s),
	}

	reflectionv1.RegisterServerReflectionServer(srv, reflection.NewServerV1(ro))
	reflectionv1alpha.RegisterServerReflectionServer(srv, reflection.NewServer(ro))
}

// Registrar returns the server services are registered on.
func (g *GRPCServer) Registrar() *grpc.Server {
	return g.server
}

// SetServing flips every health status to SERVING.
func (g *GRPCServer) SetServing() {
	g.health.Resume()
}

// Name implements [Server].
func (g *GRPCServer) Name() string {
	return "grpc"
}

// Listen implements [Server].
func (g *GRPCServer) Listen() error {
	l, err := net.Listen("tcp", g.bind)
	if err != nil {
		return fmt.Errorf("error binding gRPC server to %s: %w", g.bind, err)
	}

	g.listener = l
	return nil
}

// Addr implements [Server].
func (g *GRPCServer) Addr() string {
	if g.listener != nil {
		return g.listener.Addr().String()
	}

	return g.bind
}

// RunServer implements [Server].
func (g *GRPCServer) RunServer() error {
	if g.listener == nil {
		return ErrNotListening
	}

	if err := g.server.Serve(g.listener); err != nil {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}

	return nil
}

// Shutdown implements [Server]. In-flight RPCs are drained until ctx is
// done, then the remaining connections are closed.
func (g *GRPCServer) Shutdown(ctx context.Context) {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.logger.Warn().Msg("GRPC server graceful stop timed out, forcing Stop")
		g.server.Stop()
		<-stopped
	}

	// a listener that never reached Serve is not owned by grpc.Server
	if g.listener != nil {
		_ = g.listener.Close()
	}
}
