// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
)

// GRPCAdapter checks the gRPC transport through the grpc.health.v1 service.
type GRPCAdapter struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
	logger *logger.Logger
}

var _ Prober = (*GRPCAdapter)(nil)

// NewGRPCAdapter creates a plaintext client of the gRPC transport at target.
// No connection is made until the first call.
func NewGRPCAdapter(target string, logger *logger.Logger) (*GRPCAdapter, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("invalid gRPC address %q: %w", target, err)
	}

	return &GRPCAdapter{
		conn:   conn,
		health: healthpb.NewHealthClient(conn),
		logger: logger,
	}, nil
}

func (g *GRPCAdapter) Name() string {
	return "grpc"
}

// Probe checks the overall server health.
func (g *GRPCAdapter) Probe(ctx context.Context) error {
	return g.Check(ctx, "")
}

// Check queries the health of service; "" is the server as a whole.
func (g *GRPCAdapter) Check(ctx context.Context, service string) error {
	resp, err := g.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return mapGRPCError(err)
	}

	g.logger.Debug().Str("service", service).Stringer("status", resp.GetStatus()).Msg("gRPC health received")
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrNotReady, resp.GetStatus())
	}

	return nil
}

// Close releases the client connection.
func (g *GRPCAdapter) Close() error {
	return g.conn.Close()
}

func mapGRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.Unimplemented:
		return fmt.Errorf("%w: %s", ErrNotImplemented, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrNotReady, st.Message())
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrGatewayTimeout, st.Message())
	default:
		return fmt.Errorf("grpc %s: %s", st.Code(), st.Message())
	}
}
