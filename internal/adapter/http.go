// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
	"github.com/MKhiriev/go-offering-publisher/internal/utils"
)

const statusReady = "ready"

type GatewayAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

var _ Gateway = (*GatewayAdapter)(nil)

// NewGatewayAdapter returns a REST client of the gateway at address. A bare
// "host:port" address is treated as plain HTTP.
//
// Returns an error if address is empty or cannot be parsed as a URL with a
// host.
func NewGatewayAdapter(address string, timeout time.Duration, logger *logger.Logger) (*GatewayAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway address: %w", err)
	}

	return &GatewayAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (g *GatewayAdapter) Name() string {
	return "http"
}

// Probe reports [ErrNotReady] until the gateway health route says "ready".
func (g *GatewayAdapter) Probe(ctx context.Context) error {
	health, err := g.Health(ctx)
	if err != nil {
		return err
	}
	if health.Status != statusReady {
		return fmt.Errorf("%w: status %q", ErrNotReady, health.Status)
	}

	return nil
}

func (g *GatewayAdapter) Health(ctx context.Context) (HealthStatus, error) {
	var health HealthStatus
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&health).
		SetError(&health).
		Get("/health")
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return health, err
	}

	g.logger.Debug().Str("status", health.Status).Msg("gateway health received")
	return health, nil
}

func (g *GatewayAdapter) Version(ctx context.Context) (BuildInfo, error) {
	var info BuildInfo
	resp, err := g.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/version")
	if err != nil {
		return BuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return BuildInfo{}, err
	}

	return info, nil
}

func (g *GatewayAdapter) Call(ctx context.Context, service, method string, body []byte) ([]byte, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParams(map[string]string{"service": service, "method": method}).
		SetBody(body).
		Post("/rpc/{service}/{method}")
	if err != nil {
		return nil, fmt.Errorf("rpc request %s/%s: %w", service, method, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}
