// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-offering-publisher/internal/config"
	"github.com/MKhiriev/go-offering-publisher/internal/docs"
	httphandler "github.com/MKhiriev/go-offering-publisher/internal/handler/http"
	"github.com/MKhiriev/go-offering-publisher/internal/locator"
)

// mountDocs builds the gateway routes and mounts the OpenAPI document when
// one is found. A missing document only degrades the gateway.
func (b *Bootstrap) mountDocs(context.Context) error {
	if !b.cfg.Gateway.Enabled {
		return nil
	}

	opts := []httphandler.Option{httphandler.WithBuildInfo(b.build)}
	if b.metrics != nil {
		opts = append(opts, httphandler.WithMetrics(b.metrics))
	}
	if b.grpc != nil {
		proxy, err := httphandler.NewRPCProxy(b.schema, loopback(b.grpc.Addr()), b.cfg.GRPC.MaxMsgSize, b.metrics, b.logger)
		if err != nil {
			return err
		}
		opts = append(opts, httphandler.WithRPCProxy(proxy))
		b.logger.Debug().Str("target", proxy.Target()).Msg("gateway proxies /rpc to the gRPC transport")
	}
	b.http = httphandler.NewHandler(b.logger, opts...)

	doc, err := docs.Load(b.bases.Candidates(b.cfg.Docs.OpenAPIPath)...)
	if errors.Is(err, locator.ErrNotFound) {
		b.logger.Warn().Err(err).Msgf("No OpenAPI doc found, set %s or generate %s first",
			config.KeyOpenAPIPath, b.cfg.Docs.OpenAPIPath)
		return nil
	}
	if err != nil {
		return err
	}

	b.logger.Info().
		Str("title", doc.Title()).
		Str("version", doc.Version()).
		Int("paths", doc.PathCount()).
		Msgf("Loaded OpenAPI doc from %s", doc.Path)

	if err := b.http.MountDocs(doc); err != nil {
		return fmt.Errorf("error mounting docs: %w", err)
	}

	return nil
}
