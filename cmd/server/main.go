// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-offering-publisher/internal/bootstrap"
	"github.com/MKhiriev/go-offering-publisher/internal/config"
	httphandler "github.com/MKhiriev/go-offering-publisher/internal/handler/http"
	"github.com/MKhiriev/go-offering-publisher/internal/logger"
	"github.com/MKhiriev/go-offering-publisher/internal/metrics"
	"github.com/MKhiriev/go-offering-publisher/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("offering-publisher")
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("fatal startup error")
			os.Exit(1)
		}
	}()

	cfg, err := config.GetStructuredConfig(os.Args[1:], os.Environ())
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log, err = log.WithLevel(cfg.Log.Level)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to info level")
	}
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	mux := server.NewMultiplexer(log)
	app := bootstrap.New(cfg, mux, log,
		bootstrap.WithMetrics(metrics.New()),
		bootstrap.WithBuildInfo(httphandler.BuildInfo{
			Version: buildVersion,
			Date:    buildDate,
			Commit:  buildCommit,
		}),
	)

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}

	if err = mux.Wait(ctx, cfg.Server.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
