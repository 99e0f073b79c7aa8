// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type configBuilder struct {
	process []Source
	store   []Source
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		process: make([]Source, 0, 2),
		store:   make([]Source, 0, 2),
	}
}

// resolver returns a Resolver over the layers collected so far.
func (b *configBuilder) resolver() *Resolver {
	return NewResolver(b.process, b.store)
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	resolver := b.resolver()
	snapshot, err := resolver.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	config := new(StructuredConfig)
	if err := parseEnv(config, snapshot); err != nil {
		return nil, err
	}

	applyPresentValues(resolver, config)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyPresentValues re-reads the keys whose empty value carries meaning.
// The struct parser substitutes defaults for empty values; here a key that is
// set but empty stays empty (bind addresses, rejected later by the bootstrap)
// or reads as false (activation flags).
func applyPresentValues(r *Resolver, config *StructuredConfig) {
	config.GRPC.Enabled = r.Bool(KeyEnableGRPCServer, config.GRPC.Enabled)
	config.GRPC.Reflection = r.Bool(KeyEnableGRPCReflection, config.GRPC.Reflection)
	config.GRPC.Bind = r.String(KeyGRPCBind, config.GRPC.Bind)
	config.Gateway.Bind = r.String(KeyGRPCGatewayBind, config.Gateway.Bind)
	config.Gateway.Enabled = resolveGatewayFlag(r, config.Gateway.FlagPrecedence)
}

// resolveGatewayFlag applies the selected [GatewayFlagPrecedence]. Unknown
// values are rejected later by validate.
func resolveGatewayFlag(r *Resolver, precedence GatewayFlagPrecedence) bool {
	if precedence == GatewayFlagLegacyServerEnv {
		v, ok := r.LookupSplit(KeyEnableGRPCServer, KeyEnableGRPCGateway)
		return ok && ParseBool(v)
	}

	return r.Bool(KeyEnableGRPCGateway, false)
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.process = append(b.process, flags)
	return b
}

func (b *configBuilder) withEnv(environ []string) *configBuilder {
	b.process = append(b.process, environSource(environ))
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	jsonPath, isJSONSpecified := b.resolver().Lookup(KeyJSONFilePath)
	if !isJSONSpecified {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.store = append(b.store, jsonCfg)
	return b
}

func (b *configBuilder) withDotEnv() *configBuilder {
	envPath, isEnvFileSpecified := b.resolver().Lookup(KeyEnvFilePath)
	if !isEnvFileSpecified {
		envPath = defaultEnvFile
	}

	if _, err := os.Stat(envPath); errors.Is(err, fs.ErrNotExist) && !isEnvFileSpecified {
		return b
	}

	envCfg, err := parseDotEnv(envPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.store = append(b.store, envCfg)
	return b
}

const defaultEnvFile = ".env"
