// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"maps"
	"slices"
	"strings"

	"dario.cat/mergo"
)

// Source is one layer of configuration values keyed by configuration key.
type Source map[string]string

// Resolver answers configuration lookups over two groups of layers: process
// overrides (flags, environment) and config store files. Inside a group the
// first layer wins; process overrides always beat the store.
//
// A Resolver copies its layers on construction and never mutates them, so
// every lookup is a pure read.
type Resolver struct {
	process []Source
	store   []Source
}

// NewResolver builds a Resolver from process and store layers, each ordered
// from highest to lowest precedence.
func NewResolver(process, store []Source) *Resolver {
	return &Resolver{
		process: cloneLayers(process),
		store:   cloneLayers(store),
	}
}

func cloneLayers(layers []Source) []Source {
	cloned := make([]Source, 0, len(layers))
	for _, layer := range layers {
		if layer != nil {
			cloned = append(cloned, maps.Clone(layer))
		}
	}

	return cloned
}

// Lookup returns the value of key from the highest precedence layer that
// holds it. A key that is set to an empty value is present: it shadows the
// lower layers and the default.
func (r *Resolver) Lookup(key string) (string, bool) {
	return r.LookupSplit(key, key)
}

// LookupSplit reads processKey from the process layers and, when absent,
// storeKey from the store layers.
func (r *Resolver) LookupSplit(processKey, storeKey string) (string, bool) {
	if v, ok := lookupLayers(r.process, processKey); ok {
		return v, true
	}

	return lookupLayers(r.store, storeKey)
}

func lookupLayers(layers []Source, key string) (string, bool) {
	for _, layer := range layers {
		if v, ok := layer[key]; ok {
			return v, true
		}
	}

	return "", false
}

// String returns the resolved value of key, possibly empty, or def when no
// layer holds key.
func (r *Resolver) String(key, def string) string {
	if v, ok := r.Lookup(key); ok {
		return v
	}

	return def
}

// Bool returns the coerced value of key or def when no layer holds key.
func (r *Resolver) Bool(key string, def bool) bool {
	v, ok := r.Lookup(key)
	if !ok {
		return def
	}

	return ParseBool(v)
}

// Snapshot flattens every layer into one map in which each key carries the
// value the Resolver would return for it. Keys resolving to an empty value
// are left out so that struct defaults apply to typed fields; bool and bind
// keys are re-read through the Resolver after parsing.
func (r *Resolver) Snapshot() (map[string]string, error) {
	layers := slices.Concat(r.process, r.store)
	merged := make(map[string]string)

	// lowest precedence first, every later merge overrides
	for _, layer := range slices.Backward(layers) {
		if err := mergo.Merge(&merged, map[string]string(layer), mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
			return nil, err
		}
	}

	maps.DeleteFunc(merged, func(_, v string) bool {
		return strings.TrimSpace(v) == ""
	})

	return merged, nil
}

// ParseBool coerces a present configuration value into a bool.
// Case-insensitive "1", "true", "yes" and "on" are true; any other value,
// the empty string included, is false.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
