// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the merged configuration snapshot using the
// caarlos0/env library. Struct fields are mapped via their `env` and
// `envDefault` tags defined on [StructuredConfig] and its nested types.
//
// Booleans use [ParseBool] instead of strconv.ParseBool so that "yes"/"on"
// are accepted and unknown words read as false.
//
// Returns a wrapped error if a value cannot be converted to the target type.
func parseEnv(cfg any, environment map[string]string) error {
	err := env.ParseWithOptions(cfg, env.Options{
		Environment: environment,
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(false): func(v string) (any, error) {
				return ParseBool(v), nil
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// environSource converts "KEY=value" pairs, as returned by os.Environ, into
// a [Source].
func environSource(environ []string) Source {
	src := make(Source, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		src[key] = value
	}

	return src
}
