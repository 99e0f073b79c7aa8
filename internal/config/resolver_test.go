// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	truthy := []string{"1", "true", "TRUE", "True", "yes", "YES", "on", "On", " on "}
	for _, v := range truthy {
		t.Run("truthy "+v, func(t *testing.T) {
			assert.True(t, ParseBool(v))
		})
	}

	falsy := []string{"0", "false", "no", "off", "y", "enable", "truee", "-1", "", "   "}
	for _, v := range falsy {
		t.Run("falsy "+v, func(t *testing.T) {
			assert.False(t, ParseBool(v))
		})
	}
}

func TestResolver_Precedence(t *testing.T) {
	flags := Source{"GRPC_BIND": "127.0.0.1:1"}
	environ := Source{"GRPC_BIND": "127.0.0.1:2", "LOG_LEVEL": "debug"}
	jsonStore := Source{"GRPC_BIND": "127.0.0.1:3", "LOG_LEVEL": "warn", "GRPC_PACKAGE": "json.pkg"}
	dotenvStore := Source{"GRPC_PACKAGE": "dotenv.pkg", "OPENAPI_PATH": "docs.json"}

	r := NewResolver([]Source{flags, environ}, []Source{jsonStore, dotenvStore})

	assert.Equal(t, "127.0.0.1:1", r.String("GRPC_BIND", "default"))
	assert.Equal(t, "debug", r.String("LOG_LEVEL", "default"))
	assert.Equal(t, "json.pkg", r.String("GRPC_PACKAGE", "default"))
	assert.Equal(t, "docs.json", r.String("OPENAPI_PATH", "default"))
	assert.Equal(t, "default", r.String("MISSING", "default"))
}

func TestResolver_EmptyValueIsPresent(t *testing.T) {
	r := NewResolver(
		[]Source{{"ENABLE_GRPC_SERVER": "", "GRPC_GATEWAY_BIND": ""}},
		[]Source{{"ENABLE_GRPC_SERVER": "true", "GRPC_GATEWAY_BIND": "127.0.0.1:3000"}},
	)

	v, ok := r.Lookup("GRPC_GATEWAY_BIND")
	require.True(t, ok)
	assert.Empty(t, v)

	assert.False(t, r.Bool("ENABLE_GRPC_SERVER", true), "set but empty reads as false")
	assert.Equal(t, "", r.String("GRPC_GATEWAY_BIND", "0.0.0.0:3000"), "set but empty is not defaulted")
}

func TestResolver_Bool(t *testing.T) {
	r := NewResolver([]Source{{"A": "yes", "B": "nope"}}, nil)

	assert.True(t, r.Bool("A", false))
	assert.False(t, r.Bool("B", true))
	assert.True(t, r.Bool("ABSENT", true))
	assert.False(t, r.Bool("ABSENT", false))
}

func TestResolver_LookupSplit(t *testing.T) {
	r := NewResolver(
		[]Source{{"ENABLE_GRPC_SERVER": "true"}},
		[]Source{{"ENABLE_GRPC_GATEWAY": "false", "ENABLE_GRPC_SERVER": "false"}},
	)

	v, ok := r.LookupSplit("ENABLE_GRPC_SERVER", "ENABLE_GRPC_GATEWAY")
	require.True(t, ok)
	assert.Equal(t, "true", v)

	empty := NewResolver(nil, []Source{{"ENABLE_GRPC_GATEWAY": "on", "ENABLE_GRPC_SERVER": "off"}})
	v, ok = empty.LookupSplit("ENABLE_GRPC_SERVER", "ENABLE_GRPC_GATEWAY")
	require.True(t, ok)
	assert.Equal(t, "on", v)
}

func TestResolver_IsolatedFromSourceMutation(t *testing.T) {
	environ := Source{"GRPC_BIND": "127.0.0.1:1"}
	r := NewResolver([]Source{environ}, nil)

	environ["GRPC_BIND"] = "127.0.0.1:2"

	assert.Equal(t, "127.0.0.1:1", r.String("GRPC_BIND", ""))
}

func TestResolver_Snapshot(t *testing.T) {
	r := NewResolver(
		[]Source{{"A": "flag"}, {"A": "env", "B": "env", "E": ""}},
		[]Source{{"B": "json", "C": "json"}, {"C": "dotenv", "D": "dotenv", "E": "dotenv"}},
	)

	snapshot, err := r.Snapshot()

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"A": "flag",
		"B": "env",
		"C": "json",
		"D": "dotenv",
	}, snapshot, "E is set empty in the environment and shadows the store")
}
