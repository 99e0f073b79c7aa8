// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Configuration keys shared by the environment, the config store files and
// the command-line flags.
const (
	KeyEnableGRPCServer      = "ENABLE_GRPC_SERVER"
	KeyEnableGRPCReflection  = "ENABLE_GRPC_REFLECTION"
	KeyGRPCBind              = "GRPC_BIND"
	KeyEnableGRPCGateway     = "ENABLE_GRPC_GATEWAY"
	KeyGRPCGatewayBind       = "GRPC_GATEWAY_BIND"
	KeyGatewayFlagPrecedence = "GATEWAY_FLAG_PRECEDENCE"
	KeyGRPCPackage           = "GRPC_PACKAGE"
	KeyGRPCProtoPath         = "GRPC_PROTO_PATH"
	KeyGRPCProtoIncludeDirs  = "GRPC_PROTO_INCLUDE_DIRS"
	KeyGRPCMaxMsgSize        = "GRPC_MAX_MSG_SIZE"
	KeyOpenAPIPath           = "OPENAPI_PATH"
	KeyLogLevel              = "LOG_LEVEL"
	KeyShutdownTimeout       = "SHUTDOWN_TIMEOUT"
	KeyJSONFilePath          = "CONFIG"
	KeyEnvFilePath           = "ENV_FILE"
)

// GatewayFlagPrecedence names the rule used to decide whether the HTTP
// gateway is enabled.
type GatewayFlagPrecedence string

const (
	// GatewayFlagFromGatewayKey reads ENABLE_GRPC_GATEWAY from every layer.
	GatewayFlagFromGatewayKey GatewayFlagPrecedence = "gateway"

	// GatewayFlagLegacyServerEnv reproduces the behaviour of the previous
	// bootstrap: the process-level ENABLE_GRPC_SERVER value decides first,
	// the config store ENABLE_GRPC_GATEWAY value second.
	// Pending product-owner confirmation.
	GatewayFlagLegacyServerEnv GatewayFlagPrecedence = "legacy-server-env"
)

// StructuredConfig is the top-level configuration container for the
// offering publisher process. It is populated once from the merged snapshot
// of flags, environment variables, a JSON config file and a dotenv file.
//
// Struct tags:
//   - env       : configuration key read from the merged snapshot (caarlos0/env).
//   - envDefault: value used when no layer provides the key.
type StructuredConfig struct {
	// GRPC holds activation and binding settings of the gRPC transport.
	GRPC GRPC

	// Gateway holds activation and binding settings of the HTTP gateway.
	Gateway Gateway

	// Schema locates the .proto interface definition.
	Schema Schema

	// Docs locates the pre-generated OpenAPI document.
	Docs Docs

	// Log holds logger settings.
	Log Log

	// Server holds process lifecycle settings shared by all transports.
	Server Server

	// JSONFilePath is the optional path to a JSON config store file.
	// Populated via the CONFIG key or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// EnvFilePath is the dotenv config store file. A missing file at the
	// default location is ignored.
	EnvFilePath string `env:"ENV_FILE" envDefault:".env"`
}

// GRPC holds the gRPC transport settings.
type GRPC struct {
	// Enabled toggles the gRPC transport.
	// Env: ENABLE_GRPC_SERVER
	Enabled bool `env:"ENABLE_GRPC_SERVER" envDefault:"true"`

	// Reflection toggles the server reflection services.
	// Env: ENABLE_GRPC_REFLECTION
	Reflection bool `env:"ENABLE_GRPC_REFLECTION" envDefault:"false"`

	// Bind is the listen address in "host:port" or bare port form.
	// Env: GRPC_BIND
	Bind string `env:"GRPC_BIND" envDefault:"0.0.0.0:5002"`

	// Package is the protobuf package whose services are exposed.
	// Env: GRPC_PACKAGE
	Package string `env:"GRPC_PACKAGE" envDefault:"eupg.serviceofferingpublisher"`

	// MaxMsgSize bounds received and sent message sizes in bytes.
	// Env: GRPC_MAX_MSG_SIZE
	MaxMsgSize int `env:"GRPC_MAX_MSG_SIZE" envDefault:"4194304"`
}

// Gateway holds the HTTP gateway settings.
type Gateway struct {
	// Enabled toggles the HTTP gateway. Resolved according to FlagPrecedence.
	// Env: ENABLE_GRPC_GATEWAY
	Enabled bool `env:"ENABLE_GRPC_GATEWAY" envDefault:"false"`

	// Bind is the listen address in "host:port" or bare port form.
	// Env: GRPC_GATEWAY_BIND
	Bind string `env:"GRPC_GATEWAY_BIND" envDefault:"0.0.0.0:3000"`

	// FlagPrecedence selects how Enabled is resolved.
	// Env: GATEWAY_FLAG_PRECEDENCE
	FlagPrecedence GatewayFlagPrecedence `env:"GATEWAY_FLAG_PRECEDENCE" envDefault:"gateway"`
}

// Schema holds the locations used to load the gRPC interface definition.
type Schema struct {
	// ProtoPath is the schema file, relative to the executable directory or
	// the working directory, or absolute.
	// Env: GRPC_PROTO_PATH
	ProtoPath string `env:"GRPC_PROTO_PATH" envDefault:"_proto_runtime/spp_v2.runtime.proto"`

	// IncludeDirs are extra import paths used to resolve schema imports.
	// Env: GRPC_PROTO_INCLUDE_DIRS (comma separated)
	IncludeDirs []string `env:"GRPC_PROTO_INCLUDE_DIRS" envSeparator:","`
}

// Docs holds the documentation artifact location.
type Docs struct {
	// OpenAPIPath is the generated document, relative or absolute.
	// Env: OPENAPI_PATH
	OpenAPIPath string `env:"OPENAPI_PATH" envDefault:"openapi/spp_v2.swagger.json"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name or a comma separated list of names.
	// Env: LOG_LEVEL
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Server holds process lifecycle settings.
type Server struct {
	// ShutdownTimeout bounds graceful shutdown of all transports.
	// Env: SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// GetStructuredConfig loads, merges, and validates the process configuration
// from all available sources in the following priority order (first wins):
//  1. Command-line flags that were explicitly set
//  2. Environment variables
//  3. JSON config store file (path resolved from sources 1 and 2)
//  4. Dotenv config store file (path resolved from sources 1 and 2)
//  5. Defaults declared on the struct tags
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string, environ []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv(environ).
		withJSON().
		withDotEnv().
		build()
}
