// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc registers the services of the loaded schema on the gRPC
// transport.
package grpc

import (
	"maps"
	"slices"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
	"github.com/MKhiriev/go-offering-publisher/internal/schema"
)

// Registration attaches a service implementation to the gRPC transport.
// Method implementations live outside this package and are passed in as
// registrations.
type Registration func(registrar grpc.ServiceRegistrar, s *schema.Schema) error

// Handler is the root gRPC transport handler.
//
// It runs the collaborator registrations and serves every schema service left
// unregistered with Unimplemented stubs so that the declared surface is
// reachable and reflectable.
type Handler struct {
	schema        *schema.Schema
	registrations []Registration

	logger *logger.Logger
}

// NewHandler constructs a [Handler] for the services of s.
func NewHandler(s *schema.Schema, logger *logger.Logger, registrations ...Registration) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		schema:        s,
		registrations: registrations,
		logger:        logger,
	}
}

// Register runs every registration against srv and stubs the remaining
// schema services. It returns the names of the stubbed services.
func (h *Handler) Register(srv *grpc.Server) ([]string, error) {
	for _, register := range h.registrations {
		if err := register(srv, h.schema); err != nil {
			return nil, err
		}
	}

	registered := srv.GetServiceInfo()

	var stubbed []string
	for _, sd := range h.schema.Services() {
		name := string(sd.FullName())
		if _, ok := registered[name]; ok {
			continue
		}

		srv.RegisterService(NewServiceDesc(sd, nil), h)
		stubbed = append(stubbed, name)
	}

	if len(stubbed) > 0 {
		h.logger.Warn().Strs("services", stubbed).Msg("serving schema services without implementation")
	}

	return stubbed, nil
}

// Services returns the schema service names that srv serves.
func Services(srv *grpc.Server, s *schema.Schema) []string {
	info := srv.GetServiceInfo()

	var names []string
	for _, sd := range s.Services() {
		if _, ok := info[string(sd.FullName())]; ok {
			names = append(names, string(sd.FullName()))
		}
	}

	return names
}

// methodNames lists the methods of sd in declaration order.
func methodNames(sd protoreflect.ServiceDescriptor) []string {
	methods := sd.Methods()
	names := make([]string, 0, methods.Len())
	for i := range methods.Len() {
		names = append(names, string(methods.Get(i).Name()))
	}

	return names
}

// unknownMethods returns the keys of impl that sd does not declare.
func unknownMethods(sd protoreflect.ServiceDescriptor, impl map[string]UnaryFunc) []string {
	declared := methodNames(sd)

	var unknown []string
	for _, name := range slices.Sorted(maps.Keys(impl)) {
		if !slices.Contains(declared, name) {
			unknown = append(unknown, name)
		}
	}

	return unknown
}
