// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/MKhiriev/go-offering-publisher/internal/schema"
)

// UnaryFunc implements a unary schema method over dynamic messages. The
// returned message must be of the method's output type.
type UnaryFunc func(ctx context.Context, req *dynamicpb.Message) (proto.Message, error)

// NewServiceDesc builds a grpc.ServiceDesc for sd. Unary methods present in
// impl are served by their UnaryFunc; every other method answers
// codes.Unimplemented.
func NewServiceDesc(sd protoreflect.ServiceDescriptor, impl map[string]UnaryFunc) *grpc.ServiceDesc {
	desc := &grpc.ServiceDesc{
		ServiceName: string(sd.FullName()),
		HandlerType: (*any)(nil),
		Metadata:    sd.ParentFile().Path(),
	}

	methods := sd.Methods()
	for i := range methods.Len() {
		md := methods.Get(i)
		name := string(md.Name())

		if md.IsStreamingClient() || md.IsStreamingServer() {
			desc.Streams = append(desc.Streams, grpc.StreamDesc{
				StreamName:    name,
				Handler:       unimplementedStream(md),
				ServerStreams: md.IsStreamingServer(),
				ClientStreams: md.IsStreamingClient(),
			})
			continue
		}

		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: name,
			Handler:    unaryHandler(md, impl[name]),
		})
	}

	return desc
}

// RegisterUnary returns a [Registration] serving the named schema service
// with impl.
func RegisterUnary(service string, impl map[string]UnaryFunc) Registration {
	return func(registrar grpc.ServiceRegistrar, s *schema.Schema) error {
		for _, sd := range s.Services() {
			if string(sd.FullName()) != service && string(sd.Name()) != service {
				continue
			}

			if unknown := unknownMethods(sd, impl); len(unknown) > 0 {
				return fmt.Errorf("%w: %s has no methods %v", schema.ErrMethodNotFound, sd.FullName(), unknown)
			}

			registrar.RegisterService(NewServiceDesc(sd, impl), nil)
			return nil
		}

		return fmt.Errorf("%w: service %s", schema.ErrMethodNotFound, service)
	}
}

func unaryHandler(md protoreflect.MethodDescriptor, fn UnaryFunc) grpc.MethodHandler {
	fullMethod := schema.FullMethodName(md)

	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		req := dynamicpb.NewMessage(md.Input())
		if err := dec(req); err != nil {
			return nil, err
		}

		call := func(ctx context.Context, req any) (any, error) {
			if fn == nil {
				return nil, status.Errorf(codes.Unimplemented, "method %s not implemented", md.Name())
			}
			return fn(ctx, req.(*dynamicpb.Message))
		}

		if interceptor == nil {
			return call(ctx, req)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		return interceptor(ctx, req, info, call)
	}
}

func unimplementedStream(md protoreflect.MethodDescriptor) grpc.StreamHandler {
	return func(any, grpc.ServerStream) error {
		return status.Errorf(codes.Unimplemented, "method %s not implemented", md.Name())
	}
}
