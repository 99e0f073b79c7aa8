// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
	"github.com/MKhiriev/go-offering-publisher/internal/metrics"
	"github.com/MKhiriev/go-offering-publisher/internal/schema"
	"github.com/MKhiriev/go-offering-publisher/internal/utils"
)

const (
	rpcPattern     = "/rpc/{service}/{method}"
	traceIDMetaKey = "x-trace-id"
)

// RPCProxy forwards JSON calls to unary methods of the gRPC transport.
// Requests and responses are encoded with the schema codec options.
type RPCProxy struct {
	schema     *schema.Schema
	conn       *grpc.ClientConn
	mux        *runtime.ServeMux
	maxMsgSize int

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewRPCProxy prepares a proxy to the gRPC transport at target. No
// connection is made until the first call.
func NewRPCProxy(s *schema.Schema, target string, maxMsgSize int, m *metrics.Metrics, logger *logger.Logger) (*RPCProxy, error) {
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(maxMsgSize),
			grpc.MaxCallSendMsgSize(maxMsgSize),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating gRPC client for %s: %w", target, err)
	}

	codec := s.Codec()
	p := &RPCProxy{
		schema: s,
		conn:   conn,
		mux: runtime.NewServeMux(
			runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
				MarshalOptions:   codec.MarshalOptions(s.Types()),
				UnmarshalOptions: codec.UnmarshalOptions(s.Types()),
			}),
		),
		maxMsgSize: maxMsgSize,
		metrics:    m,
		logger:     logger,
	}

	if err := p.mux.HandlePath(http.MethodPost, rpcPattern, p.call); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("error registering %s: %w", rpcPattern, err)
	}

	return p, nil
}

// ServeHTTP implements http.Handler.
func (p *RPCProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mux.ServeHTTP(w, r)
}

// Close closes the gRPC client connection.
func (p *RPCProxy) Close() error {
	return p.conn.Close()
}

func (p *RPCProxy) call(w http.ResponseWriter, r *http.Request, params map[string]string) {
	inbound, outbound := runtime.MarshalerForRequest(p.mux, r)
	log := logger.FromRequest(r)

	md, err := p.schema.FindMethod(params["service"], params["method"])
	if err != nil {
		runtime.HTTPError(r.Context(), p.mux, outbound, w, r, status.Error(codes.NotFound, err.Error()))
		return
	}
	if md.IsStreamingClient() || md.IsStreamingServer() {
		runtime.HTTPError(r.Context(), p.mux, outbound, w, r,
			status.Errorf(codes.Unimplemented, "streaming method %s is not available over HTTP", md.FullName()))
		return
	}

	fullMethod := schema.FullMethodName(md)
	ctx, err := runtime.AnnotateContext(r.Context(), p.mux, r, fullMethod, runtime.WithHTTPPathPattern(rpcPattern))
	if err != nil {
		runtime.HTTPError(r.Context(), p.mux, outbound, w, r, err)
		return
	}
	if traceID, ok := utils.GetTraceIDFromContext(r.Context()); ok {
		ctx = metadata.AppendToOutgoingContext(ctx, traceIDMetaKey, traceID)
	}

	req := dynamicpb.NewMessage(md.Input())
	if err := p.decode(w, r, inbound, req); err != nil {
		runtime.HTTPError(ctx, p.mux, outbound, w, r, err)
		return
	}

	start := time.Now()
	var meta runtime.ServerMetadata
	resp := dynamicpb.NewMessage(md.Output())
	err = p.conn.Invoke(ctx, fullMethod, req, resp, grpc.Header(&meta.HeaderMD), grpc.Trailer(&meta.TrailerMD))
	p.observe(fullMethod, err, start)
	if err != nil {
		log.Debug().Err(err).Str("rpc", fullMethod).Msg("proxied call failed")
		runtime.HTTPError(runtime.NewServerMetadataContext(ctx, meta), p.mux, outbound, w, r, err)
		return
	}

	ctx = runtime.NewServerMetadataContext(ctx, meta)
	runtime.ForwardResponseMessage(ctx, p.mux, outbound, w, r, resp)
}

// decode reads the request body into msg. An empty body leaves msg empty.
func (p *RPCProxy) decode(w http.ResponseWriter, r *http.Request, inbound runtime.Marshaler, msg *dynamicpb.Message) error {
	body, err := utils.ReadBody(w, r, int64(p.maxMsgSize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return status.Errorf(codes.ResourceExhausted, "request body exceeds %d bytes", maxErr.Limit)
		}
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := inbound.Unmarshal(body, msg); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid %s: %v", msg.Descriptor().FullName(), err)
	}

	return nil
}

func (p *RPCProxy) observe(fullMethod string, err error, start time.Time) {
	if p.metrics == nil {
		return
	}

	p.metrics.ObserveProxyCall(fullMethod, status.Code(err).String(), time.Since(start).Seconds())
}

// Target returns the gRPC target the proxy calls.
func (p *RPCProxy) Target() string {
	return p.conn.Target()
}
