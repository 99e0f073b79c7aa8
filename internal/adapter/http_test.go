// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-offering-publisher/internal/logger"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *GatewayAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewGatewayAdapter(srv.URL, 2*time.Second, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

// ── Health / Probe ──────────────────────────────────────────────────────────

func TestProbe_Ready(t *testing.T) {
	a := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status":"ready"}`)
	})

	require.NoError(t, a.Probe(context.Background()))
	assert.Equal(t, "http", a.Name())
}

func TestProbe_Starting(t *testing.T) {
	a := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, `{"status":"starting"}`)
	})

	health, err := a.Health(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, "starting", health.Status)

	assert.ErrorIs(t, a.Probe(context.Background()), ErrNotReady)
}

func TestProbe_UnexpectedStatusBody(t *testing.T) {
	a := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"draining"}`)
	})

	err := a.Probe(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
	assert.Contains(t, err.Error(), "draining")
}

func TestProbe_Unreachable(t *testing.T) {
	a, err := NewGatewayAdapter("127.0.0.1:1", time.Second, logger.Nop())
	require.NoError(t, err)

	err = a.Probe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health request")
}

// ── Version ─────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	a := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/version", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"version":"v2.1.0","date":"2026-10-01","commit":"abc123"}`)
	})

	info, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, BuildInfo{Version: "v2.1.0", Date: "2026-10-01", Commit: "abc123"}, info)
}

// ── Call ────────────────────────────────────────────────────────────────────

func TestCall_Success(t *testing.T) {
	a := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rpc/eupg.serviceofferingpublisher.ServiceOfferingPublisher/GetOffering", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"offering_id":"o-1"}`, string(body))

		writeJSON(w, http.StatusOK, `{"offering_id":"o-1","revision":"3"}`)
	})

	got, err := a.Call(context.Background(),
		"eupg.serviceofferingpublisher.ServiceOfferingPublisher", "GetOffering", []byte(`{"offering_id":"o-1"}`))

	require.NoError(t, err)
	assert.JSONEq(t, `{"offering_id":"o-1","revision":"3"}`, string(got))
}

func TestCall_ErrorMapping(t *testing.T) {
	tests := []struct {
		code    int
		wantErr error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrTooLarge},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusNotImplemented, ErrNotImplemented},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrNotReady},
		{http.StatusGatewayTimeout, ErrGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			a := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.code, `{"code":12,"message":"boom"}`)
			})

			_, err := a.Call(context.Background(), "svc", "Method", nil)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestCall_UnmappedStatus(t *testing.T) {
	a := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	_, err := a.Call(context.Background(), "svc", "Method", nil)

	require.Error(t, err)
	assert.Equal(t, "http 418: I'm a teapot", err.Error())
}

// ── normalizeBaseURL ────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "127.0.0.1:3000", want: "http://127.0.0.1:3000"},
		{in: " http://localhost:3000/ ", want: "http://localhost:3000"},
		{in: "https://gw.example.com", want: "https://gw.example.com"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGatewayAdapter_InvalidAddress(t *testing.T) {
	_, err := NewGatewayAdapter("", time.Second, logger.Nop())
	assert.ErrorContains(t, err, "invalid gateway address")
}
