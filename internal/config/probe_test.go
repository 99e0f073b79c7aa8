// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProbeConfig(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		environ []string
		want    ProbeConfig
		wantErr string
	}{
		{
			name:    "environment only",
			environ: []string{"PROBE_GRPC_ADDR=127.0.0.1:5002"},
			want:    ProbeConfig{GRPCAddress: "127.0.0.1:5002", Timeout: 3 * time.Second, LogLevel: "warn"},
		},
		{
			name:    "flags beat environment",
			args:    []string{"-gateway", "http://127.0.0.1:3000", "-timeout", "1s"},
			environ: []string{"PROBE_GATEWAY_URL=http://other:3000", "PROBE_TIMEOUT=10s", "LOG_LEVEL=debug"},
			want:    ProbeConfig{GatewayURL: "http://127.0.0.1:3000", Timeout: time.Second, LogLevel: "debug"},
		},
		{
			name:    "nothing to probe",
			wantErr: "nothing to probe",
		},
		{
			name:    "bad timeout",
			args:    []string{"-grpc", "127.0.0.1:5002", "-timeout", "soon"},
			wantErr: "error getting env configs",
		},
		{
			name:    "negative timeout",
			args:    []string{"-grpc", "127.0.0.1:5002", "-timeout", "-1s"},
			wantErr: "must be positive",
		},
		{
			name:    "unknown flag",
			args:    []string{"-verbose"},
			wantErr: "error parsing flags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetProbeConfig(tt.args, tt.environ)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestGetProbeConfig_Help(t *testing.T) {
	_, err := GetProbeConfig([]string{"-h"}, nil)
	assert.ErrorIs(t, err, flag.ErrHelp)
}
