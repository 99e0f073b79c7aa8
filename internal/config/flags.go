// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// AllInterfaces is the host used when a bind address names only a port.
const AllInterfaces = "0.0.0.0"

const maxPort = 65535

// BindAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type BindAddress struct {
	Host string
	Port int
}

// ParseBindAddress parses a bind address in "host:port" form, splitting on
// the first colon, or a bare port, in which case the host is
// [AllInterfaces]. A bracketed IPv6 host ("[::1]:5002") is also accepted.
//
// The port must be an integer in 0..65535 and the host must be "localhost",
// an IP address or a DNS name. Nothing is defaulted on failure.
func ParseBindAddress(s string) (BindAddress, error) {
	if s == "" {
		return BindAddress{}, fmt.Errorf("%w: empty value", ErrInvalidBindAddress)
	}

	var host, portStr string
	switch {
	case strings.HasPrefix(s, "["):
		h, p, err := net.SplitHostPort(s)
		if err != nil {
			return BindAddress{}, fmt.Errorf("%w: %w", ErrInvalidBindAddress, err)
		}
		host, portStr = h, p
	case strings.Contains(s, ":"):
		host, portStr, _ = strings.Cut(s, ":")
	default:
		host, portStr = AllInterfaces, s
	}

	if host == "" {
		host = AllInterfaces
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return BindAddress{}, fmt.Errorf("%w: port %q is not a number", ErrInvalidBindAddress, portStr)
	}
	if port < 0 || port > maxPort {
		return BindAddress{}, fmt.Errorf("%w: port %d is out of range 0-%d", ErrInvalidBindAddress, port, maxPort)
	}

	if !validHost(host) {
		return BindAddress{}, fmt.Errorf("%w: incorrect host %q", ErrInvalidBindAddress, host)
	}

	return BindAddress{Host: host, Port: port}, nil
}

func validHost(host string) bool {
	if host == "localhost" || net.ParseIP(host) != nil {
		return true
	}
	if len(host) > 253 {
		return false
	}

	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, c := range label {
			isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
			if !isAlnum && c != '-' {
				return false
			}
		}
	}

	// a dotted all-numeric name that failed ParseIP is a broken IPv4 address
	return strings.Trim(host, "0123456789.") != ""
}

// String returns a canonical host:port string for a BindAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *BindAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input with [ParseBindAddress] and populates the BindAddress.
func (a *BindAddress) Set(s string) error {
	parsed, err := ParseBindAddress(s)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// IsAllInterfaces reports whether the address listens on every interface.
func (a *BindAddress) IsAllInterfaces() bool {
	ip := net.ParseIP(a.Host)
	return ip != nil && ip.IsUnspecified()
}

var flagKeys = map[string]string{
	"grpc-bind":    KeyGRPCBind,
	"gateway-bind": KeyGRPCGatewayBind,
	"c":            KeyJSONFilePath,
	"config":       KeyJSONFilePath,
	"env-file":     KeyEnvFilePath,
}

// ParseFlags parses the command-line arguments (without the program name)
// and returns a [Source] holding only the flags that were explicitly set.
//
// Flags:
//
//	-grpc-bind gRPC bind address in format [host]:[port]
//	-gateway-bind HTTP gateway bind address in format [host]:[port]
//	-c/-config json config store file path
//	-env-file dotenv config store file path
func ParseFlags(args []string) (Source, error) {
	var grpcBind, gatewayBind BindAddress
	var jsonConfigPath string
	var envFilePath string

	fs := flag.NewFlagSet("offering-publisher", flag.ContinueOnError)
	fs.Var(&grpcBind, "grpc-bind", "gRPC bind address host:port")
	fs.Var(&gatewayBind, "gateway-bind", "HTTP gateway bind address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&envFilePath, "env-file", "", "Dotenv config file path")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	src := make(Source)
	fs.Visit(func(f *flag.Flag) {
		src[flagKeys[f.Name]] = f.Value.String()
	})

	return src, nil
}
