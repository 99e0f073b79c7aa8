// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrAlreadyStarted is returned when StartAll is issued twice.
	ErrAlreadyStarted = errors.New("servers are already started")
	// ErrNotListening is returned by RunServer when Listen was not called.
	ErrNotListening = errors.New("server is not listening")
)
