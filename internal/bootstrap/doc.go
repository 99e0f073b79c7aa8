// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bootstrap sequences process startup.
//
// A [Bootstrap] walks a fixed state machine:
//
//	Created → ConfigResolved → TransportsRegistered → TransportsStarted →
//	DocsMounted → GatewayListening → Ready
//
// Every step runs once, in order, on the calling goroutine. A disabled
// transport skips its action but still advances the state. Any failure moves
// the machine to FatalAborted, stops what was already started and is
// returned to the caller, which is expected to exit with a non-zero status.
package bootstrap
