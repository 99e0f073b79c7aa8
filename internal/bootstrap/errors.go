// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import "errors"

// ErrAlreadyRun is returned by Run on a second call.
var ErrAlreadyRun = errors.New("bootstrap already run")
