// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import "fmt"

// State is a bootstrap state.
type State int

const (
	StateCreated State = iota
	StateConfigResolved
	StateTransportsRegistered
	StateTransportsStarted
	StateDocsMounted
	StateGatewayListening
	StateReady

	// StateFatalAborted is terminal and reachable from every other state.
	StateFatalAborted State = -1
)

var stateNames = map[State]string{
	StateCreated:              "Created",
	StateConfigResolved:       "ConfigResolved",
	StateTransportsRegistered: "TransportsRegistered",
	StateTransportsStarted:    "TransportsStarted",
	StateDocsMounted:          "DocsMounted",
	StateGatewayListening:     "GatewayListening",
	StateReady:                "Ready",
	StateFatalAborted:         "FatalAborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(s))
}
