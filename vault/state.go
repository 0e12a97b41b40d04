// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"strings"

	"github.com/bitmark-inc/vaultd/fault"
)

// State - position of a vault in its lifecycle
//
//   Open --(measure)--> Resolved --(execute)--> Settled
//   Open --(cancel)--> Cancelled
type State uint8

// all states
const (
	Open      State = 1
	Resolved  State = 2
	Settled   State = 3
	Cancelled State = 4
)

var stateNames = map[State]string{
	Open:      "Open",
	Resolved:  "Resolved",
	Settled:   "Settled",
	Cancelled: "Cancelled",
}

// IsValid - one of the defined states
func (s State) IsValid() bool {
	_, ok := stateNames[s]
	return ok
}

// String - name of the state
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText - state name for JSON
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - state name from JSON, case insensitive
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if strings.EqualFold(name, string(text)) {
			*s = state
			return nil
		}
	}
	return fault.ErrRecordCorrupt
}
