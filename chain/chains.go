// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - names of the chains a node can serve
package chain

import (
	"strings"
)

// names of all chains
const (
	Vault   = "vault"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Vault, Testing, Local:
		return true
	default:
		return false
	}
}

// Normalise - lower case form of a chain name, false if not a known chain
func Normalise(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	return name, Valid(name)
}

// IsOperator - chains where issue and advance are permitted
func IsOperator(name string) bool {
	switch name {
	case Testing, Local:
		return true
	default:
		return false
	}
}

// DatabaseName - default database file for a chain
func DatabaseName(name string) string {
	return name + ".leveldb"
}
