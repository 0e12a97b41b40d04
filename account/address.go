// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - opaque account identifiers
//
// an address is an identifier that has already been verified by the
// caller (signature checks are performed outside this system), the
// only structure imposed here is a length limit and a reserved range
// for the accounts used internally by the vault engine
package account

import (
	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/vaultd/fault"
)

// MaximumLength - longest allowed address in bytes
const MaximumLength = 64

// all system accounts start with this byte, no user address may
const systemPrefix = 0x00

// Address - raw bytes of an account identifier
//
// a string type is used so that addresses are comparable and can be
// used as map keys
type Address string

// reserved accounts used for custody of vault balances
var (
	Custody  = Address("\x00custody")   // holds every vault balance and the fee pools
	InFlight = Address("\x00in-flight") // value parked during an external invocation
	BurnSink = Address("\x00burn")      // irrecoverable
	LockSink = Address("\x00lock")      // retained inside the system, unattributed
)

// FromBytes - convert a byte slice to an address
func FromBytes(buffer []byte) (Address, error) {
	if 0 == len(buffer) || len(buffer) > MaximumLength {
		return "", fault.ErrInvalidAccount
	}
	return Address(buffer), nil
}

// FromBase58 - decode a base58 string to an address
func FromBase58(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return "", fault.ErrUnknownAccountEncoding
	}
	return FromBytes(buffer)
}

// Bytes - raw byte form
func (a Address) Bytes() []byte {
	return []byte(a)
}

// IsZero - no address
func (a Address) IsZero() bool {
	return 0 == len(a)
}

// IsSystem - one of the reserved internal accounts
func (a Address) IsSystem() bool {
	return len(a) > 0 && systemPrefix == a[0]
}

// Validate - check that an address can be used by a caller
func (a Address) Validate() error {
	if 0 == len(a) || len(a) > MaximumLength {
		return fault.ErrInvalidAccount
	}
	if a.IsSystem() {
		return fault.ErrReservedAccount
	}
	return nil
}

// String - base58 representation for the fmt package
func (a Address) String() string {
	return base58.Encode([]byte(a))
}

// GoString - for %#v
func (a Address) GoString() string {
	if a.IsSystem() {
		return "<system:" + string(a[1:]) + ">"
	}
	return "<account:" + a.String() + ">"
}

// MarshalText - base58 text for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - base58 text from JSON, empty text is an empty address
func (a *Address) UnmarshalText(s []byte) error {
	if 0 == len(s) {
		*a = ""
		return nil
	}
	address, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = address
	return nil
}
