// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - kinds of fungible asset held by vaults
//
// a kind is either the reference native asset or a named token
package asset

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/vaultd/fault"
)

// Kind - asset kind, the empty kind is the native asset
type Kind string

// Native - the reference asset
const Native Kind = ""

// text names
const (
	nativeName           = "native"
	maximumTokenIdLength = 64
)

// Token - kind for a named token
func Token(id string) Kind {
	return Kind(id)
}

// IsNative - true for the reference asset
func (k Kind) IsNative() bool {
	return Native == k
}

// Validate - token identifiers are printable, without spaces and
// must not collide with the native name
func (k Kind) Validate() error {
	if k.IsNative() {
		return nil
	}
	if len(k) > maximumTokenIdLength || nativeName == strings.ToLower(string(k)) {
		return fault.ErrInvalidAssetKind
	}
	for _, c := range k {
		if c <= ' ' || c > '~' {
			return fault.ErrInvalidAssetKind
		}
	}
	return nil
}

// Bytes - storage key form
func (k Kind) Bytes() []byte {
	if k.IsNative() {
		return []byte{0x00}
	}
	return append([]byte{0x01}, k...)
}

// FromBytes - inverse of Bytes
func FromBytes(buffer []byte) (Kind, error) {
	if 0 == len(buffer) {
		return Native, fault.ErrInvalidAssetKind
	}
	switch buffer[0] {
	case 0x00:
		if 1 != len(buffer) {
			return Native, fault.ErrInvalidAssetKind
		}
		return Native, nil
	case 0x01:
		k := Kind(buffer[1:])
		if k.IsNative() {
			return Native, fault.ErrInvalidAssetKind
		}
		return k, k.Validate()
	default:
		return Native, fault.ErrInvalidAssetKind
	}
}

// Parse - convert text to a kind, "native" (any case) or "" for the
// reference asset
func Parse(s string) (Kind, error) {
	if "" == s || nativeName == strings.ToLower(s) {
		return Native, nil
	}
	k := Kind(s)
	return k, k.Validate()
}

// String - text name
func (k Kind) String() string {
	if k.IsNative() {
		return nativeName
	}
	return string(k)
}

// GoString - for debugging
func (k Kind) GoString() string {
	return fmt.Sprintf("<Asset:%q>", k.String())
}

// MarshalText - JSON text form
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText - JSON text form
func (k *Kind) UnmarshalText(s []byte) error {
	parsed, err := Parse(string(s))
	if nil != err {
		return err
	}
	*k = parsed
	return nil
}
