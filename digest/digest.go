// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/vaultd/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - a SHA3-256 value
//
// stored and printed in natural byte order, so the hex text is the
// big endian representation of the value as an unsigned integer
type Digest [Length]byte

// New - create a digest from a byte slice
func New(record []byte) Digest {
	return sha3.Sum256(record)
}

// Builder - incremental digest of length prefixed fields so that the
// boundaries between fields cannot be moved without changing the result
type Builder struct {
	buffer []byte
}

// Bytes - append a length prefixed byte field
func (b *Builder) Bytes(data []byte) *Builder {
	b.Uint64(uint64(len(data)))
	b.buffer = append(b.buffer, data...)
	return b
}

// String - append a length prefixed text field
func (b *Builder) String(s string) *Builder {
	return b.Bytes([]byte(s))
}

// Uint64 - append a fixed width big endian number
func (b *Builder) Uint64(n uint64) *Builder {
	var buffer [8]byte
	binary.BigEndian.PutUint64(buffer[:], n)
	b.buffer = append(b.buffer, buffer[:]...)
	return b
}

// Digest - append a complete digest
func (b *Builder) Digest(d Digest) *Builder {
	b.buffer = append(b.buffer, d[:]...)
	return b
}

// Sum - digest of everything appended so far
func (b *Builder) Sum() Digest {
	return New(b.buffer)
}

// IsZero - all bytes zero
func (digest Digest) IsZero() bool {
	return Digest{} == digest
}

// String - hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if Length != hex.DecodedLen(len(s)) {
		return fault.ErrRecordCorrupt
	}
	buffer := make([]byte, Length)
	if _, err := hex.Decode(buffer, s); nil != err {
		return err
	}
	copy(digest[:], buffer)
	return nil
}

// FromBytes - convert and validate a binary byte slice to a digest
func FromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrRecordCorrupt
	}
	copy(digest[:], buffer)
	return nil
}
