// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/vaultd/fault"
)

// Packed - a binary record built from varints and length prefixed bytes
type Packed []byte

// AppendUint64 - add a varint
func (p Packed) AppendUint64(value uint64) Packed {
	return append(p, ToVarint64(value)...)
}

// AppendBool - add a single byte flag
func (p Packed) AppendBool(flag bool) Packed {
	if flag {
		return append(p, 1)
	}
	return append(p, 0)
}

// AppendBytes - add a varint length followed by the data
func (p Packed) AppendBytes(data []byte) Packed {
	p = append(p, ToVarint64(uint64(len(data)))...)
	return append(p, data...)
}

// AppendString - add a varint length followed by the string bytes
func (p Packed) AppendString(s string) Packed {
	return p.AppendBytes([]byte(s))
}

// Unpacker - sequential reader for a Packed record
//
// after the first failure all reads return zero values and Err
// reports fault.ErrRecordCorrupt
type Unpacker struct {
	buffer []byte
	n      int
	err    error
}

// NewUnpacker - start reading a record
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{
		buffer: buffer,
	}
}

// Uint64 - read a varint
func (u *Unpacker) Uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := FromVarint64(u.buffer[u.n:])
	if 0 == count {
		u.err = fault.ErrRecordCorrupt
		return 0
	}
	u.n += count
	return value
}

// Bool - read a single byte flag
func (u *Unpacker) Bool() bool {
	if nil != u.err {
		return false
	}
	if u.n >= len(u.buffer) || u.buffer[u.n] > 1 {
		u.err = fault.ErrRecordCorrupt
		return false
	}
	flag := 1 == u.buffer[u.n]
	u.n += 1
	return flag
}

// Bytes - read a length prefixed byte string, result is a copy
func (u *Unpacker) Bytes() []byte {
	length := u.Uint64()
	if nil != u.err {
		return nil
	}
	if length > uint64(len(u.buffer)-u.n) {
		u.err = fault.ErrRecordCorrupt
		return nil
	}
	data := make([]byte, length)
	copy(data, u.buffer[u.n:u.n+int(length)])
	u.n += int(length)
	return data
}

// String - read a length prefixed string
func (u *Unpacker) String() string {
	return string(u.Bytes())
}

// Err - first error encountered, or corrupt if bytes remain
func (u *Unpacker) Err() error {
	return u.err
}

// Done - check that the whole record was consumed without error
func (u *Unpacker) Done() error {
	if nil != u.err {
		return u.err
	}
	if u.n != len(u.buffer) {
		return fault.ErrRecordCorrupt
	}
	return nil
}
