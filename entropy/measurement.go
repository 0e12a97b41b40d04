// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/digest"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/util"
	"github.com/bitmark-inc/vaultd/vault"
)

const measurementVersion = 1

// Measurement - the stored result of resolving a vault
type Measurement struct {
	Inputs Inputs        `json:"inputs"`
	Digest digest.Digest `json:"digest"`
	Index  uint64        `json:"index"`
}

// Verification - outcome of re-deriving a measurement
type Verification struct {
	Measurement *Measurement  `json:"measurement"`
	Derived     digest.Digest `json:"derived"`
	DerivedIdx  uint64        `json:"derivedIndex"`
	Match       bool          `json:"match"`
}

// Measure - gather, derive and select in one step
func (s Sources) Measure(trx storage.Reader, v *vault.Vault, externalData []byte, ctx Context) (*Measurement, error) {
	in, err := s.Gather(trx, v, externalData, ctx)
	if nil != err {
		return nil, err
	}
	d := Derive(in)
	index, err := Select(d, len(v.Outcomes))
	if nil != err {
		return nil, err
	}
	return &Measurement{
		Inputs: *in,
		Digest: d,
		Index:  index,
	}, nil
}

// Verify - re-derive a stored measurement and compare with the vault
func Verify(v *vault.Vault, m *Measurement) *Verification {
	d := Derive(&m.Inputs)
	index, _ := Select(d, len(v.Outcomes))
	stored, resolved := v.Index()
	return &Verification{
		Measurement: m,
		Derived:     d,
		DerivedIdx:  index,
		Match:       resolved && d == m.Digest && d == v.EntropyDigest && index == stored,
	}
}

// Save - write a measurement keyed by its vault id
func Save(trx storage.Access, m *Measurement) {
	trx.Put(storage.Measurements, vault.IdToKey(m.Inputs.VaultId), m.pack())
}

// Load - read the measurement of a vault
func Load(trx storage.Reader, id uint64) (*Measurement, error) {
	record := trx.Get(storage.Measurements, vault.IdToKey(id))
	if nil == record {
		return nil, fault.ErrVaultNotResolved
	}
	m, err := unpack(record)
	if nil != err {
		logger.Panicf("measurement: %d  corrupt record: %x  error: %s", id, record, err)
	}
	return m, nil
}

func (m *Measurement) pack() []byte {
	in := &m.Inputs
	p := util.Packed{measurementVersion}
	p = p.AppendUint64(in.VaultId)
	p = p.AppendUint64(uint64(in.CreatedAt.UnixNano()))
	p = p.AppendUint64(in.FixedSeed)

	p = p.AppendBool(nil != in.HistoricalDigest)
	if nil != in.HistoricalDigest {
		p = p.AppendUint64(in.HistoricalMarker)
		p = p.AppendBytes(in.HistoricalDigest[:])
	}

	p = p.AppendBool(nil != in.Linked)
	if nil != in.Linked {
		p = p.AppendUint64(in.Linked.Id)
		p = p.AppendUint64(uint64(in.Linked.State))
		p = p.AppendUint64(in.Linked.Index)
		p = p.AppendBytes(in.Linked.Digest[:])
	}

	p = p.AppendBytes(in.OracleIdentity.Bytes())
	p = p.AppendString(in.OracleFeedId)
	p = p.AppendBytes(in.ExternalData)
	p = p.AppendBytes(in.Creator.Bytes())

	p = p.AppendUint64(in.Context.Height)
	p = p.AppendUint64(uint64(in.Context.Timestamp.UnixNano()))
	p = p.AppendUint64(in.Context.Sequence)

	p = p.AppendBytes(m.Digest[:])
	p = p.AppendUint64(m.Index)
	return p
}

func unpack(record []byte) (*Measurement, error) {
	if 0 == len(record) || measurementVersion != record[0] {
		return nil, fault.ErrRecordCorrupt
	}
	u := util.NewUnpacker(record[1:])

	m := &Measurement{}
	in := &m.Inputs
	in.VaultId = u.Uint64()
	in.CreatedAt = time.Unix(0, int64(u.Uint64())).UTC()
	in.FixedSeed = u.Uint64()

	if u.Bool() {
		in.HistoricalMarker = u.Uint64()
		var d digest.Digest
		if err := digest.FromBytes(&d, u.Bytes()); nil != err {
			return nil, fault.ErrRecordCorrupt
		}
		in.HistoricalDigest = &d
	}

	if u.Bool() {
		in.Linked = &Linked{
			Id:    u.Uint64(),
			State: vault.State(u.Uint64()),
			Index: u.Uint64(),
		}
		if err := digest.FromBytes(&in.Linked.Digest, u.Bytes()); nil != err {
			return nil, fault.ErrRecordCorrupt
		}
	}

	in.OracleIdentity = account.Address(u.Bytes())
	in.OracleFeedId = u.String()
	if data := u.Bytes(); 0 != len(data) {
		in.ExternalData = data
	}
	in.Creator = account.Address(u.Bytes())

	in.Context.Height = u.Uint64()
	in.Context.Timestamp = time.Unix(0, int64(u.Uint64())).UTC()
	in.Context.Sequence = u.Uint64()

	entropy := u.Bytes()
	m.Index = u.Uint64()
	if err := u.Done(); nil != err {
		return nil, err
	}
	if err := digest.FromBytes(&m.Digest, entropy); nil != err {
		return nil, fault.ErrRecordCorrupt
	}
	return m, nil
}
