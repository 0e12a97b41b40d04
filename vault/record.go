// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/digest"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/util"
)

// first byte of every packed vault record
const recordVersion = 1

// Vault - the custodial record
type Vault struct {
	Id              uint64          `json:"id"`
	State           State           `json:"state"`
	Creator         account.Address `json:"creator"`
	AssetKind       asset.Kind      `json:"assetKind"`
	DepositedAmount uint64          `json:"depositedAmount"`
	HeldAmount      uint64          `json:"heldAmount"`
	Outcomes        []Outcome       `json:"outcomes"`
	Criteria        Criteria        `json:"criteria"`
	ResolvedIndex   *uint64         `json:"resolvedOutcomeIndex,omitempty"`
	EntropyDigest   digest.Digest   `json:"entropyDigest"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Index - the resolved outcome index if there is one
func (v *Vault) Index() (uint64, bool) {
	if nil == v.ResolvedIndex {
		return 0, false
	}
	return *v.ResolvedIndex, true
}

// SetIndex - record the resolved outcome
func (v *Vault) SetIndex(index uint64) {
	v.ResolvedIndex = &index
}

// Chosen - the resolved outcome
func (v *Vault) Chosen() (Outcome, error) {
	index, ok := v.Index()
	if !ok {
		return Outcome{}, fault.ErrVaultNotResolved
	}
	if index >= uint64(len(v.Outcomes)) {
		return Outcome{}, fault.ErrOutcomeNotFound
	}
	return v.Outcomes[index], nil
}

// IdToKey - 8 byte big endian key so that ids sort numerically
func IdToKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// KeyToId - inverse of IdToKey
func KeyToId(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// Pack - binary record of a vault
func (v *Vault) Pack() []byte {
	p := util.Packed{recordVersion}
	p = p.AppendUint64(v.Id)
	p = p.AppendUint64(uint64(v.State))
	p = p.AppendBytes(v.Creator.Bytes())
	p = p.AppendBytes(v.AssetKind.Bytes())
	p = p.AppendUint64(v.DepositedAmount)
	p = p.AppendUint64(v.HeldAmount)

	p = p.AppendUint64(uint64(len(v.Outcomes)))
	for _, o := range v.Outcomes {
		d := o.Data()
		p = p.AppendUint64(uint64(d.Kind))
		p = p.AppendBool(d.RequiresExternalData)
		p = p.AppendBytes(d.Target.Bytes())
		p = p.AppendBytes(d.Token.Bytes())
		p = p.AppendUint64(d.Amount)
		p = p.AppendBytes(d.Payload)
	}

	c := v.Criteria
	p = p.AppendUint64(c.HistoricalMarker)
	p = p.AppendUint64(c.LinkedVaultId)
	p = p.AppendBytes(c.OracleIdentity.Bytes())
	p = p.AppendString(c.OracleFeedId)
	p = p.AppendUint64(c.FixedSeed)
	p = p.AppendBool(c.IncludeCreatorIdentity)

	index, resolved := v.Index()
	p = p.AppendBool(resolved)
	p = p.AppendUint64(index)
	p = p.AppendBytes(v.EntropyDigest[:])
	p = p.AppendUint64(uint64(v.CreatedAt.UnixNano()))
	return p
}

// Unpack - decode a binary vault record
func Unpack(record []byte) (*Vault, error) {
	if 0 == len(record) || recordVersion != record[0] {
		return nil, fault.ErrRecordCorrupt
	}
	u := util.NewUnpacker(record[1:])

	v := &Vault{
		Id:    u.Uint64(),
		State: State(u.Uint64()),
	}
	creator := u.Bytes()
	kind := u.Bytes()
	v.DepositedAmount = u.Uint64()
	v.HeldAmount = u.Uint64()

	count := u.Uint64()
	if count > MaximumOutcomes {
		return nil, fault.ErrRecordCorrupt
	}
	data := make([]OutcomeData, count)
	for i := range data {
		data[i].Kind = OutcomeKind(u.Uint64())
		data[i].RequiresExternalData = u.Bool()
		data[i].Target = account.Address(u.Bytes())
		token := u.Bytes()
		data[i].Amount = u.Uint64()
		payload := u.Bytes()
		if 0 != len(payload) {
			data[i].Payload = payload
		}
		if nil == u.Err() {
			t, err := asset.FromBytes(token)
			if nil != err {
				return nil, fault.ErrRecordCorrupt
			}
			data[i].Token = t
		}
	}

	v.Criteria.HistoricalMarker = u.Uint64()
	v.Criteria.LinkedVaultId = u.Uint64()
	v.Criteria.OracleIdentity = account.Address(u.Bytes())
	v.Criteria.OracleFeedId = u.String()
	v.Criteria.FixedSeed = u.Uint64()
	v.Criteria.IncludeCreatorIdentity = u.Bool()

	resolved := u.Bool()
	index := u.Uint64()
	entropy := u.Bytes()
	createdAt := u.Uint64()

	if err := u.Done(); nil != err {
		return nil, err
	}
	if !v.State.IsValid() {
		return nil, fault.ErrRecordCorrupt
	}

	v.Creator = account.Address(creator)
	assetKind, err := asset.FromBytes(kind)
	if nil != err {
		return nil, fault.ErrRecordCorrupt
	}
	v.AssetKind = assetKind

	v.Outcomes, err = FromData(data)
	if nil != err {
		return nil, fault.ErrRecordCorrupt
	}
	if resolved {
		v.SetIndex(index)
	}
	if err := digest.FromBytes(&v.EntropyDigest, entropy); nil != err {
		return nil, fault.ErrRecordCorrupt
	}
	v.CreatedAt = time.Unix(0, int64(createdAt)).UTC()
	return v, nil
}
