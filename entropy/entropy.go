// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"math/big"
	"time"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/digest"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/history"
	"github.com/bitmark-inc/vaultd/oracle"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

// CancelledIndex - index folded in for a linked vault that was
// cancelled and so never resolved
const CancelledIndex = 0xffff

// Context - the immediate context of the measuring operation
type Context struct {
	Height    uint64    `json:"height"`
	Timestamp time.Time `json:"timestamp"`
	Sequence  uint64    `json:"sequence"`
}

// Linked - the triple folded in for a linked vault
type Linked struct {
	Id     uint64        `json:"id"`
	State  vault.State   `json:"state"`
	Index  uint64        `json:"index"`
	Digest digest.Digest `json:"digest"`
}

// Inputs - every value folded into the digest of one vault
type Inputs struct {
	VaultId          uint64          `json:"vaultId"`
	CreatedAt        time.Time       `json:"createdAt"`
	FixedSeed        uint64          `json:"fixedSeed"`
	HistoricalMarker uint64          `json:"historicalMarker,omitempty"`
	HistoricalDigest *digest.Digest  `json:"historicalDigest,omitempty"`
	Linked           *Linked         `json:"linked,omitempty"`
	OracleIdentity   account.Address `json:"oracleIdentity,omitempty"`
	OracleFeedId     string          `json:"oracleFeedId,omitempty"`
	ExternalData     []byte          `json:"externalData,omitempty"`
	Creator          account.Address `json:"creator,omitempty"`
	Context          Context         `json:"context"`
}

// Sources - collaborators consulted by Gather
type Sources struct {
	Store   *vault.Store
	History history.Source
	Oracles oracle.Authoriser
}

// Gather - collect the inputs for a vault, failing if a source is not ready
//
// a historical marker that is not yet final is left out
func (s Sources) Gather(trx storage.Reader, v *vault.Vault, externalData []byte, ctx Context) (*Inputs, error) {
	c := v.Criteria
	in := &Inputs{
		VaultId:   v.Id,
		CreatedAt: v.CreatedAt,
		FixedSeed: c.FixedSeed,
		Context:   ctx,
	}

	if 0 != c.HistoricalMarker && c.HistoricalMarker < s.History.Height() {
		if d, ok := s.History.DigestAt(c.HistoricalMarker); ok {
			in.HistoricalMarker = c.HistoricalMarker
			in.HistoricalDigest = &d
		}
	}

	if 0 != c.LinkedVaultId {
		linked, err := s.Store.Get(trx, c.LinkedVaultId)
		if fault.ErrVaultNotFound == err {
			return nil, fault.ErrLinkedVaultNotFound
		} else if nil != err {
			return nil, err
		}
		in.Linked, err = linkedTriple(linked)
		if nil != err {
			return nil, err
		}
	}

	if c.HasOracle() {
		if nil == s.Oracles || !s.Oracles.IsAuthorised(c.OracleIdentity) {
			return nil, fault.ErrOracleNotAuthorised
		}
		if 0 == len(externalData) {
			return nil, fault.ErrOracleDataMissing
		}
		in.OracleIdentity = c.OracleIdentity
		in.OracleFeedId = c.OracleFeedId
		in.ExternalData = append([]byte{}, externalData...)
	}

	if c.IncludeCreatorIdentity {
		in.Creator = v.Creator
	}
	return in, nil
}

func linkedTriple(linked *vault.Vault) (*Linked, error) {
	switch linked.State {
	case vault.Open:
		return nil, fault.ErrLinkedVaultOpen
	case vault.Cancelled:
		return &Linked{
			Id:    linked.Id,
			State: linked.State,
			Index: CancelledIndex,
		}, nil
	default:
		index, ok := linked.Index()
		if !ok {
			return nil, fault.ErrRecordCorrupt
		}
		return &Linked{
			Id:     linked.Id,
			State:  linked.State,
			Index:  index,
			Digest: linked.EntropyDigest,
		}, nil
	}
}

// Derive - fold the inputs into a digest
func Derive(in *Inputs) digest.Digest {
	d := new(digest.Builder).String("seed").Uint64(in.FixedSeed).Sum()

	if nil != in.HistoricalDigest {
		d = new(digest.Builder).
			Digest(d).
			String("history").
			Uint64(in.HistoricalMarker).
			Digest(*in.HistoricalDigest).
			Sum()
	}

	if nil != in.Linked {
		d = new(digest.Builder).
			Digest(d).
			String("linked").
			Uint64(in.Linked.Id).
			Uint64(uint64(in.Linked.State)).
			Uint64(in.Linked.Index).
			Digest(in.Linked.Digest).
			Sum()
	}

	if !in.OracleIdentity.IsZero() {
		d = new(digest.Builder).
			Digest(d).
			String("oracle").
			Bytes(in.OracleIdentity.Bytes()).
			String(in.OracleFeedId).
			Bytes(in.ExternalData).
			Sum()
	}

	if !in.Creator.IsZero() {
		d = new(digest.Builder).
			Digest(d).
			String("creator").
			Bytes(in.Creator.Bytes()).
			Sum()
	}

	d = new(digest.Builder).
		Digest(d).
		String("vault").
		Uint64(in.VaultId).
		Uint64(uint64(in.CreatedAt.UnixNano())).
		Sum()

	return new(digest.Builder).
		Digest(d).
		String("context").
		Uint64(in.Context.Height).
		Uint64(uint64(in.Context.Timestamp.UnixNano())).
		Uint64(in.Context.Sequence).
		Sum()
}

// Select - digest as a big endian unsigned integer modulo count
func Select(d digest.Digest, count int) (uint64, error) {
	if count <= 0 {
		return 0, fault.ErrNoOutcomes
	}
	n := new(big.Int).SetBytes(d[:])
	return n.Mod(n, big.NewInt(int64(count))).Uint64(), nil
}
