// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/entropy"
	"github.com/bitmark-inc/vaultd/event"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/vault"
)

// queries read committed state only and do not take the lock

// Info - node summary
type Info struct {
	Chain        string          `json:"chain"`
	Height       uint64          `json:"height"`
	LastVaultId  uint64          `json:"lastVaultId"`
	LastEvent    uint64          `json:"lastEvent"`
	FeeRate      uint64          `json:"feeRateBasisPoints"`
	FeeRecipient account.Address `json:"feeRecipient"`
	Operator     bool            `json:"operator"`
}

// Info - summary of the node
func (e *Engine) Info() *Info {
	return &Info{
		Chain:        e.chain,
		Height:       e.sources.History.Height(),
		LastVaultId:  e.store.LastId(e.db),
		LastEvent:    event.Last(e.db),
		FeeRate:      e.fees.Rate(),
		FeeRecipient: e.fees.Recipient(),
		Operator:     e.operator,
	}
}

// Vault - read one vault
func (e *Engine) Vault(id uint64) (*vault.Vault, error) {
	return e.store.Get(e.db, id)
}

// OutcomeCount - number of outcomes of a vault
func (e *Engine) OutcomeCount(id uint64) (int, error) {
	v, err := e.store.Get(e.db, id)
	if nil != err {
		return 0, err
	}
	return len(v.Outcomes), nil
}

// Outcome - one outcome of a vault
func (e *Engine) Outcome(id uint64, index uint64) (vault.Outcome, error) {
	v, err := e.store.Get(e.db, id)
	if nil != err {
		return vault.Outcome{}, err
	}
	if index >= uint64(len(v.Outcomes)) {
		return vault.Outcome{}, fault.ErrOutcomeNotFound
	}
	return v.Outcomes[index], nil
}

// ResolvedOutcome - the index and outcome chosen by measurement
func (e *Engine) ResolvedOutcome(id uint64) (uint64, vault.Outcome, error) {
	v, err := e.store.Get(e.db, id)
	if nil != err {
		return 0, vault.Outcome{}, err
	}
	index, ok := v.Index()
	if !ok {
		return 0, vault.Outcome{}, fault.ErrVaultNotResolved
	}
	o, err := v.Chosen()
	if nil != err {
		return 0, vault.Outcome{}, err
	}
	return index, o, nil
}

// VerifyVault - re-derive the stored measurement of a vault
func (e *Engine) VerifyVault(id uint64) (*entropy.Verification, error) {
	v, err := e.store.Get(e.db, id)
	if nil != err {
		return nil, err
	}
	m, err := entropy.Load(e.db, id)
	if nil != err {
		return nil, err
	}
	return entropy.Verify(v, m), nil
}

// ListVaults - vaults in id order
func (e *Engine) ListVaults(start uint64, count int) ([]*vault.Vault, error) {
	return e.store.List(e.db, start, count)
}

// ListVaultsByCreator - vaults of one creator in id order
func (e *Engine) ListVaultsByCreator(creator account.Address, start uint64, count int) ([]*vault.Vault, error) {
	return e.store.ListByCreator(e.db, creator, start, count)
}

// Balance - ledger balance of an account
func (e *Engine) Balance(owner account.Address, kind asset.Kind) uint64 {
	return e.balances.Balance(e.db, owner, kind)
}

// FeePool - accumulated fees of an asset kind
func (e *Engine) FeePool(kind asset.Kind) uint64 {
	return e.fees.Pool(e.db, kind)
}

// Events - stored events in sequence order
func (e *Engine) Events(start uint64, count int) ([]*event.Event, error) {
	return event.Fetch(e.db, start, count)
}
