// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/dispatch"
	"github.com/bitmark-inc/vaultd/entropy"
	"github.com/bitmark-inc/vaultd/event"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/history"
	"github.com/bitmark-inc/vaultd/vault"
)

// Create - deposit into a new Open vault
func (e *Engine) Create(creator account.Address, kind asset.Kind, amount uint64, outcomes []vault.Outcome, criteria vault.Criteria) (*vault.Deposit, error) {
	e.Lock()
	defer e.Unlock()

	trx := e.db.Begin()
	defer trx.Abort()

	now := e.timestamp()
	d, err := e.store.Create(trx, creator, kind, amount, outcomes, criteria, now)
	if nil != err {
		return nil, err
	}

	err = e.commit(trx, &event.Event{
		Kind:      event.VaultCreated,
		Timestamp: now,
		VaultId:   d.Vault.Id,
		Account:   creator,
		Asset:     kind,
		Amount:    d.Net,
		Fee:       d.Fee,
	})
	if nil != err {
		return nil, err
	}
	return d, nil
}

// Fund - add a deposit to an Open vault
func (e *Engine) Fund(funder account.Address, id uint64, kind asset.Kind, amount uint64) (*vault.Deposit, error) {
	e.Lock()
	defer e.Unlock()

	trx := e.db.Begin()
	defer trx.Abort()

	d, err := e.store.Fund(trx, funder, id, kind, amount)
	if nil != err {
		return nil, err
	}

	err = e.commit(trx, &event.Event{
		Kind:      event.VaultFunded,
		Timestamp: e.timestamp(),
		VaultId:   id,
		Account:   funder,
		Asset:     kind,
		Amount:    d.Net,
		Fee:       d.Fee,
	})
	if nil != err {
		return nil, err
	}
	return d, nil
}

// Cancel - return the held balance of an Open vault to its creator
func (e *Engine) Cancel(caller account.Address, id uint64) (*vault.Vault, uint64, error) {
	e.Lock()
	defer e.Unlock()

	trx := e.db.Begin()
	defer trx.Abort()

	v, refund, err := e.store.Cancel(trx, caller, id)
	if nil != err {
		return nil, 0, err
	}

	err = e.commit(trx, &event.Event{
		Kind:      event.VaultCancelled,
		Timestamp: e.timestamp(),
		VaultId:   id,
		Account:   caller,
		Asset:     v.AssetKind,
		Amount:    refund,
	})
	if nil != err {
		return nil, 0, err
	}
	return v, refund, nil
}

// Measure - derive the entropy digest of an Open vault and fix its outcome
//
// a source that is not ready fails the call without any change, the
// creator may retry later
func (e *Engine) Measure(caller account.Address, id uint64, externalData []byte) (*entropy.Measurement, error) {
	e.Lock()
	defer e.Unlock()

	trx := e.db.Begin()
	defer trx.Abort()

	v, err := e.store.Get(trx, id)
	if nil != err {
		return nil, err
	}
	if caller != v.Creator {
		return nil, fault.ErrNotCreator
	}
	if vault.Open != v.State {
		return nil, fault.ErrVaultNotOpen
	}

	now := e.timestamp()
	ctx := entropy.Context{
		Height:    e.sources.History.Height(),
		Timestamp: now,
		Sequence:  nextSequence(trx),
	}
	m, err := e.sources.Measure(trx, v, externalData, ctx)
	if nil != err {
		e.log.Debugf("measure: %d  not ready: %s", id, err)
		return nil, err
	}

	v.SetIndex(m.Index)
	v.EntropyDigest = m.Digest
	v.State = vault.Resolved
	e.store.Put(trx, v)
	entropy.Save(trx, m)

	index := m.Index
	d := m.Digest
	err = e.commit(trx, &event.Event{
		Kind:      event.VaultMeasured,
		Timestamp: now,
		VaultId:   id,
		Account:   caller,
		Asset:     v.AssetKind,
		Index:     &index,
		Digest:    &d,
	})
	if nil != err {
		return nil, err
	}
	e.log.Infof("measure: %d  index: %d  digest: %s", id, m.Index, m.Digest)
	return m, nil
}

// Execute - carry out the chosen outcome of a Resolved vault
//
// anyone may call this, on failure the vault stays Resolved
//
// if an invocation outcome cannot be committed the vault stays Settled
// with its balance parked until the next New reverts it
func (e *Engine) Execute(caller account.Address, id uint64, externalData []byte) (*dispatch.Plan, error) {
	e.Lock()
	if e.closed {
		e.Unlock()
		return nil, fault.ErrShuttingDown
	}

	trx := e.db.Begin()
	original, err := e.store.Get(trx, id)
	if nil != err {
		trx.Abort()
		e.Unlock()
		return nil, err
	}
	p, err := e.dispatcher.Plan(original, externalData)
	if nil != err {
		trx.Abort()
		e.Unlock()
		return nil, err
	}

	settled := *original
	if err := e.dispatcher.Settle(trx, &settled, p); nil != err {
		trx.Abort()
		e.Unlock()
		return nil, err
	}
	e.store.Put(trx, &settled)

	if !p.IsExternal() {
		defer e.Unlock()
		if err := e.commit(trx, e.executed(caller, p)); nil != err {
			return nil, err
		}
		return p, nil
	}

	// settled with the balance parked, visible to any re-entrant call
	if err := trx.Commit(); nil != err {
		e.Unlock()
		return nil, err
	}
	e.Unlock()

	invokeErr := e.invoker.Invoke(dispatch.Invocation{
		VaultId: id,
		Target:  p.Invocation.Target,
		Payload: p.Invocation.Payload,
		Asset:   p.Asset,
		Value:   p.Amount,
	})

	e.Lock()
	defer e.Unlock()

	// the parked record is left for restorePending
	if e.closed {
		e.log.Warnf("execute: %d  closed during invocation, outcome: %v  not recorded", id, invokeErr)
		return nil, fault.ErrShuttingDown
	}

	trx = e.db.Begin()
	defer trx.Abort()

	if nil != invokeErr {
		e.log.Warnf("execute: %d  invocation of: %s  failed: %s", id, p.Invocation.Target, invokeErr)
		if err := e.dispatcher.Revert(trx, original, p); nil != err {
			e.log.Criticalf("execute: %d  revert error: %s  left parked", id, err)
			return nil, err
		}
		e.store.Put(trx, original)
		err := e.commit(trx, &event.Event{
			Kind:        event.ExecutionReverted,
			Timestamp:   e.timestamp(),
			VaultId:     id,
			Account:     caller,
			Asset:       p.Asset,
			Amount:      p.Amount,
			OutcomeKind: p.Kind,
			Reason:      invokeErr.Error(),
		})
		if nil != err {
			e.log.Criticalf("execute: %d  revert commit error: %s  left parked", id, err)
			return nil, err
		}
		return nil, fault.ErrInvocationFailed
	}

	if err := e.dispatcher.Complete(trx, p); nil != err {
		e.log.Criticalf("execute: %d  complete error: %s  left parked", id, err)
		return nil, err
	}
	if err := e.commit(trx, e.executed(caller, p)); nil != err {
		e.log.Criticalf("execute: %d  complete commit error: %s  left parked", id, err)
		return nil, err
	}
	return p, nil
}

func (e *Engine) executed(caller account.Address, p *dispatch.Plan) *event.Event {
	index := p.Index
	return &event.Event{
		Kind:        event.VaultExecuted,
		Timestamp:   e.timestamp(),
		VaultId:     p.VaultId,
		Account:     caller,
		Asset:       p.Asset,
		Amount:      p.Amount,
		Index:       &index,
		OutcomeKind: p.Kind,
	}
}

// WithdrawFees - pay accumulated fees to the fee recipient
func (e *Engine) WithdrawFees(caller account.Address, kind asset.Kind, amount uint64) error {
	e.Lock()
	defer e.Unlock()

	trx := e.db.Begin()
	defer trx.Abort()

	if err := e.fees.Withdraw(trx, caller, kind, amount); nil != err {
		return err
	}
	return e.commit(trx, &event.Event{
		Kind:      event.FeesWithdrawn,
		Timestamp: e.timestamp(),
		Account:   caller,
		Asset:     kind,
		Amount:    amount,
	})
}

// Issue - credit new units to an account, operator nodes only
func (e *Engine) Issue(owner account.Address, kind asset.Kind, amount uint64) error {
	if !e.operator {
		return fault.ErrOperatorNotPermitted
	}

	e.Lock()
	defer e.Unlock()

	trx := e.db.Begin()
	defer trx.Abort()

	if err := e.balances.Issue(trx, owner, kind, amount); nil != err {
		return err
	}
	return e.commit(trx, &event.Event{
		Kind:      event.AssetIssued,
		Timestamp: e.timestamp(),
		Account:   owner,
		Asset:     kind,
		Amount:    amount,
	})
}

// Advance - finalise the next history marker, operator nodes only
func (e *Engine) Advance() (history.Marker, error) {
	if !e.operator {
		return history.Marker{}, fault.ErrOperatorNotPermitted
	}
	a, ok := e.sources.History.(Advancer)
	if !ok {
		return history.Marker{}, fault.ErrOperatorNotPermitted
	}
	return a.Advance()
}
