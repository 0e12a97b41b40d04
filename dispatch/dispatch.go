// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch - carry out the chosen outcome of a resolved vault
//
// every branch settles the vault: the held balance leaves custody
// completely, to the recipient of the effect and any remainder back
// to the creator
//
// an external invocation is split in two: Settle parks the whole held
// balance in the in-flight account and the caller commits that before
// invoking, then either Complete pays out or Revert restores custody
//
// Settle also stores a pending record with the vault as it was, so a
// stop before Complete or Revert commits can be undone by Restore
package dispatch

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/ledger"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

// Plan - resolved amounts of one execution
type Plan struct {
	VaultId   uint64            `json:"vaultId"`
	Index     uint64            `json:"index"`
	Kind      vault.OutcomeKind `json:"kind"`
	Asset     asset.Kind        `json:"asset"`
	Recipient account.Address   `json:"recipient"`
	Amount    uint64            `json:"amount"`
	Creator   account.Address   `json:"creator"`
	Remainder uint64            `json:"remainder"`

	// set only for InvokeExternal
	Invocation *vault.InvokeExternal `json:"-"`
}

// IsExternal - needs the two phase path
func (p *Plan) IsExternal() bool {
	return nil != p.Invocation
}

// Dispatcher - moves custody balances for each outcome kind
type Dispatcher struct {
	log      *logger.L
	balances ledger.Ledger
}

// New - create a dispatcher
func New(balances ledger.Ledger) *Dispatcher {
	return &Dispatcher{
		log:      logger.New("dispatch"),
		balances: balances,
	}
}

// Plan - check the vault and work out where its balance goes
func (d *Dispatcher) Plan(v *vault.Vault, externalData []byte) (*Plan, error) {
	if vault.Resolved != v.State {
		return nil, fault.ErrVaultNotResolved
	}
	o, err := v.Chosen()
	if nil != err {
		return nil, err
	}
	if o.RequiresExternalData && 0 == len(externalData) {
		return nil, fault.ErrExternalDataMissing
	}
	if err := vault.ValidateOutcome(o, v.AssetKind, v.Creator); nil != err {
		return nil, err
	}

	index, _ := v.Index()
	held := v.HeldAmount
	p := &Plan{
		VaultId: v.Id,
		Index:   index,
		Kind:    o.Effect.Kind(),
		Asset:   v.AssetKind,
		Creator: v.Creator,
	}

	switch e := o.Effect.(type) {
	case vault.TransferReferenceAsset:
		p.Recipient = e.Target
		p.Amount = partial(e.Amount, held)
	case vault.TransferToken:
		p.Recipient = e.Target
		p.Amount = partial(e.Amount, held)
	case vault.InvokeExternal:
		if e.Value > held {
			return nil, fault.ErrValueExceedsHeld
		}
		invocation := e
		p.Recipient = e.Target
		p.Amount = e.Value
		p.Invocation = &invocation
	case vault.Burn:
		p.Recipient = account.BurnSink
		p.Amount = held
	case vault.LockPermanently:
		p.Recipient = account.LockSink
		p.Amount = held
	case vault.ReturnToCreator:
		p.Recipient = v.Creator
		p.Amount = held
	default:
		logger.Panicf("dispatch: vault: %d  unhandled effect: %#v", v.Id, o.Effect)
	}
	p.Remainder = held - p.Amount
	return p, nil
}

// an explicit amount strictly inside (0, held) moves just that much
func partial(amount uint64, held uint64) uint64 {
	if amount > 0 && amount < held {
		return amount
	}
	return held
}

// Settle - apply a plan and mark the vault Settled
//
// for an external invocation the whole balance moves to the in-flight
// account instead and Complete or Revert must follow, v must still be
// the unmodified Resolved record
func (d *Dispatcher) Settle(trx storage.Access, v *vault.Vault, p *Plan) error {
	if p.IsExternal() {
		if err := d.move(trx, account.Custody, account.InFlight, p.Asset, v.HeldAmount); nil != err {
			return err
		}
		putPending(trx, v, p)
	} else {
		if err := d.payout(trx, account.Custody, p); nil != err {
			return err
		}
	}

	v.HeldAmount = 0
	v.State = vault.Settled
	d.log.Infof("settle vault: %d  kind: %s  amount: %d  remainder: %d", v.Id, p.Kind, p.Amount, p.Remainder)
	return nil
}

// Complete - pay out a parked balance after a successful invocation
func (d *Dispatcher) Complete(trx storage.Access, p *Plan) error {
	if !p.IsExternal() {
		return fault.ErrInvalidOutcomeKind
	}
	if err := d.payout(trx, account.InFlight, p); nil != err {
		return err
	}
	deletePending(trx, p.VaultId)
	return nil
}

// Revert - return a parked balance to custody, the caller restores
// the vault record as it was before Settle
func (d *Dispatcher) Revert(trx storage.Access, original *vault.Vault, p *Plan) error {
	if !p.IsExternal() {
		return fault.ErrInvalidOutcomeKind
	}
	if err := d.move(trx, account.InFlight, account.Custody, p.Asset, p.Amount+p.Remainder); nil != err {
		return err
	}
	deletePending(trx, original.Id)
	d.log.Warnf("revert vault: %d  restored: %d", original.Id, original.HeldAmount)
	return nil
}

func (d *Dispatcher) payout(trx storage.Access, from account.Address, p *Plan) error {
	if err := d.move(trx, from, p.Recipient, p.Asset, p.Amount); nil != err {
		return err
	}
	return d.move(trx, from, p.Creator, p.Asset, p.Remainder)
}

func (d *Dispatcher) move(trx storage.Access, from account.Address, to account.Address, kind asset.Kind, amount uint64) error {
	if 0 == amount {
		return nil
	}
	err := d.balances.Transfer(trx, from, to, kind, amount)
	if nil != err {
		d.log.Errorf("transfer: %d  from: %#v  to: %#v  error: %s", amount, from, to, err)
		return fault.ErrTransferFailed
	}
	return nil
}
