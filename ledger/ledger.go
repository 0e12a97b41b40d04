// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - per-account balances of every asset kind
//
// all changes are staged through a storage.Access so that the
// surrounding operation either applies every movement or none
package ledger

import (
	"math/bits"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/util"
)

// Ledger - the asset movement capability used by vaults and fees
type Ledger interface {
	Balance(storage.Reader, account.Address, asset.Kind) uint64
	Debit(storage.Access, account.Address, asset.Kind, uint64) error
	Credit(storage.Access, account.Address, asset.Kind, uint64) error
	Transfer(storage.Access, account.Address, account.Address, asset.Kind, uint64) error
}

// Balances - Ledger stored in the balances pool
type Balances struct {
	log *logger.L
}

// New - create a ledger
func New() *Balances {
	return &Balances{
		log: logger.New("ledger"),
	}
}

// Key - balance key: varint length ++ owner ++ kind bytes
func Key(owner account.Address, kind asset.Kind) []byte {
	key := util.Packed{}.AppendBytes(owner.Bytes())
	return append(key, kind.Bytes()...)
}

// Balance - current balance, zero if no record
func (b *Balances) Balance(trx storage.Reader, owner account.Address, kind asset.Kind) uint64 {
	value, _ := trx.GetN(storage.Balances, Key(owner, kind))
	return value
}

// Debit - remove an amount from an account
func (b *Balances) Debit(trx storage.Access, owner account.Address, kind asset.Kind, amount uint64) error {
	if 0 == amount {
		return fault.ErrZeroAmount
	}
	key := Key(owner, kind)
	balance, _ := trx.GetN(storage.Balances, key)
	if balance < amount {
		b.log.Debugf("debit: %s  kind: %s  balance: %d < amount: %d", owner, kind, balance, amount)
		return fault.ErrInsufficientBalance
	}

	balance -= amount
	if 0 == balance {
		trx.Delete(storage.Balances, key)
	} else {
		trx.PutN(storage.Balances, key, balance)
	}
	return nil
}

// Credit - add an amount to an account
func (b *Balances) Credit(trx storage.Access, owner account.Address, kind asset.Kind, amount uint64) error {
	if 0 == amount {
		return fault.ErrZeroAmount
	}
	key := Key(owner, kind)
	balance, _ := trx.GetN(storage.Balances, key)

	total, carry := bits.Add64(balance, amount, 0)
	if 0 != carry {
		return fault.ErrAmountOverflow
	}
	trx.PutN(storage.Balances, key, total)
	return nil
}

// Transfer - debit one account and credit another
func (b *Balances) Transfer(trx storage.Access, from account.Address, to account.Address, kind asset.Kind, amount uint64) error {
	if err := b.Debit(trx, from, kind, amount); nil != err {
		return err
	}
	if err := b.Credit(trx, to, kind, amount); nil != err {
		return err
	}
	b.log.Debugf("transfer: %d  kind: %s  from: %s  to: %s", amount, kind, from, to)
	return nil
}

// Issue - bring new units into existence for an ordinary account
func (b *Balances) Issue(trx storage.Access, owner account.Address, kind asset.Kind, amount uint64) error {
	if err := owner.Validate(); nil != err {
		return err
	}
	if err := kind.Validate(); nil != err {
		return err
	}
	if err := b.Credit(trx, owner, kind, amount); nil != err {
		return err
	}
	b.log.Infof("issue: %d  kind: %s  to: %s", amount, kind, owner)
	return nil
}
