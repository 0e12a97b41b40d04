// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fee - protocol fee taken from every deposit
//
// fees stay in custody alongside vault balances; the pool records
// how much of the custody balance of each asset kind belongs to the
// fee recipient
package fee

import (
	"math/bits"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/ledger"
	"github.com/bitmark-inc/vaultd/storage"
)

// BasisPoints - denominator of the fee rate
const BasisPoints = 10000

// Ledger - fee computation and per-asset-kind accumulation
type Ledger struct {
	log       *logger.L
	rate      uint64
	recipient account.Address
	balances  ledger.Ledger
}

// New - create a fee ledger with a rate in basis points
//
// an empty recipient means fees can never be withdrawn
func New(rate uint64, recipient account.Address, balances ledger.Ledger) (*Ledger, error) {
	if rate > BasisPoints {
		return nil, fault.ErrInvalidFeeRate
	}
	if !recipient.IsZero() {
		if err := recipient.Validate(); nil != err {
			return nil, err
		}
	}
	log := logger.New("fee")
	log.Infof("rate: %d bp  recipient: %s", rate, recipient)
	return &Ledger{
		log:       log,
		rate:      rate,
		recipient: recipient,
		balances:  balances,
	}, nil
}

// Rate - fee rate in basis points
func (f *Ledger) Rate() uint64 {
	return f.rate
}

// Recipient - the only account allowed to withdraw
func (f *Ledger) Recipient() account.Address {
	return f.recipient
}

// Compute - floor(gross * rate / 10000) without intermediate overflow
func (f *Ledger) Compute(gross uint64) uint64 {
	hi, lo := bits.Mul64(gross, f.rate)
	quotient, _ := bits.Div64(hi, lo, BasisPoints)
	return quotient
}

// TakeFee - split a gross deposit and add the fee to the pool
func (f *Ledger) TakeFee(trx storage.Access, kind asset.Kind, gross uint64) (uint64, uint64, error) {
	if 0 == gross {
		return 0, 0, fault.ErrZeroAmount
	}
	fee := f.Compute(gross)
	net := gross - fee
	if 0 == net {
		return 0, 0, fault.ErrAmountBelowFee
	}
	if 0 == fee {
		return net, 0, nil
	}

	pool := f.Pool(trx, kind)
	total, carry := bits.Add64(pool, fee, 0)
	if 0 != carry {
		return 0, 0, fault.ErrAmountOverflow
	}
	trx.PutN(storage.FeePools, kind.Bytes(), total)
	return net, fee, nil
}

// Pool - accumulated fees of one asset kind
func (f *Ledger) Pool(trx storage.Reader, kind asset.Kind) uint64 {
	value, _ := trx.GetN(storage.FeePools, kind.Bytes())
	return value
}

// Withdraw - pay part of a pool out of custody to the recipient
func (f *Ledger) Withdraw(trx storage.Access, caller account.Address, kind asset.Kind, amount uint64) error {
	if f.recipient.IsZero() || caller != f.recipient {
		return fault.ErrNotFeeRecipient
	}
	if 0 == amount {
		return fault.ErrZeroAmount
	}
	pool := f.Pool(trx, kind)
	if amount > pool {
		return fault.ErrInsufficientFees
	}

	if err := f.balances.Transfer(trx, account.Custody, f.recipient, kind, amount); nil != err {
		return err
	}
	if pool == amount {
		trx.Delete(storage.FeePools, kind.Bytes())
	} else {
		trx.PutN(storage.FeePools, kind.Bytes(), pool-amount)
	}
	f.log.Infof("withdraw: %d  kind: %s  remaining: %d", amount, kind, pool-amount)
	return nil
}
