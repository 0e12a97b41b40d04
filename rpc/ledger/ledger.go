// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - RPC service for balances and fees
package ledger

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100
)

// Engine - the operations used by this service
type Engine interface {
	Balance(account.Address, asset.Kind) uint64
	FeePool(asset.Kind) uint64
	WithdrawFees(account.Address, asset.Kind, uint64) error
	Issue(account.Address, asset.Kind, uint64) error
}

// Ledger - type for RPC calls
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  Engine
}

// New - create the service
func New(log *logger.L, engine Engine) *Ledger {
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Engine:  engine,
	}
}

// ---

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Owner account.Address `json:"owner"`
	Asset asset.Kind      `json:"asset"`
}

// BalanceReply - result from RPC
type BalanceReply struct {
	Owner   account.Address `json:"owner"`
	Asset   asset.Kind      `json:"asset"`
	Balance uint64          `json:"balance"`
}

// Balance - ledger balance of an account
func (l *Ledger) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Owner.IsZero() {
		return fault.ErrMissingParameters
	}
	if err := arguments.Asset.Validate(); nil != err {
		return err
	}

	reply.Owner = arguments.Owner
	reply.Asset = arguments.Asset
	reply.Balance = l.Engine.Balance(arguments.Owner, arguments.Asset)
	return nil
}

// FeesArguments - arguments for RPC
type FeesArguments struct {
	Asset asset.Kind `json:"asset"`
}

// FeesReply - result from RPC
type FeesReply struct {
	Asset asset.Kind `json:"asset"`
	Pool  uint64     `json:"pool"`
}

// Fees - accumulated fee pool of an asset kind
func (l *Ledger) Fees(arguments *FeesArguments, reply *FeesReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if err := arguments.Asset.Validate(); nil != err {
		return err
	}

	reply.Asset = arguments.Asset
	reply.Pool = l.Engine.FeePool(arguments.Asset)
	return nil
}

// TransferArguments - an account, asset and amount
type TransferArguments struct {
	Account account.Address `json:"account"`
	Asset   asset.Kind      `json:"asset"`
	Amount  uint64          `json:"amount"`
}

// TransferReply - the resulting balance of the account
type TransferReply struct {
	Balance uint64 `json:"balance"`
}

// WithdrawFees - pay accumulated fees to the fee recipient
func (l *Ledger) WithdrawFees(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Account.IsZero() {
		return fault.ErrMissingParameters
	}

	l.Log.Infof("withdraw fees: %d  asset: %s  to: %s", arguments.Amount, arguments.Asset, arguments.Account)

	if err := l.Engine.WithdrawFees(arguments.Account, arguments.Asset, arguments.Amount); nil != err {
		return err
	}
	reply.Balance = l.Engine.Balance(arguments.Account, arguments.Asset)
	return nil
}

// Issue - credit new units to an account on an operator node
func (l *Ledger) Issue(arguments *TransferArguments, reply *TransferReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Account.IsZero() {
		return fault.ErrMissingParameters
	}

	l.Log.Infof("issue: %d  asset: %s  to: %s", arguments.Amount, arguments.Asset, arguments.Account)

	if err := l.Engine.Issue(arguments.Account, arguments.Asset, arguments.Amount); nil != err {
		return err
	}
	reply.Balance = l.Engine.Balance(arguments.Account, arguments.Asset)
	return nil
}
