// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vaults - RPC service for vault operations and queries
//
// callers are identified by the account given in the arguments, that
// identity is established outside this node
package vaults

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/dispatch"
	"github.com/bitmark-inc/vaultd/entropy"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/rpc/ratelimit"
	"github.com/bitmark-inc/vaultd/vault"
)

const (
	rateLimitVaults = 200
	rateBurstVaults = 100

	maximumVaultList = 100
)

// Engine - the operations used by this service
type Engine interface {
	Create(account.Address, asset.Kind, uint64, []vault.Outcome, vault.Criteria) (*vault.Deposit, error)
	Fund(account.Address, uint64, asset.Kind, uint64) (*vault.Deposit, error)
	Cancel(account.Address, uint64) (*vault.Vault, uint64, error)
	Measure(account.Address, uint64, []byte) (*entropy.Measurement, error)
	Execute(account.Address, uint64, []byte) (*dispatch.Plan, error)
	Vault(uint64) (*vault.Vault, error)
	OutcomeCount(uint64) (int, error)
	Outcome(uint64, uint64) (vault.Outcome, error)
	ResolvedOutcome(uint64) (uint64, vault.Outcome, error)
	VerifyVault(uint64) (*entropy.Verification, error)
	ListVaults(uint64, int) ([]*vault.Vault, error)
	ListVaultsByCreator(account.Address, uint64, int) ([]*vault.Vault, error)
}

// Vaults - type for RPC calls
type Vaults struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Engine  Engine
}

// New - create the service
func New(log *logger.L, engine Engine) *Vaults {
	return &Vaults{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitVaults, rateBurstVaults),
		Engine:  engine,
	}
}

// ---

// CreateArguments - arguments for RPC
type CreateArguments struct {
	Creator  account.Address     `json:"creator"`
	Asset    asset.Kind          `json:"asset"`
	Amount   uint64              `json:"amount"`
	Outcomes []vault.OutcomeData `json:"outcomes"`
	Criteria vault.Criteria      `json:"criteria"`
}

// DepositReply - result of create and fund
type DepositReply struct {
	VaultId uint64       `json:"vaultId"`
	Gross   uint64       `json:"gross"`
	Net     uint64       `json:"net"`
	Fee     uint64       `json:"fee"`
	Vault   *vault.Vault `json:"vault"`
}

// Create - deposit into a new vault
func (v *Vaults) Create(arguments *CreateArguments, reply *DepositReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Creator.IsZero() {
		return fault.ErrMissingParameters
	}

	outcomes, err := vault.FromData(arguments.Outcomes)
	if nil != err {
		return err
	}

	v.Log.Infof("create: creator: %s  asset: %s  amount: %d  outcomes: %d", arguments.Creator, arguments.Asset, arguments.Amount, len(outcomes))

	d, err := v.Engine.Create(arguments.Creator, arguments.Asset, arguments.Amount, outcomes, arguments.Criteria)
	if nil != err {
		return err
	}
	fillDeposit(reply, d)
	return nil
}

// FundArguments - arguments for RPC
type FundArguments struct {
	Funder  account.Address `json:"funder"`
	VaultId uint64          `json:"vaultId"`
	Asset   asset.Kind      `json:"asset"`
	Amount  uint64          `json:"amount"`
}

// Fund - add a deposit to an open vault
func (v *Vaults) Fund(arguments *FundArguments, reply *DepositReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Funder.IsZero() {
		return fault.ErrMissingParameters
	}

	d, err := v.Engine.Fund(arguments.Funder, arguments.VaultId, arguments.Asset, arguments.Amount)
	if nil != err {
		return err
	}
	fillDeposit(reply, d)
	return nil
}

func fillDeposit(reply *DepositReply, d *vault.Deposit) {
	reply.VaultId = d.Vault.Id
	reply.Gross = d.Gross
	reply.Net = d.Net
	reply.Fee = d.Fee
	reply.Vault = d.Vault
}

// ---

// CallerArguments - a vault and the account acting on it
type CallerArguments struct {
	Caller       account.Address `json:"caller"`
	VaultId      uint64          `json:"vaultId"`
	ExternalData vault.HexBytes  `json:"externalData,omitempty"`
}

// CancelReply - result from RPC
type CancelReply struct {
	Refund uint64       `json:"refund"`
	Vault  *vault.Vault `json:"vault"`
}

// Cancel - return the held balance to the creator
func (v *Vaults) Cancel(arguments *CallerArguments, reply *CancelReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Caller.IsZero() {
		return fault.ErrMissingParameters
	}

	result, refund, err := v.Engine.Cancel(arguments.Caller, arguments.VaultId)
	if nil != err {
		return err
	}
	reply.Refund = refund
	reply.Vault = result
	return nil
}

// Measure - fix the outcome of an open vault
func (v *Vaults) Measure(arguments *CallerArguments, reply *entropy.Measurement) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Caller.IsZero() {
		return fault.ErrMissingParameters
	}

	m, err := v.Engine.Measure(arguments.Caller, arguments.VaultId, arguments.ExternalData)
	if nil != err {
		return err
	}
	*reply = *m
	return nil
}

// Execute - carry out the chosen outcome
func (v *Vaults) Execute(arguments *CallerArguments, reply *dispatch.Plan) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments || arguments.Caller.IsZero() {
		return fault.ErrMissingParameters
	}

	p, err := v.Engine.Execute(arguments.Caller, arguments.VaultId, arguments.ExternalData)
	if nil != err {
		return err
	}
	*reply = *p
	return nil
}

// ---

// GetArguments - a vault id
type GetArguments struct {
	VaultId uint64 `json:"vaultId"`
}

// GetReply - one vault
type GetReply struct {
	Vault        *vault.Vault `json:"vault"`
	OutcomeCount int          `json:"outcomeCount"`
}

// Get - read a vault
func (v *Vaults) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	result, err := v.Engine.Vault(arguments.VaultId)
	if nil != err {
		return err
	}
	count, err := v.Engine.OutcomeCount(arguments.VaultId)
	if nil != err {
		return err
	}
	reply.Vault = result
	reply.OutcomeCount = count
	return nil
}

// OutcomeArguments - a vault id and outcome index
type OutcomeArguments struct {
	VaultId uint64 `json:"vaultId"`
	Index   uint64 `json:"index"`
}

// OutcomeReply - one outcome
type OutcomeReply struct {
	Index   uint64        `json:"index"`
	Outcome vault.Outcome `json:"outcome"`
}

// Outcome - read one outcome by index
func (v *Vaults) Outcome(arguments *OutcomeArguments, reply *OutcomeReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	o, err := v.Engine.Outcome(arguments.VaultId, arguments.Index)
	if nil != err {
		return err
	}
	reply.Index = arguments.Index
	reply.Outcome = o
	return nil
}

// Resolved - read the outcome chosen by measurement
func (v *Vaults) Resolved(arguments *GetArguments, reply *OutcomeReply) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	index, o, err := v.Engine.ResolvedOutcome(arguments.VaultId)
	if nil != err {
		return err
	}
	reply.Index = index
	reply.Outcome = o
	return nil
}

// Verify - re-derive the stored measurement
func (v *Vaults) Verify(arguments *GetArguments, reply *entropy.Verification) error {
	if err := ratelimit.Limit(v.Limiter); nil != err {
		return err
	}
	if nil == arguments {
		return fault.ErrMissingParameters
	}

	result, err := v.Engine.VerifyVault(arguments.VaultId)
	if nil != err {
		return err
	}
	*reply = *result
	return nil
}

// ---

// ListArguments - arguments for RPC
type ListArguments struct {
	Creator account.Address `json:"creator,omitempty"`
	Start   uint64          `json:"start"`
	Count   int             `json:"count"`
}

// ListReply - result from RPC
type ListReply struct {
	Vaults    []*vault.Vault `json:"vaults"`
	NextStart uint64         `json:"nextStart"`
}

// List - vaults in id order, optionally of one creator
func (v *Vaults) List(arguments *ListArguments, reply *ListReply) error {
	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if err := ratelimit.LimitN(v.Limiter, arguments.Count, maximumVaultList); nil != err {
		return err
	}

	var vaults []*vault.Vault
	var err error
	if arguments.Creator.IsZero() {
		vaults, err = v.Engine.ListVaults(arguments.Start, arguments.Count)
	} else {
		vaults, err = v.Engine.ListVaultsByCreator(arguments.Creator, arguments.Start, arguments.Count)
	}
	if nil != err {
		return err
	}

	reply.Vaults = vaults
	reply.NextStart = arguments.Start
	if n := len(vaults); n > 0 {
		reply.NextStart = vaults[n-1].Id + 1
	}
	return nil
}
