// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/dispatch"
	"github.com/bitmark-inc/vaultd/entropy"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/rpc/vaults"
	"github.com/bitmark-inc/vaultd/vault"
)

// CreateData - parameters for a new vault
type CreateData struct {
	Creator  account.Address
	Asset    asset.Kind
	Amount   uint64
	Outcomes []vault.OutcomeData
	Criteria vault.Criteria
}

// Create - deposit into a new vault
func (client *Client) Create(data *CreateData) (*vaults.DepositReply, error) {
	if 0 == len(data.Outcomes) {
		return nil, fault.ErrNoOutcomes
	}

	args := vaults.CreateArguments{
		Creator:  data.Creator,
		Asset:    data.Asset,
		Amount:   data.Amount,
		Outcomes: data.Outcomes,
		Criteria: data.Criteria,
	}

	var reply vaults.DepositReply
	if err := client.call("Vaults.Create", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Fund - add to an open vault
func (client *Client) Fund(funder account.Address, vaultId uint64, kind asset.Kind, amount uint64) (*vaults.DepositReply, error) {
	args := vaults.FundArguments{
		Funder:  funder,
		VaultId: vaultId,
		Asset:   kind,
		Amount:  amount,
	}

	var reply vaults.DepositReply
	if err := client.call("Vaults.Fund", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Cancel - refund an open vault to its creator
func (client *Client) Cancel(caller account.Address, vaultId uint64) (*vaults.CancelReply, error) {
	args := vaults.CallerArguments{
		Caller:  caller,
		VaultId: vaultId,
	}

	var reply vaults.CancelReply
	if err := client.call("Vaults.Cancel", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Measure - resolve an open vault
func (client *Client) Measure(caller account.Address, vaultId uint64, externalData []byte) (*entropy.Measurement, error) {
	args := vaults.CallerArguments{
		Caller:       caller,
		VaultId:      vaultId,
		ExternalData: externalData,
	}

	var reply entropy.Measurement
	if err := client.call("Vaults.Measure", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Execute - apply the resolved outcome
func (client *Client) Execute(caller account.Address, vaultId uint64, externalData []byte) (*dispatch.Plan, error) {
	args := vaults.CallerArguments{
		Caller:       caller,
		VaultId:      vaultId,
		ExternalData: externalData,
	}

	var reply dispatch.Plan
	if err := client.call("Vaults.Execute", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Vault - read one vault
func (client *Client) Vault(vaultId uint64) (*vaults.GetReply, error) {
	args := vaults.GetArguments{
		VaultId: vaultId,
	}

	var reply vaults.GetReply
	if err := client.call("Vaults.Get", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Outcome - read one outcome by index
func (client *Client) Outcome(vaultId uint64, index uint64) (*vaults.OutcomeReply, error) {
	args := vaults.OutcomeArguments{
		VaultId: vaultId,
		Index:   index,
	}

	var reply vaults.OutcomeReply
	if err := client.call("Vaults.Outcome", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Resolved - read the measured outcome
func (client *Client) Resolved(vaultId uint64) (*vaults.OutcomeReply, error) {
	args := vaults.GetArguments{
		VaultId: vaultId,
	}

	var reply vaults.OutcomeReply
	if err := client.call("Vaults.Resolved", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Verify - re-derive a stored measurement on the node
func (client *Client) Verify(vaultId uint64) (*entropy.Verification, error) {
	args := vaults.GetArguments{
		VaultId: vaultId,
	}

	var reply entropy.Verification
	if err := client.call("Vaults.Verify", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// List - one page of vaults
func (client *Client) List(creator account.Address, start uint64, count int) (*vaults.ListReply, error) {
	args := vaults.ListArguments{
		Creator: creator,
		Start:   start,
		Count:   count,
	}

	var reply vaults.ListReply
	if err := client.call("Vaults.List", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
