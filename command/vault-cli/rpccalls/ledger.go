// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/rpc/ledger"
)

// Balance - ledger balance of an account
func (client *Client) Balance(owner account.Address, kind asset.Kind) (*ledger.BalanceReply, error) {
	args := ledger.BalanceArguments{
		Owner: owner,
		Asset: kind,
	}

	var reply ledger.BalanceReply
	if err := client.call("Ledger.Balance", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Fees - accumulated fee pool
func (client *Client) Fees(kind asset.Kind) (*ledger.FeesReply, error) {
	args := ledger.FeesArguments{
		Asset: kind,
	}

	var reply ledger.FeesReply
	if err := client.call("Ledger.Fees", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// WithdrawFees - move fees to the recipient's balance
func (client *Client) WithdrawFees(recipient account.Address, kind asset.Kind, amount uint64) (*ledger.TransferReply, error) {
	return client.transfer("Ledger.WithdrawFees", recipient, kind, amount)
}

// Issue - credit an account, only on operator chains
func (client *Client) Issue(owner account.Address, kind asset.Kind, amount uint64) (*ledger.TransferReply, error) {
	return client.transfer("Ledger.Issue", owner, kind, amount)
}

func (client *Client) transfer(method string, to account.Address, kind asset.Kind, amount uint64) (*ledger.TransferReply, error) {
	args := ledger.TransferArguments{
		Account: to,
		Asset:   kind,
		Amount:  amount,
	}

	var reply ledger.TransferReply
	if err := client.call(method, &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
