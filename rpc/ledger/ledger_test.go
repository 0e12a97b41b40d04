// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/fixtures"
	"github.com/bitmark-inc/vaultd/rpc/ledger"
	"github.com/bitmark-inc/vaultd/rpc/mocks"
)

func TestLedgerBalance(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockLedgerEngine(ctl)
	l := ledger.Ledger{
		Log:     logger.New(fixtures.LogCategory),
		Limiter: rate.NewLimiter(100, 100),
		Engine:  e,
	}

	e.EXPECT().Balance(fixtures.Alice, fixtures.Gold).Return(uint64(750)).Times(1)
	e.EXPECT().FeePool(asset.Native).Return(uint64(12)).Times(1)

	var reply ledger.BalanceReply
	err := l.Balance(&ledger.BalanceArguments{Owner: fixtures.Alice, Asset: fixtures.Gold}, &reply)
	assert.Nil(t, err, "wrong balance")
	assert.Equal(t, fixtures.Alice, reply.Owner, "wrong owner")
	assert.Equal(t, fixtures.Gold, reply.Asset, "wrong asset")
	assert.Equal(t, uint64(750), reply.Balance, "wrong balance")

	err = l.Balance(&ledger.BalanceArguments{Asset: fixtures.Gold}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing owner accepted")

	err = l.Balance(&ledger.BalanceArguments{Owner: fixtures.Alice, Asset: asset.Token("has space")}, &reply)
	assert.Equal(t, fault.ErrInvalidAssetKind, err, "bad token accepted")

	var fees ledger.FeesReply
	err = l.Fees(&ledger.FeesArguments{Asset: asset.Native}, &fees)
	assert.Nil(t, err, "wrong fees")
	assert.Equal(t, uint64(12), fees.Pool, "wrong pool")
}

func TestLedgerWithdrawAndIssue(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	e := mocks.NewMockLedgerEngine(ctl)
	l := ledger.New(logger.New(fixtures.LogCategory), e)

	gomock.InOrder(
		e.EXPECT().WithdrawFees(fixtures.Revenue, asset.Native, uint64(10)).Return(nil).Times(1),
		e.EXPECT().Balance(fixtures.Revenue, asset.Native).Return(uint64(10)).Times(1),
		e.EXPECT().WithdrawFees(fixtures.Alice, asset.Native, uint64(10)).Return(fault.ErrNotFeeRecipient).Times(1),
		e.EXPECT().Issue(fixtures.Bob, fixtures.Gold, uint64(300)).Return(nil).Times(1),
		e.EXPECT().Balance(fixtures.Bob, fixtures.Gold).Return(uint64(300)).Times(1),
		e.EXPECT().Issue(fixtures.Bob, fixtures.Gold, uint64(300)).Return(fault.ErrOperatorNotPermitted).Times(1),
	)

	var reply ledger.TransferReply
	err := l.WithdrawFees(&ledger.TransferArguments{Account: fixtures.Revenue, Asset: asset.Native, Amount: 10}, &reply)
	assert.Nil(t, err, "wrong withdraw")
	assert.Equal(t, uint64(10), reply.Balance, "wrong balance")

	err = l.WithdrawFees(&ledger.TransferArguments{Account: fixtures.Alice, Asset: asset.Native, Amount: 10}, &reply)
	assert.Equal(t, fault.ErrNotFeeRecipient, err, "wrong error")

	err = l.Issue(&ledger.TransferArguments{Account: fixtures.Bob, Asset: fixtures.Gold, Amount: 300}, &reply)
	assert.Nil(t, err, "wrong issue")
	assert.Equal(t, uint64(300), reply.Balance, "wrong balance")

	err = l.Issue(&ledger.TransferArguments{Account: fixtures.Bob, Asset: fixtures.Gold, Amount: 300}, &reply)
	assert.Equal(t, fault.ErrOperatorNotPermitted, err, "wrong error")

	err = l.Issue(&ledger.TransferArguments{Asset: fixtures.Gold, Amount: 300}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing account accepted")
}
