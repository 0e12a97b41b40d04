// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vaults_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/dispatch"
	"github.com/bitmark-inc/vaultd/entropy"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/fixtures"
	"github.com/bitmark-inc/vaultd/rpc/mocks"
	"github.com/bitmark-inc/vaultd/rpc/vaults"
	"github.com/bitmark-inc/vaultd/vault"
)

func setup(t *testing.T) (*gomock.Controller, *mocks.MockVaultsEngine, *vaults.Vaults) {
	fixtures.SetupTestLogger()

	ctl := gomock.NewController(t)
	e := mocks.NewMockVaultsEngine(ctl)

	v := &vaults.Vaults{
		Log:     logger.New(fixtures.LogCategory),
		Limiter: rate.NewLimiter(100, 100),
		Engine:  e,
	}
	return ctl, e, v
}

func teardown(ctl *gomock.Controller) {
	ctl.Finish()
	fixtures.TeardownTestLogger()
}

func TestVaultsCreate(t *testing.T) {
	ctl, e, v := setup(t)
	defer teardown(ctl)

	data := []vault.OutcomeData{
		{Kind: vault.TransferReferenceAssetKind, Target: fixtures.Bob, Amount: 100},
		{Kind: vault.BurnKind},
	}
	outcomes, err := vault.FromData(data)
	assert.Nil(t, err, "wrong outcome data")

	criteria := vault.Criteria{FixedSeed: 7}
	created := &vault.Vault{Id: 3, State: vault.Open, Creator: fixtures.Alice, HeldAmount: 990}

	e.EXPECT().Create(fixtures.Alice, asset.Native, uint64(1000), outcomes, criteria).Return(&vault.Deposit{
		Vault: created,
		Gross: 1000,
		Net:   990,
		Fee:   10,
	}, nil).Times(1)

	arguments := vaults.CreateArguments{
		Creator:  fixtures.Alice,
		Asset:    asset.Native,
		Amount:   1000,
		Outcomes: data,
		Criteria: criteria,
	}
	var reply vaults.DepositReply
	err = v.Create(&arguments, &reply)
	assert.Nil(t, err, "wrong create")
	assert.Equal(t, uint64(3), reply.VaultId, "wrong vault id")
	assert.Equal(t, uint64(1000), reply.Gross, "wrong gross")
	assert.Equal(t, uint64(990), reply.Net, "wrong net")
	assert.Equal(t, uint64(10), reply.Fee, "wrong fee")
	assert.Equal(t, created, reply.Vault, "wrong vault")
}

func TestVaultsCreateRejectsBadInput(t *testing.T) {
	ctl, _, v := setup(t)
	defer teardown(ctl)

	var reply vaults.DepositReply

	err := v.Create(&vaults.CreateArguments{Amount: 5}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing creator accepted")

	arguments := vaults.CreateArguments{
		Creator: fixtures.Alice,
		Amount:  5,
		Outcomes: []vault.OutcomeData{
			{Kind: vault.BurnKind, Amount: 1},
		},
	}
	err = v.Create(&arguments, &reply)
	assert.Equal(t, fault.ErrInvalidOutcome, err, "burn with amount accepted")

	arguments.Outcomes = []vault.OutcomeData{{Kind: 99}}
	err = v.Create(&arguments, &reply)
	assert.Equal(t, fault.ErrInvalidOutcomeKind, err, "unknown kind accepted")
}

func TestVaultsFund(t *testing.T) {
	ctl, e, v := setup(t)
	defer teardown(ctl)

	funded := &vault.Vault{Id: 2, HeldAmount: 1485}
	e.EXPECT().Fund(fixtures.Bob, uint64(2), fixtures.Gold, uint64(500)).Return(&vault.Deposit{
		Vault: funded,
		Gross: 500,
		Net:   495,
		Fee:   5,
	}, nil).Times(1)

	var reply vaults.DepositReply
	err := v.Fund(&vaults.FundArguments{Funder: fixtures.Bob, VaultId: 2, Asset: fixtures.Gold, Amount: 500}, &reply)
	assert.Nil(t, err, "wrong fund")
	assert.Equal(t, uint64(2), reply.VaultId, "wrong vault id")
	assert.Equal(t, uint64(495), reply.Net, "wrong net")
	assert.Equal(t, funded, reply.Vault, "wrong vault")

	e.EXPECT().Fund(fixtures.Bob, uint64(9), fixtures.Gold, uint64(500)).Return(nil, fault.ErrVaultNotFound).Times(1)

	err = v.Fund(&vaults.FundArguments{Funder: fixtures.Bob, VaultId: 9, Asset: fixtures.Gold, Amount: 500}, &reply)
	assert.Equal(t, fault.ErrVaultNotFound, err, "wrong error")
}

func TestVaultsCancel(t *testing.T) {
	ctl, e, v := setup(t)
	defer teardown(ctl)

	cancelled := &vault.Vault{Id: 1, State: vault.Cancelled}
	e.EXPECT().Cancel(fixtures.Alice, uint64(1)).Return(cancelled, uint64(990), nil).Times(1)

	var reply vaults.CancelReply
	err := v.Cancel(&vaults.CallerArguments{Caller: fixtures.Alice, VaultId: 1}, &reply)
	assert.Nil(t, err, "wrong cancel")
	assert.Equal(t, uint64(990), reply.Refund, "wrong refund")
	assert.Equal(t, cancelled, reply.Vault, "wrong vault")

	err = v.Cancel(&vaults.CallerArguments{VaultId: 1}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing caller accepted")
}

func TestVaultsMeasureAndExecute(t *testing.T) {
	ctl, e, v := setup(t)
	defer teardown(ctl)

	external := []byte{0xca, 0xfe}

	m := &entropy.Measurement{Index: 1}
	e.EXPECT().Measure(fixtures.Alice, uint64(4), external).Return(m, nil).Times(1)

	p := &dispatch.Plan{
		VaultId:   4,
		Index:     1,
		Kind:      vault.TransferReferenceAssetKind,
		Recipient: fixtures.Bob,
		Amount:    100,
		Creator:   fixtures.Alice,
		Remainder: 890,
	}
	e.EXPECT().Execute(fixtures.Alice, uint64(4), external).Return(p, nil).Times(1)

	arguments := vaults.CallerArguments{
		Caller:       fixtures.Alice,
		VaultId:      4,
		ExternalData: external,
	}

	var measured entropy.Measurement
	err := v.Measure(&arguments, &measured)
	assert.Nil(t, err, "wrong measure")
	assert.Equal(t, *m, measured, "wrong measurement")

	var plan dispatch.Plan
	err = v.Execute(&arguments, &plan)
	assert.Nil(t, err, "wrong execute")
	assert.Equal(t, *p, plan, "wrong plan")
}

func TestVaultsGetAndOutcome(t *testing.T) {
	ctl, e, v := setup(t)
	defer teardown(ctl)

	burn := vault.Outcome{Effect: vault.Burn{}}
	stored := &vault.Vault{Id: 5, Outcomes: []vault.Outcome{burn}}

	e.EXPECT().Vault(uint64(5)).Return(stored, nil).Times(1)
	e.EXPECT().OutcomeCount(uint64(5)).Return(1, nil).Times(1)
	e.EXPECT().Outcome(uint64(5), uint64(0)).Return(burn, nil).Times(1)
	e.EXPECT().Outcome(uint64(5), uint64(1)).Return(vault.Outcome{}, fault.ErrOutcomeNotFound).Times(1)
	e.EXPECT().ResolvedOutcome(uint64(5)).Return(uint64(0), burn, nil).Times(1)

	var got vaults.GetReply
	err := v.Get(&vaults.GetArguments{VaultId: 5}, &got)
	assert.Nil(t, err, "wrong get")
	assert.Equal(t, stored, got.Vault, "wrong vault")
	assert.Equal(t, 1, got.OutcomeCount, "wrong outcome count")

	var reply vaults.OutcomeReply
	err = v.Outcome(&vaults.OutcomeArguments{VaultId: 5, Index: 0}, &reply)
	assert.Nil(t, err, "wrong outcome")
	assert.Equal(t, burn, reply.Outcome, "wrong outcome")

	err = v.Outcome(&vaults.OutcomeArguments{VaultId: 5, Index: 1}, &reply)
	assert.Equal(t, fault.ErrOutcomeNotFound, err, "out of range index accepted")

	var resolved vaults.OutcomeReply
	err = v.Resolved(&vaults.GetArguments{VaultId: 5}, &resolved)
	assert.Nil(t, err, "wrong resolved")
	assert.Equal(t, uint64(0), resolved.Index, "wrong index")
	assert.Equal(t, burn, resolved.Outcome, "wrong resolved outcome")
}

func TestVaultsVerify(t *testing.T) {
	ctl, e, v := setup(t)
	defer teardown(ctl)

	result := &entropy.Verification{
		Measurement: &entropy.Measurement{Index: 2},
		DerivedIdx:  2,
		Match:       true,
	}
	e.EXPECT().VerifyVault(uint64(6)).Return(result, nil).Times(1)
	e.EXPECT().VerifyVault(uint64(7)).Return(nil, fault.ErrVaultNotResolved).Times(1)

	var reply entropy.Verification
	err := v.Verify(&vaults.GetArguments{VaultId: 6}, &reply)
	assert.Nil(t, err, "wrong verify")
	assert.True(t, reply.Match, "verification did not match")

	err = v.Verify(&vaults.GetArguments{VaultId: 7}, &reply)
	assert.Equal(t, fault.ErrVaultNotResolved, err, "wrong error")
}

func TestVaultsList(t *testing.T) {
	ctl, e, v := setup(t)
	defer teardown(ctl)

	all := []*vault.Vault{{Id: 3}, {Id: 4}}
	mine := []*vault.Vault{{Id: 8, Creator: fixtures.Bob}}

	gomock.InOrder(
		e.EXPECT().ListVaults(uint64(3), 2).Return(all, nil).Times(1),
		e.EXPECT().ListVaultsByCreator(fixtures.Bob, uint64(0), 10).Return(mine, nil).Times(1),
		e.EXPECT().ListVaultsByCreator(fixtures.Bob, uint64(9), 10).Return(nil, nil).Times(1),
	)

	var reply vaults.ListReply
	err := v.List(&vaults.ListArguments{Start: 3, Count: 2}, &reply)
	assert.Nil(t, err, "wrong list")
	assert.Equal(t, all, reply.Vaults, "wrong vaults")
	assert.Equal(t, uint64(5), reply.NextStart, "wrong next start")

	err = v.List(&vaults.ListArguments{Creator: fixtures.Bob, Count: 10}, &reply)
	assert.Nil(t, err, "wrong list by creator")
	assert.Equal(t, mine, reply.Vaults, "wrong vaults")
	assert.Equal(t, uint64(9), reply.NextStart, "wrong next start")

	err = v.List(&vaults.ListArguments{Creator: fixtures.Bob, Start: 9, Count: 10}, &reply)
	assert.Nil(t, err, "wrong empty list")
	assert.Equal(t, 0, len(reply.Vaults), "wrong vaults")
	assert.Equal(t, uint64(9), reply.NextStart, "next start moved on empty page")

	for _, count := range []int{0, -1, 101} {
		err = v.List(&vaults.ListArguments{Creator: account.Address(""), Count: count}, &reply)
		assert.Equal(t, fault.ErrInvalidCount, err, "invalid count accepted")
	}
}
