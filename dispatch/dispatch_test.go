// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/dispatch"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/fixtures"
	"github.com/bitmark-inc/vaultd/ledger"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

func setup(t *testing.T) (*storage.DB, *ledger.Balances, *dispatch.Dispatcher) {
	fixtures.SetupTestLogger()
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	balances := ledger.New()
	return db, balances, dispatch.New(balances)
}

func teardown(db *storage.DB) {
	db.Close()
	fixtures.TeardownTestLogger()
}

// a resolved native vault holding 900 with custody funded to match
func resolved(t *testing.T, trx storage.Access, balances *ledger.Balances, o vault.Outcome) *vault.Vault {
	v := &vault.Vault{
		Id:              1,
		State:           vault.Resolved,
		Creator:         fixtures.Alice,
		AssetKind:       asset.Native,
		DepositedAmount: 1000,
		HeldAmount:      900,
		Outcomes:        []vault.Outcome{{Effect: vault.Burn{}}, o},
	}
	v.SetIndex(1)
	if err := balances.Credit(trx, account.Custody, asset.Native, 900); nil != err {
		t.Fatalf("custody credit error: %s", err)
	}
	return v
}

func TestPlanAmounts(t *testing.T) {
	db, balances, d := setup(t)
	defer teardown(db)

	tests := []struct {
		effect    vault.Effect
		recipient account.Address
		amount    uint64
	}{
		{vault.TransferReferenceAsset{Target: fixtures.Bob, Amount: 300}, fixtures.Bob, 300},
		{vault.TransferReferenceAsset{Target: fixtures.Bob}, fixtures.Bob, 900},
		{vault.TransferReferenceAsset{Target: fixtures.Bob, Amount: 900}, fixtures.Bob, 900},
		{vault.TransferReferenceAsset{Target: fixtures.Bob, Amount: 5000}, fixtures.Bob, 900},
		{vault.InvokeExternal{Target: fixtures.Carol, Value: 0}, fixtures.Carol, 0},
		{vault.InvokeExternal{Target: fixtures.Carol, Value: 900}, fixtures.Carol, 900},
		{vault.Burn{}, account.BurnSink, 900},
		{vault.LockPermanently{}, account.LockSink, 900},
		{vault.ReturnToCreator{Target: fixtures.Alice}, fixtures.Alice, 900},
	}
	for i, item := range tests {
		trx := db.Begin()
		v := resolved(t, trx, balances, vault.Outcome{Effect: item.effect})
		p, err := d.Plan(v, nil)
		assert.Nil(t, err, "%d: plan", i)
		assert.Equal(t, item.recipient, p.Recipient, "%d: recipient", i)
		assert.Equal(t, item.amount, p.Amount, "%d: amount", i)
		assert.Equal(t, v.HeldAmount, p.Amount+p.Remainder, "%d: amount and remainder", i)
		trx.Abort()
	}
}

func TestPlanRejects(t *testing.T) {
	db, balances, d := setup(t)
	defer teardown(db)

	trx := db.Begin()
	defer trx.Abort()

	v := resolved(t, trx, balances, vault.Outcome{Effect: vault.InvokeExternal{Target: fixtures.Carol, Value: 901}})
	_, err := d.Plan(v, nil)
	assert.Equal(t, fault.ErrValueExceedsHeld, err, "value above held")

	v = resolved(t, trx, balances, vault.Outcome{Effect: vault.Burn{}, RequiresExternalData: true})
	_, err = d.Plan(v, nil)
	assert.Equal(t, fault.ErrExternalDataMissing, err, "missing external data")
	_, err = d.Plan(v, []byte("proof"))
	assert.Nil(t, err, "external data supplied")

	v.State = vault.Open
	_, err = d.Plan(v, []byte("proof"))
	assert.Equal(t, fault.ErrVaultNotResolved, err, "open vault")
}

func TestSettleTransferWithRemainder(t *testing.T) {
	db, balances, d := setup(t)
	defer teardown(db)

	trx := db.Begin()
	v := resolved(t, trx, balances, vault.Outcome{Effect: vault.TransferReferenceAsset{Target: fixtures.Bob, Amount: 300}})

	p, err := d.Plan(v, nil)
	assert.Nil(t, err, "plan")
	err = d.Settle(trx, v, p)
	assert.Nil(t, err, "settle")

	assert.Equal(t, vault.Settled, v.State, "state")
	assert.Equal(t, uint64(0), v.HeldAmount, "held")
	assert.Equal(t, uint64(300), balances.Balance(trx, fixtures.Bob, asset.Native), "target")
	assert.Equal(t, uint64(600), balances.Balance(trx, fixtures.Alice, asset.Native), "creator remainder")
	assert.Equal(t, uint64(0), balances.Balance(trx, account.Custody, asset.Native), "custody")
}

func TestSettleBurnAndLock(t *testing.T) {
	db, balances, d := setup(t)
	defer teardown(db)

	trx := db.Begin()
	v := resolved(t, trx, balances, vault.Outcome{Effect: vault.Burn{}})
	p, _ := d.Plan(v, nil)
	assert.Nil(t, d.Settle(trx, v, p), "burn")
	assert.Equal(t, uint64(900), balances.Balance(trx, account.BurnSink, asset.Native), "burn sink")

	v = resolved(t, trx, balances, vault.Outcome{Effect: vault.LockPermanently{}})
	p, _ = d.Plan(v, nil)
	assert.Nil(t, d.Settle(trx, v, p), "lock")
	assert.Equal(t, uint64(900), balances.Balance(trx, account.LockSink, asset.Native), "lock sink")
	assert.Equal(t, uint64(0), balances.Balance(trx, account.Custody, asset.Native), "custody")
}

func TestInvokeCompleteAndRevert(t *testing.T) {
	db, balances, d := setup(t)
	defer teardown(db)

	trx := db.Begin()
	v := resolved(t, trx, balances, vault.Outcome{Effect: vault.InvokeExternal{Target: fixtures.Carol, Payload: []byte("go"), Value: 100}})
	p, err := d.Plan(v, nil)
	assert.Nil(t, err, "plan")
	assert.True(t, p.IsExternal(), "external")

	assert.Nil(t, d.Settle(trx, v, p), "settle")
	assert.Equal(t, vault.Settled, v.State, "state before call")
	assert.Equal(t, uint64(900), balances.Balance(trx, account.InFlight, asset.Native), "parked")
	assert.Equal(t, uint64(0), balances.Balance(trx, account.Custody, asset.Native), "custody during call")

	// a failed call puts everything back
	revertTrx := db.Begin()
	assert.Nil(t, trx.Commit(), "commit")
	assert.Nil(t, d.Revert(revertTrx, v, p), "revert")
	assert.Equal(t, uint64(900), balances.Balance(revertTrx, account.Custody, asset.Native), "custody after revert")
	assert.Equal(t, uint64(0), balances.Balance(revertTrx, account.InFlight, asset.Native), "in flight after revert")
	revertTrx.Abort()

	// a successful call pays out
	completeTrx := db.Begin()
	assert.Nil(t, d.Complete(completeTrx, p), "complete")
	assert.Equal(t, uint64(100), balances.Balance(completeTrx, fixtures.Carol, asset.Native), "target")
	assert.Equal(t, uint64(800), balances.Balance(completeTrx, fixtures.Alice, asset.Native), "creator remainder")
	assert.Equal(t, uint64(0), balances.Balance(completeTrx, account.InFlight, asset.Native), "in flight after complete")
}

func TestPendingInvocation(t *testing.T) {
	db, balances, d := setup(t)
	defer teardown(db)

	trx := db.Begin()
	original := resolved(t, trx, balances, vault.Outcome{Effect: vault.InvokeExternal{Target: fixtures.Carol, Value: 100}})
	p, err := d.Plan(original, nil)
	assert.Nil(t, err, "plan")

	settled := *original
	assert.Nil(t, d.Settle(trx, &settled, p), "settle")
	assert.Nil(t, trx.Commit(), "commit")

	pending, err := d.ListPending(db)
	assert.Nil(t, err, "list after settle")
	assert.Equal(t, 1, len(pending), "one parked invocation")
	assert.Equal(t, uint64(900), pending[0].Parked, "parked")
	assert.Equal(t, uint64(100), pending[0].Value, "value")
	assert.Equal(t, vault.Resolved, pending[0].Original.State, "original state")
	assert.Equal(t, uint64(900), pending[0].Original.HeldAmount, "original held")

	// both outcomes of the call drop the record
	completeTrx := db.Begin()
	assert.Nil(t, d.Complete(completeTrx, p), "complete")
	assert.False(t, completeTrx.Has(storage.Invocations, vault.IdToKey(1)), "record after complete")
	completeTrx.Abort()

	revertTrx := db.Begin()
	assert.Nil(t, d.Revert(revertTrx, original, p), "revert")
	assert.False(t, revertTrx.Has(storage.Invocations, vault.IdToKey(1)), "record after revert")
	revertTrx.Abort()

	// neither committed, so the restart path puts custody back
	restoreTrx := db.Begin()
	assert.Nil(t, d.Restore(restoreTrx, pending[0]), "restore")
	assert.Equal(t, uint64(900), balances.Balance(restoreTrx, account.Custody, asset.Native), "custody after restore")
	assert.Equal(t, uint64(0), balances.Balance(restoreTrx, account.InFlight, asset.Native), "in flight after restore")
	assert.Nil(t, restoreTrx.Commit(), "commit restore")

	pending, err = d.ListPending(db)
	assert.Nil(t, err, "list after restore")
	assert.Equal(t, 0, len(pending), "nothing parked")
}

func TestSettleWithoutInvocationLeavesNoRecord(t *testing.T) {
	db, balances, d := setup(t)
	defer teardown(db)

	trx := db.Begin()
	v := resolved(t, trx, balances, vault.Outcome{Effect: vault.Burn{}})
	p, err := d.Plan(v, nil)
	assert.Nil(t, err, "plan")
	assert.Nil(t, d.Settle(trx, v, p), "settle")
	assert.Nil(t, trx.Commit(), "commit")

	pending, err := d.ListPending(db)
	assert.Nil(t, err, "list")
	assert.Equal(t, 0, len(pending), "burn is never parked")
}

func TestCompleteNeedsExternalPlan(t *testing.T) {
	db, balances, d := setup(t)
	defer teardown(db)

	trx := db.Begin()
	v := resolved(t, trx, balances, vault.Outcome{Effect: vault.Burn{}})
	p, _ := d.Plan(v, nil)
	assert.Equal(t, fault.ErrInvalidOutcomeKind, d.Complete(trx, p), "complete of burn")
	assert.Equal(t, fault.ErrInvalidOutcomeKind, d.Revert(trx, v, p), "revert of burn")
}

func TestAcceptInvoker(t *testing.T) {
	var invoker dispatch.Invoker = dispatch.Accept{}
	assert.Nil(t, invoker.Invoke(dispatch.Invocation{Target: fixtures.Carol}), "accept")
}
