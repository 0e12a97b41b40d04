// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/dispatch"
	"github.com/bitmark-inc/vaultd/engine"
	"github.com/bitmark-inc/vaultd/event"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/fixtures"
	"github.com/bitmark-inc/vaultd/history"
	"github.com/bitmark-inc/vaultd/messagebus"
	"github.com/bitmark-inc/vaultd/oracle"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

const initialBalance = 10000

type fixture struct {
	db     *storage.DB
	chain  *history.Chain
	queue  *messagebus.Queue
	engine *engine.Engine
}

func clock() time.Time {
	return time.Unix(1600000000, 0)
}

// 1% fee, alice and bob each start with 10000 native and 10000 gold
func setup(t *testing.T, invoker dispatch.Invoker) *fixture {
	fixtures.SetupTestLogger()

	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	f := start(t, db, invoker)

	for _, a := range []account.Address{fixtures.Alice, fixtures.Bob} {
		for _, k := range []asset.Kind{asset.Native, fixtures.Gold} {
			if err := f.engine.Issue(a, k, initialBalance); nil != err {
				t.Fatalf("issue error: %s", err)
			}
		}
	}
	return f
}

// an engine over an existing database, as after a restart
func start(t *testing.T, db *storage.DB, invoker dispatch.Invoker) *fixture {
	chain, err := history.New(db, "testing", clock)
	if nil != err {
		t.Fatalf("history error: %s", err)
	}
	queue := messagebus.New(1000)

	e, err := engine.New(db, engine.Options{
		Chain:        "testing",
		FeeRate:      100,
		FeeRecipient: fixtures.Revenue,
		History:      chain,
		Oracles:      oracle.NewAllowList(fixtures.Oracle),
		Invoker:      invoker,
		Notifier:     queue,
		Now:          clock,
		Operator:     true,
	})
	if nil != err {
		t.Fatalf("engine error: %s", err)
	}

	return &fixture{
		db:     db,
		chain:  chain,
		queue:  queue,
		engine: e,
	}
}

func (f *fixture) teardown() {
	f.db.Close()
	fixtures.TeardownTestLogger()
}

// custody must hold exactly every vault balance plus the fee pool
func (f *fixture) checkCustody(t *testing.T, kind asset.Kind) {
	vaults, err := f.engine.ListVaults(1, 1000)
	assert.Nil(t, err, "list error")

	held := uint64(0)
	for _, v := range vaults {
		assert.True(t, v.HeldAmount <= v.DepositedAmount, "vault: %d held exceeds deposited", v.Id)
		if kind == v.AssetKind {
			held += v.HeldAmount
		}
	}
	assert.Equal(t, held+f.engine.FeePool(kind), f.engine.Balance(account.Custody, kind), "custody balance")
	assert.Equal(t, uint64(0), f.engine.Balance(account.InFlight, kind), "in-flight balance")
}

func returnOrBurn() []vault.Outcome {
	return []vault.Outcome{
		{Effect: vault.ReturnToCreator{Target: fixtures.Alice}},
		{Effect: vault.Burn{}},
	}
}

func TestScenarioCreateCancel(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")
	assert.Equal(t, uint64(990), d.Vault.HeldAmount, "held")
	assert.Equal(t, uint64(10), d.Fee, "fee")
	assert.Equal(t, uint64(initialBalance-1000), f.engine.Balance(fixtures.Alice, asset.Native), "after create")
	f.checkCustody(t, asset.Native)

	v, refund, err := f.engine.Cancel(fixtures.Alice, d.Vault.Id)
	assert.Nil(t, err, "cancel error")
	assert.Equal(t, uint64(990), refund, "refund")
	assert.Equal(t, vault.Cancelled, v.State, "state")
	assert.Equal(t, uint64(0), v.HeldAmount, "held after cancel")
	assert.Equal(t, uint64(initialBalance-10), f.engine.Balance(fixtures.Alice, asset.Native), "after cancel")
	assert.Equal(t, uint64(10), f.engine.FeePool(asset.Native), "fee pool")
	f.checkCustody(t, asset.Native)
}

func TestCancelRestrictedToCreator(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")

	_, _, err = f.engine.Cancel(fixtures.Bob, d.Vault.Id)
	assert.Equal(t, fault.ErrNotCreator, err, "bob cancelled")
	assert.True(t, fault.IsErrUnauthorised(err), "error class")
}

func TestScenarioReturnToCreator(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	// search for a seed whose measurement picks the first outcome
	var chosen *vault.Vault
	for seed := uint64(1); seed <= 64 && nil == chosen; seed += 1 {
		d, err := f.engine.Create(fixtures.Alice, asset.Native, 100, returnOrBurn(), vault.Criteria{FixedSeed: seed})
		assert.Nil(t, err, "create error")

		m, err := f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
		assert.Nil(t, err, "measure error")
		if 0 == m.Index {
			chosen = d.Vault
		}
	}
	if nil == chosen {
		t.Fatalf("no seed selected index 0")
	}

	v, err := f.engine.Vault(chosen.Id)
	assert.Nil(t, err, "vault error")
	assert.Equal(t, vault.Resolved, v.State, "state after measure")
	index, ok := v.Index()
	assert.True(t, ok, "index not set")
	assert.Equal(t, uint64(0), index, "index")

	before := f.engine.Balance(fixtures.Alice, asset.Native)
	p, err := f.engine.Execute(fixtures.Bob, chosen.Id, nil)
	assert.Nil(t, err, "execute error")
	assert.Equal(t, vault.ReturnToCreatorKind, p.Kind, "outcome kind")
	assert.Equal(t, uint64(99), p.Amount, "amount")
	assert.Equal(t, before+99, f.engine.Balance(fixtures.Alice, asset.Native), "creator balance")

	v, err = f.engine.Vault(chosen.Id)
	assert.Nil(t, err, "vault error")
	assert.Equal(t, vault.Settled, v.State, "state after execute")
	assert.Equal(t, uint64(0), v.HeldAmount, "held after execute")
	f.checkCustody(t, asset.Native)
}

func TestScenarioLinkedVault(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	linked, err := f.engine.Create(fixtures.Bob, asset.Native, 500, []vault.Outcome{{Effect: vault.Burn{}}}, vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create linked error")

	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{LinkedVaultId: linked.Vault.Id, FixedSeed: 2})
	assert.Nil(t, err, "create error")

	_, err = f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Equal(t, fault.ErrLinkedVaultOpen, err, "linked vault open")
	assert.True(t, fault.IsErrNotReady(err), "error class")
	assert.True(t, fault.IsRetryable(err), "should be retryable")

	v, err := f.engine.Vault(d.Vault.Id)
	assert.Nil(t, err, "vault error")
	assert.Equal(t, vault.Open, v.State, "state changed by failed measure")

	_, _, err = f.engine.Cancel(fixtures.Bob, linked.Vault.Id)
	assert.Nil(t, err, "cancel linked error")

	m, err := f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Nil(t, err, "measure error")
	assert.Equal(t, linked.Vault.Id, m.Inputs.Linked.Id, "linked id")
	assert.Equal(t, vault.Cancelled, m.Inputs.Linked.State, "linked state")
}

func TestLinkedVaultMustExist(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	_, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{LinkedVaultId: 99, FixedSeed: 2})
	assert.Equal(t, fault.ErrLinkedVaultNotFound, err, "missing linked vault")
}

func TestScenarioExecuteOpen(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")

	_, err = f.engine.Execute(fixtures.Bob, d.Vault.Id, nil)
	assert.Equal(t, fault.ErrVaultNotResolved, err, "execute open vault")
	assert.True(t, fault.IsErrState(err), "error class")
}

func TestMeasureAndExecuteOnce(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{FixedSeed: 3})
	assert.Nil(t, err, "create error")

	_, err = f.engine.Measure(fixtures.Bob, d.Vault.Id, nil)
	assert.Equal(t, fault.ErrNotCreator, err, "bob measured")

	first, err := f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Nil(t, err, "first measure error")

	_, err = f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Equal(t, fault.ErrVaultNotOpen, err, "second measure")
	assert.True(t, fault.IsErrState(err), "error class")

	index, o, err := f.engine.ResolvedOutcome(d.Vault.Id)
	assert.Nil(t, err, "resolved outcome error")
	assert.Equal(t, first.Index, index, "index changed")
	assert.Equal(t, returnOrBurn()[index], o, "outcome")

	_, _, err = f.engine.Cancel(fixtures.Alice, d.Vault.Id)
	assert.Equal(t, fault.ErrVaultNotOpen, err, "cancel after measure")

	_, err = f.engine.Execute(fixtures.Carol, d.Vault.Id, nil)
	assert.Nil(t, err, "first execute error")

	_, err = f.engine.Execute(fixtures.Carol, d.Vault.Id, nil)
	assert.Equal(t, fault.ErrVaultNotResolved, err, "second execute")

	index, _, err = f.engine.ResolvedOutcome(d.Vault.Id)
	assert.Nil(t, err, "resolved outcome error")
	assert.Equal(t, first.Index, index, "index changed after execute")
	f.checkCustody(t, asset.Native)
}

func TestConservationWithPartialTransfer(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	outcomes := []vault.Outcome{
		{Effect: vault.TransferToken{Target: fixtures.Carol, Token: fixtures.Gold, Amount: 300}},
	}
	d, err := f.engine.Create(fixtures.Alice, fixtures.Gold, 1000, outcomes, vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")

	funded, err := f.engine.Fund(fixtures.Bob, d.Vault.Id, fixtures.Gold, 500)
	assert.Nil(t, err, "fund error")
	assert.Equal(t, uint64(5), funded.Fee, "fund fee")
	assert.Equal(t, uint64(1500), funded.Vault.DepositedAmount, "deposited")
	assert.Equal(t, uint64(1485), funded.Vault.HeldAmount, "held")

	_, err = f.engine.Fund(fixtures.Bob, d.Vault.Id, asset.Native, 500)
	assert.Equal(t, fault.ErrAssetKindMismatch, err, "wrong kind")

	_, err = f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Nil(t, err, "measure error")

	_, err = f.engine.Fund(fixtures.Bob, d.Vault.Id, fixtures.Gold, 500)
	assert.Equal(t, fault.ErrVaultNotOpen, err, "fund after measure")

	p, err := f.engine.Execute(fixtures.Bob, d.Vault.Id, nil)
	assert.Nil(t, err, "execute error")
	assert.Equal(t, uint64(300), p.Amount, "amount")
	assert.Equal(t, uint64(1185), p.Remainder, "remainder")

	carol := f.engine.Balance(fixtures.Carol, fixtures.Gold)
	alice := f.engine.Balance(fixtures.Alice, fixtures.Gold) - (initialBalance - 1000)
	fees := f.engine.FeePool(fixtures.Gold)
	assert.Equal(t, uint64(300), carol, "carol received")
	assert.Equal(t, uint64(1500), fees+carol+alice, "deposited not conserved")
	f.checkCustody(t, fixtures.Gold)
}

func TestBurnAndLock(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	burn, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, []vault.Outcome{{Effect: vault.Burn{}}}, vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")
	lock, err := f.engine.Create(fixtures.Alice, asset.Native, 2000, []vault.Outcome{{Effect: vault.LockPermanently{}}}, vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")

	for _, id := range []uint64{burn.Vault.Id, lock.Vault.Id} {
		_, err := f.engine.Measure(fixtures.Alice, id, nil)
		assert.Nil(t, err, "measure error")
		_, err = f.engine.Execute(fixtures.Alice, id, nil)
		assert.Nil(t, err, "execute error")
	}

	assert.Equal(t, uint64(990), f.engine.Balance(account.BurnSink, asset.Native), "burnt")
	assert.Equal(t, uint64(1980), f.engine.Balance(account.LockSink, asset.Native), "locked")
	f.checkCustody(t, asset.Native)
}

func TestExternalDataRequired(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	outcomes := []vault.Outcome{
		{Effect: vault.ReturnToCreator{Target: fixtures.Alice}, RequiresExternalData: true},
	}
	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, outcomes, vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")
	_, err = f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Nil(t, err, "measure error")

	_, err = f.engine.Execute(fixtures.Bob, d.Vault.Id, nil)
	assert.Equal(t, fault.ErrExternalDataMissing, err, "no data")

	_, err = f.engine.Execute(fixtures.Bob, d.Vault.Id, []byte{1})
	assert.Nil(t, err, "execute error")
}

func TestOracleMeasurement(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	criteria := vault.Criteria{OracleIdentity: fixtures.Oracle, OracleFeedId: "weather", FixedSeed: 1}
	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), criteria)
	assert.Nil(t, err, "create error")

	_, err = f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Equal(t, fault.ErrOracleDataMissing, err, "no oracle data")

	m, err := f.engine.Measure(fixtures.Alice, d.Vault.Id, []byte("rain"))
	assert.Nil(t, err, "measure error")
	assert.Equal(t, []byte("rain"), m.Inputs.ExternalData, "external data")
}

func TestVerifyVault(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	_, err := f.chain.Advance()
	assert.Nil(t, err, "advance error")
	_, err = f.chain.Advance()
	assert.Nil(t, err, "advance error")

	criteria := vault.Criteria{HistoricalMarker: 1, FixedSeed: 9, IncludeCreatorIdentity: true}
	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), criteria)
	assert.Nil(t, err, "create error")

	_, err = f.engine.VerifyVault(d.Vault.Id)
	assert.Equal(t, fault.ErrVaultNotResolved, err, "verify before measure")

	m, err := f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Nil(t, err, "measure error")
	assert.Equal(t, uint64(1), m.Inputs.HistoricalMarker, "marker used")
	assert.Equal(t, uint64(3), m.Inputs.Context.Height, "context height")

	result, err := f.engine.VerifyVault(d.Vault.Id)
	assert.Nil(t, err, "verify error")
	assert.True(t, result.Match, "verification failed")
	assert.Equal(t, m.Digest, result.Derived, "derived digest")
	assert.Equal(t, m.Index, result.DerivedIdx, "derived index")
}

func TestOutcomeQueries(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")

	n, err := f.engine.OutcomeCount(d.Vault.Id)
	assert.Nil(t, err, "count error")
	assert.Equal(t, 2, n, "outcome count")

	o, err := f.engine.Outcome(d.Vault.Id, 1)
	assert.Nil(t, err, "outcome error")
	assert.Equal(t, vault.BurnKind, o.Effect.Kind(), "second outcome")

	_, err = f.engine.Outcome(d.Vault.Id, 2)
	assert.Equal(t, fault.ErrOutcomeNotFound, err, "outcome out of range")

	_, _, err = f.engine.ResolvedOutcome(d.Vault.Id)
	assert.Equal(t, fault.ErrVaultNotResolved, err, "resolved before measure")

	_, err = f.engine.Vault(99)
	assert.Equal(t, fault.ErrVaultNotFound, err, "missing vault")
	assert.True(t, fault.IsErrNotFound(err), "error class")
}

func TestListVaults(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	for _, creator := range []account.Address{fixtures.Alice, fixtures.Bob, fixtures.Alice} {
		outcomes := []vault.Outcome{{Effect: vault.ReturnToCreator{Target: creator}}}
		_, err := f.engine.Create(creator, asset.Native, 100, outcomes, vault.Criteria{FixedSeed: 1})
		assert.Nil(t, err, "create error")
	}

	all, err := f.engine.ListVaults(1, 10)
	assert.Nil(t, err, "list error")
	assert.Equal(t, 3, len(all), "all vaults")

	alice, err := f.engine.ListVaultsByCreator(fixtures.Alice, 1, 10)
	assert.Nil(t, err, "list by creator error")
	assert.Equal(t, 2, len(alice), "alice vaults")
	assert.Equal(t, uint64(1), alice[0].Id, "first id")
	assert.Equal(t, uint64(3), alice[1].Id, "second id")
}

func TestWithdrawFees(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	_, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")

	err = f.engine.WithdrawFees(fixtures.Alice, asset.Native, 5)
	assert.Equal(t, fault.ErrNotFeeRecipient, err, "alice withdrew")

	err = f.engine.WithdrawFees(fixtures.Revenue, asset.Native, 11)
	assert.Equal(t, fault.ErrInsufficientFees, err, "over withdrawal")

	err = f.engine.WithdrawFees(fixtures.Revenue, asset.Native, 4)
	assert.Nil(t, err, "withdraw error")
	assert.Equal(t, uint64(4), f.engine.Balance(fixtures.Revenue, asset.Native), "recipient balance")
	assert.Equal(t, uint64(6), f.engine.FeePool(asset.Native), "remaining pool")
	f.checkCustody(t, asset.Native)
}

func TestOperatorCommands(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	db, err := storage.OpenMemory()
	assert.Nil(t, err, "storage open error")
	defer db.Close()

	chain, err := history.New(db, "live", clock)
	assert.Nil(t, err, "history error")

	e, err := engine.New(db, engine.Options{
		Chain:        "live",
		FeeRecipient: fixtures.Revenue,
		History:      chain,
	})
	assert.Nil(t, err, "engine error")

	err = e.Issue(fixtures.Alice, asset.Native, 100)
	assert.Equal(t, fault.ErrOperatorNotPermitted, err, "issue")
	_, err = e.Advance()
	assert.Equal(t, fault.ErrOperatorNotPermitted, err, "advance")
	assert.Equal(t, uint64(0), e.Balance(fixtures.Alice, asset.Native), "balance")
}

func TestEventsAreStoredAndNotified(t *testing.T) {
	f := setup(t, nil)
	defer f.teardown()

	d, err := f.engine.Create(fixtures.Alice, asset.Native, 1000, returnOrBurn(), vault.Criteria{FixedSeed: 1})
	assert.Nil(t, err, "create error")
	_, err = f.engine.Measure(fixtures.Alice, d.Vault.Id, nil)
	assert.Nil(t, err, "measure error")
	_, err = f.engine.Execute(fixtures.Bob, d.Vault.Id, nil)
	assert.Nil(t, err, "execute error")

	// failures emit nothing
	_, err = f.engine.Execute(fixtures.Bob, d.Vault.Id, nil)
	assert.NotNil(t, err, "second execute")

	expected := []event.Kind{
		event.AssetIssued, event.AssetIssued, event.AssetIssued, event.AssetIssued,
		event.VaultCreated, event.VaultMeasured, event.VaultExecuted,
	}

	stored, err := f.engine.Events(1, 100)
	assert.Nil(t, err, "events error")
	assert.Equal(t, len(expected), len(stored), "stored count")

	queue := f.queue.Chan()
	for i, kind := range expected {
		received := <-queue
		e := received.Item.(*event.Event)
		assert.Equal(t, kind, e.Kind, "notified kind: %d", i)
		assert.Equal(t, uint64(i+1), e.Sequence, "notified sequence: %d", i)
		if i < len(stored) {
			assert.Equal(t, kind, stored[i].Kind, "stored kind: %d", i)
			assert.Equal(t, e.Id, stored[i].Id, "stored id: %d", i)
		}
	}

	measured := stored[5]
	assert.NotNil(t, measured.Index, "measured index")
	assert.NotNil(t, measured.Digest, "measured digest")

	info := f.engine.Info()
	assert.Equal(t, "testing", info.Chain, "chain")
	assert.Equal(t, uint64(1), info.LastVaultId, "last vault")
	assert.Equal(t, uint64(len(expected)), info.LastEvent, "last event")
	assert.Equal(t, uint64(100), info.FeeRate, "fee rate")
}
