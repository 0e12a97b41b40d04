// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/fixtures"
	"github.com/bitmark-inc/vaultd/ledger"
	"github.com/bitmark-inc/vaultd/storage"
)

func setup(t *testing.T) (*storage.DB, *ledger.Balances) {
	fixtures.SetupTestLogger()
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return db, ledger.New()
}

func teardown(db *storage.DB) {
	db.Close()
	fixtures.TeardownTestLogger()
}

func TestIssueAndTransfer(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	trx := db.Begin()
	err := l.Issue(trx, fixtures.Alice, asset.Native, 500)
	assert.Nil(t, err, "issue")
	err = l.Transfer(trx, fixtures.Alice, fixtures.Bob, asset.Native, 200)
	assert.Nil(t, err, "transfer")
	assert.Nil(t, trx.Commit(), "commit")

	assert.Equal(t, uint64(300), l.Balance(db, fixtures.Alice, asset.Native), "alice")
	assert.Equal(t, uint64(200), l.Balance(db, fixtures.Bob, asset.Native), "bob")
	assert.Equal(t, uint64(0), l.Balance(db, fixtures.Bob, fixtures.Gold), "kinds are separate")
}

func TestInsufficientBalance(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	trx := db.Begin()
	assert.Nil(t, l.Issue(trx, fixtures.Alice, fixtures.Gold, 10), "issue")

	err := l.Transfer(trx, fixtures.Alice, fixtures.Bob, fixtures.Gold, 11)
	assert.Equal(t, fault.ErrInsufficientBalance, err, "overdraw")
	assert.Equal(t, uint64(10), l.Balance(trx, fixtures.Alice, fixtures.Gold), "balance changed by failed debit")
	assert.Equal(t, uint64(0), l.Balance(trx, fixtures.Bob, fixtures.Gold), "credited by failed transfer")
}

func TestDebitToZeroRemovesRecord(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	trx := db.Begin()
	assert.Nil(t, l.Credit(trx, fixtures.Carol, asset.Native, 7), "credit")
	assert.Nil(t, l.Debit(trx, fixtures.Carol, asset.Native, 7), "debit")
	assert.False(t, trx.Has(storage.Balances, ledger.Key(fixtures.Carol, asset.Native)), "record kept")
}

func TestZeroAndOverflow(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	trx := db.Begin()
	assert.Equal(t, fault.ErrZeroAmount, l.Credit(trx, fixtures.Alice, asset.Native, 0), "zero credit")
	assert.Equal(t, fault.ErrZeroAmount, l.Debit(trx, fixtures.Alice, asset.Native, 0), "zero debit")

	assert.Nil(t, l.Credit(trx, fixtures.Alice, asset.Native, ^uint64(0)), "maximum credit")
	assert.Equal(t, fault.ErrAmountOverflow, l.Credit(trx, fixtures.Alice, asset.Native, 1), "overflow")
}

func TestIssueRejectsSystemAccount(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	trx := db.Begin()
	err := l.Issue(trx, account.Custody, asset.Native, 1)
	assert.Equal(t, fault.ErrReservedAccount, err, "issue to custody")
}
