// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"math/bits"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/fee"
	"github.com/bitmark-inc/vaultd/ledger"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/util"
)

// key of the last assigned id in the counters pool
var lastIdKey = []byte("vault")

// Store - the arena of vault records
type Store struct {
	log      *logger.L
	balances ledger.Ledger
	fees     *fee.Ledger
}

// Deposit - result of create or fund
type Deposit struct {
	Vault *Vault
	Gross uint64
	Net   uint64
	Fee   uint64
}

// NewStore - create a store over a ledger and fee ledger
func NewStore(balances ledger.Ledger, fees *fee.Ledger) *Store {
	return &Store{
		log:      logger.New("vault"),
		balances: balances,
		fees:     fees,
	}
}

// LastId - highest assigned id, zero if none
func (s *Store) LastId(trx storage.Reader) uint64 {
	n, _ := trx.GetN(storage.Counters, lastIdKey)
	return n
}

// Create - take a deposit from the creator into custody and record an Open vault
func (s *Store) Create(trx storage.Access, creator account.Address, kind asset.Kind, amount uint64, outcomes []Outcome, criteria Criteria, now time.Time) (*Deposit, error) {
	if err := creator.Validate(); nil != err {
		return nil, err
	}
	if err := kind.Validate(); nil != err {
		return nil, err
	}
	if 0 == amount {
		return nil, fault.ErrZeroAmount
	}
	if 0 == len(outcomes) {
		return nil, fault.ErrNoOutcomes
	}
	if len(outcomes) > MaximumOutcomes {
		return nil, fault.ErrTooManyOutcomes
	}
	for _, o := range outcomes {
		if err := ValidateOutcome(o, kind, creator); nil != err {
			return nil, err
		}
	}
	if err := criteria.Validate(); nil != err {
		return nil, err
	}

	lastId := s.LastId(trx)
	if criteria.LinkedVaultId > lastId {
		return nil, fault.ErrLinkedVaultNotFound
	}

	if err := s.balances.Transfer(trx, creator, account.Custody, kind, amount); nil != err {
		return nil, err
	}
	net, feeAmount, err := s.fees.TakeFee(trx, kind, amount)
	if nil != err {
		return nil, err
	}

	v := &Vault{
		Id:              lastId + 1,
		State:           Open,
		Creator:         creator,
		AssetKind:       kind,
		DepositedAmount: amount,
		HeldAmount:      net,
		Outcomes:        append([]Outcome{}, outcomes...),
		Criteria:        criteria,
		CreatedAt:       now.UTC(),
	}
	trx.PutN(storage.Counters, lastIdKey, v.Id)
	trx.Put(storage.VaultCreators, creatorKey(creator, v.Id), []byte{})
	s.Put(trx, v)

	s.log.Infof("create: %d  creator: %s  kind: %s  gross: %d  fee: %d", v.Id, creator, kind, amount, feeAmount)
	return &Deposit{
		Vault: v,
		Gross: amount,
		Net:   net,
		Fee:   feeAmount,
	}, nil
}

// Fund - add a deposit from any account to an Open vault
func (s *Store) Fund(trx storage.Access, funder account.Address, id uint64, kind asset.Kind, amount uint64) (*Deposit, error) {
	v, err := s.Get(trx, id)
	if nil != err {
		return nil, err
	}
	if Open != v.State {
		return nil, fault.ErrVaultNotOpen
	}
	if err := funder.Validate(); nil != err {
		return nil, err
	}
	if kind != v.AssetKind {
		return nil, fault.ErrAssetKindMismatch
	}
	if 0 == amount {
		return nil, fault.ErrZeroAmount
	}

	deposited, carry := bits.Add64(v.DepositedAmount, amount, 0)
	if 0 != carry {
		return nil, fault.ErrAmountOverflow
	}

	if err := s.balances.Transfer(trx, funder, account.Custody, kind, amount); nil != err {
		return nil, err
	}
	net, feeAmount, err := s.fees.TakeFee(trx, kind, amount)
	if nil != err {
		return nil, err
	}

	v.DepositedAmount = deposited
	v.HeldAmount += net
	s.Put(trx, v)

	s.log.Infof("fund: %d  funder: %s  gross: %d  fee: %d  held: %d", id, funder, amount, feeAmount, v.HeldAmount)
	return &Deposit{
		Vault: v,
		Gross: amount,
		Net:   net,
		Fee:   feeAmount,
	}, nil
}

// Cancel - return the held balance of an Open vault to its creator
func (s *Store) Cancel(trx storage.Access, caller account.Address, id uint64) (*Vault, uint64, error) {
	v, err := s.Get(trx, id)
	if nil != err {
		return nil, 0, err
	}
	if caller != v.Creator {
		return nil, 0, fault.ErrNotCreator
	}
	if Open != v.State {
		return nil, 0, fault.ErrVaultNotOpen
	}

	refund := v.HeldAmount
	if 0 != refund {
		err := s.balances.Transfer(trx, account.Custody, v.Creator, v.AssetKind, refund)
		if nil != err {
			return nil, 0, err
		}
	}

	v.State = Cancelled
	v.HeldAmount = 0
	s.Put(trx, v)

	s.log.Infof("cancel: %d  refund: %d", id, refund)
	return v, refund, nil
}

// Get - read and decode a vault
func (s *Store) Get(trx storage.Reader, id uint64) (*Vault, error) {
	if 0 == id {
		return nil, fault.ErrVaultNotFound
	}
	record := trx.Get(storage.Vaults, IdToKey(id))
	if nil == record {
		return nil, fault.ErrVaultNotFound
	}
	v, err := Unpack(record)
	if nil != err {
		logger.Panicf("vault: %d  corrupt record: %x  error: %s", id, record, err)
	}
	return v, nil
}

// Put - write a vault record
func (s *Store) Put(trx storage.Access, v *Vault) {
	trx.Put(storage.Vaults, IdToKey(v.Id), v.Pack())
}

// List - vaults in id order starting at an id
func (s *Store) List(db *storage.DB, start uint64, count int) ([]*Vault, error) {
	items, err := db.Fetch(storage.Vaults, nil, IdToKey(start), count)
	if nil != err {
		return nil, err
	}
	vaults := make([]*Vault, 0, len(items))
	for _, item := range items {
		v, err := Unpack(item.Value)
		if nil != err {
			logger.Panicf("vault: %x  corrupt record: %x  error: %s", item.Key, item.Value, err)
		}
		vaults = append(vaults, v)
	}
	return vaults, nil
}

// ListByCreator - vaults of one creator in id order starting at an id
func (s *Store) ListByCreator(db *storage.DB, creator account.Address, start uint64, count int) ([]*Vault, error) {
	prefix := util.Packed{}.AppendBytes(creator.Bytes())
	items, err := db.Fetch(storage.VaultCreators, prefix, IdToKey(start), count)
	if nil != err {
		return nil, err
	}
	vaults := make([]*Vault, 0, len(items))
	for _, item := range items {
		if len(item.Key) != len(prefix)+8 {
			continue
		}
		v, err := s.Get(db, KeyToId(item.Key[len(prefix):]))
		if nil != err {
			return nil, err
		}
		vaults = append(vaults, v)
	}
	return vaults, nil
}

func creatorKey(creator account.Address, id uint64) []byte {
	key := util.Packed{}.AppendBytes(creator.Bytes())
	return append(key, IdToKey(id)...)
}
