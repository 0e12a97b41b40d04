// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/util"
	"github.com/bitmark-inc/vaultd/vault"
)

// records fetched per database read
const pendingBatch = 100

// Pending - an external invocation parked by Settle whose outcome was
// never committed
type Pending struct {
	Original *vault.Vault // the Resolved record as it was before Settle
	Parked   uint64       // balance held by the in-flight account
	Value    uint64       // amount attached to the invocation
}

// staged in the same transaction that parks the balance
func putPending(trx storage.Access, original *vault.Vault, p *Plan) {
	record := util.Packed{}.
		AppendUint64(original.HeldAmount).
		AppendUint64(p.Amount).
		AppendBytes(original.Pack())
	trx.Put(storage.Invocations, vault.IdToKey(original.Id), record)
}

func deletePending(trx storage.Access, id uint64) {
	trx.Delete(storage.Invocations, vault.IdToKey(id))
}

func unpackPending(record []byte) (*Pending, error) {
	u := util.NewUnpacker(record)
	parked := u.Uint64()
	value := u.Uint64()
	packed := u.Bytes()
	if err := u.Done(); nil != err {
		return nil, err
	}
	original, err := vault.Unpack(packed)
	if nil != err {
		return nil, err
	}
	return &Pending{
		Original: original,
		Parked:   parked,
		Value:    value,
	}, nil
}

// ListPending - invocations still parked, in vault id order
func (d *Dispatcher) ListPending(db *storage.DB) ([]*Pending, error) {
	pending := make([]*Pending, 0)
	start := uint64(0)
	for {
		items, err := db.Fetch(storage.Invocations, nil, vault.IdToKey(start), pendingBatch)
		if nil != err {
			return nil, err
		}
		for _, item := range items {
			pi, err := unpackPending(item.Value)
			if nil != err {
				d.log.Errorf("pending: %x  corrupt record: %x  error: %s", item.Key, item.Value, err)
				return nil, err
			}
			pending = append(pending, pi)
			start = vault.KeyToId(item.Key) + 1
		}
		if len(items) < pendingBatch {
			return pending, nil
		}
	}
}

// Restore - return a parked balance to custody and drop its record,
// the caller puts back the original vault
func (d *Dispatcher) Restore(trx storage.Access, pi *Pending) error {
	if err := d.move(trx, account.InFlight, account.Custody, pi.Original.AssetKind, pi.Parked); nil != err {
		return err
	}
	deletePending(trx, pi.Original.Id)
	d.log.Warnf("restore vault: %d  parked: %d", pi.Original.Id, pi.Parked)
	return nil
}
