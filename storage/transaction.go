// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/vaultd/fault"
)

// Transaction - a set of staged writes
//
// reads through a transaction see its own staged writes, nothing is
// visible to other readers until Commit
type Transaction struct {
	db     *DB
	batch  *leveldb.Batch
	staged map[string]stagedItem
	done   bool
}

type stagedItem struct {
	value   []byte
	deleted bool
}

// Begin - start a new transaction
func (d *DB) Begin() *Transaction {
	return &Transaction{
		db:     d,
		batch:  new(leveldb.Batch),
		staged: make(map[string]stagedItem),
	}
}

// Get - read a value, staged writes take precedence
func (t *Transaction) Get(pool Pool, key []byte) []byte {
	if item, ok := t.staged[string(prefixKey(pool, key))]; ok {
		if item.deleted {
			return nil
		}
		return item.value
	}
	return t.db.Get(pool, key)
}

// GetN - read a record and decode first 8 bytes as big endian uint64
func (t *Transaction) GetN(pool Pool, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(pool, key))
}

// Has - check if a key exists
func (t *Transaction) Has(pool Pool, key []byte) bool {
	return nil != t.Get(pool, key)
}

// Put - stage a key/value bytes pair
func (t *Transaction) Put(pool Pool, key []byte, value []byte) {
	k := prefixKey(pool, key)
	v := make([]byte, len(value))
	copy(v, value)
	t.batch.Put(k, v)
	t.staged[string(k)] = stagedItem{value: v}
}

// PutN - stage a uint64 value as 8 byte big endian
func (t *Transaction) PutN(pool Pool, key []byte, value uint64) {
	t.Put(pool, key, encodeN(value))
}

// Delete - stage removal of a key
func (t *Transaction) Delete(pool Pool, key []byte) {
	k := prefixKey(pool, key)
	t.batch.Delete(k)
	t.staged[string(k)] = stagedItem{deleted: true}
}

// Commit - write all staged changes atomically
func (t *Transaction) Commit() error {
	if t.done {
		return fault.ErrNotInitialised
	}
	t.done = true

	d := t.db
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return fault.ErrNotInitialised
	}
	if err := d.db.Write(t.batch, nil); nil != err {
		d.log.Errorf("commit of %d items failed: %s", len(t.staged), err)
		return err
	}
	for k := range t.staged {
		d.cache.remove([]byte(k))
	}
	return nil
}

// Abort - discard all staged changes
func (t *Transaction) Abort() {
	t.done = true
	t.batch.Reset()
	t.staged = nil
}
