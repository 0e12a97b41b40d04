// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/vaultd/fault"
)

// maximum records returned by one fetch
const maximumFetch = 1000

// Element - a binary data item, the key has the pool prefix removed
type Element struct {
	Key   []byte
	Value []byte
}

// Fetch - read up to count committed records whose keys begin with
// prefix, starting at the first key >= prefix ++ start
func (d *DB) Fetch(pool Pool, prefix []byte, start []byte, count int) ([]Element, error) {
	if count <= 0 || count > maximumFetch {
		return nil, fault.ErrInvalidCount
	}

	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil, fault.ErrNotInitialised
	}

	searchRange := ldb_util.BytesPrefix(prefixKey(pool, prefix))
	searchRange.Start = prefixKey(pool, append(append([]byte{}, prefix...), start...))

	iter := d.db.NewIterator(searchRange, nil)
	defer iter.Release()

	results := make([]Element, 0, count)
	for len(results) < count && iter.Next() {
		key := iter.Key()
		value := iter.Value()

		// iterator reuses its buffers
		item := Element{
			Key:   make([]byte, len(key)-1),
			Value: make([]byte, len(value)),
		}
		copy(item.Key, key[1:])
		copy(item.Value, value)
		results = append(results, item)
	}
	return results, iter.Error()
}
