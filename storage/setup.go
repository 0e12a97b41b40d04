// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/fault"
)

// Pool - key prefix of a pool
type Pool byte

// all pools - see doc.go for the key layout
const (
	Vaults        Pool = 'V'
	Measurements  Pool = 'M'
	VaultCreators Pool = 'C'
	Counters      Pool = 'N'
	Balances      Pool = 'B'
	FeePools      Pool = 'F'
	History       Pool = 'H'
	Events        Pool = 'E'
	Invocations   Pool = 'I'
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// Reader - read access to committed or staged data
type Reader interface {
	Get(Pool, []byte) []byte
	GetN(Pool, []byte) (uint64, bool)
	Has(Pool, []byte) bool
}

// Access - read and write access, satisfied by a Transaction
type Access interface {
	Reader
	Put(Pool, []byte, []byte)
	PutN(Pool, []byte, uint64)
	Delete(Pool, []byte)
}

// DB - handle to the database
type DB struct {
	sync.RWMutex
	log   *logger.L
	db    *leveldb.DB
	cache *readCache
}

// Open - open up the database connection
func Open(name string, readOnly bool) (*DB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - database held entirely in memory, for testing
func OpenMemory() (*DB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*DB, error) {
	log := logger.New("storage")
	if nil == log {
		db.Close()
		return nil, fault.ErrInvalidLoggerChannel
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case 0 == version && !readOnly:
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			db.Close()
			return nil, err
		}
	case currentDBVersion != version:
		log.Criticalf("database version: %d  current version: %d", version, currentDBVersion)
		db.Close()
		return nil, fault.ErrDatabaseVersion
	}

	return &DB{
		log:   log,
		db:    db,
		cache: newReadCache(),
	}, nil
}

// Close - close the database connection
func (d *DB) Close() {
	d.Lock()
	defer d.Unlock()
	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
	d.cache.clear()
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if 4 != len(versionValue) {
		return 0, fault.ErrDatabaseVersion
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))
	return db.Put(versionKey, currentVersion, nil)
}

// prepend the prefix onto the key
func prefixKey(pool Pool, key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = byte(pool)
	return append(prefixedKey, key...)
}

// Get - read a committed value for a given key
//
// returns nil if the key is not present
func (d *DB) Get(pool Pool, key []byte) []byte {
	d.RLock()
	defer d.RUnlock()
	return d.get(prefixKey(pool, key))
}

// must hold read lock
func (d *DB) get(prefixedKey []byte) []byte {
	if value, found := d.cache.get(prefixedKey); found {
		return value
	}
	if nil == d.db {
		return nil
	}
	value, err := d.db.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("storage.Get", err)
	d.cache.set(prefixedKey, value)
	return value
}

// GetN - read a committed record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
func (d *DB) GetN(pool Pool, key []byte) (uint64, bool) {
	return decodeN(key, d.Get(pool, key))
}

// Has - check if a committed key exists
func (d *DB) Has(pool Pool, key []byte) bool {
	return nil != d.Get(pool, key)
}

func decodeN(key []byte, buffer []byte) (uint64, bool) {
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("storage.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

func encodeN(value uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer
}
