// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - chain of finalised history markers
//
// each marker h has digest SHA3(digest(h-1) ++ h ++ timestamp), the
// genesis marker at height zero is derived from the chain name and is
// never used as an entropy source
package history

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/digest"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/storage"
)

// Source - read access to finalised markers
type Source interface {
	// next unfinalised height, every lower height is final
	Height() uint64
	DigestAt(height uint64) (digest.Digest, bool)
}

// Marker - one finalised point in history
type Marker struct {
	Height    uint64        `json:"height"`
	Digest    digest.Digest `json:"digest"`
	Timestamp time.Time     `json:"timestamp"`
}

// key of the next height in the counters pool
var heightKey = []byte("history")

const recordLength = digest.Length + 8

// Chain - a Source persisted in the history pool
type Chain struct {
	sync.RWMutex
	log      *logger.L
	db       *storage.DB
	now      func() time.Time
	height   uint64
	previous digest.Digest
}

// New - load the chain, creating the genesis marker on an empty database
func New(db *storage.DB, chainName string, now func() time.Time) (*Chain, error) {
	c := &Chain{
		log: logger.New("history"),
		db:  db,
		now: now,
	}

	height, found := db.GetN(storage.Counters, heightKey)
	if !found {
		genesis := new(digest.Builder).String("vaultd genesis").String(chainName).Sum()
		trx := db.Begin()
		trx.Put(storage.History, heightToKey(0), packRecord(genesis, time.Unix(0, 0)))
		trx.PutN(storage.Counters, heightKey, 1)
		if err := trx.Commit(); nil != err {
			return nil, err
		}
		c.log.Infof("genesis: %s", genesis)
		height = 1
	}

	c.height = height
	previous, ok := c.DigestAt(height - 1)
	if !ok {
		c.log.Criticalf("missing marker at height: %d", height-1)
		return nil, fault.ErrRecordCorrupt
	}
	c.previous = previous
	c.log.Infof("next height: %d  previous: %s", c.height, c.previous)
	return c, nil
}

// Height - next unfinalised height
func (c *Chain) Height() uint64 {
	c.RLock()
	defer c.RUnlock()
	return c.height
}

// DigestAt - digest of a finalised marker
func (c *Chain) DigestAt(height uint64) (digest.Digest, bool) {
	m, ok := c.Marker(height)
	return m.Digest, ok
}

// Marker - full finalised marker
func (c *Chain) Marker(height uint64) (Marker, bool) {
	c.RLock()
	limit := c.height
	c.RUnlock()

	if height >= limit {
		return Marker{}, false
	}
	record := c.db.Get(storage.History, heightToKey(height))
	if recordLength != len(record) {
		logger.Panicf("history: height: %d  corrupt record: %x", height, record)
	}
	m := Marker{
		Height:    height,
		Timestamp: time.Unix(0, int64(binary.BigEndian.Uint64(record[digest.Length:]))).UTC(),
	}
	copy(m.Digest[:], record[:digest.Length])
	return m, true
}

// Advance - finalise the next marker
func (c *Chain) Advance() (Marker, error) {
	c.Lock()
	defer c.Unlock()

	timestamp := c.now()
	m := Marker{
		Height:    c.height,
		Digest:    markerDigest(c.previous, c.height, timestamp),
		Timestamp: timestamp.UTC(),
	}

	trx := c.db.Begin()
	trx.Put(storage.History, heightToKey(m.Height), packRecord(m.Digest, timestamp))
	trx.PutN(storage.Counters, heightKey, m.Height+1)
	if err := trx.Commit(); nil != err {
		return Marker{}, err
	}

	c.height = m.Height + 1
	c.previous = m.Digest
	c.log.Debugf("finalised height: %d  digest: %s", m.Height, m.Digest)
	return m, nil
}

func markerDigest(previous digest.Digest, height uint64, timestamp time.Time) digest.Digest {
	return new(digest.Builder).
		Digest(previous).
		Uint64(height).
		Uint64(uint64(timestamp.UnixNano())).
		Sum()
}

func heightToKey(height uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, height)
	return key
}

func packRecord(d digest.Digest, timestamp time.Time) []byte {
	record := make([]byte, recordLength)
	copy(record, d[:])
	binary.BigEndian.PutUint64(record[digest.Length:], uint64(timestamp.UnixNano()))
	return record
}
