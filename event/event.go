// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - notification records of every state change
//
// events are written in the same transaction as the change they
// describe, so the stored sequence is exactly the committed history
package event

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/digest"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

// Kind - type of notification
type Kind string

// all kinds
const (
	VaultCreated      Kind = "VaultCreated"
	VaultFunded       Kind = "VaultFunded"
	VaultMeasured     Kind = "VaultMeasured"
	VaultExecuted     Kind = "VaultExecuted"
	VaultCancelled    Kind = "VaultCancelled"
	ExecutionReverted Kind = "ExecutionReverted"
	FeesWithdrawn     Kind = "FeesWithdrawn"
	AssetIssued       Kind = "AssetIssued"
)

// Event - one notification
//
// only the fields relevant to the kind are set
type Event struct {
	Id          uuid.UUID         `json:"id"`
	Sequence    uint64            `json:"sequence"`
	Kind        Kind              `json:"kind"`
	Timestamp   time.Time         `json:"timestamp"`
	VaultId     uint64            `json:"vaultId,omitempty"`
	Account     account.Address   `json:"account,omitempty"`
	Asset       asset.Kind        `json:"asset"`
	Amount      uint64            `json:"amount,omitempty"`
	Fee         uint64            `json:"fee,omitempty"`
	Index       *uint64           `json:"index,omitempty"`
	Digest      *digest.Digest    `json:"digest,omitempty"`
	OutcomeKind vault.OutcomeKind `json:"outcomeKind,omitempty"`
	Reason      string            `json:"reason,omitempty"`
}

// key of the last sequence in the counters pool
var sequenceKey = []byte("event")

// Record - assign id and sequence and stage the event
func Record(trx storage.Access, e *Event) error {
	last, _ := trx.GetN(storage.Counters, sequenceKey)
	e.Sequence = last + 1
	e.Id = uuid.New()

	data, err := json.Marshal(e)
	if nil != err {
		return err
	}
	trx.PutN(storage.Counters, sequenceKey, e.Sequence)
	trx.Put(storage.Events, sequenceToKey(e.Sequence), data)
	return nil
}

// Fetch - committed events in sequence order starting at a sequence
func Fetch(db *storage.DB, start uint64, count int) ([]*Event, error) {
	items, err := db.Fetch(storage.Events, nil, sequenceToKey(start), count)
	if nil != err {
		return nil, err
	}
	events := make([]*Event, 0, len(items))
	for _, item := range items {
		e := &Event{}
		if err := json.Unmarshal(item.Value, e); nil != err {
			logger.Panicf("event: %x  corrupt record: %q  error: %s", item.Key, item.Value, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Last - highest committed sequence
func Last(trx storage.Reader) uint64 {
	n, _ := trx.GetN(storage.Counters, sequenceKey)
	return n
}

func sequenceToKey(sequence uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)
	return key
}
