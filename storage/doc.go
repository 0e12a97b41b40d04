// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain a set of pools in a single leveldb database, each pool is
// distinguished by a one byte key prefix (len is a varint):
//
//   Vaults         id(8 BE)                  - packed vault record
//   Measurements   id(8 BE)                  - packed entropy inputs of a measured vault
//   VaultCreators  len ++ creator ++ id(8 BE) - (empty) index of vaults by creator
//   Counters       name                      - uint64 counters (next vault id, sequences)
//   Balances       len ++ account ++ kind    - uint64 ledger balance
//   FeePools       asset kind                - uint64 accumulated fees
//   History        height(8 BE)              - marker digest ++ timestamp
//   Events         sequence(8 BE)            - JSON notification record
//   Invocations    id(8 BE)                  - parked ++ value ++ packed vault before Settle
//
// all writes go through a Transaction, which stages them in a leveldb
// batch so that an operation either writes all of its changes or none
package storage
