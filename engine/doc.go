// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package engine - the public operation surface of the vault system
//
// mutating operations are serialised by one lock and each runs in a
// single storage transaction: on any error nothing is committed
//
// the only operation that releases the lock part way is an execution
// that invokes an external target: the vault is committed as Settled
// with its balance parked before the call and the result of the call
// is applied in a second transaction
//
// every successful mutation stores one event in the same transaction
// and passes it to the notifier after commit
package engine
