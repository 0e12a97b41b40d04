// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vault - vault records and the store that owns their early life
//
// a vault holds a balance of one asset kind in custody together with an
// ordered list of mutually exclusive outcomes; the store creates,
// funds and cancels vaults while they are Open, measurement and
// execution are carried out by the engine
//
// ids are assigned from a counter starting at one and are never reused
package vault
