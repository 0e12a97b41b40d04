// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entropy - derive the digest that resolves a vault
//
// Gather collects every declared source into an Inputs record, Derive
// folds the record into a digest and Select maps the digest onto an
// outcome index. Derive and Select are pure so that a stored Inputs
// record reproduces the same result at any later time.
//
// the digest is a chain: d0 = H("seed", fixedSeed) and each present
// source s gives d = H(d, tag(s), fields(s)), sources are folded in a
// fixed order: history, linked vault, oracle, creator, vault, context
//
// the result is predictable by anyone who knows every input in
// advance; it is deterministic and auditable, not a secure random
// source
package entropy
