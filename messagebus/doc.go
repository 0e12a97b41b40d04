// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - bounded queue carrying engine notifications to
// the background publisher
//
// sending never blocks an operation: when the queue is full the
// message is dropped and counted, the event itself is already stored
package messagebus
