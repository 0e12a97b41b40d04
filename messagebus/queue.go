// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/bitmark-inc/vaultd/counter"
	"github.com/bitmark-inc/vaultd/event"
)

// DefaultSize - queue capacity used by the daemon
const DefaultSize = 1000

// Message - an item with its origin
type Message struct {
	From string
	Item interface{}
}

// Queue - bounded, non-blocking queue
type Queue struct {
	queue   chan Message
	dropped counter.Counter
}

// New - create a queue
func New(size int) *Queue {
	return &Queue{
		queue: make(chan Message, size),
	}
}

// Send - queue an item, returns false if it was dropped
func (q *Queue) Send(from string, item interface{}) bool {
	select {
	case q.queue <- Message{From: from, Item: item}:
		return true
	default:
		q.dropped.Increment()
		return false
	}
}

// Notify - queue an engine event
func (q *Queue) Notify(e *event.Event) {
	q.Send("engine", e)
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.queue
}

// Dropped - number of items discarded because the queue was full
func (q *Queue) Dropped() uint64 {
	return q.dropped.Uint64()
}
