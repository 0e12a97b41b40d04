// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vaultd/background"
)

type ticker struct {
	count    int64
	finished int64
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	step := args.(int64)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&state.count, step)
		}
	}
	atomic.StoreInt64(&state.finished, 1)
}

func TestStartStop(t *testing.T) {
	proc1 := &ticker{}
	proc2 := &ticker{}

	p := background.Start(background.Processes{proc1, proc2}, int64(3))
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int64(1), atomic.LoadInt64(&proc1.finished), "first process did not finish")
	assert.Equal(t, int64(1), atomic.LoadInt64(&proc2.finished), "second process did not finish")
	assert.True(t, atomic.LoadInt64(&proc1.count) > 0, "first process did not run")
	assert.Equal(t, int64(0), atomic.LoadInt64(&proc1.count)%3, "args not passed")

	// counts are frozen after stop
	c := atomic.LoadInt64(&proc2.count)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, c, atomic.LoadInt64(&proc2.count), "process still running")
}

func TestDoubleStop(t *testing.T) {
	p := background.Start(background.Processes{&ticker{}}, int64(1))
	p.Stop()
	p.Stop()
}
