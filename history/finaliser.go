// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history

import (
	"time"
)

// Finaliser - background process that advances a chain periodically
type Finaliser struct {
	chain    *Chain
	interval time.Duration
}

// NewFinaliser - create the background process
func NewFinaliser(chain *Chain, interval time.Duration) *Finaliser {
	return &Finaliser{
		chain:    chain,
		interval: interval,
	}
}

// Run - wait for each tick and finalise a marker
func (f *Finaliser) Run(args interface{}, shutdown <-chan struct{}) {
	log := f.chain.log
	log.Infof("finaliser starting, interval: %s", f.interval)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			if _, err := f.chain.Advance(); nil != err {
				log.Errorf("advance error: %s", err)
			}
		}
	}
	log.Info("finaliser stopped")
}
