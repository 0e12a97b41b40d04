// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/vaultd/history"
	"github.com/bitmark-inc/vaultd/rpc/node"
)

// Info - node status
func (client *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := client.call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Events - one page of stored events
func (client *Client) Events(start uint64, count int) (*node.EventsReply, error) {
	args := node.EventsArguments{
		Start: start,
		Count: count,
	}

	var reply node.EventsReply
	if err := client.call("Node.Events", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Advance - finalise a history marker
func (client *Client) Advance() (*history.Marker, error) {
	var reply history.Marker
	if err := client.call("Node.Advance", &node.AdvanceArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
