// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"encoding/binary"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/zmqutil"
)

// Invocation - an external call request
type Invocation struct {
	VaultId uint64
	Target  account.Address
	Payload []byte
	Asset   asset.Kind
	Value   uint64
}

// Invoker - boundary to external targets
//
// Invoke is called without any engine lock held and may call back
// into the engine
//
// delivery is at least once: an error, including a timeout after the
// target has acted, reverts the vault and a later Execute calls again
// with the same vault id, so targets must treat the vault id as an
// idempotency key
type Invoker interface {
	Invoke(Invocation) error
}

// Accept - an Invoker for targets that are plain accounts
//
// every call succeeds, the attached value is simply credited
type Accept struct{}

// Invoke - accept the call
func (Accept) Invoke(Invocation) error {
	return nil
}

// reply frames from an executor
const (
	replyOk    = "ok"
	replyError = "error"
)

// Remote - forward invocations to an executor over a CURVE REQ socket
//
// request frames:  "invoke" vault-id(8) target payload kind value(8)
// reply frames:    "ok"  or  "error" message
//
// a timed out request counts as a rejection although the executor may
// have acted, so an executor that already carried out a vault id must
// reply "ok" to a repeat without acting again
type Remote struct {
	log    *logger.L
	client *zmqutil.Client
}

// NewRemote - connect to an executor
func NewRemote(hostPort string, serverPublicKey []byte, privateKey []byte, publicKey []byte, timeout time.Duration) (*Remote, error) {
	client, err := zmqutil.NewClient(privateKey, publicKey, timeout)
	if nil != err {
		return nil, err
	}
	if err := client.Connect(hostPort, serverPublicKey); nil != err {
		return nil, err
	}
	log := logger.New("invoker")
	log.Infof("executor: %s", client)
	return &Remote{
		log:    log,
		client: client,
	}, nil
}

// Invoke - send the call and wait for the executor to accept or reject it
func (r *Remote) Invoke(call Invocation) error {
	reply, err := r.client.Request(requestFrames(call)...)
	if nil != err {
		r.log.Errorf("vault: %d  request error: %s  executor may have acted", call.VaultId, err)
		return fault.ErrInvocationFailed
	}

	if len(reply) >= 1 && replyOk == string(reply[0]) {
		r.log.Infof("vault: %d  target: %s  accepted", call.VaultId, call.Target)
		return nil
	}
	if len(reply) >= 2 && replyError == string(reply[0]) {
		r.log.Warnf("vault: %d  target: %s  rejected: %s", call.VaultId, call.Target, reply[1])
	} else {
		r.log.Errorf("vault: %d  malformed reply: %x", call.VaultId, reply)
	}
	return fault.ErrInvocationFailed
}

// every attempt for a vault sends the same frames
func requestFrames(call Invocation) [][]byte {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, call.VaultId)
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, call.Value)

	return [][]byte{
		[]byte("invoke"),
		id,
		call.Target.Bytes(),
		call.Payload,
		call.Asset.Bytes(),
		value,
	}
}

// Close - disconnect from the executor
func (r *Remote) Close() error {
	return r.client.Close()
}
