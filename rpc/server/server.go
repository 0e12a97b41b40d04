// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register every RPC service
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/counter"
	"github.com/bitmark-inc/vaultd/engine"
	"github.com/bitmark-inc/vaultd/rpc/ledger"
	"github.com/bitmark-inc/vaultd/rpc/node"
	"github.com/bitmark-inc/vaultd/rpc/vaults"
)

// Create - an RPC server with the Vaults, Ledger and Node services
func Create(log *logger.L, version string, rpcCount *counter.Counter, e *engine.Engine) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(vaults.New(log, e))
	_ = server.Register(ledger.New(log, e))
	_ = server.Register(node.New(log, start, version, rpcCount, e))

	return server
}
