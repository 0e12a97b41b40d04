// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast engine events to zmq subscribers
package publish

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/messagebus"
	"github.com/bitmark-inc/vaultd/zmqutil"
)

// Configuration - a block of configuration data
// this is read from a Lua configuration file
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// Enabled - true if any broadcast address is configured
func (c *Configuration) Enabled() bool {
	return nil != c && len(c.Broadcast) > 0
}

// New - read keys and bind the broadcast sockets
func New(configuration *Configuration, chain string, queue *messagebus.Queue) (*Broadcaster, error) {
	log := logger.New("publish")
	log.Info("starting…")

	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
		return nil, err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
		return nil, err
	}
	log.Tracef("public key:  %x", publicKey)

	b := &Broadcaster{
		log:   log,
		chain: chain,
		queue: queue,
	}
	if err := b.initialise(privateKey, publicKey, configuration.Broadcast); nil != err {
		return nil, err
	}
	return b, nil
}
