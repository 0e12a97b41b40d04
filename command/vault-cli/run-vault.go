// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultd/command/vault-cli/rpccalls"
)

// read-only calls that take a vault id
func vaultQuery(c *cli.Context, query func(*rpccalls.Client, uint64) (interface{}, error)) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := vaultId(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := query(client, id)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runVault(c *cli.Context) error {
	return vaultQuery(c, func(client *rpccalls.Client, id uint64) (interface{}, error) {
		return client.Vault(id)
	})
}

func runOutcome(c *cli.Context) error {
	index := c.Uint64("index")
	return vaultQuery(c, func(client *rpccalls.Client, id uint64) (interface{}, error) {
		return client.Outcome(id, index)
	})
}

func runResolved(c *cli.Context) error {
	return vaultQuery(c, func(client *rpccalls.Client, id uint64) (interface{}, error) {
		return client.Resolved(id)
	})
}

func runVerify(c *cli.Context) error {
	return vaultQuery(c, func(client *rpccalls.Client, id uint64) (interface{}, error) {
		return client.Verify(id)
	})
}
