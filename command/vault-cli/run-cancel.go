// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runCancel(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	creator, err := caller(m)
	if nil != err {
		return err
	}
	id, err := vaultId(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Cancel(creator, id)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
