// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultd/account"
)

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var creator account.Address
	if s := c.String("creator"); "" != s {
		var err error
		creator, err = parseAccount(s)
		if nil != err {
			return err
		}
	}

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List(creator, c.Uint64("start"), count)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
