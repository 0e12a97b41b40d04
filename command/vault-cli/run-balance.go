// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountOrCaller(c.String("owner"), m)
	if nil != err {
		return err
	}
	kind, err := assetKind(c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "asset: %s\n", kind)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Balance(owner, kind)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runFees(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	kind, err := assetKind(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Fees(kind)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
