// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runIssue(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountOrCaller(c.String("owner"), m)
	if nil != err {
		return err
	}
	kind, err := assetKind(c)
	if nil != err {
		return err
	}
	n, err := amount(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Issue(owner, kind, n)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runWithdrawFees(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	recipient, err := caller(m)
	if nil != err {
		return err
	}
	kind, err := assetKind(c)
	if nil != err {
		return err
	}
	n, err := amount(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.WithdrawFees(recipient, kind, n)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
