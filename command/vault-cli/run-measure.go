// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runMeasure(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := vaultId(c)
	if nil != err {
		return err
	}

	externalData, err := hexData(c)
	if nil != err {
		return err
	}

	measurer, err := caller(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Measure(measurer, id, externalData)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
