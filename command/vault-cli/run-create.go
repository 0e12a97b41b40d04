// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.String("file")
	if "" == fileName {
		return fmt.Errorf("request file is required")
	}

	buffer, err := readInput(fileName)
	if nil != err {
		return err
	}

	// the file may name the creator
	creator, err := optionalCaller(m)
	if nil != err {
		return err
	}

	data, err := parseCreateRequest(buffer, creator)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "creator: %s\n", data.Creator)
		fmt.Fprintf(m.e, "asset: %s\n", data.Asset)
		fmt.Fprintf(m.e, "amount: %d\n", data.Amount)
		fmt.Fprintf(m.e, "outcomes: %d\n", len(data.Outcomes))
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Create(data)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
