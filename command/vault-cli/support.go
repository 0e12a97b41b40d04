// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/command/vault-cli/rpccalls"
	"github.com/bitmark-inc/vaultd/fault"
)

// common errors - keep in alphabetic order
const (
	ErrMissingAccount = fault.InvalidError("calling account is required")
	ErrMissingVault   = fault.InvalidError("vault id is required")
	ErrZeroAmount     = fault.InvalidError("amount is required")
)

func connect(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
}

// the global calling account, which must be present
func caller(m *metadata) (account.Address, error) {
	if "" == m.account {
		return "", ErrMissingAccount
	}
	return parseAccount(m.account)
}

// the global calling account if one was given
func optionalCaller(m *metadata) (account.Address, error) {
	if "" == m.account {
		return "", nil
	}
	return parseAccount(m.account)
}

// an explicit account, or the caller if blank
func accountOrCaller(s string, m *metadata) (account.Address, error) {
	if "" == s {
		return caller(m)
	}
	return parseAccount(s)
}

func parseAccount(s string) (account.Address, error) {
	a, err := account.FromBase58(strings.TrimSpace(s))
	if nil != err {
		return "", err
	}
	return a, a.Validate()
}

func vaultId(c *cli.Context) (uint64, error) {
	if !c.IsSet("vault") {
		return 0, ErrMissingVault
	}
	return c.Uint64("vault"), nil
}

func amount(c *cli.Context) (uint64, error) {
	n := c.Uint64("amount")
	if 0 == n {
		return 0, ErrZeroAmount
	}
	return n, nil
}

func assetKind(c *cli.Context) (asset.Kind, error) {
	return asset.Parse(c.String("asset"))
}

// optional external data for measure and execute
func hexData(c *cli.Context) ([]byte, error) {
	s := c.String("data")
	if "" == s {
		return nil, nil
	}
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return nil, fmt.Errorf("external data: %s", err)
	}
	return buffer, nil
}

// read a whole file, "-" is stdin
func readInput(fileName string) ([]byte, error) {
	if "-" == fileName {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(fileName)
}
