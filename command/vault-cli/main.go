// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	account     string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "vault-cli"
	app.Usage = "client for the vaultd conditional release engine"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	vaultFlag := cli.Uint64Flag{
		Name:  "vault, V",
		Usage: "*vault `ID`",
	}
	assetFlag := cli.StringFlag{
		Name:  "asset, a",
		Value: "",
		Usage: " asset `KIND` [default native]",
	}
	amountFlag := cli.Uint64Flag{
		Name:  "amount, n",
		Usage: "*amount `N`",
	}
	pageFlags := []cli.Flag{
		cli.Uint64Flag{
			Name:  "start, s",
			Value: 0,
			Usage: " first `ID` to return",
		},
		cli.IntFlag{
			Name:  "count, c",
			Value: 20,
			Usage: " maximum `COUNT` to return",
		},
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " vaultd RPC `HOST:PORT`",
			EnvVar: "VAULTD_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected SHA3-256 `HEX` of the node certificate",
			EnvVar: "VAULTD_FINGERPRINT",
		},
		cli.StringFlag{
			Name:   "account, A",
			Value:  "",
			Usage:  " calling `ACCOUNT` (base58)",
			EnvVar: "VAULTD_ACCOUNT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "create",
			Usage:     "create a vault from a YAML or JSON request file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, F",
					Value: "",
					Usage: "*request `FILE`, - for stdin",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "fund",
			Usage:     "add a deposit to an open vault",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{vaultFlag, assetFlag, amountFlag},
			Action:    runFund,
		},
		{
			Name:      "cancel",
			Usage:     "refund an open vault to its creator",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{vaultFlag},
			Action:    runCancel,
		},
		{
			Name:      "measure",
			Usage:     "measure an open vault and select its outcome",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				vaultFlag,
				cli.StringFlag{
					Name:  "data, d",
					Value: "",
					Usage: " external data `HEX`",
				},
			},
			Action: runMeasure,
		},
		{
			Name:      "execute",
			Usage:     "apply the resolved outcome of a vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				vaultFlag,
				cli.StringFlag{
					Name:  "data, d",
					Value: "",
					Usage: " external data `HEX`",
				},
			},
			Action: runExecute,
		},
		{
			Name:      "vault",
			Usage:     "show a vault",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{vaultFlag},
			Action:    runVault,
		},
		{
			Name:      "outcome",
			Usage:     "show one outcome of a vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				vaultFlag,
				cli.Uint64Flag{
					Name:  "index, i",
					Usage: "*outcome `INDEX`",
				},
			},
			Action: runOutcome,
		},
		{
			Name:      "resolved",
			Usage:     "show the measured outcome of a vault",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{vaultFlag},
			Action:    runResolved,
		},
		{
			Name:      "verify",
			Usage:     "re-derive the measurement of a vault",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{vaultFlag},
			Action:    runVerify,
		},
		{
			Name:      "list",
			Usage:     "list vaults, optionally of one creator",
			ArgsUsage: "\n   (* = required)",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "creator, C",
					Value: "",
					Usage: " only vaults of creator `ACCOUNT`",
				},
			}, pageFlags...),
			Action: runList,
		},
		{
			Name:      "balance",
			Usage:     "show the ledger balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner `ACCOUNT` [default calling account]",
				},
				assetFlag,
			},
			Action: runBalance,
		},
		{
			Name:      "issue",
			Usage:     "credit an account, testing and local chains only",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " owner `ACCOUNT` [default calling account]",
				},
				assetFlag,
				amountFlag,
			},
			Action: runIssue,
		},
		{
			Name:      "fees",
			Usage:     "show the accumulated fee pool",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag},
			Action:    runFees,
		},
		{
			Name:      "withdraw-fees",
			Usage:     "pay accumulated fees to the calling fee recipient",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{assetFlag, amountFlag},
			Action:    runWithdrawFees,
		},
		{
			Name:      "info",
			Usage:     "display vaultd status",
			ArgsUsage: " ",
			Action:    runInfo,
		},
		{
			Name:      "events",
			Usage:     "list stored events",
			ArgsUsage: "\n   (* = required)",
			Flags:     pageFlags,
			Action:    runEvents,
		},
		{
			Name:      "advance",
			Usage:     "finalise a history marker, testing and local chains only",
			ArgsUsage: " ",
			Action:    runAdvance,
		},
		{
			Name:      "version",
			Usage:     "display vault-cli version",
			ArgsUsage: " ",
			Action:    runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		connect := c.GlobalString("connect")
		if "" == connect {
			return fmt.Errorf("connect: a HOST:PORT is required")
		}

		c.App.Metadata["config"] = &metadata{
			connect:     connect,
			fingerprint: c.GlobalString("fingerprint"),
			account:     c.GlobalString("account"),
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
