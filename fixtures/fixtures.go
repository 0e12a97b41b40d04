// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - common setup for tests
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// accounts used across tests
var (
	Alice   = account.Address("alice-0001")
	Bob     = account.Address("bob-0002")
	Carol   = account.Address("carol-0003")
	Oracle  = account.Address("oracle-0004")
	Revenue = account.Address("revenue-0005")
)

// Gold - a token used across tests
var Gold = asset.Token("GOLD")

// SetupTestLogger - start logging into a temporary directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
