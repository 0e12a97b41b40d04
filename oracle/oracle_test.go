// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/background"
	"github.com/bitmark-inc/vaultd/fixtures"
	"github.com/bitmark-inc/vaultd/oracle"
)

func listText(identities ...account.Address) []byte {
	text := "oracles:\n"
	for _, identity := range identities {
		text += "  - identity: " + identity.String() + "\n    description: test feed\n"
	}
	return []byte(text)
}

func TestFixedList(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	a := oracle.NewAllowList(fixtures.Oracle)
	assert.True(t, a.IsAuthorised(fixtures.Oracle), "listed oracle")
	assert.False(t, a.IsAuthorised(fixtures.Bob), "unlisted oracle")
}

func TestLoadFile(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	name := filepath.Join("testing", "oracles.yaml")
	err := os.WriteFile(name, listText(fixtures.Oracle, fixtures.Carol), 0600)
	assert.Nil(t, err, "write list")

	a, err := oracle.Load(name)
	assert.Nil(t, err, "load")
	assert.True(t, a.IsAuthorised(fixtures.Carol), "carol")
	assert.Equal(t, 2, len(a.Entries()), "entries")

	// a bad file keeps the previous list
	err = os.WriteFile(name, []byte("oracles: [ {identity: \"0OIl\"} ]\n"), 0600)
	assert.Nil(t, err, "write bad list")
	assert.NotNil(t, a.Reload(), "bad list accepted")
	assert.True(t, a.IsAuthorised(fixtures.Oracle), "previous list lost")
}

func TestEmptyPath(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	a, err := oracle.Load("")
	assert.Nil(t, err, "load")
	assert.False(t, a.IsAuthorised(fixtures.Oracle), "empty list authorised")
}

func TestWatcherReloads(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	name := filepath.Join("testing", "watched.yaml")
	err := os.WriteFile(name, listText(fixtures.Oracle), 0600)
	assert.Nil(t, err, "write list")

	a, err := oracle.Load(name)
	assert.Nil(t, err, "load")

	w, err := oracle.NewWatcher(a)
	assert.Nil(t, err, "watcher")
	p := background.Start(background.Processes{w}, nil)
	defer p.Stop()

	err = os.WriteFile(name, listText(fixtures.Bob), 0600)
	assert.Nil(t, err, "rewrite list")

	deadline := time.Now().Add(2 * time.Second)
	for !a.IsAuthorised(fixtures.Bob) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, a.IsAuthorised(fixtures.Bob), "change not picked up")
	assert.False(t, a.IsAuthorised(fixtures.Oracle), "old entry kept")
}
