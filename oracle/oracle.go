// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package oracle - which oracle identities may supply external data
//
// the allow-list is read from a YAML file:
//
//   oracles:
//     - identity: <base58 account>
//       description: free text
//
// and re-read whenever the file changes
package oracle

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/fault"
)

// Authoriser - check an oracle identity
type Authoriser interface {
	IsAuthorised(account.Address) bool
}

// Entry - one allowed oracle
type Entry struct {
	Identity    account.Address `yaml:"identity" json:"identity"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

type file struct {
	Oracles []Entry `yaml:"oracles"`
}

// AllowList - Authoriser over a set of identities
type AllowList struct {
	sync.RWMutex
	log     *logger.L
	path    string
	entries map[account.Address]Entry
}

// NewAllowList - fixed list of identities
func NewAllowList(identities ...account.Address) *AllowList {
	a := &AllowList{
		log:     logger.New("oracle"),
		entries: make(map[account.Address]Entry),
	}
	for _, identity := range identities {
		a.entries[identity] = Entry{Identity: identity}
	}
	return a
}

// Load - read the allow-list file, a missing path gives an empty list
func Load(path string) (*AllowList, error) {
	a := NewAllowList()
	a.path = path
	if "" == path {
		return a, nil
	}
	if err := a.Reload(); nil != err {
		return nil, err
	}
	return a, nil
}

// Reload - replace the list with the current file contents
//
// on error the previous list is kept
func (a *AllowList) Reload() error {
	buffer, err := os.ReadFile(a.path)
	if nil != err {
		return err
	}

	var f file
	if err := yaml.Unmarshal(buffer, &f); nil != err {
		a.log.Errorf("parse: %q  error: %s", a.path, err)
		return err
	}

	entries := make(map[account.Address]Entry, len(f.Oracles))
	for _, e := range f.Oracles {
		if err := e.Identity.Validate(); nil != err {
			a.log.Errorf("invalid identity: %q  error: %s", e.Identity, err)
			return fault.ErrInvalidAccount
		}
		entries[e.Identity] = e
	}

	a.Lock()
	a.entries = entries
	a.Unlock()

	a.log.Infof("loaded %d oracles from: %q", len(entries), a.path)
	return nil
}

// IsAuthorised - identity is on the list
func (a *AllowList) IsAuthorised(identity account.Address) bool {
	a.RLock()
	defer a.RUnlock()
	_, ok := a.entries[identity]
	return ok
}

// Entries - current list
func (a *AllowList) Entries() []Entry {
	a.RLock()
	defer a.RUnlock()
	list := make([]Entry, 0, len(a.entries))
	for _, e := range a.entries {
		list = append(list, e)
	}
	return list
}

// Path - the file behind the list, empty for a fixed list
func (a *AllowList) Path() string {
	return a.path
}
