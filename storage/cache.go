// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 2 * time.Minute
	cleanupInterval   = 5 * time.Minute
)

// cache of committed records, entries are removed on every commit that
// touches their key
type readCache struct {
	cache *cache.Cache
}

func newReadCache() *readCache {
	return &readCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *readCache) get(key []byte) ([]byte, bool) {
	obj, found := c.cache.Get(string(key))
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

func (c *readCache) set(key []byte, value []byte) {
	c.cache.Set(string(key), value, cache.DefaultExpiration)
}

func (c *readCache) remove(key []byte) {
	c.cache.Delete(string(key))
}

func (c *readCache) clear() {
	c.cache.Flush()
}
