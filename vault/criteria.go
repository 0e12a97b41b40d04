// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/fault"
)

// MaximumFeedIdLength - longest oracle feed identifier
const MaximumFeedIdLength = 128

// Criteria - entropy sources declared when a vault is created
//
// zero values mean "not set": history height zero is the genesis
// marker and vault id zero is never assigned
type Criteria struct {
	HistoricalMarker       uint64          `json:"historicalMarker,omitempty" yaml:"historicalMarker,omitempty"`
	LinkedVaultId          uint64          `json:"linkedVaultId,omitempty" yaml:"linkedVaultId,omitempty"`
	OracleIdentity         account.Address `json:"oracleIdentity,omitempty" yaml:"oracleIdentity,omitempty"`
	OracleFeedId           string          `json:"oracleFeedId,omitempty" yaml:"oracleFeedId,omitempty"`
	FixedSeed              uint64          `json:"fixedSeed" yaml:"fixedSeed"`
	IncludeCreatorIdentity bool            `json:"includeCreatorIdentity,omitempty" yaml:"includeCreatorIdentity,omitempty"`
}

// HasOracle - external data is needed at measurement
func (c Criteria) HasOracle() bool {
	return !c.OracleIdentity.IsZero()
}

// Validate - structural checks, references are checked by the store
func (c Criteria) Validate() error {
	if c.HasOracle() {
		if err := c.OracleIdentity.Validate(); nil != err {
			return fault.ErrInvalidCriteria
		}
		// the feed id is folded into the measurement inputs
		if "" == c.OracleFeedId {
			return fault.ErrInvalidCriteria
		}
	} else if "" != c.OracleFeedId {
		return fault.ErrInvalidCriteria
	}
	if len(c.OracleFeedId) > MaximumFeedIdLength {
		return fault.ErrInvalidCriteria
	}
	return nil
}
