// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/command/vault-cli/rpccalls"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/vault"
)

// createRequest - vault creation file, YAML or JSON
//
// example:
//
//   creator: 7wkAFXHDutLxuh3hcQE
//   asset: native
//   amount: 10000
//   outcomes:
//     - kind: TransferReferenceAsset
//       target: 8oj3t1G1D1Tg2QfBp4D
//     - kind: Burn
//   criteria:
//     fixedSeed: 42
type createRequest struct {
	Creator  account.Address     `yaml:"creator"`
	Asset    asset.Kind          `yaml:"asset"`
	Amount   uint64              `yaml:"amount"`
	Outcomes []vault.OutcomeData `yaml:"outcomes"`
	Criteria vault.Criteria      `yaml:"criteria"`
}

// decode a request, the creator defaults to the given account
func parseCreateRequest(buffer []byte, defaultCreator account.Address) (*rpccalls.CreateData, error) {
	var request createRequest

	decoder := yaml.NewDecoder(bytes.NewReader(buffer))
	decoder.KnownFields(true)
	if err := decoder.Decode(&request); nil != err {
		return nil, err
	}

	if request.Creator.IsZero() {
		request.Creator = defaultCreator
	}
	if request.Creator.IsZero() {
		return nil, ErrMissingAccount
	}
	if 0 == request.Amount {
		return nil, ErrZeroAmount
	}
	if 0 == len(request.Outcomes) {
		return nil, fault.ErrNoOutcomes
	}

	// check locally so a bad file fails before connecting
	if _, err := vault.FromData(request.Outcomes); nil != err {
		return nil, err
	}
	if err := request.Criteria.Validate(); nil != err {
		return nil, err
	}

	data := &rpccalls.CreateData{
		Creator:  request.Creator,
		Asset:    request.Asset,
		Amount:   request.Amount,
		Outcomes: request.Outcomes,
		Criteria: request.Criteria,
	}
	return data, nil
}
