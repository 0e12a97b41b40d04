// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/fault"
)

// limits on outcome lists
const (
	MaximumOutcomes      = 256
	MaximumPayloadLength = 4096
)

// OutcomeKind - tag of each effect variant
type OutcomeKind uint8

// all outcome kinds
const (
	TransferReferenceAssetKind OutcomeKind = 1
	TransferTokenKind          OutcomeKind = 2
	InvokeExternalKind         OutcomeKind = 3
	BurnKind                   OutcomeKind = 4
	LockPermanentlyKind        OutcomeKind = 5
	ReturnToCreatorKind        OutcomeKind = 6
)

var kindNames = map[OutcomeKind]string{
	TransferReferenceAssetKind: "TransferReferenceAsset",
	TransferTokenKind:          "TransferToken",
	InvokeExternalKind:         "InvokeExternal",
	BurnKind:                   "Burn",
	LockPermanentlyKind:        "LockPermanently",
	ReturnToCreatorKind:        "ReturnToCreator",
}

// String - name of the kind
func (k OutcomeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText - kind name for JSON and YAML
func (k OutcomeKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fault.ErrInvalidOutcomeKind
	}
	return []byte(k.String()), nil
}

// UnmarshalText - kind name, case insensitive
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if strings.EqualFold(name, string(text)) {
			*k = kind
			return nil
		}
	}
	return fault.ErrInvalidOutcomeKind
}

// Effect - the closed set of outcome effects
//
// only the types in this file implement it
type Effect interface {
	Kind() OutcomeKind
	isEffect()
}

// TransferReferenceAsset - move native asset to a target
//
// zero Amount means the whole held balance
type TransferReferenceAsset struct {
	Target account.Address
	Amount uint64
}

// TransferToken - move a token to a target, the token must be the vault's kind
type TransferToken struct {
	Target account.Address
	Token  asset.Kind
	Amount uint64
}

// InvokeExternal - call an external target with a payload and optional value
type InvokeExternal struct {
	Target  account.Address
	Payload []byte
	Value   uint64
}

// Burn - destroy the held balance
type Burn struct{}

// LockPermanently - keep the held balance in the system, unattributed
type LockPermanently struct{}

// ReturnToCreator - send the held balance back, Target must be the creator
type ReturnToCreator struct {
	Target account.Address
}

// Kind - variant tags
func (TransferReferenceAsset) Kind() OutcomeKind { return TransferReferenceAssetKind }
func (TransferToken) Kind() OutcomeKind          { return TransferTokenKind }
func (InvokeExternal) Kind() OutcomeKind         { return InvokeExternalKind }
func (Burn) Kind() OutcomeKind                   { return BurnKind }
func (LockPermanently) Kind() OutcomeKind        { return LockPermanentlyKind }
func (ReturnToCreator) Kind() OutcomeKind        { return ReturnToCreatorKind }

func (TransferReferenceAsset) isEffect() {}
func (TransferToken) isEffect()          {}
func (InvokeExternal) isEffect()         {}
func (Burn) isEffect()                   {}
func (LockPermanently) isEffect()        {}
func (ReturnToCreator) isEffect()        {}

// Outcome - one candidate effect of a vault
type Outcome struct {
	Effect               Effect
	RequiresExternalData bool
}

// HexBytes - binary data as hex text in JSON and YAML
type HexBytes []byte

// MarshalText - hex encoding
func (h HexBytes) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(buffer, h)
	return buffer, nil
}

// UnmarshalText - hex decoding
func (h *HexBytes) UnmarshalText(text []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(buffer, text); nil != err {
		return err
	}
	*h = buffer
	return nil
}

// OutcomeData - flat form of an outcome for requests, replies and records
//
// Amount is the attached value for InvokeExternal
type OutcomeData struct {
	Kind                 OutcomeKind     `json:"kind" yaml:"kind"`
	Target               account.Address `json:"target,omitempty" yaml:"target,omitempty"`
	Token                asset.Kind      `json:"token,omitempty" yaml:"token,omitempty"`
	Amount               uint64          `json:"amount,omitempty" yaml:"amount,omitempty"`
	Payload              HexBytes        `json:"payload,omitempty" yaml:"payload,omitempty"`
	RequiresExternalData bool            `json:"requiresExternalData,omitempty" yaml:"requiresExternalData,omitempty"`
}

// Data - flatten an outcome
func (o Outcome) Data() OutcomeData {
	d := OutcomeData{
		RequiresExternalData: o.RequiresExternalData,
	}

	switch e := o.Effect.(type) {
	case TransferReferenceAsset:
		d.Target = e.Target
		d.Amount = e.Amount
	case TransferToken:
		d.Target = e.Target
		d.Token = e.Token
		d.Amount = e.Amount
	case InvokeExternal:
		d.Target = e.Target
		d.Payload = e.Payload
		d.Amount = e.Value
	case Burn, LockPermanently:
	case ReturnToCreator:
		d.Target = e.Target
	default:
		return d
	}
	d.Kind = o.Effect.Kind()
	return d
}

// Outcome - build the variant, rejecting fields that do not belong to the kind
func (d OutcomeData) Outcome() (Outcome, error) {
	o := Outcome{
		RequiresExternalData: d.RequiresExternalData,
	}

	noToken := d.Token.IsNative()
	noPayload := 0 == len(d.Payload)

	switch d.Kind {
	case TransferReferenceAssetKind:
		if !noToken || !noPayload {
			return Outcome{}, fault.ErrInvalidOutcome
		}
		o.Effect = TransferReferenceAsset{Target: d.Target, Amount: d.Amount}
	case TransferTokenKind:
		if !noPayload {
			return Outcome{}, fault.ErrInvalidOutcome
		}
		o.Effect = TransferToken{Target: d.Target, Token: d.Token, Amount: d.Amount}
	case InvokeExternalKind:
		if !noToken {
			return Outcome{}, fault.ErrInvalidOutcome
		}
		o.Effect = InvokeExternal{Target: d.Target, Payload: []byte(d.Payload), Value: d.Amount}
	case BurnKind, LockPermanentlyKind:
		if !d.Target.IsZero() || !noToken || !noPayload || 0 != d.Amount {
			return Outcome{}, fault.ErrInvalidOutcome
		}
		if BurnKind == d.Kind {
			o.Effect = Burn{}
		} else {
			o.Effect = LockPermanently{}
		}
	case ReturnToCreatorKind:
		if !noToken || !noPayload || 0 != d.Amount {
			return Outcome{}, fault.ErrInvalidOutcome
		}
		o.Effect = ReturnToCreator{Target: d.Target}
	default:
		return Outcome{}, fault.ErrInvalidOutcomeKind
	}
	return o, nil
}

// MarshalJSON - JSON of the flat form
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Data())
}

// UnmarshalJSON - JSON of the flat form
func (o *Outcome) UnmarshalJSON(buffer []byte) error {
	var d OutcomeData
	if err := json.Unmarshal(buffer, &d); nil != err {
		return err
	}
	outcome, err := d.Outcome()
	if nil != err {
		return err
	}
	*o = outcome
	return nil
}

// FromData - convert a list of flat outcomes
func FromData(data []OutcomeData) ([]Outcome, error) {
	outcomes := make([]Outcome, len(data))
	for i, d := range data {
		o, err := d.Outcome()
		if nil != err {
			return nil, err
		}
		outcomes[i] = o
	}
	return outcomes, nil
}

// ValidateOutcome - check an outcome against the vault it belongs to
func ValidateOutcome(o Outcome, kind asset.Kind, creator account.Address) error {
	switch e := o.Effect.(type) {
	case TransferReferenceAsset:
		if err := validateTarget(e.Target); nil != err {
			return err
		}
		if !kind.IsNative() {
			return fault.ErrAssetKindMismatch
		}
	case TransferToken:
		if err := validateTarget(e.Target); nil != err {
			return err
		}
		if e.Token.IsNative() {
			return fault.ErrInvalidAssetKind
		}
		if e.Token != kind {
			return fault.ErrAssetKindMismatch
		}
	case InvokeExternal:
		if err := validateTarget(e.Target); nil != err {
			return err
		}
		if len(e.Payload) > MaximumPayloadLength {
			return fault.ErrInvalidOutcome
		}
	case Burn, LockPermanently:
	case ReturnToCreator:
		if e.Target.IsZero() {
			return fault.ErrTargetRequired
		}
		if e.Target != creator {
			return fault.ErrTargetNotCreator
		}
	default:
		return fault.ErrInvalidOutcomeKind
	}
	return nil
}

func validateTarget(target account.Address) error {
	if target.IsZero() {
		return fault.ErrTargetRequired
	}
	return target.Validate()
}
