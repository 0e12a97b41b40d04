// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot_test

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vaultd/asset"
	"github.com/bitmark-inc/vaultd/engine"
	"github.com/bitmark-inc/vaultd/event"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/fixtures"
	"github.com/bitmark-inc/vaultd/snapshot"
	"github.com/bitmark-inc/vaultd/vault"
)

// pages through fixed lists like the engine queries do
type fixedSource struct {
	info   engine.Info
	vaults []*vault.Vault
	events []*event.Event
}

func (f *fixedSource) Info() *engine.Info {
	i := f.info
	return &i
}

func (f *fixedSource) ListVaults(start uint64, count int) ([]*vault.Vault, error) {
	result := []*vault.Vault{}
	for _, v := range f.vaults {
		if v.Id >= start && len(result) < count {
			result = append(result, v)
		}
	}
	return result, nil
}

func (f *fixedSource) Events(start uint64, count int) ([]*event.Event, error) {
	result := []*event.Event{}
	for _, e := range f.events {
		if e.Sequence >= start && len(result) < count {
			result = append(result, e)
		}
	}
	return result, nil
}

var created = time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC)

func makeSource(vaultCount int, eventCount int) *fixedSource {
	f := &fixedSource{
		info: engine.Info{
			Chain:       "testing",
			Height:      9,
			LastVaultId: uint64(vaultCount),
			LastEvent:   uint64(eventCount),
		},
	}
	for i := 1; i <= vaultCount; i += 1 {
		f.vaults = append(f.vaults, &vault.Vault{
			Id:              uint64(i),
			State:           vault.Open,
			Creator:         fixtures.Alice,
			AssetKind:       fixtures.Gold,
			DepositedAmount: 1000,
			HeldAmount:      990,
			Outcomes: []vault.Outcome{
				{Effect: vault.ReturnToCreator{Target: fixtures.Alice}},
				{Effect: vault.Burn{}},
			},
			Criteria:  vault.Criteria{FixedSeed: uint64(i)},
			CreatedAt: created,
		})
	}
	for i := 1; i <= eventCount; i += 1 {
		f.events = append(f.events, &event.Event{
			Sequence:  uint64(i),
			Kind:      event.VaultCreated,
			Timestamp: created,
			VaultId:   uint64(i),
			Account:   fixtures.Alice,
			Asset:     asset.Native,
			Amount:    1000,
		})
	}
	return f
}

func TestWriteRead(t *testing.T) {
	// more than one page of each
	source := makeSource(250, 120)

	var buffer bytes.Buffer
	h, err := snapshot.Write(&buffer, source, created)
	assert.Nil(t, err, "wrong write")
	assert.Equal(t, 250, h.Vaults, "wrong vault count")
	assert.Equal(t, 120, h.Events, "wrong event count")

	s, err := snapshot.Read(&buffer)
	assert.Nil(t, err, "wrong read")
	assert.Equal(t, *h, s.Header, "wrong header")
	assert.Equal(t, "testing", s.Header.Chain, "wrong chain")
	assert.Equal(t, uint64(9), s.Header.Height, "wrong height")
	assert.Equal(t, source.vaults, s.Vaults, "wrong vaults")
	assert.Equal(t, source.events, s.Events, "wrong events")
}

func TestWriteStopsAtLastId(t *testing.T) {
	source := makeSource(5, 5)

	// records added after the export began
	source.info.LastVaultId = 3
	source.info.LastEvent = 4

	var buffer bytes.Buffer
	h, err := snapshot.Write(&buffer, source, created)
	assert.Nil(t, err, "wrong write")
	assert.Equal(t, 3, h.Vaults, "later vaults included")
	assert.Equal(t, 4, h.Events, "later events included")
}

func TestEmpty(t *testing.T) {
	var buffer bytes.Buffer
	_, err := snapshot.Write(&buffer, makeSource(0, 0), created)
	assert.Nil(t, err, "wrong write")

	s, err := snapshot.Read(&buffer)
	assert.Nil(t, err, "wrong read")
	assert.Equal(t, 0, len(s.Vaults), "vaults in empty snapshot")
	assert.Equal(t, 0, len(s.Events), "events in empty snapshot")
}

func TestFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "dump.jsonl.zst")

	_, err := snapshot.WriteFile(name, makeSource(2, 2), created)
	assert.Nil(t, err, "wrong write file")

	s, err := snapshot.ReadFile(name)
	assert.Nil(t, err, "wrong read file")
	assert.Equal(t, 2, len(s.Vaults), "wrong vaults")
}

func compress(t *testing.T, text string) *bytes.Buffer {
	var buffer bytes.Buffer
	enc, err := zstd.NewWriter(&buffer)
	assert.Nil(t, err, "zstd writer")
	_, err = enc.Write([]byte(text))
	assert.Nil(t, err, "zstd write")
	assert.Nil(t, enc.Close(), "zstd close")
	return &buffer
}

func TestReadRejectsBadInput(t *testing.T) {
	_, err := snapshot.Read(compress(t, `{"version":2}`+"\n"))
	assert.Equal(t, fault.ErrSnapshotVersion, err, "wrong version accepted")

	_, err = snapshot.Read(compress(t, `{"version":1,"vaults":1}`+"\n"))
	assert.Equal(t, fault.ErrSnapshotCorrupt, err, "missing vault accepted")

	_, err = snapshot.Read(compress(t, `{"version":1}`+"\n{}\n"))
	assert.Equal(t, fault.ErrSnapshotCorrupt, err, "empty line accepted")

	_, err = snapshot.Read(bytes.NewBufferString("not compressed"))
	assert.NotNil(t, err, "plain text accepted")
}
