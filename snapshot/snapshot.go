// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package snapshot - export all vaults and events as zstd compressed
// JSON lines
//
// the first line is the header, each following line holds either one
// vault or one event, vaults first in id order then events in
// sequence order
package snapshot

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/bitmark-inc/vaultd/engine"
	"github.com/bitmark-inc/vaultd/event"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/vault"
)

const (
	formatVersion = 1
	pageSize      = 100
	bufferSize    = 128 * 1024
)

// Source - committed state to export
type Source interface {
	Info() *engine.Info
	ListVaults(uint64, int) ([]*vault.Vault, error)
	Events(uint64, int) ([]*event.Event, error)
}

// Header - first line of a snapshot
type Header struct {
	Version     int       `json:"version"`
	Chain       string    `json:"chain"`
	Height      uint64    `json:"height"`
	LastVaultId uint64    `json:"lastVaultId"`
	LastEvent   uint64    `json:"lastEvent"`
	Created     time.Time `json:"created"`
	Vaults      int       `json:"vaults"`
	Events      int       `json:"events"`
}

// Snapshot - a decoded file
type Snapshot struct {
	Header Header
	Vaults []*vault.Vault
	Events []*event.Event
}

type line struct {
	Vault *vault.Vault `json:"vault,omitempty"`
	Event *event.Event `json:"event,omitempty"`
}

// WriteFile - create a snapshot file, an existing file is replaced
func WriteFile(fileName string, source Source, now time.Time) (*Header, error) {
	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if nil != err {
		return nil, err
	}

	h, err := Write(f, source, now)
	if nil != err {
		f.Close()
		_ = os.Remove(fileName)
		return nil, err
	}
	return h, f.Close()
}

// Write - compress a snapshot to a writer
//
// the header counts are filled from the ids and sequences visible
// when the export starts, later additions are not included
func Write(w io.Writer, source Source, now time.Time) (*Header, error) {
	info := source.Info()
	h := &Header{
		Version:     formatVersion,
		Chain:       info.Chain,
		Height:      info.Height,
		LastVaultId: info.LastVaultId,
		LastEvent:   info.LastEvent,
		Created:     now.UTC(),
	}

	vaults, err := allVaults(source, h.LastVaultId)
	if nil != err {
		return nil, err
	}
	events, err := allEvents(source, h.LastEvent)
	if nil != err {
		return nil, err
	}
	h.Vaults = len(vaults)
	h.Events = len(events)

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if nil != err {
		return nil, err
	}
	bw := bufio.NewWriterSize(enc, bufferSize)
	js := json.NewEncoder(bw)

	if err := js.Encode(h); nil != err {
		enc.Close()
		return nil, err
	}
	for _, v := range vaults {
		if err := js.Encode(line{Vault: v}); nil != err {
			enc.Close()
			return nil, err
		}
	}
	for _, e := range events {
		if err := js.Encode(line{Event: e}); nil != err {
			enc.Close()
			return nil, err
		}
	}

	if err := bw.Flush(); nil != err {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); nil != err {
		return nil, err
	}
	return h, nil
}

func allVaults(source Source, last uint64) ([]*vault.Vault, error) {
	vaults := make([]*vault.Vault, 0, last)
	start := uint64(1)
	for start <= last {
		page, err := source.ListVaults(start, pageSize)
		if nil != err {
			return nil, err
		}
		if 0 == len(page) {
			break
		}
		for _, v := range page {
			if v.Id > last {
				return vaults, nil
			}
			vaults = append(vaults, v)
		}
		start = page[len(page)-1].Id + 1
	}
	return vaults, nil
}

func allEvents(source Source, last uint64) ([]*event.Event, error) {
	events := make([]*event.Event, 0, last)
	start := uint64(1)
	for start <= last {
		page, err := source.Events(start, pageSize)
		if nil != err {
			return nil, err
		}
		if 0 == len(page) {
			break
		}
		for _, e := range page {
			if e.Sequence > last {
				return events, nil
			}
			events = append(events, e)
		}
		start = page[len(page)-1].Sequence + 1
	}
	return events, nil
}

// ReadFile - decode a snapshot file
func ReadFile(fileName string) (*Snapshot, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read - decode a snapshot, checking the header counts
func Read(r io.Reader) (*Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if nil != err {
		return nil, err
	}
	defer dec.Close()

	js := json.NewDecoder(bufio.NewReaderSize(dec, bufferSize))

	s := &Snapshot{}
	if err := js.Decode(&s.Header); nil != err {
		return nil, err
	}
	if formatVersion != s.Header.Version {
		return nil, fault.ErrSnapshotVersion
	}

	for {
		var l line
		err := js.Decode(&l)
		if io.EOF == err {
			break
		}
		if nil != err {
			return nil, err
		}
		switch {
		case nil != l.Vault:
			s.Vaults = append(s.Vaults, l.Vault)
		case nil != l.Event:
			s.Events = append(s.Events, l.Event)
		default:
			return nil, fault.ErrSnapshotCorrupt
		}
	}

	if len(s.Vaults) != s.Header.Vaults || len(s.Events) != s.Header.Events {
		return nil, fault.ErrSnapshotCorrupt
	}
	return s, nil
}
