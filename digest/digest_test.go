// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vaultd/digest"
)

// SHA3-256 of the empty string
const emptyHex = "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"

func TestNew(t *testing.T) {
	d := digest.New([]byte{})
	assert.Equal(t, emptyHex, d.String(), "wrong digest of empty record")
	assert.False(t, d.IsZero(), "digest should not be zero")
	assert.True(t, digest.Digest{}.IsZero(), "zero value should be zero")
}

func TestBuilderFieldBoundaries(t *testing.T) {
	a := new(digest.Builder).String("ab").String("c").Sum()
	b := new(digest.Builder).String("a").String("bc").Sum()
	assert.NotEqual(t, a, b, "moving a field boundary must change the digest")

	c := new(digest.Builder).String("ab").String("c").Sum()
	assert.Equal(t, a, c, "builder must be deterministic")
}

func TestTextRoundTrip(t *testing.T) {
	d := digest.New([]byte("some record"))

	buffer, err := json.Marshal(d)
	assert.Nil(t, err, "marshal")

	var back digest.Digest
	err = json.Unmarshal(buffer, &back)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, d, back, "round trip")

	var scanned digest.Digest
	n, err := fmt.Sscan(d.String(), &scanned)
	assert.Nil(t, err, "scan")
	assert.Equal(t, 1, n, "scan count")
	assert.Equal(t, d, scanned, "scanned value")
}

func TestFromBytes(t *testing.T) {
	var d digest.Digest
	assert.NotNil(t, digest.FromBytes(&d, []byte{1, 2, 3}), "short buffer accepted")

	source := digest.New([]byte("x"))
	assert.Nil(t, digest.FromBytes(&d, source[:]), "valid buffer rejected")
	assert.Equal(t, source, d, "wrong value")
}
