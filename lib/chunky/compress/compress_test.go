// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/bitio"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/compress"
)

// buildKCDCStream assembles a KCDC payload (minus the "KCDC" tag, which
// Decode strips before calling DecodeKCDC) for an all-literal run of
// `want` followed by the legacy termination sentinel, exercising the
// same scenario as decoding an uncompressed length of 3 to "aba". Rather
// than guess at a byte-for-byte reproduction of a known-good capture,
// this builds an equivalent stream bit-for-bit from the decode grammar
// itself and checks it decodes to the same string.
func buildKCDCStream(want []byte) []byte {
	w := bitio.NewWriter()
	for _, b := range want {
		w.WriteBit(0) // literal token
		w.WriteBits(uint32(b), 8)
	}
	// Legacy termination sentinel: family-3 ("111") prefix, 20 raw
	// one-bits, no length field follows.
	w.WriteBit(1)
	w.WriteBit(1)
	w.WriteBit(1)
	w.WriteBits(0xFFFFF, 20)

	header := []byte{0, 0, 0, byte(len(want)), 0}
	return append(header, w.Bytes()...)
}

func TestKCDCRoundTripAba(t *testing.T) {
	stream := buildKCDCStream([]byte("aba"))
	got, err := compress.DecodeKCDC(stream)
	require.NoError(t, err)
	assert.Equal(t, "aba", string(got))
}

// TestKCDCDecodesLiteralAbaVector decodes a literal byte vector (no
// bitio.Writer involved) for the same uncompressed-length-3 "aba" case
// TestKCDCRoundTripAba builds procedurally. Three literal tokens (0x61
// 'a', 0x62 'b', 0x61 'a') followed by the family-3 termination sentinel
// pack, LSB-first, into 0xC2, 0x88, 0x09, 0xFB (whose top five bits are
// the first five of the sentinel's 23 one-bits), then 18 more one-bits
// (0xFF, 0xFF, and the low two bits of a final 0xFF; the remaining six
// bits of that last byte are unread padding).
func TestKCDCDecodesLiteralAbaVector(t *testing.T) {
	stream := []byte{0, 0, 0, 3, 0, 0xC2, 0x88, 0x09, 0xFB, 0xFF, 0xFF, 0xFF}
	got, err := compress.DecodeKCDC(stream)
	require.NoError(t, err)
	assert.Equal(t, "aba", string(got))
}

func TestKCDCBackreference(t *testing.T) {
	// "abab" encoded as literal "ab" then a back-reference of offset 2,
	// length 2 (copies "ab" again), exercising run-length-via-overlap
	// copy semantics for length == offset.
	w := bitio.NewWriter()
	for _, b := range []byte("ab") {
		w.WriteBit(0)
		w.WriteBits(uint32(b), 8)
	}
	// back-reference: offset=2 (family 0: "0" + 6 raw bits => raw=1)
	w.WriteBit(1)
	w.WriteBit(0)
	w.WriteBits(1, 6)
	// length=2 (k=0 => length = lengthOffset(1)+1 = 2)
	w.WriteBit(0)
	// termination sentinel
	w.WriteBit(1)
	w.WriteBit(1)
	w.WriteBit(1)
	w.WriteBits(0xFFFFF, 20)

	header := []byte{0, 0, 0, 4, 0}
	stream := append(header, w.Bytes()...)

	got, err := compress.DecodeKCDC(stream)
	require.NoError(t, err)
	assert.Equal(t, "abab", string(got))
}

func TestKCDCRunLengthOverlap(t *testing.T) {
	// "aaaaaa" (6 bytes): literal 'a', then a back-reference with
	// offset=1, length=5, which must repeat the single preceding byte
	// via the naive byte-by-byte copy loop (length > offset).
	w := bitio.NewWriter()
	w.WriteBit(0)
	w.WriteBits(uint32('a'), 8)
	// back-reference: offset=1 (family0, raw=0)
	w.WriteBit(1)
	w.WriteBit(0)
	w.WriteBits(0, 6)
	// length=5: k=2 (two leading ones + terminator), raw bits such
	// that raw + (1<<2) + 1 == 5 => raw=0
	w.WriteUnary(2)
	w.WriteBits(0, 2)
	// termination
	w.WriteBit(1)
	w.WriteBit(1)
	w.WriteBit(1)
	w.WriteBits(0xFFFFF, 20)

	header := []byte{0, 0, 0, 6, 0}
	stream := append(header, w.Bytes()...)

	got, err := compress.DecodeKCDC(stream)
	require.NoError(t, err)
	assert.Equal(t, "aaaaaa", string(got))
}

func TestKCD2LiteralRun(t *testing.T) {
	// A single literal run covering the whole output, then a
	// saturated length field (12 leading ones) to terminate.
	body := bitio.NewWriter()
	// length field for length=3, lengthOffset=1: k=0 gives length=2,
	// so use k=1, raw=0 => length = 0 + 2 + 1 = 3.
	body.WriteUnary(1)
	body.WriteBits(0, 1)
	body.WriteBit(0) // literal run
	for _, b := range []byte("xyz") {
		body.WriteBits(uint32(b), 8)
	}
	// saturated length field terminates the stream
	for i := 0; i < 12; i++ {
		body.WriteBit(1)
	}

	header := []byte{0, 0, 0, 3, 0}
	stream := append(header, body.Bytes()...)

	got, err := compress.DecodeKCD2(stream)
	require.NoError(t, err)
	assert.Equal(t, "xyz", string(got))
}

func TestDecodeDispatch(t *testing.T) {
	stream := buildKCDCStream([]byte("x"))
	full := append([]byte("KCDC"), stream...)
	got, err := compress.Decode(full)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))

	passthrough := append([]byte("puak"), []byte("raw bytes")...)
	got, err = compress.Decode(passthrough)
	require.NoError(t, err)
	assert.Equal(t, "raw bytes", string(got))

	nested := append([]byte("apak"), passthrough...)
	got, err = compress.Decode(nested)
	require.NoError(t, err)
	assert.Equal(t, "raw bytes", string(got))

	_, err = compress.Decode([]byte("XXXXnope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, compress.ErrUnsupportedCodec)
}
