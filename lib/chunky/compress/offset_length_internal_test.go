// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/bitio"
)

// bitsFromString turns a "0 010000 10 1"-style literal bit string (spaces
// are ignored, LSB-first overall) into a bit reader, mirroring
// hand-traced literal seed scenarios for the offset/length grammar.
func bitsFromString(t *testing.T, s string) *bitio.Reader {
	t.Helper()
	w := bitio.NewWriter()
	for _, c := range s {
		switch c {
		case '0':
			w.WriteBit(0)
		case '1':
			w.WriteBit(1)
		case ' ':
			continue
		default:
			t.Fatalf("bad bit char %q", c)
		}
	}
	return bitio.NewReader(w.Bytes())
}

func TestOffsetLengthScenario2(t *testing.T) {
	// scenario: "0 010000 10 1" -> offset=3, length=4.
	r := bitsFromString(t, "0 010000 10 1")
	offset, family, sentinel, err := readOffset(r)
	require.NoError(t, err)
	require.False(t, sentinel)
	assert.EqualValues(t, 3, offset)

	length, saturated, err := readLength(r, offsetFamilies[family].lengthOffset)
	require.NoError(t, err)
	require.False(t, saturated)
	assert.EqualValues(t, 4, length)
}

func TestOffsetLengthScenario3(t *testing.T) {
	// scenario: "0 110000 110 00" -> offset=4, length=5.
	r := bitsFromString(t, "0 110000 110 00")
	offset, family, sentinel, err := readOffset(r)
	require.NoError(t, err)
	require.False(t, sentinel)
	assert.EqualValues(t, 4, offset)

	length, saturated, err := readLength(r, offsetFamilies[family].lengthOffset)
	require.NoError(t, err)
	require.False(t, saturated)
	assert.EqualValues(t, 5, length)
}

func TestOffsetLengthScenario4(t *testing.T) {
	// scenario: "0 001000 0" -> offset=5, length=2.
	r := bitsFromString(t, "0 001000 0")
	offset, family, sentinel, err := readOffset(r)
	require.NoError(t, err)
	require.False(t, sentinel)
	assert.EqualValues(t, 5, offset)

	length, saturated, err := readLength(r, offsetFamilies[family].lengthOffset)
	require.NoError(t, err)
	require.False(t, saturated)
	assert.EqualValues(t, 2, length)
}

func TestOffsetTerminationSentinel(t *testing.T) {
	// scenario: twenty-bit offset field of all ones.
	w := bitio.NewWriter()
	w.WriteBit(1)
	w.WriteBit(1)
	w.WriteBit(1)
	w.WriteBits(0xFFFFF, 20)
	r := bitio.NewReader(w.Bytes())

	offset, _, sentinel, err := readOffset(r)
	require.NoError(t, err)
	assert.True(t, sentinel)
	assert.EqualValues(t, 0x101240, offset)
}

// TestOffsetRoundTrip checks that any offset in [1, ~1.05M) decoded by
// one of the four families round-trips through the inverse encoder.
func TestOffsetRoundTrip(t *testing.T) {
	cases := []int64{1, 2, 64, 65, 100, 576, 577, 1000, 4672, 4673, 5000, 1000000, offsetSentinel - 1}
	for _, want := range cases {
		familyIdx, raw := encodeOffsetForTest(t, want)
		w := bitio.NewWriter()
		writeOffsetPrefix(w, familyIdx)
		w.WriteBits(uint32(raw), offsetFamilies[familyIdx].rawBits)

		r := bitio.NewReader(w.Bytes())
		got, _, sentinel, err := readOffset(r)
		require.NoError(t, err)
		if want == offsetSentinel {
			assert.True(t, sentinel)
		}
		assert.Equal(t, want, got)
	}
}

func writeOffsetPrefix(w *bitio.Writer, familyIdx int) {
	switch familyIdx {
	case 0:
		w.WriteBit(0)
	case 1:
		w.WriteBit(1)
		w.WriteBit(0)
	case 2:
		w.WriteBit(1)
		w.WriteBit(1)
		w.WriteBit(0)
	case 3:
		w.WriteBit(1)
		w.WriteBit(1)
		w.WriteBit(1)
	}
}

func encodeOffsetForTest(t *testing.T, offset int64) (familyIdx int, raw int64) {
	t.Helper()
	for i, f := range offsetFamilies {
		lo := f.base
		hi := f.base + (int64(1)<<uint(f.rawBits) - 1)
		if offset >= lo && offset <= hi {
			return i, offset - f.base
		}
	}
	t.Fatalf("offset %d out of range of all families", offset)
	return 0, 0
}

// TestLengthRoundTrip checks the length field round-trips across a
// range of k (leading-ones count).
func TestLengthRoundTrip(t *testing.T) {
	const lengthOffset = 1
	for k := 0; k < maxLengthOnes; k++ {
		lo := int64(lengthOffset) + 1
		if k > 0 {
			lo = int64(1)<<uint(k) + int64(lengthOffset)
		}
		for _, raw := range []int64{0, 1, (int64(1) << uint(k)) - 1} {
			if k == 0 && raw != 0 {
				continue
			}
			want := raw + (int64(1) << uint(k)) + int64(lengthOffset)
			if k == 0 {
				want = lo
			}
			w := bitio.NewWriter()
			w.WriteUnary(k)
			if k > 0 {
				w.WriteBits(uint32(raw), k)
			}
			r := bitio.NewReader(w.Bytes())
			got, saturated, err := readLength(r, lengthOffset)
			require.NoError(t, err)
			require.False(t, saturated)
			assert.Equal(t, want, got)
		}
	}
}

func TestLengthSaturated(t *testing.T) {
	w := bitio.NewWriter()
	for i := 0; i < maxLengthOnes; i++ {
		w.WriteBit(1)
	}
	r := bitio.NewReader(w.Bytes())
	_, saturated, err := readLength(r, 1)
	require.NoError(t, err)
	assert.True(t, saturated)
}
