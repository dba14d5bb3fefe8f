// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

func putU16LE(buf []byte, v uint16) []byte { return append(buf, byte(v), byte(v>>8)) }
func putU32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
func putU16BE(buf []byte, v uint16) []byte { return append(buf, byte(v>>8), byte(v)) }
func putU32BE(buf []byte, v uint32) []byte {
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func TestDecodeTemplateLittleEndian(t *testing.T) {
	var buf []byte
	buf = putU16LE(buf, 0x0001) // native mark
	buf = putU16LE(buf, 1000)   // xa
	buf = putU16LE(buf, 2000)   // ya
	buf = putU16LE(buf, 3000)   // za
	buf = putU32LE(buf, 42)     // flags

	tmpl, err := records.DecodeTemplate(buf)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, tmpl.RestAngleX)
	assert.EqualValues(t, 42, tmpl.Flags)
}

// TestTemplateEndiannessSymmetry checks that for any record, loading
// yields identical decoded output for a native-endian and a
// byte-swapped variant of the same bytes, applied to Template.
func TestTemplateEndiannessSymmetry(t *testing.T) {
	var le []byte
	le = putU16LE(le, 0x0001)
	le = putU16LE(le, 111)
	le = putU16LE(le, 222)
	le = putU16LE(le, 333)
	le = putU32LE(le, 7)

	var be []byte
	// The mark field's on-disk bytes are the big-endian encoding of value
	// 1; read as little-endian (the loader's first-pass assumption) that
	// byte pair is 0x0100, the documented "re-read swapped" sentinel.
	be = putU16BE(be, 0x0001)
	be = putU16BE(be, 111)
	be = putU16BE(be, 222)
	be = putU16BE(be, 333)
	be = putU32BE(be, 7)

	tLE, err := records.DecodeTemplate(le)
	require.NoError(t, err)
	tBE, err := records.DecodeTemplate(be)
	require.NoError(t, err)
	assert.Equal(t, tLE, tBE)
}

func TestDecodeMaterial(t *testing.T) {
	var buf []byte
	buf = putU16LE(buf, 0x0001)
	buf = append(buf, 5, 0) // color index 5, pad
	buf = putU16LE(buf, 10000)
	buf = putU16LE(buf, 20000)
	buf = putU16LE(buf, 30000)
	buf = putU16LE(buf, 16)

	m, err := records.DecodeMaterial(buf)
	require.NoError(t, err)
	assert.EqualValues(t, 5, m.ColorIndex)
	assert.EqualValues(t, 16, m.SpecularExponent)
}

func TestDecodeTextureMapRejectsNonzeroOrigin(t *testing.T) {
	var buf []byte
	buf = putU16LE(buf, 0x0001)
	buf = putU16LE(buf, 4) // width
	buf = putU16LE(buf, 2) // height
	buf = putU16LE(buf, 4) // stride
	buf = putU32LE(buf, 0) // flags: format 0 (palettized8)
	buf = putU16LE(buf, 1) // nonzero origin x
	buf = putU16LE(buf, 0)
	buf = append(buf, make([]byte, 8)...) // pixel data

	_, err := records.DecodeTextureMap(buf)
	require.Error(t, err)
}

func TestDecodeTextureMapHonorsStride(t *testing.T) {
	var buf []byte
	buf = putU16LE(buf, 0x0001)
	buf = putU16LE(buf, 2) // width
	buf = putU16LE(buf, 2) // height
	buf = putU16LE(buf, 4) // stride (2 bytes of padding per row)
	buf = putU32LE(buf, 0)
	buf = putU16LE(buf, 0)
	buf = putU16LE(buf, 0)
	buf = append(buf, 1, 2, 0xAA, 0xAA) // row 0: significant [1,2], pad
	buf = append(buf, 3, 4, 0xAA, 0xAA) // row 1: significant [3,4], pad

	tm, err := records.DecodeTextureMap(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, tm.Row(0))
	assert.Equal(t, []byte{3, 4}, tm.Row(1))
}

func TestTextureTransformIdentityRoundTrips(t *testing.T) {
	id := records.Identity()
	p := id.Apply([2]float64{0.25, 0.75})
	assert.InDelta(t, 0.25, p[0], 1e-9)
	assert.InDelta(t, 0.75, p[1], 1e-9)
}

func TestDecodeArmatureRootSentinel(t *testing.T) {
	var buf []byte
	buf = putU16LE(buf, 0x0001) // mark
	buf = putU32LE(buf, 2)      // entry size
	buf = putU32LE(buf, 3)      // count
	buf = putU16LE(buf, records.RootParent)
	buf = putU16LE(buf, 0)
	buf = putU16LE(buf, 0)

	arma, err := records.DecodeArmature(buf)
	require.NoError(t, err)
	require.Len(t, arma.Parents, 3)
	assert.True(t, arma.IsRoot(arma.Parents[0]))
	assert.False(t, arma.IsRoot(arma.Parents[1]))
}

func TestBodyPartSetPartsInGroup(t *testing.T) {
	set := records.BodyPartSet{GroupTags: []uint16{0, 1, 0, 2, 1}}
	assert.Equal(t, []int{0, 2}, set.PartsInGroup(0))
	assert.Equal(t, []int{1, 4}, set.PartsInGroup(1))
	assert.Equal(t, []int{3}, set.PartsInGroup(2))
	assert.Empty(t, set.PartsInGroup(3))
}

func TestDecodeCostumesDefaultIsFirst(t *testing.T) {
	var region []byte
	rec0 := []byte{}
	rec0 = putU16LE(rec0, 1)
	rec0 = putU16LE(rec0, 2)
	rec1 := []byte{}
	rec1 = putU16LE(rec1, 9)

	loc0 := [2]int{len(region), len(rec0)}
	region = append(region, rec0...)
	loc1 := [2]int{len(region), len(rec1)}
	region = append(region, rec1...)

	var buf []byte
	buf = putU16LE(buf, 0x0001)
	buf = putU32LE(buf, 2) // count
	buf = putU32LE(buf, uint32(len(region)))
	buf = putU32LE(buf, 0) // fixedLen: these records have no fixed prefix
	buf = append(buf, region...)
	buf = putU32LE(buf, uint32(loc0[0]))
	buf = putU32LE(buf, uint32(loc0[1]))
	buf = putU32LE(buf, uint32(loc1[0]))
	buf = putU32LE(buf, uint32(loc1[1]))

	costumes, err := records.DecodeCostumes(buf)
	require.NoError(t, err)
	require.Len(t, costumes.MaterialIDs, 2)
	assert.Equal(t, []uint16{1, 2}, costumes.MaterialIDs[0])
	assert.Equal(t, []uint16{9}, costumes.MaterialIDs[1])
}

func TestDecodeAnimationCellParts(t *testing.T) {
	var buf []byte
	buf = putU16LE(buf, 0x0001)
	buf = putU16LE(buf, 0)     // sound id, ignored by consumers but retained
	buf = putU32LE(buf, 65536) // dwr advance == 1.0 in 15.16
	buf = putU16LE(buf, 3)     // part 0: model id
	buf = putU16LE(buf, 7)     //         matrix id
	buf = putU16LE(buf, records.NoMeshPart)
	buf = putU16LE(buf, 0)

	cell, err := records.DecodeAnimationCell(buf)
	require.NoError(t, err)
	require.Len(t, cell.Parts, 2)
	assert.InDelta(t, 1.0, cell.Advance.Float64(), 1e-9)
	assert.True(t, cell.Parts[0].HasMesh())
	assert.False(t, cell.Parts[1].HasMesh())
}

func TestDecodeAnimationTransforms(t *testing.T) {
	var buf []byte
	buf = putU16LE(buf, 0x0001)
	buf = putU32LE(buf, 48) // entry size
	buf = putU32LE(buf, 1)  // count
	for i := 0; i < 12; i++ {
		buf = putU32LE(buf, uint32(int32(65536*int32(i)))) // column-major 15.16 values 0,1,2,...
	}

	xforms, err := records.DecodeAnimationTransforms(buf)
	require.NoError(t, err)
	require.Len(t, xforms.Matrices, 1)
	assert.InDelta(t, 0, xforms.Matrices[0].Columns[0][0].Float64(), 1e-9)
	assert.InDelta(t, 1, xforms.Matrices[0].Columns[0][1].Float64(), 1e-9)
}
