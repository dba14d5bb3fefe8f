// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package gltfdoc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

func identityAffine(tx, ty, tz float64) records.AffineMatrix {
	var m records.AffineMatrix
	m.Columns[0] = [3]records.Fixed16_16{fromFloat(1), fromFloat(0), fromFloat(0)}
	m.Columns[1] = [3]records.Fixed16_16{fromFloat(0), fromFloat(1), fromFloat(0)}
	m.Columns[2] = [3]records.Fixed16_16{fromFloat(0), fromFloat(0), fromFloat(1)}
	m.Columns[3] = [3]records.Fixed16_16{fromFloat(tx), fromFloat(ty), fromFloat(tz)}
	return m
}

func fromFloat(f float64) records.Fixed16_16 {
	return records.Fixed16_16(int32(f * 65536))
}

func TestDecomposeJointIdentityRotationUnitScale(t *testing.T) {
	m := identityAffine(1, 2, 3)
	scale, rotation, translation := decomposeJoint(m)

	assert.InDelta(t, 1, scale[0], 1e-3)
	assert.InDelta(t, 1, scale[1], 1e-3)
	assert.InDelta(t, 1, scale[2], 1e-3)

	assert.InDelta(t, 0, rotation[0], 1e-3)
	assert.InDelta(t, 0, rotation[1], 1e-3)
	assert.InDelta(t, 0, rotation[2], 1e-3)
	assert.InDelta(t, 1, rotation[3], 1e-3)

	assert.InDelta(t, 1, translation[0], 1e-3)
	assert.InDelta(t, 2, translation[1], 1e-3)
	assert.InDelta(t, 3, translation[2], 1e-3)
}

func simpleMesh() *records.ModelMesh {
	return &records.ModelMesh{
		Vertices: []records.Vertex{
			{Position: records.Vec3{X: 0, Y: 0, Z: 0}, U: 0, V: 0, Normal: records.Vec3{X: 0, Y: 0, Z: 1}},
			{Position: records.Vec3{X: 1, Y: 0, Z: 0}, U: 1, V: 0, Normal: records.Vec3{X: 0, Y: 0, Z: 1}},
			{Position: records.Vec3{X: 0, Y: 1, Z: 0}, U: 0, V: 1, Normal: records.Vec3{X: 0, Y: 0, Z: 1}},
		},
		Faces: []records.Face{
			{VertexIndices: [3]uint16{0, 1, 2}},
		},
	}
}

func TestAddPartMeshProducesExpectedAccessors(t *testing.T) {
	b := NewBuilder("test")
	meshIdx := b.AddPartMesh("part0", simpleMesh(), nil)
	doc, bin := b.Finish()

	require.Len(t, doc.Meshes, 1)
	prim := doc.Meshes[meshIdx].Primitives[0]
	assert.Contains(t, prim.Attributes, "POSITION")
	assert.Contains(t, prim.Attributes, "NORMAL")
	assert.Contains(t, prim.Attributes, "TEXCOORD_0")
	require.NotNil(t, prim.Indices)

	idxAcc := doc.Accessors[*prim.Indices]
	assert.Equal(t, 3, idxAcc.Count)
	assert.Equal(t, ComponentTypeUnsignedShort, idxAcc.ComponentType)

	posAcc := doc.Accessors[prim.Attributes["POSITION"]]
	assert.Equal(t, 3, posAcc.Count)
	assert.NotEmpty(t, posAcc.Min)
	assert.NotEmpty(t, posAcc.Max)

	assert.Equal(t, len(bin), doc.Buffers[0].ByteLength)
}

func TestWriteGLBHeaderAndAlignment(t *testing.T) {
	b := NewBuilder("test")
	b.AddPartMesh("part0", simpleMesh(), nil)
	doc, bin := b.Finish()

	data, err := WriteGLB(doc, bin)
	require.NoError(t, err)

	assert.Equal(t, uint32(glbMagic), binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, uint32(glbVersion), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(data[8:12]))

	jsonLen := binary.LittleEndian.Uint32(data[12:16])
	assert.Equal(t, uint32(glbChunkJSON), binary.LittleEndian.Uint32(data[16:20]))
	assert.Equal(t, 0, int(jsonLen)%4)

	binChunkLenOffset := glbHeaderLen + chunkHeaderLen + int(jsonLen)
	binLen := binary.LittleEndian.Uint32(data[binChunkLenOffset : binChunkLenOffset+4])
	assert.Equal(t, uint32(glbChunkBIN), binary.LittleEndian.Uint32(data[binChunkLenOffset+4:binChunkLenOffset+8]))
	assert.Equal(t, 0, int(binLen)%4)
}
