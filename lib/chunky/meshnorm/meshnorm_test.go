// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package meshnorm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/meshnorm"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

func mag(v records.Vec3) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// TestReconstructSingleTriangle covers a lone face: each of its three
// vertex-normal accumulations reduces to exactly its own face normal, so the welding
// behavior degenerates to the trivial per-vertex case.
func TestReconstructSingleTriangle(t *testing.T) {
	mesh := &records.ModelMesh{
		Vertices: []records.Vertex{
			{Position: records.Vec3{X: 0, Y: 0, Z: 0}},
			{Position: records.Vec3{X: 1, Y: 0, Z: 0}},
			{Position: records.Vec3{X: 0, Y: 1, Z: 0}},
		},
		Faces: []records.Face{
			{VertexIndices: [3]uint16{0, 1, 2}, Smoothing: 0},
		},
	}

	meshnorm.Reconstruct(mesh)

	// a = v0-v1 = (-1,0,0); b = v2-v0 = (0,1,0); a x b = (0*0-0*1, 0*0-(-1)*0, -1*1-0*0) = (0,0,-1)
	// normalize then invert sign -> (0,0,1).
	assert.InDelta(t, 0, mesh.Faces[0].Normal.X, 1e-6)
	assert.InDelta(t, 0, mesh.Faces[0].Normal.Y, 1e-6)
	assert.InDelta(t, 1, mesh.Faces[0].Normal.Z, 1e-6)

	// Smoothing 0 was promoted, so it is nonzero (in every group).
	assert.EqualValues(t, 0xFFFF, mesh.Faces[0].Smoothing)

	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1.0, mag(v.Normal), 1e-6)
	}
}

// TestReconstructDegenerateFaceSubstitutesDefault covers the near-zero
// cross product substitution.
func TestReconstructDegenerateFaceSubstitutesDefault(t *testing.T) {
	mesh := &records.ModelMesh{
		Vertices: []records.Vertex{
			{Position: records.Vec3{X: 0, Y: 0, Z: 0}},
			{Position: records.Vec3{X: 1, Y: 0, Z: 0}},
			{Position: records.Vec3{X: 2, Y: 0, Z: 0}}, // collinear: zero-area triangle
		},
		Faces: []records.Face{
			{VertexIndices: [3]uint16{0, 1, 2}},
		},
	}

	meshnorm.Reconstruct(mesh)

	assert.Equal(t, records.Vec3{X: 0, Y: 0, Z: 1}, mesh.Faces[0].Normal)
}

// TestReconstructWeldsCoincidentVertices covers the welding-cluster
// accumulation of step 3: two faces sharing a position (but distinct
// vertex-array slots, as a real mesh would have for a UV seam) and
// overlapping smoothing groups both contribute to each other's normal.
func TestReconstructWeldsCoincidentVertices(t *testing.T) {
	shared := records.Vec3{X: 5, Y: 5, Z: 5}
	mesh := &records.ModelMesh{
		Vertices: []records.Vertex{
			{Position: shared},                        // 0: shared by both faces
			{Position: records.Vec3{X: 1, Y: 0, Z: 0}}, // 1
			{Position: records.Vec3{X: 0, Y: 1, Z: 0}}, // 2
			{Position: shared},                         // 3: same position as 0, different slot
			{Position: records.Vec3{X: -1, Y: 0, Z: 0}}, // 4
			{Position: records.Vec3{X: 0, Y: -1, Z: 0}}, // 5
		},
		Faces: []records.Face{
			{VertexIndices: [3]uint16{0, 1, 2}, Smoothing: 1},
			{VertexIndices: [3]uint16{3, 4, 5}, Smoothing: 1},
		},
	}

	meshnorm.Reconstruct(mesh)

	// Both welded vertices (0 and 3) accumulate both faces' normals, since
	// their smoothing groups overlap (1&1 != 0); they must end up with the
	// identical final normal despite being separate vertex-array entries.
	assert.Equal(t, mesh.Vertices[0].Normal, mesh.Vertices[3].Normal)
}
