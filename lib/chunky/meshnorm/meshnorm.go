// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package meshnorm reconstructs face and vertex normals for a model mesh
// that was stored without precomputed ones: Radius == 0 is
// the on-disk signal that a mesh needs this recomputation.
package meshnorm

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

// promotedSmoothing is the smoothing-group mask a face with mask 0 is
// promoted to: "in every group".
const promotedSmoothing = 0xFFFF

// degenerateEpsilon is the squared-magnitude threshold below which a
// cross product (face normal) or accumulated sum (vertex normal) is
// treated as degenerate.
const degenerateEpsilon = 1e-4

func vec3(v records.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func toRecordsVec3(v mgl32.Vec3) records.Vec3 {
	return records.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// Reconstruct recomputes mesh.Faces[*].Normal/PlaneD and
// mesh.Vertices[*].Normal in place. Callers should only invoke this when
// mesh.Radius == 0; it is unconditional here so tests can exercise it
// directly.
func Reconstruct(mesh *records.ModelMesh) {
	computeFaceNormals(mesh)
	promoteSmoothingGroups(mesh)
	accumulateVertexNormals(mesh)
}

// computeFaceNormals implements step 1: for v0, v1, v2 the face's vertex
// positions, a = v0 - v1, b = v2 - v0, normal = normalize(a x b) with
// signs inverted; a near-zero cross product substitutes (0, 0, 1). The
// face-plane constant d = n . v0.
func computeFaceNormals(mesh *records.ModelMesh) {
	for i := range mesh.Faces {
		f := &mesh.Faces[i]
		v0 := vec3(mesh.Vertices[f.VertexIndices[0]].Position)
		v1 := vec3(mesh.Vertices[f.VertexIndices[1]].Position)
		v2 := vec3(mesh.Vertices[f.VertexIndices[2]].Position)

		a := v0.Sub(v1)
		b := v2.Sub(v0)
		cross := a.Cross(b)

		var n mgl32.Vec3
		if cross.Dot(cross) < degenerateEpsilon {
			n = mgl32.Vec3{0, 0, 1}
		} else {
			n = cross.Normalize().Mul(-1)
		}

		f.Normal = toRecordsVec3(n)
		f.PlaneD = float64(n.Dot(v0))
	}
}

// promoteSmoothingGroups implements step 2.
func promoteSmoothingGroups(mesh *records.ModelMesh) {
	for i := range mesh.Faces {
		if mesh.Faces[i].Smoothing == 0 {
			mesh.Faces[i].Smoothing = promotedSmoothing
		}
	}
}

type incidence struct {
	vertex int
	face   int
}

// accumulateVertexNormals implements steps 3-4: build the (vertex, face)
// incidence list, sort it by the incident vertex's position (not its
// index) so positionally-coincident vertices -- a welding cluster -- are
// contiguous, then within each cluster accumulate every other incident
// face's normal whose smoothing group overlaps, and normalize.
//
// This is deliberately the naive quadratic-in-cluster-size algorithm the
// legacy engine used; its order of operations (which face contributes to
// which accumulator, and in what order summed) must be preserved for
// bit-identical output, so it is not rewritten into a spatial-hash version.
func accumulateVertexNormals(mesh *records.ModelMesh) {
	var incidences []incidence
	for fi, f := range mesh.Faces {
		for _, vi := range f.VertexIndices {
			incidences = append(incidences, incidence{vertex: int(vi), face: fi})
		}
	}

	position := func(inc incidence) records.Vec3 { return mesh.Vertices[inc.vertex].Position }
	sort.SliceStable(incidences, func(i, j int) bool {
		pi, pj := position(incidences[i]), position(incidences[j])
		if pi.X != pj.X {
			return pi.X < pj.X
		}
		if pi.Y != pj.Y {
			return pi.Y < pj.Y
		}
		return pi.Z < pj.Z
	})

	accum := make([]mgl32.Vec3, len(mesh.Vertices))

	start := 0
	for start < len(incidences) {
		end := start + 1
		p := position(incidences[start])
		for end < len(incidences) && position(incidences[end]) == p {
			end++
		}
		cluster := incidences[start:end]

		for _, ii := range cluster {
			for _, jj := range cluster {
				if mesh.Faces[ii.face].Smoothing&mesh.Faces[jj.face].Smoothing != 0 {
					accum[ii.vertex] = accum[ii.vertex].Add(vec3(mesh.Faces[jj.face].Normal))
				}
			}
		}

		start = end
	}

	for vi := range mesh.Vertices {
		n := accum[vi]
		if n.Dot(n) < degenerateEpsilon {
			mesh.Vertices[vi].Normal = records.Vec3{X: 0, Y: 0, Z: -1}
		} else {
			mesh.Vertices[vi].Normal = toRecordsVec3(n.Normalize())
		}
	}
}
