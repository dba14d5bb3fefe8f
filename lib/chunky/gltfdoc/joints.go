// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package gltfdoc

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/records"
)

// decomposeJoint implements a QR-like decomposition of a joint's rest
// matrix: per-axis scale is the row magnitude of the upper-left 3x3, rotation is
// the unit quaternion of the scale-removed matrix, translation is the
// matrix's own translation column.
func decomposeJoint(m records.AffineMatrix) (scale [3]float32, rotation [4]float32, translation [3]float32) {
	var rows [3][3]float64
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			rows[r][c] = m.Columns[c][r].Float64()
		}
	}

	var s [3]float64
	for r := 0; r < 3; r++ {
		mag := math.Sqrt(rows[r][0]*rows[r][0] + rows[r][1]*rows[r][1] + rows[r][2]*rows[r][2])
		if mag < 1e-8 {
			mag = 1
		}
		s[r] = mag
	}

	var rot [3][3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rot[r][c] = rows[r][c] / s[r]
		}
	}

	q := quatFromRotationMatrix(rot)

	return [3]float32{float32(s[0]), float32(s[1]), float32(s[2])},
		[4]float32{q.V[0], q.V[1], q.V[2], q.W},
		[3]float32{
			float32(m.Columns[3][0].Float64()),
			float32(m.Columns[3][1].Float64()),
			float32(m.Columns[3][2].Float64()),
		}
}

// quatFromRotationMatrix converts a row-major 3x3 rotation matrix to a
// unit quaternion via Shepperd's method (numerically stable across all
// rotation angles, unlike the naive trace formula alone).
func quatFromRotationMatrix(m [3][3]float64) mgl32.Quat {
	trace := m[0][0] + m[1][1] + m[2][2]

	var w, x, y, z float64
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		w = s / 4
		x = (m[2][1] - m[1][2]) / s
		y = (m[0][2] - m[2][0]) / s
		z = (m[1][0] - m[0][1]) / s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		w = (m[2][1] - m[1][2]) / s
		x = s / 4
		y = (m[0][1] + m[1][0]) / s
		z = (m[0][2] + m[2][0]) / s
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		w = (m[0][2] - m[2][0]) / s
		x = (m[0][1] + m[1][0]) / s
		y = s / 4
		z = (m[1][2] + m[2][1]) / s
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		w = (m[1][0] - m[0][1]) / s
		x = (m[0][2] + m[2][0]) / s
		y = (m[1][2] + m[2][1]) / s
		z = s / 4
	}

	return mgl32.Quat{W: float32(w), V: mgl32.Vec3{float32(x), float32(y), float32(z)}}
}
