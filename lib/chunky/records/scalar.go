// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package records decodes the chunky archive's typed record kinds: the
// material, texture map, animation cell, armature, body-part sets,
// costumes, texture transform, and model mesh.
package records

// Fixed16_16 is a signed 15.16 fixed-point scalar stored as a signed
// 32-bit word.
type Fixed16_16 int32

func (f Fixed16_16) Float64() float64 { return float64(f) / 65536 }

// Frac15 is a signed 0.15 fraction stored as a signed 16-bit word.
type Frac15 int16

func (f Frac15) Float32() float32 { return float32(f) / 32768 }

// UFrac16 is an unsigned 0.16 fraction stored as an unsigned 16-bit word.
type UFrac16 uint16

func (f UFrac16) Float32() float32 { return float32(f) / 65536 }
