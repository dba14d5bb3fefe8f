// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

// Flags are the low 8 bits of a chunk's packed flags-and-length word.
// DESIGN.md records the canonical bit order chosen here.
type Flags uint8

const (
	FlagExtra Flags = 1 << iota
	FlagLoner
	FlagPacked
	FlagMarkT
	FlagForest
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

func (f Flags) String() string {
	names := []struct {
		bit  Flags
		name string
	}{
		{FlagExtra, "EXTRA"},
		{FlagLoner, "LONER"},
		{FlagPacked, "PACKED"},
		{FlagMarkT, "MARK_T"},
		{FlagForest, "FOREST"},
	}
	out := ""
	for _, n := range names {
		if f.Has(n.bit) {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	if out == "" {
		return "(none)"
	}
	return out
}
