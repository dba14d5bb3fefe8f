// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

// Package util holds the one generic helper shared across chunky2gltf's
// packages that doesn't deserve a whole package of its own.
package util

import (
	"cmp"
	"slices"
)

// SortedMapKeys returns m's keys in ascending order, for output that must
// not depend on Go's randomized map iteration (costume/part IDs in
// written file names and log lines).
func SortedMapKeys[K cmp.Ordered, V any](m map[K]V) []K {
	ret := make([]K, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	slices.Sort(ret)
	return ret
}
