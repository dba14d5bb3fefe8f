// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lukeshu-labs/chunky2gltf/lib/util"
)

func TestSortedMapKeys(t *testing.T) {
	t.Parallel()
	m := map[int]string{3: "c", 1: "a", 2: "b"}
	assert.Equal(t, []int{1, 2, 3}, util.SortedMapKeys(m))
}

func TestSortedMapKeysEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, util.SortedMapKeys(map[string]int{}))
}
