// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package textui_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/textui"
)

func TestFprintf(t *testing.T) {
	t.Parallel()
	var out strings.Builder
	_, err := textui.Fprintf(&out, "%d", 12345)
	assert.NoError(t, err)
	assert.Equal(t, "12,345", out.String())
}

func TestPortion(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "100% (0/0)", fmt.Sprint(textui.Portion[int]{}))
	assert.Equal(t, "0% (1/12,345)", fmt.Sprint(textui.Portion[int]{N: 1, D: 12345}))
	assert.Equal(t, "50% (1/2)", fmt.Sprint(textui.Portion[uint32]{N: 1, D: 2}))
}
