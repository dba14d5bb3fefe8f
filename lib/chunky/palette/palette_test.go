// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableHas256Entries(t *testing.T) {
	tbl, err := Table()
	require.NoError(t, err)
	assert.Len(t, tbl, 256)
}

func TestTableIsLazyAndStable(t *testing.T) {
	a, err := Table()
	require.NoError(t, err)
	b, err := Table()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLookupRoundTrips(t *testing.T) {
	tbl, err := Table()
	require.NoError(t, err)
	c := Lookup(tbl, 42)
	assert.Equal(t, uint8(0xFF), c.A)
}
