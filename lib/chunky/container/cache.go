// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package container

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// decompressedCache memoizes the decompressed bytes of PACKED chunks keyed
// by ChunkId, so repeated GetChunk/GetChild traversals of a hot chunk (a
// shared mesh referenced by many costumes, say) don't re-run the bit
// decoder. A zero value is usable.
type decompressedCache struct {
	initOnce sync.Once
	inner    *lru.ARCCache
}

const decompressedCacheSize = 256

func (c *decompressedCache) init() {
	c.initOnce.Do(func() {
		c.inner, _ = lru.NewARC(decompressedCacheSize)
	})
}

func (c *decompressedCache) get(id ChunkId) ([]byte, bool) {
	c.init()
	v, ok := c.inner.Get(id)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

func (c *decompressedCache) add(id ChunkId, data []byte) {
	c.init()
	c.inner.Add(id, data)
}
