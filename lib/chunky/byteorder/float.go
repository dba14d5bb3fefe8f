// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package byteorder

import "math"

func float32FromBits(v uint32) float32 { return math.Float32frombits(v) }
