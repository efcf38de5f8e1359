// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package crisp

import "fmt"

type Version uint32

const (
	V = Version(1 << 23)
)

func (v Version) Major() int {
	return int(v >> 23)
}

func (v Version) Minor() int {
	return int(v & 0xfffff)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}
