// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package xo

import "fmt"

// CLoc identifies a clause stored in a Cdb: index 0 (CLocNull) is
// reserved, so a real clause is never confused with "no reason"/"no
// clause".
type CLoc uint32

const (
	CLocNull CLoc = 0
	CLocInf       = 0xffffffff
)

func (p CLoc) String() string {
	return fmt.Sprintf("c%d", p)
}
