// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package node

import "github.com/davecgh/go-spew/spew"

var debugConf = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Debug renders the full record of a term for logging and test
// failure output.  This is a structural dump, distinct from the
// SMT-LIB printer.
func Debug(t Term) string {
	if t.d == nil {
		return "<nil-term>"
	}
	return debugConf.Sdump(struct {
		Id      uint64
		Kind    string
		Sort    string
		Childs  []uint64
		Indices []uint32
		Symbol  string
	}{
		Id:      t.d.id,
		Kind:    t.d.kind.String(),
		Sort:    t.d.sort.String(),
		Childs:  childIds(t),
		Indices: t.d.indices,
		Symbol:  t.d.symbol,
	})
}

func childIds(t Term) []uint64 {
	out := make([]uint64, 0, len(t.d.childs))
	for _, c := range t.d.childs {
		out = append(out, c.Id())
	}
	return out
}
