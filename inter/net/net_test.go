// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package net

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/matthewsot/bitwuzla/inter/mocks"
	"github.com/matthewsot/bitwuzla/z"
)

// ToS must forward every call to the wrapped solver and report nil
// errors.
func TestToSForwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := mocks.NewMockS(ctrl)

	lit := z.Dimacs2Lit(3)
	m.EXPECT().Add(lit)
	m.EXPECT().Solve().Return(1)
	m.EXPECT().Value(lit).Return(true)
	m.EXPECT().Assume(lit)
	m.EXPECT().Why(gomock.Nil()).Return([]z.Lit{lit})

	w := ToS(m)
	if err := w.Add(lit); err != nil {
		t.Fatal(err)
	}
	r, err := w.Solve()
	if err != nil || r != 1 {
		t.Fatalf("solve forwarding: %d, %v", r, err)
	}
	v, err := w.Value(lit)
	if err != nil || !v {
		t.Fatalf("value forwarding: %t, %v", v, err)
	}
	if err := w.Assume(lit); err != nil {
		t.Fatal(err)
	}
	why, err := w.Why(nil)
	if err != nil || len(why) != 1 || why[0] != lit {
		t.Fatalf("why forwarding: %v, %v", why, err)
	}
}
