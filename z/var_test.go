// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import (
	"fmt"
	"testing"
)

func TestVar(t *testing.T) {
	v := Var(33)
	m := v.Pos()
	n := v.Neg()
	if m.Sign() != 1 {
		t.Errorf("wrong sign for pos lit %d", m.Sign())
	}
	if n.Sign() != -1 {
		t.Errorf("wrong sign for neg lit %d", n.Sign())
	}
	if m.Not() != n {
		t.Errorf("lit pos/neg not negations")
	}
	if m.Var() != v || n.Var() != v {
		t.Errorf("generated lits not same var")
	}
	if fmt.Sprintf("%s", v) != fmt.Sprintf("v%d", uint32(v)) {
		t.Errorf("format.")
	}
}

func TestRangeBijection(t *testing.T) {
	s := NewStore()
	s.Make() // burn v1 so the range starts at v2, not at the store's first id
	r := s.MakeRange(16)
	for i := 0; i < r.Size(); i++ {
		v := r.Nth(i)
		if r.Offset(v) != i {
			t.Errorf("offset(nth(%d)) = %d, want %d", i, r.Offset(v), i)
		}
		if !r.Contains(v) {
			t.Errorf("range does not contain its own nth(%d)", i)
		}
	}
}

func TestRangesDisjoint(t *testing.T) {
	s := NewStore()
	a := s.MakeRange(4)
	b := s.MakeRange(4)
	for i := 0; i < a.Size(); i++ {
		if b.Contains(a.Nth(i)) {
			t.Errorf("ranges overlap at %v", a.Nth(i))
		}
	}
}
