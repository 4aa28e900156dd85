// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "testing"

func TestLitDimacs(t *testing.T) {
	for i := 1; i < 100; i++ {
		if Dimacs2Lit(i).Dimacs() != i {
			t.Errorf("dimacs conversion %d", i)
		}
		if Dimacs2Lit(-i).Dimacs() != -i {
			t.Errorf("dimacs - conversion %d", i)
		}
		if !Dimacs2Lit(i).IsPos() {
			t.Errorf("not positive: %d", i)
		}
		if Dimacs2Lit(-i).IsPos() {
			t.Errorf("not negative: -%d", i)
		}
	}
}

func TestLitDoubleNegation(t *testing.T) {
	for i := 1; i < 100; i++ {
		m := Dimacs2Lit(i)
		if m.Not().Not() != m {
			t.Errorf("!!%d != %d", i, i)
		}
	}
}

func TestCubeOrder(t *testing.T) {
	v1, v2 := Var(1), Var(2)
	if !Less(v1.Pos(), v2.Pos()) {
		t.Errorf("lower variable must sort first")
	}
	if !Less(v1.Neg(), v1.Pos()) {
		t.Errorf("negative literal must sort before positive for same var")
	}
	if Less(v1.Pos(), v1.Neg()) {
		t.Errorf("positive literal must not sort before negative for same var")
	}
}
