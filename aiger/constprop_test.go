package aiger

import "testing"

// TestPropagateConstantsThroughChain checks that a chain of AND gates
// rooted in the constant-true literal is fully decided by the fixpoint,
// and that a gate with one constantly-false input is decided false.
func TestPropagateConstantsThroughChain(t *testing.T) {
	g := &Graph{andOf: map[uint32]*and{}}
	// var1 = true AND true = true (using literal 1, the constant true).
	g.defineAnd(2, 1, 1)
	// var2 = var1 AND var1 = true (chained).
	g.defineAnd(4, 2, 2)
	// var3 = var1 AND (not var1) = false.
	g.defineAnd(6, 2, 3)

	ts := propagateConstants(g)

	if !ts.isTrue(2) {
		t.Errorf("expected var1 to be constantly true")
	}
	if !ts.isTrue(4) {
		t.Errorf("expected var2 to be constantly true")
	}
	if !ts.isFalse(6) {
		t.Errorf("expected var3 to be constantly false")
	}
}

func TestPropagateConstantsLeavesUndecidedGatesAlone(t *testing.T) {
	g := &Graph{andOf: map[uint32]*and{}, inputs: []uint32{2, 4}}
	g.defineAnd(6, 2, 4) // var3 = input1 AND input2, not constant

	ts := propagateConstants(g)

	if ts.isDecided(6) {
		t.Errorf("expected an AND of two free inputs to remain undecided")
	}
}
