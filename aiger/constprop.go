package aiger

// trueSet records AIGER literals known to be constantly true; a literal m is
// constantly false iff its negation (m^1) is in the set. Grounded on
// original_source/src/aiger_builder.cpp's propagate_trues/is_true/is_false.
type trueSet map[uint32]bool

func (ts trueSet) isTrue(lit uint32) bool  { return ts[lit] }
func (ts trueSet) isFalse(lit uint32) bool { return ts[lit^1] }
func (ts trueSet) isDecided(lit uint32) bool {
	return ts.isTrue(lit) || ts.isFalse(lit)
}

// propagateConstants computes the fixpoint of constant AND-gate outputs: a
// gate is constantly true iff both its inputs are, constantly false iff
// either input is.
func propagateConstants(g *Graph) trueSet {
	ts := trueSet{1: true} // AIGER literal 1 is the constant-true literal.

	changed := true
	for changed {
		changed = false
		for i := range g.ands {
			a := &g.ands[i]
			if ts.isDecided(a.lhs) {
				continue
			}
			switch {
			case ts.isTrue(a.rhs0) && ts.isTrue(a.rhs1):
				ts[a.lhs] = true
				changed = true
			case ts.isFalse(a.rhs0) || ts.isFalse(a.rhs1):
				ts[a.lhs^1] = true
				changed = true
			}
		}
	}
	return ts
}
