// Package simplify implements the pure, one-shot CNF pre-pass run on each of
// a transition system's three formulas before they reach the verifier: unit
// propagation and subsumption removal. It only ever removes or shrinks
// clauses, never variables, so the formula's variable ranges stay valid
// under the resulting Formula.
//
// Grounded on other_examples/crillab-gophersat__preprocess.go's commented-out
// Clause.Subsumes/Simplify/preprocess (unit-literal fixpoint over an occurs
// list, resolution-based clause generation) and cnf.Cube.Subsumes, which
// already implements exactly the subset check that package needs a Clause
// method for.
package simplify

import (
	"sort"

	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/tsys"
	"github.com/JakubSarnik/pdrtpa/z"
)

// System runs Formula over sys's Init, Trans and Error independently,
// returning a new System with the same variable ranges and initial_cube.
// Each formula is self-contained (spec.md's builder asserts Init/Trans/Error
// into separate solver instances), so simplifying them independently, rather
// than as one combined formula, preserves exactly the meaning each one had.
func System(sys *tsys.System) *tsys.System {
	return tsys.New(
		sys.InputVars(), sys.StateVars(), sys.NextStateVars(), sys.AuxVars(),
		sys.InitialCube(),
		Formula(sys.Init()), Formula(sys.Trans()), Formula(sys.Error()),
	)
}

// Formula runs unit propagation to a fixpoint and then removes every clause
// subsumed by another surviving clause, returning a new, equivalent formula.
func Formula(f *cnf.Formula) *cnf.Formula {
	clauses := f.Clauses()

	clauses = propagateUnits(clauses)
	clauses = removeSubsumed(clauses)

	out := cnf.NewFormula()
	for _, c := range clauses {
		out.AddClause(c...)
	}
	return out
}

// propagateUnits repeatedly finds a unit clause, fixes its literal true, and
// simplifies the remaining clauses accordingly: a clause containing the
// forced literal is dropped (satisfied), and the forced literal's negation
// is removed from every clause that still contains it. A clause driven to
// empty is kept as an explicit contradiction (the formula is UNSAT) rather
// than silently dropped.
func propagateUnits(clauses [][]z.Lit) [][]z.Lit {
	forced := make(map[z.Lit]bool)

	for {
		unitIdx := -1
		for i, c := range clauses {
			if len(c) == 1 && !forced[c[0]] {
				unitIdx = i
				break
			}
		}
		if unitIdx == -1 {
			break
		}
		lit := clauses[unitIdx][0]
		forced[lit] = true

		var next [][]z.Lit
		for _, c := range clauses {
			if containsLit(c, lit) {
				continue // satisfied
			}
			shrunk := removeLit(c, lit.Not())
			next = append(next, shrunk)
		}
		clauses = next
	}

	// Facts driven out by propagation are still constraints the formula
	// must carry; a clause satisfied along the way was dropped precisely
	// because the forced literal already implies it, but the literal itself
	// must survive as its own unit clause.
	for lit := range forced {
		clauses = append(clauses, []z.Lit{lit})
	}
	return clauses
}

func containsLit(c []z.Lit, lit z.Lit) bool {
	for _, m := range c {
		if m == lit {
			return true
		}
	}
	return false
}

func removeLit(c []z.Lit, lit z.Lit) []z.Lit {
	out := make([]z.Lit, 0, len(c))
	for _, m := range c {
		if m != lit {
			out = append(out, m)
		}
	}
	return out
}

// removeSubsumed drops every clause D for which some other surviving clause
// C's literal set is a subset of D's: C already implies D, so keeping D adds
// nothing. Shorter clauses are checked first since a clause can only subsume
// one at least as long as itself; of two identical clauses, the one checked
// first is kept.
func removeSubsumed(clauses [][]z.Lit) [][]z.Lit {
	cubes := make([]cnf.Cube, len(clauses))
	order := make([]int, len(clauses))
	for i, c := range clauses {
		cubes[i] = cnf.NewCube(c)
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return cubes[order[i]].Len() < cubes[order[j]].Len() })

	removed := make([]bool, len(clauses))
	for _, i := range order {
		if removed[i] {
			continue
		}
		for _, j := range order {
			if i == j || removed[j] {
				continue
			}
			if cubes[j].Len() < cubes[i].Len() {
				continue
			}
			if cubes[i].Subsumes(cubes[j]) {
				removed[j] = true
			}
		}
	}

	var out [][]z.Lit
	for i, c := range clauses {
		if !removed[i] {
			out = append(out, c)
		}
	}
	return out
}
