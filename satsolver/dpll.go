package satsolver

import "github.com/JakubSarnik/pdrtpa/z"

// assignment is a partial truth assignment: 0 unassigned, 1 true, -1 false.
type assignment struct {
	val []int8 // indexed by z.Var
}

func newAssignment(maxVar z.Var) *assignment {
	return &assignment{val: make([]int8, maxVar+1)}
}

func (a *assignment) get(v z.Var) int8 {
	if int(v) >= len(a.val) {
		return 0
	}
	return a.val[v]
}

func (a *assignment) holds(m z.Lit) bool {
	v := a.get(m.Var())
	if v == 0 {
		return false
	}
	return (v > 0) == m.IsPos()
}

func (a *assignment) conflicts(m z.Lit) bool {
	v := a.get(m.Var())
	if v == 0 {
		return false
	}
	return (v > 0) != m.IsPos()
}

func (a *assignment) set(m z.Lit) {
	if m.IsPos() {
		a.val[m.Var()] = 1
	} else {
		a.val[m.Var()] = -1
	}
}

func (a *assignment) unset(v z.Var) {
	a.val[v] = 0
}

// clauseStatus reports, for a clause under the current assignment: whether
// it is already satisfied, already falsified, or — if exactly one literal
// remains unassigned and every other literal is false — that unit literal.
func clauseStatus(cl []z.Lit, a *assignment) (sat bool, unsat bool, unit z.Lit, isUnit bool) {
	var pending z.Lit
	pendingCount := 0
	for _, m := range cl {
		if a.holds(m) {
			return true, false, 0, false
		}
		if !a.conflicts(m) {
			pending = m
			pendingCount++
		}
	}
	if pendingCount == 0 {
		return false, true, 0, false
	}
	if pendingCount == 1 {
		return false, false, pending, true
	}
	return false, false, 0, false
}

// propagate runs unit propagation to a fixpoint, rescanning every clause
// under the current assignment. It returns false on conflict. Every literal
// it forces is appended to trail.
func propagate(clauses [][]z.Lit, a *assignment, trail *[]z.Lit) bool {
	for {
		progressed := false
		for _, cl := range clauses {
			sat, unsat, unit, isUnit := clauseStatus(cl, a)
			if unsat {
				return false
			}
			if sat {
				continue
			}
			if isUnit {
				a.set(unit)
				*trail = append(*trail, unit)
				progressed = true
			}
		}
		if !progressed {
			return true
		}
	}
}

// assignAndPropagate assigns lit (failing if it conflicts with an existing
// assignment) and propagates to a fixpoint.
func assignAndPropagate(clauses [][]z.Lit, a *assignment, trail *[]z.Lit, lit z.Lit) bool {
	if a.holds(lit) {
		return propagate(clauses, a, trail)
	}
	if a.conflicts(lit) {
		return false
	}
	a.set(lit)
	*trail = append(*trail, lit)
	return propagate(clauses, a, trail)
}

// search extends the (already propagated) assignment to a full model by
// chronological-backtracking DPLL over variables 1..maxVar, or reports
// unsatisfiability.
func search(clauses [][]z.Lit, a *assignment, trail *[]z.Lit, maxVar z.Var) bool {
	next := z.Var(0)
	for v := z.Var(1); v <= maxVar; v++ {
		if a.get(v) == 0 {
			next = v
			break
		}
	}
	if next == 0 {
		return true
	}

	for _, try := range [2]z.Lit{next.Pos(), next.Neg()} {
		mark := len(*trail)
		if assignAndPropagate(clauses, a, trail, try) {
			if search(clauses, a, trail, maxVar) {
				return true
			}
		}
		undo(a, trail, mark)
	}
	return false
}

// undo restores the assignment to the state it had when the trail had
// length mark, unassigning every literal forced since.
func undo(a *assignment, trail *[]z.Lit, mark int) {
	for i := len(*trail) - 1; i >= mark; i-- {
		a.unset((*trail)[i].Var())
	}
	*trail = (*trail)[:mark]
}

// solveDPLL decides satisfiability of clauses under assumps, returning a
// full model (indexed by z.Var, meaningful for 1..maxVar) if satisfiable.
func solveDPLL(clauses [][]z.Lit, assumps []z.Lit, maxVar z.Var) (sat bool, model []bool) {
	a := newAssignment(maxVar)
	trail := make([]z.Lit, 0, len(assumps))
	for _, lit := range assumps {
		if !assignAndPropagate(clauses, a, &trail, lit) {
			return false, nil
		}
	}
	if !search(clauses, a, &trail, maxVar) {
		return false, nil
	}
	model = make([]bool, maxVar+1)
	for v := z.Var(1); v <= maxVar; v++ {
		model[v] = a.get(v) > 0
	}
	return true, model
}
