// Package cnf implements the flat CNF formula and cube primitives of
// spec.md's logic layer: a Formula is a sequence of literals with
// z.LitNull-terminated clauses, and a Cube is a sorted literal vector under
// the cube order (z.Less).
package cnf

import "github.com/JakubSarnik/pdrtpa/z"

// Formula is a flat sequence of literals with z.LitNull separators marking
// clause ends, mirroring the teacher's dimacs-oriented Adder contract
// (clauses built by Add'ing literals then a terminating zero).
type Formula struct {
	lits []z.Lit
}

// NewFormula creates an empty formula.
func NewFormula() *Formula {
	return &Formula{}
}

// Literals returns the raw flat literal stream, including separators.
func (f *Formula) Literals() []z.Lit {
	return f.lits
}

// AddClause appends one clause (without a trailing separator in the
// argument) followed by its terminator.
func (f *Formula) AddClause(lits ...z.Lit) {
	f.lits = append(f.lits, lits...)
	f.lits = append(f.lits, z.LitNull)
}

// Clauses returns the formula split into individual clauses (separators
// stripped).
func (f *Formula) Clauses() [][]z.Lit {
	var out [][]z.Lit
	start := 0
	for i, m := range f.lits {
		if m == z.LitNull {
			out = append(out, f.lits[start:i])
			start = i + 1
		}
	}
	return out
}

// Map returns a new formula obtained by applying g pointwise to every
// non-separator literal, preserving clause boundaries.
func (f *Formula) Map(g func(z.Lit) z.Lit) *Formula {
	out := &Formula{lits: make([]z.Lit, len(f.lits))}
	for i, m := range f.lits {
		if m == z.LitNull {
			out.lits[i] = z.LitNull
		} else {
			out.lits[i] = g(m)
		}
	}
	return out
}

// Activate returns a new formula equivalent to a -> F: every clause C of f
// becomes C or not(a).
func (f *Formula) Activate(a z.Lit) *Formula {
	out := &Formula{}
	na := a.Not()
	clause := []z.Lit{}
	for _, m := range f.lits {
		if m == z.LitNull {
			clause = append(clause, na)
			out.lits = append(out.lits, clause...)
			out.lits = append(out.lits, z.LitNull)
			clause = clause[:0]
		} else {
			clause = append(clause, m)
		}
	}
	return out
}

// AsCube converts f to a Cube, requiring every clause to be a unit clause.
// Panics if any clause is not a unit.
func (f *Formula) AsCube() Cube {
	var lits []z.Lit
	for _, cl := range f.Clauses() {
		if len(cl) != 1 {
			panic("cnf: AsCube requires every clause to be a unit clause")
		}
		lits = append(lits, cl[0])
	}
	return NewCube(lits)
}
