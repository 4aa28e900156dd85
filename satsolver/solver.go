// Package satsolver provides the incremental SAT-solving capability spec.md
// §3 treats as a black box: assumption-scoped queries, persistent asserted
// clauses, satisfying models and failed-assumption cores.
//
// spec.md explicitly puts the solver's internal search strategy out of
// scope (it names CaDiCaL as the reference implementation's engine, which
// is neither a Go library nor portable here). Rather than vendor a large
// production CDCL engine for a component the specification deliberately
// abstracts away, this package backs the wrapper with a small from-scratch
// DPLL engine (dpll.go) and recovers a failed-assumption core by the
// standard deletion-based method: drop each assumption in turn and re-check
// satisfiability without it. See DESIGN.md for the full rationale.
package satsolver

import (
	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/z"
)

// Solver owns a growable, persistent clause database. Clauses asserted via
// AssertFormula or Add remain in the database for every subsequent query;
// only assumptions are scoped to a single Query.
type Solver struct {
	clauses [][]z.Lit
	maxVar  z.Var

	pending []z.Lit // clause under construction via Add

	lastAssumps []z.Lit
	lastSat     bool
	lastModel   []bool
	haveResult  bool
	coreCache   map[z.Lit]bool
}

// New returns a Solver with no clauses asserted yet.
func New() *Solver {
	return &Solver{}
}

func (s *Solver) bump(v z.Var) {
	if v > s.maxVar {
		s.maxVar = v
	}
}

// Add appends lit to the clause currently under construction, or — if lit
// is z.LitNull — terminates and asserts that clause. This mirrors the
// teacher's incremental Adder convention (Add(lits...int) with a trailing
// 0 ending a clause).
func (s *Solver) Add(lit z.Lit) {
	if lit == z.LitNull {
		cl := make([]z.Lit, len(s.pending))
		copy(cl, s.pending)
		s.clauses = append(s.clauses, cl)
		s.pending = s.pending[:0]
		return
	}
	s.bump(lit.Var())
	s.pending = append(s.pending, lit)
}

// AssertFormula adds every clause of f to the persistent database.
func (s *Solver) AssertFormula(f *cnf.Formula) {
	for _, cl := range f.Clauses() {
		for _, m := range cl {
			s.bump(m.Var())
		}
		cp := make([]z.Lit, len(cl))
		copy(cp, cl)
		s.clauses = append(s.clauses, cp)
	}
}

// Query starts building a new assumption-scoped satisfiability query.
func (s *Solver) Query() *Query {
	return &Query{s: s}
}

// Query accumulates assumptions for a single IsSat call.
type Query struct {
	s       *Solver
	assumps []z.Lit
}

// Assume adds a single assumed literal.
func (q *Query) Assume(lit z.Lit) *Query {
	q.assumps = append(q.assumps, lit)
	return q
}

// AssumeSpan adds every literal of lits as an assumption.
func (q *Query) AssumeSpan(lits []z.Lit) *Query {
	q.assumps = append(q.assumps, lits...)
	return q
}

// IsSat runs the query and caches its result (model or core material) on
// the underlying Solver for retrieval via Model and Core.
func (q *Query) IsSat() bool {
	for _, m := range q.assumps {
		q.s.bump(m.Var())
	}
	sat, model := solveDPLL(q.s.clauses, q.assumps, q.s.maxVar)
	q.s.lastAssumps = q.assumps
	q.s.lastSat = sat
	q.s.lastModel = model
	q.s.haveResult = true
	q.s.coreCache = nil
	return sat
}

// Model returns the truth value of every literal in r under the last
// satisfying assignment found. Panics if the last query was not
// satisfiable.
func (s *Solver) Model(r z.Range) []z.Lit {
	if !s.haveResult || !s.lastSat {
		panic("satsolver: Model called without a satisfiable query")
	}
	out := make([]z.Lit, 0, r.Size())
	for i := 0; i < r.Size(); i++ {
		v := r.Nth(i)
		if int(v) < len(s.lastModel) && s.lastModel[v] {
			out = append(out, v.Pos())
		} else {
			out = append(out, v.Neg())
		}
	}
	return out
}

// Core returns the subset of candidates that is a failed-assumption core
// of the last (unsatisfiable) query: a subset of the literals assumed in
// that query whose conjunction with the clause database is already
// unsatisfiable, restricted to those also present in candidates. Panics if
// the last query was satisfiable.
func (s *Solver) Core(candidates []z.Lit) []z.Lit {
	if !s.haveResult || s.lastSat {
		panic("satsolver: Core called without an unsatisfiable query")
	}
	if s.coreCache == nil {
		s.coreCache = s.computeCore()
	}
	out := make([]z.Lit, 0, len(candidates))
	for _, m := range candidates {
		if s.coreCache[m] {
			out = append(out, m)
		}
	}
	return out
}

// computeCore applies deletion-based core extraction: repeatedly try
// dropping one assumption from the working set; if the remainder (plus the
// clause database) is still unsatisfiable, the dropped literal was
// unnecessary and stays out for good. What survives is unsatisfiable by
// construction and a (not necessarily minimum) subset of the original
// assumptions.
func (s *Solver) computeCore() map[z.Lit]bool {
	working := append([]z.Lit(nil), s.lastAssumps...)
	for i := 0; i < len(working); {
		trial := make([]z.Lit, 0, len(working)-1)
		trial = append(trial, working[:i]...)
		trial = append(trial, working[i+1:]...)
		if sat, _ := solveDPLL(s.clauses, trial, s.maxVar); !sat {
			working = trial
			continue
		}
		i++
	}
	core := make(map[z.Lit]bool, len(working))
	for _, m := range working {
		core[m] = true
	}
	return core
}
