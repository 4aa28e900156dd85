// Package tsys implements spec.md's transition system: the four disjoint
// variable ranges (inputs, state, next-state, auxiliary), the three CNF
// formulas over them (Init, Trans, Error), and the initial_cube bit vector
// used only for witness printing.
package tsys

import (
	"fmt"

	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/z"
)

// Kind classifies a variable by which of the four disjoint ranges it came
// from.
type Kind int

const (
	KindInput Kind = iota
	KindState
	KindNextState
	KindAuxiliary
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindState:
		return "state"
	case KindNextState:
		return "next_state"
	case KindAuxiliary:
		return "auxiliary"
	default:
		return "unknown"
	}
}

// System is immutable after construction.
type System struct {
	inputVars     z.Range
	stateVars     z.Range
	nextStateVars z.Range
	auxVars       z.Range

	// initialCube is aligned with the original AIG's latch order, which may
	// be wider than stateVars if cone-of-influence pruning dropped latches
	// irrelevant to the error formula (spec.md §3, §9).
	initialCube []bool

	init  *cnf.Formula
	trans *cnf.Formula
	error *cnf.Formula
}

// New constructs a System. Panics (a caller-side precondition violation,
// per spec.md §7) if stateVars and nextStateVars differ in size.
func New(inputVars, stateVars, nextStateVars, auxVars z.Range, initialCube []bool,
	init, trans, errf *cnf.Formula) *System {
	if stateVars.Size() != nextStateVars.Size() {
		panic("tsys: state_vars and next_state_vars must have equal size")
	}
	return &System{
		inputVars:     inputVars,
		stateVars:     stateVars,
		nextStateVars: nextStateVars,
		auxVars:       auxVars,
		initialCube:   initialCube,
		init:          init,
		trans:         trans,
		error:         errf,
	}
}

func (s *System) InputVars() z.Range     { return s.inputVars }
func (s *System) StateVars() z.Range     { return s.stateVars }
func (s *System) NextStateVars() z.Range { return s.nextStateVars }
func (s *System) AuxVars() z.Range       { return s.auxVars }

func (s *System) InitialCube() []bool { return s.initialCube }

func (s *System) Init() *cnf.Formula  { return s.init }
func (s *System) Trans() *cnf.Formula { return s.trans }
func (s *System) Error() *cnf.Formula { return s.error }

// VarInfo returns the kind of var and its offset within the corresponding
// range.
func (s *System) VarInfo(v z.Var) (Kind, int) {
	if s.inputVars.Contains(v) {
		return KindInput, s.inputVars.Offset(v)
	}
	if s.stateVars.Contains(v) {
		return KindState, s.stateVars.Offset(v)
	}
	if s.nextStateVars.Contains(v) {
		return KindNextState, s.nextStateVars.Offset(v)
	}
	if s.auxVars.Contains(v) {
		return KindAuxiliary, s.auxVars.Offset(v)
	}
	panic(fmt.Sprintf("tsys: variable %v belongs to no known range", v))
}

// Prime maps a state literal to the corresponding next-state literal at the
// same offset. Panics if lit is not a state literal.
func (s *System) Prime(lit z.Lit) z.Lit {
	kind, pos := s.VarInfo(lit.Var())
	if kind != KindState {
		panic("tsys: Prime requires a state literal")
	}
	return substitute(lit, s.nextStateVars.Nth(pos))
}

// Unprime maps a next-state literal to the corresponding state literal at
// the same offset. Panics if lit is not a next-state literal.
func (s *System) Unprime(lit z.Lit) z.Lit {
	kind, pos := s.VarInfo(lit.Var())
	if kind != KindNextState {
		panic("tsys: Unprime requires a next-state literal")
	}
	return substitute(lit, s.stateVars.Nth(pos))
}

func substitute(lit z.Lit, v z.Var) z.Lit {
	if lit.IsPos() {
		return v.Pos()
	}
	return v.Neg()
}
