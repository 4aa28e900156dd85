// Package verifier implements the symbolic backward-reachability engine:
// a doubling-frontier, Property-Directed-Reachability-like algorithm that
// decides whether a transition system's error states are reachable from
// its initial states, using incremental SAT queries, activation literals,
// and renamed transition copies chained through a midpoint state.
package verifier

import (
	"math/rand"

	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/internal/verbosity"
	"github.com/JakubSarnik/pdrtpa/pool"
	"github.com/JakubSarnik/pdrtpa/satsolver"
	"github.com/JakubSarnik/pdrtpa/tsys"
	"github.com/JakubSarnik/pdrtpa/witness"
	"github.com/JakubSarnik/pdrtpa/z"
)

// arrow is a pair of state cubes (s, t) known not to admit an s -> t
// transition within some frame's TF[k]. Stored by value: blocked arrows
// own their cubes independently of the bump-allocated pools.
type arrow struct {
	s, t cnf.Cube
}

// Verifier owns the two persistent SAT instances, the frame stack, the
// renamed transition copies, and the cube/cex arenas. It is built once per
// run against an immutable transition system.
type Verifier struct {
	sys   *tsys.System
	store *z.Store

	middle      z.Range // X°
	rightInputs z.Range // Y2
	rightAux    z.Range // A2

	leftTrans  *cnf.Formula // T(X, Y, X°, A)
	rightTrans *cnf.Formula // T(X°, Y2, X', A2)

	errorSolver *satsolver.Solver
	consSolver  *satsolver.Solver

	transActivator z.Lit
	activators     []z.Lit
	blockedArrows  [][]arrow

	cubePool *pool.CubePool
	cexPool  *pool.CexPool

	rng *rand.Rand

	logger *verbosity.Logger // nil is a valid, silent logger
}

// SetLogger attaches l so solveObligation/propagate emit per-obligation
// detail at verbosity.Debug. A Verifier with no logger attached (the
// zero value left by New) logs nothing.
func (v *Verifier) SetLogger(l *verbosity.Logger) {
	v.logger = l
}

func (v *Verifier) debugf(format string, args ...interface{}) {
	if v.logger != nil {
		v.logger.Debugf(format, args...)
	}
}

// New builds a Verifier for sys, allocating its renamed-copy variable
// ranges from store. seed drives the PRNG used only as a tie-break during
// generalization (§4.6).
func New(sys *tsys.System, store *z.Store, seed uint32) *Verifier {
	middle := store.MakeRange(sys.StateVars().Size())
	rightInputs := store.MakeRange(sys.InputVars().Size())
	rightAux := store.MakeRange(sys.AuxVars().Size())

	v := &Verifier{
		sys:         sys,
		store:       store,
		middle:      middle,
		rightInputs: rightInputs,
		rightAux:    rightAux,
		errorSolver: satsolver.New(),
		consSolver:  satsolver.New(),
		cubePool:    pool.NewCubePool(),
		cexPool:     pool.NewCexPool(),
		rng:         rand.New(rand.NewSource(int64(seed))),
	}

	v.leftTrans = sys.Trans().Map(func(m z.Lit) z.Lit {
		kind, off := sys.VarInfo(m.Var())
		if kind == tsys.KindNextState {
			return relocateLit(middle, off, m.IsPos())
		}
		return m
	})
	v.rightTrans = sys.Trans().Map(func(m z.Lit) z.Lit {
		kind, off := sys.VarInfo(m.Var())
		switch kind {
		case tsys.KindState:
			return relocateLit(middle, off, m.IsPos())
		case tsys.KindInput:
			return relocateLit(rightInputs, off, m.IsPos())
		case tsys.KindAuxiliary:
			return relocateLit(rightAux, off, m.IsPos())
		default:
			return m
		}
	})

	return v
}

// Run executes the main loop and returns the final verdict.
func (v *Verifier) Run() *witness.Result {
	v.initialize()

	if res := v.trivial(); res != nil {
		return res
	}

	v.pushFrame()
	for {
		d := v.depth()
		if h, ok := v.queryErrorAt(d); ok {
			if v.solveObligation(obligation{level: d, cex: h}) {
				rows := v.buildWitness(h)
				v.cexPool.Clear()
				v.cubePool.Clear()
				return &witness.Result{Safe: false, Rows: rows}
			}
		} else {
			v.pushFrame()
			if v.propagate() {
				v.cexPool.Clear()
				v.cubePool.Clear()
				return &witness.Result{Safe: true}
			}
		}
		v.cexPool.Clear()
		v.cubePool.Clear()
	}
}

// initialize asserts the formulas that hold for the lifetime of the run:
// Init and primed-Error into error_solver, T/LeftTrans/RightTrans (each
// gated by their activator) into consecution_solver.
func (v *Verifier) initialize() {
	v.pushFrame() // frame 0; never holds blocked arrows, only gates LeftTrans/RightTrans

	v.errorSolver.AssertFormula(v.sys.Init())

	errorAtNext := v.sys.Error().Map(func(m z.Lit) z.Lit {
		kind, off := v.sys.VarInfo(m.Var())
		if kind == tsys.KindState {
			return relocateLit(v.sys.NextStateVars(), off, m.IsPos())
		}
		return m
	})
	v.errorSolver.AssertFormula(errorAtNext)

	v.transActivator = v.store.Make().Pos()
	v.consSolver.AssertFormula(v.sys.Trans().Activate(v.transActivator))
	v.consSolver.AssertFormula(v.leftTrans.Activate(v.activators[0]))
	v.consSolver.AssertFormula(v.rightTrans.Activate(v.activators[0]))
}

// trivial checks for counterexamples of length 0 or 1 before the main loop
// starts, each against a fresh, throwaway SAT instance.
func (v *Verifier) trivial() *witness.Result {
	s0 := satsolver.New()
	s0.AssertFormula(v.sys.Init())
	s0.AssertFormula(v.sys.Error())
	if s0.Query().IsSat() {
		row := witness.Row(s0.Model(v.sys.InputVars()))
		return &witness.Result{Safe: false, Rows: []witness.Row{row}}
	}

	s1 := satsolver.New()
	s1.AssertFormula(v.sys.Init())
	s1.AssertFormula(v.sys.Trans())
	errorAfterOneStep := v.sys.Error().Map(func(m z.Lit) z.Lit {
		kind, off := v.sys.VarInfo(m.Var())
		switch kind {
		case tsys.KindState:
			return relocateLit(v.sys.NextStateVars(), off, m.IsPos())
		case tsys.KindInput:
			return relocateLit(v.rightInputs, off, m.IsPos())
		case tsys.KindAuxiliary:
			return relocateLit(v.rightAux, off, m.IsPos())
		default:
			return m
		}
	})
	s1.AssertFormula(errorAfterOneStep)
	if s1.Query().IsSat() {
		row0 := witness.Row(s1.Model(v.sys.InputVars()))
		row1Raw := s1.Model(v.rightInputs)
		row1 := witness.Row(relocateModel(row1Raw, v.rightInputs, v.sys.InputVars()))
		return &witness.Result{Safe: false, Rows: []witness.Row{row0, row1}}
	}

	return nil
}

// queryErrorAt assumes the full active block set at the current depth on
// error_solver and, if SAT, seeds a root cex node from the model.
func (v *Verifier) queryErrorAt(depth int) (pool.CexHandle, bool) {
	q := v.errorSolver.Query().AssumeSpan(v.activatorsFrom(1))
	if !q.IsSat() {
		return 0, false
	}

	sLits := v.errorSolver.Model(v.sys.StateVars())
	tLits := unprimeLits(v.sys, v.errorSolver.Model(v.sys.NextStateVars()))

	sH := v.cubePool.Alloc(cnf.NewCube(sLits))
	tH := v.cubePool.Alloc(cnf.NewCube(tLits))
	return v.cexPool.Alloc(sH, tH), true
}
