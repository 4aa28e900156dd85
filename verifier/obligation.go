package verifier

import (
	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/pool"
	"github.com/JakubSarnik/pdrtpa/z"
)

// obligation is a request to decide whether the arrow stored at cex is
// real or spurious at level.
type obligation struct {
	level int
	cex   pool.CexHandle
}

// solveObligation is the recursive heart of the algorithm. It returns true
// iff a real reachable path from some s-state to some t-state exists under
// the current frame constraints; false means (s, t) is spurious at
// po.level, and, when po.level >= 1, a newly generalized blocked arrow has
// been inserted (level 0 returns false without blocking anything).
func (v *Verifier) solveObligation(po obligation) bool {
	node := v.cexPool.Get(po.cex)
	s := v.cubePool.Get(node.SCube)
	t := v.cubePool.Get(node.TCube)

	v.debugf("obligation level=%d |s|=%d |t|=%d", po.level, s.Len(), t.Len())

	// 1. Equality shortcut.
	if s.Equal(t) {
		return true
	}

	// 2. Concrete one-step.
	if ok, inputs := v.tryOneStep(v.transActivator, s, t); ok {
		h := v.cubePool.Alloc(cnf.NewCube(inputs))
		v.cexPool.ResolveConcreteEdge(po.cex, h)
		return true
	}

	// 3. Base level: the two checks above fully determine TF[0].
	if po.level == 0 {
		return false
	}

	if po.level == 1 {
		if v.solveLevelOne(po, s, t) {
			return true
		}
	} else {
		if v.solveRecursiveSplit(po, s, t) {
			return true
		}
	}

	// 6. Block + generalize.
	assumps := v.activatorsForLevel(po.level)
	c, d := v.generalizeBlockedArrow(s, t, assumps)
	v.debugf("obligation level=%d spurious, blocking arrow |c|=%d |d|=%d", po.level, c.Len(), d.Len())
	v.blockArrowAt(c, d, po.level, 1)
	return false
}

// activatorsForLevel reproduces exactly the assumption set used to query
// the doubled transition at level, so generalizeBlockedArrow's unsat-core
// extraction is taken over the very query whose UNSAT result is its
// precondition.
func (v *Verifier) activatorsForLevel(level int) []z.Lit {
	if level == 1 {
		return []z.Lit{v.activators[0]}
	}
	return v.activatorsFrom(level - 1)
}

// tryOneStep queries consecution_solver for a single concrete transition
// step from s to t, gated by transLit (either trans_activator for the real
// transition, or an activator for a renamed copy).
func (v *Verifier) tryOneStep(transLit z.Lit, s, t cnf.Cube) (ok bool, inputs []z.Lit) {
	q := v.consSolver.Query().Assume(transLit).AssumeSpan(s.Literals()).AssumeSpan(primeLits(v.sys, t.Literals()))
	if !q.IsSat() {
		return false, nil
	}
	return true, v.consSolver.Model(v.sys.InputVars())
}

// solveLevelOne handles step 4: querying the doubled transition LeftTrans
// ∧ RightTrans at level 1, where both halves are resolved directly as
// concrete edges (TF[0] is exact, so no further recursion is needed).
func (v *Verifier) solveLevelOne(po obligation, s, t cnf.Cube) bool {
	q := v.consSolver.Query().Assume(v.activators[0]).AssumeSpan(s.Literals()).AssumeSpan(primeLits(v.sys, t.Literals()))
	if !q.IsSat() {
		return false
	}

	u := cnf.NewCube(v.uncircleLits(v.consSolver.Model(v.middle)))
	leftInputs := v.consSolver.Model(v.sys.InputVars())
	rightInputs := relocateModel(v.consSolver.Model(v.rightInputs), v.rightInputs, v.sys.InputVars())

	sH := v.cubePool.Alloc(s)
	tH := v.cubePool.Alloc(t)
	uH := v.cubePool.Alloc(u)

	leftH := v.cexPool.Alloc(sH, uH)
	rightH := v.cexPool.Alloc(uH, tH)
	v.cexPool.ResolveConcreteEdge(leftH, v.cubePool.Alloc(cnf.NewCube(leftInputs)))
	v.cexPool.ResolveConcreteEdge(rightH, v.cubePool.Alloc(cnf.NewCube(rightInputs)))
	v.cexPool.ResolveSplit(po.cex, leftH, rightH)
	return true
}

// solveRecursiveSplit handles step 5: repeatedly finding a midpoint u under
// the doubled transition at level k >= 2 and recursing on the two halves,
// re-querying (the midpoint must change, since the failing half just
// extended blocked_arrows) until the transition is exhausted or a real
// path is found.
func (v *Verifier) solveRecursiveSplit(po obligation, s, t cnf.Cube) bool {
	assumps := v.activatorsFrom(po.level - 1)
	for {
		q := v.consSolver.Query().AssumeSpan(assumps).AssumeSpan(s.Literals()).AssumeSpan(primeLits(v.sys, t.Literals()))
		if !q.IsSat() {
			return false
		}

		u := cnf.NewCube(v.uncircleLits(v.consSolver.Model(v.middle)))
		sH := v.cubePool.Alloc(s)
		tH := v.cubePool.Alloc(t)
		uH := v.cubePool.Alloc(u)

		leftH := v.cexPool.Alloc(sH, uH)
		rightH := v.cexPool.Alloc(uH, tH)

		if v.solveObligation(obligation{level: po.level - 1, cex: leftH}) &&
			v.solveObligation(obligation{level: po.level - 1, cex: rightH}) {
			v.cexPool.ResolveSplit(po.cex, leftH, rightH)
			return true
		}
		// Either half was spurious and extended blocked_arrows; loop and
		// re-query so the next midpoint is forced to differ.
	}
}

// generalizeBlockedArrow weakens the just-refuted arrow (s, t) at level k
// to a pair of subcubes (c, d) that remains blocked, so it prunes more
// states. assumps must be exactly the assumption set whose query against
// the doubled transition just reported UNSAT, so the failed-assumption
// core taken here is meaningful.
func (v *Verifier) generalizeBlockedArrow(s, t cnf.Cube, assumps []z.Lit) (cnf.Cube, cnf.Cube) {
	sLits := s.Literals()
	tPrimed := primeLits(v.sys, t.Literals())

	q := v.consSolver.Query().AssumeSpan(assumps).AssumeSpan(sLits).AssumeSpan(tPrimed)
	if q.IsSat() {
		panic("verifier: generalizeBlockedArrow precondition violated: query must be unsat")
	}

	c := cnf.NewCube(v.consSolver.Core(sLits))
	d := cnf.NewCube(unprimeLits(v.sys, v.consSolver.Core(tPrimed)))

	// 2. Disjointness repair.
	if cubesIntersect(c, d) {
		lc, ok := firstLiteralDisagreement(s, t)
		if !ok {
			panic("verifier: s == t should have been caught by the equality shortcut")
		}
		ld, _ := t.Find(lc.Var())
		c = cnf.NewCube(appendLit(c.Literals(), lc))
		d = cnf.NewCube(appendLit(d.Literals(), ld))
	}

	// 3. Concrete-edge closure.
	for {
		q := v.consSolver.Query().Assume(v.transActivator).AssumeSpan(c.Literals()).AssumeSpan(primeLits(v.sys, d.Literals()))
		if !q.IsSat() {
			break
		}
		ss := cnf.NewCube(v.consSolver.Model(v.sys.StateVars()))
		tt := cnf.NewCube(unprimeLits(v.sys, v.consSolver.Model(v.sys.NextStateVars())))

		lc, lcOk := firstLiteralDisagreement(s, ss)
		ld, ldOk := firstLiteralDisagreement(t, tt)

		switch {
		case lcOk && ldOk:
			if v.rng.Intn(2) == 0 {
				c = cnf.NewCube(appendLit(c.Literals(), lc))
			} else {
				d = cnf.NewCube(appendLit(d.Literals(), ld))
			}
		case lcOk:
			c = cnf.NewCube(appendLit(c.Literals(), lc))
		case ldOk:
			d = cnf.NewCube(appendLit(d.Literals(), ld))
		default:
			panic("verifier: concrete edge agrees with both s and t")
		}
	}

	return c, d
}

// blockArrowAt removes arrows subsumed by (s, t) from every frame in
// [startFrom, depth], inserts (s, t) at level, and asserts its activated
// clauses: the one-step form into both solvers, the two half forms into
// consecution_solver only.
func (v *Verifier) blockArrowAt(s, t cnf.Cube, level, startFrom int) {
	for frame := startFrom; frame <= v.depth(); frame++ {
		kept := v.blockedArrows[frame][:0]
		for _, a := range v.blockedArrows[frame] {
			if s.Subsumes(a.s) && t.Subsumes(a.t) {
				continue
			}
			kept = append(kept, a)
		}
		v.blockedArrows[frame] = kept
	}

	v.blockedArrows[level] = append(v.blockedArrows[level], arrow{s: s, t: t})
	v.assertBlockedArrow(s, t, level)
}

// assertBlockedArrow asserts the three clauses from §4.2 that together
// make (s, t) unreachable in any TF[level] expansion, including as either
// half of a doubled step at level+1.
func (v *Verifier) assertBlockedArrow(s, t cnf.Cube, level int) {
	act := v.activators[level]

	tPrimed := cnf.NewCube(primeLits(v.sys, t.Literals()))
	tCircled := cnf.NewCube(v.circleLits(t.Literals()))
	sCircled := cnf.NewCube(v.circleLits(s.Literals()))

	oneStep := unionCube(s, tPrimed).Negate().Activate(act)
	leftHalf := unionCube(s, tCircled).Negate().Activate(act)
	rightHalf := unionCube(sCircled, tPrimed).Negate().Activate(act)

	v.errorSolver.AssertFormula(oneStep)
	v.consSolver.AssertFormula(oneStep)
	v.consSolver.AssertFormula(leftHalf)
	v.consSolver.AssertFormula(rightHalf)
}

// propagate lifts each arrow blocked at level i (1 <= i < depth) to level
// i+1 when the query at level i stays unsatisfiable, until either some
// intermediate frame empties (safety proven) or every frame has been tried.
func (v *Verifier) propagate() bool {
	for i := 1; i < v.depth(); i++ {
		snapshot := append([]arrow(nil), v.blockedArrows[i]...)
		for _, a := range snapshot {
			q := v.consSolver.Query().AssumeSpan(v.activatorsFrom(i)).AssumeSpan(a.s.Literals()).AssumeSpan(primeLits(v.sys, a.t.Literals()))
			if !q.IsSat() {
				v.blockArrowAt(a.s, a.t, i+1, i)
			}
		}
		v.debugf("propagate frame=%d remaining_arrows=%d", i, len(v.blockedArrows[i]))
		if len(v.blockedArrows[i]) == 0 {
			return true
		}
	}
	return false
}
