package aiger

import (
	"sort"

	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/tsys"
	"github.com/JakubSarnik/pdrtpa/z"
)

// builder carries the state needed to lower one Graph into a tsys.System:
// the constant set, the cone-of-influence closure, and the variable
// mappings assigned once that closure is known.
type builder struct {
	g  *Graph
	ts trueSet

	// Cone-of-influence closure, computed once up front.
	coiLatchVars []uint32          // latch vars kept as state, in original order
	inCoi        map[uint32]bool   // latch var -> kept
	errorAnds    map[uint32]bool   // AND vars whose Tseitin clause belongs in Error
	transAnds    map[uint32]bool   // AND vars whose Tseitin clause belongs in Trans
	needsConst   bool

	// Variable assignments, populated by allocate().
	inputVars     z.Range
	stateVars     z.Range
	nextStateVars z.Range
	auxVars       z.Range

	inputLit map[uint32]z.Lit // AIGER var -> positive z.Lit
	stateLit map[uint32]z.Lit
	nextLit  map[uint32]z.Lit
	auxLit   map[uint32]z.Lit
	constVar z.Var
}

// Build lowers g into a tsys.System, allocating all its variables from
// store. Latches outside the error's cone of influence are dropped from
// state_vars/next_state_vars but still contribute a bit to initial_cube
// (spec.md §3, §9).
func Build(store *z.Store, g *Graph) (*tsys.System, error) {
	b := &builder{
		g:         g,
		ts:        propagateConstants(g),
		inCoi:     make(map[uint32]bool),
		errorAnds: make(map[uint32]bool),
		transAnds: make(map[uint32]bool),
	}

	if err := b.computeCone(); err != nil {
		return nil, err
	}
	b.allocate(store)

	init := cnf.NewFormula()
	b.buildInit(init)

	trans := cnf.NewFormula()
	b.buildTrans(trans)

	errf := cnf.NewFormula()
	b.buildError(errf)

	initialCube := b.buildInitialCube()

	return tsys.New(b.inputVars, b.stateVars, b.nextStateVars, b.auxVars,
		initialCube, init, trans, errf), nil
}

// computeCone runs the backward closure from the error literal: AND gates
// feeding it directly grow errorAnds, any latch read along the way is kept
// and its own next-function closure grows transAnds, which may in turn
// discover further latches. This is the full transitive cone described by
// original_source/src/aiger_builder.hpp's error_coi comment, not merely the
// error formula's direct syntactic dependencies.
func (b *builder) computeCone() error {
	if err := b.coneWalk(b.g.errorLit>>1, b.errorAnds); err != nil {
		return err
	}

	queue := append([]uint32(nil), b.coiLatchVars...)
	for len(queue) > 0 {
		lv := queue[0]
		queue = queue[1:]
		l := b.latchOf(lv)
		before := len(b.coiLatchVars)
		if err := b.coneWalk(l.next>>1, b.transAnds); err != nil {
			return err
		}
		queue = append(queue, b.coiLatchVars[before:]...)
	}
	return nil
}

// coneWalk recurses through the pure-AND-gate fan-in structure starting at
// var v, adding every non-constant AND gate reached to accum and recording
// any latch reached as kept (deferring its own next-function closure to the
// caller). AIGER guarantees an AND gate's inputs have strictly smaller
// variable indices than the gate itself, so this recursion always
// terminates; a violation is rejected rather than chased.
func (b *builder) coneWalk(v uint32, accum map[uint32]bool) error {
	if v == 0 {
		b.needsConst = true
		return nil
	}
	if ad, ok := b.g.andOf[v]; ok {
		pos := v << 1
		if b.ts.isDecided(pos) {
			b.needsConst = true
			return nil
		}
		if accum[v] {
			return nil
		}
		if err := b.coneWalk(ad.rhs0>>1, accum); err != nil {
			return err
		}
		if err := b.coneWalk(ad.rhs1>>1, accum); err != nil {
			return err
		}
		accum[v] = true
		return nil
	}
	if _, isLatch := b.latchIndex(v); isLatch {
		if !b.inCoi[v] {
			b.inCoi[v] = true
			b.coiLatchVars = append(b.coiLatchVars, v)
		}
		return nil
	}
	// Otherwise v is a primary input: a leaf with no further structure.
	return nil
}

func (b *builder) latchIndex(v uint32) (int, bool) {
	for i := range b.g.latches {
		if b.g.latches[i].lit>>1 == v {
			return i, true
		}
	}
	return 0, false
}

func (b *builder) latchOf(v uint32) *latch {
	i, ok := b.latchIndex(v)
	if !ok {
		panic("aiger: latchOf called on a non-latch variable")
	}
	return &b.g.latches[i]
}

// allocate assigns z.Var ranges for inputs, kept state, and the auxiliary
// (Tseitin + constant) variables, in that order.
func (b *builder) allocate(store *z.Store) {
	b.inputVars = store.MakeRange(len(b.g.inputs))
	b.inputLit = make(map[uint32]z.Lit, len(b.g.inputs))
	for i, lit := range b.g.inputs {
		b.inputLit[lit>>1] = b.inputVars.Nth(i).Pos()
	}

	// Keep latches in original AIG order, filtered to the cone.
	var kept []uint32
	for i := range b.g.latches {
		v := b.g.latches[i].lit >> 1
		if b.inCoi[v] {
			kept = append(kept, v)
		}
	}
	b.stateVars = store.MakeRange(len(kept))
	b.nextStateVars = store.MakeRange(len(kept))
	b.stateLit = make(map[uint32]z.Lit, len(kept))
	b.nextLit = make(map[uint32]z.Lit, len(kept))
	for i, v := range kept {
		b.stateLit[v] = b.stateVars.Nth(i).Pos()
		b.nextLit[v] = b.nextStateVars.Nth(i).Pos()
	}

	union := make(map[uint32]bool, len(b.errorAnds)+len(b.transAnds))
	for v := range b.errorAnds {
		union[v] = true
	}
	for v := range b.transAnds {
		union[v] = true
	}
	ordered := make([]uint32, 0, len(union))
	for v := range union {
		ordered = append(ordered, v)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	n := len(ordered)
	if b.needsConst {
		n++
	}
	b.auxVars = store.MakeRange(n)
	b.auxLit = make(map[uint32]z.Lit, len(ordered))
	for i, v := range ordered {
		b.auxLit[v] = b.auxVars.Nth(i).Pos()
	}
	if b.needsConst {
		b.constVar = b.auxVars.Nth(len(ordered))
	}
}

func (b *builder) trueLit() z.Lit  { return b.constVar.Pos() }
func (b *builder) falseLit() z.Lit { return b.constVar.Neg() }

// litFor resolves a raw AIGER literal to the z.Lit it was assigned,
// substituting the constant variable for any decided-constant gate.
func (b *builder) litFor(aigLit uint32) z.Lit {
	v := aigLit >> 1
	neg := aigLit&1 != 0

	var base z.Lit
	switch {
	case v == 0:
		base = b.falseLit()
	case b.ts.isTrue(v << 1):
		base = b.trueLit()
	case b.ts.isFalse(v << 1):
		base = b.falseLit()
	default:
		if zl, ok := b.inputLit[v]; ok {
			base = zl
		} else if zl, ok := b.stateLit[v]; ok {
			base = zl
		} else if zl, ok := b.auxLit[v]; ok {
			base = zl
		} else {
			panic("aiger: literal referenced outside the computed cone of influence")
		}
	}
	if neg {
		return base.Not()
	}
	return base
}

// tseitinAnd emits the standard three-clause encoding of g <-> a & b (the
// same shape as the teacher's logic/c.go addAnd).
func tseitinAnd(f *cnf.Formula, g, a, b z.Lit) {
	f.AddClause(g.Not(), a)
	f.AddClause(g.Not(), b)
	f.AddClause(g, a.Not(), b.Not())
}

func (b *builder) buildInit(f *cnf.Formula) {
	for _, v := range b.g.latches {
		vv := v.lit >> 1
		if !b.inCoi[vv] {
			continue
		}
		sv := b.stateLit[vv]
		switch v.reset {
		case resetZero:
			f.AddClause(sv.Not())
		case resetOne:
			f.AddClause(sv)
		case resetNondet:
			// Free: no clause constrains it.
		}
	}
	b.assertConstUnit(f)
}

func (b *builder) buildTrans(f *cnf.Formula) {
	for _, v := range sortedUint32s(b.transAnds) {
		ad := b.g.andOf[v]
		tseitinAnd(f, b.auxLit[v], b.litFor(ad.rhs0), b.litFor(ad.rhs1))
	}
	for _, v := range b.g.latches {
		vv := v.lit >> 1
		if !b.inCoi[vv] {
			continue
		}
		nv := b.nextLit[vv]
		fl := b.litFor(v.next)
		f.AddClause(nv.Not(), fl)
		f.AddClause(nv, fl.Not())
	}
	b.assertConstUnit(f)
}

func (b *builder) buildError(f *cnf.Formula) {
	for _, v := range sortedUint32s(b.errorAnds) {
		ad := b.g.andOf[v]
		g := b.auxLit[v]
		tseitinAnd(f, g, b.litFor(ad.rhs0), b.litFor(ad.rhs1))
	}
	f.AddClause(b.litFor(b.g.errorLit))
	b.assertConstUnit(f)
}

func (b *builder) assertConstUnit(f *cnf.Formula) {
	if b.needsConst {
		f.AddClause(b.trueLit())
	}
}

func (b *builder) buildInitialCube() []bool {
	cube := make([]bool, len(b.g.latches))
	for i, v := range b.g.latches {
		switch v.reset {
		case resetOne:
			cube[i] = true
		case resetZero, resetNondet:
			cube[i] = false
		}
	}
	return cube
}

func sortedUint32s(m map[uint32]bool) []uint32 {
	out := make([]uint32, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
