package verifier

import (
	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/tsys"
	"github.com/JakubSarnik/pdrtpa/z"
)

// relocateLit builds the literal over target at offset with the given
// polarity, preserving polarity across a variable-range substitution.
func relocateLit(target z.Range, offset int, positive bool) z.Lit {
	v := target.Nth(offset)
	if positive {
		return v.Pos()
	}
	return v.Neg()
}

// relocateModel maps every literal of model — all drawn from range from —
// to the literal at the same offset and polarity in range to.
func relocateModel(model []z.Lit, from, to z.Range) []z.Lit {
	out := make([]z.Lit, len(model))
	for i, m := range model {
		out[i] = relocateLit(to, from.Offset(m.Var()), m.IsPos())
	}
	return out
}

// primeLits shifts every literal of a state-variable span to next-state.
func primeLits(sys *tsys.System, lits []z.Lit) []z.Lit {
	out := make([]z.Lit, len(lits))
	for i, m := range lits {
		out[i] = sys.Prime(m)
	}
	return out
}

// unprimeLits shifts every literal of a next-state-variable span to state.
func unprimeLits(sys *tsys.System, lits []z.Lit) []z.Lit {
	out := make([]z.Lit, len(lits))
	for i, m := range lits {
		out[i] = sys.Unprime(m)
	}
	return out
}

// circleLits shifts state literals X -> X° (the midpoint range).
func (v *Verifier) circleLits(lits []z.Lit) []z.Lit {
	out := make([]z.Lit, len(lits))
	for i, m := range lits {
		kind, off := v.sys.VarInfo(m.Var())
		if kind != tsys.KindState {
			panic("verifier: circle requires a state literal")
		}
		out[i] = relocateLit(v.middle, off, m.IsPos())
	}
	return out
}

// uncircleLits shifts midpoint literals X° -> X.
func (v *Verifier) uncircleLits(lits []z.Lit) []z.Lit {
	out := make([]z.Lit, len(lits))
	for i, m := range lits {
		out[i] = relocateLit(v.sys.StateVars(), v.middle.Offset(m.Var()), m.IsPos())
	}
	return out
}

// unionCube merges two cubes drawn from disjoint variable ranges into a
// single sorted cube.
func unionCube(a, b cnf.Cube) cnf.Cube {
	lits := make([]z.Lit, 0, a.Len()+b.Len())
	lits = append(lits, a.Literals()...)
	lits = append(lits, b.Literals()...)
	return cnf.NewCube(lits)
}

// firstLiteralDisagreement returns the first literal of orig whose variable
// also appears in model with the opposite polarity.
func firstLiteralDisagreement(orig, model cnf.Cube) (z.Lit, bool) {
	for _, m := range orig.Literals() {
		if found, ok := model.Find(m.Var()); ok && found != m {
			return m, true
		}
	}
	return z.LitNull, false
}

// cubesIntersect reports whether c and d share a state variable with the
// same polarity.
func cubesIntersect(c, d cnf.Cube) bool {
	for _, m := range c.Literals() {
		if found, ok := d.Find(m.Var()); ok && found == m {
			return true
		}
	}
	return false
}

func appendLit(lits []z.Lit, m z.Lit) []z.Lit {
	out := make([]z.Lit, len(lits)+1)
	copy(out, lits)
	out[len(lits)] = m
	return out
}
