package cnf

import (
	"sort"

	"github.com/JakubSarnik/pdrtpa/z"
)

// Cube is a conjunction of literals, stored sorted under the cube order
// (z.Less): grouped by variable, negative literal before positive. A cube
// may transiently contain both polarities of a variable only while it is
// being built; NewCube does not itself detect or reject that.
type Cube struct {
	lits []z.Lit
}

// NewCube sorts ls under the cube order and returns the resulting Cube. The
// input slice is copied; ls is not mutated.
func NewCube(ls []z.Lit) Cube {
	c := make([]z.Lit, len(ls))
	copy(c, ls)
	sort.Slice(c, func(i, j int) bool { return z.Less(c[i], c[j]) })
	return Cube{lits: c}
}

// Literals returns the cube's sorted literal vector. Callers must not
// mutate the returned slice.
func (c Cube) Literals() []z.Lit {
	return c.lits
}

// Len returns the number of literals in the cube.
func (c Cube) Len() int {
	return len(c.lits)
}

// Contains reports whether lit appears in c.
func (c Cube) Contains(lit z.Lit) bool {
	found, ok := c.Find(lit.Var())
	return ok && found == lit
}

// find returns the index of a literal over v, if any. Since a well-formed
// cube holds at most one polarity per variable, there is at most one match.
func (c Cube) find(v z.Var) (int, bool) {
	i := sort.Search(len(c.lits), func(i int) bool { return c.lits[i].Var() >= v })
	if i < len(c.lits) && c.lits[i].Var() == v {
		return i, true
	}
	return 0, false
}

// Find returns the literal over v, if any, and whether it was found.
func (c Cube) Find(v z.Var) (z.Lit, bool) {
	i, ok := c.find(v)
	if !ok {
		return z.LitNull, false
	}
	return c.lits[i], true
}

// Subsumes reports whether c's literal set is included in other's, i.e.
// other entails c: every literal of c appears in other, so other's state
// set is a subset of c's — matching spec.md's "subsumes(other) = literal
// multiset inclusion".
func (c Cube) Subsumes(other Cube) bool {
	if c.Len() > other.Len() {
		return false
	}
	i, j := 0, 0
	for i < len(c.lits) && j < len(other.lits) {
		switch {
		case c.lits[i] == other.lits[j]:
			i++
			j++
		case z.Less(other.lits[j], c.lits[i]):
			j++
		default:
			return false
		}
	}
	return i == len(c.lits)
}

// Negate returns the formula consisting of a single clause, the negation of
// every literal in c.
func (c Cube) Negate() *Formula {
	f := NewFormula()
	ls := make([]z.Lit, len(c.lits))
	for i, m := range c.lits {
		ls[i] = m.Not()
	}
	f.AddClause(ls...)
	return f
}

// Equal reports whether c and other are literally the same sorted sequence.
func (c Cube) Equal(other Cube) bool {
	if len(c.lits) != len(other.lits) {
		return false
	}
	for i := range c.lits {
		if c.lits[i] != other.lits[i] {
			return false
		}
	}
	return true
}
