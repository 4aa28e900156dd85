// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

import "fmt"

// Lit is a variable together with a polarity, encoded as 2*var + sign (sign
// bit set for negative literals), matching the teacher's encoding. LitNull
// (variable 0, positive) is spec.md's clause separator.
type Lit uint32

// LitNull is the separator literal used to terminate clauses in a flat CNF
// literal stream.
const LitNull = Lit(0)

// Var returns the variable of m.
func (m Lit) Var() Var {
	return Var(m >> 1)
}

// IsPos reports whether m is a positive literal.
func (m Lit) IsPos() bool {
	return m&1 == 0
}

// Sign returns 1 for a positive literal, -1 for a negative one.
func (m Lit) Sign() int {
	if m.IsPos() {
		return 1
	}
	return -1
}

// Not returns the negation of m.
func (m Lit) Not() Lit {
	return m ^ 1
}

// Dimacs returns the signed-integer (DIMACS) representation of m.
func (m Lit) Dimacs() int {
	v := int(m.Var())
	if m.IsPos() {
		return v
	}
	return -v
}

// Dimacs2Lit converts a nonzero signed DIMACS integer into a Lit.
func Dimacs2Lit(i int) Lit {
	if i < 0 {
		return Var(-i).Neg()
	}
	return Var(i).Pos()
}

func (m Lit) String() string {
	return fmt.Sprintf("%d", m.Dimacs())
}

// Less implements the cube order: literals compare primarily by variable id;
// on a tie, the negative literal precedes the positive one. This grouping
// (rather than raw numeric Lit order, under which positive precedes negative
// for the same variable) is exactly what spec.md's cube order requires.
func Less(a, b Lit) bool {
	if a.Var() != b.Var() {
		return a.Var() < b.Var()
	}
	return a.IsPos() == false && b.IsPos() == true
}
