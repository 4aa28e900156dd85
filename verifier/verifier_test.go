package verifier

import (
	"testing"

	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/tsys"
	"github.com/JakubSarnik/pdrtpa/z"
)

// TestInitialStateIsErrorYieldsOneRow exercises trivial case (a): a single
// latch whose reset value already satisfies the error condition.
func TestInitialStateIsErrorYieldsOneRow(t *testing.T) {
	store := z.NewStore()
	inputs := store.MakeRange(0)
	state := store.MakeRange(1)
	next := store.MakeRange(1)
	aux := store.MakeRange(0)
	x := state.Nth(0)
	xp := next.Nth(0)

	init := cnf.NewFormula()
	init.AddClause(x.Pos())
	trans := cnf.NewFormula()
	trans.AddClause(x.Neg(), xp.Pos())
	trans.AddClause(x.Pos(), xp.Neg())
	errf := cnf.NewFormula()
	errf.AddClause(x.Pos())

	sys := tsys.New(inputs, state, next, aux, []bool{true}, init, trans, errf)
	res := New(sys, store, 1).Run()

	if res.Safe {
		t.Fatalf("expected a counterexample, got Safe")
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected exactly one witness row for trivial case (a), got %d", len(res.Rows))
	}
	if len(res.Rows[0]) != 0 {
		t.Errorf("expected the empty input vector, got %v", res.Rows[0])
	}
}

// TestErrorAfterOneStepYieldsTwoRows exercises trivial case (b): the error
// fires only at the state reached after a single transition.
func TestErrorAfterOneStepYieldsTwoRows(t *testing.T) {
	store := z.NewStore()
	inputs := store.MakeRange(1)
	state := store.MakeRange(1)
	next := store.MakeRange(1)
	aux := store.MakeRange(0)
	y := inputs.Nth(0)
	x := state.Nth(0)
	xp := next.Nth(0)

	init := cnf.NewFormula()
	init.AddClause(x.Neg())
	trans := cnf.NewFormula()
	trans.AddClause(xp.Pos(), y.Neg()) // xp <- y
	trans.AddClause(xp.Neg(), y.Pos()) // xp -> y
	errf := cnf.NewFormula()
	errf.AddClause(x.Pos())

	sys := tsys.New(inputs, state, next, aux, []bool{false}, init, trans, errf)
	res := New(sys, store, 7).Run()

	if res.Safe {
		t.Fatalf("expected a counterexample, got Safe")
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected two witness rows for trivial case (b), got %d", len(res.Rows))
	}
	if !res.Rows[0][0].IsPos() {
		t.Errorf("driving transition requires input = 1, got row %v", res.Rows[0])
	}
}

// TestSafeWhenErrorIsUnsatisfiable checks that an unreachable (here:
// unsatisfiable) error formula is reported Safe.
func TestSafeWhenErrorIsUnsatisfiable(t *testing.T) {
	store := z.NewStore()
	inputs := store.MakeRange(0)
	state := store.MakeRange(1)
	next := store.MakeRange(1)
	aux := store.MakeRange(1)
	x := state.Nth(0)
	xp := next.Nth(0)
	a := aux.Nth(0)

	init := cnf.NewFormula()
	init.AddClause(x.Neg())
	trans := cnf.NewFormula()
	trans.AddClause(x.Neg(), xp.Pos())
	trans.AddClause(x.Pos(), xp.Neg())
	errf := cnf.NewFormula()
	errf.AddClause(a.Pos())
	errf.AddClause(a.Neg())

	sys := tsys.New(inputs, state, next, aux, []bool{false}, init, trans, errf)
	res := New(sys, store, 3).Run()

	if !res.Safe {
		t.Fatalf("expected Safe, got a counterexample of %d rows", len(res.Rows))
	}
}

// TestTwoBitCounterCornerCase builds a two-latch binary counter (00 -> 01 ->
// 10 -> 11, wrapping) with no inputs and an error condition at the (1,1)
// corner, forcing the verifier through several levels of obligation
// splitting and generalization before a real path is found.
func TestTwoBitCounterCornerCase(t *testing.T) {
	store := z.NewStore()
	inputs := store.MakeRange(0)
	state := store.MakeRange(2)
	next := store.MakeRange(2)
	aux := store.MakeRange(0)
	x, y := state.Nth(0), state.Nth(1)
	xp, yp := next.Nth(0), next.Nth(1)

	init := cnf.NewFormula()
	init.AddClause(x.Neg())
	init.AddClause(y.Neg())

	trans := cnf.NewFormula()
	// y' = not y
	trans.AddClause(y.Pos(), yp.Pos())
	trans.AddClause(y.Neg(), yp.Neg())
	// x' = x xor y
	trans.AddClause(x.Neg(), y.Neg(), xp.Neg())
	trans.AddClause(x.Pos(), y.Pos(), xp.Neg())
	trans.AddClause(x.Pos(), y.Neg(), xp.Pos())
	trans.AddClause(x.Neg(), y.Pos(), xp.Pos())

	errf := cnf.NewFormula()
	errf.AddClause(x.Pos())
	errf.AddClause(y.Pos())

	sys := tsys.New(inputs, state, next, aux, []bool{false, false}, init, trans, errf)
	res := New(sys, store, 42).Run()

	if res.Safe {
		t.Fatalf("expected a counterexample reaching the (1,1) corner, got Safe")
	}
	if len(res.Rows) != 3 {
		t.Errorf("expected a counterexample of length 3, got %d rows", len(res.Rows))
	}
}
