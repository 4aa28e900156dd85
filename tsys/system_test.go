package tsys

import (
	"testing"

	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/z"
)

func build() (*System, *z.Store) {
	s := z.NewStore()
	inputs := s.MakeRange(2)
	state := s.MakeRange(3)
	next := s.MakeRange(3)
	aux := s.MakeRange(1)
	init := cnf.NewFormula()
	trans := cnf.NewFormula()
	errf := cnf.NewFormula()
	sys := New(inputs, state, next, aux, []bool{false, false, false}, init, trans, errf)
	return sys, s
}

func TestPrimeUnprimeRoundtrip(t *testing.T) {
	sys, _ := build()
	for i := 0; i < sys.StateVars().Size(); i++ {
		v := sys.StateVars().Nth(i)
		for _, lit := range []z.Lit{v.Pos(), v.Neg()} {
			primed := sys.Prime(lit)
			if got := sys.Unprime(primed); got != lit {
				t.Errorf("unprime(prime(%v)) = %v, want %v", lit, got, lit)
			}
		}
	}
}

func TestVarInfoClassifiesEachRange(t *testing.T) {
	sys, _ := build()
	cases := []struct {
		v    z.Var
		want Kind
	}{
		{sys.InputVars().Nth(0), KindInput},
		{sys.StateVars().Nth(0), KindState},
		{sys.NextStateVars().Nth(0), KindNextState},
		{sys.AuxVars().Nth(0), KindAuxiliary},
	}
	for _, c := range cases {
		kind, _ := sys.VarInfo(c.v)
		if kind != c.want {
			t.Errorf("VarInfo(%v) = %v, want %v", c.v, kind, c.want)
		}
	}
}

func TestInitialCubeCanExceedStateVars(t *testing.T) {
	s := z.NewStore()
	inputs := s.MakeRange(0)
	state := s.MakeRange(1)
	next := s.MakeRange(1)
	aux := s.MakeRange(0)
	// Two latches existed in the original AIG, one pruned by cone-of-influence.
	sys := New(inputs, state, next, aux, []bool{false, true}, cnf.NewFormula(), cnf.NewFormula(), cnf.NewFormula())
	if len(sys.InitialCube()) == sys.StateVars().Size() {
		t.Fatalf("test setup should exercise initial_cube wider than state_vars")
	}
}
