package aiger

import (
	"strings"
	"testing"

	"github.com/JakubSarnik/pdrtpa/verifier"
	"github.com/JakubSarnik/pdrtpa/z"
)

// TestInitialStateIsError builds spec.md's scenario 1 fixture (one latch,
// self-loop, reset 1, error = latch) from ASCII AIGER text and checks the
// resulting system yields a length-1 counterexample end to end.
func TestInitialStateIsError(t *testing.T) {
	src := "aag 1 0 1 0 0 1 0 0 0\n2 2 1\n2\n"

	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	store := z.NewStore()
	sys, err := Build(store, g)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if sys.StateVars().Size() != 1 {
		t.Fatalf("expected the single latch to survive COI pruning, got %d state vars", sys.StateVars().Size())
	}

	res := verifier.New(sys, store, 1).Run()
	if res.Safe {
		t.Fatalf("expected a counterexample, got Safe")
	}
	if len(res.Rows) != 1 {
		t.Fatalf("expected a length-1 counterexample, got %d rows", len(res.Rows))
	}
}

// TestErrorAfterOneStep builds spec.md's scenario 2 fixture (one input, one
// latch, reset 0, error fires when the input was 1 in the initial state).
func TestErrorAfterOneStep(t *testing.T) {
	// Variables: 1 = input, 2 = latch. Latch next-state is the input itself,
	// so after one step the latch equals the input that was applied; the
	// error output is the *current* latch value, so "error after one step
	// under input=1" means: latch(1) = input(0), bad = latch.
	src := "aag 2 1 1 0 0 1 0 0 0\n2\n4 2 0\n4\n"

	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	store := z.NewStore()
	sys, err := Build(store, g)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	res := verifier.New(sys, store, 7).Run()
	if res.Safe {
		t.Fatalf("expected a counterexample, got Safe")
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected a length-2 counterexample (drive + trigger), got %d rows", len(res.Rows))
	}
	if !res.Rows[0][0].IsPos() {
		t.Errorf("driving transition requires input = 1, got row %v", res.Rows[0])
	}
}

// TestTriviallySafe checks that an AIG whose error literal is the constant
// false literal 0 is reported Safe without the builder needing to invent any
// state for it (the cone of influence of a constant is empty).
func TestTriviallySafe(t *testing.T) {
	src := "aag 1 0 1 0 0 1 0 0 0\n2 2 0\n0\n"

	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	store := z.NewStore()
	sys, err := Build(store, g)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if sys.StateVars().Size() != 0 {
		t.Errorf("expected the unreferenced latch to be pruned, got %d state vars", sys.StateVars().Size())
	}

	res := verifier.New(sys, store, 1).Run()
	if !res.Safe {
		t.Fatalf("expected Safe for a constantly-false error, got a counterexample of %d rows", len(res.Rows))
	}
}

// TestCoiPruningDropsIrrelevantLatch checks that a second latch, unreachable
// from the error literal and not feeding any kept latch's next-state
// function, is dropped from state_vars while still contributing a bit to
// initial_cube.
func TestCoiPruningDropsIrrelevantLatch(t *testing.T) {
	// var1 = relevant latch (self loop, error = var1).
	// var2 = irrelevant latch (self loop, never read by anything kept).
	src := "aag 2 0 2 0 0 1 0 0 0\n2 2 0\n4 4 1\n2\n"

	g, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	store := z.NewStore()
	sys, err := Build(store, g)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if sys.StateVars().Size() != 1 {
		t.Fatalf("expected only the relevant latch to survive pruning, got %d", sys.StateVars().Size())
	}
	if len(sys.InitialCube()) != 2 {
		t.Fatalf("expected initial_cube to retain both original latches, got %d entries", len(sys.InitialCube()))
	}
	if sys.InitialCube()[1] != true {
		t.Errorf("expected the pruned latch's reset bit to still read true, got %v", sys.InitialCube()[1])
	}
}

func TestRejectsMultipleBadOutputs(t *testing.T) {
	src := "aag 1 0 1 0 0 2 0 0 0\n2 2 0\n2\n2\n"
	if _, err := Parse(strings.NewReader(src)); err != ErrMultipleBadOutputs {
		t.Fatalf("expected ErrMultipleBadOutputs, got %v", err)
	}
}

func TestRejectsJusticeProperties(t *testing.T) {
	src := "aag 1 0 1 0 0 0 0 1 0\n2 2 0\n1\n2\n2\n"
	if _, err := Parse(strings.NewReader(src)); err != ErrUnsupportedProperty {
		t.Fatalf("expected ErrUnsupportedProperty, got %v", err)
	}
}
