package pool

import (
	"testing"

	"github.com/JakubSarnik/pdrtpa/cnf"
	"github.com/JakubSarnik/pdrtpa/z"
)

func TestCubePoolRoundtripAndClear(t *testing.T) {
	p := NewCubePool()
	c := cnf.NewCube([]z.Lit{z.Var(1).Pos(), z.Var(2).Neg()})
	h := p.Alloc(c)

	if got := p.Get(h); !got.Equal(c) {
		t.Fatalf("Get(Alloc(c)) = %v, want %v", got.Literals(), c.Literals())
	}
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}

	p.Clear()
	if p.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", p.Len())
	}
}

func TestCubePoolAllocIsAppendOnly(t *testing.T) {
	p := NewCubePool()
	a := p.Alloc(cnf.NewCube([]z.Lit{z.Var(1).Pos()}))
	b := p.Alloc(cnf.NewCube([]z.Lit{z.Var(2).Pos()}))
	if a == b {
		t.Fatalf("distinct allocations returned the same handle")
	}
	if !p.Get(a).Equal(cnf.NewCube([]z.Lit{z.Var(1).Pos()})) {
		t.Errorf("first handle no longer resolves to its original cube")
	}
}
