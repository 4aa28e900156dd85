// Package pool implements the two bump-allocated arenas the verifier uses
// during proof-obligation resolution: a pool of cubes and a pool of
// counterexample-tree nodes, both referenced by small integer handles
// rather than owning pointers, and both reset in bulk between outer
// iterations of the main loop.
package pool

import "github.com/JakubSarnik/pdrtpa/cnf"

// CubeHandle addresses a cnf.Cube stored in a CubePool. It is stable only
// until the pool's next Clear.
type CubeHandle int

// NoCube is the sentinel "no handle" value, used where a cex node's inputs
// field is unset.
const NoCube CubeHandle = -1

// CubePool is a bump allocator for cubes: Alloc never reuses or frees a
// single entry, and the whole arena is reclaimed at once by Clear.
type CubePool struct {
	cubes []cnf.Cube
}

// NewCubePool returns an empty pool.
func NewCubePool() *CubePool {
	return &CubePool{}
}

// Alloc copies c into the pool and returns a handle to it.
func (p *CubePool) Alloc(c cnf.Cube) CubeHandle {
	p.cubes = append(p.cubes, c)
	return CubeHandle(len(p.cubes) - 1)
}

// Get dereferences h. Panics if h is NoCube or not below the number of
// cubes allocated since the last Clear; a stale handle whose index has been
// allocated again resolves to the new cube.
func (p *CubePool) Get(h CubeHandle) cnf.Cube {
	return p.cubes[h]
}

// Len reports how many cubes are currently live in the pool.
func (p *CubePool) Len() int {
	return len(p.cubes)
}

// Clear invalidates every handle previously returned by Alloc.
func (p *CubePool) Clear() {
	p.cubes = p.cubes[:0]
}
