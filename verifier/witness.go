package verifier

import (
	"github.com/JakubSarnik/pdrtpa/pool"
	"github.com/JakubSarnik/pdrtpa/witness"
)

// buildWitness performs a post-order, left-before-right traversal of the
// cex tree rooted at root, emitting one row per concrete-edge leaf so the
// resulting sequence is chronologically ordered along the abstract path.
func (v *Verifier) buildWitness(root pool.CexHandle) []witness.Row {
	var rows []witness.Row
	var visit func(h pool.CexHandle)
	visit = func(h pool.CexHandle) {
		node := v.cexPool.Get(h)
		if node.IsConcreteEdge() {
			rows = append(rows, witness.Row(v.cubePool.Get(node.Inputs).Literals()))
			return
		}
		visit(node.Left)
		visit(node.Right)
	}
	visit(root)
	return rows
}
