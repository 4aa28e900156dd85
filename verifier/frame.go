package verifier

import "github.com/JakubSarnik/pdrtpa/z"

// depth returns the index of the current top frame.
func (v *Verifier) depth() int {
	return len(v.activators) - 1
}

// pushFrame allocates a fresh activation literal and an empty blocked-arrow
// slice for a new top frame. Activators, once allocated, are never
// retracted.
func (v *Verifier) pushFrame() {
	act := v.store.Make().Pos()
	v.activators = append(v.activators, act)
	v.blockedArrows = append(v.blockedArrows, nil)
}

// activatorsFrom returns activator[l], activator[l+1], ..., activator[depth]
// — the assumption set expressing "block set active from level l upward".
func (v *Verifier) activatorsFrom(l int) []z.Lit {
	if l < 0 {
		l = 0
	}
	out := make([]z.Lit, len(v.activators)-l)
	copy(out, v.activators[l:])
	return out
}
