package dpf

import "fmt"

// EvalPoint evaluates key k at input x for output i. Passing mem reuses a
// previous call's path; pass nil to allocate a throwaway one-shot memoizer.
// Refuses to run against an output slot whose wildcard bit is still set.
func EvalPoint(k *Key, i int, x uint64, mem *PathMemoizer) (Value, error) {
	if k.wildcardMask != nil && k.wildcardMask.Test(uint(i)) {
		return nil, fmt.Errorf("%w: output %d is an uncompleted wildcard", ErrNotReady, i)
	}
	xPrime := k.applyOffset(x)
	if k.Signed() {
		xPrime = flipMSB(xPrime, k.n)
	}

	if mem == nil {
		mem = NewPathMemoizer(k.depth)
	}
	path := mem.Walk(k, DefaultPRG, xPrime)

	zero := k.zeros[i]
	leafNode := traverseExterior(DefaultPRG, path[k.depth], k.leaves[i], zero)
	return extractLeaf(leafNode, xPrime, zero), nil
}

// applyOffset translates a logical input x into the physical tree position
// Gen actually built around, subtracting the completed input-wildcard
// offset share; it returns x unchanged when alpha was never a wildcard.
// hasOffset (not the wildcard mask bit, which CompleteInput clears on
// success) is the gate: the mask bit only tracks whether completion is
// still outstanding, not whether one ever happened.
func (k *Key) applyOffset(x uint64) uint64 {
	if !k.hasOffset {
		return x
	}
	mask := uint64(1)<<uint(k.n) - 1
	return (x - k.offsetShare) & mask
}

// Signed reports whether this key's domain is interpreted as signed.
// Mirrors Spec.Signed but is recorded on the key itself since evaluators
// only ever see a *Key, not the Spec that produced it.
func (k *Key) Signed() bool { return k.signed }
