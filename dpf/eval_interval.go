package dpf

import "fmt"

// EvalInterval evaluates key k at output i for every point in [lo, hi),
// returning one Value per point in order. Passing mem reuses buffers
// across calls; pass nil to allocate a one-shot memoizer.
//
// Wildcard alpha: Gen builds the tree around physical position 0 when alpha
// is a wildcard, so once input completion has run, the tree's physical node
// order is the logical domain rotated by the completed offset. [lo, hi) can
// no longer be walked as a single contiguous physical range in that case;
// instead the whole domain is evaluated once and the requested window is
// read back through a RotationIterable (rotation.go).
func EvalInterval(k *Key, i int, lo, hi uint64, mem *IntervalMemoizer) ([]Value, error) {
	if k.wildcardMask != nil && k.wildcardMask.Test(uint(i)) {
		return nil, fmt.Errorf("%w: output %d is an uncompleted wildcard", ErrNotReady, i)
	}
	if hi <= lo {
		return nil, nil
	}
	if !k.hasOffset {
		return evalSignedInterval(k, i, lo, hi, mem)
	}

	domain := uint64(1) << uint(k.n)
	full, err := evalSignedInterval(k, i, 0, domain, mem)
	if err != nil {
		return nil, err
	}
	rot := NewRotationIterable(full, k.offsetShare)
	out := make([]Value, hi-lo)
	for j := lo; j < hi; j++ {
		out[j-lo] = rot.At(j)
	}
	return out, nil
}

// evalSignedInterval evaluates [lo, hi) against the tree's physical node
// order, handling the signed-domain MSB-flip split but not any wildcard
// input offset (EvalInterval applies that separately via a
// RotationIterable, since it is not a range-preserving shift).
//
// Signed domains: EvalPoint flips the input's MSB before tree traversal to
// map signed order onto the tree's unsigned node order. That flip is only
// an affine shift (+half or -half, depending on which side of the midpoint
// x falls on) within either half of the domain, so a requested [lo, hi)
// that stays within one half still walks one contiguous physical range; a
// request straddling the midpoint is split into its two affine-contiguous
// halves and the two walks are concatenated in the caller's requested
// order.
func evalSignedInterval(k *Key, i int, lo, hi uint64, mem *IntervalMemoizer) ([]Value, error) {
	if !k.Signed() {
		return evalTreeRange(k, i, lo, hi, mem)
	}

	half := uint64(1) << uint(k.n-1)
	switch {
	case hi <= half:
		return evalTreeRange(k, i, lo+half, hi+half, mem)
	case lo >= half:
		return evalTreeRange(k, i, lo-half, hi-half, mem)
	default:
		lower, err := evalTreeRange(k, i, lo+half, half+half, mem)
		if err != nil {
			return nil, err
		}
		upper, err := evalTreeRange(k, i, 0, hi-half, mem)
		if err != nil {
			return nil, err
		}
		return append(lower, upper...), nil
	}
}

// evalTreeRange walks the tree directly over the physical node-space range
// [treeLo, treeHi), with no signed-domain remapping; EvalInterval has
// already translated the caller's request into this space.
func evalTreeRange(k *Key, i int, treeLo, treeHi uint64, mem *IntervalMemoizer) ([]Value, error) {
	zero := k.zeros[i]
	// Inputs per leaf-level node: fixed by the tree depth shared by every
	// output, which can be smaller than output i's own packing factor.
	perNode := uint64(1) << uint(k.n-k.depth)
	fromNode := treeLo / perNode
	toNode := (treeHi + perNode - 1) / perNode

	if mem == nil {
		mem = NewIntervalMemoizer(k.depth)
	}
	nodes := mem.Walk(k, DefaultPRG, fromNode, toNode)

	out := make([]Value, 0, treeHi-treeLo)
	for x := treeLo; x < treeHi; x++ {
		node := nodes[x/perNode-fromNode]
		leafNode := traverseExterior(DefaultPRG, node, k.leaves[i], zero)
		out = append(out, extractLeaf(leafNode, x, zero))
	}
	return out, nil
}
