package dpf

import (
	"fmt"
	"sort"
)

// EvalSequence evaluates key k at output i for every element of xs, which
// must already be sorted ascending. A recipe built from xs's bit patterns
// alone (no PRG calls) determines, level by level, which tree nodes are
// ancestors of some element of xs and whether each needs its left child,
// right child, or both; only those nodes are ever expanded, rather than
// walking one root-to-leaf path per point. Results are returned in the same
// order as xs.
func EvalSequence(k *Key, i int, xs []uint64, mem *SequenceMemoizer) ([]Value, error) {
	if k.wildcardMask != nil && k.wildcardMask.Test(uint(i)) {
		return nil, fmt.Errorf("%w: output %d is an uncompleted wildcard", ErrNotReady, i)
	}
	if !sort.SliceIsSorted(xs, func(a, b int) bool { return xs[a] < xs[b] }) {
		return nil, fmt.Errorf("%w: EvalSequence requires a sorted input list", ErrConfiguration)
	}
	if len(xs) == 0 {
		return nil, nil
	}
	if mem == nil {
		mem = NewSequenceMemoizer(k.depth)
	}

	px := make([]uint64, len(xs))
	for j, x := range xs {
		p := k.applyOffset(x)
		if k.Signed() {
			p = flipMSB(p, k.n)
		}
		px[j] = p
	}

	// px is xs shifted by a constant rotation modulo the domain size, so it
	// is ascending except for at most one wraparound point (a strictly
	// increasing sequence rotated by a fixed amount wraps at most once).
	// Split there so each run handed to the recipe walk is itself sorted.
	wrap := len(px)
	for j := 1; j < len(px); j++ {
		if px[j] < px[j-1] {
			wrap = j
			break
		}
	}

	zero := k.zeros[i]
	out := make([]Value, len(xs))
	if err := evalRecipe(k, i, px[:wrap], out[:wrap], zero, mem); err != nil {
		return nil, err
	}
	if wrap < len(px) {
		if err := evalRecipe(k, i, px[wrap:], out[wrap:], zero, mem); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// evalRecipe walks the tree level by level for the already-sorted, already-
// physical positions px, writing results for output i into out in px's
// order. At each level, a contiguous run of px sharing one ancestor node is
// split on its next bit; since px is sorted, every element with that bit
// clear sorts before every element with it set, so the split point is found
// by binary search rather than a per-element scan. A run needs its left
// child, right child, or both depending on whether the split point falls at
// its end, its start, or strictly inside it.
func evalRecipe(k *Key, i int, px []uint64, out []Value, zero Value, mem *SequenceMemoizer) error {
	if len(px) == 0 {
		return nil
	}
	prg := DefaultPRG
	buckets := mem.bufFor(0, len(px))
	buckets = append(buckets, seqBucket{0, len(px), k.root})

	for l := 0; l < k.depth; l++ {
		shift := uint(k.n - 1 - l)
		next := mem.bufFor(l+1, len(px))
		for _, b := range buckets {
			split := b.start + sort.Search(b.end-b.start, func(off int) bool {
				return (px[b.start+off]>>shift)&1 != 0
			})
			if split > b.start {
				cw := k.CorrectionWordForDirection(l, 0)
				next = append(next, seqBucket{b.start, split, traverseInterior(prg, b.node, cw, 0)})
			}
			if split < b.end {
				cw := k.CorrectionWordForDirection(l, 1)
				next = append(next, seqBucket{split, b.end, traverseInterior(prg, b.node, cw, 1)})
			}
		}
		buckets = next
	}

	leaf := k.leaves[i]
	for _, b := range buckets {
		leafNode := traverseExterior(prg, b.node, leaf, zero)
		for idx := b.start; idx < b.end; idx++ {
			out[idx] = extractLeaf(leafNode, px[idx], zero)
		}
	}
	return nil
}
