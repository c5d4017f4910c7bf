package dpf

// Leaf is a packed output block: outputsPerLeaf(width) values of the same
// Value concrete type, laid out as consecutive Width()-bit big-endian-free
// slots inside one or more Blocks (blockLenOfLeaf(width) of them).
type Leaf struct {
	width  int
	blocks []Block
}

func newLeaf(width int) Leaf {
	return Leaf{width: width, blocks: make([]Block, blockLenOfLeaf(width))}
}

// extractLeaf returns the Y at offsetWithinBlock(x) of leaf, decoded via
// zero's FromBytes.
func extractLeaf(leaf Leaf, x uint64, zero Value) Value {
	width := zero.Width()
	slot := offsetWithinBlock(x, width)
	buf := leafBytes(leaf)
	sz := (width + 7) / 8
	if width == 1 {
		byteOff := slot / 8
		bitOff := uint(slot % 8)
		bit := (buf[byteOff] >> bitOff) & 1
		return zero.FromBytes([]byte{bit})
	}
	off := slot * sz
	return zero.FromBytes(buf[off : off+sz])
}

// makeNakedLeaf embeds y at offsetWithinBlock(x) of an otherwise-zero leaf.
func makeNakedLeaf(x uint64, y Value) Leaf {
	width := y.Width()
	leaf := newLeaf(width)
	slot := offsetWithinBlock(x, width)
	buf := leafBytes(leaf)
	if width == 1 {
		byteOff := slot / 8
		bitOff := uint(slot % 8)
		if y.Bytes()[0]&1 != 0 {
			buf[byteOff] |= 1 << bitOff
		}
	} else {
		sz := (width + 7) / 8
		off := slot * sz
		copy(buf[off:off+sz], y.Bytes())
	}
	writeLeafBytes(&leaf, buf)
	return leaf
}

// makeLeafMaskInner runs the exterior PRG on a single (already
// clear-low-2-bits) seed, for the output type described by zero, and decodes
// it as a packed Leaf without subtracting anything; used by
// traverseExterior (key.go) during evaluation.
func makeLeafMaskInner(prg PRG, seed Block, zero Value) Leaf {
	width := zero.Width()
	nblocks := blockLenOfLeaf(width)
	blocks := prg.ExpandExterior(seed, 0, nblocks)
	var leaf Leaf
	leaf.width = width
	leaf.blocks = blocks
	return leaf
}

// makeLeafMask returns PRG(seed1) - PRG(seed0) in zero's algebra, one value
// per packed slot, represented as a Leaf.
func makeLeafMask(prg PRG, seed0, seed1 Block, zero Value) Leaf {
	m0 := makeLeafMaskInner(prg, seed0, zero)
	m1 := makeLeafMaskInner(prg, seed1, zero)
	return subtractLeaf(m1, m0, zero)
}

// makeLeaf returns the exterior correction word for output y at input x:
// sign ? naked - mask : mask - naked.
func makeLeaf(x uint64, seed0, seed1 Block, sign bool, y Value, prg PRG) Leaf {
	naked := makeNakedLeaf(x, y)
	mask := makeLeafMask(prg, seed0, seed1, y)
	if sign {
		return subtractLeaf(naked, mask, y)
	}
	return subtractLeaf(mask, naked, y)
}

// addLeaf and subtractLeaf are the two arithmetics the leaf layer fixes per
// output type for additive share reconstruction.

func addLeaf(a, b Leaf, zero Value) Leaf {
	return combineLeaf(a, b, zero, func(x, y Value) Value { return x.Add(y) })
}

func subtractLeaf(a, b Leaf, zero Value) Leaf {
	return combineLeaf(a, b, zero, func(x, y Value) Value { return x.Sub(y) })
}

func combineLeaf(a, b Leaf, zero Value, op func(Value, Value) Value) Leaf {
	n := outputsPerLeaf(zero.Width())
	if n == 0 {
		n = 1
	}
	out := newLeaf(zero.Width())
	for i := 0; i < n; i++ {
		av := extractLeaf(a, uint64(i), zero)
		bv := extractLeaf(b, uint64(i), zero)
		out = writeSlot(out, i, op(av, bv), zero)
	}
	return out
}

func writeSlot(leaf Leaf, slot int, v Value, zero Value) Leaf {
	width := zero.Width()
	buf := leafBytes(leaf)
	if width == 1 {
		byteOff := slot / 8
		bitOff := uint(slot % 8)
		buf[byteOff] &^= 1 << bitOff
		if v.Bytes()[0]&1 != 0 {
			buf[byteOff] |= 1 << bitOff
		}
	} else {
		sz := (width + 7) / 8
		off := slot * sz
		copy(buf[off:off+sz], v.Bytes())
	}
	writeLeafBytes(&leaf, buf)
	return leaf
}

// leafBytes flattens leaf.blocks into one contiguous byte slice.
func leafBytes(leaf Leaf) []byte {
	buf := make([]byte, len(leaf.blocks)*16)
	for i, blk := range leaf.blocks {
		copy(buf[i*16:(i+1)*16], blk[:])
	}
	return buf
}

// writeLeafBytes writes buf back into leaf's blocks in place.
func writeLeafBytes(leaf *Leaf, buf []byte) {
	for i := range leaf.blocks {
		copy(leaf.blocks[i][:], buf[i*16:(i+1)*16])
	}
}
