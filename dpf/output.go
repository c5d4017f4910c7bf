package dpf

// Value is an output type Y_i of a point function. Concrete Value
// implementations (output_int.go, output_bit.go, output_xor.go,
// output_field.go, output_scalar.go, output_fr.go) are trivially-copyable,
// standard-layout types: Bytes/FromBytes round-trip a fixed-size encoding,
// and Add/Sub/MulScalar are pure.
//
// The leaf layer (leaf.go) uses Add/Sub for additive share reconstruction.
// MulScalar (scalar x vector) is part of every output type but is not called
// anywhere in this package; wildcard completion (wildcard.go) needs no
// multiplication. For GF(2)-style (XOR) output types, Add, Sub and
// MulScalar reduce to XOR and AND respectively.
type Value interface {
	// Width reports the bit width of this output type.
	Width() int

	// Bytes encodes the value into a fixed-size byte slice of length
	// (Width()+7)/8. The integer types use little-endian order; the field,
	// scalar and Fr types use their libraries' big-endian encodings.
	Bytes() []byte

	// FromBytes decodes a value of the same concrete type from b, which has
	// length (Width()+7)/8. It does not mutate the receiver.
	FromBytes(b []byte) Value

	// Zero returns the additive identity of this concrete type.
	Zero() Value

	// Add returns the receiver plus other, in this type's algebra.
	Add(other Value) Value

	// Sub returns the receiver minus other, in this type's algebra.
	Sub(other Value) Value

	// MulScalar returns the receiver multiplied by other (both of this
	// type).
	MulScalar(other Value) Value
}

// outputsPerLeaf returns the number of Width()-bit outputs packed into one
// 128-bit leaf block: b/w when w < b and w | b, else 1.
func outputsPerLeaf(width int) int {
	const b = 128
	if width > 0 && width < b && b%width == 0 {
		return b / width
	}
	return 1
}

// lgOutputsPerLeaf returns log2(outputsPerLeaf(width)).
func lgOutputsPerLeaf(width int) int {
	n := outputsPerLeaf(width)
	lg := 0
	for n > 1 {
		n >>= 1
		lg++
	}
	return lg
}

// blockLenOfLeaf returns how many 128-bit blocks one leaf occupies: 1 when
// the output is packable (or exactly block-sized), else ceil(width/128).
func blockLenOfLeaf(width int) int {
	if outputsPerLeaf(width) > 1 || width <= 128 {
		return 1
	}
	return (width + 127) / 128
}

// offsetWithinBlock returns x mod outputs_per_leaf.
func offsetWithinBlock(x uint64, width int) int {
	return int(x % uint64(outputsPerLeaf(width)))
}
