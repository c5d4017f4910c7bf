package dpf

import "fmt"

// Spec describes the shape of a family of DPF keys: the input domain width
// and the output types the dealer will produce leaves for. Domain width is
// capped at 64 bits since every input is carried as a uint64 throughout.
type Spec struct {
	n       int     // input domain bit-width, 1 <= n <= 64
	signed  bool    // whether the input space is interpreted as signed
	outputs []Value // one zero-value representative per output type
}

// NewSpec validates and builds a Spec for domain width n over the given
// output-type zero values (e.g. dpf.Uint32(0), dpf.Bit(0)).
func NewSpec(n int, signed bool, outputs ...Value) (*Spec, error) {
	if n < 1 || n > 64 {
		return nil, fmt.Errorf("%w: domain width must be in [1,64], got %d", ErrConfiguration, n)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("%w: at least one output type is required", ErrConfiguration)
	}
	for i, o := range outputs {
		if o.Width() <= 0 {
			return nil, fmt.Errorf("%w: output %d has non-positive width", ErrConfiguration, i)
		}
	}
	return &Spec{n: n, signed: signed, outputs: outputs}, nil
}

// N returns the input domain bit-width.
func (s *Spec) N() int { return s.n }

// Signed reports whether inputs are interpreted as signed integers (MSB
// flipped before tree traversal).
func (s *Spec) Signed() bool { return s.signed }

// NumOutputs returns the number of output tuples k.
func (s *Spec) NumOutputs() int { return len(s.outputs) }

// OutputZero returns the zero value (and, implicitly, concrete type/width)
// of output i.
func (s *Spec) OutputZero(i int) Value { return s.outputs[i] }

// lgOutputsPerLeaf returns the smallest lg_outputs_per_leaf across all
// output types: the tree depth is shared by every output, so it is bounded
// by whichever output packs the fewest values per leaf.
func (s *Spec) lgOutputsPerLeaf() int {
	lg := -1
	for _, o := range s.outputs {
		l := lgOutputsPerLeaf(o.Width())
		if lg == -1 || l < lg {
			lg = l
		}
	}
	if lg < 0 {
		lg = 0
	}
	return lg
}

// Depth returns d = n - lg_outputs_per_leaf, the number of interior tree
// levels.
func (s *Spec) Depth() int {
	d := s.n - s.lgOutputsPerLeaf()
	if d < 0 {
		d = 0
	}
	return d
}
