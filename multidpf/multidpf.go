// Package multidpf implements a distributed sum-of-point-functions (a
// "multi-point DPF"): t independent single-point DPF keys bundled together,
// one per (special point, output tuple) pair, whose combined evaluation at
// any x sums to the assigned output if x equals one of the special points,
// else zero.
package multidpf

import (
	"fmt"
	"sort"

	"dpfkit/dpf"
)

// MultiDPF bundles a Spec describing the per-point output shape shared by
// every special point in the sum.
type MultiDPF struct {
	spec *dpf.Spec
}

// New builds a MultiDPF over the given per-point output Spec.
func New(spec *dpf.Spec) *MultiDPF {
	return &MultiDPF{spec: spec}
}

// Key bundles one underlying dpf.Key per special point.
type Key struct {
	DPFKeys []*dpf.Key
}

// Gen generates keys for t special points and their associated output
// tuples: len(specialPoints) == len(outputs), outputs[j] has
// spec.NumOutputs() entries. Special points must be distinct.
func (m *MultiDPF) Gen(specialPoints []uint64, outputs [][]dpf.Value, sampler dpf.RootSampler) (Key, Key, error) {
	if len(specialPoints) != len(outputs) {
		return Key{}, Key{}, fmt.Errorf("%w: special points and outputs must have matching length", dpf.ErrConfiguration)
	}
	seen := make(map[uint64]struct{}, len(specialPoints))
	for _, sp := range specialPoints {
		if _, dup := seen[sp]; dup {
			return Key{}, Key{}, fmt.Errorf("%w: duplicate special point %d", dpf.ErrConfiguration, sp)
		}
		seen[sp] = struct{}{}
	}

	var alice, bob Key
	for i, sp := range specialPoints {
		k0, k1, err := dpf.Gen(m.spec, sp, outputs[i], sampler)
		if err != nil {
			return Key{}, Key{}, fmt.Errorf("special point %d: %w", i, err)
		}
		alice.DPFKeys = append(alice.DPFKeys, k0)
		bob.DPFKeys = append(bob.DPFKeys, k1)
	}
	return alice, bob, nil
}

// Eval evaluates every underlying DPF key at x for output slot i, returning
// one share per special point in the same order as Gen's specialPoints.
func (m *MultiDPF) Eval(key Key, i int, x uint64) ([]dpf.Value, error) {
	ys := make([]dpf.Value, len(key.DPFKeys))
	for j, k := range key.DPFKeys {
		y, err := dpf.EvalPoint(k, i, x, nil)
		if err != nil {
			return nil, fmt.Errorf("dpf key %d: %w", j, err)
		}
		ys[j] = y
	}
	return ys, nil
}

// CombineResults sums a pair of per-key share vectors (one party's Eval
// output each) into the multi-point function's single combined value at the
// x both were evaluated at. At most one underlying DPF key may contribute a
// non-zero value for a given x, since special points are required to be
// distinct; a second non-zero contribution indicates caller error (e.g.
// colliding special points after packing) and is reported rather than
// silently summed.
func (m *MultiDPF) CombineResults(i int, y0, y1 []dpf.Value) (dpf.Value, error) {
	if len(y0) != len(y1) {
		return nil, fmt.Errorf("%w: share vectors must have matching length", dpf.ErrConfiguration)
	}
	zero := m.spec.OutputZero(i)
	combined := zero.Zero()
	nonZeroFound := false
	for j := range y0 {
		res := y0[j].Add(y1[j])
		if !isZeroValue(res) {
			if nonZeroFound {
				return nil, fmt.Errorf("%w: multiple non-zero contributions found for this x", dpf.ErrConfiguration)
			}
			nonZeroFound = true
			combined = res
		}
	}
	return combined, nil
}

func isZeroValue(v dpf.Value) bool {
	b := v.Bytes()
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// SortedSpecialPoints returns a copy of pts sorted ascending, convenient for
// callers that want to drive dpf.EvalSequence per underlying key.
func SortedSpecialPoints(pts []uint64) []uint64 {
	out := append([]uint64(nil), pts...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
