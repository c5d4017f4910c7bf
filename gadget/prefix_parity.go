// Package gadget implements the prefix/segment-parity gadget for single-bit
// output DPFs: given a sorted list of public endpoints, it produces the
// XOR-parity of a bit-output DPF's evaluations over each prefix/segment of
// the domain, without evaluating every point individually.
package gadget

import (
	"fmt"
	"sort"

	"dpfkit/dpf"
)

// Gadget wraps a key known to carry a single Bit output at index outputIdx.
type Gadget struct {
	key       *dpf.Key
	outputIdx int
}

// New builds a prefix-parity gadget over key's output at outputIdx, which
// must be a Bit (single-bit) output.
func New(key *dpf.Key, outputIdx int) *Gadget {
	return &Gadget{key: key, outputIdx: outputIdx}
}

// PrefixParities returns, for each endpoint e in endpoints (sorted
// ascending), the XOR-parity of the DPF's evaluations over [0, e).
//
// Each endpoint is translated to the physical tree position dpf.PrefixParity
// walks to before calling it, so this returns the parity of the *physical*
// prefix, not necessarily the logical one: those only coincide when the key
// was never a wildcard input. SegmentParities is where the two are
// reconciled.
func (g *Gadget) PrefixParities(endpoints []uint64) ([]dpf.Bit, error) {
	if !sort.SliceIsSorted(endpoints, func(i, j int) bool { return endpoints[i] < endpoints[j] }) {
		return nil, fmt.Errorf("%w: endpoints must be sorted ascending", dpf.ErrConfiguration)
	}

	out := make([]dpf.Bit, len(endpoints))
	for j, e := range endpoints {
		p, err := dpf.PrefixParity(g.key, g.outputIdx, g.key.PhysicalPosition(e))
		if err != nil {
			return nil, err
		}
		out[j] = p
	}
	return out, nil
}

// SegmentParities derives the XOR-parity of each segment [endpoints[j],
// endpoints[j+1]) from the (physical) prefix parities by XORing adjacent
// values: segment_j = prefix_j XOR prefix_{j+1}.
//
// That cancellation is exact for every segment whose physical image is a
// contiguous tree range. A segment whose logical range straddles the
// completed wildcard offset is the one exception: its physical image wraps
// from the top of the domain back to the bottom, so the plain XOR is off by
// the parity of the whole domain. A segment ending exactly at the offset is
// treated the same way, since its upper endpoint maps to physical position
// 0. Each key XORs its root's flag bit (low_bit(root)) into that segment;
// the two keys' root flag bits always differ, so the reconstructed
// correction is 1, the whole-domain parity of a point function whose output
// is One. At most one segment can straddle the offset, so at most one
// correction is ever applied.
func (g *Gadget) SegmentParities(endpoints []uint64) ([]dpf.Bit, error) {
	prefixes, err := g.PrefixParities(endpoints)
	if err != nil {
		return nil, err
	}
	if len(prefixes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 endpoints to form a segment", dpf.ErrConfiguration)
	}

	segments := make([]dpf.Bit, len(prefixes)-1)
	for j := 0; j < len(segments); j++ {
		segments[j] = prefixes[j].Add(prefixes[j+1]).(dpf.Bit)
	}

	if g.key.HasOffset() {
		offset := g.key.OffsetShare()
		for j := 0; j < len(segments); j++ {
			if endpoints[j] < offset && offset <= endpoints[j+1] {
				segments[j] = segments[j].Add(g.key.RootParityBit()).(dpf.Bit)
				break
			}
		}
	}
	return segments, nil
}
