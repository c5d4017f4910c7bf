package dpf

import (
	"crypto/sha256"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Beaver is the per-wildcard-slot, per-party blinding material a dealer
// distributes so that a wildcard output can be completed online without
// either party revealing its beta share in the clear.
//
// make_naked_leaf (leaf.go) is linear in beta for every output type and
// every packing width — summing two parties' naked leaves for beta_0 and
// beta_1 always equals the naked leaf for beta_0+beta_1 — so the seed-only
// part of the leaf (make_leaf_mask, independent of beta) can simply be
// additively pre-split by the dealer instead of driven through a
// multiplication. MaskShare_p + MaskShare_(1-p) == make_leaf_mask(seed0,
// seed1); no party ever learns the other's share. This gets a one-round
// exchange-and-combine completion protocol without needing a full two-party
// multiplication protocol; see DESIGN.md.
type Beaver struct {
	MaskShare Leaf
}

// Key is one party's half of a Gen output: an immutable object carrying the
// root seed, the per-level correction words/advice shared by both parties,
// one leaf (or leaf array) per output, and the wildcard bookkeeping needed
// to complete deferred alpha/beta assignment online.
type Key struct {
	n        int // input domain bit-width
	depth    int // d = n - lg_outputs_per_leaf
	party    int // 0 or 1
	signed   bool
	leafSign bool // sign bit chosen during Gen, shared by both keys

	root Block

	correctionWords  []Block // length depth, low 2 bits already cleared
	correctionAdvice []uint8 // length depth, 2 bits used: tL | tR<<1

	zeros      []Value // one representative zero value per output, fixes width/type
	leaves     []Leaf  // one per output
	leafOffset []int   // offsetWithinBlock(alpha) per output, fixed at Gen time

	// wildcardMask has one bit set per output slot i whose beta_i is a
	// wildcard not yet completed, plus (conventionally) bit `len(zeros)`
	// set when alpha itself is a wildcard not yet completed.
	wildcardMask *bitset.BitSet
	wildcards    *wildcardState // CAS-guarded per-slot completion state; lazily allocated
	beavers      []Beaver       // parallel to zeros, valid only where wildcardMask is set

	alphaShare  uint64 // this party's additive share of alpha, when alpha is a wildcard
	hasOffset   bool   // true once CompleteInput has run; wildcardMask's alpha bit is cleared by then
	offsetShare uint64 // completed offset once input completion has run

	commonHash [32]byte
}

// Root returns the party's root seed.
func (k *Key) Root() Block { return k.root }

// Depth returns the key's tree depth d.
func (k *Key) Depth() int { return k.depth }

// N returns the key's input domain bit-width.
func (k *Key) N() int { return k.n }

// CorrectionWord returns the raw (low-2-bits-cleared) correction word at
// level l.
func (k *Key) CorrectionWord(l int) Block { return k.correctionWords[l] }

// CorrectionWordForDirection returns the level-l correction word with the
// advice bit for the given direction (0=left, 1=right) placed into its low
// bit, ready to XOR into a traversed child per traverseInterior.
func (k *Key) CorrectionWordForDirection(l int, dir int) Block {
	cw := k.correctionWords[l]
	advice := k.correctionAdvice[l]
	bit := (advice >> uint(dir)) & 1
	return setLowBit(cw, bit)
}

// CorrectionAdvice returns the 2-bit advice value (tL | tR<<1) at level l.
func (k *Key) CorrectionAdvice(l int) uint8 { return k.correctionAdvice[l] }

// CommonPartHash returns the digest over everything both parties' keys must
// agree on: correction words, correction advice, leaves, and the wildcard
// mask. Used to detect a mismatched key pair before evaluation.
func (k *Key) CommonPartHash() [32]byte { return k.commonHash }

// CheckKeysMatch reports ErrKeyMismatch if k0 and k1 do not share the same
// common-part hash, i.e. they were not produced by the same Gen call. A
// caller receiving a key over the wire (dpf/io.go, dpf/json.go) from an
// untrusted or merely unreliable peer should call this before evaluating,
// rather than letting a mismatched pair silently produce garbage shares.
func CheckKeysMatch(k0, k1 *Key) error {
	if k0.CommonPartHash() != k1.CommonPartHash() {
		return fmt.Errorf("%w: party 0 and party 1 keys were not produced by the same Gen call", ErrKeyMismatch)
	}
	return nil
}

func computeCommonPartHash(correctionWords []Block, correctionAdvice []uint8, leaves []Leaf, mask *bitset.BitSet) [32]byte {
	h := sha256.New()
	for _, cw := range correctionWords {
		h.Write(cw[:])
	}
	h.Write(correctionAdvice)
	for _, leaf := range leaves {
		h.Write(leafBytes(leaf))
	}
	if mask != nil {
		maskBytes, _ := mask.MarshalBinary()
		h.Write(maskBytes)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// traverseInterior is the inner loop of every evaluator: expand node in
// direction dir via the interior PRG, then XOR in cw if the corresponding
// advice bit was set on node's low bit.
func traverseInterior(prg PRG, node Block, cw Block, dir int) Block {
	child := prg.Eval(clearLow2Bits(node), dir)
	return xorIfLowBit(child, cw, node)
}

// traverseExterior runs the exterior PRG on node with its low 2 bits
// cleared, for the output type described by zero, then subtracts (in zero's
// algebra) the leaf correction word cw if node's low flag bit is set.
func traverseExterior(prg PRG, node Block, cw Leaf, zero Value) Leaf {
	mask := makeLeafMaskInner(prg, clearLow2Bits(node), zero)
	if getLowBit(node) != 0 {
		return subtractLeaf(mask, cw, zero)
	}
	return mask
}
