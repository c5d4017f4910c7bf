package dpf

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// WildcardAlpha marks alpha as deferred: its value is supplied later via the
// online input-completion protocol (wildcard.go) rather than at Gen time.
var WildcardAlpha = ^uint64(0)

// WildcardBeta, when passed as a beta_i, marks output i as deferred: its
// value is supplied later via the online output-completion protocol.
type WildcardBeta struct{}

// Gen runs the dealer (key generation) algorithm for a single point alpha
// with per-output values betas (len(betas) == s.NumOutputs()), each either
// a concrete Value or the WildcardBeta sentinel. alpha may be WildcardAlpha.
// sampler supplies fresh pseudorandom root seeds; pass UniformRootSampler in
// production, a deterministic stub in tests.
func Gen(s *Spec, alpha uint64, betas []Value, sampler RootSampler) (k0, k1 *Key, err error) {
	if len(betas) != s.NumOutputs() {
		return nil, nil, fmt.Errorf("%w: expected %d outputs, got %d", ErrConfiguration, s.NumOutputs(), len(betas))
	}

	prg := DefaultPRG
	depth := s.Depth()

	alphaIsWildcard := alpha == WildcardAlpha
	var alpha0, alpha1 uint64
	x := alpha
	if alphaIsWildcard {
		// Step 2: obtain (alpha, alpha0, alpha1) from the wildcard source.
		// Gen cannot itself pick alpha when it is a wildcard; the caller
		// completes it later via CompleteInput. Use 0 as a placeholder so
		// the tree still has a well-defined (but meaningless until
		// completed) shape.
		x = 0
	} else if s.Signed() {
		x = flipMSB(x, s.n)
	}

	// Step 3: sample two roots differing in the low bit.
	seedA := sampler()
	seedB := sampler()
	parent := [2]Block{clearLowBit(seedA), setLowBit(seedB)}

	correctionWords := make([]Block, depth)
	correctionAdvice := make([]uint8, depth)

	for l := 0; l < depth; l++ {
		shift := uint(s.n - 1 - l)
		bit := 0
		if (x>>shift)&1 != 0 {
			bit = 1
		}

		advice := [2]bool{getLowBit(parent[0]) != 0, getLowBit(parent[1]) != 0}

		l0, r0 := prg.Eval01(parent[0])
		l1, r1 := prg.Eval01(parent[1])
		childL := l0.XOR(l1)
		childR := r0.XOR(r1)
		child := [2]Block{childL, childR}

		notBit := 1 - bit
		tL := getLowBit(childL) ^ boolToBit(bit == 0)
		tR := getLowBit(childR) ^ boolToBit(bit == 1)
		tBit := [2]byte{tL, tR}

		cw := setLowBit(child[notBit], tBit[bit])

		child0 := [2]Block{l0, r0}
		child1 := [2]Block{l1, r1}
		parent[0] = xorIf(child0[bit], cw, advice[0])
		parent[1] = xorIf(child1[bit], cw, advice[1])

		correctionWords[l] = clearLow2Bits(child[notBit])
		correctionAdvice[l] = (tR << 1) | tL
	}

	sign0 := getLowBit(parent[0]) != 0

	numOutputs := s.NumOutputs()
	leaves0 := make([]Leaf, numOutputs)
	leaves1 := make([]Leaf, numOutputs)
	mask := bitset.New(uint(numOutputs + 1))
	beavers0 := make([]Beaver, numOutputs)
	beavers1 := make([]Beaver, numOutputs)
	leafOffset := make([]int, numOutputs)

	leafSeed0 := clearLow2Bits(parent[0])
	leafSeed1 := clearLow2Bits(parent[1])

	for i := 0; i < numOutputs; i++ {
		zero := s.OutputZero(i)
		leafOffset[i] = offsetWithinBlock(x, zero.Width())
		beta := betas[i]
		if _, isWildcard := beta.(WildcardBeta); isWildcard {
			mask.Set(uint(i))
			seedMask := makeLeafMask(prg, leafSeed0, leafSeed1, zero)
			share0 := randomLeaf(zero)
			share1 := subtractLeaf(seedMask, share0, zero)

			beavers0[i] = Beaver{MaskShare: share0}
			beavers1[i] = Beaver{MaskShare: share1}
			leaves0[i] = newLeaf(zero.Width())
			leaves1[i] = newLeaf(zero.Width())
			continue
		}
		leaf := makeLeaf(x, leafSeed0, leafSeed1, sign0, beta, prg)
		leaves0[i] = leaf
		leaves1[i] = leaf
	}

	if alphaIsWildcard {
		mask.Set(uint(numOutputs))
	}

	hash := computeCommonPartHash(correctionWords, correctionAdvice, leaves0, mask)

	zeros := make([]Value, numOutputs)
	for i := range zeros {
		zeros[i] = s.OutputZero(i)
	}

	k0 = &Key{
		n: s.n, depth: depth, party: 0, signed: s.signed,
		root:             clearLowBit(seedA),
		correctionWords:  correctionWords,
		correctionAdvice: correctionAdvice,
		zeros:            zeros,
		leaves:           leaves0,
		leafOffset:       leafOffset,
		wildcardMask:     mask.Clone(),
		beavers:          beavers0,
		alphaShare:       alpha0,
		leafSign:         sign0,
		commonHash:       hash,
	}
	k1 = &Key{
		n: s.n, depth: depth, party: 1, signed: s.signed,
		root:             setLowBit(seedB),
		correctionWords:  correctionWords,
		correctionAdvice: correctionAdvice,
		zeros:            zeros,
		leaves:           leaves1,
		leafOffset:       leafOffset,
		wildcardMask:     mask.Clone(),
		beavers:          beavers1,
		alphaShare:       alpha1,
		leafSign:         sign0,
		commonHash:       hash,
	}
	return k0, k1, nil
}

func boolToBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func flipMSB(x uint64, n int) uint64 {
	return x ^ (uint64(1) << uint(n-1))
}

// randomLeaf samples a fresh uniformly random leaf of zero's shape, used as
// one party's additive share of the wildcard seed mask.
func randomLeaf(zero Value) Leaf {
	leaf := newLeaf(zero.Width())
	for i := range leaf.blocks {
		leaf.blocks[i] = uniformBlock()
	}
	return leaf
}
