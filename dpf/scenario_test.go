package dpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialSampler returns a RootSampler that cycles through a fixed list
// of seeds, making Gen deterministic for tests that need reproducible
// roots without caring about their cryptographic quality.
func sequentialSampler(seeds ...Block) RootSampler {
	i := 0
	return func() Block {
		b := seeds[i%len(seeds)]
		i++
		return b
	}
}

func TestScenarioS1SingleUint8Point(t *testing.T) {
	spec, err := NewSpec(8, false, Uint8(0))
	require.NoError(t, err)

	k0, k1, err := Gen(spec, 42, []Value{Uint8(7)}, UniformRootSampler)
	require.NoError(t, err)

	v0, err := EvalPoint(k0, 0, 42, nil)
	require.NoError(t, err)
	v1, err := EvalPoint(k1, 0, 42, nil)
	require.NoError(t, err)
	assert.Equal(t, Uint8(7), v0.Add(v1))

	z0, err := EvalPoint(k0, 0, 0, nil)
	require.NoError(t, err)
	z1, err := EvalPoint(k1, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, Uint8(0), z0.Add(z1))

	full0, err := EvalFull(k0, 0, nil)
	require.NoError(t, err)
	full1, err := EvalFull(k1, 0, nil)
	require.NoError(t, err)
	require.Len(t, full0, 256)
	for x := 0; x < 256; x++ {
		sum := full0[x].Add(full1[x]).(Uint8)
		if x == 42 {
			assert.Equal(t, Uint8(7), sum)
		} else {
			assert.Equal(t, Uint8(0), sum, "mismatch at x=%d", x)
		}
	}
}

func TestScenarioS2BitOutputFullDomain(t *testing.T) {
	spec, err := NewSpec(10, false, Bit(0))
	require.NoError(t, err)

	k0, k1, err := Gen(spec, 123, []Value{One}, UniformRootSampler)
	require.NoError(t, err)

	full0, err := EvalFull(k0, 0, nil)
	require.NoError(t, err)
	full1, err := EvalFull(k1, 0, nil)
	require.NoError(t, err)
	require.Len(t, full0, 1024)

	onesFound := 0
	for x := 0; x < 1024; x++ {
		sum := full0[x].Add(full1[x]).(Bit)
		if sum == One {
			onesFound++
			assert.Equal(t, 123, x)
		}
	}
	assert.Equal(t, 1, onesFound)
}

func TestScenarioS3TwoHeterogeneousOutputs(t *testing.T) {
	spec, err := NewSpec(16, false, Uint32(0), Uint16(0))
	require.NoError(t, err)

	alpha := uint64(0xBEEF)
	k0, k1, err := Gen(spec, alpha, []Value{Uint32(0xDEADBEEF), Uint16(0xCAFE)}, UniformRootSampler)
	require.NoError(t, err)

	a0, err := EvalPoint(k0, 0, alpha, nil)
	require.NoError(t, err)
	a1, err := EvalPoint(k1, 0, alpha, nil)
	require.NoError(t, err)
	assert.Equal(t, Uint32(0xDEADBEEF), a0.Add(a1))

	b0, err := EvalPoint(k0, 1, alpha, nil)
	require.NoError(t, err)
	b1, err := EvalPoint(k1, 1, alpha, nil)
	require.NoError(t, err)
	assert.Equal(t, Uint16(0xCAFE), b0.Add(b1))

	other := uint64(0x1234)
	o0, err := EvalPoint(k0, 0, other, nil)
	require.NoError(t, err)
	o1, err := EvalPoint(k1, 0, other, nil)
	require.NoError(t, err)
	assert.Equal(t, Uint32(0), o0.Add(o1))
}

// loopbackChannel connects two CompleteOutput/CompleteInput calls running
// in separate goroutines by buffering one pending message per direction;
// good enough for tests that run each party in its own goroutine.
type loopbackChannel struct {
	toPeer   chan Value
	fromPeer chan Value
	leafToPeer   chan Leaf
	leafFromPeer chan Leaf
}

func newLoopback() (a, b *loopbackChannel) {
	v1, v2 := make(chan Value, 1), make(chan Value, 1)
	l1, l2 := make(chan Leaf, 1), make(chan Leaf, 1)
	a = &loopbackChannel{toPeer: v1, fromPeer: v2, leafToPeer: l1, leafFromPeer: l2}
	b = &loopbackChannel{toPeer: v2, fromPeer: v1, leafToPeer: l2, leafFromPeer: l1}
	return
}

func (c *loopbackChannel) SendValue(v Value) error {
	c.toPeer <- v
	return nil
}

func (c *loopbackChannel) ReceiveValue(zero Value) (Value, error) {
	return <-c.fromPeer, nil
}

func (c *loopbackChannel) SendLeaf(l Leaf) error {
	c.leafToPeer <- l
	return nil
}

func (c *loopbackChannel) ReceiveLeaf(zero Value) (Leaf, error) {
	return <-c.leafFromPeer, nil
}

func TestScenarioS4WildcardOutputCompletion(t *testing.T) {
	spec, err := NewSpec(8, false, Uint8(0))
	require.NoError(t, err)

	k0, k1, err := Gen(spec, 10, []Value{WildcardBeta{}}, UniformRootSampler)
	require.NoError(t, err)

	share0 := Uint8(2)
	share1 := Uint8(3) // sums to 5

	chanA, chanB := newLoopback()
	errs := make(chan error, 2)
	go func() { errs <- k0.CompleteOutput(0, share0, chanA) }()
	go func() { errs <- k1.CompleteOutput(0, share1, chanB) }()
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	v0, err := EvalPoint(k0, 0, 10, nil)
	require.NoError(t, err)
	v1, err := EvalPoint(k1, 0, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, Uint8(5), v0.Add(v1))
}

func TestScenarioS5WildcardInputCompletion(t *testing.T) {
	spec, err := NewSpec(8, false, Uint8(0))
	require.NoError(t, err)

	k0, k1, err := Gen(spec, WildcardAlpha, []Value{Uint8(1)}, UniformRootSampler)
	require.NoError(t, err)

	k0.alphaShare = 50
	k1.alphaShare = 150 // 50 + 150 = 200 mod 256

	chanA, chanB := newLoopback()
	errs := make(chan error, 2)
	go func() { errs <- k0.CompleteInput(chanA) }()
	go func() { errs <- k1.CompleteInput(chanB) }()
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	v0, err := EvalPoint(k0, 0, 200, nil)
	require.NoError(t, err)
	v1, err := EvalPoint(k1, 0, 200, nil)
	require.NoError(t, err)
	assert.Equal(t, Uint8(1), v0.Add(v1))
}

func TestIntervalEqualsPoint(t *testing.T) {
	spec, err := NewSpec(8, false, Uint16(0))
	require.NoError(t, err)
	k0, k1, err := Gen(spec, 17, []Value{Uint16(99)}, UniformRootSampler)
	require.NoError(t, err)

	interval0, err := EvalInterval(k0, 0, 0, 256, nil)
	require.NoError(t, err)
	interval1, err := EvalInterval(k1, 0, 0, 256, nil)
	require.NoError(t, err)

	for x := 0; x < 256; x++ {
		p0, err := EvalPoint(k0, 0, uint64(x), nil)
		require.NoError(t, err)
		p1, err := EvalPoint(k1, 0, uint64(x), nil)
		require.NoError(t, err)
		assert.Equal(t, p0.Add(p1), interval0[x].Add(interval1[x]))
	}
}

func TestSequenceEqualsPoint(t *testing.T) {
	spec, err := NewSpec(10, false, Uint8(0))
	require.NoError(t, err)
	k0, k1, err := Gen(spec, 500, []Value{Uint8(9)}, UniformRootSampler)
	require.NoError(t, err)

	xs := []uint64{3, 100, 499, 500, 501, 900}
	seq0, err := EvalSequence(k0, 0, xs, nil)
	require.NoError(t, err)
	seq1, err := EvalSequence(k1, 0, xs, nil)
	require.NoError(t, err)

	for j, x := range xs {
		p0, err := EvalPoint(k0, 0, x, nil)
		require.NoError(t, err)
		p1, err := EvalPoint(k1, 0, x, nil)
		require.NoError(t, err)
		assert.Equal(t, p0.Add(p1), seq0[j].Add(seq1[j]))
	}
}

func TestFlagInvariants(t *testing.T) {
	spec, err := NewSpec(8, false, Uint8(0))
	require.NoError(t, err)
	k0, k1, err := Gen(spec, 42, []Value{Uint8(7)}, UniformRootSampler)
	require.NoError(t, err)

	for l := 0; l < k0.Depth(); l++ {
		assert.Equal(t, byte(0), getLow2Bits(k0.CorrectionWord(l)))
	}
	assert.NotEqual(t, getLowBit(k0.Root()), getLowBit(k1.Root()))
	assert.Equal(t, k0.CommonPartHash(), k1.CommonPartHash())
	assert.NoError(t, CheckKeysMatch(k0, k1))
}

func TestCheckKeysMatchDetectsMismatch(t *testing.T) {
	spec, err := NewSpec(8, false, Uint8(0))
	require.NoError(t, err)
	k0, _, err := Gen(spec, 42, []Value{Uint8(7)}, UniformRootSampler)
	require.NoError(t, err)
	_, other1, err := Gen(spec, 43, []Value{Uint8(9)}, UniformRootSampler)
	require.NoError(t, err)

	assert.ErrorIs(t, CheckKeysMatch(k0, other1), ErrKeyMismatch)
}

func TestPathReuseDoesNotChangeResult(t *testing.T) {
	spec, err := NewSpec(8, false, Uint8(0))
	require.NoError(t, err)
	k0, _, err := Gen(spec, 42, []Value{Uint8(7)}, UniformRootSampler)
	require.NoError(t, err)

	mem := NewPathMemoizer(k0.Depth())
	_, err = EvalPoint(k0, 0, 10, mem)
	require.NoError(t, err)
	withMem, err := EvalPoint(k0, 0, 42, mem)
	require.NoError(t, err)

	withoutMem, err := EvalPoint(k0, 0, 42, nil)
	require.NoError(t, err)

	assert.Equal(t, withoutMem, withMem)
}
