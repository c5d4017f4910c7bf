package multidpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpfkit/dpf"
)

func TestGenEvalCombineAcrossSpecialPoints(t *testing.T) {
	spec, err := dpf.NewSpec(10, false, dpf.Uint16(0))
	require.NoError(t, err)
	m := New(spec)

	specialPoints := []uint64{3, 500, 901}
	outputs := [][]dpf.Value{
		{dpf.Uint16(11)},
		{dpf.Uint16(22)},
		{dpf.Uint16(33)},
	}

	alice, bob, err := m.Gen(specialPoints, outputs, dpf.UniformRootSampler)
	require.NoError(t, err)
	require.Equal(t, 3, alice.NumKeys())
	require.Equal(t, 3, bob.NumKeys())

	check := func(x uint64, want dpf.Value) {
		y0, err := m.Eval(alice, 0, x)
		require.NoError(t, err)
		y1, err := m.Eval(bob, 0, x)
		require.NoError(t, err)
		combined, err := m.CombineResults(0, y0, y1)
		require.NoError(t, err)
		assert.Equal(t, want, combined, "mismatch at x=%d", x)
	}

	check(3, dpf.Uint16(11))
	check(500, dpf.Uint16(22))
	check(901, dpf.Uint16(33))
	for x := uint64(0); x < 1024; x += 97 {
		check(x, dpf.Uint16(0))
	}
}

func TestGenRejectsDuplicateSpecialPoints(t *testing.T) {
	spec, err := dpf.NewSpec(8, false, dpf.Uint8(0))
	require.NoError(t, err)
	m := New(spec)

	_, _, err = m.Gen(
		[]uint64{10, 10},
		[][]dpf.Value{{dpf.Uint8(1)}, {dpf.Uint8(2)}},
		dpf.UniformRootSampler,
	)
	assert.ErrorIs(t, err, dpf.ErrConfiguration)
}

func TestSortedSpecialPoints(t *testing.T) {
	got := SortedSpecialPoints([]uint64{9, 1, 5, 3})
	assert.Equal(t, []uint64{1, 3, 5, 9}, got)
}

func TestKeyJSONRoundTrip(t *testing.T) {
	spec, err := dpf.NewSpec(8, false, dpf.Uint8(0))
	require.NoError(t, err)
	m := New(spec)

	alice, _, err := m.Gen(
		[]uint64{1, 2},
		[][]dpf.Value{{dpf.Uint8(5)}, {dpf.Uint8(6)}},
		dpf.UniformRootSampler,
	)
	require.NoError(t, err)

	data, err := alice.MarshalJSON()
	require.NoError(t, err)

	decoded, err := DecodeKey(data, spec)
	require.NoError(t, err)
	assert.Equal(t, alice.NumKeys(), decoded.NumKeys())
}
