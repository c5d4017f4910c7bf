package dpf

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyJSONRoundTrip(t *testing.T) {
	spec, err := NewSpec(8, false, Uint8(0))
	require.NoError(t, err)
	k0, _, err := Gen(spec, 42, []Value{Uint8(7)}, UniformRootSampler)
	require.NoError(t, err)

	data, err := json.Marshal(k0)
	require.NoError(t, err)

	decoded, err := DecodeKey(data, spec)
	require.NoError(t, err)

	v0, err := EvalPoint(decoded, 0, 42, nil)
	require.NoError(t, err)
	assert.NotNil(t, v0)
	assert.Equal(t, k0.CommonPartHash(), decoded.CommonPartHash())
}

// TestBeaverFieldNames pins the wire field names down to the normative
// {output_blind, vector_blind, blinded_vector} triple shape rather than the
// in-memory Beaver type's own field name.
func TestBeaverFieldNames(t *testing.T) {
	spec, err := NewSpec(8, false, Uint8(0))
	require.NoError(t, err)
	k0, _, err := Gen(spec, 10, []Value{WildcardBeta{}}, UniformRootSampler)
	require.NoError(t, err)

	data, err := json.Marshal(k0)
	require.NoError(t, err)

	assert.True(t, bytes.Contains(data, []byte(`"output_blind"`)))
	assert.True(t, bytes.Contains(data, []byte(`"vector_blind"`)))
	assert.True(t, bytes.Contains(data, []byte(`"blinded_vector"`)))
	assert.False(t, bytes.Contains(data, []byte(`"mask_share"`)))

	decoded, err := DecodeKey(data, spec)
	require.NoError(t, err)
	require.Len(t, decoded.beavers, 1)
	assert.NotEmpty(t, decoded.beavers[0].MaskShare.blocks)
}
