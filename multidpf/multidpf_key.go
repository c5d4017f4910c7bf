package multidpf

import (
	"encoding/json"
	"fmt"

	"dpfkit/dpf"
)

// MarshalJSON encodes Key as a plain array of the underlying dpf.Key
// JSON encodings (dpf/json.go), in special-point order. The underlying
// dpf.Key has exactly one concrete shape, so a plain encoding/json array
// keeps this package's wire format consistent with a lone dpf.Key's.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.DPFKeys)
}

// DecodeKey decodes a MultiDPF key previously produced by MarshalJSON,
// against the Spec describing every underlying dpf.Key's output shape.
func DecodeKey(data []byte, spec *dpf.Spec) (Key, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Key{}, fmt.Errorf("%w: %v", dpf.ErrIO, err)
	}
	keys := make([]*dpf.Key, len(raw))
	for i, r := range raw {
		k, err := dpf.DecodeKey(r, spec)
		if err != nil {
			return Key{}, fmt.Errorf("dpf key %d: %w", i, err)
		}
		keys[i] = k
	}
	return Key{DPFKeys: keys}, nil
}

// NumKeys returns the number of underlying dpf.Keys (one per special
// point).
func (k Key) NumKeys() int { return len(k.DPFKeys) }
