package dpf

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteKey writes k's JSON encoding to w.
func WriteKey(w io.Writer, k *Key) error {
	data, err := json.Marshal(k)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// ReadKey reads a full JSON-encoded key from r and decodes it against s.
func ReadKey(r io.Reader, s *Spec) (*Key, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return DecodeKey(data, s)
}
