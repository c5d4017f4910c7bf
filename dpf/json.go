package dpf

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// newBitsetFromWildcardString parses the `wildcards` field (an ASCII
// '0'/'1' string, one character per output position) into a
// *bitset.BitSet sized to match the in-memory representation Gen produces,
// which has one extra trailing slot for alpha. The string carries no
// character for alpha, so that slot always decodes as clear.
func newBitsetFromWildcardString(s string) *bitset.BitSet {
	b := bitset.New(uint(len(s) + 1))
	for i, c := range s {
		if c == '1' {
			b.Set(uint(i))
		}
	}
	return b
}

// keyJSON is the on-the-wire JSON representation of a Key.
type keyJSON struct {
	Root             [2]uint64    `json:"root"`
	CorrectionWords  [][16]byte   `json:"correction_words"`
	CorrectionAdvice []uint8      `json:"correction_advice"`
	Leaves           [][]byte     `json:"leaves"`
	LeafOffset       []int        `json:"leaf_offsets"`
	LeafSign         bool         `json:"leaf_sign"`
	Wildcards        string       `json:"wildcards"`
	Beavers          []beaverJSON `json:"beavers"`
}

// beaverJSON is the normative wire shape for a beaver slot: a multiplicative
// triple's three blinds. key.go's doc comment on Beaver explains why this
// construction only ever needs the additive seed-mask share, not a genuine
// multiplication triple; that share is carried under BlindedVector, the
// field a real triple would use for its masked product, and OutputBlind/
// VectorBlind are left empty rather than dropped so the wire shape still
// matches a caller expecting the full triple.
type beaverJSON struct {
	OutputBlind   []byte `json:"output_blind"`
	VectorBlind   []byte `json:"vector_blind"`
	BlindedVector []byte `json:"blinded_vector"`
}

// MarshalJSON encodes k into its wire representation.
func (k *Key) MarshalJSON() ([]byte, error) {
	doc := keyJSON{
		Root: [2]uint64{
			binary.LittleEndian.Uint64(k.root[0:8]),
			binary.LittleEndian.Uint64(k.root[8:16]),
		},
		CorrectionWords:  make([][16]byte, len(k.correctionWords)),
		CorrectionAdvice: append([]uint8(nil), k.correctionAdvice...),
		Leaves:           make([][]byte, len(k.leaves)),
		LeafOffset:       append([]int(nil), k.leafOffset...),
		LeafSign:         k.leafSign,
		Beavers:          make([]beaverJSON, len(k.beavers)),
	}
	for i, cw := range k.correctionWords {
		doc.CorrectionWords[i] = [16]byte(cw)
	}
	for i, leaf := range k.leaves {
		doc.Leaves[i] = leafBytes(leaf)
	}

	wildcardChars := make([]byte, len(k.zeros))
	for i := range k.zeros {
		if k.wildcardMask != nil && k.wildcardMask.Test(uint(i)) {
			wildcardChars[i] = '1'
		} else {
			wildcardChars[i] = '0'
		}
	}
	doc.Wildcards = string(wildcardChars)

	for i, b := range k.beavers {
		if len(b.MaskShare.blocks) == 0 {
			continue
		}
		doc.Beavers[i] = beaverJSON{BlindedVector: leafBytes(b.MaskShare)}
	}

	return json.Marshal(doc)
}

// DecodeKey decodes JSON produced by MarshalJSON back into a Key, given the
// Spec that describes the output types (widths/packing aren't recoverable
// from the wire form alone, mirroring how Gen needs a Spec up front).
func DecodeKey(data []byte, s *Spec) (*Key, error) {
	var doc keyJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	var root Block
	binary.LittleEndian.PutUint64(root[0:8], doc.Root[0])
	binary.LittleEndian.PutUint64(root[8:16], doc.Root[1])

	correctionWords := make([]Block, len(doc.CorrectionWords))
	for i, cw := range doc.CorrectionWords {
		correctionWords[i] = Block(cw)
	}

	numOutputs := s.NumOutputs()
	if len(doc.Wildcards) != numOutputs {
		return nil, fmt.Errorf("%w: wildcards field length %d does not match %d outputs", ErrConfiguration, len(doc.Wildcards), numOutputs)
	}

	zeros := make([]Value, numOutputs)
	leaves := make([]Leaf, numOutputs)
	for i := 0; i < numOutputs; i++ {
		zeros[i] = s.OutputZero(i)
		leaves[i] = Leaf{width: zeros[i].Width(), blocks: bytesToBlocks(doc.Leaves[i])}
	}

	mask := newBitsetFromWildcardString(doc.Wildcards)

	beavers := make([]Beaver, numOutputs)
	for i, b := range doc.Beavers {
		if b.BlindedVector == nil {
			continue
		}
		zero := zeros[i]
		beavers[i] = Beaver{MaskShare: Leaf{width: zero.Width(), blocks: bytesToBlocks(b.BlindedVector)}}
	}

	leafOffset := append([]int(nil), doc.LeafOffset...)

	k := &Key{
		n:                s.n,
		depth:            s.Depth(),
		signed:           s.signed,
		leafSign:         doc.LeafSign,
		root:             root,
		correctionWords:  correctionWords,
		correctionAdvice: doc.CorrectionAdvice,
		zeros:            zeros,
		leaves:           leaves,
		leafOffset:       leafOffset,
		wildcardMask:     mask,
		beavers:          beavers,
	}
	k.commonHash = computeCommonPartHash(k.correctionWords, k.correctionAdvice, k.leaves, k.wildcardMask)
	return k, nil
}

func bytesToBlocks(b []byte) []Block {
	n := (len(b) + 15) / 16
	out := make([]Block, n)
	for i := 0; i < n; i++ {
		lo := i * 16
		hi := lo + 16
		if hi > len(b) {
			hi = len(b)
		}
		copy(out[i][:], b[lo:hi])
	}
	return out
}
