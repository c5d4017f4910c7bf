package dpf

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

// PRG is the length-doubling interior tree PRG and bulk exterior-layer PRG:
// an AES-based block PRG. This package supplies a concrete AES-CTR
// implementation (key an AES cipher by the seed itself, and read off its
// keystream), generalized to the fixed-width Block and to an arbitrary
// logical position for bulk exterior expansion.
type PRG struct{}

// DefaultPRG is the package-wide AES-CTR PRG instance.
var DefaultPRG = PRG{}

// keystream returns n blocks of AES-CTR keystream produced by a cipher keyed
// with seed, starting at counter value `from`.
func keystream(seed Block, from, n int) []Block {
	block, err := aes.NewCipher(seed[:])
	if err != nil {
		// seed is always 16 bytes, so aes.NewCipher cannot fail; a failure
		// here indicates a programmer error, not a runtime condition.
		panic(err)
	}
	iv := make([]byte, aes.BlockSize)
	putCounter(iv, from)
	stream := cipher.NewCTR(block, iv)

	out := make([]Block, n)
	buf := make([]byte, n*16)
	stream.XORKeyStream(buf, buf)
	for i := 0; i < n; i++ {
		copy(out[i][:], buf[i*16:(i+1)*16])
	}
	return out
}

// putCounter writes ctr into the trailing bytes of a zero-initialized IV, so
// that distinct logical positions produce distinct, non-overlapping
// keystream windows from the same seed.
func putCounter(iv []byte, ctr int) {
	for i := len(iv) - 1; ctr > 0 && i >= 0; i-- {
		iv[i] = byte(ctr)
		ctr >>= 8
	}
}

// Eval expands node into its left (dir=0) or right (dir=1) child.
func (PRG) Eval(node Block, dir int) Block {
	return keystream(clearLow2Bits(node), dir, 1)[0]
}

// Eval01 expands node into both children at once.
func (PRG) Eval01(node Block) (left, right Block) {
	ks := keystream(clearLow2Bits(node), 0, 2)
	return ks[0], ks[1]
}

// ExpandExterior runs the bulk exterior-layer PRG on seed, writing count
// blocks starting at logical position pos.
func (PRG) ExpandExterior(seed Block, pos, count int) []Block {
	return keystream(seed, pos, count)
}

// uniformBlock samples a cryptographically uniform Block.
func uniformBlock() Block {
	var b Block
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return b
}

// RootSampler returns fresh pseudorandom blocks for key-generation roots;
// the dealer calls it exactly once per party per key. It is a caller-visible
// type rather than a hardcoded call so tests can substitute a deterministic
// sampler.
type RootSampler func() Block

// UniformRootSampler is the default RootSampler, backed by crypto/rand.
func UniformRootSampler() Block {
	return uniformBlock()
}
