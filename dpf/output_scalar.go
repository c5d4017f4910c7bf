package dpf

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ScalarElement is a Value backed by decred's secp256k1 scalar field
// (ModNScalar), i.e. an element of Z/nZ where n is the curve order. It is
// the output type used wherever a component needs a signature-scalar rather
// than a base-field element (FieldElement) or a BLS12-381 Fr (FrElement).
type ScalarElement struct {
	s secp256k1.ModNScalar
}

// NewScalarElement wraps x into a ScalarElement.
func NewScalarElement(x *secp256k1.ModNScalar) ScalarElement {
	var out ScalarElement
	out.s.Set(x)
	return out
}

func (ScalarElement) Width() int { return 256 }

func (v ScalarElement) Bytes() []byte {
	b := v.s.Bytes()
	return b[:]
}

func (ScalarElement) FromBytes(b []byte) Value {
	var arr [32]byte
	copy(arr[:], b)
	var out ScalarElement
	out.s.SetBytes(&arr)
	return out
}

func (ScalarElement) Zero() Value {
	var out ScalarElement
	out.s.SetInt(0)
	return out
}

func (v ScalarElement) Add(other Value) Value {
	o := other.(ScalarElement)
	var out ScalarElement
	out.s.Set(&v.s)
	out.s.Add(&o.s)
	return out
}

func (v ScalarElement) Sub(other Value) Value {
	o := other.(ScalarElement)
	var negOther secp256k1.ModNScalar
	negOther.Set(&o.s)
	negOther.Negate()
	var out ScalarElement
	out.s.Set(&v.s)
	out.s.Add(&negOther)
	return out
}

func (v ScalarElement) MulScalar(other Value) Value {
	o := other.(ScalarElement)
	var out ScalarElement
	out.s.Set(&v.s)
	out.s.Mul(&o.s)
	return out
}
