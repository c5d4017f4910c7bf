package dpf

import (
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fp"
)

// FieldElement is a Value backed by gnark-crypto's secp256k1 base-field
// element (fp.Element), in Montgomery form. It is the output type used
// wherever a secp256k1-flavoured VOLE-style component needs an output that
// lives in F_p rather than Z/2^w.
type FieldElement struct {
	e fp.Element
}

// NewFieldElement wraps x into a FieldElement, reducing mod p.
func NewFieldElement(x *fp.Element) FieldElement {
	var f FieldElement
	f.e.Set(x)
	return f
}

func (FieldElement) Width() int { return 256 }

func (v FieldElement) Bytes() []byte {
	b := v.e.Bytes()
	return b[:]
}

func (FieldElement) FromBytes(b []byte) Value {
	var f FieldElement
	f.e.SetBytes(b)
	return f
}

func (FieldElement) Zero() Value {
	var f FieldElement
	f.e.SetZero()
	return f
}

func (v FieldElement) Add(other Value) Value {
	o := other.(FieldElement)
	var out FieldElement
	out.e.Add(&v.e, &o.e)
	return out
}

func (v FieldElement) Sub(other Value) Value {
	o := other.(FieldElement)
	var out FieldElement
	out.e.Sub(&v.e, &o.e)
	return out
}

func (v FieldElement) MulScalar(other Value) Value {
	o := other.(FieldElement)
	var out FieldElement
	out.e.Mul(&v.e, &o.e)
	return out
}
