package dpf

import (
	bls12381 "github.com/kilic/bls12-381"
)

// FrElement is a Value backed by kilic/bls12-381's scalar field element
// (bls12381.Fr), the output type used wherever a component needs shares or
// seed exponents in the BLS12-381 scalar field rather than secp256k1.
type FrElement struct {
	fr *bls12381.Fr
}

// NewFrElement wraps x into an FrElement.
func NewFrElement(x *bls12381.Fr) FrElement {
	out := bls12381.NewFr()
	out.Set(x)
	return FrElement{fr: out}
}

func (FrElement) Width() int { return 256 }

func (v FrElement) Bytes() []byte {
	return v.fr.ToBytes()
}

func (FrElement) FromBytes(b []byte) Value {
	fr := bls12381.NewFr()
	fr.FromBytes(b)
	return FrElement{fr: fr}
}

func (FrElement) Zero() Value {
	return FrElement{fr: bls12381.NewFr()}
}

func (v FrElement) Add(other Value) Value {
	o := other.(FrElement)
	out := bls12381.NewFr()
	out.Add(v.fr, o.fr)
	return FrElement{fr: out}
}

func (v FrElement) Sub(other Value) Value {
	o := other.(FrElement)
	out := bls12381.NewFr()
	out.Sub(v.fr, o.fr)
	return FrElement{fr: out}
}

func (v FrElement) MulScalar(other Value) Value {
	o := other.(FrElement)
	out := bls12381.NewFr()
	out.Mul(v.fr, o.fr)
	return FrElement{fr: out}
}
