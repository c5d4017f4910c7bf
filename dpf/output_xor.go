package dpf

import "encoding/binary"

// XorUint8, XorUint16, XorUint32 and XorUint64 are the GF(2)-per-bit
// ("xor-wrapper") output family: addition and subtraction are XOR,
// "multiplication" by a scalar is AND, matching
// original_source/include/dpf/xor_wrapper.hpp. They let a caller build a
// DPF whose output algebra is bitwise instead of 2's-complement, without
// paying Bit's one-output-per-bit packing cost.

type XorUint8 uint8

func (XorUint8) Width() int                { return 8 }
func (v XorUint8) Bytes() []byte           { return []byte{byte(v)} }
func (XorUint8) FromBytes(b []byte) Value  { return XorUint8(b[0]) }
func (XorUint8) Zero() Value               { return XorUint8(0) }
func (v XorUint8) Add(o Value) Value       { return v ^ o.(XorUint8) }
func (v XorUint8) Sub(o Value) Value       { return v ^ o.(XorUint8) }
func (v XorUint8) MulScalar(o Value) Value { return v & o.(XorUint8) }

type XorUint16 uint16

func (XorUint16) Width() int      { return 16 }
func (v XorUint16) Bytes() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}
func (XorUint16) FromBytes(b []byte) Value  { return XorUint16(binary.LittleEndian.Uint16(b)) }
func (XorUint16) Zero() Value               { return XorUint16(0) }
func (v XorUint16) Add(o Value) Value       { return v ^ o.(XorUint16) }
func (v XorUint16) Sub(o Value) Value       { return v ^ o.(XorUint16) }
func (v XorUint16) MulScalar(o Value) Value { return v & o.(XorUint16) }

type XorUint32 uint32

func (XorUint32) Width() int      { return 32 }
func (v XorUint32) Bytes() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}
func (XorUint32) FromBytes(b []byte) Value  { return XorUint32(binary.LittleEndian.Uint32(b)) }
func (XorUint32) Zero() Value               { return XorUint32(0) }
func (v XorUint32) Add(o Value) Value       { return v ^ o.(XorUint32) }
func (v XorUint32) Sub(o Value) Value       { return v ^ o.(XorUint32) }
func (v XorUint32) MulScalar(o Value) Value { return v & o.(XorUint32) }

type XorUint64 uint64

func (XorUint64) Width() int      { return 64 }
func (v XorUint64) Bytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}
func (XorUint64) FromBytes(b []byte) Value  { return XorUint64(binary.LittleEndian.Uint64(b)) }
func (XorUint64) Zero() Value               { return XorUint64(0) }
func (v XorUint64) Add(o Value) Value       { return v ^ o.(XorUint64) }
func (v XorUint64) Sub(o Value) Value       { return v ^ o.(XorUint64) }
func (v XorUint64) MulScalar(o Value) Value { return v & o.(XorUint64) }
