package dpf

import "encoding/binary"

// Uint8, Uint16, Uint32 and Uint64 are plain integer output types whose
// Add/Sub/MulScalar are ordinary wraparound (2's-complement) arithmetic in
// the ring Z/2^w.

type Uint8 uint8

func (Uint8) Width() int                { return 8 }
func (v Uint8) Bytes() []byte           { return []byte{byte(v)} }
func (Uint8) FromBytes(b []byte) Value  { return Uint8(b[0]) }
func (Uint8) Zero() Value               { return Uint8(0) }
func (v Uint8) Add(o Value) Value       { return v + o.(Uint8) }
func (v Uint8) Sub(o Value) Value       { return v - o.(Uint8) }
func (v Uint8) MulScalar(o Value) Value { return v * o.(Uint8) }

type Uint16 uint16

func (Uint16) Width() int      { return 16 }
func (v Uint16) Bytes() []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}
func (Uint16) FromBytes(b []byte) Value  { return Uint16(binary.LittleEndian.Uint16(b)) }
func (Uint16) Zero() Value               { return Uint16(0) }
func (v Uint16) Add(o Value) Value       { return v + o.(Uint16) }
func (v Uint16) Sub(o Value) Value       { return v - o.(Uint16) }
func (v Uint16) MulScalar(o Value) Value { return v * o.(Uint16) }

type Uint32 uint32

func (Uint32) Width() int      { return 32 }
func (v Uint32) Bytes() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}
func (Uint32) FromBytes(b []byte) Value  { return Uint32(binary.LittleEndian.Uint32(b)) }
func (Uint32) Zero() Value               { return Uint32(0) }
func (v Uint32) Add(o Value) Value       { return v + o.(Uint32) }
func (v Uint32) Sub(o Value) Value       { return v - o.(Uint32) }
func (v Uint32) MulScalar(o Value) Value { return v * o.(Uint32) }

type Uint64 uint64

func (Uint64) Width() int      { return 64 }
func (v Uint64) Bytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}
func (Uint64) FromBytes(b []byte) Value  { return Uint64(binary.LittleEndian.Uint64(b)) }
func (Uint64) Zero() Value               { return Uint64(0) }
func (v Uint64) Add(o Value) Value       { return v + o.(Uint64) }
func (v Uint64) Sub(o Value) Value       { return v - o.(Uint64) }
func (v Uint64) MulScalar(o Value) Value { return v * o.(Uint64) }
