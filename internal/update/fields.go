// Package update holds the 32-bit field slots that are mirrored to clients
// and tracks which slots changed since the last flush.
package update

import (
	"math"

	"github.com/realmcore/server/internal/core/ecs"
)

// Field is a slot index into a Fields array.
type Field int

// Object fields shared by every world object.
const (
	ObjectFieldGUID    Field = 0x0000 // 2 slots
	ObjectFieldType    Field = 0x0002
	ObjectFieldEntry   Field = 0x0003
	ObjectFieldScaleX  Field = 0x0004
	ObjectFieldPadding Field = 0x0005

	ObjectEnd Field = 0x0006
)

// ObjectTypeMask values written to ObjectFieldType.
const (
	TypeMaskObject uint32 = 0x0001
	TypeMaskItem   uint32 = 0x0002
	TypeMaskUnit   uint32 = 0x0008
	TypeMaskPlayer uint32 = 0x0010
)

// Fields is a fixed array of 32-bit values with a dirty bitmask.
// Setters only mark a slot when its value actually changes.
type Fields struct {
	values []uint32
	dirty  []uint32
	count  int
}

func NewFields(n Field) *Fields {
	return &Fields{
		values: make([]uint32, n),
		dirty:  make([]uint32, (int(n)+31)/32),
	}
}

func (f *Fields) Len() int { return len(f.values) }

// MarkUpdate flags a slot for the next delta without changing it.
func (f *Fields) MarkUpdate(i Field) {
	word, bit := int(i)/32, uint(i)%32
	if f.dirty[word]&(1<<bit) == 0 {
		f.dirty[word] |= 1 << bit
		f.count++
	}
}

func (f *Fields) IsDirty(i Field) bool {
	return f.dirty[int(i)/32]&(1<<(uint(i)%32)) != 0
}

// HasChanges reports whether any slot is waiting to be flushed.
func (f *Fields) HasChanges() bool { return f.count > 0 }

// ChangeCount returns the number of dirty slots.
func (f *Fields) ChangeCount() int { return f.count }

// ClearChanges resets the dirty mask after a flush.
func (f *Fields) ClearChanges() {
	for i := range f.dirty {
		f.dirty[i] = 0
	}
	f.count = 0
}

func (f *Fields) UInt32(i Field) uint32 { return f.values[i] }

func (f *Fields) SetUInt32(i Field, v uint32) {
	if f.values[i] == v {
		return
	}
	f.values[i] = v
	f.MarkUpdate(i)
}

func (f *Fields) Int32(i Field) int32 { return int32(f.values[i]) }

func (f *Fields) SetInt32(i Field, v int32) { f.SetUInt32(i, uint32(v)) }

func (f *Fields) Float32(i Field) float32 { return math.Float32frombits(f.values[i]) }

func (f *Fields) SetFloat32(i Field, v float32) { f.SetUInt32(i, math.Float32bits(v)) }

// Byte returns byte idx (0 = least significant) of a slot.
func (f *Fields) Byte(i Field, idx int) byte {
	return byte(f.values[i] >> (8 * uint(idx)))
}

func (f *Fields) SetByte(i Field, idx int, v byte) {
	shift := 8 * uint(idx)
	cur := f.values[i]
	f.SetUInt32(i, cur&^(0xFF<<shift)|uint32(v)<<shift)
}

// Bytes returns all four bytes of a slot, least significant first.
func (f *Fields) Bytes(i Field) [4]byte {
	v := f.values[i]
	return [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func (f *Fields) SetBytes(i Field, b [4]byte) {
	f.SetUInt32(i, uint32(b[0])|uint32(b[1])<<8|uint32(b[2])<<16|uint32(b[3])<<24)
}

// UInt16Low/High address the halves of a slot.
func (f *Fields) UInt16Low(i Field) uint16  { return uint16(f.values[i]) }
func (f *Fields) UInt16High(i Field) uint16 { return uint16(f.values[i] >> 16) }

func (f *Fields) SetUInt16Low(i Field, v uint16) {
	f.SetUInt32(i, f.values[i]&0xFFFF0000|uint32(v))
}

func (f *Fields) SetUInt16High(i Field, v uint16) {
	f.SetUInt32(i, f.values[i]&0x0000FFFF|uint32(v)<<16)
}

// EntityID reads a two-slot object reference starting at i.
func (f *Fields) EntityID(i Field) ecs.EntityID {
	return ecs.EntityIDFromParts(f.values[i], f.values[i+1])
}

func (f *Fields) SetEntityID(i Field, id ecs.EntityID) {
	f.SetUInt32(i, id.Low())
	f.SetUInt32(i+1, id.High32())
}

// Flag helpers for bitfield slots.
func (f *Fields) SetFlag(i Field, flag uint32)   { f.SetUInt32(i, f.values[i]|flag) }
func (f *Fields) UnsetFlag(i Field, flag uint32) { f.SetUInt32(i, f.values[i]&^flag) }
func (f *Fields) HasFlag(i Field, flag uint32) bool {
	return f.values[i]&flag != 0
}
