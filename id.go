package quadra

import "fmt"

// ObjectID identifies one object in a Store. It packs the object's kind, its
// slot index and a slot generation into a single comparable value:
//
//	bits 56..63  kind
//	bits 32..55  generation
//	bits  0..31  slot
//
// The slot is a dense array index, not a unique token. Stores created without
// WithGenerations always issue generation 0, so once a slot is freed and
// reused an old ObjectID with the same slot addresses the new object.
type ObjectID uint64

const (
	idSlotBits  = 32
	idGenBits   = 24
	idGenShift  = idSlotBits
	idKindShift = idSlotBits + idGenBits

	idSlotMask = 1<<idSlotBits - 1
	idGenMask  = 1<<idGenBits - 1
)

// EncodeID packs kind and slot into an ObjectID with generation 0.
func EncodeID(kind ObjectKind, slot uint32) ObjectID {
	return encodeIDGen(kind, slot, 0)
}

func encodeIDGen(kind ObjectKind, slot, gen uint32) ObjectID {
	return ObjectID(uint64(kind)<<idKindShift |
		uint64(gen&idGenMask)<<idGenShift |
		uint64(slot))
}

// Decode returns the kind and slot packed into id.
func (id ObjectID) Decode() (ObjectKind, uint32) {
	return id.Kind(), id.Slot()
}

// Kind returns the object kind packed into id.
func (id ObjectID) Kind() ObjectKind {
	return ObjectKind(id >> idKindShift)
}

// Slot returns the storage slot packed into id.
func (id ObjectID) Slot() uint32 {
	return uint32(id & idSlotMask)
}

// Generation returns the slot generation packed into id.
func (id ObjectID) Generation() uint32 {
	return uint32(id>>idGenShift) & idGenMask
}

func (id ObjectID) String() string {
	if g := id.Generation(); g != 0 {
		return fmt.Sprintf("%s#%d.%d", id.Kind(), id.Slot(), g)
	}
	return fmt.Sprintf("%s#%d", id.Kind(), id.Slot())
}
