package quadra

import (
	"fmt"
	"iter"
)

const defaultStoreCap = 256

// StoreOption configures a Store during creation.
type StoreOption func(*storeOptions)

type storeOptions struct {
	capacity    int
	generations bool
}

// WithCapacity preallocates backing storage for n objects.
func WithCapacity(n int) StoreOption {
	return func(o *storeOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithGenerations makes the store track a generation per slot. Removing an
// object bumps its slot's generation, and every later lookup with an
// ObjectID from before the removal fails with ErrStaleHandle instead of
// silently addressing whatever object reused the slot.
//
// Without this option ObjectIDs carry no generation and reused slots alias.
func WithGenerations() StoreOption {
	return func(o *storeOptions) {
		o.generations = true
	}
}

// StoreStats is a snapshot of store bookkeeping counters.
type StoreStats struct {
	Live          int    // live objects
	Capacity      int    // allocated slots
	Free          int    // slots on the free list
	Creates       uint64 // successful Create calls
	Removes       uint64 // Remove calls that freed a slot
	StaleRemovals uint64 // Remove calls that were no-ops
}

// Store is a slot arena holding every object's attributes in parallel
// arrays indexed by slot. Freed slots are reused last-in first-out.
//
// A Store is not safe for concurrent use. Mutation and BatchBuilder.Build
// must not interleave; hosts with several goroutines must give one of them
// exclusive ownership for the duration of a frame.
type Store struct {
	alive    []bool
	kinds    []ObjectKind
	gens     []uint32
	posSize  [][4]float32
	radii    [][4]float32
	uv       [][4]float32
	z        []float32
	rotation []float32
	color    []uint32
	color2   []uint32
	typeID   []uint32

	free []uint32
	live int

	generations bool
	entities    EntityStore

	creates       uint64
	removes       uint64
	staleRemovals uint64
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	o := storeOptions{capacity: defaultStoreCap}
	for _, opt := range opts {
		opt(&o)
	}
	n := o.capacity
	return &Store{
		alive:       make([]bool, 0, n),
		kinds:       make([]ObjectKind, 0, n),
		gens:        make([]uint32, 0, n),
		posSize:     make([][4]float32, 0, n),
		radii:       make([][4]float32, 0, n),
		uv:          make([][4]float32, 0, n),
		z:           make([]float32, 0, n),
		rotation:    make([]float32, 0, n),
		color:       make([]uint32, 0, n),
		color2:      make([]uint32, 0, n),
		typeID:      make([]uint32, 0, n),
		free:        make([]uint32, 0, n/4),
		generations: o.generations,
	}
}

// Create allocates an object of the given kind with default attributes and
// returns its id. The most recently freed slot is reused first; when the
// free list is empty the store grows by one slot. Growth never changes the
// slot of an existing object.
func (s *Store) Create(kind ObjectKind) ObjectID {
	var slot uint32
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		slot = s.grow()
	}
	s.reset(slot, kind)
	s.alive[slot] = true
	s.live++
	s.creates++

	id := s.idAt(slot)
	if s.entities != nil {
		s.entities.EmitEvent(LifecycleEvent{Type: EventCreated, ID: id, Kind: kind})
	}
	return id
}

// Remove destroys the object addressed by id and reports whether it did.
// Removing an object that is already gone, or passing an id whose slot is
// out of range or (with WithGenerations) stale, is a no-op that returns
// false. A slot is pushed onto the free list at most once per lifetime.
func (s *Store) Remove(id ObjectID) bool {
	slot := id.Slot()
	if reason := s.removable(id); reason != "" {
		s.staleRemovals++
		Logger().Debug("quadra: remove ignored", "id", id, "reason", reason)
		return false
	}
	s.alive[slot] = false
	if s.generations {
		s.gens[slot] = (s.gens[slot] + 1) & idGenMask
	}
	s.free = append(s.free, slot)
	s.live--
	s.removes++

	if s.entities != nil {
		s.entities.EmitEvent(LifecycleEvent{Type: EventRemoved, ID: id, Kind: s.kinds[slot]})
	}
	return true
}

func (s *Store) removable(id ObjectID) string {
	slot := id.Slot()
	switch {
	case int(slot) >= len(s.alive):
		return "out of range"
	case !s.alive[slot]:
		return "not alive"
	case s.generations && id.Generation() != s.gens[slot]:
		return "stale generation"
	}
	return ""
}

// Clear removes every live object. Capacity is kept, and subsequent Create
// calls hand out slots in ascending order again.
func (s *Store) Clear() {
	for i := len(s.alive) - 1; i >= 0; i-- {
		if s.alive[i] {
			s.Remove(s.idAt(uint32(i)))
		}
	}
}

// IsAlive reports whether id addresses a live object.
func (s *Store) IsAlive(id ObjectID) bool {
	return s.removable(id) == ""
}

// Len returns the number of live objects.
func (s *Store) Len() int { return s.live }

// Cap returns the number of allocated slots, live or free.
func (s *Store) Cap() int { return len(s.alive) }

// FreeLen returns the number of slots waiting on the free list.
func (s *Store) FreeLen() int { return len(s.free) }

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() StoreStats {
	return StoreStats{
		Live:          s.live,
		Capacity:      len(s.alive),
		Free:          len(s.free),
		Creates:       s.creates,
		Removes:       s.removes,
		StaleRemovals: s.staleRemovals,
	}
}

// SetEntityStore sets the optional lifecycle bridge. Pass nil to detach.
func (s *Store) SetEntityStore(es EntityStore) {
	s.entities = es
}

// Live returns an iterator over every live object in ascending slot order.
// The sequence is lazy and may be ranged over again each frame. The store
// must not be mutated while the iteration runs.
func (s *Store) Live() iter.Seq2[ObjectID, ObjectRecord] {
	return func(yield func(ObjectID, ObjectRecord) bool) {
		for i, ok := range s.alive {
			if !ok {
				continue
			}
			slot := uint32(i)
			if !yield(s.idAt(slot), s.record(slot)) {
				return
			}
		}
	}
}

// idAt returns the current id of the object in slot.
func (s *Store) idAt(slot uint32) ObjectID {
	return encodeIDGen(s.kinds[slot], slot, s.gens[slot])
}

// index validates id and returns its slot.
func (s *Store) index(id ObjectID) (uint32, error) {
	slot := id.Slot()
	if int(slot) >= len(s.alive) {
		return 0, fmt.Errorf("%w: slot %d, capacity %d", ErrIndexOutOfBounds, slot, len(s.alive))
	}
	if s.generations && (!s.alive[slot] || id.Generation() != s.gens[slot]) {
		return 0, fmt.Errorf("%w: %v", ErrStaleHandle, id)
	}
	return slot, nil
}

// grow appends one zeroed slot to every column and returns its index.
func (s *Store) grow() uint32 {
	slot := uint32(len(s.alive))
	prevCap := cap(s.alive)

	s.alive = append(s.alive, false)
	s.kinds = append(s.kinds, 0)
	s.gens = append(s.gens, 0)
	s.posSize = append(s.posSize, [4]float32{})
	s.radii = append(s.radii, [4]float32{})
	s.uv = append(s.uv, [4]float32{})
	s.z = append(s.z, 0)
	s.rotation = append(s.rotation, 0)
	s.color = append(s.color, 0)
	s.color2 = append(s.color2, 0)
	s.typeID = append(s.typeID, 0)

	if cap(s.alive) != prevCap {
		Logger().Debug("quadra: store grew", "from", prevCap, "to", cap(s.alive))
	}
	return slot
}

// reset writes kind defaults into slot.
func (s *Store) reset(slot uint32, kind ObjectKind) {
	s.kinds[slot] = kind
	s.posSize[slot] = [4]float32{}
	s.radii[slot] = [4]float32{}
	s.uv[slot] = [4]float32{0, 0, 1, 1}
	s.z[slot] = 0
	s.rotation[slot] = 0
	s.color[slot] = 0xFFFFFFFF
	s.color2[slot] = 0
	s.typeID[slot] = 0
}

func (s *Store) record(slot uint32) ObjectRecord {
	return ObjectRecord{
		Kind:     s.kinds[slot],
		PosSize:  s.posSize[slot],
		Radii:    s.radii[slot],
		UV:       s.uv[slot],
		Z:        s.z[slot],
		Rotation: s.rotation[slot],
		Color:    s.color[slot],
		Color2:   s.color2[slot],
		TypeID:   s.typeID[slot],
	}
}
