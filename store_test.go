package quadra

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func checkFreeInvariant(t *testing.T, s *Store) {
	t.Helper()
	if s.FreeLen()+s.Len() != s.Cap() {
		t.Fatalf("free(%d) + live(%d) != cap(%d)", s.FreeLen(), s.Len(), s.Cap())
	}
	seen := make(map[uint32]bool, len(s.free))
	for _, slot := range s.free {
		if seen[slot] {
			t.Fatalf("slot %d appears twice on the free list", slot)
		}
		seen[slot] = true
		if s.alive[slot] {
			t.Fatalf("slot %d is on the free list but alive", slot)
		}
	}
}

func TestIDRoundTrip(t *testing.T) {
	for _, kind := range []ObjectKind{KindRect, KindCircle, KindText, KindImage, KindLine} {
		for _, slot := range []uint32{0, 1, 255, 1 << 20, 1<<32 - 1} {
			id := EncodeID(kind, slot)
			k, s := id.Decode()
			if k != kind || s != slot {
				t.Errorf("Decode(EncodeID(%v, %d)) = (%v, %d)", kind, slot, k, s)
			}
			if id.Generation() != 0 {
				t.Errorf("Generation = %d, want 0", id.Generation())
			}
		}
	}
}

func TestIDGenerationDoesNotLeak(t *testing.T) {
	id := encodeIDGen(KindImage, 42, idGenMask)
	if id.Kind() != KindImage || id.Slot() != 42 || id.Generation() != idGenMask {
		t.Errorf("got kind=%v slot=%d gen=%d", id.Kind(), id.Slot(), id.Generation())
	}
}

func TestIDEquality(t *testing.T) {
	if EncodeID(KindRect, 3) != EncodeID(KindRect, 3) {
		t.Error("equal inputs should produce equal ids")
	}
	if EncodeID(KindRect, 3) == EncodeID(KindCircle, 3) {
		t.Error("different kinds should produce different ids")
	}
	m := map[ObjectID]int{EncodeID(KindRect, 1): 1}
	if m[EncodeID(KindRect, 1)] != 1 {
		t.Error("id should work as a map key")
	}
}

func TestParseObjectKind(t *testing.T) {
	for k := ObjectKind(0); k < kindCount; k++ {
		got, err := ParseObjectKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseObjectKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseObjectKind("hexagon"); !errors.Is(err, ErrInvalidAttributeInput) {
		t.Errorf("err = %v, want ErrInvalidAttributeInput", err)
	}
	if ObjectKind(200).Valid() {
		t.Error("ObjectKind(200) should not be valid")
	}
}

func TestCreateDefaults(t *testing.T) {
	s := NewStore()
	id := s.Create(KindRect)

	if id.Kind() != KindRect || id.Slot() != 0 {
		t.Fatalf("id = %v, want rect#0", id)
	}
	rec, err := s.Record(id)
	if err != nil {
		t.Fatal(err)
	}
	want := ObjectRecord{Kind: KindRect, UV: [4]float32{0, 0, 1, 1}, Color: 0xFFFFFFFF}
	if rec != want {
		t.Errorf("record = %+v, want %+v", rec, want)
	}
	if !s.IsAlive(id) {
		t.Error("new object should be alive")
	}
}

func TestCreateReusesFreedSlot(t *testing.T) {
	s := NewStore()
	a := s.Create(KindRect)
	b := s.Create(KindRect)
	s.Create(KindRect)

	s.Remove(b)
	c := s.Create(KindCircle)
	if c.Slot() != b.Slot() {
		t.Errorf("slot = %d, want reused slot %d", c.Slot(), b.Slot())
	}
	if s.Cap() != 3 {
		t.Errorf("Cap = %d, want 3", s.Cap())
	}

	s.Remove(a)
	s.Remove(c)
	// LIFO: the most recently freed slot comes back first.
	if got := s.Create(KindRect).Slot(); got != c.Slot() {
		t.Errorf("slot = %d, want %d", got, c.Slot())
	}
	checkFreeInvariant(t, s)
}

func TestCreateResetsReusedSlot(t *testing.T) {
	s := NewStore()
	a := s.Create(KindRect)
	s.SetPosSize(a, [4]float32{1, 2, 3, 4})
	s.SetZ(a, 9)
	s.SetTypeID(a, 5)
	s.Remove(a)

	b := s.Create(KindImage)
	rec, _ := s.Record(b)
	if rec.PosSize != [4]float32{} || rec.Z != 0 || rec.TypeID != 0 || rec.Kind != KindImage {
		t.Errorf("reused slot not reset: %+v", rec)
	}
}

func TestDoubleRemoveIsNoOp(t *testing.T) {
	s := NewStore()
	a := s.Create(KindRect)
	s.Create(KindRect)

	if !s.Remove(a) {
		t.Fatal("first Remove should report true")
	}
	freeAfterFirst := append([]uint32(nil), s.free...)

	if s.Remove(a) {
		t.Error("second Remove should report false")
	}
	if len(s.free) != len(freeAfterFirst) {
		t.Fatalf("free list = %v, want %v", s.free, freeAfterFirst)
	}
	for i := range freeAfterFirst {
		if s.free[i] != freeAfterFirst[i] {
			t.Fatalf("free list = %v, want %v", s.free, freeAfterFirst)
		}
	}
	if got := s.Stats().StaleRemovals; got != 1 {
		t.Errorf("StaleRemovals = %d, want 1", got)
	}

	// Two creates must now return distinct slots.
	x := s.Create(KindRect)
	y := s.Create(KindRect)
	if x.Slot() == y.Slot() {
		t.Errorf("two creates returned the same slot %d", x.Slot())
	}
	checkFreeInvariant(t, s)
}

func TestRemoveOutOfRange(t *testing.T) {
	s := NewStore()
	s.Create(KindRect)
	if s.Remove(EncodeID(KindRect, 10)) {
		t.Error("Remove of out-of-range id should report false")
	}
	checkFreeInvariant(t, s)
}

func TestFreeListInvariantRandomized(t *testing.T) {
	s := NewStore(WithCapacity(8))
	rng := rand.New(rand.NewPCG(1, 2))
	var ids []ObjectID

	for step := 0; step < 5000; step++ {
		if len(ids) == 0 || rng.IntN(3) > 0 {
			ids = append(ids, s.Create(ObjectKind(rng.IntN(int(kindCount)))))
		} else {
			// Remove a random id, sometimes twice.
			i := rng.IntN(len(ids))
			s.Remove(ids[i])
			if rng.IntN(4) == 0 {
				s.Remove(ids[i])
			}
			ids = append(ids[:i], ids[i+1:]...)
		}
		checkFreeInvariant(t, s)
		if s.Len() != len(ids) {
			t.Fatalf("step %d: Len = %d, want %d", step, s.Len(), len(ids))
		}
	}
}

func TestAccessOutOfBounds(t *testing.T) {
	s := NewStore()
	s.Create(KindRect)
	bad := EncodeID(KindRect, 1)

	checks := map[string]error{}
	_, _, checks["Position"] = s.Position(bad)
	_, _, checks["Size"] = s.Size(bad)
	_, checks["PosSize"] = s.PosSize(bad)
	_, checks["Radii"] = s.Radii(bad)
	_, checks["UV"] = s.UV(bad)
	_, checks["Z"] = s.Z(bad)
	_, checks["Rotation"] = s.Rotation(bad)
	_, checks["Color"] = s.Color(bad)
	_, checks["Color2"] = s.Color2(bad)
	_, checks["TypeID"] = s.TypeID(bad)
	_, checks["Kind"] = s.Kind(bad)
	_, checks["Record"] = s.Record(bad)
	checks["SetPosition"] = s.SetPosition(bad, 1, 1)
	checks["SetSize"] = s.SetSize(bad, 1, 1)
	checks["SetRadius"] = s.SetRadius(bad, 1)
	checks["SetUV"] = s.SetUV(bad, [4]float32{})
	checks["SetZ"] = s.SetZ(bad, 1)
	checks["SetRotation"] = s.SetRotation(bad, 1)
	checks["SetColorRGBA"] = s.SetColorRGBA(bad, 1, 1, 1, 1)
	checks["SetColor2"] = s.SetColor2(bad, 1)
	checks["SetTypeID"] = s.SetTypeID(bad, 1)
	checks["SetRecord"] = s.SetRecord(bad, ObjectRecord{})

	for name, err := range checks {
		if !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("%s: err = %v, want ErrIndexOutOfBounds", name, err)
		}
	}

	// Far out of range, still reported.
	if _, err := s.Z(EncodeID(KindRect, 1<<32-1)); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("err = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestAccessEmptyStore(t *testing.T) {
	s := NewStore()
	if _, err := s.Color(EncodeID(KindRect, 0)); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("err = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestStaleIDAliasesWithoutGenerations(t *testing.T) {
	s := NewStore()
	old := s.Create(KindRect)
	s.SetZ(old, 3)
	s.Remove(old)

	// Dead but in range: stale data, no error.
	z, err := s.Z(old)
	if err != nil || z != 3 {
		t.Errorf("Z(dead) = %v, %v; want 3, nil", z, err)
	}

	fresh := s.Create(KindRect)
	if fresh != old {
		t.Fatalf("fresh = %v, want alias of %v", fresh, old)
	}
	s.SetZ(fresh, 7)
	if z, _ := s.Z(old); z != 7 {
		t.Errorf("old id should alias the new object, Z = %v", z)
	}
}

func TestGenerationsRejectStaleIDs(t *testing.T) {
	s := NewStore(WithGenerations())
	old := s.Create(KindRect)
	s.Remove(old)

	if _, err := s.Z(old); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Z(removed) err = %v, want ErrStaleHandle", err)
	}

	fresh := s.Create(KindRect)
	if fresh.Slot() != old.Slot() {
		t.Fatalf("slot = %d, want reuse of %d", fresh.Slot(), old.Slot())
	}
	if fresh == old {
		t.Fatal("reused slot should carry a new generation")
	}
	if err := s.SetZ(old, 1); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("SetZ(stale) err = %v, want ErrStaleHandle", err)
	}
	if s.Remove(old) {
		t.Error("Remove(stale) should not remove the new object")
	}
	if !s.IsAlive(fresh) {
		t.Error("fresh object should still be alive")
	}

	// Out of range is still reported as out of range.
	if _, err := s.Z(EncodeID(KindRect, 99)); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("err = %v, want ErrIndexOutOfBounds", err)
	}
	checkFreeInvariant(t, s)
}

func TestAttributeRoundTrip(t *testing.T) {
	s := NewStore()
	id := s.Create(KindRect)

	s.SetPosition(id, 10, 20)
	s.SetSize(id, 30, 40)
	s.SetRadii(id, [4]float32{1, 2, 3, 4})
	s.SetUV(id, [4]float32{0.25, 0.5, 0.75, 1})
	s.SetZ(id, -2)
	s.SetRotation(id, 1.5)
	s.SetColor(id, 0x11223344)
	s.SetColor2RGBA(id, 1, 0, 0, 1)
	s.SetTypeID(id, 9)

	if x, y, _ := s.Position(id); x != 10 || y != 20 {
		t.Errorf("Position = (%v, %v)", x, y)
	}
	if w, h, _ := s.Size(id); w != 30 || h != 40 {
		t.Errorf("Size = (%v, %v)", w, h)
	}
	if ps, _ := s.PosSize(id); ps != [4]float32{10, 20, 30, 40} {
		t.Errorf("PosSize = %v", ps)
	}
	if r, _ := s.Radii(id); r != [4]float32{1, 2, 3, 4} {
		t.Errorf("Radii = %v", r)
	}
	if uv, _ := s.UV(id); uv != [4]float32{0.25, 0.5, 0.75, 1} {
		t.Errorf("UV = %v", uv)
	}
	if z, _ := s.Z(id); z != -2 {
		t.Errorf("Z = %v", z)
	}
	if r, _ := s.Rotation(id); r != 1.5 {
		t.Errorf("Rotation = %v", r)
	}
	if c, _ := s.Color(id); c != 0x11223344 {
		t.Errorf("Color = %#x", c)
	}
	if c, _ := s.Color2(id); c != 0xFF0000FF {
		t.Errorf("Color2 = %#x, want 0xff0000ff", c)
	}
	if ty, _ := s.TypeID(id); ty != 9 {
		t.Errorf("TypeID = %d", ty)
	}
	if k, _ := s.Kind(id); k != KindRect {
		t.Errorf("Kind = %v", k)
	}
}

func TestSetRecordKeepsKind(t *testing.T) {
	s := NewStore()
	id := s.Create(KindCircle)
	if err := s.SetRecord(id, ObjectRecord{Kind: KindText, Z: 4}); err != nil {
		t.Fatal(err)
	}
	rec, _ := s.Record(id)
	if rec.Kind != KindCircle || rec.Z != 4 {
		t.Errorf("record = %+v", rec)
	}
}

func TestLiveSkipsDeadInSlotOrder(t *testing.T) {
	s := NewStore()
	a := s.Create(KindRect)
	b := s.Create(KindCircle)
	c := s.Create(KindText)
	s.Remove(b)
	d := s.Create(KindImage) // reuses b's slot

	var got []ObjectID
	for id := range s.Live() {
		got = append(got, id)
	}
	want := []ObjectID{a, d, c}
	if len(got) != len(want) {
		t.Fatalf("Live = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Live[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Restartable and stops early on break.
	n := 0
	for range s.Live() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break visited %d", n)
	}
}

func TestClear(t *testing.T) {
	s := NewStore(WithGenerations())
	a := s.Create(KindRect)
	s.Create(KindRect)
	s.Create(KindRect)
	s.Clear()

	if s.Len() != 0 || s.FreeLen() != 3 {
		t.Errorf("Len=%d FreeLen=%d, want 0 and 3", s.Len(), s.FreeLen())
	}
	if s.IsAlive(a) {
		t.Error("cleared object should not be alive")
	}
	if got := s.Create(KindRect).Slot(); got != 0 {
		t.Errorf("first create after Clear got slot %d, want 0", got)
	}
	checkFreeInvariant(t, s)
}

func TestGrowthKeepsSlots(t *testing.T) {
	s := NewStore(WithCapacity(2))
	first := s.Create(KindRect)
	s.SetZ(first, 11)
	for i := 0; i < 1000; i++ {
		s.Create(KindRect)
	}
	if z, err := s.Z(first); err != nil || z != 11 {
		t.Errorf("Z(first) = %v, %v after growth", z, err)
	}
}

type recordingEntities struct {
	events []LifecycleEvent
}

func (r *recordingEntities) EmitEvent(e LifecycleEvent) { r.events = append(r.events, e) }

func TestEntityStoreEvents(t *testing.T) {
	s := NewStore()
	rec := &recordingEntities{}
	s.SetEntityStore(rec)

	a := s.Create(KindCircle)
	s.Remove(a)
	s.Remove(a)

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}
	if rec.events[0] != (LifecycleEvent{Type: EventCreated, ID: a, Kind: KindCircle}) {
		t.Errorf("event 0 = %+v", rec.events[0])
	}
	if rec.events[1].Type != EventRemoved || rec.events[1].ID != a {
		t.Errorf("event 1 = %+v", rec.events[1])
	}
}
