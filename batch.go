package quadra

import "time"

// Batch is a contiguous run of instances in a Plan that share a TypeID and
// are drawn with one draw call.
type Batch struct {
	TypeID uint32
	Start  uint32 // index of the first instance in Plan.Instances
	Count  uint32
}

// Plan is one frame's render input: the paint-ordered instance stream and
// the batches that cover it, in draw order.
type Plan struct {
	Instances []ObjectInstance
	IDs       []ObjectID // IDs[i] is the object Instances[i] was projected from
	Batches   []Batch
}

// BatchInstances returns the instances covered by Batches[i].
func (p *Plan) BatchInstances(i int) []ObjectInstance {
	b := p.Batches[i]
	return p.Instances[b.Start : b.Start+b.Count]
}

// DrawCalls returns the number of draw calls a renderer issues for the plan.
func (p *Plan) DrawCalls() int {
	return len(p.Batches)
}

// planEntry pairs an instance with its id so both travel through the sort.
type planEntry struct {
	inst ObjectInstance
	id   ObjectID
}

const defaultPlanCap = 1024

// BatchBuilder turns a Store's live objects into a Plan each frame. All
// buffers are retained between builds, so a steady-state frame allocates
// nothing once the buffers reach their high-water mark.
type BatchBuilder struct {
	entries []planEntry
	sortBuf []planEntry
	plan    Plan

	debug bool
	stats BuildStats
}

// NewBatchBuilder creates a builder with preallocated frame buffers.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		entries: make([]planEntry, 0, defaultPlanCap),
		sortBuf: make([]planEntry, 0, defaultPlanCap),
		plan: Plan{
			Instances: make([]ObjectInstance, 0, defaultPlanCap),
			IDs:       make([]ObjectID, 0, defaultPlanCap),
			Batches:   make([]Batch, 0, 64),
		},
	}
}

// Build projects every live object in store, stable-sorts the instances by
// ascending z and partitions them into maximal runs of equal TypeID.
// Instances are never moved across a z boundary to merge batches, so the
// batch count is bounded by texture transitions in paint order.
//
// The returned Plan is owned by the builder and is valid until the next
// call to Build. The store must not be mutated while Build runs.
func (b *BatchBuilder) Build(store *Store) *Plan {
	var stats BuildStats
	var t0 time.Time

	if b.debug {
		t0 = time.Now()
	}

	b.entries = b.entries[:0]
	for i, ok := range store.alive {
		if !ok {
			continue
		}
		slot := uint32(i)
		b.entries = append(b.entries, planEntry{inst: Project(store.record(slot)), id: store.idAt(slot)})
	}

	if b.debug {
		stats.ProjectTime = time.Since(t0)
		t0 = time.Now()
	}

	b.mergeSort()

	if b.debug {
		stats.SortTime = time.Since(t0)
		t0 = time.Now()
	}

	p := &b.plan
	p.Instances = p.Instances[:0]
	p.IDs = p.IDs[:0]
	for i := range b.entries {
		p.Instances = append(p.Instances, b.entries[i].inst)
		p.IDs = append(p.IDs, b.entries[i].id)
	}
	p.Batches = partition(p.Batches[:0], p.Instances)

	if b.debug {
		stats.PartitionTime = time.Since(t0)
		stats.Instances = len(p.Instances)
		stats.Batches = len(p.Batches)
		b.stats = stats
		b.debugLog(stats)
	}
	return p
}

// partition appends one Batch per maximal run of equal TypeID in insts.
func partition(dst []Batch, insts []ObjectInstance) []Batch {
	for i := range insts {
		t := insts[i].TypeID
		if n := len(dst); n > 0 && dst[n-1].TypeID == t {
			dst[n-1].Count++
			continue
		}
		dst = append(dst, Batch{TypeID: t, Start: uint32(i), Count: 1})
	}
	return dst
}

// SetDebugMode enables or disables per-frame timing. When enabled, each
// Build records BuildStats and logs them at debug level.
func (b *BatchBuilder) SetDebugMode(enabled bool) {
	b.debug = enabled
}

// Stats returns the stats recorded by the last Build in debug mode.
func (b *BatchBuilder) Stats() BuildStats {
	return b.stats
}
