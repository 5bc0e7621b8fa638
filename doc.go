// Package quadra turns a churning set of 2D primitives into the fewest
// correctly ordered instanced draw calls, for [Ebitengine] or any GPU
// backend.
//
// # Objects
//
// Every rectangle, circle, glyph or image lives in a [Store], a slot arena
// that keeps each attribute in its own array. [Store.Create] returns an
// [ObjectID] packing the object's kind and slot; attributes are read and
// written through typed accessors keyed by that id:
//
//	store := quadra.NewStore()
//	box := store.Create(quadra.KindRect)
//	store.SetPosSize(box, [4]float32{100, 50, 80, 40})
//	store.SetRadius(box, 6)
//	store.SetColorRGBA(box, 0.3, 0.7, 1, 1)
//	store.SetZ(box, 1)
//
// Removing an object returns its slot to a free list exactly once; the next
// Create reuses it. By default ids carry no generation, so an id kept past
// Remove aliases whatever object later takes its slot. Create the store with
// [WithGenerations] to have such ids rejected with [ErrStaleHandle].
//
// # Frames
//
// Once per frame a [BatchBuilder] projects every live object into a fixed
// [ObjectInstance] record, stable-sorts the records by z and splits them
// into [Batch] runs that share a texture (TypeID):
//
//	builder := quadra.NewBatchBuilder()
//	renderer := quadra.NewEbitenRenderer()
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		plan := g.builder.Build(g.store)
//		g.renderer.Draw(screen, plan)
//	}
//
// Batches never reorder objects across z to merge draw calls, so blending
// stays correct and the draw-call count equals the number of texture
// changes in paint order.
//
// For WebGPU backends, [InstanceBufferLayout] and [AppendInstanceBytes]
// describe and encode the instance stream.
//
// # Extras
//
// Store attributes can be animated with tweens (via [gween]), scenes can be
// loaded from YAML with [LoadSceneYAML], and lifecycle events can be bridged
// into an ECS (via the [Donburi] adapter in quadra/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package quadra
