// churn10k keeps 10,000 objects of mixed kinds on screen while replacing a
// slice of them every frame, so the free list, slot reuse and batch
// partitioning are all exercised continuously. A stress test for the quadra
// frame pipeline.
package main

import (
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/quadra"
)

const (
	screenW  = 1280
	screenH  = 720
	count    = 10_000
	churn    = 200 // objects replaced per frame
	layers   = 6
	textures = 3
)

type mover struct {
	id       quadra.ObjectID
	dx, dy   float32
	rotSpeed float32
}

type demo struct {
	store    *quadra.Store
	builder  *quadra.BatchBuilder
	renderer *quadra.EbitenRenderer
	movers   []mover
}

func main() {
	if os.Getenv("QUADRA_DEBUG") != "" {
		quadra.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	d := &demo{
		store:    quadra.NewStore(quadra.WithCapacity(count), quadra.WithGenerations()),
		builder:  quadra.NewBatchBuilder(),
		renderer: quadra.NewEbitenRenderer(),
		movers:   make([]mover, count),
	}
	for t := 1; t <= textures; t++ {
		d.renderer.RegisterTexture(uint32(t), swatch(t))
	}
	for i := range d.movers {
		d.movers[i] = d.spawn()
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Quadra - 10k Churn")
	if err := ebiten.RunGame(d); err != nil {
		log.Fatal(err)
	}
}

// swatch makes a small solid texture with a tinted border so each TypeID is
// visibly distinct.
func swatch(t int) *ebiten.Image {
	img := ebiten.NewImage(8, 8)
	img.Fill(color.RGBA{R: uint8(80 * t), G: 200, B: uint8(255 - 60*t), A: 255})
	return img
}

func (d *demo) spawn() mover {
	kind := quadra.ObjectKind(rand.IntN(5))
	id := d.store.Create(kind)

	size := 6 + rand.Float32()*14
	d.store.SetPosSize(id, [4]float32{rand.Float32() * screenW, rand.Float32() * screenH, size, size})
	d.store.SetZ(id, float32(rand.IntN(layers)))
	d.store.SetTypeID(id, uint32(rand.IntN(textures+1)))
	d.store.SetColorRGBA(id, 0.5+rand.Float32()*0.5, 0.5+rand.Float32()*0.5, 0.5+rand.Float32()*0.5, 0.8)

	return mover{
		id:       id,
		dx:       (rand.Float32() - 0.5) * 4,
		dy:       (rand.Float32() - 0.5) * 4,
		rotSpeed: (rand.Float32() - 0.5) * 0.1,
	}
}

func (d *demo) Update() error {
	for range churn {
		i := rand.IntN(len(d.movers))
		d.store.Remove(d.movers[i].id)
		d.movers[i] = d.spawn()
	}

	for i := range d.movers {
		m := &d.movers[i]
		x, y, err := d.store.Position(m.id)
		if err != nil {
			return err
		}
		x, m.dx = bounce(x+m.dx, m.dx, screenW)
		y, m.dy = bounce(y+m.dy, m.dy, screenH)
		d.store.SetPosition(m.id, x, y)

		r, _ := d.store.Rotation(m.id)
		d.store.SetRotation(m.id, float32(math.Mod(float64(r+m.rotSpeed), 2*math.Pi)))
	}
	return nil
}

func bounce(p, v, limit float32) (float32, float32) {
	switch {
	case p < 0:
		return 0, -v
	case p > limit:
		return limit, -v
	}
	return p, v
}

func (d *demo) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 15, G: 15, B: 23, A: 255})
	plan := d.builder.Build(d.store)
	d.renderer.Draw(screen, plan)

	st := d.store.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS %.0f  live %d  cap %d  free %d\ncreates %d  removes %d  draw calls %d",
		ebiten.ActualFPS(), st.Live, st.Capacity, st.Free, st.Creates, st.Removes, plan.DrawCalls()))
}

func (d *demo) Layout(int, int) (int, int) {
	return screenW, screenH
}
