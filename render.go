package quadra

import (
	"errors"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Renderer consumes a frame Plan and issues one draw call per Batch, in
// batch order.
type Renderer interface {
	Render(plan *Plan) error
}

// errNoTarget is returned by EbitenRenderer.Render before SetTarget is called.
var errNoTarget = errors.New("quadra: renderer has no target image")

// EbitenRenderer draws Plans onto an ebiten image. Every batch becomes a
// single DrawTriangles32 call: instances are expanded into rotated quads
// sampling the texture registered for the batch's TypeID.
//
// Corner radii and Color2 are not rasterized by this renderer; they are
// meant for shader-based backends consuming InstanceBufferLayout.
type EbitenRenderer struct {
	target   *ebiten.Image
	textures map[uint32]*ebiten.Image
	warned   map[uint32]bool

	// Blend is applied to every batch. Defaults to source-over.
	Blend ebiten.Blend

	verts     []ebiten.Vertex
	inds      []uint32
	drawCalls int
}

// NewEbitenRenderer creates a renderer with no target and no textures.
func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{
		textures: make(map[uint32]*ebiten.Image),
		warned:   make(map[uint32]bool),
		Blend:    ebiten.BlendSourceOver,
	}
}

// RegisterTexture associates a texture with a nonzero TypeID. Registering
// nil removes the association.
func (r *EbitenRenderer) RegisterTexture(typeID uint32, img *ebiten.Image) {
	if img == nil {
		delete(r.textures, typeID)
		return
	}
	r.textures[typeID] = img
	delete(r.warned, typeID)
}

// SetTarget sets the image Render draws onto.
func (r *EbitenRenderer) SetTarget(target *ebiten.Image) {
	r.target = target
}

// Render draws plan onto the current target.
func (r *EbitenRenderer) Render(plan *Plan) error {
	if r.target == nil {
		return errNoTarget
	}
	r.Draw(r.target, plan)
	return nil
}

// Draw draws plan onto target, one DrawTriangles32 call per batch.
func (r *EbitenRenderer) Draw(target *ebiten.Image, plan *Plan) {
	r.drawCalls = 0
	for i, b := range plan.Batches {
		img := r.texture(b.TypeID)
		src := img.Bounds()
		insts := plan.BatchInstances(i)
		for j := range insts {
			r.appendQuad(&insts[j], src)
		}
		r.flush(target, img)
	}
}

// DrawCalls returns the number of draw calls issued by the last Draw.
func (r *EbitenRenderer) DrawCalls() int {
	return r.drawCalls
}

// texture resolves a TypeID to its image: 0 is the solid white pixel and
// unregistered ids fall back to a magenta placeholder.
func (r *EbitenRenderer) texture(typeID uint32) *ebiten.Image {
	if typeID == 0 {
		return ensureWhiteImage()
	}
	if img, ok := r.textures[typeID]; ok {
		return img
	}
	if !r.warned[typeID] {
		r.warned[typeID] = true
		Logger().Warn("quadra: no texture registered, using magenta placeholder", "type_id", typeID)
	}
	return ensureMagentaImage()
}

// appendQuad appends 4 vertices and 6 indices for one instance. The quad is
// rotated around its center; UVs are normalized and scaled into src.
func (r *EbitenRenderer) appendQuad(in *ObjectInstance, src image.Rectangle) {
	x, y, w, h := in.PosSize[0], in.PosSize[1], in.PosSize[2], in.PosSize[3]
	cx, cy := x+w/2, y+h/2
	hw, hh := w/2, h/2
	sin, cos := math32.Sincos(in.Rotation())

	// Local corners around the center: TL, TR, BL, BR.
	lx := [4]float32{-hw, hw, -hw, hw}
	ly := [4]float32{-hh, -hh, hh, hh}

	bx, by := float32(src.Min.X), float32(src.Min.Y)
	bw, bh := float32(src.Dx()), float32(src.Dy())
	u0, v0, u1, v1 := in.UV[0], in.UV[1], in.UV[2], in.UV[3]
	sx := [4]float32{bx + u0*bw, bx + u1*bw, bx + u0*bw, bx + u1*bw}
	sy := [4]float32{by + v0*bh, by + v0*bh, by + v1*bh, by + v1*bh}

	// Premultiplied RGBA.
	cr, cg, cb, ca := UnpackColor(in.Color)
	cr, cg, cb = cr*ca, cg*ca, cb*ca

	base := uint32(len(r.verts))
	for i := 0; i < 4; i++ {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   cx + lx[i]*cos - ly[i]*sin,
			DstY:   cy + lx[i]*sin + ly[i]*cos,
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// flush submits accumulated vertices as a single DrawTriangles32 call.
func (r *EbitenRenderer) flush(target, img *ebiten.Image) {
	if len(r.verts) == 0 {
		return
	}

	var op ebiten.DrawTrianglesOptions
	op.Blend = r.Blend
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha

	target.DrawTriangles32(r.verts, r.inds, img, &op)
	r.drawCalls++

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// Placeholder singletons (no sync.Once: rendering is single-threaded).
var (
	whiteImage   *ebiten.Image
	magentaImage *ebiten.Image
)

func ensureWhiteImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(1, 1)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}
