package quadra

import "github.com/chewxy/math32"

// ObjectRecord is a copy of every attribute stored for one object.
type ObjectRecord struct {
	Kind     ObjectKind
	PosSize  [4]float32 // x, y, width, height (top-left origin)
	Radii    [4]float32 // top-left, top-right, bottom-right, bottom-left
	UV       [4]float32 // u0, v0, u1, v1
	Z        float32    // paint order, ascending
	Rotation float32    // radians, around the object's center
	Color    uint32     // primary packed color, see PackColor
	Color2   uint32     // secondary packed color (gradient end, border)
	TypeID   uint32     // 0 draws solid, nonzero selects a texture
}

// ObjectInstance is the fixed-layout per-instance record consumed by the GPU.
// Its shape is the same for every ObjectKind.
type ObjectInstance struct {
	PosSize [4]float32
	Radii   [4]float32
	UV      [4]float32
	Extra   [2]float32 // z, rotation
	Color   uint32
	Color2  uint32
	TypeID  uint32
}

// Z returns the instance's paint-order key.
func (in *ObjectInstance) Z() float32 { return in.Extra[0] }

// Rotation returns the instance's rotation in radians.
func (in *ObjectInstance) Rotation() float32 { return in.Extra[1] }

// Project converts a stored record into its instance record. Kind-specific
// adjustments are resolved here so the renderer never branches on kind.
func Project(rec ObjectRecord) ObjectInstance {
	in := ObjectInstance{
		PosSize: rec.PosSize,
		Radii:   rec.Radii,
		UV:      rec.UV,
		Extra:   [2]float32{rec.Z, rec.Rotation},
		Color:   rec.Color,
		Color2:  rec.Color2,
		TypeID:  rec.TypeID,
	}
	switch rec.Kind {
	case KindCircle:
		r := math32.Min(rec.PosSize[2], rec.PosSize[3]) / 2
		in.Radii = [4]float32{r, r, r, r}
	}
	return in
}

// PackColor packs normalized RGBA components into a uint32 with red in the
// lowest byte: a<<24 | b<<16 | g<<8 | r. Each component is scaled by 255 and
// truncated. Inputs are not clamped; values outside [0, 1] wrap.
func PackColor(r, g, b, a float32) uint32 {
	return channel(a)<<24 | channel(b)<<16 | channel(g)<<8 | channel(r)
}

func channel(c float32) uint32 {
	return uint32(int32(c*255)) & 0xFF
}

// UnpackColor splits a packed color into normalized RGBA components.
func UnpackColor(c uint32) (r, g, b, a float32) {
	const inv = 1.0 / 255
	return float32(c&0xFF) * inv,
		float32(c>>8&0xFF) * inv,
		float32(c>>16&0xFF) * inv,
		float32(c>>24) * inv
}

// clamp01 limits c to [0, 1]. NaN maps to 0.
func clamp01(c float32) float32 {
	if math32.IsNaN(c) || c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
