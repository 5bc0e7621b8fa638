package quadra

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenAttr selects which store attribute a TweenGroup writes.
type tweenAttr uint8

const (
	tweenPosition tweenAttr = iota
	tweenSize
	tweenZ
	tweenRotation
	tweenColor
	tweenColor2
)

// TweenGroup animates up to 4 components of one object attribute at once.
// Create one with TweenPosition, TweenSize, TweenZ, TweenRotation,
// TweenColor or TweenColor2 and call Update(dt) each frame. If the object is
// removed the group stops immediately.
//
// There is no global animation manager: callers call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	attr   tweenAttr
	store  *Store
	id     ObjectID
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values back to the
// store. Once the object is no longer alive, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.store.IsAlive(g.id) {
		g.Done = true
		return
	}

	var v [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		v[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if err := g.apply(v); err != nil {
		g.Done = true
	}
}

func (g *TweenGroup) apply(v [4]float32) error {
	switch g.attr {
	case tweenPosition:
		return g.store.SetPosition(g.id, v[0], v[1])
	case tweenSize:
		return g.store.SetSize(g.id, v[0], v[1])
	case tweenZ:
		return g.store.SetZ(g.id, v[0])
	case tweenRotation:
		return g.store.SetRotation(g.id, v[0])
	case tweenColor:
		return g.store.SetColor(g.id, packClamped(v))
	case tweenColor2:
		return g.store.SetColor2(g.id, packClamped(v))
	}
	return nil
}

// packClamped packs tweened color channels. Easings such as elastic or back
// overshoot, so channels are clamped before packing.
func packClamped(v [4]float32) uint32 {
	return PackColor(clamp01(v[0]), clamp01(v[1]), clamp01(v[2]), clamp01(v[3]))
}

func newTweenGroup(s *Store, id ObjectID, attr tweenAttr, from, to []float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: len(from), attr: attr, store: s, id: id}
	for i := range from {
		g.tweens[i] = gween.New(from[i], to[i], duration, fn)
	}
	return g
}

// TweenPosition creates a TweenGroup that moves the object's top-left corner
// to (toX, toY) over duration seconds using the easing function.
func TweenPosition(s *Store, id ObjectID, toX, toY, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	x, y, err := s.Position(id)
	if err != nil {
		return nil, err
	}
	return newTweenGroup(s, id, tweenPosition, []float32{x, y}, []float32{toX, toY}, duration, fn), nil
}

// TweenSize creates a TweenGroup that resizes the object to (toW, toH).
func TweenSize(s *Store, id ObjectID, toW, toH, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	w, h, err := s.Size(id)
	if err != nil {
		return nil, err
	}
	return newTweenGroup(s, id, tweenSize, []float32{w, h}, []float32{toW, toH}, duration, fn), nil
}

// TweenZ creates a TweenGroup that animates the paint-order key.
func TweenZ(s *Store, id ObjectID, to, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	z, err := s.Z(id)
	if err != nil {
		return nil, err
	}
	return newTweenGroup(s, id, tweenZ, []float32{z}, []float32{to}, duration, fn), nil
}

// TweenRotation creates a TweenGroup that animates the rotation in radians.
func TweenRotation(s *Store, id ObjectID, to, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	r, err := s.Rotation(id)
	if err != nil {
		return nil, err
	}
	return newTweenGroup(s, id, tweenRotation, []float32{r}, []float32{to}, duration, fn), nil
}

// TweenColor creates a TweenGroup that animates all four channels of the
// primary color toward the packed color to.
func TweenColor(s *Store, id ObjectID, to uint32, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	c, err := s.Color(id)
	if err != nil {
		return nil, err
	}
	return newColorTween(s, id, tweenColor, c, to, duration, fn), nil
}

// TweenColor2 is TweenColor for the secondary color.
func TweenColor2(s *Store, id ObjectID, to uint32, duration float32, fn ease.TweenFunc) (*TweenGroup, error) {
	c, err := s.Color2(id)
	if err != nil {
		return nil, err
	}
	return newColorTween(s, id, tweenColor2, c, to, duration, fn), nil
}

func newColorTween(s *Store, id ObjectID, attr tweenAttr, from, to uint32, duration float32, fn ease.TweenFunc) *TweenGroup {
	fr, fg, fb, fa := UnpackColor(from)
	tr, tg, tb, ta := UnpackColor(to)
	return newTweenGroup(s, id, attr, []float32{fr, fg, fb, fa}, []float32{tr, tg, tb, ta}, duration, fn)
}
