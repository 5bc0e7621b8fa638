package quadra

import (
	"errors"
	"fmt"
)

// ObjectKind selects the visual variant of an object. Every kind shares the
// same storage layout and instance record; the kind only changes how the
// record is projected and which shader path consumes it.
type ObjectKind uint8

const (
	KindRect   ObjectKind = iota // axis-aligned rectangle, optionally rounded
	KindCircle                   // circle or ellipse inscribed in its size
	KindText                     // glyph quad sampled from a text atlas
	KindImage                    // textured quad
	KindLine                     // thin quad along its width axis

	kindCount
)

var kindNames = [kindCount]string{
	KindRect:   "rect",
	KindCircle: "circle",
	KindText:   "text",
	KindImage:  "image",
	KindLine:   "line",
}

// String returns the lower-case name of the kind.
func (k ObjectKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("ObjectKind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k ObjectKind) Valid() bool {
	return k < kindCount
}

// ParseObjectKind maps a kind name (as returned by String) back to its value.
func ParseObjectKind(name string) (ObjectKind, error) {
	for k, n := range kindNames {
		if n == name {
			return ObjectKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown object kind %q", ErrInvalidAttributeInput, name)
}

var (
	// ErrIndexOutOfBounds is returned when an ObjectID addresses a slot at or
	// beyond the store's allocated capacity.
	ErrIndexOutOfBounds = errors.New("quadra: slot index out of bounds")

	// ErrStaleHandle is returned by stores created with WithGenerations when
	// an ObjectID refers to a slot that has since been freed or reused.
	ErrStaleHandle = errors.New("quadra: stale object handle")

	// ErrInvalidAttributeInput is returned at input boundaries (scene files,
	// bindings) when an attribute value is malformed.
	ErrInvalidAttributeInput = errors.New("quadra: invalid attribute input")
)
