package quadra

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// sceneFile is the top-level YAML structure of a scene description.
//
//	objects:
//	  - kind: rect
//	    pos: [10, 20]
//	    size: [100, 40]
//	    radii: [6]
//	    color: [0.3, 0.7, 1]
//	    z: 1
//	  - kind: image
//	    pos: [200, 20]
//	    size: [64, 64]
//	    uv: [0, 0, 0.5, 0.5]
//	    type: 3
type sceneFile struct {
	Objects []sceneObject `yaml:"objects"`
}

type sceneObject struct {
	Kind     string    `yaml:"kind"`
	Pos      []float32 `yaml:"pos"`
	Size     []float32 `yaml:"size"`
	Radii    []float32 `yaml:"radii"`
	UV       []float32 `yaml:"uv"`
	Z        float32   `yaml:"z"`
	Rotation float32   `yaml:"rotation"`
	Color    []float32 `yaml:"color"`
	Color2   []float32 `yaml:"color2"`
	Type     uint32    `yaml:"type"`
}

// LoadSceneYAML parses a YAML scene description and creates one object per
// entry in store, returning the new ids in file order. Every entry is
// validated before anything is created, so on error the store is unchanged.
//
// Colors are lists of 3 (opaque) or 4 components and are clamped to [0, 1]
// before packing. Radii take 1 (uniform) or 4 values; pos, size and uv take
// exactly 2, 2 and 4. A malformed list fails with ErrInvalidAttributeInput.
func LoadSceneYAML(data []byte, store *Store) ([]ObjectID, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	recs := make([]ObjectRecord, len(f.Objects))
	for i := range f.Objects {
		rec, err := f.Objects[i].record()
		if err != nil {
			return nil, fmt.Errorf("parse scene: object %d: %w", i, err)
		}
		recs[i] = rec
	}

	ids := make([]ObjectID, len(recs))
	for i, rec := range recs {
		ids[i] = store.Create(rec.Kind)
		if err := store.SetRecord(ids[i], rec); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (o *sceneObject) record() (ObjectRecord, error) {
	rec := ObjectRecord{
		UV:       [4]float32{0, 0, 1, 1},
		Z:        o.Z,
		Rotation: o.Rotation,
		Color:    0xFFFFFFFF,
		TypeID:   o.Type,
	}

	if o.Kind != "" {
		k, err := ParseObjectKind(o.Kind)
		if err != nil {
			return rec, err
		}
		rec.Kind = k
	}

	if err := copyVec(rec.PosSize[0:2], o.Pos, "pos"); err != nil {
		return rec, err
	}
	if err := copyVec(rec.PosSize[2:4], o.Size, "size"); err != nil {
		return rec, err
	}
	if err := copyVec(rec.UV[:], o.UV, "uv"); err != nil {
		return rec, err
	}

	switch len(o.Radii) {
	case 0:
	case 1:
		r := o.Radii[0]
		rec.Radii = [4]float32{r, r, r, r}
	case 4:
		copy(rec.Radii[:], o.Radii)
	default:
		return rec, fmt.Errorf("%w: radii has %d values, want 1 or 4", ErrInvalidAttributeInput, len(o.Radii))
	}

	var err error
	if o.Color != nil {
		if rec.Color, err = colorFromList(o.Color, "color"); err != nil {
			return rec, err
		}
	}
	if o.Color2 != nil {
		if rec.Color2, err = colorFromList(o.Color2, "color2"); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// copyVec copies src into dst when src is present; its length must match.
func copyVec(dst, src []float32, name string) error {
	if src == nil {
		return nil
	}
	if len(src) != len(dst) {
		return fmt.Errorf("%w: %s has %d values, want %d", ErrInvalidAttributeInput, name, len(src), len(dst))
	}
	copy(dst, src)
	return nil
}

// colorFromList packs a 3- or 4-component color list, clamping each
// component to [0, 1].
func colorFromList(c []float32, name string) (uint32, error) {
	a := float32(1)
	switch len(c) {
	case 3:
	case 4:
		a = c[3]
	default:
		return 0, fmt.Errorf("%w: %s has %d components, want 3 or 4", ErrInvalidAttributeInput, name, len(c))
	}
	return PackColor(clamp01(c[0]), clamp01(c[1]), clamp01(c[2]), clamp01(a)), nil
}
