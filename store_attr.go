package quadra

// Attribute accessors. Every accessor fails with ErrIndexOutOfBounds when the
// id's slot lies outside the allocated range. Without WithGenerations, an id
// whose slot is in range but no longer alive still reads and writes that
// slot's (stale) fields; with it, such ids fail with ErrStaleHandle.

// Kind returns the kind the object was created with.
func (s *Store) Kind(id ObjectID) (ObjectKind, error) {
	i, err := s.index(id)
	if err != nil {
		return 0, err
	}
	return s.kinds[i], nil
}

// Position returns the object's top-left corner.
func (s *Store) Position(id ObjectID) (x, y float32, err error) {
	i, err := s.index(id)
	if err != nil {
		return 0, 0, err
	}
	ps := &s.posSize[i]
	return ps[0], ps[1], nil
}

// SetPosition moves the object's top-left corner.
func (s *Store) SetPosition(id ObjectID, x, y float32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.posSize[i][0], s.posSize[i][1] = x, y
	return nil
}

// Size returns the object's width and height.
func (s *Store) Size(id ObjectID) (w, h float32, err error) {
	i, err := s.index(id)
	if err != nil {
		return 0, 0, err
	}
	ps := &s.posSize[i]
	return ps[2], ps[3], nil
}

// SetSize sets the object's width and height.
func (s *Store) SetSize(id ObjectID, w, h float32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.posSize[i][2], s.posSize[i][3] = w, h
	return nil
}

// PosSize returns x, y, width and height.
func (s *Store) PosSize(id ObjectID) ([4]float32, error) {
	i, err := s.index(id)
	if err != nil {
		return [4]float32{}, err
	}
	return s.posSize[i], nil
}

// SetPosSize sets x, y, width and height at once.
func (s *Store) SetPosSize(id ObjectID, v [4]float32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.posSize[i] = v
	return nil
}

// Radii returns the corner radii: top-left, top-right, bottom-right,
// bottom-left.
func (s *Store) Radii(id ObjectID) ([4]float32, error) {
	i, err := s.index(id)
	if err != nil {
		return [4]float32{}, err
	}
	return s.radii[i], nil
}

// SetRadii sets the corner radii in top-left, top-right, bottom-right,
// bottom-left order.
func (s *Store) SetRadii(id ObjectID, v [4]float32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.radii[i] = v
	return nil
}

// SetRadius sets all four corner radii to r.
func (s *Store) SetRadius(id ObjectID, r float32) error {
	return s.SetRadii(id, [4]float32{r, r, r, r})
}

// UV returns the texture rectangle u0, v0, u1, v1.
func (s *Store) UV(id ObjectID) ([4]float32, error) {
	i, err := s.index(id)
	if err != nil {
		return [4]float32{}, err
	}
	return s.uv[i], nil
}

// SetUV sets the texture rectangle u0, v0, u1, v1 in normalized coordinates.
func (s *Store) SetUV(id ObjectID, v [4]float32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.uv[i] = v
	return nil
}

// Z returns the object's paint-order key.
func (s *Store) Z(id ObjectID) (float32, error) {
	i, err := s.index(id)
	if err != nil {
		return 0, err
	}
	return s.z[i], nil
}

// SetZ sets the paint-order key. Lower values are drawn first.
func (s *Store) SetZ(id ObjectID, z float32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.z[i] = z
	return nil
}

// Rotation returns the rotation in radians.
func (s *Store) Rotation(id ObjectID) (float32, error) {
	i, err := s.index(id)
	if err != nil {
		return 0, err
	}
	return s.rotation[i], nil
}

// SetRotation sets the rotation in radians around the object's center.
func (s *Store) SetRotation(id ObjectID, rad float32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.rotation[i] = rad
	return nil
}

// Color returns the primary packed color.
func (s *Store) Color(id ObjectID) (uint32, error) {
	i, err := s.index(id)
	if err != nil {
		return 0, err
	}
	return s.color[i], nil
}

// SetColor sets the primary packed color.
func (s *Store) SetColor(id ObjectID, c uint32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.color[i] = c
	return nil
}

// SetColorRGBA packs r, g, b, a with PackColor and stores the result as the
// primary color. Components must already lie in [0, 1].
func (s *Store) SetColorRGBA(id ObjectID, r, g, b, a float32) error {
	return s.SetColor(id, PackColor(r, g, b, a))
}

// Color2 returns the secondary packed color.
func (s *Store) Color2(id ObjectID) (uint32, error) {
	i, err := s.index(id)
	if err != nil {
		return 0, err
	}
	return s.color2[i], nil
}

// SetColor2 sets the secondary packed color.
func (s *Store) SetColor2(id ObjectID, c uint32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.color2[i] = c
	return nil
}

// SetColor2RGBA is the secondary-color counterpart of SetColorRGBA.
func (s *Store) SetColor2RGBA(id ObjectID, r, g, b, a float32) error {
	return s.SetColor2(id, PackColor(r, g, b, a))
}

// TypeID returns the texture selector.
func (s *Store) TypeID(id ObjectID) (uint32, error) {
	i, err := s.index(id)
	if err != nil {
		return 0, err
	}
	return s.typeID[i], nil
}

// SetTypeID sets the texture selector. 0 draws the object untextured.
func (s *Store) SetTypeID(id ObjectID, t uint32) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.typeID[i] = t
	return nil
}

// Record returns a copy of all of the object's attributes.
func (s *Store) Record(id ObjectID) (ObjectRecord, error) {
	i, err := s.index(id)
	if err != nil {
		return ObjectRecord{}, err
	}
	return s.record(i), nil
}

// SetRecord overwrites all of the object's attributes from rec. rec.Kind is
// ignored: an object's kind is fixed when it is created.
func (s *Store) SetRecord(id ObjectID, rec ObjectRecord) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.posSize[i] = rec.PosSize
	s.radii[i] = rec.Radii
	s.uv[i] = rec.UV
	s.z[i] = rec.Z
	s.rotation[i] = rec.Rotation
	s.color[i] = rec.Color
	s.color2[i] = rec.Color2
	s.typeID[i] = rec.TypeID
	return nil
}
