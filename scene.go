package mural

// Scene is one canvas context: the ordered entity collections of a single
// drawing surface plus its camera and transient interaction state. One
// scene exists for the main canvas and one per opened nested canvas; all
// pointer-driven mutation applies to whichever scene is active.
//
// Entities externally inserted into a scene are indistinguishable from
// tool-created ones: there is no privileged internal path.
type Scene struct {
	Camera Camera

	Paths  []*Path
	Shapes []*Shape
	Texts  []*Text
	Nested []*NestedRef

	// Selection is the committed selection. Preview holds box-select
	// candidates before commit; it gets distinct visual treatment and
	// replaces Selection on pointer-up.
	Selection []EntityRef
	Preview   []EntityRef

	// Hovered is the entity under an idle pointer, or a zero ref.
	Hovered EntityRef
}

// NewScene returns an empty scene with a default camera.
func NewScene() *Scene {
	return &Scene{Camera: NewCamera()}
}

// FindPath returns the path with the given ID, or nil.
func (s *Scene) FindPath(id string) *Path {
	for _, p := range s.Paths {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindShape returns the shape with the given ID, or nil.
func (s *Scene) FindShape(id string) *Shape {
	for _, sh := range s.Shapes {
		if sh.ID == id {
			return sh
		}
	}
	return nil
}

// FindText returns the text with the given ID, or nil.
func (s *Scene) FindText(id string) *Text {
	for _, t := range s.Texts {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// FindNested returns the nested-canvas ref with the given ID, or nil.
func (s *Scene) FindNested(id string) *NestedRef {
	for _, n := range s.Nested {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Has reports whether the referenced entity still exists in the scene.
func (s *Scene) Has(ref EntityRef) bool {
	switch ref.Kind {
	case KindPath:
		return s.FindPath(ref.ID) != nil
	case KindShape:
		return s.FindShape(ref.ID) != nil
	case KindText:
		return s.FindText(ref.ID) != nil
	case KindNested:
		return s.FindNested(ref.ID) != nil
	}
	return false
}

// Insert adds an entity to its collection. It accepts *Path, *Shape, *Text
// and *NestedRef; other types are ignored. Returns the ref of the inserted
// entity, or a zero ref.
func (s *Scene) Insert(entity any) EntityRef {
	switch e := entity.(type) {
	case *Path:
		s.Paths = append(s.Paths, e)
		return EntityRef{Kind: KindPath, ID: e.ID}
	case *Shape:
		s.Shapes = append(s.Shapes, e)
		return EntityRef{Kind: KindShape, ID: e.ID}
	case *Text:
		s.Texts = append(s.Texts, e)
		return EntityRef{Kind: KindText, ID: e.ID}
	case *NestedRef:
		s.Nested = append(s.Nested, e)
		return EntityRef{Kind: KindNested, ID: e.ID}
	}
	return EntityRef{}
}

// Delete removes the referenced entity and prunes it from the selection,
// preview and hover state. It reports whether anything was removed.
// With stable IDs, remaining selection entries keep referring to the same
// logical entities regardless of removal order.
func (s *Scene) Delete(ref EntityRef) bool {
	removed := false
	switch ref.Kind {
	case KindPath:
		s.Paths, removed = deleteByID(s.Paths, ref.ID, func(p *Path) string { return p.ID })
	case KindShape:
		s.Shapes, removed = deleteByID(s.Shapes, ref.ID, func(sh *Shape) string { return sh.ID })
	case KindText:
		s.Texts, removed = deleteByID(s.Texts, ref.ID, func(t *Text) string { return t.ID })
	case KindNested:
		s.Nested, removed = deleteByID(s.Nested, ref.ID, func(n *NestedRef) string { return n.ID })
	}
	if removed {
		s.Selection = pruneRef(s.Selection, ref)
		s.Preview = pruneRef(s.Preview, ref)
		if s.Hovered == ref {
			s.Hovered = EntityRef{}
		}
	}
	return removed
}

func deleteByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	for i, e := range list {
		if idOf(e) == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func pruneRef(refs []EntityRef, ref EntityRef) []EntityRef {
	out := refs[:0]
	for _, r := range refs {
		if r != ref {
			out = append(out, r)
		}
	}
	return out
}

// Clear removes every entity and resets all selection state. Embed host
// nodes are destroyed by the Canvas, which knows the overlay.
func (s *Scene) Clear() {
	s.Paths = nil
	s.Shapes = nil
	s.Texts = nil
	s.Nested = nil
	s.Selection = nil
	s.Preview = nil
	s.Hovered = EntityRef{}
}

// IsSelected reports whether the ref is part of the committed selection.
func (s *Scene) IsSelected(ref EntityRef) bool {
	for _, r := range s.Selection {
		if r == ref {
			return true
		}
	}
	return false
}

// Select replaces the selection with the single given ref.
func (s *Scene) Select(ref EntityRef) {
	s.Selection = []EntityRef{ref}
}

// ClearSelection drops the committed selection.
func (s *Scene) ClearSelection() {
	s.Selection = nil
}

// SoleSelection returns the selected ref when exactly one entity is
// selected; resize handles only exist in that state.
func (s *Scene) SoleSelection() (EntityRef, bool) {
	if len(s.Selection) == 1 {
		return s.Selection[0], true
	}
	return EntityRef{}, false
}

// TranslateSelection moves every selected entity by the world-space delta.
func (s *Scene) TranslateSelection(d Point) {
	for _, ref := range s.Selection {
		switch ref.Kind {
		case KindPath:
			if p := s.FindPath(ref.ID); p != nil {
				p.Translate(d)
			}
		case KindShape:
			if sh := s.FindShape(ref.ID); sh != nil {
				sh.Translate(d)
			}
		case KindText:
			if t := s.FindText(ref.ID); t != nil {
				t.Translate(d)
			}
		case KindNested:
			if n := s.FindNested(ref.ID); n != nil {
				n.Translate(d)
			}
		}
	}
}

// BringToFront moves the referenced entity to the end of its collection so
// it paints last (topmost). The selection is cleared afterwards: a reorder
// visibly restacks the scene, and a stale selection outline over restacked
// content is how the positional-index model corrupted state.
func (s *Scene) BringToFront(ref EntityRef) {
	s.reorder(ref, true)
}

// SendToBack moves the referenced entity to the start of its collection so
// it paints first (bottom). The selection is cleared afterwards.
func (s *Scene) SendToBack(ref EntityRef) {
	s.reorder(ref, false)
}

func (s *Scene) reorder(ref EntityRef, front bool) {
	moved := false
	switch ref.Kind {
	case KindPath:
		s.Paths, moved = moveByID(s.Paths, ref.ID, front, func(p *Path) string { return p.ID })
	case KindShape:
		s.Shapes, moved = moveByID(s.Shapes, ref.ID, front, func(sh *Shape) string { return sh.ID })
	case KindText:
		s.Texts, moved = moveByID(s.Texts, ref.ID, front, func(t *Text) string { return t.ID })
	case KindNested:
		s.Nested, moved = moveByID(s.Nested, ref.ID, front, func(n *NestedRef) string { return n.ID })
	}
	if moved {
		s.Selection = nil
		s.Preview = nil
	}
}

func moveByID[T any](list []T, id string, front bool, idOf func(T) string) ([]T, bool) {
	for i, e := range list {
		if idOf(e) != id {
			continue
		}
		rest := append(list[:i:i], list[i+1:]...)
		if front {
			return append(rest, e), true
		}
		return append([]T{e}, rest...), true
	}
	return list, false
}

// EmbedShapes returns the embed-kind shapes of the scene, in paint order.
func (s *Scene) EmbedShapes() []*Shape {
	var out []*Shape
	for _, sh := range s.Shapes {
		if sh.Kind == ShapeEmbed {
			out = append(out, sh)
		}
	}
	return out
}
