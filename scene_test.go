package mural

import "testing"

func TestSceneInsertAssignsStableIDs(t *testing.T) {
	s := NewScene()
	a := s.Insert(boxAt(0, 0, 20, 20))
	b := s.Insert(boxAt(0, 0, 20, 20))
	if a.ID == "" || b.ID == "" {
		t.Fatal("inserted entity without ID")
	}
	if a.ID == b.ID {
		t.Error("two inserts shared an ID")
	}
	if a.Kind != KindShape {
		t.Errorf("kind = %v, want %v", a.Kind, KindShape)
	}
	if !s.Has(a) || !s.Has(b) {
		t.Error("inserted entities not found")
	}
}

func TestSceneDeletePrunesSelectionAndHover(t *testing.T) {
	s := NewScene()
	a := s.Insert(boxAt(0, 0, 20, 20))
	b := s.Insert(boxAt(50, 0, 20, 20))
	s.Selection = []EntityRef{a, b}
	s.Preview = []EntityRef{a}
	s.Hovered = a

	if !s.Delete(a) {
		t.Fatal("delete reported failure")
	}
	if s.Has(a) {
		t.Error("deleted entity still present")
	}
	for _, ref := range s.Selection {
		if ref == a {
			t.Error("deleted entity still selected")
		}
	}
	if len(s.Preview) != 0 {
		t.Errorf("preview not pruned: %v", s.Preview)
	}
	if s.Hovered == a {
		t.Error("hover still points at deleted entity")
	}
	if !s.IsSelected(b) {
		t.Error("unrelated selection entry lost")
	}
}

func TestSceneDeleteUnknownRef(t *testing.T) {
	s := NewScene()
	if s.Delete(EntityRef{Kind: KindShape, ID: "missing"}) {
		t.Error("delete of unknown ref reported success")
	}
}

func TestSceneReorderChangesHitPriority(t *testing.T) {
	s := NewScene()
	a := s.Insert(boxAt(0, 0, 100, 100))
	b := s.Insert(boxAt(0, 0, 100, 100))

	at := Pt(50, 50)
	if ref, _ := s.HitTest(at, 6); ref != b {
		t.Fatalf("initial top = %v, want %v", ref, b)
	}

	s.BringToFront(a)
	if ref, _ := s.HitTest(at, 6); ref != a {
		t.Errorf("after BringToFront top = %v, want %v", ref, a)
	}

	s.SendToBack(a)
	if ref, _ := s.HitTest(at, 6); ref != b {
		t.Errorf("after SendToBack top = %v, want %v", ref, b)
	}
}

func TestSceneReorderClearsSelection(t *testing.T) {
	s := NewScene()
	a := s.Insert(boxAt(0, 0, 20, 20))
	s.Select(a)
	s.Preview = []EntityRef{a}

	s.BringToFront(a)
	if len(s.Selection) != 0 || len(s.Preview) != 0 {
		t.Errorf("reorder kept selection %v preview %v", s.Selection, s.Preview)
	}
}

func TestSceneTranslateSelection(t *testing.T) {
	s := NewScene()
	shRef := s.Insert(boxAt(0, 0, 20, 20))
	path := NewPath(Pt(0, 0))
	path.Append(Pt(10, 10))
	pathRef := s.Insert(path)
	textRef := s.Insert(NewText(Pt(5, 5)))
	s.Selection = []EntityRef{shRef, pathRef, textRef}

	s.TranslateSelection(Pt(100, -50))

	if sh := s.FindShape(shRef.ID); sh.X != 100 || sh.Y != -50 {
		t.Errorf("shape at (%v, %v)", sh.X, sh.Y)
	}
	if p := s.FindPath(pathRef.ID); p.Points[0] != Pt(100, -50) || p.Points[1] != Pt(110, -40) {
		t.Errorf("path points %v", p.Points)
	}
	if txt := s.FindText(textRef.ID); txt.X != 105 || txt.Y != -45 {
		t.Errorf("text at (%v, %v)", txt.X, txt.Y)
	}
}

func TestSceneClear(t *testing.T) {
	s := NewScene()
	ref := s.Insert(boxAt(0, 0, 20, 20))
	s.Select(ref)
	s.Clear()
	if len(s.Shapes) != 0 || len(s.Selection) != 0 {
		t.Error("clear left content behind")
	}
}

func TestSoleSelection(t *testing.T) {
	s := NewScene()
	a := s.Insert(boxAt(0, 0, 20, 20))
	b := s.Insert(boxAt(30, 0, 20, 20))

	if _, ok := s.SoleSelection(); ok {
		t.Error("empty selection reported sole")
	}
	s.Select(a)
	if ref, ok := s.SoleSelection(); !ok || ref != a {
		t.Errorf("sole = %v, %v", ref, ok)
	}
	s.Selection = []EntityRef{a, b}
	if _, ok := s.SoleSelection(); ok {
		t.Error("multi selection reported sole")
	}
}

func TestMinimumSizesOnConstruction(t *testing.T) {
	sh := NewShape(ShapeRectangle)
	sh.SetRect(R(0, 0, 1, 1))
	if sh.W != MinShapeWidth || sh.H != MinShapeHeight {
		t.Errorf("shape clamped to %vx%v, want %vx%v", sh.W, sh.H, MinShapeWidth, MinShapeHeight)
	}

	n := NewNestedRef(R(0, 0, 2, 2))
	if n.W != MinShapeWidth || n.H != MinShapeHeight {
		t.Errorf("nested ref clamped to %vx%v", n.W, n.H)
	}
}
