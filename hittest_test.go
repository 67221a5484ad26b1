package mural

import "testing"

func boxAt(x, y, w, h float64) *Shape {
	sh := NewShape(ShapeRectangle)
	sh.SetRect(R(x, y, w, h))
	return sh
}

func circleAt(cx, cy, r float64) *Shape {
	sh := NewShape(ShapeCircle)
	sh.X, sh.Y = cx, cy
	sh.Radius = r
	return sh
}

func lineBetween(a, b Point) *Shape {
	sh := NewShape(ShapeLine)
	sh.A, sh.B = a, b
	return sh
}

func TestHitTestTopmostWins(t *testing.T) {
	s := NewScene()
	bottom := s.Insert(boxAt(0, 0, 100, 100))
	top := s.Insert(boxAt(50, 50, 100, 100))

	ref, ok := s.HitTest(Pt(75, 75), DefaultHitTolerancePx)
	if !ok || ref != top {
		t.Errorf("overlap hit = %v, want later-inserted %v", ref, top)
	}

	ref, ok = s.HitTest(Pt(10, 10), DefaultHitTolerancePx)
	if !ok || ref != bottom {
		t.Errorf("non-overlap hit = %v, want %v", ref, bottom)
	}
}

func TestHitTestKindPriority(t *testing.T) {
	// All four kinds stacked on the same spot: nested refs beat texts,
	// texts beat shapes, shapes beat paths.
	s := NewScene()
	path := NewPath(Pt(40, 40))
	path.Append(Pt(60, 60))
	pathRef := s.Insert(path)
	shapeRef := s.Insert(boxAt(0, 0, 100, 100))
	textRef := s.Insert(NewText(Pt(20, 20)))
	nestedRef := s.Insert(NewNestedRef(R(30, 30, 50, 50)))

	at := Pt(50, 50)
	order := []EntityRef{nestedRef, textRef, shapeRef, pathRef}
	for _, want := range order {
		ref, ok := s.HitTest(at, DefaultHitTolerancePx)
		if !ok || ref != want {
			t.Fatalf("hit = %v, want %v", ref, want)
		}
		s.Delete(ref)
	}
	if _, ok := s.HitTest(at, DefaultHitTolerancePx); ok {
		t.Error("hit on empty scene")
	}
}

func TestHitTestCircle(t *testing.T) {
	s := NewScene()
	ref := s.Insert(circleAt(100, 100, 30))

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Pt(100, 100), true},
		{"on rim", Pt(130, 100), true},
		{"just outside", Pt(131, 100), false},
		{"bounding box corner", Pt(128, 128), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.HitTest(tt.p, DefaultHitTolerancePx)
			if ok != tt.want {
				t.Errorf("hit at %v = %v, want %v", tt.p, ok, tt.want)
			}
			if ok && got != ref {
				t.Errorf("hit ref = %v, want %v", got, ref)
			}
		})
	}
}

func TestHitTestLineTolerance(t *testing.T) {
	s := NewScene()
	s.Insert(lineBetween(Pt(0, 0), Pt(100, 0)))

	if _, ok := s.HitTest(Pt(50, 5), 6); !ok {
		t.Error("point within tolerance missed the line")
	}
	if _, ok := s.HitTest(Pt(50, 7), 6); ok {
		t.Error("point beyond tolerance hit the line")
	}
}

func TestHitTestPath(t *testing.T) {
	s := NewScene()
	p := NewPath(Pt(0, 0))
	p.Append(Pt(50, 0))
	p.Append(Pt(50, 50))
	s.Insert(p)

	if _, ok := s.HitTest(Pt(50, 25), 6); !ok {
		t.Error("point on second segment missed")
	}
	if _, ok := s.HitTest(Pt(25, 25), 6); ok {
		t.Error("point far from both segments hit")
	}
}

func TestHitTestAreaIntersectNotContain(t *testing.T) {
	s := NewScene()
	a := s.Insert(boxAt(0, 0, 20, 20))
	b := s.Insert(boxAt(190, 190, 20, 20)) // straddles the area edge
	s.Insert(boxAt(500, 500, 20, 20))      // far outside

	got := s.HitTestArea(R(0, 0, 200, 200))
	if len(got) != 2 {
		t.Fatalf("area hit count = %d, want 2", len(got))
	}
	// Priority order: later-inserted first.
	if got[0] != b || got[1] != a {
		t.Errorf("area hits = %v, want [%v %v]", got, b, a)
	}
}

func TestHitTestAreaCircleCorner(t *testing.T) {
	s := NewScene()
	// Circle whose bounding box overlaps the area corner but whose disc
	// does not reach it.
	s.Insert(circleAt(130, 130, 30))
	if got := s.HitTestArea(R(0, 0, 105, 105)); len(got) != 0 {
		t.Errorf("bounding-box-only overlap selected the circle: %v", got)
	}
	if got := s.HitTestArea(R(0, 0, 110, 110)); len(got) != 1 {
		t.Errorf("true disc overlap missed the circle: %v", got)
	}
}

func TestHitTestAreaNormalizesRect(t *testing.T) {
	s := NewScene()
	ref := s.Insert(boxAt(10, 10, 10, 10))
	got := s.HitTestArea(RectFromCorners(Pt(50, 50), Pt(0, 0)))
	if len(got) != 1 || got[0] != ref {
		t.Errorf("drag-up-left selection = %v, want [%v]", got, ref)
	}
}
