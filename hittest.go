package mural

// Default hit tolerances, in screen pixels. Tolerances are divided by the
// camera zoom before testing so targets stay the same apparent size at any
// zoom level. Handle zones are deliberately easier targets than line bodies.
const (
	DefaultHitTolerancePx    = 6.0
	DefaultHandleTolerancePx = 10.0
)

// HitTest returns the topmost entity at the given world point, or false.
//
// Collections are checked in the exact reverse of paint order so that hit
// priority always matches the visible stacking: nested-canvas refs first,
// then texts, then shapes, then paths, each in reverse insertion order.
// (The paint order is paths, shapes, texts, nested refs; see Redraw.)
// tolWorld is the line/path body tolerance already converted to world units.
func (s *Scene) HitTest(world Point, tolWorld float64) (EntityRef, bool) {
	for i := len(s.Nested) - 1; i >= 0; i-- {
		if s.Nested[i].Rect().Contains(world) {
			return EntityRef{Kind: KindNested, ID: s.Nested[i].ID}, true
		}
	}
	for i := len(s.Texts) - 1; i >= 0; i-- {
		if s.Texts[i].Rect().Contains(world) {
			return EntityRef{Kind: KindText, ID: s.Texts[i].ID}, true
		}
	}
	for i := len(s.Shapes) - 1; i >= 0; i-- {
		if shapeHit(s.Shapes[i], world, tolWorld) {
			return EntityRef{Kind: KindShape, ID: s.Shapes[i].ID}, true
		}
	}
	for i := len(s.Paths) - 1; i >= 0; i-- {
		if pathHit(s.Paths[i], world, tolWorld) {
			return EntityRef{Kind: KindPath, ID: s.Paths[i].ID}, true
		}
	}
	return EntityRef{}, false
}

func shapeHit(sh *Shape, world Point, tol float64) bool {
	switch sh.Kind {
	case ShapeCircle:
		return world.Distance(sh.Center()) <= sh.Radius
	case ShapeLine, ShapeArrow:
		return distanceToSegment(world, sh.A, sh.B) <= tol
	default:
		return sh.Rect().Contains(world)
	}
}

func pathHit(p *Path, world Point, tol float64) bool {
	if len(p.Points) == 1 {
		return world.Distance(p.Points[0]) <= tol
	}
	for i := 0; i+1 < len(p.Points); i++ {
		if distanceToSegment(world, p.Points[i], p.Points[i+1]) <= tol {
			return true
		}
	}
	return false
}

// HitTestArea returns every entity whose geometry intersects (not merely is
// contained by) the given selection rectangle, in hit-priority order. The
// rectangle is normalized before testing.
//
// Circles use a closest-point-on-rectangle distance test. Lines, arrows and
// paths use bounding-box overlap, an accepted approximation: a selection box
// grazing a long diagonal's empty corner still selects it.
func (s *Scene) HitTestArea(area Rect) []EntityRef {
	area = area.Normalize()
	var out []EntityRef
	for i := len(s.Nested) - 1; i >= 0; i-- {
		if area.Intersects(s.Nested[i].Rect()) {
			out = append(out, EntityRef{Kind: KindNested, ID: s.Nested[i].ID})
		}
	}
	for i := len(s.Texts) - 1; i >= 0; i-- {
		if area.Intersects(s.Texts[i].Rect()) {
			out = append(out, EntityRef{Kind: KindText, ID: s.Texts[i].ID})
		}
	}
	for i := len(s.Shapes) - 1; i >= 0; i-- {
		if shapeIntersectsArea(s.Shapes[i], area) {
			out = append(out, EntityRef{Kind: KindShape, ID: s.Shapes[i].ID})
		}
	}
	for i := len(s.Paths) - 1; i >= 0; i-- {
		if area.Intersects(s.Paths[i].Bounds()) {
			out = append(out, EntityRef{Kind: KindPath, ID: s.Paths[i].ID})
		}
	}
	return out
}

func shapeIntersectsArea(sh *Shape, area Rect) bool {
	switch sh.Kind {
	case ShapeCircle:
		return area.ClosestPoint(sh.Center()).Distance(sh.Center()) <= sh.Radius
	case ShapeLine, ShapeArrow:
		return area.Intersects(RectFromCorners(sh.A, sh.B))
	default:
		return area.Intersects(sh.Rect())
	}
}
