package mural

// Handle names one resize hot-zone of a selected entity. Box-shaped
// entities expose the eight compass handles, circles the four cardinal
// ones, lines and arrows the two endpoints plus the midpoint.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleStart
	HandleEnd
	HandleMid
)

// controlsLeft reports whether dragging the handle moves the left edge.
func (h Handle) controlsLeft() bool {
	return h == HandleNW || h == HandleW || h == HandleSW
}

// controlsRight reports whether dragging the handle moves the right edge.
func (h Handle) controlsRight() bool {
	return h == HandleNE || h == HandleE || h == HandleSE
}

// controlsTop reports whether dragging the handle moves the top edge.
func (h Handle) controlsTop() bool {
	return h == HandleNW || h == HandleN || h == HandleNE
}

// controlsBottom reports whether dragging the handle moves the bottom edge.
func (h Handle) controlsBottom() bool {
	return h == HandleSW || h == HandleS || h == HandleSE
}

// HandlePos pairs a handle with its world-space anchor point.
type HandlePos struct {
	Handle Handle
	At     Point
}

// boxHandles returns the eight compass handles of a normalized rectangle:
// four corners plus four edge midpoints.
func boxHandles(r Rect) []HandlePos {
	cx := r.X + r.W/2
	cy := r.Y + r.H/2
	return []HandlePos{
		{HandleNW, Pt(r.X, r.Y)},
		{HandleN, Pt(cx, r.Y)},
		{HandleNE, Pt(r.MaxX(), r.Y)},
		{HandleE, Pt(r.MaxX(), cy)},
		{HandleSE, Pt(r.MaxX(), r.MaxY())},
		{HandleS, Pt(cx, r.MaxY())},
		{HandleSW, Pt(r.X, r.MaxY())},
		{HandleW, Pt(r.X, cy)},
	}
}

// circleHandles returns the four cardinal handles on the circumference.
func circleHandles(center Point, radius float64) []HandlePos {
	return []HandlePos{
		{HandleN, Pt(center.X, center.Y-radius)},
		{HandleE, Pt(center.X+radius, center.Y)},
		{HandleS, Pt(center.X, center.Y+radius)},
		{HandleW, Pt(center.X-radius, center.Y)},
	}
}

// lineHandles returns the endpoint handles plus the midpoint handle, which
// translates the whole line (lines have no drag body of their own).
func lineHandles(a, b Point) []HandlePos {
	return []HandlePos{
		{HandleStart, a},
		{HandleEnd, b},
		{HandleMid, a.Add(b).Div(2)},
	}
}

// Handles returns the resize hot-zones for the referenced entity, in world
// space. Paths have no handles; they are drag-only.
func (s *Scene) Handles(ref EntityRef) []HandlePos {
	switch ref.Kind {
	case KindShape:
		sh := s.FindShape(ref.ID)
		if sh == nil {
			return nil
		}
		switch sh.Kind {
		case ShapeCircle:
			return circleHandles(sh.Center(), sh.Radius)
		case ShapeLine, ShapeArrow:
			return lineHandles(sh.A, sh.B)
		default:
			return boxHandles(sh.Rect())
		}
	case KindText:
		if t := s.FindText(ref.ID); t != nil {
			return boxHandles(t.Rect())
		}
	case KindNested:
		if n := s.FindNested(ref.ID); n != nil {
			return boxHandles(n.Rect())
		}
	}
	return nil
}

// HandleAt returns the handle of the referenced entity under the given
// world point, using the handle tolerance (already in world units), or
// HandleNone. Handle hit-testing runs before general hit-testing whenever
// exactly one entity is selected.
func (s *Scene) HandleAt(ref EntityRef, world Point, tolWorld float64) Handle {
	for _, hp := range s.Handles(ref) {
		if world.Distance(hp.At) <= tolWorld {
			return hp.Handle
		}
	}
	return HandleNone
}
