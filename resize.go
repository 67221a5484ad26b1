package mural

import "math"

// EmbedLimits configures the resize ceiling of embed shapes. Host-rendered
// content cannot be made arbitrarily large without drifting from what it
// actually contains, so embeds are capped near their measured content size.
//
// Ceiling priority, highest first: the shape's own manual MaxW/MaxH
// override, then the per-kind DefaultMaxW/DefaultMaxH, then the measured
// content size plus Buffer. Whatever wins is clamped a second time by
// MaxMultiplier times the content size as an absolute backstop. Before the
// first measurement arrives there is no content ceiling.
type EmbedLimits struct {
	// Buffer is added to the measured content size, in world units.
	Buffer float64
	// MaxMultiplier caps any ceiling at content-size times this factor.
	// Zero disables the backstop.
	MaxMultiplier float64
	// DefaultMaxW and DefaultMaxH are the per-kind ceiling used when a
	// shape has no manual override. Zero means unset.
	DefaultMaxW, DefaultMaxH float64
}

// DefaultEmbedLimits returns the limits used when none are configured.
func DefaultEmbedLimits() EmbedLimits {
	return EmbedLimits{Buffer: 0, MaxMultiplier: 3}
}

// embedCeiling resolves the effective resize ceiling of an embed.
// A zero return on either axis means that axis is unlimited.
func embedCeiling(e *Embed, lim EmbedLimits) (maxW, maxH float64) {
	measured := !e.PendingMeasurement && e.Overflow.ScrollW > 0 && e.Overflow.ScrollH > 0

	switch {
	case e.MaxW > 0 || e.MaxH > 0:
		maxW, maxH = e.MaxW, e.MaxH
	case lim.DefaultMaxW > 0 || lim.DefaultMaxH > 0:
		maxW, maxH = lim.DefaultMaxW, lim.DefaultMaxH
	case measured:
		maxW = e.Overflow.ScrollW + lim.Buffer
		maxH = e.Overflow.ScrollH + lim.Buffer
	}

	if measured && lim.MaxMultiplier > 0 {
		backstopW := e.Overflow.ScrollW * lim.MaxMultiplier
		backstopH := e.Overflow.ScrollH * lim.MaxMultiplier
		if maxW == 0 || maxW > backstopW {
			maxW = backstopW
		}
		if maxH == 0 || maxH > backstopH {
			maxH = backstopH
		}
	}
	return maxW, maxH
}

// resizeBox recomputes box geometry from a handle drag. The edges the
// handle controls move to the pointer position; the others stay put. When
// the minimum (or maximum) size clamps a left- or top-controlled edge, the
// position is adjusted too so the opposite edge stays visually anchored.
// maxW/maxH of zero mean unlimited.
func resizeBox(r Rect, h Handle, p Point, minW, minH, maxW, maxH float64) Rect {
	left, top := r.X, r.Y
	right, bottom := r.MaxX(), r.MaxY()

	if h.controlsLeft() {
		left = p.X
	}
	if h.controlsRight() {
		right = p.X
	}
	if h.controlsTop() {
		top = p.Y
	}
	if h.controlsBottom() {
		bottom = p.Y
	}

	// Dragging an edge past its opposite flips the rectangle; keep the
	// anchored edge fixed and treat the result as a degenerate box.
	if right < left {
		if h.controlsLeft() {
			left = right
		} else {
			right = left
		}
	}
	if bottom < top {
		if h.controlsTop() {
			top = bottom
		} else {
			bottom = top
		}
	}

	w := clampAxis(right-left, minW, maxW)
	hgt := clampAxis(bottom-top, minH, maxH)
	if h.controlsLeft() {
		left = right - w
	}
	if h.controlsTop() {
		top = bottom - hgt
	}
	return Rect{X: left, Y: top, W: w, H: hgt}
}

func clampAxis(v, min, max float64) float64 {
	if v < min {
		v = min
	}
	if max > 0 && v > max {
		v = max
	}
	return v
}

// ResizeEntity applies one resize step to the referenced entity.
//
// Box-shaped entities resize edge-wise with opposite-edge anchoring; embeds
// additionally respect their content ceiling. Circles recompute the radius
// as the distance from the fixed center to the pointer (not an incremental
// delta), giving resize-by-drag-to-any-point semantics. Line and arrow
// endpoint handles move their own endpoint; the midpoint handle translates
// both endpoints by delta, the whole-line drag path for entities without a
// drag body.
func (s *Scene) ResizeEntity(ref EntityRef, h Handle, world, delta Point, lim EmbedLimits) {
	switch ref.Kind {
	case KindShape:
		sh := s.FindShape(ref.ID)
		if sh == nil {
			return
		}
		switch sh.Kind {
		case ShapeCircle:
			sh.Radius = math.Max(world.Distance(sh.Center()), MinCircleRadius)
		case ShapeLine, ShapeArrow:
			switch h {
			case HandleStart:
				sh.A = world
			case HandleEnd:
				sh.B = world
			case HandleMid:
				sh.A = sh.A.Add(delta)
				sh.B = sh.B.Add(delta)
			}
		case ShapeEmbed:
			maxW, maxH := embedCeiling(sh.Embed, lim)
			r := resizeBox(sh.Rect(), h, world, MinShapeWidth, MinShapeHeight, maxW, maxH)
			sh.X, sh.Y, sh.W, sh.H = r.X, r.Y, r.W, r.H
		default:
			r := resizeBox(sh.Rect(), h, world, MinShapeWidth, MinShapeHeight, 0, 0)
			sh.X, sh.Y, sh.W, sh.H = r.X, r.Y, r.W, r.H
		}
	case KindText:
		if t := s.FindText(ref.ID); t != nil {
			r := resizeBox(t.Rect(), h, world, MinShapeWidth, MinShapeHeight, 0, 0)
			t.X, t.Y, t.W, t.H = r.X, r.Y, r.W, r.H
		}
	case KindNested:
		if n := s.FindNested(ref.ID); n != nil {
			r := resizeBox(n.Rect(), h, world, MinShapeWidth, MinShapeHeight, 0, 0)
			n.X, n.Y, n.W, n.H = r.X, r.Y, r.W, r.H
		}
	}
}
