package mural

import (
	"log/slog"
	"math"
)

// Default zoom limits, in world-units-to-pixels scale factors.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 8.0
)

// BoundsMode selects how rectangular camera constraints are enforced.
type BoundsMode int

const (
	// BoundsFree disables camera constraints.
	BoundsFree BoundsMode = iota
	// BoundsContain forces the full visible viewport rectangle to stay
	// inside the configured bounds.
	BoundsContain
	// BoundsInside only forces the camera's own offset point to stay
	// inside the configured bounds.
	BoundsInside
)

// String returns the mode name as used in configuration files.
func (m BoundsMode) String() string {
	switch m {
	case BoundsContain:
		return "contain"
	case BoundsInside:
		return "inside"
	default:
		return "free"
	}
}

// ParseBoundsMode parses a configuration-file mode name.
// Unknown names fall back to BoundsFree.
func ParseBoundsMode(s string) BoundsMode {
	switch s {
	case "contain":
		return BoundsContain
	case "inside":
		return BoundsInside
	case "free", "":
		return BoundsFree
	default:
		Logger().Warn("unknown bounds mode, using free", slog.String("mode", s))
		return BoundsFree
	}
}

// Camera maps between the infinite world plane and viewport pixels.
// (X, Y) is the world-space camera offset and Zoom the world-to-pixel scale.
//
// The mapping, with (vw, vh) the viewport size in pixels:
//
//	screenX = vw/2 + (worldX + X) * Zoom
//	screenY = vh/2 + (worldY + Y) * Zoom
//
// WorldToScreen and ScreenToWorld are exact inverses of each other and are
// the single source of truth for the mapping: canvas painting, overlay node
// positioning, and hit-testing all go through them (or through Matrix, which
// encodes the identical formula). The Zoom invariant MinZoom <= Zoom <=
// MaxZoom is enforced at every mutation site, never assumed.
type Camera struct {
	X, Y    float64
	Zoom    float64
	MinZoom float64
	MaxZoom float64

	// Optional rectangular movement constraint, applied after every
	// mutation. A nil Bounds or BoundsFree mode disables it.
	Bounds *Rect
	Mode   BoundsMode
}

// NewCamera returns a camera at the origin with zoom 1 and default limits.
func NewCamera() Camera {
	return Camera{Zoom: 1, MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom}
}

// WorldToScreen converts a world-space point to viewport pixel coordinates.
func (c Camera) WorldToScreen(p Point, vw, vh float64) Point {
	return Point{
		X: vw/2 + (p.X+c.X)*c.Zoom,
		Y: vh/2 + (p.Y+c.Y)*c.Zoom,
	}
}

// ScreenToWorld converts viewport pixel coordinates to a world-space point.
// It is the exact inverse of WorldToScreen.
func (c Camera) ScreenToWorld(p Point, vw, vh float64) Point {
	return Point{
		X: (p.X-vw/2)/c.Zoom - c.X,
		Y: (p.Y-vh/2)/c.Zoom - c.Y,
	}
}

// Matrix returns the camera transform as an affine matrix: a world-space
// point multiplied by the matrix lands on the same pixel WorldToScreen
// produces. Overlay hosts and painters use this to position content without
// re-deriving the formula.
func (c Camera) Matrix(vw, vh float64) Matrix {
	return Translate(vw/2+c.X*c.Zoom, vh/2+c.Y*c.Zoom).Multiply(Scale(c.Zoom, c.Zoom))
}

// VisibleRect returns the world-space rectangle currently on screen.
func (c Camera) VisibleRect(vw, vh float64) Rect {
	tl := c.ScreenToWorld(Point{}, vw, vh)
	br := c.ScreenToWorld(Point{X: vw, Y: vh}, vw, vh)
	return RectFromCorners(tl, br)
}

// ZoomAtAnchor multiplies the zoom by factor while keeping the world point
// under the given viewport anchor visually fixed. The new zoom is clamped to
// [MinZoom, MaxZoom]. A factor producing a non-finite or zero zoom is
// rejected and the camera left unchanged. Constraints are re-applied after
// the adjustment.
func (c *Camera) ZoomAtAnchor(factor float64, anchor Point, vw, vh float64) {
	next := c.Zoom * factor
	if next == 0 || math.IsInf(next, 0) || math.IsNaN(next) {
		Logger().Warn("rejected zoom factor", slog.Float64("factor", factor))
		return
	}
	next = clamp(next, c.MinZoom, c.MaxZoom)

	before := c.ScreenToWorld(anchor, vw, vh)
	c.Zoom = next
	after := c.ScreenToWorld(anchor, vw, vh)

	// Shift the offset by the world-space drift of the anchor so it maps
	// back onto the same pixel.
	c.X += after.X - before.X
	c.Y += after.Y - before.Y
	c.ApplyConstraints(vw, vh)
}

// Pan moves the camera by a screen-space pixel delta, converted to world
// units at the current zoom. Constraints are re-applied afterwards.
func (c *Camera) Pan(delta Point, vw, vh float64) {
	c.X += delta.X / c.Zoom
	c.Y += delta.Y / c.Zoom
	c.ApplyConstraints(vw, vh)
}

// Recenter resets the camera offset to the origin at the current zoom.
func (c *Camera) Recenter(vw, vh float64) {
	c.X = 0
	c.Y = 0
	c.ApplyConstraints(vw, vh)
}

// ClampZoom forces the zoom back into [MinZoom, MaxZoom]. Mutation sites
// call it after any direct zoom write (for example snapshot import).
func (c *Camera) ClampZoom() {
	if math.IsNaN(c.Zoom) || math.IsInf(c.Zoom, 0) || c.Zoom == 0 {
		c.Zoom = 1
	}
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

// SetBounds installs a rectangular movement constraint. A malformed
// rectangle (non-finite or negative extents) disables constraints with a
// warning rather than failing.
func (c *Camera) SetBounds(bounds *Rect, mode BoundsMode) {
	if bounds != nil {
		bad := bounds.W < 0 || bounds.H < 0 ||
			!Pt(bounds.X, bounds.Y).IsFinite() || !Pt(bounds.W, bounds.H).IsFinite()
		if bad {
			Logger().Warn("malformed camera bounds, constraints disabled",
				slog.Float64("w", bounds.W), slog.Float64("h", bounds.H))
			bounds = nil
		}
	}
	c.Bounds = bounds
	c.Mode = mode
}

// ApplyConstraints clamps the camera offset according to the configured
// bounds and mode. It is idempotent and runs after every pan and zoom; a
// missing bounds rectangle or BoundsFree mode makes it a no-op.
func (c *Camera) ApplyConstraints(vw, vh float64) {
	if c.Bounds == nil || c.Mode == BoundsFree {
		return
	}
	b := c.Bounds.Normalize()
	switch c.Mode {
	case BoundsInside:
		c.X = clamp(c.X, b.X, b.MaxX())
		c.Y = clamp(c.Y, b.Y, b.MaxY())
	case BoundsContain:
		// The visible world rectangle moves opposite to the offset:
		// growing X shifts the view towards smaller world coordinates.
		vis := c.VisibleRect(vw, vh)
		c.X += containShift(vis.X, vis.MaxX(), b.X, b.MaxX())
		c.Y += containShift(vis.Y, vis.MaxY(), b.Y, b.MaxY())
	}
}

// containShift returns the world-space correction that moves the visible
// interval [lo, hi] inside [bLo, bHi]. When the visible interval is larger
// than the bounds it is centered instead.
func containShift(lo, hi, bLo, bHi float64) float64 {
	if hi-lo > bHi-bLo {
		return (lo+hi)/2 - (bLo+bHi)/2
	}
	if lo < bLo {
		return lo - bLo
	}
	if hi > bHi {
		return hi - bHi
	}
	return 0
}
