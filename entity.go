package mural

import (
	"image/color"

	"github.com/google/uuid"
)

// Minimum extents any box-shaped entity may reach, in world units.
// Enforced by clamping at every mutation site, never assumed.
const (
	MinShapeWidth   = 10.0
	MinShapeHeight  = 10.0
	MinCircleRadius = 5.0
)

// EntityKind names the four entity collections a scene owns.
type EntityKind int

const (
	KindPath EntityKind = iota
	KindShape
	KindText
	KindNested
)

// String returns the serialized kind name.
func (k EntityKind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindShape:
		return "shape"
	case KindText:
		return "text"
	case KindNested:
		return "nested-canvas"
	default:
		return "unknown"
	}
}

// EntityRef identifies an entity by collection kind and stable ID.
// Refs stay valid across reordering and unrelated deletions, unlike the
// positional indices they replace.
type EntityRef struct {
	Kind EntityKind
	ID   string
}

// newID returns a fresh stable entity identifier.
func newID() string { return uuid.NewString() }

// ShapeKind is the tagged variant discriminator for Shape.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
	ShapeLine
	ShapeArrow
	// ShapeEmbed is a host-rendered component (an HTML element in a
	// browser host) treated by the canvas as an opaque rectangle.
	ShapeEmbed
)

// String returns the serialized shape kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	case ShapeArrow:
		return "arrow"
	case ShapeEmbed:
		return "embed"
	default:
		return "rectangle"
	}
}

// IsBox reports whether the shape kind carries {x, y, width, height}
// box geometry (as opposed to center+radius or endpoint geometry).
func (k ShapeKind) IsBox() bool {
	return k == ShapeRectangle || k == ShapeEmbed
}

// Path is a committed freehand stroke: an ordered sequence of world points.
// Points are append-only while the pen tool is drawing; once committed the
// geometry is immutable except for bulk translation during drag.
type Path struct {
	ID     string
	Points []Point
	Width  float64
	Color  color.Color
}

// NewPath starts a path at the given world point.
func NewPath(start Point) *Path {
	return &Path{ID: newID(), Points: []Point{start}, Width: 2}
}

// Append adds a point while drawing.
func (p *Path) Append(pt Point) {
	p.Points = append(p.Points, pt)
}

// Translate moves every point by the world-space delta.
func (p *Path) Translate(d Point) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(d)
	}
}

// Bounds returns the axis-aligned bounding box of the path.
func (p *Path) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	r := Rect{X: p.Points[0].X, Y: p.Points[0].Y}
	for _, pt := range p.Points[1:] {
		if pt.X < r.X {
			r.W += r.X - pt.X
			r.X = pt.X
		} else if pt.X > r.MaxX() {
			r.W = pt.X - r.X
		}
		if pt.Y < r.Y {
			r.H += r.Y - pt.Y
			r.Y = pt.Y
		} else if pt.Y > r.MaxY() {
			r.H = pt.Y - r.Y
		}
	}
	return r
}

// Overflow caches the host-measured content dimensions of an embed.
// ScrollW/ScrollH are the full content size, ClientW/ClientH the size of
// the visible viewport the host gives the content.
type Overflow struct {
	ScrollW, ScrollH float64
	ClientW, ClientH float64
}

// Embed holds the embed-kind extras of a Shape: the serializable content
// the host renders, plus measurement-driven resize-ceiling state. The host
// node itself lives with the EmbedHost; the engine only knows its ID.
type Embed struct {
	// Content is what the host renders into the node. It is the only part
	// of the node that survives serialization.
	Content string

	// PendingMeasurement is true until the host reports content
	// dimensions. While pending the content-based resize ceiling is
	// suspended ("no ceiling yet").
	PendingMeasurement bool

	// Overflow is the last measurement reported by the host.
	Overflow Overflow

	// MaxW/MaxH, when positive, are a manual per-shape resize ceiling that
	// overrides the content-based one.
	MaxW, MaxH float64
}

// Shape is a tagged variant over the drawable shape kinds.
// Box kinds use X, Y, W, H; circles use X, Y (center) and Radius;
// lines and arrows use the two endpoints A and B.
type Shape struct {
	ID   string
	Kind ShapeKind

	X, Y, W, H float64
	Radius     float64
	A, B       Point

	Stroke color.Color
	Fill   color.Color

	// Embed is set only for ShapeEmbed.
	Embed *Embed
}

// NewShape creates a shape of the given kind with a fresh ID.
func NewShape(kind ShapeKind) *Shape {
	return &Shape{ID: newID(), Kind: kind}
}

// Rect returns the box geometry of a box-kind shape.
func (s *Shape) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}
}

// SetRect writes box geometry, clamping to the minimum shape size.
func (s *Shape) SetRect(r Rect) {
	r = r.Normalize()
	s.X, s.Y = r.X, r.Y
	s.W = clampMin(r.W, MinShapeWidth)
	s.H = clampMin(r.H, MinShapeHeight)
}

// Center returns the circle center.
func (s *Shape) Center() Point { return Point{X: s.X, Y: s.Y} }

// Translate moves the shape by the world-space delta. Line and arrow
// endpoints always translate together.
func (s *Shape) Translate(d Point) {
	switch s.Kind {
	case ShapeLine, ShapeArrow:
		s.A = s.A.Add(d)
		s.B = s.B.Add(d)
	default:
		s.X += d.X
		s.Y += d.Y
	}
}

// Bounds returns the axis-aligned bounding box of the shape.
func (s *Shape) Bounds() Rect {
	switch s.Kind {
	case ShapeCircle:
		return Rect{X: s.X - s.Radius, Y: s.Y - s.Radius, W: 2 * s.Radius, H: 2 * s.Radius}
	case ShapeLine, ShapeArrow:
		return RectFromCorners(s.A, s.B)
	default:
		return s.Rect()
	}
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

// Text is a positioned text entity. Editing true suspends canvas rendering
// of the entity in favor of the host's live text-input overlay.
type Text struct {
	ID         string
	X, Y, W, H float64
	Text       string
	FontSize   float64
	FontFamily string
	Color      color.Color
	Editing    bool
}

// NewText creates a text entity at the given world point with defaults.
func NewText(at Point) *Text {
	return &Text{
		ID:       newID(),
		X:        at.X,
		Y:        at.Y,
		W:        120,
		H:        32,
		FontSize: 16,
	}
}

// Rect returns the text bounding box.
func (t *Text) Rect() Rect { return Rect{X: t.X, Y: t.Y, W: t.W, H: t.H} }

// Translate moves the text by the world-space delta.
func (t *Text) Translate(d Point) {
	t.X += d.X
	t.Y += d.Y
}

// NestedRef places a nested canvas in its parent's world space. The nested
// canvas's own content lives in a side map on the Canvas keyed by ID,
// lazily created on first open.
type NestedRef struct {
	ID         string
	X, Y, W, H float64
}

// NewNestedRef creates a nested-canvas reference covering the given rect.
func NewNestedRef(r Rect) *NestedRef {
	r = r.Normalize()
	return &NestedRef{
		ID: newID(),
		X:  r.X,
		Y:  r.Y,
		W:  clampMin(r.W, MinShapeWidth),
		H:  clampMin(r.H, MinShapeHeight),
	}
}

// Rect returns the reference's rectangle in parent world space.
func (n *NestedRef) Rect() Rect { return Rect{X: n.X, Y: n.Y, W: n.W, H: n.H} }

// SetRect writes the rectangle, clamping to the minimum shape size.
func (n *NestedRef) SetRect(r Rect) {
	r = r.Normalize()
	n.X, n.Y = r.X, r.Y
	n.W = clampMin(r.W, MinShapeWidth)
	n.H = clampMin(r.H, MinShapeHeight)
}

// Translate moves the reference by the world-space delta.
func (n *NestedRef) Translate(d Point) {
	n.X += d.X
	n.Y += d.Y
}
