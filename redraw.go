package mural

import "image/color"

// Painter is the drawing surface abstraction the redraw pipeline paints
// through. All coordinates are screen pixels: the pipeline converts world
// geometry through the active camera before calling, so the painter never
// sees the camera. The ebiten backend is the shipped implementation;
// recorders in tests are another.
type Painter interface {
	Clear(bg color.Color)
	Line(a, b Point, width float64, col color.Color)
	FillRect(r Rect, col color.Color)
	StrokeRect(r Rect, width float64, col color.Color)
	FillCircle(center Point, radius float64, col color.Color)
	StrokeCircle(center Point, radius, width float64, col color.Color)
	Polyline(pts []Point, width float64, col color.Color)
	Text(pos Point, s string, sizePx float64, family string, col color.Color)
}

// Decoration palette.
var (
	defaultStroke  = color.RGBA{R: 0x20, G: 0x24, B: 0x28, A: 0xff}
	selectionBlue  = color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	previewBlue    = color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0x66}
	hoverGray      = color.RGBA{R: 0x90, G: 0x98, B: 0xa0, A: 0xaa}
	handleFill     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	boxSelectFill  = color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0x22}
	nestedFill     = color.RGBA{R: 0xe8, G: 0xee, B: 0xf6, A: 0xff}
	defaultTextCol = color.RGBA{R: 0x20, G: 0x24, B: 0x28, A: 0xff}
)

const handleSizePx = 8.0

// RequestRedraw schedules a repaint of the active scene. Requests issued
// while a pass is running coalesce into at most one deferred pass replayed
// on the next frame; everything else runs synchronously.
func (c *Canvas) RequestRedraw() {
	c.sched.run(c.redrawPass)
}

// Redraw is RequestRedraw under the name integrators expect.
func (c *Canvas) Redraw() { c.RequestRedraw() }

// redrawPass is one full paint of the active scene: clear, grid, entities
// in paint order (paths, shapes, texts, nested placeholders), the
// in-progress tool preview, then selection decorations, and finally
// overlay-node synchronization for the active scene. Hooks bracket the
// pass; a hook calling Redraw defers, it cannot recurse into painting.
func (c *Canvas) redrawPass() {
	c.fireBeforeRedraw()

	s := c.ActiveScene()
	if c.painter != nil {
		c.paint(s)
	}
	c.overlay.sync(s, c.vw, c.vh, func(id string) bool {
		return c.findEmbedShape(id) != nil
	})

	c.fireAfterRedraw()
}

func (c *Canvas) paint(s *Scene) {
	p := c.painter
	cam := s.Camera

	p.Clear(c.grid.Background)
	for _, ln := range c.grid.Lines(cam, c.vw, c.vh) {
		col := scaleAlpha(c.grid.Color, ln.Alpha)
		if ln.Vertical {
			p.Line(Pt(ln.Pos, 0), Pt(ln.Pos, c.vh), 1, col)
		} else {
			p.Line(Pt(0, ln.Pos), Pt(c.vw, ln.Pos), 1, col)
		}
	}

	for _, path := range s.Paths {
		c.paintPath(path)
	}
	for _, sh := range s.Shapes {
		c.paintShape(sh)
	}
	for _, t := range s.Texts {
		c.paintText(t)
	}
	for _, n := range s.Nested {
		c.paintNested(n)
	}

	c.paintToolPreview(s)
	c.paintDecorations(s)
}

func (c *Canvas) toScreen(pt Point) Point {
	return c.ActiveScene().Camera.WorldToScreen(pt, c.vw, c.vh)
}

func (c *Canvas) rectToScreen(r Rect) Rect {
	r = r.Normalize()
	tl := c.toScreen(Pt(r.X, r.Y))
	br := c.toScreen(Pt(r.MaxX(), r.MaxY()))
	return RectFromCorners(tl, br)
}

func (c *Canvas) paintPath(path *Path) {
	pts := make([]Point, len(path.Points))
	for i, pt := range path.Points {
		pts[i] = c.toScreen(pt)
	}
	col := path.Color
	if col == nil {
		col = defaultStroke
	}
	c.painter.Polyline(pts, path.Width, col)
}

func (c *Canvas) paintShape(sh *Shape) {
	p := c.painter
	zoom := c.ActiveScene().Camera.Zoom
	stroke := sh.Stroke
	if stroke == nil {
		stroke = defaultStroke
	}
	switch sh.Kind {
	case ShapeRectangle:
		r := c.rectToScreen(sh.Rect())
		if sh.Fill != nil {
			p.FillRect(r, sh.Fill)
		}
		p.StrokeRect(r, 2, stroke)
	case ShapeCircle:
		center := c.toScreen(sh.Center())
		if sh.Fill != nil {
			p.FillCircle(center, sh.Radius*zoom, sh.Fill)
		}
		p.StrokeCircle(center, sh.Radius*zoom, 2, stroke)
	case ShapeLine:
		p.Line(c.toScreen(sh.A), c.toScreen(sh.B), 2, stroke)
	case ShapeArrow:
		a, b := c.toScreen(sh.A), c.toScreen(sh.B)
		p.Line(a, b, 2, stroke)
		for _, wing := range arrowHead(a, b, 12) {
			p.Line(b, wing, 2, stroke)
		}
	case ShapeEmbed:
		// No canvas paint: the overlay host renders the content and the
		// sync step positions it with the same camera transform.
	}
}

// arrowHead returns the two wing endpoints of an arrow head at b.
func arrowHead(a, b Point, size float64) [2]Point {
	dir := b.Sub(a)
	length := dir.Length()
	if length == 0 {
		return [2]Point{b, b}
	}
	dir = dir.Div(length)
	base := b.Sub(dir.Mul(size))
	normal := Pt(-dir.Y, dir.X).Mul(size * 0.5)
	return [2]Point{base.Add(normal), base.Sub(normal)}
}

func (c *Canvas) paintText(t *Text) {
	if t.Editing {
		// The host's input overlay renders the live text.
		return
	}
	col := t.Color
	if col == nil {
		col = defaultTextCol
	}
	zoom := c.ActiveScene().Camera.Zoom
	pos := c.toScreen(Pt(t.X, t.Y))
	c.painter.Text(pos, t.Text, t.FontSize*zoom, t.FontFamily, col)
}

func (c *Canvas) paintNested(n *NestedRef) {
	r := c.rectToScreen(n.Rect())
	c.painter.FillRect(r, nestedFill)
	c.painter.StrokeRect(r, 2, defaultStroke)
}

func (c *Canvas) paintToolPreview(s *Scene) {
	switch c.inter.state {
	case StateBoxSelecting:
		r := c.rectToScreen(RectFromCorners(c.inter.anchorWorld, c.inter.lastWorld))
		c.painter.FillRect(r, boxSelectFill)
		c.painter.StrokeRect(r, 1, selectionBlue)
	case StateDrawing:
		if c.inter.drawPath != nil {
			c.paintPath(c.inter.drawPath)
		}
		if c.inter.drawShape != nil {
			c.paintShape(c.inter.drawShape)
		}
		if c.tool == ToolNested {
			r := c.rectToScreen(RectFromCorners(c.inter.anchorWorld, c.inter.lastWorld))
			c.painter.StrokeRect(r, 1, selectionBlue)
		}
	}
}

// paintDecorations draws hover, preview-selection and selection overlays.
// Resize handles appear only for a sole selection, and are suppressed for
// an embed in edit mode.
func (c *Canvas) paintDecorations(s *Scene) {
	if s.Hovered != (EntityRef{}) && !s.IsSelected(s.Hovered) {
		if b, ok := c.entityBounds(s, s.Hovered); ok {
			c.painter.StrokeRect(c.rectToScreen(b), 1, hoverGray)
		}
	}
	for _, ref := range s.Preview {
		if b, ok := c.entityBounds(s, ref); ok {
			c.painter.StrokeRect(c.rectToScreen(b), 1, previewBlue)
		}
	}
	for _, ref := range s.Selection {
		if b, ok := c.entityBounds(s, ref); ok {
			c.painter.StrokeRect(c.rectToScreen(b), 2, selectionBlue)
		}
	}
	sole, ok := s.SoleSelection()
	if !ok {
		return
	}
	if sole.Kind == KindShape {
		if sh := s.FindShape(sole.ID); sh != nil && sh.Kind == ShapeEmbed && c.overlay.editing == sh.ID {
			return
		}
	}
	for _, hp := range s.Handles(sole) {
		at := c.toScreen(hp.At)
		r := R(at.X-handleSizePx/2, at.Y-handleSizePx/2, handleSizePx, handleSizePx)
		c.painter.FillRect(r, handleFill)
		c.painter.StrokeRect(r, 1, selectionBlue)
	}
}

func (c *Canvas) entityBounds(s *Scene, ref EntityRef) (Rect, bool) {
	switch ref.Kind {
	case KindPath:
		if p := s.FindPath(ref.ID); p != nil {
			return p.Bounds(), true
		}
	case KindShape:
		if sh := s.FindShape(ref.ID); sh != nil {
			return sh.Bounds(), true
		}
	case KindText:
		if t := s.FindText(ref.ID); t != nil {
			return t.Rect(), true
		}
	case KindNested:
		if n := s.FindNested(ref.ID); n != nil {
			return n.Rect(), true
		}
	}
	return Rect{}, false
}
