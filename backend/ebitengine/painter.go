package ebitengine

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/muralkit/mural"
)

// Painter implements mural.Painter on top of Ebitengine's vector and text
// packages. All coordinates it receives are screen-space pixels; the redraw
// pipeline has already applied the camera transform.
//
// A Painter has no target until SetTarget is called. Draw calls against a
// nil target are dropped silently, which keeps the canvas usable in
// headless ticks before the first frame.
type Painter struct {
	dst       *ebiten.Image
	source    *text.GoTextFaceSource
	antialias bool
}

// NewPainter builds a painter with the bundled Go Regular face as the
// fallback font. Antialiasing is on; pass false to disable it for
// pixel-exact tests.
func NewPainter(antialias bool) (*Painter, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitengine: parse fallback font: %w", err)
	}
	return &Painter{source: source, antialias: antialias}, nil
}

// SetTarget points the painter at the image subsequent draw calls render
// into. Hosts call this at the top of every Draw with the screen image.
func (p *Painter) SetTarget(dst *ebiten.Image) { p.dst = dst }

// Clear fills the whole target with the background color.
func (p *Painter) Clear(bg color.Color) {
	if p.dst == nil {
		return
	}
	p.dst.Fill(bg)
}

// Line strokes a single segment.
func (p *Painter) Line(a, b mural.Point, width float64, col color.Color) {
	if p.dst == nil {
		return
	}
	vector.StrokeLine(p.dst,
		float32(a.X), float32(a.Y),
		float32(b.X), float32(b.Y),
		float32(width), col, p.antialias)
}

// FillRect fills an axis-aligned rectangle.
func (p *Painter) FillRect(r mural.Rect, col color.Color) {
	if p.dst == nil {
		return
	}
	vector.DrawFilledRect(p.dst,
		float32(r.X), float32(r.Y),
		float32(r.W), float32(r.H), col, p.antialias)
}

// StrokeRect outlines an axis-aligned rectangle.
func (p *Painter) StrokeRect(r mural.Rect, width float64, col color.Color) {
	if p.dst == nil {
		return
	}
	vector.StrokeRect(p.dst,
		float32(r.X), float32(r.Y),
		float32(r.W), float32(r.H),
		float32(width), col, p.antialias)
}

// FillCircle fills a circle.
func (p *Painter) FillCircle(center mural.Point, radius float64, col color.Color) {
	if p.dst == nil {
		return
	}
	vector.DrawFilledCircle(p.dst,
		float32(center.X), float32(center.Y),
		float32(radius), col, p.antialias)
}

// StrokeCircle outlines a circle.
func (p *Painter) StrokeCircle(center mural.Point, radius, width float64, col color.Color) {
	if p.dst == nil {
		return
	}
	vector.StrokeCircle(p.dst,
		float32(center.X), float32(center.Y),
		float32(radius), float32(width), col, p.antialias)
}

// Polyline strokes consecutive segments through pts. Fewer than two points
// draws nothing.
func (p *Painter) Polyline(pts []mural.Point, width float64, col color.Color) {
	if p.dst == nil || len(pts) < 2 {
		return
	}
	for i := 1; i < len(pts); i++ {
		p.Line(pts[i-1], pts[i], width, col)
	}
}

// Text draws s with its top-left corner at pos. The family parameter is
// accepted for interface compatibility; this backend ships a single face
// and renders every family with it.
func (p *Painter) Text(pos mural.Point, s string, sizePx float64, family string, col color.Color) {
	if p.dst == nil || s == "" || sizePx <= 0 {
		return
	}
	face := &text.GoTextFace{
		Source: p.source,
		Size:   sizePx,
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(toColor(col))
	text.Draw(p.dst, s, face, op)
}

func toColor(c color.Color) color.Color {
	if c == nil {
		return color.White
	}
	return c
}

var _ mural.Painter = (*Painter)(nil)
