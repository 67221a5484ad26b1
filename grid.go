package mural

import (
	"image/color"
	"math"
)

// GridStyle configures the background grid. The grid is zoom-responsive:
// line spacing and opacity follow the camera zoom, and any line tier whose
// on-screen spacing falls below VisibilityPx is skipped entirely rather
// than painted at invisible density.
type GridStyle struct {
	// Spacing between minor lines, in world units.
	Spacing float64
	// MajorEvery makes every n-th line a major line.
	MajorEvery int
	// VisibilityPx is the on-screen spacing below which a line tier is
	// skipped.
	VisibilityPx float64
	// Color is the line color at full opacity; the computed per-tier
	// alpha scales it.
	Color color.RGBA
	// Background fills the canvas before the grid.
	Background color.RGBA
}

// DefaultGridStyle returns the stock light grid.
func DefaultGridStyle() GridStyle {
	return GridStyle{
		Spacing:      50,
		MajorEvery:   5,
		VisibilityPx: 12,
		Color:        color.RGBA{R: 0x50, G: 0x58, B: 0x60, A: 0xff},
		Background:   color.RGBA{R: 0xfa, G: 0xfa, B: 0xf8, A: 0xff},
	}
}

// GridLine is one computed grid line in screen space.
type GridLine struct {
	Vertical bool
	// Pos is the screen X of a vertical line or screen Y of a horizontal.
	Pos float64
	// Alpha in [0, 1]; major lines are more opaque than minor ones.
	Alpha float64
}

// gridAlpha fades a tier in as its pixel spacing grows past the
// visibility threshold, saturating at twice the threshold.
func gridAlpha(spacingPx, visibilityPx, max float64) float64 {
	if spacingPx < visibilityPx {
		return 0
	}
	return max * clamp(spacingPx/(2*visibilityPx), 0.25, 1)
}

// Lines computes the visible grid lines for a camera and viewport. Tiers
// below the visibility threshold produce no lines at all.
func (g GridStyle) Lines(cam Camera, vw, vh float64) []GridLine {
	if g.Spacing <= 0 {
		return nil
	}
	minorPx := g.Spacing * cam.Zoom
	major := g.Spacing * float64(maxInt(g.MajorEvery, 1))
	majorPx := major * cam.Zoom

	minorAlpha := gridAlpha(minorPx, g.VisibilityPx, 0.35)
	majorAlpha := gridAlpha(majorPx, g.VisibilityPx, 0.7)
	if minorAlpha == 0 && majorAlpha == 0 {
		return nil
	}

	vis := cam.VisibleRect(vw, vh)
	var out []GridLine
	appendTier := func(spacing, alpha float64, skipMajor bool) {
		if alpha == 0 {
			return
		}
		for x := math.Floor(vis.X/spacing) * spacing; x <= vis.MaxX(); x += spacing {
			if skipMajor && isMultiple(x, major) {
				continue
			}
			sp := cam.WorldToScreen(Pt(x, 0), vw, vh)
			out = append(out, GridLine{Vertical: true, Pos: sp.X, Alpha: alpha})
		}
		for y := math.Floor(vis.Y/spacing) * spacing; y <= vis.MaxY(); y += spacing {
			if skipMajor && isMultiple(y, major) {
				continue
			}
			sp := cam.WorldToScreen(Pt(0, y), vw, vh)
			out = append(out, GridLine{Vertical: false, Pos: sp.Y, Alpha: alpha})
		}
	}
	appendTier(major, majorAlpha, false)
	appendTier(g.Spacing, minorAlpha, true)
	return out
}

func isMultiple(v, step float64) bool {
	if step == 0 {
		return false
	}
	m := math.Mod(math.Abs(v), step)
	return m < 1e-9 || step-m < 1e-9
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// scaleAlpha returns the grid color with its alpha scaled by a.
func scaleAlpha(c color.RGBA, a float64) color.RGBA {
	c.A = uint8(float64(c.A) * a)
	return c
}
