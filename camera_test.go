package mural

import (
	"math"
	"testing"
)

const (
	testVW = 800.0
	testVH = 600.0
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func pointsClose(a, b Point) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestCameraRoundTrip(t *testing.T) {
	cameras := []Camera{
		{Zoom: 1, MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom},
		{X: 100, Y: -50, Zoom: 2, MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom},
		{X: -3.5, Y: 7.25, Zoom: 0.25, MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom},
		{X: 1e5, Y: -1e5, Zoom: 7.9, MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom},
	}
	points := []Point{
		{},
		{X: 10, Y: 20},
		{X: -123.5, Y: 456.25},
		{X: 1e4, Y: -1e4},
	}
	for _, cam := range cameras {
		for _, p := range points {
			screen := cam.WorldToScreen(p, testVW, testVH)
			back := cam.ScreenToWorld(screen, testVW, testVH)
			if !pointsClose(p, back) {
				t.Errorf("camera %+v: round trip of %v = %v", cam, p, back)
			}
		}
	}
}

func TestCameraMatrixMatchesWorldToScreen(t *testing.T) {
	cam := Camera{X: 42, Y: -17, Zoom: 1.5, MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom}
	m := cam.Matrix(testVW, testVH)
	for _, p := range []Point{{}, {X: 5, Y: 5}, {X: -300, Y: 200}, {X: 0.5, Y: -0.5}} {
		want := cam.WorldToScreen(p, testVW, testVH)
		got := m.TransformPoint(p)
		if !pointsClose(want, got) {
			t.Errorf("Matrix.TransformPoint(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestZoomAtAnchorKeepsAnchorFixed(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		anchor Point
	}{
		{"zoom in at center", 2, Point{X: testVW / 2, Y: testVH / 2}},
		{"zoom in at corner", 1.25, Point{}},
		{"zoom out at cursor", 1 / 1.1, Point{X: 613, Y: 222}},
		{"strong zoom out", 0.25, Point{X: 100, Y: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera()
			cam.X, cam.Y = 33, -44
			before := cam.ScreenToWorld(tt.anchor, testVW, testVH)
			cam.ZoomAtAnchor(tt.factor, tt.anchor, testVW, testVH)
			after := cam.ScreenToWorld(tt.anchor, testVW, testVH)
			if !pointsClose(before, after) {
				t.Errorf("anchor world point drifted: %v -> %v", before, after)
			}
		})
	}
}

func TestZoomAtAnchorClampsToLimits(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.ZoomAtAnchor(2, Point{X: 400, Y: 300}, testVW, testVH)
	}
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("Zoom = %v after repeated zoom in, want MaxZoom %v", cam.Zoom, cam.MaxZoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomAtAnchor(0.5, Point{X: 400, Y: 300}, testVW, testVH)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("Zoom = %v after repeated zoom out, want MinZoom %v", cam.Zoom, cam.MinZoom)
	}
}

func TestZoomAtAnchorRejectsDegenerateFactors(t *testing.T) {
	for _, factor := range []float64{0, math.Inf(1), math.Inf(-1), math.NaN()} {
		cam := NewCamera()
		cam.X, cam.Y = 5, 6
		before := cam
		cam.ZoomAtAnchor(factor, Point{X: 10, Y: 10}, testVW, testVH)
		if cam != before {
			t.Errorf("factor %v mutated camera: %+v", factor, cam)
		}
	}
}

func TestPanMovesByScreenDelta(t *testing.T) {
	cam := NewCamera()
	cam.Zoom = 2
	cam.Pan(Point{X: 100, Y: -60}, testVW, testVH)
	if !almostEqual(cam.X, 50) || !almostEqual(cam.Y, -30) {
		t.Errorf("after pan: (%v, %v), want (50, -30)", cam.X, cam.Y)
	}
}

func TestClampZoomRepairsDegenerateValues(t *testing.T) {
	tests := []struct {
		name string
		zoom float64
		want float64
	}{
		{"nan", math.NaN(), 1},
		{"positive inf", math.Inf(1), 1},
		{"zero", 0, 1},
		{"below min", 0.01, DefaultMinZoom},
		{"above max", 100, DefaultMaxZoom},
		{"in range", 2.5, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera()
			cam.Zoom = tt.zoom
			cam.ClampZoom()
			if cam.Zoom != tt.want {
				t.Errorf("ClampZoom from %v = %v, want %v", tt.zoom, cam.Zoom, tt.want)
			}
		})
	}
}

func TestSetBoundsRejectsMalformedRect(t *testing.T) {
	cam := NewCamera()
	bad := R(0, 0, -10, 100)
	cam.SetBounds(&bad, BoundsContain)
	if cam.Bounds != nil {
		t.Error("malformed bounds should disable constraints")
	}

	inf := R(math.Inf(1), 0, 10, 10)
	cam.SetBounds(&inf, BoundsInside)
	if cam.Bounds != nil {
		t.Error("non-finite bounds should disable constraints")
	}
}

func TestApplyConstraintsInsideMode(t *testing.T) {
	cam := NewCamera()
	b := R(-100, -100, 200, 200)
	cam.SetBounds(&b, BoundsInside)

	cam.X, cam.Y = 500, -500
	cam.ApplyConstraints(testVW, testVH)
	if cam.X != 100 || cam.Y != -100 {
		t.Errorf("inside clamp = (%v, %v), want (100, -100)", cam.X, cam.Y)
	}
}

func TestApplyConstraintsContainMode(t *testing.T) {
	cam := NewCamera()
	cam.Zoom = 1
	b := R(-1000, -1000, 2000, 2000)
	cam.SetBounds(&b, BoundsContain)

	// Pan far past the edge; the visible rect must end up inside bounds.
	cam.X, cam.Y = 5000, 5000
	cam.ApplyConstraints(testVW, testVH)
	vis := cam.VisibleRect(testVW, testVH)
	if vis.X < b.X-1e-9 || vis.MaxX() > b.MaxX()+1e-9 ||
		vis.Y < b.Y-1e-9 || vis.MaxY() > b.MaxY()+1e-9 {
		t.Errorf("visible rect %+v escapes bounds %+v", vis, b)
	}
}

func TestApplyConstraintsContainCentersWhenViewportLarger(t *testing.T) {
	cam := NewCamera()
	cam.Zoom = 1
	b := R(-50, -50, 100, 100) // smaller than the 800x600 viewport
	cam.SetBounds(&b, BoundsContain)

	cam.X, cam.Y = 300, -700
	cam.ApplyConstraints(testVW, testVH)
	vis := cam.VisibleRect(testVW, testVH)
	if !pointsClose(vis.Center(), b.Center()) {
		t.Errorf("visible center %v, want bounds center %v", vis.Center(), b.Center())
	}
}

func TestApplyConstraintsIdempotent(t *testing.T) {
	modes := []BoundsMode{BoundsContain, BoundsInside}
	for _, mode := range modes {
		cam := NewCamera()
		b := R(-200, -200, 400, 400)
		cam.SetBounds(&b, mode)
		cam.X, cam.Y = 900, -900
		cam.ApplyConstraints(testVW, testVH)
		x, y := cam.X, cam.Y
		cam.ApplyConstraints(testVW, testVH)
		if cam.X != x || cam.Y != y {
			t.Errorf("mode %v: second application moved camera (%v,%v) -> (%v,%v)",
				mode, x, y, cam.X, cam.Y)
		}
	}
}

func TestParseBoundsMode(t *testing.T) {
	tests := []struct {
		in   string
		want BoundsMode
	}{
		{"free", BoundsFree},
		{"", BoundsFree},
		{"contain", BoundsContain},
		{"inside", BoundsInside},
		{"bogus", BoundsFree},
	}
	for _, tt := range tests {
		if got := ParseBoundsMode(tt.in); got != tt.want {
			t.Errorf("ParseBoundsMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVisibleRect(t *testing.T) {
	cam := NewCamera()
	cam.Zoom = 2
	vis := cam.VisibleRect(testVW, testVH)
	if !almostEqual(vis.W, testVW/2) || !almostEqual(vis.H, testVH/2) {
		t.Errorf("visible size = %vx%v, want %vx%v", vis.W, vis.H, testVW/2, testVH/2)
	}
}
