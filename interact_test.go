package mural

import "testing"

// newTestCanvas builds an 800x600 canvas whose camera sits at the origin with
// zoom 1, so screen (400, 300) is world (0, 0).
func newTestCanvas() *Canvas {
	return New(testVW, testVH)
}

// toScreenPt converts a world point through the active camera, letting tests
// speak world coordinates while driving the screen-space pointer API.
func toScreenPt(c *Canvas, world Point) Point {
	vw, vh := c.Viewport()
	return c.ActiveScene().Camera.WorldToScreen(world, vw, vh)
}

func TestPointerDownOnHitSelectsAndDrags(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()
	ref := s.Insert(boxAt(0, 0, 50, 50))

	c.PointerDown(toScreenPt(c, Pt(25, 25)), ButtonLeft)
	if c.InteractionState() != StateDragging {
		t.Fatalf("state = %v, want dragging", c.InteractionState())
	}
	if !s.IsSelected(ref) {
		t.Error("hit entity not selected")
	}

	c.PointerMove(toScreenPt(c, Pt(35, 45)))
	c.PointerUp(toScreenPt(c, Pt(35, 45)))

	sh := s.FindShape(ref.ID)
	if !almostEqual(sh.X, 10) || !almostEqual(sh.Y, 20) {
		t.Errorf("drag moved shape to (%v, %v), want (10, 20)", sh.X, sh.Y)
	}
	if c.InteractionState() != StateIdle {
		t.Errorf("state after up = %v", c.InteractionState())
	}
}

func TestPointerDownEmptySpacePans(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()
	c.SetTool(ToolNone)

	c.PointerDown(Pt(100, 100), ButtonLeft)
	if c.InteractionState() != StatePanning {
		t.Fatalf("state = %v, want panning", c.InteractionState())
	}
	c.PointerMove(Pt(150, 130))
	c.PointerUp(Pt(150, 130))

	if !almostEqual(s.Camera.X, 50) || !almostEqual(s.Camera.Y, 30) {
		t.Errorf("camera at (%v, %v), want (50, 30)", s.Camera.X, s.Camera.Y)
	}
}

func TestMiddleButtonAlwaysPans(t *testing.T) {
	c := newTestCanvas()
	c.SetTool(ToolSelect)
	c.ActiveScene().Insert(boxAt(-25, -25, 50, 50))

	c.PointerDown(toScreenPt(c, Pt(0, 0)), ButtonMiddle)
	if c.InteractionState() != StatePanning {
		t.Errorf("state = %v, want panning", c.InteractionState())
	}
	c.PointerUp(Pt(400, 300))
}

func TestBoxSelectCommitsIntersectingEntities(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()
	a := s.Insert(boxAt(10, 10, 20, 20))
	b := s.Insert(boxAt(150, 150, 20, 20))
	s.Insert(boxAt(400, 400, 20, 20)) // outside the marquee

	c.SetTool(ToolSelect)
	c.PointerDown(toScreenPt(c, Pt(0, 0)), ButtonLeft)
	if c.InteractionState() != StateBoxSelecting {
		t.Fatalf("state = %v, want box-selecting", c.InteractionState())
	}
	c.PointerMove(toScreenPt(c, Pt(200, 200)))
	if len(s.Preview) != 2 {
		t.Errorf("preview = %v, want 2 entries", s.Preview)
	}
	c.PointerUp(toScreenPt(c, Pt(200, 200)))

	if len(s.Selection) != 2 || !s.IsSelected(a) || !s.IsSelected(b) {
		t.Errorf("committed selection = %v, want [%v %v]", s.Selection, a, b)
	}
	if s.Preview != nil {
		t.Errorf("preview not cleared: %v", s.Preview)
	}

	// The trailing synthetic click must not wipe the fresh selection.
	c.Click(toScreenPt(c, Pt(200, 200)))
	if len(s.Selection) != 2 {
		t.Error("synthetic click after box-select cleared the selection")
	}

	// A later real click on empty space does clear it.
	c.Click(toScreenPt(c, Pt(500, 500)))
	if len(s.Selection) != 0 {
		t.Error("empty-space click left selection in place")
	}
}

func TestResizeGestureArmsClickGuard(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()
	ref := s.Insert(boxAt(0, 0, 50, 50))
	s.Select(ref)

	c.SetTool(ToolSelect)
	c.PointerDown(toScreenPt(c, Pt(50, 50)), ButtonLeft) // SE handle
	if c.InteractionState() != StateResizing {
		t.Fatalf("state = %v, want resizing", c.InteractionState())
	}
	c.PointerMove(toScreenPt(c, Pt(80, 90)))
	c.PointerUp(toScreenPt(c, Pt(80, 90)))

	sh := s.FindShape(ref.ID)
	if !almostEqual(sh.W, 80) || !almostEqual(sh.H, 90) {
		t.Errorf("resized to %vx%v, want 80x90", sh.W, sh.H)
	}

	c.Click(toScreenPt(c, Pt(80, 90)))
	if !s.IsSelected(ref) {
		t.Error("click after resize cleared the selection")
	}
}

func TestDrawRectangleCommitsAndSwitchesToSelect(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()

	c.SetTool(ToolRectangle)
	c.PointerDown(toScreenPt(c, Pt(10, 10)), ButtonLeft)
	c.PointerMove(toScreenPt(c, Pt(90, 60)))
	c.PointerUp(toScreenPt(c, Pt(90, 60)))

	if len(s.Shapes) != 1 {
		t.Fatalf("shape count = %d", len(s.Shapes))
	}
	sh := s.Shapes[0]
	if sh.Rect() != R(10, 10, 80, 50) {
		t.Errorf("committed rect = %+v", sh.Rect())
	}
	if c.ActiveTool() != ToolSelect {
		t.Errorf("tool after commit = %v, want select", c.ActiveTool())
	}
}

func TestDrawTinyShapeClampsToMinimum(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()

	c.SetTool(ToolRectangle)
	c.PointerDown(toScreenPt(c, Pt(0, 0)), ButtonLeft)
	c.PointerMove(toScreenPt(c, Pt(2, 2)))
	c.PointerUp(toScreenPt(c, Pt(2, 2)))

	sh := s.Shapes[0]
	if sh.W != MinShapeWidth || sh.H != MinShapeHeight {
		t.Errorf("tiny drag committed %vx%v, want minimums", sh.W, sh.H)
	}
}

func TestPenKeepsDrawingAndClearsSelection(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()
	prior := s.Insert(boxAt(200, 200, 20, 20))
	s.Select(prior)

	c.SetTool(ToolPen)
	c.PointerDown(toScreenPt(c, Pt(0, 0)), ButtonLeft)
	c.PointerMove(toScreenPt(c, Pt(10, 5)))
	c.PointerMove(toScreenPt(c, Pt(20, 15)))
	c.PointerUp(toScreenPt(c, Pt(20, 15)))

	if len(s.Paths) != 1 {
		t.Fatalf("path count = %d", len(s.Paths))
	}
	if c.ActiveTool() != ToolPen {
		t.Errorf("tool = %v, pen should stay active", c.ActiveTool())
	}
	if len(s.Selection) != 0 {
		t.Error("pen commit left selection in place")
	}
}

func TestPenClickWithoutDragCommitsNothing(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()

	c.SetTool(ToolPen)
	at := toScreenPt(c, Pt(5, 5))
	c.PointerDown(at, ButtonLeft)
	c.PointerUp(at)

	if len(s.Paths) != 0 {
		t.Errorf("single-point pen stroke committed: %v", s.Paths)
	}
}

func TestDoubleClickOpensTextEditing(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()
	ref := s.Insert(NewText(Pt(0, 0)))

	c.DoubleClick(toScreenPt(c, Pt(10, 10)))
	txt := s.FindText(ref.ID)
	if !txt.Editing {
		t.Fatal("double click did not start text editing")
	}

	c.FinishTextEdit(ref.ID, "hello")
	if txt.Editing || txt.Text != "hello" {
		t.Errorf("after finish: editing=%v text=%q", txt.Editing, txt.Text)
	}
}

func TestDoubleClickOpensNestedCanvas(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()
	ref := s.Insert(NewNestedRef(R(0, 0, 100, 100)))

	c.DoubleClick(toScreenPt(c, Pt(50, 50)))
	if c.ActiveScene() == s {
		t.Fatal("double click did not switch scenes")
	}
	nested, err := c.Scene(ref.ID)
	if err != nil {
		t.Fatalf("nested scene missing: %v", err)
	}
	if c.ActiveScene() != nested {
		t.Error("active scene is not the nested one")
	}

	c.CloseNested()
	if c.ActiveScene() != s {
		t.Error("close did not return to the parent scene")
	}
}

func TestHoverTracking(t *testing.T) {
	c := newTestCanvas()
	s := c.ActiveScene()
	ref := s.Insert(boxAt(0, 0, 50, 50))

	c.PointerMove(toScreenPt(c, Pt(25, 25)))
	if s.Hovered != ref {
		t.Errorf("hovered = %v, want %v", s.Hovered, ref)
	}
	c.PointerMove(toScreenPt(c, Pt(500, 500)))
	if s.Hovered != (EntityRef{}) {
		t.Errorf("hover not cleared: %v", s.Hovered)
	}
}

func TestPointerDownIgnoredWhileGestureActive(t *testing.T) {
	c := newTestCanvas()
	c.SetTool(ToolNone)
	c.PointerDown(Pt(10, 10), ButtonLeft) // starts panning
	c.PointerDown(Pt(20, 20), ButtonMiddle)
	if c.InteractionState() != StatePanning {
		t.Errorf("second pointer-down changed state to %v", c.InteractionState())
	}
	c.PointerUp(Pt(20, 20))
}

func TestSetToolRejectsUnknownNames(t *testing.T) {
	c := newTestCanvas()
	c.SetTool(ToolPen)
	c.SetTool(Tool("laser"))
	if c.ActiveTool() != ToolPen {
		t.Errorf("unknown tool replaced active tool: %v", c.ActiveTool())
	}
}
