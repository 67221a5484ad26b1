package mural

import "log/slog"

// State names the interaction mode of the engine. The modes are strictly
// mutually exclusive; pointer-down picks exactly one and pointer-up always
// returns to StateIdle.
type State int

const (
	StateIdle State = iota
	StatePanning
	StateBoxSelecting
	StateDragging
	StateResizing
	StateDrawing
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StatePanning:
		return "panning"
	case StateBoxSelecting:
		return "box-selecting"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	case StateDrawing:
		return "drawing"
	default:
		return "idle"
	}
}

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// interaction is the transient pointer-gesture state. It is reset wholesale
// on context switches; the zero value is StateIdle.
type interaction struct {
	state State

	lastScreen  Point
	lastWorld   Point
	anchorWorld Point

	// Resizing
	handle Handle
	target EntityRef

	// Drawing previews. Exactly one is in use depending on the tool.
	drawPath  *Path
	drawShape *Shape
}

// InteractionState returns the current state machine mode.
func (c *Canvas) InteractionState() State { return c.inter.state }

func (c *Canvas) setState(s State) {
	if c.inter.state != s {
		Logger().Debug("interaction state",
			slog.String("from", c.inter.state.String()), slog.String("to", s.String()))
	}
	c.inter.state = s
}

// PointerDown feeds a pointer-press into the state machine. The decision
// order is fixed: middle-button pans; with no tool active a hit starts a
// drag (selecting first when needed), a sole-selection handle starts a
// resize, and empty space deselects and pans; with the select tool the
// handle check runs before the hit test and empty space starts a
// box-select; drawing tools start shape creation at the anchor.
func (c *Canvas) PointerDown(screen Point, btn Button) {
	if c.inter.state != StateIdle {
		return
	}
	s := c.ActiveScene()
	world := c.screenToWorld(screen)
	c.inter.lastScreen = screen
	c.inter.lastWorld = world
	c.inter.anchorWorld = world

	// An editing embed owns pointer events inside its own rectangle; a
	// press anywhere else exits edit mode and is then handled normally.
	if id := c.overlay.editing; id != "" {
		if sh := s.FindShape(id); sh != nil && sh.Rect().Contains(world) {
			return
		}
		c.ExitEmbedEdit()
	}

	if btn == ButtonMiddle {
		c.setState(StatePanning)
		return
	}

	switch {
	case c.tool == ToolNone:
		if ref, ok := s.HitTest(world, c.hitTolWorld()); ok {
			if !s.IsSelected(ref) {
				s.Select(ref)
				c.emitSelectionChange()
			}
			c.setState(StateDragging)
			c.RequestRedraw()
			return
		}
		if sole, ok := s.SoleSelection(); ok {
			if h := s.HandleAt(sole, world, c.handleTolWorld()); h != HandleNone {
				c.inter.handle = h
				c.inter.target = sole
				c.setState(StateResizing)
				return
			}
		}
		if len(s.Selection) > 0 {
			s.ClearSelection()
			c.emitSelectionChange()
			c.RequestRedraw()
		}
		c.setState(StatePanning)

	case c.tool == ToolSelect:
		if sole, ok := s.SoleSelection(); ok {
			if h := s.HandleAt(sole, world, c.handleTolWorld()); h != HandleNone {
				c.inter.handle = h
				c.inter.target = sole
				c.setState(StateResizing)
				return
			}
		}
		if ref, ok := s.HitTest(world, c.hitTolWorld()); ok {
			if !s.IsSelected(ref) {
				s.Select(ref)
				c.emitSelectionChange()
			}
			c.setState(StateDragging)
			c.RequestRedraw()
			return
		}
		if len(s.Selection) > 0 {
			s.ClearSelection()
			c.emitSelectionChange()
		}
		s.Preview = nil
		c.setState(StateBoxSelecting)
		c.RequestRedraw()

	case c.tool.isDrawing():
		c.beginDrawing(world)
		c.setState(StateDrawing)
		c.RequestRedraw()
	}
}

func (c *Canvas) beginDrawing(world Point) {
	c.inter.drawPath = nil
	c.inter.drawShape = nil
	switch c.tool {
	case ToolPen:
		c.inter.drawPath = NewPath(world)
	case ToolRectangle:
		sh := NewShape(ShapeRectangle)
		sh.X, sh.Y = world.X, world.Y
		c.inter.drawShape = sh
	case ToolCircle:
		sh := NewShape(ShapeCircle)
		sh.X, sh.Y = world.X, world.Y
		c.inter.drawShape = sh
	case ToolLine:
		sh := NewShape(ShapeLine)
		sh.A, sh.B = world, world
		c.inter.drawShape = sh
	case ToolArrow:
		sh := NewShape(ShapeArrow)
		sh.A, sh.B = world, world
		c.inter.drawShape = sh
	}
	// Text and nested-canvas previews derive from the anchor alone.
}

// PointerMove feeds pointer motion into the state machine. In StateIdle it
// performs hover detection; in every other state it advances the active
// gesture.
func (c *Canvas) PointerMove(screen Point) {
	s := c.ActiveScene()
	world := c.screenToWorld(screen)
	screenDelta := screen.Sub(c.inter.lastScreen)
	worldDelta := world.Sub(c.inter.lastWorld)

	switch c.inter.state {
	case StateIdle:
		ref, ok := s.HitTest(world, c.hitTolWorld())
		if !ok {
			ref = EntityRef{}
		}
		if s.Hovered != ref {
			s.Hovered = ref
			c.RequestRedraw()
		}

	case StatePanning:
		s.Camera.Pan(screenDelta, c.vw, c.vh)
		c.emitCameraChange(true)
		c.RequestRedraw()
		// The world under the cursor changed with the camera.
		world = c.screenToWorld(screen)

	case StateDragging:
		s.TranslateSelection(worldDelta)
		c.RequestRedraw()

	case StateResizing:
		s.ResizeEntity(c.inter.target, c.inter.handle, world, worldDelta, c.limits)
		c.RequestRedraw()

	case StateBoxSelecting:
		s.Preview = s.HitTestArea(RectFromCorners(c.inter.anchorWorld, world))
		c.RequestRedraw()

	case StateDrawing:
		c.updateDrawing(world)
		c.RequestRedraw()
	}

	c.inter.lastScreen = screen
	c.inter.lastWorld = world
}

func (c *Canvas) updateDrawing(world Point) {
	anchor := c.inter.anchorWorld
	switch c.tool {
	case ToolPen:
		if c.inter.drawPath != nil {
			c.inter.drawPath.Append(world)
		}
	case ToolRectangle:
		r := RectFromCorners(anchor, world)
		sh := c.inter.drawShape
		sh.X, sh.Y, sh.W, sh.H = r.X, r.Y, r.W, r.H
	case ToolCircle:
		sh := c.inter.drawShape
		sh.Radius = world.Distance(anchor)
	case ToolLine, ToolArrow:
		c.inter.drawShape.B = world
	}
}

// PointerUp ends the active gesture: panning settles the camera change,
// box-select commits the preview as the real selection, drawing commits the
// new entity and switches back to the select tool (the pen keeps drawing
// and clears the selection instead). Resize and box-select arm the
// just-finished guard that swallows the host's trailing synthetic click.
func (c *Canvas) PointerUp(screen Point) {
	s := c.ActiveScene()
	world := c.screenToWorld(screen)

	switch c.inter.state {
	case StatePanning:
		c.emitCameraChange(false)

	case StateDragging:
		c.RequestRedraw()

	case StateResizing:
		c.justFinished = true
		c.RequestRedraw()

	case StateBoxSelecting:
		s.Selection = s.Preview
		s.Preview = nil
		c.justFinished = true
		c.emitSelectionChange()
		c.RequestRedraw()

	case StateDrawing:
		c.commitDrawing(s, world)
		c.RequestRedraw()
	}

	c.inter.state = StateIdle
	c.inter.drawPath = nil
	c.inter.drawShape = nil
	c.inter.handle = HandleNone
	c.inter.target = EntityRef{}
}

func (c *Canvas) commitDrawing(s *Scene, world Point) {
	switch c.tool {
	case ToolPen:
		if p := c.inter.drawPath; p != nil && len(p.Points) > 1 {
			s.Insert(p)
		}
		s.ClearSelection()
		c.emitSelectionChange()
		return // the pen stays active for the next stroke

	case ToolRectangle, ToolCircle, ToolLine, ToolArrow:
		if sh := c.inter.drawShape; sh != nil {
			switch sh.Kind {
			case ShapeCircle:
				sh.Radius = clampMin(sh.Radius, MinCircleRadius)
			case ShapeLine, ShapeArrow:
				// Endpoint geometry commits as dragged.
			default:
				sh.SetRect(sh.Rect())
			}
			s.Insert(sh)
		}

	case ToolText:
		s.Insert(NewText(c.inter.anchorWorld))

	case ToolNested:
		s.Insert(NewNestedRef(RectFromCorners(c.inter.anchorWorld, world)))
	}
	c.tool = ToolSelect
}

// Click handles the host's synthetic click event, which browsers deliver
// after pointer-up. The just-finished guard swallows the click immediately
// following a resize or box-select commit; without it the click would clear
// the selection the gesture just made. An unguarded click on empty space
// with the select tool (or no tool) clears the selection.
func (c *Canvas) Click(screen Point) {
	if c.justFinished {
		c.justFinished = false
		return
	}
	if c.tool != ToolSelect && c.tool != ToolNone {
		return
	}
	s := c.ActiveScene()
	world := c.screenToWorld(screen)
	if _, ok := s.HitTest(world, c.hitTolWorld()); ok {
		return
	}
	if len(s.Selection) > 0 {
		s.ClearSelection()
		c.emitSelectionChange()
		c.RequestRedraw()
	}
}

// DoubleClick opens the editor affordance of the struck entity: text-edit
// mode on a text, the nested canvas on a nested ref, edit mode on an embed.
// Other entities ignore it.
func (c *Canvas) DoubleClick(screen Point) {
	s := c.ActiveScene()
	world := c.screenToWorld(screen)
	ref, ok := s.HitTest(world, c.hitTolWorld())
	if !ok {
		return
	}
	switch ref.Kind {
	case KindText:
		if t := s.FindText(ref.ID); t != nil {
			t.Editing = true
			c.RequestRedraw()
		}
	case KindNested:
		if err := c.OpenNested(ref.ID); err != nil {
			Logger().Warn("open nested canvas", slog.Any("error", err))
		}
	case KindShape:
		if sh := s.FindShape(ref.ID); sh != nil && sh.Kind == ShapeEmbed {
			c.EnterEmbedEdit(sh.ID)
		}
	}
}

// FinishTextEdit ends text-edit mode on the given text entity, storing the
// edited content. Hosts call it when their input overlay closes.
func (c *Canvas) FinishTextEdit(id, content string) {
	t := c.ActiveScene().FindText(id)
	if t == nil || !t.Editing {
		return
	}
	t.Text = content
	t.Editing = false
	c.RequestRedraw()
}
