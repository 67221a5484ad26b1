package mural

import (
	"errors"
	"log/slog"
	"time"
)

// mainSceneID keys the main canvas context in the scene map.
const mainSceneID = "main"

// ErrSceneNotFound is returned when a nested canvas ID has no scene.
var ErrSceneNotFound = errors.New("mural: scene not found")

// Canvas is the infinite-canvas engine: it owns the scene map, the active-
// context stack, the interaction state machine, the redraw pipeline and the
// overlay synchronizer. Construct one with New; there is no implicit global
// instance, the returned handle is the only access path.
//
// Canvas is single-threaded and event-driven: call its pointer, wheel and
// key entry points from the host's event loop and Step from its frame loop.
// No method is safe for concurrent use.
type Canvas struct {
	vw, vh float64

	scenes map[string]*Scene
	// stack is the active-context stack: the main scene at the bottom,
	// opened nested scenes above. The top is the active scene; all
	// pointer-driven mutation applies to it alone.
	stack []string

	tool    Tool
	inter   interaction
	painter Painter
	overlay *overlaySync
	sched   *scheduler
	frames  *ManualFrames // non-nil only when the default frame source is used
	hooks   *hooks
	grid    GridStyle
	limits  EmbedLimits

	hitTolPx    float64
	handleTolPx float64

	// justFinished suppresses the synthetic click that hosts deliver
	// right after the pointer-up that ended a resize or box-select.
	justFinished bool

	lastCameraEmit time.Time

	minZoom, maxZoom float64
	bounds           *Rect
	boundsMode       BoundsMode
}

// New creates a canvas engine with the given viewport size in pixels.
func New(vw, vh float64, opts ...Option) *Canvas {
	frames := &ManualFrames{}
	c := &Canvas{
		vw:          vw,
		vh:          vh,
		scenes:      map[string]*Scene{},
		stack:       []string{mainSceneID},
		tool:        ToolSelect,
		sched:       &scheduler{frames: frames},
		frames:      frames,
		hooks:       newHooks(),
		grid:        DefaultGridStyle(),
		limits:      DefaultEmbedLimits(),
		hitTolPx:    DefaultHitTolerancePx,
		handleTolPx: DefaultHandleTolerancePx,
		minZoom:     DefaultMinZoom,
		maxZoom:     DefaultMaxZoom,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.overlay == nil {
		c.overlay = newOverlaySync(nil)
	}
	c.scenes[mainSceneID] = c.newScene()
	return c
}

// newScene creates a scene wired to the canvas-level camera configuration.
func (c *Canvas) newScene() *Scene {
	s := NewScene()
	s.Camera.MinZoom = c.minZoom
	s.Camera.MaxZoom = c.maxZoom
	s.Camera.SetBounds(c.bounds, c.boundsMode)
	s.Camera.ClampZoom()
	return s
}

// Resize updates the viewport size in pixels.
func (c *Canvas) Resize(vw, vh float64) {
	c.vw, c.vh = vw, vh
	c.ActiveScene().Camera.ApplyConstraints(vw, vh)
	c.RequestRedraw()
}

// Viewport returns the viewport size in pixels.
func (c *Canvas) Viewport() (vw, vh float64) { return c.vw, c.vh }

// ActiveScene returns the canvas context pointer events currently apply
// to: the main scene, or the most recently opened nested scene.
func (c *Canvas) ActiveScene() *Scene {
	return c.scenes[c.stack[len(c.stack)-1]]
}

// MainScene returns the main canvas context.
func (c *Canvas) MainScene() *Scene { return c.scenes[mainSceneID] }

// Scene returns the scene stored under the given nested-canvas ID.
func (c *Canvas) Scene(id string) (*Scene, error) {
	s, ok := c.scenes[id]
	if !ok {
		return nil, ErrSceneNotFound
	}
	return s, nil
}

// OpenNested makes the scene of the given nested-canvas ref the active
// context, lazily creating it on first open. The ref must exist in the
// currently active scene.
func (c *Canvas) OpenNested(id string) error {
	if c.ActiveScene().FindNested(id) == nil {
		return ErrSceneNotFound
	}
	if _, ok := c.scenes[id]; !ok {
		c.scenes[id] = c.newScene()
	}
	c.stack = append(c.stack, id)
	c.inter = interaction{}
	c.overlay.exitEdit()
	c.overlay.hideAll()
	c.RequestRedraw()
	return nil
}

// CloseNested returns to the parent context. The nested scene's content
// stays in the side map and is re-used on the next open. Closing the main
// scene is a no-op.
func (c *Canvas) CloseNested() {
	if len(c.stack) == 1 {
		return
	}
	c.stack = c.stack[:len(c.stack)-1]
	c.inter = interaction{}
	c.RequestRedraw()
}

// ZoomIn zooms the active camera in by one step, anchored at the viewport
// center, and emits a settled camera change.
func (c *Canvas) ZoomIn() { c.zoomStep(1.25) }

// ZoomOut zooms the active camera out by one step, anchored at the
// viewport center.
func (c *Canvas) ZoomOut() { c.zoomStep(1 / 1.25) }

func (c *Canvas) zoomStep(factor float64) {
	cam := &c.ActiveScene().Camera
	cam.ZoomAtAnchor(factor, Pt(c.vw/2, c.vh/2), c.vw, c.vh)
	c.emitCameraChange(false)
	c.RequestRedraw()
}

// ZoomReset restores zoom 1 anchored at the viewport center.
func (c *Canvas) ZoomReset() {
	cam := &c.ActiveScene().Camera
	if cam.Zoom != 0 {
		cam.ZoomAtAnchor(1/cam.Zoom, Pt(c.vw/2, c.vh/2), c.vw, c.vh)
	}
	c.emitCameraChange(false)
	c.RequestRedraw()
}

// Recenter moves the active camera back to the origin at its current zoom.
func (c *Canvas) Recenter() {
	c.ActiveScene().Camera.Recenter(c.vw, c.vh)
	c.emitCameraChange(false)
	c.RequestRedraw()
}

// Wheel applies a wheel-zoom anchored at the cursor. dy follows the host
// convention: positive scrolls down and zooms out. Camera changes emit
// through the throttled variant.
func (c *Canvas) Wheel(dy float64, cursor Point) {
	if dy == 0 {
		return
	}
	factor := 1.1
	if dy > 0 {
		factor = 1 / 1.1
	}
	c.ActiveScene().Camera.ZoomAtAnchor(factor, cursor, c.vw, c.vh)
	c.emitCameraChange(true)
	c.RequestRedraw()
}

// DeleteSelection removes every selected entity from the active scene,
// destroying embed host nodes of removed shapes.
func (c *Canvas) DeleteSelection() {
	s := c.ActiveScene()
	refs := append([]EntityRef(nil), s.Selection...)
	for _, ref := range refs {
		c.deleteEntity(s, ref)
	}
	if len(refs) > 0 {
		c.emitSelectionChange()
		c.RequestRedraw()
	}
}

// BringToFront restacks the referenced entity topmost in the active scene.
// Reordering clears the selection, and registered selection hooks fire.
func (c *Canvas) BringToFront(ref EntityRef) {
	c.reorderEntity(ref, true)
}

// SendToBack restacks the referenced entity to the bottom of the active
// scene. Reordering clears the selection, and registered selection hooks
// fire.
func (c *Canvas) SendToBack(ref EntityRef) {
	c.reorderEntity(ref, false)
}

func (c *Canvas) reorderEntity(ref EntityRef, front bool) {
	s := c.ActiveScene()
	hadSelection := len(s.Selection) > 0
	if front {
		s.BringToFront(ref)
	} else {
		s.SendToBack(ref)
	}
	if hadSelection && len(s.Selection) == 0 {
		c.emitSelectionChange()
	}
	c.RequestRedraw()
}

// DeleteEntity removes one entity from the active scene.
func (c *Canvas) DeleteEntity(ref EntityRef) bool {
	ok := c.deleteEntity(c.ActiveScene(), ref)
	if ok {
		c.RequestRedraw()
	}
	return ok
}

func (c *Canvas) deleteEntity(s *Scene, ref EntityRef) bool {
	if ref.Kind == KindShape {
		if sh := s.FindShape(ref.ID); sh != nil && sh.Kind == ShapeEmbed {
			c.overlay.destroy(sh.ID)
		}
	}
	return s.Delete(ref)
}

// ClearAll removes every entity from the active scene, destroying all of
// its embed host nodes.
func (c *Canvas) ClearAll() {
	s := c.ActiveScene()
	for _, sh := range s.EmbedShapes() {
		c.overlay.destroy(sh.ID)
	}
	s.Clear()
	c.emitSelectionChange()
	c.RequestRedraw()
}

// InsertEntity pushes an externally created entity into the active scene.
// Externally inserted entities behave identically to tool-created ones.
func (c *Canvas) InsertEntity(entity any) EntityRef {
	ref := c.ActiveScene().Insert(entity)
	if ref != (EntityRef{}) {
		c.RequestRedraw()
	}
	return ref
}

// NewEmbedShape creates an embed shape with the given content and requested
// size, pending host measurement, and inserts it into the active scene.
func (c *Canvas) NewEmbedShape(at Point, w, h float64, content string) *Shape {
	sh := NewShape(ShapeEmbed)
	sh.Embed = &Embed{Content: content, PendingMeasurement: true}
	sh.SetRect(R(at.X, at.Y, w, h))
	c.ActiveScene().Insert(sh)
	c.RequestRedraw()
	return sh
}

// SetEmbedMeasurement records the host's content measurement for an embed
// shape. Hosts call this once layout settles after CreateNode; until then
// the shape's resize ceiling is suspended. A redraw is requested so a
// now-overlarge shape can be re-clamped visually on the next interaction.
func (c *Canvas) SetEmbedMeasurement(id string, ov Overflow) {
	sh := c.findEmbedShape(id)
	if sh == nil {
		Logger().Warn("measurement for unknown embed", slog.String("id", id))
		return
	}
	sh.Embed.Overflow = ov
	sh.Embed.PendingMeasurement = false
	c.RequestRedraw()
}

// MarkEmbedDirty tells the engine the host changed the node's content and a
// repaint is needed. Replaces implicit content observation: content owners
// notify explicitly.
func (c *Canvas) MarkEmbedDirty(id string) {
	if c.findEmbedShape(id) == nil {
		return
	}
	c.RequestRedraw()
}

func (c *Canvas) findEmbedShape(id string) *Shape {
	for _, s := range c.scenes {
		if sh := s.FindShape(id); sh != nil && sh.Kind == ShapeEmbed {
			return sh
		}
	}
	return nil
}

// EnterEmbedEdit puts the given embed shape into edit mode, force-exiting
// any other editing embed. The shape must live in the active scene.
func (c *Canvas) EnterEmbedEdit(id string) {
	sh := c.ActiveScene().FindShape(id)
	if sh == nil || sh.Kind != ShapeEmbed {
		return
	}
	c.overlay.ensureNode(sh)
	c.overlay.enterEdit(sh)
	c.RequestRedraw()
}

// ExitEmbedEdit leaves edit mode, if any embed is editing. Hosts call it on
// Escape; outside-clicks exit through the pointer path.
func (c *Canvas) ExitEmbedEdit() {
	if c.overlay.editing == "" {
		return
	}
	c.overlay.exitEdit()
	c.RequestRedraw()
}

// EditingEmbed returns the ID of the embed in edit mode, or "".
func (c *Canvas) EditingEmbed() string { return c.overlay.editing }

// Step runs due frame work: a coalesced redraw deferred from a re-entrant
// request. Hosts using the default frame source call it once per frame;
// with WithFrameSource it is a no-op.
func (c *Canvas) Step() {
	if c.frames != nil {
		c.frames.Step()
	}
}

// hitTolWorld returns the body hit tolerance in world units at the active
// camera zoom, keeping targets visually constant in screen pixels.
func (c *Canvas) hitTolWorld() float64 {
	return c.hitTolPx / c.ActiveScene().Camera.Zoom
}

// handleTolWorld returns the handle tolerance in world units.
func (c *Canvas) handleTolWorld() float64 {
	return c.handleTolPx / c.ActiveScene().Camera.Zoom
}

// screenToWorld converts a viewport pixel point through the active camera.
func (c *Canvas) screenToWorld(p Point) Point {
	return c.ActiveScene().Camera.ScreenToWorld(p, c.vw, c.vh)
}
