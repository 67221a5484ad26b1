// Package mural provides an infinite-canvas interaction engine for Go.
//
// # Overview
//
// mural is the headless core of an infinite-canvas widget: an event-driven
// engine that owns cameras, scenes of vector entities (freehand paths,
// shapes, texts, nested canvases, host-rendered embeds), hit-testing,
// selection, and the drag/resize/box-select state machine. Rendering and
// input are pluggable: the engine paints through a Painter and positions
// embed components through an EmbedHost, both implemented by frontends
// (backend/ebitengine ships one).
//
// # Quick Start
//
//	import "github.com/muralkit/mural"
//
//	c := mural.New(800, 600, mural.WithPainter(p))
//
//	// Feed host events
//	c.PointerDown(mural.Pt(100, 100), mural.ButtonLeft)
//	c.PointerMove(mural.Pt(140, 120))
//	c.PointerUp(mural.Pt(140, 120))
//
//	// Inspect state
//	sel := c.ActiveScene().Selection
//	_ = sel
//
// # Coordinate System
//
// Entities live in an infinite world plane; the viewport sees it through a
// Camera (offset + zoom). Camera.WorldToScreen and Camera.ScreenToWorld are
// the single source of truth for the mapping: painting, overlay
// positioning and hit-testing all share the same formula, so canvas-drawn
// and host-rendered content never drift apart. Screen space is standard:
// origin at the viewport top-left, X right, Y down.
//
// # Concurrency
//
// The engine is single-threaded and cooperative: call it from the host's
// event loop and frame callback only. Redraw requests issued during a
// redraw coalesce into at most one deferred pass on the next frame.
package mural

// Version is the current version of the library.
const Version = "0.3.1"
