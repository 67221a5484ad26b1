package mural

// FrameSource delivers deferred callbacks on the host's next animation
// frame. The ebiten backend implements it on top of the game loop's Update
// tick; tests use ManualFrames to step frames explicitly.
type FrameSource interface {
	// RequestFrame schedules fn to run once on the next frame. Calling it
	// again before the frame fires may replace the previous callback;
	// the scheduler only ever has one outstanding request.
	RequestFrame(fn func())
}

// ManualFrames is a FrameSource driven by explicit Step calls. It is the
// default when no host frame source is configured, and what tests use to
// make deferred redraws deterministic.
type ManualFrames struct {
	pending func()
}

// RequestFrame stores fn for the next Step.
func (m *ManualFrames) RequestFrame(fn func()) { m.pending = fn }

// Step runs the pending callback, if any. It reports whether one ran.
func (m *ManualFrames) Step() bool {
	fn := m.pending
	if fn == nil {
		return false
	}
	m.pending = nil
	fn()
	return true
}

// scheduler coalesces redraw requests. Requests issued while a pass is
// already running are collapsed into a single pending flag and replayed
// once via the frame source after the pass completes; this is what keeps a
// hook that calls Redraw from recursing unboundedly. A superseded pending
// request is simply dropped, never queued twice.
//
// Single-threaded by design, like the rest of the engine: all calls happen
// inside event handlers or the frame callback.
type scheduler struct {
	frames  FrameSource
	running bool
	pending bool
}

// run invokes pass immediately unless one is already running, in which
// case the request is deferred. After the pass, a deferred request is
// replayed exactly once on the next frame.
func (s *scheduler) run(pass func()) {
	if s.running {
		s.pending = true
		return
	}
	s.running = true
	pass()
	s.running = false

	if !s.pending {
		return
	}
	s.pending = false
	s.frames.RequestFrame(func() { s.run(pass) })
}
