package ebitengine

// Frames is a mural.FrameSource driven by the game loop. The canvas hands
// it deferred redraw passes; the host runs them by calling Tick once per
// Update, which matches requestAnimationFrame cadence at one pass per frame.
type Frames struct {
	pending func()
}

// NewFrames builds an empty frame source.
func NewFrames() *Frames { return &Frames{} }

// RequestFrame schedules fn for the next Tick. Only one callback is held at
// a time; the canvas scheduler coalesces its own requests so a second call
// before Tick simply replaces the first.
func (f *Frames) RequestFrame(fn func()) { f.pending = fn }

// Tick runs the pending callback, if any, and reports whether one ran.
func (f *Frames) Tick() bool {
	fn := f.pending
	if fn == nil {
		return false
	}
	f.pending = nil
	fn()
	return true
}
