package mural

import (
	"log/slog"
	"time"
)

// HookToken identifies a registered hook for later removal.
type HookToken int

// cameraChangeThrottle is the minimum interval between camera-change
// emissions during high-frequency interactions such as wheel zoom. Settled
// emissions (pointer-up, explicit zoom buttons) bypass the throttle.
const cameraChangeThrottle = 50 * time.Millisecond

// hookSet stores one kind of hook, keyed by token.
type hookSet[F any] map[HookToken]F

// hooks holds every externally registered callback. Hooks run
// synchronously, each under its own panic containment: one broken
// integration must not break the others or the redraw loop.
type hooks struct {
	next HookToken

	beforeRedraw hookSet[func()]
	afterRedraw  hookSet[func()]
	cameraChange hookSet[func(Camera)]
	selection    hookSet[func([]EntityRef)]
	toolbarMove  hookSet[func(Point)]
}

func newHooks() *hooks {
	return &hooks{
		beforeRedraw: hookSet[func()]{},
		afterRedraw:  hookSet[func()]{},
		cameraChange: hookSet[func(Camera)]{},
		selection:    hookSet[func([]EntityRef)]{},
		toolbarMove:  hookSet[func(Point)]{},
	}
}

func (h *hooks) token() HookToken {
	h.next++
	return h.next
}

// safeCall runs fn, converting a panic into a warning log.
func safeCall(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("hook panicked",
				slog.String("hook", name), slog.Any("panic", r))
		}
	}()
	fn()
}

// OnBeforeRedraw registers fn to run at the start of every redraw pass.
func (c *Canvas) OnBeforeRedraw(fn func()) HookToken {
	t := c.hooks.token()
	c.hooks.beforeRedraw[t] = fn
	return t
}

// OnAfterRedraw registers fn to run at the end of every redraw pass.
// Calling Redraw from inside fn is safe: the request coalesces into at
// most one deferred extra pass.
func (c *Canvas) OnAfterRedraw(fn func()) HookToken {
	t := c.hooks.token()
	c.hooks.afterRedraw[t] = fn
	return t
}

// OnCameraChange registers fn to run after camera state settles, and via a
// throttled variant during continuous wheel zoom.
func (c *Canvas) OnCameraChange(fn func(Camera)) HookToken {
	t := c.hooks.token()
	c.hooks.cameraChange[t] = fn
	return t
}

// OnSelectionChange registers fn to run after the selection settles.
func (c *Canvas) OnSelectionChange(fn func([]EntityRef)) HookToken {
	t := c.hooks.token()
	c.hooks.selection[t] = fn
	return t
}

// OnToolbarMove registers fn for toolbar reposition notifications from the
// host surface.
func (c *Canvas) OnToolbarMove(fn func(Point)) HookToken {
	t := c.hooks.token()
	c.hooks.toolbarMove[t] = fn
	return t
}

// RemoveHook unregisters a previously registered hook. Unknown tokens are
// a no-op.
func (c *Canvas) RemoveHook(t HookToken) {
	delete(c.hooks.beforeRedraw, t)
	delete(c.hooks.afterRedraw, t)
	delete(c.hooks.cameraChange, t)
	delete(c.hooks.selection, t)
	delete(c.hooks.toolbarMove, t)
}

func (c *Canvas) fireBeforeRedraw() {
	for _, fn := range c.hooks.beforeRedraw {
		safeCall("beforeRedraw", fn)
	}
}

func (c *Canvas) fireAfterRedraw() {
	for _, fn := range c.hooks.afterRedraw {
		safeCall("afterRedraw", fn)
	}
}

// emitCameraChange notifies camera hooks. Throttled emissions are dropped
// when one fired within cameraChangeThrottle; settled emissions always go
// out and reset the throttle window.
func (c *Canvas) emitCameraChange(throttled bool) {
	if throttled && time.Since(c.lastCameraEmit) < cameraChangeThrottle {
		return
	}
	c.lastCameraEmit = time.Now()
	cam := c.ActiveScene().Camera
	for _, fn := range c.hooks.cameraChange {
		fn := fn
		safeCall("cameraChange", func() { fn(cam) })
	}
}

// emitSelectionChange notifies selection hooks with a copy of the current
// selection.
func (c *Canvas) emitSelectionChange() {
	sel := append([]EntityRef(nil), c.ActiveScene().Selection...)
	for _, fn := range c.hooks.selection {
		fn := fn
		safeCall("selectionChange", func() { fn(sel) })
	}
}

// NotifyToolbarMove forwards a toolbar reposition to registered hooks. The
// engine does not own the toolbar; the host calls this after moving it.
func (c *Canvas) NotifyToolbarMove(at Point) {
	for _, fn := range c.hooks.toolbarMove {
		fn := fn
		safeCall("toolbarMove", func() { fn(at) })
	}
}
