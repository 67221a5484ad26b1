package mural

import "log/slog"

// Option configures a Canvas during creation.
// Use functional options to customize engine behavior.
//
// Example:
//
//	// Headless engine with defaults (tests, servers)
//	c := mural.New(800, 600)
//
//	// Wired to a painter and embed host (interactive frontends)
//	c := mural.New(800, 600,
//	    mural.WithPainter(p),
//	    mural.WithEmbedHost(host))
type Option func(*Canvas)

// WithPainter sets the painter the redraw pipeline draws through.
// Without one, redraw passes still run state synchronization (overlay
// positions, hooks) but paint nothing.
func WithPainter(p Painter) Option {
	return func(c *Canvas) { c.painter = p }
}

// WithEmbedHost sets the host that renders embed components.
func WithEmbedHost(h EmbedHost) Option {
	return func(c *Canvas) { c.overlay = newOverlaySync(h) }
}

// WithFrameSource sets the host's animation-frame source used to replay
// coalesced redraws. The default is a ManualFrames stepped by [Canvas.Step].
func WithFrameSource(f FrameSource) Option {
	return func(c *Canvas) {
		c.sched.frames = f
		c.frames = nil
	}
}

// WithZoomLimits sets the zoom range applied to every scene camera.
// An inverted range (min >= max) is ignored with a warning.
func WithZoomLimits(min, max float64) Option {
	return func(c *Canvas) {
		if min >= max || min <= 0 {
			Logger().Warn("ignoring invalid zoom limits",
				slog.Float64("min", min), slog.Float64("max", max))
			return
		}
		c.minZoom, c.maxZoom = min, max
	}
}

// WithBounds installs a rectangular camera constraint for every scene.
func WithBounds(bounds Rect, mode BoundsMode) Option {
	return func(c *Canvas) {
		b := bounds
		c.bounds = &b
		c.boundsMode = mode
	}
}

// WithGrid sets the background grid style.
func WithGrid(g GridStyle) Option {
	return func(c *Canvas) { c.grid = g }
}

// WithEmbedLimits sets the embed resize-ceiling configuration.
func WithEmbedLimits(lim EmbedLimits) Option {
	return func(c *Canvas) { c.limits = lim }
}

// WithHitTolerances overrides the body and handle hit tolerances, in
// screen pixels. Non-positive values keep the defaults.
func WithHitTolerances(bodyPx, handlePx float64) Option {
	return func(c *Canvas) {
		if bodyPx > 0 {
			c.hitTolPx = bodyPx
		}
		if handlePx > 0 {
			c.handleTolPx = handlePx
		}
	}
}

// WithConfig applies a loaded configuration file. Invalid entries inside
// the config degrade individually with warnings.
func WithConfig(cfg Config) Option {
	return func(c *Canvas) { cfg.apply(c) }
}
