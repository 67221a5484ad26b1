package ebitengine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/muralkit/mural"
)

const (
	// doubleClickTicks is the maximum gap between two releases that still
	// counts as a double click, in Update ticks (30 ticks = 500ms at 60 TPS).
	doubleClickTicks = 30

	// doubleClickSlopPx is how far the cursor may drift between the two
	// clicks of a double click.
	doubleClickSlopPx = 5.0
)

// Input polls Ebitengine's mouse state and feeds it to a canvas as pointer
// events. Call Update once per game tick.
//
// Events fire in browser order: down, moves, up, then a synthesized click,
// and a double click when two clicks land close together in time and space.
type Input struct {
	canvas *mural.Canvas

	tick          int
	prevCursor    mural.Point
	havePrev      bool
	lastClickTick int
	lastClickPos  mural.Point
	haveLastClick bool
}

// NewInput builds an input adapter bound to canvas.
func NewInput(canvas *mural.Canvas) *Input {
	return &Input{canvas: canvas}
}

// Update reads the current mouse state and dispatches pointer events.
func (in *Input) Update() {
	in.tick++

	x, y := ebiten.CursorPosition()
	cursor := mural.Pt(float64(x), float64(y))

	if _, wy := ebiten.Wheel(); wy != 0 {
		// Ebitengine reports scroll-up as positive; the canvas follows the
		// browser convention where positive deltas zoom out.
		in.canvas.Wheel(-wy, cursor)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.canvas.PointerDown(cursor, mural.ButtonLeft)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		in.canvas.PointerDown(cursor, mural.ButtonMiddle)
	}

	if in.havePrev && cursor != in.prevCursor {
		in.canvas.PointerMove(cursor)
	}
	in.prevCursor = cursor
	in.havePrev = true

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		in.canvas.PointerUp(cursor)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.canvas.PointerUp(cursor)
		in.canvas.Click(cursor)
		if in.isDoubleClick(cursor) {
			in.canvas.DoubleClick(cursor)
			in.haveLastClick = false
		} else {
			in.lastClickTick = in.tick
			in.lastClickPos = cursor
			in.haveLastClick = true
		}
	}
}

func (in *Input) isDoubleClick(cursor mural.Point) bool {
	if !in.haveLastClick {
		return false
	}
	if in.tick-in.lastClickTick > doubleClickTicks {
		return false
	}
	return cursor.Distance(in.lastClickPos) <= doubleClickSlopPx
}
