// Package ebitengine provides an Ebitengine-backed painter, input adapter,
// and frame source for mural canvases.
//
// The painter draws directly into an *ebiten.Image, so a host application
// typically points it at the frame's screen image inside Draw:
//
//	func (g *game) Draw(screen *ebiten.Image) {
//	    g.painter.SetTarget(screen)
//	    g.canvas.Redraw()
//	}
//
// The input adapter polls Ebitengine's mouse state once per Update tick and
// translates it into canvas pointer events, including click and double-click
// synthesis in the order a browser would deliver them.
package ebitengine
