package mural

import "log/slog"

// EmbedHost is the integration surface for host-rendered embed components
// (DOM elements in a browser host, native widgets elsewhere). The engine
// treats embed nodes as opaque rectangles: it tells the host where they go
// and whether they receive input; the host owns rendering and measurement.
//
// All calls are synchronous and arrive on the engine's event/frame path.
type EmbedHost interface {
	// CreateNode materializes a node for the shape ID with the given
	// serializable content. Called lazily on first sync and again after
	// snapshot import (nodes themselves are never serialized).
	CreateNode(id, content string) error

	// SetNodeLayout positions the node. The transform is the identical
	// camera matrix canvas painting uses, so node geometry agrees
	// pixel-for-pixel with canvas-drawn shapes; w and h are the node's
	// untransformed size in world units.
	SetNodeLayout(id string, transform Matrix, w, h float64)

	// SetNodeVisible shows or hides the node. Nodes of inactive scenes
	// are hidden rather than destroyed.
	SetNodeVisible(id string, visible bool)

	// SetNodeInteractive routes pointer events to the node (edit mode)
	// or back to the canvas (selection mode).
	SetNodeInteractive(id string, interactive bool)

	// SetNodeScrollable enables internal scrolling while the node is in
	// edit mode and its content overflows the viewport the shape gives it.
	SetNodeScrollable(id string, scrollable bool)

	// DestroyNode detaches the node and releases host resources. Called
	// when the owning shape is removed or the whole state is replaced.
	DestroyNode(id string)
}

// overlaySync keeps host embed nodes in lock-step with canvas camera state
// and owns the edit-mode toggle. At most one node may be in edit mode; the
// zero value of editing means none.
type overlaySync struct {
	host    EmbedHost
	nodes   map[string]bool // shape ID -> node exists
	editing string          // shape ID in edit mode, or ""
}

func newOverlaySync(host EmbedHost) *overlaySync {
	return &overlaySync{host: host, nodes: map[string]bool{}}
}

// ensureNode lazily creates the host node for an embed shape.
func (o *overlaySync) ensureNode(sh *Shape) {
	if o.host == nil || o.nodes[sh.ID] {
		return
	}
	if err := o.host.CreateNode(sh.ID, sh.Embed.Content); err != nil {
		Logger().Warn("embed node creation failed",
			slog.String("id", sh.ID), slog.Any("error", err))
		return
	}
	o.nodes[sh.ID] = true
	// New nodes start in selection mode: the canvas owns their input.
	o.host.SetNodeInteractive(sh.ID, false)
	o.host.SetNodeScrollable(sh.ID, false)
}

// sync repositions every embed node of the scene with the camera transform.
// Called from the redraw pass for the active scene only. Nodes not in this
// scene are hidden when their shape still exists somewhere (owned reports
// that) and destroyed only when it is gone from every scene.
func (o *overlaySync) sync(s *Scene, vw, vh float64, owned func(id string) bool) {
	if o.host == nil {
		return
	}
	live := map[string]bool{}
	for _, sh := range s.EmbedShapes() {
		o.ensureNode(sh)
		if !o.nodes[sh.ID] {
			continue
		}
		live[sh.ID] = true
		m := s.Camera.Matrix(vw, vh).Multiply(Translate(sh.X, sh.Y))
		o.host.SetNodeLayout(sh.ID, m, sh.W, sh.H)
		o.host.SetNodeVisible(sh.ID, true)
	}
	for id := range o.nodes {
		if live[id] {
			continue
		}
		if owned != nil && owned(id) {
			o.host.SetNodeVisible(id, false)
			continue
		}
		o.destroy(id)
	}
}

// hideAll hides every tracked node; used when a nested scene without them
// becomes active.
func (o *overlaySync) hideAll() {
	if o.host == nil {
		return
	}
	for id := range o.nodes {
		o.host.SetNodeVisible(id, false)
	}
}

// destroy removes the node and clears edit mode if it was editing.
func (o *overlaySync) destroy(id string) {
	if !o.nodes[id] {
		return
	}
	if o.editing == id {
		o.editing = ""
	}
	delete(o.nodes, id)
	if o.host != nil {
		o.host.DestroyNode(id)
	}
}

// enterEdit switches the shape's node to edit mode: it becomes pointer-
// interactive and scrollable when its content overflows. Exactly one node
// may be editing; entering a new one force-exits the previous one first.
func (o *overlaySync) enterEdit(sh *Shape) {
	if o.host == nil || !o.nodes[sh.ID] {
		return
	}
	if o.editing != "" && o.editing != sh.ID {
		o.exitEdit()
	}
	o.editing = sh.ID
	o.host.SetNodeInteractive(sh.ID, true)
	ov := sh.Embed.Overflow
	overflows := ov.ScrollW > ov.ClientW || ov.ScrollH > ov.ClientH
	o.host.SetNodeScrollable(sh.ID, overflows)
}

// exitEdit returns the editing node, if any, to selection mode.
func (o *overlaySync) exitEdit() {
	if o.editing == "" {
		return
	}
	id := o.editing
	o.editing = ""
	if o.host != nil && o.nodes[id] {
		o.host.SetNodeInteractive(id, false)
		o.host.SetNodeScrollable(id, false)
	}
}
