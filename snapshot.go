package mural

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
)

// SnapshotVersion tags the serialized state layout.
const SnapshotVersion = 1

// ErrInvalidSnapshot is returned for snapshots with an unknown version or
// a structurally unusable payload.
var ErrInvalidSnapshot = errors.New("mural: invalid snapshot")

// Snapshot is the serializable full state of a canvas: every scene (main
// and nested), the active-context stack, and the current tool. Embed host
// nodes are not serializable; only their content strings travel, and nodes
// are re-created by the overlay synchronizer after import.
type Snapshot struct {
	Version int                   `json:"version"`
	Tool    Tool                  `json:"currentTool"`
	Stack   []string              `json:"activeStack"`
	Scenes  map[string]SceneState `json:"scenes"`
}

// SceneState is the serializable form of one scene.
type SceneState struct {
	Camera    CameraState   `json:"camera"`
	Paths     []PathState   `json:"paths"`
	Shapes    []ShapeState  `json:"shapes"`
	Texts     []TextState   `json:"texts"`
	Nested    []NestedState `json:"nestedCanvases"`
	Selection []RefState    `json:"selectedElements"`
}

// CameraState carries camera position and zoom. Zoom limits and bounds are
// engine configuration, not document state, and are re-applied on import.
type CameraState struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// PathState is the wire form of a Path.
type PathState struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	Width  float64 `json:"width"`
	Color  string  `json:"color,omitempty"`
}

// ShapeState is the wire form of a Shape, covering every kind.
type ShapeState struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	W      float64 `json:"width,omitempty"`
	H      float64 `json:"height,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	X1     float64 `json:"x1,omitempty"`
	Y1     float64 `json:"y1,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	Stroke string  `json:"stroke,omitempty"`
	Fill   string  `json:"fill,omitempty"`

	// Embed-kind extras.
	Content string  `json:"content,omitempty"`
	MaxW    float64 `json:"maxWidth,omitempty"`
	MaxH    float64 `json:"maxHeight,omitempty"`
}

// TextState is the wire form of a Text. Editing state does not travel.
type TextState struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"width"`
	H          float64 `json:"height"`
	Text       string  `json:"text"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily,omitempty"`
	Color      string  `json:"color,omitempty"`
}

// NestedState is the wire form of a NestedRef.
type NestedState struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	W  float64 `json:"width"`
	H  float64 `json:"height"`
}

// RefState is the wire form of an EntityRef.
type RefState struct {
	Kind string `json:"type"`
	ID   string `json:"id"`
}

// Export captures the full canvas state as a snapshot.
func (c *Canvas) Export() Snapshot {
	snap := Snapshot{
		Version: SnapshotVersion,
		Tool:    c.tool,
		Stack:   append([]string(nil), c.stack...),
		Scenes:  map[string]SceneState{},
	}
	for id, s := range c.scenes {
		snap.Scenes[id] = exportScene(s)
	}
	return snap
}

// ExportJSON is Export marshaled to JSON.
func (c *Canvas) ExportJSON() ([]byte, error) {
	return json.Marshal(c.Export())
}

func exportScene(s *Scene) SceneState {
	st := SceneState{
		Camera: CameraState{X: s.Camera.X, Y: s.Camera.Y, Zoom: s.Camera.Zoom},
	}
	for _, p := range s.Paths {
		st.Paths = append(st.Paths, PathState{
			ID: p.ID, Points: p.Points, Width: p.Width, Color: colorToHex(p.Color),
		})
	}
	for _, sh := range s.Shapes {
		ss := ShapeState{
			ID: sh.ID, Kind: sh.Kind.String(),
			X: sh.X, Y: sh.Y, W: sh.W, H: sh.H, Radius: sh.Radius,
			X1: sh.A.X, Y1: sh.A.Y, X2: sh.B.X, Y2: sh.B.Y,
			Stroke: colorToHex(sh.Stroke), Fill: colorToHex(sh.Fill),
		}
		if sh.Embed != nil {
			ss.Content = sh.Embed.Content
			ss.MaxW = sh.Embed.MaxW
			ss.MaxH = sh.Embed.MaxH
		}
		st.Shapes = append(st.Shapes, ss)
	}
	for _, t := range s.Texts {
		st.Texts = append(st.Texts, TextState{
			ID: t.ID, X: t.X, Y: t.Y, W: t.W, H: t.H,
			Text: t.Text, FontSize: t.FontSize, FontFamily: t.FontFamily,
			Color: colorToHex(t.Color),
		})
	}
	for _, n := range s.Nested {
		st.Nested = append(st.Nested, NestedState{ID: n.ID, X: n.X, Y: n.Y, W: n.W, H: n.H})
	}
	for _, ref := range s.Selection {
		st.Selection = append(st.Selection, RefState{Kind: ref.Kind.String(), ID: ref.ID})
	}
	return st
}

// Import fully replaces the canvas state with the snapshot. Every existing
// embed host node is destroyed first; nodes for imported embeds are
// re-created lazily by the next overlay sync from their content strings.
// The engine's zoom limits and bounds configuration survive the import and
// re-clamp the imported cameras.
func (c *Canvas) Import(snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidSnapshot, snap.Version)
	}
	if _, ok := snap.Scenes[mainSceneID]; !ok {
		return fmt.Errorf("%w: missing main scene", ErrInvalidSnapshot)
	}

	for id := range c.overlay.nodes {
		c.overlay.destroy(id)
	}
	c.overlay.exitEdit()

	scenes := map[string]*Scene{}
	for id, st := range snap.Scenes {
		scenes[id] = importScene(c, st)
	}
	c.scenes = scenes

	stack := snap.Stack
	if len(stack) == 0 || stack[0] != mainSceneID {
		stack = []string{mainSceneID}
	}
	c.stack = []string{mainSceneID}
	for _, id := range stack[1:] {
		if _, ok := c.scenes[id]; ok {
			c.stack = append(c.stack, id)
		}
	}

	if snap.Tool.Valid() {
		c.tool = snap.Tool
	}
	c.inter = interaction{}
	c.emitSelectionChange()
	c.emitCameraChange(false)
	c.RequestRedraw()
	return nil
}

// ImportJSON unmarshals and imports a snapshot.
func (c *Canvas) ImportJSON(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return c.Import(snap)
}

func importScene(c *Canvas, st SceneState) *Scene {
	s := c.newScene()
	s.Camera.X = st.Camera.X
	s.Camera.Y = st.Camera.Y
	s.Camera.Zoom = st.Camera.Zoom
	s.Camera.ClampZoom()

	for _, ps := range st.Paths {
		s.Paths = append(s.Paths, &Path{
			ID: ps.ID, Points: ps.Points, Width: ps.Width, Color: hexToColor(ps.Color),
		})
	}
	for _, ss := range st.Shapes {
		sh := &Shape{
			ID: ss.ID, Kind: parseShapeKind(ss.Kind),
			X: ss.X, Y: ss.Y, W: ss.W, H: ss.H, Radius: ss.Radius,
			A: Pt(ss.X1, ss.Y1), B: Pt(ss.X2, ss.Y2),
			Stroke: hexToColor(ss.Stroke), Fill: hexToColor(ss.Fill),
		}
		if sh.Kind == ShapeEmbed {
			sh.Embed = &Embed{
				Content:            ss.Content,
				PendingMeasurement: true,
				MaxW:               ss.MaxW,
				MaxH:               ss.MaxH,
			}
			sh.SetRect(sh.Rect())
		} else if sh.Kind.IsBox() {
			sh.SetRect(sh.Rect())
		}
		s.Shapes = append(s.Shapes, sh)
	}
	for _, ts := range st.Texts {
		s.Texts = append(s.Texts, &Text{
			ID: ts.ID, X: ts.X, Y: ts.Y, W: ts.W, H: ts.H,
			Text: ts.Text, FontSize: ts.FontSize, FontFamily: ts.FontFamily,
			Color: hexToColor(ts.Color),
		})
	}
	for _, ns := range st.Nested {
		s.Nested = append(s.Nested, &NestedRef{ID: ns.ID, X: ns.X, Y: ns.Y, W: ns.W, H: ns.H})
	}
	for _, rs := range st.Selection {
		ref := EntityRef{Kind: parseEntityKind(rs.Kind), ID: rs.ID}
		if s.Has(ref) {
			s.Selection = append(s.Selection, ref)
		}
	}
	return s
}

func parseShapeKind(s string) ShapeKind {
	switch s {
	case "circle":
		return ShapeCircle
	case "line":
		return ShapeLine
	case "arrow":
		return ShapeArrow
	case "embed":
		return ShapeEmbed
	default:
		return ShapeRectangle
	}
}

func parseEntityKind(s string) EntityKind {
	switch s {
	case "shape":
		return KindShape
	case "text":
		return KindText
	case "nested-canvas":
		return KindNested
	default:
		return KindPath
	}
}

// colorToHex serializes a color as #rrggbbaa; nil becomes "".
func colorToHex(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, a := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", r>>8, g>>8, b>>8, a>>8)
}

// toRGBA converts any color to its 8-bit RGBA form.
func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// hexToColor parses #rrggbbaa or #rrggbb; "" and malformed input yield nil.
func hexToColor(s string) color.Color {
	var r, g, b, a uint8
	switch len(s) {
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return nil
		}
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return nil
		}
		a = 0xff
	default:
		return nil
	}
	return color.RGBA{R: r, G: g, B: b, A: a}
}
