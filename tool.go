package mural

import "log/slog"

// Tool names the active drawing tool. The toolbar (or any other external
// surface) owns tool choice and hands the engine the string value; the
// engine only reacts to it. ToolNone is pan-mode: pointer-down on empty
// space pans the camera.
type Tool string

const (
	ToolNone      Tool = ""
	ToolSelect    Tool = "select"
	ToolPen       Tool = "pen"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
	ToolText      Tool = "text"
	ToolNested    Tool = "nested-canvas"
)

// Valid reports whether the tool name is one the engine knows.
func (t Tool) Valid() bool {
	switch t {
	case ToolNone, ToolSelect, ToolPen, ToolRectangle, ToolCircle,
		ToolLine, ToolArrow, ToolText, ToolNested:
		return true
	}
	return false
}

// isDrawing reports whether pointer-down with this tool starts shape
// creation rather than selection or panning.
func (t Tool) isDrawing() bool {
	switch t {
	case ToolPen, ToolRectangle, ToolCircle, ToolLine, ToolArrow, ToolText, ToolNested:
		return true
	}
	return false
}

// SetTool changes the active tool. Unknown names are ignored with a
// warning; an in-progress interaction is not interrupted.
func (c *Canvas) SetTool(t Tool) {
	if !t.Valid() {
		Logger().Warn("ignoring unknown tool", slog.String("tool", string(t)))
		return
	}
	c.tool = t
}

// ActiveTool returns the currently active tool.
func (c *Canvas) ActiveTool() Tool { return c.tool }
