package server

import "github.com/modelcontextprotocol/go-sdk/mcp"

// Defaults applied by the handlers when optional arguments are omitted.
const (
	defaultBrushWidth  = 5.0
	defaultBrushColor  = "#000000"
	defaultGridSpacing = 50
)

func inputSchema(properties map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// withCanvas adds the optional canvas selector shared by every tool.
func withCanvas(properties map[string]any) map[string]any {
	properties["canvas"] = map[string]any{
		"type":        "string",
		"description": "Canvas ID (default: \"default\")",
	}
	return properties
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func colorProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []*mcp.Tool {
	pointSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": numberProp("X coordinate in pixels"),
			"y": numberProp("Y coordinate in pixels"),
		},
		"required": []string{"x", "y"},
	}

	return []*mcp.Tool{
		// Canvas Management
		{
			Name:        "canvas_create",
			Description: "Create a blank canvas, replacing any canvas with the same ID. The new canvas has empty undo and redo history.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"width":         intProp("Width in pixels"),
				"height":        intProp("Height in pixels"),
				"background":    colorProp("Background color as hex (#RGB, #RRGGBB or #RRGGBBAA). Defaults to the configured background."),
				"history_depth": intProp("Maximum undo steps kept, at most 500 (default: configured depth)"),
			}), "width", "height"),
		},
		{
			Name:        "canvas_delete",
			Description: "Delete a canvas and its history.",
			InputSchema: inputSchema(withCanvas(map[string]any{})),
		},
		{
			Name:        "canvas_list",
			Description: "List the IDs of all open canvases.",
			InputSchema: inputSchema(map[string]any{}),
		},
		{
			Name:        "canvas_info",
			Description: "Get canvas dimensions, undo/redo depth and whether a stroke is in progress.",
			InputSchema: inputSchema(withCanvas(map[string]any{})),
		},

		// Pixel Operations
		{
			Name:        "canvas_get_pixel",
			Description: "Get the color of a pixel in hex, RGBA and HSL formats.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"x": intProp("X coordinate (0-based)"),
				"y": intProp("Y coordinate (0-based)"),
			}), "x", "y"),
		},
		{
			Name:        "canvas_set_pixel",
			Description: "Set a single pixel. Recorded as one undo step.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"x":     intProp("X coordinate (0-based)"),
				"y":     intProp("Y coordinate (0-based)"),
				"color": colorProp("Color as hex (#RGB, #RRGGBB or #RRGGBBAA)"),
			}), "x", "y", "color"),
		},

		// Fill Operations
		{
			Name:        "canvas_fill",
			Description: "Flood fill the 4-connected region of exactly matching color around a seed pixel. Returns the number of pixels changed; filling with the region's own color changes nothing and records no undo step.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"x":     intProp("Seed X coordinate (0-based)"),
				"y":     intProp("Seed Y coordinate (0-based)"),
				"color": colorProp("Fill color as hex (#RGB, #RRGGBB or #RRGGBBAA)"),
			}), "x", "y", "color"),
		},
		{
			Name:        "canvas_region",
			Description: "Describe the region a fill at a seed pixel would recolor (color, pixel count, bounding box) without changing the canvas.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"x": intProp("Seed X coordinate (0-based)"),
				"y": intProp("Seed Y coordinate (0-based)"),
			}), "x", "y"),
		},
		{
			Name:        "canvas_clear",
			Description: "Fill the whole canvas with one color. Recorded as one undo step.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"color": colorProp("Color as hex (default: the configured background)"),
			})),
		},

		// Stroke Operations
		{
			Name:        "canvas_stroke",
			Description: "Draw a round-capped brush stroke through a list of points. The whole stroke is one undo step; a single point draws a dot.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"points": map[string]any{
					"type":        "array",
					"description": "Stroke points in pixel coordinates",
					"items":       pointSchema,
				},
				"width": numberProp("Brush width in pixels (default: 5)"),
				"color": colorProp("Brush color as hex (default: #000000)"),
			}), "points"),
		},
		{
			Name:        "canvas_stroke_begin",
			Description: "Start a freehand stroke at a point (pointer down). Draws a dot and records the undo step for the whole stroke.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"x":     numberProp("X coordinate in pixels"),
				"y":     numberProp("Y coordinate in pixels"),
				"width": numberProp("Brush width in pixels (default: 5)"),
				"color": colorProp("Brush color as hex (default: #000000)"),
			}), "x", "y"),
		},
		{
			Name:        "canvas_stroke_continue",
			Description: "Extend the open stroke to a point (pointer move).",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"x": numberProp("X coordinate in pixels"),
				"y": numberProp("Y coordinate in pixels"),
			}), "x", "y"),
		},
		{
			Name:        "canvas_stroke_end",
			Description: "Finish the open stroke (pointer up).",
			InputSchema: inputSchema(withCanvas(map[string]any{})),
		},

		// History
		{
			Name:        "canvas_undo",
			Description: "Undo the most recent action. Reports whether anything was undone.",
			InputSchema: inputSchema(withCanvas(map[string]any{})),
		},
		{
			Name:        "canvas_redo",
			Description: "Redo the most recently undone action. Reports whether anything was redone.",
			InputSchema: inputSchema(withCanvas(map[string]any{})),
		},

		// Viewing
		{
			Name:        "canvas_view",
			Description: "Render the canvas, or a region of it, as a base64-encoded PNG. Scaling uses nearest neighbour so pixels stay crisp; an optional grid labels canvas coordinates.",
			InputSchema: inputSchema(withCanvas(map[string]any{
				"x1":               intProp("Region left edge (inclusive)"),
				"y1":               intProp("Region top edge (inclusive)"),
				"x2":               intProp("Region right edge (exclusive)"),
				"y2":               intProp("Region bottom edge (exclusive)"),
				"scale":            numberProp("Magnification factor (default: 1)"),
				"grid_spacing":     intProp("Draw a grid line every N canvas pixels (0 = no grid)"),
				"show_coordinates": map[string]any{"type": "boolean", "description": "Label grid intersections with coordinates"},
				"grid_color":       colorProp("Grid color as hex (default: #FF000080)"),
			})),
		},
	}
}
