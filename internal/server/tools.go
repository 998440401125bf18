package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func zoomProperties(props map[string]interface{}) map[string]interface{} {
	props["zoom_x"] = map[string]interface{}{
		"type":        "number",
		"description": "Horizontal zoom of the display the coordinates come from (preview zoom_x). Default 1 (image pixels)",
		"default":     1.0,
	}
	props["zoom_y"] = map[string]interface{}{
		"type":        "number",
		"description": "Vertical zoom of the display the coordinates come from (preview zoom_y). Default 1 (image pixels)",
		"default":     1.0,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "pictogram_load",
			Description: "Load an image file as the scanned raster. The selection is clamped to the new image and the scan restarts at its top-left pixel. If decoding fails the pictogram is left without an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, GIF, BMP, TIFF or WebP)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pictogram_state",
			Description: "Report the loaded image, the selection, the scan cursor, the output parameters and the last emitted frame.",
			InputSchema: noArgs(),
		},

		// Selection
		{
			Name:        "pictogram_set_selection",
			Description: "Set the selection rectangle. Omitted fields keep their current value. Coordinates are image pixels unless a zoom is given. The scan restarts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": zoomProperties(map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Left edge",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Top edge",
					},
					"w": map[string]interface{}{
						"type":        "number",
						"description": "Width, at least 1 image pixel",
					},
					"h": map[string]interface{}{
						"type":        "number",
						"description": "Height, at least 1 image pixel",
					},
				}),
			},
		},
		{
			Name:        "pictogram_drag",
			Description: "Apply a mouse gesture to the selection: 'move' places its top-left corner at (x, y), 'resize' drags its opposite corner to (x, y). The scan restarts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": zoomProperties(map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"move", "resize"},
						"description": "Gesture to apply",
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Pointer X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Pointer Y coordinate",
					},
				}),
				"required": []string{"action", "x", "y"},
			},
		},

		// Scan
		{
			Name:        "pictogram_restart",
			Description: "Move the scan cursor back to the top-left pixel of the selection.",
			InputSchema: noArgs(),
		},
		{
			Name:        "pictogram_step",
			Description: "Emit the pixel under the cursor and advance, like one clock pulse. Each frame holds the pixel, its red/green/blue/hue/saturation/luminance sample and the six output voltages.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of clock pulses (1-4096). Default 1",
						"default":     1,
						"minimum":     1,
						"maximum":     MaxStepCount,
					},
				},
			},
		},
		{
			Name:        "pictogram_process",
			Description: "Feed sampled clock and reset voltages through the trigger inputs. A rising edge on reset (>= 1 V after <= 0 V) restarts the scan, a rising edge on clock steps it. Returns the frames emitted and the sample index of each.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"clock": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Clock input samples in volts",
					},
					"reset": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Reset input samples in volts. Missing samples read as 0 V",
					},
				},
			},
		},
		{
			Name:        "pictogram_params",
			Description: "Set the output scale (0-1) and offset (-5 to 5 V). Omitted fields keep their value; out of range values are clamped. Returns the stored parameters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Multiplier applied to each 0-10 V output",
						"minimum":     0,
						"maximum":     1,
					},
					"offset": map[string]interface{}{
						"type":        "number",
						"description": "Volts added after scaling",
						"minimum":     -5,
						"maximum":     5,
					},
				},
			},
		},

		// Views
		{
			Name:        "pictogram_preview",
			Description: "Render the image with the selection box and the scan cursor as base64-encoded PNG. The zoom factors map preview coordinates back to image pixels for pictogram_set_selection and pictogram_drag.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"max_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest edge of the preview in pixels. Default from --preview-size",
					},
					"show_label": map[string]interface{}{
						"type":        "boolean",
						"description": "Label the box with its rounded position and size. Default true",
						"default":     true,
					},
					"box_color": map[string]interface{}{
						"type":        "string",
						"description": "Inner box color as #rrggbb",
					},
				},
			},
		},
		{
			Name:        "pictogram_crop_selection",
			Description: "Return the pixels the scan visits as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 4.0 to enlarge small selections). Default 1.0",
						"default":     1.0,
					},
				},
			},
		},
		{
			Name:        "pictogram_selection_colors",
			Description: "Summarize the colors inside the selection: the mean color and the most frequent colors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to return. Default 5",
						"default":     5,
					},
				},
			},
		},

		// Sessions
		{
			Name:        "pictogram_session_save",
			Description: "Write the image path, selection and output parameters to a JSON file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the session file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "pictogram_session_load",
			Description: "Restore a session file. Fields missing from the file keep their current value. If the image no longer loads the rest is still applied and image_error is set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the session file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Color
		{
			Name:        "color_convert",
			Description: "Convert one color to the red/green/blue/hue/saturation/luminance sample and the output voltages under the current parameters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Hex color such as #ff8800",
					},
					"r": map[string]interface{}{
						"type":        "integer",
						"description": "Red 0-255, used when color is omitted",
					},
					"g": map[string]interface{}{
						"type":        "integer",
						"description": "Green 0-255",
					},
					"b": map[string]interface{}{
						"type":        "integer",
						"description": "Blue 0-255",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
