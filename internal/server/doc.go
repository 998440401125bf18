// Package server implements the MCP (Model Context Protocol) server that drives
// a pictogram.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image:
//   - pictogram_load: Decode an image into the scanned raster
//   - pictogram_state: Image, selection, cursor, parameters and last frame
//
// Selection:
//   - pictogram_set_selection: Set some or all of x, y, w, h
//   - pictogram_drag: Move or resize the selection with a pointer position
//
// Scan:
//   - pictogram_restart: Cursor back to the top-left of the selection
//   - pictogram_step: One or more clock pulses
//   - pictogram_process: Clock and reset voltage samples through the triggers
//   - pictogram_params: Output scale and offset
//
// Views:
//   - pictogram_preview: Image with the selection box and cursor
//   - pictogram_crop_selection: The selected pixels as PNG
//   - pictogram_selection_colors: Mean and dominant colors of the selection
//
// Sessions:
//   - pictogram_session_save, pictogram_session_load
//
// Color:
//   - color_convert: Sample and voltages for a single color
//
// Selection coordinates are image pixels. Tools that accept zoom_x and zoom_y
// treat their coordinates as preview pixels and divide by the zoom.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32602 for bad arguments, -32000 for any other failure
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(pic, server.Options{PreviewSize: 330})
//	if err := srv.Run(); err != nil {
//	    glog.Fatal(err)
//	}
package server
