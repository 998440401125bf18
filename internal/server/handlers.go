package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pictogram-mcp/internal/colorspace"
	"github.com/ironsheep/pictogram-mcp/internal/imaging"
	"github.com/ironsheep/pictogram-mcp/internal/pictogram"
	"github.com/ironsheep/pictogram-mcp/internal/scan"
	"github.com/ironsheep/pictogram-mcp/internal/session"
)

// MaxStepCount bounds the number of frames a single pictogram_step returns.
const MaxStepCount = 4096

// errInvalidArgs marks argument errors; they are reported with code -32602
// instead of the generic tool failure code.
var errInvalidArgs = errors.New("invalid arguments")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pictogram_load", "pictogram_step").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602, every other failure code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	glog.V(1).Infof("tools/call %s %s", params.Name, string(params.Arguments))

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image
	case "pictogram_load":
		return s.handleLoad(args)
	case "pictogram_state":
		return s.handleState(args)

	// Selection
	case "pictogram_set_selection":
		return s.handleSetSelection(args)
	case "pictogram_drag":
		return s.handleDrag(args)

	// Scan
	case "pictogram_restart":
		return s.handleRestart(args)
	case "pictogram_step":
		return s.handleStep(args)
	case "pictogram_process":
		return s.handleProcess(args)
	case "pictogram_params":
		return s.handleParams(args)

	// Views
	case "pictogram_preview":
		return s.handlePreview(args)
	case "pictogram_crop_selection":
		return s.handleCropSelection(args)
	case "pictogram_selection_colors":
		return s.handleSelectionColors(args)

	// Sessions
	case "pictogram_session_save":
		return s.handleSessionSave(args)
	case "pictogram_session_load":
		return s.handleSessionLoad(args)

	case "color_convert":
		return s.handleColorConvert(args)

	default:
		return nil, fmt.Errorf("%w: unknown tool: %s", errInvalidArgs, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Missing arguments decode as
// an empty object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

// frame is a pictogram.Frame with the pixel spelled as a hex string.
type frame struct {
	pictogram.Frame
	Hex string `json:"hex"`
}

func newFrame(f pictogram.Frame) frame {
	return frame{Frame: f, Hex: imaging.Hex(f.Pixel)}
}

// === Image Handlers ===

type loadArgs struct {
	Path string `json:"path"`
}

type loadResult struct {
	Image *imaging.ImageInfo `json:"image"`
	State pictogram.State    `json:"state"`
}

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var a loadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	info, err := s.pic.LoadImage(a.Path)
	if err != nil {
		return nil, err
	}
	return &loadResult{Image: info, State: s.pic.State()}, nil
}

func (s *Server) handleState(json.RawMessage) (interface{}, error) {
	return s.pic.State(), nil
}

// === Selection Handlers ===

// zoomArgs carry the zoom factor of the display the coordinates were taken
// from. Absent or non-positive factors mean image-pixel units.
type zoomArgs struct {
	ZoomX float64 `json:"zoom_x"`
	ZoomY float64 `json:"zoom_y"`
}

func (z zoomArgs) factors() (float64, float64) {
	zx, zy := z.ZoomX, z.ZoomY
	if zx <= 0 {
		zx = 1
	}
	if zy <= 0 {
		zy = 1
	}
	return zx, zy
}

type setSelectionArgs struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	W *float64 `json:"w"`
	H *float64 `json:"h"`
	zoomArgs
}

func (s *Server) handleSetSelection(args json.RawMessage) (interface{}, error) {
	var a setSelectionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	zx, zy := a.factors()
	sel := s.pic.Selection().Scale(zx, zy)
	if a.X != nil {
		sel.X = *a.X
	}
	if a.Y != nil {
		sel.Y = *a.Y
	}
	if a.W != nil {
		sel.W = *a.W
	}
	if a.H != nil {
		sel.H = *a.H
	}

	s.pic.SetSelection(sel.Zoom(zx, zy))
	return s.pic.State(), nil
}

type dragArgs struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	zoomArgs
}

func (s *Server) handleDrag(args json.RawMessage) (interface{}, error) {
	var a dragArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	zx, zy := a.factors()
	x, y := a.X/zx, a.Y/zy

	switch a.Action {
	case "move":
		s.pic.MoveSelection(x, y)
	case "resize":
		s.pic.ResizeSelection(x, y)
	default:
		return nil, fmt.Errorf("%w: unknown drag action %q (want move or resize)", errInvalidArgs, a.Action)
	}
	return s.pic.State(), nil
}

// === Scan Handlers ===

func (s *Server) handleRestart(json.RawMessage) (interface{}, error) {
	s.pic.Restart()
	return s.pic.State(), nil
}

type stepArgs struct {
	Count int `json:"count"`
}

type stepResult struct {
	Frames []frame         `json:"frames"`
	State  pictogram.State `json:"state"`
}

func (s *Server) handleStep(args json.RawMessage) (interface{}, error) {
	var a stepArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 1
	}
	if a.Count < 1 || a.Count > MaxStepCount {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", errInvalidArgs, MaxStepCount)
	}

	frames, err := s.pic.Steps(a.Count)
	if err != nil {
		return nil, err
	}
	out := make([]frame, len(frames))
	for i, f := range frames {
		out[i] = newFrame(f)
	}
	return &stepResult{Frames: out, State: s.pic.State()}, nil
}

type processArgs struct {
	Clock []float64 `json:"clock"`
	Reset []float64 `json:"reset"`
}

type processFrame struct {
	SampleIndex int `json:"sample_index"`
	frame
}

type processResult struct {
	Samples int            `json:"samples"`
	Frames  []processFrame `json:"frames"`
}

func (s *Server) handleProcess(args json.RawMessage) (interface{}, error) {
	var a processArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	n := max(len(a.Clock), len(a.Reset))
	if n == 0 {
		return nil, fmt.Errorf("%w: clock or reset samples are required", errInvalidArgs)
	}
	if n > MaxStepCount {
		return nil, fmt.Errorf("%w: at most %d samples per call", errInvalidArgs, MaxStepCount)
	}

	res := &processResult{Samples: n, Frames: []processFrame{}}
	for i := 0; i < n; i++ {
		if f, ok := s.pic.Process(sampleAt(a.Clock, i), sampleAt(a.Reset, i)); ok {
			res.Frames = append(res.Frames, processFrame{SampleIndex: i, frame: newFrame(f)})
		}
	}
	return res, nil
}

// sampleAt returns v[i], or 0 V past the end of v.
func sampleAt(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

type paramsArgs struct {
	Scale  *float64 `json:"scale"`
	Offset *float64 `json:"offset"`
}

func (s *Server) handleParams(args json.RawMessage) (interface{}, error) {
	var a paramsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p := s.pic.Params()
	if a.Scale != nil {
		p.Scale = *a.Scale
	}
	if a.Offset != nil {
		p.Offset = *a.Offset
	}
	return s.pic.SetParams(p), nil
}

// === View Handlers ===

type previewArgs struct {
	MaxSize   int    `json:"max_size"`
	ShowLabel *bool  `json:"show_label"`
	BoxColor  string `json:"box_color"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.MaxSize == 0 {
		a.MaxSize = s.opts.PreviewSize
	}
	showLabel := true
	if a.ShowLabel != nil {
		showLabel = *a.ShowLabel
	}
	return s.pic.Preview(imaging.PreviewOptions{
		MaxSize:   a.MaxSize,
		ShowLabel: showLabel,
		BoxColor:  a.BoxColor,
	})
}

type cropSelectionArgs struct {
	Scale float64 `json:"scale"`
}

func (s *Server) handleCropSelection(args json.RawMessage) (interface{}, error) {
	var a cropSelectionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	return s.pic.CropSelection(a.Scale)
}

type selectionColorsArgs struct {
	Count int `json:"count"`
}

func (s *Server) handleSelectionColors(args json.RawMessage) (interface{}, error) {
	var a selectionColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	return s.pic.SelectionColors(a.Count)
}

// === Session Handlers ===

type sessionArgs struct {
	Path string `json:"path"`
}

type sessionResult struct {
	Path       string            `json:"path"`
	Document   *session.Document `json:"document"`
	State      pictogram.State   `json:"state"`
	ImageError string            `json:"image_error,omitempty"`
}

func (s *Server) handleSessionSave(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	doc := s.pic.Snapshot()
	if err := session.Save(a.Path, doc); err != nil {
		return nil, err
	}
	return &sessionResult{Path: a.Path, Document: doc, State: s.pic.State()}, nil
}

// handleSessionLoad restores a saved session. An image that no longer decodes
// is reported in image_error; the rest of the document is still applied.
func (s *Server) handleSessionLoad(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", errInvalidArgs)
	}
	doc, err := session.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res := &sessionResult{Path: a.Path, Document: doc}
	if err := s.pic.Restore(doc); err != nil {
		if !errors.Is(err, pictogram.ErrDecodeFailure) {
			return nil, err
		}
		res.ImageError = err.Error()
	}
	res.State = s.pic.State()
	return res, nil
}

// === Color Handlers ===

type colorConvertArgs struct {
	Color string `json:"color"`
	R     *int   `json:"r"`
	G     *int   `json:"g"`
	B     *int   `json:"b"`
}

type colorConvertResult struct {
	Hex     string            `json:"hex"`
	RGB     scan.RGB          `json:"rgb"`
	Sample  colorspace.Sample `json:"sample"`
	Outputs pictogram.Outputs `json:"outputs"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorConvertArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var px scan.RGB
	switch {
	case a.Color != "":
		hex := a.Color
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: color %q: %v", errInvalidArgs, a.Color, err)
		}
		px.R, px.G, px.B = c.RGB255()
	case a.R != nil && a.G != nil && a.B != nil:
		for _, v := range []int{*a.R, *a.G, *a.B} {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: channel %d outside 0-255", errInvalidArgs, v)
			}
		}
		px = scan.RGB{R: uint8(*a.R), G: uint8(*a.G), B: uint8(*a.B)}
	default:
		return nil, fmt.Errorf("%w: either color or r, g and b are required", errInvalidArgs)
	}

	sample := colorspace.Convert(px)
	return &colorConvertResult{
		Hex:     imaging.Hex(px),
		RGB:     px,
		Sample:  sample,
		Outputs: s.pic.Params().Outputs(sample),
	}, nil
}
