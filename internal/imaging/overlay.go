package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/pictogram-mcp/internal/scan"
)

// DefaultPreviewSize is the edge length of the square the preview is fitted into.
const DefaultPreviewSize = 330

const strokeWidth = 2

var (
	boxLight    = color.RGBA{200, 200, 200, 255}
	boxDark     = color.RGBA{22, 34, 22, 255}
	labelText   = color.RGBA{255, 255, 255, 255}
	labelBg     = color.RGBA{0, 0, 0, 180}
	cursorColor = color.RGBA{255, 0, 255, 255}
)

// PreviewOptions controls RenderSelection.
type PreviewOptions struct {
	// MaxSize is the edge of the square the image is fitted into.
	// Zero means DefaultPreviewSize.
	MaxSize int

	// ShowLabel draws the rounded selection as "x,y wxh" inside the box.
	ShowLabel bool

	// Cursor, when set, marks the pixel under the scan cursor (image space).
	Cursor *image.Point

	// BoxColor overrides the inner stroke of the selection box ("#rrggbb").
	BoxColor string
}

// PreviewResult contains the rendered preview and the mapping between image
// and screen space.
type PreviewResult struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	ZoomX       float64        `json:"zoom_x"`
	ZoomY       float64        `json:"zoom_y"`
	Screen      scan.Selection `json:"screen"`
	Bounds      scan.Bounds    `json:"bounds"`
	ImageBase64 string         `json:"image_base64"`
	MimeType    string         `json:"mime_type"`
}

// RenderSelection draws the selection rectangle on a scaled copy of img.
//
// The image keeps its aspect ratio: the longer edge becomes MaxSize pixels
// and the shorter edge shrinks accordingly. Small images are enlarged with
// nearest-neighbour sampling so single pixels stay visible, large ones are
// reduced with Lanczos.
//
// The returned zoom factors convert between spaces:
//
//	screen = image.Scale(ZoomX, ZoomY)
//	image  = screen.Zoom(ZoomX, ZoomY)
func RenderSelection(img image.Image, sel scan.Selection, opts PreviewOptions) (*PreviewResult, error) {
	src := img.Bounds()
	if src.Dx() <= 0 || src.Dy() <= 0 {
		return nil, fmt.Errorf("cannot preview an empty image")
	}
	size := opts.MaxSize
	if size <= 0 {
		size = DefaultPreviewSize
	}

	w, h := fitSize(src.Dx(), src.Dy(), size)
	filter := imaging.Lanczos
	if w > src.Dx() {
		filter = imaging.NearestNeighbor
	}
	canvas := clone.AsRGBA(imaging.Resize(img, w, h, filter))

	zx := float64(w) / float64(src.Dx())
	zy := float64(h) / float64(src.Dy())
	screen := sel.Scale(zx, zy)
	box := image.Rect(
		int(screen.X+0.5), int(screen.Y+0.5),
		int(screen.X+screen.W+0.5), int(screen.Y+screen.H+0.5),
	)

	inner := color.Color(boxLight)
	if opts.BoxColor != "" {
		c, err := colorful.Hex(opts.BoxColor)
		if err != nil {
			return nil, fmt.Errorf("invalid box color %q: %w", opts.BoxColor, err)
		}
		inner = c
	}
	strokeRect(canvas, box, strokeWidth, inner)
	strokeRect(canvas, box.Inset(-strokeWidth), strokeWidth, boxDark)

	bounds := sel.Round(src.Dx(), src.Dy())
	if opts.Cursor != nil {
		cx := int((float64(opts.Cursor.X) + 0.5) * zx)
		cy := int((float64(opts.Cursor.Y) + 0.5) * zy)
		markPoint(canvas, cx, cy, cursorColor)
	}
	if opts.ShowLabel {
		label := fmt.Sprintf("%d,%d %dx%d", bounds.X, bounds.Y, bounds.W, bounds.H)
		drawLabel(canvas, box.Min.X+strokeWidth+1, box.Min.Y+strokeWidth+1, label)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       w,
		Height:      h,
		ZoomX:       zx,
		ZoomY:       zy,
		Screen:      screen,
		Bounds:      bounds,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// fitSize returns the display size of a width x height image whose longer
// edge is scaled to size.
func fitSize(width, height, size int) (int, int) {
	ratio := float64(width) / float64(height)
	w, h := float64(size), float64(size)
	if ratio > 1 {
		h /= ratio
	} else {
		w *= ratio
	}
	return max(int(w+0.5), 1), max(int(h+0.5), 1)
}

// strokeRect draws the outline of r with the given thickness inside r.
func strokeRect(dst draw.Image, r image.Rectangle, thickness int, c color.Color) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness),
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y),
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e, src, image.Point{}, draw.Src)
	}
}

// markPoint draws a small cross centred on (x, y).
func markPoint(dst draw.Image, x, y int, c color.Color) {
	src := image.NewUniform(c)
	draw.Draw(dst, image.Rect(x-3, y, x+4, y+1), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(x, y-3, x+1, y+4), src, image.Point{}, draw.Src)
}

// drawLabel renders text on a translucent background with its top-left
// corner at (x, y), shifted back inside dst when it would overflow.
func drawLabel(dst *image.RGBA, x, y int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelText),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	height := face.Metrics().Height.Ceil()
	bounds := dst.Bounds()
	x = max(min(x, bounds.Max.X-width-1), bounds.Min.X+1)
	y = max(min(y, bounds.Max.Y-height-1), bounds.Min.Y+1)

	bg := image.Rect(x-1, y-1, x+width+1, y+height+1)
	draw.Draw(dst, bg, image.NewUniform(labelBg), image.Point{}, draw.Over)

	d.Dot = fixed.P(x, y+face.Metrics().Ascent.Ceil())
	d.DrawString(text)
}
