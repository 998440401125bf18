// Package pictogram wires the pixel scanner to its host.
//
// A Pictogram owns one scan.Store and reacts to events: clock and reset
// triggers, image loads, selection edits and session restores. Every clock
// tick reads the pixel under the cursor, converts it to six channels,
// advances the cursor and publishes the channels as output voltages.
//
// All methods are safe for concurrent use; a single mutex serializes them so
// the raster and the cursor are never observed half-updated.
package pictogram

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/pictogram-mcp/internal/colorspace"
	"github.com/ironsheep/pictogram-mcp/internal/imaging"
	"github.com/ironsheep/pictogram-mcp/internal/scan"
	"github.com/ironsheep/pictogram-mcp/internal/session"
)

// ErrDecodeFailure wraps every error raised while turning an image file into
// a raster. After such a failure the pictogram holds no image.
var ErrDecodeFailure = errors.New("failed to load image")

// Frame is the result of one clock tick.
type Frame struct {
	Index   int               `json:"index"`
	X       int               `json:"x"`
	Y       int               `json:"y"`
	Pixel   scan.RGB          `json:"pixel"`
	Sample  colorspace.Sample `json:"sample"`
	Outputs Outputs           `json:"outputs"`
}

// State is a snapshot of everything a display needs to draw the pictogram.
type State struct {
	Loaded      bool           `json:"loaded"`
	ImagePath   string         `json:"image_path,omitempty"`
	Format      string         `json:"format,omitempty"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Selection   scan.Selection `json:"selection"`
	Bounds      scan.Bounds    `json:"bounds"`
	CycleLength int            `json:"cycle_length"`
	Index       int            `json:"index"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Row         int            `json:"row"`
	Params      Params         `json:"params"`
	Last        *Frame         `json:"last,omitempty"`
}

// Pictogram is the event-driven owner of a scan.Store.
type Pictogram struct {
	mu sync.Mutex

	store     *scan.Store
	cache     *imaging.ImageCache
	imagePath string
	format    string
	params    Params

	clock   SchmittTrigger
	reset   SchmittTrigger
	last    Frame
	hasLast bool
}

// New creates a pictogram without an image. Images are decoded through cache.
func New(cache *imaging.ImageCache) *Pictogram {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	return &Pictogram{
		store:  scan.NewStore(),
		cache:  cache,
		params: DefaultParams,
	}
}

// LoadImage decodes the image at path and makes it the scanned raster.
//
// The previous image is dropped before decoding starts, so a failed load
// leaves the pictogram empty rather than scanning a stale image.
func (p *Pictogram) LoadImage(path string) (*imaging.ImageInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadImage(path)
}

func (p *Pictogram) loadImage(path string) (*imaging.ImageInfo, error) {
	// A load always re-reads the file from disk.
	if p.imagePath != "" {
		p.cache.Evict(p.imagePath)
	}
	p.cache.Evict(path)
	p.clearImage()

	r, err := imaging.DecodeRaster(p.cache, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	info, err := imaging.StatImage(path, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	if err := p.store.Load(r.Pixels, r.Width, r.Height); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}

	p.imagePath = path
	p.format = r.Format
	return info, nil
}

// ClearImage drops the current image. The selection is kept.
func (p *Pictogram) ClearImage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearImage()
}

func (p *Pictogram) clearImage() {
	p.store.Clear()
	p.imagePath = ""
	p.format = ""
	p.hasLast = false
}

// IsEmpty reports whether no image is loaded.
func (p *Pictogram) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.IsEmpty()
}

// ImagePath returns the path of the loaded image, or "" when empty.
func (p *Pictogram) ImagePath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.imagePath
}

// SetSelection replaces the selection (image-pixel units) and restarts the
// scan. The stored selection, after clamping, is returned.
func (p *Pictogram) SetSelection(sel scan.Selection) scan.Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store.SetSelection(sel)
	return p.store.Selection()
}

// Selection returns the current selection in image-pixel units.
func (p *Pictogram) Selection() scan.Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Selection()
}

// MoveSelection moves the top-left corner of the selection to (x, y).
func (p *Pictogram) MoveSelection(x, y float64) scan.Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store.SetSelection(p.store.Selection().MoveTo(x, y))
	return p.store.Selection()
}

// ResizeSelection drags the corner opposite the origin to (x, y).
func (p *Pictogram) ResizeSelection(x, y float64) scan.Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store.SetSelection(p.store.Selection().WithEndPoint(x, y))
	return p.store.Selection()
}

// Restart moves the cursor back to the top-left pixel of the selection.
func (p *Pictogram) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store.Restart()
}

// SetParams stores the output controls, clamped to their ranges.
func (p *Pictogram) SetParams(params Params) Params {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params = params.Clamp()
	return p.params
}

// Params returns the output controls.
func (p *Pictogram) Params() Params {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params
}

// Step emits the pixel under the cursor and advances the cursor.
func (p *Pictogram) Step() (Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.step()
}

// Steps runs n clock ticks and returns their frames in order.
func (p *Pictogram) Steps(n int) ([]Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		f, err := p.step()
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func (p *Pictogram) step() (Frame, error) {
	if p.store.IsEmpty() {
		return Frame{}, scan.ErrEmptyImage
	}
	px, err := p.store.CurrentPixel()
	if err != nil {
		return Frame{}, err
	}

	x, y := p.store.Cursor()
	f := Frame{
		Index:  p.store.Index(),
		X:      x,
		Y:      y,
		Pixel:  px,
		Sample: colorspace.Convert(px),
	}
	f.Outputs = p.params.Outputs(f.Sample)
	p.store.Advance()

	p.last = f
	p.hasLast = true
	return f, nil
}

// Process feeds one host sample of the clock and reset inputs.
//
// A rising edge on reset restarts the scan; a rising edge on clock steps it.
// The returned frame is only meaningful when the bool is true. While no image
// is loaded the inputs are ignored entirely.
func (p *Pictogram) Process(clock, reset float64) (Frame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store.IsEmpty() {
		return Frame{}, false
	}
	if p.reset.Process(reset) {
		p.store.Restart()
	}
	if !p.clock.Process(clock) {
		return Frame{}, false
	}
	f, err := p.step()
	return f, err == nil
}

// State returns a snapshot of the pictogram.
func (p *Pictogram) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	x, y := p.store.Cursor()
	s := State{
		Loaded:      !p.store.IsEmpty(),
		ImagePath:   p.imagePath,
		Format:      p.format,
		Width:       p.store.Width(),
		Height:      p.store.Height(),
		Selection:   p.store.Selection(),
		Bounds:      p.store.Bounds(),
		CycleLength: p.store.Bounds().Area(),
		Index:       p.store.Index(),
		X:           x,
		Y:           y,
		Row:         p.store.Row(),
		Params:      p.params,
	}
	if p.hasLast {
		last := p.last
		s.Last = &last
	}
	return s
}

// Snapshot returns the persistable state.
func (p *Pictogram) Snapshot() *session.Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	return session.New(p.imagePath, p.store.Selection(), p.params.Scale, p.params.Offset)
}

// Restore applies a persisted document. Fields absent from d keep their
// current values.
//
// The image is loaded first so the selection is clamped against the restored
// image. A load failure is returned after the remaining fields have been
// applied, leaving the pictogram empty but otherwise restored.
func (p *Pictogram) Restore(d *session.Document) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var loadErr error
	if d.ImagePath != nil {
		if *d.ImagePath == "" {
			p.clearImage()
		} else {
			_, loadErr = p.loadImage(*d.ImagePath)
		}
	}
	if d.HasSelection() {
		p.store.SetSelection(d.Selection(p.store.Selection()))
	}

	params := p.params
	if d.Scale != nil {
		params.Scale = *d.Scale
	}
	if d.Offset != nil {
		params.Offset = *d.Offset
	}
	p.params = params.Clamp()

	return loadErr
}

// Preview renders the image with the selection box and the cursor marked.
func (p *Pictogram) Preview(opts imaging.PreviewOptions) (*imaging.PreviewResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	img, err := p.image()
	if err != nil {
		return nil, err
	}
	x, y := p.store.Cursor()
	opts.Cursor = &image.Point{X: x, Y: y}
	return imaging.RenderSelection(img, p.store.Selection(), opts)
}

// CropSelection returns the pixels the scan visits as a PNG.
func (p *Pictogram) CropSelection(scale float64) (*imaging.CropResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	img, err := p.image()
	if err != nil {
		return nil, err
	}
	return imaging.CropSelection(img, p.store.Bounds(), scale)
}

// SelectionColors summarizes the colors inside the scanned selection.
func (p *Pictogram) SelectionColors(count int) (*imaging.SelectionColorsResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.store.IsEmpty() {
		return nil, scan.ErrEmptyImage
	}
	pixels, width, height := p.store.Raster()
	return imaging.SelectionColors(pixels, width, height, p.store.Bounds(), count)
}

func (p *Pictogram) image() (image.Image, error) {
	if p.store.IsEmpty() {
		return nil, scan.ErrEmptyImage
	}
	return p.cache.Load(p.imagePath)
}
