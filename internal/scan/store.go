package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyImage is returned when an operation needs a raster and none is
	// loaded, or when Load is handed no pixels.
	ErrEmptyImage = errors.New("no image loaded")

	// ErrDimensionMismatch is returned by Load when the pixel count does not
	// equal width*height.
	ErrDimensionMismatch = errors.New("pixel count does not match image dimensions")

	// ErrOutOfBounds is returned by CurrentPixel when the cursor does not
	// address a pixel. Restart clamps the selection, so a loaded Store never
	// returns it.
	ErrOutOfBounds = errors.New("scan cursor outside raster")
)

// RGB is a single pixel with 8 bits per channel.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Store owns a raster and the scan cursor that walks its selection.
//
// The zero value is not usable; create stores with NewStore.
type Store struct {
	pixels []RGB
	width  int
	height int

	sel Selection

	// Scan state, rebuilt by Restart and moved by Advance only.
	bounds Bounds
	index  int
	rowEnd int
	yDelta int
}

// NewStore returns an empty store using DefaultSelection.
func NewStore() *Store {
	return &Store{sel: DefaultSelection}
}

// Load replaces the raster wholesale and restarts the scan.
//
// The store takes ownership of pixels, which must hold width*height entries
// in row-major order. The current selection is clamped to the new raster.
// On error the previous raster, if any, is left in place.
func (s *Store) Load(pixels []RGB, width, height int) error {
	if len(pixels) == 0 || width <= 0 || height <= 0 {
		return ErrEmptyImage
	}
	if len(pixels) != width*height {
		return fmt.Errorf("%w: got %d pixels for %dx%d", ErrDimensionMismatch, len(pixels), width, height)
	}

	s.pixels = pixels
	s.width = width
	s.height = height
	s.sel = s.sel.Clamp(width, height)
	s.Restart()
	return nil
}

// Clear drops the raster. The selection is kept for the next Load.
func (s *Store) Clear() {
	s.pixels = nil
	s.width = 0
	s.height = 0
	s.bounds = Bounds{}
	s.index = 0
	s.rowEnd = 0
	s.yDelta = 0
}

// IsEmpty reports whether no raster is loaded.
func (s *Store) IsEmpty() bool {
	return len(s.pixels) == 0
}

// SetSelection stores sel, clamped to the raster, and restarts the scan.
// Without a raster only the minimum size and origin are enforced and the
// scan stays inert until Load succeeds.
func (s *Store) SetSelection(sel Selection) {
	s.sel = sel.Clamp(s.width, s.height)
	s.Restart()
}

// Selection returns the stored selection in image-pixel units.
func (s *Store) Selection() Selection {
	return s.sel
}

// Restart moves the cursor to the top-left pixel of the selection.
//
// This is the only place the selection is rounded to whole pixels, so a
// selection changed by fractions between restarts never shifts a running scan.
func (s *Store) Restart() {
	s.yDelta = 0
	if s.IsEmpty() {
		s.bounds = Bounds{}
		s.index = 0
		s.rowEnd = 0
		return
	}

	s.bounds = s.sel.Round(s.width, s.height)
	s.index = s.bounds.Y*s.width + s.bounds.X
	s.rowEnd = s.index + s.bounds.W
}

// Advance moves the cursor to the next pixel of the selection in row-major
// order, wrapping to the first pixel after the last one.
func (s *Store) Advance() {
	if s.IsEmpty() {
		return
	}

	next := s.index + 1
	if next == s.rowEnd {
		s.yDelta++
		if s.yDelta >= s.bounds.H {
			s.Restart()
			return
		}
		s.index = s.rowEnd + s.width - s.bounds.W
		s.rowEnd += s.width
		return
	}
	if next >= len(s.pixels) {
		s.Restart()
		return
	}
	s.index = next
}

// CurrentPixel returns the pixel under the cursor.
func (s *Store) CurrentPixel() (RGB, error) {
	if s.index < 0 || s.index >= len(s.pixels) {
		return RGB{}, ErrOutOfBounds
	}
	return s.pixels[s.index], nil
}

// Index returns the cursor as a linear index into the raster.
func (s *Store) Index() int {
	return s.index
}

// Cursor returns the cursor as (x, y) pixel coordinates.
func (s *Store) Cursor() (x, y int) {
	if s.width == 0 {
		return 0, 0
	}
	return s.index % s.width, s.index / s.width
}

// Row returns how many selection rows the current cycle has completed.
func (s *Store) Row() int {
	return s.yDelta
}

// Bounds returns the rounded selection the current scan is confined to.
// It is only refreshed by Restart.
func (s *Store) Bounds() Bounds {
	return s.bounds
}

// Width returns the raster width, or 0 when empty.
func (s *Store) Width() int {
	return s.width
}

// Height returns the raster height, or 0 when empty.
func (s *Store) Height() int {
	return s.height
}

// Raster returns the loaded pixels and their dimensions. The slice is shared
// with the store and must not be modified.
func (s *Store) Raster() ([]RGB, int, int) {
	return s.pixels, s.width, s.height
}
