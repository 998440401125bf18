package scan

import (
	"fmt"
	"math"
)

// Selection is a rectangular region of interest in image-pixel units.
//
// (X, Y) is the top-left corner, W and H the size. Values are kept as floats
// and rounded to the nearest integer when a scan restarts.
type Selection struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// DefaultSelection is the selection a new Store starts with.
var DefaultSelection = Selection{X: 0, Y: 0, W: 50, H: 25}

// Bounds is a rounded and clamped selection, the form a scan works on.
type Bounds struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// String implements fmt.Stringer.
func (s Selection) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", s.X, s.Y, s.W, s.H)
}

// Zoom converts a selection from screen space to image space by dividing
// every component by the zoom factor of its axis.
func (s Selection) Zoom(zx, zy float64) Selection {
	if zx <= 0 || zy <= 0 {
		return s
	}
	return Selection{X: s.X / zx, Y: s.Y / zy, W: s.W / zx, H: s.H / zy}
}

// Scale is the inverse of Zoom: it maps an image-space selection onto a
// display that shows the image enlarged by (zx, zy).
func (s Selection) Scale(zx, zy float64) Selection {
	return Selection{X: s.X * zx, Y: s.Y * zy, W: s.W * zx, H: s.H * zy}
}

// MoveTo places the top-left corner at (x, y) keeping the size.
func (s Selection) MoveTo(x, y float64) Selection {
	s.X, s.Y = x, y
	return s
}

// WithEndPoint resizes the selection so that its opposite corner lies at
// (x, y). The size never drops below one pixel.
func (s Selection) WithEndPoint(x, y float64) Selection {
	s.W = math.Max(math.Abs(x-s.X), 1)
	s.H = math.Max(math.Abs(y-s.Y), 1)
	return s
}

// Clamp forces the selection inside a width x height raster: the size is
// limited to [1, width] x [1, height] first, then the origin is shifted so
// that the whole rectangle fits. A non-positive raster size only enforces
// the lower bounds.
func (s Selection) Clamp(width, height int) Selection {
	s.W = clampFloat(s.W, 1, float64(width))
	s.H = clampFloat(s.H, 1, float64(height))
	s.X = clampFloat(s.X, 0, float64(width)-s.W)
	s.Y = clampFloat(s.Y, 0, float64(height)-s.H)
	return s
}

// Round rounds the selection to whole pixels and clamps the result to the
// raster. Rounding can push x+w one pixel past the edge, so the clamp is
// repeated on the integers.
func (s Selection) Round(width, height int) Bounds {
	b := Bounds{
		X: int(math.Round(s.X)),
		Y: int(math.Round(s.Y)),
		W: int(math.Round(s.W)),
		H: int(math.Round(s.H)),
	}
	b.W = clampInt(b.W, 1, width)
	b.H = clampInt(b.H, 1, height)
	b.X = clampInt(b.X, 0, width-b.W)
	b.Y = clampInt(b.Y, 0, height-b.H)
	return b
}

// Contains reports whether the pixel (x, y) lies inside the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Area returns the number of pixels in the bounds, which is also the cycle
// length of a scan over them.
func (b Bounds) Area() int {
	return b.W * b.H
}

// clampFloat limits v to [lo, hi]. An upper bound below lo is ignored so
// that an empty raster only enforces the minimum.
func clampFloat(v, lo, hi float64) float64 {
	if hi >= lo && v > hi {
		v = hi
	}
	if v < lo || math.IsNaN(v) {
		v = lo
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if hi >= lo && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
