// Package scan implements the pixel store that drives the pictogram sequencer.
//
// A Store holds a decoded raster as a flat, row-major slice of RGB pixels and
// a scan cursor confined to a selection rectangle. Each call to Advance moves
// the cursor one pixel to the right inside the selection, wraps to the left
// edge of the next selection row at the right edge, and returns to the
// top-left corner after the last row. The resulting sequence is infinite and
// cyclic with a period of exactly w*h steps.
//
// # Coordinate System
//
// Selections are expressed in raw image-pixel units with (0,0) at the top-left
// corner. They are stored as float64 so interactive gestures can move them by
// fractions of a pixel; the scan only sees them after rounding, which happens
// once per Restart and never inside Advance.
//
// # Thread Safety
//
// Store is not safe for concurrent use. Callers that share a Store between
// goroutines must guard every method with a single mutex (see package
// pictogram).
//
// # Performance
//
// Advance and CurrentPixel are O(1) and never allocate. Load and SetSelection
// are the only operations that may allocate.
package scan
