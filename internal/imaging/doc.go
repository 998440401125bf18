// Package imaging provides the image-side collaborators of the pictogram sequencer.
//
// The scanner in package scan only understands a flat row-major RGB raster.
// This package turns image files into such rasters, renders a preview of the
// selection box for display, crops the selected region and summarizes the
// colors a selection contains.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner, X increasing rightward and Y increasing downward.
// Selections are expressed in image space; RenderSelection reports the zoom
// factors needed to map them to the preview (screen space) and back.
//
// # Supported Formats
//
// PNG, JPEG, GIF, BMP, TIFF and WebP files are decoded. EXIF orientation is
// applied when decoding, and every image is converted to 8 bits per channel
// with the alpha channel dropped.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and only read their inputs.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Files that cannot be opened or decoded
//   - Selections outside the image bounds
//   - Encoding errors during image output
package imaging
