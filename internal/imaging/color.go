package imaging

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pictogram-mcp/internal/scan"
)

// ColorFrequency represents a color and its occurrence frequency in a selection.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#rrggbb" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        scan.RGB `json:"rgb"`        // RGB components (quantized)
}

// SelectionColorsResult summarizes the colors a scan over a selection will emit.
type SelectionColorsResult struct {
	// Bounds is the selection that was analyzed.
	Bounds scan.Bounds `json:"bounds"`

	// Pixels is the number of pixels in the selection, which is also the
	// length of one scan cycle.
	Pixels int `json:"pixels"`

	// Mean is the average color, blended in linear RGB.
	Mean ColorFrequency `json:"mean"`

	// Dominant lists the most common quantized colors, most frequent first.
	Dominant []ColorFrequency `json:"dominant"`
}

// SelectionColors analyzes the pixels inside bounds of a row-major raster.
//
// Parameters:
//   - pixels: The raster, width*height pixels in row-major order.
//   - width, height: Raster dimensions.
//   - bounds: The rounded selection to analyze. Must lie inside the raster.
//   - count: Maximum number of dominant colors to return.
//
// # Color Quantization
//
// To group similar colors, each component is divided by 16 and rounded down
// before counting, so colors within 16 units of each other (per component)
// are grouped together:
//
//	quantized = (original / 16) * 16
//
// # Mean Color
//
// The mean is accumulated in linear RGB rather than sRGB so that averaging a
// black and a white pixel gives a perceptually middle grey.
func SelectionColors(pixels []scan.RGB, width, height int, bounds scan.Bounds, count int) (*SelectionColorsResult, error) {
	if len(pixels) == 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("invalid raster: %d pixels for %dx%d", len(pixels), width, height)
	}
	if bounds.W <= 0 || bounds.H <= 0 || bounds.X < 0 || bounds.Y < 0 ||
		bounds.X+bounds.W > width || bounds.Y+bounds.H > height {
		return nil, fmt.Errorf("selection %+v outside image bounds %dx%d", bounds, width, height)
	}
	if count < 1 {
		count = 1
	}

	counts := make(map[scan.RGB]int)
	var lr, lg, lb float64
	total := 0

	for y := bounds.Y; y < bounds.Y+bounds.H; y++ {
		row := pixels[y*width+bounds.X : y*width+bounds.X+bounds.W]
		for _, p := range row {
			r, g, b := toColorful(p).LinearRgb()
			lr += r
			lg += g
			lb += b

			q := scan.RGB{R: p.R / 16 * 16, G: p.G / 16 * 16, B: p.B / 16 * 16}
			counts[q]++
			total++
		}
	}

	n := float64(total)
	mean := colorful.LinearRgb(lr/n, lg/n, lb/n).Clamped()
	mr, mg, mb := mean.RGB255()

	colors := make([]ColorFrequency, 0, len(counts))
	for c, cnt := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        toColorful(c).Hex(),
			Percentage: float64(cnt) / n * 100,
			RGB:        c,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}

	return &SelectionColorsResult{
		Bounds: bounds,
		Pixels: total,
		Mean: ColorFrequency{
			Hex:        mean.Hex(),
			Percentage: 100,
			RGB:        scan.RGB{R: mr, G: mg, B: mb},
		},
		Dominant: colors,
	}, nil
}

// Hex formats a pixel as "#rrggbb".
func Hex(c scan.RGB) string {
	return toColorful(c).Hex()
}

func toColorful(c scan.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}
