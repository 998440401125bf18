package imaging

import (
	"math"
	"testing"

	"github.com/ironsheep/pictogram-mcp/internal/scan"
)

// quadrantRaster flattens createPatternImage for the color tests.
func quadrantRaster(width, height int) []scan.RGB {
	pixels, _, _ := Flatten(createPatternImage(width, height))
	return pixels
}

func TestSelectionColors_SingleColor(t *testing.T) {
	pixels := quadrantRaster(10, 10)

	result, err := SelectionColors(pixels, 10, 10, scan.Bounds{X: 0, Y: 0, W: 5, H: 5}, 3)
	if err != nil {
		t.Fatalf("SelectionColors failed: %v", err)
	}

	if result.Pixels != 25 {
		t.Errorf("Pixels: got %d, want 25", result.Pixels)
	}
	if len(result.Dominant) != 1 {
		t.Fatalf("Dominant: got %d colors, want 1", len(result.Dominant))
	}
	if result.Dominant[0].Hex != "#f00000" {
		t.Errorf("Dominant hex: got %s, want #f00000 (quantized red)", result.Dominant[0].Hex)
	}
	if result.Dominant[0].Percentage != 100 {
		t.Errorf("Percentage: got %v, want 100", result.Dominant[0].Percentage)
	}
	if result.Mean.Hex != "#ff0000" {
		t.Errorf("Mean hex: got %s, want #ff0000", result.Mean.Hex)
	}
}

func TestSelectionColors_QuadrantSplit(t *testing.T) {
	pixels := quadrantRaster(10, 10)

	// Right half covers green (top) and white (bottom) equally.
	result, err := SelectionColors(pixels, 10, 10, scan.Bounds{X: 5, Y: 0, W: 5, H: 10}, 5)
	if err != nil {
		t.Fatalf("SelectionColors failed: %v", err)
	}

	if len(result.Dominant) != 2 {
		t.Fatalf("Dominant: got %d colors, want 2", len(result.Dominant))
	}
	for _, c := range result.Dominant {
		if math.Abs(c.Percentage-50) > 1e-9 {
			t.Errorf("%s: got %v%%, want 50%%", c.Hex, c.Percentage)
		}
	}
	// Equal shares are ordered by hex.
	if result.Dominant[0].Hex != "#00f000" {
		t.Errorf("first color: got %s, want #00f000", result.Dominant[0].Hex)
	}
	if result.Mean.RGB.G != 255 {
		t.Errorf("Mean green: got %d, want 255", result.Mean.RGB.G)
	}
}

func TestSelectionColors_CountLimit(t *testing.T) {
	pixels := quadrantRaster(10, 10)

	result, err := SelectionColors(pixels, 10, 10, scan.Bounds{X: 0, Y: 0, W: 10, H: 10}, 2)
	if err != nil {
		t.Fatalf("SelectionColors failed: %v", err)
	}
	if len(result.Dominant) != 2 {
		t.Errorf("Dominant: got %d colors, want 2", len(result.Dominant))
	}
}

func TestSelectionColors_InvalidInput(t *testing.T) {
	pixels := quadrantRaster(4, 4)

	tests := []struct {
		name   string
		pixels []scan.RGB
		bounds scan.Bounds
	}{
		{"empty raster", nil, scan.Bounds{X: 0, Y: 0, W: 1, H: 1}},
		{"wrong size", pixels[:10], scan.Bounds{X: 0, Y: 0, W: 1, H: 1}},
		{"past right edge", pixels, scan.Bounds{X: 3, Y: 0, W: 2, H: 1}},
		{"past bottom edge", pixels, scan.Bounds{X: 0, Y: 2, W: 1, H: 3}},
		{"negative origin", pixels, scan.Bounds{X: -1, Y: 0, W: 1, H: 1}},
		{"zero size", pixels, scan.Bounds{X: 0, Y: 0, W: 0, H: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SelectionColors(tt.pixels, 4, 4, tt.bounds, 3); err == nil {
				t.Error("SelectionColors should fail")
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(scan.RGB{R: 255, G: 128, B: 64}); got != "#ff8040" {
		t.Errorf("Hex: got %s, want #ff8040", got)
	}
}
