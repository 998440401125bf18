package colorspace

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pictogram-mcp/internal/scan"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConvert_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		rgb     scan.RGB
		wantHue float64
		wantSat float64
		wantLum float64
	}{
		{"black", scan.RGB{R: 0, G: 0, B: 0}, 0, 0, 0},
		{"white", scan.RGB{R: 255, G: 255, B: 255}, 0, 0, 1},
		{"pure red", scan.RGB{R: 255, G: 0, B: 0}, 0, 1, 0.5},
		{"pure green", scan.RGB{R: 0, G: 255, B: 0}, 120, 1, 0.5},
		{"pure blue", scan.RGB{R: 0, G: 0, B: 255}, 240, 1, 0.5},
		{"yellow", scan.RGB{R: 255, G: 255, B: 0}, 60, 1, 0.5},
		{"cyan", scan.RGB{R: 0, G: 255, B: 255}, 180, 1, 0.5},
		{"magenta", scan.RGB{R: 255, G: 0, B: 255}, 300, 1, 0.5},
		{"dark red", scan.RGB{R: 51, G: 0, B: 0}, 0, 1, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Convert(tt.rgb)
			if !approx(s.Hue, tt.wantHue) {
				t.Errorf("Hue: got %v, want %v", s.Hue, tt.wantHue)
			}
			if !approx(s.Saturation, tt.wantSat) {
				t.Errorf("Saturation: got %v, want %v", s.Saturation, tt.wantSat)
			}
			if !approx(s.Luminance, tt.wantLum) {
				t.Errorf("Luminance: got %v, want %v", s.Luminance, tt.wantLum)
			}
		})
	}
}

func TestConvert_EchoesChannels(t *testing.T) {
	s := Convert(scan.RGB{R: 255, G: 128, B: 64})
	if s.Red != 255 || s.Green != 128 || s.Blue != 64 {
		t.Errorf("channels: got (%v,%v,%v), want (255,128,64)", s.Red, s.Green, s.Blue)
	}
}

func TestConvert_Achromatic(t *testing.T) {
	for v := 0; v < 256; v++ {
		s := Convert(scan.RGB{R: uint8(v), G: uint8(v), B: uint8(v)})
		if s.Hue != 0 || s.Saturation != 0 {
			t.Fatalf("grey %d: hue %v sat %v, want 0 0", v, s.Hue, s.Saturation)
		}
		if math.IsNaN(s.Luminance) {
			t.Fatalf("grey %d: luminance is NaN", v)
		}
	}
}

func TestConvert_TiedMaximum(t *testing.T) {
	tests := []struct {
		name string
		rgb  scan.RGB
		want float64
	}{
		{"red and green", scan.RGB{R: 200, G: 200, B: 10}, 60},
		{"green and blue", scan.RGB{R: 10, G: 200, B: 200}, 180},
		{"red and blue", scan.RGB{R: 200, G: 10, B: 200}, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.rgb).Hue; !approx(got, tt.want) {
				t.Errorf("Hue: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvert_Ranges(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				s := Convert(scan.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
				if s.Hue < 0 || s.Hue >= 360 {
					t.Fatalf("(%d,%d,%d): hue %v out of range", r, g, b, s.Hue)
				}
				if s.Saturation < 0 || s.Saturation > 1 {
					t.Fatalf("(%d,%d,%d): saturation %v out of range", r, g, b, s.Saturation)
				}
				if s.Luminance < 0 || s.Luminance > 1 {
					t.Fatalf("(%d,%d,%d): luminance %v out of range", r, g, b, s.Luminance)
				}
			}
		}
	}
}

func TestConvert_MatchesColorful(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				s := Convert(scan.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
				c := colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
				h, sat, l := c.Hsl()
				if math.Abs(s.Hue-h) > 1e-6 || math.Abs(s.Saturation-sat) > 1e-6 || math.Abs(s.Luminance-l) > 1e-6 {
					t.Fatalf("(%d,%d,%d): got (%v,%v,%v), colorful (%v,%v,%v)",
						r, g, b, s.Hue, s.Saturation, s.Luminance, h, sat, l)
				}
			}
		}
	}
}

func BenchmarkConvert(b *testing.B) {
	c := scan.RGB{R: 12, G: 200, B: 99}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Convert(c)
	}
}
