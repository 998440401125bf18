// Package colorspace converts raster pixels into the six signals the
// sequencer emits: red, green, blue, hue, saturation and luminance.
package colorspace

import (
	"github.com/ironsheep/pictogram-mcp/internal/scan"
)

// Sample is one pixel expressed as six scalar channels.
//
// Red, Green and Blue echo the 8-bit input (0-255). Hue is in degrees
// (0-360), Saturation and Luminance are in the range 0-1.
type Sample struct {
	Red        float64 `json:"red"`
	Green      float64 `json:"green"`
	Blue       float64 `json:"blue"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Luminance  float64 `json:"luminance"`
}

// Convert derives a Sample from an RGB pixel using the HSL model.
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Find min and max components
//  3. Luminance is (max + min) / 2
//  4. Grey pixels (max == min) stop here with hue and saturation 0
//  5. Saturation depends on which half of the luminance range we are in
//  6. Hue comes from the sector of the channel holding max
//
// When two channels share the maximum the first of red, green, blue wins.
// Every sector formula yields the same angle for such ties.
func Convert(c scan.RGB) Sample {
	s := Sample{
		Red:   float64(c.R),
		Green: float64(c.G),
		Blue:  float64(c.B),
	}

	r := s.Red / 255.0
	g := s.Green / 255.0
	b := s.Blue / 255.0

	max := max(r, g, b)
	min := min(r, g, b)
	s.Luminance = (max + min) / 2.0

	if max == min {
		return s
	}

	d := max - min
	if s.Luminance <= 0.5 {
		s.Saturation = d / (max + min)
	} else {
		s.Saturation = d / (2.0 - max - min)
	}
	s.Saturation = clamp01(s.Saturation)

	var h float64
	switch max {
	case r:
		h = (g - b) / d
	case g:
		h = 2.0 + (b-r)/d
	default:
		h = 4.0 + (r-g)/d
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	s.Hue = h

	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
