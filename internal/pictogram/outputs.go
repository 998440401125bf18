package pictogram

import (
	"github.com/ironsheep/pictogram-mcp/internal/colorspace"
)

// Output voltage range of every channel before scale and offset are applied.
const (
	MaxVoltage = 10.0

	MinScale  = 0.0
	MaxScale  = 1.0
	MinOffset = -5.0
	MaxOffset = 5.0
)

// Params are the user controls applied to every output.
type Params struct {
	// Scale multiplies each 0-10 V channel. Range 0-1.
	Scale float64 `json:"scale"`

	// Offset is added after scaling, in volts. Range -5 to 5.
	Offset float64 `json:"offset"`
}

// DefaultParams halves the output range and adds no offset.
var DefaultParams = Params{Scale: 0.5, Offset: 0}

// Clamp limits both controls to their ranges.
func (p Params) Clamp() Params {
	p.Scale = min(max(p.Scale, MinScale), MaxScale)
	p.Offset = min(max(p.Offset, MinOffset), MaxOffset)
	return p
}

// Outputs are the six channel voltages derived from one sample.
type Outputs struct {
	Red        float64 `json:"red"`
	Green      float64 `json:"green"`
	Blue       float64 `json:"blue"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Luminance  float64 `json:"luminance"`
}

// Outputs maps every channel of s onto 0-10 V, then applies scale and offset.
func (p Params) Outputs(s colorspace.Sample) Outputs {
	volts := func(v, maxIn float64) float64 {
		return rescale(v, 0, maxIn, 0, MaxVoltage)*p.Scale + p.Offset
	}
	return Outputs{
		Red:        volts(s.Red, 255),
		Green:      volts(s.Green, 255),
		Blue:       volts(s.Blue, 255),
		Hue:        volts(s.Hue, 360),
		Saturation: volts(s.Saturation, 1),
		Luminance:  volts(s.Luminance, 1),
	}
}

func rescale(x, xMin, xMax, yMin, yMax float64) float64 {
	return yMin + (x-xMin)/(xMax-xMin)*(yMax-yMin)
}
