// Package fragment implements the final stage of a fragment shader: taking a
// shaded linear colour to an encoded 8-bit pixel and merging it into a
// framebuffer.
package fragment

import (
	"fmt"
	"math"
	"strings"
)

// ToneMapping selects the HDR → LDR curve applied after exposure.
type ToneMapping int

const (
	NoToneMapping ToneMapping = iota
	LinearToneMapping
	ReinhardToneMapping
	ACESFilmicToneMapping
)

// ColorSpace selects the transfer function used to encode output values.
type ColorSpace int

const (
	LinearColorSpace ColorSpace = iota
	SRGBColorSpace
	GammaColorSpace
)

// DefaultGamma is used by GammaColorSpace when Output.Gamma is zero.
const DefaultGamma = 2.2

// Color is a linear RGBA colour with straight (non-premultiplied) alpha.
type Color [4]float64

// Output holds the per-frame settings of the output stage.
type Output struct {
	ToneMapping   ToneMapping
	Exposure      float64 // applied before tone mapping; zero means 1
	ColorSpace    ColorSpace
	Gamma         float64
	Dither        bool
	Premultiplied bool
	Opaque        bool
}

// DefaultOutput returns ACES tone mapping with gamma 2.2 encoding.
func DefaultOutput() Output {
	return Output{
		ToneMapping: ACESFilmicToneMapping,
		Exposure:    1.05,
		ColorSpace:  GammaColorSpace,
		Gamma:       DefaultGamma,
	}
}

// 4×4 Bayer matrix for ordered dithering.
var bayer4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Shade converts a linear colour at pixel (x, y) to an encoded 8-bit RGBA value.
// The result is premultiplied when o.Premultiplied is set.
func (o *Output) Shade(c Color, x, y int) [4]uint8 {
	r := o.toneMap(c[0])
	g := o.toneMap(c[1])
	b := o.toneMap(c[2])

	r, g, b = o.encode(r), o.encode(g), o.encode(b)

	if o.Dither {
		d := ((bayer4[y&3][x&3]+0.5)/16 - 0.5) / 255
		r, g, b = r+d, g+d, b+d
	}

	a := c[3]
	if o.Opaque {
		a = 1
	}
	a = saturate(a)
	if o.Premultiplied {
		r, g, b = r*a, g*a, b*a
	}

	return [4]uint8{clamp255(r * 255), clamp255(g * 255), clamp255(b * 255), clamp255(a * 255)}
}

func (o *Output) toneMap(x float64) float64 {
	if x < 0 {
		x = 0
	}
	x *= o.exposure()
	switch o.ToneMapping {
	case ReinhardToneMapping:
		return saturate(x / (1 + x))
	case ACESFilmicToneMapping:
		return saturate(ACESTonemap(x))
	}
	return saturate(x)
}

// exposure treats an unset value as 1 so the zero Output is a passthrough.
func (o *Output) exposure() float64 {
	if o.Exposure <= 0 {
		return 1
	}
	return o.Exposure
}

func (o *Output) encode(x float64) float64 {
	switch o.ColorSpace {
	case SRGBColorSpace:
		return linearToSRGB(x)
	case GammaColorSpace:
		return math.Pow(x, 1/o.gamma())
	}
	return x
}

func (o *Output) gamma() float64 {
	if o.Gamma <= 0 {
		return DefaultGamma
	}
	return o.Gamma
}

// DecodeTexel converts an encoded 8-bit channel to linear using the inverse
// of the output transfer function.
func (o *Output) DecodeTexel(v uint8) float64 {
	switch o.ColorSpace {
	case SRGBColorSpace:
		return srgbToLinear[v]
	case GammaColorSpace:
		if o.gamma() == DefaultGamma {
			return gammaToLinear[v]
		}
		return math.Pow(float64(v)/255.0, o.gamma())
	}
	return float64(v) / 255.0
}

// ACESTonemap applies the ACES Filmic approximation to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func linearToSRGB(x float64) float64 {
	if x <= 0.0031308 {
		return x * 12.92
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}

func srgbDecode(x float64) float64 {
	if x <= 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}

// Precomputed 8-bit → linear lookup tables.
var srgbToLinear, gammaToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		f := float64(i) / 255.0
		srgbToLinear[i] = srgbDecode(f)
		gammaToLinear[i] = math.Pow(f, DefaultGamma)
	}
}

func saturate(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// ParseToneMapping accepts "none", "linear", "reinhard" and "aces".
func ParseToneMapping(s string) (ToneMapping, error) {
	switch strings.ToLower(s) {
	case "", "aces", "acesfilmic":
		return ACESFilmicToneMapping, nil
	case "none":
		return NoToneMapping, nil
	case "linear":
		return LinearToneMapping, nil
	case "reinhard":
		return ReinhardToneMapping, nil
	}
	return 0, fmt.Errorf("fragment: unknown tone mapping %q", s)
}

// ParseColorSpace accepts "linear", "srgb" and "gamma".
func ParseColorSpace(s string) (ColorSpace, error) {
	switch strings.ToLower(s) {
	case "", "gamma":
		return GammaColorSpace, nil
	case "srgb":
		return SRGBColorSpace, nil
	case "linear":
		return LinearColorSpace, nil
	}
	return 0, fmt.Errorf("fragment: unknown color space %q", s)
}
