package raster

import (
	"image"
	"math"
)

// SampleBilinear filters tex at (u, v) with repeat wrapping and returns the
// encoded RGBA texel. Decoding to linear is left to the fragment stage.
// tex.Rect must start at the origin.
func SampleBilinear(tex *image.NRGBA, u, v float64) [4]uint8 {
	w, h := tex.Rect.Dx(), tex.Rect.Dy()
	if w == 0 || h == 0 {
		return [4]uint8{}
	}

	fx := wrapUnit(u) * float64(w-1)
	fy := wrapUnit(v) * float64(h-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := (x0+1)%w, (y0+1)%h
	dx, dy := fx-float64(x0), fy-float64(y0)

	p00 := y0*tex.Stride + x0*4
	p10 := y0*tex.Stride + x1*4
	p01 := y1*tex.Stride + x0*4
	p11 := y1*tex.Stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]uint8
	for c := 0; c < 4; c++ {
		f := float64(tex.Pix[p00+c])*w00 + float64(tex.Pix[p10+c])*w10 +
			float64(tex.Pix[p01+c])*w01 + float64(tex.Pix[p11+c])*w11
		out[c] = uint8(f + 0.5)
	}
	return out
}

// wrapUnit maps x into [0, 1).
func wrapUnit(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		return 0
	}
	return x
}
