package raster

import (
	"image"
	"math"

	"mu-geom/internal/fragment"
)

// Vertex is a projected vertex: screen position, depth and texture coordinate.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// Surface describes how a triangle is coloured.
type Surface struct {
	Texture *image.NRGBA // nil = flat Color
	Color   [4]uint8     // encoded RGBA
	Shade   float64      // lighting scalar from LightConfig.ComputeShade
	Blend   fragment.BlendMode
}

// RasterizeTriangle rasterizes a single triangle with texture mapping,
// flat lighting and the fragment output stage.
//
// Normal blending tests and writes depth. Additive blending does neither,
// so glow surfaces accumulate over whatever is behind them.
func RasterizeTriangle(fb *FrameBuffer, tri [3]Vertex, s Surface, out *fragment.Output) {
	x0, y0, z0 := tri[0].X, tri[0].Y, tri[0].Z
	x1, y1, z1 := tri[1].X, tri[1].Y, tri[1].Z
	x2, y2, z2 := tri[2].X, tri[2].Y, tri[2].Z

	// Bounding box
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	minX, maxX = max(minX, 0), min(maxX, fb.Width-1)
	minY, maxY = max(minY, 0), min(maxY, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	depthTest := s.Blend == fragment.BlendNormal

	// Flat colour decoded once.
	base := fragment.Color{
		out.DecodeTexel(s.Color[0]) * s.Shade,
		out.DecodeTexel(s.Color[1]) * s.Shade,
		out.DecodeTexel(s.Color[2]) * s.Shade,
		float64(s.Color[3]) / 255,
	}

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			zIdx := rowOff + sx
			z := w0*z0 + w1*z1 + w2*z2
			if depthTest && z <= fb.ZBuf[zIdx] {
				continue
			}

			c := base
			if s.Texture != nil {
				u := w0*tri[0].U + w1*tri[1].U + w2*tri[2].U
				v := w0*tri[0].V + w1*tri[1].V + w2*tri[2].V
				texel := SampleBilinear(s.Texture, u, v)
				c = fragment.Color{
					out.DecodeTexel(texel[0]) * s.Shade,
					out.DecodeTexel(texel[1]) * s.Shade,
					out.DecodeTexel(texel[2]) * s.Shade,
					float64(texel[3]) / 255,
				}
			}

			// Skip transparent texels
			if c[3] < 8.0/255 {
				continue
			}
			if depthTest {
				fb.ZBuf[zIdx] = z
			}

			pxIdx := zIdx * 4
			out.Blend(fb.Color[pxIdx:pxIdx+4], out.Shade(c, sx, sy), s.Blend)
		}
	}
}
