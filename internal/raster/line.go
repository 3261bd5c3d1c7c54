package raster

import (
	"math"

	"mu-geom/internal/fragment"
)

// DrawLine draws a one-pixel DDA line between two projected endpoints.
// Depth is interpolated along the line; ties with the z-buffer win so
// edges drawn over coplanar faces stay visible.
func DrawLine(fb *FrameBuffer, a, b Vertex, c fragment.Color, out *fragment.Output) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		plot(fb, a.X, a.Y, math.Max(a.Z, b.Z), c, out)
		return
	}

	inv := 1.0 / float64(steps)
	for i := 0; i <= steps; i++ {
		t := float64(i) * inv
		plot(fb, a.X+dx*t, a.Y+dy*t, a.Z+(b.Z-a.Z)*t, c, out)
	}
}

func plot(fb *FrameBuffer, fx, fy, z float64, c fragment.Color, out *fragment.Output) {
	x := int(math.Floor(fx + 0.5))
	y := int(math.Floor(fy + 0.5))
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	zIdx := y*fb.Width + x
	if z < fb.ZBuf[zIdx] {
		return
	}
	fb.ZBuf[zIdx] = z
	out.Blend(fb.Color[zIdx*4:zIdx*4+4], out.Shade(c, x, y), fragment.BlendNormal)
}
