package raster

import (
	"image"

	"mu-geom/internal/fragment"
	"mu-geom/internal/mathutil"
	"mu-geom/internal/postprocess"
	"mu-geom/internal/scene"
	"mu-geom/internal/texture"
	"mu-geom/internal/viewmatrix"
)

// Options controls a single render.
type Options struct {
	Size        int
	Supersample int
	Output      fragment.Output
	Light       LightConfig
}

// Render rasterizes a scene at Size*Supersample pixels square. Triangles are
// drawn before lines so edges overlay faces.
func Render(s *scene.Scene, textures texture.Resolver, opts Options) image.Image {
	supersample := max(opts.Supersample, 1)
	renderSize := opts.Size * supersample
	out := opts.Output

	fb := NewFrameBuffer(renderSize, renderSize, out.Premultiplied)
	if s.Background != "" && textures != nil {
		if bg := textures.Resolve(s.Background); bg != nil {
			fb.Fill(postprocess.Fit(bg, renderSize))
		}
	}

	world := s.Resolve()
	points := world.Points()
	if len(points) == 0 {
		return fb.Image()
	}

	R := viewmatrix.ViewMatrix(s.Camera)
	center, span := viewmatrix.Bounds(points, R)

	// Keep at least three quarters of the canvas for geometry at small sizes.
	margin := min(16*supersample, renderSize/8)
	scale := float64(renderSize-2*margin) / span

	px, py, pz := viewmatrix.ProjectPoints(points, R, center, scale, renderSize, s.Camera)
	vertex := func(i int) Vertex {
		return Vertex{X: px[i], Y: py[i], Z: pz[i]}
	}

	lc := opts.Light
	if lc == (LightConfig{}) {
		lc = DefaultLightConfig()
	}
	if s.Light != nil {
		lc = lc.WithKey(mathutil.Vec3(*s.Light))
	}
	triBase := len(world.Lines) * 2
	for ti, tri := range world.Triangles {
		var v [3]Vertex
		for k := 0; k < 3; k++ {
			v[k] = vertex(triBase + ti*3 + k)
			v[k].U, v[k].V = tri.UVs[k][0], tri.UVs[k][1]
		}

		// View-space normal with Y flipped to match screen coordinates.
		n := R.MulVec3(tri.Normal)
		n = mathutil.Vec3{n[0], -n[1], n[2]}.Normalize()

		surf := Surface{
			Color: tri.Color,
			Shade: lc.ComputeShade(n),
			Blend: tri.Blend,
		}
		if tri.HasUV && tri.Texture != "" && textures != nil {
			surf.Texture = textures.Resolve(tri.Texture)
		}
		RasterizeTriangle(fb, v, surf, &out)
	}

	for li, l := range world.Lines {
		c := fragment.Color{
			out.DecodeTexel(l.Color[0]),
			out.DecodeTexel(l.Color[1]),
			out.DecodeTexel(l.Color[2]),
			float64(l.Color[3]) / 255,
		}
		DrawLine(fb, vertex(li*2), vertex(li*2+1), c, &out)
	}

	return fb.Image()
}
