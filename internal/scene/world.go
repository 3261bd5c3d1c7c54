package scene

import (
	"mu-geom/internal/fragment"
	"mu-geom/internal/mathutil"
)

// Matrix compiles the UV transform into a homogeneous 2D matrix.
func (t *UVTransform) Matrix() mathutil.Mat3 {
	if t == nil {
		return mathutil.Mat3Identity()
	}
	rep := [2]float64{1, 1}
	if t.Repeat != nil {
		rep = *t.Repeat
	}
	return mathutil.Mat3FromTranslation(t.Offset[0]+t.Center[0], t.Offset[1]+t.Center[1]).
		Rotate(mathutil.Deg2Rad(t.Rotation)).
		Scale(rep[0], rep[1]).
		Translate(-t.Center[0], -t.Center[1])
}

// Resolve flattens the scene into world-space geometry. Node references
// that are out of range are treated as world space, matching how
// WorldMatrices treats a bad parent as a root.
func (s *Scene) Resolve() *World {
	worlds := WorldMatrices(s.Nodes)
	normals, normalOK := NormalMatrices(worlds)

	w := &World{
		Lines:     make([]WorldLine, 0, len(s.Lines)),
		Triangles: make([]WorldTriangle, 0, len(s.Triangles)),
	}

	for _, l := range s.Lines {
		line := mathutil.NewLine3(mathutil.Vec3f(l.Start), mathutil.Vec3f(l.End))
		if ni, ok := nodeIndex(l.Node, len(worlds)); ok {
			line = line.ApplyMat4(worlds[ni])
		}
		w.Lines = append(w.Lines, WorldLine{Line: line, Color: colorOrDefault(l.Color)})
	}

	for _, t := range s.Triangles {
		if len(t.Verts) != 3 {
			continue
		}
		wt := WorldTriangle{
			Texture: t.Texture,
			Color:   colorOrDefault(t.Color),
		}
		wt.Blend, _ = fragment.ParseBlendMode(t.Blend)

		var local [3]mathutil.Vec3
		for k := 0; k < 3; k++ {
			local[k] = mathutil.Vec3f(t.Verts[k]).Vec3()
		}
		localNormal := local[1].Sub(local[0]).Cross(local[2].Sub(local[0]))

		if ni, ok := nodeIndex(t.Node, len(worlds)); ok {
			world := worlds[ni]
			for k := 0; k < 3; k++ {
				wt.Verts[k] = world.MulPoint(local[k]).Vec3f()
			}
			if normalOK[ni] {
				wt.Normal = normals[ni].MulVec3(localNormal).Normalize()
			} else {
				// Collapsed transform: fall back to the transformed winding.
				a, b, c := wt.Verts[0].Vec3(), wt.Verts[1].Vec3(), wt.Verts[2].Vec3()
				wt.Normal = b.Sub(a).Cross(c.Sub(a)).Normalize()
			}
		} else {
			for k := 0; k < 3; k++ {
				wt.Verts[k] = local[k].Vec3f()
			}
			wt.Normal = localNormal.Normalize()
		}

		if len(t.UVs) == 3 {
			wt.HasUV = true
			m := t.UVTransform.Matrix()
			for k := 0; k < 3; k++ {
				u, v := m.MulVec2(float64(t.UVs[k][0]), float64(t.UVs[k][1]))
				wt.UVs[k] = [2]float64{u, v}
			}
		}

		w.Triangles = append(w.Triangles, wt)
	}
	return w
}

func nodeIndex(ref *int, n int) (int, bool) {
	if ref == nil || *ref < 0 || *ref >= n {
		return 0, false
	}
	return *ref, true
}

func colorOrDefault(c *[4]uint8) [4]uint8 {
	if c == nil {
		return DefaultColor
	}
	return *c
}
