package scene_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mu-geom/internal/fragment"
	"mu-geom/internal/mathutil"
	"mu-geom/internal/scene"
)

const sampleScene = `{
  "camera": {"preset": "flat", "rotation": [0, 30, 0]},
  "nodes": [
    {"name": "root", "translation": [10, 0, 0]},
    {"name": "arm", "parent": 0, "rotation": [0, 0, 90], "scale": [2, 2, 2]}
  ],
  "lines": [
    {"node": 1, "start": [0, 0, 0], "end": [1, 0, 0], "color": [255, 0, 0, 255]},
    {"start": [0, 0, 0], "end": [0, 3, 4]}
  ],
  "triangles": [
    {"node": 0, "verts": [[0,0,0],[1,0,0],[0,1,0]], "uvs": [[0,0],[1,0],[0,1]], "blend": "additive"}
  ]
}`

func intPtr(v int) *int { return &v }

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleScene), 0644))

	s, err := scene.Load(path)
	require.NoError(t, err)
	require.Len(t, s.Nodes, 2)
	require.Equal(t, "flat", s.Camera.Preset)

	w := s.Resolve()
	require.Len(t, w.Lines, 2)
	require.Len(t, w.Triangles, 1)

	// arm: translate(10,0,0) · Rz(90°) · S(2): (1,0,0) → (10,2,0)
	arm := w.Lines[0].Line
	require.True(t, arm.Equals(mathutil.Line3FromValues(10, 0, 0, 10, 2, 0), 1e-5), "%v", arm)
	require.InDelta(t, 2.0, float64(arm.Magnitude()), 1e-5)
	require.Equal(t, [4]uint8{255, 0, 0, 255}, w.Lines[0].Color)

	require.Equal(t, float32(5), w.Lines[1].Line.Magnitude())
	require.Equal(t, scene.DefaultColor, w.Lines[1].Color)

	tri := w.Triangles[0]
	require.Equal(t, fragment.BlendAdditive, tri.Blend)
	require.True(t, tri.HasUV)
	require.Equal(t, mathutil.Vec3f{10, 0, 0}, tri.Verts[0])
	require.InDelta(t, 1.0, tri.Normal[2], 1e-12)

	pts := w.Points()
	require.Len(t, pts, 7)
	require.Equal(t, w.Lines[0].Line.Start, pts[0])
	require.Equal(t, tri.Verts[2], pts[6])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := scene.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsBadJSON(t *testing.T) {
	_, err := scene.Parse([]byte(`{"nodes": [`), "broken")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		s    scene.Scene
		want error
	}{
		{"forward parent", scene.Scene{Nodes: []scene.Node{{Parent: intPtr(1)}, {}}}, scene.ErrInvalidNode},
		{"self parent", scene.Scene{Nodes: []scene.Node{{Parent: intPtr(0)}}}, scene.ErrInvalidNode},
		{"line node", scene.Scene{Lines: []scene.Line{{Node: intPtr(0)}}}, scene.ErrInvalidNode},
		{"triangle node", scene.Scene{Triangles: []scene.Triangle{{Node: intPtr(-1), Verts: make([][3]float32, 3)}}}, scene.ErrInvalidNode},
		{"two verts", scene.Scene{Triangles: []scene.Triangle{{Verts: make([][3]float32, 2)}}}, scene.ErrInvalidTriangle},
		{"uv count", scene.Scene{Triangles: []scene.Triangle{{Verts: make([][3]float32, 3), UVs: make([][2]float32, 1)}}}, scene.ErrInvalidTriangle},
		{"blend", scene.Scene{Triangles: []scene.Triangle{{Verts: make([][3]float32, 3), Blend: "screen"}}}, scene.ErrInvalidTriangle},
		{"camera", scene.Scene{Camera: scene.Camera{Preset: "fisheye"}}, scene.ErrInvalidCamera},
		{"zero light", scene.Scene{Light: &[3]float64{}}, scene.ErrInvalidLight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.s.Validate(), tc.want)
		})
	}

	ok := scene.Scene{
		Nodes: []scene.Node{{}, {Parent: intPtr(0)}},
		Lines: []scene.Line{{Node: intPtr(1)}},
	}
	require.NoError(t, ok.Validate())
}

func TestWorldMatricesChain(t *testing.T) {
	nodes := []scene.Node{
		{Translation: [3]float64{1, 0, 0}},
		{Parent: intPtr(0), Translation: [3]float64{0, 2, 0}},
		{Parent: intPtr(1), Translation: [3]float64{0, 0, 3}},
	}
	worlds := scene.WorldMatrices(nodes)
	require.Equal(t, mathutil.Vec3{1, 2, 3}, worlds[2].Translation())
	require.Equal(t, mathutil.Vec3{1, 0, 0}, worlds[0].Translation())
}

func TestLocalRotationSources(t *testing.T) {
	euler := scene.Node{Rotation: [3]float64{0, 0, 90}}
	axis := scene.Node{AxisAngle: &scene.AxisAngle{Axis: [3]float64{0, 0, 5}, Angle: 90}}
	quat := scene.Node{Quat: &[4]float64{0, 0, 2, 2}}

	want := euler.LocalMatrix()
	for _, n := range []scene.Node{axis, quat} {
		got := n.LocalMatrix()
		for i := range want {
			require.InDelta(t, want[i], got[i], 1e-9)
		}
	}

	zeroAxis := scene.Node{AxisAngle: &scene.AxisAngle{Angle: 45}}
	require.Equal(t, mathutil.QuatIdentity(), zeroAxis.LocalRotation())
}

func TestNormalMatricesFlagsCollapsedNodes(t *testing.T) {
	nodes := []scene.Node{
		{Scale: &[3]float64{1, 1, 0}},
		{Scale: &[3]float64{2, 1, 1}},
	}
	normals, ok := scene.NormalMatrices(scene.WorldMatrices(nodes))
	require.False(t, ok[0])
	require.True(t, ok[1])
	require.InDelta(t, 0.5, normals[1][0], 1e-12)
}

func TestResolveCollapsedNodeKeepsNormal(t *testing.T) {
	s := scene.Scene{
		Nodes: []scene.Node{{Scale: &[3]float64{1, 1, 0}}},
		Triangles: []scene.Triangle{
			{Node: intPtr(0), Verts: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
		},
	}
	w := s.Resolve()
	require.InDelta(t, 1.0, w.Triangles[0].Normal.Len(), 1e-9)
}

func TestResolveUnvalidatedReferencesFallBackToWorld(t *testing.T) {
	s := scene.Scene{
		Nodes: []scene.Node{{Translation: [3]float64{5, 0, 0}}},
		Lines: []scene.Line{
			{Node: intPtr(3), Start: [3]float32{0, 0, 0}, End: [3]float32{1, 0, 0}},
			{Node: intPtr(-2), Start: [3]float32{0, 1, 0}, End: [3]float32{0, 2, 0}},
		},
		Triangles: []scene.Triangle{
			{Node: intPtr(7), Verts: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
		},
	}
	require.ErrorIs(t, s.Validate(), scene.ErrInvalidNode)

	w := s.Resolve()
	require.Equal(t, mathutil.Line3FromValues(0, 0, 0, 1, 0, 0), w.Lines[0].Line)
	require.Equal(t, mathutil.Line3FromValues(0, 1, 0, 0, 2, 0), w.Lines[1].Line)
	require.Equal(t, mathutil.Vec3f{1, 0, 0}, w.Triangles[0].Verts[1])
	require.InDeltaSlice(t, []float64{0, 0, 1}, w.Triangles[0].Normal[:], 1e-12)
}

func TestUVTransform(t *testing.T) {
	var none *scene.UVTransform
	require.Equal(t, mathutil.Mat3Identity(), none.Matrix())

	shift := &scene.UVTransform{Offset: [2]float64{0.25, 0.5}}
	u, v := shift.Matrix().MulVec2(0, 0)
	require.InDelta(t, 0.25, u, 1e-12)
	require.InDelta(t, 0.5, v, 1e-12)

	// Repeat about the centre keeps the centre fixed.
	tile := &scene.UVTransform{Repeat: &[2]float64{4, 4}, Center: [2]float64{0.5, 0.5}}
	u, v = tile.Matrix().MulVec2(0.5, 0.5)
	require.InDelta(t, 0.5, u, 1e-12)
	require.InDelta(t, 0.5, v, 1e-12)
	u, _ = tile.Matrix().MulVec2(1, 0.5)
	require.InDelta(t, 2.5, u, 1e-12)

	// 90° rotation about the centre.
	rot := &scene.UVTransform{Rotation: 90, Center: [2]float64{0.5, 0.5}}
	u, v = rot.Matrix().MulVec2(1, 0.5)
	require.InDelta(t, 0.5, u, 1e-12)
	require.InDelta(t, 1.0, v, 1e-12)
}
