package scene

import (
	"mu-geom/internal/fragment"
	"mu-geom/internal/mathutil"
)

// Scene is a renderable set of lines and triangles attached to a node hierarchy.
type Scene struct {
	Camera     Camera      `json:"camera"`
	Background string      `json:"background"` // texture name, optional
	Light      *[3]float64 `json:"light"`      // key light direction in view space, optional
	Nodes      []Node      `json:"nodes"`
	Lines      []Line      `json:"lines"`
	Triangles  []Triangle  `json:"triangles"`
}

// Camera selects the view rotation and projection.
type Camera struct {
	Preset      string     `json:"preset"`   // "", "default", "flat", "identity"
	Rotation    [3]float64 `json:"rotation"` // extra Euler XYZ degrees, applied after the preset
	Perspective bool       `json:"perspective"`
	FOV         float64    `json:"fov"` // degrees (default 75)
}

// Node is one transform in the hierarchy. Rotation precedence:
// Quat, then AxisAngle, then Euler Rotation.
type Node struct {
	Name        string      `json:"name"`
	Parent      *int        `json:"parent"` // nil = root; must reference an earlier node
	Translation [3]float64  `json:"translation"`
	Rotation    [3]float64  `json:"rotation"` // Euler XYZ degrees
	Quat        *[4]float64 `json:"quat"`     // x, y, z, w
	AxisAngle   *AxisAngle  `json:"axis_angle"`
	Scale       *[3]float64 `json:"scale"` // nil = (1, 1, 1)
}

// AxisAngle is a rotation of Angle degrees around Axis.
type AxisAngle struct {
	Axis  [3]float64 `json:"axis"`
	Angle float64    `json:"angle"`
}

// Line is a segment in node-local coordinates.
type Line struct {
	Node  *int       `json:"node"` // nil = world space
	Start [3]float32 `json:"start"`
	End   [3]float32 `json:"end"`
	Color *[4]uint8  `json:"color"` // encoded RGBA, nil = DefaultColor
}

// Triangle is a single face in node-local coordinates.
type Triangle struct {
	Node        *int         `json:"node"`
	Verts       [][3]float32 `json:"verts"`
	UVs         [][2]float32 `json:"uvs"`
	Texture     string       `json:"texture"`
	Color       *[4]uint8    `json:"color"`
	Blend       string       `json:"blend"` // "normal" or "additive"
	UVTransform *UVTransform `json:"uv_transform"`
}

// UVTransform maps texture coordinates: scale by Repeat and rotate about
// Center, then shift by Offset.
type UVTransform struct {
	Offset   [2]float64  `json:"offset"`
	Repeat   *[2]float64 `json:"repeat"`   // nil = (1, 1)
	Rotation float64     `json:"rotation"` // degrees
	Center   [2]float64  `json:"center"`
}

// DefaultColor is used for untextured geometry without an explicit colour.
var DefaultColor = [4]uint8{160, 160, 170, 255}

// DefaultFOV is the default perspective field of view.
const DefaultFOV = 75.0

// WorldLine is a line resolved to world space.
type WorldLine struct {
	Line  mathutil.Line3
	Color [4]uint8
}

// WorldTriangle is a triangle resolved to world space with UVs already
// transformed and a world-space face normal.
type WorldTriangle struct {
	Verts   [3]mathutil.Vec3f
	UVs     [3][2]float64
	HasUV   bool
	Texture string
	Color   [4]uint8
	Blend   fragment.BlendMode
	Normal  mathutil.Vec3
}

// World is a scene flattened to world-space geometry.
type World struct {
	Lines     []WorldLine
	Triangles []WorldTriangle
}

// Points returns every vertex in draw order: line endpoints first, then
// triangle corners.
func (w *World) Points() []mathutil.Vec3f {
	pts := make([]mathutil.Vec3f, 0, len(w.Lines)*2+len(w.Triangles)*3)
	for _, l := range w.Lines {
		pts = append(pts, l.Line.Start, l.Line.End)
	}
	for _, t := range w.Triangles {
		pts = append(pts, t.Verts[0], t.Verts[1], t.Verts[2])
	}
	return pts
}
