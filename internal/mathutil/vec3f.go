package mathutil

import "github.com/chewxy/math32"

// Vec3f is a single-precision 3-component vector, matching mesh vertex storage.
type Vec3f [3]float32

func (a Vec3f) Add(b Vec3f) Vec3f {
	return Vec3f{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3f) Sub(b Vec3f) Vec3f {
	return Vec3f{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3f) Scale(s float32) Vec3f {
	return Vec3f{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3f) Dot(b Vec3f) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (v Vec3f) LenSq() float32 {
	return v.Dot(v)
}

func (v Vec3f) Len() float32 {
	return math32.Sqrt(v.LenSq())
}

// DistTo returns the distance between two points.
func (a Vec3f) DistTo(b Vec3f) float32 {
	return a.Sub(b).Len()
}

// ApproxEqual compares components with an absolute tolerance.
func (a Vec3f) ApproxEqual(b Vec3f, eps float32) bool {
	return math32.Abs(a[0]-b[0]) <= eps &&
		math32.Abs(a[1]-b[1]) <= eps &&
		math32.Abs(a[2]-b[2]) <= eps
}

// Vec3 widens to double precision for matrix work.
func (v Vec3f) Vec3() Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
