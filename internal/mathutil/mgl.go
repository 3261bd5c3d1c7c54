package mathutil

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// mgl64 stores matrices column-major like Mat3 and Mat4, so conversions are
// plain array copies.

func (m Mat3) ToMGL() mgl64.Mat3 {
	return mgl64.Mat3(m)
}

func Mat3FromMGL(m mgl64.Mat3) Mat3 {
	return Mat3(m)
}

func (m Mat4) ToMGL() mgl64.Mat4 {
	return mgl64.Mat4(m)
}

func Mat4FromMGL(m mgl64.Mat4) Mat4 {
	return Mat4(m)
}

// QuatFromMGL reorders mgl64's (W, V) layout into (x, y, z, w).
func QuatFromMGL(q mgl64.Quat) Quat {
	return Quat{q.V[0], q.V[1], q.V[2], q.W}
}

func (q Quat) ToMGL() mgl64.Quat {
	return mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}
}

// Single-precision vectors share mgl32's layout.

func (v Vec3f) ToMGL32() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

func Vec3fFromMGL32(v mgl32.Vec3) Vec3f {
	return Vec3f(v)
}
