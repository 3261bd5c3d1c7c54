package mathutil

import (
	"fmt"
	"math"
)

// Epsilon is the relative determinant threshold below which a matrix is
// treated as singular. It scales with the product of the column lengths,
// which bounds |det|, so uniformly scaled matrices stay invertible.
const Epsilon = 1e-12

// EqualEpsilon is the relative tolerance used by Equals.
const EqualEpsilon = 1e-6

// Mat3 is a 3×3 matrix stored column-major: m[col*3+row].
// Value type for zero heap allocation.
//
//	| m[0] m[3] m[6] |
//	| m[1] m[4] m[7] |
//	| m[2] m[5] m[8] |
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mat3FromValues builds a matrix from nine values given column by column.
func Mat3FromValues(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) Mat3 {
	return Mat3{m00, m01, m02, m10, m11, m12, m20, m21, m22}
}

// Mat3FromRows builds a matrix from values written in reading order.
func Mat3FromRows(r0c0, r0c1, r0c2, r1c0, r1c1, r1c2, r2c0, r2c1, r2c2 float64) Mat3 {
	return Mat3{r0c0, r1c0, r2c0, r0c1, r1c1, r2c1, r0c2, r1c2, r2c2}
}

func Mat3Diag(x, y, z float64) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float64 {
	return m[c*3+r]
}

// Col returns column c as a vector.
func (m Mat3) Col(c int) Vec3 {
	return Vec3{m[c*3], m[c*3+1], m[c*3+2]}
}

// Row returns row r as a vector.
func (m Mat3) Row(r int) Vec3 {
	return Vec3{m[r], m[r+3], m[r+6]}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			m[c*3+r] = a[0*3+r]*b[c*3+0] + a[1*3+r]*b[c*3+1] + a[2*3+r]*b[c*3+2]
		}
	}
	return m
}

// Mul returns m × b.
func (m Mat3) Mul(b Mat3) Mat3 {
	return Mat3Mul(m, b)
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[3]*v[1] + m[6]*v[2],
		m[1]*v[0] + m[4]*v[1] + m[7]*v[2],
		m[2]*v[0] + m[5]*v[1] + m[8]*v[2],
	}
}

// MulVec2 transforms a 2D point (w=1) treating m as a homogeneous 2D transform.
func (m Mat3) MulVec2(x, y float64) (float64, float64) {
	return m[0]*x + m[3]*y + m[6], m[1]*x + m[4]*y + m[7]
}

func (m Mat3) Det() float64 {
	return m[0]*(m[8]*m[4]-m[5]*m[7]) +
		m[1]*(-m[8]*m[3]+m[5]*m[6]) +
		m[2]*(m[7]*m[3]-m[4]*m[6])
}

// Invert returns the inverse of m. ok is false when m is singular,
// in which case the returned matrix is zero.
func (m Mat3) Invert() (inv Mat3, ok bool) {
	a00, a01, a02 := m[0], m[1], m[2]
	a10, a11, a12 := m[3], m[4], m[5]
	a20, a21, a22 := m[6], m[7], m[8]

	b01 := a22*a11 - a12*a21
	b11 := -a22*a10 + a12*a20
	b21 := a21*a10 - a11*a20

	det := a00*b01 + a01*b11 + a02*b21
	if m.singular(det) {
		return Mat3{}, false
	}
	invD := 1.0 / det

	return Mat3{
		b01 * invD,
		(-a22*a01 + a02*a21) * invD,
		(a12*a01 - a02*a11) * invD,
		b11 * invD,
		(a22*a00 - a02*a20) * invD,
		(-a12*a00 + a02*a10) * invD,
		b21 * invD,
		(-a21*a00 + a01*a20) * invD,
		(a11*a00 - a01*a10) * invD,
	}, true
}

func (m Mat3) singular(det float64) bool {
	bound := m.Col(0).Len() * m.Col(1).Len() * m.Col(2).Len()
	return math.Abs(det) <= Epsilon*bound
}

// Adjoint returns the adjugate (classical adjoint) of m.
func (m Mat3) Adjoint() Mat3 {
	a00, a01, a02 := m[0], m[1], m[2]
	a10, a11, a12 := m[3], m[4], m[5]
	a20, a21, a22 := m[6], m[7], m[8]

	return Mat3{
		a11*a22 - a12*a21,
		a02*a21 - a01*a22,
		a01*a12 - a02*a11,
		a12*a20 - a10*a22,
		a00*a22 - a02*a20,
		a02*a10 - a00*a12,
		a10*a21 - a11*a20,
		a01*a20 - a00*a21,
		a00*a11 - a01*a10,
	}
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

func (m Mat3) Add(b Mat3) Mat3 {
	var out Mat3
	for i := range out {
		out[i] = m[i] + b[i]
	}
	return out
}

func (m Mat3) Sub(b Mat3) Mat3 {
	var out Mat3
	for i := range out {
		out[i] = m[i] - b[i]
	}
	return out
}

func (m Mat3) MulScalar(s float64) Mat3 {
	var out Mat3
	for i := range out {
		out[i] = m[i] * s
	}
	return out
}

// MulScalarAndAdd returns m + b*s.
func (m Mat3) MulScalarAndAdd(b Mat3, s float64) Mat3 {
	var out Mat3
	for i := range out {
		out[i] = m[i] + b[i]*s
	}
	return out
}

// Frob returns the Frobenius norm.
func (m Mat3) Frob() float64 {
	var sum float64
	for _, v := range m {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Translate returns m × T(x, y) for a 2D homogeneous transform.
func (m Mat3) Translate(x, y float64) Mat3 {
	out := m
	out[6] = x*m[0] + y*m[3] + m[6]
	out[7] = x*m[1] + y*m[4] + m[7]
	out[8] = x*m[2] + y*m[5] + m[8]
	return out
}

// Rotate returns m × R(rad) for a 2D homogeneous transform.
func (m Mat3) Rotate(rad float64) Mat3 {
	s, c := math.Sincos(rad)
	out := m
	out[0] = c*m[0] + s*m[3]
	out[1] = c*m[1] + s*m[4]
	out[2] = c*m[2] + s*m[5]
	out[3] = c*m[3] - s*m[0]
	out[4] = c*m[4] - s*m[1]
	out[5] = c*m[5] - s*m[2]
	return out
}

// Scale returns m × S(x, y) for a 2D homogeneous transform.
func (m Mat3) Scale(x, y float64) Mat3 {
	out := m
	out[0], out[1], out[2] = x*m[0], x*m[1], x*m[2]
	out[3], out[4], out[5] = y*m[3], y*m[4], y*m[5]
	return out
}

// Mat3FromTranslation returns a 2D homogeneous translation.
func Mat3FromTranslation(x, y float64) Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, x, y, 1}
}

// Mat3FromRotation returns a 2D homogeneous rotation by rad.
func Mat3FromRotation(rad float64) Mat3 {
	s, c := math.Sincos(rad)
	return Mat3{c, s, 0, -s, c, 0, 0, 0, 1}
}

// Mat3FromScaling returns diag(x, y, z). Pass z=1 for a 2D homogeneous scale.
func Mat3FromScaling(x, y, z float64) Mat3 {
	return Mat3Diag(x, y, z)
}

// Mat3FromMat2d expands a 2D affine matrix [a, b, c, d, tx, ty].
func Mat3FromMat2d(a [6]float64) Mat3 {
	return Mat3{a[0], a[1], 0, a[2], a[3], 0, a[4], a[5], 1}
}

// Mat3FromQuat converts a quaternion to a rotation matrix.
// The quaternion is not normalized first.
func Mat3FromQuat(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	x2, y2, z2 := x+x, y+y, z+z

	xx := x * x2
	yx := y * x2
	yy := y * y2
	zx := z * x2
	zy := z * y2
	zz := z * z2
	wx := w * x2
	wy := w * y2
	wz := w * z2

	return Mat3{
		1 - yy - zz, yx + wz, zx - wy,
		yx - wz, 1 - xx - zz, zy + wx,
		zx + wy, zy - wx, 1 - xx - yy,
	}
}

// Mat3FromMat4 extracts the upper-left 3×3 block.
func Mat3FromMat4(a Mat4) Mat3 {
	return Mat3{a[0], a[1], a[2], a[4], a[5], a[6], a[8], a[9], a[10]}
}

// Mat3NormalFromMat4 returns the inverse transpose of the upper-left 3×3
// block of a, used to transform surface normals. ok is false when the
// block is singular.
func Mat3NormalFromMat4(a Mat4) (Mat3, bool) {
	inv, ok := Mat3FromMat4(a).Invert()
	if !ok {
		return Mat3{}, false
	}
	return inv.Transpose(), true
}

// Mat3Projection maps pixel coordinates (origin top-left) to clip space.
func Mat3Projection(width, height float64) Mat3 {
	return Mat3{
		2 / width, 0, 0,
		0, -2 / height, 0,
		-1, 1, 1,
	}
}

func (m Mat3) ExactEquals(b Mat3) bool {
	return m == b
}

// Equals compares element-wise with a tolerance relative to magnitude.
func (m Mat3) Equals(b Mat3) bool {
	for i := range m {
		tol := EqualEpsilon * math.Max(1, math.Max(math.Abs(m[i]), math.Abs(b[i])))
		if math.Abs(m[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func (m Mat3) String() string {
	return fmt.Sprintf("mat3(%g, %g, %g, %g, %g, %g, %g, %g, %g)",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}
