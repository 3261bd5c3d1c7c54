package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"mu-geom/internal/mathutil"
)

// LocalRotation returns the node's rotation quaternion.
func (n *Node) LocalRotation() mathutil.Quat {
	switch {
	case n.Quat != nil:
		return mathutil.Quat(*n.Quat).Normalize()
	case n.AxisAngle != nil:
		axis := mgl64.Vec3(n.AxisAngle.Axis)
		if axis.Len() < 1e-12 {
			return mathutil.QuatIdentity()
		}
		return mathutil.QuatFromMGL(mgl64.QuatRotate(mathutil.Deg2Rad(n.AxisAngle.Angle), axis.Normalize()))
	}
	return mathutil.EulerToQuat(
		mathutil.Deg2Rad(n.Rotation[0]),
		mathutil.Deg2Rad(n.Rotation[1]),
		mathutil.Deg2Rad(n.Rotation[2]),
	)
}

// LocalMatrix composes translation · rotation · scale.
func (n *Node) LocalMatrix() mathutil.Mat4 {
	s := [3]float64{1, 1, 1}
	if n.Scale != nil {
		s = *n.Scale
	}
	linear := mathutil.Mat3Mul(mathutil.Mat3FromQuat(n.LocalRotation()), mathutil.Mat3FromScaling(s[0], s[1], s[2]))
	return mathutil.FromMat3Translation(linear, mathutil.Vec3(n.Translation))
}

// WorldMatrices computes the world transform for each node.
// Returns a slice of 4×4 matrices indexed by node index.
func WorldMatrices(nodes []Node) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(nodes))
	for i := range nodes {
		local := nodes[i].LocalMatrix()

		// Chain with parent
		if p := nodes[i].Parent; p != nil && *p >= 0 && *p < i {
			worlds[i] = mathutil.Mat4Mul(worlds[*p], local)
		} else {
			worlds[i] = local
		}
	}
	return worlds
}

// NormalMatrices derives the normal matrix of each world transform.
// ok[i] is false for nodes whose transform collapses a dimension.
func NormalMatrices(worlds []mathutil.Mat4) (normals []mathutil.Mat3, ok []bool) {
	normals = make([]mathutil.Mat3, len(worlds))
	ok = make([]bool, len(worlds))
	for i, w := range worlds {
		normals[i], ok[i] = mathutil.Mat3NormalFromMat4(w)
	}
	return normals, ok
}
