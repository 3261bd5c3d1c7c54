package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RotX, RotY and RotZ return right-handed axis rotations. Angles in radians.
func RotX(a float64) Mat3 { return Mat3FromMGL(mgl64.Rotate3DX(a)) }
func RotY(a float64) Mat3 { return Mat3FromMGL(mgl64.Rotate3DY(a)) }
func RotZ(a float64) Mat3 { return Mat3FromMGL(mgl64.Rotate3DZ(a)) }

// EulerZYX returns Rz·Ry·Rx for angles in degrees, so X is applied first.
func EulerZYX(rx, ry, rz float64) Mat3 {
	return RotZ(Deg2Rad(rz)).Mul(RotY(Deg2Rad(ry))).Mul(RotX(Deg2Rad(rx)))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Camera presets.
var (
	// ModelFlip turns Z-up content to Y-up.
	ModelFlip = RotX(-math.Pi / 2)

	// MirrorX flips handedness.
	MirrorX = Mat3Diag(-1, 1, 1)

	// FlatView looks down slightly: MirrorX·Rx(-15°).
	FlatView = MirrorX.Mul(RotX(Deg2Rad(-15)))

	// DefaultView is the three-quarter view: FlatView·Ry(12°)·ModelFlip.
	DefaultView = FlatView.Mul(RotY(Deg2Rad(12))).Mul(ModelFlip)
)
