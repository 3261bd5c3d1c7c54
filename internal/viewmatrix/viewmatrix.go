package viewmatrix

import (
	"math"

	"mu-geom/internal/mathutil"
	"mu-geom/internal/scene"
)

// ViewMatrix builds a 3×3 view matrix from the scene camera:
// preset @ Rz @ Ry @ Rx.
func ViewMatrix(cam scene.Camera) mathutil.Mat3 {
	var preset mathutil.Mat3
	switch cam.Preset {
	case "flat":
		preset = mathutil.FlatView
	case "identity":
		preset = mathutil.Mat3Identity()
	default:
		preset = mathutil.DefaultView
	}

	if cam.Rotation == ([3]float64{}) {
		return preset
	}
	return mathutil.Mat3Mul(preset, mathutil.EulerZYX(cam.Rotation[0], cam.Rotation[1], cam.Rotation[2]))
}

// Bounds returns the centre of the view-space bounding box of points and its
// larger screen-plane extent, never below 0.001.
func Bounds(points []mathutil.Vec3f, R mathutil.Mat3) (center [3]float64, span float64) {
	if len(points) == 0 {
		return center, 0.001
	}

	allMin := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		tv := R.MulVec3(p.Vec3())
		for k := 0; k < 3; k++ {
			if tv[k] < allMin[k] {
				allMin[k] = tv[k]
			}
			if tv[k] > allMax[k] {
				allMax[k] = tv[k]
			}
		}
	}

	center = [3]float64{
		(allMin[0] + allMax[0]) / 2,
		(allMin[1] + allMax[1]) / 2,
		(allMin[2] + allMax[2]) / 2,
	}
	span = math.Max(allMax[0]-allMin[0], allMax[1]-allMin[1])
	if span < 0.001 {
		span = 0.001
	}
	return center, span
}

// ProjectPoints transforms 3D points to 2D screen coordinates.
// Returns px, py, pz slices (screen X, screen Y, depth).
func ProjectPoints(points []mathutil.Vec3f, R mathutil.Mat3, center [3]float64, scale float64, renderSize int, cam scene.Camera) ([]float64, []float64, []float64) {
	n := len(points)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(renderSize) / 2

	// Perspective setup
	var perspCamDist, perspZCenter float64
	if cam.Perspective {
		fov := cam.FOV
		if fov <= 0 {
			fov = scene.DefaultFOV
		}
		halfFOV := mathutil.Deg2Rad(fov / 2)

		// Compute z range and xy half-extent from ALL transformed points
		zMin, zMax, xyMax := math.Inf(1), math.Inf(-1), 0.0
		for _, p := range points {
			t := R.MulVec3(p.Vec3())
			zMin = math.Min(zMin, t[2])
			zMax = math.Max(zMax, t[2])
			for k := 0; k < 2; k++ {
				xyMax = math.Max(xyMax, math.Abs(t[k]-center[k]))
			}
		}
		perspZCenter = (zMin + zMax) / 2
		if xyMax < 0.001 {
			xyMax = 0.001
		}
		perspCamDist = xyMax / math.Tan(halfFOV)
	}

	for i, p := range points {
		t := R.MulVec3(p.Vec3())

		if cam.Perspective {
			zOff := t[2] - perspZCenter
			depth := math.Max(perspCamDist-zOff, 0.1)
			factor := perspCamDist / depth
			t[0] = center[0] + (t[0]-center[0])*factor
			t[1] = center[1] + (t[1]-center[1])*factor
		}

		px[i] = (t[0]-center[0])*scale + half
		py[i] = -(t[1]-center[1])*scale + half
		pz[i] = t[2]
	}

	return px, py, pz
}
