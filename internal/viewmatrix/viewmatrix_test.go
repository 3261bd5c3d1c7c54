package viewmatrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mu-geom/internal/mathutil"
	"mu-geom/internal/scene"
	"mu-geom/internal/viewmatrix"
)

func TestViewMatrixPresets(t *testing.T) {
	require.Equal(t, mathutil.DefaultView, viewmatrix.ViewMatrix(scene.Camera{}))
	require.Equal(t, mathutil.DefaultView, viewmatrix.ViewMatrix(scene.Camera{Preset: "default"}))
	require.Equal(t, mathutil.FlatView, viewmatrix.ViewMatrix(scene.Camera{Preset: "flat"}))
	require.Equal(t, mathutil.Mat3Identity(), viewmatrix.ViewMatrix(scene.Camera{Preset: "identity"}))
}

func TestViewMatrixExtraRotation(t *testing.T) {
	R := viewmatrix.ViewMatrix(scene.Camera{Preset: "identity", Rotation: [3]float64{0, 0, 90}})
	v := R.MulVec3(mathutil.Vec3{1, 0, 0})
	require.InDelta(t, 0.0, v[0], 1e-12)
	require.InDelta(t, 1.0, v[1], 1e-12)
}

func TestBounds(t *testing.T) {
	pts := []mathutil.Vec3f{{-1, -2, 0}, {3, 2, 10}}
	center, span := viewmatrix.Bounds(pts, mathutil.Mat3Identity())
	require.Equal(t, [3]float64{1, 0, 5}, center)
	require.Equal(t, 4.0, span)

	_, span = viewmatrix.Bounds([]mathutil.Vec3f{{1, 1, 1}}, mathutil.Mat3Identity())
	require.Equal(t, 0.001, span)

	_, span = viewmatrix.Bounds(nil, mathutil.Mat3Identity())
	require.Equal(t, 0.001, span)
}

func TestProjectPointsOrthographic(t *testing.T) {
	pts := []mathutil.Vec3f{{0, 0, 0}, {1, 1, 2}, {-1, -1, -2}}
	px, py, pz := viewmatrix.ProjectPoints(pts, mathutil.Mat3Identity(), [3]float64{}, 10, 100, scene.Camera{})

	require.Equal(t, []float64{50, 60, 40}, px)
	// Screen Y grows downward.
	require.Equal(t, []float64{50, 40, 60}, py)
	require.Equal(t, []float64{0, 2, -2}, pz)
}

func TestProjectPointsPerspectiveShrinksFarPoints(t *testing.T) {
	pts := []mathutil.Vec3f{{1, 0, 5}, {1, 0, -5}}
	cam := scene.Camera{Perspective: true}
	px, _, _ := viewmatrix.ProjectPoints(pts, mathutil.Mat3Identity(), [3]float64{}, 10, 100, cam)

	// Larger z is nearer the camera.
	require.Greater(t, px[0]-50, px[1]-50)
	require.Greater(t, px[1], 50.0)
}
