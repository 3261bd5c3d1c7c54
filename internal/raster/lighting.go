package raster

import (
	"math"

	"mu-geom/internal/mathutil"
)

// LightConfig is a key light, a rim light and a hemisphere fill, all fixed
// in view space. Build it with NewLightConfig so the half-vector is set.
type LightConfig struct {
	Key  mathutil.Vec3
	Rim  mathutil.Vec3
	View mathutil.Vec3
	half mathutil.Vec3

	Ambient   float64
	Hemi      float64
	Direct    float64
	RimLevel  float64
	Specular  float64
	Shininess float64
}

// NewLightConfig normalizes the directions and precomputes the Blinn-Phong
// half-vector. Intensities start at the default rig.
func NewLightConfig(key, rim, view mathutil.Vec3) LightConfig {
	lc := LightConfig{
		Key:       key.Normalize(),
		Rim:       rim.Normalize(),
		View:      view.Normalize(),
		Ambient:   0.55,
		Hemi:      0.50,
		Direct:    1.50,
		RimLevel:  0.60,
		Specular:  0.45,
		Shininess: 12.0,
	}
	lc.half = lc.Key.Sub(lc.View).Normalize()
	return lc
}

// DefaultLightConfig lights from the upper right with a cool rim behind.
func DefaultLightConfig() LightConfig {
	return NewLightConfig(
		mathutil.Vec3{180, 260, 140},
		mathutil.Vec3{-160, 130, -210},
		mathutil.Vec3{0, -110, -400},
	)
}

// WithKey returns a copy with the key light moved to dir.
func (lc LightConfig) WithKey(dir mathutil.Vec3) LightConfig {
	return NewLightConfig(dir, lc.Rim, lc.View).withLevels(lc)
}

func (lc LightConfig) withLevels(src LightConfig) LightConfig {
	lc.Ambient, lc.Hemi, lc.Direct = src.Ambient, src.Hemi, src.Direct
	lc.RimLevel, lc.Specular, lc.Shininess = src.RimLevel, src.Specular, src.Shininess
	return lc
}

// ComputeShade returns the lighting scalar for a unit face normal.
// Faces are lit from both sides.
func (lc *LightConfig) ComputeShade(n mathutil.Vec3) float64 {
	diffuse := math.Abs(n.Dot(lc.Key))*lc.Direct + math.Abs(n.Dot(lc.Rim))*lc.RimLevel
	fill := ((1-math.Abs(n[1]))*0.5 + 0.5) * lc.Hemi
	return lc.Ambient + fill + diffuse + lc.specular(n)
}

func (lc *LightConfig) specular(n mathutil.Vec3) float64 {
	ndh := n.Dot(lc.half)
	if ndh <= 0 {
		return 0
	}
	return math.Pow(ndh, lc.Shininess) * lc.Specular
}
