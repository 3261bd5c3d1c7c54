package fragment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mu-geom/internal/fragment"
)

func TestShadePassthrough(t *testing.T) {
	o := fragment.Output{ToneMapping: fragment.NoToneMapping, ColorSpace: fragment.LinearColorSpace}
	require.Equal(t, [4]uint8{255, 0, 128, 255}, o.Shade(fragment.Color{1, 0, 0.5, 1}, 0, 0))

	// Out-of-range values saturate.
	require.Equal(t, [4]uint8{255, 0, 0, 0}, o.Shade(fragment.Color{4, -1, 0, -0.5}, 0, 0))
}

func TestShadeOpaqueAndPremultiplied(t *testing.T) {
	o := fragment.Output{ColorSpace: fragment.LinearColorSpace, Opaque: true}
	require.Equal(t, uint8(255), o.Shade(fragment.Color{1, 1, 1, 0.2}, 0, 0)[3])

	o = fragment.Output{ColorSpace: fragment.LinearColorSpace, Premultiplied: true}
	require.Equal(t, [4]uint8{128, 128, 128, 128}, o.Shade(fragment.Color{1, 1, 1, 0.5}, 0, 0))
}

func TestShadeAppliesExposureForEveryCurve(t *testing.T) {
	white := fragment.Color{1, 1, 1, 1}

	none := fragment.Output{ToneMapping: fragment.NoToneMapping, Exposure: 0.5, ColorSpace: fragment.LinearColorSpace}
	require.Equal(t, [4]uint8{128, 128, 128, 255}, none.Shade(white, 0, 0))

	lin := none
	lin.ToneMapping = fragment.LinearToneMapping
	require.Equal(t, none.Shade(white, 0, 0), lin.Shade(white, 0, 0))

	// 0.5 / (1 + 0.5)
	rh := none
	rh.ToneMapping = fragment.ReinhardToneMapping
	require.Equal(t, uint8(85), rh.Shade(white, 0, 0)[0])

	// Unset exposure is neutral.
	unset := fragment.Output{ColorSpace: fragment.LinearColorSpace}
	require.Equal(t, uint8(255), unset.Shade(white, 0, 0)[0])
}

func TestShadeToneMappingCurves(t *testing.T) {
	lin := fragment.Output{ToneMapping: fragment.LinearToneMapping, Exposure: 2, ColorSpace: fragment.LinearColorSpace}
	require.Equal(t, uint8(204), lin.Shade(fragment.Color{0.4, 0, 0, 1}, 0, 0)[0])

	rh := fragment.Output{ToneMapping: fragment.ReinhardToneMapping, Exposure: 1, ColorSpace: fragment.LinearColorSpace}
	require.Equal(t, uint8(128), rh.Shade(fragment.Color{1, 0, 0, 1}, 0, 0)[0])

	aces := fragment.Output{ToneMapping: fragment.ACESFilmicToneMapping, Exposure: 1, ColorSpace: fragment.LinearColorSpace}
	require.Equal(t, uint8(0), aces.Shade(fragment.Color{0, 0, 0, 1}, 0, 0)[0])
	require.InDelta(t, 2.54/3.16, fragment.ACESTonemap(1), 1e-12)

	// ACES is monotonic and bounded.
	prev := -1.0
	for x := 0.0; x < 20; x += 0.25 {
		v := fragment.ACESTonemap(x)
		require.Greater(t, v, prev)
		prev = v
	}
	require.Equal(t, uint8(255), aces.Shade(fragment.Color{1000, 0, 0, 1}, 0, 0)[0])
}

func TestDecodeTexelRoundTrip(t *testing.T) {
	for _, cs := range []fragment.ColorSpace{fragment.LinearColorSpace, fragment.SRGBColorSpace, fragment.GammaColorSpace} {
		o := fragment.Output{ToneMapping: fragment.NoToneMapping, ColorSpace: cs}
		for v := 0; v < 256; v++ {
			lin := o.DecodeTexel(uint8(v))
			got := o.Shade(fragment.Color{lin, lin, lin, 1}, 0, 0)
			require.Equal(t, uint8(v), got[0], "colour space %d value %d", cs, v)
		}
	}
}

func TestDecodeTexelCustomGamma(t *testing.T) {
	o := fragment.Output{ColorSpace: fragment.GammaColorSpace, Gamma: 1}
	require.InDelta(t, 0.5, o.DecodeTexel(255)/2, 1e-12)
	require.InDelta(t, 128.0/255.0, o.DecodeTexel(128), 1e-12)
}

func TestShadeSRGBMidpoint(t *testing.T) {
	o := fragment.Output{ColorSpace: fragment.SRGBColorSpace}
	require.Equal(t, uint8(188), o.Shade(fragment.Color{0.5, 0.5, 0.5, 1}, 0, 0)[0])
}

func TestShadeDitherStaysWithinOneStep(t *testing.T) {
	plain := fragment.Output{ColorSpace: fragment.LinearColorSpace}
	dith := plain
	dith.Dither = true

	c := fragment.Color{0.3, 0.6, 0.9, 1}
	base := plain.Shade(c, 0, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := dith.Shade(c, x, y)
			for i := 0; i < 3; i++ {
				require.InDelta(t, float64(base[i]), float64(got[i]), 1)
			}
			require.Equal(t, base[3], got[3])
		}
	}
}

func TestParseSettings(t *testing.T) {
	tm, err := fragment.ParseToneMapping("Reinhard")
	require.NoError(t, err)
	require.Equal(t, fragment.ReinhardToneMapping, tm)
	tm, err = fragment.ParseToneMapping("")
	require.NoError(t, err)
	require.Equal(t, fragment.ACESFilmicToneMapping, tm)
	_, err = fragment.ParseToneMapping("filmic2")
	require.Error(t, err)

	cs, err := fragment.ParseColorSpace("srgb")
	require.NoError(t, err)
	require.Equal(t, fragment.SRGBColorSpace, cs)
	_, err = fragment.ParseColorSpace("p3")
	require.Error(t, err)

	bm, err := fragment.ParseBlendMode("additive")
	require.NoError(t, err)
	require.Equal(t, fragment.BlendAdditive, bm)
	_, err = fragment.ParseBlendMode("multiply")
	require.Error(t, err)
}

func TestDefaultOutput(t *testing.T) {
	o := fragment.DefaultOutput()
	require.Equal(t, fragment.ACESFilmicToneMapping, o.ToneMapping)
	require.Equal(t, fragment.GammaColorSpace, o.ColorSpace)
	require.Equal(t, 1.05, o.Exposure)
}
