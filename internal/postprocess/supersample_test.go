package postprocess_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"mu-geom/internal/postprocess"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func requireNear(t *testing.T, want, got color.NRGBA) {
	t.Helper()
	require.InDelta(t, int(want.R), int(got.R), 1, "got %v", got)
	require.InDelta(t, int(want.G), int(got.G), 1, "got %v", got)
	require.InDelta(t, int(want.B), int(got.B), 1, "got %v", got)
	require.InDelta(t, int(want.A), int(got.A), 1, "got %v", got)
}

func TestDownsampleSolidKeepsColor(t *testing.T) {
	src := solid(8, 8, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	dst := postprocess.Downsample(src, 4)
	require.Equal(t, image.Rect(0, 0, 4, 4), dst.Bounds())
	requireNear(t, color.NRGBA{R: 200, G: 100, B: 50, A: 255}, dst.NRGBAAt(2, 2))
}

func TestDownsampleTransparentHasNoDarkHalo(t *testing.T) {
	src := solid(8, 8, color.NRGBA{})
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	dst := postprocess.Downsample(src, 4)
	for x := 0; x < 4; x++ {
		c := dst.NRGBAAt(x, 1)
		if c.A > 64 {
			require.GreaterOrEqual(t, c.R, uint8(240), "pixel %d: %v", x, c)
		}
	}
}

func TestDownsampleSmallImagePassesThrough(t *testing.T) {
	src := solid(4, 4, color.NRGBA{R: 1, A: 255})
	require.Same(t, src, postprocess.Downsample(src, 4))

	premul := image.NewRGBA(image.Rect(0, 0, 2, 2))
	premul.SetRGBA(0, 0, color.RGBA{R: 64, A: 128})
	out := postprocess.Downsample(premul, 4)
	require.InDelta(t, 128, int(out.NRGBAAt(0, 0).R), 1)
	require.Equal(t, uint8(128), out.NRGBAAt(0, 0).A)
}

func TestFit(t *testing.T) {
	src := solid(3, 5, color.NRGBA{B: 255, A: 255})
	dst := postprocess.Fit(src, 6)
	require.Equal(t, image.Rect(0, 0, 6, 6), dst.Bounds())
	requireNear(t, color.NRGBA{B: 255, A: 255}, dst.NRGBAAt(3, 3))

	same := solid(6, 6, color.NRGBA{A: 255})
	require.Same(t, same, postprocess.Fit(same, 6))
}
