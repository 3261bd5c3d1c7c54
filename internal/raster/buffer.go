package raster

import (
	"image"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
// Color follows the alpha convention chosen at construction.
type FrameBuffer struct {
	Width         int
	Height        int
	Color         []uint8   // RGBA interleaved, len = W*H*4
	ZBuf          []float64 // depth per pixel, len = W*H, initialized to -inf
	Premultiplied bool
}

// NewFrameBuffer allocates a zeroed color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int, premultiplied bool) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:         w,
		Height:        h,
		Color:         make([]uint8, n*4),
		ZBuf:          zbuf,
		Premultiplied: premultiplied,
	}
}

// Pixel returns the 4-byte slice for (x, y).
func (fb *FrameBuffer) Pixel(x, y int) []uint8 {
	i := (y*fb.Width + x) * 4
	return fb.Color[i : i+4 : i+4]
}

// Fill copies a background image of the same size. Depth is left untouched.
func (fb *FrameBuffer) Fill(bg *image.NRGBA) {
	b := bg.Bounds()
	w, h := min(b.Dx(), fb.Width), min(b.Dy(), fb.Height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := bg.PixOffset(b.Min.X+x, b.Min.Y+y)
			dst := fb.Pixel(x, y)
			copy(dst, bg.Pix[si:si+4])
			if fb.Premultiplied {
				a := float64(dst[3]) / 255
				dst[0] = uint8(float64(dst[0])*a + 0.5)
				dst[1] = uint8(float64(dst[1])*a + 0.5)
				dst[2] = uint8(float64(dst[2])*a + 0.5)
			}
		}
	}
}

// Image wraps the colour buffer without copying: *image.RGBA when
// premultiplied, *image.NRGBA otherwise.
func (fb *FrameBuffer) Image() image.Image {
	r := image.Rect(0, 0, fb.Width, fb.Height)
	if fb.Premultiplied {
		return &image.RGBA{Pix: fb.Color, Stride: fb.Width * 4, Rect: r}
	}
	return &image.NRGBA{Pix: fb.Color, Stride: fb.Width * 4, Rect: r}
}
