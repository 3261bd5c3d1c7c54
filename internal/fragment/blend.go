package fragment

import (
	"fmt"
	"strings"
)

// BlendMode controls how a shaded fragment merges with the framebuffer.
type BlendMode int

const (
	// BlendNormal replaces opaque pixels and composites translucent ones source-over.
	BlendNormal BlendMode = iota
	// BlendAdditive adds colour and keeps the brighter alpha. Used for glow surfaces.
	BlendAdditive
)

// ParseBlendMode accepts "normal" (or empty) and "additive".
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return BlendNormal, nil
	case "additive", "add":
		return BlendAdditive, nil
	}
	return 0, fmt.Errorf("fragment: unknown blend mode %q", s)
}

// Blend merges src into the 4-byte pixel dst. Both use the alpha convention
// of o (premultiplied or straight).
func (o *Output) Blend(dst []uint8, src [4]uint8, mode BlendMode) {
	_ = dst[3]
	switch mode {
	case BlendAdditive:
		dst[0] = clamp255(float64(dst[0]) + float64(src[0]))
		dst[1] = clamp255(float64(dst[1]) + float64(src[1]))
		dst[2] = clamp255(float64(dst[2]) + float64(src[2]))
		// Dark additions stay transparent.
		lum := clamp255(Luminance(float64(src[0]), float64(src[1]), float64(src[2])))
		if lum > dst[3] {
			dst[3] = lum
		}
	default:
		if src[3] == 255 || dst[3] == 0 {
			copy(dst, src[:])
			return
		}
		o.over(dst, src)
	}
}

func (o *Output) over(dst []uint8, src [4]uint8) {
	sa := float64(src[3]) / 255
	da := float64(dst[3]) / 255
	inv := 1 - sa

	if o.Premultiplied {
		for i := 0; i < 4; i++ {
			dst[i] = clamp255(float64(src[i]) + float64(dst[i])*inv)
		}
		return
	}

	oa := sa + da*inv
	if oa <= 0 {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 0
		return
	}
	for i := 0; i < 3; i++ {
		dst[i] = clamp255((float64(src[i])*sa + float64(dst[i])*da*inv) / oa)
	}
	dst[3] = clamp255(oa * 255)
}

// Luminance returns the Rec. 601 luma of an RGB triple.
func Luminance(r, g, b float64) float64 {
	return r*0.299 + g*0.587 + b*0.114
}
