package viewport

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	backdropBase = mustHex("#101010")
	lightText    = mustHex("#f2f2f2")
	darkText     = mustHex("#1a1a1a")
)

var (
	backdropColor          color.Color = backdropBase
	notificationBackground             = overlayColor(backdropBase, 0.6)
	notificationText       color.Color = contrastingText(backdropBase.BlendLab(colorful.Color{}, 0.5))
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("viewport: bad colour %q: %v", s, err))
	}
	return c
}

// overlayColor darkens base halfway to black in Lab space and returns it
// premultiplied at the given opacity.
func overlayColor(base colorful.Color, opacity float64) color.RGBA {
	r, g, b := base.BlendLab(colorful.Color{}, 0.5).Clamped().RGB255()
	a := uint8(opacity*255 + 0.5)
	premul := func(v uint8) uint8 {
		return uint8(uint16(v) * uint16(a) / 255)
	}
	return color.RGBA{premul(r), premul(g), premul(b), a}
}

// contrastingText picks the text colour furthest from bg in Lab space.
func contrastingText(bg colorful.Color) colorful.Color {
	if bg.DistanceLab(lightText) >= bg.DistanceLab(darkText) {
		return lightText
	}
	return darkText
}
