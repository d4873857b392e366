package viewport

import (
	"image"
	"math"

	"github.com/user-none/imgview/viewer"
	xdraw "golang.org/x/image/draw"
)

// maxTextureSize bounds each side of an uploaded image
const maxTextureSize = 8192

// fit returns the scale and offset that draw a regionW x regionH area centered
// in the window while preserving its aspect ratio.
func fit(regionW, regionH, windowW, windowH int) (scale, offsetX, offsetY float64) {
	if regionW <= 0 || regionH <= 0 || windowW <= 0 || windowH <= 0 {
		return 1, 0, 0
	}

	scaleX := float64(windowW) / float64(regionW)
	scaleY := float64(windowH) / float64(regionH)
	scale = scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	offsetX = (float64(windowW) - float64(regionW)*scale) / 2
	offsetY = (float64(windowH) - float64(regionH)*scale) / 2
	return scale, offsetX, offsetY
}

// zoomRegion returns the part of an imageW x imageH image displayed at factor
// when zooming on window point (cx, cy). The result depends only on its
// arguments: the point is located in the unzoomed view, mirrored according to
// flip, and the region of 1/factor of the image is centered on it and kept
// inside the image.
func zoomRegion(imageW, imageH, windowW, windowH, cx, cy, factor int, flip viewer.FlipMode) image.Rectangle {
	full := image.Rect(0, 0, imageW, imageH)
	if factor <= 1 || imageW <= 0 || imageH <= 0 || windowW <= 0 || windowH <= 0 {
		return full
	}

	scale, offsetX, offsetY := fit(imageW, imageH, windowW, windowH)
	ix := clampFloat((float64(cx)-offsetX)/scale, 0, float64(imageW))
	iy := clampFloat((float64(cy)-offsetY)/scale, 0, float64(imageH))
	if flip.Horizontal() {
		ix = float64(imageW) - ix
	}
	if flip.Vertical() {
		iy = float64(imageH) - iy
	}

	rw := max(1, imageW/factor)
	rh := max(1, imageH/factor)
	x0 := clampInt(int(math.Round(ix-float64(rw)/2)), 0, imageW-rw)
	y0 := clampInt(int(math.Round(iy-float64(rh)/2)), 0, imageH-rh)
	return image.Rect(x0, y0, x0+rw, y0+rh)
}

// limitSize downscales img so neither side exceeds limit.
func limitSize(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}

	s := math.Min(float64(limit)/float64(w), float64(limit)/float64(h))
	dw := max(1, int(float64(w)*s))
	dh := max(1, int(float64(h)*s))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
