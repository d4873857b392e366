// Package viewport renders the displayed image with ebiten.
//
// The Viewport keeps its own copy of the image, the window size, the flip
// mode and the zoomed region. DrawImage renders one frame to an offscreen
// canvas during Update; Present copies the canvas to the screen during Draw.
package viewport

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/imgview/viewer"
)

// ErrNoImage is returned by Initialize when no pixels are given
var ErrNoImage = errors.New("no image data")

// Compile-time interface check.
var _ viewer.Viewport = (*Viewport)(nil)

// Viewport is the ebiten implementation of viewer.Viewport.
type Viewport struct {
	title  string
	source *ebiten.Image // Uploaded copy of the current image
	imageW int
	imageH int

	width, height int // Window size
	flip          viewer.FlipMode
	region        image.Rectangle // Displayed part of the image, in image coordinates

	canvas   *ebiten.Image
	drawOpts ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation

	notification *Notification
	setTitle     func(string)
}

// New creates a Viewport that sets the ebiten window title.
func New() *Viewport {
	return &Viewport{
		notification: NewNotification(),
		setTitle:     ebiten.SetWindowTitle,
	}
}

// Initialize uploads img and sets the window title. The caller may drop img
// afterwards. The zoomed region is reset, the flip mode is kept.
func (v *Viewport) Initialize(title string, img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("%w: empty bounds %v", ErrNoImage, b)
	}

	uploaded := ebiten.NewImageFromImage(limitSize(img, maxTextureSize))
	if v.source != nil {
		v.source.Deallocate()
	}
	v.source = uploaded
	v.imageW = uploaded.Bounds().Dx()
	v.imageH = uploaded.Bounds().Dy()
	v.region = image.Rect(0, 0, v.imageW, v.imageH)

	v.title = title
	if v.setTitle != nil {
		v.setTitle(title)
	}
	return nil
}

// SetDimensions records the window size and resets the zoom.
func (v *Viewport) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.resetRegion()
}

// SetZoomedArea shows the 1/factor part of the image around the window point
// (centerX, centerY). Calls with the same arguments give the same region.
func (v *Viewport) SetZoomedArea(centerX, centerY, factor int) {
	v.region = zoomRegion(v.imageW, v.imageH, v.width, v.height, centerX, centerY, factor, v.flip)
}

// SetFlippingMode selects the flip transform and resets the zoom.
func (v *Viewport) SetFlippingMode(mode viewer.FlipMode) {
	v.flip = mode
	v.resetRegion()
}

// DrawImage renders the current region to the canvas.
func (v *Viewport) DrawImage() {
	if v.width <= 0 || v.height <= 0 {
		return
	}

	if v.canvas == nil || v.canvas.Bounds().Dx() != v.width || v.canvas.Bounds().Dy() != v.height {
		if v.canvas != nil {
			v.canvas.Deallocate()
		}
		v.canvas = ebiten.NewImage(v.width, v.height)
	}
	v.canvas.Fill(backdropColor)

	if v.source == nil || v.region.Empty() {
		return
	}

	src := v.source.SubImage(v.region).(*ebiten.Image)
	rw, rh := v.region.Dx(), v.region.Dy()
	scale, offsetX, offsetY := fit(rw, rh, v.width, v.height)

	v.drawOpts = ebiten.DrawImageOptions{}
	if v.flip.Horizontal() {
		v.drawOpts.GeoM.Scale(-1, 1)
		v.drawOpts.GeoM.Translate(float64(rw), 0)
	}
	if v.flip.Vertical() {
		v.drawOpts.GeoM.Scale(1, -1)
		v.drawOpts.GeoM.Translate(0, float64(rh))
	}
	v.drawOpts.GeoM.Scale(scale, scale)
	v.drawOpts.GeoM.Translate(offsetX, offsetY)

	// Magnified pixels stay sharp
	if scale >= 1 {
		v.drawOpts.Filter = ebiten.FilterNearest
	} else {
		v.drawOpts.Filter = ebiten.FilterLinear
	}
	v.canvas.DrawImage(src, &v.drawOpts)
}

// Present copies the last rendered frame and any notification to screen.
func (v *Viewport) Present(screen *ebiten.Image) {
	if v.canvas == nil {
		screen.Fill(backdropColor)
	} else {
		screen.DrawImage(v.canvas, nil)
	}
	v.notification.Draw(screen)
}

// Notify shows message over the image for a few seconds.
func (v *Viewport) Notify(message string) {
	v.notification.ShowDefault(message)
}

// Title returns the title given to the last successful Initialize.
func (v *Viewport) Title() string {
	return v.title
}

// Region returns the displayed part of the image.
func (v *Viewport) Region() image.Rectangle {
	return v.region
}

func (v *Viewport) resetRegion() {
	v.region = image.Rect(0, 0, v.imageW, v.imageH)
}
