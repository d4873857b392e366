package viewport

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Notification displays temporary messages on screen
type Notification struct {
	message   string
	startTime time.Time
	duration  time.Duration
	fontFace  text.Face
	bg        *ebiten.Image
}

// NewNotification creates a new notification system
func NewNotification() *Notification {
	return &Notification{
		fontFace: text.NewGoXFace(basicfont.Face7x13),
	}
}

// Show displays a notification message
func (n *Notification) Show(message string, duration time.Duration) {
	n.message = message
	n.startTime = time.Now()
	n.duration = duration
}

// ShowDefault displays a notification with default 3 second duration
func (n *Notification) ShowDefault(message string) {
	n.Show(message, 3*time.Second)
}

// IsVisible returns whether the notification is currently visible
func (n *Notification) IsVisible() bool {
	if n.message == "" {
		return false
	}
	return time.Since(n.startTime) < n.duration
}

// Draw renders the notification in the bottom-right corner
func (n *Notification) Draw(screen *ebiten.Image) {
	if !n.IsVisible() {
		return
	}

	bounds := screen.Bounds()
	textWidth, textHeight := text.Measure(n.message, n.fontFace, 0)

	padding := 12
	bgWidth := int(textWidth) + padding*2
	bgHeight := int(textHeight) + padding*2

	margin := 8
	bgX := bounds.Dx() - bgWidth - margin
	bgY := bounds.Dy() - bgHeight - margin

	// Reuse the background while the message size is unchanged
	if n.bg == nil || n.bg.Bounds().Dx() != bgWidth || n.bg.Bounds().Dy() != bgHeight {
		if n.bg != nil {
			n.bg.Deallocate()
		}
		n.bg = ebiten.NewImage(bgWidth, bgHeight)
		n.bg.Fill(notificationBackground)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(n.bg, opts)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+padding), float64(bgY+padding))
	textOpts.ColorScale.ScaleWithColor(notificationText)
	text.Draw(screen, n.message, n.fontFace, textOpts)
}

