// Package viewer implements the interaction loop of the image viewer.
//
// A Loop owns the interaction state (image index, zoom factor, flip mode and
// pointer position), folds input events into it one at a time and forwards the
// resulting changes to a Viewport. Each Step is one frame: drain events, apply
// them in order, draw once, then sleep for the rest of the refresh period.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
)

// ErrNoImages is returned when the loop is created without any image path.
var ErrNoImages = errors.New("no image to display")

// ErrQuit is returned by Step when a quit event was observed.
// It is a normal termination, not a failure.
var ErrQuit = errors.New("quit requested")

// Viewport renders the current image. SetZoomedArea may be called several
// times in a row with increasing factors for the same center.
type Viewport interface {
	Initialize(title string, img image.Image) error
	SetDimensions(width, height int)
	SetZoomedArea(centerX, centerY, factor int)
	SetFlippingMode(mode FlipMode)
	DrawImage()
}

// ImageSource decodes an image path into pixels.
type ImageSource interface {
	Decode(path string) (image.Image, error)
}

// EventSource returns the events that arrived since the previous call.
// An empty result is valid.
type EventSource interface {
	Poll() []Event
}

// Options wires a Loop to its collaborators.
type Options struct {
	Config   Config
	Viewport Viewport
	Source   ImageSource
	Events   EventSource

	// Clock defaults to WallClock.
	Clock Clock

	// OnLoadError is called when an image cannot be shown after navigation.
	// Defaults to logging the failure.
	OnLoadError func(path string, err error)
}

// Loop is the interaction state machine.
type Loop struct {
	cfg      Config
	images   []string
	state    State
	viewport Viewport
	source   ImageSource
	events   EventSource
	clock    Clock
	onError  func(path string, err error)
}

// New creates a loop over images. The list is copied and never modified.
func New(images []string, opts Options) (*Loop, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Viewport == nil || opts.Source == nil || opts.Events == nil {
		return nil, errors.New("viewer: viewport, image source and event source are required")
	}

	l := &Loop{
		cfg:      opts.Config,
		images:   append([]string(nil), images...),
		state:    State{Zoom: 1, Flip: FlipNone},
		viewport: opts.Viewport,
		source:   opts.Source,
		events:   opts.Events,
		clock:    opts.Clock,
		onError:  opts.OnLoadError,
	}
	if l.clock == nil {
		l.clock = WallClock{}
	}
	if l.onError == nil {
		l.onError = func(path string, err error) {
			log.Printf("Warning: failed to load %s: %v", path, err)
		}
	}
	return l, nil
}

// Start decodes the first image and initializes the viewport with it.
// Any failure here is fatal for the caller.
func (l *Loop) Start() error {
	path := l.images[0]
	img, err := l.source.Decode(path)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := l.viewport.Initialize(Title(path), img); err != nil {
		return fmt.Errorf("failed to initialize viewport: %w", err)
	}
	return nil
}

// State returns a copy of the current interaction state.
func (l *Loop) State() State {
	return l.state
}

// Images returns the number of images in the list.
func (l *Loop) Images() int {
	return len(l.images)
}

// CurrentPath returns the path of the image selected by the index.
func (l *Loop) CurrentPath() string {
	return l.images[l.state.Index]
}

// Step runs one frame. It returns ErrQuit as soon as a quit event is applied;
// events after it are dropped and the frame is not drawn.
func (l *Loop) Step() error {
	start := l.clock.Now()

	for _, ev := range l.events.Poll() {
		if l.apply(ev) {
			return ErrQuit
		}
	}

	l.viewport.DrawImage()

	// Overrun frames are not compensated
	if elapsed := l.clock.Now().Sub(start); elapsed < l.cfg.RefreshPeriod {
		l.clock.Sleep(l.cfg.RefreshPeriod - elapsed)
	}
	return nil
}

// Run steps until a quit event is seen or ctx is done. A quit returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// apply folds one event into the state. It returns true when the event
// terminates the loop.
func (l *Loop) apply(ev Event) bool {
	switch e := ev.(type) {
	case QuitEvent:
		return true

	case ResizeEvent:
		l.viewport.SetDimensions(e.Width, e.Height)
		l.state.Zoom = 1

	case WheelEvent:
		l.state.PointerX, l.state.PointerY = e.X, e.Y
		if e.Toward() {
			if l.state.Zoom < l.cfg.MaxZoomFactor {
				l.state.Zoom *= 2
			}
		} else if l.state.Zoom > 1 {
			l.state.Zoom /= 2
		}
		l.viewport.SetZoomedArea(e.X, e.Y, l.state.Zoom)

	case KeyEvent:
		switch e.Key {
		case KeyQuit:
			return true
		case KeyFlip:
			l.toggleFlip()
		case KeyPrevious:
			l.previous()
		case KeyNext:
			l.next()
		}

	case PointerMoveEvent:
		l.state.PointerX, l.state.PointerY = e.X, e.Y
		if l.state.Zoomed() {
			// Walk every level up to the current one at the new center
			for f := 1; f <= l.state.Zoom; f <<= 1 {
				l.viewport.SetZoomedArea(e.X, e.Y, f)
			}
		}

	case ButtonEvent:
		switch e.Button {
		case ButtonSelect, ButtonStart:
			return true
		case ButtonA:
			l.toggleFlip()
		}

	case HatEvent:
		switch e.Direction {
		case HatUp:
			l.previous()
		case HatDown:
			l.next()
		}
	}
	return false
}

func (l *Loop) toggleFlip() {
	l.state.Flip = l.state.Flip.Next()
	l.viewport.SetFlippingMode(l.state.Flip)
	l.state.Zoom = 1
}

func (l *Loop) previous() {
	if l.state.Index > 0 {
		l.state.Index--
		l.reload()
	}
}

func (l *Loop) next() {
	if l.state.Index < len(l.images)-1 {
		l.state.Index++
		l.reload()
	}
}

// reload shows the image at the current index. On failure the previous image
// stays on screen and the index keeps its new value.
func (l *Loop) reload() {
	path := l.images[l.state.Index]

	img, err := l.source.Decode(path)
	if err != nil {
		l.onError(path, err)
		return
	}
	if err := l.viewport.Initialize(Title(path), img); err != nil {
		l.onError(path, err)
		return
	}

	l.state.Zoom = 1
	l.viewport.SetFlippingMode(l.state.Flip)
}
