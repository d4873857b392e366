package viewer

import (
	"errors"
	"image"
	"time"
)

type zoomCall struct {
	X, Y, Factor int
}

// recordingViewport records every call made by the loop.
type recordingViewport struct {
	titles     []string
	dimensions [][2]int
	zooms      []zoomCall
	flips      []FlipMode
	draws      int
	initErr    error
}

func (v *recordingViewport) Initialize(title string, img image.Image) error {
	if v.initErr != nil {
		return v.initErr
	}
	v.titles = append(v.titles, title)
	return nil
}

func (v *recordingViewport) SetDimensions(width, height int) {
	v.dimensions = append(v.dimensions, [2]int{width, height})
}

func (v *recordingViewport) SetZoomedArea(centerX, centerY, factor int) {
	v.zooms = append(v.zooms, zoomCall{centerX, centerY, factor})
}

func (v *recordingViewport) SetFlippingMode(mode FlipMode) {
	v.flips = append(v.flips, mode)
}

func (v *recordingViewport) DrawImage() {
	v.draws++
}

var errMissing = errors.New("missing image")

// mapSource decodes paths present in its set and records every request.
type mapSource struct {
	known   map[string]bool
	decoded []string
}

func newMapSource(paths ...string) *mapSource {
	s := &mapSource{known: make(map[string]bool)}
	for _, p := range paths {
		s.known[p] = true
	}
	return s
}

func (s *mapSource) Decode(path string) (image.Image, error) {
	s.decoded = append(s.decoded, path)
	if !s.known[path] {
		return nil, errMissing
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

// scriptedEvents hands out one batch per Poll, then empty batches.
type scriptedEvents struct {
	frames [][]Event
}

func (s *scriptedEvents) Poll() []Event {
	if len(s.frames) == 0 {
		return nil
	}
	batch := s.frames[0]
	s.frames = s.frames[1:]
	return batch
}

func (s *scriptedEvents) push(events ...Event) {
	s.frames = append(s.frames, events)
}

// manualClock advances by work after every Now call and by the slept
// duration on Sleep, so one frame appears to take work.
type manualClock struct {
	now    time.Time
	work   time.Duration
	sleeps []time.Duration
}

func (c *manualClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.work)
	return t
}

func (c *manualClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}
