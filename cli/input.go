package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/imgview/viewer"
)

// keyBindings maps keyboard keys to viewer keys
var keyBindings = map[ebiten.Key]viewer.Key{
	ebiten.KeyQ:         viewer.KeyQuit,
	ebiten.KeyEscape:    viewer.KeyQuit,
	ebiten.KeyF:         viewer.KeyFlip,
	ebiten.KeyArrowUp:   viewer.KeyPrevious,
	ebiten.KeyPageUp:    viewer.KeyPrevious,
	ebiten.KeyArrowDown: viewer.KeyNext,
	ebiten.KeyPageDown:  viewer.KeyNext,
}

// Input turns the polled ebiten state into viewer events.
// Within a frame events are ordered: window close, resize, pointer move,
// wheel, keys, controller buttons.
type Input struct {
	controller *Controller

	width, height         int // Latest size reported by Layout
	lastWidth, lastHeight int // Size last sent as a ResizeEvent

	cursorX, cursorY int
	cursorKnown      bool

	wheel float64 // Scroll not yet turned into whole ticks

	keys   []ebiten.Key
	events []viewer.Event
}

// NewInput creates an Input reading controller buttons from c.
func NewInput(c *Controller) *Input {
	return &Input{controller: c}
}

// SetWindowSize records the window size. Called from Layout.
func (in *Input) SetWindowSize(width, height int) {
	in.width = width
	in.height = height
}

// Poll implements viewer.EventSource. The returned slice is reused by the
// next call.
func (in *Input) Poll() []viewer.Event {
	in.events = in.events[:0]

	if ebiten.IsWindowBeingClosed() {
		in.events = append(in.events, viewer.QuitEvent{})
	}

	in.events = in.appendResize(in.events)

	x, y := ebiten.CursorPosition()
	in.events = in.appendPointer(in.events, x, y)

	_, dy := ebiten.Wheel()
	in.events = in.appendWheel(in.events, x, y, dy)

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	in.events = appendKeys(in.events, in.keys)

	in.events = in.controller.appendEvents(in.events)
	return in.events
}

// appendResize emits a ResizeEvent when the window size changed.
func (in *Input) appendResize(events []viewer.Event) []viewer.Event {
	if in.width <= 0 || in.height <= 0 {
		return events
	}
	if in.width == in.lastWidth && in.height == in.lastHeight {
		return events
	}
	in.lastWidth, in.lastHeight = in.width, in.height
	return append(events, viewer.ResizeEvent{Width: in.width, Height: in.height})
}

// appendPointer emits a PointerMoveEvent when the cursor moved. The first
// position seen is only recorded.
func (in *Input) appendPointer(events []viewer.Event, x, y int) []viewer.Event {
	if !in.cursorKnown {
		in.cursorX, in.cursorY = x, y
		in.cursorKnown = true
		return events
	}
	if x == in.cursorX && y == in.cursorY {
		return events
	}
	in.cursorX, in.cursorY = x, y
	return append(events, viewer.PointerMoveEvent{X: x, Y: y})
}

// appendWheel adds dy to the pending scroll and emits one WheelEvent per
// whole tick. Fractional offsets from touchpads and smooth-scrolling mice
// carry over to later frames. A change of direction drops the remainder.
func (in *Input) appendWheel(events []viewer.Event, x, y int, dy float64) []viewer.Event {
	if dy == 0 {
		return events
	}
	if (dy > 0) != (in.wheel > 0) && in.wheel != 0 {
		in.wheel = 0
	}
	in.wheel += dy
	for in.wheel >= 1 {
		events = append(events, viewer.WheelEvent{X: x, Y: y, Delta: 1})
		in.wheel--
	}
	for in.wheel <= -1 {
		events = append(events, viewer.WheelEvent{X: x, Y: y, Delta: -1})
		in.wheel++
	}
	return events
}

// appendKeys translates pressed keys, dropping unbound ones.
func appendKeys(events []viewer.Event, keys []ebiten.Key) []viewer.Event {
	for _, k := range keys {
		if key, ok := keyBindings[k]; ok {
			events = append(events, viewer.KeyEvent{Key: key})
		}
	}
	return events
}
