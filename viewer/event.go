package viewer

// Event is one input occurrence handed to the loop. Events of a frame are
// applied in the order the EventSource returns them.
type Event interface {
	event()
}

// Key identifies a keyboard action
type Key int

const (
	KeyNone Key = iota
	KeyQuit
	KeyFlip
	KeyPrevious
	KeyNext
)

// Button identifies a controller button
type Button int

const (
	ButtonNone Button = iota
	ButtonSelect
	ButtonStart
	ButtonA
)

// Direction identifies a d-pad position
type Direction int

const (
	HatCentered Direction = iota
	HatUp
	HatDown
	HatLeft
	HatRight
)

// QuitEvent is sent when the window is closed.
type QuitEvent struct{}

// ResizeEvent carries the new window size.
type ResizeEvent struct {
	Width, Height int
}

// WheelEvent is one wheel scroll. Delta > 0 means the wheel was rotated toward
// the user. X and Y are the pointer position when the wheel moved.
type WheelEvent struct {
	X, Y  int
	Delta float64
}

// Toward reports whether the wheel was rotated toward the user.
func (e WheelEvent) Toward() bool {
	return e.Delta > 0
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key Key
}

// PointerMoveEvent carries the new pointer position.
type PointerMoveEvent struct {
	X, Y int
}

// ButtonEvent is a controller button press.
type ButtonEvent struct {
	Button Button
}

// HatEvent is a d-pad press.
type HatEvent struct {
	Direction Direction
}

func (QuitEvent) event()        {}
func (ResizeEvent) event()      {}
func (WheelEvent) event()       {}
func (KeyEvent) event()         {}
func (PointerMoveEvent) event() {}
func (ButtonEvent) event()      {}
func (HatEvent) event()         {}
