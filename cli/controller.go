package cli

import (
	"errors"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/imgview/viewer"
)

// ErrNoController is returned when a controller is required and none was
// connected within the grace period.
var ErrNoController = errors.New("no game controller connected")

// controllerGracePeriod is how long startup waits for the first controller.
// Gamepads are only reported once the window is running.
const controllerGracePeriod = 2 * time.Second

// gamepadBinding maps a button of the standard layout to a viewer event
type gamepadBinding struct {
	button ebiten.StandardGamepadButton
	event  viewer.Event
}

// rawBinding maps a button of a gamepad without a standard layout
type rawBinding struct {
	button ebiten.GamepadButton
	event  viewer.Event
}

var standardBindings = []gamepadBinding{
	{ebiten.StandardGamepadButtonCenterLeft, viewer.ButtonEvent{Button: viewer.ButtonSelect}},
	{ebiten.StandardGamepadButtonCenterRight, viewer.ButtonEvent{Button: viewer.ButtonStart}},
	{ebiten.StandardGamepadButtonRightBottom, viewer.ButtonEvent{Button: viewer.ButtonA}},
	{ebiten.StandardGamepadButtonLeftTop, viewer.HatEvent{Direction: viewer.HatUp}},
	{ebiten.StandardGamepadButtonLeftBottom, viewer.HatEvent{Direction: viewer.HatDown}},
}

// Button numbers of common DirectInput pads
var rawBindings = []rawBinding{
	{ebiten.GamepadButton7, viewer.ButtonEvent{Button: viewer.ButtonSelect}},
	{ebiten.GamepadButton6, viewer.ButtonEvent{Button: viewer.ButtonStart}},
	{ebiten.GamepadButton0, viewer.ButtonEvent{Button: viewer.ButtonA}},
}

// Controller tracks the game controller used for navigation.
// The first connected gamepad is acquired and kept until it disconnects
// or Release is called.
type Controller struct {
	required    bool
	graceFrames int
	frames      int

	id       ebiten.GamepadID
	acquired bool
	seen     bool // A controller was acquired at least once
	ids      []ebiten.GamepadID
}

// NewController creates a Controller. When required is set, Check fails once
// grace has elapsed without any controller. period is the frame period Check
// is called at; zero selects viewer.DefaultRefreshPeriod.
func NewController(required bool, grace, period time.Duration) *Controller {
	if period <= 0 {
		period = viewer.DefaultRefreshPeriod
	}
	return &Controller{
		required:    required,
		graceFrames: int(grace / period),
	}
}

// Check updates the acquired controller. Should be called once per frame.
func (c *Controller) Check() error {
	disconnected := c.acquired && inpututil.IsGamepadJustDisconnected(c.id)
	if !c.acquired || disconnected {
		c.ids = ebiten.AppendGamepadIDs(c.ids[:0])
	}
	return c.update(c.ids, disconnected)
}

// update applies one frame of connection state.
func (c *Controller) update(connected []ebiten.GamepadID, disconnected bool) error {
	if disconnected {
		log.Printf("Warning: controller %d disconnected", c.id)
		c.acquired = false
	}

	if !c.acquired {
		for _, id := range connected {
			if disconnected && id == c.id {
				continue
			}
			c.id = id
			c.acquired = true
			c.seen = true
			log.Printf("Controller acquired: %s", gamepadName(id))
			break
		}
	}

	if c.required && !c.seen {
		c.frames++
		if c.frames > c.graceFrames {
			return ErrNoController
		}
	}
	return nil
}

// Release gives up the acquired controller.
func (c *Controller) Release() {
	if c.acquired {
		log.Printf("Controller released: %s", gamepadName(c.id))
		c.acquired = false
	}
}

// Acquired reports whether a controller is in use.
func (c *Controller) Acquired() bool {
	return c.acquired
}

// appendEvents appends the button presses of this frame to events.
func (c *Controller) appendEvents(events []viewer.Event) []viewer.Event {
	if !c.acquired {
		return events
	}

	if ebiten.IsStandardGamepadLayoutAvailable(c.id) {
		for _, b := range standardBindings {
			if inpututil.IsStandardGamepadButtonJustPressed(c.id, b.button) {
				events = append(events, b.event)
			}
		}
		return events
	}

	for _, b := range rawBindings {
		if inpututil.IsGamepadButtonJustPressed(c.id, b.button) {
			events = append(events, b.event)
		}
	}
	return events
}

var gamepadName = ebiten.GamepadName
