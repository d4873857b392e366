package cli

import (
	"errors"
	"image"
	"reflect"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/imgview/imageloader"
	"github.com/user-none/imgview/viewer"
)

func TestAppendKeys(t *testing.T) {
	keys := []ebiten.Key{ebiten.KeyA, ebiten.KeyF, ebiten.KeyArrowDown, ebiten.KeyQ, ebiten.KeySpace}

	got := appendKeys(nil, keys)
	want := []viewer.Event{
		viewer.KeyEvent{Key: viewer.KeyFlip},
		viewer.KeyEvent{Key: viewer.KeyNext},
		viewer.KeyEvent{Key: viewer.KeyQuit},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("appendKeys = %v, want %v", got, want)
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want viewer.Key
	}{
		{ebiten.KeyQ, viewer.KeyQuit},
		{ebiten.KeyEscape, viewer.KeyQuit},
		{ebiten.KeyF, viewer.KeyFlip},
		{ebiten.KeyArrowUp, viewer.KeyPrevious},
		{ebiten.KeyPageUp, viewer.KeyPrevious},
		{ebiten.KeyArrowDown, viewer.KeyNext},
		{ebiten.KeyPageDown, viewer.KeyNext},
	}
	for _, tt := range tests {
		if got := keyBindings[tt.key]; got != tt.want {
			t.Errorf("binding for %v = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestInput_AppendResize(t *testing.T) {
	in := NewInput(NewController(false, 0, 0))

	// No size reported yet
	if got := in.appendResize(nil); len(got) != 0 {
		t.Fatalf("expected no event before Layout, got %v", got)
	}

	in.SetWindowSize(900, 650)
	got := in.appendResize(nil)
	if len(got) != 1 || got[0] != (viewer.ResizeEvent{Width: 900, Height: 650}) {
		t.Fatalf("expected one resize event, got %v", got)
	}

	// Same size is not reported twice
	if got := in.appendResize(nil); len(got) != 0 {
		t.Fatalf("expected no event for unchanged size, got %v", got)
	}

	in.SetWindowSize(1024, 768)
	got = in.appendResize(nil)
	if len(got) != 1 || got[0] != (viewer.ResizeEvent{Width: 1024, Height: 768}) {
		t.Fatalf("expected resize to 1024x768, got %v", got)
	}
}

func TestInput_AppendPointer(t *testing.T) {
	in := NewInput(NewController(false, 0, 0))

	if got := in.appendPointer(nil, 10, 20); len(got) != 0 {
		t.Fatalf("first position should only be recorded, got %v", got)
	}
	if got := in.appendPointer(nil, 10, 20); len(got) != 0 {
		t.Fatalf("unchanged position should not emit, got %v", got)
	}
	got := in.appendPointer(nil, 11, 20)
	if len(got) != 1 || got[0] != (viewer.PointerMoveEvent{X: 11, Y: 20}) {
		t.Fatalf("expected pointer move to (11, 20), got %v", got)
	}
}

func wheelDeltas(events []viewer.Event) []float64 {
	var deltas []float64
	for _, ev := range events {
		if w, ok := ev.(viewer.WheelEvent); ok {
			deltas = append(deltas, w.Delta)
		}
	}
	return deltas
}

func TestInput_AppendWheel(t *testing.T) {
	tests := []struct {
		name   string
		frames []float64
		want   []float64
	}{
		{"no scroll", []float64{0, 0}, nil},
		{"one notch", []float64{1}, []float64{1}},
		{"notches in one frame", []float64{3}, []float64{1, 1, 1}},
		{"fractions accumulate", []float64{0.25, 0.25, 0.25, 0.25}, []float64{1}},
		{"away with carry", []float64{-1.5, -0.5}, []float64{-1, -1}},
		{"reversal drops remainder", []float64{0.75, -0.5, -0.5}, []float64{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput(NewController(false, 0, 0))
			var events []viewer.Event
			for _, dy := range tt.frames {
				events = in.appendWheel(events, 4, 7, dy)
			}
			if got := wheelDeltas(events); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("wheel deltas = %v, want %v", got, tt.want)
			}
			for _, ev := range events {
				if w := ev.(viewer.WheelEvent); w.X != 4 || w.Y != 7 {
					t.Errorf("wheel event at (%d, %d), want (4, 7)", w.X, w.Y)
				}
			}
		})
	}
}

func stubGamepadName(t *testing.T) {
	t.Helper()
	orig := gamepadName
	gamepadName = func(ebiten.GamepadID) string { return "test pad" }
	t.Cleanup(func() { gamepadName = orig })
}

func TestController_RequiredTimesOut(t *testing.T) {
	stubGamepadName(t)
	c := NewController(true, 3*viewer.DefaultRefreshPeriod, 0)

	for i := 0; i < 3; i++ {
		if err := c.update(nil, false); err != nil {
			t.Fatalf("frame %d: unexpected error %v", i, err)
		}
	}
	if err := c.update(nil, false); !errors.Is(err, ErrNoController) {
		t.Fatalf("expected ErrNoController, got %v", err)
	}
}

func TestController_AcquireWithinGrace(t *testing.T) {
	stubGamepadName(t)
	c := NewController(true, 2*viewer.DefaultRefreshPeriod, 0)

	if err := c.update(nil, false); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := c.update([]ebiten.GamepadID{3, 5}, false); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !c.Acquired() || c.id != 3 {
		t.Fatalf("expected gamepad 3 acquired, got acquired=%v id=%d", c.Acquired(), c.id)
	}

	// Once seen, losing the controller is not fatal
	for i := 0; i < 10; i++ {
		if err := c.update(nil, i == 0); err != nil {
			t.Fatalf("frame %d: unexpected error %v", i, err)
		}
	}
	if c.Acquired() {
		t.Fatal("expected controller to be dropped after disconnect")
	}
}

func TestController_ReacquireAnotherPad(t *testing.T) {
	stubGamepadName(t)
	c := NewController(false, time.Second, 0)

	c.update([]ebiten.GamepadID{1}, false)
	c.update([]ebiten.GamepadID{1, 2}, true)
	if !c.Acquired() || c.id != 2 {
		t.Fatalf("expected gamepad 2 after disconnect of 1, got acquired=%v id=%d", c.Acquired(), c.id)
	}

	c.Release()
	if c.Acquired() {
		t.Fatal("expected Release to drop the controller")
	}
}

func TestController_GraceFollowsRefreshPeriod(t *testing.T) {
	stubGamepadName(t)
	period := 100 * time.Millisecond
	c := NewController(true, time.Second, period)

	for i := 0; i < 10; i++ {
		if err := c.update(nil, false); err != nil {
			t.Fatalf("frame %d: unexpected error %v", i, err)
		}
	}
	if err := c.update(nil, false); !errors.Is(err, ErrNoController) {
		t.Fatalf("expected ErrNoController after 1s at %v per frame, got %v", period, err)
	}
}

func TestController_OptionalNeverFails(t *testing.T) {
	c := NewController(false, 0, 0)
	for i := 0; i < 5; i++ {
		if err := c.update(nil, false); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
}

func TestDescribe(t *testing.T) {
	img := &imageloader.Image{
		Pixels:  image.NewRGBA(image.Rect(0, 0, 640, 480)),
		Name:    "cat.jpg",
		Summary: "Canon EOS 5D, 2020-01-02 10:00",
	}
	if got, want := describe(img, 2, 3), "2/3 cat.jpg 640x480 (Canon EOS 5D, 2020-01-02 10:00)"; got != want {
		t.Errorf("describe = %q, want %q", got, want)
	}

	img.Summary = ""
	if got, want := describe(img, 1, 1), "1/1 cat.jpg 640x480"; got != want {
		t.Errorf("describe = %q, want %q", got, want)
	}
}
