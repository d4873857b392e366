// Package cli provides the windowed runner for the image viewer.
// It polls ebiten input, steps the viewer loop once per frame and presents
// the viewport.
package cli

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/imgview/imageloader"
	"github.com/user-none/imgview/viewer"
	"github.com/user-none/imgview/viewport"
)

// Options configures a Runner
type Options struct {
	Images            []string
	Config            viewer.Config
	RequireController bool
}

// Runner wraps the viewer loop for ebiten.
// The loop does its own frame pacing, so the game should run with
// ebiten.SyncWithFPS and vsync disabled.
type Runner struct {
	loop       *viewer.Loop
	viewport   *viewport.Viewport
	input      *Input
	controller *Controller
}

// NewRunner creates the viewer and shows the first image.
func NewRunner(opts Options) (*Runner, error) {
	vp := viewport.New()
	loader := imageloader.NewLoader()
	controller := NewController(opts.RequireController, controllerGracePeriod, opts.Config.RefreshPeriod)
	input := NewInput(controller)

	loop, err := viewer.New(opts.Images, viewer.Options{
		Config:   opts.Config,
		Viewport: vp,
		Source:   loader,
		Events:   input,
		OnLoadError: func(path string, err error) {
			log.Printf("Warning: failed to load %s: %v", path, err)
			vp.Notify(fmt.Sprintf("Cannot open %s", path))
		},
	})
	if err != nil {
		return nil, err
	}

	r := &Runner{
		loop:       loop,
		viewport:   vp,
		input:      input,
		controller: controller,
	}
	loader.OnLoad = r.announce

	if err := loop.Start(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases the controller.
func (r *Runner) Close() {
	r.controller.Release()
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if err := r.controller.Check(); err != nil {
		return err
	}

	if err := r.loop.Step(); err != nil {
		if errors.Is(err, viewer.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.viewport.Present(screen)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Return window size so the viewport controls scaling
	r.input.SetWindowSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// announce shows which image was loaded.
func (r *Runner) announce(img *imageloader.Image) {
	msg := describe(img, r.loop.State().Index+1, r.loop.Images())
	log.Printf("Loaded %s", msg)
	r.viewport.Notify(msg)
}

// describe formats "position/count name WxH (exif)".
func describe(img *imageloader.Image, position, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d %s", position, count, img.Name)
	if img.Pixels != nil {
		bounds := img.Pixels.Bounds()
		fmt.Fprintf(&b, " %dx%d", bounds.Dx(), bounds.Dy())
	}
	if img.Summary != "" {
		fmt.Fprintf(&b, " (%s)", img.Summary)
	}
	return b.String()
}
