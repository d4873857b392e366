package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/imgview/cli"
	"github.com/user-none/imgview/viewer"
)

func main() {
	requireController := flag.Bool("require-controller", true, "exit unless a game controller is connected")
	width := flag.Int("width", 900, "initial window width")
	height := flag.Int("height", 650, "initial window height")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <image> [image...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(flag.Args(), *width, *height, *requireController))
}

// run shows the viewer and returns the process exit status. The controller
// is released on every return path.
func run(images []string, width, height int, requireController bool) int {
	runner, err := cli.NewRunner(cli.Options{
		Images:            images,
		Config:            viewer.DefaultConfig(),
		RequireController: requireController,
	})
	if err != nil {
		reportFatal(err)
		return 1
	}
	defer runner.Close()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(160, 120, -1, -1)
	ebiten.SetWindowClosingHandled(true)
	// The viewer loop paces itself at viewer.RefreshRate
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetVsyncEnabled(false)

	if err := ebiten.RunGame(runner); err != nil {
		reportFatal(err)
		return 1
	}
	return 0
}
