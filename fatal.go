package main

import (
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sqweek/dialog"
)

// reportFatal logs err and, when there is no terminal to read the log,
// also shows it in a message box.
func reportFatal(err error) {
	log.Printf("Error: %v", err)

	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return
	}
	dialog.Message("%v", err).Title("Image Viewer").Error()
}
