package viewer

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultMaxZoomFactor is the zoom ceiling. Must be a power of two.
	DefaultMaxZoomFactor = 16

	// RefreshRate is the target frame rate in Hz.
	RefreshRate = 60

	// DefaultRefreshPeriod is the target duration of one frame.
	DefaultRefreshPeriod = time.Second / RefreshRate

	// TitlePrefix is prepended to the image path to build the window title.
	TitlePrefix = "Image Viewer - "
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid viewer configuration")

// Config holds the loop tunables
type Config struct {
	MaxZoomFactor int
	RefreshPeriod time.Duration
}

// DefaultConfig returns the compiled-in configuration
func DefaultConfig() Config {
	return Config{
		MaxZoomFactor: DefaultMaxZoomFactor,
		RefreshPeriod: DefaultRefreshPeriod,
	}
}

// Validate checks that the zoom ceiling is a power of two and the period is positive.
func (c Config) Validate() error {
	if c.MaxZoomFactor < 1 || !isPowerOfTwo(c.MaxZoomFactor) {
		return fmt.Errorf("%w: maximum zoom factor %d is not a power of two", ErrInvalidConfig, c.MaxZoomFactor)
	}
	if c.RefreshPeriod <= 0 {
		return fmt.Errorf("%w: refresh period %v must be positive", ErrInvalidConfig, c.RefreshPeriod)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Title builds the window title for an image path.
func Title(path string) string {
	return TitlePrefix + path
}
