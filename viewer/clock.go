package viewer

import "time"

// Clock supplies frame timing. The loop only needs a timestamp at frame start
// and a blocking sleep for the remainder of the period.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// WallClock is the Clock backed by package time.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

func (WallClock) Sleep(d time.Duration) { time.Sleep(d) }
