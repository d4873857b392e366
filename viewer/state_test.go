package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFlipMode_CycleIsTotal(t *testing.T) {
	for start := FlipMode(0); start < FlipModeCount; start++ {
		m := start
		for i := 0; i < FlipModeCount; i++ {
			m = m.Next()
		}
		assert.Equal(t, start, m, "cycle from %v", start)
	}
	assert.Equal(t, FlipNone, FlipBoth.Next())
}

func TestFlipMode_Axes(t *testing.T) {
	tests := []struct {
		mode       FlipMode
		horizontal bool
		vertical   bool
	}{
		{FlipNone, false, false},
		{FlipHorizontal, true, false},
		{FlipVertical, false, true},
		{FlipBoth, true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.horizontal, tt.mode.Horizontal(), tt.mode.String())
		assert.Equal(t, tt.vertical, tt.mode.Vertical(), tt.mode.String())
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Equal(t, time.Second/60, DefaultConfig().RefreshPeriod)

	for _, zoom := range []int{0, -2, 3, 12} {
		cfg := DefaultConfig()
		cfg.MaxZoomFactor = zoom
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "zoom %d", zoom)
	}

	cfg := DefaultConfig()
	cfg.RefreshPeriod = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Image Viewer - photos/cat.jpg", Title("photos/cat.jpg"))
}

func TestState_Zoomed(t *testing.T) {
	assert.False(t, State{Zoom: 1}.Zoomed())
	assert.True(t, State{Zoom: 2}.Zoomed())
	assert.True(t, State{Zoom: DefaultMaxZoomFactor}.Zoomed())
}
