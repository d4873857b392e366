package viewer

// FlipMode is the mirroring transform applied when the image is drawn
type FlipMode int

const (
	FlipNone FlipMode = iota
	FlipHorizontal
	FlipVertical
	FlipBoth

	// FlipModeCount is the number of flip modes in the cycle
	FlipModeCount = 4
)

// Next returns the following mode in the cycle, wrapping to FlipNone after the last one.
func (m FlipMode) Next() FlipMode {
	next := m + 1
	if next >= FlipModeCount || next < 0 {
		return FlipNone
	}
	return next
}

// Horizontal reports whether the mode mirrors left-right.
func (m FlipMode) Horizontal() bool {
	return m == FlipHorizontal || m == FlipBoth
}

// Vertical reports whether the mode mirrors top-bottom.
func (m FlipMode) Vertical() bool {
	return m == FlipVertical || m == FlipBoth
}

func (m FlipMode) String() string {
	switch m {
	case FlipNone:
		return "normal"
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	case FlipBoth:
		return "horizontal and vertical"
	default:
		return "unknown"
	}
}

// State is the interaction state owned by a Loop.
type State struct {
	Index    int      // Position in the image list (0 = first image)
	Zoom     int      // Power-of-two zoom factor, 1 = not zoomed
	Flip     FlipMode // Active flip transform
	PointerX int      // Last known pointer position, window coordinates
	PointerY int
}

// Zoomed reports whether a zoom factor above 1 is active.
func (s State) Zoomed() bool {
	return s.Zoom > 1
}
