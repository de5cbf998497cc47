package terminal

// TerminalBuilderOption is a functional option for configuring a Terminal.
type TerminalBuilderOption func(*Terminal)

// WithCellSize sets the pixel size one character cell stands in for. Non-positive values are ignored.
//
// Parameters:
//   - width, height: cell size in pixels
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithCellSize(width, height float64) TerminalBuilderOption {
	return func(t *Terminal) {
		if width > 0 && height > 0 {
			t.cellWidth, t.cellHeight = width, height
		}
	}
}

// WithZoomStep sets how far one wheel notch moves the camera target distance.
//
// Parameters:
//   - step: distance per notch
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithZoomStep(step float64) TerminalBuilderOption {
	return func(t *Terminal) {
		t.zoomStep = step
	}
}

// WithPromptLimit caps the prompt length in runes.
//
// Parameters:
//   - limit: maximum runes (non-positive uses the default)
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithPromptLimit(limit int) TerminalBuilderOption {
	return func(t *Terminal) {
		t.promptLimit = limit
	}
}
