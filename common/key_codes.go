package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes, which the window layer forwards unchanged.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyEnter     = 257 // Enter/Return (GLFW)
	KeyKPEnter   = 335 // Keypad Enter (GLFW)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)
	KeyDelete    = 261 // Delete key (GLFW)
)

// IsSubmitKey reports whether the key code submits the prompt buffer.
func IsSubmitKey(keyCode uint32) bool {
	return keyCode == KeyEnter || keyCode == KeyKPEnter
}
