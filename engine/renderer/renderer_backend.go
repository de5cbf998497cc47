package renderer

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a config name ("vsync" or "uncapped") to a PresentMode.
//
// Parameters:
//   - name: the mode name
//
// Returns:
//   - PresentMode: the mode
//   - bool: false if the name is not recognized
func ParsePresentMode(name string) (PresentMode, bool) {
	switch name {
	case "vsync":
		return PresentModeVSync, true
	case "uncapped":
		return PresentModeUncapped, true
	}
	return PresentModeVSync, false
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4 only.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the GPU API the Renderer drives for one point-list pass per frame.
type RendererBackend interface {
	wgpuRendererBackend
}
