package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/pixel-morph/engine"
	"github.com/Carmen-Shannon/pixel-morph/engine/window"
	"go.uber.org/multierr"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend

	uniform GPUFrameUniform

	// pointCount is the size the GPU buffers were allocated for; -1 until the first frame.
	pointCount int
	width      int
	height     int
	closed     bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Renderer draws engine frames onto a window surface as a colored point list.
//
// Positions are uploaded every frame. Colors are uploaded once, and again only if the particle
// count changes. The cloud is skipped when the frame marks it hidden; the pass still clears.
type Renderer interface {
	// Resize reconfigures the surface. Zero or negative sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the new attachments could not be created
	Resize(width, height int) error

	// Render uploads the frame's positions and MVP and draws one pass.
	//
	// Parameters:
	//   - frame: the engine snapshot
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired or buffers could not be created
	Render(frame engine.Frame) error

	// Close releases every GPU resource. Subsequent calls are no-ops.
	//
	// Returns:
	//   - error: combined release errors
	Close() error
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the given window's surface.
// Panics if window is nil.
//
// Parameters:
//   - win: the window providing the surface descriptor and initial size
//   - options: functional options (present mode, MSAA, fallback adapter, brightness)
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the adapter, device, surface or pipeline could not be created
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	if win == nil {
		panic("renderer: nil window")
	}
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	if err != nil {
		return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
	}
	if err := r.attach(backend, win.Width(), win.Height()); err != nil {
		return nil, multierr.Append(err, backend.Release())
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		pointCount:  -1,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		uniform:     GPUFrameUniform{Brightness: 1},
	}

	// Options first so forceFallbackAdapter is known before the backend requests an adapter.
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach configures the backend's surface and registers the point pipeline.
func (r *renderer) attach(backend RendererBackend, width, height int) error {
	r.backend = backend
	r.width, r.height = width, height

	backend.SetPresentMode(r.presentMode)
	if err := backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface: %w", err)
	}
	if err := backend.RegisterPointPipeline(PointShaderSource); err != nil {
		return fmt.Errorf("failed to register point pipeline: %w", err)
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || width <= 0 || height <= 0 {
		return nil
	}
	if width == r.width && height == r.height {
		return nil
	}
	r.width, r.height = width, height
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Render(frame engine.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.width <= 0 || r.height <= 0 {
		return nil
	}

	count := len(frame.Colors) / 3
	if count != r.pointCount {
		if err := r.backend.AllocatePoints(count, frame.Colors); err != nil {
			return err
		}
		r.pointCount = count
	}

	r.uniform.MVP = frame.MVP
	r.backend.WriteUniform(r.uniform.Marshal())
	if frame.CloudVisible && count > 0 {
		r.backend.WritePositions(frame.Positions)
	}

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	if frame.CloudVisible && count > 0 {
		r.backend.DrawPoints(uint32(count))
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.backend.Release()
}
