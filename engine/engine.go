package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/pixel-morph/common"
	"github.com/Carmen-Shannon/pixel-morph/engine/assembly"
	"github.com/Carmen-Shannon/pixel-morph/engine/camera"
	"github.com/Carmen-Shannon/pixel-morph/engine/command"
	"github.com/Carmen-Shannon/pixel-morph/engine/display"
	"github.com/Carmen-Shannon/pixel-morph/engine/motion"
	"github.com/Carmen-Shannon/pixel-morph/engine/particle"
	"github.com/Carmen-Shannon/pixel-morph/engine/pointer"
	"github.com/Carmen-Shannon/pixel-morph/engine/profiler"
	"github.com/Carmen-Shannon/pixel-morph/engine/shape"
)

// ErrAlreadyRunning is returned by Run when the loop is already active.
var ErrAlreadyRunning = errors.New("engine: already running")

// Frame is a snapshot of everything a render step needs for one frame.
type Frame struct {
	// Positions holds x, y, z per particle. It is reused by the next call to Frame.
	Positions []float32
	// Colors holds r, g, b per particle. It never changes.
	Colors []float32
	// Model is the assembly rotation.
	Model [16]float32
	// ViewProjection is the camera's combined view and projection.
	ViewProjection [16]float32
	// MVP is ViewProjection * Model.
	MVP [16]float32
	// CloudVisible reports whether the particle cloud should be drawn.
	CloudVisible bool
	// Displays lists the visible alternate displays.
	Displays []string
	// Shape is the shape the cloud is morphing toward.
	Shape shape.Shape
}

// engine implements the Engine interface.
// Owns the scene state and a single-goroutine frame loop.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates
	postChannel     chan func()

	running atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	renderCallback func(deltaTime float32)

	store    particle.Store
	cam      camera.Camera
	asm      assembly.Assembly
	displays display.Registry
	interp   command.Interpreter
	motion   motion.Integrator
	pointer  pointer.Controller

	storeOptions      []particle.StoreBuilderOption
	controllerOptions []camera.CameraControllerOption
	cameraOptions     []camera.CameraBuilderOption
	motionOptions     []motion.IntegratorBuilderOption
	pointerOptions    []pointer.ControllerBuilderOption
	displayEntries    []display.Entry

	positions []float32
}

// Engine is the main entry point for the engine.
// It owns the particle store, camera, assembly and display registry, routes commands and pointer
// input to them, and drives the per-frame motion.
type Engine interface {
	// Store returns the particle store.
	Store() particle.Store

	// Camera returns the camera.
	Camera() camera.Camera

	// Assembly returns the scene's root transform.
	Assembly() assembly.Assembly

	// Displays returns the alternate display registry. Loaders attach handles here.
	Displays() display.Registry

	// Interpret applies a free-text command.
	//
	// Parameters:
	//   - text: the raw prompt
	//
	// Returns:
	//   - command.Result: what the command changed
	Interpret(text string) command.Result

	// Tick advances motion by one frame and refreshes the camera matrices.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick, used for profiling only
	Tick(deltaTime float32)

	// OnPointerEvent routes a pointer event to the drag/zoom controller.
	//
	// Parameters:
	//   - ev: the pointer event
	OnPointerEvent(ev pointer.Event)

	// Resize updates the camera aspect ratio for a surface of the given pixel size.
	//
	// Parameters:
	//   - width, height: the surface size in pixels
	Resize(width, height int)

	// Frame returns the render snapshot for the current state.
	//
	// Returns:
	//   - Frame: the snapshot
	Frame() Frame

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the frame rate of Run in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetRenderCallback registers the function Run calls after every tick.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// Post queues fn to run on the loop goroutine between frames.
	// Blocks while the queue is full; dropped once the engine has quit.
	//
	// Parameters:
	//   - fn: the function to run
	Post(fn func())

	// Run drives ticks, posted functions and the render callback on the calling goroutine until
	// Quit is called or ctx is done. A panic in a frame is recovered, logged, and returned as an error.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: a recovered frame panic, or ErrAlreadyRunning
	Run(ctx context.Context) error

	// Quit stops Run. Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done is closed once Quit has been called.
	Done() <-chan struct{}

	// Close releases the particle store's workers.
	Close()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// The particle cloud starts as a sphere with current = target, the camera at distance 400,
// and every display hidden.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		postChannel:      make(chan func(), 64),
		quitChannel:      make(chan struct{}),
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		displayEntries:   display.DefaultEntries(),
	}

	for _, opt := range options {
		opt(e)
	}

	e.store = particle.NewStore(e.storeOptions...)
	controller := camera.NewCameraController(e.controllerOptions...)
	e.cam = camera.NewCamera(append([]camera.CameraBuilderOption{camera.WithController(controller)}, e.cameraOptions...)...)
	e.asm = assembly.NewAssembly()
	e.displays = display.NewRegistry(e.displayEntries...)
	e.interp = command.NewInterpreter(e.store, e.asm, e.displays)
	e.motion = motion.NewIntegrator(e.store, controller, e.asm, e.motionOptions...)
	e.pointer = pointer.NewController(e.asm, controller, e.pointerOptions...)

	e.profiler.SetDescriber(func() string {
		return fmt.Sprintf("Particles: %d | Shape: %s | Distance: %.1f", e.store.Len(), e.store.Shape(), controller.Distance())
	})

	return e
}

func (e *engine) Store() particle.Store {
	return e.store
}

func (e *engine) Camera() camera.Camera {
	return e.cam
}

func (e *engine) Assembly() assembly.Assembly {
	return e.asm
}

func (e *engine) Displays() display.Registry {
	return e.displays
}

func (e *engine) Interpret(text string) command.Result {
	return e.interp.Interpret(text)
}

func (e *engine) Tick(deltaTime float32) {
	e.motion.Step()
	e.cam.Update()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) OnPointerEvent(ev pointer.Event) {
	e.pointer.Handle(ev)
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.cam.SetAspect(float32(width) / float32(height))
}

func (e *engine) Frame() Frame {
	f := Frame{
		Colors:         e.store.Colors(),
		Model:          e.asm.ModelMatrix(),
		ViewProjection: e.cam.ViewProjectionMatrix(),
		CloudVisible:   e.asm.CloudVisible(),
		Displays:       e.displays.Visible(),
		Shape:          e.store.Shape(),
	}
	e.positions = e.store.Positions(e.positions)
	f.Positions = e.positions
	common.Mul4(f.MVP[:], f.ViewProjection[:], f.Model[:])
	return f
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetRenderCallback registers the function called each frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case e.postChannel <- fn:
	case <-e.quitChannel:
	}
}

func (e *engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			e.signalQuit()
			return nil
		case <-e.quitChannel:
			return nil
		case fn := <-e.postChannel:
			if err := e.safely(fn); err != nil {
				return err
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if err := e.safely(func() {
				e.Tick(dt)
				if e.renderCallback != nil {
					e.renderCallback(dt)
				}
			}); err != nil {
				return err
			}
		}
	}
}

// safely runs fn on the loop goroutine. A panic is logged, signals quit, and is returned as an error.
func (e *engine) safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.signalQuit()
			err = fmt.Errorf("engine: frame panic: %v", r)
		}
	}()
	fn()
	return nil
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal the loop to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Close() {
	e.store.Close()
}
