// Package config loads pixel-morph settings from a TOML file and maps them onto the engine's
// functional options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Carmen-Shannon/pixel-morph/engine"
	"github.com/Carmen-Shannon/pixel-morph/engine/camera"
	"github.com/Carmen-Shannon/pixel-morph/engine/display"
	"github.com/Carmen-Shannon/pixel-morph/engine/motion"
	"github.com/Carmen-Shannon/pixel-morph/engine/particle"
	"github.com/Carmen-Shannon/pixel-morph/engine/pointer"
	"github.com/Carmen-Shannon/pixel-morph/engine/renderer"
	"github.com/Carmen-Shannon/pixel-morph/engine/terminal"
	"github.com/Carmen-Shannon/pixel-morph/engine/window"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

// Config is the full set of file-configurable settings.
type Config struct {
	Particles ParticlesConfig `toml:"particles"`
	Motion    MotionConfig    `toml:"motion"`
	Camera    CameraConfig    `toml:"camera"`
	Pointer   PointerConfig   `toml:"pointer"`
	Engine    EngineConfig    `toml:"engine"`
	Window    WindowConfig    `toml:"window"`
	Terminal  TerminalConfig  `toml:"terminal"`
	Displays  []DisplayConfig `toml:"displays"`
}

// ParticlesConfig sizes the particle store.
type ParticlesConfig struct {
	Count     int    `toml:"count"`
	Seed      uint64 `toml:"seed"`
	Workers   int    `toml:"workers"`
	ChunkSize int    `toml:"chunk_size"`
}

// MotionConfig holds the per-frame smoothing factors and idle drift.
type MotionConfig struct {
	ParticleRate float64 `toml:"particle_rate"`
	ZoomRate     float64 `toml:"zoom_rate"`
	YawDrift     float64 `toml:"yaw_drift"`
	PitchDrift   float64 `toml:"pitch_drift"`
}

// CameraConfig holds the lens and the zoom range.
type CameraConfig struct {
	FovDegrees   float64 `toml:"fov_degrees"`
	Distance     float64 `toml:"distance"`
	MinDistance  float64 `toml:"min_distance"`
	MaxDistance  float64 `toml:"max_distance"`
	NearDistance float64 `toml:"near_distance"`
}

// PointerConfig holds drag tuning.
type PointerConfig struct {
	Sensitivity float64 `toml:"sensitivity"`
}

// EngineConfig holds frame loop settings.
type EngineConfig struct {
	TickRate  float64 `toml:"tick_rate"`
	Profiling bool    `toml:"profiling"`
}

// WindowConfig holds the native window and GPU settings.
type WindowConfig struct {
	Title       string  `toml:"title"`
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	PresentMode string  `toml:"present_mode"`
	MSAA        bool    `toml:"msaa"`
	Software    bool    `toml:"software"`
	Brightness  float32 `toml:"brightness"`
}

// TerminalConfig holds the character-cell frontend settings.
type TerminalConfig struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	ZoomStep   float64 `toml:"zoom_step"`
}

// DisplayConfig describes one alternate display. AssetPath and Scale are passed through to the
// asset loader untouched.
type DisplayConfig struct {
	Name      string   `toml:"name"`
	Keywords  []string `toml:"keywords"`
	Scale     float64  `toml:"scale"`
	AssetPath string   `toml:"asset_path"`
}

// Default returns the built-in settings.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	cfg := Config{
		Particles: ParticlesConfig{
			Count:     particle.DefaultCount,
			Seed:      1,
			ChunkSize: particle.DefaultChunkSize,
		},
		Motion: MotionConfig{
			ParticleRate: motion.DefaultParticleRate,
			ZoomRate:     motion.DefaultZoomRate,
			YawDrift:     motion.DefaultYawDrift,
			PitchDrift:   motion.DefaultPitchDrift,
		},
		Camera: CameraConfig{
			FovDegrees:   75,
			Distance:     camera.DefaultDistance,
			MinDistance:  camera.DefaultMinDistance,
			MaxDistance:  camera.DefaultMaxDistance,
			NearDistance: camera.DefaultNearDistance,
		},
		Pointer: PointerConfig{Sensitivity: pointer.DefaultSensitivity},
		Engine:  EngineConfig{TickRate: 60},
		Window: WindowConfig{
			Title:       "pixel-morph",
			Width:       1280,
			Height:      720,
			PresentMode: "vsync",
			MSAA:        true,
			Brightness:  1,
		},
		Terminal: TerminalConfig{
			CellWidth:  terminal.DefaultCellWidth,
			CellHeight: terminal.DefaultCellHeight,
			ZoomStep:   terminal.DefaultZoomStep,
		},
	}
	for _, e := range display.DefaultEntries() {
		cfg.Displays = append(cfg.Displays, DisplayConfig{
			Name:      e.Name,
			Keywords:  e.Keywords,
			Scale:     e.Scale,
			AssetPath: e.AssetPath,
		})
	}
	return cfg
}

// Load reads a TOML file over the defaults. Keys missing from the file keep their default;
// unknown keys are an error. An empty path returns the defaults.
//
// Parameters:
//   - path: the file to read, or ""
//
// Returns:
//   - Config: the merged settings
//   - error: a read, decode or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.Decode(data); err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges TOML data into cfg and validates the result. A [[displays]] table in data
// replaces the whole display list.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - error: a decode or validation error
func (cfg *Config) Decode(data []byte) error {
	next := *cfg
	next.Displays = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&next); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys: %s", strict.String())
		}
		return err
	}
	if next.Displays == nil {
		next.Displays = cfg.Displays
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

// Validate reports every out-of-range setting at once.
//
// Returns:
//   - error: the combined problems, or nil
func (cfg Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	p := cfg.Particles
	check(p.Count >= 0, "particles.count must be >= 0, got %d", p.Count)
	check(p.Workers >= 0, "particles.workers must be >= 0, got %d", p.Workers)
	check(p.ChunkSize > 0, "particles.chunk_size must be > 0, got %d", p.ChunkSize)

	m := cfg.Motion
	check(m.ParticleRate > 0 && m.ParticleRate <= 1, "motion.particle_rate must be in (0, 1], got %g", m.ParticleRate)
	check(m.ZoomRate > 0 && m.ZoomRate <= 1, "motion.zoom_rate must be in (0, 1], got %g", m.ZoomRate)

	c := cfg.Camera
	check(c.FovDegrees > 0 && c.FovDegrees < 180, "camera.fov_degrees must be in (0, 180), got %g", c.FovDegrees)
	check(c.MinDistance > 0, "camera.min_distance must be > 0, got %g", c.MinDistance)
	check(c.MinDistance <= c.MaxDistance, "camera.min_distance %g exceeds max_distance %g", c.MinDistance, c.MaxDistance)
	check(c.Distance >= c.MinDistance && c.Distance <= c.MaxDistance, "camera.distance %g is outside [%g, %g]", c.Distance, c.MinDistance, c.MaxDistance)
	check(c.NearDistance >= c.MinDistance && c.NearDistance <= c.MaxDistance, "camera.near_distance %g is outside [%g, %g]", c.NearDistance, c.MinDistance, c.MaxDistance)

	check(cfg.Pointer.Sensitivity > 0, "pointer.sensitivity must be > 0, got %g", cfg.Pointer.Sensitivity)
	check(cfg.Engine.TickRate > 0, "engine.tick_rate must be > 0, got %g", cfg.Engine.TickRate)

	w := cfg.Window
	check(w.Width > 0 && w.Height > 0, "window size must be positive, got %dx%d", w.Width, w.Height)
	_, ok := renderer.ParsePresentMode(w.PresentMode)
	check(ok, "window.present_mode must be \"vsync\" or \"uncapped\", got %q", w.PresentMode)

	tc := cfg.Terminal
	check(tc.CellWidth > 0 && tc.CellHeight > 0, "terminal cell size must be positive, got %gx%g", tc.CellWidth, tc.CellHeight)

	seen := make(map[string]bool, len(cfg.Displays))
	for i, d := range cfg.Displays {
		check(d.Name != "", "displays[%d].name is empty", i)
		check(len(d.Keywords) > 0, "displays[%d] (%s) has no keywords", i, d.Name)
		check(!seen[d.Name], "displays[%d] duplicates name %q", i, d.Name)
		seen[d.Name] = true
	}
	return err
}

// EngineOptions maps the settings onto engine options.
//
// Returns:
//   - []engine.EngineBuilderOption: options for engine.NewEngine
func (cfg Config) EngineOptions() []engine.EngineBuilderOption {
	storeOptions := []particle.StoreBuilderOption{
		particle.WithCount(cfg.Particles.Count),
		particle.WithSeed(cfg.Particles.Seed),
		particle.WithChunkSize(cfg.Particles.ChunkSize),
	}
	if cfg.Particles.Workers > 0 {
		storeOptions = append(storeOptions, particle.WithWorkers(cfg.Particles.Workers))
	}

	entries := make([]display.Entry, 0, len(cfg.Displays))
	for _, d := range cfg.Displays {
		entries = append(entries, display.Entry{
			Name:      d.Name,
			Keywords:  d.Keywords,
			Scale:     d.Scale,
			AssetPath: d.AssetPath,
		})
	}

	return []engine.EngineBuilderOption{
		engine.WithStoreOptions(storeOptions...),
		engine.WithMotionOptions(
			motion.WithParticleRate(cfg.Motion.ParticleRate),
			motion.WithZoomRate(cfg.Motion.ZoomRate),
			motion.WithDrift(cfg.Motion.YawDrift, cfg.Motion.PitchDrift),
		),
		engine.WithCameraControllerOptions(
			camera.WithDistanceBounds(cfg.Camera.MinDistance, cfg.Camera.MaxDistance),
			camera.WithDistance(cfg.Camera.Distance),
			camera.WithToggleDistances(cfg.Camera.Distance, cfg.Camera.NearDistance),
		),
		engine.WithCameraOptions(camera.WithFov(float32(cfg.Camera.FovDegrees * math.Pi / 180))),
		engine.WithPointerOptions(pointer.WithSensitivity(cfg.Pointer.Sensitivity)),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithDisplays(entries...),
	}
}

// WindowOptions maps the settings onto window options.
//
// Returns:
//   - []window.WindowBuilderOption: options for window.NewWindow
func (cfg Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	}
}

// RendererOptions maps the settings onto renderer options.
//
// Returns:
//   - []renderer.RendererBuilderOption: options for renderer.NewRenderer
func (cfg Config) RendererOptions() []renderer.RendererBuilderOption {
	mode, _ := renderer.ParsePresentMode(cfg.Window.PresentMode)
	msaa := renderer.MSAAOff
	if cfg.Window.MSAA {
		msaa = renderer.MSAA4x
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Window.Software),
		renderer.WithBrightness(cfg.Window.Brightness),
	}
}

// TerminalOptions maps the settings onto terminal options.
//
// Returns:
//   - []terminal.TerminalBuilderOption: options for terminal.NewTerminal
func (cfg Config) TerminalOptions() []terminal.TerminalBuilderOption {
	return []terminal.TerminalBuilderOption{
		terminal.WithCellSize(cfg.Terminal.CellWidth, cfg.Terminal.CellHeight),
		terminal.WithZoomStep(cfg.Terminal.ZoomStep),
	}
}
