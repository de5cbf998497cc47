package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/pixel-morph/engine"
	"github.com/Carmen-Shannon/pixel-morph/engine/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15625, cfg.Particles.Count)
	assert.Equal(t, 400.0, cfg.Camera.Distance)
	require.Len(t, cfg.Displays, 3)
	assert.Equal(t, "burj", cfg.Displays[2].Name)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelmorph.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[particles]
count = 800
seed = 42

[camera]
near_distance = 150.0

[window]
present_mode = "uncapped"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Particles.Count)
	assert.Equal(t, uint64(42), cfg.Particles.Seed)
	assert.Equal(t, 150.0, cfg.Camera.NearDistance)
	assert.Equal(t, 400.0, cfg.Camera.Distance, "untouched keys keep defaults")
	assert.Equal(t, "uncapped", cfg.Window.PresentMode)
	assert.Len(t, cfg.Displays, 3, "displays are kept when the file has none")
}

func TestDecodeReplacesDisplays(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Decode([]byte(`
[[displays]]
name = "tower"
keywords = ["tower", "spire"]
scale = 2.0
`)))
	require.Len(t, cfg.Displays, 1)
	assert.Equal(t, []string{"tower", "spire"}, cfg.Displays[0].Keywords)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := cfg.Decode([]byte("[particles]\ncuont = 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
	assert.Equal(t, Default(), cfg, "a failed decode leaves the config unchanged")
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Decode([]byte("[particles\n")))
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   []string
	}{
		{
			name:   "negative count",
			mutate: func(c *Config) { c.Particles.Count = -1 },
			want:   []string{"particles.count"},
		},
		{
			name: "inverted zoom bounds",
			mutate: func(c *Config) {
				c.Camera.MinDistance = 900
				c.Camera.MaxDistance = 100
			},
			want: []string{"exceeds max_distance", "camera.distance", "camera.near_distance"},
		},
		{
			name: "rates and present mode",
			mutate: func(c *Config) {
				c.Motion.ParticleRate = 0
				c.Motion.ZoomRate = 2
				c.Window.PresentMode = "triple"
			},
			want: []string{"motion.particle_rate", "motion.zoom_rate", "window.present_mode"},
		},
		{
			name: "bad displays",
			mutate: func(c *Config) {
				c.Displays = []DisplayConfig{
					{Name: "a", Keywords: []string{"a"}},
					{Name: "a"},
					{Keywords: []string{"x"}},
				}
			},
			want: []string{"duplicates name", "has no keywords", "name is empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Len(t, multierr.Errors(err), len(tt.want))
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestEngineOptionsApply(t *testing.T) {
	cfg := Default()
	cfg.Particles.Count = 300
	cfg.Particles.Workers = 2
	cfg.Camera.Distance = 600
	cfg.Camera.NearDistance = 100
	cfg.Displays = []DisplayConfig{{Name: "tower", Keywords: []string{"tower"}}}

	e := engine.NewEngine(cfg.EngineOptions()...)
	defer e.Close()

	assert.Equal(t, 300, e.Store().Len())
	zoom := e.Camera().Controller()
	assert.Equal(t, 600.0, zoom.Distance())
	zoom.ToggleTargetDistance()
	assert.Equal(t, 100.0, zoom.TargetDistance())
	zoom.ToggleTargetDistance()
	assert.Equal(t, 600.0, zoom.TargetDistance())

	assert.True(t, e.Interpret("tower").IsDisplay())
	assert.False(t, e.Interpret("burj").IsDisplay())
	assert.Equal(t, shape.ShapeSphere, e.Store().Shape())
}

func TestFrontendOptions(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.WindowOptions(), 2)
	assert.Len(t, cfg.RendererOptions(), 4)
	assert.Len(t, cfg.TerminalOptions(), 2)
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "pixelmorph.example.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
