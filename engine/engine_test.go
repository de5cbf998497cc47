package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/pixel-morph/common"
	"github.com/Carmen-Shannon/pixel-morph/engine/display"
	"github.com/Carmen-Shannon/pixel-morph/engine/motion"
	"github.com/Carmen-Shannon/pixel-morph/engine/particle"
	"github.com/Carmen-Shannon/pixel-morph/engine/pointer"
	"github.com/Carmen-Shannon/pixel-morph/engine/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, options ...EngineBuilderOption) Engine {
	t.Helper()
	opts := append([]EngineBuilderOption{
		WithStoreOptions(particle.WithCount(2000), particle.WithSeed(1)),
	}, options...)
	e := NewEngine(opts...)
	t.Cleanup(e.Close)
	return e
}

type fakeHandle struct{ visible bool }

func (f *fakeHandle) SetVisible(v bool) { f.visible = v }

func TestNewEngineInitialState(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, 2000, e.Store().Len())
	assert.Equal(t, shape.ShapeSphere, e.Store().Shape())
	assert.True(t, e.Assembly().CloudVisible())
	assert.Empty(t, e.Displays().Visible())
	assert.Equal(t, 400.0, e.Camera().Controller().Distance())

	f := e.Frame()
	assert.Len(t, f.Positions, 6000)
	assert.Len(t, f.Colors, 6000)
	assert.True(t, f.CloudVisible)
}

func TestShowMeACubeConverges(t *testing.T) {
	e := newTestEngine(t)
	res := e.Interpret("show me a cube")
	require.True(t, res.CloudVisible)
	require.Equal(t, shape.ShapeCube, e.Store().Shape())

	for range 500 {
		e.Tick(1.0 / 60)
	}
	for i := 0; i < e.Store().Len(); i++ {
		p := e.Store().Particle(i)
		assert.Less(t, p.Target.Sub(p.Current).Norm(), 0.1)
	}
}

func TestBurjKhalifa(t *testing.T) {
	e := newTestEngine(t)
	h := &fakeHandle{}

	res := e.Interpret("burj khalifa")
	assert.False(t, res.CloudVisible)
	assert.Equal(t, shape.ShapeSphere, e.Store().Shape(), "targets untouched")

	// The handle arrives after the command; its visibility was deferred.
	require.True(t, e.Displays().Attach("burj", h))
	assert.True(t, h.visible)

	f := e.Frame()
	assert.False(t, f.CloudVisible)
	assert.Equal(t, []string{"burj"}, f.Displays)

	e.Interpret("heart")
	assert.False(t, h.visible)
	assert.True(t, e.Frame().CloudVisible)
}

func TestDoubleClickZoomScenario(t *testing.T) {
	e := newTestEngine(t)
	zoom := e.Camera().Controller()

	e.OnPointerEvent(pointer.MouseEvent(pointer.KindDoubleClick, 0, 0))
	assert.Equal(t, 200.0, zoom.TargetDistance())
	for range 300 {
		e.Tick(0)
	}
	assert.InDelta(t, 200.0, zoom.Distance(), 0.01)

	e.OnPointerEvent(pointer.MouseEvent(pointer.KindDoubleClick, 0, 0))
	assert.Equal(t, 400.0, zoom.TargetDistance())
}

func TestDragPlusDrift(t *testing.T) {
	e := newTestEngine(t)
	e.OnPointerEvent(pointer.MouseEvent(pointer.KindPress, 100, 100))
	e.OnPointerEvent(pointer.MouseEvent(pointer.KindMove, 110, 105))
	e.Tick(0)

	assert.InDelta(t, 0.1+motion.DefaultYawDrift, e.Assembly().Yaw(), 1e-12)
	assert.InDelta(t, 0.05+motion.DefaultPitchDrift, e.Assembly().Pitch(), 1e-12)
}

func TestFrameMVP(t *testing.T) {
	e := newTestEngine(t)
	e.Assembly().SetRotation(0.3, -0.2)
	e.Resize(1600, 900)

	f := e.Frame()
	var want [16]float32
	common.Mul4(want[:], f.ViewProjection[:], f.Model[:])
	assert.Equal(t, want, f.MVP)
	assert.InDelta(t, 1600.0/900.0, float64(e.Camera().Aspect()), 1e-6)

	e.Resize(0, 0)
	assert.InDelta(t, 1600.0/900.0, float64(e.Camera().Aspect()), 1e-6, "minimized surface keeps aspect")
}

func TestEmptyEngine(t *testing.T) {
	e := NewEngine(WithStoreOptions(particle.WithCount(0)))
	defer e.Close()

	assert.NotPanics(t, func() {
		e.Interpret("torus")
		e.Tick(0)
	})
	assert.Empty(t, e.Frame().Positions)
	assert.InDelta(t, motion.DefaultYawDrift, e.Assembly().Yaw(), 1e-15)
}

func TestWithDisplaysReplacesDefaults(t *testing.T) {
	e := newTestEngine(t, WithDisplays(display.Entry{Name: "tower", Keywords: []string{"tower"}}))
	require.Len(t, e.Displays().Entries(), 1)
	assert.False(t, e.Interpret("burj").ShapeMatched)
	assert.True(t, e.Assembly().CloudVisible())
	assert.False(t, e.Interpret("a tower").CloudVisible)
}

func TestRunTicksAndPosts(t *testing.T) {
	e := newTestEngine(t, WithTickRate(500))

	var frames atomic.Int32
	e.SetRenderCallback(func(float32) {
		if frames.Add(1) == 5 {
			e.Post(func() { e.Interpret("pyramid") })
		}
		if frames.Load() >= 10 && e.Store().Shape() == shape.ShapePyramid {
			e.Quit()
		}
	})

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not quit")
	}
	assert.GreaterOrEqual(t, frames.Load(), int32(10))
	assert.Equal(t, shape.ShapePyramid, e.Store().Shape())

	assert.NotPanics(t, e.Quit, "quit is idempotent")
	assert.NotPanics(t, func() { e.Post(func() {}) }, "posting after quit does not block")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	e := newTestEngine(t, WithTickRate(200))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
	select {
	case <-e.Done():
	default:
		t.Fatal("cancel should signal quit")
	}
}

func TestRunRecoversRenderPanic(t *testing.T) {
	e := newTestEngine(t, WithTickRate(500))
	e.SetRenderCallback(func(float32) { panic("device lost") })

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "device lost")
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not quit after panic")
	}
}

func TestSetTickRateWhileRunning(t *testing.T) {
	e := newTestEngine(t, WithTickRate(1))

	var frames atomic.Int32
	e.SetRenderCallback(func(float32) {
		if frames.Add(1) >= 3 {
			e.Quit()
		}
	})

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	// At 1 fps three frames would take three seconds; raising the rate finishes much sooner.
	require.Eventually(t, func() bool {
		e.SetTickRate(1000)
		select {
		case err := <-done:
			return err == nil
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
