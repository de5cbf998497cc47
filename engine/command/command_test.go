package command

import (
	"testing"

	"github.com/Carmen-Shannon/pixel-morph/engine/display"
	"github.com/Carmen-Shannon/pixel-morph/engine/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTargets struct {
	calls []shape.Shape
}

func (f *fakeTargets) SetTargets(s shape.Shape) { f.calls = append(f.calls, s) }

type fakeCloud struct {
	visible bool
}

func (f *fakeCloud) SetCloudVisible(v bool) { f.visible = v }

type fakeHandle struct{ visible bool }

func (f *fakeHandle) SetVisible(v bool) { f.visible = v }

func newTestInterpreter() (Interpreter, *fakeTargets, *fakeCloud, display.Registry) {
	targets := &fakeTargets{}
	cloud := &fakeCloud{visible: true}
	reg := display.NewRegistry(display.DefaultEntries()...)
	return NewInterpreter(targets, cloud, reg), targets, cloud, reg
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		text    string
		want    shape.Shape
		matched bool
	}{
		{"show me a cube", shape.ShapeCube, true},
		{"a cube inside a sphere", shape.ShapeSphere, true},
		{"sphere or cube", shape.ShapeSphere, true},
		{"cylinder", shape.ShapeCylinder, true},
		{"cone and torus", shape.ShapeTorus, true},
		{"square heart", shape.ShapeSquare, true},
		{"pyramid", shape.ShapePyramid, true},
		{"dodecahedron", shape.ShapeSphere, false},
		{"", shape.ShapeSphere, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, matched := ParseShape(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestParseLowerCases(t *testing.T) {
	in, _, _, _ := newTestInterpreter()
	cmd := in.Parse("Make A HEART for the Burj")
	assert.Equal(t, "make a heart for the burj", cmd.Text)
	assert.Equal(t, shape.ShapeHeart, cmd.Shape)
	assert.Equal(t, []string{"burj"}, cmd.Displays)
	assert.True(t, cmd.IsDisplay())
}

func TestInterpretShowMeACube(t *testing.T) {
	in, targets, cloud, reg := newTestInterpreter()
	res := in.Interpret("show me a cube")

	assert.True(t, res.CloudVisible)
	assert.True(t, res.Retargeted)
	assert.Equal(t, shape.ShapeCube, res.Shape)
	assert.True(t, cloud.visible)
	assert.Equal(t, []shape.Shape{shape.ShapeCube}, targets.calls)
	assert.Empty(t, reg.Visible())
}

func TestInterpretBurjKhalifa(t *testing.T) {
	in, targets, cloud, reg := newTestInterpreter()
	h := &fakeHandle{}
	reg.Attach("burj", h)

	res := in.Interpret("burj khalifa")
	assert.False(t, res.CloudVisible)
	assert.False(t, res.Retargeted)
	assert.False(t, cloud.visible)
	assert.Empty(t, targets.calls, "targets untouched")
	assert.Equal(t, []string{"burj"}, reg.Visible())
	assert.True(t, h.visible)
}

func TestInterpretMutualExclusion(t *testing.T) {
	in, targets, cloud, reg := newTestInterpreter()
	human := &fakeHandle{}
	reg.Attach("human", human)

	in.Interpret("a human")
	require.True(t, human.visible)
	require.False(t, cloud.visible)

	in.Interpret("now a torus")
	assert.False(t, human.visible, "displays are hidden before a shape command")
	assert.True(t, cloud.visible)
	assert.Empty(t, reg.Visible())
	assert.Equal(t, []shape.Shape{shape.ShapeTorus}, targets.calls)

	in.Interpret("eiffel")
	assert.False(t, cloud.visible)
	assert.False(t, human.visible)
	assert.Equal(t, []string{"eiffel"}, reg.Visible())
}

func TestInterpretMultipleDisplays(t *testing.T) {
	in, _, cloud, reg := newTestInterpreter()
	res := in.Interpret("human on top of the eiffel tower")
	assert.Equal(t, []string{"human", "eiffel"}, res.Displays)
	assert.Equal(t, []string{"human", "eiffel"}, reg.Visible())
	assert.False(t, cloud.visible)
}

func TestInterpretEmptyFallsBackToSphere(t *testing.T) {
	in, targets, cloud, _ := newTestInterpreter()
	cloud.visible = false

	res := in.Interpret("")
	assert.False(t, res.ShapeMatched)
	assert.Equal(t, shape.ShapeSphere, res.Shape)
	assert.True(t, cloud.visible)
	assert.Equal(t, []shape.Shape{shape.ShapeSphere}, targets.calls)
}

func TestNewInterpreterPanicsOnNil(t *testing.T) {
	reg := display.NewRegistry()
	assert.Panics(t, func() { NewInterpreter(nil, &fakeCloud{}, reg) })
	assert.Panics(t, func() { NewInterpreter(&fakeTargets{}, nil, reg) })
	assert.Panics(t, func() { NewInterpreter(&fakeTargets{}, &fakeCloud{}, nil) })
}
