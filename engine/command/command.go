// Package command turns free-text prompts into shape changes and display switches.
package command

import (
	"log"
	"strings"

	"github.com/Carmen-Shannon/pixel-morph/engine/display"
	"github.com/Carmen-Shannon/pixel-morph/engine/shape"
)

// shapeKeywords is tested in order and the last contained keyword wins,
// so "a cube inside a sphere" resolves to sphere.
var shapeKeywords = [...]shape.Shape{
	shape.ShapeCube,
	shape.ShapeSphere,
	shape.ShapeCone,
	shape.ShapeCylinder,
	shape.ShapePyramid,
	shape.ShapeTorus,
	shape.ShapeHeart,
	shape.ShapeSquare,
}

// TargetSetter receives the shape the cloud should morph into.
type TargetSetter interface {
	SetTargets(s shape.Shape)
}

// CloudToggle shows or hides the particle cloud.
type CloudToggle interface {
	SetCloudVisible(visible bool)
}

// Command is the parsed form of a prompt.
type Command struct {
	// Text is the lower-cased prompt.
	Text string
	// Shape is the resolved shape; ShapeSphere when nothing matched.
	Shape shape.Shape
	// ShapeMatched reports whether any shape keyword was found.
	ShapeMatched bool
	// Displays lists the display entries whose keywords were found, in registration order.
	Displays []string
}

// IsDisplay reports whether the command switches to alternate displays instead of morphing the cloud.
func (c Command) IsDisplay() bool {
	return len(c.Displays) > 0
}

// Result describes what Interpret changed.
type Result struct {
	Command
	// CloudVisible is the cloud visibility after the command.
	CloudVisible bool
	// Retargeted reports whether SetTargets was called.
	Retargeted bool
}

// ParseShape resolves the shape keyword in already lower-cased text.
//
// Parameters:
//   - text: the lower-cased prompt
//
// Returns:
//   - shape.Shape: the last matching shape in keyword order, or ShapeSphere
//   - bool: whether any keyword matched
func ParseShape(text string) (shape.Shape, bool) {
	result, matched := shape.ShapeSphere, false
	for _, s := range shapeKeywords {
		if strings.Contains(text, s.String()) {
			result, matched = s, true
		}
	}
	return result, matched
}

// Interpreter applies prompts to the scene.
type Interpreter interface {
	// Parse lower-cases text and resolves its shape and display matches without side effects.
	//
	// Parameters:
	//   - text: the raw prompt
	//
	// Returns:
	//   - Command: the parsed command
	Parse(text string) Command

	// Interpret parses text and applies it. Every display is hidden first. If any display keyword
	// matched, exactly those displays are shown and the cloud is hidden with targets untouched.
	// Otherwise the cloud is shown and retargeted to the resolved shape.
	//
	// Parameters:
	//   - text: the raw prompt
	//
	// Returns:
	//   - Result: what was applied
	Interpret(text string) Result
}

type interpreter struct {
	targets  TargetSetter
	cloud    CloudToggle
	displays display.Registry
}

var _ Interpreter = &interpreter{}

// NewInterpreter wires an interpreter to its collaborators. All three are required and
// NewInterpreter panics if any of them is nil.
//
// Parameters:
//   - targets: the particle store, or anything that accepts a shape
//   - cloud: the cloud visibility toggle
//   - displays: the alternate display registry
//
// Returns:
//   - Interpreter: the newly created interpreter
func NewInterpreter(targets TargetSetter, cloud CloudToggle, displays display.Registry) Interpreter {
	if targets == nil {
		panic("command: NewInterpreter requires a non-nil TargetSetter")
	}
	if cloud == nil {
		panic("command: NewInterpreter requires a non-nil CloudToggle")
	}
	if displays == nil {
		panic("command: NewInterpreter requires a non-nil display Registry")
	}
	return &interpreter{
		targets:  targets,
		cloud:    cloud,
		displays: displays,
	}
}

func (in *interpreter) Parse(text string) Command {
	lower := strings.ToLower(text)
	s, matched := ParseShape(lower)
	return Command{
		Text:         lower,
		Shape:        s,
		ShapeMatched: matched,
		Displays:     in.displays.Match(lower),
	}
}

func (in *interpreter) Interpret(text string) Result {
	cmd := in.Parse(text)
	in.displays.HideAll()

	if cmd.IsDisplay() {
		in.displays.Show(cmd.Displays...)
		in.cloud.SetCloudVisible(false)
		log.Printf("[Command] %q -> display %s", cmd.Text, strings.Join(cmd.Displays, ", "))
		return Result{Command: cmd, CloudVisible: false}
	}

	in.cloud.SetCloudVisible(true)
	in.targets.SetTargets(cmd.Shape)
	log.Printf("[Command] %q -> %s", cmd.Text, cmd.Shape)
	return Result{Command: cmd, CloudVisible: true, Retargeted: true}
}
