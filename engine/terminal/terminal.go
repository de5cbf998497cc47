package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Carmen-Shannon/pixel-morph/engine"
	"github.com/Carmen-Shannon/pixel-morph/engine/command"
	"github.com/Carmen-Shannon/pixel-morph/engine/pointer"
	"github.com/gdamore/tcell/v2"
)

const (
	// DefaultCellWidth and DefaultCellHeight are the pixel size a character cell stands in for.
	// Pointer input is scaled by them so drag sensitivity matches a pixel surface.
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0

	// DefaultZoomStep is how far one wheel notch moves the target distance.
	DefaultZoomStep = 25.0

	promptPrefix = "> "
)

// Terminal is a character-cell frontend for an Engine: it draws frames with tcell and turns
// terminal keys and mouse events into prompt edits, commands and pointer events.
//
// Every method that touches engine state runs on the engine loop; PollEvent results are
// forwarded there with Engine.Post.
type Terminal struct {
	screen tcell.Screen
	eng    engine.Engine

	prompt *command.Prompt
	taps   *pointer.DoubleTapDetector
	canvas *Canvas

	cellWidth   float64
	cellHeight  float64
	zoomStep    float64
	promptLimit int

	dragging bool
	status   string
	now      func() time.Time
}

// NewTerminal creates a terminal frontend. The screen is initialized by Run.
// Panics if screen or eng is nil.
//
// Parameters:
//   - screen: the tcell screen to draw on
//   - eng: the engine to drive
//   - options: functional options (cell size, zoom step, prompt limit)
//
// Returns:
//   - *Terminal: the frontend
func NewTerminal(screen tcell.Screen, eng engine.Engine, options ...TerminalBuilderOption) *Terminal {
	if screen == nil {
		panic("terminal: NewTerminal requires a non-nil screen")
	}
	if eng == nil {
		panic("terminal: NewTerminal requires a non-nil engine")
	}
	t := &Terminal{
		screen:      screen,
		eng:         eng,
		taps:        pointer.NewDoubleTapDetector(),
		canvas:      NewCanvas(0, 0),
		cellWidth:   DefaultCellWidth,
		cellHeight:  DefaultCellHeight,
		zoomStep:    DefaultZoomStep,
		promptLimit: command.DefaultPromptLimit,
		status:      "type a shape and press Enter",
		now:         time.Now,
	}
	for _, opt := range options {
		opt(t)
	}
	t.prompt = command.NewPrompt(t.promptLimit)
	return t
}

// Run initializes the screen, forwards input to the engine and draws after every tick until the
// engine quits or ctx is done. The screen is restored before returning.
//
// Parameters:
//   - ctx: cancels the loop
//
// Returns:
//   - error: a screen initialization error or the engine loop's error
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer t.screen.Fini()

	t.screen.EnableMouse()
	t.screen.HideCursor()
	t.Resize()

	t.eng.SetRenderCallback(func(float32) {
		t.Draw(t.eng.Frame())
	})
	go t.pollEvents()

	return t.eng.Run(ctx)
}

// pollEvents forwards screen events to the engine loop until the screen is finalized.
func (t *Terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.eng.Post(func() { t.HandleEvent(ev) })
		select {
		case <-t.eng.Done():
			return
		default:
		}
	}
}

// HandleEvent applies one tcell event. Must run on the engine loop.
//
// Parameters:
//   - ev: the event
func (t *Terminal) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.HandleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		t.screen.Sync()
		t.Resize()
	}
}

// HandleKey edits the prompt, submits it on Enter, and quits on Escape or Ctrl-C.
//
// Parameters:
//   - key: the tcell key
//   - r: the typed rune when key is KeyRune
func (t *Terminal) HandleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.eng.Quit()
	case tcell.KeyEnter:
		t.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.prompt.Backspace()
	case tcell.KeyRune:
		t.prompt.Insert(r)
	}
}

func (t *Terminal) submit() {
	text := t.prompt.Submit()
	if text == "" {
		return
	}
	res := t.eng.Interpret(text)
	if res.IsDisplay() {
		t.status = "showing " + strings.Join(res.Displays, " + ")
	} else {
		t.status = "morphing to " + res.Shape.String()
	}
}

// HandleMouse turns cell-space mouse state into pointer events. Button 1 drags, a quick second
// press in the same cell is a double click, and the wheel zooms.
//
// Parameters:
//   - x, y: the mouse cell
//   - buttons: the tcell button mask
func (t *Terminal) HandleMouse(x, y int, buttons tcell.ButtonMask) {
	px, py := float64(x)*t.cellWidth, float64(y)*t.cellHeight

	zoom := t.eng.Camera().Controller()
	switch {
	case buttons&tcell.WheelUp != 0:
		zoom.AdjustTargetDistance(-t.zoomStep)
		return
	case buttons&tcell.WheelDown != 0:
		zoom.AdjustTargetDistance(t.zoomStep)
		return
	}

	pressed := buttons&tcell.Button1 != 0
	switch {
	case pressed && !t.dragging:
		t.dragging = true
		if t.taps.Press(t.now(), px, py) {
			t.eng.OnPointerEvent(pointer.MouseEvent(pointer.KindDoubleClick, px, py))
		}
		t.eng.OnPointerEvent(pointer.MouseEvent(pointer.KindPress, px, py))
	case pressed:
		t.eng.OnPointerEvent(pointer.MouseEvent(pointer.KindMove, px, py))
	case t.dragging:
		t.dragging = false
		t.eng.OnPointerEvent(pointer.MouseEvent(pointer.KindRelease, px, py))
	}
}

// Resize fits the canvas to the screen, keeping the last row for the prompt, and updates the
// camera aspect from the cell pixel size.
func (t *Terminal) Resize() {
	cols, rows := t.screen.Size()
	rows = max(rows-1, 0)
	t.canvas.Resize(cols, rows)
	t.eng.Resize(int(float64(cols)*t.cellWidth), int(float64(rows)*t.cellHeight))
}

// Draw renders a frame: the particle cloud, a banner for visible displays, a status line and
// the prompt.
//
// Parameters:
//   - f: the frame to draw
func (t *Terminal) Draw(f engine.Frame) {
	t.screen.Clear()
	cols, rows := t.canvas.Size()

	if t.canvas.Plot(f) > 0 {
		for row := range rows {
			for col := range cols {
				s, ok := t.canvas.At(col, row)
				if !ok {
					continue
				}
				glyph, c := t.canvas.Shade(s)
				r, g, b := c.RGB255()
				style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
				t.screen.SetContent(col, row, glyph, nil, style)
			}
		}
	}

	if !f.CloudVisible && len(f.Displays) > 0 {
		banner := "[ " + strings.Join(f.Displays, " + ") + " ]"
		t.drawText((cols-len([]rune(banner)))/2, rows/2, banner, tcell.StyleDefault.Bold(true))
	}

	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	t.drawText(0, 0, fmt.Sprintf("%s | zoom %.0f | %s", f.Shape, t.eng.Camera().Controller().Distance(), t.status), dim)
	t.drawText(0, rows, promptPrefix+t.prompt.Text()+"_", tcell.StyleDefault)

	t.screen.Show()
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	x = max(x, 0)
	for _, r := range text {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Status returns the last command feedback line.
func (t *Terminal) Status() string {
	return t.status
}

// Prompt returns the prompt being edited.
func (t *Terminal) Prompt() *command.Prompt {
	return t.prompt
}
