package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/pixel-morph/common"
	"github.com/Carmen-Shannon/pixel-morph/config"
	"github.com/Carmen-Shannon/pixel-morph/engine"
	"github.com/Carmen-Shannon/pixel-morph/engine/command"
	"github.com/Carmen-Shannon/pixel-morph/engine/pointer"
	"github.com/Carmen-Shannon/pixel-morph/engine/renderer"
	"github.com/Carmen-Shannon/pixel-morph/engine/terminal"
	"github.com/Carmen-Shannon/pixel-morph/engine/window"
	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	app := &cli.App{
		Name:  "pixelmorph",
		Usage: "morph a particle cloud into shapes by typing their names",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML settings file", EnvVars: []string{"PIXELMORPH_CONFIG"}},
			&cli.IntFlag{Name: "particles", Aliases: []string{"n"}, Usage: "particle count"},
			&cli.Uint64Flag{Name: "seed", Usage: "random seed for shape sampling"},
			&cli.Float64Flag{Name: "tick-rate", Usage: "frames per second"},
			&cli.BoolFlag{Name: "profiling", Usage: "log frame statistics once a second"},
		},
		Action: runWindow,
		Commands: []*cli.Command{
			{
				Name:  "window",
				Usage: "render with WebGPU in a native window",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "uncapped", Usage: "disable vsync"},
					&cli.BoolFlag{Name: "software", Usage: "force the fallback adapter"},
				},
				Action: runWindow,
			},
			{
				Name:  "term",
				Usage: "render as colored characters in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log", Usage: "file to write logs to while the screen is active"},
				},
				Action: runTerminal,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("[pixelmorph] %v", err)
	}
}

// loadConfig reads the settings file and applies command line overrides on top.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("particles") {
		cfg.Particles.Count = c.Int("particles")
	}
	if c.IsSet("seed") {
		cfg.Particles.Seed = c.Uint64("seed")
	}
	if c.IsSet("tick-rate") {
		cfg.Engine.TickRate = c.Float64("tick-rate")
	}
	if c.IsSet("profiling") {
		cfg.Engine.Profiling = c.Bool("profiling")
	}
	if c.IsSet("uncapped") && c.Bool("uncapped") {
		cfg.Window.PresentMode = "uncapped"
	}
	if c.IsSet("software") {
		cfg.Window.Software = c.Bool("software")
	}
	return cfg, cfg.Validate()
}

func runWindow(c *cli.Context) (err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(cfg.EngineOptions()...)
	defer eng.Close()

	win, err := window.NewWindow(cfg.WindowOptions()...)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, win.Close()) }()

	r, err := renderer.NewRenderer(win, cfg.RendererOptions()...)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, r.Close()) }()

	eng.Resize(win.Width(), win.Height())
	bindWindowInput(win, eng, cfg)

	win.SetResizeCallback(func(width, height int) {
		eng.Resize(width, height)
		if rerr := r.Resize(width, height); rerr != nil {
			log.Printf("[Window] resize failed: %v", rerr)
		}
	})

	frame := time.Duration(float64(time.Second) / cfg.Engine.TickRate)
	last := time.Now()
	var renderErr error
	win.SetUpdateCallback(func() {
		select {
		case <-eng.Done():
			win.RequestClose()
			return
		default:
		}

		now := time.Now()
		if now.Sub(last) < frame {
			return
		}
		dt := float32(now.Sub(last).Seconds())
		last = now

		eng.Tick(dt)
		if rerr := r.Render(eng.Frame()); rerr != nil {
			renderErr = rerr
			win.RequestClose()
		}
	})

	win.ProcessMessages()
	return renderErr
}

// bindWindowInput routes window callbacks to the engine. Typed text is echoed in the title bar.
func bindWindowInput(win window.Window, eng engine.Engine, cfg config.Config) {
	prompt := command.NewPrompt(command.DefaultPromptLimit)
	taps := pointer.NewDoubleTapDetector()

	showTitle := func(status string) {
		title := common.Coalesce(cfg.Window.Title, "pixel-morph")
		if text := prompt.Text(); text != "" {
			title += " | > " + text
		} else if status != "" {
			title += " | " + status
		}
		win.SetTitle(title)
	}

	win.SetCharCallback(func(r rune) {
		prompt.Insert(r)
		showTitle("")
	})
	win.SetKeyDownCallback(func(keyCode uint32) {
		switch {
		case common.IsSubmitKey(keyCode):
			text := prompt.Submit()
			if text == "" {
				return
			}
			res := eng.Interpret(text)
			if res.IsDisplay() {
				showTitle("showing " + strings.Join(res.Displays, " + "))
			} else {
				showTitle("morphing to " + res.Shape.String())
			}
		case keyCode == common.KeyBackspace:
			prompt.Backspace()
			showTitle("")
		case keyCode == common.KeyDelete:
			prompt.Submit()
			showTitle("")
		case keyCode == common.KeyEsc:
			eng.Quit()
		}
	})

	win.SetMouseDownCallback(func(x, y float64) {
		if taps.Press(time.Now(), x, y) {
			eng.OnPointerEvent(pointer.MouseEvent(pointer.KindDoubleClick, x, y))
		}
		eng.OnPointerEvent(pointer.MouseEvent(pointer.KindPress, x, y))
	})
	win.SetMouseMoveCallback(func(x, y float64) {
		eng.OnPointerEvent(pointer.MouseEvent(pointer.KindMove, x, y))
	})
	win.SetMouseUpCallback(func(x, y float64) {
		eng.OnPointerEvent(pointer.MouseEvent(pointer.KindRelease, x, y))
	})
	win.SetMouseLeaveCallback(func() {
		eng.OnPointerEvent(pointer.MouseEvent(pointer.KindLeave, 0, 0))
	})
	win.SetScrollCallback(func(delta float32) {
		eng.Camera().Controller().AdjustTargetDistance(-float64(delta) * cfg.Terminal.ZoomStep)
	})
}

func runTerminal(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// Log lines would corrupt the character grid while tcell owns the screen.
	var logOut io.Writer = io.Discard
	if path := c.String("log"); path != "" {
		f, ferr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if ferr != nil {
			return fmt.Errorf("failed to open log file: %w", ferr)
		}
		defer f.Close()
		logOut = f
	}
	log.SetOutput(logOut)
	defer log.SetOutput(os.Stderr)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}

	eng := engine.NewEngine(cfg.EngineOptions()...)
	defer eng.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return terminal.NewTerminal(screen, eng, cfg.TerminalOptions()...).Run(ctx)
}
