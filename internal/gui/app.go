// Package gui shows a particle field in a desktop window.
package gui

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/motion"
	"go.uber.org/zap"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray
	ColOn      = rl.NewColor(95, 215, 175, 255)
	ColOff     = rl.NewColor(255, 175, 95, 255)
)

// Motion is the part of the motion policy the window drives.
type Motion interface {
	Toggle() bool
	Enabled() bool
	Source() motion.Source
}

// Options configure the window.
type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

// App renders one field per frame into a raylib window.
type App struct {
	sched     *field.Scheduler
	motion    Motion
	indicator *motion.Indicator
	log       *zap.Logger
	bg        rl.Color

	w, h    int
	cursor  rl.Vector2
	hover   bool
	showHUD bool
	quit    bool
}

// New builds the window app. The indicator may be nil, in which case the
// HUD asks the policy directly.
func New(sched *field.Scheduler, m Motion, ind *motion.Indicator, log *zap.Logger, background string) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		sched:     sched,
		motion:    m,
		indicator: ind,
		log:       log,
		bg:        parseColor(background),
		showHUD:   true,
	}
}

func parseColor(hex string) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.NewColor(0, 0, 0, 255)
	}
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, 255)
}

// initWindow opens a resizable window; Esc is handled by Update, not by raylib.
func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if opts.FPS > 0 {
		rl.SetTargetFPS(int32(opts.FPS))
	}
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(a *App, opts Options) error {
	initWindow(opts)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return errors.New("gui: window could not be created")
	}
	a.log.Info("window opened", zap.Int("width", opts.Width), zap.Int("height", opts.Height))
	a.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update polls input. Pointer and size changes are queued for the next frame.
func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyM) {
		enabled := a.motion.Toggle()
		a.log.Info("motion toggled", zap.Bool("enabled", enabled))
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}
	if rl.IsWindowResized() {
		a.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	a.trackPointer(rl.GetMousePosition(), rl.IsCursorOnScreen() && rl.IsWindowFocused())
}

// trackPointer posts a move when the cursor changes position inside the
// window, and a leave when it exits or the window loses focus.
func (a *App) trackPointer(p rl.Vector2, onScreen bool) {
	inside := onScreen && p.X >= 0 && p.Y >= 0 && int(p.X) < a.w && int(p.Y) < a.h
	switch {
	case inside && (!a.hover || a.cursor != p):
		a.sched.Post(field.PointerMoved{X: float64(p.X), Y: float64(p.Y)})
		a.cursor = p
		a.hover = true
	case !inside && a.hover:
		a.sched.Post(field.PointerLeft{})
		a.hover = false
	}
}

func (a *App) resize(w, h int) {
	if w == a.w && h == a.h {
		return
	}
	a.w, a.h = w, h
	a.sched.Post(field.Resized{W: float64(w), H: float64(h)})
}

func (a *App) motionOn() bool {
	if a.indicator != nil {
		return a.indicator.On()
	}
	return a.motion.Enabled()
}

// Draw renders one frame of the field.
func (a *App) Draw() {
	rl.BeginDrawing()
	stats := a.sched.Frame(screenSurface{w: float64(a.w), h: float64(a.h), bg: a.bg})
	if a.showHUD {
		a.DrawHUD(stats)
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD(stats field.Stats) {
	state, col := "MOTION OFF", ColOff
	if a.motionOn() {
		state, col = "MOTION ON", ColOn
	}
	rl.DrawText(fmt.Sprintf("%s (%s)", state, a.motion.Source()), 16, 16, 16, col)
	rl.DrawText(fmt.Sprintf("particles %d  links %d", stats.Particles, stats.Edges), 16, 38, 14, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 16, int32(a.h)-24, 14, ColTextDim)
	rl.DrawText("[M] MOTION  [H] HUD  [Q] QUIT", int32(a.w)-260, int32(a.h)-24, 14, ColTextDim)
}
