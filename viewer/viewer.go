// Package viewer renders the evolution history in a raylib window.
package viewer

import (
	"strconv"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/numevo/camera"
	"github.com/pthm-cable/numevo/config"
	"github.com/pthm-cable/numevo/evolve"
	"github.com/pthm-cable/numevo/scene"
)

// stopTimeout bounds how long Run waits for the evolver after the window closes.
const stopTimeout = 2 * time.Second

// Viewer polls an evolver's history and redraws it every frame.
// It only mutates display-local state.
type Viewer struct {
	cfg     *config.Config
	evolver *evolve.Evolver

	camera *camera.Camera
	scene  *scene.Scene
	band   camera.Band
	panel  *Panel

	follow bool

	// Plot under the mouse cursor
	hover    scene.Hover
	hovering bool

	// Window dimensions
	screenWidth, screenHeight float32

	// Static label text
	maxText, zeroText, desiredText string
}

// New creates a viewer for the given evolver. The window is opened by Run.
func New(cfg *config.Config, e *evolve.Evolver) *Viewer {
	p := e.Params()
	plot := cfg.Plot
	band := camera.Band{
		Max:    float32(p.MaxNumber + 1),
		Top:    plot.BandTop,
		Bottom: plot.BandBottom,
	}

	return &Viewer{
		cfg:     cfg,
		evolver: e,
		camera:  camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		scene: scene.New(scene.Layout{
			OriginX:         plot.OriginX,
			ColumnWidth:     plot.ColumnWidth,
			Band:            band,
			BestLabelY:      plot.BestLabelY,
			IterationLabelY: plot.IterationLabelY,
			PopulationTextY: plot.PopulationTextY,
		}),
		band:         band,
		panel:        NewPanel(),
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
		maxText:      strconv.Itoa(p.MaxNumber),
		zeroText:     "0",
		desiredText:  strconv.Itoa(p.DesiredNumber),
	}
}

// Run opens the window and loops until it is closed, then stops the evolver.
// Must be called from the main goroutine.
func (v *Viewer) Run() {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(v.cfg.Screen.Width), int32(v.cfg.Screen.Height), v.cfg.Screen.Caption)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(v.cfg.Screen.TargetFPS))

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()
	}

	v.evolver.Stop()
	select {
	case <-v.evolver.Done():
	case <-time.After(stopTimeout):
	}
}

// Update pulls new generations and handles input.
func (v *Viewer) Update() {
	v.scene.Sync(v.evolver.History())
	v.handleInput()

	if v.follow && !v.camera.Dragging() {
		right := v.scene.Layout().ColumnX(v.scene.Generations())
		v.camera.Follow(right, v.cfg.Plot.FollowMargin)
	}
}
