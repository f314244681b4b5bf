package game

import (
	"time"

	"mirror-scene/internal/config"
	"mirror-scene/internal/graphics/renderer"
	"mirror-scene/internal/lights"
	"mirror-scene/internal/logger"
	"mirror-scene/internal/profiling"
	"mirror-scene/internal/reflection"
	"mirror-scene/internal/shadow"
	"mirror-scene/internal/transform"

	"go.uber.org/zap"
)

// FrameRenderer consumes a prepared frame
type FrameRenderer interface {
	Render(ctx renderer.RenderContext)
}

// Driver advances the simulation and issues the passes once per tick.
// Everything a frame needs is solved before the first pass runs.
type Driver struct {
	scene  config.Scene
	solver *transform.Solver
	lights *lights.Set
	light  transform.CameraState
	clock  *Clock
	out    FrameRenderer

	width, height int

	mirrorOK   bool
	overlay    bool
	lastReport time.Time
}

// NewDriver builds the solvers for a validated scene
func NewDriver(scene config.Scene, clock *Clock, out FrameRenderer) *Driver {
	return &Driver{
		scene:      scene,
		solver:     transform.NewSolver(scene),
		lights:     lights.New(scene.Lights),
		light:      shadow.NewLightCamera(scene.Shadow).State(),
		clock:      clock,
		out:        out,
		mirrorOK:   true,
		lastReport: clock.Now(),
	}
}

// SetViewport sets the drawable size the primary camera's aspect follows
func (d *Driver) SetViewport(width, height int) {
	d.width, d.height = width, height
}

// ToggleOverlay shows or hides the on-screen statistics
func (d *Driver) ToggleOverlay() bool {
	d.overlay = !d.overlay
	return d.overlay
}

// Prepare solves every camera, transform and light for simulation time t.
// A mirror plane that degenerates leaves MirrorOK false; the reflection pass
// and the mirror draw are then skipped for this frame only.
func (d *Driver) Prepare(t float32) renderer.RenderContext {
	aspect := float32(1)
	if d.width > 0 && d.height > 0 {
		aspect = float32(d.width) / float32(d.height)
	}

	frame := d.solver.Solve(t, aspect)
	d.lights.Update(t)
	positions, colors := d.lights.Snapshot()

	ctx := renderer.RenderContext{
		Frame:              frame,
		Light:              d.light,
		LightPositions:     positions,
		LightColors:        colors,
		Ambient:            d.scene.Lights.Ambient,
		Width:              d.width,
		Height:             d.height,
		Shadows:            config.GetShadowsEnabled(),
		DistortionStrength: config.GetDistortionStrength(),
		ShowStats:          d.overlay,
	}

	if d.scene.Mirror.Enabled {
		mirror, err := reflection.Solve(frame.Mirror, d.scene.Mirror.LocalNormal, frame.Camera)
		if err != nil {
			if d.mirrorOK {
				logger.Log.Debug("mirror skipped", zap.Float32("t", t), zap.Error(err))
			}
		} else {
			ctx.Mirror = mirror
			ctx.MirrorOK = true
		}
		d.mirrorOK = ctx.MirrorOK
	}

	return ctx
}

// Tick renders one frame at the clock's current time and returns what it rendered
func (d *Driver) Tick() renderer.RenderContext {
	profiling.ResetFrame()

	stop := profiling.Track("driver.Prepare")
	ctx := d.Prepare(d.clock.Elapsed())
	stop()

	d.out.Render(ctx)
	profiling.EndFrame()

	d.report()
	return ctx
}

func (d *Driver) report() {
	now := d.clock.Now()
	elapsed := now.Sub(d.lastReport)
	if elapsed < time.Second {
		return
	}
	d.lastReport = now

	avg, frames := profiling.DrainWindow()
	logger.Log.Info("frame stats",
		zap.Float64("fps", float64(frames)/elapsed.Seconds()),
		zap.String("top", profiling.Format(avg, 4)))
}
