// Package mirrorview renders the scene from the mirrored camera into an
// off-screen color target that the composite pass samples on the mirror.
package mirrorview

import (
	"mirror-scene/internal/config"
	"mirror-scene/internal/graphics"
	"mirror-scene/internal/graphics/renderables/scenedraw"
	"mirror-scene/internal/graphics/renderer"
	"mirror-scene/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Reflection is the mirrored-camera pass. Its target is sized once from the
// startup viewport and never resized.
type Reflection struct {
	painter *scenedraw.Painter
	shadows renderer.DepthSource
	cfg     config.ReflectionConfig

	clearColor mgl32.Vec4
	target     *graphics.RenderTarget

	width, height int
}

// NewReflection creates the pass; the target is sized from the startup
// viewport width x height.
func NewReflection(painter *scenedraw.Painter, shadows renderer.DepthSource, scene config.Scene, width, height int) *Reflection {
	return &Reflection{
		painter:    painter,
		shadows:    shadows,
		cfg:        scene.Reflection,
		clearColor: scene.Composite.ClearColor,
		width:      width,
		height:     height,
	}
}

func (r *Reflection) Name() string { return "reflection" }

func (r *Reflection) Init() error {
	if err := r.painter.Acquire(); err != nil {
		return err
	}

	w, h := r.cfg.TargetSize(r.width, r.height)
	target, err := graphics.NewColorTarget(w, h)
	if err != nil {
		r.painter.Release()
		return err
	}
	r.target = target

	logger.Log.Info("reflection target",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Float32("resolutionFactor", r.cfg.ResolutionFactor))
	return nil
}

// Render draws backdrop and objects through the mirrored camera. Culling is
// inverted because the reflection reverses winding, and geometry behind the
// mirror plane is clipped away. When the mirror degenerated this frame the
// pass is skipped and the composite pass leaves the mirror out.
func (r *Reflection) Render(ctx renderer.RenderContext) {
	if !ctx.MirrorOK {
		return
	}

	r.target.Bind()
	c := r.clearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	cam := ctx.Mirror.Camera
	r.painter.DrawBackdrop(cam, true)

	gl.Enable(gl.CLIP_DISTANCE0)
	clip := ctx.Mirror.ClipPlane(ctx.Frame.Camera.Position)
	r.painter.DrawShaded(ctx, cam, r.shadows.DepthTexture(), clip, true)
	gl.Disable(gl.CLIP_DISTANCE0)

	graphics.BindDefault(r.width, r.height)
}

// ColorTexture is what the mirror saw in the last frame
func (r *Reflection) ColorTexture() uint32 {
	return r.target.ColorTexture
}

func (r *Reflection) SetViewport(width, height int) {
	r.width, r.height = width, height
}

func (r *Reflection) Dispose() {
	if r.target != nil {
		r.target.Delete()
		r.target = nil
	}
	r.painter.Release()
}
