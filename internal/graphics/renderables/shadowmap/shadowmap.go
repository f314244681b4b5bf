// Package shadowmap renders shadow-casting objects from the light into a
// depth-only target that later passes sample with comparison filtering.
package shadowmap

import (
	"mirror-scene/internal/graphics"
	"mirror-scene/internal/graphics/renderables/scenedraw"
	"mirror-scene/internal/graphics/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShadowMap is the light-space depth pass
type ShadowMap struct {
	painter   *scenedraw.Painter
	assetsDir string
	size      int

	shader *graphics.Shader
	target *graphics.RenderTarget

	width, height int
}

// NewShadowMap creates the pass with a square depth target of the given size
func NewShadowMap(painter *scenedraw.Painter, assetsDir string, size int) *ShadowMap {
	return &ShadowMap{painter: painter, assetsDir: assetsDir, size: size}
}

func (s *ShadowMap) Name() string { return "shadow" }

// Init allocates the depth target and compiles the position-only program
func (s *ShadowMap) Init() error {
	if err := s.painter.Acquire(); err != nil {
		return err
	}

	var err error
	vert, frag := scenedraw.ShaderPaths(s.assetsDir, "shadow")
	if s.shader, err = graphics.NewShader(vert, frag); err != nil {
		s.painter.Release()
		return err
	}
	if s.target, err = graphics.NewDepthTarget(s.size, s.size); err != nil {
		s.shader.Delete()
		s.painter.Release()
		return err
	}
	return nil
}

// Render draws every shadow caster into the depth target with front faces
// culled. With shadows switched off the map is only cleared, so every
// comparison passes and everything is lit.
func (s *ShadowMap) Render(ctx renderer.RenderContext) {
	s.target.Bind()
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	if ctx.Shadows {
		graphics.CullFace(gl.BACK, true)

		s.shader.Use()
		viewProj := ctx.Light.ViewProjection()
		s.shader.SetMatrix4("lightViewProjection", viewProj)

		drawables := s.painter.Drawables()
		for _, i := range s.painter.VisibleFrom(viewProj, ctx.Frame.Models) {
			d := &drawables[i]
			if !d.CastsShadow {
				continue
			}
			s.shader.SetMatrix4("model", ctx.Frame.Models[d.Model])
			d.Mesh.Draw()
		}

		graphics.CullFace(gl.BACK, false)
	}

	graphics.BindDefault(s.width, s.height)
}

// DepthTexture is the comparison-sampled depth map of the last frame
func (s *ShadowMap) DepthTexture() uint32 {
	return s.target.DepthTexture
}

// SetViewport records the window size restored after the pass. The depth
// target itself keeps its size.
func (s *ShadowMap) SetViewport(width, height int) {
	s.width, s.height = width, height
}

func (s *ShadowMap) Dispose() {
	if s.target != nil {
		s.target.Delete()
		s.target = nil
	}
	if s.shader != nil {
		s.shader.Delete()
		s.shader = nil
	}
	s.painter.Release()
}
