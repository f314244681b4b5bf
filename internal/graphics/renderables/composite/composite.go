// Package composite renders the visible frame: backdrop, shaded objects,
// then the mirror surface showing the reflection target.
package composite

import (
	"path/filepath"

	"mirror-scene/internal/config"
	"mirror-scene/internal/graphics"
	"mirror-scene/internal/graphics/renderables/scenedraw"
	"mirror-scene/internal/graphics/renderer"
	"mirror-scene/internal/imageio"
	"mirror-scene/internal/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const rippleMapSize = 256

// Composite is the final pass into the window framebuffer
type Composite struct {
	painter    *scenedraw.Painter
	shadows    renderer.DepthSource
	reflection renderer.ColorSource
	meshes     *mesh.Loader
	assetsDir  string

	clearColor mgl32.Vec4
	mirrorCfg  config.MirrorConfig

	mirrorShader *graphics.Shader
	mirrorMesh   *graphics.Mesh
	distortion   *graphics.Texture

	width, height int
}

// NewComposite creates the pass. reflection may be nil when the scene has no mirror.
func NewComposite(painter *scenedraw.Painter, shadows renderer.DepthSource, reflection renderer.ColorSource, meshes *mesh.Loader, scene config.Scene, assetsDir string) *Composite {
	return &Composite{
		painter:    painter,
		shadows:    shadows,
		reflection: reflection,
		meshes:     meshes,
		assetsDir:  assetsDir,
		clearColor: scene.Composite.ClearColor,
		mirrorCfg:  scene.Mirror,
	}
}

func (c *Composite) Name() string { return "composite" }

func (c *Composite) Init() error {
	if err := c.painter.Acquire(); err != nil {
		return err
	}
	if c.reflection == nil || !c.mirrorCfg.Enabled {
		return nil
	}
	if err := c.initMirror(); err != nil {
		c.Dispose()
		return err
	}
	return nil
}

func (c *Composite) initMirror() error {
	var err error
	vert, frag := scenedraw.ShaderPaths(c.assetsDir, "mirror")
	if c.mirrorShader, err = graphics.NewShader(vert, frag); err != nil {
		return err
	}

	data, err := c.meshes.Load(c.mirrorCfg.Mesh)
	if err != nil {
		return err
	}
	c.mirrorMesh = graphics.NewMesh(data)

	opts := graphics.SamplerOptions{WrapS: config.WrapRepeat, WrapT: config.WrapRepeat, Filter: config.FilterLinear}
	if c.mirrorCfg.DistortionMap != "" {
		path := filepath.Join(c.assetsDir, "textures", c.mirrorCfg.DistortionMap)
		if c.distortion, err = graphics.LoadTexture(path, opts); err != nil {
			return err
		}
	} else {
		c.distortion = graphics.NewTexture(imageio.RippleMap(rippleMapSize), opts)
	}

	c.mirrorShader.Use()
	c.mirrorShader.SetInt("reflectionMap", 0)
	c.mirrorShader.SetInt("distortionMap", 1)
	return nil
}

// Render draws the frame in a fixed order: the backdrop without depth, the
// lit objects, and last the mirror sampling the reflection target in screen
// space.
func (c *Composite) Render(ctx renderer.RenderContext) {
	graphics.BindDefault(c.width, c.height)
	gl.ClearColor(c.clearColor[0], c.clearColor[1], c.clearColor[2], c.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	cam := ctx.Frame.Camera
	c.painter.DrawBackdrop(cam, false)
	c.painter.DrawShaded(ctx, cam, c.shadows.DepthTexture(), scenedraw.NoClip, false)

	if ctx.MirrorOK && c.mirrorMesh != nil {
		c.drawMirror(ctx)
	}
}

func (c *Composite) drawMirror(ctx renderer.RenderContext) {
	s := c.mirrorShader
	s.Use()
	s.SetMatrix4("model", ctx.Frame.Mirror)
	s.SetMatrix4("view", ctx.Frame.Camera.View)
	s.SetMatrix4("projection", ctx.Frame.Camera.Projection)
	s.SetVector2("screenSize", float32(c.width), float32(c.height))
	s.SetFloat("distortionStrength", ctx.DistortionStrength)
	s.SetFloat("time", ctx.Frame.Time)

	graphics.BindTexture(0, gl.TEXTURE_2D, c.reflection.ColorTexture())
	c.distortion.Bind(1)
	c.mirrorMesh.Draw()
}

func (c *Composite) SetViewport(width, height int) {
	c.width, c.height = width, height
}

func (c *Composite) Dispose() {
	if c.distortion != nil {
		c.distortion.Delete()
		c.distortion = nil
	}
	if c.mirrorMesh != nil {
		c.mirrorMesh.Delete()
		c.mirrorMesh = nil
	}
	if c.mirrorShader != nil {
		c.mirrorShader.Delete()
		c.mirrorShader = nil
	}
	c.painter.Release()
}
